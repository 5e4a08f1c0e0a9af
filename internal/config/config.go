package config

import (
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	viper "github.com/spf13/viper"
)

/*
init : 讀取 .env 與環境變數，設置 viper watch 與 onConfigChange
read : 讀鎖保護，熱更新時整份替換
熱更新只影響之後呼叫 GetConfig 的地方與 OnChange 訂閱者
db、redis、kafka 等連線設定在啟動時就用掉，改了要重啟
*/
var config_singleton *ConfigSingleTon
var muonce sync.Once

type ConfigSingleTon struct {
	Config    *Config
	mu        sync.RWMutex
	listeners []func(*Config)
}

// swap 替換設定後依序通知訂閱者，通知時不持有鎖
func (s *ConfigSingleTon) swap(cf *Config) {
	s.mu.Lock()
	s.Config = cf
	listeners := append([]func(*Config){}, s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(cf)
	}
}

func (s *ConfigSingleTon) subscribe(fn func(*Config)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

type Config struct {
	Env                  string `mapstructure:"ENV"`
	ServerPort           string `mapstructure:"SERVER_PORT"`
	DbName               string `mapstructure:"POSTGRES_DB"`
	DbHost               string `mapstructure:"POSTGRES_HOST"`
	DbPort               string `mapstructure:"POSTGRES_PORT"`
	DbUser               string `mapstructure:"POSTGRES_USER"`
	DbPas                string `mapstructure:"POSTGRES_PASSWORD"`
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisDB              int    `mapstructure:"REDIS_DB"`
	KafkaBrokers         string `mapstructure:"KAFKA_BROKERS"`
	KafkaSaleTopic       string `mapstructure:"KAFKA_SALE_TOPIC"`
	EventStoreUrl        string `mapstructure:"EVENTSTORE_URL"`
	SessionTTLMinutes    int    `mapstructure:"SESSION_TTL_MINUTES"`
	CartDraftTTLMinutes  int    `mapstructure:"CART_DRAFT_TTL_MINUTES"`
	LowStockThreshold    int    `mapstructure:"LOW_STOCK_THRESHOLD"`
	SeedFile             string `mapstructure:"SEED_FILE"`
	LoginRateCapacity    int    `mapstructure:"LOGIN_RATE_CAPACITY"`
	LoginRefillPerMinute int    `mapstructure:"LOGIN_REFILL_PER_MINUTE"`
	LoginRateBackend     string `mapstructure:"LOGIN_RATE_BACKEND"` // memory | redis
	LogKafkaTopic        string `mapstructure:"LOG_KAFKA_TOPIC"`    // 空字串不送log到kafka
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

func (c *Config) CartDraftTTL() time.Duration {
	return time.Duration(c.CartDraftTTLMinutes) * time.Minute
}

// Brokers 逗號分隔，空字串代表不發布到kafka
func (c *Config) Brokers() []string {
	var out []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

func (c *Config) IsDev() bool {
	return c.Env == "" || c.Env == "dev"
}

func GetConfig() *Config {
	initConfig()
	config_singleton.mu.RLock()
	defer config_singleton.mu.RUnlock()
	return config_singleton.Config
}

// OnChange 設定檔重新載入後呼叫fn，給執行中的元件套用可熱更新的值
func OnChange(fn func(*Config)) {
	initConfig()
	config_singleton.subscribe(fn)
}

func initConfig() {
	muonce.Do(func() {
		config_singleton = &ConfigSingleTon{}
		cf, err := Load(configPath())
		if err != nil {
			log.Fatalf("error read config: %v", err)
		}
		config_singleton.Config = cf

		if fileExists(configPath()) {
			viper.WatchConfig()
			viper.OnConfigChange(func(e fsnotify.Event) {
				cf, err := Load(configPath())
				if err != nil {
					log.Printf("failed to reload config file %s: %v", e.Name, err)
					return
				}
				config_singleton.swap(cf)
			})
		}
	})
}

// POS_CONFIG_FILE 可指定 .env 位置
func configPath() string {
	if p := os.Getenv("POS_CONFIG_FILE"); p != "" {
		return p
	}
	return ".env"
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", "dev")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("POSTGRES_DB", "pos")
	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", "5432")
	v.SetDefault("POSTGRES_USER", "postgres")
	v.SetDefault("POSTGRES_PASSWORD", "")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_SALE_TOPIC", "pos.sales")
	v.SetDefault("EVENTSTORE_URL", "")
	v.SetDefault("SESSION_TTL_MINUTES", 480)
	v.SetDefault("CART_DRAFT_TTL_MINUTES", 1440)
	v.SetDefault("LOW_STOCK_THRESHOLD", 20)
	v.SetDefault("SEED_FILE", "")
	v.SetDefault("LOGIN_RATE_CAPACITY", 10)
	v.SetDefault("LOGIN_REFILL_PER_MINUTE", 10)
	v.SetDefault("LOGIN_RATE_BACKEND", "memory")
	v.SetDefault("LOG_KAFKA_TOPIC", "")
}

/*
單純回傳錯誤  由外部決定要不要Fatal
檔案不存在時只讀環境變數與預設值
*/
func Load(path string) (*Config, error) {
	v := viper.GetViper()
	setDefaults(v)
	v.AutomaticEnv()

	if fileExists(path) {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	cf := &Config{}
	if err := v.Unmarshal(cf); err != nil {
		return nil, err
	}
	return cf, nil
}
