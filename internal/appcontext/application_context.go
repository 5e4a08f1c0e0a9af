package appcontext

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/EventStore/EventStore-Client-Go/v4/esdb"
	"github.com/RoyceAzure/lab/pos/internal/api"
	"github.com/RoyceAzure/lab/pos/internal/api/handler"
	cmd_handler "github.com/RoyceAzure/lab/pos/internal/command/handler"
	"github.com/RoyceAzure/lab/pos/internal/config"
	"github.com/RoyceAzure/lab/pos/internal/infra/auth"
	"github.com/RoyceAzure/lab/pos/internal/infra/logger"
	"github.com/RoyceAzure/lab/pos/internal/infra/producer"
	"github.com/RoyceAzure/lab/pos/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/pos/internal/infra/repository/eventdb"
	"github.com/RoyceAzure/lab/pos/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/pos/internal/infra/seed"
	"github.com/RoyceAzure/lab/pos/internal/pkg/ratelimit"
	"github.com/RoyceAzure/lab/pos/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ApplicationContext struct {
	Cf           *config.Config
	Logger       *zerolog.Logger
	DbConn       *gorm.DB
	DbDao        db.Store
	RedisClient  *redis.Client
	KafkaWriter  producer.Writer
	EsdbClient   *esdb.Client
	Registry     *service.TerminalRegistry
	Sessions     *service.SessionService
	Carts        *service.CartService
	Checkout     *service.CheckoutService
	Reports      *service.ReportService
	Catalog      *service.CatalogService
	Contacts     *service.ContactService
	Dispatcher   *cmd_handler.HandlerDispatcher
	LoginLimiter ratelimit.Limiter
	notifiers    []service.SaleNotifier
	drafts       *redis_repo.CartDraftRepo
	logWriter    *logger.KafkaWriter
}

func NewApplicationContext(cf *config.Config) (*ApplicationContext, error) {
	app := ApplicationContext{Cf: cf}
	app.setUpLogger()
	if err := app.Init(); err != nil {
		return nil, err
	}
	return &app, nil
}

// setUpLogger 開發環境用console輸出，有設定 LOG_KAFKA_TOPIC 時另外送一份到kafka
func (app *ApplicationContext) setUpLogger() {
	var out io.Writer = os.Stdout
	level := zerolog.InfoLevel
	if app.Cf.IsDev() {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		level = zerolog.DebugLevel
	}
	if brokers := app.Cf.Brokers(); app.Cf.LogKafkaTopic != "" && len(brokers) > 0 {
		app.logWriter = logger.NewKafkaWriter(brokers, app.Cf.LogKafkaTopic)
		out = zerolog.MultiLevelWriter(out, app.logWriter)
	}

	l := zerolog.New(out).Level(level).With().Timestamp().Logger()
	log.Logger = l
	app.Logger = &l
}

func (app *ApplicationContext) Init() error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"database connection", app.setUpdbConn},
		{"database DAO", app.setUpdbDao},
		{"redis client", app.setUpRedis},
		{"sale notifiers", app.setUpNotifiers},
		{"services", app.setUpServices},
		{"seed data", app.setUpSeed},
	}
	for _, step := range steps {
		app.Logger.Info().Msgf("Start setup %s", step.name)
		if err := step.fn(); err != nil {
			return fmt.Errorf("setup %s: %w", step.name, err)
		}
		app.Logger.Info().Msgf("Finish setup %s", step.name)
	}
	return nil
}

func (app *ApplicationContext) setUpdbConn() error {
	conn, err := db.GetDbConn(app.Cf.DbName, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbUser, app.Cf.DbPas)
	if err != nil {
		return err
	}
	app.DbConn = conn
	return nil
}

// setUpdbDao 建表只在啟動時做一次，不做版本遷移
func (app *ApplicationContext) setUpdbDao() error {
	store := db.NewUnifiedDB(app.DbConn)
	if err := store.InitMigrate(); err != nil {
		return err
	}
	app.DbDao = store
	return nil
}

func (app *ApplicationContext) setUpRedis() error {
	app.RedisClient = redis.NewClient(&redis.Options{
		Addr:     app.Cf.RedisAddr,
		Password: app.Cf.RedisPassword,
		DB:       app.Cf.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.RedisClient.Ping(ctx).Err(); err != nil {
		return err
	}
	app.drafts = redis_repo.NewCartDraftRepo(app.RedisClient, app.Cf.CartDraftTTL())
	return nil
}

// setUpNotifiers kafka與eventstore都是選配
func (app *ApplicationContext) setUpNotifiers() error {
	app.Registry = service.NewTerminalRegistry()
	app.notifiers = []service.SaleNotifier{app.Registry}

	if brokers := app.Cf.Brokers(); len(brokers) > 0 {
		app.KafkaWriter = producer.NewSaleWriter(producer.WriterConfig{
			Brokers: brokers,
			Topic:   app.Cf.KafkaSaleTopic,
		})
		app.notifiers = append(app.notifiers, producer.NewSaleProducer(app.KafkaWriter))
		app.Logger.Info().Strs("brokers", brokers).Str("topic", app.Cf.KafkaSaleTopic).Msg("sale events publish to kafka")
	}

	if app.Cf.EventStoreUrl != "" {
		settings, err := esdb.ParseConnectionString(app.Cf.EventStoreUrl)
		if err != nil {
			return err
		}
		app.EsdbClient, err = esdb.NewClient(settings)
		if err != nil {
			return err
		}
		app.notifiers = append(app.notifiers, eventdb.NewSaleEventDao(eventdb.NewEventDao(app.EsdbClient)))
		app.Logger.Info().Msg("sale events append to eventstore")
	}
	return nil
}

func (app *ApplicationContext) setUpServices() error {
	authenticator := auth.NewPasswordAuthenticator(app.DbDao, redis_repo.NewSessionRepo(app.RedisClient), app.Cf.SessionTTL())
	loader := service.NewTerminalLoader(app.DbDao, app.drafts, app.Logger)

	app.Sessions = service.NewSessionService(authenticator, app.Registry, loader, app.Logger)
	app.Carts = service.NewCartService(app.drafts, app.Logger)
	app.Checkout = service.NewCheckoutService(app.DbDao, app.drafts, app.notifiers, time.Now, app.Logger)
	app.Reports = service.NewReportService(app.Cf.LowStockThreshold, time.Now)
	config.OnChange(func(cf *config.Config) {
		app.Reports.SetLowStockThreshold(cf.LowStockThreshold)
		app.Logger.Info().Int("low_stock_threshold", app.Reports.LowStockThreshold()).Msg("config reloaded")
	})
	app.Catalog = service.NewCatalogService(app.DbDao, app.Registry)
	app.Contacts = service.NewContactService(app.DbDao)
	app.Dispatcher = cmd_handler.NewTerminalDispatcher(app.Carts, app.Checkout, app.Reports)

	limiterConfig := ratelimit.GetDefaultLimiterConfig()
	if app.Cf.LoginRateCapacity > 0 {
		limiterConfig.Capacity = app.Cf.LoginRateCapacity
	}
	if app.Cf.LoginRefillPerMinute > 0 {
		limiterConfig.RefillRate = time.Minute / time.Duration(app.Cf.LoginRefillPerMinute)
	}
	// 多個instance時用redis共用桶子
	if app.Cf.LoginRateBackend == "redis" {
		app.LoginLimiter = ratelimit.NewRedisLimiter(app.RedisClient, "login", limiterConfig, app.Logger)
	} else {
		app.LoginLimiter = ratelimit.NewKeyedLimiter(limiterConfig)
	}
	return nil
}

// setUpSeed 只填空的資料表
func (app *ApplicationContext) setUpSeed() error {
	if app.Cf.SeedFile == "" {
		return nil
	}
	data, err := seed.LoadFile(app.Cf.SeedFile)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return seed.Apply(ctx, app.DbDao, data, app.Logger)
}

// NewServer 組出所有 http handler
func (app *ApplicationContext) NewServer() *api.Server {
	return api.NewServer(
		handler.NewAuthHandler(app.Sessions),
		handler.NewCatalogHandler(app.Catalog),
		handler.NewContactHandler(app.Contacts),
		handler.NewTerminalHandler(app.Dispatcher, app.Carts, app.Reports),
	)
}

func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	var errs []error
	if app.KafkaWriter != nil {
		errs = append(errs, app.KafkaWriter.Close())
	}
	if app.EsdbClient != nil {
		errs = append(errs, app.EsdbClient.Close())
	}
	if app.RedisClient != nil {
		errs = append(errs, app.RedisClient.Close())
	}
	if app.logWriter != nil {
		errs = append(errs, app.logWriter.Close())
	}
	if app.DbConn != nil {
		if sqlDB, err := app.DbConn.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		} else {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
