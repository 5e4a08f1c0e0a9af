package constants

// for api auth
type ContextKey string

const (
	AuthorizationHeaderKey  string     = "Authorization"
	AuthorizationTypeBearer string     = "bearer"
	AuthorizationIdentity   ContextKey = "authorization_identity"
	AuthorizationToken      ContextKey = "authorization_token"
)

type ENV string

const (
	Debug ENV = "debug"
	Dev   ENV = "dev"
	Stag  ENV = "staging"
	Prod  ENV = "production"
)

type RequestID string

const (
	RequestIDKey    RequestID = "request_id"
	RequestIDHeader string    = "X-Request-ID"
)

const (
	DefaultLowStockThreshold = 20
	TopProductsLimit         = 10
)
