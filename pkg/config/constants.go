package config

// EnvPrefix is empty because every field carries its full variable name.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"
	StoreDriverRedis    = "redis"
)

// Environment variable names referenced outside struct tags (tests, docs).
const (
	EnvAppEnv      = "SWIFTCART_APP_ENV"
	EnvAppPort     = "SWIFTCART_APP_PORT"
	EnvStoreDriver = "SWIFTCART_STORE_DRIVER"
	EnvStoreDSN    = "SWIFTCART_STORE_DSN"
	EnvRedisURL    = "SWIFTCART_REDIS_URL"
	EnvJWTSecret   = "SWIFTCART_JWT_SECRET"
)
