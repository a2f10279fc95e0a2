package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	Store    StoreConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Security SecurityConfig
	Checkout CheckoutConfig
	Admin    AdminConfig
	Upstream UpstreamConfig
	OTP      OTPConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Store.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SWIFTCART_APP_ENV" default:"development"`
	Port         string `envconfig:"SWIFTCART_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SWIFTCART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SWIFTCART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StoreConfig selects the durable key-value backend.
type StoreConfig struct {
	Driver string `envconfig:"SWIFTCART_STORE_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"SWIFTCART_STORE_DSN" default:"swiftcart.db"`

	MaxOpenConns    int           `envconfig:"SWIFTCART_STORE_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"SWIFTCART_STORE_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"SWIFTCART_STORE_CONN_MAX_LIFETIME" default:"1h"`
}

func (s StoreConfig) validate() error {
	switch s.Driver {
	case StoreDriverSQLite, StoreDriverPostgres, StoreDriverRedis:
		return nil
	default:
		return fmt.Errorf("unknown store driver %q", s.Driver)
	}
}

type RedisConfig struct {
	URL          string        `envconfig:"SWIFTCART_REDIS_URL"`
	Address      string        `envconfig:"SWIFTCART_REDIS_ADDR"`
	Password     string        `envconfig:"SWIFTCART_REDIS_PASSWORD"`
	DB           int           `envconfig:"SWIFTCART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SWIFTCART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SWIFTCART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SWIFTCART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SWIFTCART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SWIFTCART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Configured reports whether a Redis endpoint was provided at all.
func (r RedisConfig) Configured() bool {
	return r.URL != "" || r.Address != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"SWIFTCART_JWT_SECRET" default:"swiftcart-dev-secret"`
	Issuer            string `envconfig:"SWIFTCART_JWT_ISSUER" default:"swiftcart"`
	ExpirationMinutes int    `envconfig:"SWIFTCART_JWT_EXPIRATION_MINUTES" default:"1440"`
}

// Expiration returns the access token lifetime.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type SecurityConfig struct {
	ArgonMemoryKB    int `envconfig:"SWIFTCART_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SWIFTCART_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SWIFTCART_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SWIFTCART_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SWIFTCART_ARGON_KEY_LEN" default:"32"`
}

// CheckoutConfig carries the pricing constants and the gateway fallback policy.
type CheckoutConfig struct {
	FreeShippingThreshold int           `envconfig:"SWIFTCART_FREE_SHIPPING_THRESHOLD" default:"500"`
	ShippingFee           int           `envconfig:"SWIFTCART_SHIPPING_FEE" default:"50"`
	SimulateOnFailure     bool          `envconfig:"SWIFTCART_PAYMENT_SIMULATE_ON_FAILURE" default:"true"`
	SimulateDelay         time.Duration `envconfig:"SWIFTCART_PAYMENT_SIMULATE_DELAY" default:"2s"`
}

// AdminConfig holds the static allow-lists that force the ADMIN role at login.
type AdminConfig struct {
	Emails  []string `envconfig:"SWIFTCART_ADMIN_EMAILS" default:"admin@flipkart.com,owner@flipkart.com"`
	Mobiles []string `envconfig:"SWIFTCART_ADMIN_MOBILES" default:"9999999999,7891906445,6378041283"`
}

// UpstreamConfig points at the optional backing API. When disabled every
// operation is served from the local store.
type UpstreamConfig struct {
	Enabled bool          `envconfig:"SWIFTCART_UPSTREAM_ENABLED" default:"false"`
	BaseURL string        `envconfig:"SWIFTCART_UPSTREAM_BASE_URL"`
	Timeout time.Duration `envconfig:"SWIFTCART_UPSTREAM_TIMEOUT" default:"10s"`
}

type OTPConfig struct {
	TTL    time.Duration `envconfig:"SWIFTCART_OTP_TTL" default:"5m"`
	Digits int           `envconfig:"SWIFTCART_OTP_DIGITS" default:"4"`
}
