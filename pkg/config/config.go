package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	Cache        CacheConfig
	JWT          JWTConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	GenAI        GenAIConfig
	Sendgrid     SendgridConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"HOMEFINDERZ_APP_ENV" required:"true"`
	Port         string `envconfig:"HOMEFINDERZ_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"HOMEFINDERZ_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"HOMEFINDERZ_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"HOMEFINDERZ_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"HOMEFINDERZ_DB_DSN"`
	Driver string `envconfig:"HOMEFINDERZ_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"HOMEFINDERZ_DB_HOST"`
	LegacyPort     int    `envconfig:"HOMEFINDERZ_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"HOMEFINDERZ_DB_USER"`
	LegacyPassword string `envconfig:"HOMEFINDERZ_DB_PASSWORD"`
	LegacyName     string `envconfig:"HOMEFINDERZ_DB_NAME"`
	LegacySSLMode  string `envconfig:"HOMEFINDERZ_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"HOMEFINDERZ_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"HOMEFINDERZ_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"HOMEFINDERZ_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"HOMEFINDERZ_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"HOMEFINDERZ_REDIS_URL" required:"true"`
	Address      string        `envconfig:"HOMEFINDERZ_REDIS_ADDR"`
	Password     string        `envconfig:"HOMEFINDERZ_REDIS_PASSWORD"`
	DB           int           `envconfig:"HOMEFINDERZ_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"HOMEFINDERZ_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"HOMEFINDERZ_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"HOMEFINDERZ_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"HOMEFINDERZ_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"HOMEFINDERZ_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CacheConfig struct {
	Enabled    bool          `envconfig:"HOMEFINDERZ_CACHE_ENABLED" default:"true"`
	ListingTTL time.Duration `envconfig:"HOMEFINDERZ_CACHE_LISTING_TTL" default:"5m"`
}

type JWTConfig struct {
	Secret            string `envconfig:"HOMEFINDERZ_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"HOMEFINDERZ_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"HOMEFINDERZ_JWT_EXPIRATION_MINUTES" default:"60"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"HOMEFINDERZ_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"HOMEFINDERZ_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"HOMEFINDERZ_GCP_PROJECT_ID" required:"true"`
	CredentialsJSON        string `envconfig:"HOMEFINDERZ_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"HOMEFINDERZ_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	ViewsTopic        string `envconfig:"HOMEFINDERZ_PUBSUB_VIEWS_TOPIC" default:"hf-property-view-events"`
	ViewsSubscription string `envconfig:"HOMEFINDERZ_PUBSUB_VIEWS_SUBSCRIPTION" required:"true"`
}

type GenAIConfig struct {
	APIKey          string `envconfig:"HOMEFINDERZ_GENAI_API_KEY"`
	Model           string `envconfig:"HOMEFINDERZ_GENAI_MODEL" default:"gemini-2.0-flash"`
	MaxOutputTokens int32  `envconfig:"HOMEFINDERZ_GENAI_MAX_OUTPUT_TOKENS" default:"8192"`
}

type SendgridConfig struct {
	APIKey      string `envconfig:"HOMEFINDERZ_SENDGRID_API_KEY"`
	DefaultFrom string `envconfig:"HOMEFINDERZ_SENDGRID_FROM_EMAIL"`
	FromName    string `envconfig:"HOMEFINDERZ_SENDGRID_FROM_NAME" default:"HomeFinderz"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
