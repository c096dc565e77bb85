package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "TRIPDESK_DB_DSN"
	EnvDBHost = "TRIPDESK_DB_HOST"
	EnvDBUser = "TRIPDESK_DB_USER"
	EnvDBName = "TRIPDESK_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Assignment   AssignmentConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	Outbox       OutboxConfig
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
	Env          string `envconfig:"TRIPDESK_APP_ENV" required:"true"`
	Port         string `envconfig:"TRIPDESK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"TRIPDESK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TRIPDESK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"TRIPDESK_DB_DSN"`
	Driver string `envconfig:"TRIPDESK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"TRIPDESK_DB_HOST"`
	LegacyPort     int    `envconfig:"TRIPDESK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"TRIPDESK_DB_USER"`
	LegacyPassword string `envconfig:"TRIPDESK_DB_PASSWORD"`
	LegacyName     string `envconfig:"TRIPDESK_DB_NAME"`
	LegacySSLMode  string `envconfig:"TRIPDESK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TRIPDESK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TRIPDESK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TRIPDESK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TRIPDESK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"TRIPDESK_REDIS_URL" required:"true"`
	Address      string        `envconfig:"TRIPDESK_REDIS_ADDR"`
	Password     string        `envconfig:"TRIPDESK_REDIS_PASSWORD"`
	DB           int           `envconfig:"TRIPDESK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TRIPDESK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TRIPDESK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TRIPDESK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TRIPDESK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TRIPDESK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// AssignmentConfig tunes the auto-assignment engine.
type AssignmentConfig struct {
	AssignedByTag  string        `envconfig:"TRIPDESK_ASSIGNMENT_ASSIGNED_BY" default:"auto-assign"`
	LockTTL        time.Duration `envconfig:"TRIPDESK_ASSIGNMENT_LOCK_TTL" default:"30s"`
	SweepInterval  time.Duration `envconfig:"TRIPDESK_ASSIGNMENT_SWEEP_INTERVAL" default:"5m"`
	SweepBatchSize int           `envconfig:"TRIPDESK_ASSIGNMENT_SWEEP_BATCH_SIZE" default:"50"`
	CronLockTTL    time.Duration `envconfig:"TRIPDESK_ASSIGNMENT_CRON_LOCK_TTL" default:"10m"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"TRIPDESK_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"TRIPDESK_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"TRIPDESK_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"TRIPDESK_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"TRIPDESK_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	DomainTopic        string `envconfig:"TRIPDESK_PUBSUB_DOMAIN_TOPIC" default:"tripdesk-domain-events"`
	DomainSubscription string `envconfig:"TRIPDESK_PUBSUB_DOMAIN_SUBSCRIPTION"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"TRIPDESK_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"TRIPDESK_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"TRIPDESK_OUTBOX_MAX_ATTEMPTS" default:"10"`
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

// PollInterval converts the configured poll interval into a duration.
func (o OutboxConfig) PollInterval() time.Duration {
	if o.PollIntervalMS <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(o.PollIntervalMS) * time.Millisecond
}
