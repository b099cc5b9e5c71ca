package cmd

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"logistics/internal/pkg/db"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every variable, e.g. LOGISTICS_DB_DSN. Field names are split
// on word boundaries, so MaxOpenConns reads LOGISTICS_DB_MAX_OPEN_CONNS.
const EnvPrefix = "logistics"

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	JWT     JWTConfig
	Tracing TracingConfig
	Jobs    JobsConfig
}

// Load reads the environment. Call godotenv beforehand to pick up a .env file.
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
	Env             string        `split_words:"true" default:"dev"`
	Port            string        `split_words:"true" default:"8080"`
	ServiceName     string        `split_words:"true" default:"logistics"`
	LogLevel        string        `split_words:"true" default:"info"`
	LogFormat       string        `split_words:"true" default:"json"`
	LogWarnStack    bool          `split_words:"true" default:"false"`
	BodyLimit       string        `split_words:"true" default:"1M"`
	ShutdownTimeout time.Duration `split_words:"true" default:"15s"`
}

func (a AppConfig) Addr() string {
	return net.JoinHostPort("0.0.0.0", a.Port)
}

type DBConfig struct {
	Driver string `split_words:"true" default:"postgres"`
	DSN    string `split_words:"true"`

	Host     string `split_words:"true"`
	Port     int    `split_words:"true" default:"5432"`
	User     string `split_words:"true"`
	Password string `split_words:"true"`
	Name     string `split_words:"true"`
	SSLMode  string `split_words:"true" default:"disable"`

	MaxOpenConns    int           `split_words:"true" default:"20"`
	MaxIdleConns    int           `split_words:"true" default:"10"`
	ConnMaxLifetime time.Duration `split_words:"true" default:"1h"`
	ConnMaxIdleTime time.Duration `split_words:"true" default:"10m"`

	// AutoMigrate applies the schema on startup: goose for postgres, GORM for sqlite.
	AutoMigrate bool `split_words:"true" default:"false"`
}

// Client converts the section into the db package config.
func (d DBConfig) Client() db.Config {
	return db.Config{
		Driver:          d.Driver,
		DSN:             d.DSN,
		MaxOpenConns:    d.MaxOpenConns,
		MaxIdleConns:    d.MaxIdleConns,
		ConnMaxLifetime: d.ConnMaxLifetime,
		ConnMaxIdleTime: d.ConnMaxIdleTime,
	}
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Driver == db.DriverSQLite {
		return errors.New("LOGISTICS_DB_DSN is required for the sqlite driver")
	}

	var missing []string
	if d.Host == "" {
		missing = append(missing, "LOGISTICS_DB_HOST")
	}
	if d.User == "" {
		missing = append(missing, "LOGISTICS_DB_USER")
	}
	if d.Name == "" {
		missing = append(missing, "LOGISTICS_DB_NAME")
	}
	if len(missing) > 0 {
		return fmt.Errorf("LOGISTICS_DB_DSN or %s must be set", strings.Join(missing, ", "))
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:   "/" + d.Name,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	d.DSN = u.String()
	return nil
}

// RedisConfig is optional. Without an address the idempotency guard and job locks are off.
type RedisConfig struct {
	URL          string        `split_words:"true"`
	Address      string        `split_words:"true"`
	Password     string        `split_words:"true"`
	DB           int           `split_words:"true" default:"0"`
	PoolSize     int           `split_words:"true" default:"10"`
	DialTimeout  time.Duration `split_words:"true" default:"5s"`
	ReadTimeout  time.Duration `split_words:"true" default:"3s"`
	WriteTimeout time.Duration `split_words:"true" default:"3s"`

	IdempotencyTTL time.Duration `split_words:"true" default:"24h"`
}

func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

// KafkaConfig is optional. Without brokers the outbox relay job is not scheduled.
type KafkaConfig struct {
	Brokers        []string      `split_words:"true"`
	Topic          string        `split_words:"true" default:"logistics.events"`
	ClientID       string        `split_words:"true" default:"logistics"`
	ProduceTimeout time.Duration `split_words:"true" default:"10s"`
}

func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

type JWTConfig struct {
	Secret string        `split_words:"true"`
	Issuer string        `split_words:"true" default:"logistics"`
	TTL    time.Duration `split_words:"true" default:"1h"`
}

// Validate is called by processes that verify bearer tokens.
func (j JWTConfig) Validate() error {
	if j.Secret == "" {
		return errors.New("LOGISTICS_JWT_SECRET is required")
	}
	return nil
}

type TracingConfig struct {
	OTLPEndpoint string        `split_words:"true"`
	Insecure     bool          `split_words:"true" default:"true"`
	SampleRate   float64       `split_words:"true" default:"1"`
	Timeout      time.Duration `split_words:"true" default:"5s"`
}

// JobsConfig holds the cron specs. Specs carry a seconds field.
type JobsConfig struct {
	Enabled             bool          `split_words:"true" default:"true"`
	RestReleaseSchedule string        `split_words:"true" default:"0 * * * * *"`
	RestReleaseLimit    int           `split_words:"true" default:"500"`
	WeeklyResetSchedule string        `split_words:"true" default:"0 0 0 * * MON"`
	OutboxRelaySchedule string        `split_words:"true" default:"*/5 * * * * *"`
	OutboxBatchSize     int           `split_words:"true" default:"100"`
	LockTTL             time.Duration `split_words:"true" default:"1m"`
	RunTimeout          time.Duration `split_words:"true" default:"30s"`
}
