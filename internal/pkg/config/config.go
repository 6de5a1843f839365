package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server     ServerConfig
	DB         DBConfig
	Storage    StorageConfig
	CORS       CORSConfig
	Log        LogConfig
	JWT        JWTConfig
	Scheduling SchedulingConfig
	Sweep      SweepConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type StorageConfig struct {
	Driver string `envconfig:"STORAGE_DRIVER" default:"postgres"`
	// memory driver only: "propertyID|ownerID|Time/Zone" entries
	SeedProperties []string `envconfig:"STORAGE_SEED_PROPERTIES"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

// Tokens are issued by the external auth service; this service only verifies them.
type JWTConfig struct {
	Secret string `envconfig:"JWT_SECRET" required:"true"`
}

type SchedulingConfig struct {
	HoldDuration        time.Duration `envconfig:"SCHEDULING_HOLD_DURATION" default:"15m"`
	RequireConfirmation bool          `envconfig:"SCHEDULING_REQUIRE_CONFIRMATION" default:"false"`
	MaxHorizonDays      int           `envconfig:"SCHEDULING_MAX_HORIZON_DAYS" default:"180"`
	// Used when a property row carries no time zone
	DefaultTimeZone string `envconfig:"SCHEDULING_DEFAULT_TIMEZONE" default:"UTC"`
}

type SweepConfig struct {
	Enabled             bool          `envconfig:"SWEEP_ENABLED" default:"true"`
	Schedule            string        `envconfig:"SWEEP_SCHEDULE" default:"0 3 * * *"`
	HoldReleaseSchedule string        `envconfig:"SWEEP_HOLD_RELEASE_SCHEDULE" default:"@every 1m"`
	Secret              string        `envconfig:"SWEEP_SECRET"`
	ConfirmedRetention  time.Duration `envconfig:"SWEEP_CONFIRMED_RETENTION" default:"0s"`
	TriggerRatePerHour  int           `envconfig:"SWEEP_TRIGGER_RATE_PER_HOUR" default:"12"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c SchedulingConfig) MaxHorizon() time.Duration {
	return time.Duration(c.MaxHorizonDays) * 24 * time.Hour
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Storage.Driver {
	case StorageDriverMemory:
	case StorageDriverPostgres:
		if c.DB.User == "" || c.DB.DBName == "" {
			return fmt.Errorf("DB_USER and DB_NAME are required for the %s storage driver", c.Storage.Driver)
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}
	if c.Scheduling.HoldDuration <= 0 {
		return fmt.Errorf("SCHEDULING_HOLD_DURATION must be positive")
	}
	if c.Scheduling.MaxHorizonDays <= 0 {
		return fmt.Errorf("SCHEDULING_MAX_HORIZON_DAYS must be positive")
	}
	if c.Sweep.ConfirmedRetention < 0 {
		return fmt.Errorf("SWEEP_CONFIRMED_RETENTION cannot be negative")
	}
	return nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 10,
		},
		Storage: StorageConfig{
			Driver: StorageDriverMemory,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret: "test-secret",
		},
		Scheduling: SchedulingConfig{
			HoldDuration:        15 * time.Minute,
			RequireConfirmation: true,
			MaxHorizonDays:      180,
			DefaultTimeZone:     "UTC",
		},
		Sweep: SweepConfig{
			Enabled:             false,
			Schedule:            "0 3 * * *",
			HoldReleaseSchedule: "@every 1m",
			Secret:              "test-cron-secret",
			TriggerRatePerHour:  600,
		},
	}
}
