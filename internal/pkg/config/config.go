package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timeouts, booking limits, etc.)
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Log      LogConfig
	JWT      JWTConfig
	Booking  BookingConfig
	Calendar CalendarConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
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
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

// JWT here is verification-only. Tokens are issued by the identity
// provider the dashboard authenticates against; this service just
// checks the shared-secret signature on expert endpoints.
type JWTConfig struct {
	Secret string `envconfig:"JWT_SECRET" required:"true"`
}

type BookingConfig struct {
	// ReservationTTL bounds how long a checkout may hold a slot.
	ReservationTTL time.Duration `envconfig:"BOOKING_RESERVATION_TTL" default:"15m"`
	// SlotLockTTL bounds the per-slot critical section during confirm.
	SlotLockTTL time.Duration `envconfig:"BOOKING_SLOT_LOCK_TTL" default:"10s"`
	// MaxRangeDays caps a single availability query range.
	MaxRangeDays int `envconfig:"BOOKING_MAX_RANGE_DAYS" default:"62"`
	// SweepInterval is how often the expiry worker purges stale holds.
	SweepInterval time.Duration `envconfig:"BOOKING_SWEEP_INTERVAL" default:"1m"`
}

type CalendarConfig struct {
	// BaseURL of the calendar-sync service exposing free/busy lookups.
	// Empty disables external busy lookups (availability degrades to
	// schedule + meetings only, flagged in responses).
	BaseURL  string        `envconfig:"CALENDAR_BASE_URL" default:""`
	Timeout  time.Duration `envconfig:"CALENDAR_TIMEOUT" default:"3s"`
	CacheTTL time.Duration `envconfig:"CALENDAR_CACHE_TTL" default:"60s"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
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
		},
		Redis: RedisConfig{
			Addr: "localhost:16379",
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret: "test-secret",
		},
		Booking: BookingConfig{
			ReservationTTL: 15 * time.Minute,
			SlotLockTTL:    10 * time.Second,
			MaxRangeDays:   62,
			SweepInterval:  time.Minute,
		},
		Calendar: CalendarConfig{
			Timeout:  time.Second,
			CacheTTL: time.Minute,
		},
	}
}
