package config

import (
	"fmt"
	"sync"

	"venuebook/shared/constant"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Config is decoded by envconfig, which falls back to the bare tag name when the prefixed key is unset.
// Leaf tags therefore never reuse names a shell exports, such as PATH or USER.
type Config struct {
	Server struct {
		Env      string `envconfig:"ENVIRONMENT" default:"development"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
		Port     string `envconfig:"PORT" default:"8080"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME" default:"venuebook"`
		Timezone string `envconfig:"TIMEZONE"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
			FallbackRPS   int  `envconfig:"FALLBACK_RPS" default:"50"`
		} `envconfig:"RATE_LIMITER"`
		Swagger struct {
			Enable bool   `envconfig:"ENABLE"`
			Host   string `envconfig:"HOST"`
			Path   string `envconfig:"ROUTE" default:"/swagger"`
		} `envconfig:"SWAGGER"`
	} `envconfig:"APP"`

	Availability struct {
		WeekdayCurfew       string `envconfig:"WEEKDAY_CURFEW" default:"19:00:00"`
		WeekendCurfew       string `envconfig:"WEEKEND_CURFEW" default:"16:00:00"`
		CleanupMinutes      int    `envconfig:"CLEANUP_MINUTES"`
		OvertimeUnitMinutes int    `envconfig:"OVERTIME_UNIT_MINUTES"`
		OvertimeBatchSize   int    `envconfig:"OVERTIME_BATCH_SIZE"`
		PriceGridMinutes    int    `envconfig:"PRICE_GRID_MINUTES"`
		QueryTimeoutSeconds int    `envconfig:"QUERY_TIMEOUT_SECONDS"`
	} `envconfig:"AVAILABILITY"`

	Booking struct {
		PaymentTimeoutMinutes int    `envconfig:"PAYMENT_TIMEOUT_MINUTES" default:"15"`
		SweepIntervalSeconds  int    `envconfig:"SWEEP_INTERVAL_SECONDS"`
		EventTopic            string `envconfig:"EVENT_TOPIC" default:"booking-events"`
		EventBusName          string `envconfig:"EVENT_BUS_NAME"`
	} `envconfig:"BOOKING"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
				PoolSize int    `envconfig:"POOL_SIZE"`
			} `envconfig:"PRIMARY"`
			DialTimeoutSeconds int `envconfig:"DIAL_TIMEOUT_SECONDS"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL" default:"300"`
	} `envconfig:"CACHE"`

	DB struct {
		Postgres struct {
			MaxRetry       int          `envconfig:"MAX_RETRY" default:"3"`
			RetryWaitTime  int          `envconfig:"RETRY_WAIT_TIME" default:"2"`
			MaxOpenConns   int          `envconfig:"MAX_OPEN_CONNS" default:"10"`
			MaxIdleConns   int          `envconfig:"MAX_IDLE_CONNS" default:"10"`
			MigrationTable string       `envconfig:"MIGRATION_TABLE" default:"schema_migrations"`
			AutoMigrate    bool         `envconfig:"AUTO_MIGRATE"`
			Prefix         string       `envconfig:"PREFIX"`
			Read           PostgresNode `envconfig:"READ"`
			Write          PostgresNode `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Kafka struct {
		Brokers       []string `envconfig:"BROKERS"`
		ConsumerGroup string   `envconfig:"CONSUMER_GROUP"`
		SASL          struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
	} `envconfig:"KAFKA"`

	Metrics struct {
		Enable bool   `envconfig:"ENABLE"`
		Path   string `envconfig:"ROUTE" default:"/metrics"`
	} `envconfig:"METRICS"`

	External struct {
		Otel struct {
			Endpoint    string  `envconfig:"ENDPOINT"`
			SampleRatio float64 `envconfig:"SAMPLE_RATIO" default:"1"`
		} `envconfig:"OTEL"`
	}
}

// PostgresNode is one side of the read/write split.
type PostgresNode struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Username string `envconfig:"USERNAME"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	Timezone string `envconfig:"TIMEZONE"`
	SSLMode  string `envconfig:"SSL_MODE"`
}

var (
	conf    Config
	once    sync.Once
	loadErr error
)

// Load reads an optional dotenv file into the environment, then decodes the environment into a Config.
func Load(dotenv string) (Config, error) {
	var cfg Config

	if err := godotenv.Load(dotenv); err != nil {
		log.Warn().Err(err).Str("file", dotenv).Msg("Could not load env file, continuing with existing environment variables")
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, fmt.Errorf("failed to process environment variables: %w", err)
	}

	return cfg, nil
}

// Get returns the process-wide configuration, loading .env on first use.
func Get() *Config {
	once.Do(func() {
		conf, loadErr = Load(".env")
		if loadErr != nil {
			log.Fatal().Err(loadErr).Msg("Failed to load configuration")
		}

		log.Info().Str("env", conf.Server.Env).Str("app", conf.App.Name).Msg("Service configuration initialized successfully")
	})

	return &conf
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == constant.ServerEnvDevelopment
}
