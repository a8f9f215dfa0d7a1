package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// PostgresNode is one side of the read/write split.
type PostgresNode struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"     default:"5432"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	Timezone string `envconfig:"TIMEZONE" default:"UTC"`
	SSLMode  string `envconfig:"SSL_MODE" default:"disable"`
}

type Server struct {
	Env      string `envconfig:"ENV"       default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Port     string `envconfig:"PORT"      default:"8080"`
	Host     string `envconfig:"HOST"`
	Shutdown struct {
		CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS" default:"5"`
		GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"   default:"10"`
	} `envconfig:"SHUTDOWN"`
}

type App struct {
	Name     string `envconfig:"APP_NAME" default:"hotel"`
	Timezone string `envconfig:"TIMEZONE" default:"Asia/Colombo"`
	CORS     struct {
		AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
		AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
		AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
		AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
		Enable           bool     `envconfig:"ENABLE"`
		MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
	} `envconfig:"CORS"`
	RateLimiter struct {
		Enable            bool `envconfig:"ENABLE"`
		MaxRequests       int  `envconfig:"MAX_REQUESTS"        default:"100"`
		StrictMaxRequests int  `envconfig:"STRICT_MAX_REQUESTS" default:"10"`
		WindowSeconds     int  `envconfig:"WINDOW_SECONDS"      default:"60"`
	} `envconfig:"RATE_LIMITER"`
	// APIKey authenticates machine callers through X-API-Key. Empty disables the header.
	APIKey string `envconfig:"API_KEY"`
}

// Hotel holds the property details printed on guest notifications and used for pricing.
type Hotel struct {
	Name           string  `envconfig:"NAME"            default:"Dumidu Hotel"`
	Phone          string  `envconfig:"PHONE"           default:"+94 11 234 5678"`
	Email          string  `envconfig:"EMAIL"           default:"info@dumiduhotel.lk"`
	Address        string  `envconfig:"ADDRESS"`
	EmergencyPhone string  `envconfig:"EMERGENCY_PHONE" default:"+94 11 234 5678"`
	EmergencyEmail string  `envconfig:"EMERGENCY_EMAIL" default:"emergency@dumiduhotel.lk"`
	Currency       string  `envconfig:"CURRENCY"        default:"LKR"`
	TaxRate        float64 `envconfig:"TAX_RATE"        default:"0.15"`
	CheckInTime    string  `envconfig:"CHECK_IN_TIME"   default:"14:00"`
	CheckOutTime   string  `envconfig:"CHECK_OUT_TIME"  default:"11:00"`
}

type External struct {
	Otel struct {
		Endpoint    string  `envconfig:"ENDPOINT"`
		SampleRatio float64 `envconfig:"SAMPLE_RATIO" default:"1"`
	} `envconfig:"OTEL"`

	S3 struct {
		APIEndpoint     string `envconfig:"API_ENDPOINT"`
		AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
		SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
		BucketName      string `envconfig:"BUCKET_NAME"`
		PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
	} `envconfig:"S3"`

	PayHere struct {
		MerchantID     string `envconfig:"MERCHANT_ID"`
		MerchantSecret string `envconfig:"MERCHANT_SECRET"`
		Sandbox        bool   `envconfig:"SANDBOX"         default:"true"`
		HashAlgorithm  string `envconfig:"HASH_ALGORITHM"  default:"md5"`
		ReturnURL      string `envconfig:"RETURN_URL"`
		CancelURL      string `envconfig:"CANCEL_URL"`
		NotifyURL      string `envconfig:"NOTIFY_URL"`
	} `envconfig:"PAYHERE"`

	SMS struct {
		Enable         bool   `envconfig:"ENABLE"`
		Endpoint       string `envconfig:"ENDPOINT"`
		APIKey         string `envconfig:"API_KEY"`
		SenderID       string `envconfig:"SENDER_ID"`
		TimeoutSeconds int    `envconfig:"TIMEOUT_SECONDS" default:"10"`
		RetryCount     int    `envconfig:"RETRY_COUNT"     default:"2"`
	} `envconfig:"SMS"`

	Mail struct {
		Enable         bool   `envconfig:"ENABLE"`
		Host           string `envconfig:"HOST"`
		Port           string `envconfig:"PORT"            default:"587"`
		Username       string `envconfig:"USERNAME"`
		Password       string `envconfig:"PASSWORD"`
		From           string `envconfig:"FROM"`
		TimeoutSeconds int    `envconfig:"TIMEOUT_SECONDS" default:"10"`
	} `envconfig:"MAIL"`

	Kafka struct {
		Enable  bool     `envconfig:"ENABLE"`
		Brokers []string `envconfig:"BROKERS"`
		SASL    struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
		Topics struct {
			Emergency string `envconfig:"EMERGENCY" default:"hotel.emergency"`
			Payment   string `envconfig:"PAYMENT"   default:"hotel.payment"`
		} `envconfig:"TOPICS"`
	} `envconfig:"KAFKA"`
}

type Config struct {
	Server Server `envconfig:"SERVER"`
	App    App    `envconfig:"APP"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"     default:"6379"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		// TTL is in seconds.
		TTL int `envconfig:"TTL" default:"300"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret     string `envconfig:"ACCESS_SECRET"`
		RefreshSecret    string `envconfig:"REFRESH_SECRET"`
		AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN"  default:"15"`
		RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN" default:"10080"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry       int          `envconfig:"MAX_RETRY"       default:"5"`
			RetryWaitTime  int          `envconfig:"RETRY_WAIT_TIME" default:"2"`
			MigrationTable string       `envconfig:"MIGRATION_TABLE" default:"schema_migrations"`
			AutoMigrate    bool         `envconfig:"AUTO_MIGRATE"`
			Prefix         string       `envconfig:"PREFIX"`
			Read           PostgresNode `envconfig:"READ"`
			Write          PostgresNode `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Hotel    Hotel    `envconfig:"HOTEL"`
	External External `envconfig:"EXTERNAL"`
}

var (
	conf    Config
	once    sync.Once
	loadErr error
)

// Load reads the process environment, after merging an optional .env file, into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Debug().Err(err).Msg("No .env file loaded, using the process environment")
	}

	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate rejects settings the service cannot run with.
func (c *Config) validate() error {
	var errs []error

	if c.JWT.AccessSecret == "" || c.JWT.RefreshSecret == "" {
		errs = append(errs, errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET are required"))
	}

	if c.JWT.AccessSecret != "" && c.JWT.AccessSecret == c.JWT.RefreshSecret {
		errs = append(errs, errors.New("access and refresh tokens must use different secrets"))
	}

	if c.Hotel.TaxRate < 0 || c.Hotel.TaxRate >= 1 {
		errs = append(errs, fmt.Errorf("HOTEL_TAX_RATE %v must be in [0, 1)", c.Hotel.TaxRate))
	}

	if ratio := c.External.Otel.SampleRatio; ratio < 0 || ratio > 1 {
		errs = append(errs, fmt.Errorf("EXTERNAL_OTEL_SAMPLE_RATIO %v must be in [0, 1]", ratio))
	}

	if c.External.Kafka.Enable && len(c.External.Kafka.Brokers) == 0 {
		errs = append(errs, errors.New("EXTERNAL_KAFKA_BROKERS is required when kafka is enabled"))
	}

	return errors.Join(errs...)
}

// Get returns the process wide configuration, loading it on first use. The
// service cannot start without it, so a load error is fatal.
func Get() *Config {
	once.Do(func() {
		var cfg *Config

		if cfg, loadErr = Load(); loadErr == nil {
			conf = *cfg

			log.Info().Str("env", conf.Server.Env).Msg("Service configuration loaded")
		}
	})

	if loadErr != nil {
		log.Fatal().Err(loadErr).Msg("Failed to load configuration")
	}

	return &conf
}
