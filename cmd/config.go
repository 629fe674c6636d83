package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"starmap/internal/adapters/out/postgres"
	"starmap/internal/pkg/errs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Artifact store drivers.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	HTTPPort string     `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`

	ShopifyWebhookSecret string `env:"SHOPIFY_WEBHOOK_SECRET"`

	MapboxAccessToken string `env:"MAPBOX_ACCESS_TOKEN"`
	MapboxBaseURL     string `env:"MAPBOX_BASE_URL" envDefault:"https://api.mapbox.com"`

	PyStarmapURL     string `env:"PY_STARMAP_URL" envDefault:"https://sterrenlucht-automation.vercel.app/api/starmap"`
	StarmapScriptDir string `env:"STARMAP_SCRIPT_DIR"`
	PythonPath       string `env:"PYTHON_PATH" envDefault:"python3"`
	ChromePath       string `env:"CHROME_PATH"`

	HTTPClientTimeout time.Duration `env:"HTTP_CLIENT_TIMEOUT" envDefault:"60s"`

	StoreDriver       string `env:"STORE_DRIVER" envDefault:"postgres"`
	DBHost            string `env:"DB_HOST"`
	DBPort            string `env:"DB_PORT" envDefault:"5432"`
	DBUser            string `env:"DB_USER"`
	DBPassword        string `env:"DB_PASSWORD"`
	DBName            string `env:"DB_NAME"`
	DBSslMode         string `env:"DB_SSLMODE" envDefault:"disable"`
	ArtifactPublicURL string `env:"ARTIFACT_PUBLIC_URL" envDefault:"http://localhost:8080/artifacts"`

	LockTTL           time.Duration `env:"LOCK_TTL" envDefault:"15m"`
	LockSweepSchedule string        `env:"LOCK_SWEEP_SCHEDULE" envDefault:"0 * * * * *"`

	SMTPHost        string `env:"SMTP_HOST"`
	SMTPPort        int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername    string `env:"SMTP_USERNAME"`
	SMTPPassword    string `env:"SMTP_PASSWORD"`
	NotifyEmailTo   string `env:"NOTIFY_EMAIL_TO"`
	NotifyEmailFrom string `env:"NOTIFY_EMAIL_FROM"`

	AMQPURL      string `env:"AMQP_URL"`
	AMQPExchange string `env:"AMQP_EXCHANGE" envDefault:"starmap"`

	OTelEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// LoadConfig reads the given .env files, when they exist, into the process
// environment and parses the configuration from it. Variables already set
// in the environment win over the files.
func LoadConfig(envFiles ...string) (Config, error) {
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Validate checks the settings the server cannot start without.
func (c Config) Validate() error {
	var err error
	if c.ShopifyWebhookSecret == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("SHOPIFY_WEBHOOK_SECRET"))
	}
	if c.MapboxAccessToken == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("MAPBOX_ACCESS_TOKEN"))
	}
	switch c.StoreDriver {
	case StoreDriverPostgres:
		err = errors.Join(err, c.Database().Validate())
	case StoreDriverMemory:
	default:
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("STORE_DRIVER",
			fmt.Errorf("%q is neither %q nor %q", c.StoreDriver, StoreDriverPostgres, StoreDriverMemory)))
	}
	if c.LockTTL <= 0 {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("LOCK_TTL", fmt.Errorf("%s is not positive", c.LockTTL)))
	}
	return err
}

// Database returns the connection settings of the artifact store.
func (c Config) Database() postgres.ConnectionSettings {
	return postgres.ConnectionSettings{
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		Name:     c.DBName,
		SSLMode:  c.DBSslMode,
	}
}

// MailEnabled reports whether operator emails are configured.
func (c Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.NotifyEmailTo != "" && c.NotifyEmailFrom != ""
}
