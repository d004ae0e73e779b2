package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

var singleConfig *Config = nil

type Config struct {
	Database *dbConfig
	Service  *svcConfig
	Worker   *workerConfig
}

type dbConfig struct {
	Type     string `envconfig:"DB_TYPE" default:"pgsql"`
	Hostname string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"voicemed"`
	User     string `envconfig:"DB_USER" default:"admin"`
	Password string `envconfig:"DB_PASS" default:"adminpass"`
}

type svcConfig struct {
	Address         string `envconfig:"REPORT_SERVICE_ADDRESS" default:":8080"`
	MetricsAddress  string `envconfig:"REPORT_SERVICE_METRICS_ADDRESS" default:":8090"`
	BaseUrl         string `envconfig:"REPORT_SERVICE_BASE_URL" default:"http://localhost:8080"`
	LogLevel        string `envconfig:"REPORT_SERVICE_LOG_LEVEL" default:"info"`
	ReportsFolder   string `envconfig:"REPORT_SERVICE_REPORTS_FOLDER" default:"reports"`
	MigrationFolder string `envconfig:"REPORT_SERVICE_MIGRATIONS_FOLDER" default:""`
	SeedOnStartup   bool   `envconfig:"REPORT_SERVICE_SEED" default:"false"`
}

type workerConfig struct {
	PollInterval      time.Duration `envconfig:"REPORT_WORKER_POLL_INTERVAL" default:"5s"`
	RetentionInterval time.Duration `envconfig:"REPORT_WORKER_RETENTION_INTERVAL" default:"30s"`
	RetentionAge      time.Duration `envconfig:"REPORT_WORKER_RETENTION_AGE" default:"24h"`
	RunTimeout        time.Duration `envconfig:"REPORT_WORKER_RUN_TIMEOUT" default:"10m"`
	ProcessingDelay   time.Duration `envconfig:"REPORT_WORKER_PROCESSING_DELAY" default:"5s"`
	PoolSize          int           `envconfig:"REPORT_WORKER_POOL_SIZE" default:"4"`
	QueueDepth        int           `envconfig:"REPORT_WORKER_QUEUE_DEPTH" default:"64"`
}

func New() (*Config, error) {
	if singleConfig == nil {
		singleConfig = new(Config)
		if err := envconfig.Process("", singleConfig); err != nil {
			return nil, err
		}
	}
	return singleConfig, nil
}

// NewDefault returns a config populated with defaults only, ignoring the
// environment. Used by tests.
func NewDefault() *Config {
	return &Config{
		Database: &dbConfig{Type: "sqlite", Name: ":memory:"},
		Service: &svcConfig{
			Address:        ":8080",
			MetricsAddress: ":8090",
			BaseUrl:        "http://localhost:8080",
			LogLevel:       "info",
			ReportsFolder:  "reports",
		},
		Worker: &workerConfig{
			PollInterval:      5 * time.Second,
			RetentionInterval: 30 * time.Second,
			RetentionAge:      24 * time.Hour,
			RunTimeout:        10 * time.Minute,
			ProcessingDelay:   0,
			PoolSize:          4,
			QueueDepth:        64,
		},
	}
}
