package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	S3        S3Config
	OCR       OCRConfig
	Extractor ExtractorConfig
	Queue     QueueConfig
	Output    OutputConfig
	Notify    NotifyConfig
	CORS      CORSConfig
	Log       LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings for scanned image storage and batch archives.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	ArchiveBucket string `mapstructure:"archive_bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
}

// OCRConfig holds text recognition settings.
type OCRConfig struct {
	Provider string `mapstructure:"provider"`
	Region   string `mapstructure:"region"`
	Endpoint string `mapstructure:"endpoint"`
}

// ExtractorProviderConfig holds settings for a single LLM extractor provider.
type ExtractorProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	MaxRetries   int    `mapstructure:"max_retries"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// ExtractorConfig holds LLM field extractor settings with fallback support.
type ExtractorConfig struct {
	Primary   ExtractorProviderConfig `mapstructure:"primary"`
	Secondary ExtractorProviderConfig `mapstructure:"secondary"`
}

// SecondaryConfig returns the secondary extractor provider config, or nil if not configured.
func (e *ExtractorConfig) SecondaryConfig() *ExtractorProviderConfig {
	if e.Secondary.Provider != "" {
		return &e.Secondary
	}
	return nil
}

// QueueConfig holds stage worker settings.
type QueueConfig struct {
	PollIntervalSecs int `mapstructure:"poll_interval_secs"`
	BatchSize        int `mapstructure:"batch_size"`
	Concurrency      int `mapstructure:"concurrency"`
}

// OutputConfig holds output sink settings.
type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

// NotifyConfig holds failure notification settings.
type NotifyConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	ToAddress   string `mapstructure:"to_address"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the DEEDFLOW_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DEEDFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "deedflow")
	v.SetDefault("db.password", "deedflow_secret")
	v.SetDefault("db.name", "deedflow_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "us-west-2")
	v.SetDefault("s3.bucket", "deedflow-scans")
	v.SetDefault("s3.archive_bucket", "deedflow-outputs")
	v.SetDefault("s3.endpoint", "")

	// OCR defaults
	v.SetDefault("ocr.provider", "textract")
	v.SetDefault("ocr.region", "us-west-2")
	v.SetDefault("ocr.endpoint", "")

	// Extractor defaults
	v.SetDefault("extractor.primary.provider", "claude")
	v.SetDefault("extractor.primary.api_key", "")
	v.SetDefault("extractor.primary.default_model", "claude-sonnet-4-20250514")
	v.SetDefault("extractor.primary.max_retries", 2)
	v.SetDefault("extractor.primary.timeout_secs", 120)
	v.SetDefault("extractor.secondary.provider", "")
	v.SetDefault("extractor.secondary.api_key", "")
	v.SetDefault("extractor.secondary.default_model", "")
	v.SetDefault("extractor.secondary.max_retries", 2)
	v.SetDefault("extractor.secondary.timeout_secs", 120)

	// Queue defaults
	v.SetDefault("queue.poll_interval_secs", 10)
	v.SetDefault("queue.batch_size", 20)
	v.SetDefault("queue.concurrency", 5)

	// Output defaults
	v.SetDefault("output.dir", "Outputs")

	// Notify defaults
	v.SetDefault("notify.provider", "noop")
	v.SetDefault("notify.region", "us-west-2")
	v.SetDefault("notify.from_address", "noreply@deedflow.local")
	v.SetDefault("notify.to_address", "")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                       "DEEDFLOW_SERVER_PORT",
		"server.read_timeout":               "DEEDFLOW_SERVER_READ_TIMEOUT",
		"server.write_timeout":              "DEEDFLOW_SERVER_WRITE_TIMEOUT",
		"server.environment":                "DEEDFLOW_SERVER_ENVIRONMENT",
		"db.host":                           "DEEDFLOW_DB_HOST",
		"db.port":                           "DEEDFLOW_DB_PORT",
		"db.user":                           "DEEDFLOW_DB_USER",
		"db.password":                       "DEEDFLOW_DB_PASSWORD",
		"db.name":                           "DEEDFLOW_DB_NAME",
		"db.sslmode":                        "DEEDFLOW_DB_SSLMODE",
		"db.max_open":                       "DEEDFLOW_DB_MAX_OPEN",
		"db.max_idle":                       "DEEDFLOW_DB_MAX_IDLE",
		"s3.region":                         "DEEDFLOW_S3_REGION",
		"s3.bucket":                         "DEEDFLOW_S3_BUCKET",
		"s3.archive_bucket":                 "DEEDFLOW_S3_ARCHIVE_BUCKET",
		"s3.endpoint":                       "DEEDFLOW_S3_ENDPOINT",
		"s3.access_key":                     "DEEDFLOW_S3_ACCESS_KEY",
		"s3.secret_key":                     "DEEDFLOW_S3_SECRET_KEY",
		"ocr.provider":                      "DEEDFLOW_OCR_PROVIDER",
		"ocr.region":                        "DEEDFLOW_OCR_REGION",
		"ocr.endpoint":                      "DEEDFLOW_OCR_ENDPOINT",
		"extractor.primary.provider":        "DEEDFLOW_EXTRACTOR_PRIMARY_PROVIDER",
		"extractor.primary.api_key":         "DEEDFLOW_EXTRACTOR_PRIMARY_API_KEY",
		"extractor.primary.default_model":   "DEEDFLOW_EXTRACTOR_PRIMARY_DEFAULT_MODEL",
		"extractor.primary.max_retries":     "DEEDFLOW_EXTRACTOR_PRIMARY_MAX_RETRIES",
		"extractor.primary.timeout_secs":    "DEEDFLOW_EXTRACTOR_PRIMARY_TIMEOUT_SECS",
		"extractor.secondary.provider":      "DEEDFLOW_EXTRACTOR_SECONDARY_PROVIDER",
		"extractor.secondary.api_key":       "DEEDFLOW_EXTRACTOR_SECONDARY_API_KEY",
		"extractor.secondary.default_model": "DEEDFLOW_EXTRACTOR_SECONDARY_DEFAULT_MODEL",
		"extractor.secondary.max_retries":   "DEEDFLOW_EXTRACTOR_SECONDARY_MAX_RETRIES",
		"extractor.secondary.timeout_secs":  "DEEDFLOW_EXTRACTOR_SECONDARY_TIMEOUT_SECS",
		"queue.poll_interval_secs":          "DEEDFLOW_QUEUE_POLL_INTERVAL_SECS",
		"queue.batch_size":                  "DEEDFLOW_QUEUE_BATCH_SIZE",
		"queue.concurrency":                 "DEEDFLOW_QUEUE_CONCURRENCY",
		"output.dir":                        "DEEDFLOW_OUTPUT_DIR",
		"notify.provider":                   "DEEDFLOW_NOTIFY_PROVIDER",
		"notify.region":                     "DEEDFLOW_NOTIFY_REGION",
		"notify.from_address":               "DEEDFLOW_NOTIFY_FROM_ADDRESS",
		"notify.to_address":                 "DEEDFLOW_NOTIFY_TO_ADDRESS",
		"cors.allowed_origins":              "DEEDFLOW_CORS_ALLOWED_ORIGINS",
		"log.level":                         "DEEDFLOW_LOG_LEVEL",
		"log.format":                        "DEEDFLOW_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if DEEDFLOW_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("DEEDFLOW_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		ArchiveBucket: v.GetString("s3.archive_bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
	}
	cfg.OCR = OCRConfig{
		Provider: v.GetString("ocr.provider"),
		Region:   v.GetString("ocr.region"),
		Endpoint: v.GetString("ocr.endpoint"),
	}
	cfg.Extractor = ExtractorConfig{
		Primary: ExtractorProviderConfig{
			Provider:     v.GetString("extractor.primary.provider"),
			APIKey:       v.GetString("extractor.primary.api_key"),
			DefaultModel: v.GetString("extractor.primary.default_model"),
			MaxRetries:   v.GetInt("extractor.primary.max_retries"),
			TimeoutSecs:  v.GetInt("extractor.primary.timeout_secs"),
		},
		Secondary: ExtractorProviderConfig{
			Provider:     v.GetString("extractor.secondary.provider"),
			APIKey:       v.GetString("extractor.secondary.api_key"),
			DefaultModel: v.GetString("extractor.secondary.default_model"),
			MaxRetries:   v.GetInt("extractor.secondary.max_retries"),
			TimeoutSecs:  v.GetInt("extractor.secondary.timeout_secs"),
		},
	}
	cfg.Queue = QueueConfig{
		PollIntervalSecs: v.GetInt("queue.poll_interval_secs"),
		BatchSize:        v.GetInt("queue.batch_size"),
		Concurrency:      v.GetInt("queue.concurrency"),
	}
	cfg.Output = OutputConfig{
		Dir: v.GetString("output.dir"),
	}
	cfg.Notify = NotifyConfig{
		Provider:    v.GetString("notify.provider"),
		Region:      v.GetString("notify.region"),
		FromAddress: v.GetString("notify.from_address"),
		ToAddress:   v.GetString("notify.to_address"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	return cfg, nil
}
