package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"imbuesvc/internal/imbue"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Security  SecurityConfig  `yaml:"security" envconfig:"SECURITY"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Imbue     ImbueConfig     `yaml:"imbue" envconfig:"IMBUE"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" envconfig:"MAX_HEADER_BYTES" default:"1048576"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS" default:"http://localhost:8080"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS" default:"true"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// LoggingConfig contains logging configuration.
// Format is "json", "text" or "auto" (text on a terminal, json otherwise).
// Output is "console", "file" or "both"; file output rotates.
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format      string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output      string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/imbue.log"`
	MaxSizeMB   int    `yaml:"max_size_mb" envconfig:"MAX_SIZE_MB" default:"16"`
	MaxBackups  int    `yaml:"max_backups" envconfig:"MAX_BACKUPS" default:"8"`
	MaxAgeDays  int    `yaml:"max_age_days" envconfig:"MAX_AGE_DAYS" default:"30"`
	Compress    bool   `yaml:"compress" envconfig:"COMPRESS" default:"true"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT" default:"false"`
}

// ImbueConfig bounds the work a single imputation request may cause
type ImbueConfig struct {
	MaxAxisSpan      int64  `yaml:"max_axis_span" envconfig:"MAX_AXIS_SPAN" default:"1000000"`
	MaxDatasetSize   int    `yaml:"max_dataset_size" envconfig:"MAX_DATASET_SIZE" default:"100000"`
	MaxBodyBytes     int64  `yaml:"max_body_bytes" envconfig:"MAX_BODY_BYTES" default:"10485760"`
	MaxBatchSeries   int    `yaml:"max_batch_series" envconfig:"MAX_BATCH_SERIES" default:"64"`
	BatchConcurrency int    `yaml:"batch_concurrency" envconfig:"BATCH_CONCURRENCY" default:"4"`
	DefaultStrategy  string `yaml:"default_strategy" envconfig:"DEFAULT_STRATEGY" default:"average"`
}

// TelemetryConfig contains OpenTelemetry configuration
type TelemetryConfig struct {
	Environment    string  `yaml:"environment" envconfig:"ENVIRONMENT" default:"development"`
	TraceExporter  string  `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" default:"none"`
	MetricExporter string  `yaml:"metric_exporter" envconfig:"METRIC_EXPORTER" default:"prometheus"`
	SampleRatio    float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" default:"1.0"`
}

// Load loads configuration from a .env file, environment variables and config file.
// Environment variables take precedence over the config file.
func Load() (*Config, error) {
	return LoadFrom(getConfigFilePath())
}

// LoadFrom is Load with an explicit config file path; an empty path skips the file
func LoadFrom(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg, *Default())
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file.
// Keys absent from the file keep their default values.
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// pick returns the env value unless it still holds the default, in which case the file wins
func pick[T comparable](file, env, def T) T {
	if env == def {
		return file
	}
	return env
}

// mergeConfigs merges file config with env config (env takes precedence)
func mergeConfigs(file, env, def Config) Config {
	out := env

	out.Server.Port = pick(file.Server.Port, env.Server.Port, def.Server.Port)
	out.Server.ReadTimeout = pick(file.Server.ReadTimeout, env.Server.ReadTimeout, def.Server.ReadTimeout)
	out.Server.WriteTimeout = pick(file.Server.WriteTimeout, env.Server.WriteTimeout, def.Server.WriteTimeout)
	out.Server.IdleTimeout = pick(file.Server.IdleTimeout, env.Server.IdleTimeout, def.Server.IdleTimeout)
	out.Server.MaxHeaderBytes = pick(file.Server.MaxHeaderBytes, env.Server.MaxHeaderBytes, def.Server.MaxHeaderBytes)
	out.Server.ShutdownTimeout = pick(file.Server.ShutdownTimeout, env.Server.ShutdownTimeout, def.Server.ShutdownTimeout)

	if slices.Equal(env.Security.AllowedOrigins, def.Security.AllowedOrigins) {
		out.Security.AllowedOrigins = file.Security.AllowedOrigins
	}
	out.Security.EnableCORS = pick(file.Security.EnableCORS, env.Security.EnableCORS, def.Security.EnableCORS)
	out.Security.RateLimit.Enabled = pick(file.Security.RateLimit.Enabled, env.Security.RateLimit.Enabled, def.Security.RateLimit.Enabled)
	out.Security.RateLimit.RPS = pick(file.Security.RateLimit.RPS, env.Security.RateLimit.RPS, def.Security.RateLimit.RPS)
	out.Security.RateLimit.Burst = pick(file.Security.RateLimit.Burst, env.Security.RateLimit.Burst, def.Security.RateLimit.Burst)

	out.Logging.Level = pick(file.Logging.Level, env.Logging.Level, def.Logging.Level)
	out.Logging.Format = pick(file.Logging.Format, env.Logging.Format, def.Logging.Format)
	out.Logging.Output = pick(file.Logging.Output, env.Logging.Output, def.Logging.Output)
	out.Logging.FilePath = pick(file.Logging.FilePath, env.Logging.FilePath, def.Logging.FilePath)
	out.Logging.MaxSizeMB = pick(file.Logging.MaxSizeMB, env.Logging.MaxSizeMB, def.Logging.MaxSizeMB)
	out.Logging.MaxBackups = pick(file.Logging.MaxBackups, env.Logging.MaxBackups, def.Logging.MaxBackups)
	out.Logging.MaxAgeDays = pick(file.Logging.MaxAgeDays, env.Logging.MaxAgeDays, def.Logging.MaxAgeDays)
	out.Logging.Compress = pick(file.Logging.Compress, env.Logging.Compress, def.Logging.Compress)
	out.Logging.Development = pick(file.Logging.Development, env.Logging.Development, def.Logging.Development)

	out.Imbue.MaxAxisSpan = pick(file.Imbue.MaxAxisSpan, env.Imbue.MaxAxisSpan, def.Imbue.MaxAxisSpan)
	out.Imbue.MaxDatasetSize = pick(file.Imbue.MaxDatasetSize, env.Imbue.MaxDatasetSize, def.Imbue.MaxDatasetSize)
	out.Imbue.MaxBodyBytes = pick(file.Imbue.MaxBodyBytes, env.Imbue.MaxBodyBytes, def.Imbue.MaxBodyBytes)
	out.Imbue.MaxBatchSeries = pick(file.Imbue.MaxBatchSeries, env.Imbue.MaxBatchSeries, def.Imbue.MaxBatchSeries)
	out.Imbue.BatchConcurrency = pick(file.Imbue.BatchConcurrency, env.Imbue.BatchConcurrency, def.Imbue.BatchConcurrency)
	out.Imbue.DefaultStrategy = pick(file.Imbue.DefaultStrategy, env.Imbue.DefaultStrategy, def.Imbue.DefaultStrategy)

	out.Telemetry.Environment = pick(file.Telemetry.Environment, env.Telemetry.Environment, def.Telemetry.Environment)
	out.Telemetry.TraceExporter = pick(file.Telemetry.TraceExporter, env.Telemetry.TraceExporter, def.Telemetry.TraceExporter)
	out.Telemetry.MetricExporter = pick(file.Telemetry.MetricExporter, env.Telemetry.MetricExporter, def.Telemetry.MetricExporter)
	out.Telemetry.SampleRatio = pick(file.Telemetry.SampleRatio, env.Telemetry.SampleRatio, def.Telemetry.SampleRatio)

	return out
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	if c.Security.EnableCORS && len(c.Security.AllowedOrigins) == 0 {
		return fmt.Errorf("at least one allowed origin must be specified")
	}

	switch strings.ToLower(c.Logging.Format) {
	case LogFormatJSON, LogFormatText, LogFormatAuto:
	default:
		return fmt.Errorf("invalid log format %q: want json, text or auto", c.Logging.Format)
	}

	switch strings.ToLower(c.Logging.Output) {
	case LogOutputConsole, LogOutputFile, LogOutputBoth:
	default:
		return fmt.Errorf("invalid log output %q: want console, file or both", c.Logging.Output)
	}

	if c.Logging.Output != LogOutputConsole && c.Logging.FilePath == "" {
		return fmt.Errorf("log file path is required for output %q", c.Logging.Output)
	}

	if c.Imbue.MaxAxisSpan <= 0 {
		return fmt.Errorf("imbue max axis span must be positive")
	}

	if c.Imbue.MaxDatasetSize <= 0 {
		return fmt.Errorf("imbue max dataset size must be positive")
	}

	if c.Imbue.MaxBodyBytes <= 0 {
		return fmt.Errorf("imbue max body bytes must be positive")
	}

	if c.Imbue.BatchConcurrency <= 0 {
		return fmt.Errorf("imbue batch concurrency must be positive")
	}

	if c.Imbue.MaxBatchSeries <= 0 {
		return fmt.Errorf("imbue max batch series must be positive")
	}

	if _, err := imbue.ParseStrategy(c.Imbue.DefaultStrategy); err != nil {
		return fmt.Errorf("invalid default strategy: %w", err)
	}

	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("telemetry sample ratio must be within [0, 1]")
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if path := os.Getenv(EnvPrefix + "_CONFIG_FILE"); path != "" {
		return path
	}

	// Check for config file in common locations
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
		"../configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			MaxHeaderBytes:  1 << 20, // 1MB
			ShutdownTimeout: 30 * time.Second,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"http://localhost:8080"},
			EnableCORS:     true,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     100,
				Burst:   50,
			},
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     LogFormatJSON,
			Output:     LogOutputConsole,
			FilePath:   "logs/imbue.log",
			MaxSizeMB:  16,
			MaxBackups: 8,
			MaxAgeDays: 30,
			Compress:   true,
		},
		Imbue: ImbueConfig{
			MaxAxisSpan:      DefaultMaxAxisSpan,
			MaxDatasetSize:   DefaultMaxDatasetSize,
			MaxBodyBytes:     DefaultMaxBodyBytes,
			MaxBatchSeries:   DefaultMaxBatchSeries,
			BatchConcurrency: DefaultBatchConcurrency,
			DefaultStrategy:  "average",
		},
		Telemetry: TelemetryConfig{
			Environment:    "development",
			TraceExporter:  "none",
			MetricExporter: "prometheus",
			SampleRatio:    1.0,
		},
	}
}

// Strategy returns the configured default strategy, falling back to average
func (c ImbueConfig) Strategy() imbue.Strategy {
	s, err := imbue.ParseStrategy(c.DefaultStrategy)
	if err != nil {
		return imbue.StrategyAverage
	}
	return s
}
