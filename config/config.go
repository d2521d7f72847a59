package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const VERSION = "1.4"

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Security    SecurityConfig
	Practice    PracticeConfig
	Tracing     TracingConfig
	Environment string
	LogLevel    string
	Version     string
}

type ServerConfig struct {
	Port            int
	Host            string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	// Driver is either "sqlite" or "postgres"
	Driver string
	// Path is the SQLite file location, ignored by postgres
	Path string

	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string

	MaxOpenConns int
	// Traced wraps the driver with OpenCensus instrumentation
	Traced bool
	// AcquireTimeout bounds how long a request waits for a pooled connection, 0 waits forever
	AcquireTimeout time.Duration
}

type SecurityConfig struct {
	// SecretKey signs session cookies
	SecretKey string
	// BcryptCost is the work factor for new password hashes
	BcryptCost int

	SessionTTL        time.Duration
	SessionCookieName string
	CookieSecure      bool

	LoginMaxAttempts int
	LoginWindow      time.Duration
}

type PracticeConfig struct {
	RecentSessionsLimit int
}

type TracingConfig struct {
	Enabled             bool
	ServiceName         string
	SamplingProbability float64

	// TraceExporter is one of "jaeger", "zipkin", "stackdriver", "datadog", "xray" or "none"
	TraceExporter string

	JaegerEndpoint       string
	ZipkinEndpoint       string
	StackdriverProjectID string
	DatadogAgentAddress  string
	XRayRegion           string

	// MetricsExporter is "prometheus", "stackdriver", "datadog", "none" or a comma-separated list
	MetricsExporter string
	// PrometheusPath is mounted on the main server when prometheus is enabled
	PrometheusPath string
}

// LoadOptions contains options for loading configuration
type LoadOptions struct {
	EnvFile string // Optional environment file to load (e.g., ".env", ".env.test")
}

// Load loads the configuration with default options
func Load() (*Config, error) {
	// Try to load .env file but don't require it
	return LoadWithOptions(LoadOptions{EnvFile: ".env"})
}

// LoadWithOptions loads the configuration with the specified options
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVER_PORT", 5000)
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", "60s")

	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_PATH", "mmj.db")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "mmjournal")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_ACQUIRE_TIMEOUT", "0s")

	v.SetDefault("BCRYPT_COST", 14)
	v.SetDefault("SESSION_TTL", "168h")
	v.SetDefault("SESSION_COOKIE_NAME", "mmj_session")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("LOGIN_MAX_ATTEMPTS", 5)
	v.SetDefault("LOGIN_WINDOW", "5m")

	v.SetDefault("RECENT_SESSIONS_LIMIT", 10)

	// Tracing defaults
	v.SetDefault("TRACING_ENABLED", false)
	v.SetDefault("TRACING_SERVICE_NAME", "mmjournal")
	v.SetDefault("TRACING_SAMPLING_PROBABILITY", 0.1)
	v.SetDefault("TRACING_TRACE_EXPORTER", "none")
	v.SetDefault("TRACING_JAEGER_ENDPOINT", "http://localhost:14268/api/traces")
	v.SetDefault("TRACING_ZIPKIN_ENDPOINT", "http://localhost:9411/api/v2/spans")
	v.SetDefault("TRACING_STACKDRIVER_PROJECT_ID", "")
	v.SetDefault("TRACING_DATADOG_AGENT_ADDRESS", "localhost:8126")
	v.SetDefault("TRACING_XRAY_REGION", "us-west-2")
	v.SetDefault("TRACING_METRICS_EXPORTER", "none")
	v.SetDefault("TRACING_PROMETHEUS_PATH", "/metrics")

	v.SetDefault("ENVIRONMENT", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("VERSION", VERSION)

	// Load environment file if specified
	if opts.EnvFile != "" {
		v.SetConfigName(opts.EnvFile)
		v.SetConfigType("env")

		currentPath, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("error getting current directory: %w", err)
		}

		v.AddConfigPath(currentPath)

		if err := v.ReadInConfig(); err != nil {
			// It's okay if config file doesn't exist
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	// Read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	driver := strings.ToLower(v.GetString("DB_DRIVER"))
	if driver != "sqlite" && driver != "postgres" {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q, expected sqlite or postgres", driver)
	}

	environment := v.GetString("ENVIRONMENT")

	secretKey := v.GetString("SECRET_KEY")
	if secretKey == "" {
		if environment != "development" {
			return nil, fmt.Errorf("SECRET_KEY is required")
		}
		// Sessions do not survive a restart in development
		generated, err := randomSecret()
		if err != nil {
			return nil, fmt.Errorf("error generating SECRET_KEY: %w", err)
		}
		secretKey = generated
	}

	config := &Config{
		Server: ServerConfig{
			Port:            v.GetInt("SERVER_PORT"),
			Host:            v.GetString("SERVER_HOST"),
			ShutdownTimeout: v.GetDuration("SERVER_SHUTDOWN_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Driver:         driver,
			Path:           v.GetString("DB_PATH"),
			Host:           v.GetString("DB_HOST"),
			Port:           v.GetInt("DB_PORT"),
			User:           v.GetString("DB_USER"),
			Password:       v.GetString("DB_PASSWORD"),
			DBName:         v.GetString("DB_NAME"),
			SSLMode:        v.GetString("DB_SSLMODE"),
			MaxOpenConns:   v.GetInt("DB_MAX_OPEN_CONNS"),
			Traced:         v.GetBool("TRACING_ENABLED"),
			AcquireTimeout: v.GetDuration("DB_ACQUIRE_TIMEOUT"),
		},
		Security: SecurityConfig{
			SecretKey:         secretKey,
			BcryptCost:        v.GetInt("BCRYPT_COST"),
			SessionTTL:        v.GetDuration("SESSION_TTL"),
			SessionCookieName: v.GetString("SESSION_COOKIE_NAME"),
			CookieSecure:      v.GetBool("COOKIE_SECURE"),
			LoginMaxAttempts:  v.GetInt("LOGIN_MAX_ATTEMPTS"),
			LoginWindow:       v.GetDuration("LOGIN_WINDOW"),
		},
		Practice: PracticeConfig{
			RecentSessionsLimit: v.GetInt("RECENT_SESSIONS_LIMIT"),
		},
		Tracing: TracingConfig{
			Enabled:              v.GetBool("TRACING_ENABLED"),
			ServiceName:          v.GetString("TRACING_SERVICE_NAME"),
			SamplingProbability:  v.GetFloat64("TRACING_SAMPLING_PROBABILITY"),
			TraceExporter:        v.GetString("TRACING_TRACE_EXPORTER"),
			JaegerEndpoint:       v.GetString("TRACING_JAEGER_ENDPOINT"),
			ZipkinEndpoint:       v.GetString("TRACING_ZIPKIN_ENDPOINT"),
			StackdriverProjectID: v.GetString("TRACING_STACKDRIVER_PROJECT_ID"),
			DatadogAgentAddress:  v.GetString("TRACING_DATADOG_AGENT_ADDRESS"),
			XRayRegion:           v.GetString("TRACING_XRAY_REGION"),
			MetricsExporter:      v.GetString("TRACING_METRICS_EXPORTER"),
			PrometheusPath:       v.GetString("TRACING_PROMETHEUS_PATH"),
		},
		Environment: environment,
		LogLevel:    v.GetString("LOG_LEVEL"),
		Version:     v.GetString("VERSION"),
	}

	return config, nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// IsDevelopment returns true if the environment is set to development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
