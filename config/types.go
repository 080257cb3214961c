package config

import "time"

type AppConfig struct {
	ListenAddr string         `yaml:"listen_addr" env:"INCIDENTS_LISTEN_ADDR" env-default:"0.0.0.0:5000"`
	AppEnv     string         `yaml:"app_env" env:"INCIDENTS_APP_ENV" env-default:"production"`
	Log        LogConfig      `yaml:"log"`
	HTTP       HTTPConfig     `yaml:"http"`
	CORS       CORSConfig     `yaml:"cors"`
	Metrics    MetricsConfig  `yaml:"metrics"`
	Reporter   ReporterConfig `yaml:"reporter"`
}

func (c *AppConfig) IsDevelopment() bool {
	if c == nil {
		return false
	}
	return c.AppEnv == "development" || c.AppEnv == "dev"
}

type LogConfig struct {
	Level  string `yaml:"level" env:"INCIDENTS_LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"INCIDENTS_LOG_FORMAT" env-default:"console"`
}

type HTTPConfig struct {
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" env:"INCIDENTS_HTTP_READ_HEADER_TIMEOUT" env-default:"10s"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout" env:"INCIDENTS_HTTP_SHUTDOWN_TIMEOUT" env-default:"15s"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes" env:"INCIDENTS_HTTP_MAX_BODY_BYTES" env-default:"1048576"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"INCIDENTS_CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"*"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"INCIDENTS_METRICS_ENABLED" env-default:"true"`
	Path    string `yaml:"path" env:"INCIDENTS_METRICS_PATH" env-default:"/metrics"`
}

type ReporterConfig struct {
	Enabled  bool   `yaml:"enabled" env:"INCIDENTS_REPORTER_ENABLED" env-default:"true"`
	Schedule string `yaml:"schedule" env:"INCIDENTS_REPORTER_SCHEDULE" env-default:"@every 1m"`
}

const (
	defaultShutdownTimeout = 15 * time.Second
	defaultMaxBodyBytes    = 1 << 20
)

func (c *AppConfig) EffectiveShutdownTimeout() time.Duration {
	if c == nil || c.HTTP.ShutdownTimeout <= 0 {
		return defaultShutdownTimeout
	}
	return c.HTTP.ShutdownTimeout
}

func (c *AppConfig) EffectiveMaxBodyBytes() int64 {
	if c == nil || c.HTTP.MaxBodyBytes <= 0 {
		return defaultMaxBodyBytes
	}
	return c.HTTP.MaxBodyBytes
}
