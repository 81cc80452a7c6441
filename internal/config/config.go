package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Security  SecurityConfig  `yaml:"security" envconfig:"SECURITY"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
	Data      DataConfig      `yaml:"data" envconfig:"DATA"`
	Map       MapConfig       `yaml:"map" envconfig:"MAP"`
	WebSocket WebSocketConfig `yaml:"websocket" envconfig:"WEBSOCKET"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `yaml:"host" envconfig:"HOST"`
	Port            int           `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" envconfig:"MAX_HEADER_BYTES"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS"`
	Burst   int     `yaml:"burst" envconfig:"BURST"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL"`
	Output      string `yaml:"output" envconfig:"OUTPUT"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// TelemetryConfig controls the OpenTelemetry providers.
type TelemetryConfig struct {
	ServiceName    string `yaml:"service_name" envconfig:"SERVICE_NAME"`
	TraceExporter  string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER"`
	MetricsEnabled bool   `yaml:"metrics_enabled" envconfig:"METRICS_ENABLED"`
}

// DataConfig locates the input files and the export directory.
type DataConfig struct {
	TradeFile         string  `yaml:"trade_file" envconfig:"TRADE_FILE"`
	BoundaryFile      string  `yaml:"boundary_file" envconfig:"BOUNDARY_FILE"`
	ExportDir         string  `yaml:"export_dir" envconfig:"EXPORT_DIR"`
	BOMPrefix         bool    `yaml:"bom_prefix" envconfig:"BOM_PREFIX"`
	SimplifyTolerance float64 `yaml:"simplify_tolerance" envconfig:"SIMPLIFY_TOLERANCE"`
}

// MapConfig holds the scatter map defaults.
type MapConfig struct {
	DefaultLatitude  float64 `yaml:"default_latitude" envconfig:"DEFAULT_LATITUDE"`
	DefaultLongitude float64 `yaml:"default_longitude" envconfig:"DEFAULT_LONGITUDE"`
	Zoom             float64 `yaml:"zoom" envconfig:"ZOOM"`
	Pitch            float64 `yaml:"pitch" envconfig:"PITCH"`
	MarkerRadius     float64 `yaml:"marker_radius" envconfig:"MARKER_RADIUS"`
	MarkerColor      []int   `yaml:"marker_color" envconfig:"MARKER_COLOR"`
	ColorScale       string  `yaml:"color_scale" envconfig:"COLOR_SCALE"`
}

// WebSocketConfig contains WebSocket configuration
type WebSocketConfig struct {
	ReadBufferSize  int           `yaml:"read_buffer_size" envconfig:"READ_BUFFER_SIZE"`
	WriteBufferSize int           `yaml:"write_buffer_size" envconfig:"WRITE_BUFFER_SIZE"`
	WriteWait       time.Duration `yaml:"write_wait" envconfig:"WRITE_WAIT"`
	PingPeriod      time.Duration `yaml:"ping_period" envconfig:"PING_PERIOD"`
	PongWait        time.Duration `yaml:"pong_wait" envconfig:"PONG_WAIT"`
	MaxMessageSize  int64         `yaml:"max_message_size" envconfig:"MAX_MESSAGE_SIZE"`
}

// Load builds the configuration from defaults, the optional YAML file and
// the environment, then validates it.
func Load() (*Config, error) {
	cfg := Default()

	// Load from config file if exists
	if configFile := getConfigFilePath(); configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file %s: %w", configFile, err)
		}
	}

	// Unset variables leave the field untouched, so env only overrides what is set
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func (c *Config) normalize() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Output = strings.ToLower(strings.TrimSpace(c.Logging.Output))
	c.Telemetry.TraceExporter = strings.ToLower(strings.TrimSpace(c.Telemetry.TraceExporter))
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/app.log"
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("server request timeout must be positive")
	}

	if c.Security.EnableCORS && len(c.Security.AllowedOrigins) == 0 {
		return fmt.Errorf("at least one allowed origin must be specified")
	}
	if c.Security.RateLimit.Enabled && (c.Security.RateLimit.RPS <= 0 || c.Security.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate limit rps and burst must be positive")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q", c.Logging.Level)
	}
	switch c.Logging.Output {
	case "console", "file", "both":
	default:
		return fmt.Errorf("invalid log output: %q", c.Logging.Output)
	}

	switch c.Telemetry.TraceExporter {
	case "none", "stdout":
	default:
		return fmt.Errorf("invalid trace exporter: %q", c.Telemetry.TraceExporter)
	}

	if c.Data.TradeFile == "" {
		return fmt.Errorf("trade file must be specified")
	}
	if c.Data.BoundaryFile == "" {
		return fmt.Errorf("boundary file must be specified")
	}
	if c.Data.SimplifyTolerance < 0 {
		return fmt.Errorf("simplify tolerance must not be negative")
	}

	if c.Map.DefaultLatitude < -90 || c.Map.DefaultLatitude > 90 {
		return fmt.Errorf("default latitude out of range: %v", c.Map.DefaultLatitude)
	}
	if c.Map.DefaultLongitude < -180 || c.Map.DefaultLongitude > 180 {
		return fmt.Errorf("default longitude out of range: %v", c.Map.DefaultLongitude)
	}
	if c.Map.Zoom <= 0 {
		return fmt.Errorf("map zoom must be positive")
	}
	if c.Map.MarkerRadius <= 0 {
		return fmt.Errorf("marker radius must be positive")
	}
	if len(c.Map.MarkerColor) != 3 {
		return fmt.Errorf("marker color must have 3 components, got %d", len(c.Map.MarkerColor))
	}
	for _, v := range c.Map.MarkerColor {
		if v < 0 || v > 255 {
			return fmt.Errorf("marker color component out of range: %d", v)
		}
	}

	if c.WebSocket.PingPeriod <= 0 || c.WebSocket.PongWait <= c.WebSocket.PingPeriod {
		return fmt.Errorf("websocket pong wait must exceed a positive ping period")
	}
	return nil
}

// MarkerRGB returns the marker colour as an RGB triple.
func (m MapConfig) MarkerRGB() [3]uint8 {
	var rgb [3]uint8
	for i := 0; i < len(rgb) && i < len(m.MarkerColor); i++ {
		rgb[i] = uint8(m.MarkerColor[i])
	}
	return rgb
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if path := os.Getenv(ConfigFileEnv); path != "" {
		return path
	}
	for _, location := range configFileLocations {
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
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			RequestTimeout:  20 * time.Second,
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
			Level:    "info",
			Output:   "console",
			FilePath: "logs/app.log",
		},
		Telemetry: TelemetryConfig{
			ServiceName:    "traderoutes",
			TraceExporter:  "none",
			MetricsEnabled: true,
		},
		Data: DataConfig{
			TradeFile:    "data/trade_data.csv",
			BoundaryFile: "data/countries.geojson",
			ExportDir:    "exports",
			BOMPrefix:    true,
		},
		Map: MapConfig{
			DefaultLatitude:  29.0,
			DefaultLongitude: 45.0,
			Zoom:             5,
			Pitch:            45,
			MarkerRadius:     200000,
			MarkerColor:      []int{255, 0, 0},
			ColorScale:       "Viridis",
		},
		WebSocket: WebSocketConfig{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			WriteWait:       10 * time.Second,
			PingPeriod:      54 * time.Second,
			PongWait:        60 * time.Second,
			MaxMessageSize:  4096,
		},
	}
}
