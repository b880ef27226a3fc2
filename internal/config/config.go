package config

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/hx/internal/errors"
)

const (
	// DefaultPort is the default demo server port.
	DefaultPort = 3000

	// DefaultHost is the default demo server host.
	DefaultHost = "localhost"

	// DefaultMetricsPath is where the demo server exposes Prometheus metrics.
	DefaultMetricsPath = "/metrics"
)

// FileNames are the config file names Load looks for, in order.
var FileNames = []string{"hx.yaml", "hx.yml", "hx.toml"}

// Config is the complete hx configuration.
type Config struct {
	// Server configures `hx serve`.
	Server ServerConfig `yaml:"server" toml:"server"`

	// Render configures the host root and HTML output.
	Render RenderConfig `yaml:"render" toml:"render"`

	// Demo configures the demo application.
	Demo DemoConfig `yaml:"demo" toml:"demo"`

	// Metrics configures Prometheus collectors.
	Metrics MetricsConfig `yaml:"metrics" toml:"metrics"`

	// Log configures structured logging.
	Log LogConfig `yaml:"log" toml:"log"`

	// path stores the path where the config was loaded from.
	path string
}

// ServerConfig contains demo server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `yaml:"host" toml:"host"`

	// Port is the port to listen on.
	Port int `yaml:"port" toml:"port"`
}

// RenderConfig contains rendering settings.
type RenderConfig struct {
	// Pretty enables indented HTML output.
	Pretty bool `yaml:"pretty" toml:"pretty"`

	// FrameInterval is the Deferred fallback frame delay.
	FrameInterval Duration `yaml:"frameInterval" toml:"frameInterval"`

	// MaxPasses bounds render passes per flush.
	MaxPasses int `yaml:"maxPasses" toml:"maxPasses"`
}

// DemoConfig contains demo application settings.
type DemoConfig struct {
	// Title is the page title.
	Title string `yaml:"title" toml:"title"`

	// TickInterval is how often the demo clock cell ticks.
	TickInterval Duration `yaml:"tickInterval" toml:"tickInterval"`

	// ThrottleInterval is the board's throttle window.
	ThrottleInterval Duration `yaml:"throttleInterval" toml:"throttleInterval"`

	// Ticks is how many ticks `hx render` applies before printing.
	Ticks int `yaml:"ticks" toml:"ticks"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled registers the host collectors and serves Path.
	Enabled bool `yaml:"enabled" toml:"enabled"`

	// Namespace prefixes every metric name.
	Namespace string `yaml:"namespace" toml:"namespace"`

	// Path is the HTTP path for the metrics handler.
	Path string `yaml:"path" toml:"path"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" toml:"level"`

	// Format is text or json.
	Format string `yaml:"format" toml:"format"`
}

// New returns a configuration with every default applied.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Render: RenderConfig{
			FrameInterval: Duration(16 * time.Millisecond),
			MaxPasses:     64,
		},
		Demo: DemoConfig{
			Title:            "hx demo",
			TickInterval:     Duration(time.Second),
			ThrottleInterval: Duration(250 * time.Millisecond),
			Ticks:            3,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "hx",
			Path:      DefaultMetricsPath,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Find returns the first config file from FileNames present in dir.
func Find(dir string) (string, bool) {
	for _, name := range FileNames {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}

// Load reads the config file in dir.
func Load(dir string) (*Config, error) {
	path, ok := Find(dir)
	if !ok {
		return nil, errors.New("E040").
			WithDetail("No hx.yaml, hx.yml or hx.toml found in " + dir).
			WithSuggestion("Create hx.yaml or run without a config file to use the defaults")
	}
	return LoadFile(path)
}

// LoadOrDefault reads the config file in dir, or returns the defaults if
// there is none.
func LoadOrDefault(dir string) (*Config, error) {
	path, ok := Find(dir)
	if !ok {
		return New(), nil
	}
	return LoadFile(path)
}

// LoadFile reads and validates the config file at path. The format follows
// the extension.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E040").Wrap(err).WithDetail("Cannot read " + path)
	}

	cfg := New()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && err != io.EOF {
			return nil, errors.New("E040").
				WithDetail("Failed to parse " + path + ": " + err.Error()).
				WithSuggestion("Check that the file is valid YAML and uses the documented keys")
		}
	case ".toml":
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, errors.New("E040").
				WithDetail("Failed to parse " + path + ": " + err.Error()).
				WithSuggestion("Check that the file is valid TOML")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New("E040").
				WithDetail(fmt.Sprintf("Unknown keys in %s: %v", path, undecoded))
		}
	default:
		return nil, errors.New("E042").WithDetail("Unsupported extension " + ext)
	}

	cfg.path = path
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to the path it was loaded from.
func (c *Config) Save() error {
	if c.path == "" {
		return errors.New("E040").WithDetail("Config has no file path; use SaveTo")
	}
	return c.SaveTo(c.path)
}

// SaveTo writes the config to path in the format its extension names.
func (c *Config) SaveTo(path string) error {
	var buf bytes.Buffer
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
	case ".toml":
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return err
		}
	default:
		return errors.New("E042").WithDetail("Unsupported extension " + ext)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return err
	}
	c.path = path
	return nil
}

// Path returns the path the config was loaded from or saved to.
func (c *Config) Path() string {
	return c.path
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	invalid := func(detail string) error {
		return errors.New("E041").WithDetail(detail)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return invalid("server.port must be between 0 and 65535")
	}
	if c.Render.FrameInterval <= 0 {
		return invalid("render.frameInterval must be positive")
	}
	if c.Render.MaxPasses <= 0 {
		return invalid("render.maxPasses must be positive")
	}
	if c.Demo.TickInterval <= 0 || c.Demo.ThrottleInterval <= 0 {
		return invalid("demo.tickInterval and demo.throttleInterval must be positive")
	}
	if c.Demo.Ticks < 0 {
		return invalid("demo.ticks must not be negative")
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return invalid("metrics.path must start with /")
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return invalid(err.Error())
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return invalid("log.format must be text or json")
	}
	return nil
}

// Address returns the host:port the server listens on.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// SlogLevel parses Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level %q: must be debug, info, warn or error", l.Level)
	}
	return level, nil
}

// NewLogger builds a logger writing to w in the configured format.
func (l LogConfig) NewLogger(w io.Writer) *slog.Logger {
	level, err := l.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
