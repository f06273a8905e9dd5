package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/newthinker/quanthub/internal/core"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	UI      UIConfig      `mapstructure:"ui"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	TemplatesDir    string        `mapstructure:"templates_dir"` // empty uses embedded templates
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// CatalogConfig points at an optional YAML catalog replacing the built-in sample data.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// UIConfig holds settings for the rendered pages and their browser-side widgets.
type UIConfig struct {
	Brand           string `mapstructure:"brand"`
	EditorLoaderURL string `mapstructure:"editor_loader_url"`
	ChartScriptURL  string `mapstructure:"chart_script_url"`
}

// Load reads configuration from file
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// setDefaults mirrors Defaults so a partial file keeps the remaining values.
func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.mode", d.Server.Mode)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.path", d.Metrics.Path)
	v.SetDefault("ui.brand", d.UI.Brand)
	v.SetDefault("ui.editor_loader_url", d.UI.EditorLoaderURL)
	v.SetDefault("ui.chart_script_url", d.UI.ChartScriptURL)
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			Mode:            "release",
			ShutdownTimeout: 30 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		UI: UIConfig{
			Brand:           "QuantHub",
			EditorLoaderURL: "https://cdn.jsdelivr.net/npm/monaco-editor@0.45.0/min/vs/loader.js",
			ChartScriptURL:  "https://cdn.jsdelivr.net/npm/echarts@5.5.0/dist/echarts.min.js",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("port must be between 1 and 65535, got %d", c.Server.Port))
	}
	switch c.Server.Mode {
	case "", "release", "debug":
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("mode must be release or debug, got %q", c.Server.Mode))
	}
	if c.Server.ShutdownTimeout < 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("shutdown_timeout cannot be negative, got %s", c.Server.ShutdownTimeout))
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("metrics path must start with /, got %q", c.Metrics.Path))
	}

	if c.UI.Brand == "" {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("ui brand required"))
	}
	for name, raw := range map[string]string{
		"editor_loader_url": c.UI.EditorLoaderURL,
		"chart_script_url":  c.UI.ChartScriptURL,
	} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https") {
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("%s must be an http(s) or relative URL, got %q", name, raw))
		}
	}

	return nil
}
