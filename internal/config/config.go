package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/beetlebugorg/kmz2svg/pkg/kmz"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Render RenderConfig `mapstructure:"render"`
	Log    LogConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	BodyLimitMB  int    `mapstructure:"body_limit_mb"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
	CORSOrigins  string `mapstructure:"cors_origins"`
}

// Address returns the host:port listen address.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type RenderConfig struct {
	CanvasWidth  float64 `mapstructure:"canvas_width"`
	CanvasHeight float64 `mapstructure:"canvas_height"`
	PointRadius  float64 `mapstructure:"point_radius"`
	FillColor    string  `mapstructure:"fill_color"`
}

// Options returns the render settings in the form the conversion pipeline takes.
func (r RenderConfig) Options() kmz.RenderOptions {
	return kmz.RenderOptions{
		Canvas:      kmz.Canvas{Width: r.CanvasWidth, Height: r.CanvasHeight},
		PointRadius: r.PointRadius,
		FillColor:   r.FillColor,
	}
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.body_limit_mb", 32)
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.cors_origins", "*")
	v.SetDefault("render.canvas_width", 1000)
	v.SetDefault("render.canvas_height", 1000)
	v.SetDefault("render.point_radius", 5)
	v.SetDefault("render.fill_color", "red")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: KMZ2SVG_SERVER_PORT → server.port
	v.SetEnvPrefix("KMZ2SVG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.BodyLimitMB <= 0 {
		errs = append(errs, "server.body_limit_mb must be positive")
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.Render.CanvasWidth <= 0 || c.Render.CanvasHeight <= 0 {
		errs = append(errs, fmt.Sprintf("render canvas must be positive, got %gx%g",
			c.Render.CanvasWidth, c.Render.CanvasHeight))
	}
	if c.Render.PointRadius <= 0 {
		errs = append(errs, "render.point_radius must be positive")
	}
	if c.Render.FillColor == "" {
		errs = append(errs, "render.fill_color is required")
	}
	if f := strings.ToLower(c.Log.Format); f != "json" && f != "text" {
		errs = append(errs, fmt.Sprintf("log.format must be json or text, got %q", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
