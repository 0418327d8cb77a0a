// Package config loads runtime settings from defaults, an optional config
// file and IMAGE_MCP_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/ironsheep/image-derive-mcp/internal/derive"
	"github.com/ironsheep/image-derive-mcp/internal/imaging"
	"github.com/ironsheep/image-derive-mcp/internal/placement"
	"github.com/ironsheep/image-derive-mcp/internal/textrender"
)

// EnvPrefix is prepended to every environment override, so output.jpeg_quality
// is read from IMAGE_MCP_OUTPUT_JPEG_QUALITY.
const EnvPrefix = "IMAGE_MCP"

// Config holds every runtime setting. Load fills it from defaults, the
// optional config file and the environment.
type Config struct {
	LogLevel  string          `mapstructure:"log_level"`
	Output    OutputConfig    `mapstructure:"output"`
	Watermark WatermarkConfig `mapstructure:"watermark"`
	Text      TextConfig      `mapstructure:"text"`
}

// OutputConfig is the encoding used when a request names none.
type OutputConfig struct {
	MimeType    string `mapstructure:"mime_type"`
	JPEGQuality int    `mapstructure:"jpeg_quality"`
}

// WatermarkConfig sets the key color made transparent in watermarks, as
// #RRGGBB or #RRGGBBAA, and the opacity applied to the rest.
type WatermarkConfig struct {
	KeyColor string  `mapstructure:"key_color"`
	Opacity  float64 `mapstructure:"opacity"`
}

// TextConfig holds the default font, size in pixels and color for text
// overlays.
type TextConfig struct {
	Font  string  `mapstructure:"font"`
	Size  float64 `mapstructure:"size"`
	Color string  `mapstructure:"color"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("output.mime_type", derive.DefaultMimeType)
	v.SetDefault("output.jpeg_quality", imaging.DefaultJPEGQuality)
	v.SetDefault("watermark.key_color", "#00FF00")
	v.SetDefault("watermark.opacity", placement.DefaultWatermarkOpacity)
	v.SetDefault("text.font", textrender.DefaultFont)
	v.SetDefault("text.size", 12)
	v.SetDefault("text.color", "#FFFFFF")
}

// LoadConfig builds a viper instance with defaults and environment overrides.
// A non-empty path names a YAML, TOML or JSON file that must exist.
func LoadConfig(path string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}
	return v, nil
}

// ParseConfig decodes v into a Config and validates it.
func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load is LoadConfig followed by ParseConfig.
func Load(path string) (*Config, error) {
	v, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(v)
}

// Validate reports every out-of-range setting at once.
func (c *Config) Validate() error {
	var errs []error
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if _, ok := imaging.EncoderFor(c.Output.MimeType, c.Output.JPEGQuality); !ok {
		errs = append(errs, fmt.Errorf("output.mime_type: %w: %q", imaging.ErrUnsupportedEncoder, c.Output.MimeType))
	}
	if c.Output.JPEGQuality < 1 || c.Output.JPEGQuality > 100 {
		errs = append(errs, fmt.Errorf("output.jpeg_quality must be 1-100, got %d", c.Output.JPEGQuality))
	}
	if _, err := imaging.ParseColor(c.Watermark.KeyColor); err != nil {
		errs = append(errs, fmt.Errorf("watermark.key_color: %w", err))
	}
	if c.Watermark.Opacity <= 0 || c.Watermark.Opacity > 1 {
		errs = append(errs, fmt.Errorf("watermark.opacity must be in (0,1], got %v", c.Watermark.Opacity))
	}
	if c.Text.Size <= 0 {
		errs = append(errs, fmt.Errorf("text.size must be positive, got %v", c.Text.Size))
	}
	if _, err := imaging.ParseColor(c.Text.Color); err != nil {
		errs = append(errs, fmt.Errorf("text.color: %w", err))
	}
	return errors.Join(errs...)
}

// Level returns the configured log level, or info when it does not parse.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// DeriveOptions converts the watermark settings into derive.Options. A key
// color that does not parse, or an opacity that is not positive, is left
// unset so derive falls back to its defaults.
func (c *Config) DeriveOptions(logger *log.Logger, renderer *textrender.Renderer) derive.Options {
	opts := derive.Options{
		Logger:   logger,
		Renderer: renderer,
	}
	if key, err := imaging.ParseColor(c.Watermark.KeyColor); err == nil {
		opts.WatermarkKey = &key
	}
	if c.Watermark.Opacity > 0 {
		opacity := c.Watermark.Opacity
		opts.WatermarkOpacity = &opacity
	}
	return opts
}

// OutputOptions returns the configured encoding with path as the destination.
func (c *Config) OutputOptions(path string) derive.OutputOptions {
	return derive.OutputOptions{
		Path:        path,
		MimeType:    c.Output.MimeType,
		JPEGQuality: c.Output.JPEGQuality,
	}
}

// TextColor returns the default text color, white when it does not parse.
func (c *Config) TextColor() color.NRGBA {
	tc, err := imaging.ParseColor(c.Text.Color)
	if err != nil {
		return color.NRGBA{255, 255, 255, 255}
	}
	return tc
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	c := &Config{}
	_ = v.Unmarshal(c)
	return c
}
