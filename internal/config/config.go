package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
)

// FileName is the project configuration file looked up in the base directory.
const FileName = "sitebuilder.yaml"

// Config represents the project configuration.
type Config struct {
	Templates TemplatesConfig `yaml:"templates"`
	Content   ContentConfig   `yaml:"content"`
	Render    RenderConfig    `yaml:"render"`
	Build     BuildConfig     `yaml:"build"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// TemplatesConfig selects template files.
type TemplatesConfig struct {
	Extension string `yaml:"extension"`
	Default   string `yaml:"default"`
}

// ContentConfig toggles optional source preprocessing.
type ContentConfig struct {
	FrontMatter bool `yaml:"front_matter"`
	Includes    bool `yaml:"includes"`
}

// RenderConfig configures the renderer registry.
type RenderConfig struct {
	PluginDir string         `yaml:"plugin_dir"` // relative to the project base
	Markdown  MarkdownConfig `yaml:"markdown"`
	Textile   TextileConfig  `yaml:"textile"`
}

// MarkdownConfig configures the goldmark renderer.
type MarkdownConfig struct {
	Extensions    []string `yaml:"extensions"`
	HardWraps     bool     `yaml:"hard_wraps"`
	Unsafe        bool     `yaml:"unsafe"`
	AutoHeadingID bool     `yaml:"auto_heading_id"`
}

// TextileConfig configures the external Textile converter.
type TextileConfig struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args,omitempty"`
}

// BuildConfig holds defaults for build command flags.
type BuildConfig struct {
	Force      bool `yaml:"force"`
	CopyStatic bool `yaml:"copy_static"`
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig enables Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Templates: TemplatesConfig{Extension: "html", Default: "page"},
		Content:   ContentConfig{FrontMatter: true, Includes: true},
		Render: RenderConfig{
			PluginDir: "renderers",
			Markdown:  MarkdownConfig{Extensions: []string{"gfm"}, Unsafe: true, AutoHeadingID: true},
			Textile:   TextileConfig{Command: "textile"},
		},
		Logging: LoggingConfig{Level: LogLevelWarn, Format: LogFormatText},
	}
}

// Load reads configPath over the defaults, expanding environment variables,
// then normalizes and validates the result.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ferrors.NotFoundError("configuration file not found").
				WithCause(err).
				WithContext("path", configPath).
				Build()
		}
		return nil, ferrors.ConfigError("failed to read config file").
			WithCause(err).
			WithContext("path", configPath).
			Build()
	}

	cfg := Default()
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, ferrors.ConfigError("failed to parse config file").
			WithCause(err).
			WithContext("path", configPath).
			Build()
	}
	return finalize(cfg)
}

// LoadProject loads configuration for the project at basePath. A .env file
// in basePath is applied first. explicitPath, when set, must exist; otherwise
// basePath/sitebuilder.yaml is used if present, else the defaults.
func LoadProject(basePath, explicitPath string) (*Config, error) {
	if err := loadEnvFile(basePath); err != nil {
		return nil, err
	}
	if explicitPath != "" {
		return Load(explicitPath)
	}
	candidate := filepath.Join(basePath, FileName)
	if _, err := os.Stat(candidate); err == nil {
		return Load(candidate)
	}
	slog.Debug("No configuration file, using defaults", logfields.Path(candidate))
	return finalize(Default())
}

func finalize(cfg *Config) (*Config, error) {
	res, err := NormalizeConfig(cfg)
	if err != nil {
		return nil, err
	}
	for _, w := range res.Warnings {
		slog.Warn("Configuration normalized", slog.String("detail", w))
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return ferrors.ValidationError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath)).
			WithContext("path", configPath).
			Build()
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return ferrors.InternalError("failed to marshal config").WithCause(err).Build()
	}
	// #nosec G306 -- config holds no secrets; values may reference ${ENV} instead
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return ferrors.FileSystemError("failed to write config file").
			WithCause(err).
			WithContext("path", configPath).
			Build()
	}
	return nil
}
