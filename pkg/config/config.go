package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config is the top-level configuration aggregating every section.
type Config struct {
	Page     PageConfig    `yaml:"page" json:"page"`
	Body     BodyConfig    `yaml:"body" json:"body"`
	Codes    CodeConfig    `yaml:"codes" json:"codes"`
	Includes IncludeConfig `yaml:"includes" json:"includes"`
	Notices  NoticeConfig  `yaml:"notices" json:"notices"`
	Fetch    FetchConfig   `yaml:"fetch" json:"fetch"`
	Server   ServerConfig  `yaml:"server" json:"server"`
	Log      LogConfig     `yaml:"log" json:"log"`
}

// PageConfig names the markup hooks a host page exposes.
type PageConfig struct {
	// ContentRoot is the element that may carry an explicit template code.
	ContentRoot string `yaml:"content_root" json:"content_root"`
	// CodeAttribute holds the explicit template code on ContentRoot.
	CodeAttribute string `yaml:"code_attribute" json:"code_attribute"`
	// CodeParam is the query parameter consulted when no explicit code is set.
	CodeParam string `yaml:"code_param" json:"code_param"`
	// IncludeAttribute marks include elements and carries the fragment path.
	IncludeAttribute string `yaml:"include_attribute" json:"include_attribute"`
	TitleID          string `yaml:"title_id" json:"title_id"`
	DescriptionID    string `yaml:"description_id" json:"description_id"`
	// PlaceholderAttributes are the attributes substituted besides text.
	PlaceholderAttributes []string `yaml:"placeholder_attributes" json:"placeholder_attributes"`
}

// BodyConfig locates the body container and the body fragment files.
type BodyConfig struct {
	TargetID  string `yaml:"target_id" json:"target_id"`
	Directory string `yaml:"directory" json:"directory"`
	Extension string `yaml:"extension" json:"extension"`
}

// CodeConfig holds the static code tables.
type CodeConfig struct {
	// Default is used when a page path has no final segment.
	Default string `yaml:"default" json:"default"`
	// Files maps template codes to body file base names.
	Files map[string]string `yaml:"files" json:"files"`
	// Filenames maps page file names (extension stripped) to template codes.
	Filenames map[string]string `yaml:"filenames" json:"filenames"`
}

// IncludeConfig configures include post-processing.
type IncludeConfig struct {
	// FooterClass selects the element stretched to full width after an
	// include loads. Empty disables the fix-up.
	FooterClass string `yaml:"footer_class" json:"footer_class"`
}

// NoticeConfig holds the pongo2 templates rendered into failed containers.
type NoticeConfig struct {
	BodyFailed       string `yaml:"body_failed" json:"body_failed"`
	IncludeMissing   string `yaml:"include_missing" json:"include_missing"`
	IncludeFailed    string `yaml:"include_failed" json:"include_failed"`
	ComponentMissing string `yaml:"component_missing" json:"component_missing"`
	ComponentFailed  string `yaml:"component_failed" json:"component_failed"`
}

// FetchConfig controls fragment fetching.
type FetchConfig struct {
	AllowHTTP bool          `yaml:"allow_http" json:"allow_http" env:"FRAGMENTS_ALLOW_HTTP"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout" env:"FRAGMENTS_FETCH_TIMEOUT"`
	UserAgent string        `yaml:"user_agent" json:"user_agent" env:"FRAGMENTS_USER_AGENT"`
}

// ServerConfig holds the settings of the composition server.
type ServerConfig struct {
	Addr            string        `yaml:"addr" json:"addr" env:"FRAGMENTS_ADDR"`
	Root            string        `yaml:"root" json:"root" env:"FRAGMENTS_ROOT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout" env:"FRAGMENTS_SHUTDOWN_TIMEOUT"`
}

// LogConfig selects the log level.
type LogConfig struct {
	Level string `yaml:"level" json:"level" env:"FRAGMENTS_LOG_LEVEL"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg, err := Parse(nil)
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Parse decodes YAML on top of the defaults and validates the result. Nil or
// empty input yields the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("config: decode defaults: %w", err)
	}
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: decode: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the YAML file at path and applies FRAGMENTS_* environment
// overrides. An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	var data []byte
	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			data = raw
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overrides process settings from the environment.
func ApplyEnv(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil config")
	}
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	return nil
}

// Validate checks that every hook the composer depends on is named.
func (c *Config) Validate() error {
	var problems []string
	require := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			problems = append(problems, name+" is required")
		}
	}
	require("page.content_root", c.Page.ContentRoot)
	require("page.code_attribute", c.Page.CodeAttribute)
	require("page.include_attribute", c.Page.IncludeAttribute)
	require("body.target_id", c.Body.TargetID)
	require("body.directory", c.Body.Directory)
	require("codes.default", c.Codes.Default)
	if c.Fetch.Timeout < 0 {
		problems = append(problems, "fetch.timeout must not be negative")
	}
	if c.Body.Extension != "" && !strings.HasPrefix(c.Body.Extension, ".") {
		problems = append(problems, "body.extension must start with a dot")
	}
	if len(problems) > 0 {
		return fmt.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}
