// Package config loads the gondoc tool configuration.
package config

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"go/parser"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/pablor21/gondoc/annotations"
	"github.com/pablor21/gondoc/logger"
	"github.com/pablor21/gondoc/resolve"
)

//go:embed config.yml
var defaultConfigFile embed.FS

// FileNames are the config files looked up by FindConfigFile, in order.
var FileNames = []string{".gondoc.yml", ".gondoc.yaml", ".gondoc.toml", ".gondoc.json"}

// Config holds the tool configuration. All fields are pointers so a file
// layer only overrides what it sets.
type Config struct {
	Packages       []string         `json:"packages,omitempty" yaml:"packages,omitempty" toml:"packages,omitempty" validate:"required,min=1,dive,required"`
	Output         *string          `json:"output,omitempty" yaml:"output,omitempty" toml:"output,omitempty" validate:"required,endswith=.go,excludesall=/\\"`
	Prefix         *string          `json:"prefix,omitempty" yaml:"prefix,omitempty" toml:"prefix,omitempty" validate:"required,lowercase,alphanum"`
	LogLevel       *logger.LogLevel `json:"log_level,omitempty" yaml:"log_level,omitempty" toml:"log_level,omitempty" validate:"required,oneof=debug info warn error none"`
	MaxDiagnostics *int             `json:"max_diagnostics,omitempty" yaml:"max_diagnostics,omitempty" toml:"max_diagnostics,omitempty" validate:"required,min=1,max=65535"`
	Jobs           *int             `json:"jobs,omitempty" yaml:"jobs,omitempty" toml:"jobs,omitempty" validate:"required,min=0"`
	Color          *string          `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty" validate:"required,oneof=auto always never"`
	Defaults       *Defaults        `json:"defaults,omitempty" yaml:"defaults,omitempty" toml:"defaults,omitempty"`

	// Internal (not serialized)
	ConfigDir string `json:"-" yaml:"-" toml:"-"`
}

// Defaults is the global layer applied before any directive option.
type Defaults struct {
	Trim      *bool   `json:"trim,omitempty" yaml:"trim,omitempty" toml:"trim,omitempty"`
	RenameAll *string `json:"rename_all,omitempty" yaml:"rename_all,omitempty" toml:"rename_all,omitempty" validate:"omitempty,oneof=lowercase UPPERCASE PascalCase camelCase snake_case SCREAMING_SNAKE_CASE kebab-case SCREAMING-KEBAB-CASE"`
	Default   *string `json:"default,omitempty" yaml:"default,omitempty" toml:"default,omitempty" validate:"omitempty,goexpr"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("goexpr", func(fl validator.FieldLevel) bool {
		_, err := parser.ParseExpr(fl.Field().String())
		return err == nil
	})
	return v
}

// NewDefaultConfig returns the built-in configuration.
func NewDefaultConfig() *Config {
	config, err := LoadConfigFromFS(defaultConfigFile, "config.yml")
	if err != nil {
		panic("failed to load default config: " + err.Error())
	}
	return config
}

func LoadConfigFromFS(fs embed.FS, path string) (*Config, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadConfigFromYAML(data)
}

// LoadConfigFromYAML decodes YAML, rejecting unknown keys.
func LoadConfigFromYAML(data []byte) (*Config, error) {
	var config Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &config, nil
}

// LoadConfigFromTOML decodes TOML, rejecting unknown keys.
func LoadConfigFromTOML(data []byte) (*Config, error) {
	var config Config
	meta, err := toml.Decode(string(data), &config)
	if err != nil {
		return nil, err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("unknown configuration keys: %s", strings.Join(keys, ", "))
	}
	return &config, nil
}

// LoadConfigFromJSON decodes JSON, rejecting unknown keys.
func LoadConfigFromJSON(data []byte) (*Config, error) {
	var config Config
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// Load reads path, layers it over the built-in defaults and validates the result.
// The format follows the file extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var fileCfg *Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		fileCfg, err = LoadConfigFromYAML(data)
	case ".toml":
		fileCfg, err = LoadConfigFromTOML(data)
	case ".json":
		fileCfg, err = LoadConfigFromJSON(data)
	default:
		return nil, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg := Merge(NewDefaultConfig(), fileCfg)
	if abs, err := filepath.Abs(filepath.Dir(path)); err == nil {
		cfg.ConfigDir = abs
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// FindConfigFile returns the first of FileNames present in dir, or "".
func FindConfigFile(dir string) string {
	for _, name := range FileNames {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// Merge returns base with every field set in override taking precedence.
func Merge(base, override *Config) *Config {
	result := &Config{}
	if base != nil {
		*result = *base
		result.Packages = append([]string(nil), base.Packages...)
		if base.Defaults != nil {
			d := *base.Defaults
			result.Defaults = &d
		}
	}
	if override == nil {
		return result
	}
	if len(override.Packages) > 0 {
		result.Packages = append([]string(nil), override.Packages...)
	}
	if override.Output != nil {
		result.Output = override.Output
	}
	if override.Prefix != nil {
		result.Prefix = override.Prefix
	}
	if override.LogLevel != nil {
		result.LogLevel = override.LogLevel
	}
	if override.MaxDiagnostics != nil {
		result.MaxDiagnostics = override.MaxDiagnostics
	}
	if override.Jobs != nil {
		result.Jobs = override.Jobs
	}
	if override.Color != nil {
		result.Color = override.Color
	}
	if override.Defaults != nil {
		if result.Defaults == nil {
			result.Defaults = &Defaults{}
		}
		if override.Defaults.Trim != nil {
			result.Defaults.Trim = override.Defaults.Trim
		}
		if override.Defaults.RenameAll != nil {
			result.Defaults.RenameAll = override.Defaults.RenameAll
		}
		if override.Defaults.Default != nil {
			result.Defaults.Default = override.Defaults.Default
		}
	}
	if override.ConfigDir != "" {
		result.ConfigDir = override.ConfigDir
	}
	return result
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// BaseResolve turns the defaults section into the resolver's starting configuration.
func (c *Config) BaseResolve() resolve.Config {
	base := resolve.Default()
	if c == nil || c.Defaults == nil {
		return base
	}
	d := c.Defaults
	if d.Trim != nil {
		base.Trim = *d.Trim
	}
	if d.RenameAll != nil {
		if rc, ok := annotations.ParseCase(*d.RenameAll); ok {
			base.RenameCase = &rc
		}
	}
	if d.Default != nil {
		base.Default = &annotations.Expression{Source: *d.Default}
	}
	return base
}

// PackagePatterns returns the package patterns with relative ones anchored at ConfigDir.
func (c *Config) PackagePatterns() []string {
	out := make([]string, len(c.Packages))
	for i, p := range c.Packages {
		neg := strings.HasPrefix(p, "!")
		p = strings.TrimPrefix(p, "!")
		if c.ConfigDir != "" && strings.HasPrefix(p, ".") {
			p = filepath.Join(c.ConfigDir, p)
		}
		if neg {
			p = "!" + p
		}
		out[i] = p
	}
	return out
}
