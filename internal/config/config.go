package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/domtree/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "domtree.yaml"

	// DefaultIndent is the pretty-print indentation.
	DefaultIndent = "  "

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"
)

var validate = validator.New()

// Config represents the complete domtree.yaml configuration.
type Config struct {
	// Render contains renderer settings.
	Render RenderConfig `yaml:"render"`

	// Log contains logger settings.
	Log LogConfig `yaml:"log"`

	// CSS points to a stylesheet included by the CLI.
	CSS CSSConfig `yaml:"css,omitempty"`

	// Data points to the default content injected by the CLI.
	Data DataConfig `yaml:"data,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// RenderConfig contains renderer settings.
type RenderConfig struct {
	// Pretty enables indented output.
	Pretty bool `yaml:"pretty"`

	// Indent is the indentation of one level, spaces or tabs.
	Indent string `yaml:"indent" validate:"max=8"`

	// Minify post-processes the output with an HTML minifier.
	Minify bool `yaml:"minify"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" validate:"oneof=debug info warn error"`

	// Development selects zap's development encoder.
	Development bool `yaml:"development"`
}

// CSSConfig locates a stylesheet in YAML form.
type CSSConfig struct {
	File string `yaml:"file,omitempty" validate:"omitempty,endswith=.yaml|endswith=.yml"`
}

// DataConfig locates a YAML or JSON file of content values.
type DataConfig struct {
	File string `yaml:"file,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Render: RenderConfig{Indent: DefaultIndent},
		Log:    LogConfig{Level: DefaultLogLevel},
	}
}

// Load loads the configuration from domtree.yaml in dir.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile loads the configuration from path. Missing keys keep their
// defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E161").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Create " + ConfigFileName + " or pass flags instead")
		}
		return nil, errors.New("E160").Wrap(err)
	}

	cfg := New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E160").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that the file is valid YAML")
	}
	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration back to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to path.
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.New("E160").Wrap(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E160").Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// ResolvePath resolves a path from the config relative to its directory.
func (c *Config) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) || c.Dir() == "" {
		return p
	}
	return filepath.Join(c.Dir(), p)
}

func (c *Config) applyDefaults() {
	if c.Render.Indent == "" {
		c.Render.Indent = DefaultIndent
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	c.Log.Level = strings.ToLower(c.Log.Level)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var detail []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				detail = append(detail, fe.Namespace()+" failed "+fe.Tag())
			}
		} else {
			detail = append(detail, err.Error())
		}
		return errors.New("E160").WithDetail(strings.Join(detail, "; "))
	}
	if strings.Trim(c.Render.Indent, " \t") != "" {
		return errors.New("E160").
			WithDetail("render.indent must contain only spaces or tabs")
	}
	return nil
}

// Logger builds the zap logger described by the log section.
func (c *Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, errors.New("E160").WithDetail("log.level").Wrap(err)
	}
	zc := zap.NewProductionConfig()
	if c.Log.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// Exists checks if a domtree.yaml exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up directories to find the directory holding
// domtree.yaml.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E161").
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads the configuration of the project containing
// the working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}
	return Load(root)
}
