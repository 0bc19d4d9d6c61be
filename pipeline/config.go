package pipeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ginanjarn/cmaketools/formatter"
)

// DefaultConfigFile is looked up in the working directory when no --config
// flag is given.
const DefaultConfigFile = ".cmaketools.yaml"

// Config is the tool configuration.
type Config struct {
	Name          string   `yaml:"name"`
	MaxBlankLines int      `yaml:"max-blank-lines"`
	Exclude       []string `yaml:"exclude"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Name:          "cmaketools",
		MaxBlankLines: formatter.DefaultMaxBlankLines,
	}
}

// LoadConfig reads a yaml configuration file. An empty path falls back to
// DefaultConfigFile; a missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	f, err := os.Open(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()

	config := DefaultConfig()
	if err := yaml.NewDecoder(f).Decode(&config); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if config.MaxBlankLines <= 0 {
		config.MaxBlankLines = formatter.DefaultMaxBlankLines
	}
	return config, nil
}

// Formatter builds the formatter described by the configuration.
func (c Config) Formatter() *formatter.Formatter {
	return &formatter.Formatter{MaxBlankLines: c.MaxBlankLines}
}
