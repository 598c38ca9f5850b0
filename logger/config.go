package logger

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig is the YAML form of the Logger settings. Keys that are absent
// from the document stay nil and leave the current setting untouched.
//
//	application_name: shop
//	max_logs: 500
//	enable_console_sink: false
//	enable_storage_sink: true
//	max_stored: 200
type FileConfig struct {
	ApplicationName   *string `yaml:"application_name"`
	MaxLogs           *int    `yaml:"max_logs"`
	EnableConsoleSink *bool   `yaml:"enable_console_sink"`
	EnableStorageSink *bool   `yaml:"enable_storage_sink"`
	MaxStored         *int    `yaml:"max_stored"`
}

// LoadConfig reads a YAML document from r. An empty document yields an
// empty FileConfig.
func LoadConfig(r io.Reader) (*FileConfig, error) {
	bytes, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(bytes, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfigFile reads a YAML config file
func LoadConfigFile(path string) (*FileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return LoadConfig(f)
}

func (c *FileConfig) validate() error {
	if c.ApplicationName != nil && *c.ApplicationName == "" {
		return fmt.Errorf("invalid config: application_name must not be empty")
	}
	if c.MaxLogs != nil && *c.MaxLogs < 1 {
		return fmt.Errorf("invalid config: max_logs must be at least 1, got %d", *c.MaxLogs)
	}
	if c.MaxStored != nil && *c.MaxStored < 1 {
		return fmt.Errorf("invalid config: max_stored must be at least 1, got %d", *c.MaxStored)
	}
	return nil
}

// Options converts the keys present in the file into options
func (c *FileConfig) Options() []Option {
	var opts []Option
	if c.ApplicationName != nil {
		opts = append(opts, WithApplicationName(*c.ApplicationName))
	}
	if c.MaxLogs != nil {
		opts = append(opts, WithMaxLogs(*c.MaxLogs))
	}
	if c.EnableConsoleSink != nil {
		opts = append(opts, WithConsoleSink(*c.EnableConsoleSink))
	}
	if c.EnableStorageSink != nil {
		opts = append(opts, WithStorageSink(*c.EnableStorageSink))
	}
	if c.MaxStored != nil {
		opts = append(opts, WithMaxStored(*c.MaxStored))
	}
	return opts
}
