package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "garden.db"
	DefaultLogName        = "garden.log"
	DefaultLogLevel       = "info"
	DefaultTrendDays      = 7
)

type Config struct {
	DBPath    string `toml:"db_path"`
	LogFile   string `toml:"log_file"`
	LogLevel  string `toml:"log_level"`
	TrendDays int    `toml:"trend_days"`
}

// Dir returns the directory garden keeps its files in.
func Dir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "garden"), nil
}

func ResolveConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultConfigFileName), nil
}

// LoadOrCreate reads the config at path, writing a default file first if none
// exists. Relative paths in the file are resolved against its directory.
func LoadOrCreate(path string) (Config, error) {
	dir := filepath.Dir(path)
	cfg := Default(dir)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, fmt.Errorf("write default config: %w", err)
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.fill(dir)
	return cfg, nil
}

// Default returns the configuration used when no file exists in dir.
func Default(dir string) Config {
	return Config{
		DBPath:    filepath.Join(dir, DefaultDBName),
		LogFile:   filepath.Join(dir, DefaultLogName),
		LogLevel:  DefaultLogLevel,
		TrendDays: DefaultTrendDays,
	}
}

func (c *Config) fill(dir string) {
	def := Default(dir)
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	} else if !filepath.IsAbs(c.DBPath) {
		c.DBPath = filepath.Join(dir, c.DBPath)
	}
	if c.LogFile == "" {
		c.LogFile = def.LogFile
	} else if !filepath.IsAbs(c.LogFile) {
		c.LogFile = filepath.Join(dir, c.LogFile)
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.TrendDays <= 0 {
		c.TrendDays = def.TrendDays
	}
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
