package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	StoreSQLite = "sqlite"
	StoreFile   = "file"

	NotifierLog     = "log"
	NotifierDesktop = "desktop"
)

type Config struct {
	DataDir    string
	ConfigPath string
	DBPath     string
	StatePath  string
	JournalDir string
	Store      string
	Notifier   string
	LogLevel   string
	Location   *time.Location
}

type fileConfig struct {
	Store    string `yaml:"store"`
	Timezone string `yaml:"timezone"`
	LogLevel string `yaml:"log_level"`
	Notifier string `yaml:"notifier"`
}

func New(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data directory is required")
	}
	cfg := Config{
		DataDir:    dataDir,
		ConfigPath: filepath.Join(dataDir, ".compass", "config.yaml"),
		DBPath:     filepath.Join(dataDir, ".compass", "compass.db"),
		StatePath:  filepath.Join(dataDir, ".compass", "state.json"),
		JournalDir: filepath.Join(dataDir, "journal"),
		Store:      StoreSQLite,
		Notifier:   NotifierLog,
		LogLevel:   "warn",
		Location:   time.Local,
	}

	payload, err := os.ReadFile(cfg.ConfigPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	file := fileConfig{}
	if err := yaml.Unmarshal(payload, &file); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg.apply(file)
}

func (c Config) apply(file fileConfig) (Config, error) {
	switch store := strings.ToLower(strings.TrimSpace(file.Store)); store {
	case "":
	case StoreSQLite, StoreFile:
		c.Store = store
	default:
		return Config{}, fmt.Errorf("unsupported store %q", file.Store)
	}
	switch notifier := strings.ToLower(strings.TrimSpace(file.Notifier)); notifier {
	case "":
	case NotifierLog, NotifierDesktop:
		c.Notifier = notifier
	default:
		return Config{}, fmt.Errorf("unsupported notifier %q", file.Notifier)
	}
	if level := strings.TrimSpace(file.LogLevel); level != "" {
		c.LogLevel = level
	}
	if tz := strings.TrimSpace(file.Timezone); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return Config{}, fmt.Errorf("load timezone %q: %w", tz, err)
		}
		c.Location = loc
	}
	return c, nil
}
