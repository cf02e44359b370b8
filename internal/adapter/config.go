package adapter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mmcdole/tagdeck/internal/domain"
	"github.com/mmcdole/tagdeck/internal/fileutil"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Tags    TagsConfig    `mapstructure:"tags" yaml:"tags"`
	Store   StoreConfig   `mapstructure:"store" yaml:"store"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// ServerConfig describes what the media server reports
type ServerConfig struct {
	URL         string `mapstructure:"url" yaml:"url"`                   // Used to key the song cache
	TagsEnabled bool   `mapstructure:"tags_enabled" yaml:"tags_enabled"` // false if the server reports no tags at all
	TagTypes    string `mapstructure:"tagtypes" yaml:"tagtypes"`         // Comma separated tags the server supports
}

// TagsConfig holds the user's tag selections (comma separated tag names)
type TagsConfig struct {
	Columns string `mapstructure:"columns" yaml:"columns"` // Tags rendered in song listings
	Search  string `mapstructure:"search" yaml:"search"`   // Tags searched by the filter
}

// StoreConfig holds song cache configuration
type StoreConfig struct {
	Path string `mapstructure:"path" yaml:"path"` // "" keeps the cache in memory
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file" yaml:"file"`
	Level string `mapstructure:"level" yaml:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL:         "localhost:6600",
			TagsEnabled: true,
			TagTypes:    strings.Join(domain.TagNames(), ","),
		},
		Tags: TagsConfig{
			Columns: "Title,Artist,Album,Genre",
			Search:  "Artist,Album,AlbumArtist,Title,Genre",
		},
		Store: StoreConfig{
			Path: defaultCachePath(),
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "tagdeck", "tagdeck.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "tagdeck", "tagdeck.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "tagdeck")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "tagdeck")
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "tagdeck", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "tagdeck", "cache")
	}
}

// DefaultConfigFile returns the path SaveConfig writes to by default
func DefaultConfigFile() string {
	return filepath.Join(defaultConfigPath(), "config.yaml")
}

// LoadConfig loads configuration from file and environment.
// An empty path searches the default config directory and ".".
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Defaults make every key visible to the environment overrides
	v.SetDefault("server.url", cfg.Server.URL)
	v.SetDefault("server.tags_enabled", cfg.Server.TagsEnabled)
	v.SetDefault("server.tagtypes", cfg.Server.TagTypes)
	v.SetDefault("tags.columns", cfg.Tags.Columns)
	v.SetDefault("tags.search", cfg.Tags.Search)
	v.SetDefault("store.path", cfg.Store.Path)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)

	// Environment variable overrides, e.g. TAGDECK_TAGS_COLUMNS
	v.SetEnvPrefix("TAGDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes cfg as YAML to path without ever leaving a partial file
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = DefaultConfigFile()
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := fileutil.WriteFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ClearCache removes all cached data below dir
func ClearCache(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.RemoveAll(dir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
