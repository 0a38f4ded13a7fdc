package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/doeshing/termbot/assets"
	"github.com/doeshing/termbot/internal/domain"
	"github.com/doeshing/termbot/internal/pkg/filesystem"
	"github.com/doeshing/termbot/internal/ports"
)

// EnvPrefix namespaces environment overrides, e.g. TERMBOT_EXECUTION_TIMEOUT_SECONDS.
const EnvPrefix = "TERMBOT"

// FileLoader loads YAML configuration from ~/.termbot/config.yaml (overridable via TERMBOT_CONFIG).
// Values are layered: embedded defaults, then the user file, then environment.
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader. An empty path selects the default location.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Path reports the file Load reads.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return filesystem.ExpandPath(l.overridePath)
	}
	if custom := os.Getenv(EnvPrefix + "_CONFIG"); custom != "" {
		return filesystem.ExpandPath(custom)
	}
	return filepath.Join(filesystem.AppDir(), "config.yaml")
}

// Load implements ports.ConfigProvider. A missing file is created from the
// embedded defaults; failing to create it is not an error.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(assets.DefaultConfigYAML)); err != nil {
		return domain.Config{}, fmt.Errorf("parse embedded defaults: %w", err)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := l.Path()
	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return domain.Config{}, fmt.Errorf("stat %s: %w", path, err)
		}
		_ = writeDefault(path)
	} else {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return domain.Config{}, fmt.Errorf("read %s: %w", path, err)
		}
	}

	var cfg domain.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return domain.Config{}, fmt.Errorf("decode config: %w", err)
	}
	return hydrateDefaults(cfg), nil
}

func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return err
	}
	return os.WriteFile(path, assets.DefaultConfigYAML, domain.SecureFilePermissions)
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.Model.Endpoint == "" {
		cfg.Model.Endpoint = domain.DefaultEndpoint
	}
	if cfg.Model.ModelID == "" {
		cfg.Model.ModelID = domain.DefaultModelID
	}
	cfg.Security.RulesFile = filesystem.ExpandPath(cfg.Security.RulesFile)
	cfg.History.Path = filesystem.ExpandPath(cfg.History.Path)
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
