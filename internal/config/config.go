package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/athlemics/athlemics/internal/storage"
)

// Backend names accepted in storage.backend.
const (
	BackendLocal   = "local"
	BackendSurreal = "surreal"
)

// Config is the application configuration, read from
// ~/.athlemics/config.yaml and ATHLEMICS_* environment variables. The
// config file is optional; defaults give a local-storage, single-profile
// setup.
type Config struct {
	Storage StorageConfig
	Surreal storage.SurrealConfig
	Profile ProfileConfig
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Backend string
}

// ProfileConfig identifies the signed-in profile. The id stands in for
// the authenticated user id; remote storage is keyed by it.
type ProfileConfig struct {
	ID string
}

// Load reads the configuration, tolerating a missing config file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir, err := configDir(); err == nil {
		v.AddConfigPath(dir)
	}
	v.SetEnvPrefix("athlemics")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("storage.backend", BackendLocal)
	v.SetDefault("surreal.url", "ws://localhost:8000/rpc")
	v.SetDefault("surreal.namespace", "athlemics")
	v.SetDefault("surreal.database", "athlemics")
	v.SetDefault("profile.id", "default")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, err
		}
	}

	return &Config{
		Storage: StorageConfig{
			Backend: v.GetString("storage.backend"),
		},
		Surreal: storage.SurrealConfig{
			URL:       v.GetString("surreal.url"),
			Namespace: v.GetString("surreal.namespace"),
			Database:  v.GetString("surreal.database"),
			User:      v.GetString("surreal.user"),
			Pass:      v.GetString("surreal.pass"),
		},
		Profile: ProfileConfig{
			ID: v.GetString("profile.id"),
		},
	}, nil
}

func configDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".athlemics"), nil
}
