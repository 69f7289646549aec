package config

import (
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config locates the engine daemon and the local snapshot cache. The
// authoritative task configuration (credentials, default calendar, aliases)
// lives engine-side; this is just enough to reach it.
type Config struct {
	EngineURL string `json:"engine_url"`
	CachePath string `json:"cache_path"`
}

// Load reads .tasque.yaml (cwd, then home) with TASQUE_* env overrides.
func Load() (*Config, error) {
	viper.SetDefault("engine-url", "http://127.0.0.1:7332")
	viper.SetDefault("cache-path", "~/.tasque/cache")
	viper.SetConfigName(".tasque") // .yaml is implicit
	viper.SetEnvPrefix("TASQUE")
	viper.AutomaticEnv()

	if override := os.Getenv("TASQUE_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		viper.AddConfigPath(home)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cache, err := homedir.Expand(viper.GetString("cache-path"))
	if err != nil {
		cache = filepath.Join(".", ".tasque-cache")
	}
	return &Config{
		EngineURL: viper.GetString("engine-url"),
		CachePath: cache,
	}, nil
}
