package config

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory.
const FileName = "orient.cfg.json"

// Load sets default values and reads FileName from configDir if present.
// An empty configDir only sets defaults. A missing file is not an error;
// a malformed one is.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logFormat", "text")

	viper.SetDefault("output.format", "text")

	viper.SetDefault("view.fps", 60)
	viper.SetDefault("view.background", "30,30,40")
	viper.SetDefault("view.cameraDistance", 0.0)

	viper.SetDefault("render.width", 640)
	viper.SetDefault("render.height", 480)

	viper.SetDefault("export.scale", 1.0)

	if configDir == "" {
		return nil
	}

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetFloat64 returns a float config value.
func GetFloat64(key string) float64 {
	return viper.GetFloat64(key)
}

// BindFlag makes flag override key when it was set on the command line.
// Unset flags leave the config file and default values in place.
func BindFlag(key string, flag *pflag.Flag) error {
	if err := viper.BindPFlag(key, flag); err != nil {
		return fmt.Errorf("bind flag %q: %w", flag.Name, err)
	}
	return nil
}
