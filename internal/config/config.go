package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// FileName is the name of the optional config file looked up in the config dir
const FileName = "govis.cfg.json"

// WindowConfig holds viewer window settings
type WindowConfig struct {
	Width  int `json:"width" mapstructure:"width"`
	Height int `json:"height" mapstructure:"height"`
	FPS    int `json:"fps" mapstructure:"fps"`
}

// CameraConfig holds projection settings
type CameraConfig struct {
	FovY float64 `json:"fovy" mapstructure:"fovy"`
	Near float64 `json:"near" mapstructure:"near"`
	Far  float64 `json:"far" mapstructure:"far"`
}

// PropertiesConfig controls persistence of structure properties
type PropertiesConfig struct {
	File  string `json:"file" mapstructure:"file"`
	Watch bool   `json:"watch" mapstructure:"watch"`
}

// Settings is a typed snapshot of the loaded configuration
type Settings struct {
	LogLevel         string           `json:"logLevel" mapstructure:"logLevel"`
	TransparencyMode string           `json:"transparencyMode" mapstructure:"transparencyMode"`
	Window           WindowConfig     `json:"window" mapstructure:"window"`
	Camera           CameraConfig     `json:"camera" mapstructure:"camera"`
	Properties       PropertiesConfig `json:"properties" mapstructure:"properties"`
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("transparencyMode", "None")

	viper.SetDefault("window.width", 1400)
	viper.SetDefault("window.height", 900)
	viper.SetDefault("window.fps", 60)

	viper.SetDefault("camera.fovy", 45.0)
	viper.SetDefault("camera.near", 0.01)
	viper.SetDefault("camera.far", 1000.0)

	viper.SetDefault("properties.file", "")
	viper.SetDefault("properties.watch", true)
}

// Load sets default values and reads the config file from configDir if
// one exists. A missing file is fine; a malformed one is an error.
func Load(configDir string) error {
	setDefaults()

	viper.SetConfigName(FileName)
	viper.SetConfigType("json")
	if configDir != "" {
		viper.AddConfigPath(configDir)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// Current decodes the active configuration into Settings
func Current() (Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	return s, nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetFloat returns a float config value.
func GetFloat(key string) float64 {
	return viper.GetFloat64(key)
}

// Set overrides a config value, e.g. from a command line flag.
func Set(key string, value any) {
	viper.Set(key, value)
}
