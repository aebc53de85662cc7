package kepler

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// ConfigEnv is the environment variable holding the directory of conf.toml.
const ConfigEnv = "KEPLER_CONFIG"

// Config defines the numerical settings of the propagation and where to export.
type Config struct {
	Delta     float64 // Width of the near parabolic band
	OutputDir string
}

// DefaultConfig returns the configuration used when no file is provided.
func DefaultConfig() Config {
	return Config{Delta: DefaultDelta, OutputDir: "."}
}

// LoadConfig reads conf.toml from the provided directory.
func LoadConfig(dir string) (Config, error) {
	v := viper.New()
	v.SetConfigName("conf")
	v.SetConfigType("toml")
	v.AddConfigPath(dir)
	def := DefaultConfig()
	v.SetDefault("propagation.delta", def.Delta)
	v.SetDefault("general.output_path", def.OutputDir)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("%s/conf.toml: %s", dir, err)
	}
	conf := Config{
		Delta:     v.GetFloat64("propagation.delta"),
		OutputDir: v.GetString("general.output_path"),
	}
	if conf.Delta <= 0 || conf.Delta >= 1 {
		return Config{}, fmt.Errorf("propagation.delta must be in (0, 1), got %f", conf.Delta)
	}
	return conf, nil
}

// ConfigFromEnv loads the configuration from the directory in KEPLER_CONFIG,
// or returns the default configuration if it is unset.
func ConfigFromEnv() (Config, error) {
	confPath := os.Getenv(ConfigEnv)
	if confPath == "" {
		return DefaultConfig(), nil
	}
	return LoadConfig(confPath)
}
