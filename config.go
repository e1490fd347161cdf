package orbitcast

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ConfigEnvVar names the environment variable pointing at the configuration
// directory. When unset, the defaults below apply.
const ConfigEnvVar = "ORBITCAST_CONFIG"

// DefaultEpoch is the reference epoch at which state vectors are requested.
var DefaultEpoch = time.Date(2025, 8, 9, 0, 0, 0, 0, time.UTC)

// Config carries the collaborator settings: where state vectors come from, where the
// exports go, and any per-body step overrides. The engine itself needs none of this.
type Config struct {
	OutputDir   string
	HorizonsURL string
	Source      string // "horizons" or "vsop87"
	VSOP87Dir   string
	Epoch       time.Time
	Steps       map[string]int // per-body step-day overrides, keyed by lowercase name
}

// DefaultConfig returns the configuration used when no conf.toml is present.
func DefaultConfig() Config {
	return Config{
		OutputDir:   ".",
		HorizonsURL: DefaultHorizonsURL,
		Source:      "horizons",
		Epoch:       DefaultEpoch,
		Steps:       make(map[string]int),
	}
}

// StepDaysFor returns the sampling step for a body, preferring a configured
// override over the body's default.
func (c Config) StepDaysFor(body CelestialObject) int {
	if step, ok := c.Steps[strings.ToLower(body.Name)]; ok && step > 0 {
		return step
	}
	return body.StepDays
}

// LoadConfig reads conf.toml from the directory named by ORBITCAST_CONFIG. An unset
// variable is not an error: the defaults are returned so the library works out of
// the box.
func LoadConfig() (Config, error) {
	confPath := os.Getenv(ConfigEnvVar)
	if confPath == "" {
		return DefaultConfig(), nil
	}
	v := viper.New()
	v.SetConfigName("conf")
	v.AddConfigPath(confPath)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("%s/conf.toml not found: %w", confPath, err)
	}

	conf := DefaultConfig()
	if out := v.GetString("general.output_path"); out != "" {
		conf.OutputDir = out
	}
	if u := v.GetString("horizons.url"); u != "" {
		conf.HorizonsURL = u
	}
	if src := v.GetString("general.source"); src != "" {
		conf.Source = src
	}
	conf.VSOP87Dir = v.GetString("vsop87.directory")
	if conf.Source == "vsop87" && conf.VSOP87Dir == "" {
		return Config{}, fmt.Errorf("source is vsop87 but vsop87.directory is not set")
	}
	if epoch := v.GetString("general.epoch"); epoch != "" {
		dt, err := time.Parse("2006-01-02", epoch)
		if err != nil {
			return Config{}, fmt.Errorf("invalid general.epoch: %w", err)
		}
		conf.Epoch = dt.UTC()
	}
	for name := range v.GetStringMap("steps") {
		conf.Steps[strings.ToLower(name)] = v.GetInt("steps." + name)
	}
	return conf, nil
}
