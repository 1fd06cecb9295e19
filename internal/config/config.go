// Package config defines the data structures related to configuration and
// includes functions for loading and validating it.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/iwvelando/sales-roi-forecast/internal/catalog"
	"github.com/iwvelando/sales-roi-forecast/internal/roi"
	"github.com/iwvelando/sales-roi-forecast/pkg/constants"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for sales-roi-forecast.
type Configuration struct {
	Defaults Defaults         `yaml:"defaults,omitempty"`
	Catalog  *catalog.Catalog `yaml:"catalog,omitempty"`
	Logging  LoggingConfig    `yaml:"logging,omitempty"`
	Output   OutputConfig     `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, markdown
}

// Defaults are the metrics and scenario used when the caller supplies none.
type Defaults struct {
	Scenario string           `yaml:"scenario,omitempty"`
	Metrics  roi.SalesMetrics `yaml:"metrics,omitempty"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("defaults.scenario", constants.ScenarioAverage)
	v.SetDefault("defaults.metrics.teamSize", constants.DefaultTeamSize)
	v.SetDefault("defaults.metrics.avgDealSize", constants.DefaultAvgDealSize)
	v.SetDefault("defaults.metrics.currentCloseRate", constants.DefaultCurrentCloseRate)
	v.SetDefault("defaults.metrics.salesCycleLength", constants.DefaultSalesCycleLength)
	v.SetDefault("defaults.metrics.leadsPerMonth", constants.DefaultLeadsPerMonth)
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", "")
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Environment variables prefixed with ROI_ override file
// values, e.g. ROI_DEFAULTS_SCENARIO.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

// DefaultConfiguration returns the configuration used when no file is given.
func DefaultConfiguration() (*Configuration, error) {
	return decode(newViper())
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// LoadDotEnv loads KEY=value pairs from path into the process environment
// without overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// DefaultScenario resolves the configured default scenario.
func (c *Configuration) DefaultScenario() roi.Scenario {
	s, _ := roi.ParseScenario(c.Defaults.Scenario)
	return s
}

// ResolveCatalog returns the configured catalog, or the bundled one when the
// configuration does not define any catalog data.
func (c *Configuration) ResolveCatalog() (*catalog.Catalog, error) {
	if !c.Catalog.Empty() {
		return c.Catalog, nil
	}
	return catalog.Default()
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if _, known := roi.ParseScenario(c.Defaults.Scenario); !known {
		warnings = append(warnings, fmt.Sprintf("Default scenario '%s' is not recognized, using '%s'",
			c.Defaults.Scenario, constants.ScenarioAverage))
	}

	if err := c.Defaults.Metrics.Validate(); err != nil {
		warnings = append(warnings, fmt.Sprintf("Default metrics are not usable without overrides: %v", err))
	}

	if !c.Catalog.Empty() {
		warnings = append(warnings, c.Catalog.Validate()...)
	}

	return warnings
}
