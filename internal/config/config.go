// Package config provides configuration loading for cursus.
// Defaults are overlaid by a YAML file, then by CURSUS_* environment
// variables, then by command-line flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/talgya/cursus/internal/agents"
	"github.com/talgya/cursus/internal/entropy"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "CURSUS_"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config contains every simulation parameter.
type Config struct {
	// Seed for the run's random stream. Zero asks the CLI to pick one.
	Seed int64 `yaml:"seed" env:"SEED"`

	// Years is the number of simulated years in a run.
	Years int `yaml:"years" env:"YEARS"`

	InitialPSI int `yaml:"initial_psi" env:"INITIAL_PSI"`
	PSIPenalty int `yaml:"psi_penalty" env:"PSI_PENALTY"` // Per unfilled seat per year

	PromotionTenure int `yaml:"promotion_tenure" env:"PROMOTION_TENURE"`
	ConsulCooldown  int `yaml:"consul_cooldown" env:"CONSUL_COOLDOWN"`

	LifeExpectancy LifeExpectancyConfig `yaml:"life_expectancy" envPrefix:"LIFE_"`
	Influx         InfluxConfig         `yaml:"influx" envPrefix:"INFLUX_"`
	Offices        OfficesConfig        `yaml:"offices" envPrefix:"OFFICE_"`

	// LogLevel is one of "debug", "info", "warn" or "error".
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`

	// DBPath is where finished runs are recorded. Empty disables recording.
	DBPath string `yaml:"db_path" env:"DB_PATH"`
}

// LifeExpectancyConfig is a normal distribution truncated to [Min, Max].
type LifeExpectancyConfig struct {
	Mean   float64 `yaml:"mean" env:"MEAN"`
	StdDev float64 `yaml:"std_dev" env:"STD_DEV"`
	Min    int     `yaml:"min" env:"MIN"`
	Max    int     `yaml:"max" env:"MAX"`
}

// InfluxConfig is the normal distribution of fresh candidates per year.
type InfluxConfig struct {
	Mean   float64 `yaml:"mean" env:"MEAN"`
	StdDev float64 `yaml:"std_dev" env:"STD_DEV"`
}

// OfficeConfig configures a single office.
type OfficeConfig struct {
	Capacity      int `yaml:"capacity" env:"CAPACITY"`
	MinAge        int `yaml:"min_age" env:"MIN_AGE"`
	InitialAgeMin int `yaml:"initial_age_min" env:"INITIAL_AGE_MIN"`
	InitialAgeMax int `yaml:"initial_age_max" env:"INITIAL_AGE_MAX"`
}

// OfficesConfig configures the four offices.
type OfficesConfig struct {
	Quaestor OfficeConfig `yaml:"quaestor" envPrefix:"QUAESTOR_"`
	Aedile   OfficeConfig `yaml:"aedile" envPrefix:"AEDILE_"`
	Praetor  OfficeConfig `yaml:"praetor" envPrefix:"PRAETOR_"`
	Consul   OfficeConfig `yaml:"consul" envPrefix:"CONSUL_"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Seed:            42,
		Years:           200,
		InitialPSI:      100,
		PSIPenalty:      5,
		PromotionTenure: 2,
		ConsulCooldown:  10,
		LifeExpectancy:  LifeExpectancyConfig{Mean: 55, StdDev: 10, Min: 25, Max: 80},
		Influx:          InfluxConfig{Mean: 15, StdDev: 5},
		Offices: OfficesConfig{
			Quaestor: OfficeConfig{Capacity: 20, MinAge: 30, InitialAgeMin: 30, InitialAgeMax: 34},
			Aedile:   OfficeConfig{Capacity: 10, MinAge: 36, InitialAgeMin: 36, InitialAgeMax: 39},
			Praetor:  OfficeConfig{Capacity: 8, MinAge: 39, InitialAgeMin: 39, InitialAgeMax: 42},
			Consul:   OfficeConfig{Capacity: 2, MinAge: 42, InitialAgeMin: 42, InitialAgeMax: 45},
		},
		LogLevel: "info",
	}
}

// Load builds a Config from defaults, the optional YAML file at path, and
// the environment. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return cfg, err
		}
	}
	if err := cfg.mergeEnv(); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return c.decodeYAML(f, path)
}

func (c *Config) decodeYAML(r io.Reader, name string) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func (c *Config) mergeEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Office returns the configuration for office.
func (c Config) Office(office agents.Office) OfficeConfig {
	switch office {
	case agents.OfficeQuaestor:
		return c.Offices.Quaestor
	case agents.OfficeAedile:
		return c.Offices.Aedile
	case agents.OfficePraetor:
		return c.Offices.Praetor
	case agents.OfficeConsul:
		return c.Offices.Consul
	}
	return OfficeConfig{}
}

// Rules converts the ladder parameters into agents.Rules.
func (c Config) Rules() agents.Rules {
	r := agents.Rules{
		Offices:         make(map[agents.Office]agents.OfficeSpec, len(agents.Offices)),
		PromotionTenure: c.PromotionTenure,
		ConsulCooldown:  c.ConsulCooldown,
	}
	for _, o := range agents.Offices {
		oc := c.Office(o)
		r.Offices[o] = agents.OfficeSpec{
			Capacity:      oc.Capacity,
			MinAge:        oc.MinAge,
			InitialAgeMin: oc.InitialAgeMin,
			InitialAgeMax: oc.InitialAgeMax,
		}
	}
	return r
}

// LifeTable returns the life expectancy distribution.
func (c Config) LifeTable() entropy.LifeExpectancy {
	return entropy.LifeExpectancy{
		Mean:   c.LifeExpectancy.Mean,
		StdDev: c.LifeExpectancy.StdDev,
		Min:    c.LifeExpectancy.Min,
		Max:    c.LifeExpectancy.Max,
	}
}

// InfluxDistribution returns the annual candidate influx distribution.
func (c Config) InfluxDistribution() entropy.Influx {
	return entropy.Influx{Mean: c.Influx.Mean, StdDev: c.Influx.StdDev}
}
