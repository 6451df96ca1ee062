package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/talgya/cursus/internal/agents"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cursus.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}

	rules := cfg.Rules()
	want := agents.DefaultRules()
	for _, o := range agents.Offices {
		if rules.Offices[o] != want.Offices[o] {
			t.Errorf("%v: %+v, want %+v", o, rules.Offices[o], want.Offices[o])
		}
	}
	if rules.PromotionTenure != 2 || rules.ConsulCooldown != 10 {
		t.Errorf("tenure %d cooldown %d, want 2 10", rules.PromotionTenure, rules.ConsulCooldown)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, `
seed: 7
years: 50
psi_penalty: 3
life_expectancy:
  mean: 60
offices:
  consul:
    capacity: 4
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Seed != 7 || cfg.Years != 50 || cfg.PSIPenalty != 3 {
		t.Errorf("seed %d years %d penalty %d, want 7 50 3", cfg.Seed, cfg.Years, cfg.PSIPenalty)
	}
	if cfg.LifeExpectancy.Mean != 60 || cfg.LifeExpectancy.StdDev != 10 {
		t.Errorf("life expectancy %+v, want mean 60 with default std_dev", cfg.LifeExpectancy)
	}
	if cfg.Offices.Consul.Capacity != 4 || cfg.Offices.Consul.MinAge != 42 {
		t.Errorf("consul %+v, want capacity 4 with default min_age", cfg.Offices.Consul)
	}
	if cfg.Offices.Quaestor.Capacity != 20 {
		t.Errorf("quaestor capacity %d, want default 20", cfg.Offices.Quaestor.Capacity)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeFile(t, ""))
	if err != nil {
		t.Fatalf("Load(empty) = %v", err)
	}
	if cfg.Years != 200 {
		t.Errorf("years = %d, want 200", cfg.Years)
	}
}

func TestLoadRejectsUnknownField(t *testing.T) {
	if _, err := Load(writeFile(t, "tribunes: 10\n")); err == nil {
		t.Error("Load accepted an unknown field")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load accepted a missing file")
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("CURSUS_YEARS", "12")
	t.Setenv("CURSUS_INFLUX_MEAN", "0")
	t.Setenv("CURSUS_INFLUX_STD_DEV", "0")
	t.Setenv("CURSUS_OFFICE_PRAETOR_CAPACITY", "6")

	path := writeFile(t, "years: 99\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Years != 12 {
		t.Errorf("years = %d, want env value 12 over file value 99", cfg.Years)
	}
	if cfg.Influx.Mean != 0 || cfg.Influx.StdDev != 0 {
		t.Errorf("influx = %+v, want zero", cfg.Influx)
	}
	if cfg.Offices.Praetor.Capacity != 6 {
		t.Errorf("praetor capacity = %d, want 6", cfg.Offices.Praetor.Capacity)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative years", func(c *Config) { c.Years = -1 }},
		{"negative penalty", func(c *Config) { c.PSIPenalty = -5 }},
		{"negative tenure", func(c *Config) { c.PromotionTenure = -1 }},
		{"negative cooldown", func(c *Config) { c.ConsulCooldown = -1 }},
		{"zero capacity", func(c *Config) { c.Offices.Aedile.Capacity = 0 }},
		{"negative capacity", func(c *Config) { c.Offices.Consul.Capacity = -2 }},
		{"negative entry age", func(c *Config) { c.Offices.Quaestor.MinAge = -1 }},
		{"inverted age band", func(c *Config) { c.Offices.Praetor.InitialAgeMin = 50 }},
		{"inverted life bounds", func(c *Config) { c.LifeExpectancy.Min = 90 }},
		{"negative life std dev", func(c *Config) { c.LifeExpectancy.StdDev = -1 }},
		{"negative influx std dev", func(c *Config) { c.Influx.StdDev = -1 }},
		{"influx fixed below zero", func(c *Config) { c.Influx = InfluxConfig{Mean: -3} }},
		{"bad log level", func(c *Config) { c.LogLevel = "chatty" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"", "info", "DEBUG", "warn", "error"} {
		if _, err := ParseLevel(name); err != nil {
			t.Errorf("ParseLevel(%q) = %v", name, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("ParseLevel(loud) succeeded")
	}
}
