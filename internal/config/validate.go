package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/talgya/cursus/internal/agents"
)

// Validate rejects configurations that would produce a degenerate run.
func (c Config) Validate() error {
	if c.Years < 0 {
		return invalid("years must be >= 0, got %d", c.Years)
	}
	if c.PSIPenalty < 0 {
		return invalid("psi_penalty must be >= 0, got %d", c.PSIPenalty)
	}
	if c.PromotionTenure < 0 {
		return invalid("promotion_tenure must be >= 0, got %d", c.PromotionTenure)
	}
	if c.ConsulCooldown < 0 {
		return invalid("consul_cooldown must be >= 0, got %d", c.ConsulCooldown)
	}

	le := c.LifeExpectancy
	if le.StdDev < 0 {
		return invalid("life_expectancy.std_dev must be >= 0, got %g", le.StdDev)
	}
	if le.Min < 0 || le.Min > le.Max {
		return invalid("life_expectancy bounds [%d, %d] are not a valid range", le.Min, le.Max)
	}

	if c.Influx.StdDev < 0 {
		return invalid("influx.std_dev must be >= 0, got %g", c.Influx.StdDev)
	}
	if c.Influx.Mean < 0 && c.Influx.StdDev == 0 {
		return invalid("influx.mean %g with zero std_dev never yields a candidate count", c.Influx.Mean)
	}

	for _, o := range agents.Offices {
		oc := c.Office(o)
		if oc.Capacity <= 0 {
			return invalid("offices.%s.capacity must be > 0, got %d", o, oc.Capacity)
		}
		if oc.MinAge < 0 {
			return invalid("offices.%s.min_age must be >= 0, got %d", o, oc.MinAge)
		}
		if oc.InitialAgeMin < 0 || oc.InitialAgeMin > oc.InitialAgeMax {
			return invalid("offices.%s initial age band [%d, %d] is not a valid range",
				o, oc.InitialAgeMin, oc.InitialAgeMax)
		}
	}

	if _, err := ParseLevel(c.LogLevel); err != nil {
		return invalid("%v", err)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...)
}

// ParseLevel maps a log level name to a slog.Level. Empty means info.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
}
