package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/etnz/stocksim"
)

// Environment variables holding the defaults of the command line flags.
// They can also be set in a .env file.
const (
	EnvAddr         = "STOCKSIM_ADDR"
	EnvTickInterval = "STOCKSIM_TICK_INTERVAL"
	EnvSeed         = "STOCKSIM_SEED"
	EnvCash         = "STOCKSIM_CASH"
	EnvUniverse     = "STOCKSIM_UNIVERSE"
	EnvServer       = "STOCKSIM_SERVER"
)

// Config holds the defaults of the command line flags.
type Config struct {
	Addr     string        // address served by serve
	Interval time.Duration // market tick interval
	Seed     int64         // random seed, 0 seeds from the clock
	Cash     float64       // starting cash in dollars
	Universe string        // YAML file listing the stocks, empty for the built-in list
	Server   string        // base URL of the server used by the client commands
}

// DefaultConfig returns the configuration used when the environment is empty.
func DefaultConfig() Config {
	return Config{
		Addr:     ":8080",
		Interval: stocksim.DefaultTickInterval,
		Cash:     stocksim.DefaultCash,
		Server:   "http://localhost:8080",
	}
}

// ConfigFromEnv returns the default configuration overridden by the variables
// found with getenv. Every invalid variable is reported.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	c := DefaultConfig()
	var errs error
	if v := getenv(EnvAddr); v != "" {
		c.Addr = v
	}
	if v := getenv(EnvTickInterval); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil && d <= 0 {
			err = errors.New("must be positive")
		}
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("invalid %s=%q: %w", EnvTickInterval, v, err))
		}
		c.Interval = d
	}
	if v := getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("invalid %s=%q: %w", EnvSeed, v, err))
		}
		c.Seed = seed
	}
	if v := getenv(EnvCash); v != "" {
		cash, err := strconv.ParseFloat(v, 64)
		if err == nil && cash <= 0 {
			err = errors.New("must be positive")
		}
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("invalid %s=%q: %w", EnvCash, v, err))
		}
		c.Cash = cash
	}
	if v := getenv(EnvUniverse); v != "" {
		c.Universe = v
	}
	if v := getenv(EnvServer); v != "" {
		c.Server = v
	}
	if errs != nil {
		return DefaultConfig(), errs
	}
	return c, nil
}

// Env is the configuration read from the environment, used as flags defaults.
var Env = DefaultConfig()

// LoadEnv reads Env from the process environment.
func LoadEnv() error {
	c, err := ConfigFromEnv(os.Getenv)
	if err != nil {
		return err
	}
	Env = c
	return nil
}
