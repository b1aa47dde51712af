package cmd

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/etnz/stocksim"
	"github.com/sirupsen/logrus"
)

// sessionFlags are the flags of the commands opening a session.
type sessionFlags struct {
	seed     int64
	cash     float64
	universe string
	days     int
}

func (s *sessionFlags) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&s.seed, "seed", Env.Seed, "Random seed of the market, 0 seeds from the clock. Env: "+EnvSeed)
	f.Float64Var(&s.cash, "cash", Env.Cash, "Starting cash balance in dollars. Env: "+EnvCash)
	f.StringVar(&s.universe, "universe", Env.Universe, "YAML file listing the stocks of the market, built-in list by default. Env: "+EnvUniverse)
	f.IntVar(&s.days, "days", stocksim.DefaultHistoryDays, "Days of generated price history.")
}

// config returns the session configuration described by the flags.
func (s *sessionFlags) config(log logrus.FieldLogger, now func() time.Time) (stocksim.SessionConfig, error) {
	cfg := stocksim.SessionConfig{
		Cash:        stocksim.USD(s.cash),
		HistoryDays: s.days,
		Now:         now,
		Logger:      log,
	}
	if s.cash <= 0 {
		return cfg, fmt.Errorf("starting cash must be positive, got %v", s.cash)
	}
	seed := s.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cfg.Rand = rand.New(rand.NewSource(seed))

	if s.universe != "" {
		f, err := os.Open(s.universe)
		if err != nil {
			return cfg, err
		}
		defer f.Close()
		if cfg.Stocks, err = stocksim.LoadUniverse(f); err != nil {
			return cfg, fmt.Errorf("%s: %w", s.universe, err)
		}
		log.WithField("stocks", len(cfg.Stocks)).Debugf("universe loaded from %s", s.universe)
	}
	return cfg, nil
}

// open opens a session on the clock.
func (s *sessionFlags) open(log logrus.FieldLogger) (*stocksim.Session, error) {
	cfg, err := s.config(log, time.Now)
	if err != nil {
		return nil, err
	}
	return stocksim.NewSession(cfg)
}
