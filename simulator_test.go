package stocksim

import (
	"math/rand"
	"testing"
	"time"

	"github.com/etnz/stocksim/date"
)

func TestGenerateHistory(t *testing.T) {
	for _, seed := range SeedStocks {
		t.Run(seed.Symbol, func(t *testing.T) {
			sim := NewSimulator(rand.New(rand.NewSource(1)))
			h := sim.GenerateHistory(seed.History, 30, day0)

			if h.Len() != 31 {
				t.Fatalf("history has %d points, want 31", h.Len())
			}
			if last, _ := h.Latest(); last != date.Of(day0) {
				t.Errorf("history ends on %s, want %s", last, date.Of(day0))
			}
			want := date.Of(day0).Add(-30)
			for day, p := range h.Values() {
				if day != want {
					t.Errorf("got point on %s, want %s", day, want)
				}
				want = want.Add(1)
				if p.Price.LessThan(USD(seed.History.Min)) || p.Price.GreaterThan(USD(seed.History.Max)) {
					t.Errorf("%s: price %v out of [%v, %v]", day, p.Price, seed.History.Min, seed.History.Max)
				}
				if !p.Price.Equal(p.Price.Round()) {
					t.Errorf("%s: price %v is not rounded to cents", day, p.Price.Decimal())
				}
				if p.Volume < minVolume || p.Volume >= minVolume+volumeRange {
					t.Errorf("%s: volume %d out of range", day, p.Volume)
				}
			}
		})
	}
}

func TestSimulatorDeterminism(t *testing.T) {
	run := func() *Market {
		sim := NewSimulator(rand.New(rand.NewSource(7)))
		m := newTestMarket(t)
		for _, seed := range SeedStocks {
			if err := m.Add(seed.NewStock(sim, 10, day0)); err != nil {
				t.Fatal(err)
			}
		}
		for i := range 5 {
			sim.Tick(m, day0.Add(time.Duration(i)*time.Hour*24))
		}
		return m
	}

	a, b := run(), run()
	for _, sa := range a.Stocks() {
		sb := b.Get(sa.Symbol)
		if !sa.Price.Equal(sb.Price) || sa.ChangePercent != sb.ChangePercent {
			t.Errorf("%s: %v (%v) != %v (%v)", sa.Symbol, sa.Price, sa.ChangePercent, sb.Price, sb.ChangePercent)
		}
		if sa.History.Len() != sb.History.Len() {
			t.Errorf("%s: history lengths differ", sa.Symbol)
		}
	}
}

func TestTickBounds(t *testing.T) {
	sim := NewSimulator(rand.New(rand.NewSource(3)))
	m := newTestMarket(t, quote("AAPL", 182.52, 0, 0), quote("TSLA", 175.34, 0, 0), quote("NFLX", 609.25, 0, 0))
	for i := range 200 {
		sim.Tick(m, day0.Add(time.Duration(i)*time.Second))
		for _, s := range m.Stocks() {
			vol := sim.volatility(s.Symbol)
			lo, hi := Percent(-upwardBias*vol-0.005), Percent((1-upwardBias)*vol+0.005)
			if s.ChangePercent < lo || s.ChangePercent > hi {
				t.Fatalf("%s: change %v out of [%v, %v]", s.Symbol, s.ChangePercent, lo, hi)
			}
			if !s.Price.Equal(s.Price.Round()) || !s.Change.Equal(s.Change.Round()) {
				t.Fatalf("%s: price %v or change %v not rounded", s.Symbol, s.Price.Decimal(), s.Change.Decimal())
			}
			if !s.LastUpdated.Equal(day0.Add(time.Duration(i) * time.Second)) {
				t.Fatalf("%s: last updated %v", s.Symbol, s.LastUpdated)
			}
		}
	}
}

func TestTickHistory(t *testing.T) {
	sim := NewSimulator(rand.New(rand.NewSource(5)))
	s := SeedStocks[0].NewStock(sim, 3, day0)
	m := newTestMarket(t, s)
	_, before := s.History.Latest()

	// same day: today's point is updated in place and keeps its volume.
	sim.Tick(m, day0.Add(time.Hour))
	if s.History.Len() != 4 {
		t.Fatalf("history has %d points after a same day tick, want 4", s.History.Len())
	}
	day, after := s.History.Latest()
	if day != date.Of(day0) || !after.Price.Equal(s.Price) || after.Volume != before.Volume {
		t.Errorf("latest point = %s %+v, want %s at %v with volume %d", day, after, date.Of(day0), s.Price, before.Volume)
	}

	// next day: a new point is appended.
	next := day0.Add(24 * time.Hour)
	sim.Tick(m, next)
	if s.History.Len() != 5 {
		t.Fatalf("history has %d points after a next day tick, want 5", s.History.Len())
	}
	if day, p := s.History.Latest(); day != date.Of(next) || !p.Price.Equal(s.Price) {
		t.Errorf("latest point = %s %+v, want %s at %v", day, p, date.Of(next), s.Price)
	}
}

func TestVolatility(t *testing.T) {
	sim := NewSimulator(rand.New(rand.NewSource(1)))
	for symbol, want := range map[string]float64{"TSLA": 3, "NFLX": 2, "AAPL": 1, "ZZZ": 1} {
		if got := sim.volatility(symbol); got != want {
			t.Errorf("volatility(%s) = %v, want %v", symbol, got, want)
		}
	}
	// the simulator owns its copy of the defaults.
	sim.Volatility["TSLA"] = 10
	if DefaultVolatility["TSLA"] != 3 {
		t.Errorf("DefaultVolatility was modified")
	}
}

func TestHistoryUTCDay(t *testing.T) {
	// 23:30 in New York is already the next day in UTC.
	newYork := time.FixedZone("EST", -5*60*60)
	now := time.Date(2025, time.March, 14, 23, 30, 0, 0, newYork)
	utcDay := date.New(2025, time.March, 15)

	sim := NewSimulator(newRand())
	s := SeedStocks[0].NewStock(sim, 3, now)
	if day, _ := s.History.Latest(); day != utcDay {
		t.Errorf("history ends on %s, want %s", day, utcDay)
	}

	m := newTestMarket(t, s)
	sim.Tick(m, now.Add(20*time.Minute))
	if s.History.Len() != 4 {
		t.Errorf("history has %d points after a same UTC day tick, want 4", s.History.Len())
	}
	if day, _ := s.History.Latest(); day != utcDay {
		t.Errorf("tick recorded on %s, want %s", day, utcDay)
	}
}
