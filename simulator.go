package stocksim

import (
	"math/rand"
	"time"

	"github.com/etnz/stocksim/date"
	"github.com/shopspring/decimal"
)

const (
	// upwardBias shifts uniform draws so that moves are slightly biased upward.
	upwardBias = 0.48
	// historyStep is the largest absolute daily move when generating history.
	historyStep = 5.0
	minVolume   = 100_000
	volumeRange = 900_000
)

// DefaultVolatility lists the symbols moving more than the others on each tick.
var DefaultVolatility = map[string]float64{
	"TSLA": 3,
	"NFLX": 2,
}

// Simulator generates synthetic prices. All randomness comes from the injected source.
type Simulator struct {
	rng *rand.Rand
	// Volatility is the bound of a symbol's tick move, in percent. Unlisted symbols use 1.
	Volatility map[string]float64
}

// NewSimulator returns a simulator drawing from rng with DefaultVolatility.
func NewSimulator(rng *rand.Rand) *Simulator {
	vol := make(map[string]float64, len(DefaultVolatility))
	for k, v := range DefaultVolatility {
		vol[k] = v
	}
	return &Simulator{rng: rng, Volatility: vol}
}

// volatility returns the tick bound of symbol.
func (s *Simulator) volatility(symbol string) float64 {
	if v, ok := s.Volatility[symbol]; ok {
		return v
	}
	return 1
}

func (s *Simulator) volume() int64 { return minVolume + int64(s.rng.Float64()*volumeRange) }

// GenerateHistory returns days+1 daily points ending on now's UTC day.
//
// The walk starts between 85% and 115% of the band centre, moves by at most
// historyStep per day and is pulled back inside [band.Min, band.Max]. This is
// the only place where prices are clamped.
func (s *Simulator) GenerateHistory(band Band, days int, now time.Time) date.History[Point] {
	var h date.History[Point]
	today := date.Of(now.UTC())

	last := band.Centre*0.85 + s.rng.Float64()*0.3*band.Centre
	for i := days; i >= 0; i-- {
		price := last + (s.rng.Float64()-upwardBias)*historyStep
		if price < band.Min {
			price = band.Min + s.rng.Float64()*historyStep
		}
		if price > band.Max {
			price = band.Max - s.rng.Float64()*historyStep
		}
		last = price
		h.Append(today.Add(-i), Point{Price: USD(round2(price)), Volume: s.volume()})
	}
	return h
}

// Tick moves every stock of m by a random percentage and records the new price in its history,
// on now's UTC day.
//
// Live ticks are not clamped: over a long run prices drift without bound.
func (s *Simulator) Tick(m *Market, now time.Time) {
	for _, stock := range m.Stocks() {
		s.tick(stock, now)
	}
}

func (s *Simulator) tick(stock *Stock, now time.Time) {
	changePercent := (s.rng.Float64() - upwardBias) * s.volatility(stock.Symbol)
	change := stock.Price.Scale(decimal.NewFromFloat(changePercent).Div(decimal.NewFromInt(100)))

	stock.Price = stock.Price.Add(change).Round()
	stock.Change = change.Round()
	stock.ChangePercent = Percent(changePercent).Round()
	stock.LastUpdated = now

	today := date.Of(now.UTC())
	if day, last := stock.History.Latest(); day == today && stock.History.Len() > 0 {
		// today's point already exists: only the price moves.
		last.Price = stock.Price
		stock.History.Append(today, last)
		return
	}
	stock.History.Append(today, Point{Price: stock.Price, Volume: s.volume()})
}
