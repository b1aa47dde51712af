package stocksim

import (
	"encoding/json"
	"time"

	"github.com/etnz/stocksim/date"
)

// Point is the market data of one day in a stock's history.
type Point struct {
	Price  Money
	Volume int64 // 0 when unknown
}

// HistoricalDataPoint is one day of a stock's price history, as exposed to views.
type HistoricalDataPoint struct {
	Date   date.Date `json:"date"`
	Price  Money     `json:"price"`
	Volume int64     `json:"volume,omitempty"`
}

// Stock is a simulated listed company and its latest quote.
type Stock struct {
	Symbol        string
	CompanyName   string
	Price         Money
	Change        Money   // absolute change of the last tick
	ChangePercent Percent // relative change of the last tick
	Sector        string
	LastUpdated   time.Time
	History       date.History[Point] // one point per day, oldest first
}

// Clone returns a deep copy of s.
func (s *Stock) Clone() *Stock {
	c := *s
	c.History = s.History.Clone()
	return &c
}

// HistoricalData returns the price history, oldest first.
func (s *Stock) HistoricalData() []HistoricalDataPoint {
	points := make([]HistoricalDataPoint, 0, s.History.Len())
	for day, p := range s.History.Values() {
		points = append(points, HistoricalDataPoint{Date: day, Price: p.Price, Volume: p.Volume})
	}
	return points
}

// Range returns the lowest and highest price within r, and false if the history has no point in r.
func (s *Stock) Range(r date.Range) (low, high Money, ok bool) {
	for _, p := range s.History.Between(r) {
		if !ok {
			low, high, ok = p.Price, p.Price, true
			continue
		}
		if p.Price.LessThan(low) {
			low = p.Price
		}
		if p.Price.GreaterThan(high) {
			high = p.Price
		}
	}
	return low, high, ok
}

// IsUp reports whether the last tick did not lower the price.
func (s *Stock) IsUp() bool { return s.ChangePercent >= 0 }

// MarshalJSON implements the json.Marshaler interface for Stock.
func (s Stock) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Symbol        string                `json:"symbol"`
		CompanyName   string                `json:"companyName"`
		Price         Money                 `json:"price"`
		Change        Money                 `json:"change"`
		ChangePercent Percent               `json:"changePercent"`
		Sector        string                `json:"sector"`
		LastUpdated   time.Time             `json:"lastUpdated"`
		History       []HistoricalDataPoint `json:"history"`
	}{s.Symbol, s.CompanyName, s.Price, s.Change, s.ChangePercent, s.Sector, s.LastUpdated, s.HistoricalData()})
}
