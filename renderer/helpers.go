package renderer

import (
	"strings"

	"github.com/etnz/stocksim"
)

// Links builds the URLs of the interactive views. Renderers print plain text
// when given a nil Links.
type Links interface {
	Stock(symbol string) string
	Sort(f stocksim.StockFilter) string
}

// stockRef returns symbol, linked to its detail when links are available.
func stockRef(links Links, symbol string) string {
	if links == nil {
		return symbol
	}
	return "[" + symbol + "](" + links.Stock(symbol) + ")"
}

var sparks = []rune("▁▂▃▄▅▆▇█")

// Sparkline draws prices as a line of block characters, lowest price as the lowest block.
func Sparkline(prices []float64) string {
	if len(prices) == 0 {
		return ""
	}
	lo, hi := prices[0], prices[0]
	for _, p := range prices {
		lo, hi = min(lo, p), max(hi, p)
	}
	var b strings.Builder
	for _, p := range prices {
		i := len(sparks) / 2
		if hi > lo {
			i = int((p - lo) / (hi - lo) * float64(len(sparks)-1))
		}
		b.WriteRune(sparks[i])
	}
	return b.String()
}

// trend returns an arrow for the direction of a change.
func trend(up bool) string {
	if up {
		return "▲"
	}
	return "▼"
}
