// Package renderer prints the simulator's views as markdown, and converts
// markdown for browsers (HTML) and terminals (ANSI).
package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/stocksim"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Tab renders the tab shown in st. The stocks tab lists the stocks selected by
// f followed by the selected stock's detail and trade ticket.
func Tab(st stocksim.State, f stocksim.StockFilter, links Links) string {
	switch st.Tab {
	case stocksim.TabStocks:
		var b strings.Builder
		b.WriteString(StockList(st.Market.Stocks(), f, links))
		if st.Selected != nil {
			b.WriteString("\n")
			b.WriteString(StockDetail(stocksim.NewStockDetail(st.Selected, st.Portfolio)))
			b.WriteString("\n")
			b.WriteString(TradeTicket(stocksim.NewTradeTicket(st.Selected, st.Portfolio)))
		}
		return b.String()
	case stocksim.TabPortfolio:
		return Portfolio(st.Portfolio, st.Market, st.PortfolioView, links)
	default:
		return MarketOverview(stocksim.NewMarketOverview(st.Market), links)
	}
}

// Result renders the outcome of a trade in one line.
func Result(r stocksim.TradeResult) string {
	if !r.Success {
		return "✗ " + r.Message
	}
	t := r.Trade
	verb := "Bought"
	if t.Type == stocksim.Sell {
		verb = "Sold"
	}
	return fmt.Sprintf("✓ %s %d shares of %s at %s.", verb, t.Shares, t.Symbol, stocksim.FormatCurrency(t.Price))
}

var gfm = goldmark.New(goldmark.WithExtensions(extension.GFM))

// HTML converts GitHub flavored markdown to HTML. Raw HTML in the input is escaped.
func HTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := gfm.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("cannot convert markdown to HTML: %w", err)
	}
	return buf.String(), nil
}

// Terminal renders markdown for a terminal, using a glamour standard style
// ("dark", "light", "notty", ...) and wrapping lines at width.
func Terminal(markdown, style string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("cannot create terminal renderer: %w", err)
	}
	return r.Render(markdown)
}
