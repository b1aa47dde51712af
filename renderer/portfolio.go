package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/stocksim"
	md "github.com/nao1215/markdown"
)

// Portfolio renders the portfolio summary followed by the selected view.
func Portfolio(p stocksim.Portfolio, m *stocksim.Market, view stocksim.PortfolioView, links Links) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	perf := stocksim.NewPerformance(p, m)
	doc.H1("Portfolio")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Account", "Value"},
		Rows: [][]string{
			{"Total Value", md.Bold(stocksim.FormatCurrency(p.TotalValue))},
			{"Cash Balance", stocksim.FormatCurrency(p.CashBalance)},
			{"Invested", stocksim.FormatCurrency(perf.Invested)},
			{"Gain/Loss", fmt.Sprintf("%s %s (%s)", trend(perf.IsPositive()), perf.GainLoss.SignedString(), stocksim.FormatPercent(perf.Percent))},
		},
	})

	out := doc.String()
	switch view {
	case stocksim.ViewHistory:
		out += "\n" + TradeHistory(p.TradeHistory)
	default:
		out += "\n" + Holdings(stocksim.HoldingRows(p, m), links)
	}
	return out
}

// Holdings renders the holdings valued at market price.
func Holdings(rows []stocksim.HoldingRow, links Links) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2("Holdings")
	if len(rows) == 0 {
		doc.PlainText("You don't own any stocks yet.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Symbol", "Shares", "Avg. Price", "Price", "Value", "Gain/Loss"},
		Rows:      [][]string{},
	}
	for _, r := range rows {
		table.Rows = append(table.Rows, []string{
			stockRef(links, r.Symbol),
			fmt.Sprint(r.Shares),
			stocksim.FormatCurrency(r.AverageBuyPrice),
			stocksim.FormatCurrency(r.Price),
			stocksim.FormatCurrency(r.CurrentValue),
			fmt.Sprintf("%s %s (%s)", trend(r.IsGain()), r.GainLoss.SignedString(), stocksim.FormatPercent(r.GainLossPercent)),
		})
	}
	doc.Table(table)
	return doc.String()
}

// TradeHistory renders trades, newest first.
func TradeHistory(trades []stocksim.TradeAction) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2("Trade History")
	if len(trades) == 0 {
		doc.PlainText("No trades yet.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Time", "Type", "Symbol", "Shares", "Price", "Total"},
		Rows:      [][]string{},
	}
	for _, t := range trades {
		table.Rows = append(table.Rows, []string{
			t.Timestamp.Format("2006-01-02 15:04:05"),
			string(t.Type),
			t.Symbol,
			fmt.Sprint(t.Shares),
			stocksim.FormatCurrency(t.Price),
			stocksim.FormatCurrency(t.Price.Times(t.Shares)),
		})
	}
	doc.Table(table)
	return doc.String()
}
