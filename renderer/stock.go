package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/stocksim"
	md "github.com/nao1215/markdown"
)

// StockDetail renders a stock with its price chart and the trader's position.
func StockDetail(d stocksim.StockDetail) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	s := d.Stock

	doc.H1(fmt.Sprintf("%s - %s", s.Symbol, s.CompanyName))
	doc.PlainText(fmt.Sprintf("%s %s %s (%s)", md.Bold(stocksim.FormatCurrency(s.Price)), trend(s.IsUp()), s.Change.SignedString(), stocksim.FormatPercent(s.ChangePercent)))

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Detail", "Value"},
		Rows: [][]string{
			{"Sector", s.Sector},
			{fmt.Sprintf("%d-day High", stocksim.PeriodDays), stocksim.FormatCurrency(d.High)},
			{fmt.Sprintf("%d-day Low", stocksim.PeriodDays), stocksim.FormatCurrency(d.Low)},
			{"Last Updated", s.LastUpdated.Format("2006-01-02 15:04:05")},
		},
	})

	points := s.HistoricalData()
	if len(points) > 0 {
		prices := make([]float64, len(points))
		for i, p := range points {
			prices[i] = p.Price.Float64()
		}
		doc.H2("Price History")
		doc.PlainText(fmt.Sprintf("`%s`", Sparkline(prices)))
		doc.PlainText(fmt.Sprintf("%s: %s → %s: %s",
			points[0].Date, stocksim.FormatCurrency(points[0].Price),
			points[len(points)-1].Date, stocksim.FormatCurrency(points[len(points)-1].Price)))
	}

	doc.H2("Your Position")
	if d.Position == nil {
		doc.PlainText(fmt.Sprintf("You don't own any shares of %s.", s.Symbol))
	} else {
		value := s.Price.Times(d.Position.Shares)
		gain := value.Sub(d.Position.TotalInvested)
		doc.Table(md.TableSet{
			Alignment: []md.TableAlignment{md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight},
			Header:    []string{"Shares", "Avg. Price", "Value", "Gain/Loss"},
			Rows: [][]string{{
				fmt.Sprint(d.Position.Shares),
				stocksim.FormatCurrency(d.Position.AverageBuyPrice),
				stocksim.FormatCurrency(value),
				fmt.Sprintf("%s (%s)", gain.SignedString(), stocksim.FormatPercent(gain.Ratio(d.Position.TotalInvested))),
			}},
		})
	}
	return doc.String()
}

// TradeTicket renders the limits of a trade on one stock.
func TradeTicket(t stocksim.TradeTicket) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2(fmt.Sprintf("Trade %s", t.Symbol))
	rows := [][]string{
		{"Market Price", stocksim.FormatCurrency(t.Price)},
		{"Available Cash", stocksim.FormatCurrency(t.Cash)},
		{"Max. Buy", fmt.Sprintf("%d shares (%s)", t.MaxBuy, stocksim.FormatCurrency(t.EstimatedCost(t.MaxBuy)))},
	}
	if t.CanSell() {
		rows = append(rows, []string{"Max. Sell", fmt.Sprintf("%d shares (%s)", t.MaxSell, stocksim.FormatCurrency(t.EstimatedCost(t.MaxSell)))})
	}
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Ticket", "Value"},
		Rows:      rows,
	})
	return doc.String()
}
