package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/stocksim"
	md "github.com/nao1215/markdown"
)

// MarketOverview renders the market summary with its top movers.
func MarketOverview(o stocksim.MarketOverview, links Links) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Market Overview")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Market", "Value"},
		Rows: [][]string{
			{"Market Value", md.Bold(stocksim.FormatCurrency(o.MarketValue))},
			{"Market Change", o.MarketChange.SignedString()},
			{"Change %", fmt.Sprintf("%s %s", trend(o.MarketChangePercent >= 0), stocksim.FormatPercent(o.MarketChangePercent))},
		},
	})

	doc.H2("Top Gainers")
	doc.Table(moversTable(o.Gainers, links))
	doc.H2("Top Losers")
	doc.Table(moversTable(o.Losers, links))

	return doc.String()
}

func moversTable(stocks []*stocksim.Stock, links Links) md.TableSet {
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Symbol", "Company", "Price", "Change"},
		Rows:      [][]string{},
	}
	for _, s := range stocks {
		table.Rows = append(table.Rows, []string{
			stockRef(links, s.Symbol),
			s.CompanyName,
			stocksim.FormatCurrency(s.Price),
			fmt.Sprintf("%s %s", trend(s.IsUp()), stocksim.FormatPercent(s.ChangePercent)),
		})
	}
	return table
}

// StockList renders the stocks selected by f.
func StockList(stocks []*stocksim.Stock, f stocksim.StockFilter, links Links) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	shown := f.Apply(stocks)
	doc.H1("Stocks")
	if f.Query != "" {
		doc.PlainText(fmt.Sprintf("%d of %d stocks matching %q.", len(shown), len(stocks), f.Query))
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight},
		Header: []string{
			sortHeader(f, stocksim.SortBySymbol, "Symbol", links),
			"Company",
			"Sector",
			sortHeader(f, stocksim.SortByPrice, "Price", links),
			sortHeader(f, stocksim.SortByChange, "Change", links),
		},
		Rows: [][]string{},
	}
	for _, s := range shown {
		table.Rows = append(table.Rows, []string{
			stockRef(links, s.Symbol),
			s.CompanyName,
			s.Sector,
			stocksim.FormatCurrency(s.Price),
			fmt.Sprintf("%s (%s)", s.Change.SignedString(), stocksim.FormatPercent(s.ChangePercent)),
		})
	}
	if len(shown) == 0 {
		doc.PlainText("No stock matches your search.")
	} else {
		doc.Table(table)
	}
	return doc.String()
}

// sortHeader returns the title of a sortable column, marked with the sort
// direction when it is the sort column and linked to its toggle when links are available.
func sortHeader(f stocksim.StockFilter, column stocksim.SortColumn, title string, links Links) string {
	sortBy := f.SortBy
	if sortBy == "" {
		sortBy = stocksim.SortBySymbol
	}
	if sortBy == column {
		if f.Descending {
			title += " ↓"
		} else {
			title += " ↑"
		}
	}
	if links == nil {
		return title
	}
	return "[" + title + "](" + links.Sort(f.ToggleSort(column)) + ")"
}
