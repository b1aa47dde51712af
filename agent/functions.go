package agent

import (
	"context"
	"fmt"

	"github.com/etnz/stocksim"
	"github.com/etnz/stocksim/docs"
	"github.com/etnz/stocksim/renderer"
	"google.golang.org/genai"
)

// SessionFunctions returns the functions reading and trading on s. They all
// answer markdown.
func SessionFunctions(s *stocksim.Session) []Function {
	return []Function{
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "MarketOverview",
				Description: "MarketOverview returns the total market value and change, with the top gainers and losers of the last tick.",
				Response:    markdownResponse,
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				st := s.Snapshot()
				return success(id, "MarketOverview", renderer.MarketOverview(stocksim.NewMarketOverview(st.Market), nil))
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Stocks",
				Description: "Stocks lists the listed stocks with their live price and change.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"query": {Type: genai.TypeString, Description: "Only list stocks whose symbol or company name contains this text, case insensitive."},
						"sort":  {Type: genai.TypeString, Enum: []string{"symbol", "price", "change"}, Description: "The column to sort by. Default to symbol."},
						"dir":   {Type: genai.TypeString, Enum: []string{"asc", "desc"}, Description: "The sort direction. Default to asc."},
					},
				},
				Response: markdownResponse,
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				query, _, err := stringArg(args, "query")
				if err != nil {
					return failure(id, "Stocks", err)
				}
				sortBy, _, err := stringArg(args, "sort")
				if err != nil {
					return failure(id, "Stocks", err)
				}
				dir, _, err := stringArg(args, "dir")
				if err != nil {
					return failure(id, "Stocks", err)
				}
				f, err := stocksim.ParseStockFilter(query, sortBy, dir)
				if err != nil {
					return failure(id, "Stocks", err)
				}
				return success(id, "Stocks", renderer.StockList(s.Snapshot().Market.Stocks(), f, nil))
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "StockDetail",
				Description: "StockDetail returns a stock's live quote, sector, period high and low, price history, the user's position and how many shares he can buy or sell.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"symbol": {Type: genai.TypeString, Description: "The stock symbol, e.g. AAPL."},
					},
					Required: []string{"symbol"},
				},
				Response: markdownResponse,
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				symbol, _, err := stringArg(args, "symbol")
				if err != nil {
					return failure(id, "StockDetail", err)
				}
				st := s.Snapshot()
				stock := st.Market.Get(symbol)
				if stock == nil {
					return failure(id, "StockDetail", fmt.Errorf("%w %q", stocksim.ErrUnknownSymbol, symbol))
				}
				detail := renderer.StockDetail(stocksim.NewStockDetail(stock, st.Portfolio))
				ticket := renderer.TradeTicket(stocksim.NewTradeTicket(stock, st.Portfolio))
				return success(id, "StockDetail", detail+"\n"+ticket)
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Portfolio",
				Description: "Portfolio returns the user's total value, cash balance and gain, followed by his holdings or his trade history.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"view": {Type: genai.TypeString, Enum: []string{"holdings", "history"}, Description: "Holdings valued at market price, or the trade history. Default to holdings."},
					},
				},
				Response: markdownResponse,
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				v, _, err := stringArg(args, "view")
				if err != nil {
					return failure(id, "Portfolio", err)
				}
				view, err := stocksim.ParsePortfolioView(v)
				if err != nil {
					return failure(id, "Portfolio", err)
				}
				st := s.Snapshot()
				return success(id, "Portfolio", renderer.Portfolio(st.Portfolio, st.Market, view, nil))
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name: "Trade",
				Description: `Trade buys or sells shares of a stock at its live price, for the user.

				` + must(docs.GetTopic("trading")),
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"action": {Type: genai.TypeString, Enum: []string{"BUY", "SELL"}},
						"symbol": {Type: genai.TypeString, Description: "The stock symbol, e.g. AAPL."},
						"shares": {Type: genai.TypeInteger, Description: "The number of shares, a positive integer."},
					},
					Required: []string{"action", "symbol", "shares"},
				},
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "One line confirming the trade or explaining why it was rejected.",
				},
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				a, _, err := stringArg(args, "action")
				if err != nil {
					return failure(id, "Trade", err)
				}
				action, err := stocksim.ParseAction(a)
				if err != nil {
					return failure(id, "Trade", err)
				}
				symbol, _, err := stringArg(args, "symbol")
				if err != nil {
					return failure(id, "Trade", err)
				}
				shares, err := intArg(args, "shares")
				if err != nil {
					return failure(id, "Trade", err)
				}
				res, err := s.Trade(action, symbol, shares)
				if err != nil {
					return failure(id, "Trade", err)
				}
				return success(id, "Trade", renderer.Result(res))
			},
		},
	}
}

var markdownResponse = &genai.Schema{
	Type:        genai.TypeString,
	Description: "A markdown document.",
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// stringArg returns the string argument name, and whether it was given.
func stringArg(args map[string]any, name string) (string, bool, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", true, fmt.Errorf("argument %q is not a string as expected but %T", name, v)
	}
	return s, true, nil
}

// intArg returns the integer argument name. JSON numbers arrive as float64.
func intArg(args map[string]any, name string) (int, error) {
	switch v := args[name].(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("argument %q must be an integer, got %v", name, v)
		}
		return int(v), nil
	case nil:
		return 0, fmt.Errorf("argument %q is missing", name)
	default:
		return 0, fmt.Errorf("argument %q is not an integer as expected but %T", name, v)
	}
}
