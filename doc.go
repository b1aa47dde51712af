// Package stocksim simulates a stock market and a trader's portfolio.
//
// A Session owns everything that changes over time:
//   - a Market of synthetic stocks whose prices are moved by a Simulator on
//     every tick, each stock carrying a daily price History;
//   - a Portfolio of cash, holdings and trades, only ever modified through
//     ExecuteTrade, a pure function valuing the result against the live market;
//   - the navigation state (tab, selected stock, portfolio view) of the views.
//
// Money is exact (decimal) and expressed in US dollars. View models such as
// MarketOverview, StockFilter, StockDetail and TradeTicket compute what the
// renderer package prints.
package stocksim
