package server

import (
	"errors"
	"net/http"

	"github.com/etnz/stocksim"
	"github.com/gin-gonic/gin"
)

// tradePayload is the body of POST /api/trades.
type tradePayload struct {
	Action string `json:"action" binding:"required,oneof=BUY SELL buy sell"`
	Symbol string `json:"symbol" binding:"required"`
	Shares int    `json:"shares"` // the ledger rejects non positive counts
}

// portfolioResponse is the portfolio with its holdings valued at market price.
type portfolioResponse struct {
	stocksim.Portfolio
	Rows        []stocksim.HoldingRow `json:"rows"`
	Performance stocksim.Performance  `json:"performance"`
}

func newPortfolioResponse(st stocksim.State) portfolioResponse {
	return portfolioResponse{
		Portfolio:   st.Portfolio,
		Rows:        stocksim.HoldingRows(st.Portfolio, st.Market),
		Performance: stocksim.NewPerformance(st.Portfolio, st.Market),
	}
}

// stockResponse is a stock's detail with its trade ticket.
type stockResponse struct {
	stocksim.StockDetail
	Ticket stocksim.TradeTicket `json:"ticket"`
}

func (h *Handler) getOverview(c *gin.Context) {
	c.JSON(http.StatusOK, stocksim.NewMarketOverview(h.session.Snapshot().Market))
}

func (h *Handler) getStocks(c *gin.Context) {
	f, err := stocksim.ParseStockFilter(c.Query("q"), c.Query("sort"), c.Query("dir"))
	if err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, f.Apply(h.session.Snapshot().Market.Stocks()))
}

func (h *Handler) getStock(c *gin.Context) {
	st := h.session.Snapshot()
	s := st.Market.Get(c.Param("symbol"))
	if s == nil {
		writeError(c, http.StatusNotFound, stocksim.ErrUnknownSymbol)
		return
	}
	c.JSON(http.StatusOK, stockResponse{
		StockDetail: stocksim.NewStockDetail(s, st.Portfolio),
		Ticket:      stocksim.NewTradeTicket(s, st.Portfolio),
	})
}

func (h *Handler) getPortfolio(c *gin.Context) {
	c.JSON(http.StatusOK, newPortfolioResponse(h.session.Snapshot()))
}

func (h *Handler) createTrade(c *gin.Context) {
	var payload tradePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	action, err := stocksim.ParseAction(payload.Action)
	if err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}

	res, err := h.session.Trade(action, payload.Symbol, payload.Shares)
	switch {
	case errors.Is(err, stocksim.ErrUnknownSymbol):
		writeError(c, http.StatusNotFound, err)
		return
	case err != nil:
		writeError(c, http.StatusInternalServerError, err)
		return
	case !res.Success:
		writeError(c, http.StatusUnprocessableEntity, res.Err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"trade":     res.Trade,
		"portfolio": newPortfolioResponse(h.session.Snapshot()),
	})
}
