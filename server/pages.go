package server

import (
	_ "embed"
	"html/template"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/etnz/stocksim"
	"github.com/etnz/stocksim/renderer"
	"github.com/gin-gonic/gin"
)

//go:embed page.html
var pageHTML string

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

// page is the data of page.html.
type page struct {
	Title   string
	Tab     stocksim.Tab
	View    stocksim.PortfolioView
	Cash    string
	Total   string
	Message string
	Query   string
	Refresh int // seconds
	Content template.HTML
	Ticket  *stocksim.TradeTicket
}

// links are the URLs of the pages.
type links struct{}

func (links) Stock(symbol string) string { return "/stocks/" + url.PathEscape(symbol) }

func (links) Sort(f stocksim.StockFilter) string {
	q := url.Values{}
	if f.Query != "" {
		q.Set("q", f.Query)
	}
	q.Set("sort", string(f.SortBy))
	q.Set("dir", f.Direction())
	return "/stocks?" + q.Encode()
}

// render writes the page showing st.
func (h *Handler) render(c *gin.Context, title string, st stocksim.State, f stocksim.StockFilter) {
	content, err := renderer.HTML(renderer.Tab(st, f, links{}))
	if err != nil {
		h.log.WithError(err).Error("cannot render page")
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	p := page{
		Title:   title,
		Tab:     st.Tab,
		View:    st.PortfolioView,
		Cash:    stocksim.FormatCurrency(st.Portfolio.CashBalance),
		Total:   stocksim.FormatCurrency(st.Portfolio.TotalValue),
		Message: c.Query("msg"),
		Query:   f.Query,
		Content: template.HTML(content),
	}
	if st.Tab != stocksim.TabPortfolio && h.refresh > 0 {
		p.Refresh = int(math.Ceil(h.refresh.Seconds()))
	}
	if st.Tab == stocksim.TabStocks && st.Selected != nil {
		t := stocksim.NewTradeTicket(st.Selected, st.Portfolio)
		p.Ticket = &t
	}
	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(c.Writer, p); err != nil {
		h.log.WithError(err).Error("cannot execute page template")
	}
}

func (h *Handler) marketPage(c *gin.Context) {
	if err := h.session.SetTab(stocksim.TabMarket); err != nil {
		writeError(c, http.StatusInternalServerError, err)
		return
	}
	h.render(c, "Market", h.session.Snapshot(), stocksim.StockFilter{})
}

func (h *Handler) stocksPage(c *gin.Context) {
	f, err := stocksim.ParseStockFilter(c.Query("q"), c.Query("sort"), c.Query("dir"))
	if err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	if err := h.session.SetTab(stocksim.TabStocks); err != nil {
		writeError(c, http.StatusInternalServerError, err)
		return
	}
	h.render(c, "Stocks", h.session.Snapshot(), f)
}

func (h *Handler) stockPage(c *gin.Context) {
	symbol := c.Param("symbol")
	if err := h.session.SelectStock(symbol); err != nil {
		writeError(c, http.StatusNotFound, err)
		return
	}
	h.render(c, symbol, h.session.Snapshot(), stocksim.StockFilter{})
}

func (h *Handler) portfolioPage(c *gin.Context) {
	if view := c.Query("view"); view != "" {
		if err := h.session.SetPortfolioView(stocksim.PortfolioView(view)); err != nil {
			writeError(c, http.StatusBadRequest, err)
			return
		}
	}
	if err := h.session.SetTab(stocksim.TabPortfolio); err != nil {
		writeError(c, http.StatusInternalServerError, err)
		return
	}
	h.render(c, "Portfolio", h.session.Snapshot(), stocksim.StockFilter{})
}

// tradeForm executes the trade form and redirects to the stock's page with the outcome.
func (h *Handler) tradeForm(c *gin.Context) {
	symbol := c.PostForm("symbol")
	action, err := stocksim.ParseAction(c.PostForm("action"))
	if err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	// an unreadable share count is rejected by the ledger like any invalid count.
	shares, _ := strconv.Atoi(c.PostForm("shares"))

	res, err := h.session.Trade(action, symbol, shares)
	if err != nil {
		writeError(c, http.StatusNotFound, err)
		return
	}
	c.Redirect(http.StatusSeeOther, links{}.Stock(symbol)+"?msg="+url.QueryEscape(renderer.Result(res)))
}
