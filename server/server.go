// Package server exposes a session over HTTP: HTML pages for a browser and a JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/etnz/stocksim"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const apiBasePath = "/api"

// Handler serves one session.
type Handler struct {
	router  *gin.Engine
	session *stocksim.Session
	log     logrus.FieldLogger
	refresh time.Duration // how often pages reload, 0 for never
}

// NewHandler returns a handler serving s. Pages reload every refresh to show
// the ticking market.
func NewHandler(s *stocksim.Session, log logrus.FieldLogger, refresh time.Duration) *Handler {
	router := gin.New()
	router.Use(gin.Recovery())

	h := &Handler{
		router:  router,
		session: s,
		log:     log,
		refresh: refresh,
	}
	router.Use(h.logRequests())
	h.registerRoutes()
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.router.GET("/", h.marketPage)
	h.router.GET("/stocks", h.stocksPage)
	h.router.GET("/stocks/:symbol", h.stockPage)
	h.router.POST("/trade", h.tradeForm)
	h.router.GET("/portfolio", h.portfolioPage)

	api := h.router.Group(apiBasePath)
	{
		api.GET("/overview", h.getOverview)
		api.GET("/stocks", h.getStocks)
		api.GET("/stocks/:symbol", h.getStock)
		api.GET("/portfolio", h.getPortfolio)
		api.POST("/trades", h.createTrade)
	}
}

// logRequests logs every request once served.
func (h *Handler) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		h.log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start),
		}).Debug("request served")
	}
}

func writeError(c *gin.Context, status int, err error) {
	if err == nil {
		status = http.StatusInternalServerError
		err = errors.New("unknown error")
	}
	code := stocksim.ErrorCode(err)
	if code == "internal" && status < http.StatusInternalServerError {
		code = "bad_request"
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}

// Run serves h on addr and ticks the session every interval until ctx is
// done, then shuts the server down gracefully.
func Run(ctx context.Context, s *stocksim.Session, log logrus.FieldLogger, addr string, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %v", interval)
	}
	server := &http.Server{
		Addr:    addr,
		Handler: NewHandler(s, log, interval),
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ticking := make(chan error, 1)
	go func() { ticking <- s.Run(ctx, interval) }()

	serving := make(chan error, 1)
	go func() {
		log.Infof("HTTP server listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serving <- fmt.Errorf("http server error: %w", err)
			return
		}
		serving <- nil
	}()

	var err error
	tickDone := false
	select {
	case <-ctx.Done():
	case err = <-serving:
		cancel()
	case err = <-ticking:
		tickDone = true
		err = fmt.Errorf("market simulation stopped: %w", err)
		cancel()
	}
	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if serr := server.Shutdown(shutdownCtx); serr != nil {
		log.Errorf("server shutdown error: %v", serr)
	}
	if !tickDone {
		<-ticking
	}
	log.Info("server stopped")
	return err
}
