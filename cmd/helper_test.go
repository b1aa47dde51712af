package cmd

import (
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/etnz/stocksim"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func init() { gin.SetMode(gin.TestMode) }

var day0 = time.Date(2025, time.March, 14, 10, 30, 0, 0, time.UTC)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestSession(t *testing.T) *stocksim.Session {
	t.Helper()
	s, err := stocksim.NewSession(stocksim.SessionConfig{
		Rand:   rand.New(rand.NewSource(42)),
		Now:    func() time.Time { return day0 },
		Logger: quietLogger(),
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}
