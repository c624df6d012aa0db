package db

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// poolHealth is the /health/db payload. The pool counters let an
// operator spot connection exhaustion before requests start failing;
// ping errors are deliberately not echoed back since the endpoint is
// unauthenticated.
type poolHealth struct {
	Status        string `json:"status"`
	PingMillis    int64  `json:"pingMillis"`
	TotalConns    int32  `json:"totalConns"`
	IdleConns     int32  `json:"idleConns"`
	AcquiredConns int32  `json:"acquiredConns"`
	MaxConns      int32  `json:"maxConns"`
}

// HealthHandler reports database reachability and pool usage.
func HealthHandler(pool *pgxpool.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		started := time.Now()
		err := pool.Ping(ctx)
		stat := pool.Stat()

		h := poolHealth{
			Status:        "up",
			PingMillis:    time.Since(started).Milliseconds(),
			TotalConns:    stat.TotalConns(),
			IdleConns:     stat.IdleConns(),
			AcquiredConns: stat.AcquiredConns(),
			MaxConns:      stat.MaxConns(),
		}
		if err != nil {
			h.Status = "down"
			return c.JSON(http.StatusServiceUnavailable, h)
		}
		return c.JSON(http.StatusOK, h)
	}
}
