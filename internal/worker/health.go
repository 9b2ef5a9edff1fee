package worker

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const readyPingTimeout = 500 * time.Millisecond

type ReadinessDeps interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the worker's probes:
//
//	/healthz  process is up
//	/readyz   loop running and the store answers
//	/stats    reconcile counters
//	/metrics  prometheus, when the reconciler has a registry
func (r *Reconciler) HealthHandler(deps ReadinessDeps) http.Handler {
	e := gin.New()
	e.Use(gin.Recovery())

	e.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	e.GET("/readyz", func(c *gin.Context) {
		if !r.isReady() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready"})
			return
		}

		if deps != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), readyPingTimeout)
			defer cancel()

			if err := deps.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "db": err.Error()})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	e.GET("/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, r.metrics.Snapshot())
	})

	if r.prom != nil {
		e.GET("/metrics", gin.WrapH(r.prom.Handler()))
	}

	return e
}
