package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	readTimeout  = 2 * time.Second
	writeTimeout = 3 * time.Second
)

// opContext bounds a store call. It derives from the request context so the
// caller and trace span travel with it.
func opContext(ctx *gin.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx.Request.Context(), d)
}
