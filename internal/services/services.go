// Package services holds the catalog, favorites and submission workflows
// that sit between the HTTP handlers and the stores.
package services

import (
	"context"
	"log/slog"

	"github.com/geocoder89/toolhub/internal/actorctx"
)

func loggerOrDefault(log *slog.Logger) *slog.Logger {
	if log == nil {
		return slog.Default()
	}
	return log
}

// actorAttr attributes a log record to the authenticated caller, if any.
func actorAttr(ctx context.Context) slog.Attr {
	if id, ok := actorctx.UserIDFrom(ctx); ok {
		return slog.String("actor_id", id)
	}
	return slog.String("actor_id", "anonymous")
}
