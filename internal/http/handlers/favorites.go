package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/geocoder89/toolhub/internal/domain/favorite"
	"github.com/geocoder89/toolhub/internal/domain/tool"
	"github.com/geocoder89/toolhub/internal/http/middlewares"
	"github.com/geocoder89/toolhub/internal/services"
	"github.com/geocoder89/toolhub/internal/utils"
)

type FavoritesService interface {
	Add(ctx context.Context, userID, toolID string) (services.AddOutcome, error)
	Remove(ctx context.Context, userID, toolID string) error
	List(ctx context.Context, userID string) ([]tool.Tool, error)
}

type FavoritesHandler struct {
	svc FavoritesService
}

func NewFavoritesHandler(svc FavoritesService) *FavoritesHandler {
	return &FavoritesHandler{svc: svc}
}

func (h *FavoritesHandler) ListFavorites(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing, invalid or expired access token")
		return
	}

	cctx, cancel := opContext(ctx, readTimeout)
	defer cancel()

	tools, err := h.svc.List(cctx, userID)
	if err != nil {
		RespondInternal(ctx, "Could not list favorites")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"favorites": tools})
}

// toolIDParam returns the caller and a well-formed :toolId, or writes the
// error response. A malformed id is a 400 invalid_id.
func toolIDParam(ctx *gin.Context) (userID, toolID string, ok bool) {
	userID, ok = middlewares.UserIDFromContext(ctx)
	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing, invalid or expired access token")
		return "", "", false
	}

	toolID = ctx.Param("toolId")
	if !utils.IsUUID(toolID) {
		RespondInvalidID(ctx, "toolId")
		return "", "", false
	}

	return userID, toolID, true
}

func (h *FavoritesHandler) AddFavorite(ctx *gin.Context) {
	userID, toolID, ok := toolIDParam(ctx)
	if !ok {
		return
	}

	cctx, cancel := opContext(ctx, writeTimeout)
	defer cancel()

	outcome, err := h.svc.Add(cctx, userID, toolID)
	if err != nil {
		RespondInternal(ctx, "Could not add favorite")
		return
	}

	msg := "Added to favorites"
	if outcome == services.AlreadyFavorited {
		msg = "Already in favorites"
	}

	ctx.JSON(http.StatusOK, gin.H{"message": msg})
}

// RemoveFavorite answers 404 for an id that could never have been
// favorited, the same as for a missing link.
func (h *FavoritesHandler) RemoveFavorite(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing, invalid or expired access token")
		return
	}

	toolID := ctx.Param("toolId")
	if !utils.IsUUID(toolID) {
		RespondNotFound(ctx, "Favorite not found")
		return
	}

	cctx, cancel := opContext(ctx, writeTimeout)
	defer cancel()

	if err := h.svc.Remove(cctx, userID, toolID); err != nil {
		if errors.Is(err, favorite.ErrNotFound) {
			RespondNotFound(ctx, "Favorite not found")
			return
		}
		RespondInternal(ctx, "Could not remove favorite")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Removed from favorites"})
}
