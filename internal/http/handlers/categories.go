package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/geocoder89/toolhub/internal/domain/tool"
)

func ListCategories(ctx *gin.Context) {
	RespondJSONWithETag(ctx, http.StatusOK, gin.H{"categories": tool.Categories()})
}
