package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/geocoder89/toolhub/internal/domain/tool"
)

type ToolsService interface {
	List(ctx context.Context, f tool.Filter) ([]tool.Tool, error)
	GetByID(ctx context.Context, id string) (tool.Tool, error)
	Create(ctx context.Context, req tool.CreateRequest) (tool.Tool, error)
	Update(ctx context.Context, id string, p tool.Patch) (tool.Tool, error)
	Delete(ctx context.Context, id string) error
}

type ToolsHandler struct {
	svc ToolsService
}

func NewToolsHandler(svc ToolsService) *ToolsHandler {
	return &ToolsHandler{svc: svc}
}

// ListTools supports ?search=, ?category= and ?pricing=. "All" or an empty
// value disables the category/pricing predicate.
func (h *ToolsHandler) ListTools(ctx *gin.Context) {
	f := tool.NewFilter(ctx.Query("search"), ctx.Query("category"), ctx.Query("pricing"))

	cctx, cancel := opContext(ctx, readTimeout)
	defer cancel()

	tools, err := h.svc.List(cctx, f)
	if err != nil {
		RespondInternal(ctx, "Could not list tools")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, gin.H{"tools": tools})
}

func (h *ToolsHandler) GetTool(ctx *gin.Context) {
	cctx, cancel := opContext(ctx, readTimeout)
	defer cancel()

	t, err := h.svc.GetByID(cctx, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, tool.ErrNotFound) {
			RespondNotFound(ctx, "Tool not found")
			return
		}
		RespondInternal(ctx, "Could not fetch tool")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, gin.H{"tool": t})
}

func (h *ToolsHandler) CreateTool(ctx *gin.Context) {
	var req tool.CreateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := opContext(ctx, writeTimeout)
	defer cancel()

	t, err := h.svc.Create(cctx, req)
	if err != nil {
		RespondInternal(ctx, "Could not create tool")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"tool": t})
}

// UpdateTool applies a partial update. Absent and null fields are left
// alone; {} returns the record unchanged.
func (h *ToolsHandler) UpdateTool(ctx *gin.Context) {
	var p tool.Patch

	if !BindJSON(ctx, &p) {
		return
	}

	cctx, cancel := opContext(ctx, writeTimeout)
	defer cancel()

	t, err := h.svc.Update(cctx, ctx.Param("id"), p)
	if err != nil {
		if errors.Is(err, tool.ErrNotFound) {
			RespondNotFound(ctx, "Tool not found")
			return
		}
		RespondInternal(ctx, "Could not update tool")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"tool": t})
}

func (h *ToolsHandler) DeleteTool(ctx *gin.Context) {
	cctx, cancel := opContext(ctx, writeTimeout)
	defer cancel()

	if err := h.svc.Delete(cctx, ctx.Param("id")); err != nil {
		if errors.Is(err, tool.ErrNotFound) {
			RespondNotFound(ctx, "Tool not found")
			return
		}
		RespondInternal(ctx, "Could not delete tool")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Tool deleted successfully"})
}
