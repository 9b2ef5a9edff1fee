package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/geocoder89/toolhub/internal/domain/submission"
	"github.com/geocoder89/toolhub/internal/domain/tool"
)

type SubmissionsService interface {
	Submit(ctx context.Context, req submission.CreateRequest) (submission.Submission, error)
	List(ctx context.Context) ([]submission.Submission, error)
	Approve(ctx context.Context, id string) (tool.Tool, error)
}

type SubmissionsHandler struct {
	svc SubmissionsService
}

func NewSubmissionsHandler(svc SubmissionsService) *SubmissionsHandler {
	return &SubmissionsHandler{svc: svc}
}

func (h *SubmissionsHandler) CreateSubmission(ctx *gin.Context) {
	var req submission.CreateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := opContext(ctx, writeTimeout)
	defer cancel()

	s, err := h.svc.Submit(cctx, req)
	if err != nil {
		RespondInternal(ctx, "Could not save submission")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"submission": s})
}

func (h *SubmissionsHandler) ListSubmissions(ctx *gin.Context) {
	cctx, cancel := opContext(ctx, readTimeout)
	defer cancel()

	subs, err := h.svc.List(cctx)
	if err != nil {
		RespondInternal(ctx, "Could not list submissions")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"submissions": subs})
}

func (h *SubmissionsHandler) ApproveSubmission(ctx *gin.Context) {
	cctx, cancel := opContext(ctx, writeTimeout)
	defer cancel()

	t, err := h.svc.Approve(cctx, ctx.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, submission.ErrNotFound):
			RespondNotFound(ctx, "Submission not found")
		case errors.Is(err, submission.ErrAlreadyApproved):
			RespondConflict(ctx, "already_approved", "Submission has already been approved")
		default:
			RespondInternal(ctx, "Could not approve submission")
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"tool": t})
}
