package services

import (
	"context"
	"log/slog"

	"github.com/geocoder89/toolhub/internal/domain/submission"
	"github.com/geocoder89/toolhub/internal/domain/tool"
)

type SubmissionStore interface {
	Create(ctx context.Context, s submission.Submission) (submission.Submission, error)
	List(ctx context.Context) ([]submission.Submission, error)
	GetByID(ctx context.Context, id string) (submission.Submission, error)
	// Promote must insert the tool and mark the submission approved
	// atomically, failing with submission.ErrAlreadyApproved on a repeat.
	Promote(ctx context.Context, id string) (tool.Tool, error)
}

type ListInvalidator interface {
	InvalidateLists(ctx context.Context)
}

type SubmissionService struct {
	submissions SubmissionStore
	lists       ListInvalidator
	log         *slog.Logger
}

func NewSubmissionService(submissions SubmissionStore, lists ListInvalidator, log *slog.Logger) *SubmissionService {
	return &SubmissionService{
		submissions: submissions,
		lists:       lists,
		log:         loggerOrDefault(log),
	}
}

func (s *SubmissionService) Submit(ctx context.Context, req submission.CreateRequest) (submission.Submission, error) {
	sub, err := s.submissions.Create(ctx, submission.NewFromCreateRequest(req))
	if err != nil {
		return submission.Submission{}, err
	}

	s.log.InfoContext(ctx, "submission received", "submission_id", sub.ID, "submitter", sub.SubmitterEmail)
	return sub, nil
}

func (s *SubmissionService) List(ctx context.Context) ([]submission.Submission, error) {
	return s.submissions.List(ctx)
}

// Approve publishes the submission as a new, non-featured tool.
func (s *SubmissionService) Approve(ctx context.Context, id string) (tool.Tool, error) {
	t, err := s.submissions.Promote(ctx, id)
	if err != nil {
		return tool.Tool{}, err
	}

	if s.lists != nil {
		s.lists.InvalidateLists(ctx)
	}

	s.log.InfoContext(ctx, "submission approved", "submission_id", id, "tool_id", t.ID, actorAttr(ctx))
	return t, nil
}
