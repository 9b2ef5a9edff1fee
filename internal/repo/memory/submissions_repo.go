package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/geocoder89/toolhub/internal/domain/submission"
	"github.com/geocoder89/toolhub/internal/domain/tool"
)

type submissionRecord struct {
	sub submission.Submission
	seq uint64
}

// SubmissionsRepo promotes into the ToolsRepo it was built with.
type SubmissionsRepo struct {
	mu    sync.Mutex
	items map[string]submissionRecord
	seq   uint64
	tools *ToolsRepo
}

func NewSubmissionsRepo(tools *ToolsRepo) *SubmissionsRepo {
	return &SubmissionsRepo{
		items: make(map[string]submissionRecord),
		tools: tools,
	}
}

func cloneSubmission(s submission.Submission) submission.Submission {
	tags := make([]string, len(s.Tags))
	copy(tags, s.Tags)
	s.Tags = tags
	if s.ApprovedToolID != nil {
		id := *s.ApprovedToolID
		s.ApprovedToolID = &id
	}
	return s
}

func (r *SubmissionsRepo) Create(_ context.Context, s submission.Submission) (submission.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	r.items[s.ID] = submissionRecord{sub: cloneSubmission(s), seq: r.seq}
	return cloneSubmission(s), nil
}

// List returns every submission, newest first.
func (r *SubmissionsRepo) List(_ context.Context) ([]submission.Submission, error) {
	r.mu.Lock()
	recs := make([]submissionRecord, 0, len(r.items))
	for _, rec := range r.items {
		recs = append(recs, rec)
	}
	r.mu.Unlock()

	sort.Slice(recs, func(i, j int) bool {
		return recs[i].seq > recs[j].seq
	})

	out := make([]submission.Submission, 0, len(recs))
	for _, rec := range recs {
		out = append(out, cloneSubmission(rec.sub))
	}
	return out, nil
}

func (r *SubmissionsRepo) GetByID(_ context.Context, id string) (submission.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.items[id]
	if !ok {
		return submission.Submission{}, submission.ErrNotFound
	}
	return cloneSubmission(rec.sub), nil
}

// Promote holds the submissions lock across the status check, the tool
// insert and the status flip, so concurrent approvals of one submission
// publish exactly one tool.
func (r *SubmissionsRepo) Promote(_ context.Context, id string) (tool.Tool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.items[id]
	if !ok {
		return tool.Tool{}, submission.ErrNotFound
	}
	if rec.sub.IsApproved() {
		return tool.Tool{}, submission.ErrAlreadyApproved
	}

	t := rec.sub.ToTool()
	r.tools.insert(t)

	toolID := t.ID
	rec.sub.Status = submission.StatusApproved
	rec.sub.ApprovedToolID = &toolID
	rec.sub.UpdatedAt = time.Now().UTC()
	r.items[id] = rec

	return t.Clone(), nil
}
