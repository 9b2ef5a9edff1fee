package submission

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/geocoder89/toolhub/internal/domain/tool"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
)

var (
	ErrNotFound        = errors.New("submission not found")
	ErrAlreadyApproved = errors.New("submission already approved")
)

type Submission struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	LongDescription string    `json:"longDescription"`
	Category        string    `json:"category"`
	Pricing         string    `json:"pricing"`
	Tags            []string  `json:"tags"`
	ImageURL        string    `json:"imageUrl"`
	URL             string    `json:"url"`
	SubmitterEmail  string    `json:"submitterEmail"`
	Status          Status    `json:"status"`
	ApprovedToolID  *string   `json:"approvedToolId,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// CreateRequest is the public submission form. Tags arrive as a single
// comma-separated string.
type CreateRequest struct {
	Name            string `json:"name" binding:"required,max=200"`
	Description     string `json:"description" binding:"required"`
	LongDescription string `json:"longDescription" binding:"required"`
	Category        string `json:"category" binding:"required"`
	Pricing         string `json:"pricing" binding:"required"`
	Tags            string `json:"tags" binding:"required"`
	ImageURL        string `json:"imageUrl" binding:"required"`
	URL             string `json:"url" binding:"required"`
	SubmitterEmail  string `json:"submitterEmail" binding:"required,email"`
}

// ParseTags splits a comma-separated tag string, trimming each entry and
// dropping empty ones. The result is never nil.
func ParseTags(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

func NewFromCreateRequest(req CreateRequest) Submission {
	now := time.Now().UTC()

	return Submission{
		ID:              uuid.NewString(),
		Name:            req.Name,
		Description:     req.Description,
		LongDescription: req.LongDescription,
		Category:        req.Category,
		Pricing:         req.Pricing,
		Tags:            ParseTags(req.Tags),
		ImageURL:        req.ImageURL,
		URL:             req.URL,
		SubmitterEmail:  req.SubmitterEmail,
		Status:          StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (s Submission) IsApproved() bool {
	return s.Status == StatusApproved
}

// ToTool builds the catalog entry an approval publishes. The tool gets its
// own id and timestamps and is never featured.
func (s Submission) ToTool() tool.Tool {
	return tool.NewFromCreateRequest(tool.CreateRequest{
		Name:            s.Name,
		Description:     s.Description,
		LongDescription: s.LongDescription,
		Category:        s.Category,
		Pricing:         s.Pricing,
		Tags:            s.Tags,
		Image:           s.ImageURL,
		URL:             s.URL,
		Featured:        false,
	})
}
