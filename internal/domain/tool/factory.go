package tool

import (
	"time"

	"github.com/google/uuid"
)

func NewFromCreateRequest(req CreateRequest) Tool {
	now := time.Now().UTC()

	return Tool{
		ID:              uuid.NewString(),
		Name:            req.Name,
		Description:     req.Description,
		LongDescription: req.LongDescription,
		Category:        req.Category,
		Pricing:         req.Pricing,
		Tags:            cloneTags(req.Tags),
		Image:           req.Image,
		URL:             req.URL,
		Featured:        req.Featured,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// cloneTags copies tags so callers never share a backing array with a
// stored record. nil becomes an empty list.
func cloneTags(tags []string) []string {
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}
