package favorite

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("favorite not found")

// Favorite links a user to a tool. ToolID is a weak reference: the tool may
// have been deleted since.
type Favorite struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ToolID    string    `json:"toolId"`
	CreatedAt time.Time `json:"createdAt"`
}

func New(userID, toolID string) Favorite {
	return Favorite{
		ID:        uuid.NewString(),
		UserID:    userID,
		ToolID:    toolID,
		CreatedAt: time.Now().UTC(),
	}
}
