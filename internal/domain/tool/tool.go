package tool

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("tool not found")

type Tool struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	LongDescription string    `json:"longDescription"`
	Category        string    `json:"category"`
	Pricing         string    `json:"pricing"`
	Tags            []string  `json:"tags"`
	Image           string    `json:"image"`
	URL             string    `json:"url"`
	Featured        bool      `json:"featured"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Pricing tiers in use. The field is an open set, these are just the
// values the seed data and the UI know about.
const (
	PricingFree     = "Free"
	PricingPaid     = "Paid"
	PricingFreemium = "Freemium"
)

type CreateRequest struct {
	Name            string   `json:"name" binding:"required,max=200"`
	Description     string   `json:"description" binding:"required"`
	LongDescription string   `json:"longDescription" binding:"required"`
	Category        string   `json:"category" binding:"required"`
	Pricing         string   `json:"pricing" binding:"required"`
	Tags            []string `json:"tags" binding:"required"`
	Image           string   `json:"image" binding:"required"`
	URL             string   `json:"url" binding:"required"`
	Featured        bool     `json:"featured"`
}

// Patch is a partial update. A nil field is absent and leaves the stored
// value alone; JSON null decodes to nil as well.
type Patch struct {
	Name            *string   `json:"name" binding:"omitempty,max=200"`
	Description     *string   `json:"description"`
	LongDescription *string   `json:"longDescription"`
	Category        *string   `json:"category"`
	Pricing         *string   `json:"pricing"`
	Tags            *[]string `json:"tags"`
	Image           *string   `json:"image"`
	URL             *string   `json:"url"`
	Featured        *bool     `json:"featured"`
}

func (p Patch) IsEmpty() bool {
	return p.Name == nil &&
		p.Description == nil &&
		p.LongDescription == nil &&
		p.Category == nil &&
		p.Pricing == nil &&
		p.Tags == nil &&
		p.Image == nil &&
		p.URL == nil &&
		p.Featured == nil
}

// Apply returns t with every present field of p written over it.
// UpdatedAt is left to the caller.
func (p Patch) Apply(t Tool) Tool {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.LongDescription != nil {
		t.LongDescription = *p.LongDescription
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Pricing != nil {
		t.Pricing = *p.Pricing
	}
	if p.Tags != nil {
		t.Tags = cloneTags(*p.Tags)
	}
	if p.Image != nil {
		t.Image = *p.Image
	}
	if p.URL != nil {
		t.URL = *p.URL
	}
	if p.Featured != nil {
		t.Featured = *p.Featured
	}
	return t
}
