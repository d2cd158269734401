package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/rileysklar/BookNook/pkg/geo"
)

type LibraryStatus string

const (
	LibraryActive   LibraryStatus = "active"
	LibraryInactive LibraryStatus = "inactive"
	LibraryPending  LibraryStatus = "pending"
	LibraryDeleted  LibraryStatus = "deleted"
)

// Library is a little-free-library point of interest. CreatorID is the
// identity provider's subject string, not a uuid: the provider assigns it
// and we never interpret it. Coordinates and CreatorID are immutable after
// creation.
type Library struct {
	ID          uuid.UUID     `json:"id"`
	CreatorID   string        `json:"creator_id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Coordinates geo.Point     `json:"coordinates"`
	IsPublic    bool          `json:"is_public"`
	Status      LibraryStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type CreateLibraryRequest struct {
	Name        string    `json:"name" validate:"required,notblank"`
	Description string    `json:"description" validate:"omitempty"`
	Coordinates geo.Point `json:"coordinates"`
	IsPublic    *bool     `json:"is_public" validate:"omitempty"`
}

// Public reports the requested visibility, defaulting to true.
func (r CreateLibraryRequest) Public() bool {
	if r.IsPublic == nil {
		return true
	}
	return *r.IsPublic
}

// UpdateLibraryRequest patches name, description and visibility only.
// Coordinates are deliberately absent: they are fixed at creation.
type UpdateLibraryRequest struct {
	Name        *string `json:"name" validate:"omitempty,notblank"`
	Description *string `json:"description" validate:"omitempty"`
	IsPublic    *bool   `json:"is_public" validate:"omitempty"`
}

// ListLibrariesFilter narrows a listing to libraries within RadiusKM of
// the center. Nil filter means all active libraries.
type ListLibrariesFilter struct {
	Center   geo.Point `json:"center"`
	RadiusKM float64   `json:"radius_km" validate:"min=0.1,max=500"`
}

type ListLibrariesResponse struct {
	Libraries []Library `json:"libraries"`
}
