package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/rileysklar/BookNook/pkg/geo"
)

type ActivityType string

const (
	ActivityLibraryCreated  ActivityType = "library_created"
	ActivityLibraryUpdated  ActivityType = "library_updated"
	ActivityLibraryDeleted  ActivityType = "library_deleted"
	ActivitySearchPerformed ActivityType = "search_performed"
	ActivityLibraryViewed   ActivityType = "library_viewed"
	ActivityLibraryRated    ActivityType = "library_rated"
)

// Activity is an audit/feed record. Recording one is always best-effort:
// the mutation an activity describes must never fail because the activity
// write did.
type Activity struct {
	ID           uuid.UUID      `json:"id"`
	UserID       string         `json:"user_id"`
	ActivityType ActivityType   `json:"activity_type"`
	EntityType   string         `json:"entity_type,omitempty"`
	EntityID     string         `json:"entity_id,omitempty"`
	Title        string         `json:"title"`
	Description  string         `json:"description,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

type RecordActivityRequest struct {
	ActivityType ActivityType   `json:"activity_type" validate:"required,oneof=library_created library_updated library_deleted search_performed library_viewed library_rated"`
	EntityType   string         `json:"entity_type" validate:"omitempty"`
	EntityID     string         `json:"entity_id" validate:"omitempty"`
	Title        string         `json:"title" validate:"required,notblank"`
	Description  string         `json:"description" validate:"omitempty"`
	Metadata     map[string]any `json:"metadata" validate:"omitempty"`
}

type RecordSearchRequest struct {
	SearchQuery  string     `json:"search_query" validate:"required,notblank"`
	ResultsCount int        `json:"results_count" validate:"omitempty,min=0"`
	Coordinates  *geo.Point `json:"coordinates" validate:"omitempty"`
}

type ListActivitiesResponse struct {
	Activities []Activity `json:"activities"`
}
