package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rileysklar/BookNook/internal/domain"
	"github.com/rileysklar/BookNook/pkg/geo"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go
type LibraryService interface {
	List(ctx context.Context, filter *domain.ListLibrariesFilter) ([]domain.Library, error)
	Create(ctx context.Context, userID string, req domain.CreateLibraryRequest) (*domain.Library, error)
	Update(ctx context.Context, userID string, id uuid.UUID, req domain.UpdateLibraryRequest) (*domain.Library, error)
	Delete(ctx context.Context, userID string, id uuid.UUID) error
}

type ActivityService interface {
	ListRecent(ctx context.Context, userID string) ([]domain.Activity, error)
	Record(ctx context.Context, userID string, req domain.RecordActivityRequest) (*domain.Activity, error)
	RecordSearch(ctx context.Context, userID string, req domain.RecordSearchRequest) (uuid.UUID, error)
}

type LibraryRepository interface {
	Create(ctx context.Context, library *domain.Library) error
	List(ctx context.Context) ([]*domain.Library, error)
	ListNearby(ctx context.Context, center geo.Point, radiusKm float64) ([]*domain.Library, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Library, error)
	Update(ctx context.Context, library *domain.Library) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	ListActive(ctx context.Context) ([]*domain.Library, error)
}

type ActivityRepository interface {
	Insert(ctx context.Context, activity *domain.Activity) error
	ListRecentByUser(ctx context.Context, userID string, limit int) ([]*domain.Activity, error)
}

type LibraryCache interface {
	GetActive(ctx context.Context) ([]domain.Library, bool, error)
	SetActive(ctx context.Context, libraries []domain.Library, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

// ActivityEnqueuer is the fire-and-forget half of the activity pipeline.
type ActivityEnqueuer interface {
	Enqueue(ctx context.Context, activity domain.Activity) error
}

type Service struct {
	LibraryService  LibraryService
	ActivityService ActivityService
}

func NewService(
	libraryService LibraryService,
	activityService ActivityService,
) *Service {
	return &Service{
		LibraryService:  libraryService,
		ActivityService: activityService,
	}
}
