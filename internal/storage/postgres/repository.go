package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/rileysklar/BookNook/internal/domain"
	"github.com/rileysklar/BookNook/pkg/geo"
)

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

func (p *Postgres) Libraries() LibraryRepository   { return p.LibraryRep }
func (p *Postgres) Activities() ActivityRepository { return p.ActivityRep }
