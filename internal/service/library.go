package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/rileysklar/BookNook/internal/domain"
	"github.com/rileysklar/BookNook/pkg/e"
	"github.com/rileysklar/BookNook/pkg/validator"
)

type libraryService struct {
	repo     LibraryRepository
	cache    LibraryCache
	queue    ActivityEnqueuer
	logger   *slog.Logger
	cacheTTL time.Duration
}

func NewLibraryService(
	repo LibraryRepository,
	cache LibraryCache,
	queue ActivityEnqueuer,
	logger *slog.Logger,
	cacheTTL time.Duration,
) LibraryService {
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	return &libraryService{
		repo:     repo,
		cache:    cache,
		queue:    queue,
		logger:   logger,
		cacheTTL: cacheTTL,
	}
}

// List is cache-aside for the unfiltered read path. Geo-filtered reads go
// straight to PostGIS. Cache failures degrade to the repository, never to
// an error.
func (s *libraryService) List(ctx context.Context, filter *domain.ListLibrariesFilter) ([]domain.Library, error) {
	if filter != nil {
		if err := validator.ValidateStruct(filter); err != nil {
			return nil, fmt.Errorf("list filter: %w", e.ErrValidation)
		}
		if !filter.Center.Valid() {
			return nil, fmt.Errorf("list filter center: %w", e.ErrMalformedCoordinate)
		}
		libs, err := s.repo.ListNearby(ctx, filter.Center, filter.RadiusKM)
		if err != nil {
			return nil, err
		}
		return deref(libs), nil
	}

	cached, hit, err := s.cache.GetActive(ctx)
	if err != nil {
		s.logger.Warn("library cache read failed", slog.Any("error", err))
	} else if hit {
		return cached, nil
	}

	libs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := deref(libs)

	if err := s.cache.SetActive(ctx, out, s.cacheTTL); err != nil {
		s.logger.Warn("library cache write failed", slog.Any("error", err))
	}

	return out, nil
}

func (s *libraryService) Create(ctx context.Context, userID string, req domain.CreateLibraryRequest) (*domain.Library, error) {
	if userID == "" {
		return nil, e.ErrAuthRequired
	}
	if err := validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("create library: %w", e.ErrValidation)
	}
	if !req.Coordinates.Valid() {
		return nil, fmt.Errorf("create library coordinates: %w", e.ErrMalformedCoordinate)
	}

	lib := &domain.Library{
		ID:          uuid.New(),
		CreatorID:   userID,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Coordinates: req.Coordinates,
		IsPublic:    req.Public(),
		Status:      domain.LibraryActive,
	}
	if err := s.repo.Create(ctx, lib); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.enqueueActivity(ctx, domain.Activity{
		UserID:       userID,
		ActivityType: domain.ActivityLibraryCreated,
		EntityType:   "library",
		EntityID:     lib.ID.String(),
		Title:        "Created library: " + lib.Name,
		Description:  lib.Description,
		Metadata: map[string]any{
			"library_name": lib.Name,
			"library_id":   lib.ID.String(),
			"coordinates":  lib.Coordinates,
			"is_public":    lib.IsPublic,
		},
	})

	return lib, nil
}

func (s *libraryService) Update(ctx context.Context, userID string, id uuid.UUID, req domain.UpdateLibraryRequest) (*domain.Library, error) {
	if userID == "" {
		return nil, e.ErrAuthRequired
	}
	if err := validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("update library: %w", e.ErrValidation)
	}

	lib, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		lib.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		lib.Description = strings.TrimSpace(*req.Description)
	}
	if req.IsPublic != nil {
		lib.IsPublic = *req.IsPublic
	}

	if err := s.repo.Update(ctx, lib); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.enqueueActivity(ctx, domain.Activity{
		UserID:       userID,
		ActivityType: domain.ActivityLibraryUpdated,
		EntityType:   "library",
		EntityID:     lib.ID.String(),
		Title:        "Updated library: " + lib.Name,
		Description:  lib.Description,
		Metadata: map[string]any{
			"library_name": lib.Name,
			"library_id":   lib.ID.String(),
		},
	})

	return lib, nil
}

// Delete is idempotent: deleting an id the store no longer has (or never
// had) succeeds without an activity record.
func (s *libraryService) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	if userID == "" {
		return e.ErrAuthRequired
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil
		}
		return err
	}

	s.invalidate(ctx)
	s.enqueueActivity(ctx, domain.Activity{
		UserID:       userID,
		ActivityType: domain.ActivityLibraryDeleted,
		EntityType:   "library",
		EntityID:     id.String(),
		Title:        "Deleted library: " + id.String(),
		Description:  "Library was soft deleted",
		Metadata: map[string]any{
			"library_id":    id.String(),
			"deletion_type": "soft_delete",
		},
	})

	return nil
}

func (s *libraryService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("library cache invalidate failed", slog.Any("error", err))
	}
}

// enqueueActivity never propagates failure: the mutation already happened
// and must not be reported as failed because its audit record was lost.
func (s *libraryService) enqueueActivity(ctx context.Context, act domain.Activity) {
	if err := s.queue.Enqueue(ctx, act); err != nil {
		s.logger.Warn("activity enqueue failed",
			slog.String("activity_type", string(act.ActivityType)),
			slog.Any("error", err),
		)
	}
}

func deref(src []*domain.Library) []domain.Library {
	out := make([]domain.Library, 0, len(src))
	for _, p := range src {
		out = append(out, *p)
	}
	return out
}
