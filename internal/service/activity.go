package service

import (
	"context"
	"fmt"
	"strconv"

	"log/slog"

	"github.com/google/uuid"

	"github.com/rileysklar/BookNook/internal/domain"
	"github.com/rileysklar/BookNook/pkg/e"
	"github.com/rileysklar/BookNook/pkg/validator"
)

const recentActivityLimit = 20

type activityService struct {
	repo   ActivityRepository
	logger *slog.Logger
}

func NewActivityService(repo ActivityRepository, logger *slog.Logger) ActivityService {
	return &activityService{repo: repo, logger: logger}
}

func (s *activityService) ListRecent(ctx context.Context, userID string) ([]domain.Activity, error) {
	if userID == "" {
		return nil, e.ErrAuthRequired
	}

	acts, err := s.repo.ListRecentByUser(ctx, userID, recentActivityLimit)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Activity, 0, len(acts))
	for _, a := range acts {
		out = append(out, *a)
	}
	return out, nil
}

// Record writes the activity synchronously. Unlike the queued path used by
// library mutations, explicit POST /api/activities callers want the
// created record back.
func (s *activityService) Record(ctx context.Context, userID string, req domain.RecordActivityRequest) (*domain.Activity, error) {
	if userID == "" {
		return nil, e.ErrAuthRequired
	}
	if err := validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("record activity: %w", e.ErrValidation)
	}

	act := &domain.Activity{
		ID:           uuid.New(),
		UserID:       userID,
		ActivityType: req.ActivityType,
		EntityType:   req.EntityType,
		EntityID:     req.EntityID,
		Title:        req.Title,
		Description:  req.Description,
		Metadata:     req.Metadata,
	}
	if err := s.repo.Insert(ctx, act); err != nil {
		return nil, err
	}

	return act, nil
}

func (s *activityService) RecordSearch(ctx context.Context, userID string, req domain.RecordSearchRequest) (uuid.UUID, error) {
	if userID == "" {
		return uuid.Nil, e.ErrAuthRequired
	}
	if err := validator.ValidateStruct(req); err != nil {
		return uuid.Nil, fmt.Errorf("record search: %w", e.ErrValidation)
	}

	metadata := map[string]any{
		"search_query":  req.SearchQuery,
		"results_count": req.ResultsCount,
	}
	if req.Coordinates != nil {
		metadata["coordinates"] = *req.Coordinates
	}

	act := &domain.Activity{
		ID:           uuid.New(),
		UserID:       userID,
		ActivityType: domain.ActivitySearchPerformed,
		EntityType:   "search",
		Title:        "Searched for: " + req.SearchQuery,
		Description:  "Found " + strconv.Itoa(req.ResultsCount) + " results",
		Metadata:     metadata,
	}
	if err := s.repo.Insert(ctx, act); err != nil {
		s.logger.Error("search activity insert failed", slog.Any("error", err))
		return uuid.Nil, err
	}

	return act.ID, nil
}
