package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"github.com/rileysklar/BookNook/internal/domain"
	"github.com/rileysklar/BookNook/internal/service"
	mock_service "github.com/rileysklar/BookNook/internal/service/mocks"
	"github.com/rileysklar/BookNook/pkg/e"
	"github.com/rileysklar/BookNook/pkg/geo"
)

func TestActivityService_ListRecent_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockActivityRepository(ctrl)
	want := []*domain.Activity{
		{ID: uuid.New(), UserID: "user-1", ActivityType: domain.ActivityLibraryCreated},
		{ID: uuid.New(), UserID: "user-1", ActivityType: domain.ActivitySearchPerformed},
	}
	repo.EXPECT().
		ListRecentByUser(gomock.Any(), "user-1", 20).
		Return(want, nil).
		Times(1)

	svc := service.NewActivityService(repo, discardLogger())

	got, err := svc.ListRecent(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 2 || got[0].ID != want[0].ID {
		t.Fatalf("unexpected activities: %+v", got)
	}
}

func TestActivityService_ListRecent_NoUser(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := service.NewActivityService(mock_service.NewMockActivityRepository(ctrl), discardLogger())

	_, err := svc.ListRecent(context.Background(), "")
	if !errors.Is(err, e.ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}
}

func TestActivityService_Record_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockActivityRepository(ctrl)

	var got *domain.Activity
	repo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, act *domain.Activity) error {
			got = act
			return nil
		}).
		Times(1)

	svc := service.NewActivityService(repo, discardLogger())

	act, err := svc.Record(context.Background(), "user-1", domain.RecordActivityRequest{
		ActivityType: domain.ActivityLibraryViewed,
		EntityType:   "library",
		EntityID:     uuid.New().String(),
		Title:        "Viewed library",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if act.ID == uuid.Nil {
		t.Fatalf("activity.ID is nil")
	}
	if got.UserID != "user-1" {
		t.Fatalf("user_id mismatch: %q", got.UserID)
	}
	if got.ActivityType != domain.ActivityLibraryViewed {
		t.Fatalf("activity_type mismatch: %q", got.ActivityType)
	}
}

func TestActivityService_Record_InvalidType(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := service.NewActivityService(mock_service.NewMockActivityRepository(ctrl), discardLogger())

	_, err := svc.Record(context.Background(), "user-1", domain.RecordActivityRequest{
		ActivityType: "made_up_type",
		Title:        "x",
	})
	if !errors.Is(err, e.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestActivityService_RecordSearch_BuildsTitleAndMetadata(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockActivityRepository(ctrl)

	var got *domain.Activity
	repo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, act *domain.Activity) error {
			got = act
			return nil
		}).
		Times(1)

	svc := service.NewActivityService(repo, discardLogger())

	center := geo.Point{-97.7431, 30.2672}
	id, err := svc.RecordSearch(context.Background(), "user-1", domain.RecordSearchRequest{
		SearchQuery:  "science fiction",
		ResultsCount: 4,
		Coordinates:  &center,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if id == uuid.Nil {
		t.Fatalf("expected non-nil id")
	}
	if got.Title != "Searched for: science fiction" {
		t.Fatalf("unexpected title: %q", got.Title)
	}
	if got.Description != "Found 4 results" {
		t.Fatalf("unexpected description: %q", got.Description)
	}
	if got.Metadata["search_query"] != "science fiction" {
		t.Fatalf("metadata missing search_query: %+v", got.Metadata)
	}
	if got.ActivityType != domain.ActivitySearchPerformed {
		t.Fatalf("unexpected type: %q", got.ActivityType)
	}
}

func TestActivityService_RecordSearch_RepoError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockActivityRepository(ctrl)
	wantErr := errors.New("db down")
	repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(wantErr).Times(1)

	svc := service.NewActivityService(repo, discardLogger())

	_, err := svc.RecordSearch(context.Background(), "user-1", domain.RecordSearchRequest{
		SearchQuery: "poetry",
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
}
