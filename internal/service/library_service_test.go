package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"github.com/rileysklar/BookNook/internal/domain"
	"github.com/rileysklar/BookNook/internal/service"
	mock_service "github.com/rileysklar/BookNook/internal/service/mocks"
	"github.com/rileysklar/BookNook/pkg/e"
	"github.com/rileysklar/BookNook/pkg/geo"
)

// --- helpers ---

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newLibraryService(repo service.LibraryRepository, cache service.LibraryCache, queue service.ActivityEnqueuer) service.LibraryService {
	return service.NewLibraryService(repo, cache, queue, discardLogger(), time.Minute)
}

func sampleLibrary(id uuid.UUID) *domain.Library {
	return &domain.Library{
		ID:          id,
		CreatorID:   "user-1",
		Name:        "Hyde Park Little Library",
		Description: "Mystery and local authors",
		Coordinates: geo.Point{-97.7431, 30.2672},
		IsPublic:    true,
		Status:      domain.LibraryActive,
		CreatedAt:   time.Date(2025, 12, 23, 12, 0, 0, 0, time.UTC),
	}
}

// --- Create ---

func TestLibraryService_Create_OK_Defaults(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockLibraryRepository(ctrl)
	cache := mock_service.NewMockLibraryCache(ctrl)
	queue := mock_service.NewMockActivityEnqueuer(ctrl)

	var got *domain.Library
	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, lib *domain.Library) error {
			got = lib
			return nil
		}).
		Times(1)
	cache.EXPECT().Invalidate(gomock.Any()).Return(nil).Times(1)

	var act domain.Activity
	queue.EXPECT().
		Enqueue(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a domain.Activity) error {
			act = a
			return nil
		}).
		Times(1)

	svc := newLibraryService(repo, cache, queue)

	lib, err := svc.Create(context.Background(), "user-1", domain.CreateLibraryRequest{
		Name:        "  Hyde Park Little Library  ",
		Description: "Mystery and local authors",
		Coordinates: geo.Point{-97.7431, 30.2672},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if lib == nil || got == nil {
		t.Fatalf("expected library, got nil")
	}
	if lib.ID == uuid.Nil {
		t.Fatalf("library.ID is nil")
	}
	if lib.Name != "Hyde Park Little Library" {
		t.Fatalf("expected trimmed name, got %q", lib.Name)
	}
	if !lib.IsPublic {
		t.Fatalf("expected is_public to default true")
	}
	if lib.Status != domain.LibraryActive {
		t.Fatalf("expected status=%q, got=%q", domain.LibraryActive, lib.Status)
	}
	if act.ActivityType != domain.ActivityLibraryCreated {
		t.Fatalf("expected created activity, got %q", act.ActivityType)
	}
	if act.EntityID != lib.ID.String() {
		t.Fatalf("activity entity_id mismatch: %q vs %q", act.EntityID, lib.ID)
	}
}

func TestLibraryService_Create_NoUser(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := newLibraryService(
		mock_service.NewMockLibraryRepository(ctrl),
		mock_service.NewMockLibraryCache(ctrl),
		mock_service.NewMockActivityEnqueuer(ctrl),
	)

	_, err := svc.Create(context.Background(), "", domain.CreateLibraryRequest{
		Name:        "x",
		Coordinates: geo.Point{0, 0},
	})
	if !errors.Is(err, e.ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}
}

func TestLibraryService_Create_InvalidCoordinates(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		pt   geo.Point
	}{
		{"lat_out_of_range", geo.Point{-97.74, 91}},
		{"lng_out_of_range", geo.Point{181, 30.26}},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := newLibraryService(
				mock_service.NewMockLibraryRepository(ctrl),
				mock_service.NewMockLibraryCache(ctrl),
				mock_service.NewMockActivityEnqueuer(ctrl),
			)

			_, err := svc.Create(context.Background(), "user-1", domain.CreateLibraryRequest{
				Name:        "Somewhere",
				Coordinates: c.pt,
			})
			if err == nil {
				t.Fatalf("expected error, got nil")
			}
			if !errors.Is(err, e.ErrValidation) && !errors.Is(err, e.ErrMalformedCoordinate) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestLibraryService_Create_RepoError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockLibraryRepository(ctrl)
	wantErr := errors.New("db down")
	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(wantErr).
		Times(1)

	svc := newLibraryService(repo,
		mock_service.NewMockLibraryCache(ctrl),
		mock_service.NewMockActivityEnqueuer(ctrl),
	)

	_, err := svc.Create(context.Background(), "user-1", domain.CreateLibraryRequest{
		Name:        "Somewhere",
		Coordinates: geo.Point{10, 10},
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
}

// --- List ---

func TestLibraryService_List_CacheHit(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockLibraryRepository(ctrl)
	cache := mock_service.NewMockLibraryCache(ctrl)

	want := []domain.Library{*sampleLibrary(uuid.New())}
	cache.EXPECT().GetActive(gomock.Any()).Return(want, true, nil).Times(1)

	svc := newLibraryService(repo, cache, mock_service.NewMockActivityEnqueuer(ctrl))

	got, err := svc.List(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].ID != want[0].ID {
		t.Fatalf("expected cached libraries, got %+v", got)
	}
}

func TestLibraryService_List_CacheMiss_PrimesCache(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockLibraryRepository(ctrl)
	cache := mock_service.NewMockLibraryCache(ctrl)

	lib := sampleLibrary(uuid.New())
	cache.EXPECT().GetActive(gomock.Any()).Return(nil, false, nil).Times(1)
	repo.EXPECT().List(gomock.Any()).Return([]*domain.Library{lib}, nil).Times(1)
	cache.EXPECT().
		SetActive(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, libs []domain.Library, _ time.Duration) error {
			if len(libs) != 1 || libs[0].ID != lib.ID {
				t.Fatalf("cache primed with wrong payload: %+v", libs)
			}
			return nil
		}).
		Times(1)

	svc := newLibraryService(repo, cache, mock_service.NewMockActivityEnqueuer(ctrl))

	got, err := svc.List(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 library, got %d", len(got))
	}
}

func TestLibraryService_List_CacheErrorFallsThrough(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockLibraryRepository(ctrl)
	cache := mock_service.NewMockLibraryCache(ctrl)

	cache.EXPECT().GetActive(gomock.Any()).Return(nil, false, errors.New("redis down")).Times(1)
	repo.EXPECT().List(gomock.Any()).Return([]*domain.Library{}, nil).Times(1)
	cache.EXPECT().SetActive(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := newLibraryService(repo, cache, mock_service.NewMockActivityEnqueuer(ctrl))

	got, err := svc.List(context.Background(), nil)
	if err != nil {
		t.Fatalf("cache failure must not surface: %v", err)
	}
	if got == nil {
		t.Fatalf("expected empty slice, got nil")
	}
}

func TestLibraryService_List_Filtered_SkipsCache(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockLibraryRepository(ctrl)
	cache := mock_service.NewMockLibraryCache(ctrl)

	center := geo.Point{-97.7431, 30.2672}
	lib := sampleLibrary(uuid.New())
	repo.EXPECT().
		ListNearby(gomock.Any(), center, 5.0).
		Return([]*domain.Library{lib}, nil).
		Times(1)

	svc := newLibraryService(repo, cache, mock_service.NewMockActivityEnqueuer(ctrl))

	got, err := svc.List(context.Background(), &domain.ListLibrariesFilter{
		Center:   center,
		RadiusKM: 5,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].ID != lib.ID {
		t.Fatalf("expected nearby library, got %+v", got)
	}
}

func TestLibraryService_List_Filtered_BadCenter(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := newLibraryService(
		mock_service.NewMockLibraryRepository(ctrl),
		mock_service.NewMockLibraryCache(ctrl),
		mock_service.NewMockActivityEnqueuer(ctrl),
	)

	_, err := svc.List(context.Background(), &domain.ListLibrariesFilter{
		Center:   geo.Point{-97.74, 120},
		RadiusKM: 5,
	})
	if err == nil {
		t.Fatalf("expected error for out-of-range center")
	}
}

// --- Update ---

func TestLibraryService_Update_PatchesOnlyProvidedFields(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockLibraryRepository(ctrl)
	cache := mock_service.NewMockLibraryCache(ctrl)
	queue := mock_service.NewMockActivityEnqueuer(ctrl)

	id := uuid.New()
	existing := sampleLibrary(id)

	repo.EXPECT().Get(gomock.Any(), id).Return(existing, nil).Times(1)

	var saved *domain.Library
	repo.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, lib *domain.Library) error {
			saved = lib
			return nil
		}).
		Times(1)
	cache.EXPECT().Invalidate(gomock.Any()).Return(nil).Times(1)
	queue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	svc := newLibraryService(repo, cache, queue)

	got, err := svc.Update(context.Background(), "user-1", id, domain.UpdateLibraryRequest{
		Name: strPtr("Renamed Library"),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if saved.Name != "Renamed Library" {
		t.Fatalf("expected renamed, got %q", saved.Name)
	}
	if saved.Description != "Mystery and local authors" {
		t.Fatalf("description must survive partial update, got %q", saved.Description)
	}
	if saved.Coordinates != existing.Coordinates {
		t.Fatalf("coordinates must not change on update")
	}
	if got.ID != id {
		t.Fatalf("id mismatch")
	}
}

func TestLibraryService_Update_NotFound(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockLibraryRepository(ctrl)
	id := uuid.New()
	repo.EXPECT().Get(gomock.Any(), id).Return(nil, e.ErrNotFound).Times(1)

	svc := newLibraryService(repo,
		mock_service.NewMockLibraryCache(ctrl),
		mock_service.NewMockActivityEnqueuer(ctrl),
	)

	_, err := svc.Update(context.Background(), "user-1", id, domain.UpdateLibraryRequest{
		IsPublic: boolPtr(false),
	})
	if !errors.Is(err, e.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// --- Delete ---

func TestLibraryService_Delete_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockLibraryRepository(ctrl)
	cache := mock_service.NewMockLibraryCache(ctrl)
	queue := mock_service.NewMockActivityEnqueuer(ctrl)

	id := uuid.New()
	repo.EXPECT().SoftDelete(gomock.Any(), id).Return(nil).Times(1)
	cache.EXPECT().Invalidate(gomock.Any()).Return(nil).Times(1)
	queue.EXPECT().
		Enqueue(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a domain.Activity) error {
			if a.ActivityType != domain.ActivityLibraryDeleted {
				t.Fatalf("expected deleted activity, got %q", a.ActivityType)
			}
			return nil
		}).
		Times(1)

	svc := newLibraryService(repo, cache, queue)

	if err := svc.Delete(context.Background(), "user-1", id); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

// The activity queue is fire-and-forget: a broken queue must never fail
// the mutation it records.
func TestLibraryService_EnqueueFailureDoesNotFailMutation(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockLibraryRepository(ctrl)
	cache := mock_service.NewMockLibraryCache(ctrl)
	queue := mock_service.NewMockActivityEnqueuer(ctrl)

	id := uuid.New()
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	repo.EXPECT().Get(gomock.Any(), id).Return(sampleLibrary(id), nil).Times(1)
	repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	repo.EXPECT().SoftDelete(gomock.Any(), id).Return(nil).Times(1)
	cache.EXPECT().Invalidate(gomock.Any()).Return(nil).Times(3)
	queue.EXPECT().
		Enqueue(gomock.Any(), gomock.Any()).
		Return(errors.New("redis down")).
		Times(3)

	svc := newLibraryService(repo, cache, queue)

	if _, err := svc.Create(context.Background(), "user-1", domain.CreateLibraryRequest{
		Name:        "Hyde Park Little Library",
		Coordinates: geo.Point{-97.7431, 30.2672},
	}); err != nil {
		t.Fatalf("create must survive a queue failure: %v", err)
	}

	if _, err := svc.Update(context.Background(), "user-1", id, domain.UpdateLibraryRequest{
		Name: strPtr("Renamed Library"),
	}); err != nil {
		t.Fatalf("update must survive a queue failure: %v", err)
	}

	if err := svc.Delete(context.Background(), "user-1", id); err != nil {
		t.Fatalf("delete must survive a queue failure: %v", err)
	}
}

func TestLibraryService_Delete_MissingIsSuccess(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_service.NewMockLibraryRepository(ctrl)
	id := uuid.New()
	repo.EXPECT().SoftDelete(gomock.Any(), id).Return(e.ErrNotFound).Times(1)

	svc := newLibraryService(repo,
		mock_service.NewMockLibraryCache(ctrl),
		mock_service.NewMockActivityEnqueuer(ctrl),
	)

	if err := svc.Delete(context.Background(), "user-1", id); err != nil {
		t.Fatalf("delete of missing library must succeed, got %v", err)
	}
}

func TestLibraryService_Delete_NoUser(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := newLibraryService(
		mock_service.NewMockLibraryRepository(ctrl),
		mock_service.NewMockLibraryCache(ctrl),
		mock_service.NewMockActivityEnqueuer(ctrl),
	)

	err := svc.Delete(context.Background(), "", uuid.New())
	if !errors.Is(err, e.ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}
}
