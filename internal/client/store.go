package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"log/slog"

	"github.com/google/uuid"

	"github.com/rileysklar/BookNook/internal/domain"
	"github.com/rileysklar/BookNook/pkg/e"
)

type LibraryGateway interface {
	List(ctx context.Context, filter *domain.ListLibrariesFilter) ([]domain.Library, error)
	Create(ctx context.Context, req domain.CreateLibraryRequest) (*domain.Library, error)
	Update(ctx context.Context, id uuid.UUID, req domain.UpdateLibraryRequest) (*domain.Library, error)
	Delete(ctx context.Context, id uuid.UUID) error
	RecordActivity(ctx context.Context, req domain.RecordActivityRequest) (*domain.Activity, error)
}

// Store holds the client's view of the library collection. All state
// transitions happen under one mutex and snapshots are returned by value,
// so consumers never observe a half-applied change.
//
// Failed refreshes keep the previous collection: stale data with a
// visible LastError beats an empty map.
type Store struct {
	mu      sync.Mutex
	gateway LibraryGateway
	retrier *Retrier
	logger  *slog.Logger

	libraries    []domain.Library
	loading      bool
	lastError    error
	attemptCount int

	// generation arbitrates concurrent fetches: only the newest fetch may
	// publish its result (last-request-wins).
	generation uint64
	inflight   *domain.ListLibrariesFilter
	filter     *domain.ListLibrariesFilter
}

func NewStore(gateway LibraryGateway, retrier *Retrier, logger *slog.Logger) *Store {
	return &Store{
		gateway: gateway,
		retrier: retrier,
		logger:  logger,
	}
}

// Fetch loads the collection for the given filter. A fetch identical to
// the one already in flight is a no-op; a different filter supersedes it
// and the superseded response is discarded when it lands.
func (s *Store) Fetch(ctx context.Context, filter *domain.ListLibrariesFilter) error {
	return s.fetch(ctx, filter, false)
}

// Refresh re-runs the current filter even if an identical fetch is in
// flight, clearing the attempt counter first.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.attemptCount = 0
	filter := cloneFilter(s.filter)
	s.mu.Unlock()

	return s.fetch(ctx, filter, true)
}

func (s *Store) fetch(ctx context.Context, filter *domain.ListLibrariesFilter, force bool) error {
	s.mu.Lock()
	if !force && s.loading && sameFilter(s.inflight, filter) {
		s.mu.Unlock()
		return nil
	}
	s.generation++
	gen := s.generation
	s.loading = true
	s.inflight = cloneFilter(filter)
	s.filter = cloneFilter(filter)
	s.mu.Unlock()

	var result []domain.Library
	err := s.retrier.Do(ctx, func(ctx context.Context) error {
		libs, listErr := s.gateway.List(ctx, filter)
		if listErr != nil {
			s.bumpAttempts(gen)
			return listErr
		}
		result = libs
		return nil
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		// a newer fetch superseded this one
		return nil
	}
	s.loading = false
	s.inflight = nil

	switch {
	case err == nil:
		s.libraries = result
		s.lastError = nil
		s.attemptCount = 0
		return nil
	case errors.Is(err, e.ErrCanceled):
		// teardown, not failure: state stays as it was
		return nil
	default:
		s.lastError = err
		return err
	}
}

func (s *Store) bumpAttempts(gen uint64) {
	s.mu.Lock()
	if gen == s.generation {
		s.attemptCount++
	}
	s.mu.Unlock()
}

// Create sends the request and prepends the server's record on confirm.
// The local collection is only touched after the server assigned an id.
func (s *Store) Create(ctx context.Context, req domain.CreateLibraryRequest) (*domain.Library, error) {
	lib, err := s.gateway.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.libraries = append([]domain.Library{*lib}, s.libraries...)
	s.mu.Unlock()

	s.emitActivity(ctx, domain.RecordActivityRequest{
		ActivityType: domain.ActivityLibraryCreated,
		EntityType:   "library",
		EntityID:     lib.ID.String(),
		Title:        "Created library: " + lib.Name,
	})

	return lib, nil
}

// Update patches a library the store already knows. Unknown ids and
// blank names are rejected before any network call.
func (s *Store) Update(ctx context.Context, id uuid.UUID, patch domain.UpdateLibraryRequest) (*domain.Library, error) {
	s.mu.Lock()
	known := s.indexOf(id) >= 0
	s.mu.Unlock()

	if !known {
		return nil, fmt.Errorf("update %s: %w", id, e.ErrNotFound)
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, fmt.Errorf("update %s: name is empty: %w", id, e.ErrValidation)
	}

	lib, err := s.gateway.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if i := s.indexOf(id); i >= 0 {
		s.libraries[i] = *lib
	}
	s.mu.Unlock()

	s.emitActivity(ctx, domain.RecordActivityRequest{
		ActivityType: domain.ActivityLibraryUpdated,
		EntityType:   "library",
		EntityID:     lib.ID.String(),
		Title:        "Updated library: " + lib.Name,
	})

	return lib, nil
}

// Delete is idempotent end to end: an id the store does not hold is a
// silent success, and a 404 from the server still removes it locally.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	known := s.indexOf(id) >= 0
	s.mu.Unlock()

	if !known {
		return nil
	}

	if err := s.gateway.Delete(ctx, id); err != nil && !errors.Is(err, e.ErrNotFound) {
		return err
	}

	s.mu.Lock()
	if i := s.indexOf(id); i >= 0 {
		s.libraries = append(s.libraries[:i], s.libraries[i+1:]...)
	}
	s.mu.Unlock()

	s.emitActivity(ctx, domain.RecordActivityRequest{
		ActivityType: domain.ActivityLibraryDeleted,
		EntityType:   "library",
		EntityID:     id.String(),
		Title:        "Deleted library: " + id.String(),
	})

	return nil
}

// Snapshot returns a copy of the current collection.
func (s *Store) Snapshot() []domain.Library {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Library, len(s.libraries))
	copy(out, s.libraries)
	return out
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Store) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

func (s *Store) AttemptCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attemptCount
}

// indexOf must be called with s.mu held.
func (s *Store) indexOf(id uuid.UUID) int {
	for i := range s.libraries {
		if s.libraries[i].ID == id {
			return i
		}
	}
	return -1
}

// emitActivity is fire-and-forget: the mutation already succeeded and a
// lost feed entry must not fail it.
func (s *Store) emitActivity(ctx context.Context, req domain.RecordActivityRequest) {
	if _, err := s.gateway.RecordActivity(ctx, req); err != nil {
		s.logger.Warn("activity record failed",
			slog.String("activity_type", string(req.ActivityType)),
			slog.Any("error", err),
		)
	}
}

func sameFilter(a, b *domain.ListLibrariesFilter) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func cloneFilter(f *domain.ListLibrariesFilter) *domain.ListLibrariesFilter {
	if f == nil {
		return nil
	}
	c := *f
	return &c
}
