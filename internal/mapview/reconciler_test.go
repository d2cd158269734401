package mapview

import (
	"bytes"
	"errors"
	"testing"

	"log/slog"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileysklar/BookNook/internal/domain"
	"github.com/rileysklar/BookNook/pkg/geo"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

// memorySurface records every marker it hands out.
type memorySurface struct {
	added   []*memoryMarker
	failAdd bool
}

type memoryMarker struct {
	label   string
	removed bool
	onClick func()
}

func (s *memorySurface) AddMarker(_ geo.Point, label string, onClick func()) (Marker, error) {
	if s.failAdd {
		return nil, errors.New("surface full")
	}
	m := &memoryMarker{label: label, onClick: onClick}
	s.added = append(s.added, m)
	return m, nil
}

func (m *memoryMarker) Remove() { m.removed = true }

func (s *memorySurface) live() []*memoryMarker {
	var out []*memoryMarker
	for _, m := range s.added {
		if !m.removed {
			out = append(out, m)
		}
	}
	return out
}

func lib(name string, lng, lat float64) domain.Library {
	return domain.Library{ID: uuid.New(), Name: name, Coordinates: geo.Point{lng, lat}}
}

func TestReconciler_AddsAndRemoves(t *testing.T) {
	t.Parallel()

	surface := &memorySurface{}
	r := NewReconciler(surface, testLogger(), nil)
	defer r.Close()

	a := lib("A", -97.74, 30.26)
	b := lib("B", -97.70, 30.29)

	require.NoError(t, r.Apply([]domain.Library{a, b}))
	assert.Equal(t, 2, r.Len())
	assert.Len(t, surface.live(), 2)

	require.NoError(t, r.Apply([]domain.Library{a}))
	assert.Equal(t, 1, r.Len())
	require.Len(t, surface.live(), 1)
	assert.Equal(t, "A", surface.live()[0].label)
}

func TestReconciler_SurvivorsKeepTheirMarker(t *testing.T) {
	t.Parallel()

	surface := &memorySurface{}
	r := NewReconciler(surface, testLogger(), nil)
	defer r.Close()

	a := lib("A", -97.74, 30.26)
	b := lib("B", -97.70, 30.29)
	c := lib("C", -97.68, 30.31)

	require.NoError(t, r.Apply([]domain.Library{a, b}))
	require.Len(t, surface.added, 2)
	var bMarker *memoryMarker
	for _, m := range surface.added {
		if m.label == "B" {
			bMarker = m
		}
	}
	require.NotNil(t, bMarker)

	// [A,B] -> [B,C]: B survives with the same handle, A removed, C added
	require.NoError(t, r.Apply([]domain.Library{b, c}))
	assert.False(t, bMarker.removed, "survivor must keep its marker")
	assert.Len(t, surface.added, 3, "only C caused a new marker")
	assert.Equal(t, 2, r.Len())
}

func TestReconciler_SkipsInvalidCoordinates(t *testing.T) {
	t.Parallel()

	surface := &memorySurface{}
	r := NewReconciler(surface, testLogger(), nil)
	defer r.Close()

	good := lib("Good", -97.74, 30.26)
	bad := lib("Bad", -97.74, 120)

	require.NoError(t, r.Apply([]domain.Library{bad, good}))
	assert.Equal(t, 1, r.Len(), "bad coordinates skipped, pass continues")
	require.Len(t, surface.live(), 1)
	assert.Equal(t, "Good", surface.live()[0].label)
}

func TestReconciler_AddFailureDoesNotAbort(t *testing.T) {
	t.Parallel()

	surface := &memorySurface{failAdd: true}
	r := NewReconciler(surface, testLogger(), nil)
	defer r.Close()

	require.NoError(t, r.Apply([]domain.Library{lib("A", -97.74, 30.26)}))
	assert.Zero(t, r.Len())
}

func TestReconciler_ClickDeliversLibrary(t *testing.T) {
	t.Parallel()

	surface := &memorySurface{}
	var clicked []uuid.UUID
	r := NewReconciler(surface, testLogger(), func(l domain.Library) {
		clicked = append(clicked, l.ID)
	})
	defer r.Close()

	a := lib("A", -97.74, 30.26)
	require.NoError(t, r.Apply([]domain.Library{a}))
	require.Len(t, surface.added, 1)

	surface.added[0].onClick()
	require.Len(t, clicked, 1)
	assert.Equal(t, a.ID, clicked[0])
}

func TestReconciler_CloseTwice(t *testing.T) {
	t.Parallel()

	surface := &memorySurface{}
	r := NewReconciler(surface, testLogger(), nil)

	require.NoError(t, r.Apply([]domain.Library{lib("A", -97.74, 30.26)}))
	r.Close()
	assert.Empty(t, surface.live())
	r.Close() // second close is a no-op

	err := r.Apply([]domain.Library{lib("B", -97.70, 30.29)})
	assert.Error(t, err, "a closed reconciler refuses new work")
}
