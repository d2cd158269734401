// Package mapview reconciles a library collection onto a map surface,
// one marker per library. The surface is abstract: the package ships a
// terminal implementation and tests use an in-memory one.
package mapview

import (
	"fmt"

	"log/slog"

	"github.com/google/uuid"

	"github.com/rileysklar/BookNook/internal/domain"
	"github.com/rileysklar/BookNook/pkg/geo"
)

// Surface is where markers live. AddMarker attaches a marker at p and
// wires onClick; implementations own stopping click propagation to the
// surface underneath the marker.
type Surface interface {
	AddMarker(p geo.Point, label string, onClick func()) (Marker, error)
}

// Marker is a live handle on a surface. Remove detaches it; a removed
// marker must not be removed again.
type Marker interface {
	Remove()
}

type entry struct {
	marker Marker
}

// Reconciler diffs successive collections by id. Surviving libraries keep
// their marker handle untouched, so surface-side state (animations, open
// popups) survives a refresh.
type Reconciler struct {
	surface Surface
	logger  *slog.Logger
	onClick func(domain.Library)

	entries map[uuid.UUID]entry
	closed  bool
}

func NewReconciler(surface Surface, logger *slog.Logger, onClick func(domain.Library)) *Reconciler {
	return &Reconciler{
		surface: surface,
		logger:  logger,
		onClick: onClick,
		entries: make(map[uuid.UUID]entry),
	}
}

// Apply brings the surface in line with libraries: markers are created
// for entering ids, removed for leaving ids, and left alone for
// survivors. A library with out-of-range coordinates is skipped with a
// log line; it never aborts the pass.
func (r *Reconciler) Apply(libraries []domain.Library) error {
	if r.closed {
		return fmt.Errorf("reconciler is closed")
	}

	wanted := make(map[uuid.UUID]domain.Library, len(libraries))
	for _, lib := range libraries {
		if !lib.Coordinates.Valid() {
			r.logger.Warn("skipping library with invalid coordinates",
				slog.String("id", lib.ID.String()),
				slog.String("name", lib.Name),
			)
			continue
		}
		wanted[lib.ID] = lib
	}

	for id, en := range r.entries {
		if _, keep := wanted[id]; !keep {
			en.marker.Remove()
			delete(r.entries, id)
		}
	}

	for id, lib := range wanted {
		if _, exists := r.entries[id]; exists {
			continue
		}
		lib := lib
		m, err := r.surface.AddMarker(lib.Coordinates, lib.Name, func() {
			if r.onClick != nil {
				r.onClick(lib)
			}
		})
		if err != nil {
			r.logger.Warn("marker add failed",
				slog.String("id", id.String()),
				slog.Any("error", err),
			)
			continue
		}
		r.entries[id] = entry{marker: m}
	}

	return nil
}

// Len reports the number of attached markers.
func (r *Reconciler) Len() int { return len(r.entries) }

// Close removes every marker. It is safe to call twice and mandatory on
// every teardown path: markers left on a surface after their reconciler
// is gone can never be removed.
func (r *Reconciler) Close() {
	if r.closed {
		return
	}
	r.closed = true
	for id, en := range r.entries {
		en.marker.Remove()
		delete(r.entries, id)
	}
}
