package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rileysklar/BookNook/internal/domain"
	"github.com/rileysklar/BookNook/pkg/e"
	"github.com/rileysklar/BookNook/pkg/geo"
)

type LibraryRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewLibraryRepo(pool *pgxpool.Pool, logger *slog.Logger) *LibraryRepo {
	return &LibraryRepo{pool: pool, logger: logger}
}

const librarySelectColumns = `
		SELECT id,
			   creator_id,
			   name,
			   COALESCE(description, ''),
			   ST_X(coordinates::geometry) AS lng,
			   ST_Y(coordinates::geometry) AS lat,
			   is_public,
			   status,
			   created_at,
			   updated_at
		FROM libraries
`

func (p *LibraryRepo) Create(ctx context.Context, library *domain.Library) error {
	const op = "postgres.Library.Create"

	const query = `
		INSERT INTO libraries (id, creator_id, name, description, coordinates, is_public, status, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), ST_SetSRID(ST_MakePoint($5, $6), 4326), $7, $8, $9, $9)
	`

	if library.ID == uuid.Nil {
		library.ID = uuid.New()
	}
	if library.CreatedAt.IsZero() {
		library.CreatedAt = time.Now().UTC()
	}
	library.UpdatedAt = library.CreatedAt
	if library.Status == "" {
		library.Status = domain.LibraryActive
	}
	if !library.Coordinates.Valid() {
		return fmt.Errorf("%s: %w", op, e.ErrMalformedCoordinate)
	}

	_, err := p.pool.Exec(ctx, query,
		library.ID,
		library.CreatorID,
		library.Name,
		library.Description,
		library.Coordinates.Lng(),
		library.Coordinates.Lat(),
		library.IsPublic,
		library.Status,
		library.CreatedAt,
	)
	if err != nil {
		p.logger.Error("db exec failed",
			slog.String("op", op),
			slog.Any("error", err),
		)
		return e.WrapError(ctx, op, err)
	}

	return nil
}

// List returns all active libraries, newest first.
func (p *LibraryRepo) List(ctx context.Context) ([]*domain.Library, error) {
	const op = "postgres.Library.List"

	const query = librarySelectColumns + `
		WHERE status = 'active'
		ORDER BY created_at DESC
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	return p.scanLibraries(ctx, op, rows)
}

// ListNearby returns active libraries within radiusKm of center, newest
// first. The geography cast keeps ST_DWithin's distance in meters.
func (p *LibraryRepo) ListNearby(ctx context.Context, center geo.Point, radiusKm float64) ([]*domain.Library, error) {
	const op = "postgres.Library.ListNearby"

	if !center.Valid() || radiusKm <= 0 {
		return nil, fmt.Errorf("%s: %w", op, e.ErrValidation)
	}

	const query = librarySelectColumns + `
		WHERE status = 'active'
		  AND ST_DWithin(
		    coordinates::geography,
		    ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography,
		    $3 * 1000
		  )
		ORDER BY created_at DESC
	`

	rows, err := p.pool.Query(ctx, query, center.Lng(), center.Lat(), radiusKm)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	return p.scanLibraries(ctx, op, rows)
}

func (p *LibraryRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Library, error) {
	const op = "postgres.Library.Get"

	const query = librarySelectColumns + `
		WHERE id = $1 AND status <> 'deleted'
	`

	var lib domain.Library
	var lng, lat float64
	err := p.pool.QueryRow(ctx, query, id).Scan(
		&lib.ID,
		&lib.CreatorID,
		&lib.Name,
		&lib.Description,
		&lng,
		&lat,
		&lib.IsPublic,
		&lib.Status,
		&lib.CreatedAt,
		&lib.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		p.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return nil, e.WrapError(ctx, op, err)
	}
	lib.Coordinates = geo.NewPoint(lng, lat)

	return &lib, nil
}

// Update patches the mutable fields only. Coordinates and creator are
// fixed at creation and never touched here.
func (p *LibraryRepo) Update(ctx context.Context, library *domain.Library) error {
	const op = "postgres.Library.Update"

	const query = `
		UPDATE libraries
		SET name        = $2,
			description = NULLIF($3, ''),
			is_public   = $4,
			updated_at  = $5
		WHERE id = $1 AND status <> 'deleted'
	`

	library.UpdatedAt = time.Now().UTC()

	cmd, err := p.pool.Exec(ctx, query,
		library.ID,
		library.Name,
		library.Description,
		library.IsPublic,
		library.UpdatedAt,
	)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err), slog.String("id", library.ID.String()))
		return e.WrapError(ctx, op, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}

	return nil
}

// SoftDelete flips status to 'deleted'; the row stays. Deleting an
// already-deleted id reports ErrNotFound and the service layer decides
// whether that counts as success.
func (p *LibraryRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	const op = "postgres.Library.SoftDelete"

	const query = `
		UPDATE libraries
		SET status = 'deleted', updated_at = $2
		WHERE id = $1 AND status <> 'deleted'
	`

	cmd, err := p.pool.Exec(ctx, query, id, time.Now().UTC())
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return e.WrapError(ctx, op, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}

	return nil
}

func (p *LibraryRepo) ListActive(ctx context.Context) ([]*domain.Library, error) {
	const op = "postgres.Library.ListActive"

	const query = librarySelectColumns + `
		WHERE status = 'active'
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	return p.scanLibraries(ctx, op, rows)
}

func (p *LibraryRepo) scanLibraries(ctx context.Context, op string, rows pgx.Rows) ([]*domain.Library, error) {
	var libraries []*domain.Library
	for rows.Next() {
		var lib domain.Library
		var lng, lat float64
		if err := rows.Scan(
			&lib.ID,
			&lib.CreatorID,
			&lib.Name,
			&lib.Description,
			&lng,
			&lat,
			&lib.IsPublic,
			&lib.Status,
			&lib.CreatedAt,
			&lib.UpdatedAt,
		); err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		lib.Coordinates = geo.NewPoint(lng, lat)
		libraries = append(libraries, &lib)
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return libraries, nil
}
