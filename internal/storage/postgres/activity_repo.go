package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rileysklar/BookNook/internal/domain"
	"github.com/rileysklar/BookNook/pkg/e"
)

type ActivityRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewActivityRepo(pool *pgxpool.Pool, logger *slog.Logger) *ActivityRepo {
	return &ActivityRepo{pool: pool, logger: logger}
}

func (p *ActivityRepo) Insert(ctx context.Context, activity *domain.Activity) error {
	const op = "postgres.Activity.Insert"

	if activity == nil {
		return fmt.Errorf("%s: %w", op, e.ErrValidation)
	}
	if activity.UserID == "" || activity.ActivityType == "" || activity.Title == "" {
		return fmt.Errorf("%s: %w", op, e.ErrValidation)
	}

	const query = `
		INSERT INTO activities (id, user_id, activity_type, entity_type, entity_id, title, description, metadata, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, NULLIF($7, ''), $8, $9)
	`

	if activity.ID == uuid.Nil {
		activity.ID = uuid.New()
	}
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now().UTC()
	}

	metadata := activity.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	metaJSON, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("%s: %w", op, e.ErrValidation)
	}

	_, err = p.pool.Exec(ctx, query,
		activity.ID,
		activity.UserID,
		activity.ActivityType,
		activity.EntityType,
		activity.EntityID,
		activity.Title,
		activity.Description,
		metaJSON,
		activity.CreatedAt,
	)
	if err != nil {
		p.logger.Error("db exec failed",
			slog.String("op", op),
			slog.Any("error", err),
			slog.String("user_id", activity.UserID),
		)
		return e.WrapError(ctx, op, err)
	}

	return nil
}

func (p *ActivityRepo) ListRecentByUser(ctx context.Context, userID string, limit int) ([]*domain.Activity, error) {
	const op = "postgres.Activity.ListRecentByUser"

	if userID == "" {
		return nil, fmt.Errorf("%s: %w", op, e.ErrValidation)
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	const query = `
		SELECT id,
			   user_id,
			   activity_type,
			   COALESCE(entity_type, ''),
			   COALESCE(entity_id, ''),
			   title,
			   COALESCE(description, ''),
			   metadata,
			   created_at
		FROM activities
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := p.pool.Query(ctx, query, userID, limit)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	var activities []*domain.Activity
	for rows.Next() {
		var act domain.Activity
		var metaJSON []byte
		if err := rows.Scan(
			&act.ID,
			&act.UserID,
			&act.ActivityType,
			&act.EntityType,
			&act.EntityID,
			&act.Title,
			&act.Description,
			&metaJSON,
			&act.CreatedAt,
		); err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		if len(metaJSON) > 0 {
			if err := json.Unmarshal(metaJSON, &act.Metadata); err != nil {
				p.logger.Warn("metadata unmarshal failed", slog.String("op", op), slog.String("id", act.ID.String()))
			}
		}
		activities = append(activities, &act)
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return activities, nil
}
