package e

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func Wrap(message string, err error) error {
	return fmt.Errorf("%s: %w", message, err)
}

var (
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrValidation          = errors.New("validation failed")
	ErrAuthRequired        = errors.New("authentication required")
	ErrMalformedCoordinate = errors.New("malformed coordinate")
	ErrInternal            = errors.New("internal error")
	ErrDeadline            = errors.New("deadline exceeded")
	ErrCanceled            = errors.New("context canceled")
	ErrUniqueViolation     = errors.New("unique violation")
	ErrActivityQueueEmpty  = errors.New("activity queue is empty")
)

// RemoteError is a non-2xx response from the library API that does not map
// onto a more specific sentinel. Status carries the HTTP status code and
// Message the server's error body, so callers can surface both.
type RemoteError struct {
	Status  int
	Message string
}

func (r *RemoteError) Error() string {
	if r.Message == "" {
		return fmt.Sprintf("remote error: status %d", r.Status)
	}
	return fmt.Sprintf("remote error: status %d: %s", r.Status, r.Message)
}

// MaxRetriesError is the terminal failure of a retried read: all attempts
// were consumed and the last underlying error is preserved.
type MaxRetriesError struct {
	Attempts int
	Last     error
}

func (m *MaxRetriesError) Error() string {
	return fmt.Sprintf("gave up after %d attempts: %v", m.Attempts, m.Last)
}

func (m *MaxRetriesError) Unwrap() error { return m.Last }

func WrapError(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, ErrDeadline)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, ErrCanceled)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%s: %w", op, ErrUniqueViolation)
		case "23503", "23514":
			return fmt.Errorf("%s: %w", op, ErrValidation)
		default:
			return fmt.Errorf("%s: pg error %s: %w", op, pgErr.Code, ErrInternal)
		}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, ErrInternal)
}
