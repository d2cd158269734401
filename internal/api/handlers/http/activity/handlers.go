package activity

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/rileysklar/BookNook/internal/domain"
	"github.com/rileysklar/BookNook/internal/middleware"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type Activities interface {
	ListRecent(ctx context.Context, userID string) ([]domain.Activity, error)
	Record(ctx context.Context, userID string, req domain.RecordActivityRequest) (*domain.Activity, error)
	RecordSearch(ctx context.Context, userID string, req domain.RecordSearchRequest) (uuid.UUID, error)
}

type Handler struct {
	logger     *slog.Logger
	Activities Activities
}

func NewHandler(logger *slog.Logger, activities Activities) *Handler {
	return &Handler{
		logger:     logger,
		Activities: activities,
	}
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

func (h *Handler) ActivityList(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("ActivityList", slog.String("remote", r.RemoteAddr))

	activities, err := h.Activities.ListRecent(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("activities listed", slog.Int("count", len(activities)))
	h.writeJSON(w, http.StatusOK, map[string]any{"activities": activities})
}

func (h *Handler) ActivityRecord(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("ActivityRecord", slog.String("remote", r.RemoteAddr))

	var req domain.RecordActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn("invalid JSON", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	act, err := h.Activities.Record(r.Context(), middleware.UserID(r.Context()), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("activity recorded",
		slog.String("id", act.ID.String()),
		slog.String("type", string(act.ActivityType)),
	)
	h.writeJSON(w, http.StatusCreated, map[string]any{"activity": act})
}

func (h *Handler) SearchRecord(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("SearchRecord", slog.String("remote", r.RemoteAddr))

	var req domain.RecordSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn("invalid JSON", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	id, err := h.Activities.RecordSearch(r.Context(), middleware.UserID(r.Context()), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("search recorded", slog.String("activity_id", id.String()))
	h.writeJSON(w, http.StatusCreated, map[string]string{"activity_id": id.String()})
}
