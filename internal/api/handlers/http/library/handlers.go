package library

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/rileysklar/BookNook/internal/domain"
	"github.com/rileysklar/BookNook/internal/middleware"
	"github.com/rileysklar/BookNook/pkg/geo"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type Libraries interface {
	List(ctx context.Context, filter *domain.ListLibrariesFilter) ([]domain.Library, error)
	Create(ctx context.Context, userID string, req domain.CreateLibraryRequest) (*domain.Library, error)
	Update(ctx context.Context, userID string, id uuid.UUID, req domain.UpdateLibraryRequest) (*domain.Library, error)
	Delete(ctx context.Context, userID string, id uuid.UUID) error
}

type Handler struct {
	logger    *slog.Logger
	Libraries Libraries
}

func NewHandler(logger *slog.Logger, libraries Libraries) *Handler {
	return &Handler{
		logger:    logger,
		Libraries: libraries,
	}
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

func (h *Handler) LibraryList(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("LibraryList", slog.String("query", r.URL.RawQuery), slog.String("remote", r.RemoteAddr))

	filter, err := parseListFilter(r)
	if err != nil {
		l.Warn("invalid filter", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	libraries, err := h.Libraries.List(r.Context(), filter)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("libraries listed", slog.Int("count", len(libraries)))
	h.writeJSON(w, http.StatusOK, map[string]any{"libraries": libraries})
}

func (h *Handler) LibraryCreate(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("LibraryCreate", slog.String("remote", r.RemoteAddr))

	var req domain.CreateLibraryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn("invalid JSON", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	library, err := h.Libraries.Create(r.Context(), middleware.UserID(r.Context()), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("library created",
		slog.String("id", library.ID.String()),
		slog.String("name", library.Name),
	)
	h.writeJSON(w, http.StatusCreated, map[string]any{"library": library})
}

func (h *Handler) LibraryUpdate(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("LibraryUpdate", slog.String("remote", r.RemoteAddr))

	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		l.Warn("invalid id", slog.String("id", idStr), slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	var req domain.UpdateLibraryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn("invalid JSON", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	library, err := h.Libraries.Update(r.Context(), middleware.UserID(r.Context()), id, req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("library updated", slog.String("id", id.String()))
	h.writeJSON(w, http.StatusOK, map[string]any{"library": library})
}

func (h *Handler) LibraryDelete(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("LibraryDelete", slog.String("remote", r.RemoteAddr))

	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		l.Warn("invalid id", slog.String("id", idStr), slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.Libraries.Delete(r.Context(), middleware.UserID(r.Context()), id); err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("library deleted", slog.String("id", id.String()))
	h.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// parseListFilter reads the optional lng/lat/radius query triple. All three
// must be present together; a partial triple is a client error.
func parseListFilter(r *http.Request) (*domain.ListLibrariesFilter, error) {
	q := r.URL.Query()
	lngStr, latStr, radStr := q.Get("lng"), q.Get("lat"), q.Get("radius")
	if lngStr == "" && latStr == "" && radStr == "" {
		return nil, nil
	}
	if lngStr == "" || latStr == "" || radStr == "" {
		return nil, errInvalidFilter
	}

	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return nil, errInvalidFilter
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, errInvalidFilter
	}
	radius, err := strconv.ParseFloat(radStr, 64)
	if err != nil || radius <= 0 {
		return nil, errInvalidFilter
	}

	return &domain.ListLibrariesFilter{
		Center:   geo.Point{lng, lat},
		RadiusKM: radius,
	}, nil
}
