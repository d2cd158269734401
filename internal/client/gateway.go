// Package client is the consumer-side half of the API: an HTTP gateway,
// a retry controller and a stateful library store built on both. The CLI
// is its main user but nothing in here is terminal-specific.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/rileysklar/BookNook/internal/domain"
	"github.com/rileysklar/BookNook/pkg/e"
)

// TokenSource yields the bearer token attached to authenticated calls.
// Implementations may refresh under the hood; Token is called per request.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticTokenSource returns the same token forever. An empty value means
// anonymous: mutating calls will fail with ErrAuthRequired before any
// network I/O.
type StaticTokenSource string

func (s StaticTokenSource) Token(_ context.Context) (string, error) {
	return string(s), nil
}

type Gateway struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
	logger     *slog.Logger
}

func NewGateway(baseURL string, tokens TokenSource, logger *slog.Logger) *Gateway {
	return &Gateway{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		logger:     logger,
	}
}

func (g *Gateway) List(ctx context.Context, filter *domain.ListLibrariesFilter) ([]domain.Library, error) {
	endpoint := g.baseURL + "/api/libraries"
	if filter != nil {
		q := url.Values{}
		q.Set("lng", strconv.FormatFloat(filter.Center.Lng(), 'g', -1, 64))
		q.Set("lat", strconv.FormatFloat(filter.Center.Lat(), 'g', -1, 64))
		q.Set("radius", strconv.FormatFloat(filter.RadiusKM, 'g', -1, 64))
		endpoint += "?" + q.Encode()
	}

	var out struct {
		Libraries []domain.Library `json:"libraries"`
	}
	if err := g.do(ctx, http.MethodGet, endpoint, nil, false, &out); err != nil {
		return nil, err
	}
	return out.Libraries, nil
}

func (g *Gateway) Create(ctx context.Context, req domain.CreateLibraryRequest) (*domain.Library, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("create: name is empty: %w", e.ErrValidation)
	}
	if !req.Coordinates.Valid() {
		return nil, fmt.Errorf("create: %w", e.ErrMalformedCoordinate)
	}

	var out struct {
		Library domain.Library `json:"library"`
	}
	if err := g.do(ctx, http.MethodPost, g.baseURL+"/api/libraries", req, true, &out); err != nil {
		return nil, err
	}
	return &out.Library, nil
}

func (g *Gateway) Update(ctx context.Context, id uuid.UUID, req domain.UpdateLibraryRequest) (*domain.Library, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, fmt.Errorf("update: name is empty: %w", e.ErrValidation)
	}

	var out struct {
		Library domain.Library `json:"library"`
	}
	endpoint := g.baseURL + "/api/libraries/" + id.String()
	if err := g.do(ctx, http.MethodPut, endpoint, req, true, &out); err != nil {
		return nil, err
	}
	return &out.Library, nil
}

func (g *Gateway) Delete(ctx context.Context, id uuid.UUID) error {
	endpoint := g.baseURL + "/api/libraries/" + id.String()
	return g.do(ctx, http.MethodDelete, endpoint, nil, true, nil)
}

func (g *Gateway) Activities(ctx context.Context) ([]domain.Activity, error) {
	var out struct {
		Activities []domain.Activity `json:"activities"`
	}
	if err := g.do(ctx, http.MethodGet, g.baseURL+"/api/activities", nil, true, &out); err != nil {
		return nil, err
	}
	return out.Activities, nil
}

func (g *Gateway) RecordActivity(ctx context.Context, req domain.RecordActivityRequest) (*domain.Activity, error) {
	var out struct {
		Activity domain.Activity `json:"activity"`
	}
	if err := g.do(ctx, http.MethodPost, g.baseURL+"/api/activities", req, true, &out); err != nil {
		return nil, err
	}
	return &out.Activity, nil
}

func (g *Gateway) RecordSearch(ctx context.Context, req domain.RecordSearchRequest) (uuid.UUID, error) {
	var out struct {
		ActivityID string `json:"activity_id"`
	}
	if err := g.do(ctx, http.MethodPost, g.baseURL+"/api/activities/search", req, true, &out); err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(out.ActivityID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse activity_id %q: %w", out.ActivityID, err)
	}
	return id, nil
}

// do runs a single request. Authenticated calls resolve the token first
// and fail with ErrAuthRequired before any network I/O when it is empty.
func (g *Gateway) do(ctx context.Context, method, endpoint string, body any, authed bool, out any) error {
	var token string
	if authed {
		var err error
		token, err = g.tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("token source: %w", err)
		}
		if token == "" {
			return e.ErrAuthRequired
		}
	}

	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return g.remoteError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (g *Gateway) remoteError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	_ = json.Unmarshal(raw, &body)

	g.logger.Debug("remote error",
		slog.Int("status", resp.StatusCode),
		slog.String("message", body.Error),
	)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return e.ErrAuthRequired
	case http.StatusNotFound:
		return e.ErrNotFound
	default:
		return &e.RemoteError{Status: resp.StatusCode, Message: body.Error}
	}
}
