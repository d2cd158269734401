package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileysklar/BookNook/internal/domain"
	"github.com/rileysklar/BookNook/pkg/e"
	"github.com/rileysklar/BookNook/pkg/geo"
)

func TestGateway_List_DecodesCoordinates(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/libraries", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"), "list is anonymous")

		w.Header().Set("Content-Type", "application/json")
		// string-form coordinates must decode the same as array form
		w.Write([]byte(`{"libraries":[
			{"id":"` + id.String() + `","name":"A","coordinates":[-97.74,30.26]},
			{"id":"` + uuid.NewString() + `","name":"B","coordinates":"(-97.70,30.29)"}
		]}`))
	}))
	defer srv.Close()

	g := NewGateway(srv.URL, StaticTokenSource(""), testLogger())

	libs, err := g.List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, libs, 2)
	assert.Equal(t, geo.Point{-97.74, 30.26}, libs[0].Coordinates)
	assert.Equal(t, geo.Point{-97.70, 30.29}, libs[1].Coordinates)
}

func TestGateway_List_FilterQuery(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "-97.7431", q.Get("lng"))
		assert.Equal(t, "30.2672", q.Get("lat"))
		assert.Equal(t, "5", q.Get("radius"))
		w.Write([]byte(`{"libraries":[]}`))
	}))
	defer srv.Close()

	g := NewGateway(srv.URL, StaticTokenSource(""), testLogger())

	_, err := g.List(context.Background(), &domain.ListLibrariesFilter{
		Center:   geo.Point{-97.7431, 30.2672},
		RadiusKM: 5,
	})
	require.NoError(t, err)
}

func TestGateway_Create_NoToken_NoNetworkCall(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("request must not reach the server without a token")
	}))
	defer srv.Close()

	g := NewGateway(srv.URL, StaticTokenSource(""), testLogger())

	_, err := g.Create(context.Background(), domain.CreateLibraryRequest{
		Name:        "Mueller Book Box",
		Coordinates: geo.Point{-97.7, 30.29},
	})
	assert.ErrorIs(t, err, e.ErrAuthRequired)
}

func TestGateway_Create_LocalValidation_NoNetworkCall(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("invalid input must not reach the server")
	}))
	defer srv.Close()

	g := NewGateway(srv.URL, StaticTokenSource("tok"), testLogger())

	_, err := g.Create(context.Background(), domain.CreateLibraryRequest{
		Name:        "   ",
		Coordinates: geo.Point{-97.7, 30.29},
	})
	assert.ErrorIs(t, err, e.ErrValidation)

	_, err = g.Create(context.Background(), domain.CreateLibraryRequest{
		Name:        "Somewhere",
		Coordinates: geo.Point{-97.7, 91},
	})
	assert.ErrorIs(t, err, e.ErrMalformedCoordinate)
}

func TestGateway_Create_OK(t *testing.T) {
	t.Parallel()

	serverID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var req domain.CreateLibraryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Mueller Book Box", req.Name)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"library": domain.Library{ID: serverID, Name: req.Name, Coordinates: req.Coordinates},
		})
	}))
	defer srv.Close()

	g := NewGateway(srv.URL, StaticTokenSource("tok"), testLogger())

	lib, err := g.Create(context.Background(), domain.CreateLibraryRequest{
		Name:        "Mueller Book Box",
		Coordinates: geo.Point{-97.7, 30.29},
	})
	require.NoError(t, err)
	assert.Equal(t, serverID, lib.ID)
}

func TestGateway_Delete_404_IsNotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not found"}`))
	}))
	defer srv.Close()

	g := NewGateway(srv.URL, StaticTokenSource("tok"), testLogger())

	err := g.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, e.ErrNotFound)
}

func TestGateway_RemoteError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"db down"}`))
	}))
	defer srv.Close()

	g := NewGateway(srv.URL, StaticTokenSource("tok"), testLogger())

	_, err := g.Activities(context.Background())

	var remote *e.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusInternalServerError, remote.Status)
	assert.Equal(t, "db down", remote.Message)
}

func TestGateway_RecordSearch_OK(t *testing.T) {
	t.Parallel()

	wantID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/activities/search", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"activity_id":"` + wantID.String() + `"}`))
	}))
	defer srv.Close()

	g := NewGateway(srv.URL, StaticTokenSource("tok"), testLogger())

	id, err := g.RecordSearch(context.Background(), domain.RecordSearchRequest{
		SearchQuery:  "poetry",
		ResultsCount: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, wantID, id)
}
