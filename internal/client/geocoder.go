package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"log/slog"

	"github.com/rileysklar/BookNook/pkg/e"
	"github.com/rileysklar/BookNook/pkg/geo"
)

// Place is one forward-geocoding hit.
type Place struct {
	Name   string
	Center geo.Point
}

// Geocoder talks to a Mapbox-style places endpoint. Both directions are
// best-effort conveniences for the CLI; failures surface as errors, never
// as fabricated locations.
type Geocoder struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	logger      *slog.Logger
}

func NewGeocoder(baseURL, accessToken string, logger *slog.Logger) *Geocoder {
	return &Geocoder{
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		baseURL:     strings.TrimRight(baseURL, "/"),
		accessToken: accessToken,
		logger:      logger,
	}
}

type geocodeFeature struct {
	Text      string     `json:"text"`
	PlaceName string     `json:"place_name"`
	Center    [2]float64 `json:"center"`
	PlaceType []string   `json:"place_type"`
	Context   []struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"context"`
}

type geocodeResponse struct {
	Features []geocodeFeature `json:"features"`
}

func (g *Geocoder) Search(ctx context.Context, query string) ([]Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is empty: %w", e.ErrValidation)
	}

	endpoint := g.baseURL + "/" + url.PathEscape(query) + ".json?" + url.Values{
		"access_token": {g.accessToken},
		"limit":        {"5"},
	}.Encode()

	resp, err := g.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	places := make([]Place, 0, len(resp.Features))
	for _, f := range resp.Features {
		pt := geo.Point{f.Center[0], f.Center[1]}
		if !pt.Valid() {
			g.logger.Warn("geocoder returned invalid center", slog.String("place", f.PlaceName))
			continue
		}
		name := f.PlaceName
		if name == "" {
			name = f.Text
		}
		places = append(places, Place{Name: name, Center: pt})
	}
	return places, nil
}

// ReverseGeocode names a point, preferring the most specific admin level:
// neighborhood, then locality, then place.
func (g *Geocoder) ReverseGeocode(ctx context.Context, p geo.Point) (string, error) {
	if !p.Valid() {
		return "", fmt.Errorf("reverse geocode: %w", e.ErrMalformedCoordinate)
	}

	coords := strconv.FormatFloat(p.Lng(), 'g', -1, 64) + "," + strconv.FormatFloat(p.Lat(), 'g', -1, 64)
	endpoint := g.baseURL + "/" + coords + ".json?" + url.Values{
		"access_token": {g.accessToken},
		"types":        {"neighborhood,locality,place"},
	}.Encode()

	resp, err := g.get(ctx, endpoint)
	if err != nil {
		return "", err
	}
	if len(resp.Features) == 0 {
		return "", e.ErrNotFound
	}

	for _, wanted := range []string{"neighborhood", "locality", "place"} {
		for _, f := range resp.Features {
			for _, t := range f.PlaceType {
				if t == wanted {
					return f.Text, nil
				}
			}
		}
	}
	return resp.Features[0].Text, nil
}

func (g *Geocoder) get(ctx context.Context, endpoint string) (*geocodeResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoder request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &e.RemoteError{Status: resp.StatusCode, Message: "geocoder error"}
	}

	var out geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode geocoder response: %w", err)
	}
	return &out, nil
}
