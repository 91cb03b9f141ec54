// Package distance resolves a free-text place phrase to a driving distance
// from the museum, via openrouteservice geocoding and directions.
package distance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"musebot/models"
)

const (
	notFoundReply  = "Could not find the location '%s'. Please provide a valid place."
	noRouteReply   = "Sorry, I couldn't calculate the distance."
	distanceReply  = "The driving distance from %s to the museum is approximately %.2f km."
	requestTimeout = 8 * time.Second
)

// Resolver turns a place phrase into a user-facing distance answer.
type Resolver interface {
	Reply(ctx context.Context, place string) string
}

// Service calls openrouteservice for geocoding and driving directions. Each
// call is a single best-effort request; failures degrade to an apology.
type Service struct {
	Client  *http.Client
	BaseURL string
	APIKey  string
	Museum  models.GeoPoint
	Logger  *zap.Logger
}

func NewService(baseURL, apiKey string, museum models.GeoPoint, logger *zap.Logger) *Service {
	return &Service{
		Client:  &http.Client{Timeout: requestTimeout},
		BaseURL: baseURL,
		APIKey:  apiKey,
		Museum:  museum,
		Logger:  logger,
	}
}

// Reply geocodes the place, computes the driving distance to the museum and
// formats the answer. Every failure path maps to a fixed fallback message.
func (s *Service) Reply(ctx context.Context, place string) string {
	coords, err := s.Geocode(ctx, place)
	if err != nil {
		s.Logger.Warn("geocoding failed", zap.String("place", place), zap.Error(err))
		return fmt.Sprintf(notFoundReply, place)
	}
	if coords == nil {
		return fmt.Sprintf(notFoundReply, place)
	}

	km, err := s.DrivingDistanceKM(ctx, *coords, s.Museum)
	if err != nil {
		s.Logger.Warn("distance calculation failed", zap.String("place", place), zap.Error(err))
		return noRouteReply
	}
	return fmt.Sprintf(distanceReply, titleCase(place), km)
}

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"` // [lon, lat]
		} `json:"geometry"`
	} `json:"features"`
}

// Geocode returns the coordinates of the first match, or nil when the place
// is unknown to the geocoder.
func (s *Service) Geocode(ctx context.Context, place string) (*models.GeoPoint, error) {
	endpoint := fmt.Sprintf("%s/geocode/search?api_key=%s&text=%s",
		s.BaseURL, url.QueryEscape(s.APIKey), url.QueryEscape(place))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocode request: %w", err)
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode returned status %d", resp.StatusCode)
	}

	var data geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode geocode response: %w", err)
	}
	if len(data.Features) == 0 || len(data.Features[0].Geometry.Coordinates) < 2 {
		return nil, nil
	}
	c := data.Features[0].Geometry.Coordinates
	return &models.GeoPoint{Lon: c[0], Lat: c[1]}, nil
}

type directionsResponse struct {
	Routes []struct {
		Summary struct {
			Distance float64 `json:"distance"`
		} `json:"summary"`
	} `json:"routes"`
}

// DrivingDistanceKM returns the driving distance in kilometers between two points.
func (s *Service) DrivingDistanceKM(ctx context.Context, from, to models.GeoPoint) (float64, error) {
	body, err := json.Marshal(map[string]interface{}{
		"coordinates": [][]float64{{from.Lon, from.Lat}, {to.Lon, to.Lat}},
		"units":       "km",
	})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal directions request: %w", err)
	}

	endpoint := s.BaseURL + "/v2/directions/driving-car"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to build directions request: %w", err)
	}
	req.Header.Set("Authorization", s.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("directions returned status %d", resp.StatusCode)
	}

	var data directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return 0, fmt.Errorf("failed to decode directions response: %w", err)
	}
	if len(data.Routes) == 0 {
		return 0, fmt.Errorf("no route found")
	}
	return data.Routes[0].Summary.Distance, nil
}

// titleCase capitalizes the first letter of each space-separated word. Only
// the success reply title-cases the place; failure replies echo it raw.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
