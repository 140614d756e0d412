package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tradesoncall/backend/internal/apperr"
	"github.com/tradesoncall/backend/internal/model"
	"github.com/tradesoncall/backend/internal/places"
	"github.com/tradesoncall/backend/internal/queue"
)

// metersPerMile converts the request radius for the upstream.
const metersPerMile = 1609

// PlacesAPI is the upstream surface the orchestrator depends on.
type PlacesAPI interface {
	Geocode(ctx context.Context, address string) (places.LatLng, error)
	SearchNearby(ctx context.Context, placeType string, loc places.LatLng, radiusMeters float64, maxResults int) ([]places.Result, error)
	SearchText(ctx context.Context, query string, loc places.LatLng, radiusMeters float64, maxResults int) ([]places.Result, error)
}

// HistoryStore appends search audit rows.
type HistoryStore interface {
	Append(ctx context.Context, h model.SearchHistory) error
}

// EventPublisher delivers domain events to the broker.
type EventPublisher interface {
	Publish(ctx context.Context, queueName string, event any) error
}

// SearchRequest is a validated service search.
type SearchRequest struct {
	ServiceType model.ServiceType
	Location    string
	RadiusMiles int
	MaxResults  int
	MinRating   *float64
	OpenNow     *bool
}

// Coordinates is a latitude/longitude pair in API responses.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SearchResults is the orchestrator's output.
type SearchResults struct {
	Location     string          `json:"location"`
	ServiceType  string          `json:"serviceType"`
	TotalResults int             `json:"totalResults"`
	Results      []places.Result `json:"results"`
	SearchCenter *Coordinates    `json:"searchCenter"`
}

// SearchService routes a search to the right upstream mode, filters the
// normalized results and records one audit row per non-empty search.
type SearchService struct {
	places    PlacesAPI
	history   HistoryStore
	publisher EventPublisher
	log       *zap.Logger
}

func NewSearchService(p PlacesAPI, h HistoryStore, pub EventPublisher, log *zap.Logger) *SearchService {
	return &SearchService{places: p, history: h, publisher: pub, log: log}
}

// Search geocodes the location, dispatches to nearby or text mode based on
// the service type's query string, applies the rating filter then the
// open-now filter (in that order), and appends a history row when at least
// one result survived.
func (s *SearchService) Search(ctx context.Context, userID uuid.UUID, req SearchRequest) (SearchResults, error) {
	if !req.ServiceType.Valid() {
		return SearchResults{}, apperr.Validation("Unknown service type: " + string(req.ServiceType))
	}
	if strings.TrimSpace(req.Location) == "" {
		return SearchResults{}, apperr.Validation("Location is required")
	}
	if req.RadiusMiles <= 0 {
		return SearchResults{}, apperr.Validation("Radius must be a positive number of miles")
	}

	s.log.Info("searching services",
		zap.String("service_type", string(req.ServiceType)),
		zap.String("location", req.Location),
		zap.String("user_id", userID.String()))

	radiusMeters := float64(req.RadiusMiles * metersPerMile)

	center, err := s.places.Geocode(ctx, req.Location)
	if err != nil {
		return SearchResults{}, err
	}

	query := req.ServiceType.SearchQuery()
	var results []places.Result
	if places.SupportedNearbyType(query) {
		results, err = s.places.SearchNearby(ctx, query, center, radiusMeters, req.MaxResults)
	} else {
		results, err = s.places.SearchText(ctx, query, center, radiusMeters, req.MaxResults)
	}
	if err != nil {
		return SearchResults{}, err
	}

	if req.MinRating != nil {
		filtered := results[:0]
		for _, r := range results {
			if r.Rating != nil && *r.Rating >= *req.MinRating {
				filtered = append(filtered, r)
			}
		}
		results = filtered
	}
	if req.OpenNow != nil && *req.OpenNow {
		filtered := results[:0]
		for _, r := range results {
			if r.OpenNow != nil && *r.OpenNow {
				filtered = append(filtered, r)
			}
		}
		results = filtered
	}

	out := SearchResults{
		Location:     req.Location,
		ServiceType:  req.ServiceType.DisplayName(),
		TotalResults: len(results),
		Results:      results,
	}
	if len(results) == 0 {
		return out, nil
	}

	first := results[0]
	if first.Latitude != nil && first.Longitude != nil {
		out.SearchCenter = &Coordinates{Latitude: *first.Latitude, Longitude: *first.Longitude}
	}

	now := time.Now().UTC()
	if err := s.history.Append(ctx, model.SearchHistory{
		UserID:       userID,
		ServiceType:  req.ServiceType,
		Location:     req.Location,
		Latitude:     first.Latitude,
		Longitude:    first.Longitude,
		ResultsCount: len(results),
		CreatedAt:    now,
	}); err != nil {
		return SearchResults{}, err
	}

	if s.publisher != nil {
		// Broker failures are logged in the publisher and ignored here.
		_ = s.publisher.Publish(ctx, queue.SearchPerformedQueue, queue.SearchPerformedEvent{
			UserID:       userID.String(),
			ServiceType:  string(req.ServiceType),
			Location:     req.Location,
			ResultsCount: len(results),
			PerformedAt:  now.Format(time.RFC3339),
		})
	}

	return out, nil
}
