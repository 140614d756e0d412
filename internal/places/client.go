package places

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Defaults applied when the caller leaves the knob unset.
const (
	defaultMaxResultCount = 20
	defaultRadiusMeters   = 8000.0
)

// supportedNearbyTypes is the exact set of place types the nearby-search
// endpoint accepts.  Anything else goes through text search.
var supportedNearbyTypes = map[string]struct{}{
	"plumber":              {},
	"electrician":          {},
	"roofing_contractor":   {},
	"general_contractor":   {},
	"locksmith":            {},
	"painter":              {},
	"moving_company":       {},
	"pest_control_service": {},
}

// SupportedNearbyType reports whether the query string can be used with the
// type-restricted nearby endpoint.  Comparison is case-insensitive.
func SupportedNearbyType(query string) bool {
	_, ok := supportedNearbyTypes[strings.ToLower(query)]
	return ok
}

// fieldMask enumerates the place attributes projected by the upstream.
const fieldMask = "places.displayName," +
	"places.formattedAddress," +
	"places.location," +
	"places.rating," +
	"places.userRatingCount," +
	"places.nationalPhoneNumber," +
	"places.websiteUri," +
	"places.regularOpeningHours," +
	"places.currentOpeningHours," +
	"places.businessStatus," +
	"places.types," +
	"places.priceLevel," +
	"places.photos," +
	"places.id"

// Client calls the geocoding and places upstreams.  Transport failures on
// the places endpoints are logged and converted to empty results; geocoding
// failures are reported to the caller.
type Client struct {
	http        *http.Client
	apiKey      string
	placesBase  string
	geocodeBase string
	log         *zap.Logger
}

// NewClient builds a Client with a 10 second request timeout.
func NewClient(apiKey, placesBase, geocodeBase string, log *zap.Logger) *Client {
	return &Client{
		http:        &http.Client{Timeout: 10 * time.Second},
		apiKey:      apiKey,
		placesBase:  strings.TrimRight(placesBase, "/"),
		geocodeBase: strings.TrimRight(geocodeBase, "/"),
		log:         log,
	}
}

// SearchNearby runs a type-restricted nearby search ranked by distance.
func (c *Client) SearchNearby(ctx context.Context, placeType string, loc LatLng, radiusMeters float64, maxResults int) ([]Result, error) {
	req := nearbySearchRequest{
		IncludedTypes:  []string{placeType},
		MaxResultCount: orDefaultCount(maxResults),
		LocationRestriction: locationRestriction{Circle: circle{
			Center: center{Latitude: loc.Lat, Longitude: loc.Lng},
			Radius: orDefaultRadius(radiusMeters),
		}},
		RankPreference: "DISTANCE",
	}
	return c.search(ctx, "/places:searchNearby", req, loc)
}

// SearchText runs a free-text search biased toward the search center.
func (c *Client) SearchText(ctx context.Context, query string, loc LatLng, radiusMeters float64, maxResults int) ([]Result, error) {
	req := textSearchRequest{
		TextQuery:      query + " service",
		MaxResultCount: orDefaultCount(maxResults),
		LocationBias: locationBias{Circle: circle{
			Center: center{Latitude: loc.Lat, Longitude: loc.Lng},
			Radius: orDefaultRadius(radiusMeters),
		}},
	}
	return c.search(ctx, "/places:searchText", req, loc)
}

// search posts the request body and normalizes the response.  Any transport
// or decode failure is logged at ERROR and swallowed into an empty slice so
// the orchestrator treats "no results" uniformly.
func (c *Client) search(ctx context.Context, path string, body any, searchCenter LatLng) ([]Result, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal places request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.placesBase+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build places request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", fieldMask)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("places request failed", zap.String("path", path), zap.Error(err))
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Error("places request returned non-200", zap.String("path", path), zap.Int("status", resp.StatusCode))
		return nil, nil
	}

	var decoded placesSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		c.log.Error("decode places response", zap.String("path", path), zap.Error(err))
		return nil, nil
	}

	results := make([]Result, 0, len(decoded.Places))
	for _, p := range decoded.Places {
		results = append(results, c.normalize(p, searchCenter))
	}
	return results, nil
}

// normalize converts one upstream place into the common result shape.
func (c *Client) normalize(p place, searchCenter LatLng) Result {
	r := Result{
		Name:         "Unknown",
		Address:      p.FormattedAddress,
		PhoneNumber:  p.NationalPhoneNumber,
		Rating:       p.Rating,
		TotalReviews: p.UserRatingCount,
		PriceLevel:   p.PriceLevel,
		Website:      p.WebsiteURI,
		ServiceTypes: p.Types,
		PhotoURLs:    []string{},
	}
	if p.DisplayName != nil && p.DisplayName.Text != "" {
		r.Name = p.DisplayName.Text
	}
	if p.Location != nil {
		lat, lng := p.Location.Latitude, p.Location.Longitude
		r.Latitude = &lat
		r.Longitude = &lng
		r.DistanceMiles = Haversine(searchCenter.Lat, searchCenter.Lng, lat, lng)
	}
	if p.CurrentOpeningHours != nil {
		r.OpenNow = p.CurrentOpeningHours.OpenNow
	}
	if p.ID != "" {
		r.PlaceID = strings.TrimPrefix(p.ID, "places/")
		u := "https://www.google.com/maps/place/?q=place_id:" + r.PlaceID
		r.GoogleMapsURL = &u
	}
	// First photo only; the upstream renders it through the media endpoint.
	if len(p.Photos) > 0 && p.Photos[0].Name != "" {
		r.PhotoURLs = append(r.PhotoURLs, fmt.Sprintf(
			"https://places.googleapis.com/v1/%s/media?maxHeightPx=400&maxWidthPx=400&key=%s",
			p.Photos[0].Name, c.apiKey))
	}
	return r
}

func orDefaultCount(n int) int {
	if n <= 0 {
		return defaultMaxResultCount
	}
	return n
}

func orDefaultRadius(r float64) float64 {
	if r <= 0 {
		return defaultRadiusMeters
	}
	return r
}
