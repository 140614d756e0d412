package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tradesoncall/backend/internal/apperr"
)

// Geocode resolves a free-form address to coordinates using the geocoding
// upstream.  An unresolvable address or any transport failure surfaces as
// an ExternalService error; there is no empty-result fallback here because
// a search cannot proceed without a center.
func (c *Client) Geocode(ctx context.Context, address string) (LatLng, error) {
	q := url.Values{}
	q.Set("address", address)
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.geocodeBase+"/geocode/json?"+q.Encode(), nil)
	if err != nil {
		return LatLng{}, fmt.Errorf("build geocode request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return LatLng{}, apperr.Wrap(apperr.KindExternalService, "Geocoding service unavailable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return LatLng{}, apperr.ExternalService(fmt.Sprintf("Geocoding service returned status %d", resp.StatusCode))
	}

	var decoded geocodingResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return LatLng{}, apperr.Wrap(apperr.KindExternalService, "Geocoding service unavailable", err)
	}
	if len(decoded.Results) == 0 {
		return LatLng{}, apperr.ExternalService("Could not find location: " + address)
	}

	loc := decoded.Results[0].Geometry.Location
	return LatLng{Lat: loc.Lat, Lng: loc.Lng}, nil
}
