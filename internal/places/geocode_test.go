package places

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tradesoncall/backend/internal/apperr"
)

func TestGeocodeSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geocode/json", r.URL.Path)
		assert.Equal(t, "New York, NY", r.URL.Query().Get("address"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		_, _ = w.Write([]byte(`{"results":[{"geometry":{"location":{"lat":40.7128,"lng":-74.0060}}}]}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL, srv.URL, zap.NewNop())
	loc, err := c.Geocode(context.Background(), "New York, NY")
	require.NoError(t, err)
	assert.Equal(t, 40.7128, loc.Lat)
	assert.Equal(t, -74.0060, loc.Lng)
}

func TestGeocodeNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL, srv.URL, zap.NewNop())
	_, err := c.Geocode(context.Background(), "nowhere at all")
	require.Error(t, err)
	assert.Equal(t, apperr.KindExternalService, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "Could not find location: nowhere at all")
}

func TestGeocodeTransportError(t *testing.T) {
	c := NewClient("test-key", "http://127.0.0.1:1", "http://127.0.0.1:1", zap.NewNop())
	_, err := c.Geocode(context.Background(), "New York, NY")
	require.Error(t, err)
	assert.Equal(t, apperr.KindExternalService, apperr.KindOf(err))
}
