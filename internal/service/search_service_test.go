package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tradesoncall/backend/internal/apperr"
	"github.com/tradesoncall/backend/internal/model"
	"github.com/tradesoncall/backend/internal/places"
	"github.com/tradesoncall/backend/internal/queue"
)

type fakePlaces struct {
	center places.LatLng

	geocodeErr error
	results    []places.Result

	nearbyCalls []nearbyCall
	textCalls   []textCall
}

type nearbyCall struct {
	placeType    string
	radiusMeters float64
	maxResults   int
}

type textCall struct {
	query        string
	radiusMeters float64
	maxResults   int
}

func (f *fakePlaces) Geocode(_ context.Context, _ string) (places.LatLng, error) {
	if f.geocodeErr != nil {
		return places.LatLng{}, f.geocodeErr
	}
	return f.center, nil
}

func (f *fakePlaces) SearchNearby(_ context.Context, placeType string, _ places.LatLng, radiusMeters float64, maxResults int) ([]places.Result, error) {
	f.nearbyCalls = append(f.nearbyCalls, nearbyCall{placeType, radiusMeters, maxResults})
	return f.results, nil
}

func (f *fakePlaces) SearchText(_ context.Context, query string, _ places.LatLng, radiusMeters float64, maxResults int) ([]places.Result, error) {
	f.textCalls = append(f.textCalls, textCall{query, radiusMeters, maxResults})
	return f.results, nil
}

type fakeHistory struct {
	rows []model.SearchHistory
}

func (f *fakeHistory) Append(_ context.Context, h model.SearchHistory) error {
	f.rows = append(f.rows, h)
	return nil
}

type fakePublisher struct {
	events []any
}

func (f *fakePublisher) Publish(_ context.Context, _ string, event any) error {
	f.events = append(f.events, event)
	return nil
}

func plumberResult(name string, rating float64, open bool, lat, lng float64) places.Result {
	return places.Result{
		Name:      name,
		Rating:    &rating,
		OpenNow:   &open,
		Latitude:  &lat,
		Longitude: &lng,
	}
}

func newSearchFixture(results []places.Result) (*SearchService, *fakePlaces, *fakeHistory, *fakePublisher) {
	p := &fakePlaces{center: places.LatLng{Lat: 40.7, Lng: -74.0}, results: results}
	h := &fakeHistory{}
	pub := &fakePublisher{}
	return NewSearchService(p, h, pub, zap.NewNop()), p, h, pub
}

func TestSearchValidation(t *testing.T) {
	svc, _, _, _ := newSearchFixture(nil)
	ctx := context.Background()
	uid := uuid.New()

	_, err := svc.Search(ctx, uid, SearchRequest{ServiceType: "DOG_WALKER", Location: "NYC", RadiusMiles: 5})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Search(ctx, uid, SearchRequest{ServiceType: model.ServiceTypePlumber, Location: "  ", RadiusMiles: 5})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Search(ctx, uid, SearchRequest{ServiceType: model.ServiceTypePlumber, Location: "NYC", RadiusMiles: 0})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestSearchGeocodeFailurePropagates(t *testing.T) {
	svc, p, h, _ := newSearchFixture(nil)
	p.geocodeErr = apperr.ExternalService("Could not find location: nowhere")

	_, err := svc.Search(context.Background(), uuid.New(), SearchRequest{
		ServiceType: model.ServiceTypePlumber, Location: "nowhere", RadiusMiles: 5,
	})
	assert.Equal(t, apperr.KindExternalService, apperr.KindOf(err))
	assert.Empty(t, h.rows)
}

func TestSearchRoutesNearbyForSupportedTypes(t *testing.T) {
	svc, p, _, _ := newSearchFixture([]places.Result{plumberResult("Ace", 4.5, true, 40.71, -74.01)})

	_, err := svc.Search(context.Background(), uuid.New(), SearchRequest{
		ServiceType: model.ServiceTypePlumber, Location: "New York, NY", RadiusMiles: 5, MaxResults: 3,
	})
	require.NoError(t, err)

	require.Len(t, p.nearbyCalls, 1)
	assert.Empty(t, p.textCalls)
	call := p.nearbyCalls[0]
	assert.Equal(t, "plumber", call.placeType)
	assert.Equal(t, float64(5*1609), call.radiusMeters)
	assert.Equal(t, 3, call.maxResults)
}

func TestSearchRoutesTextForUnsupportedTypes(t *testing.T) {
	svc, p, _, _ := newSearchFixture([]places.Result{plumberResult("CoolAir", 4.2, true, 40.71, -74.01)})

	_, err := svc.Search(context.Background(), uuid.New(), SearchRequest{
		ServiceType: model.ServiceTypeHVAC, Location: "New York, NY", RadiusMiles: 2,
	})
	require.NoError(t, err)

	require.Len(t, p.textCalls, 1)
	assert.Empty(t, p.nearbyCalls)
	assert.Equal(t, "hvac", p.textCalls[0].query)
	assert.Equal(t, float64(2*1609), p.textCalls[0].radiusMeters)
}

func TestSearchHappyPathRecordsHistory(t *testing.T) {
	results := []places.Result{
		plumberResult("Ace Plumbing", 4.8, true, 40.71, -74.01),
		plumberResult("Best Pipes", 4.0, false, 40.72, -74.02),
	}
	svc, _, h, pub := newSearchFixture(results)
	uid := uuid.New()

	out, err := svc.Search(context.Background(), uid, SearchRequest{
		ServiceType: model.ServiceTypePlumber, Location: "New York, NY", RadiusMiles: 5, MaxResults: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, out.TotalResults)
	assert.Equal(t, "Ace Plumbing", out.Results[0].Name)
	require.NotNil(t, out.SearchCenter)
	assert.Equal(t, 40.71, out.SearchCenter.Latitude)
	assert.Equal(t, -74.01, out.SearchCenter.Longitude)

	require.Len(t, h.rows, 1)
	row := h.rows[0]
	assert.Equal(t, uid, row.UserID)
	assert.Equal(t, model.ServiceTypePlumber, row.ServiceType)
	assert.Equal(t, 2, row.ResultsCount)
	require.NotNil(t, row.Latitude)
	assert.Equal(t, 40.71, *row.Latitude)

	require.Len(t, pub.events, 1)
	ev, ok := pub.events[0].(queue.SearchPerformedEvent)
	require.True(t, ok)
	assert.Equal(t, uid.String(), ev.UserID)
	assert.Equal(t, 2, ev.ResultsCount)
}

func TestSearchMinRatingFilter(t *testing.T) {
	noRating := places.Result{Name: "Mystery Pipes"}
	results := []places.Result{
		plumberResult("Ace Plumbing", 4.8, true, 40.71, -74.01),
		plumberResult("Best Pipes", 4.0, true, 40.72, -74.02),
		noRating,
	}
	svc, _, h, _ := newSearchFixture(results)
	min := 4.5

	out, err := svc.Search(context.Background(), uuid.New(), SearchRequest{
		ServiceType: model.ServiceTypePlumber, Location: "New York, NY", RadiusMiles: 5, MinRating: &min,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out.TotalResults)
	assert.Equal(t, "Ace Plumbing", out.Results[0].Name)
	require.Len(t, h.rows, 1)
	assert.Equal(t, 1, h.rows[0].ResultsCount)
}

func TestSearchOpenNowFilter(t *testing.T) {
	results := []places.Result{
		plumberResult("Ace Plumbing", 4.8, false, 40.71, -74.01),
		plumberResult("Night Owl Pipes", 4.6, true, 40.72, -74.02),
		{Name: "Unknown Hours", Rating: f(4.9)},
	}
	svc, _, _, _ := newSearchFixture(results)
	open := true

	out, err := svc.Search(context.Background(), uuid.New(), SearchRequest{
		ServiceType: model.ServiceTypePlumber, Location: "New York, NY", RadiusMiles: 5, OpenNow: &open,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out.TotalResults)
	assert.Equal(t, "Night Owl Pipes", out.Results[0].Name)
}

func TestSearchNoResultsWritesNoHistory(t *testing.T) {
	results := []places.Result{plumberResult("Low Rated", 3.0, true, 40.71, -74.01)}
	svc, _, h, pub := newSearchFixture(results)
	min := 4.5

	out, err := svc.Search(context.Background(), uuid.New(), SearchRequest{
		ServiceType: model.ServiceTypePlumber, Location: "New York, NY", RadiusMiles: 5, MinRating: &min,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, out.TotalResults)
	assert.Nil(t, out.SearchCenter)
	assert.Empty(t, h.rows)
	assert.Empty(t, pub.events)
}

func f(v float64) *float64 { return &v }
