package location

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	rows   map[string]Location
	nextID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: make(map[string]Location), nextID: 1}
}

func (s *fakeStore) FindBySearchQuery(_ context.Context, query string) (Location, bool, error) {
	loc, ok := s.rows[query]
	return loc, ok, nil
}

func (s *fakeStore) Insert(_ context.Context, loc Location) (Location, error) {
	if existing, ok := s.rows[loc.SearchQuery]; ok {
		return existing, nil
	}
	loc.ID = s.nextID
	s.nextID++
	s.rows[loc.SearchQuery] = loc
	return loc, nil
}

type fakeGeocoder struct {
	places []Place
	err    error
	calls  int
}

func (g *fakeGeocoder) Geocode(_ context.Context, _ string) ([]Place, error) {
	g.calls++
	return g.places, g.err
}

func TestResolveCreatesLocationFromFirstResult(t *testing.T) {
	store := newFakeStore()
	geo := &fakeGeocoder{places: []Place{
		{FormattedAddress: "Renton, WA 98056, USA", Latitude: 47.48, Longitude: -122.19},
		{FormattedAddress: "somewhere else", Latitude: 1, Longitude: 2},
	}}
	r := NewResolver(store, geo)

	loc, err := r.Resolve(context.Background(), "98005")
	require.NoError(t, err)

	assert.Equal(t, "98005", loc.SearchQuery)
	assert.Equal(t, "Renton, WA 98056, USA", loc.FormattedQuery)
	assert.Equal(t, 47.48, loc.Latitude)
	assert.Equal(t, -122.19, loc.Longitude)
	assert.NotZero(t, loc.ID)
}

func TestResolveSecondCallHitsStore(t *testing.T) {
	store := newFakeStore()
	geo := &fakeGeocoder{places: []Place{
		{FormattedAddress: "Paris, France", Latitude: 48.85, Longitude: 2.35},
	}}
	r := NewResolver(store, geo)

	first, err := r.Resolve(context.Background(), "paris")
	require.NoError(t, err)

	second, err := r.Resolve(context.Background(), "paris")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, geo.calls, "second resolve must not call the geocoder")
}

func TestResolveEmptyProviderResult(t *testing.T) {
	r := NewResolver(newFakeStore(), &fakeGeocoder{})

	_, err := r.Resolve(context.Background(), "nowhere at all")
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestResolvePropagatesProviderFailure(t *testing.T) {
	boom := errors.New("upstream down")
	store := newFakeStore()
	r := NewResolver(store, &fakeGeocoder{err: boom})

	_, err := r.Resolve(context.Background(), "seattle")
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, store.rows, "no record may be produced on provider failure")
}
