//go:build unit

package availability

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campsite-booking/internal/domain/site"
)

type fakeSiteReader struct {
	sites []*site.Site
	err   error
}

func (f *fakeSiteReader) ListOrdered(_ context.Context) ([]*site.Site, error) {
	return f.sites, f.err
}

// fakeOverlapReader marks whole sites as taken regardless of range, and
// records the exclusions it was asked about.
type fakeOverlapReader struct {
	taken      map[uuid.UUID]bool
	exclusions []uuid.UUID
	err        error
}

func (f *fakeOverlapReader) HasActiveOverlap(_ context.Context, siteID uuid.UUID, _, _ time.Time, excludeBookingID uuid.UUID) (bool, error) {
	f.exclusions = append(f.exclusions, excludeBookingID)
	if f.err != nil {
		return false, f.err
	}
	return f.taken[siteID], nil
}

func newTestSite(t *testing.T, name string) *site.Site {
	t.Helper()
	s, err := site.NewSite(name, 20, 80, site.EquipmentTent, site.ServiceWater)
	require.NoError(t, err)
	return s
}

func TestFindAvailableSites(t *testing.T) {
	siteA := newTestSite(t, "A1")
	siteB := newTestSite(t, "B1")
	siteC := newTestSite(t, "C1")

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)

	t.Run("filters out occupied sites in catalog order", func(t *testing.T) {
		overlaps := &fakeOverlapReader{taken: map[uuid.UUID]bool{siteB.ID(): true}}
		resolver := NewResolver(&fakeSiteReader{sites: []*site.Site{siteA, siteB, siteC}}, overlaps)

		free, err := resolver.FindAvailableSites(context.Background(), start, end, uuid.Nil)
		require.NoError(t, err)
		require.Len(t, free, 2)
		assert.Equal(t, siteA.ID(), free[0].ID())
		assert.Equal(t, siteC.ID(), free[1].ID())
	})

	t.Run("empty catalog yields empty result", func(t *testing.T) {
		resolver := NewResolver(&fakeSiteReader{}, &fakeOverlapReader{taken: map[uuid.UUID]bool{}})

		free, err := resolver.FindAvailableSites(context.Background(), start, end, uuid.Nil)
		require.NoError(t, err)
		assert.Empty(t, free)
	})

	t.Run("overlap errors propagate", func(t *testing.T) {
		overlaps := &fakeOverlapReader{err: assert.AnError}
		resolver := NewResolver(&fakeSiteReader{sites: []*site.Site{siteA}}, overlaps)

		_, err := resolver.FindAvailableSites(context.Background(), start, end, uuid.Nil)
		assert.Error(t, err)
	})
}

func TestIsAvailableForBooking(t *testing.T) {
	pitch := newTestSite(t, "A1")
	bookingID := uuid.New()
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)

	t.Run("free site reports available", func(t *testing.T) {
		overlaps := &fakeOverlapReader{taken: map[uuid.UUID]bool{}}
		resolver := NewResolver(&fakeSiteReader{}, overlaps)

		free, err := resolver.IsAvailableForBooking(context.Background(), bookingID, pitch.ID(), start, end)
		require.NoError(t, err)
		assert.True(t, free)
	})

	t.Run("occupied site reports unavailable", func(t *testing.T) {
		overlaps := &fakeOverlapReader{taken: map[uuid.UUID]bool{pitch.ID(): true}}
		resolver := NewResolver(&fakeSiteReader{}, overlaps)

		free, err := resolver.IsAvailableForBooking(context.Background(), bookingID, pitch.ID(), start, end)
		require.NoError(t, err)
		assert.False(t, free)
	})

	t.Run("the booking excludes its own record", func(t *testing.T) {
		overlaps := &fakeOverlapReader{taken: map[uuid.UUID]bool{}}
		resolver := NewResolver(&fakeSiteReader{}, overlaps)

		_, err := resolver.IsAvailableForBooking(context.Background(), bookingID, pitch.ID(), start, end)
		require.NoError(t, err)
		require.Len(t, overlaps.exclusions, 1)
		assert.Equal(t, bookingID, overlaps.exclusions[0])
	})
}
