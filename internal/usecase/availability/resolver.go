// Package availability answers which sites are free over a date range, given
// every non-canceled booking. The overlap rule is inclusive on both ends:
// checkout day and checkin day cannot be shared, a site is single-occupancy
// per calendar day.
package availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"campsite-booking/internal/domain/site"
	"campsite-booking/internal/pkg/clock"
)

// SiteReader lists the site catalog in a deterministic order (by name, then
// id) so that the creation search always picks the same first free site.
type SiteReader interface {
	ListOrdered(ctx context.Context) ([]*site.Site, error)
}

// OverlapReader reports whether any non-canceled booking other than the
// excluded one intersects [start,end] on the given site, under the inclusive
// rule s1 <= e2 && s2 <= e1.
type OverlapReader interface {
	HasActiveOverlap(ctx context.Context, siteID uuid.UUID, start, end time.Time, excludeBookingID uuid.UUID) (bool, error)
}

type Resolver struct {
	sites    SiteReader
	overlaps OverlapReader
}

func NewResolver(sites SiteReader, overlaps OverlapReader) *Resolver {
	return &Resolver{sites: sites, overlaps: overlaps}
}

// FindAvailableSites returns every site with no conflicting booking over
// [start,end], in catalog order. Pass uuid.Nil to exclude nothing. An empty
// result is not an error; callers decide what to do about it.
func (r *Resolver) FindAvailableSites(ctx context.Context, start, end time.Time, excludeBookingID uuid.UUID) ([]*site.Site, error) {
	start, end = clock.Midnight(start), clock.Midnight(end)

	all, err := r.sites.ListOrdered(ctx)
	if err != nil {
		return nil, err
	}

	free := make([]*site.Site, 0, len(all))
	for _, pitch := range all {
		taken, err := r.overlaps.HasActiveOverlap(ctx, pitch.ID(), start, end, excludeBookingID)
		if err != nil {
			return nil, err
		}
		if !taken {
			free = append(free, pitch)
		}
	}
	return free, nil
}

// IsAvailableForBooking checks one candidate site over [start,end], ignoring
// the booking's own record so it can keep or shift its slot.
func (r *Resolver) IsAvailableForBooking(ctx context.Context, bookingID, siteID uuid.UUID, start, end time.Time) (bool, error) {
	start, end = clock.Midnight(start), clock.Midnight(end)
	taken, err := r.overlaps.HasActiveOverlap(ctx, siteID, start, end, bookingID)
	if err != nil {
		return false, err
	}
	return !taken, nil
}
