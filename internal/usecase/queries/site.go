package queries

import (
	"context"
	"time"

	"campsite-booking/internal/usecase/availability"

	"github.com/google/uuid"
)

type SiteReadStore interface {
	List(ctx context.Context) ([]*SiteView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*SiteView, error)
}

type SiteQueries interface {
	List(ctx context.Context, search string) ([]*SiteView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*SiteView, error)
	ListAvailable(ctx context.Context, start, end time.Time) ([]*SiteView, error)
}

type siteQueriesImpl struct {
	store    SiteReadStore
	resolver *availability.Resolver
}

func NewSiteQueries(store SiteReadStore, resolver *availability.Resolver) SiteQueries {
	return &siteQueriesImpl{store: store, resolver: resolver}
}

func (q *siteQueriesImpl) List(ctx context.Context, search string) ([]*SiteView, error) {
	views, err := q.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return FilterListables(views, search), nil
}

func (q *siteQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*SiteView, error) {
	return q.store.FindByID(ctx, id)
}

func (q *siteQueriesImpl) ListAvailable(ctx context.Context, start, end time.Time) ([]*SiteView, error) {
	free, err := q.resolver.FindAvailableSites(ctx, start, end, uuid.Nil)
	if err != nil {
		return nil, err
	}
	views := make([]*SiteView, len(free))
	for i, pitch := range free {
		views[i] = &SiteView{
			ID:               pitch.ID(),
			Name:             pitch.Name(),
			DailyRate:        pitch.DailyRate(),
			Surface:          pitch.Surface(),
			AllowedEquipment: pitch.AllowedEquipment().String(),
			ProvidedService:  pitch.ProvidedService().String(),
		}
	}
	return views, nil
}
