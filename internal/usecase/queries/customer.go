package queries

import (
	"context"

	"github.com/google/uuid"
)

type CustomerReadStore interface {
	List(ctx context.Context) ([]*CustomerView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*CustomerView, error)
}

type CustomerQueries interface {
	List(ctx context.Context, search string) ([]*CustomerView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*CustomerView, error)
}

type customerQueriesImpl struct {
	store CustomerReadStore
}

func NewCustomerQueries(store CustomerReadStore) CustomerQueries {
	return &customerQueriesImpl{store: store}
}

func (q *customerQueriesImpl) List(ctx context.Context, search string) ([]*CustomerView, error) {
	views, err := q.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return FilterListables(views, search), nil
}

func (q *customerQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*CustomerView, error) {
	return q.store.FindByID(ctx, id)
}
