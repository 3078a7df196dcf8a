package readstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"campsite-booking/internal/infra"
	"campsite-booking/internal/pkg/pgconv"
	"campsite-booking/internal/usecase/queries"
)

type CustomerReadStore struct {
	pool *pgxpool.Pool
}

func NewCustomerReadStore(pool *pgxpool.Pool) *CustomerReadStore {
	return &CustomerReadStore{pool: pool}
}

func (r *CustomerReadStore) List(ctx context.Context) ([]*queries.CustomerView, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, first_name, last_name, email, phone, created_at, updated_at
		FROM customers
		ORDER BY last_name, first_name`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list customers", err)
	}
	defer rows.Close()

	var views []*queries.CustomerView
	for rows.Next() {
		var v queries.CustomerView
		if err := rows.Scan(&v.ID, &v.FirstName, &v.LastName, &v.Email, &v.Phone,
			&v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan customer row", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read customer rows", err)
	}
	return views, nil
}

func (r *CustomerReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.CustomerView, error) {
	var v queries.CustomerView
	err := r.pool.QueryRow(ctx, `
		SELECT id, first_name, last_name, email, phone, created_at, updated_at
		FROM customers
		WHERE id = $1`, id).
		Scan(&v.ID, &v.FirstName, &v.LastName, &v.Email, &v.Phone, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("customer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find customer by ID", err)
	}
	return &v, nil
}

func (r *CustomerReadStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check customer existence", err)
	}
	return exists, nil
}
