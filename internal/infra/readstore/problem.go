package readstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"campsite-booking/internal/infra"
	"campsite-booking/internal/pkg/pgconv"
	"campsite-booking/internal/usecase/queries"
)

type ProblemReadStore struct {
	pool *pgxpool.Pool
}

func NewProblemReadStore(pool *pgxpool.Pool) *ProblemReadStore {
	return &ProblemReadStore{pool: pool}
}

// ListByBooking returns the booking's problems oldest first.
func (r *ProblemReadStore) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*queries.ProblemView, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, booking_id, description, status, resolved_at, created_at, updated_at
		FROM booking_problems
		WHERE booking_id = $1
		ORDER BY created_at, id`, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list problems", err)
	}
	defer rows.Close()

	var views []*queries.ProblemView
	for rows.Next() {
		var (
			v          queries.ProblemView
			resolvedAt pgtype.Date
		)
		if err := rows.Scan(&v.ID, &v.BookingID, &v.Description, &v.Status,
			&resolvedAt, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan problem row", err)
		}
		v.ResolvedAt = pgconv.DatePtrFromPgtype(resolvedAt)
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read problem rows", err)
	}
	return views, nil
}
