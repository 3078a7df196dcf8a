package readstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"campsite-booking/internal/infra"
	"campsite-booking/internal/usecase/queries"
)

type AuditReadStore struct {
	pool *pgxpool.Pool
}

func NewAuditReadStore(pool *pgxpool.Pool) *AuditReadStore {
	return &AuditReadStore{pool: pool}
}

// ListByBooking returns the booking's audit feed in insertion order.
func (r *AuditReadStore) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*queries.AuditEventView, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, booking_id, kind, message, created_at
		FROM booking_events
		WHERE booking_id = $1
		ORDER BY id`, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list booking events", err)
	}
	defer rows.Close()

	var views []*queries.AuditEventView
	for rows.Next() {
		var v queries.AuditEventView
		if err := rows.Scan(&v.ID, &v.BookingID, &v.Kind, &v.Message, &v.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking event row", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking event rows", err)
	}
	return views, nil
}
