package writerepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"campsite-booking/internal/domain/booking"
	"campsite-booking/internal/infra"
)

type AuditRepository struct{}

func NewAuditRepository() *AuditRepository {
	return &AuditRepository{}
}

// Append writes the event inside the mutation's transaction so the feed and
// the booking state commit or roll back together.
func (r *AuditRepository) Append(ctx context.Context, tx pgx.Tx, event booking.ChangeEvent) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO booking_events (booking_id, kind, message)
		VALUES ($1, $2, $3)`,
		event.BookingID, string(event.Kind), event.Message)
	if err != nil {
		return infra.WrapRepoErr("failed to append booking event", err)
	}
	return nil
}
