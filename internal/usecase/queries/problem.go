package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"campsite-booking/internal/domain/booking"
)

type ProblemView struct {
	ID          uuid.UUID  `json:"id"`
	BookingID   uuid.UUID  `json:"booking_id"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type ProblemReadStore interface {
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*ProblemView, error)
}

type ProblemQueries interface {
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*ProblemView, error)
}

type problemQueriesImpl struct {
	store ProblemReadStore
}

func NewProblemQueries(store ProblemReadStore) ProblemQueries {
	return &problemQueriesImpl{store: store}
}

func (q *problemQueriesImpl) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*ProblemView, error) {
	return q.store.ListByBooking(ctx, bookingID)
}

// BuildProblemView flattens the domain entity; the write side uses it to
// return the post-mutation state without a second read.
func BuildProblemView(p *booking.Problem) *ProblemView {
	return &ProblemView{
		ID:          p.ID(),
		BookingID:   p.BookingID(),
		Description: p.Description(),
		Status:      p.Status().String(),
		ResolvedAt:  p.ResolvedAt(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}
