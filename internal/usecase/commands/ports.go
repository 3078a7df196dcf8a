package commands

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"campsite-booking/internal/domain/booking"
	"campsite-booking/internal/domain/site"
)

// TxRunner runs a function inside one database transaction. Commands never
// manage connections themselves; infra provides the pool-backed
// implementation and tests substitute an in-memory one.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
}

type BookingRepository interface {
	Create(ctx context.Context, tx pgx.Tx, b *booking.Booking) error
	Update(ctx context.Context, tx pgx.Tx, b *booking.Booking) error
	FindByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*booking.Booking, error)
}

type SiteRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*site.Site, error)
}

type CustomerRepository interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type ProblemRepository interface {
	Create(ctx context.Context, tx pgx.Tx, p *booking.Problem) error
	Update(ctx context.Context, tx pgx.Tx, p *booking.Problem) error
	FindByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*booking.Problem, error)
}

// AuditRepository appends change events to the audit feed, inside the same
// transaction as the mutation they describe.
type AuditRepository interface {
	Append(ctx context.Context, tx pgx.Tx, event booking.ChangeEvent) error
}

// UserRepository covers the write side of staff accounts.
type UserRepository interface {
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
}

// BillRenderer produces the bill document for a priced booking. The PDF
// machinery lives behind this port; the lifecycle only stores bytes.
type BillRenderer interface {
	Render(data BillData) ([]byte, error)
}

type BillData struct {
	BookingID    uuid.UUID
	CustomerName string
	SiteName     string
	StartDate    string
	EndDate      string
	Headcount    int
	DayCount     int
	Equipment    string
	Service      string
	Discount     string
	TotalPrice   int32
	DepositPrice int32
	RemainingDue int32
}
