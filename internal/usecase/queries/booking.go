package queries

import (
	"context"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"campsite-booking/internal/domain/booking"
	"campsite-booking/internal/domain/site"
	"campsite-booking/internal/pkg/clock"
)

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingRecord, error)
	List(ctx context.Context) ([]*BookingRecord, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*BookingRecord, error)
	FindBill(ctx context.Context, id uuid.UUID) ([]byte, error)
}

type AuditReadStore interface {
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*AuditEventView, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context) ([]*BookingView, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*BookingView, error)
	GetBill(ctx context.Context, id uuid.UUID) ([]byte, error)
	ListAuditTrail(ctx context.Context, bookingID uuid.UUID) ([]*AuditEventView, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
	audit AuditReadStore
	clock clock.Clock
}

func NewBookingQueries(store BookingReadStore, audit AuditReadStore, clk clock.Clock) BookingQueries {
	return &bookingQueriesImpl{store: store, audit: audit, clock: clk}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	record, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return BuildBookingView(record, q.clock), nil
}

func (q *bookingQueriesImpl) List(ctx context.Context) ([]*BookingView, error) {
	records, err := q.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return q.toSortedViews(records), nil
}

func (q *bookingQueriesImpl) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*BookingView, error) {
	records, err := q.store.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return q.toSortedViews(records), nil
}

func (q *bookingQueriesImpl) GetBill(ctx context.Context, id uuid.UUID) ([]byte, error) {
	return q.store.FindBill(ctx, id)
}

func (q *bookingQueriesImpl) ListAuditTrail(ctx context.Context, bookingID uuid.UUID) ([]*AuditEventView, error) {
	return q.audit.ListByBooking(ctx, bookingID)
}

func (q *bookingQueriesImpl) toSortedViews(records []*BookingRecord) []*BookingView {
	views := make([]*BookingView, len(records))
	for i, record := range records {
		views[i] = BuildBookingView(record, q.clock)
	}
	SortBookings(views)
	return views
}

// BuildBookingView reconstructs the domain entity from a raw row so that
// derived status and pricing come from the same code paths the write side
// enforces, then flattens everything into the view.
func BuildBookingView(record *BookingRecord, clk clock.Clock) *BookingView {
	view := &BookingView{}
	_ = copier.Copy(view, record)

	entity := reconstructFromRecord(record)
	view.Status = entity.StatusAt(clk.Now()).String()

	if pitch := reconstructSiteFromRecord(record); pitch != nil {
		quote := entity.QuoteFor(pitch)
		view.DayCount = int32(quote.DayCount)
		view.TotalPrice = quote.Total
		view.DepositPrice = quote.Deposit
		view.RemainingToPay = quote.Remaining
	}
	return view
}

func reconstructFromRecord(record *BookingRecord) *booking.Booking {
	equipment := site.Equipment(record.Equipment)
	service := site.Service(record.Service)
	discount := booking.Discount(record.Discount)
	return booking.ReconstructBooking(
		record.ID, record.CustomerID,
		record.SiteID,
		int(record.Headcount),
		record.StartDate, record.EndDate,
		equipment, service, discount,
		record.DepositDate, record.PaymentDate,
		record.Canceled,
		nil, // the bill blob is fetched separately
		record.CreatedAt, record.UpdatedAt,
	)
}

func reconstructSiteFromRecord(record *BookingRecord) *site.Site {
	if record.SiteID == nil || record.SiteDailyRate == nil {
		return nil
	}
	name := ""
	if record.SiteName != nil {
		name = *record.SiteName
	}
	surface := int32(1)
	if record.SiteSurface != nil {
		surface = *record.SiteSurface
	}
	allowed := site.EquipmentNone
	if record.SiteAllowedEquipment != nil {
		allowed = site.Equipment(*record.SiteAllowedEquipment)
	}
	provided := site.ServiceNone
	if record.SiteProvidedService != nil {
		provided = site.Service(*record.SiteProvidedService)
	}
	return site.ReconstructSite(*record.SiteID, name, *record.SiteDailyRate, surface, allowed, provided)
}
