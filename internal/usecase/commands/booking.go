package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"campsite-booking/internal/domain/booking"
	"campsite-booking/internal/domain/site"
	"campsite-booking/internal/infra"
	"campsite-booking/internal/pkg/clock"
	"campsite-booking/internal/pkg/config"
	"campsite-booking/internal/pkg/errs"
	"campsite-booking/internal/pkg/patch"
	"campsite-booking/internal/usecase/availability"
	"campsite-booking/internal/usecase/queries"
)

var (
	ErrBookingNotFound         = errs.New("booking not found")
	ErrSiteNotFound            = errs.New("site not found")
	ErrCustomerNotFound        = errs.New("customer not found")
	ErrNoAvailability          = errs.New("no site available")
	ErrBillNotReady            = errs.New("booking cannot be billed yet")
	ErrBillRenderFailed        = errs.New("bill rendering failed")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// MutationResult is what every lifecycle operation returns: the booking's
// state after the change plus the recoverable-violation messages collected
// while applying it. A non-recoverable violation comes back as an error
// instead, with the booking untouched.
type MutationResult struct {
	Booking  *queries.BookingView
	Warnings []string
}

// DateChange requests setting (non-nil Date) or clearing (nil Date) one of
// the payment timestamps.
type DateChange struct {
	Date *time.Time
}

// BookingPatch carries the field changes of one update command. Fields are
// applied in a fixed order (site, dates, equipment, service, headcount,
// discount, deposit, payment), each through its own gate.
type BookingPatch struct {
	SiteID    *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Equipment *site.Equipment
	Service   *site.Service
	Headcount *int
	Discount  *booking.Discount
	Deposit   *DateChange
	Payment   *DateChange
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, customerID uuid.UUID) (*MutationResult, error)
	UpdateBooking(ctx context.Context, id uuid.UUID, patch BookingPatch) (*MutationResult, error)
	CancelBooking(ctx context.Context, id uuid.UUID) (*MutationResult, error)
	GenerateBill(ctx context.Context, id uuid.UUID) (*MutationResult, error)
}

type bookingCommandsImpl struct {
	tx             TxRunner
	bookings       BookingRepository
	sites          SiteRepository
	customers      CustomerRepository
	audit          AuditRepository
	resolver       *availability.Resolver
	bookingQueries queries.BookingQueries
	renderer       BillRenderer
	clock          clock.Clock
	cfg            config.BookingConfig
}

func NewBookingCommands(
	tx TxRunner,
	bookings BookingRepository,
	sites SiteRepository,
	customers CustomerRepository,
	audit AuditRepository,
	resolver *availability.Resolver,
	bookingQueries queries.BookingQueries,
	renderer BillRenderer,
	clk clock.Clock,
	cfg config.BookingConfig,
) BookingCommands {
	return &bookingCommandsImpl{
		tx:             tx,
		bookings:       bookings,
		sites:          sites,
		customers:      customers,
		audit:          audit,
		resolver:       resolver,
		bookingQueries: bookingQueries,
		renderer:       renderer,
		clock:          clk,
		cfg:            cfg,
	}
}

// CreateBooking builds a populated draft for the customer: it walks forward
// from today one day at a time until a window of the default stay length has
// at least one free site, takes the first site of that window and defaults
// equipment and service from it. The search is bounded; exhausting it yields
// ErrNoAvailability.
func (c *bookingCommandsImpl) CreateBooking(ctx context.Context, customerID uuid.UUID) (*MutationResult, error) {
	exists, err := c.customers.Exists(ctx, customerID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !exists {
		return nil, ErrCustomerNotFound
	}

	today := clock.Today(c.clock)
	var chosen *site.Site
	var start, end time.Time
	for day := 0; day <= c.cfg.MaxSearchDays; day++ {
		start = today.AddDate(0, 0, day)
		end = start.AddDate(0, 0, c.cfg.DefaultStayDays)
		free, err := c.resolver.FindAvailableSites(ctx, start, end, uuid.Nil)
		if err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if len(free) > 0 {
			chosen = free[0]
			break
		}
	}
	if chosen == nil {
		return nil, ErrNoAvailability
	}

	b := booking.NewBooking(customerID)
	b.ScheduleDates(start, end)
	b.AdoptSiteDefaults(chosen)
	corrections := b.AssignSite(chosen)

	events := []booking.ChangeEvent{{
		Kind:      booking.EventAdd,
		BookingID: b.ID(),
		Message:   "booking created",
	}}
	warnings := c.noteCorrections(b.ID(), corrections, &events)

	err = c.tx.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := c.bookings.Create(ctx, tx, b); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return c.appendEvents(ctx, tx, events)
	})
	if err != nil {
		return nil, err
	}

	return c.result(ctx, b.ID(), warnings)
}

// UpdateBooking applies a patch through the lifecycle gates. Site and date
// changes are checked against availability first and rejected outright when
// the slot is taken; equipment and service changes always go through, with
// incompatible selections auto-corrected and reported as warnings.
func (c *bookingCommandsImpl) UpdateBooking(ctx context.Context, id uuid.UUID, patch BookingPatch) (*MutationResult, error) {
	var warnings []string

	err := c.tx.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		b, err := c.bookings.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return c.mapRepoErr(err, ErrBookingNotFound)
		}

		var events []booking.ChangeEvent

		if patch.SiteID != nil {
			if err := c.applySite(ctx, b, *patch.SiteID, &warnings, &events); err != nil {
				return err
			}
		}
		if patch.StartDate != nil {
			if err := c.applyStartDate(ctx, b, *patch.StartDate, &events); err != nil {
				return err
			}
		}
		if patch.EndDate != nil {
			if err := c.applyEndDate(ctx, b, *patch.EndDate, &events); err != nil {
				return err
			}
		}
		if patch.Equipment != nil || patch.Service != nil {
			if err := c.applySelections(ctx, b, patch, &warnings, &events); err != nil {
				return err
			}
		}
		if patch.Headcount != nil {
			if err := b.ChangeHeadcount(*patch.Headcount); err != nil {
				return err
			}
			events = append(events, modifyEvent(b.ID(), fmt.Sprintf("headcount changed to %d", *patch.Headcount)))
		}
		if patch.Discount != nil {
			b.ChangeDiscount(*patch.Discount)
			events = append(events, modifyEvent(b.ID(), "discount changed to "+patch.Discount.String()))
		}
		if patch.Deposit != nil {
			b.RecordDeposit(patch.Deposit.Date)
			events = append(events, paymentEvent(b.ID(), "deposit", patch.Deposit.Date))
		}
		if patch.Payment != nil {
			b.RecordPayment(patch.Payment.Date)
			events = append(events, paymentEvent(b.ID(), "payment", patch.Payment.Date))
		}

		if err := c.bookings.Update(ctx, tx, b); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return c.appendEvents(ctx, tx, events)
	})
	if err != nil {
		return nil, err
	}

	return c.result(ctx, id, warnings)
}

// CancelBooking flags the booking as canceled; the flag never comes back
// off. The payment gate lives here rather than in the entity: a settled
// booking is refused at this application boundary.
func (c *bookingCommandsImpl) CancelBooking(ctx context.Context, id uuid.UUID) (*MutationResult, error) {
	err := c.tx.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		b, err := c.bookings.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return c.mapRepoErr(err, ErrBookingNotFound)
		}
		if b.IsSettled() {
			return booking.NewBlockingViolation("a settled booking cannot be canceled")
		}
		b.Cancel()
		if err := c.bookings.Update(ctx, tx, b); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return c.audit.Append(ctx, tx, booking.ChangeEvent{
			Kind:      booking.EventDelete,
			BookingID: b.ID(),
			Message:   "booking canceled",
		})
	})
	if err != nil {
		return nil, err
	}

	return c.result(ctx, id, nil)
}

// GenerateBill renders the bill document for a fully scheduled booking and
// stores it on the record.
func (c *bookingCommandsImpl) GenerateBill(ctx context.Context, id uuid.UUID) (*MutationResult, error) {
	view, err := c.bookingQueries.GetByID(ctx, id)
	if err != nil {
		return nil, c.mapRepoErr(err, ErrBookingNotFound)
	}
	if view.SiteID == nil || view.StartDate == nil || view.EndDate == nil {
		return nil, ErrBillNotReady
	}

	data := BillData{
		BookingID:    view.ID,
		CustomerName: view.CustomerName,
		SiteName:     patch.Coalesce(view.SiteName, ""),
		StartDate:    view.StartDate.Format("2006-01-02"),
		EndDate:      view.EndDate.Format("2006-01-02"),
		Headcount:    int(view.Headcount),
		DayCount:     int(view.DayCount),
		Equipment:    view.Equipment,
		Service:      view.Service,
		Discount:     view.Discount,
		TotalPrice:   view.TotalPrice,
		DepositPrice: view.DepositPrice,
		RemainingDue: view.RemainingToPay,
	}
	document, err := c.renderer.Render(data)
	if err != nil {
		return nil, errs.Mark(err, ErrBillRenderFailed)
	}

	err = c.tx.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		b, err := c.bookings.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return c.mapRepoErr(err, ErrBookingNotFound)
		}
		b.AttachBill(document)
		if err := c.bookings.Update(ctx, tx, b); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return c.audit.Append(ctx, tx, booking.ChangeEvent{
			Kind:      booking.EventAdd,
			BookingID: b.ID(),
			Message:   "bill generated",
		})
	})
	if err != nil {
		return nil, err
	}

	return c.result(ctx, id, nil)
}

func (c *bookingCommandsImpl) applySite(ctx context.Context, b *booking.Booking, siteID uuid.UUID, warnings *[]string, events *[]booking.ChangeEvent) error {
	pitch, err := c.sites.FindByID(ctx, siteID)
	if err != nil {
		return c.mapRepoErr(err, ErrSiteNotFound)
	}

	// Moving the booking takes priority over its selections: availability is
	// the only blocking gate, equipment and service bend afterwards.
	if r, ok := b.Range(); ok {
		free, err := c.resolver.IsAvailableForBooking(ctx, b.ID(), pitch.ID(), r.Start(), r.End())
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !free {
			return booking.NewBlockingViolation("site is not available over the booked dates")
		}
	}

	corrections := b.AssignSite(pitch)
	*events = append(*events, modifyEvent(b.ID(), "site changed to "+pitch.Name()))
	*warnings = append(*warnings, c.noteCorrections(b.ID(), corrections, events)...)
	return nil
}

func (c *bookingCommandsImpl) applyStartDate(ctx context.Context, b *booking.Booking, date time.Time, events *[]booking.ChangeEvent) error {
	if b.SiteID() != nil && b.EndDate() != nil {
		free, err := c.resolver.IsAvailableForBooking(ctx, b.ID(), *b.SiteID(), date, *b.EndDate())
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !free {
			return booking.NewBlockingViolation("site is not available from this start date")
		}
	}
	if err := b.ChangeStartDate(date, c.clock.Now()); err != nil {
		return err
	}
	*events = append(*events, modifyEvent(b.ID(), "start date changed to "+clock.Midnight(date).Format("2006-01-02")))
	return nil
}

func (c *bookingCommandsImpl) applyEndDate(ctx context.Context, b *booking.Booking, date time.Time, events *[]booking.ChangeEvent) error {
	if b.SiteID() != nil && b.StartDate() != nil {
		free, err := c.resolver.IsAvailableForBooking(ctx, b.ID(), *b.SiteID(), *b.StartDate(), date)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !free {
			return booking.NewBlockingViolation("site is not available up to this end date")
		}
	}
	if err := b.ChangeEndDate(date); err != nil {
		return err
	}
	*events = append(*events, modifyEvent(b.ID(), "end date changed to "+clock.Midnight(date).Format("2006-01-02")))
	return nil
}

func (c *bookingCommandsImpl) applySelections(ctx context.Context, b *booking.Booking, patch BookingPatch, warnings *[]string, events *[]booking.ChangeEvent) error {
	var pitch *site.Site
	if b.SiteID() != nil {
		var err error
		pitch, err = c.sites.FindByID(ctx, *b.SiteID())
		if err != nil {
			return c.mapRepoErr(err, ErrSiteNotFound)
		}
	}

	if patch.Equipment != nil {
		correction := b.ChangeEquipment(*patch.Equipment, pitch)
		*events = append(*events, modifyEvent(b.ID(), "equipment changed to "+b.Equipment().String()))
		if correction != nil {
			*warnings = append(*warnings, correction.Message)
		}
	}
	if patch.Service != nil {
		correction := b.ChangeService(*patch.Service, pitch)
		*events = append(*events, modifyEvent(b.ID(), "service changed to "+b.Service().String()))
		if correction != nil {
			*warnings = append(*warnings, correction.Message)
		}
	}
	return nil
}

// noteCorrections turns auto-corrections into audit events and warning
// messages. Both fields corrected at once collapse into a single advisory,
// the way a site reassignment reports it.
func (c *bookingCommandsImpl) noteCorrections(bookingID uuid.UUID, corrections []booking.Correction, events *[]booking.ChangeEvent) []string {
	if len(corrections) == 0 {
		return nil
	}
	for _, correction := range corrections {
		*events = append(*events, modifyEvent(bookingID, correction.Field+" changed to "+correction.Value))
	}
	if len(corrections) > 1 {
		return []string{"requested equipment and service were adjusted to match the new site"}
	}
	return []string{corrections[0].Message}
}

func (c *bookingCommandsImpl) appendEvents(ctx context.Context, tx pgx.Tx, events []booking.ChangeEvent) error {
	for _, event := range events {
		if err := c.audit.Append(ctx, tx, event); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}
	return nil
}

func (c *bookingCommandsImpl) result(ctx context.Context, id uuid.UUID, warnings []string) (*MutationResult, error) {
	view, err := c.bookingQueries.GetByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return &MutationResult{Booking: view, Warnings: warnings}, nil
}

func (c *bookingCommandsImpl) mapRepoErr(err error, notFound error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return notFound
	}
	return errs.Mark(err, ErrDatabaseOperationFailed)
}

func modifyEvent(bookingID uuid.UUID, message string) booking.ChangeEvent {
	return booking.ChangeEvent{Kind: booking.EventModify, BookingID: bookingID, Message: message}
}

func paymentEvent(bookingID uuid.UUID, field string, date *time.Time) booking.ChangeEvent {
	if date == nil {
		return booking.ChangeEvent{Kind: booking.EventDelete, BookingID: bookingID, Message: field + " cleared"}
	}
	return booking.ChangeEvent{Kind: booking.EventAdd, BookingID: bookingID, Message: field + " recorded"}
}
