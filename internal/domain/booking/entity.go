package booking

import (
	"time"

	"github.com/google/uuid"

	"campsite-booking/internal/domain/site"
	"campsite-booking/internal/pkg/clock"
)

// Booking is a customer's reservation of one site over an inclusive date
// range. It starts life as a draft without dates or site and is populated by
// the lifecycle; every mutator below keeps the compatibility invariants or
// rejects the change with a blocking ConstraintViolation.
//
// The entity is pure: availability gating, persistence and audit emission
// belong to the command layer.
type Booking struct {
	id          uuid.UUID
	customerID  uuid.UUID
	siteID      *uuid.UUID
	headcount   int
	start       *time.Time
	end         *time.Time
	equipment   site.Equipment
	service     site.Service
	discount    Discount
	depositDate *time.Time
	paymentDate *time.Time
	canceled    bool
	bill        []byte
	createdAt   time.Time
	updatedAt   time.Time
}

func NewBooking(customerID uuid.UUID) *Booking {
	return &Booking{
		id:         uuid.New(),
		customerID: customerID,
		headcount:  1,
		equipment:  site.EquipmentNone,
		service:    site.ServiceNone,
		discount:   DiscountNone,
	}
}

func ReconstructBooking(
	id, customerID uuid.UUID,
	siteID *uuid.UUID,
	headcount int,
	start, end *time.Time,
	equipment site.Equipment,
	service site.Service,
	discount Discount,
	depositDate, paymentDate *time.Time,
	canceled bool,
	bill []byte,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:          id,
		customerID:  customerID,
		siteID:      siteID,
		headcount:   headcount,
		start:       start,
		end:         end,
		equipment:   equipment,
		service:     service,
		discount:    discount,
		depositDate: depositDate,
		paymentDate: paymentDate,
		canceled:    canceled,
		bill:        bill,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (b *Booking) ID() uuid.UUID             { return b.id }
func (b *Booking) CustomerID() uuid.UUID     { return b.customerID }
func (b *Booking) SiteID() *uuid.UUID        { return b.siteID }
func (b *Booking) Headcount() int            { return b.headcount }
func (b *Booking) StartDate() *time.Time     { return b.start }
func (b *Booking) EndDate() *time.Time       { return b.end }
func (b *Booking) Equipment() site.Equipment { return b.equipment }
func (b *Booking) Service() site.Service     { return b.service }
func (b *Booking) Discount() Discount        { return b.discount }
func (b *Booking) DepositDate() *time.Time   { return b.depositDate }
func (b *Booking) PaymentDate() *time.Time   { return b.paymentDate }
func (b *Booking) Canceled() bool            { return b.canceled }
func (b *Booking) Bill() []byte              { return b.bill }
func (b *Booking) CreatedAt() time.Time      { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time      { return b.updatedAt }

// Range returns the booked span when both bounds are set.
func (b *Booking) Range() (DateRange, bool) {
	if b.start == nil || b.end == nil {
		return DateRange{}, false
	}
	r, err := NewDateRange(*b.start, *b.end)
	if err != nil {
		return DateRange{}, false
	}
	return r, true
}

// IsSettled reports whether the payment has been recorded. A settled booking
// can no longer be canceled.
func (b *Booking) IsSettled() bool {
	return b.paymentDate != nil
}

// ScheduleDates assigns both bounds at once without validation; only the
// creation search uses it, with a window it computed itself.
func (b *Booking) ScheduleDates(start, end time.Time) {
	s := clock.Midnight(start)
	e := clock.Midnight(end)
	b.start = &s
	b.end = &e
}

// AdoptSiteDefaults seeds equipment and service from the pitch's own
// capabilities, the defaults every fresh booking starts from.
func (b *Booking) AdoptSiteDefaults(pitch *site.Site) {
	b.equipment = pitch.AllowedEquipment()
	b.service = pitch.ProvidedService()
}

// AssignSite moves the booking onto a pitch and reconciles equipment and
// service against it. The assignment itself always succeeds; the returned
// corrections list what had to change to stay compatible. Availability over
// the booked range must have been checked by the caller.
func (b *Booking) AssignSite(pitch *site.Site) []Correction {
	id := pitch.ID()
	b.siteID = &id

	var corrections []Correction
	if equipment, violated := ReconcileEquipment(b.equipment, pitch); violated {
		b.equipment = equipment
		corrections = append(corrections, Correction{
			Field:   FieldEquipment,
			Value:   equipment.String(),
			Message: "requested equipment adjusted to match the assigned site",
		})
	}
	if service, violated := ReconcileService(b.service, pitch); violated {
		b.service = service
		corrections = append(corrections, Correction{
			Field:   FieldService,
			Value:   service.String(),
			Message: "requested service adjusted to match the assigned site",
		})
	}
	return corrections
}

// ChangeEquipment applies the requested equipment, then reconciles it against
// the pitch when one is assigned. Never fails; an auto-correction is reported
// back for the caller to surface.
func (b *Booking) ChangeEquipment(equipment site.Equipment, pitch *site.Site) *Correction {
	b.equipment = equipment
	if pitch == nil {
		return nil
	}
	corrected, violated := ReconcileEquipment(b.equipment, pitch)
	if !violated {
		return nil
	}
	b.equipment = corrected
	return &Correction{
		Field:   FieldEquipment,
		Value:   corrected.String(),
		Message: "requested equipment adjusted to match the assigned site",
	}
}

// ChangeService applies the requested service, then reconciles it against the
// pitch when one is assigned.
func (b *Booking) ChangeService(service site.Service, pitch *site.Site) *Correction {
	b.service = service
	if pitch == nil {
		return nil
	}
	corrected, violated := ReconcileService(b.service, pitch)
	if !violated {
		return nil
	}
	b.service = corrected
	return &Correction{
		Field:   FieldService,
		Value:   corrected.String(),
		Message: "requested service adjusted to match the assigned site",
	}
}

// ChangeStartDate moves the start of the stay. While the booking is still
// being constructed (no end date or no site yet) the bound is assigned
// directly; afterwards a start in the past or after the end date is rejected
// outright. Availability over the prospective range is the caller's check.
func (b *Booking) ChangeStartDate(date, today time.Time) error {
	d := clock.Midnight(date)
	if b.end == nil || b.siteID == nil {
		b.start = &d
		return nil
	}
	if d.Before(clock.Midnight(today)) {
		return NewBlockingViolation("start date is in the past")
	}
	if d.After(*b.end) {
		return NewBlockingViolation("start date is after the end date")
	}
	b.start = &d
	return nil
}

// ChangeEndDate moves the end of the stay, rejecting an end before the start
// once the booking is fully constructed.
func (b *Booking) ChangeEndDate(date time.Time) error {
	d := clock.Midnight(date)
	if b.start == nil || b.siteID == nil {
		b.end = &d
		return nil
	}
	if d.Before(*b.start) {
		return NewBlockingViolation("end date is before the start date")
	}
	b.end = &d
	return nil
}

// ChangeHeadcount sets the number of persons; at least one must stay.
func (b *Booking) ChangeHeadcount(n int) error {
	if n < 1 {
		return NewBlockingViolation("headcount must be at least 1")
	}
	b.headcount = n
	return nil
}

func (b *Booking) ChangeDiscount(d Discount) {
	b.discount = d
}

// RecordDeposit sets or clears the deposit timestamp. No cross-check against
// the payment date is made here; that permissiveness is deliberate.
func (b *Booking) RecordDeposit(t *time.Time) {
	b.depositDate = t
}

// RecordPayment sets or clears the payment timestamp.
func (b *Booking) RecordPayment(t *time.Time) {
	b.paymentDate = t
}

// Cancel flags the booking as canceled. Terminal: no operation ever clears
// the flag again.
func (b *Booking) Cancel() {
	b.canceled = true
}

// AttachBill stores the generated bill document on the booking.
func (b *Booking) AttachBill(data []byte) {
	b.bill = data
}

// StatusAt derives the booking's display status from its data.
func (b *Booking) StatusAt(now time.Time) Status {
	if b.canceled {
		return StatusCanceled
	}
	if b.siteID == nil || b.start == nil || b.end == nil {
		return StatusDraft
	}
	if !now.Before(*b.end) {
		return StatusExpired
	}
	if b.paymentDate != nil {
		return StatusSettled
	}
	if b.depositDate != nil {
		return StatusDeposited
	}
	return StatusScheduled
}
