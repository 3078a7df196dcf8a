//go:build unit

package commands

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campsite-booking/internal/domain/booking"
	"campsite-booking/internal/domain/site"
	"campsite-booking/internal/infra"
	"campsite-booking/internal/pkg/clock"
	"campsite-booking/internal/pkg/config"
	"campsite-booking/internal/usecase/availability"
	"campsite-booking/internal/usecase/queries"
)

type fakeTxRunner struct{}

func (f *fakeTxRunner) WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	return fn(ctx, nil)
}

type fakeBookingRepo struct {
	bookings map[uuid.UUID]*booking.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[uuid.UUID]*booking.Booking{}}
}

func (f *fakeBookingRepo) Create(_ context.Context, _ pgx.Tx, b *booking.Booking) error {
	f.bookings[b.ID()] = cloneBooking(b)
	return nil
}

func (f *fakeBookingRepo) Update(_ context.Context, _ pgx.Tx, b *booking.Booking) error {
	if _, ok := f.bookings[b.ID()]; !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	f.bookings[b.ID()] = cloneBooking(b)
	return nil
}

// FindByIDForUpdate hands out a copy, like a row read under lock: mutations
// that never reach Update must not leak into the store.
func (f *fakeBookingRepo) FindByIDForUpdate(_ context.Context, _ pgx.Tx, id uuid.UUID) (*booking.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return cloneBooking(b), nil
}

func cloneBooking(b *booking.Booking) *booking.Booking {
	return booking.ReconstructBooking(
		b.ID(), b.CustomerID(), b.SiteID(), b.Headcount(),
		b.StartDate(), b.EndDate(),
		b.Equipment(), b.Service(), b.Discount(),
		b.DepositDate(), b.PaymentDate(),
		b.Canceled(), b.Bill(),
		b.CreatedAt(), b.UpdatedAt(),
	)
}

type fakeSiteRepo struct {
	sites map[uuid.UUID]*site.Site
}

func (f *fakeSiteRepo) FindByID(_ context.Context, id uuid.UUID) (*site.Site, error) {
	s, ok := f.sites[id]
	if !ok {
		return nil, infra.WrapRepoErr("site not found", nil, infra.KindNotFound)
	}
	return s, nil
}

type fakeCustomerRepo struct {
	existing map[uuid.UUID]bool
}

func (f *fakeCustomerRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	return f.existing[id], nil
}

type fakeAuditRepo struct {
	events []booking.ChangeEvent
}

func (f *fakeAuditRepo) Append(_ context.Context, _ pgx.Tx, event booking.ChangeEvent) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeAuditRepo) kinds() []booking.EventKind {
	out := make([]booking.EventKind, len(f.events))
	for i, e := range f.events {
		out[i] = e.Kind
	}
	return out
}

type fakeSiteReader struct {
	sites []*site.Site
}

func (f *fakeSiteReader) ListOrdered(_ context.Context) ([]*site.Site, error) {
	return f.sites, nil
}

// repoOverlapReader answers overlap checks from the in-memory booking store,
// under the same inclusive rule the SQL query uses.
type repoOverlapReader struct {
	repo *fakeBookingRepo
}

func (r *repoOverlapReader) HasActiveOverlap(_ context.Context, siteID uuid.UUID, start, end time.Time, excludeBookingID uuid.UUID) (bool, error) {
	rng, err := booking.NewDateRange(start, end)
	if err != nil {
		return false, err
	}
	for id, b := range r.repo.bookings {
		if id == excludeBookingID || b.Canceled() || b.SiteID() == nil || *b.SiteID() != siteID {
			continue
		}
		existing, ok := b.Range()
		if !ok {
			continue
		}
		if existing.Overlaps(rng) {
			return true, nil
		}
	}
	return false, nil
}

type fakeBookingQueries struct {
	repo  *fakeBookingRepo
	sites map[uuid.UUID]*site.Site
	clk   clock.Clock
}

func (f *fakeBookingQueries) GetByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	b, ok := f.repo.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	view := &queries.BookingView{
		ID:           b.ID(),
		CustomerID:   b.CustomerID(),
		CustomerName: "Jean Dupont",
		SiteID:       b.SiteID(),
		Headcount:    int32(b.Headcount()),
		StartDate:    b.StartDate(),
		EndDate:      b.EndDate(),
		Equipment:    b.Equipment().String(),
		Service:      b.Service().String(),
		Discount:     b.Discount().String(),
		DepositDate:  b.DepositDate(),
		PaymentDate:  b.PaymentDate(),
		Canceled:     b.Canceled(),
		HasBill:      len(b.Bill()) > 0,
		Status:       b.StatusAt(f.clk.Now()).String(),
	}
	if b.SiteID() != nil {
		if pitch, ok := f.sites[*b.SiteID()]; ok {
			name := pitch.Name()
			view.SiteName = &name
			quote := b.QuoteFor(pitch)
			view.DayCount = int32(quote.DayCount)
			view.TotalPrice = quote.Total
			view.DepositPrice = quote.Deposit
			view.RemainingToPay = quote.Remaining
		}
	}
	return view, nil
}

func (f *fakeBookingQueries) List(_ context.Context) ([]*queries.BookingView, error) {
	return nil, nil
}

func (f *fakeBookingQueries) ListByCustomer(_ context.Context, _ uuid.UUID) ([]*queries.BookingView, error) {
	return nil, nil
}

func (f *fakeBookingQueries) GetBill(_ context.Context, id uuid.UUID) ([]byte, error) {
	b, ok := f.repo.bookings[id]
	if !ok || len(b.Bill()) == 0 {
		return nil, infra.WrapRepoErr("bill not generated", nil, infra.KindNotFound)
	}
	return b.Bill(), nil
}

func (f *fakeBookingQueries) ListAuditTrail(_ context.Context, _ uuid.UUID) ([]*queries.AuditEventView, error) {
	return nil, nil
}

type fakeBillRenderer struct {
	lastData *BillData
	err      error
}

func (f *fakeBillRenderer) Render(data BillData) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastData = &data
	return []byte("%PDF-1.4 bill"), nil
}

type fixture struct {
	commands   BookingCommands
	repo       *fakeBookingRepo
	audit      *fakeAuditRepo
	renderer   *fakeBillRenderer
	clk        *clock.MockClock
	customerID uuid.UUID
	siteA      *site.Site
	siteB      *site.Site
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	siteA, err := site.NewSite("A1", 20, 80, site.EquipmentTent, site.ServiceWater)
	require.NoError(t, err)
	siteB, err := site.NewSite("B1", 25, 100, site.EquipmentCaravan, site.ServiceWaterAndElectricity)
	require.NoError(t, err)

	repo := newFakeBookingRepo()
	audit := &fakeAuditRepo{}
	customerID := uuid.New()
	siteMap := map[uuid.UUID]*site.Site{siteA.ID(): siteA, siteB.ID(): siteB}
	clk := clock.NewMockClock(time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC))

	resolver := availability.NewResolver(
		&fakeSiteReader{sites: []*site.Site{siteA, siteB}},
		&repoOverlapReader{repo: repo},
	)

	renderer := &fakeBillRenderer{}
	cmds := NewBookingCommands(
		&fakeTxRunner{},
		repo,
		&fakeSiteRepo{sites: siteMap},
		&fakeCustomerRepo{existing: map[uuid.UUID]bool{customerID: true}},
		audit,
		resolver,
		&fakeBookingQueries{repo: repo, sites: siteMap, clk: clk},
		renderer,
		clk,
		config.NewTestConfig().Booking,
	)

	return &fixture{
		commands:   cmds,
		repo:       repo,
		audit:      audit,
		renderer:   renderer,
		clk:        clk,
		customerID: customerID,
		siteA:      siteA,
		siteB:      siteB,
	}
}

func (f *fixture) seedBooking(t *testing.T, pitch *site.Site, start, end string) uuid.UUID {
	t.Helper()
	b := booking.NewBooking(f.customerID)
	b.ScheduleDates(mustDate(start), mustDate(end))
	b.AdoptSiteDefaults(pitch)
	b.AssignSite(pitch)
	f.repo.bookings[b.ID()] = b
	return b.ID()
}

func mustDate(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr[T any](v T) *T { return &v }

func TestCreateBooking(t *testing.T) {
	t.Run("picks the first free site from today", func(t *testing.T) {
		f := newFixture(t)

		result, err := f.commands.CreateBooking(context.Background(), f.customerID)
		require.NoError(t, err)
		require.NotNil(t, result.Booking)

		view := result.Booking
		require.NotNil(t, view.SiteID)
		assert.Equal(t, f.siteA.ID(), *view.SiteID)
		require.NotNil(t, view.StartDate)
		assert.Equal(t, mustDate("2024-06-01"), *view.StartDate)
		assert.Equal(t, mustDate("2024-06-06"), *view.EndDate)
		assert.Equal(t, "tent", view.Equipment)
		assert.Equal(t, "water", view.Service)
		assert.Empty(t, result.Warnings)

		require.Len(t, f.audit.events, 1)
		assert.Equal(t, booking.EventAdd, f.audit.events[0].Kind)
	})

	t.Run("walks forward past occupied windows", func(t *testing.T) {
		f := newFixture(t)
		f.seedBooking(t, f.siteA, "2024-06-01", "2024-06-06")
		f.seedBooking(t, f.siteB, "2024-06-01", "2024-06-06")

		result, err := f.commands.CreateBooking(context.Background(), f.customerID)
		require.NoError(t, err)

		view := result.Booking
		require.NotNil(t, view.StartDate)
		// A June 6 start still collides with the seeds' inclusive end
		// date; June 7 is the first clear window.
		assert.Equal(t, mustDate("2024-06-07"), *view.StartDate)
		assert.Equal(t, f.siteA.ID(), *view.SiteID)
	})

	t.Run("unknown customer is rejected", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.commands.CreateBooking(context.Background(), uuid.New())
		assert.ErrorIs(t, err, ErrCustomerNotFound)
		assert.Empty(t, f.repo.bookings)
	})

	t.Run("bounded search gives up with no availability", func(t *testing.T) {
		f := newFixture(t)
		f.seedBooking(t, f.siteA, "2024-06-01", "2025-06-01")
		f.seedBooking(t, f.siteB, "2024-06-01", "2025-06-01")

		_, err := f.commands.CreateBooking(context.Background(), f.customerID)
		assert.ErrorIs(t, err, ErrNoAvailability)
	})
}

func TestUpdateBooking(t *testing.T) {
	t.Run("moving to an occupied site is rejected and state preserved", func(t *testing.T) {
		f := newFixture(t)
		id := f.seedBooking(t, f.siteA, "2024-06-03", "2024-06-07")
		f.seedBooking(t, f.siteB, "2024-06-01", "2024-06-05")

		_, err := f.commands.UpdateBooking(context.Background(), id, BookingPatch{
			SiteID: ptr(f.siteB.ID()),
		})
		violation, ok := booking.AsConstraintViolation(err)
		require.True(t, ok)
		assert.False(t, violation.Recoverable)

		stored := f.repo.bookings[id]
		assert.Equal(t, f.siteA.ID(), *stored.SiteID())
	})

	t.Run("moving to a free site reconciles selections with a warning", func(t *testing.T) {
		f := newFixture(t)
		id := f.seedBooking(t, f.siteB, "2024-06-03", "2024-06-07")

		result, err := f.commands.UpdateBooking(context.Background(), id, BookingPatch{
			SiteID: ptr(f.siteA.ID()),
		})
		require.NoError(t, err)

		// siteB defaults (caravan, full service) cannot live on the tent
		// pitch; both get corrected, reported as one combined warning.
		require.Len(t, result.Warnings, 1)
		assert.Equal(t, "tent", result.Booking.Equipment)
		assert.Equal(t, "water", result.Booking.Service)
		assert.Equal(t, f.siteA.ID(), *result.Booking.SiteID)
	})

	t.Run("repeating a site move leaves the booking unchanged", func(t *testing.T) {
		f := newFixture(t)
		id := f.seedBooking(t, f.siteB, "2024-06-03", "2024-06-07")

		first, err := f.commands.UpdateBooking(context.Background(), id, BookingPatch{
			SiteID: ptr(f.siteA.ID()),
		})
		require.NoError(t, err)

		// The second pass sees the booking already sitting on the target
		// site; its own row must not count as a conflict.
		second, err := f.commands.UpdateBooking(context.Background(), id, BookingPatch{
			SiteID: ptr(f.siteA.ID()),
		})
		require.NoError(t, err)
		assert.Empty(t, second.Warnings)
		assert.Empty(t, cmp.Diff(first.Booking, second.Booking))
	})

	t.Run("incompatible equipment change is corrected not rejected", func(t *testing.T) {
		f := newFixture(t)
		id := f.seedBooking(t, f.siteA, "2024-06-03", "2024-06-07")

		equipment := site.EquipmentMobilhome
		result, err := f.commands.UpdateBooking(context.Background(), id, BookingPatch{
			Equipment: &equipment,
		})
		require.NoError(t, err)
		require.Len(t, result.Warnings, 1)
		assert.Equal(t, "tent", result.Booking.Equipment)
	})

	t.Run("zero headcount is a blocking violation", func(t *testing.T) {
		f := newFixture(t)
		id := f.seedBooking(t, f.siteA, "2024-06-03", "2024-06-07")

		_, err := f.commands.UpdateBooking(context.Background(), id, BookingPatch{
			Headcount: ptr(0),
		})
		violation, ok := booking.AsConstraintViolation(err)
		require.True(t, ok)
		assert.False(t, violation.Recoverable)
		assert.Equal(t, 1, f.repo.bookings[id].Headcount())
	})

	t.Run("start date in the past is rejected", func(t *testing.T) {
		f := newFixture(t)
		id := f.seedBooking(t, f.siteA, "2024-06-03", "2024-06-07")

		_, err := f.commands.UpdateBooking(context.Background(), id, BookingPatch{
			StartDate: ptr(mustDate("2024-05-20")),
		})
		violation, ok := booking.AsConstraintViolation(err)
		require.True(t, ok)
		assert.False(t, violation.Recoverable)
	})

	t.Run("deposit set and clear audit as add and delete", func(t *testing.T) {
		f := newFixture(t)
		id := f.seedBooking(t, f.siteA, "2024-06-03", "2024-06-07")

		_, err := f.commands.UpdateBooking(context.Background(), id, BookingPatch{
			Deposit: &DateChange{Date: ptr(mustDate("2024-06-01"))},
		})
		require.NoError(t, err)
		require.NotNil(t, f.repo.bookings[id].DepositDate())

		_, err = f.commands.UpdateBooking(context.Background(), id, BookingPatch{
			Deposit: &DateChange{},
		})
		require.NoError(t, err)
		assert.Nil(t, f.repo.bookings[id].DepositDate())

		assert.Equal(t, []booking.EventKind{booking.EventAdd, booking.EventDelete}, f.audit.kinds())
	})

	t.Run("discount changes the derived prices", func(t *testing.T) {
		f := newFixture(t)
		id := f.seedBooking(t, f.siteA, "2024-06-03", "2024-06-07")

		discount := booking.DiscountSilver
		result, err := f.commands.UpdateBooking(context.Background(), id, BookingPatch{
			Headcount: ptr(2),
			Discount:  &discount,
		})
		require.NoError(t, err)

		// 20*2*5 + 4*5 = 220, silver 0.9 -> 198; deposit floor(198*0.3*0.9) = 53
		assert.Equal(t, int32(198), result.Booking.TotalPrice)
		assert.Equal(t, int32(53), result.Booking.DepositPrice)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.commands.UpdateBooking(context.Background(), uuid.New(), BookingPatch{
			Headcount: ptr(2),
		})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestCancelBooking(t *testing.T) {
	t.Run("open booking cancels with a delete event", func(t *testing.T) {
		f := newFixture(t)
		id := f.seedBooking(t, f.siteA, "2024-06-03", "2024-06-07")

		result, err := f.commands.CancelBooking(context.Background(), id)
		require.NoError(t, err)
		assert.True(t, result.Booking.Canceled)
		assert.True(t, f.repo.bookings[id].Canceled())

		require.Len(t, f.audit.events, 1)
		assert.Equal(t, booking.EventDelete, f.audit.events[0].Kind)
	})

	t.Run("settled booking refuses cancelation", func(t *testing.T) {
		f := newFixture(t)
		id := f.seedBooking(t, f.siteA, "2024-06-03", "2024-06-07")
		paid := mustDate("2024-06-01")
		f.repo.bookings[id].RecordPayment(&paid)

		_, err := f.commands.CancelBooking(context.Background(), id)
		violation, ok := booking.AsConstraintViolation(err)
		require.True(t, ok)
		assert.False(t, violation.Recoverable)
		assert.False(t, f.repo.bookings[id].Canceled())
	})

	t.Run("canceled site frees its slot for new bookings", func(t *testing.T) {
		f := newFixture(t)
		idA := f.seedBooking(t, f.siteA, "2024-06-01", "2024-06-06")
		f.seedBooking(t, f.siteB, "2024-06-01", "2024-06-06")

		_, err := f.commands.CancelBooking(context.Background(), idA)
		require.NoError(t, err)

		result, err := f.commands.CreateBooking(context.Background(), f.customerID)
		require.NoError(t, err)
		assert.Equal(t, mustDate("2024-06-01"), *result.Booking.StartDate)
		assert.Equal(t, f.siteA.ID(), *result.Booking.SiteID)
	})
}

func TestGenerateBill(t *testing.T) {
	t.Run("attaches the rendered document and audits it", func(t *testing.T) {
		f := newFixture(t)
		id := f.seedBooking(t, f.siteA, "2024-06-03", "2024-06-07")

		result, err := f.commands.GenerateBill(context.Background(), id)
		require.NoError(t, err)
		assert.True(t, result.Booking.HasBill)
		assert.NotEmpty(t, f.repo.bookings[id].Bill())

		require.NotNil(t, f.renderer.lastData)
		want := BillData{
			BookingID:    id,
			CustomerName: "Jean Dupont",
			SiteName:     "A1",
			StartDate:    "2024-06-03",
			EndDate:      "2024-06-07",
			Headcount:    1,
			DayCount:     5,
			Equipment:    "tent",
			Service:      "water",
			Discount:     "none",
			TotalPrice:   120,
			DepositPrice: 36,
			RemainingDue: 120,
		}
		if diff := cmp.Diff(want, *f.renderer.lastData); diff != "" {
			t.Errorf("bill data mismatch (-want +got):\n%s", diff)
		}

		require.Len(t, f.audit.events, 1)
		assert.Equal(t, booking.EventAdd, f.audit.events[0].Kind)
	})

	t.Run("draft booking cannot be billed", func(t *testing.T) {
		f := newFixture(t)
		b := booking.NewBooking(f.customerID)
		f.repo.bookings[b.ID()] = b

		_, err := f.commands.GenerateBill(context.Background(), b.ID())
		assert.ErrorIs(t, err, ErrBillNotReady)
	})
}
