//go:build unit

package booking

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campsite-booking/internal/domain/site"
)

func newCustomerID() uuid.UUID {
	return uuid.New()
}

func TestNewBookingDefaults(t *testing.T) {
	customerID := newCustomerID()
	b := NewBooking(customerID)

	assert.Equal(t, customerID, b.CustomerID())
	assert.Nil(t, b.SiteID())
	assert.Nil(t, b.StartDate())
	assert.Nil(t, b.EndDate())
	assert.Equal(t, 1, b.Headcount())
	assert.Equal(t, site.EquipmentNone, b.Equipment())
	assert.Equal(t, site.ServiceNone, b.Service())
	assert.Equal(t, DiscountNone, b.Discount())
	assert.False(t, b.Canceled())
}

func TestChangeStartDate(t *testing.T) {
	pitch := mustSite(t, "A1", site.EquipmentTent, site.ServiceWater)
	today := date("2024-06-01")

	t.Run("free assignment while under construction", func(t *testing.T) {
		b := NewBooking(newCustomerID())
		err := b.ChangeStartDate(date("2020-01-01"), today)
		require.NoError(t, err)
		assert.Equal(t, date("2020-01-01"), *b.StartDate())
	})

	t.Run("past start rejected once constructed", func(t *testing.T) {
		b := NewBooking(newCustomerID())
		b.ScheduleDates(date("2024-06-10"), date("2024-06-14"))
		b.AssignSite(pitch)

		err := b.ChangeStartDate(date("2024-05-31"), today)
		violation, ok := AsConstraintViolation(err)
		require.True(t, ok)
		assert.False(t, violation.Recoverable)
		assert.Equal(t, date("2024-06-10"), *b.StartDate())
	})

	t.Run("start after end rejected", func(t *testing.T) {
		b := NewBooking(newCustomerID())
		b.ScheduleDates(date("2024-06-10"), date("2024-06-14"))
		b.AssignSite(pitch)

		err := b.ChangeStartDate(date("2024-06-15"), today)
		violation, ok := AsConstraintViolation(err)
		require.True(t, ok)
		assert.False(t, violation.Recoverable)
	})

	t.Run("valid move goes through", func(t *testing.T) {
		b := NewBooking(newCustomerID())
		b.ScheduleDates(date("2024-06-10"), date("2024-06-14"))
		b.AssignSite(pitch)

		require.NoError(t, b.ChangeStartDate(date("2024-06-12"), today))
		assert.Equal(t, date("2024-06-12"), *b.StartDate())
	})
}

func TestChangeEndDate(t *testing.T) {
	pitch := mustSite(t, "A1", site.EquipmentTent, site.ServiceWater)

	t.Run("end before start rejected", func(t *testing.T) {
		b := NewBooking(newCustomerID())
		b.ScheduleDates(date("2024-06-10"), date("2024-06-14"))
		b.AssignSite(pitch)

		err := b.ChangeEndDate(date("2024-06-09"))
		violation, ok := AsConstraintViolation(err)
		require.True(t, ok)
		assert.False(t, violation.Recoverable)
		assert.Equal(t, date("2024-06-14"), *b.EndDate())
	})

	t.Run("extension goes through", func(t *testing.T) {
		b := NewBooking(newCustomerID())
		b.ScheduleDates(date("2024-06-10"), date("2024-06-14"))
		b.AssignSite(pitch)

		require.NoError(t, b.ChangeEndDate(date("2024-06-20")))
		assert.Equal(t, date("2024-06-20"), *b.EndDate())
	})
}

func TestChangeHeadcount(t *testing.T) {
	b := NewBooking(newCustomerID())

	err := b.ChangeHeadcount(0)
	violation, ok := AsConstraintViolation(err)
	require.True(t, ok)
	assert.False(t, violation.Recoverable)
	assert.Equal(t, 1, b.Headcount())

	require.NoError(t, b.ChangeHeadcount(4))
	assert.Equal(t, 4, b.Headcount())
}

func TestStatusAt(t *testing.T) {
	pitch := mustSite(t, "A1", site.EquipmentTent, site.ServiceWater)
	now := date("2024-06-03")

	t.Run("draft until fully constructed", func(t *testing.T) {
		b := NewBooking(newCustomerID())
		assert.Equal(t, StatusDraft, b.StatusAt(now))
	})

	t.Run("scheduled once site and dates are set", func(t *testing.T) {
		b := NewBooking(newCustomerID())
		b.ScheduleDates(date("2024-06-10"), date("2024-06-14"))
		b.AssignSite(pitch)
		assert.Equal(t, StatusScheduled, b.StatusAt(now))
	})

	t.Run("deposited after a deposit", func(t *testing.T) {
		b := NewBooking(newCustomerID())
		b.ScheduleDates(date("2024-06-10"), date("2024-06-14"))
		b.AssignSite(pitch)
		deposited := date("2024-06-01")
		b.RecordDeposit(&deposited)
		assert.Equal(t, StatusDeposited, b.StatusAt(now))
	})

	t.Run("settled after payment", func(t *testing.T) {
		b := NewBooking(newCustomerID())
		b.ScheduleDates(date("2024-06-10"), date("2024-06-14"))
		b.AssignSite(pitch)
		paid := date("2024-06-02")
		b.RecordPayment(&paid)
		assert.Equal(t, StatusSettled, b.StatusAt(now))
	})

	t.Run("expired once the end date has passed", func(t *testing.T) {
		b := NewBooking(newCustomerID())
		b.ScheduleDates(date("2024-05-20"), date("2024-05-25"))
		b.AssignSite(pitch)
		assert.Equal(t, StatusExpired, b.StatusAt(now))
	})

	t.Run("canceled wins over everything", func(t *testing.T) {
		b := NewBooking(newCustomerID())
		b.ScheduleDates(date("2024-06-10"), date("2024-06-14"))
		b.AssignSite(pitch)
		paid := date("2024-06-02")
		b.RecordPayment(&paid)
		b.Cancel()
		assert.Equal(t, StatusCanceled, b.StatusAt(now))
	})
}

func TestDateRangeOverlaps(t *testing.T) {
	mustRange := func(start, end string) DateRange {
		r, err := NewDateRange(date(start), date(end))
		require.NoError(t, err)
		return r
	}

	tests := []struct {
		name string
		a    DateRange
		b    DateRange
		want bool
	}{
		{"disjoint", mustRange("2024-06-01", "2024-06-05"), mustRange("2024-06-06", "2024-06-10"), false},
		{"touching boundary days collide", mustRange("2024-06-01", "2024-06-05"), mustRange("2024-06-05", "2024-06-10"), true},
		{"contained", mustRange("2024-06-01", "2024-06-10"), mustRange("2024-06-03", "2024-06-07"), true},
		{"partial overlap", mustRange("2024-06-01", "2024-06-05"), mustRange("2024-06-03", "2024-06-07"), true},
		{"identical", mustRange("2024-06-01", "2024-06-05"), mustRange("2024-06-01", "2024-06-05"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestRecordDepositAndPayment(t *testing.T) {
	b := NewBooking(newCustomerID())

	deposited := date("2024-06-01")
	b.RecordDeposit(&deposited)
	require.NotNil(t, b.DepositDate())
	assert.False(t, b.IsSettled())

	// Payment needs no prior deposit; the model stays permissive here.
	b2 := NewBooking(newCustomerID())
	paid := date("2024-06-02")
	b2.RecordPayment(&paid)
	assert.True(t, b2.IsSettled())

	b.RecordDeposit(nil)
	assert.Nil(t, b.DepositDate())
}
