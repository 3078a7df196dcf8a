package booking

import (
	"math"
	"time"

	"campsite-booking/internal/domain/site"
)

const depositRate = 0.30

// DayCount returns the number of billable days between two calendar dates,
// both boundary days included.
func DayCount(start, end time.Time) int {
	days := math.Ceil(end.Sub(start).Hours() / 24)
	return int(days) + 1
}

// TotalPrice computes the stay price: pitch rate per person per day, plus the
// service surcharge per day, reduced by the discount factor and floored.
func TotalPrice(dailyRate int32, headcount, days int, service site.Service, discount Discount) int32 {
	raw := int(dailyRate) * headcount * days
	withService := raw + int(service.DailySurcharge())*days
	return int32(math.Floor(float64(withService) * discount.Factor()))
}

// DepositPrice is 30% of the total. The discount factor is applied here a
// second time on top of the already-discounted total; historical billing
// behavior that downstream accounting depends on.
func DepositPrice(total int32, discount Discount) int32 {
	return int32(math.Floor(float64(total) * depositRate * discount.Factor()))
}

// RemainingToPay is the open balance given what has been received so far.
// The deposit check comes first: a payment recorded without a prior deposit
// still leaves the full total open.
func RemainingToPay(total, deposit int32, hasDeposit, hasPayment bool) int32 {
	if !hasDeposit {
		return total
	}
	if hasPayment {
		return 0
	}
	return total - deposit
}

// Quote bundles every derived monetary figure of a booking.
type Quote struct {
	DayCount  int
	Total     int32
	Deposit   int32
	Remaining int32
}

// QuoteFor prices the booking against its assigned site. A booking without
// dates or site has nothing to bill yet and quotes zero.
func (b *Booking) QuoteFor(pitch *site.Site) Quote {
	if b.start == nil || b.end == nil || pitch == nil {
		return Quote{}
	}
	days := DayCount(*b.start, *b.end)
	total := TotalPrice(pitch.DailyRate(), b.headcount, days, b.service, b.discount)
	deposit := DepositPrice(total, b.discount)
	return Quote{
		DayCount:  days,
		Total:     total,
		Deposit:   deposit,
		Remaining: RemainingToPay(total, deposit, b.depositDate != nil, b.paymentDate != nil),
	}
}
