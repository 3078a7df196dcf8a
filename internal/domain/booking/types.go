package booking

import "campsite-booking/internal/pkg/errs"

// Discount is the loyalty cashback tier applied to a booking's totals.
// The factor multiplies the price, so 1.0 means no reduction.
type Discount string

const (
	DiscountNone   Discount = "none"
	DiscountBronze Discount = "bronze"
	DiscountSilver Discount = "silver"
	DiscountGold   Discount = "gold"
)

func NewDiscount(value string) (Discount, error) {
	d := Discount(value)
	if !d.IsValid() {
		return "", errs.Newf("unknown discount %q", value)
	}
	return d, nil
}

func (d Discount) String() string {
	return string(d)
}

func (d Discount) IsValid() bool {
	switch d {
	case DiscountNone, DiscountBronze, DiscountSilver, DiscountGold:
		return true
	default:
		return false
	}
}

func (d Discount) Factor() float64 {
	switch d {
	case DiscountBronze:
		return 0.95
	case DiscountSilver:
		return 0.90
	case DiscountGold:
		return 0.80
	default:
		return 1.0
	}
}

// Status is derived from a booking's data, never stored. It drives display
// and printing policy, not mutation gating.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusScheduled Status = "scheduled"
	StatusDeposited Status = "deposited"
	StatusSettled   Status = "settled"
	StatusCanceled  Status = "canceled"
	StatusExpired   Status = "expired"
)

func (s Status) String() string {
	return string(s)
}
