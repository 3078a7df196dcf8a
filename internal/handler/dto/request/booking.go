package request

import (
	"time"

	"github.com/google/uuid"

	"campsite-booking/internal/domain/booking"
	"campsite-booking/internal/domain/site"
	"campsite-booking/internal/usecase/commands"
)

type CreateBookingRequest struct {
	CustomerID uuid.UUID `json:"customer_id" binding:"required"`
}

// UpdateBookingRequest carries only the fields the caller wants to change.
// Deposit and payment dates distinguish "set" from "clear" with explicit
// clear flags, since an absent field means "leave alone".
type UpdateBookingRequest struct {
	SiteID       *uuid.UUID `json:"site_id"`
	StartDate    *string    `json:"start_date"`
	EndDate      *string    `json:"end_date"`
	Equipment    *string    `json:"equipment"`
	Service      *string    `json:"service"`
	Headcount    *int       `json:"headcount"`
	Discount     *string    `json:"discount"`
	DepositDate  *string    `json:"deposit_date"`
	ClearDeposit bool       `json:"clear_deposit"`
	PaymentDate  *string    `json:"payment_date"`
	ClearPayment bool       `json:"clear_payment"`
}

const dateLayout = "2006-01-02"

func (r *UpdateBookingRequest) ToPatch() (commands.BookingPatch, error) {
	var patch commands.BookingPatch

	patch.SiteID = r.SiteID
	patch.Headcount = r.Headcount

	if r.StartDate != nil {
		d, err := time.Parse(dateLayout, *r.StartDate)
		if err != nil {
			return patch, err
		}
		patch.StartDate = &d
	}
	if r.EndDate != nil {
		d, err := time.Parse(dateLayout, *r.EndDate)
		if err != nil {
			return patch, err
		}
		patch.EndDate = &d
	}
	if r.Equipment != nil {
		equipment, err := site.NewEquipment(*r.Equipment)
		if err != nil {
			return patch, err
		}
		patch.Equipment = &equipment
	}
	if r.Service != nil {
		service, err := site.NewService(*r.Service)
		if err != nil {
			return patch, err
		}
		patch.Service = &service
	}
	if r.Discount != nil {
		discount, err := booking.NewDiscount(*r.Discount)
		if err != nil {
			return patch, err
		}
		patch.Discount = &discount
	}

	deposit, err := dateChange(r.DepositDate, r.ClearDeposit)
	if err != nil {
		return patch, err
	}
	patch.Deposit = deposit

	payment, err := dateChange(r.PaymentDate, r.ClearPayment)
	if err != nil {
		return patch, err
	}
	patch.Payment = payment

	return patch, nil
}

func dateChange(value *string, clear bool) (*commands.DateChange, error) {
	if value != nil {
		d, err := time.Parse(dateLayout, *value)
		if err != nil {
			return nil, err
		}
		return &commands.DateChange{Date: &d}, nil
	}
	if clear {
		return &commands.DateChange{}, nil
	}
	return nil, nil
}
