package response

import (
	"campsite-booking/internal/usecase/commands"
	"campsite-booking/internal/usecase/queries"
)

// BookingResponse is the mutation envelope: the booking after the change
// plus any auto-correction warnings collected while applying it.
type BookingResponse struct {
	Booking  *queries.BookingView `json:"booking"`
	Warnings []string             `json:"warnings,omitempty"`
}

func FromMutationResult(result *commands.MutationResult) *BookingResponse {
	return &BookingResponse{
		Booking:  result.Booking,
		Warnings: result.Warnings,
	}
}
