package request

import (
	"campsite-booking/internal/domain/booking"
	"campsite-booking/internal/usecase/commands"
)

type ReportProblemRequest struct {
	Description string `json:"description" binding:"required"`
}

type UpdateProblemRequest struct {
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

func (r *UpdateProblemRequest) ToPatch() (commands.ProblemPatch, error) {
	var patch commands.ProblemPatch

	patch.Description = r.Description
	if r.Status != nil {
		status, err := booking.NewProblemStatus(*r.Status)
		if err != nil {
			return patch, err
		}
		patch.Status = &status
	}
	return patch, nil
}
