package booking

import (
	"time"

	"github.com/google/uuid"

	"campsite-booking/internal/pkg/clock"
)

// ProblemStatus is the triage state of a reported problem.
type ProblemStatus string

const (
	ProblemOpen       ProblemStatus = "open"
	ProblemInProgress ProblemStatus = "in_progress"
	ProblemResolved   ProblemStatus = "resolved"
)

func NewProblemStatus(value string) (ProblemStatus, error) {
	switch ProblemStatus(value) {
	case ProblemOpen, ProblemInProgress, ProblemResolved:
		return ProblemStatus(value), nil
	}
	return "", NewBlockingViolation("unknown problem status: " + value)
}

func (s ProblemStatus) String() string { return string(s) }

// Problem is an issue reported against a booking: a free-text description
// plus a triage status. Moving to resolved stamps the resolution date;
// leaving resolved clears it again.
type Problem struct {
	id          uuid.UUID
	bookingID   uuid.UUID
	description string
	status      ProblemStatus
	resolvedAt  *time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

func NewProblem(bookingID uuid.UUID, description string) (*Problem, error) {
	if description == "" {
		return nil, NewBlockingViolation("problem description must not be empty")
	}
	return &Problem{
		id:          uuid.New(),
		bookingID:   bookingID,
		description: description,
		status:      ProblemOpen,
	}, nil
}

func ReconstructProblem(
	id, bookingID uuid.UUID,
	description string,
	status ProblemStatus,
	resolvedAt *time.Time,
	createdAt, updatedAt time.Time,
) *Problem {
	return &Problem{
		id:          id,
		bookingID:   bookingID,
		description: description,
		status:      status,
		resolvedAt:  resolvedAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (p *Problem) ID() uuid.UUID          { return p.id }
func (p *Problem) BookingID() uuid.UUID   { return p.bookingID }
func (p *Problem) Description() string    { return p.description }
func (p *Problem) Status() ProblemStatus  { return p.status }
func (p *Problem) ResolvedAt() *time.Time { return p.resolvedAt }
func (p *Problem) CreatedAt() time.Time   { return p.createdAt }
func (p *Problem) UpdatedAt() time.Time   { return p.updatedAt }

func (p *Problem) ChangeDescription(text string) error {
	if text == "" {
		return NewBlockingViolation("problem description must not be empty")
	}
	p.description = text
	return nil
}

// ChangeStatus moves the problem through triage. The resolution date tracks
// the resolved status both ways so a reopened problem shows as unresolved.
func (p *Problem) ChangeStatus(status ProblemStatus, now time.Time) {
	p.status = status
	if status == ProblemResolved {
		d := clock.Midnight(now)
		p.resolvedAt = &d
		return
	}
	p.resolvedAt = nil
}
