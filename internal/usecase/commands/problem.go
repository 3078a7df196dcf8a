package commands

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"campsite-booking/internal/domain/booking"
	"campsite-booking/internal/infra"
	"campsite-booking/internal/pkg/clock"
	"campsite-booking/internal/pkg/errs"
	"campsite-booking/internal/usecase/queries"
)

var ErrProblemNotFound = errs.New("problem not found")

// ProblemPatch carries the field changes of one problem update.
type ProblemPatch struct {
	Description *string
	Status      *booking.ProblemStatus
}

type ProblemCommands interface {
	ReportProblem(ctx context.Context, bookingID uuid.UUID, description string) (*queries.ProblemView, error)
	UpdateProblem(ctx context.Context, id uuid.UUID, patch ProblemPatch) (*queries.ProblemView, error)
}

type problemCommandsImpl struct {
	tx       TxRunner
	problems ProblemRepository
	bookings BookingRepository
	audit    AuditRepository
	clock    clock.Clock
}

func NewProblemCommands(
	tx TxRunner,
	problems ProblemRepository,
	bookings BookingRepository,
	audit AuditRepository,
	clk clock.Clock,
) ProblemCommands {
	return &problemCommandsImpl{
		tx:       tx,
		problems: problems,
		bookings: bookings,
		audit:    audit,
		clock:    clk,
	}
}

// ReportProblem opens a new problem against the booking. The report lands on
// the booking's audit feed in the same transaction.
func (c *problemCommandsImpl) ReportProblem(ctx context.Context, bookingID uuid.UUID, description string) (*queries.ProblemView, error) {
	p, err := booking.NewProblem(bookingID, description)
	if err != nil {
		return nil, err
	}

	err = c.tx.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := c.bookings.FindByIDForUpdate(ctx, tx, bookingID); err != nil {
			return c.mapRepoErr(err, ErrBookingNotFound)
		}
		if err := c.problems.Create(ctx, tx, p); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return c.audit.Append(ctx, tx, booking.ChangeEvent{
			Kind:      booking.EventAdd,
			BookingID: bookingID,
			Message:   "problem reported",
		})
	})
	if err != nil {
		return nil, err
	}

	return queries.BuildProblemView(p), nil
}

// UpdateProblem applies a description or status change. Moving the status to
// resolved stamps today as the resolution date.
func (c *problemCommandsImpl) UpdateProblem(ctx context.Context, id uuid.UUID, patch ProblemPatch) (*queries.ProblemView, error) {
	var p *booking.Problem

	err := c.tx.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		p, err = c.problems.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return c.mapRepoErr(err, ErrProblemNotFound)
		}

		var events []booking.ChangeEvent

		if patch.Description != nil {
			if err := p.ChangeDescription(*patch.Description); err != nil {
				return err
			}
			events = append(events, modifyEvent(p.BookingID(), "problem description updated"))
		}
		if patch.Status != nil {
			p.ChangeStatus(*patch.Status, c.clock.Now())
			events = append(events, modifyEvent(p.BookingID(), "problem status changed to "+patch.Status.String()))
		}

		if err := c.problems.Update(ctx, tx, p); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		for _, event := range events {
			if err := c.audit.Append(ctx, tx, event); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return queries.BuildProblemView(p), nil
}

func (c *problemCommandsImpl) mapRepoErr(err error, notFound error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return notFound
	}
	return errs.Mark(err, ErrDatabaseOperationFailed)
}
