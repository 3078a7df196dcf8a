//go:build unit

package commands

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campsite-booking/internal/domain/booking"
	"campsite-booking/internal/infra"
	"campsite-booking/internal/pkg/clock"
)

type fakeProblemRepo struct {
	problems map[uuid.UUID]*booking.Problem
}

func newFakeProblemRepo() *fakeProblemRepo {
	return &fakeProblemRepo{problems: map[uuid.UUID]*booking.Problem{}}
}

func (f *fakeProblemRepo) Create(_ context.Context, _ pgx.Tx, p *booking.Problem) error {
	f.problems[p.ID()] = cloneProblem(p)
	return nil
}

func (f *fakeProblemRepo) Update(_ context.Context, _ pgx.Tx, p *booking.Problem) error {
	if _, ok := f.problems[p.ID()]; !ok {
		return infra.WrapRepoErr("problem not found", nil, infra.KindNotFound)
	}
	f.problems[p.ID()] = cloneProblem(p)
	return nil
}

func (f *fakeProblemRepo) FindByIDForUpdate(_ context.Context, _ pgx.Tx, id uuid.UUID) (*booking.Problem, error) {
	p, ok := f.problems[id]
	if !ok {
		return nil, infra.WrapRepoErr("problem not found", nil, infra.KindNotFound)
	}
	return cloneProblem(p), nil
}

func cloneProblem(p *booking.Problem) *booking.Problem {
	return booking.ReconstructProblem(
		p.ID(), p.BookingID(),
		p.Description(), p.Status(), p.ResolvedAt(),
		p.CreatedAt(), p.UpdatedAt(),
	)
}

type problemFixture struct {
	commands ProblemCommands
	repo     *fakeProblemRepo
	bookings *fakeBookingRepo
	audit    *fakeAuditRepo
	clk      *clock.MockClock
}

func newProblemFixture(t *testing.T) *problemFixture {
	t.Helper()

	repo := newFakeProblemRepo()
	bookings := newFakeBookingRepo()
	audit := &fakeAuditRepo{}
	clk := clock.NewMockClock(time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC))

	return &problemFixture{
		commands: NewProblemCommands(&fakeTxRunner{}, repo, bookings, audit, clk),
		repo:     repo,
		bookings: bookings,
		audit:    audit,
		clk:      clk,
	}
}

func (f *problemFixture) seedProblem(t *testing.T, bookingID uuid.UUID, description string) uuid.UUID {
	t.Helper()
	p, err := booking.NewProblem(bookingID, description)
	require.NoError(t, err)
	f.repo.problems[p.ID()] = p
	return p.ID()
}

func TestReportProblem(t *testing.T) {
	t.Run("opens a problem and audits the report", func(t *testing.T) {
		f := newProblemFixture(t)
		b := booking.NewBooking(uuid.New())
		f.bookings.bookings[b.ID()] = b

		view, err := f.commands.ReportProblem(context.Background(), b.ID(), "shower drain blocked")
		require.NoError(t, err)

		assert.Equal(t, b.ID(), view.BookingID)
		assert.Equal(t, "shower drain blocked", view.Description)
		assert.Equal(t, "open", view.Status)
		assert.Nil(t, view.ResolvedAt)
		require.Len(t, f.repo.problems, 1)
		assert.Equal(t, []booking.EventKind{booking.EventAdd}, f.audit.kinds())
	})

	t.Run("unknown booking is rejected", func(t *testing.T) {
		f := newProblemFixture(t)

		_, err := f.commands.ReportProblem(context.Background(), uuid.New(), "broken latch")
		assert.ErrorIs(t, err, ErrBookingNotFound)
		assert.Empty(t, f.repo.problems)
	})

	t.Run("empty description is a blocking violation", func(t *testing.T) {
		f := newProblemFixture(t)
		b := booking.NewBooking(uuid.New())
		f.bookings.bookings[b.ID()] = b

		_, err := f.commands.ReportProblem(context.Background(), b.ID(), "")
		violation, ok := booking.AsConstraintViolation(err)
		require.True(t, ok)
		assert.False(t, violation.Recoverable)
	})
}

func TestUpdateProblem(t *testing.T) {
	t.Run("resolving stamps the resolution date", func(t *testing.T) {
		f := newProblemFixture(t)
		id := f.seedProblem(t, uuid.New(), "power outlet dead")

		status := booking.ProblemResolved
		view, err := f.commands.UpdateProblem(context.Background(), id, ProblemPatch{
			Status: &status,
		})
		require.NoError(t, err)

		assert.Equal(t, "resolved", view.Status)
		require.NotNil(t, view.ResolvedAt)
		assert.Equal(t, mustDate("2024-06-01"), *view.ResolvedAt)
		require.NotNil(t, f.repo.problems[id].ResolvedAt())
	})

	t.Run("reopening clears the resolution date", func(t *testing.T) {
		f := newProblemFixture(t)
		id := f.seedProblem(t, uuid.New(), "power outlet dead")

		resolved := booking.ProblemResolved
		_, err := f.commands.UpdateProblem(context.Background(), id, ProblemPatch{Status: &resolved})
		require.NoError(t, err)

		reopened := booking.ProblemInProgress
		view, err := f.commands.UpdateProblem(context.Background(), id, ProblemPatch{Status: &reopened})
		require.NoError(t, err)

		assert.Equal(t, "in_progress", view.Status)
		assert.Nil(t, view.ResolvedAt)
	})

	t.Run("description change is audited as a modification", func(t *testing.T) {
		f := newProblemFixture(t)
		id := f.seedProblem(t, uuid.New(), "power outlet dead")

		view, err := f.commands.UpdateProblem(context.Background(), id, ProblemPatch{
			Description: ptr("power outlet dead in block C"),
		})
		require.NoError(t, err)

		assert.Equal(t, "power outlet dead in block C", view.Description)
		assert.Equal(t, []booking.EventKind{booking.EventModify}, f.audit.kinds())
	})

	t.Run("unknown problem", func(t *testing.T) {
		f := newProblemFixture(t)

		_, err := f.commands.UpdateProblem(context.Background(), uuid.New(), ProblemPatch{})
		assert.ErrorIs(t, err, ErrProblemNotFound)
	})
}
