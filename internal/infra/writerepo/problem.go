package writerepo

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"campsite-booking/internal/domain/booking"
	"campsite-booking/internal/infra"
	"campsite-booking/internal/pkg/pgconv"
)

type ProblemRepository struct{}

func NewProblemRepository() *ProblemRepository {
	return &ProblemRepository{}
}

func (r *ProblemRepository) Create(ctx context.Context, tx pgx.Tx, p *booking.Problem) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO booking_problems (id, booking_id, description, status, resolved_at)
		VALUES ($1, $2, $3, $4, $5)`,
		pgconv.UUIDToPgtype(p.ID()), pgconv.UUIDToPgtype(p.BookingID()),
		p.Description(), p.Status().String(), pgconv.DatePtrToPgtype(p.ResolvedAt()))
	if err != nil {
		return classifyWriteErr("failed to create problem", err)
	}
	return nil
}

func (r *ProblemRepository) Update(ctx context.Context, tx pgx.Tx, p *booking.Problem) error {
	tag, err := tx.Exec(ctx, `
		UPDATE booking_problems SET
			description = $2, status = $3, resolved_at = $4, updated_at = now()
		WHERE id = $1`,
		pgconv.UUIDToPgtype(p.ID()), p.Description(), p.Status().String(),
		pgconv.DatePtrToPgtype(p.ResolvedAt()))
	if err != nil {
		return classifyWriteErr("failed to update problem", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("problem not found", nil, infra.KindNotFound)
	}
	return nil
}

// FindByIDForUpdate loads the problem under a row lock so concurrent status
// changes serialize.
func (r *ProblemRepository) FindByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*booking.Problem, error) {
	var (
		bookingID   uuid.UUID
		description string
		status      string
		resolvedAt  pgtype.Date
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)
	err := tx.QueryRow(ctx, `
		SELECT booking_id, description, status, resolved_at, created_at, updated_at
		FROM booking_problems
		WHERE id = $1
		FOR UPDATE`, id).
		Scan(&bookingID, &description, &status, &resolvedAt, &createdAt, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("problem not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find problem for update", err)
	}

	statusValue, err := booking.NewProblemStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid problem status value", err)
	}

	return booking.ReconstructProblem(
		id, bookingID,
		description,
		statusValue,
		pgconv.DatePtrFromPgtype(resolvedAt),
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt),
	), nil
}
