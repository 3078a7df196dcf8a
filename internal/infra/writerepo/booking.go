package writerepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"campsite-booking/internal/domain/booking"
	"campsite-booking/internal/domain/site"
	"campsite-booking/internal/infra"
	"campsite-booking/internal/pkg/pgconv"
)

const pgErrCodeForeignKeyViolation = "23503"

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

func (r *BookingRepository) Create(ctx context.Context, tx pgx.Tx, b *booking.Booking) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO bookings (
			id, customer_id, site_id, headcount, start_date, end_date,
			equipment, service, discount, deposit_date, payment_date,
			canceled, bill
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		pgconv.UUIDToPgtype(b.ID()), pgconv.UUIDToPgtype(b.CustomerID()),
		pgconv.UUIDPtrToPgtype(b.SiteID()), b.Headcount(),
		pgconv.DatePtrToPgtype(b.StartDate()), pgconv.DatePtrToPgtype(b.EndDate()),
		b.Equipment().String(), b.Service().String(), b.Discount().String(),
		pgconv.DatePtrToPgtype(b.DepositDate()), pgconv.DatePtrToPgtype(b.PaymentDate()),
		b.Canceled(), b.Bill())
	if err != nil {
		return classifyWriteErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) Update(ctx context.Context, tx pgx.Tx, b *booking.Booking) error {
	tag, err := tx.Exec(ctx, `
		UPDATE bookings SET
			site_id = $2, headcount = $3, start_date = $4, end_date = $5,
			equipment = $6, service = $7, discount = $8,
			deposit_date = $9, payment_date = $10,
			canceled = $11, bill = $12, updated_at = now()
		WHERE id = $1`,
		pgconv.UUIDToPgtype(b.ID()), pgconv.UUIDPtrToPgtype(b.SiteID()), b.Headcount(),
		pgconv.DatePtrToPgtype(b.StartDate()), pgconv.DatePtrToPgtype(b.EndDate()),
		b.Equipment().String(), b.Service().String(), b.Discount().String(),
		pgconv.DatePtrToPgtype(b.DepositDate()), pgconv.DatePtrToPgtype(b.PaymentDate()),
		b.Canceled(), b.Bill())
	if err != nil {
		return classifyWriteErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

// FindByIDForUpdate loads the booking under a row lock so concurrent
// mutations of the same booking serialize.
func (r *BookingRepository) FindByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*booking.Booking, error) {
	var (
		customerID  uuid.UUID
		siteID      pgtype.UUID
		headcount   int32
		startDate   pgtype.Date
		endDate     pgtype.Date
		equipment   string
		service     string
		discount    string
		depositDate pgtype.Date
		paymentDate pgtype.Date
		canceled    bool
		bill        []byte
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)
	err := tx.QueryRow(ctx, `
		SELECT customer_id, site_id, headcount, start_date, end_date,
		       equipment, service, discount, deposit_date, payment_date,
		       canceled, bill, created_at, updated_at
		FROM bookings
		WHERE id = $1
		FOR UPDATE`, id).
		Scan(&customerID, &siteID, &headcount, &startDate, &endDate,
			&equipment, &service, &discount, &depositDate, &paymentDate,
			&canceled, &bill, &createdAt, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking for update", err)
	}

	equipmentValue, err := site.NewEquipment(equipment)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid equipment value", err)
	}
	serviceValue, err := site.NewService(service)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid service value", err)
	}
	discountValue, err := booking.NewDiscount(discount)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid discount value", err)
	}

	return booking.ReconstructBooking(
		id, customerID,
		pgconv.UUIDPtrFromPgtype(siteID),
		int(headcount),
		pgconv.DatePtrFromPgtype(startDate), pgconv.DatePtrFromPgtype(endDate),
		equipmentValue, serviceValue, discountValue,
		pgconv.DatePtrFromPgtype(depositDate), pgconv.DatePtrFromPgtype(paymentDate),
		canceled, bill,
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt),
	), nil
}

func classifyWriteErr(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgErrCodeForeignKeyViolation {
		return infra.WrapRepoErr(msg, err, infra.KindForeignKeyViolated)
	}
	return infra.WrapRepoErr(msg, err)
}
