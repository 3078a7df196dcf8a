package readstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"campsite-booking/internal/infra"
	"campsite-booking/internal/pkg/pgconv"
	"campsite-booking/internal/usecase/queries"
)

const bookingSelectColumns = `
	b.id, b.customer_id,
	c.first_name || ' ' || c.last_name,
	c.phone,
	b.site_id, s.name, s.daily_rate, s.surface, s.allowed_equipment, s.provided_service,
	b.headcount, b.start_date, b.end_date,
	b.equipment, b.service, b.discount,
	b.deposit_date, b.payment_date,
	b.canceled, b.bill IS NOT NULL,
	b.created_at, b.updated_at`

const bookingSelectFrom = `
	FROM bookings b
	JOIN customers c ON c.id = b.customer_id
	LEFT JOIN sites s ON s.id = b.site_id`

type BookingReadStore struct {
	pool *pgxpool.Pool
}

func NewBookingReadStore(pool *pgxpool.Pool) *BookingReadStore {
	return &BookingReadStore{pool: pool}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingRecord, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT`+bookingSelectColumns+bookingSelectFrom+` WHERE b.id = $1`, id)

	record, err := scanBookingRecord(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return record, nil
}

func (r *BookingReadStore) List(ctx context.Context) ([]*queries.BookingRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT`+bookingSelectColumns+bookingSelectFrom+` ORDER BY b.start_date NULLS LAST, b.created_at`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	return collectBookingRecords(rows)
}

func (r *BookingReadStore) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*queries.BookingRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT`+bookingSelectColumns+bookingSelectFrom+`
		 WHERE b.customer_id = $1
		 ORDER BY b.start_date NULLS LAST, b.created_at`, customerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by customer", err)
	}
	defer rows.Close()

	return collectBookingRecords(rows)
}

func (r *BookingReadStore) FindBill(ctx context.Context, id uuid.UUID) ([]byte, error) {
	var bill []byte
	err := r.pool.QueryRow(ctx, `SELECT bill FROM bookings WHERE id = $1`, id).Scan(&bill)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find bill", err)
	}
	if bill == nil {
		return nil, infra.WrapRepoErr("bill not generated", nil, infra.KindNotFound)
	}
	return bill, nil
}

// HasActiveOverlap reports whether any live booking other than the excluded
// one intersects [start,end] on the site. Both bounds count as occupied
// nights, so touching ranges collide.
func (r *BookingReadStore) HasActiveOverlap(ctx context.Context, siteID uuid.UUID, start, end time.Time, excludeBookingID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE site_id = $1
			  AND NOT canceled
			  AND start_date IS NOT NULL AND end_date IS NOT NULL
			  AND start_date <= $3 AND $2 <= end_date
			  AND id <> $4
		)`, siteID, start, end, excludeBookingID).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check booking overlap", err)
	}
	return exists, nil
}

func scanBookingRecord(row pgx.Row) (*queries.BookingRecord, error) {
	var (
		record      queries.BookingRecord
		siteID      pgtype.UUID
		siteName    pgtype.Text
		dailyRate   pgtype.Int4
		surface     pgtype.Int4
		allowed     pgtype.Text
		provided    pgtype.Text
		startDate   pgtype.Date
		endDate     pgtype.Date
		depositDate pgtype.Date
		paymentDate pgtype.Date
	)
	err := row.Scan(
		&record.ID, &record.CustomerID,
		&record.CustomerName, &record.CustomerPhone,
		&siteID, &siteName, &dailyRate, &surface, &allowed, &provided,
		&record.Headcount, &startDate, &endDate,
		&record.Equipment, &record.Service, &record.Discount,
		&depositDate, &paymentDate,
		&record.Canceled, &record.HasBill,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.SiteID = pgconv.UUIDPtrFromPgtype(siteID)
	record.SiteName = pgconv.StringPtrFromPgtype(siteName)
	record.SiteDailyRate = pgconv.Int32PtrFromPgtype(dailyRate)
	record.SiteSurface = pgconv.Int32PtrFromPgtype(surface)
	record.SiteAllowedEquipment = pgconv.StringPtrFromPgtype(allowed)
	record.SiteProvidedService = pgconv.StringPtrFromPgtype(provided)
	record.StartDate = pgconv.DatePtrFromPgtype(startDate)
	record.EndDate = pgconv.DatePtrFromPgtype(endDate)
	record.DepositDate = pgconv.DatePtrFromPgtype(depositDate)
	record.PaymentDate = pgconv.DatePtrFromPgtype(paymentDate)
	return &record, nil
}

func collectBookingRecords(rows pgx.Rows) ([]*queries.BookingRecord, error) {
	var records []*queries.BookingRecord
	for rows.Next() {
		record, err := scanBookingRecord(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking rows", err)
	}
	return records, nil
}
