package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/quintal/roomdesk/internal/domain"
)

// BookingRepository persists bookings and applies package inventory
// adjustments. All mutating methods are expected to run inside WithTx.
type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

func (r *BookingRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

// GetPackageForUpdate locks the package row so the remaining_units read
// stays valid until the surrounding transaction commits.
func (r *BookingRepository) GetPackageForUpdate(ctx context.Context, packageID string) (domain.Package, error) {
	const query = `
SELECT id, event_id, hotel_id, room_type, check_in, check_out, price, total_units, remaining_units
FROM packages
WHERE id = $1
FOR UPDATE`

	var p domain.Package
	err := r.queryRow(ctx, query, packageID).Scan(
		&p.ID, &p.EventID, &p.HotelID, &p.RoomType, &p.CheckIn, &p.CheckOut,
		&p.Price, &p.TotalUnits, &p.RemainingUnits,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Package{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Package{}, domain.ErrPackageNotFound
		}
		return domain.Package{}, fmt.Errorf("get package for update: %w", err)
	}
	return p, nil
}

// SetRemainingUnits writes the counter computed by the service under the
// row lock. The schema CHECK constraint backstops the 0..total_units range.
func (r *BookingRepository) SetRemainingUnits(ctx context.Context, packageID string, units int) error {
	const stmt = `UPDATE packages SET remaining_units = $2 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, packageID, units)
	if err != nil {
		return fmt.Errorf("set remaining units: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPackageNotFound
	}
	return nil
}

func (r *BookingRepository) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM bookings WHERE reference = $1)`

	var exists bool
	if err := r.queryRow(ctx, query, reference).Scan(&exists); err != nil {
		return false, fmt.Errorf("check reference: %w", err)
	}
	return exists, nil
}

func (r *BookingRepository) CreateBooking(ctx context.Context, b domain.Booking) error {
	const stmt = `
INSERT INTO bookings (id, package_id, reference, guest_name, guest_email, guest_phone, status, price, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)`

	_, err := r.exec(ctx, stmt,
		b.ID, b.PackageID, b.Reference,
		b.GuestName, b.GuestEmail, b.GuestPhone,
		b.Status, b.Price, b.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrReferenceConflict
		}
		if isForeignKeyViolation(err) {
			return domain.ErrPackageNotFound
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

// GetBookingForUpdate locks the booking row so a concurrent operator's
// transition cannot interleave with this one.
func (r *BookingRepository) GetBookingForUpdate(ctx context.Context, bookingID string) (domain.Booking, error) {
	return r.getBooking(ctx, bookingID, true)
}

func (r *BookingRepository) GetBooking(ctx context.Context, bookingID string) (domain.Booking, error) {
	return r.getBooking(ctx, bookingID, false)
}

func (r *BookingRepository) getBooking(ctx context.Context, bookingID string, forUpdate bool) (domain.Booking, error) {
	query := `
SELECT id, package_id, reference, guest_name, guest_email, guest_phone, status, price,
       refund_amount, refund_notes, refunded_at, created_at, updated_at
FROM bookings
WHERE id = $1`
	if forUpdate {
		query += `
FOR UPDATE`
	}

	var b domain.Booking
	var status string
	err := r.queryRow(ctx, query, bookingID).Scan(
		&b.ID, &b.PackageID, &b.Reference,
		&b.GuestName, &b.GuestEmail, &b.GuestPhone,
		&status, &b.Price,
		&b.RefundAmount, &b.RefundNotes, &b.RefundedAt,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Booking{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Booking{}, domain.ErrBookingNotFound
		}
		return domain.Booking{}, fmt.Errorf("get booking: %w", err)
	}
	b.Status = domain.BookingStatus(status)
	return b, nil
}

func (r *BookingRepository) UpdateBookingStatus(ctx context.Context, bookingID string, status domain.BookingStatus, now time.Time) error {
	const stmt = `UPDATE bookings SET status = $2, updated_at = $3 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, bookingID, status, now)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

// MarkRefunded flips the booking to refunded and records the refund
// fields in the same statement.
func (r *BookingRepository) MarkRefunded(ctx context.Context, bookingID string, amount decimal.Decimal, notes string, now time.Time) error {
	const stmt = `
UPDATE bookings
SET status = $2, refund_amount = $3, refund_notes = NULLIF($4, ''), refunded_at = $5, updated_at = $5
WHERE id = $1`

	tag, err := r.exec(ctx, stmt, bookingID, domain.StatusRefunded, amount, notes, now)
	if err != nil {
		return fmt.Errorf("mark refunded: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *BookingRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
