package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quintal/roomdesk/internal/domain"
)

// CatalogRepository persists the hotels/events/packages admin surface.
type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

func (r *CatalogRepository) CreateHotel(ctx context.Context, hotel domain.Hotel) error {
	const stmt = `INSERT INTO hotels (id, name, city, created_at) VALUES ($1, $2, $3, $4)`

	_, err := r.pool.Exec(ctx, stmt, hotel.ID, hotel.Name, hotel.City, hotel.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create hotel: %w", err)
	}
	return nil
}

func (r *CatalogRepository) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	const query = `SELECT id, name, city, created_at FROM hotels ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list hotels: %w", err)
	}
	defer rows.Close()

	var hotels []domain.Hotel
	for rows.Next() {
		var h domain.Hotel
		if err := rows.Scan(&h.ID, &h.Name, &h.City, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan hotel: %w", err)
		}
		hotels = append(hotels, h)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate hotels: %w", rows.Err())
	}
	return hotels, nil
}

func (r *CatalogRepository) CreateEvent(ctx context.Context, event domain.Event) error {
	const stmt = `INSERT INTO events (id, name, starts_at) VALUES ($1, $2, $3)`

	_, err := r.pool.Exec(ctx, stmt, event.ID, event.Name, event.StartsAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (r *CatalogRepository) ListEvents(ctx context.Context) ([]domain.Event, error) {
	const query = `SELECT id, name, starts_at FROM events ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(&e.ID, &e.Name, &e.StartsAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate events: %w", rows.Err())
	}
	return events, nil
}

func (r *CatalogRepository) CreatePackage(ctx context.Context, pkg domain.Package) error {
	const stmt = `
INSERT INTO packages (id, event_id, hotel_id, room_type, check_in, check_out, price, total_units, remaining_units)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, stmt,
		pkg.ID, pkg.EventID, pkg.HotelID, pkg.RoomType,
		pkg.CheckIn, pkg.CheckOut, pkg.Price,
		pkg.TotalUnits, pkg.RemainingUnits,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isForeignKeyViolation(err) {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && strings.Contains(pgErr.ConstraintName, "hotel") {
				return domain.ErrHotelNotFound
			}
			return domain.ErrEventNotFound
		}
		return fmt.Errorf("create package: %w", err)
	}
	return nil
}

func (r *CatalogRepository) ListPackagesByEvent(ctx context.Context, eventID string) ([]domain.Package, error) {
	const existsQuery = `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`
	var exists bool
	if err := r.pool.QueryRow(ctx, existsQuery, eventID).Scan(&exists); err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("check event: %w", err)
	}
	if !exists {
		return nil, domain.ErrEventNotFound
	}

	const query = `
SELECT id, event_id, hotel_id, room_type, check_in, check_out, price, total_units, remaining_units
FROM packages
WHERE event_id = $1
ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	defer rows.Close()

	var packages []domain.Package
	for rows.Next() {
		var p domain.Package
		if err := rows.Scan(
			&p.ID, &p.EventID, &p.HotelID, &p.RoomType,
			&p.CheckIn, &p.CheckOut, &p.Price,
			&p.TotalUnits, &p.RemainingUnits,
		); err != nil {
			return nil, fmt.Errorf("scan package: %w", err)
		}
		packages = append(packages, p)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate packages: %w", rows.Err())
	}
	return packages, nil
}

func (r *CatalogRepository) GetPackage(ctx context.Context, packageID string) (domain.Package, error) {
	const query = `
SELECT id, event_id, hotel_id, room_type, check_in, check_out, price, total_units, remaining_units
FROM packages
WHERE id = $1`

	var p domain.Package
	err := r.pool.QueryRow(ctx, query, packageID).Scan(
		&p.ID, &p.EventID, &p.HotelID, &p.RoomType,
		&p.CheckIn, &p.CheckOut, &p.Price,
		&p.TotalUnits, &p.RemainingUnits,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Package{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Package{}, domain.ErrPackageNotFound
		}
		return domain.Package{}, fmt.Errorf("get package: %w", err)
	}
	return p, nil
}
