package postgres

import (
	"context"
	"database/sql"
	"time"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/repository"
	"driveshare-backend/internal/utils"
)

type bookingRepository struct {
	db DBTX
}

func NewBookingRepository(db DBTX) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, car_id, renter_id, start_date, end_date, total_price_cents, status, created_on`

// terminalStatuses are excluded from overlap and liveness checks.
const terminalStatuses = `'REJECTED', 'CANCELLED', 'COMPLETED'`

func scanBooking(row interface{ Scan(...any) error }) (*domain.Booking, error) {
	b := &domain.Booking{}
	var start, end, createdOn time.Time
	err := row.Scan(&b.ID, &b.CarID, &b.RenterID, &start, &end, &b.TotalPriceCents, &b.Status, &createdOn)
	if err != nil {
		return nil, err
	}
	b.StartDate = start.Format(utils.DateLayout)
	b.EndDate = end.Format(utils.DateLayout)
	b.CreatedOn = createdOn.UTC().Format(time.RFC3339)
	return b, nil
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO bookings (car_id, renter_id, start_date, end_date, total_price_cents, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now().UTC()
	err := r.db.QueryRowContext(ctx, query, b.CarID, b.RenterID, b.StartDate, b.EndDate,
		b.TotalPriceCents, b.Status, now).Scan(&b.ID)
	if err != nil {
		return wrapError(err)
	}
	b.CreatedOn = now.Format(time.RFC3339)
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("booking", id)
	}
	if err != nil {
		return nil, wrapError(err)
	}
	return b, nil
}

func (r *bookingRepository) GetWithCar(ctx context.Context, id int32) (*domain.Booking, error) {
	query := `SELECT b.id, b.car_id, b.renter_id, b.start_date, b.end_date, b.total_price_cents, b.status, b.created_on,
	                 c.id, c.host_id, c.brand, c.car_type, c.model, c.year, c.transmission, c.fuel_type,
	                 c.seats, c.price_per_day_cents, c.location, c.description, c.image_path, c.status, c.created_on
	          FROM bookings b JOIN cars c ON c.id = b.car_id WHERE b.id = $1`
	b := &domain.Booking{}
	c := &domain.Car{}
	var start, end, bCreated, cCreated time.Time
	var description sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.CarID, &b.RenterID, &start, &end, &b.TotalPriceCents, &b.Status, &bCreated,
		&c.ID, &c.HostID, &c.Brand, &c.CarType, &c.Model, &c.Year, &c.Transmission, &c.FuelType,
		&c.Seats, &c.PricePerDayCents, &c.Location, &description, &c.ImagePath, &c.Status, &cCreated)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("booking", id)
	}
	if err != nil {
		return nil, wrapError(err)
	}
	b.StartDate = start.Format(utils.DateLayout)
	b.EndDate = end.Format(utils.DateLayout)
	b.CreatedOn = bCreated.UTC().Format(time.RFC3339)
	c.Description = description.String
	c.CreatedOn = cCreated.UTC().Format(time.RFC3339)
	b.Car = c
	return b, nil
}

func (r *bookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	// Dates, price and ownership are fixed at request time; only the
	// status moves through the lifecycle.
	query := `UPDATE bookings SET status = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, b.Status, b.ID)
	if err != nil {
		return wrapError(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewNotFoundError("booking", b.ID)
	}
	return nil
}

// HasOverlapping runs the closed-interval overlap test: an existing
// non-terminal booking conflicts when existing.end >= requested.start and
// existing.start <= requested.end. Touching endpoints count as overlap,
// so same-day back-to-back handoffs are refused.
func (r *bookingRepository) HasOverlapping(ctx context.Context, carID int32, startDate, endDate string) (bool, error) {
	query := `SELECT EXISTS (
	            SELECT 1 FROM bookings
	            WHERE car_id = $1
	              AND status NOT IN (` + terminalStatuses + `)
	              AND end_date >= $2 AND start_date <= $3)`
	var overlap bool
	if err := r.db.QueryRowContext(ctx, query, carID, startDate, endDate).Scan(&overlap); err != nil {
		return false, wrapError(err)
	}
	return overlap, nil
}

func (r *bookingRepository) CountNonTerminalByCar(ctx context.Context, carID int32) (int32, error) {
	query := `SELECT count(*) FROM bookings WHERE car_id = $1 AND status NOT IN (` + terminalStatuses + `)`
	var count int32
	if err := r.db.QueryRowContext(ctx, query, carID).Scan(&count); err != nil {
		return 0, wrapError(err)
	}
	return count, nil
}

func (r *bookingRepository) ListRequestsByHost(ctx context.Context, hostID int32) ([]domain.Booking, error) {
	query := `SELECT ` + joinedBookingColumns + `
	          FROM bookings b JOIN cars c ON c.id = b.car_id
	          WHERE c.host_id = $1 AND b.status = $2
	          ORDER BY b.created_on DESC`
	return r.listJoined(ctx, query, hostID, domain.BookingStatusRequested)
}

func (r *bookingRepository) ListConfirmedByHost(ctx context.Context, hostID int32) ([]domain.Booking, error) {
	query := `SELECT ` + joinedBookingColumns + `
	          FROM bookings b JOIN cars c ON c.id = b.car_id
	          WHERE c.host_id = $1 AND b.status IN ($2, $3)
	          ORDER BY b.start_date DESC`
	return r.listJoined(ctx, query, hostID, domain.BookingStatusApproved, domain.BookingStatusActive)
}

func (r *bookingRepository) ListByRenter(ctx context.Context, renterID int32) ([]domain.Booking, error) {
	query := `SELECT ` + joinedBookingColumns + `
	          FROM bookings b JOIN cars c ON c.id = b.car_id
	          WHERE b.renter_id = $1
	          ORDER BY b.created_on DESC`
	return r.listJoined(ctx, query, renterID)
}

const joinedBookingColumns = `b.id, b.car_id, b.renter_id, b.start_date, b.end_date, b.total_price_cents, b.status, b.created_on,
	                 c.id, c.host_id, c.brand, c.car_type, c.model, c.year, c.transmission, c.fuel_type,
	                 c.seats, c.price_per_day_cents, c.location, c.description, c.image_path, c.status, c.created_on`

func (r *bookingRepository) listJoined(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapError(err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b := domain.Booking{}
		c := domain.Car{}
		var start, end, bCreated, cCreated time.Time
		var description sql.NullString
		err := rows.Scan(
			&b.ID, &b.CarID, &b.RenterID, &start, &end, &b.TotalPriceCents, &b.Status, &bCreated,
			&c.ID, &c.HostID, &c.Brand, &c.CarType, &c.Model, &c.Year, &c.Transmission, &c.FuelType,
			&c.Seats, &c.PricePerDayCents, &c.Location, &description, &c.ImagePath, &c.Status, &cCreated)
		if err != nil {
			return nil, wrapError(err)
		}
		b.StartDate = start.Format(utils.DateLayout)
		b.EndDate = end.Format(utils.DateLayout)
		b.CreatedOn = bCreated.UTC().Format(time.RFC3339)
		c.Description = description.String
		c.CreatedOn = cCreated.UTC().Format(time.RFC3339)
		b.Car = &c
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError(err)
	}
	return bookings, nil
}
