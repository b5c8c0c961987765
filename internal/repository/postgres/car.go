package postgres

import (
	"context"
	"database/sql"
	"time"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/repository"
)

type carRepository struct {
	db DBTX
}

func NewCarRepository(db DBTX) repository.CarRepository {
	return &carRepository{db: db}
}

const carColumns = `id, host_id, brand, car_type, model, year, transmission, fuel_type, seats, price_per_day_cents, location, description, image_path, status, created_on`

func scanCar(row interface{ Scan(...any) error }) (*domain.Car, error) {
	c := &domain.Car{}
	var description sql.NullString
	var createdOn time.Time
	err := row.Scan(&c.ID, &c.HostID, &c.Brand, &c.CarType, &c.Model, &c.Year, &c.Transmission,
		&c.FuelType, &c.Seats, &c.PricePerDayCents, &c.Location, &description, &c.ImagePath,
		&c.Status, &createdOn)
	if err != nil {
		return nil, err
	}
	c.Description = description.String
	c.CreatedOn = createdOn.UTC().Format(time.RFC3339)
	return c, nil
}

func (r *carRepository) Create(ctx context.Context, c *domain.Car) error {
	query := `INSERT INTO cars (host_id, brand, car_type, model, year, transmission, fuel_type, seats, price_per_day_cents, location, description, image_path, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14) RETURNING id`
	now := time.Now().UTC()
	err := r.db.QueryRowContext(ctx, query, c.HostID, c.Brand, c.CarType, c.Model, c.Year,
		c.Transmission, c.FuelType, c.Seats, c.PricePerDayCents, c.Location,
		nullIfEmpty(c.Description), c.ImagePath, c.Status, now).Scan(&c.ID)
	if err != nil {
		return wrapError(err)
	}
	c.CreatedOn = now.Format(time.RFC3339)
	return nil
}

func (r *carRepository) GetByID(ctx context.Context, id int32) (*domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = $1`
	c, err := scanCar(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("car", id)
	}
	if err != nil {
		return nil, wrapError(err)
	}
	return c, nil
}

func (r *carRepository) GetWithHost(ctx context.Context, id int32) (*domain.Car, error) {
	query := `SELECT c.id, c.host_id, c.brand, c.car_type, c.model, c.year, c.transmission, c.fuel_type,
	                 c.seats, c.price_per_day_cents, c.location, c.description, c.image_path, c.status, c.created_on,
	                 u.id, u.name, u.email, u.role
	          FROM cars c JOIN users u ON u.id = c.host_id WHERE c.id = $1`
	c := &domain.Car{}
	host := &domain.User{}
	var description sql.NullString
	var createdOn time.Time
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.HostID, &c.Brand, &c.CarType, &c.Model, &c.Year, &c.Transmission, &c.FuelType,
		&c.Seats, &c.PricePerDayCents, &c.Location, &description, &c.ImagePath, &c.Status, &createdOn,
		&host.ID, &host.Name, &host.Email, &host.Role)
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("car", id)
	}
	if err != nil {
		return nil, wrapError(err)
	}
	c.Description = description.String
	c.CreatedOn = createdOn.UTC().Format(time.RFC3339)
	c.Host = host
	return c, nil
}

func (r *carRepository) Update(ctx context.Context, c *domain.Car) error {
	// host_id, brand, car_type, model and year are immutable after creation.
	query := `UPDATE cars SET price_per_day_cents=$1, location=$2, description=$3, image_path=$4, status=$5 WHERE id=$6`
	res, err := r.db.ExecContext(ctx, query, c.PricePerDayCents, c.Location,
		nullIfEmpty(c.Description), c.ImagePath, c.Status, c.ID)
	if err != nil {
		return wrapError(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewNotFoundError("car", c.ID)
	}
	return nil
}

func (r *carRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		return wrapError(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewNotFoundError("car", id)
	}
	return nil
}

func (r *carRepository) ListByHost(ctx context.Context, hostID int32) ([]domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE host_id = $1 ORDER BY created_on DESC`
	return r.list(ctx, query, hostID)
}

func (r *carRepository) ListApproved(ctx context.Context) ([]domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE status = $1 ORDER BY created_on DESC`
	return r.list(ctx, query, domain.CarStatusApproved)
}

func (r *carRepository) ListPending(ctx context.Context) ([]domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE status = $1 ORDER BY created_on DESC`
	return r.list(ctx, query, domain.CarStatusPending)
}

func (r *carRepository) list(ctx context.Context, query string, args ...any) ([]domain.Car, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapError(err)
	}
	defer rows.Close()

	var cars []domain.Car
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, wrapError(err)
		}
		cars = append(cars, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError(err)
	}
	return cars, nil
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
