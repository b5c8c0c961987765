package postgres

import (
	"context"
	"database/sql"

	"driveshare-backend/internal/repository"

	_ "github.com/lib/pq"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx, so every repository can
// run against the shared pool or inside a unit of work.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.CarRepository
	repository.BookingRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		CarRepository:          NewCarRepository(db),
		BookingRepository:      NewBookingRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}

// Begin opens a unit of work with the default isolation level.
func (s *Store) Begin(ctx context.Context) (repository.UnitOfWork, error) {
	return s.begin(ctx, nil)
}

// BeginSerializable opens a unit of work whose reads and writes commit as
// one isolated unit. The booking-request path uses this so the overlap
// check and the insert cannot interleave with a concurrent request.
func (s *Store) BeginSerializable(ctx context.Context) (repository.UnitOfWork, error) {
	return s.begin(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
}

func (s *Store) begin(ctx context.Context, opts *sql.TxOptions) (repository.UnitOfWork, error) {
	tx, err := s.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, wrapError(err)
	}
	return &unitOfWork{tx: tx}, nil
}
