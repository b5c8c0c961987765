package postgres

import (
	"context"
	"database/sql"

	"driveshare-backend/internal/repository"
)

// unitOfWork binds the repositories to one transaction. It is scoped to a
// single inbound operation and must be released on every exit path.
type unitOfWork struct {
	tx   *sql.Tx
	done bool
}

func (u *unitOfWork) Cars() repository.CarRepository {
	return NewCarRepository(u.tx)
}

func (u *unitOfWork) Bookings() repository.BookingRepository {
	return NewBookingRepository(u.tx)
}

func (u *unitOfWork) Notifications() repository.NotificationRepository {
	return NewNotificationRepository(u.tx)
}

// Complete commits every buffered change or none. Serialization and
// constraint failures surface as conflict errors.
func (u *unitOfWork) Complete(ctx context.Context) error {
	if u.done {
		return nil
	}
	u.done = true
	if err := u.tx.Commit(); err != nil {
		return wrapError(err)
	}
	return nil
}

// Release rolls back if Complete was never reached. Safe to call after a
// successful commit.
func (u *unitOfWork) Release() {
	if !u.done {
		u.done = true
		_ = u.tx.Rollback()
	}
}
