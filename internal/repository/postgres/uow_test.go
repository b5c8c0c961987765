package postgres_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/repository/postgres"
)

func TestStore_UnitOfWork(t *testing.T) {
	ctx := context.Background()

	t.Run("Complete commits", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()

		store := postgres.NewStore(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE bookings SET status").
			WithArgs(domain.BookingStatusApproved, int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		uow, err := store.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Release()

		err = uow.Bookings().Update(ctx, &domain.Booking{ID: 1, Status: domain.BookingStatusApproved})
		assert.NoError(t, err)
		assert.NoError(t, uow.Complete(ctx))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Release without Complete rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()

		store := postgres.NewStore(db)

		mock.ExpectBegin()
		mock.ExpectRollback()

		uow, err := store.Begin(ctx)
		assert.NoError(t, err)
		uow.Release()
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Serializable isolation requested", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()

		store := postgres.NewStore(db)

		mock.ExpectBegin()
		mock.ExpectRollback()

		uow, err := store.BeginSerializable(ctx)
		assert.NoError(t, err)
		uow.Release()
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
