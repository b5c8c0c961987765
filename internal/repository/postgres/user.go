package postgres

import (
	"context"
	"database/sql"
	"time"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/repository"
)

// userRepository is a read-only adapter over the account directory's
// users table. Account creation and credentials live outside this service.
type userRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	query := `SELECT id, name, email, role, created_on FROM users WHERE id = $1`
	u, err := r.scan(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("user", id)
	}
	if err != nil {
		return nil, wrapError(err)
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, name, email, role, created_on FROM users WHERE email = $1`
	u, err := r.scan(r.db.QueryRowContext(ctx, query, email))
	if err == sql.ErrNoRows {
		return nil, domain.NewNotFoundError("user", 0)
	}
	if err != nil {
		return nil, wrapError(err)
	}
	return u, nil
}

func (r *userRepository) scan(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	var createdOn time.Time
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &createdOn); err != nil {
		return nil, err
	}
	u.CreatedOn = createdOn.UTC().Format(time.RFC3339)
	return u, nil
}
