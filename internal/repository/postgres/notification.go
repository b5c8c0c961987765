package postgres

import (
	"context"
	"encoding/json"
	"time"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/repository"
)

type notificationRepository struct {
	db DBTX
}

func NewNotificationRepository(db DBTX) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	attrs, err := json.Marshal(n.Attributes)
	if err != nil {
		return domain.NewStorageError(err)
	}
	query := `INSERT INTO notifications (user_id, title, message, attributes, is_read, created_on)
	          VALUES ($1, $2, $3, $4, false, $5) RETURNING id`
	now := time.Now().UTC()
	if err := r.db.QueryRowContext(ctx, query, n.UserID, n.Title, n.Message, attrs, now).Scan(&n.ID); err != nil {
		return wrapError(err)
	}
	n.CreatedOn = now.Format(time.RFC3339)
	return nil
}

func (r *notificationRepository) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	var count int32
	countQuery := `SELECT count(*) FROM notifications WHERE user_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&count); err != nil {
		return nil, 0, wrapError(err)
	}

	query := `SELECT id, user_id, title, message, attributes, is_read, created_on
	          FROM notifications WHERE user_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, wrapError(err)
	}
	defer rows.Close()

	var notes []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var attrs []byte
		var createdOn time.Time
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &attrs, &n.IsRead, &createdOn); err != nil {
			return nil, 0, wrapError(err)
		}
		if len(attrs) > 0 {
			_ = json.Unmarshal(attrs, &n.Attributes)
		}
		n.CreatedOn = createdOn.UTC().Format(time.RFC3339)
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, wrapError(err)
	}
	return notes, count, nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id, userID int32) error {
	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return wrapError(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewNotFoundError("notification", id)
	}
	return nil
}
