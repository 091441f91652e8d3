package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/firesafetykz/portal/internal/domain"
	"github.com/firesafetykz/portal/internal/repository"
)

// NotificationRepository implements repository.Notification for PostgreSQL
type NotificationRepository struct {
	db *pgxpool.Pool
}

var _ repository.Notification = (*NotificationRepository)(nil)

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

const notificationColumns = `notification_id, user_id, kind, title, message, payload, is_read, created_at`

// CreateNotification inserts n as unread
func (r *NotificationRepository) CreateNotification(ctx context.Context, n *domain.Notification) error {
	var payload []byte
	if len(n.Payload) > 0 {
		payload = n.Payload
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO notifications (notification_id, user_id, kind, title, message, payload, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, $7)`,
		n.ID, n.UserID, string(n.Kind), n.Title, n.Message, payload, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertNotification, err)
	}
	n.IsRead = false
	return nil
}

// ListNotifications returns the user's notifications, newest first
func (r *NotificationRepository) ListNotifications(ctx context.Context, filter domain.NotificationFilter) ([]domain.Notification, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+notificationColumns+`
		FROM notifications
		WHERE user_id = $1 AND (NOT $2 OR NOT is_read)
		ORDER BY created_at DESC, notification_id
		LIMIT $3`,
		filter.UserID, filter.UnreadOnly, filter.Limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListNotifications, err)
	}

	list, err := pgx.CollectRows(rows, scanNotification)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanNotification, err)
	}
	return list, nil
}

// CountUnread returns how many of the user's notifications are unread
func (r *NotificationRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT is_read`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCountUnread, err)
	}
	return count, nil
}

// MarkRead flags one notification as read. Marking an already read notification succeeds.
func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE notification_id = $1`, id)
	if err != nil {
		if isNotFound(err) {
			return domain.ErrNotificationNotFound
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarkRead, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead flags every unread notification of the user and returns how many changed
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND NOT is_read`, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToMarkAllRead, err)
	}
	return tag.RowsAffected(), nil
}

// DeleteNotification removes one notification
func (r *NotificationRepository) DeleteNotification(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM notifications WHERE notification_id = $1`, id)
	if err != nil {
		if isNotFound(err) {
			return domain.ErrNotificationNotFound
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteNotification, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

func scanNotification(row pgx.CollectableRow) (domain.Notification, error) {
	var (
		n       domain.Notification
		kind    string
		payload []byte
	)
	if err := row.Scan(&n.ID, &n.UserID, &kind, &n.Title, &n.Message, &payload, &n.IsRead, &n.CreatedAt); err != nil {
		return domain.Notification{}, err
	}
	n.Kind = domain.FrameType(kind)
	if len(payload) > 0 {
		n.Payload = payload
	}
	n.CreatedAt = n.CreatedAt.UTC()
	return n, nil
}
