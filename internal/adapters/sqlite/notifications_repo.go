package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/animemax/animemax-server/internal/domain"
)

type NotificationsRepository struct {
	db *sql.DB
}

func NewNotificationsRepository(db *sql.DB) *NotificationsRepository {
	return &NotificationsRepository{db: db}
}

func (r *NotificationsRepository) Subscribe(ctx context.Context, sub domain.NotificationSubscription) error {
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notification_subs(user_id, media_id, title, provider, provider_media_id, last_notified, created_at)
		VALUES(?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, media_id) DO NOTHING
	`, sub.UserID, sub.MediaID, sub.Title, sub.Provider, sub.ProviderMediaID, sub.LastNotified, sub.CreatedAt.UTC().Format(time.RFC3339))
	return err
}

func (r *NotificationsRepository) Unsubscribe(ctx context.Context, userID string, mediaID int) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM notification_subs WHERE user_id = ? AND media_id = ?
	`, userID, mediaID)
	return err
}

func (r *NotificationsRepository) ListSubscriptions(ctx context.Context, userID string) ([]domain.NotificationSubscription, error) {
	return r.querySubscriptions(ctx, `
		SELECT user_id, media_id, title, provider, provider_media_id, last_notified, created_at
		FROM notification_subs WHERE user_id = ? ORDER BY created_at DESC
	`, userID)
}

func (r *NotificationsRepository) AllSubscriptions(ctx context.Context, limit int) ([]domain.NotificationSubscription, error) {
	if limit <= 0 {
		limit = 50
	}
	return r.querySubscriptions(ctx, `
		SELECT user_id, media_id, title, provider, provider_media_id, last_notified, created_at
		FROM notification_subs ORDER BY created_at LIMIT ?
	`, limit)
}

func (r *NotificationsRepository) querySubscriptions(ctx context.Context, query string, args ...any) ([]domain.NotificationSubscription, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.NotificationSubscription{}
	for rows.Next() {
		var sub domain.NotificationSubscription
		var created string
		if err := rows.Scan(&sub.UserID, &sub.MediaID, &sub.Title, &sub.Provider, &sub.ProviderMediaID, &sub.LastNotified, &created); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			sub.CreatedAt = t
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

func (r *NotificationsRepository) SetLastNotified(ctx context.Context, userID string, mediaID int, episode int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE notification_subs SET last_notified = ? WHERE user_id = ? AND media_id = ? AND last_notified < ?
	`, episode, userID, mediaID, episode)
	return err
}

func (r *NotificationsRepository) AddNotifications(ctx context.Context, notifs []domain.Notification) error {
	if len(notifs) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, n := range notifs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO notifications(id, user_id, media_id, title, episode_number, read, created_at)
			VALUES(?, ?, ?, ?, ?, 0, ?)
		`, n.ID, n.UserID, n.MediaID, n.Title, n.EpisodeNumber, n.CreatedAt.UTC().Format(time.RFC3339)); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (r *NotificationsRepository) ListNotifications(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	query := `
		SELECT id, user_id, media_id, title, episode_number, read, created_at
		FROM notifications WHERE user_id = ?`
	if unreadOnly {
		query += ` AND read = 0`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Notification{}
	for rows.Next() {
		var n domain.Notification
		var read int
		var created string
		if err := rows.Scan(&n.ID, &n.UserID, &n.MediaID, &n.Title, &n.EpisodeNumber, &read, &created); err != nil {
			return nil, err
		}
		n.Read = read != 0
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			n.CreatedAt = t
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *NotificationsRepository) MarkNotificationsRead(ctx context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		_, err := r.db.ExecContext(ctx, `UPDATE notifications SET read = 1 WHERE user_id = ?`, userID)
		return err
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, 0, len(ids)+1)
	args = append(args, userID)
	for _, id := range ids {
		args = append(args, id)
	}
	_, err := r.db.ExecContext(ctx, `UPDATE notifications SET read = 1 WHERE user_id = ? AND id IN (`+placeholders+`)`, args...)
	return err
}
