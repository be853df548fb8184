package ports

import (
	"context"

	"github.com/animemax/animemax-server/internal/domain"
)

// ProfileRepository persists per-user records as normalized per-item rows
// with field-level atomic inserts and deletes, so concurrent mutations to
// different items never overwrite each other.
type ProfileRepository interface {
	Get(ctx context.Context, userID string) (domain.Profile, error)
	Ensure(ctx context.Context, userID string) (domain.Profile, error)
	PutPreferences(ctx context.Context, userID string, prefs domain.Preferences) (domain.Profile, error)
	Delete(ctx context.Context, userID string) error

	AddBookmark(ctx context.Context, userID string, b domain.Bookmark) error
	RemoveBookmark(ctx context.Context, userID string, mediaID int) error
	ListBookmarks(ctx context.Context, userID string) ([]domain.Bookmark, error)

	PutKeepWatching(ctx context.Context, userID string, kw domain.KeepWatching) error
	ListKeepWatching(ctx context.Context, userID string) ([]domain.KeepWatching, error)

	AddWatchedEpisode(ctx context.Context, userID string, ep domain.WatchedEpisode) error
	RemoveWatchedEpisode(ctx context.Context, userID string, mediaID, episodeNumber int) error
	ListWatchedEpisodes(ctx context.Context, userID string, mediaID int) ([]domain.WatchedEpisode, error)

	AddReadChapter(ctx context.Context, userID string, ch domain.ReadChapter) error
	RemoveReadChapter(ctx context.Context, userID string, mediaID, chapterNumber int) error
	ListReadChapters(ctx context.Context, userID string, mediaID int) ([]domain.ReadChapter, error)

	AddStatusEntry(ctx context.Context, userID string, e domain.StatusEntry) error
	RemoveStatusEntry(ctx context.Context, userID string, status string, mediaID int) error
	ListStatusEntries(ctx context.Context, userID string, status string) ([]domain.StatusEntry, error)
}

// NotificationRepository persists new-episode subscriptions and the
// notifications derived from them.
type NotificationRepository interface {
	Subscribe(ctx context.Context, sub domain.NotificationSubscription) error
	Unsubscribe(ctx context.Context, userID string, mediaID int) error
	ListSubscriptions(ctx context.Context, userID string) ([]domain.NotificationSubscription, error)
	AllSubscriptions(ctx context.Context, limit int) ([]domain.NotificationSubscription, error)
	SetLastNotified(ctx context.Context, userID string, mediaID int, episode int) error

	AddNotifications(ctx context.Context, notifs []domain.Notification) error
	ListNotifications(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error)
	MarkNotificationsRead(ctx context.Context, userID string, ids []string) error
}
