package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/animemax/animemax-server/internal/domain"
	"github.com/animemax/animemax-server/internal/ports"
)

// ProfileRepository stores each user collection as per-item rows. Inserts
// use ON CONFLICT DO NOTHING so re-adding an item is a no-op and two
// concurrent writers can never lose each other's items.
type ProfileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Get(ctx context.Context, userID string) (domain.Profile, error) {
	var p domain.Profile
	var prefsJSON []byte
	var created, updated string
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, display_name, prefs_json, created_at, updated_at
		FROM profiles WHERE user_id = ?
	`, userID).Scan(&p.UserID, &p.DisplayName, &prefsJSON, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Profile{}, ports.ErrNotFound
		}
		return domain.Profile{}, err
	}
	if err := json.Unmarshal(prefsJSON, &p.Preferences); err != nil {
		// Corrupted prefs fall back to defaults rather than failing reads.
		p.Preferences = domain.DefaultPreferences()
	}
	if t, err := time.Parse(time.RFC3339, created); err == nil {
		p.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updated); err == nil {
		p.UpdatedAt = t
	}
	return p, nil
}

func (r *ProfileRepository) Ensure(ctx context.Context, userID string) (domain.Profile, error) {
	b, err := json.Marshal(domain.DefaultPreferences())
	if err != nil {
		return domain.Profile{}, err
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO profiles(user_id, display_name, prefs_json, created_at, updated_at)
		VALUES(?, '', ?, ?, ?)
		ON CONFLICT(user_id) DO NOTHING
	`, userID, b, now, now)
	if err != nil {
		return domain.Profile{}, err
	}
	return r.Get(ctx, userID)
}

func (r *ProfileRepository) PutPreferences(ctx context.Context, userID string, prefs domain.Preferences) (domain.Profile, error) {
	b, err := json.Marshal(prefs)
	if err != nil {
		return domain.Profile{}, err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE profiles SET prefs_json = ?, updated_at = ? WHERE user_id = ?
	`, b, time.Now().UTC().Format(time.RFC3339), userID)
	if err != nil {
		return domain.Profile{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.Profile{}, ports.ErrNotFound
	}
	return r.Get(ctx, userID)
}

func (r *ProfileRepository) Delete(ctx context.Context, userID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, table := range []string{
		"bookmarks", "keep_watching", "watched_episodes", "read_chapters",
		"status_entries", "notification_subs", "notifications", "profiles",
	} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE user_id = ?`, userID); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (r *ProfileRepository) AddBookmark(ctx context.Context, userID string, b domain.Bookmark) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO bookmarks(user_id, media_id, title, format, cover_url, added_at)
		VALUES(?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, media_id) DO NOTHING
	`, userID, b.MediaID, b.Title, b.Format, b.CoverURL, b.AddedAt.UTC().Format(time.RFC3339))
	return err
}

func (r *ProfileRepository) RemoveBookmark(ctx context.Context, userID string, mediaID int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE user_id = ? AND media_id = ?`, userID, mediaID)
	return err
}

func (r *ProfileRepository) ListBookmarks(ctx context.Context, userID string) ([]domain.Bookmark, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT media_id, title, format, cover_url, added_at
		FROM bookmarks WHERE user_id = ? ORDER BY added_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Bookmark{}
	for rows.Next() {
		var b domain.Bookmark
		var added string
		if err := rows.Scan(&b.MediaID, &b.Title, &b.Format, &b.CoverURL, &added); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, added); err == nil {
			b.AddedAt = t
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *ProfileRepository) PutKeepWatching(ctx context.Context, userID string, kw domain.KeepWatching) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO keep_watching(user_id, media_id, episode_id, episode_number, episode_title, provider, updated_at)
		VALUES(?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, media_id) DO UPDATE SET
			episode_id = excluded.episode_id,
			episode_number = excluded.episode_number,
			episode_title = excluded.episode_title,
			provider = excluded.provider,
			updated_at = excluded.updated_at
	`, userID, kw.MediaID, kw.EpisodeID, kw.EpisodeNumber, kw.EpisodeTitle, kw.Provider, kw.UpdatedAt.UTC().Format(time.RFC3339))
	return err
}

func (r *ProfileRepository) ListKeepWatching(ctx context.Context, userID string) ([]domain.KeepWatching, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT media_id, episode_id, episode_number, episode_title, provider, updated_at
		FROM keep_watching WHERE user_id = ? ORDER BY updated_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.KeepWatching{}
	for rows.Next() {
		var kw domain.KeepWatching
		var updated string
		if err := rows.Scan(&kw.MediaID, &kw.EpisodeID, &kw.EpisodeNumber, &kw.EpisodeTitle, &kw.Provider, &updated); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, updated); err == nil {
			kw.UpdatedAt = t
		}
		out = append(out, kw)
	}
	return out, rows.Err()
}

func (r *ProfileRepository) AddWatchedEpisode(ctx context.Context, userID string, ep domain.WatchedEpisode) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO watched_episodes(user_id, media_id, episode_number, episode_id, watched_at)
		VALUES(?, ?, ?, ?, ?)
		ON CONFLICT(user_id, media_id, episode_number) DO NOTHING
	`, userID, ep.MediaID, ep.EpisodeNumber, ep.EpisodeID, ep.WatchedAt.UTC().Format(time.RFC3339))
	return err
}

func (r *ProfileRepository) RemoveWatchedEpisode(ctx context.Context, userID string, mediaID, episodeNumber int) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM watched_episodes WHERE user_id = ? AND media_id = ? AND episode_number = ?
	`, userID, mediaID, episodeNumber)
	return err
}

func (r *ProfileRepository) ListWatchedEpisodes(ctx context.Context, userID string, mediaID int) ([]domain.WatchedEpisode, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT media_id, episode_number, episode_id, watched_at
		FROM watched_episodes WHERE user_id = ? AND media_id = ? ORDER BY episode_number
	`, userID, mediaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.WatchedEpisode{}
	for rows.Next() {
		var ep domain.WatchedEpisode
		var watched string
		if err := rows.Scan(&ep.MediaID, &ep.EpisodeNumber, &ep.EpisodeID, &watched); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, watched); err == nil {
			ep.WatchedAt = t
		}
		out = append(out, ep)
	}
	return out, rows.Err()
}

func (r *ProfileRepository) AddReadChapter(ctx context.Context, userID string, ch domain.ReadChapter) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO read_chapters(user_id, media_id, chapter_number, chapter_id, read_at)
		VALUES(?, ?, ?, ?, ?)
		ON CONFLICT(user_id, media_id, chapter_number) DO NOTHING
	`, userID, ch.MediaID, ch.ChapterNumber, ch.ChapterID, ch.ReadAt.UTC().Format(time.RFC3339))
	return err
}

func (r *ProfileRepository) RemoveReadChapter(ctx context.Context, userID string, mediaID, chapterNumber int) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM read_chapters WHERE user_id = ? AND media_id = ? AND chapter_number = ?
	`, userID, mediaID, chapterNumber)
	return err
}

func (r *ProfileRepository) ListReadChapters(ctx context.Context, userID string, mediaID int) ([]domain.ReadChapter, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT media_id, chapter_number, chapter_id, read_at
		FROM read_chapters WHERE user_id = ? AND media_id = ? ORDER BY chapter_number
	`, userID, mediaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.ReadChapter{}
	for rows.Next() {
		var ch domain.ReadChapter
		var read string
		if err := rows.Scan(&ch.MediaID, &ch.ChapterNumber, &ch.ChapterID, &read); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, read); err == nil {
			ch.ReadAt = t
		}
		out = append(out, ch)
	}
	return out, rows.Err()
}

func (r *ProfileRepository) AddStatusEntry(ctx context.Context, userID string, e domain.StatusEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO status_entries(user_id, status, media_id, title, format, cover_url, added_at)
		VALUES(?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, status, media_id) DO NOTHING
	`, userID, e.Status, e.MediaID, e.Title, e.Format, e.CoverURL, e.AddedAt.UTC().Format(time.RFC3339))
	return err
}

func (r *ProfileRepository) RemoveStatusEntry(ctx context.Context, userID string, status string, mediaID int) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM status_entries WHERE user_id = ? AND status = ? AND media_id = ?
	`, userID, status, mediaID)
	return err
}

func (r *ProfileRepository) ListStatusEntries(ctx context.Context, userID string, status string) ([]domain.StatusEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT status, media_id, title, format, cover_url, added_at
		FROM status_entries WHERE user_id = ? AND status = ? ORDER BY added_at DESC
	`, userID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.StatusEntry{}
	for rows.Next() {
		var e domain.StatusEntry
		var added string
		if err := rows.Scan(&e.Status, &e.MediaID, &e.Title, &e.Format, &e.CoverURL, &added); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, added); err == nil {
			e.AddedAt = t
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
