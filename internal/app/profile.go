package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/animemax/animemax-server/internal/domain"
	"github.com/animemax/animemax-server/internal/ports"
)

// ProfileService fronts the per-user record. The first touch of an unknown
// user creates the profile row with default preferences, the way the
// original created the user document at first sign-in.
type ProfileService struct {
	repo ports.ProfileRepository
}

func NewProfileService(repo ports.ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (domain.Profile, error) {
	return s.repo.Ensure(ctx, userID)
}

func (s *ProfileService) PutPreferences(ctx context.Context, userID string, prefs domain.Preferences) (domain.Profile, error) {
	def := domain.DefaultPreferences()
	if prefs.VideoSource == "" {
		prefs.VideoSource = def.VideoSource
	}
	if prefs.MediaTitlePreferredLang == "" {
		prefs.MediaTitlePreferredLang = def.MediaTitlePreferredLang
	}
	if prefs.VideoQuality == "" {
		prefs.VideoQuality = def.VideoQuality
	}
	if prefs.VideoSubtitleLanguage == "" {
		prefs.VideoSubtitleLanguage = def.VideoSubtitleLanguage
	}
	if _, err := s.repo.Ensure(ctx, userID); err != nil {
		return domain.Profile{}, err
	}
	return s.repo.PutPreferences(ctx, userID, prefs)
}

func (s *ProfileService) Delete(ctx context.Context, userID string) error {
	return s.repo.Delete(ctx, userID)
}

func (s *ProfileService) AddBookmark(ctx context.Context, userID string, b domain.Bookmark) error {
	if b.MediaID <= 0 {
		return fmt.Errorf("missing media id: %w", ports.ErrInvalid)
	}
	if strings.TrimSpace(b.Title) == "" {
		return fmt.Errorf("missing title: %w", ports.ErrInvalid)
	}
	if b.AddedAt.IsZero() {
		b.AddedAt = time.Now().UTC()
	}
	if _, err := s.repo.Ensure(ctx, userID); err != nil {
		return err
	}
	return s.repo.AddBookmark(ctx, userID, b)
}

func (s *ProfileService) RemoveBookmark(ctx context.Context, userID string, mediaID int) error {
	return s.repo.RemoveBookmark(ctx, userID, mediaID)
}

func (s *ProfileService) Bookmarks(ctx context.Context, userID string) ([]domain.Bookmark, error) {
	return s.repo.ListBookmarks(ctx, userID)
}

func (s *ProfileService) PutKeepWatching(ctx context.Context, userID string, kw domain.KeepWatching) error {
	if kw.MediaID <= 0 {
		return fmt.Errorf("missing media id: %w", ports.ErrInvalid)
	}
	if strings.TrimSpace(kw.EpisodeID) == "" {
		return fmt.Errorf("missing episode id: %w", ports.ErrInvalid)
	}
	kw.UpdatedAt = time.Now().UTC()
	if _, err := s.repo.Ensure(ctx, userID); err != nil {
		return err
	}
	return s.repo.PutKeepWatching(ctx, userID, kw)
}

func (s *ProfileService) KeepWatching(ctx context.Context, userID string) ([]domain.KeepWatching, error) {
	return s.repo.ListKeepWatching(ctx, userID)
}

func (s *ProfileService) MarkEpisodeWatched(ctx context.Context, userID string, ep domain.WatchedEpisode) error {
	if ep.MediaID <= 0 || ep.EpisodeNumber <= 0 {
		return fmt.Errorf("missing media id or episode number: %w", ports.ErrInvalid)
	}
	if ep.WatchedAt.IsZero() {
		ep.WatchedAt = time.Now().UTC()
	}
	if _, err := s.repo.Ensure(ctx, userID); err != nil {
		return err
	}
	return s.repo.AddWatchedEpisode(ctx, userID, ep)
}

func (s *ProfileService) UnmarkEpisodeWatched(ctx context.Context, userID string, mediaID, episodeNumber int) error {
	return s.repo.RemoveWatchedEpisode(ctx, userID, mediaID, episodeNumber)
}

func (s *ProfileService) WatchedEpisodes(ctx context.Context, userID string, mediaID int) ([]domain.WatchedEpisode, error) {
	return s.repo.ListWatchedEpisodes(ctx, userID, mediaID)
}

func (s *ProfileService) MarkChapterRead(ctx context.Context, userID string, ch domain.ReadChapter) error {
	if ch.MediaID <= 0 || ch.ChapterNumber <= 0 {
		return fmt.Errorf("missing media id or chapter number: %w", ports.ErrInvalid)
	}
	if ch.ReadAt.IsZero() {
		ch.ReadAt = time.Now().UTC()
	}
	if _, err := s.repo.Ensure(ctx, userID); err != nil {
		return err
	}
	return s.repo.AddReadChapter(ctx, userID, ch)
}

func (s *ProfileService) UnmarkChapterRead(ctx context.Context, userID string, mediaID, chapterNumber int) error {
	return s.repo.RemoveReadChapter(ctx, userID, mediaID, chapterNumber)
}

func (s *ProfileService) ReadChapters(ctx context.Context, userID string, mediaID int) ([]domain.ReadChapter, error) {
	return s.repo.ListReadChapters(ctx, userID, mediaID)
}

func (s *ProfileService) AddToStatusList(ctx context.Context, userID string, e domain.StatusEntry) error {
	e.Status = strings.ToLower(strings.TrimSpace(e.Status))
	if e.Status == "" {
		return fmt.Errorf("missing status: %w", ports.ErrInvalid)
	}
	if e.MediaID <= 0 {
		return fmt.Errorf("missing media id: %w", ports.ErrInvalid)
	}
	if e.AddedAt.IsZero() {
		e.AddedAt = time.Now().UTC()
	}
	if _, err := s.repo.Ensure(ctx, userID); err != nil {
		return err
	}
	return s.repo.AddStatusEntry(ctx, userID, e)
}

func (s *ProfileService) RemoveFromStatusList(ctx context.Context, userID string, status string, mediaID int) error {
	return s.repo.RemoveStatusEntry(ctx, userID, strings.ToLower(strings.TrimSpace(status)), mediaID)
}

func (s *ProfileService) StatusList(ctx context.Context, userID string, status string) ([]domain.StatusEntry, error) {
	return s.repo.ListStatusEntries(ctx, userID, strings.ToLower(strings.TrimSpace(status)))
}
