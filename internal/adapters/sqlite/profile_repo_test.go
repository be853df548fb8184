package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/animemax/animemax-server/internal/domain"
	"github.com/animemax/animemax-server/internal/ports"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestProfileRepository_EnsureCreatesDefaults(t *testing.T) {
	ctx := context.Background()
	repo := NewProfileRepository(openTestDB(t).SQL)

	if _, err := repo.Get(ctx, "u1"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound before Ensure, got %v", err)
	}

	p, err := repo.Ensure(ctx, "u1")
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if p.UserID != "u1" {
		t.Fatalf("unexpected user id: %q", p.UserID)
	}
	if p.Preferences != domain.DefaultPreferences() {
		t.Fatalf("expected default preferences, got %+v", p.Preferences)
	}

	// Ensure on an existing profile must not reset anything.
	prefs := p.Preferences
	prefs.VideoQuality = "1080p"
	if _, err := repo.PutPreferences(ctx, "u1", prefs); err != nil {
		t.Fatalf("PutPreferences: %v", err)
	}
	again, err := repo.Ensure(ctx, "u1")
	if err != nil {
		t.Fatalf("Ensure(existing): %v", err)
	}
	if again.Preferences.VideoQuality != "1080p" {
		t.Fatalf("Ensure reset preferences: %+v", again.Preferences)
	}
}

func TestProfileRepository_PutPreferencesUnknownUser(t *testing.T) {
	repo := NewProfileRepository(openTestDB(t).SQL)
	if _, err := repo.PutPreferences(context.Background(), "ghost", domain.DefaultPreferences()); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProfileRepository_BookmarksAreIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewProfileRepository(openTestDB(t).SQL)
	if _, err := repo.Ensure(ctx, "u1"); err != nil {
		t.Fatalf("Ensure: %v", err)
	}

	b := domain.Bookmark{MediaID: 7, Title: "Frieren", AddedAt: time.Now().UTC()}
	if err := repo.AddBookmark(ctx, "u1", b); err != nil {
		t.Fatalf("AddBookmark: %v", err)
	}
	if err := repo.AddBookmark(ctx, "u1", b); err != nil {
		t.Fatalf("AddBookmark(duplicate): %v", err)
	}

	items, err := repo.ListBookmarks(ctx, "u1")
	if err != nil {
		t.Fatalf("ListBookmarks: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("duplicate add must be a no-op, got %d items", len(items))
	}

	if err := repo.RemoveBookmark(ctx, "u1", 7); err != nil {
		t.Fatalf("RemoveBookmark: %v", err)
	}
	items, err = repo.ListBookmarks(ctx, "u1")
	if err != nil {
		t.Fatalf("ListBookmarks: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty list after remove, got %d", len(items))
	}
}

func TestProfileRepository_KeepWatchingOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := NewProfileRepository(openTestDB(t).SQL)
	if _, err := repo.Ensure(ctx, "u1"); err != nil {
		t.Fatalf("Ensure: %v", err)
	}

	first := domain.KeepWatching{MediaID: 3, EpisodeID: "ep-1", EpisodeNumber: 1, UpdatedAt: time.Now().UTC()}
	if err := repo.PutKeepWatching(ctx, "u1", first); err != nil {
		t.Fatalf("PutKeepWatching: %v", err)
	}
	second := first
	second.EpisodeID = "ep-2"
	second.EpisodeNumber = 2
	second.UpdatedAt = second.UpdatedAt.Add(time.Minute)
	if err := repo.PutKeepWatching(ctx, "u1", second); err != nil {
		t.Fatalf("PutKeepWatching(update): %v", err)
	}

	items, err := repo.ListKeepWatching(ctx, "u1")
	if err != nil {
		t.Fatalf("ListKeepWatching: %v", err)
	}
	if len(items) != 1 || items[0].EpisodeNumber != 2 {
		t.Fatalf("expected single overwritten entry, got %+v", items)
	}
}

func TestProfileRepository_WatchedEpisodes(t *testing.T) {
	ctx := context.Background()
	repo := NewProfileRepository(openTestDB(t).SQL)
	if _, err := repo.Ensure(ctx, "u1"); err != nil {
		t.Fatalf("Ensure: %v", err)
	}

	for _, n := range []int{2, 1, 2} {
		ep := domain.WatchedEpisode{MediaID: 9, EpisodeNumber: n, WatchedAt: time.Now().UTC()}
		if err := repo.AddWatchedEpisode(ctx, "u1", ep); err != nil {
			t.Fatalf("AddWatchedEpisode(%d): %v", n, err)
		}
	}

	items, err := repo.ListWatchedEpisodes(ctx, "u1", 9)
	if err != nil {
		t.Fatalf("ListWatchedEpisodes: %v", err)
	}
	if len(items) != 2 || items[0].EpisodeNumber != 1 || items[1].EpisodeNumber != 2 {
		t.Fatalf("expected ordered dedup list, got %+v", items)
	}

	if err := repo.RemoveWatchedEpisode(ctx, "u1", 9, 1); err != nil {
		t.Fatalf("RemoveWatchedEpisode: %v", err)
	}
	items, _ = repo.ListWatchedEpisodes(ctx, "u1", 9)
	if len(items) != 1 || items[0].EpisodeNumber != 2 {
		t.Fatalf("expected episode 2 only, got %+v", items)
	}
}

func TestProfileRepository_StatusLists(t *testing.T) {
	ctx := context.Background()
	repo := NewProfileRepository(openTestDB(t).SQL)
	if _, err := repo.Ensure(ctx, "u1"); err != nil {
		t.Fatalf("Ensure: %v", err)
	}

	now := time.Now().UTC()
	entries := []domain.StatusEntry{
		{Status: "watching", MediaID: 1, Title: "A", AddedAt: now},
		{Status: "watching", MediaID: 2, Title: "B", AddedAt: now.Add(time.Second)},
		{Status: "completed", MediaID: 1, Title: "A", AddedAt: now},
	}
	for _, e := range entries {
		if err := repo.AddStatusEntry(ctx, "u1", e); err != nil {
			t.Fatalf("AddStatusEntry: %v", err)
		}
	}

	watching, err := repo.ListStatusEntries(ctx, "u1", "watching")
	if err != nil {
		t.Fatalf("ListStatusEntries: %v", err)
	}
	if len(watching) != 2 {
		t.Fatalf("expected 2 watching entries, got %d", len(watching))
	}
	completed, _ := repo.ListStatusEntries(ctx, "u1", "completed")
	if len(completed) != 1 {
		t.Fatalf("same media must be allowed under two statuses, got %d", len(completed))
	}

	if err := repo.RemoveStatusEntry(ctx, "u1", "watching", 1); err != nil {
		t.Fatalf("RemoveStatusEntry: %v", err)
	}
	watching, _ = repo.ListStatusEntries(ctx, "u1", "watching")
	if len(watching) != 1 || watching[0].MediaID != 2 {
		t.Fatalf("unexpected watching list after remove: %+v", watching)
	}
}

func TestProfileRepository_DeleteRemovesEverything(t *testing.T) {
	ctx := context.Background()
	repo := NewProfileRepository(openTestDB(t).SQL)
	if _, err := repo.Ensure(ctx, "u1"); err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if err := repo.AddBookmark(ctx, "u1", domain.Bookmark{MediaID: 1, Title: "A", AddedAt: time.Now()}); err != nil {
		t.Fatalf("AddBookmark: %v", err)
	}

	if err := repo.Delete(ctx, "u1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(ctx, "u1"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	items, err := repo.ListBookmarks(ctx, "u1")
	if err != nil {
		t.Fatalf("ListBookmarks: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("bookmarks must be deleted with the profile, got %d", len(items))
	}
}
