package domain

import "time"

// Profile is the per-user record. Collections that the original service
// stored as serialized JSON blobs are normalized into per-item rows; the
// profile row itself only carries identity and preferences.
type Profile struct {
	UserID      string      `json:"userId"`
	DisplayName string      `json:"displayName,omitempty"`
	Preferences Preferences `json:"preferences"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

type Preferences struct {
	VideoSource             string `json:"videoSource"`
	MediaTitlePreferredLang string `json:"mediaTitlePreferredLang"`
	ShowAdultContent        bool   `json:"showAdultContent"`
	AutoNextEpisode         bool   `json:"autoNextEpisode"`
	AutoSkipIntroAndOutro   bool   `json:"autoSkipIntroAndOutro"`
	PlayVideoOnIDMismatch   bool   `json:"playVideoWhenMediaAndVideoIdMismatch"`
	VideoQuality            string `json:"videoQuality"`
	VideoSubtitleLanguage   string `json:"videoSubtitleLanguage"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		VideoSource:             "hianime",
		MediaTitlePreferredLang: "romaji",
		ShowAdultContent:        false,
		AutoNextEpisode:         true,
		AutoSkipIntroAndOutro:   false,
		PlayVideoOnIDMismatch:   false,
		VideoQuality:            "auto",
		VideoSubtitleLanguage:   "English",
	}
}

// Bookmark is one favourited media.
type Bookmark struct {
	MediaID  int       `json:"id"`
	Title    string    `json:"title"`
	Format   string    `json:"format,omitempty"`
	CoverURL string    `json:"coverUrl,omitempty"`
	AddedAt  time.Time `json:"addedAt"`
}

// KeepWatching is the most recent playback position for one media.
// One row per (user, media); a new episode overwrites the previous one.
type KeepWatching struct {
	MediaID       int       `json:"mediaId"`
	EpisodeID     string    `json:"episodeId"`
	EpisodeNumber int       `json:"episodeNumber"`
	EpisodeTitle  string    `json:"episodeTitle,omitempty"`
	Provider      string    `json:"provider,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// WatchedEpisode marks one episode of one media as watched.
type WatchedEpisode struct {
	MediaID       int       `json:"mediaId"`
	EpisodeNumber int       `json:"episodeNumber"`
	EpisodeID     string    `json:"episodeId,omitempty"`
	WatchedAt     time.Time `json:"watchedAt"`
}

// ReadChapter marks one manga chapter of one media as read.
type ReadChapter struct {
	MediaID       int       `json:"mediaId"`
	ChapterNumber int       `json:"chapterNumber"`
	ChapterID     string    `json:"chapterId,omitempty"`
	ReadAt        time.Time `json:"readAt"`
}

// StatusEntry is one media filed under a user-chosen list status
// (watching, completed, dropped, ...). Status is stored lowercase.
type StatusEntry struct {
	Status   string    `json:"status"`
	MediaID  int       `json:"id"`
	Title    string    `json:"title"`
	Format   string    `json:"format,omitempty"`
	CoverURL string    `json:"coverUrl,omitempty"`
	AddedAt  time.Time `json:"addedAt"`
}
