package domain

// EpisodeCounts carries the per-audio-track episode totals a provider
// reports on a search result. Zero means unknown or unavailable.
type EpisodeCounts struct {
	Sub int `json:"sub"`
	Dub int `json:"dub"`
}

// Candidate is one provider search result considered as a possible match
// for a free-text query. Only ID and Title are guaranteed; Type and
// Episodes are provider-specific extras used by the advisory filters.
type Candidate struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Type     string        `json:"type,omitempty"`
	Poster   string        `json:"poster,omitempty"`
	Episodes EpisodeCounts `json:"episodes"`
}

// Episode references one playable episode of a resolved media.
type Episode struct {
	ID     string `json:"id"`
	Number int    `json:"number"`
	Title  string `json:"title,omitempty"`
}

// ResolvedEpisodes bundles the episode list of the chosen candidate with
// the sub/dub totals the candidate reported, when known.
type ResolvedEpisodes struct {
	EpisodesSub int       `json:"episodesSub"`
	EpisodesDub int       `json:"episodesDub"`
	Episodes    []Episode `json:"episodes"`
}
