package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/animemax/animemax-server/internal/domain"
	"github.com/animemax/animemax-server/internal/ports"
)

// Aniwatch talks to the legacy aniwatch API. It signals failure through
// HTTP status codes rather than a success flag.
type Aniwatch struct {
	BaseURL string
	Client  *http.Client
}

func NewAniwatch(baseURL string) *Aniwatch {
	return &Aniwatch{
		BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		Client:  newHTTPClient(),
	}
}

// Episodes returns the raw episode array for a media id.
func (p *Aniwatch) Episodes(ctx context.Context, mediaID string) (json.RawMessage, error) {
	var body struct {
		Episodes json.RawMessage `json:"episodes"`
	}
	if err := getJSON(ctx, p.Client, fmt.Sprintf("%s/anime/episodes/%s", p.BaseURL, url.PathEscape(mediaID)), &body); err != nil {
		return nil, err
	}
	if emptyArray(body.Episodes) {
		return nil, ports.ErrNotFound
	}
	return body.Episodes, nil
}

// Sources returns the source bundle for an episode, server and category.
func (p *Aniwatch) Sources(ctx context.Context, episodeID, server, category string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("id", episodeID)
	if server != "" {
		params.Set("server", server)
	}
	params.Set("category", category)

	var raw json.RawMessage
	if err := getJSON(ctx, p.Client, fmt.Sprintf("%s/anime/episode-srcs?%s", p.BaseURL, params.Encode()), &raw); err != nil {
		return nil, err
	}
	var body struct {
		Sources json.RawMessage `json:"sources"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("%w: decode sources: %v", ports.ErrUpstream, err)
	}
	if emptyArray(body.Sources) {
		return nil, ports.ErrNotFound
	}
	return raw, nil
}

// Search returns the raw search result array for a query.
func (p *Aniwatch) Search(ctx context.Context, query string) (json.RawMessage, error) {
	var body struct {
		Animes json.RawMessage `json:"animes"`
	}
	if err := getJSON(ctx, p.Client, fmt.Sprintf("%s/anime/search?q=%s", p.BaseURL, url.QueryEscape(query)), &body); err != nil {
		return nil, err
	}
	if emptyArray(body.Animes) {
		return nil, ports.ErrNotFound
	}
	return body.Animes, nil
}

// SearchCandidates implements ports.ResolverSource. The aniwatch search
// shape matches HiAnime's (same upstream lineage).
func (p *Aniwatch) SearchCandidates(ctx context.Context, query string) ([]domain.Candidate, error) {
	raw, err := p.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	var items []hianimeSearchItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: decode candidates: %v", ports.ErrUpstream, err)
	}
	out := make([]domain.Candidate, 0, len(items))
	for _, it := range items {
		out = append(out, domain.Candidate{
			ID:     it.ID,
			Title:  it.Name,
			Type:   it.Type,
			Poster: it.Poster,
			Episodes: domain.EpisodeCounts{
				Sub: it.Episodes.Sub,
				Dub: it.Episodes.Dub,
			},
		})
	}
	return out, nil
}

// EpisodeList implements ports.ResolverSource.
func (p *Aniwatch) EpisodeList(ctx context.Context, mediaID string) ([]domain.Episode, error) {
	raw, err := p.Episodes(ctx, mediaID)
	if err != nil {
		return nil, err
	}
	var items []hianimeEpisode
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: decode episode list: %v", ports.ErrUpstream, err)
	}
	out := make([]domain.Episode, 0, len(items))
	for _, it := range items {
		out = append(out, domain.Episode{ID: it.EpisodeID, Number: it.Number, Title: it.Title})
	}
	return out, nil
}
