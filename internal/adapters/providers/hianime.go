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

// HiAnime talks to the ryanwtf88 HiAnime API, which carries Hindi dubs.
type HiAnime struct {
	BaseURL string
	Client  *http.Client
}

func NewHiAnime(baseURL string) *HiAnime {
	return &HiAnime{
		BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		Client:  newHTTPClient(),
	}
}

// Episodes returns the raw episode array for a media id.
func (p *HiAnime) Episodes(ctx context.Context, mediaID string) (json.RawMessage, error) {
	var env successEnvelope
	if err := getJSON(ctx, p.Client, fmt.Sprintf("%s/api/v1/anime/%s/episodes", p.BaseURL, url.PathEscape(mediaID)), &env); err != nil {
		return nil, err
	}
	data, err := env.payload()
	if err != nil {
		return nil, err
	}
	var body struct {
		Episodes json.RawMessage `json:"episodes"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("%w: decode episodes: %v", ports.ErrUpstream, err)
	}
	if emptyArray(body.Episodes) {
		return nil, ports.ErrNotFound
	}
	return body.Episodes, nil
}

// Sources returns the source bundle for an episode, server and category
// (sub, dub or raw). An upstream success without sources is a not-found.
func (p *HiAnime) Sources(ctx context.Context, episodeID, server, category string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("animeEpisodeId", episodeID)
	params.Set("server", server)
	params.Set("category", category)

	var env successEnvelope
	if err := getJSON(ctx, p.Client, fmt.Sprintf("%s/api/v1/episode/sources?%s", p.BaseURL, params.Encode()), &env); err != nil {
		return nil, err
	}
	data, err := env.payload()
	if err != nil {
		return nil, err
	}
	var body struct {
		Sources json.RawMessage `json:"sources"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("%w: decode sources: %v", ports.ErrUpstream, err)
	}
	if emptyArray(body.Sources) {
		return nil, ports.ErrNotFound
	}
	return data, nil
}

// Servers returns the server list for an episode.
func (p *HiAnime) Servers(ctx context.Context, episodeID string) (json.RawMessage, error) {
	var env successEnvelope
	if err := getJSON(ctx, p.Client, fmt.Sprintf("%s/api/v1/episode/servers?animeEpisodeId=%s", p.BaseURL, url.QueryEscape(episodeID)), &env); err != nil {
		return nil, err
	}
	return env.payload()
}

// Search returns the raw search result array for a query.
func (p *HiAnime) Search(ctx context.Context, query string) (json.RawMessage, error) {
	var env successEnvelope
	if err := getJSON(ctx, p.Client, fmt.Sprintf("%s/api/v1/search?q=%s", p.BaseURL, url.QueryEscape(query)), &env); err != nil {
		return nil, err
	}
	data, err := env.payload()
	if err != nil {
		return nil, err
	}
	var body struct {
		Animes json.RawMessage `json:"animes"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("%w: decode search: %v", ports.ErrUpstream, err)
	}
	if emptyArray(body.Animes) {
		return nil, ports.ErrNotFound
	}
	return body.Animes, nil
}

type hianimeSearchItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Poster   string `json:"poster"`
	Episodes struct {
		Sub int `json:"sub"`
		Dub int `json:"dub"`
	} `json:"episodes"`
}

// SearchCandidates implements ports.ResolverSource.
func (p *HiAnime) SearchCandidates(ctx context.Context, query string) ([]domain.Candidate, error) {
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

type hianimeEpisode struct {
	EpisodeID string `json:"episodeId"`
	Number    int    `json:"number"`
	Title     string `json:"title"`
}

// EpisodeList implements ports.ResolverSource.
func (p *HiAnime) EpisodeList(ctx context.Context, mediaID string) ([]domain.Episode, error) {
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

func emptyArray(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "[]" || s == "null"
}
