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

// Consumet proxies one Consumet anime sub-provider (gogoanime or zoro).
// Consumet has no success envelope; emptiness of the payload itself is the
// not-found signal.
type Consumet struct {
	BaseURL  string
	Provider string
	Client   *http.Client
}

func NewConsumet(baseURL, provider string) *Consumet {
	return &Consumet{
		BaseURL:  strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		Provider: strings.ToLower(strings.TrimSpace(provider)),
		Client:   newHTTPClient(),
	}
}

// Search returns the raw results array for a query.
func (p *Consumet) Search(ctx context.Context, query string) (json.RawMessage, error) {
	var body struct {
		Results json.RawMessage `json:"results"`
	}
	if err := getJSON(ctx, p.Client, fmt.Sprintf("%s/anime/%s/%s", p.BaseURL, p.Provider, url.PathEscape(query)), &body); err != nil {
		return nil, err
	}
	if emptyArray(body.Results) {
		return nil, ports.ErrNotFound
	}
	return body.Results, nil
}

// Info returns the media object, episode list included.
func (p *Consumet) Info(ctx context.Context, mediaID string) (json.RawMessage, error) {
	var body json.RawMessage
	if err := getJSON(ctx, p.Client, fmt.Sprintf("%s/anime/%s/info/%s", p.BaseURL, p.Provider, url.PathEscape(mediaID)), &body); err != nil {
		return nil, err
	}
	if len(body) == 0 || string(body) == "null" {
		return nil, ports.ErrNotFound
	}
	return body, nil
}

// Episodes extracts the episode array from the media info object.
func (p *Consumet) Episodes(ctx context.Context, mediaID string) (json.RawMessage, error) {
	raw, err := p.Info(ctx, mediaID)
	if err != nil {
		return nil, err
	}
	var body struct {
		Episodes json.RawMessage `json:"episodes"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("%w: decode info: %v", ports.ErrUpstream, err)
	}
	if emptyArray(body.Episodes) {
		return nil, ports.ErrNotFound
	}
	return body.Episodes, nil
}

// Watch returns the source bundle for an episode.
func (p *Consumet) Watch(ctx context.Context, episodeID, server string) (json.RawMessage, error) {
	u := fmt.Sprintf("%s/anime/%s/watch/%s", p.BaseURL, p.Provider, url.PathEscape(episodeID))
	if server != "" {
		u += "?server=" + url.QueryEscape(server)
	}
	var body struct {
		Sources json.RawMessage `json:"sources"`
	}
	var raw json.RawMessage
	if err := getJSON(ctx, p.Client, u, &raw); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("%w: decode watch: %v", ports.ErrUpstream, err)
	}
	if emptyArray(body.Sources) {
		return nil, ports.ErrNotFound
	}
	return raw, nil
}

type consumetSearchItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	Image    string `json:"image"`
	SubOrDub string `json:"subOrDub"`
}

// SearchCandidates implements ports.ResolverSource. Consumet reports no
// episode counts; a dub-only entry is mapped to a positive dub count so the
// dub filter has something to act on.
func (p *Consumet) SearchCandidates(ctx context.Context, query string) ([]domain.Candidate, error) {
	raw, err := p.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	var items []consumetSearchItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: decode candidates: %v", ports.ErrUpstream, err)
	}
	out := make([]domain.Candidate, 0, len(items))
	for _, it := range items {
		c := domain.Candidate{ID: it.ID, Title: it.Title, Type: it.Type, Poster: it.Image}
		if strings.EqualFold(it.SubOrDub, "dub") {
			c.Episodes.Dub = 1
		}
		out = append(out, c)
	}
	return out, nil
}

type consumetEpisode struct {
	ID     string `json:"id"`
	Number int    `json:"number"`
	Title  string `json:"title"`
}

// EpisodeList implements ports.ResolverSource.
func (p *Consumet) EpisodeList(ctx context.Context, mediaID string) ([]domain.Episode, error) {
	raw, err := p.Episodes(ctx, mediaID)
	if err != nil {
		return nil, err
	}
	var items []consumetEpisode
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: decode episode list: %v", ports.ErrUpstream, err)
	}
	out := make([]domain.Episode, 0, len(items))
	for _, it := range items {
		out = append(out, domain.Episode{ID: it.ID, Number: it.Number, Title: it.Title})
	}
	return out, nil
}
