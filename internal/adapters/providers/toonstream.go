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

// ToonStream talks to the ToonStream API (Hindi dubbed catalog).
type ToonStream struct {
	BaseURL string
	Client  *http.Client
}

func NewToonStream(baseURL string) *ToonStream {
	return &ToonStream{
		BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		Client:  newHTTPClient(),
	}
}

func (p *ToonStream) get(ctx context.Context, path string) (json.RawMessage, error) {
	var env successEnvelope
	if err := getJSON(ctx, p.Client, p.BaseURL+path, &env); err != nil {
		return nil, err
	}
	return env.payload()
}

// Info returns the full anime object, episode list included.
func (p *ToonStream) Info(ctx context.Context, animeID string) (json.RawMessage, error) {
	return p.get(ctx, "/api/anime/"+url.PathEscape(animeID))
}

// Episode returns the playable data for one episode.
func (p *ToonStream) Episode(ctx context.Context, episodeID string) (json.RawMessage, error) {
	return p.get(ctx, "/api/episode/"+url.PathEscape(episodeID))
}

// Server returns the streaming links for an episode on one server.
func (p *ToonStream) Server(ctx context.Context, episodeID, serverID string) (json.RawMessage, error) {
	return p.get(ctx, "/api/episode/"+url.PathEscape(episodeID)+"/server/"+url.PathEscape(serverID))
}

// Search returns the raw search result array for a keyword.
func (p *ToonStream) Search(ctx context.Context, query string) (json.RawMessage, error) {
	return p.get(ctx, "/api/search?keyword="+url.QueryEscape(query))
}

// Latest returns the raw latest-releases array; kind is series or movies.
func (p *ToonStream) Latest(ctx context.Context, kind string) (json.RawMessage, error) {
	return p.get(ctx, "/api/latest/"+url.PathEscape(kind))
}

// Home returns the provider's home page payload.
func (p *ToonStream) Home(ctx context.Context) (json.RawMessage, error) {
	return p.get(ctx, "/api/home")
}

type toonstreamSearchItem struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Type   string `json:"type"`
	Poster string `json:"poster"`
}

// SearchCandidates implements ports.ResolverSource.
func (p *ToonStream) SearchCandidates(ctx context.Context, query string) ([]domain.Candidate, error) {
	raw, err := p.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	var items []toonstreamSearchItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: decode candidates: %v", ports.ErrUpstream, err)
	}
	out := make([]domain.Candidate, 0, len(items))
	for _, it := range items {
		out = append(out, domain.Candidate{ID: it.ID, Title: it.Title, Type: it.Type, Poster: it.Poster})
	}
	return out, nil
}

type toonstreamEpisode struct {
	ID     string `json:"id"`
	Number int    `json:"episode"`
	Title  string `json:"title"`
}

// EpisodeList implements ports.ResolverSource. ToonStream exposes episodes
// inside the anime info object rather than on a dedicated endpoint.
func (p *ToonStream) EpisodeList(ctx context.Context, animeID string) ([]domain.Episode, error) {
	raw, err := p.Info(ctx, animeID)
	if err != nil {
		return nil, err
	}
	var body struct {
		Episodes []toonstreamEpisode `json:"episodes"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("%w: decode episode list: %v", ports.ErrUpstream, err)
	}
	out := make([]domain.Episode, 0, len(body.Episodes))
	for _, it := range body.Episodes {
		out = append(out, domain.Episode{ID: it.ID, Number: it.Number, Title: it.Title})
	}
	return out, nil
}
