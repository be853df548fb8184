package httpapi

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/animemax/animemax-server/internal/domain"
)

// episodeRoutes mounts every provider proxy. Each route is one proxyOp; the
// tables below are the only place provider wiring differs.
func (s *Server) episodeRoutes(r chi.Router) {
	r.Route("/episodes", func(r chi.Router) {
		r.Route("/hianime", s.hianimeRoutes)
		r.Route("/toonstream", s.toonstreamRoutes)
		r.Route("/consumet", func(r chi.Router) {
			r.Route("/gogoanime", s.consumetRoutes("gogoanime", s.providers.Gogoanime))
			r.Route("/zoro", s.consumetRoutes("zoro", s.providers.Zoro))
		})
		r.Route("/aniwatch", s.aniwatchRoutes)
	})
}

func upper(q url.Values, key string) string {
	return strings.ToUpper(q.Get(key))
}

func (s *Server) hianimeRoutes(r chi.Router) {
	p := s.providers.HiAnime

	r.Get("/all", s.handle(proxyOp{
		name:     "hianime.episodes",
		required: []string{"id"},
		key:      func(q url.Values) string { return domain.EpisodesKey("hianime", q.Get("id")) },
		fetch: func(ctx context.Context, q url.Values) (json.RawMessage, error) {
			return p.Episodes(ctx, q.Get("id"))
		},
		message:   func(q url.Values) string { return "Episodes for: " + upper(q, "id") },
		notFound:  "No episodes found",
		emptyList: true,
	}))

	r.Get("/episode", s.handle(proxyOp{
		name:     "hianime.sources",
		required: []string{"id"},
		defaults: map[string]string{"category": "sub", "server": "hd-1"},
		key: func(q url.Values) string {
			return domain.EpisodeSourcesKey("hianime", q.Get("id"), q.Get("category"), q.Get("server"))
		},
		fetch: func(ctx context.Context, q url.Values) (json.RawMessage, error) {
			return p.Sources(ctx, q.Get("id"), q.Get("server"), q.Get("category"))
		},
		message:  func(q url.Values) string { return "Sources for: " + upper(q, "id") },
		notFound: "No sources found",
	}))

	r.Get("/servers", s.handle(proxyOp{
		name:     "hianime.servers",
		required: []string{"id"},
		key:      func(q url.Values) string { return domain.ServersKey("hianime", q.Get("id")) },
		fetch: func(ctx context.Context, q url.Values) (json.RawMessage, error) {
			return p.Servers(ctx, q.Get("id"))
		},
		message:  func(q url.Values) string { return "Servers for: " + upper(q, "id") },
		notFound: "No servers found",
	}))

	r.Get("/search", s.handle(proxyOp{
		name:     "hianime.search",
		required: []string{"q"},
		key:      func(q url.Values) string { return domain.SearchKey("hianime", q.Get("q")) },
		fetch: func(ctx context.Context, q url.Values) (json.RawMessage, error) {
			return p.Search(ctx, q.Get("q"))
		},
		message:   func(q url.Values) string { return "Results for: " + upper(q, "q") },
		notFound:  "No results found",
		emptyList: true,
	}))
}

func (s *Server) toonstreamRoutes(r chi.Router) {
	p := s.providers.ToonStream

	r.Get("/episode", s.handle(proxyOp{
		name:     "toonstream.episode",
		required: []string{"id"},
		key:      func(q url.Values) string { return domain.EpisodeKey("toonstream", q.Get("id")) },
		fetch: func(ctx context.Context, q url.Values) (json.RawMessage, error) {
			return p.Episode(ctx, q.Get("id"))
		},
		message:  func(q url.Values) string { return "Episode: " + upper(q, "id") },
		notFound: "Episode not found",
	}))

	r.Get("/server", s.handle(proxyOp{
		name:     "toonstream.server",
		required: []string{"id", "server"},
		key: func(q url.Values) string {
			return domain.ServerKey("toonstream", q.Get("id"), q.Get("server"))
		},
		fetch: func(ctx context.Context, q url.Values) (json.RawMessage, error) {
			return p.Server(ctx, q.Get("id"), q.Get("server"))
		},
		message:  func(q url.Values) string { return "Server for: " + upper(q, "id") },
		notFound: "Server not found",
	}))

	r.Get("/info", s.handle(proxyOp{
		name:     "toonstream.info",
		required: []string{"id"},
		key:      func(q url.Values) string { return domain.InfoKey("toonstream", q.Get("id")) },
		fetch: func(ctx context.Context, q url.Values) (json.RawMessage, error) {
			return p.Info(ctx, q.Get("id"))
		},
		message:  func(q url.Values) string { return "Info for: " + upper(q, "id") },
		notFound: "Anime not found",
	}))

	r.Get("/search", s.handle(proxyOp{
		name:     "toonstream.search",
		required: []string{"q"},
		key:      func(q url.Values) string { return domain.SearchKey("toonstream", q.Get("q")) },
		fetch: func(ctx context.Context, q url.Values) (json.RawMessage, error) {
			return p.Search(ctx, q.Get("q"))
		},
		message:   func(q url.Values) string { return "Results for: " + upper(q, "q") },
		notFound:  "No results found",
		emptyList: true,
	}))

	r.Get("/latest", s.handle(proxyOp{
		name:     "toonstream.latest",
		defaults: map[string]string{"type": "series"},
		key:      func(q url.Values) string { return domain.LatestKey("toonstream", q.Get("type")) },
		fetch: func(ctx context.Context, q url.Values) (json.RawMessage, error) {
			return p.Latest(ctx, q.Get("type"))
		},
		message:   func(q url.Values) string { return "Latest " + q.Get("type") },
		notFound:  "No results found",
		emptyList: true,
	}))

	r.Get("/home", s.handle(proxyOp{
		name: "toonstream.home",
		key:  func(q url.Values) string { return domain.HomeKey("toonstream") },
		fetch: func(ctx context.Context, q url.Values) (json.RawMessage, error) {
			return p.Home(ctx)
		},
		message:  func(q url.Values) string { return "Home" },
		notFound: "No results found",
	}))
}

// consumetRoutes builds the route set shared by the Consumet sub-providers.
func (s *Server) consumetRoutes(name string, p interface {
	Episodes(ctx context.Context, mediaID string) (json.RawMessage, error)
	Watch(ctx context.Context, episodeID, server string) (json.RawMessage, error)
	Search(ctx context.Context, query string) (json.RawMessage, error)
}) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/all", s.handle(proxyOp{
			name:     name + ".episodes",
			required: []string{"id"},
			key:      func(q url.Values) string { return domain.EpisodesKey(name, q.Get("id")) },
			fetch: func(ctx context.Context, q url.Values) (json.RawMessage, error) {
				return p.Episodes(ctx, q.Get("id"))
			},
			message:   func(q url.Values) string { return "Episodes for: " + upper(q, "id") },
			notFound:  "No episodes found",
			emptyList: true,
		}))

		r.Get("/episode", s.handle(proxyOp{
			name:     name + ".watch",
			required: []string{"id"},
			key: func(q url.Values) string {
				if server := q.Get("server"); server != "" {
					return domain.ServerKey(name, q.Get("id"), server)
				}
				return domain.EpisodeKey(name, q.Get("id"))
			},
			fetch: func(ctx context.Context, q url.Values) (json.RawMessage, error) {
				return p.Watch(ctx, q.Get("id"), q.Get("server"))
			},
			message:  func(q url.Values) string { return "Sources for: " + upper(q, "id") },
			notFound: "No sources found",
		}))

		r.Get("/search", s.handle(proxyOp{
			name:     name + ".search",
			required: []string{"q"},
			key:      func(q url.Values) string { return domain.SearchKey(name, q.Get("q")) },
			fetch: func(ctx context.Context, q url.Values) (json.RawMessage, error) {
				return p.Search(ctx, q.Get("q"))
			},
			message:   func(q url.Values) string { return "Results for: " + upper(q, "q") },
			notFound:  "No results found",
			emptyList: true,
		}))
	}
}

func (s *Server) aniwatchRoutes(r chi.Router) {
	p := s.providers.Aniwatch

	r.Get("/all", s.handle(proxyOp{
		name:     "aniwatch.episodes",
		required: []string{"id"},
		key:      func(q url.Values) string { return domain.EpisodesKey("aniwatch", q.Get("id")) },
		fetch: func(ctx context.Context, q url.Values) (json.RawMessage, error) {
			return p.Episodes(ctx, q.Get("id"))
		},
		message:   func(q url.Values) string { return "Episodes for: " + upper(q, "id") },
		notFound:  "No episodes found",
		emptyList: true,
	}))

	r.Get("/episode", s.handle(proxyOp{
		name:     "aniwatch.sources",
		required: []string{"id"},
		defaults: map[string]string{"category": "sub", "server": "hd-1"},
		key: func(q url.Values) string {
			return domain.EpisodeSourcesKey("aniwatch", q.Get("id"), q.Get("category"), q.Get("server"))
		},
		fetch: func(ctx context.Context, q url.Values) (json.RawMessage, error) {
			return p.Sources(ctx, q.Get("id"), q.Get("server"), q.Get("category"))
		},
		message:  func(q url.Values) string { return "Sources for: " + upper(q, "id") },
		notFound: "No sources found",
	}))

	r.Get("/search", s.handle(proxyOp{
		name:     "aniwatch.search",
		required: []string{"q"},
		key:      func(q url.Values) string { return domain.SearchKey("aniwatch", q.Get("q")) },
		fetch: func(ctx context.Context, q url.Values) (json.RawMessage, error) {
			return p.Search(ctx, q.Get("q"))
		},
		message:   func(q url.Values) string { return "Results for: " + upper(q, "q") },
		notFound:  "No results found",
		emptyList: true,
	}))
}
