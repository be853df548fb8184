package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/animemax/animemax-server/internal/adapters/providers"
	"github.com/animemax/animemax-server/internal/app"
	"github.com/animemax/animemax-server/internal/ports"
)

// Providers groups the upstream clients the edge proxies.
type Providers struct {
	HiAnime    *providers.HiAnime
	ToonStream *providers.ToonStream
	Gogoanime  *providers.Consumet
	Zoro       *providers.Consumet
	Aniwatch   *providers.Aniwatch
}

type Server struct {
	logger        zerolog.Logger
	cache         ports.Cache
	resolver      *app.Resolver
	profiles      *app.ProfileService
	notifications ports.NotificationRepository
	providers     Providers
}

func NewServer(logger zerolog.Logger, cache ports.Cache, resolver *app.Resolver, profiles *app.ProfileService, notifications ports.NotificationRepository, prov Providers) *Server {
	return &Server{
		logger:        logger,
		cache:         cache,
		resolver:      resolver,
		profiles:      profiles,
		notifications: notifications,
		providers:     prov,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(defaultRequestTimeout))
	r.Use(hlog.NewHandler(s.logger))
	r.Use(hlog.RequestIDHandler("request_id", "Request-Id"))
	r.Use(hlog.RemoteAddrHandler("remote_ip"))
	r.Use(hlog.UserAgentHandler("user_agent"))
	r.Use(hlog.AccessHandler(accessLogFn))

	r.Get("/", s.handleWelcome)
	r.Get("/health", s.handleHealth)
	r.Get("/version", s.handleVersion)

	s.episodeRoutes(r)
	s.resolveRoutes(r)

	if s.profiles != nil {
		NewProfileHandler(s.profiles, s.notifications).Routes(r)
	}

	return r
}
