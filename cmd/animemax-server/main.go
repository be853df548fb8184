package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/animemax/animemax-server/internal/adapters/cache"
	"github.com/animemax/animemax-server/internal/adapters/httpapi"
	"github.com/animemax/animemax-server/internal/adapters/providers"
	"github.com/animemax/animemax-server/internal/adapters/sqlite"
	"github.com/animemax/animemax-server/internal/app"
	"github.com/animemax/animemax-server/internal/buildinfo"
	"github.com/animemax/animemax-server/internal/config"
	"github.com/animemax/animemax-server/internal/ports"
)

func main() {
	def := config.Default()
	addr := flag.String("addr", def.Addr, "listen address (ex: 127.0.0.1:3000)")
	dbPath := flag.String("db", def.DBPath, "sqlite path (ex: animemax.db)")
	cacheBackend := flag.String("cache", def.CacheBackend, "cache backend: redis, memory or none")
	flag.Parse()

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("app", "animemax-server").Logger()
	log.Logger = logger

	logger.Info().Interface("build", buildinfo.Current()).Str("db", *dbPath).Msg("starting")

	ctx := context.Background()
	db, err := sqlite.Open(ctx, *dbPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open db")
	}
	defer func() { _ = db.Close() }()

	gateway := newCache(ctx, logger, def, *cacheBackend)
	defer func() { _ = gateway.Close() }()

	hianime := providers.NewHiAnime(def.HiAnimeURL)
	toonstream := providers.NewToonStream(def.ToonStreamURL)
	gogoanime := providers.NewConsumet(def.ConsumetURL, "gogoanime")
	zoro := providers.NewConsumet(def.ConsumetURL, "zoro")
	aniwatch := providers.NewAniwatch(def.AniwatchURL)

	resolver := app.NewResolver()
	resolver.Register("hianime", hianime)
	resolver.Register("toonstream", toonstream)
	resolver.Register("gogoanime", gogoanime)
	resolver.Register("zoro", zoro)
	resolver.Register("aniwatch", aniwatch)

	profileRepo := sqlite.NewProfileRepository(db.SQL)
	profileSvc := app.NewProfileService(profileRepo)
	notifRepo := sqlite.NewNotificationsRepository(db.SQL)

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	notifier := app.NewEpisodeNotifier(logger.With().Str("component", "notifier").Logger(), notifRepo, resolver)
	go notifier.Run(shutdownCtx)

	srv := httpapi.NewServer(logger, gateway, resolver, profileSvc, notifRepo, httpapi.Providers{
		HiAnime:    hianime,
		ToonStream: toonstream,
		Gogoanime:  gogoanime,
		Zoro:       zoro,
		Aniwatch:   aniwatch,
	})
	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", *addr).Msg("listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server crashed")
			stop()
		}
	}()

	<-shutdownCtx.Done()
	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(ctx)
	logger.Info().Msg("bye")
}

// newCache builds the selected gateway. An unreachable Redis degrades to the
// no-op gateway so the proxy still serves, just without deduplication.
func newCache(ctx context.Context, logger zerolog.Logger, cfg config.Config, backend string) ports.Cache {
	switch backend {
	case "redis":
		r := cache.NewRedis(cache.RedisOptions{
			Addr:     cfg.RedisAddr(),
			Username: cfg.RedisUsername,
			Password: cfg.RedisPassword,
			TTL:      cfg.CacheTTL,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := r.Ping(pingCtx); err != nil {
			logger.Warn().Err(err).Str("addr", cfg.RedisAddr()).Msg("redis unreachable, caching disabled")
			_ = r.Close()
			return cache.NewNoop()
		}
		logger.Info().Str("addr", cfg.RedisAddr()).Msg("redis cache connected")
		return r
	case "memory":
		return cache.NewMemory(cfg.CacheTTL)
	default:
		return cache.NewNoop()
	}
}
