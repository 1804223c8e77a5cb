// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"tripmaster/internal/auth"
	"tripmaster/internal/config"
	httptransport "tripmaster/internal/http"
	"tripmaster/internal/infra"
	"tripmaster/internal/itinerary"
	"tripmaster/internal/logger"
	"tripmaster/internal/maps"
	"tripmaster/internal/modules/trip"
	"tripmaster/internal/modules/user"
	"tripmaster/internal/secrets"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zlog := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		zlog.Fatal("database init failed", zap.Error(err))
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)
	defer redisClient.Close()

	box, err := secrets.NewBox(cfg.EncryptionKey)
	if err != nil {
		zlog.Fatal("encryption key invalid", zap.Error(err))
	}

	userStore := user.NewStore(dbPool)
	userSvc := user.NewService(userStore, box, zlog)

	// Maps features stay off when no key is configured; the trip service
	// reports that per request instead of failing startup.
	var places trip.PlaceFinder
	var directions trip.DirectionsFinder
	if cfg.Maps.APIKey != "" {
		placesSvc, err := maps.NewPlacesService(cfg.Maps.APIKey)
		if err != nil {
			zlog.Fatal("maps client init failed", zap.Error(err))
		}
		routeSvc, err := maps.NewRouteService(cfg.Maps.APIKey)
		if err != nil {
			zlog.Fatal("maps client init failed", zap.Error(err))
		}
		places = placesSvc
		directions = routeSvc
	} else {
		zlog.Warn("GOOGLE_MAPS_API_KEY not set; enrich and route endpoints disabled")
	}

	tripStore := trip.NewStore(dbPool)
	tripSvc := trip.NewService(tripStore, trip.Deps{
		Generator:         itinerary.NewGenerator(),
		Settings:          userSvc,
		Users:             userSvc,
		Places:            places,
		Directions:        directions,
		OfflineGeneration: cfg.Generation.Offline,
		MaxRetries:        cfg.Generation.MaxRetries,
		Log:               zlog,
	})

	tokens := auth.NewTokens(cfg.Auth.AccessSecret, cfg.Auth.RefreshSecret)
	sessions := auth.NewSessionStore(redisClient)

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Trips:        tripSvc,
		Users:        userSvc,
		Tokens:       tokens,
		Sessions:     sessions,
		CookieSecure: cfg.Auth.CookieSecure,
		WebOrigin:    cfg.HTTP.WebOrigin,
		Log:          zlog,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler.Routes()}

	go func() {
		<-ctx.Done()
		server.Shutdown(context.Background())
	}()

	zlog.Info("listening", zap.String("addr", cfg.HTTP.Addr))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
