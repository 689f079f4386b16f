package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/hollow-pines/bus"
	"github.com/mark3labs/hollow-pines/config"
	"github.com/mark3labs/hollow-pines/flavor"
	"github.com/mark3labs/hollow-pines/game"
	"github.com/mark3labs/hollow-pines/middleware"
	"github.com/mark3labs/hollow-pines/routes"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration", "err", err)
	}
	log.SetLevel(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b, err := bus.Start(ctx, bus.Options{StoreDir: cfg.NatsStoreDir})
	if err != nil {
		log.Fatal("Failed to start NATS", "err", err)
	}

	var provider flavor.Provider
	if cfg.FlavorEnabled() {
		provider = flavor.NewHTTPProvider(ctx, cfg.FlavorEndpoint, cfg.FlavorModel, cfg.FlavorAPIKey)
		log.Info("Flavor text enabled", "endpoint", cfg.FlavorEndpoint, "model", cfg.FlavorModel)
	}
	narrator := flavor.NewNarrator(provider, cfg.FlavorTimeout)

	forest := game.NewForest(cfg.WorldSeed, cfg.ItemCount)
	log.Info("Forest generated", "seed", cfg.WorldSeed, "obstacles", len(forest.Obstacles()), "items", len(forest.Items()))

	sessions := game.NewManager(ctx, b, game.ManagerConfig{
		TickRate:      cfg.TickRate,
		BroadcastRate: cfg.BroadcastRate,
		NewLayout:     func() game.Layout { return forest },
		Session: game.SessionConfig{
			JumpscareDuration: cfg.JumpscareDuration,
			SoundVolume:       cfg.SoundVolume,
			Narrator:          narrator,
		},
	})

	app := pocketbase.New()

	middleware.AddCookieSessionMiddleware(app)

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		err := routes.SetupRoutes(ctx, se.Router, b, sessions)
		if err != nil {
			return err
		}

		return se.Next()
	})

	app.OnTerminate().BindFunc(func(e *core.TerminateEvent) error {
		if err := sessions.Shutdown(); err != nil {
			log.Warn("Session shutdown", "err", err)
		}
		cancel()
		b.Close()
		return e.Next()
	})

	if err := app.Start(); err != nil {
		log.Error("Server stopped", "err", err)
		os.Exit(1)
	}
}
