package routes

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/hollow-pines/bus"
	"github.com/mark3labs/hollow-pines/game"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/router"
)

// SetupRoutes initializes all routes with the bus and session manager
func SetupRoutes(ctx context.Context, router *router.Router[*core.RequestEvent], b *bus.Bus, sessions *game.Manager) error {
	err := errors.Join(
		setupIndexRoutes(router, sessions),
		setupStreamRoutes(ctx, router, b, sessions),
	)
	if err != nil {
		return fmt.Errorf("setup routes: %w", err)
	}

	return nil
}
