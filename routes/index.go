package routes

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/hollow-pines/game"
	"github.com/mark3labs/hollow-pines/middleware"
	"github.com/mark3labs/hollow-pines/views"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/router"
	datastar "github.com/starfederation/datastar/sdk/go"
)

func setupIndexRoutes(router *router.Router[*core.RequestEvent], sessions *game.Manager) error {
	router.GET("/", func(e *core.RequestEvent) error {
		owner := middleware.PlayerID(e)
		id, err := sessions.Open(owner)
		if err != nil {
			return errorJSON(e, err)
		}
		return views.Index(id).Render(e.Request.Context(), e.Response)
	})

	router.POST("/session/start", func(e *core.RequestEvent) error {
		return postCommand(e, sessions, game.StartCommand{})
	})

	router.POST("/session/restart", func(e *core.RequestEvent) error {
		return postCommand(e, sessions, game.RestartCommand{})
	})

	// POST route for control input
	router.POST("/input", func(e *core.RequestEvent) error {
		var in game.Input
		if err := datastar.ReadSignals(e.Request, &in); err != nil {
			log.Debug("Error reading signals", "err", err)
			return e.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return postCommand(e, sessions, game.InputCommand{Input: in})
	})

	router.GET("/logout", func(e *core.RequestEvent) error {
		owner := middleware.PlayerID(e)
		if err := sessions.Close(owner); err != nil && !errors.Is(err, game.ErrSessionNotFound) {
			log.Warn("close session on logout", "owner", owner, "err", err)
		}
		if err := middleware.Logout(e); err != nil {
			return err
		}
		return e.Redirect(http.StatusFound, "/")
	})

	return nil
}

func postCommand(e *core.RequestEvent, sessions *game.Manager, cmd game.Command) error {
	if err := sessions.Post(middleware.PlayerID(e), cmd); err != nil {
		return errorJSON(e, err)
	}
	return e.JSON(http.StatusOK, map[string]bool{"success": true})
}

// errorJSON maps session errors to status codes
func errorJSON(e *core.RequestEvent, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, game.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, game.ErrInboxFull):
		status = http.StatusTooManyRequests
	case errors.Is(err, game.ErrSessionClosed):
		status = http.StatusServiceUnavailable
	}
	return e.JSON(status, map[string]string{"error": err.Error()})
}
