package routes

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/hollow-pines/bus"
	"github.com/mark3labs/hollow-pines/game"
	"github.com/mark3labs/hollow-pines/middleware"
	"github.com/mark3labs/hollow-pines/views"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/router"
	datastar "github.com/starfederation/datastar/sdk/go"
)

func setupStreamRoutes(ctx context.Context, router *router.Router[*core.RequestEvent], b *bus.Bus, sessions *game.Manager) error {
	if b == nil {
		return fmt.Errorf("stream routes need a bus")
	}

	// GET route streaming the session snapshot and its events
	router.GET("/session/stream", func(e *core.RequestEvent) error {
		owner := middleware.PlayerID(e)
		id, err := sessions.Open(owner)
		if err != nil {
			return errorJSON(e, err)
		}

		reqCtx := e.Request.Context()
		watcher, err := b.WatchSnapshot(reqCtx, id)
		if err != nil {
			return errorJSON(e, err)
		}
		defer watcher.Stop()

		events := make(chan game.Event, 32)
		sub, err := b.SubscribeEvents(id, events)
		if err != nil {
			return errorJSON(e, err)
		}
		defer sub.Unsubscribe()

		sse := datastar.NewSSE(e.Response, e.Request)

		if snap, err := sessions.Snapshot(owner); err == nil {
			sendSnapshot(sse, snap)
		}

		for {
			select {
			case <-reqCtx.Done():
				return nil
			case <-ctx.Done():
				return nil
			case entry, ok := <-watcher.Updates():
				if !ok {
					return nil
				}
				if entry == nil {
					continue
				}
				if entry.Operation() != jetstream.KeyValuePut {
					// Session closed
					return nil
				}

				var snap game.Snapshot
				if err := json.Unmarshal(entry.Value(), &snap); err != nil {
					log.Warn("Error unmarshaling snapshot", "session", id, "err", err)
					continue
				}
				sendSnapshot(sse, snap)
			case event := <-events:
				data, err := json.Marshal(map[string]any{"lastEvent": event})
				if err != nil {
					continue
				}
				if err := sse.MergeSignals(data); err != nil {
					log.Debug("Error sending event", "session", id, "err", err)
				}
			}
		}
	})

	return nil
}

func sendSnapshot(sse *datastar.ServerSentEventGenerator, snap game.Snapshot) {
	data, err := json.Marshal(map[string]any{"snapshot": snap})
	if err != nil {
		log.Error("Error marshaling snapshot", "session", snap.ID, "err", err)
		return
	}
	if err := sse.MergeSignals(data); err != nil {
		log.Debug("Error sending snapshot", "session", snap.ID, "err", err)
		return
	}
	if err := sse.MergeFragmentTempl(views.HUD(snap)); err != nil {
		log.Debug("Error sending HUD", "session", snap.ID, "err", err)
	}
}
