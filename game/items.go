package game

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/mark3labs/hollow-pines/game/physics"
	"github.com/samber/lo"
)

// Item is a collectible the player must gather before the win zone opens
type Item struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Position  mgl64.Vec3 `json:"position"`
	Collected bool       `json:"collected"`
}

// Items is the per-session item list
type Items []Item

// Remaining counts items still in the world
func (items Items) Remaining() int {
	return lo.CountBy(items, func(item Item) bool {
		return !item.Collected
	})
}

// AllCollected reports whether the win zone may trigger
func (items Items) AllCollected() bool {
	return items.Remaining() == 0
}

// Collect casts a ray of length InteractReach from origin along dir and
// marks the nearest uncollected item it hits. It returns the collected item.
func (items Items) Collect(origin, dir mgl64.Vec3) (Item, bool) {
	nearest := -1
	best := InteractReach
	for i, item := range items {
		if item.Collected {
			continue
		}
		dist, ok := physics.RaySphere(origin, dir, InteractReach, item.Position, ItemRadius)
		if !ok || dist > best {
			continue
		}
		if nearest == -1 || dist < best {
			nearest = i
			best = dist
		}
	}

	if nearest == -1 {
		return Item{}, false
	}
	items[nearest].Collected = true
	return items[nearest], true
}
