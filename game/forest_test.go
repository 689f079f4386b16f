package game

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestForestIsDeterministic(t *testing.T) {
	a := NewForest(1337, 5)
	b := NewForest(1337, 5)

	if len(a.Obstacles()) != len(b.Obstacles()) {
		t.Fatalf("obstacle counts differ: %d vs %d", len(a.Obstacles()), len(b.Obstacles()))
	}
	for i, obs := range a.Obstacles() {
		if obs != b.Obstacles()[i] {
			t.Fatalf("obstacle %d differs: %+v vs %+v", i, obs, b.Obstacles()[i])
		}
	}
	for i, item := range a.Items() {
		if item != b.Items()[i] {
			t.Fatalf("item %d differs: %+v vs %+v", i, item, b.Items()[i])
		}
	}
}

func TestForestKeepsSpawnAndGoalClear(t *testing.T) {
	f := NewForest(99, 5)
	spawn := f.PlayerSpawn()
	goal := f.WinZone()

	if len(f.Obstacles()) == 0 {
		t.Fatalf("expected a populated forest")
	}
	for _, obs := range f.Obstacles() {
		if math.Abs(obs.Position[0])+obs.Radius > WorldBoundary || math.Abs(obs.Position[1])+obs.Radius > WorldBoundary {
			t.Fatalf("obstacle %+v crosses the world edge", obs)
		}
		if obs.Position.Sub(spawn).Len()-obs.Radius < PlayerRadius {
			t.Fatalf("obstacle %+v overlaps the spawn point", obs)
		}
		if obs.Position.Sub(Horizontal(goal.Position)).Len()-obs.Radius < goal.Radius {
			t.Fatalf("obstacle %+v intrudes on the win zone", obs)
		}
	}
}

func TestForestItemsOnOpenGround(t *testing.T) {
	f := NewForest(7, 5)
	items := f.Items()
	if len(items) != 5 {
		t.Fatalf("got %d items, want 5", len(items))
	}

	seen := map[string]bool{}
	for _, item := range items {
		if seen[item.ID] {
			t.Fatalf("duplicate item id %q", item.ID)
		}
		seen[item.ID] = true

		if item.Collected {
			t.Fatalf("item %q starts collected", item.ID)
		}
		for _, obs := range f.Obstacles() {
			if Horizontal(item.Position).Sub(obs.Position).Len() < obs.Radius+ItemRadius {
				t.Fatalf("item %q buried in obstacle %+v", item.ID, obs)
			}
		}
	}
}

func TestForestReturnsCopies(t *testing.T) {
	f := NewForest(3, 2)

	obstacles := f.Obstacles()
	obstacles[0].Position = mgl64.Vec2{0, 0}
	if f.Obstacles()[0].Position == (mgl64.Vec2{0, 0}) {
		t.Fatalf("mutating the returned obstacles changed the forest")
	}

	items := f.Items()
	items[0].Collected = true
	if f.Items()[0].Collected {
		t.Fatalf("mutating the returned items changed the forest")
	}
}

func TestNoise2DInRange(t *testing.T) {
	for x := -50.0; x < 50; x += 3.7 {
		for y := -50.0; y < 50; y += 4.1 {
			v := fbm(x, y, 4, 2, 0.5, 11)
			if v < -1 || v > 2 || math.IsNaN(v) {
				t.Fatalf("fbm(%f, %f) = %f", x, y, v)
			}
		}
	}
}
