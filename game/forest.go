package game

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mark3labs/hollow-pines/game/shared"
)

const (
	forestExtent     = 92.0 // obstacles stay this far inside the boundary
	spawnClearRadius = 8.0
	itemHeight       = 1.2
	noiseFrequency   = 0.03
)

var (
	defaultWinZone      = WinZone{Position: mgl64.Vec3{0, 0, -80}, Radius: WinZoneRadius}
	defaultMonsterSpawn = mgl64.Vec3{60, 0, 60}
)

var itemNames = []string{
	"rusted key",
	"torn page",
	"music box",
	"silver locket",
	"cracked photograph",
	"porcelain doll",
	"tallow candle",
	"child's mitten",
}

// StaticObstacles is a fixed obstacle list
type StaticObstacles []Obstacle

func (s StaticObstacles) Obstacles() []Obstacle {
	return append([]Obstacle(nil), s...)
}

// Forest is a deterministic seeded level: tree rings around the clearing, a
// willow grove around the win zone, rock clusters, and noise-driven scatter.
type Forest struct {
	seed      int64
	obstacles []Obstacle
	items     Items
}

var _ Layout = (*Forest)(nil)
var _ shared.ObstacleProvider = StaticObstacles(nil)

// NewForest builds the level for seed with itemCount collectibles
func NewForest(seed int64, itemCount int) *Forest {
	f := &Forest{seed: seed}
	rng := rand.New(rand.NewSource(seed))

	// Rings around the starting clearing
	f.circleOfTrees(30, 10, shared.KindTree)
	f.circleOfTrees(45, 12, shared.KindDeadTree)
	f.circleOfTrees(70, 18, shared.KindTree)

	// Willow grove marks the goal
	f.sacredGrove(defaultWinZone.Position[0], defaultWinZone.Position[2], 9, 8)

	// Stone circles
	f.stoneCircle(-55, 20, 6, 4, int(seed%97))
	f.stoneCircle(50, -35, 5, 3, int(seed%89)+7)

	// Noise scatter fills the rest
	for x := -forestExtent + 4; x <= forestExtent-4; x += 8 {
		for z := -forestExtent + 4; z <= forestExtent-4; z += 8 {
			px := x + (rng.Float64()-0.5)*5
			pz := z + (rng.Float64()-0.5)*5
			f.treeFromNoise(px, pz, 0.58, int(seed))
		}
	}

	f.placeItems(rng, itemCount)
	return f
}

// Seed is the generator seed
func (f *Forest) Seed() int64 { return f.seed }

// Obstacles returns a copy of the obstacle list
func (f *Forest) Obstacles() []Obstacle {
	return append([]Obstacle(nil), f.obstacles...)
}

// Items returns a fresh copy of the items with nothing collected
func (f *Forest) Items() []Item {
	return append([]Item(nil), f.items...)
}

func (f *Forest) WinZone() WinZone { return defaultWinZone }
func (f *Forest) PlayerSpawn() mgl64.Vec2 { return mgl64.Vec2{0, 0} }
func (f *Forest) MonsterSpawn() mgl64.Vec3 { return defaultMonsterSpawn }

// add keeps an obstacle only where it cannot trap the player or hide the goal
func (f *Forest) add(x, z, radius float64, kind shared.ObstacleKind) {
	if math.Abs(x)+radius > forestExtent || math.Abs(z)+radius > forestExtent {
		return
	}
	p := mgl64.Vec2{x, z}
	if p.Len()-radius < spawnClearRadius {
		return
	}
	if p.Sub(Horizontal(defaultWinZone.Position)).Len()-radius < defaultWinZone.Radius+PlayerRadius {
		return
	}
	if p.Sub(Horizontal(defaultMonsterSpawn)).Len()-radius < 2 {
		return
	}
	f.obstacles = append(f.obstacles, Obstacle{Position: p, Radius: radius, Kind: kind})
}

// circleOfTrees creates a circle of trees with the specified radius and count
func (f *Forest) circleOfTrees(radius float64, count int, kind shared.ObstacleKind) {
	for i := 0; i < count; i++ {
		angle := float64(i) / float64(count) * math.Pi * 2
		x := math.Cos(angle) * radius
		z := math.Sin(angle) * radius

		scale := 1.0 + (math.Sin(angle*3)+1)*0.3 // Deterministic scale variation
		f.add(x, z, 1.0*scale, kind)
	}
}

// sacredGrove rings a point with evenly spaced willows
func (f *Forest) sacredGrove(centerX, centerZ, radius float64, count int) {
	for i := 0; i < count; i++ {
		angle := float64(i) / float64(count) * math.Pi * 2
		f.add(centerX+math.Cos(angle)*radius, centerZ+math.Sin(angle)*radius, 1.2, shared.KindWillow)
	}
}

// stoneCircle places small rock clusters on a ring
func (f *Forest) stoneCircle(centerX, centerZ, radius float64, count, seed int) {
	for i := 0; i < count; i++ {
		angle := float64(i) / float64(count) * math.Pi * 2
		x := centerX + math.Cos(angle)*radius
		z := centerZ + math.Sin(angle)*radius

		size := 0.5 + math.Sin(float64(seed)+float64(i*7))*0.3
		baseScale := 0.8 + math.Abs(math.Sin(float64(seed)*float64(i+1)))*0.7
		f.add(x, z, size*baseScale*1.2*1.2, shared.KindRock)
	}
}

// treeFromNoise places a tree where the layered noise exceeds threshold
func (f *Forest) treeFromNoise(x, z, threshold float64, seed int) {
	biome := fbm(x, z, 3, 2.0, 0.5, seed+42)
	terrain := fbm(x, z, 4, 2.0, 0.5, seed+123)
	detail := fbm(x, z, 6, 2.2, 0.6, seed+987)
	value := biome*0.4 + terrain*0.4 + detail*0.2
	if value <= threshold {
		return
	}

	kind := shared.KindTree
	if fbm(x, z, 2, 2.5, 0.5, seed+789) < 0.35 {
		kind = shared.KindDeadTree
	}
	scale := 0.9 + fbm(x, z, 3, 2.0, 0.5, seed+555)*0.5
	f.add(x, z, 0.8*scale, kind)
}

// placeItems scatters collectibles in open ground away from the spawn and goal
func (f *Forest) placeItems(rng *rand.Rand, count int) {
	for i := 0; i < count; i++ {
		var pos mgl64.Vec2
		for attempt := 0; attempt < 200; attempt++ {
			pos = mgl64.Vec2{
				(rng.Float64()*2 - 1) * (forestExtent - 6),
				(rng.Float64()*2 - 1) * (forestExtent - 6),
			}
			if f.openGround(pos) {
				break
			}
		}

		f.items = append(f.items, Item{
			ID:       fmt.Sprintf("item-%d", i+1),
			Name:     itemNames[i%len(itemNames)],
			Position: mgl64.Vec3{pos[0], itemHeight, pos[1]},
		})
	}
}

func (f *Forest) openGround(p mgl64.Vec2) bool {
	if p.Len() < spawnClearRadius+4 {
		return false
	}
	if p.Sub(Horizontal(defaultWinZone.Position)).Len() < defaultWinZone.Radius+4 {
		return false
	}
	for _, obs := range f.obstacles {
		if p.Sub(obs.Position).Len() < obs.Radius+PlayerRadius+ItemRadius {
			return false
		}
	}
	for _, item := range f.items {
		if p.Sub(Horizontal(item.Position)).Len() < 10 {
			return false
		}
	}
	return true
}

// noise2D implements 2D improved Perlin noise
func noise2D(x, y float64, seed int) float64 {
	// Deterministic pseudo-random number generator based on position and seed
	permute := func(i int) int {
		v := ((i * 34) + seed*6547 + 12345) % 289
		if v < 0 {
			v += 289
		}
		return v
	}

	// Grid cell coordinates
	ix := int(math.Floor(x))
	iy := int(math.Floor(y))

	// Fractional parts
	fx := x - float64(ix)
	fy := y - float64(iy)

	fade := func(t float64) float64 {
		return t * t * t * (t*(t*6-15) + 10)
	}

	a := permute(ix) + permute(iy)
	b := permute(ix+1) + permute(iy)
	c := permute(ix) + permute(iy+1)
	d := permute(ix+1) + permute(iy+1)

	grad := func(h int, x, y float64) float64 {
		h1 := h % 4
		var u, v float64
		if h1 < 2 {
			u, v = x, y
		} else {
			u, v = y, x
		}
		if h1&1 != 0 {
			u = -u
		}
		if h1&2 != 0 {
			v = -v * 2
		} else {
			v = v * 2
		}
		return u + v
	}

	ga := grad(a, fx, fy)
	gb := grad(b, fx-1, fy)
	gc := grad(c, fx, fy-1)
	gd := grad(d, fx-1, fy-1)

	u := fade(fx)
	v := fade(fy)
	result := (1-u)*((1-v)*ga+v*gc) + u*((1-v)*gb+v*gd)

	// Centered on 0.5; gradients reach ±3 so the result spans [-1, 2]
	return (result + 1) * 0.5
}

// fbm implements Fractal Brownian Motion
func fbm(x, y float64, octaves int, lacunarity, persistence float64, seed int) float64 {
	var total, maxValue float64
	frequency := noiseFrequency
	amplitude := 1.0

	for i := 0; i < octaves; i++ {
		total += noise2D(x*frequency, y*frequency, seed+i*1000) * amplitude
		maxValue += amplitude

		frequency *= lacunarity
		amplitude *= persistence
	}

	return total / maxValue
}
