package factory

import (
	"math/rand"

	"glyphscene/internal/component"
	"glyphscene/internal/ecs"
	"glyphscene/internal/geom"
	"glyphscene/internal/physics"
	"glyphscene/internal/render"
	"glyphscene/internal/scene"

	"github.com/rotisserie/eris"
)

// Layout of every demo stage, in pixels.
const (
	StageWidth  = 640
	StageHeight = 384
	groundY     = 336
	crateSize   = 16
)

// StageConfig is the part of the runtime config the stages need.
type StageConfig struct {
	PhysicsScale float64
	Gravity      float64
	Seed         int64
}

// Stage is a scene together with the physics space its bodies live in.
type Stage struct {
	Scene  *scene.Scene
	Space  *physics.Space
	Theme  render.Theme
	Center geom.Vec2

	shapes     []ecs.EntityID
	showShapes bool
	rng        *rand.Rand
}

func newStage(name string, theme int, cfg StageConfig) (*Stage, error) {
	space, err := physics.NewSpace(cfg.PhysicsScale, geom.Vec2{Y: cfg.Gravity})
	if err != nil {
		return nil, err
	}
	if err := space.SetBodySize(geom.Vec2{X: crateSize, Y: crateSize}.Scale(1 / cfg.PhysicsScale)); err != nil {
		return nil, err
	}
	space.SetFloor(groundY/cfg.PhysicsScale, 0.3)
	return &Stage{
		Scene:  scene.New(name),
		Space:  space,
		Theme:  render.ThemeFor(theme),
		Center: geom.Vec2{X: StageWidth / 2, Y: StageHeight / 2},
		rng:    rand.New(rand.NewSource(cfg.Seed)),
	}, nil
}

// Showcase builds the logo stage: an animated logo over a ground strip
// with a few crates falling onto it.
func Showcase(cfg StageConfig) (*Stage, error) {
	st, err := newStage("showcase", 0, cfg)
	if err != nil {
		return nil, err
	}
	if err := st.addGround(); err != nil {
		return nil, err
	}
	if err := st.Scene.Add(NewLogo(geom.Vec3{X: StageWidth/2 - 16, Y: 96, Z: DepthLogo})); err != nil {
		return nil, err
	}
	for _, x := range []float64{160, 320, 480} {
		if _, err := st.SpawnCrate(x); err != nil {
			return nil, err
		}
	}
	return st, nil
}

// Rain builds a stage of raindrops with random sideways drift.
func Rain(cfg StageConfig, drops int) (*Stage, error) {
	st, err := newStage("rain", 1, cfg)
	if err != nil {
		return nil, err
	}
	if err := st.addGround(); err != nil {
		return nil, err
	}
	for i := 0; i < drops; i++ {
		pos := geom.Vec2{X: st.rng.Float64() * StageWidth, Y: st.rng.Float64() * groundY / 2}
		e, err := NewRaindrop(st.Space, pos)
		if err != nil {
			return nil, err
		}
		h := component.PhysicsBodyOf(e).Handle()
		drift := (st.rng.Float64() - 0.5) * 2
		if err := st.Space.SetVelocity(h, geom.Vec2{X: drift}); err != nil {
			return nil, err
		}
		if err := st.Scene.Add(e); err != nil {
			return nil, err
		}
	}
	return st, nil
}

func (st *Stage) addGround() error {
	g, err := NewGround(st.Space, geom.Vec2{X: 0, Y: groundY}, StageWidth/(16*8.0))
	if err != nil {
		return err
	}
	return st.Scene.Add(g)
}

// SpawnCrate drops a crate at pixel column x from the top of the stage.
func (st *Stage) SpawnCrate(x float64) (*ecs.Entity, error) {
	crate, shape, err := NewCrate(st.Space, geom.Vec2{X: x, Y: 0})
	if err != nil {
		return nil, eris.Wrap(err, "spawn crate")
	}
	if err := st.Scene.Add(crate); err != nil {
		return nil, err
	}
	shape.SetActive(st.showShapes)
	if err := st.Scene.Add(shape); err != nil {
		return nil, err
	}
	st.shapes = append(st.shapes, shape.ID())
	return crate, nil
}

// SpawnRandomCrate drops a crate at a random column.
func (st *Stage) SpawnRandomCrate() (*ecs.Entity, error) {
	return st.SpawnCrate(st.rng.Float64() * (StageWidth - crateSize))
}

// ToggleShapes flips the visibility of every debug shape, including ones
// spawned later, and returns the new state.
func (st *Stage) ToggleShapes() bool {
	st.showShapes = !st.showShapes
	for _, id := range st.shapes {
		if e, ok := st.Scene.Entity(id); ok {
			e.SetActive(st.showShapes)
		}
	}
	return st.showShapes
}

// Shapes returns the debug shape ids in spawn order.
func (st *Stage) Shapes() []ecs.EntityID { return st.shapes }

// Destroy releases every body in the stage.
func (st *Stage) Destroy() error {
	st.shapes = nil
	return st.Scene.Destroy()
}
