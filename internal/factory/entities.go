package factory

import (
	"glyphscene/internal/component"
	"glyphscene/internal/ecs"
	"glyphscene/internal/geom"
	"glyphscene/internal/physics"
)

// Draw depths.
const (
	DepthGround = 0
	DepthCrate  = 5
	DepthLogo   = 10
	DepthShape  = 20
)

// CrateOffset puts a crate's body at the center of its 16x16 pixel sprite.
var CrateOffset = geom.Vec2{X: 8, Y: 8}

// groundOffset sinks the ground body so its top edge is the ground line.
var groundOffset = geom.Vec2{Y: 8}

// NewLogo creates the animated logo entity at pos.
func NewLogo(pos geom.Vec3) *ecs.Entity {
	e := ecs.NewEntity("Logo", geom.NewTransform(pos, 0, geom.Vec2{X: 1, Y: 1}))
	e.Attach(&component.Sprite{ //nolint:errcheck // fresh entity
		Source:      SheetLogo,
		FrameWidth:  2,
		FrameHeight: 1,
		FrameCount:  4,
		FrameRate:   4,
		Animated:    true,
		Loop:        true,
	})
	e.SetActive(true)
	return e
}

// NewDebugShape creates an inactive outline entity used as a collision proxy
// target.
func NewDebugShape(pos geom.Vec2) *ecs.Entity {
	e := ecs.NewEntity("DebugShape", geom.At(pos.X, pos.Y, DepthShape))
	e.Attach(&component.Sprite{Source: SheetOutline, FrameWidth: 1, FrameHeight: 1}) //nolint:errcheck
	return e
}

// NewCrate creates a dynamic crate at pixel position pos together with its
// debug shape. Both must be added to the same scene.
func NewCrate(world physics.World, pos geom.Vec2) (crate, shape *ecs.Entity, err error) {
	shape = NewDebugShape(pos)
	crate = ecs.NewEntity("Crate", geom.At(pos.X, pos.Y, DepthCrate))

	body, err := component.NewPhysicsBody(world, physics.Dynamic, pos, CrateOffset)
	if err != nil {
		return nil, nil, err
	}
	for _, c := range []ecs.Component{
		body,
		&component.CollisionProxy{Shape: shape.ID()},
		&component.Sprite{Source: SheetCrate, FrameWidth: 1, FrameHeight: 1},
	} {
		if err := crate.Attach(c); err != nil {
			body.Release() //nolint:errcheck
			return nil, nil, err
		}
	}
	crate.SetActive(true)
	return crate, shape, nil
}

// NewGround creates a static ground strip at pixel position pos.
func NewGround(world physics.World, pos geom.Vec2, scaleX float64) (*ecs.Entity, error) {
	e := ecs.NewEntity("Ground", geom.NewTransform(geom.Vec3{X: pos.X, Y: pos.Y, Z: DepthGround}, 0, geom.Vec2{X: scaleX, Y: 1}))
	body, err := component.NewPhysicsBody(world, physics.Static, pos, groundOffset)
	if err != nil {
		return nil, err
	}
	if err := e.Attach(body); err != nil {
		body.Release() //nolint:errcheck
		return nil, err
	}
	if err := e.Attach(&component.Sprite{Source: SheetGround}); err != nil {
		return nil, err
	}
	e.SetActive(true)
	return e, nil
}

// NewRaindrop creates a dynamic, two-frame animated raindrop without a proxy.
func NewRaindrop(world physics.World, pos geom.Vec2) (*ecs.Entity, error) {
	e := ecs.NewEntity("Raindrop", geom.At(pos.X, pos.Y, DepthCrate))
	body, err := component.NewPhysicsBody(world, physics.Dynamic, pos, geom.Vec2{})
	if err != nil {
		return nil, err
	}
	if err := e.Attach(body); err != nil {
		body.Release() //nolint:errcheck
		return nil, err
	}
	if err := e.Attach(&component.Sprite{
		Source: SheetRaindrop, FrameWidth: 1, FrameHeight: 1,
		FrameCount: 2, FrameRate: 3, Animated: true, Loop: true,
	}); err != nil {
		return nil, err
	}
	e.SetActive(true)
	return e, nil
}
