package physics

import (
	"math"

	"glyphscene/internal/geom"

	"github.com/jakecoffman/cp"
	"github.com/rotisserie/eris"
)

// floorRadius is the half thickness of the floor segment, in simulation
// units. The segment is kept thick so fast bodies cannot step through it.
const floorRadius = 1.0

type body struct {
	mode  Mode
	body  *cp.Body
	shape *cp.Shape
}

// Space is a World backed by a Chipmunk2D space. Every body carries a box
// shape of the space's body size. It is not safe for concurrent use; the
// host steps it on the same goroutine that ticks the scene.
type Space struct {
	scale    float64
	space    *cp.Space
	size     geom.Vec2
	friction float64
	floor    *cp.Shape

	bodies map[BodyHandle]*body
	next   BodyHandle
}

// NewSpace creates an empty space with the given pixels-per-unit scale and
// gravity (simulation units per second squared). Bodies default to unit
// boxes.
func NewSpace(scale float64, gravity geom.Vec2) (*Space, error) {
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return nil, eris.Errorf("invalid physics scale %v", scale)
	}
	space := cp.NewSpace()
	space.SetGravity(toVector(gravity))
	return &Space{
		scale:    scale,
		space:    space,
		size:     geom.Vec2{X: 1, Y: 1},
		friction: 0.7,
		bodies:   make(map[BodyHandle]*body),
		next:     1,
	}, nil
}

// SetBodySize sets the box size, in simulation units, of bodies created
// from now on.
func (s *Space) SetBodySize(size geom.Vec2) error {
	if size.X <= 0 || size.Y <= 0 {
		return eris.Errorf("invalid body size %v", size)
	}
	s.size = size
	return nil
}

// SetFloor places a static floor whose top surface is at simulation y.
// bounce is the floor's elasticity. A previous floor is replaced.
func (s *Space) SetFloor(y, bounce float64) {
	if s.floor != nil {
		s.space.RemoveShape(s.floor)
	}
	const reach = 1e6
	yc := y + floorRadius
	floor := cp.NewSegment(s.space.StaticBody, cp.Vector{X: -reach, Y: yc}, cp.Vector{X: reach, Y: yc}, floorRadius)
	floor.SetElasticity(bounce)
	floor.SetFriction(s.friction)
	s.floor = s.space.AddShape(floor)
}

func (s *Space) Scale() float64 { return s.scale }

// Len returns the number of live bodies.
func (s *Space) Len() int { return len(s.bodies) }

func (s *Space) CreateBody(mode Mode, pos geom.Vec2) (BodyHandle, error) {
	var b *cp.Body
	switch mode {
	case Static:
		b = cp.NewStaticBody()
	case Dynamic:
		// Infinite moment: bodies slide and stack but never spin, since
		// only positions are read back.
		b = cp.NewBody(1, math.Inf(1))
	default:
		return 0, eris.Errorf("invalid body mode %d", mode)
	}
	b.SetPosition(toVector(pos))
	s.space.AddBody(b)
	shape := cp.NewBox(b, s.size.X, s.size.Y, 0)
	shape.SetFriction(s.friction)
	s.space.AddShape(shape)

	h := s.next
	s.next++
	s.bodies[h] = &body{mode: mode, body: b, shape: shape}
	return h, nil
}

func (s *Space) Position(h BodyHandle) (geom.Vec2, error) {
	b, ok := s.bodies[h]
	if !ok {
		return geom.Vec2{}, eris.Wrapf(ErrBodyNotFound, "body %d", h)
	}
	return fromVector(b.body.Position()), nil
}

func (s *Space) DestroyBody(h BodyHandle) error {
	b, ok := s.bodies[h]
	if !ok {
		return eris.Wrapf(ErrBodyNotFound, "body %d", h)
	}
	s.space.RemoveShape(b.shape)
	s.space.RemoveBody(b.body)
	delete(s.bodies, h)
	return nil
}

// SetPosition teleports a body.
func (s *Space) SetPosition(h BodyHandle, pos geom.Vec2) error {
	b, ok := s.bodies[h]
	if !ok {
		return eris.Wrapf(ErrBodyNotFound, "body %d", h)
	}
	b.body.SetPosition(toVector(pos))
	if b.mode == Static {
		s.space.ReindexShapesForBody(b.body)
	}
	return nil
}

// SetVelocity sets a dynamic body's velocity. Static bodies ignore it.
func (s *Space) SetVelocity(h BodyHandle, vel geom.Vec2) error {
	b, ok := s.bodies[h]
	if !ok {
		return eris.Wrapf(ErrBodyNotFound, "body %d", h)
	}
	if b.mode == Dynamic {
		b.body.SetVelocityVector(toVector(vel))
	}
	return nil
}

// Step advances the simulation by dt seconds. Non-positive and non-finite
// steps are ignored.
func (s *Space) Step(dt float64) {
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return
	}
	s.space.Step(dt)
}

func toVector(v geom.Vec2) cp.Vector   { return cp.Vector{X: v.X, Y: v.Y} }
func fromVector(v cp.Vector) geom.Vec2 { return geom.Vec2{X: v.X, Y: v.Y} }
