// Package physics defines the contract the runtime consumes from a physics
// world, plus Space, an implementation on top of Chipmunk2D used by the
// demo stages and tests.
package physics

import (
	"glyphscene/internal/geom"

	"github.com/rotisserie/eris"
)

// BodyHandle is an opaque reference to a simulation body.
type BodyHandle uint64

// Mode is the kinematic mode of a body.
type Mode uint8

const (
	Static  Mode = iota // position owned by game logic, never read back
	Dynamic             // position owned by the simulation
)

func (m Mode) String() string {
	switch m {
	case Static:
		return "static"
	case Dynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

// ErrBodyNotFound is returned for handles the world does not know, including
// handles of destroyed bodies.
var ErrBodyNotFound = eris.New("body not found")

// World owns simulation bodies. Positions are in simulation units; Scale is
// the number of pixels per simulation unit.
type World interface {
	CreateBody(mode Mode, pos geom.Vec2) (BodyHandle, error)
	Position(h BodyHandle) (geom.Vec2, error)
	DestroyBody(h BodyHandle) error
	Scale() float64
}
