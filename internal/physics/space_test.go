package physics

import (
	"math"
	"testing"

	"glyphscene/internal/geom"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSpace(t *testing.T) *Space {
	t.Helper()
	s, err := NewSpace(2, geom.Vec2{Y: 10})
	require.NoError(t, err)
	return s
}

func settle(s *Space, steps int) {
	for i := 0; i < steps; i++ {
		s.Step(1.0 / 60)
	}
}

func TestNewSpaceRejectsBadScale(t *testing.T) {
	for _, scale := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := NewSpace(scale, geom.Vec2{})
		assert.Error(t, err, "scale %v", scale)
	}
}

func TestSetBodySizeRejectsNonPositive(t *testing.T) {
	s := newTestSpace(t)
	assert.Error(t, s.SetBodySize(geom.Vec2{X: 0, Y: 1}))
	assert.NoError(t, s.SetBodySize(geom.Vec2{X: 0.5, Y: 0.5}))
}

func TestCreatePositionDestroy(t *testing.T) {
	s := newTestSpace(t)
	h, err := s.CreateBody(Dynamic, geom.Vec2{X: 3, Y: 4})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())

	pos, err := s.Position(h)
	require.NoError(t, err)
	assert.Equal(t, geom.Vec2{X: 3, Y: 4}, pos)

	require.NoError(t, s.DestroyBody(h))
	assert.Equal(t, 0, s.Len())

	_, err = s.Position(h)
	assert.True(t, eris.Is(err, ErrBodyNotFound))
	assert.True(t, eris.Is(s.DestroyBody(h), ErrBodyNotFound))
}

func TestCreateBodyRejectsUnknownMode(t *testing.T) {
	s := newTestSpace(t)
	_, err := s.CreateBody(Mode(7), geom.Vec2{})
	assert.Error(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestHandlesAreNotReused(t *testing.T) {
	s := newTestSpace(t)
	a, _ := s.CreateBody(Static, geom.Vec2{})
	require.NoError(t, s.DestroyBody(a))
	b, _ := s.CreateBody(Static, geom.Vec2{})
	assert.NotEqual(t, a, b)
}

func TestStepMovesOnlyDynamicBodies(t *testing.T) {
	s := newTestSpace(t)
	dyn, _ := s.CreateBody(Dynamic, geom.Vec2{})
	st, _ := s.CreateBody(Static, geom.Vec2{X: 100, Y: 100})
	require.NoError(t, s.SetVelocity(dyn, geom.Vec2{X: 2}))
	require.NoError(t, s.SetVelocity(st, geom.Vec2{X: 2}))

	s.Step(0.5)
	s.Step(0.5)

	pos, _ := s.Position(dyn)
	assert.InDelta(t, 2.0, pos.X, 1e-9)
	assert.Greater(t, pos.Y, 0.0, "gravity pulls towards +y")

	pos, _ = s.Position(st)
	assert.Equal(t, geom.Vec2{X: 100, Y: 100}, pos)
}

func TestStepIgnoresInvalidDelta(t *testing.T) {
	s := newTestSpace(t)
	h, _ := s.CreateBody(Dynamic, geom.Vec2{X: 1})
	s.Step(0)
	s.Step(-1)
	s.Step(math.NaN())
	pos, _ := s.Position(h)
	assert.Equal(t, geom.Vec2{X: 1}, pos)
}

func TestBodyRestsOnFloor(t *testing.T) {
	s := newTestSpace(t)
	s.SetFloor(5, 0)
	h, _ := s.CreateBody(Dynamic, geom.Vec2{})
	settle(s, 600)

	pos, _ := s.Position(h)
	// unit box: the center rests half a unit above the floor surface
	assert.InDelta(t, 4.5, pos.Y, 0.15)
}

func TestBodiesStackInsteadOfOverlapping(t *testing.T) {
	s := newTestSpace(t)
	s.SetFloor(5, 0)
	lower, _ := s.CreateBody(Dynamic, geom.Vec2{})
	settle(s, 120)
	upper, _ := s.CreateBody(Dynamic, geom.Vec2{})
	settle(s, 600)

	lo, _ := s.Position(lower)
	up, _ := s.Position(upper)
	assert.InDelta(t, 4.5, lo.Y, 0.15)
	assert.InDelta(t, 3.5, up.Y, 0.25)
}

func TestSetFloorReplacesPrevious(t *testing.T) {
	s := newTestSpace(t)
	s.SetFloor(2, 0)
	s.SetFloor(5, 0)
	h, _ := s.CreateBody(Dynamic, geom.Vec2{})
	settle(s, 600)
	pos, _ := s.Position(h)
	assert.InDelta(t, 4.5, pos.Y, 0.15)
}

func TestSetPositionTeleports(t *testing.T) {
	s := newTestSpace(t)
	h, _ := s.CreateBody(Static, geom.Vec2{})
	require.NoError(t, s.SetPosition(h, geom.Vec2{X: 7, Y: -2}))
	pos, _ := s.Position(h)
	assert.Equal(t, geom.Vec2{X: 7, Y: -2}, pos)
	assert.True(t, eris.Is(s.SetPosition(99, geom.Vec2{}), ErrBodyNotFound))
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "static", Static.String())
	assert.Equal(t, "dynamic", Dynamic.String())
	assert.Equal(t, "unknown", Mode(9).String())
}
