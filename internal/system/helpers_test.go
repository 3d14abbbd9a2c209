package system

import (
	"testing"

	"glyphscene/internal/component"
	"glyphscene/internal/ecs"
	"glyphscene/internal/geom"
	"glyphscene/internal/physics"
	"glyphscene/internal/render"
	"glyphscene/internal/scene"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/require"
)

// stubWorld serves fixed positions and counts reads.
type stubWorld struct {
	scale     float64
	positions map[physics.BodyHandle]geom.Vec2
	next      physics.BodyHandle
	reads     int
	destroys  int
}

func newStubWorld(scale float64) *stubWorld {
	return &stubWorld{scale: scale, positions: make(map[physics.BodyHandle]geom.Vec2), next: 1}
}

func (w *stubWorld) CreateBody(_ physics.Mode, pos geom.Vec2) (physics.BodyHandle, error) {
	h := w.next
	w.next++
	w.positions[h] = pos
	return h, nil
}

func (w *stubWorld) Position(h physics.BodyHandle) (geom.Vec2, error) {
	w.reads++
	p, ok := w.positions[h]
	if !ok {
		return geom.Vec2{}, eris.Wrapf(physics.ErrBodyNotFound, "body %d", h)
	}
	return p, nil
}

func (w *stubWorld) DestroyBody(h physics.BodyHandle) error {
	w.destroys++
	delete(w.positions, h)
	return nil
}

func (w *stubWorld) Scale() float64 { return w.scale }

// recordingRenderer records draw calls; sources listed in fail are rejected.
type recordingRenderer struct {
	calls  []render.SpriteCall
	fail   map[string]bool
	panics map[string]bool
	begun  int
	ended  int
}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{fail: map[string]bool{}, panics: map[string]bool{}}
}

func (r *recordingRenderer) DrawSprite(c render.SpriteCall) error {
	if r.panics[c.Source] {
		panic("bad sprite " + c.Source)
	}
	if r.fail[c.Source] {
		return eris.Wrapf(render.ErrTextureNotFound, "source %q", c.Source)
	}
	r.calls = append(r.calls, c)
	return nil
}

func (r *recordingRenderer) BeginFrame(render.Frame) { r.begun++ }
func (r *recordingRenderer) EndFrame() error { r.ended++; return nil }

func (r *recordingRenderer) sources() []string {
	out := make([]string, 0, len(r.calls))
	for _, c := range r.calls {
		out = append(out, c.Source)
	}
	return out
}

// spriteEntity builds an active entity drawing source.
func spriteEntity(t *testing.T, s *scene.Scene, name string, pos geom.Vec3) *ecs.Entity {
	t.Helper()
	e := ecs.NewEntity(name, geom.NewTransform(pos, 0, geom.Vec2{X: 1, Y: 1}))
	require.NoError(t, e.Attach(&component.Sprite{Source: name}))
	e.SetActive(true)
	require.NoError(t, s.Add(e))
	return e
}

// bodyEntity builds an active entity with a body of the given mode whose
// simulation position is sim.
func bodyEntity(t *testing.T, s *scene.Scene, w *stubWorld, name string, mode physics.Mode, sim, offset geom.Vec2) (*ecs.Entity, *component.PhysicsBody) {
	t.Helper()
	e := spriteEntity(t, s, name, geom.Vec3{Z: 3})
	b, err := component.NewPhysicsBody(w, mode, geom.Vec2{}, offset)
	require.NoError(t, err)
	w.positions[b.Handle()] = sim
	require.NoError(t, e.Attach(b))
	return e, b
}
