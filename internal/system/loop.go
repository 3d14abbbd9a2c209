package system

import (
	"math"
	"time"

	"glyphscene/internal/component"
	"glyphscene/internal/ecs"
	"glyphscene/internal/geom"
	"glyphscene/internal/render"
	"glyphscene/internal/scene"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// Stage names the step of the pass an entity failed in.
type Stage uint8

const (
	StageSync Stage = iota
	StageDraw
)

func (s Stage) String() string {
	if s == StageSync {
		return "sync"
	}
	return "draw"
}

// Failure records one entity that was skipped for the rest of a frame.
type Failure struct {
	Entity ecs.EntityID
	Name   string
	Stage  Stage
	Err    error
}

// TickStats counts what the last tick did.
type TickStats struct {
	Synced   int // entities whose physics sync ran without error
	Drawn    int
	Skipped  int // inactive entities
	Failures int
}

// Option configures a Loop.
type Option func(*Loop)

func WithLogger(l zerolog.Logger) Option { return func(lp *Loop) { lp.logger = l } }
func WithBinding(b render.Binding) Option { return func(lp *Loop) { lp.binding = b } }
func WithView(m geom.Mat3) Option { return func(lp *Loop) { lp.view = m } }

// Loop runs the per-frame pipeline: for every active entity, sync physics
// into the transform, then draw its renderable. It is driven by a host that
// calls Tick once per animation frame from a single goroutine; scenes must
// not be mutated while a Tick is running.
type Loop struct {
	renderer render.Renderer
	logger   zerolog.Logger
	view     geom.Mat3
	binding  render.Binding

	clock    time.Duration
	failures []Failure
	stats    TickStats
}

func NewLoop(r render.Renderer, opts ...Option) *Loop {
	l := &Loop{
		renderer: r,
		logger:   zerolog.Nop(),
		view:     geom.Identity(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SetView replaces the view matrix used from the next tick on.
func (l *Loop) SetView(m geom.Mat3) { l.view = m }

// SetBinding replaces the style binding used from the next tick on.
func (l *Loop) SetBinding(b render.Binding) { l.binding = b }

// Now returns the loop's monotonic clock: the sum of every dt ticked.
func (l *Loop) Now() time.Duration { return l.clock }

// Failures returns the per-entity failures of the last tick.
func (l *Loop) Failures() []Failure { return l.failures }

// Stats returns the counters of the last tick.
func (l *Loop) Stats() TickStats { return l.stats }

// TickDirectory ticks the directory's current scene, if there is one.
func (l *Loop) TickDirectory(d *scene.Directory, dt float64) {
	if s, ok := d.Scene(); ok {
		l.Tick(s, dt)
	}
}

// Tick runs one frame over s. dt is in seconds; it advances the clock
// handed to renderables and is forwarded to them, physics stepping happens
// elsewhere. A failing entity is logged, recorded and skipped; the rest of
// the frame still runs. An entity whose collision proxy lost its shape is
// recorded but still drawn.
func (l *Loop) Tick(s *scene.Scene, dt float64) {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		l.logger.Warn().Float64("dt", dt).Msg("invalid frame delta, using 0")
		dt = 0
	}
	l.clock += time.Duration(dt * float64(time.Second))
	l.failures = nil
	l.stats = TickStats{}

	frame := render.Frame{
		View:    l.view,
		Binding: l.binding,
		Time:    l.clock,
		Delta:   dt,
	}
	fr, framed := l.renderer.(render.FrameRenderer)
	if framed {
		fr.BeginFrame(frame)
	}

	for _, e := range s.Entities() {
		if !e.Active() {
			l.stats.Skipped++
			continue
		}
		if err := SyncPhysics(s, e); err != nil {
			l.fail(e, StageSync, err)
			// A missing debug shape leaves the owner's transform current.
			if !eris.Is(err, ErrShapeNotFound) {
				continue
			}
		} else {
			l.stats.Synced++
		}
		if err := l.draw(e, frame); err != nil {
			l.fail(e, StageDraw, err)
			continue
		}
	}

	if framed {
		if err := fr.EndFrame(); err != nil {
			l.logger.Error().Err(err).Str("scene", s.Name()).Msg("end frame")
		}
	}
}

func (l *Loop) draw(e *ecs.Entity, f render.Frame) (err error) {
	d := component.RenderableOf(e)
	if d == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = eris.Errorf("draw panic: %v", r)
		}
	}()
	if err := d.Draw(l.renderer, f, e.Transform); err != nil {
		return err
	}
	l.stats.Drawn++
	return nil
}

func (l *Loop) fail(e *ecs.Entity, stage Stage, err error) {
	l.failures = append(l.failures, Failure{Entity: e.ID(), Name: e.Name(), Stage: stage, Err: err})
	l.stats.Failures++
	l.logger.Warn().
		Err(err).
		Uint64("entity_id", uint64(e.ID())).
		Str("entity", e.Name()).
		Str("stage", stage.String()).
		Msg("entity skipped this frame")
}
