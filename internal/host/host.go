// Package host drives the scene runtime on a tcell screen: it owns the demo
// stages, swaps them through a scene directory and ticks the current one at
// a fixed rate.
package host

import (
	"context"
	"errors"
	"fmt"
	"time"

	"glyphscene/internal/config"
	"glyphscene/internal/factory"
	"glyphscene/internal/metrics"
	"glyphscene/internal/render"
	"glyphscene/internal/scene"
	"glyphscene/internal/system"

	"github.com/gdamore/tcell/v2"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

const (
	rainDrops   = 24
	panCells    = 4
	maxMessages = 50
)

// Host runs one viewer's session.
type Host struct {
	screen tcell.Screen
	cfg    config.Config
	logger zerolog.Logger

	dir     *scene.Directory
	stages  []*factory.Stage
	current int

	loop   *system.Loop
	term   *render.Terminal
	camera *render.Camera
	fps    system.FrameCounter

	paused   bool
	messages []string
	run      RunLog
}

// New builds the demo stages and shows the first one. The caller keeps
// ownership of screen and must have initialised it.
func New(screen tcell.Screen, cfg config.Config, logger zerolog.Logger, session string) (*Host, error) {
	atlas := render.NewAtlas()
	if err := factory.RegisterSheets(atlas); err != nil {
		return nil, eris.Wrap(err, "register sheets")
	}

	sc := factory.StageConfig{
		PhysicsScale: cfg.PhysicsScale,
		Gravity:      cfg.Gravity,
		Seed:         time.Now().UnixNano(),
	}
	showcase, err := factory.Showcase(sc)
	if err != nil {
		return nil, eris.Wrap(err, "build showcase stage")
	}
	rain, err := factory.Rain(sc, rainDrops)
	if err != nil {
		showcase.Destroy() //nolint:errcheck
		return nil, eris.Wrap(err, "build rain stage")
	}

	logger = logger.With().Str("session", session).Logger()
	term := render.NewTerminal(screen, atlas, render.HUDRows)
	w, _ := screen.Size()
	h := &Host{
		screen: screen,
		cfg:    cfg,
		logger: logger,
		dir:    scene.NewDirectory(showcase.Scene),
		stages: []*factory.Stage{showcase, rain},
		loop:   system.NewLoop(term, system.WithLogger(logger)),
		term:   term,
		camera: render.NewCamera(showcase.Center.X, showcase.Center.Y, cfg.CellWidth, cfg.CellHeight, w, term.ViewRows()),
		run:    RunLog{Session: session, Started: time.Now()},
	}
	h.addMessage(fmt.Sprintf("Scene: %s. Tab switches, space drops a crate, q quits.", showcase.Scene.Name()))
	return h, nil
}

// Run drives frames until ctx is cancelled, the viewer quits or the screen
// stops delivering events.
func (h *Host) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)

	eventCh := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				close(eventCh)
				return
			}
			select {
			case eventCh <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(h.cfg.FPS))
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-eventCh:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				h.resize()
			case *tcell.EventKey:
				if !h.Apply(keyToAction(ev)) {
					return nil
				}
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			h.Frame(now, dt)
		}
	}
}

// Frame advances the current stage by dt seconds and paints it.
func (h *Host) Frame(now time.Time, dt float64) {
	st := h.Stage()
	if st == nil {
		return
	}
	if !h.paused {
		st.Space.Step(dt)
	}

	start := time.Now()
	h.loop.SetView(h.camera.View())
	h.loop.SetBinding(st.Theme.Binding())
	h.loop.TickDirectory(h.dir, dt)

	name := st.Scene.Name()
	failures := len(h.loop.Failures())
	h.run.Failures += failures
	metrics.EmitTick(start, name)
	metrics.EmitFailures(failures, name)
	if h.fps.Update(now) {
		metrics.EmitFPS(h.fps.FPS(), name)
	}

	h.term.DrawHUD(render.HUDStatus{
		Scene:    name,
		FPS:      h.fps.FPS(),
		Frames:   h.fps.Frames(),
		Entities: st.Scene.Len(),
		Failures: failures,
		Paused:   h.paused,
		Messages: h.messages,
	})
	h.screen.Show()
}

// Apply performs a viewer action. It returns false when the session should end.
func (h *Host) Apply(a Action) bool {
	st := h.Stage()
	switch a {
	case ActionQuit:
		return false
	case ActionNextScene:
		h.current = (h.current + 1) % len(h.stages)
		next := h.stages[h.current]
		h.dir.SetScene(next.Scene)
		h.camera.Center(next.Center.X, next.Center.Y)
		h.run.SceneSwaps++
		h.addMessage("Scene: " + next.Scene.Name())
	case ActionSpawn:
		if st == nil {
			return true
		}
		if _, err := st.SpawnRandomCrate(); err != nil {
			h.logger.Error().Err(err).Msg("spawn crate")
			h.addMessage("Could not drop a crate.")
			return true
		}
		h.run.Spawned++
	case ActionPause:
		h.paused = !h.paused
		if h.paused {
			h.addMessage("Physics paused.")
		} else {
			h.addMessage("Physics resumed.")
		}
	case ActionShapes:
		if st == nil {
			return true
		}
		if st.ToggleShapes() {
			h.addMessage("Collision shapes shown.")
		} else {
			h.addMessage("Collision shapes hidden.")
		}
	case ActionLogo:
		if st == nil {
			return true
		}
		logos := st.Scene.FindByName("Logo")
		if len(logos) == 0 {
			h.addMessage("No logo in this scene.")
			return true
		}
		for _, e := range logos {
			e.SetActive(!e.Active())
		}
	case ActionPanLeft:
		h.camera.OffsetX -= panCells * h.camera.CellWidth
	case ActionPanRight:
		h.camera.OffsetX += panCells * h.camera.CellWidth
	case ActionPanUp:
		h.camera.OffsetY -= panCells * h.camera.CellHeight
	case ActionPanDown:
		h.camera.OffsetY += panCells * h.camera.CellHeight
	case ActionRecenter:
		if st != nil {
			h.camera.Center(st.Center.X, st.Center.Y)
		}
	}
	return true
}

// Stage returns the stage whose scene the directory currently points at.
func (h *Host) Stage() *factory.Stage {
	s, ok := h.dir.Scene()
	if !ok {
		return nil
	}
	for _, st := range h.stages {
		if st.Scene == s {
			return st
		}
	}
	return nil
}

// Paused reports whether physics stepping is suspended.
func (h *Host) Paused() bool { return h.paused }

// Messages returns the message log, oldest first.
func (h *Host) Messages() []string { return h.messages }

// RunLog returns the session statistics collected so far.
func (h *Host) RunLog() RunLog {
	rl := h.run
	rl.Ended = time.Now()
	rl.Frames = h.fps.Frames()
	if secs := rl.Ended.Sub(rl.Started).Seconds(); secs > 0 {
		rl.AverageFPS = float64(rl.Frames) / secs
	}
	return rl
}

// Close writes the run log and releases every stage's physics bodies. The
// screen is left to the caller.
func (h *Host) Close() error {
	rl := h.RunLog()
	saveRunLog(h.cfg.RunLogDir, rl, h.logger)
	h.logger.Info().
		Uint64("frames", rl.Frames).
		Float64("avg_fps", rl.AverageFPS).
		Int("scene_swaps", rl.SceneSwaps).
		Int("failures", rl.Failures).
		Msg("session ended")

	h.dir.Clear()
	var errs []error
	for _, st := range h.stages {
		if err := st.Destroy(); err != nil {
			errs = append(errs, err)
		}
	}
	h.stages = nil
	return errors.Join(errs...)
}

func (h *Host) resize() {
	h.screen.Sync()
	h.term.Resize(render.HUDRows)
	w, _ := h.screen.Size()
	h.camera.Resize(w, h.term.ViewRows())
}

func (h *Host) addMessage(msg string) {
	h.messages = append(h.messages, msg)
	if len(h.messages) > maxMessages {
		h.messages = h.messages[len(h.messages)-maxMessages:]
	}
}
