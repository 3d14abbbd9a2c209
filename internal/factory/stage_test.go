package factory

import (
	"testing"

	"glyphscene/internal/component"
	"glyphscene/internal/physics"
	"glyphscene/internal/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCfg = StageConfig{PhysicsScale: 32, Gravity: 9.8, Seed: 7}

func TestRegisterSheets(t *testing.T) {
	a := render.NewAtlas()
	require.NoError(t, RegisterSheets(a))
	assert.ElementsMatch(t, []string{SheetLogo, SheetCrate, SheetGround, SheetOutline, SheetRaindrop}, a.Names())

	logo, err := a.Lookup(SheetLogo)
	require.NoError(t, err)
	// the logo animation has 4 frames of 2 cells
	_, _, _, _, err = logo.Window(3, 2, 1, 0, 0)
	assert.NoError(t, err)

	assert.Error(t, RegisterSheets(a), "sheets register once")
}

func TestShowcaseContents(t *testing.T) {
	st, err := Showcase(testCfg)
	require.NoError(t, err)

	assert.Len(t, st.Scene.FindByName("Logo"), 1)
	assert.Len(t, st.Scene.FindByName("Ground"), 1)
	crates := st.Scene.FindByName("Crate")
	require.Len(t, crates, 3)
	assert.Len(t, st.Shapes(), 3)
	// ground + 3 crates
	assert.Equal(t, 4, st.Space.Len())

	for _, c := range crates {
		assert.True(t, c.Active())
		body := component.PhysicsBodyOf(c)
		require.NotNil(t, body)
		assert.Equal(t, physics.Dynamic, body.Mode)

		proxy := component.CollisionProxyOf(c)
		require.NotNil(t, proxy)
		shape, ok := st.Scene.Entity(proxy.Shape)
		require.True(t, ok)
		assert.False(t, shape.Active(), "debug shapes start hidden")
		assert.NotNil(t, component.RenderableOf(c))
	}

	ground := st.Scene.FindByName("Ground")[0]
	assert.Equal(t, physics.Static, component.PhysicsBodyOf(ground).Mode)
}

func TestCrateBodyMatchesSpawnPosition(t *testing.T) {
	st, err := Showcase(testCfg)
	require.NoError(t, err)
	crate, err := st.SpawnCrate(100)
	require.NoError(t, err)

	px, err := component.PhysicsBodyOf(crate).PixelPosition()
	require.NoError(t, err)
	assert.InDelta(t, 100, px.X, 1e-9)
	assert.InDelta(t, 0, px.Y, 1e-9)
}

func TestCratesSettleOnGround(t *testing.T) {
	st, err := Showcase(testCfg)
	require.NoError(t, err)
	step(st, 600)
	for _, c := range st.Scene.FindByName("Crate") {
		px, err := component.PhysicsBodyOf(c).PixelPosition()
		require.NoError(t, err)
		assert.InDelta(t, groundY-crateSize, px.Y, 4)
	}
}

func TestCratesInOneColumnStack(t *testing.T) {
	st, err := Showcase(testCfg)
	require.NoError(t, err)
	lower, err := st.SpawnCrate(100)
	require.NoError(t, err)
	step(st, 120)
	upper, err := st.SpawnCrate(100)
	require.NoError(t, err)
	step(st, 600)

	lo, err := component.PhysicsBodyOf(lower).PixelPosition()
	require.NoError(t, err)
	up, err := component.PhysicsBodyOf(upper).PixelPosition()
	require.NoError(t, err)
	assert.InDelta(t, groundY-crateSize, lo.Y, 4)
	assert.InDelta(t, groundY-2*crateSize, up.Y, 6)
}

func step(st *Stage, n int) {
	for i := 0; i < n; i++ {
		st.Space.Step(1.0 / 60)
	}
}

func TestToggleShapes(t *testing.T) {
	st, err := Showcase(testCfg)
	require.NoError(t, err)

	assert.True(t, st.ToggleShapes())
	crate, err := st.SpawnRandomCrate()
	require.NoError(t, err)
	for _, id := range st.Shapes() {
		e, ok := st.Scene.Entity(id)
		require.True(t, ok)
		assert.True(t, e.Active())
	}
	assert.NotNil(t, crate)

	assert.False(t, st.ToggleShapes())
	for _, id := range st.Shapes() {
		e, _ := st.Scene.Entity(id)
		assert.False(t, e.Active())
	}
}

func TestRain(t *testing.T) {
	st, err := Rain(testCfg, 12)
	require.NoError(t, err)
	assert.Len(t, st.Scene.FindByName("Raindrop"), 12)
	assert.Equal(t, 13, st.Space.Len())
	assert.Equal(t, "rain", st.Scene.Name())
}

func TestDestroyReleasesBodies(t *testing.T) {
	st, err := Showcase(testCfg)
	require.NoError(t, err)
	require.NoError(t, st.Destroy())
	assert.Equal(t, 0, st.Space.Len())
	assert.Equal(t, 0, st.Scene.Len())
	assert.Empty(t, st.Shapes())
}

func TestStageRejectsBadScale(t *testing.T) {
	_, err := Showcase(StageConfig{PhysicsScale: 0})
	assert.Error(t, err)
}
