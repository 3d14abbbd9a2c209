package ecs

import (
	"testing"

	"glyphscene/internal/geom"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stub components used only in tests
type testComp struct {
	Base
	val int
}

func (*testComp) Type() ComponentType { return 1 }

type otherComp struct{ Base }

func (*otherComp) Type() ComponentType { return 2 }

type releasingComp struct {
	Base
	releases int
	fail     error
}

func (*releasingComp) Type() ComponentType { return 3 }

func (r *releasingComp) Release() error {
	if r.fail != nil {
		return r.fail
	}
	r.releases++
	return nil
}

type outOfRangeComp struct{ Base }

func (*outOfRangeComp) Type() ComponentType { return MaxComponentTypes }

func newTestEntity() *Entity {
	return NewEntity("test", geom.At(0, 0, 0))
}

func TestNewEntityDefaults(t *testing.T) {
	e := newTestEntity()
	assert.NotEqual(t, NilEntity, e.ID())
	assert.False(t, e.Active(), "entities start inactive")
	assert.Equal(t, "test", e.Name())
	assert.Empty(t, e.Components())

	other := newTestEntity()
	assert.Greater(t, other.ID(), e.ID())
}

func TestAttachSetsParentAndID(t *testing.T) {
	e := newTestEntity()
	c := &testComp{val: 42}
	require.NoError(t, e.Attach(c))

	assert.Equal(t, e.ID(), c.Parent())
	assert.NotZero(t, c.ComponentID())
	got, ok := e.Get(1).(*testComp)
	require.True(t, ok)
	assert.Equal(t, 42, got.val)
	assert.True(t, e.Has(1))
}

func TestAttachDuplicateTypeFails(t *testing.T) {
	e := newTestEntity()
	first := &testComp{val: 1}
	require.NoError(t, e.Attach(first))
	require.NoError(t, e.Attach(&otherComp{}))
	before := e.Components()

	second := &testComp{val: 2}
	err := e.Attach(second)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrDuplicateComponent))

	assert.Equal(t, before, e.Components(), "failed attach must not change the component set")
	assert.Same(t, first, e.Get(1))
	assert.Equal(t, NilEntity, second.Parent())
}

func TestAttachBoundComponentFails(t *testing.T) {
	a, b := newTestEntity(), newTestEntity()
	c := &testComp{}
	require.NoError(t, a.Attach(c))

	err := b.Attach(c)
	assert.True(t, eris.Is(err, ErrComponentBound))
	assert.False(t, b.Has(1))
	assert.Equal(t, a.ID(), c.Parent())
}

func TestAttachRejectsInvalid(t *testing.T) {
	e := newTestEntity()
	assert.True(t, eris.Is(e.Attach(nil), ErrNilComponent))
	var typedNil *testComp
	assert.True(t, eris.Is(e.Attach(typedNil), ErrNilComponent))
	assert.True(t, eris.Is(e.Detach(typedNil), ErrComponentNotFound))
	assert.True(t, eris.Is(e.Attach(&outOfRangeComp{}), ErrInvalidComponentType))
	assert.Empty(t, e.Components())
}

func TestDetachRemovesExactlyOne(t *testing.T) {
	e := newTestEntity()
	a, b := &testComp{}, &otherComp{}
	require.NoError(t, e.Attach(a))
	require.NoError(t, e.Attach(b))

	require.NoError(t, e.Detach(a))
	assert.Nil(t, e.Get(1))
	assert.Same(t, b, e.Get(2))
	assert.Equal(t, []Component{b}, e.Components())
}

func TestDetachMatchesByIdentityNotType(t *testing.T) {
	e := newTestEntity()
	attached := &testComp{}
	require.NoError(t, e.Attach(attached))

	// Same type, never attached.
	stranger := &testComp{}
	err := e.Detach(stranger)
	assert.True(t, eris.Is(err, ErrComponentNotFound))
	assert.Same(t, attached, e.Get(1), "failed detach must not mutate")

	// Attached elsewhere.
	other := newTestEntity()
	foreign := &testComp{}
	require.NoError(t, other.Attach(foreign))
	assert.True(t, eris.Is(e.Detach(foreign), ErrComponentNotFound))
	assert.Same(t, attached, e.Get(1))
	assert.Same(t, foreign, other.Get(1))

	assert.True(t, eris.Is(e.Detach(nil), ErrComponentNotFound))
}

func TestDetachReleasesOnce(t *testing.T) {
	e := newTestEntity()
	r := &releasingComp{}
	require.NoError(t, e.Attach(r))

	require.NoError(t, e.Detach(r))
	assert.Equal(t, 1, r.releases)
	assert.False(t, e.Has(3))

	assert.Error(t, e.Detach(r), "second detach is not a member any more")
	assert.Equal(t, 1, r.releases)
}

func TestDetachReleaseFailureKeepsComponent(t *testing.T) {
	e := newTestEntity()
	boom := eris.New("boom")
	r := &releasingComp{fail: boom}
	require.NoError(t, e.Attach(r))

	err := e.Detach(r)
	require.Error(t, err)
	assert.True(t, eris.Is(err, boom))
	assert.Same(t, r, e.Get(3))
}

func TestDetachAll(t *testing.T) {
	e := newTestEntity()
	r := &releasingComp{}
	require.NoError(t, e.Attach(&testComp{}))
	require.NoError(t, e.Attach(r))
	require.NoError(t, e.Attach(&otherComp{}))

	require.NoError(t, e.DetachAll())
	assert.Empty(t, e.Components())
	assert.Equal(t, 1, r.releases)
}

func TestSetActiveLeavesComponents(t *testing.T) {
	e := newTestEntity()
	c := &testComp{val: 3}
	require.NoError(t, e.Attach(c))

	e.SetActive(true)
	assert.True(t, e.Active())
	e.SetActive(false)
	assert.False(t, e.Active())
	assert.Same(t, c, e.Get(1))
	assert.Equal(t, 3, c.val)
}

func TestGetOutOfRangeIsAbsent(t *testing.T) {
	e := newTestEntity()
	assert.Nil(t, e.Get(MaxComponentTypes+1))
	assert.False(t, e.Has(0))
}
