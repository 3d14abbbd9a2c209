package scene

import "sync/atomic"

// Directory is the single slot naming the current scene. Hosts construct
// one at startup, pass it to whatever needs the current scene, and Clear it
// at shutdown. Reads after a SetScene always observe the new scene.
type Directory struct {
	current atomic.Pointer[Scene]
}

// NewDirectory returns a directory holding initial, which may be nil.
func NewDirectory(initial *Scene) *Directory {
	d := &Directory{}
	if initial != nil {
		d.current.Store(initial)
	}
	return d
}

// SetScene makes s current and returns the previous scene.
func (d *Directory) SetScene(s *Scene) *Scene {
	return d.current.Swap(s)
}

// Scene returns the current scene, if any.
func (d *Directory) Scene() (*Scene, bool) {
	s := d.current.Load()
	return s, s != nil
}

// Clear empties the slot and returns what it held.
func (d *Directory) Clear() *Scene {
	return d.current.Swap(nil)
}
