// Package ssh adapts gliderlabs/ssh sessions to tcell terminals so each
// connected viewer can drive its own screen.
package ssh

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
	"github.com/rotisserie/eris"
)

// ErrNoPTY is returned for sessions opened without a pseudo-terminal.
var ErrNoPTY = eris.New("session has no pty")

// Tty implements tcell.Tty on top of an ssh session.
type Tty struct {
	sess  gossh.Session
	winCh <-chan gossh.Window
	watch sync.Once

	mu       sync.Mutex
	size     tcell.WindowSize
	onResize func()
}

// NewTty wraps s and returns the terminal type the client requested.
func NewTty(s gossh.Session) (*Tty, string, error) {
	pty, winCh, ok := s.Pty()
	if !ok {
		return nil, "", ErrNoPTY
	}
	t := &Tty{sess: s, winCh: winCh}
	t.setWindow(pty.Window)
	return t, pty.Term, nil
}

func (t *Tty) Read(b []byte) (int, error)  { return t.sess.Read(b) }
func (t *Tty) Write(b []byte) (int, error) { return t.sess.Write(b) }
func (t *Tty) Close() error                { return t.sess.Close() }

// Start, Stop and Drain have nothing to do: the channel is opened and torn
// down by the ssh server.
func (t *Tty) Start() error { return nil }
func (t *Tty) Stop() error  { return nil }
func (t *Tty) Drain() error { return nil }

func (t *Tty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.size, nil
}

// NotifyResize sets the callback run after every window change. The first
// call starts watching the session's window channel until it closes.
func (t *Tty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.onResize = cb
	t.mu.Unlock()
	t.watch.Do(func() { go t.watchWindow() })
}

func (t *Tty) watchWindow() {
	for win := range t.winCh {
		t.setWindow(win)
		t.mu.Lock()
		cb := t.onResize
		t.mu.Unlock()
		if cb != nil {
			cb()
		}
	}
}

func (t *Tty) setWindow(win gossh.Window) {
	t.mu.Lock()
	t.size = tcell.WindowSize{Width: win.Width, Height: win.Height}
	t.mu.Unlock()
}
