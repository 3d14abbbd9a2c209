// glyphscene-server serves the scene demo over SSH, one independent host
// per connection. Build:
//
//	go build -o glyphscene-server ./cmd/server
//
// Usage:
//
//	./glyphscene-server [--port 2222] [--key server_host_key]
//
// Connect with:
//
//	ssh -t -p 2222 localhost
package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
	"unicode"

	"glyphscene/internal/config"
	"glyphscene/internal/host"
	"glyphscene/internal/metrics"
	internalssh "glyphscene/internal/ssh"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	xssh "golang.org/x/crypto/ssh"
)

// allowedTerms are the TERM values a client may ask for. Anything else falls
// back to xterm-256color so clients cannot point terminfo lookups elsewhere.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"rxvt-unicode":          true,
	"rxvt-unicode-256color": true,
}

const maxNameBytes = 16

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	port := flag.Int("port", cfg.SSHPort, "SSH server port")
	keyFile := flag.String("key", cfg.HostKey, "Path to the PEM-encoded host key (auto-generated if absent)")
	flag.Parse()

	logger, closer, err := cfg.NewLogger(consoleWriter(os.Stderr, false))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	if cfg.StatsdAddress != "" {
		if err := metrics.Init(cfg.StatsdAddress, []string{"binary:server"}); err != nil {
			logger.Warn().Err(err).Msg("statsd disabled")
		}
		defer metrics.Close() //nolint:errcheck
	}

	signer, err := loadOrCreateHostKey(*keyFile, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("host key")
	}

	srv := &gossh.Server{
		Addr: fmt.Sprintf(":%d", *port),
		Handler: func(s gossh.Session) {
			handleSession(s, cfg, logger)
		},
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// Any client may connect; the demo has no accounts.
		HostSigners: []gossh.Signer{signer},
	}

	logger.Info().Int("port", *port).Msgf("listening, connect with: ssh -t -p %d localhost", *port)
	logger.Fatal().Err(srv.ListenAndServe()).Msg("ssh server stopped")
}

// consoleWriter formats log lines for an operator watching the server's
// terminal. It is only used when no log file is configured.
func consoleWriter(out io.Writer, noColor bool) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly, NoColor: noColor}
}

// termMu serialises os.Setenv("TERM") around screen creation.
var termMu sync.Mutex

// handleSession runs one host for the lifetime of the connection.
func handleSession(s gossh.Session, cfg config.Config, logger zerolog.Logger) {
	id := uuid.NewString()
	logger = logger.With().Str("user", sanitizeName(s.User())).Logger()

	tty, term, err := internalssh.NewTty(s)
	if err != nil {
		fmt.Fprintln(s, "This demo needs a PTY. Connect with: ssh -t -p 2222 <host>")
		return
	}
	if !allowedTerms[term] {
		term = "xterm-256color"
	}

	termMu.Lock()
	_ = os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	termMu.Unlock()
	if err != nil {
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		return
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(s, "Screen init failed: %v\n", err)
		return
	}
	defer screen.Fini()

	h, err := host.New(screen, cfg, logger, id)
	if err != nil {
		logger.Error().Err(err).Msg("create host")
		return
	}
	logger.Info().Str("session", id).Msg("session started")
	if err := h.Run(s.Context()); err != nil {
		logger.Error().Err(err).Str("session", id).Msg("run")
	}
	if err := h.Close(); err != nil {
		logger.Error().Err(err).Str("session", id).Msg("close")
	}
}

// sanitizeName drops control characters and truncates to maxNameBytes
// without splitting a rune.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsControl(r) {
			continue
		}
		if b.Len()+len(string(r)) > maxNameBytes {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string, logger zerolog.Logger) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			logger.Info().Str("path", path).Msg("loaded host key")
			return signer, nil
		}
	}

	logger.Info().Str("path", path).Msg("generating new ed25519 host key")
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, eris.Wrap(err, "generate host key")
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, eris.Wrap(err, "create signer")
	}
	// Persisting is best effort; a fresh key next run only upsets known_hosts.
	if block, err := xssh.MarshalPrivateKey(key, "glyphscene server"); err == nil {
		if err := os.WriteFile(path, pem.EncodeToMemory(block), 0o600); err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("persist host key")
		}
	}
	return signer, nil
}

