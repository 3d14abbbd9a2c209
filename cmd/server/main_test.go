package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"glyphscene/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		expect string
	}{
		{"normal short name", "Alice", "Alice"},
		{"exactly 16 bytes", "1234567890123456", "1234567890123456"},
		{"long name truncated", "ThisIsAVeryLongUsername", "ThisIsAVeryLongU"},
		{"control chars stripped", "he\x00ll\x1bo", "hello"},
		{"ansi escape partial", "he\x1b[31mllo", "he[31mllo"},
		{"empty input", "", ""},
		{"multi-byte runes not split", "日本語のテスト", "日本語のテ"},
		{"emoji not split", "🎮Player🎮Name", "🎮Player🎮Na"},
		{"tabs stripped", "hello\tworld", "helloworld"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, sanitizeName(tc.input))
		})
	}
}

func TestAllowedTerms(t *testing.T) {
	cases := map[string]bool{
		"xterm-256color":      true,
		"tmux":                true,
		"vt100":               true,
		"evil-term":           false,
		"../../../etc/passwd": false,
		"":                    false,
	}
	for term, want := range cases {
		assert.Equal(t, want, allowedTerms[term], "term %q", term)
	}
}

func TestHostKeyIsPersisted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "host_key")
	first, err := loadOrCreateHostKey(path, zerolog.Nop())
	require.NoError(t, err)
	second, err := loadOrCreateHostKey(path, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, first.PublicKey().Marshal(), second.PublicKey().Marshal())
}

func TestConsoleLoggerIsHumanReadable(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := config.Default().NewLogger(consoleWriter(&buf, true))
	require.NoError(t, err)
	defer closer.Close()

	logger.Info().Int("port", 2222).Msg("listening")
	out := buf.String()
	assert.Contains(t, out, "INF")
	assert.Contains(t, out, "listening")
	assert.Contains(t, out, "port=2222")
	assert.NotContains(t, out, `"message"`)
}
