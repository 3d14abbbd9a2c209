package host

import (
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// RunLog records statistics for one host session.
type RunLog struct {
	Session    string    `json:"session"`
	Started    time.Time `json:"started"`
	Ended      time.Time `json:"ended"`
	Frames     uint64    `json:"frames"`
	AverageFPS float64   `json:"average_fps"`
	SceneSwaps int       `json:"scene_swaps"`
	Spawned    int       `json:"spawned"`
	Failures   int       `json:"failures"`
}

// saveRunLog appends the completed run as a single JSON line to runs.jsonl.
// Errors are logged but never stop the host from shutting down.
func saveRunLog(dir string, rl RunLog, logger zerolog.Logger) {
	dir, err := runLogDir(dir)
	if err != nil {
		logger.Warn().Err(err).Msg("run log: cannot determine data dir")
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Warn().Err(err).Msg("run log: cannot create data dir")
		return
	}
	f, err := os.OpenFile(filepath.Join(dir, "runs.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		logger.Warn().Err(err).Msg("run log: cannot open file")
		return
	}
	defer f.Close()
	data, err := json.Marshal(rl)
	if err != nil {
		logger.Warn().Err(err).Msg("run log: cannot marshal JSON")
		return
	}
	f.Write(append(data, '\n')) //nolint:errcheck
}

// runLogDir returns override when set, otherwise $XDG_DATA_HOME/glyphscene,
// defaulting to ~/.local/share/glyphscene.
func runLogDir(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "glyphscene"), nil
}
