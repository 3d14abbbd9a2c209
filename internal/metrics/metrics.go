// Package metrics wraps the statsd client used for frame metrics. It hides
// the datadog dependency behind a few helpers; until Init succeeds every
// helper is a no-op.
package metrics

import (
	"sync"
	"time"

	ddstatsd "github.com/DataDog/datadog-go/v5/statsd"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
)

var (
	mu     sync.RWMutex
	client ddstatsd.ClientInterface = &ddstatsd.NoOpClient{}
)

func Client() ddstatsd.ClientInterface {
	mu.RLock()
	defer mu.RUnlock()
	return client
}

// Init connects to the statsd agent at address.
func Init(address string, tags []string) error {
	if address == "" {
		return eris.New("address must not be empty")
	}
	opts := []ddstatsd.Option{
		// The statsd namespace is the prefix of all metrics
		ddstatsd.WithNamespace("glyphscene"),
	}
	if len(tags) > 0 {
		opts = append(opts, ddstatsd.WithTags(tags))
	}
	newClient, err := ddstatsd.New(address, opts...)
	if err != nil {
		return eris.Wrapf(err, "statsd client for %s", address)
	}
	mu.Lock()
	client = newClient
	mu.Unlock()
	return nil
}

// Close flushes and closes the client, falling back to the no-op client.
func Close() error {
	mu.Lock()
	c := client
	client = &ddstatsd.NoOpClient{}
	mu.Unlock()
	return c.Close()
}

// EmitTick records how long one frame of the given scene took.
func EmitTick(start time.Time, scene string) {
	if err := Client().Timing("tick", time.Since(start), []string{"scene:" + scene}, 1); err != nil {
		log.Logger.Warn().Err(err).Msg("failed to emit tick stat")
	}
}

// EmitFPS records the current frame rate.
func EmitFPS(fps float64, scene string) {
	if err := Client().Gauge("fps", fps, []string{"scene:" + scene}, 1); err != nil {
		log.Logger.Warn().Err(err).Msg("failed to emit fps")
	}
}

// EmitFailures counts per-entity frame failures.
func EmitFailures(n int, scene string) {
	if n == 0 {
		return
	}
	if err := Client().Count("frame_failures", int64(n), []string{"scene:" + scene}, 1); err != nil {
		log.Logger.Warn().Err(err).Msg("failed to emit frame failures")
	}
}
