// Package automaxprocs sizes GOMAXPROCS to the container CPU quota and logs the result.
package automaxprocs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/pkg/logger"
	"github.com/gaze-network/tokensale/pkg/logger/slogx"
	"go.uber.org/automaxprocs/maxprocs"
)

var (
	mu   sync.Mutex
	undo func()

	// initialMaxProcs is GOMAXPROCS at process start.
	initialMaxProcs = Current()
)

// Init sets GOMAXPROCS from the CPU quota. A GOMAXPROCS environment variable wins.
// It is a no-op outside Linux or without a quota. Calling it again re-applies the quota.
func Init() error {
	mu.Lock()
	defer mu.Unlock()

	log := logger.With(
		slogx.String("package", "automaxprocs"),
		slogx.Int("prev_maxprocs", Current()),
	)
	revert, err := maxprocs.Set(maxprocs.Min(1), maxprocs.Logger(func(format string, v ...any) {
		attrs := []slog.Attr{slogx.Int("maxprocs", Current())}
		if _, ok := os.LookupEnv("GOMAXPROCS"); ok {
			attrs = append(attrs, slogx.Bool("from_env", true))
		}
		log.LogAttrs(context.Background(), slog.LevelInfo, fmt.Sprintf(format, v...), attrs...)
	}))
	if err != nil {
		return errors.Wrap(err, "can't set GOMAXPROCS")
	}
	undo = revert
	return nil
}

// Undo restores GOMAXPROCS to the value before [Init], or to the start-up value
// when Init never ran. It returns the restored value.
func Undo() int {
	mu.Lock()
	defer mu.Unlock()

	if undo != nil {
		undo()
		undo = nil
		return Current()
	}
	runtime.GOMAXPROCS(initialMaxProcs)
	return initialMaxProcs
}

// Current returns the current GOMAXPROCS.
func Current() int {
	return runtime.GOMAXPROCS(0)
}
