package testutil

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/wupperinst/itom/internal/ctxlog"
)

// Context returns a context carrying a debug logger that writes to buf.
// With ITOM_TEST_LOGS=true the output is also replayed through t.Log when the
// test ends.
func Context(t testing.TB, buf *SafeBuffer) context.Context {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	if os.Getenv("ITOM_TEST_LOGS") == "true" {
		t.Cleanup(func() { t.Logf("--- Log output for %s ---\n%s", t.Name(), buf.String()) })
	}
	return ctxlog.WithLogger(context.Background(), logger)
}
