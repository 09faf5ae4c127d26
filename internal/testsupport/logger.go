package testsupport

import (
	"bytes"
	"log/slog"
	"testing"

	"cherryctl/internal/logging"
)

// NewLogger returns a debug-level logger whose output is attached to the
// test log on failure.
func NewLogger(t testing.TB) *slog.Logger {
	t.Helper()

	buf := &bytes.Buffer{}
	t.Cleanup(func() {
		if t.Failed() && buf.Len() > 0 {
			t.Logf("log output:\n%s", buf.String())
		}
	})
	return logging.New(buf, logging.Options{Level: "debug"})
}
