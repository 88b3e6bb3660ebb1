package logger_test

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/sebdah/goldie/v2"

	"go.kiln.build/kiln/internal/adapters/logger"
)

var timeAttr = regexp.MustCompile(`time=\S+`)

// TestLoggerGoldenOutput pins the text/slog line shape Logger writes,
// redacting the timestamp since it is the only non-deterministic field.
// Grounded on internal/adapters/logger.handler_test.go's use of
// github.com/sebdah/goldie/v2 to assert log line formatting.
func TestLoggerGoldenOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	lg := logger.New()
	lg.SetOutput(buf)

	lg.Info("starting build")
	lg.Warn("cache directory missing")
	lg.Error(errTest{"compile failed"})

	normalized := timeAttr.ReplaceAll(buf.Bytes(), []byte("time=<redacted>"))

	g := goldie.New(t)
	g.Assert(t, "logger_lines", normalized)
}

type errTest struct{ msg string }

func (e errTest) Error() string { return e.msg }
