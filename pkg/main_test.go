package shotloader

import (
	"io"
	"log/slog"
	"os"
	"testing"
)

// testLogger satisfies Logger without polluting test output.
type testLogger struct {
	log *slog.Logger
}

func (l testLogger) Info(message string, module string) {
	l.log.Info(message, "module", module)
}

func (l testLogger) Error(message string) {
	l.log.Error(message)
}

func TestMain(m *testing.M) {
	SetLogger(testLogger{log: slog.New(slog.NewTextHandler(io.Discard, nil))})
	SetConfiguration(Configuration{
		ReadFluxLoops:    true,
		ReadBDots:        true,
		ReadCurrents:     true,
		CompressionLevel: 4,
	})
	os.Exit(m.Run())
}
