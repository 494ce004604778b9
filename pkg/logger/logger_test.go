package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestSetLevel(t *testing.T) {
	defer SetLevel("info")

	if !SetLevel("debug") || Level() != zapcore.DebugLevel {
		t.Fatalf("level = %s, want debug", Level())
	}
	if SetLevel("loud") {
		t.Fatal("unknown level should be rejected")
	}
	if Level() != zapcore.DebugLevel {
		t.Fatalf("rejected level changed current level to %s", Level())
	}
}
