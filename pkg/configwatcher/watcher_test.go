package configwatcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"questionnaire_backend/internal/config"
	"questionnaire_backend/pkg/logger"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"
)

const baseConfig = `
server:
  mode: debug
log:
  level: %s
database:
  driver: mysql
storage:
  type: local
  local_path: %s
`

func writeConfig(t *testing.T, dir, level string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	body := []byte(fmt.Sprintf(baseConfig, level, filepath.Join(dir, "uploads")))
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestWatchConfigReloadsLogLevel(t *testing.T) {
	defer logger.SetLevel("info")
	dir := t.TempDir()
	path := writeConfig(t, dir, "info")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *config.Config, 1)
	done := make(chan error, 1)
	go func() {
		done <- WatchConfig(ctx, path, func(cfg *config.Config) {
			ApplyLogLevel(cfg)
			select {
			case reloaded <- cfg:
			default:
			}
		})
	}()

	// 等待 watcher 注册
	time.Sleep(200 * time.Millisecond)
	writeConfig(t, dir, "warn")

	select {
	case cfg := <-reloaded:
		if cfg.Log.Level != "warn" {
			t.Fatalf("reloaded level = %q", cfg.Log.Level)
		}
		if logger.Level() != zapcore.WarnLevel {
			t.Fatalf("logger level = %s, want warn", logger.Level())
		}
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("watcher returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestWatchConfigMissingFile(t *testing.T) {
	err := WatchConfig(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"), func(*config.Config) {})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
