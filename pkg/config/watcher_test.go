package config

import (
	"context"
	"os"
	"sync/atomic"
	"testing"
	"time"
)

func TestFileWatcher_ReloadsOnWrite(t *testing.T) {
	path := writeConfig(t, "upstream:\n  model: first\n")

	fw, err := NewFileWatcher(path, 20*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan string, 8)
	go func() {
		_ = fw.Watch(ctx, func() error {
			cfg, err := LoadConfig(path)
			if err != nil {
				return err
			}
			reloaded <- cfg.Upstream.Model
			return nil
		})
	}()

	// The watch is registered asynchronously, so keep rewriting until an
	// event is observed.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case model := <-reloaded:
			if model != "second" {
				t.Errorf("expected reloaded model %q, got %q", "second", model)
			}
			if err := fw.Stop(); err != nil {
				t.Errorf("stop failed: %v", err)
			}
			return
		case <-tick.C:
			if err := os.WriteFile(path, []byte("upstream:\n  model: second\n"), 0644); err != nil {
				t.Fatalf("rewrite failed: %v", err)
			}
		case <-deadline:
			t.Fatal("timed out waiting for reload")
		}
	}
}

func TestFileWatcher_StopWithoutWatch(t *testing.T) {
	fw, err := NewFileWatcher(writeConfig(t, ""), 0, nil)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	if err := fw.Stop(); err != nil {
		t.Errorf("stop failed: %v", err)
	}
}

func TestDebouncer_CoalescesTriggers(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	defer d.Stop()

	var calls, last atomic.Int32
	for i := 1; i <= 5; i++ {
		n := int32(i)
		d.Trigger(func() {
			calls.Add(1)
			last.Store(n)
		})
	}

	time.Sleep(200 * time.Millisecond)

	if got := calls.Load(); got != 1 {
		t.Errorf("expected 1 call, got %d", got)
	}
	if got := last.Load(); got != 5 {
		t.Errorf("expected last trigger to win, got %d", got)
	}
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	d.Stop()
	d.Trigger(func() { calls.Add(1) })

	time.Sleep(100 * time.Millisecond)

	if got := calls.Load(); got != 0 {
		t.Errorf("expected no calls after stop, got %d", got)
	}
}
