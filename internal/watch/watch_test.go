package watch

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timeout waiting for condition")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestURLFor(t *testing.T) {
	got, err := URLFor("https://example.com/base")
	if err != nil || got != "wss://example.com/base/ws" {
		t.Fatalf("unexpected URL %q (%v)", got, err)
	}
	if _, err = URLFor("file:///tmp"); err == nil {
		t.Fatalf("expected an error for file URLs")
	}
}

func TestHubSubscribe(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()
	wsURL, err := URLFor(srv.URL)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	received := make(chan Event, 4)
	subscribeErr := make(chan error, 1)
	go func() {
		subscribeErr <- Subscribe(ctx, wsURL, func(ev Event) { received <- ev })
	}()
	waitFor(t, func() bool { return hub.Clients() == 1 })

	hub.Broadcast(Event{Op: "WRITE", File: "5_2.gh"})
	select {
	case ev := <-received:
		if ev.File != "5_2.gh" || ev.Op != "WRITE" {
			t.Fatalf("unexpected event %+v", ev)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("event not received")
	}

	cancel()
	select {
	case err = <-subscribeErr:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("subscribe did not stop")
	}
	waitFor(t, func() bool { return hub.Clients() == 0 })
}

func TestWatchDir(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := make(chan Event, 16)
	started := make(chan error, 1)
	go func() {
		started <- WatchDir(ctx, dir, func(ev Event) { events <- ev })
	}()
	// The watcher may not be registered yet: keep writing until something is reported
	deadline := time.After(5 * time.Second)
	for {
		if err := os.WriteFile(filepath.Join(dir, "1_2.gh"), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
		select {
		case ev := <-events:
			if ev.File != "1_2.gh" {
				t.Fatalf("unexpected event %+v", ev)
			}
			return
		case err := <-started:
			t.Fatalf("watcher stopped: %v", err)
		case <-time.After(50 * time.Millisecond):
		case <-deadline:
			t.Fatalf("no event received")
		}
	}
}
