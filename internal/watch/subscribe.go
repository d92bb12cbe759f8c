package watch

import (
	"context"
	"fmt"
	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"
	"log"
	"net/url"
	"time"
)

// Path is where the solve server exposes the change notifications.
const Path = "/ws"

// URLFor returns the notifications endpoint of the solve server at the given HTTP(S) base URL.
func URLFor(server string) (string, error) {
	u, err := url.Parse(server)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	return u.JoinPath(Path).String(), nil
}

// Subscribe listens for events on the websocket at wsURL, calling fn for each of them (in order), until ctx is done.
// Lost connections are retried forever with an exponential backoff.
func Subscribe(ctx context.Context, wsURL string, fn func(Event)) error {
	b := backoff.NewExponentialBackOff()
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = 0 // Never stop retrying
	return backoff.RetryNotify(func() error {
		conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return err
		}
		log.Println("[Viewer] Listening for changes at", wsURL)
		b.Reset() // Connected: the next failure starts with a short delay again
		stop := make(chan struct{})
		defer close(stop)
		go func() {
			select {
			case <-ctx.Done():
				_ = conn.Close() // Unblock ReadJSON
			case <-stop:
				_ = conn.Close()
			}
		}()
		for {
			var ev Event
			if err = conn.ReadJSON(&ev); err != nil {
				if ctx.Err() != nil {
					return backoff.Permanent(ctx.Err())
				}
				return err
			}
			fn(ev)
		}
	}, backoff.WithContext(b, ctx), func(err error, next time.Duration) {
		log.Println("[Viewer] Change notifications lost, reconnecting in", next, ":", err)
	})
}
