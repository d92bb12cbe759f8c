// Command solveserver serves a directory of precomputed solve results and notifies viewers when they change.
package main

import (
	"context"
	"errors"
	"flag"
	"github.com/Yeicor/solveview/internal/watch"
	"log"
	"net/http"
	"os/signal"
	"time"
)

var (
	dir       = flag.String("dir", ".", "Directory holding the precomputed result files")
	addr      = flag.String("addr", ":8080", "HTTP listen address")
	solvePath = flag.String("solve-path", "ori/solve", "URL path below which results are served")
	noWatch   = flag.Bool("no-watch", false, "Do not watch the directory for changes")
)

func main() {
	flag.Parse()
	ctx, stop := signal.NotifyContext(context.Background(), signals()...)
	defer stop()

	hub := watch.NewHub()
	if !*noWatch {
		go func() {
			err := watch.WatchDir(ctx, *dir, func(ev watch.Event) {
				log.Println("[SolveServer] Changed:", ev.File, "(", ev.Op, ") notifying", hub.Clients(), "clients")
				hub.Broadcast(ev)
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Println("[SolveServer] Not watching for changes:", err)
			}
		}()
	}

	srv := &http.Server{Addr: *addr, Handler: newHandler(*dir, *solvePath, hub)}
	go func() {
		<-ctx.Done()
		log.Println("[SolveServer] Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Println("[SolveServer] Shutdown error:", err)
		}
	}()

	log.Println("[SolveServer] Serving", *dir, "at", *addr+"/"+*solvePath+"/")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("error: %s\n", err)
	}
}
