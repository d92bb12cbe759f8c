package main

import (
	"github.com/Yeicor/solveview/internal/watch"
	"log"
	"net/http"
	"strings"
	"time"
)

// newHandler serves the result files of dir below /<solvePath>/ and the change notifications at watch.Path
func newHandler(dir, solvePath string, hub *watch.Hub) http.Handler {
	prefix := "/" + strings.Trim(solvePath, "/") + "/"
	mux := http.NewServeMux()
	mux.Handle(prefix, http.StripPrefix(prefix, noCache(http.FileServer(http.Dir(dir)))))
	mux.Handle(watch.Path, hub)
	return logRequests(mux)
}

// noCache makes clients fetch results again after they change on disk
func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Access-Control-Allow-Origin", "*")
		next.ServeHTTP(w, r)
	})
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Println("[SolveServer]", r.Method, r.URL.Path, "in", time.Since(start))
	})
}
