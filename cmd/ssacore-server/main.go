package main

import (
	"log"
	"net/http"
	"strings"
)

func main() {
	cfg := loadServerConfig()
	logger := NewLogger(cfg.LogLevel)
	srv := NewServer(logger, cfg.Seed)

	http.HandleFunc("/healthz", srv.handleHealth)
	http.HandleFunc("/problem/", srv.handleCreateProblem)
	http.HandleFunc("/runs", srv.handleListRuns)
	http.HandleFunc("/run/", func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/start"):
			srv.handleStartRun(w, r)
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/stop"):
			srv.handleStopRun(w, r)
		case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/snapshot"):
			srv.handleRunSnapshot(w, r)
		default:
			http.NotFound(w, r)
		}
	})

	logger.Infof("ssacore-server listening on %s", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, nil))
}
