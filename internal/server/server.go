package server

import (
	"net/http"

	"github.com/hancao97/hanai-wealth/internal/utils"
)

// Server exposes the read API the dashboard UI consumes. It is stateless:
// every request resolves against the snapshot files on disk, so a crawl
// finishing mid-flight is picked up on the next request.
type Server struct {
	DataDir string
}

func New(dataDir string) *Server {
	return &Server{DataDir: dataDir}
}

func (s *Server) Start(addr string) error {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/dates", s.handleDates)
	mux.HandleFunc("GET /api/snapshot", s.handleSnapshot)
	mux.HandleFunc("GET /api/screen", s.handleScreen)
	mux.HandleFunc("GET /api/stats", s.handleStats)

	utils.Log.Infof("Starting server on %s", addr)
	return http.ListenAndServe(addr, mux)
}
