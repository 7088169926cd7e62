package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// server holds the HTTP server state.
type server struct {
	ctx      *CmdContext
	upgrader websocket.Upgrader
}

// Serve exposes the telemetry over HTTP: JSON snapshots on demand and
// a websocket that streams one snapshot per poll interval.
func Serve(args []string) {
	ctx := InitCmd("serve", args)

	srv := &server{
		ctx: ctx,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Local dashboards connect from file:// and odd origins.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/snapshot", srv.handleSnapshot)
	mux.HandleFunc("/metrics", srv.handleMetrics)
	mux.HandleFunc("/health", srv.handleHealth)
	mux.HandleFunc("/info", srv.handleInfo)
	mux.HandleFunc("/ws", srv.handleWS)

	addr := fmt.Sprintf(":%d", ctx.Config.Port)
	httpServer := &http.Server{
		Addr:        addr,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
	}

	log.Printf("HTTP server listening on %s", addr)
	log.Printf("Endpoints:")
	log.Printf("  GET /snapshot - Full telemetry snapshot")
	log.Printf("  GET /metrics  - Flattened metrics record")
	log.Printf("  GET /health   - Health check")
	log.Printf("  GET /info     - Server info")
	log.Printf("  GET /ws       - Websocket snapshot stream")

	if err := httpServer.ListenAndServe(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func (s *server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.ctx.Manager.Snapshot())
}

func (s *server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	record := s.ctx.Manager.Record(s.ctx.Manager.Snapshot())
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(record)
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (s *server) handleInfo(w http.ResponseWriter, r *http.Request) {
	info := map[string]interface{}{
		"hostname":   s.ctx.Config.Hostname,
		"session":    s.ctx.Config.UUID,
		"intervalMs": s.ctx.Config.Interval,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(info)
}

// handleWS streams snapshots over a websocket until the client goes
// away. Each client gets its own ticker; the manager serializes the
// underlying polls.
func (s *server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ticker := time.NewTicker(time.Duration(s.ctx.Config.Interval) * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		snap := s.ctx.Manager.Snapshot()
		if err := conn.WriteJSON(snap); err != nil {
			return
		}
	}
}
