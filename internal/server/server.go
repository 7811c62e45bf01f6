// Package server exposes the bridge over its two transport kinds: a
// one-shot HTTP request/response endpoint and a persistent WebSocket
// connection carrying any number of independent exchanges.
package server

import (
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/justinas/alice"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/netutil"

	"github.com/nikbrunner/bmbridge/internal/bridge"
)

// DefaultMaxConns bounds concurrent transport connections.
const DefaultMaxConns = 64

// Server routes inbound envelopes to the bridge router.
//
// Nothing coordinates a persistent-connection batch with a concurrent
// one-shot request: the two race against the store. The store contract does
// not document parallel access as safe; callers are expected to use one
// transport at a time.
type Server struct {
	router   *bridge.Router
	upgrader websocket.Upgrader
	maxConns int
}

// New creates a Server around the given router.
func New(router *bridge.Router) *Server {
	return &Server{
		router: router,
		upgrader: websocket.Upgrader{
			// The caller is a local privileged application, not a page
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		maxConns: DefaultMaxConns,
	}
}

// Handler returns the full middleware-wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/message", s.HandleMessage)
	mux.HandleFunc("/ws", s.HandleWebSocket)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodPost, http.MethodGet},
		AllowedHeaders: []string{"Content-Type"},
	})

	return alice.New(c.Handler, logging).Then(mux)
}

// ListenAndServe serves on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	ln = netutil.LimitListener(ln, s.maxConns)

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.WithFields(log.Fields{
		"addr": addr,
	}).Info("bridge listening")

	return srv.Serve(ln)
}

// HandleMessage is the one-shot channel: one request, exactly one response,
// written only after the store work has completed.
func (s *Server) HandleMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req bridge.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, bridge.Response{Success: false, Error: "malformed request: " + err.Error()})
		return
	}

	resp := s.router.Handle(r.Context(), req)

	log.WithFields(log.Fields{
		"action":  req.Action,
		"success": resp.Success,
	}).Debug("one-shot exchange")

	writeJSON(w, resp)
}

// HandleWebSocket is the persistent channel. Each inbound text frame is one
// independent request; the response frame echoes its requestId. Frames on a
// connection are handled strictly in arrival order, each to completion
// before the next is read.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Error("websocket upgrade failed")
		return
	}

	connID := uuid.NewString()
	logger := log.WithFields(log.Fields{"conn": connID})
	logger.Debug("persistent connection opened")

	defer func() {
		conn.Close()
		logger.Debug("persistent connection closed")
	}()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var req bridge.Request
		var resp bridge.Response
		if err := json.Unmarshal(payload, &req); err != nil {
			resp = bridge.Response{Success: false, Error: "malformed request: " + err.Error()}
		} else {
			resp = s.router.Handle(r.Context(), req)
			logger.WithFields(log.Fields{
				"action":  req.Action,
				"success": resp.Success,
			}).Debug("persistent exchange")
		}

		out, err := json.Marshal(resp)
		if err != nil {
			logger.WithError(err).Error("encoding response")
			return
		}
		if err := conn.WriteMessage(websocket.TextMessage, out); err != nil {
			return
		}
	}
}

func writeJSON(w http.ResponseWriter, resp bridge.Response) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.WithError(err).Error("encoding response")
	}
}

// logging is the request logging middleware.
func logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start),
		}).Debug("request")
	})
}
