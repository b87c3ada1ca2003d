// Package web serves the calculator over HTTP: an embedded keypad page, a
// JSON evaluation endpoint and a websocket that evaluates one expression
// per frame.
package web

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/codefionn/rechenschnell/internal/consts"
	"github.com/codefionn/rechenschnell/internal/logger"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

//go:embed static/index.html
var indexHTML []byte

// Server is the web front end
type Server struct {
	addr       string
	indexETag  string
	router     *httprouter.Router
	httpServer *http.Server
	listener   net.Listener
	hub        *Hub
	upgrader   websocket.Upgrader

	mu      sync.Mutex
	running bool
}

// NewServer creates a server listening on addr once started
func NewServer(addr string) *Server {
	if addr == "" {
		addr = consts.DefaultListenAddr
	}

	s := &Server{
		addr:      addr,
		indexETag: fmt.Sprintf(`"%016x"`, xxhash.Sum64(indexHTML)),
		router:    httprouter.New(),
		hub:       NewHub(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins for local development
			},
		},
	}

	s.setupRoutes()
	go s.hub.Run()
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/health", s.handleHealth)
	s.router.POST("/api/evaluate", s.handleEvaluate)
	s.router.GET("/api/ws", s.handleWebSocket)
}

// Handler returns the router, for use with httptest
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start binds the listen address and serves in the background
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return errors.New("server already running")
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}

	s.listener = ln
	s.httpServer = &http.Server{
		Handler:      s.router,
		ReadTimeout:  consts.ServerReadTimeout,
		WriteTimeout: consts.ServerWriteTimeout,
		ErrorLog:     logger.StdLogger(logger.Global().WithPrefix("http"), slog.LevelError),
	}

	go func() {
		logger.Info("Web server listening on %s", ln.Addr())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error: %v", err)
		}
	}()

	s.running = true
	return nil
}

// Addr returns the bound address, or the configured one before Start
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// URL returns the address of the keypad page
func (s *Server) URL() string {
	return "http://" + s.Addr() + "/"
}

// Stop closes websocket clients and shuts the HTTP server down gracefully
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hub.Stop()
	if !s.running {
		return nil
	}
	logger.Info("Stopping web server...")

	ctx, cancel := context.WithTimeout(context.Background(), consts.ShutdownTimeout)
	defer cancel()

	s.running = false
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}
	return nil
}

// handleIndex serves the embedded keypad page
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Header().Set("ETag", s.indexETag)
	w.Header().Set("Cache-Control", "no-cache")
	if r.Header.Get("If-None-Match") == s.indexETag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(indexHTML); err != nil {
		logger.Debug("Failed to write index page: %v", err)
	}
}

// handleHealth returns health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"time":    time.Now().Format(time.RFC3339),
		"clients": s.hub.ClientCount(),
	})
}

// handleEvaluate evaluates the expression in the JSON body. Calculator
// errors are answered with 422, malformed requests with 400 or 413.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	r.Body = http.MaxBytesReader(w, r.Body, consts.MaxRequestBytes)

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "request body too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("invalid request: %v", err)})
		return
	}

	resp := evaluate(req.Input)
	if resp.Failed() {
		logger.Debug("web: %q failed: %s", req.Input, resp.Error)
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleWebSocket upgrades the connection and hands it to a Client
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("Failed to upgrade WebSocket: %v", err)
		return
	}

	client := NewClient(s.hub, conn)
	if !s.hub.Register(client) {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Debug("Failed to encode response: %v", err)
	}
}
