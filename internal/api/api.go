// Package api exposes the HTTP surface: health check, reply preview,
// per-user check history, and the inbound SMS webhook.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/harulab/AibouCheck/internal/engine"
	"github.com/harulab/AibouCheck/internal/models"
	"github.com/harulab/AibouCheck/internal/store"
)

const (
	// DefaultAddr is the default API listen address.
	DefaultAddr = ":8080"
	// DefaultShutdownTimeout bounds graceful shutdown.
	DefaultShutdownTimeout = 5 * time.Second
)

// Opts holds configuration options for the API server.
type Opts struct {
	Addr           string
	ResponseInject func(models.Response)
}

// Option defines a configuration option for the API server.
type Option func(*Opts)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(o *Opts) { o.Addr = addr }
}

// WithResponseInjector registers a sink for webhook-delivered incoming
// messages. Without it the webhook endpoint is not mounted.
func WithResponseInjector(inject func(models.Response)) Option {
	return func(o *Opts) { o.ResponseInject = inject }
}

// Server is the HTTP API server.
type Server struct {
	addr   string
	engine *engine.Engine
	store  store.Store
	inject func(models.Response)
	srv    *http.Server
}

// NewServer creates an API server over the given engine and store.
func NewServer(e *engine.Engine, st store.Store, opts ...Option) *Server {
	cfg := Opts{Addr: DefaultAddr}
	for _, opt := range opts {
		opt(&cfg)
	}
	s := &Server{addr: cfg.Addr, engine: e, store: st, inject: cfg.ResponseInject}

	router := mux.NewRouter()
	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/v1/reply", s.handleReply).Methods(http.MethodPost)
	router.HandleFunc("/v1/users/{id}/checks", s.handleChecks).Methods(http.MethodGet)
	if s.inject != nil {
		router.HandleFunc("/webhook/twilio", s.handleTwilioWebhook).Methods(http.MethodPost)
	}

	s.srv = &http.Server{Addr: cfg.Addr, Handler: router}
	return s
}

// Start begins serving in a background goroutine.
func (s *Server) Start() {
	go func() {
		slog.Info("API server listening", "addr", s.addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("API server stopped", "error", err)
		}
	}()
}

// Stop shuts the server down gracefully.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	return s.srv.Shutdown(ctx)
}

// Handler returns the HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// replyRequest is the preview request body: a tone id and the four
// answers. Unknown tones fall back to the default persona, matching
// the bot's behavior.
type replyRequest struct {
	Tone    models.Tone      `json:"tone"`
	Answers models.AnswerSet `json:"answers"`
}

type replyResponse struct {
	Reply string `json:"reply"`
}

func (s *Server) handleReply(w http.ResponseWriter, r *http.Request) {
	var req replyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("API reply decode error", "error", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	reply := s.engine.GenerateHealthReply(r.Context(), req.Tone, req.Answers)
	writeJSON(w, http.StatusOK, replyResponse{Reply: reply})
}

func (s *Server) handleChecks(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]
	if strings.TrimSpace(userID) == "" {
		http.Error(w, "user id required", http.StatusBadRequest)
		return
	}
	records, err := s.store.GetCheckRecords(userID)
	if err != nil {
		slog.Error("API check history error", "error", err, "user", userID)
		http.Error(w, "failed to load check records", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []models.CheckRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

// handleTwilioWebhook accepts Twilio's form-encoded inbound SMS
// callback and feeds it into the messaging layer.
func (s *Server) handleTwilioWebhook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}
	from := r.PostFormValue("From")
	body := r.PostFormValue("Body")
	if from == "" || body == "" {
		http.Error(w, "From and Body are required", http.StatusBadRequest)
		return
	}
	s.inject(models.Response{From: from, Body: body, Time: time.Now().Unix()})
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("API response encode error", "error", err)
	}
}
