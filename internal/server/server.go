package server

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"

	"webhook-relay/internal/config"
	"webhook-relay/internal/relay"
	"webhook-relay/internal/render"
	"webhook-relay/internal/session"
	"webhook-relay/internal/types"
)

//go:embed templates/*.html
var templateFS embed.FS

// maxRequestBytes bounds inbound JSON bodies and websocket frames.
const maxRequestBytes = 1 << 20

type Server struct {
	router   *chi.Mux
	cfg      config.Config
	relay    *relay.Relay
	messages []string
	page     *template.Template
	upgrader websocket.Upgrader
}

func NewServer(cfg config.Config) (*Server, error) {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.AllowedOrigin},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Requested-With"},
		MaxAge:         300,
	}))

	messages := render.DefaultMessages
	if cfg.LoadingMessagesFile != "" {
		m, err := render.LoadMessages(cfg.LoadingMessagesFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load loading messages: %w", err)
		}
		messages = m
	}
	page, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	client := relay.NewClient(relay.ClientOptions{
		URL:         cfg.WebhookURL,
		TextParam:   cfg.WebhookTextParam,
		Timeout:     cfg.WebhookTimeout,
		BearerToken: cfg.WebhookBearerToken,
	})
	s := &Server{
		router:   r,
		cfg:      cfg,
		relay:    relay.New(client, cfg.WebhookTimeout),
		messages: messages,
		page:     page,
	}
	s.upgrader = websocket.Upgrader{CheckOrigin: s.checkOrigin}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.router.Get("/api/health", s.handleHealth)
	s.router.Post("/api/webhook", s.handleWebhook)
	// Browser UI
	s.router.Get("/", s.handleIndex)
	s.router.Post("/", s.handleSubmitForm)
	s.router.Get("/ws", s.handleLive)
}

func (s *Server) Router() http.Handler { return s.router }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// POST /api/webhook
// Body { text } -> upstream JSON, raw fallback envelope, or an error envelope
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var req types.WebhookRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		writeOutcome(w, relay.InvalidBody())
		return
	}
	writeOutcome(w, s.relay.Forward(r.Context(), req))
}

func writeOutcome(w http.ResponseWriter, out relay.Outcome) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(out.StatusCode)
	_, _ = w.Write(out.Body)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, types.ErrorResponse{Error: msg})
}

func (s *Server) checkOrigin(r *http.Request) bool {
	if s.cfg.AllowedOrigin == "*" {
		return true
	}
	origin := r.Header.Get("Origin")
	return origin == "" || origin == s.cfg.AllowedOrigin || sameHost(origin, r.Host)
}

func (s *Server) newSession() *session.Session {
	return session.New(s.relay, render.NewCycler(s.messages))
}
