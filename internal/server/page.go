package server

import (
	"bytes"
	"html/template"
	"log"
	"net/http"

	"webhook-relay/internal/render"
	"webhook-relay/internal/session"
	"webhook-relay/internal/types"
)

type pageData struct {
	Text     string
	State    render.ViewState
	View     template.HTML
	CopyText string
	CanCopy  bool
}

// GET /
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, "", render.Render(render.Snapshot{Status: render.Status{Kind: render.StatusNone}}))
}

// POST / (form submit without JavaScript)
// Relays synchronously and renders the page with the settled view.
func (s *Server) handleSubmitForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	text := r.FormValue("text")
	out := s.relay.Forward(r.Context(), types.WebhookRequest{Text: text})
	s.renderPage(w, text, render.Render(session.Settle(out)))
}

func (s *Server) renderPage(w http.ResponseWriter, text string, v render.View) {
	html, err := v.HTML()
	if err != nil {
		log.Printf("error rendering view: %v", err)
		s.writeError(w, http.StatusInternalServerError, "render error")
		return
	}
	data := pageData{
		Text:     text,
		State:    v.State,
		View:     html,
		CopyText: v.CopyText,
		CanCopy:  v.CanCopy,
	}
	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		log.Printf("error executing template: %v", err)
		s.writeError(w, http.StatusInternalServerError, "render error")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
