package session

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"webhook-relay/internal/relay"
	"webhook-relay/internal/render"
	"webhook-relay/internal/types"
)

// Forwarder is the relay as seen by a session.
type Forwarder interface {
	Forward(ctx context.Context, req types.WebhookRequest) relay.Outcome
}

// Update is a view snapshot for submission Seq (0 before the first submission).
type Update struct {
	Seq  int64
	View render.View
}

type result struct {
	seq     int64
	id      string
	outcome relay.Outcome
}

// Session owns the UI state of one connected browser. All state lives in the
// Run goroutine; callers only send submissions in and read updates out.
type Session struct {
	relay   Forwarder
	cycler  *render.Cycler
	submits chan string
	results chan result
	updates chan Update

	seq  int64
	snap render.Snapshot
}

func New(fw Forwarder, cycler *render.Cycler) *Session {
	return &Session{
		relay:   fw,
		cycler:  cycler,
		submits: make(chan string),
		results: make(chan result),
		updates: make(chan Update),
		snap:    render.Snapshot{Status: render.Status{Kind: render.StatusNone}},
	}
}

// Updates is closed when Run returns.
func (s *Session) Updates() <-chan Update { return s.updates }

// Submit hands text to the session loop.
func (s *Session) Submit(ctx context.Context, text string) error {
	select {
	case s.submits <- text:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes events until ctx is done. Relay calls still in flight at that
// point finish on their own and their results are dropped.
func (s *Session) Run(ctx context.Context) {
	defer close(s.updates)
	defer s.cycler.Stop()

	var ticks <-chan render.Tick
	s.emit(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case text := <-s.submits:
			ticks = s.begin(ctx, text)
			s.emit(ctx)
		case tk := <-ticks:
			s.snap.LoadingMessage = tk.Message
			s.emit(ctx)
		case r := <-s.results:
			if r.seq != s.seq {
				log.Printf("[session] discarding stale result %s (seq %d, latest %d)", r.id, r.seq, s.seq)
				continue
			}
			s.cycler.Stop()
			ticks = nil
			s.finish(r.outcome)
			s.emit(ctx)
		}
	}
}

// begin resets the response state, enters loading and issues one relay call.
func (s *Session) begin(ctx context.Context, text string) <-chan render.Tick {
	s.seq++
	seq, id := s.seq, uuid.NewString()
	first, ticks := s.cycler.Start()
	s.snap = render.Snapshot{
		Status:         render.Status{Kind: render.StatusNone},
		Loading:        true,
		LoadingMessage: first.Message,
	}
	log.Printf("[session] submission %s (seq %d)", id, seq)
	go func() {
		out := s.relay.Forward(ctx, types.WebhookRequest{Text: text})
		select {
		case s.results <- result{seq: seq, id: id, outcome: out}:
		case <-ctx.Done():
		}
	}()
	return ticks
}

func (s *Session) finish(out relay.Outcome) {
	s.snap = Settle(out)
}

// Settle is the snapshot shown once a relay call has completed: the body is
// always kept as the response, the status tells success from failure.
func Settle(out relay.Outcome) render.Snapshot {
	snap := render.Snapshot{Response: out.Body}
	if out.OK() {
		snap.Status = render.Status{Kind: render.StatusSuccess, Message: "Request successful"}
		return snap
	}
	snap.Status = render.Status{
		Kind:    render.StatusError,
		Message: fmt.Sprintf("Request failed: HTTP error %d", out.StatusCode),
	}
	return snap
}

func (s *Session) emit(ctx context.Context) {
	select {
	case s.updates <- Update{Seq: s.seq, View: render.Render(s.snap)}:
	case <-ctx.Done():
	}
}
