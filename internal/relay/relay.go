package relay

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"webhook-relay/internal/types"
)

// Sender is the upstream side of the relay.
type Sender interface {
	Send(ctx context.Context, text string) (*Reply, error)
}

// Outcome is what the relay hands back to its caller: always a status and a JSON body.
type Outcome struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the outcome is a 2xx.
func (o Outcome) OK() bool { return o.StatusCode >= 200 && o.StatusCode < 300 }

// Value decodes the body. Bodies produced by the relay are always JSON, so a
// decode failure yields nil.
func (o Outcome) Value() any {
	var v any
	if err := json.Unmarshal(o.Body, &v); err != nil {
		return nil
	}
	return v
}

type Relay struct {
	upstream Sender
	validate *validator.Validate
	timeout  time.Duration
}

func New(upstream Sender, timeout time.Duration) *Relay {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return &Relay{upstream: upstream, validate: v, timeout: timeout}
}

// Forward validates req, makes at most one upstream call and translates the
// result. It never returns an error: every failure becomes an Outcome.
func (r *Relay) Forward(ctx context.Context, req types.WebhookRequest) Outcome {
	if err := r.check(req); err != nil {
		return errorOutcome(err)
	}
	// Once issued, a relay call is not cancelled by the caller going away.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()

	reply, err := r.upstream.Send(ctx, req.Text)
	if err != nil {
		return errorOutcome(err)
	}
	if reply.StatusCode < 200 || reply.StatusCode >= 300 {
		return errorOutcome(&UpstreamError{StatusCode: reply.StatusCode, Body: reply.Body})
	}
	if !json.Valid(reply.Body) {
		return jsonOutcome(http.StatusOK, types.RawEnvelope{
			RawResponse: string(reply.Body),
			Note:        types.NoteNotJSON,
		})
	}
	return Outcome{StatusCode: reply.StatusCode, Body: reply.Body}
}

// check validates the trimmed text; the text itself is forwarded untouched.
func (r *Relay) check(req types.WebhookRequest) error {
	trimmed := types.WebhookRequest{Text: strings.TrimSpace(req.Text)}
	err := r.validate.Struct(trimmed)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &ValidationError{Field: verrs[0].Field(), Rule: verrs[0].Tag()}
	}
	return &ValidationError{Field: "text", Rule: "invalid"}
}

// InvalidBody is the outcome for a request body that could not be decoded at all.
func InvalidBody() Outcome {
	return jsonOutcome(http.StatusBadRequest, types.ErrorResponse{
		Error:   "Invalid request",
		Message: "request body must be valid JSON",
	})
}

func errorOutcome(err error) Outcome {
	var verr *ValidationError
	var uerr *UpstreamError
	var terr *TransportError
	switch {
	case errors.As(err, &verr):
		return jsonOutcome(http.StatusBadRequest, types.ErrorResponse{
			Error:   "Invalid request",
			Message: "Text is required",
			Details: map[string]any{"field": verr.Field, "rule": verr.Rule},
		})
	case errors.As(err, &uerr):
		log.Printf("[relay] %v", uerr)
		details := map[string]any{"status": uerr.StatusCode}
		if len(uerr.Body) > 0 && json.Valid(uerr.Body) {
			details["body"] = json.RawMessage(uerr.Body)
		}
		return jsonOutcome(mirrorStatus(uerr.StatusCode), types.ErrorResponse{
			Error:   "Upstream request failed",
			Message: uerr.Error(),
			Details: details,
		})
	case errors.As(err, &terr):
		log.Printf("[relay] %v", terr)
	default:
		log.Printf("[relay] unexpected error: %v", err)
	}
	return jsonOutcome(http.StatusInternalServerError, types.ErrorResponse{
		Error:   "Upstream unreachable",
		Message: "The webhook could not be reached. Please try again later.",
	})
}

// mirrorStatus keeps upstream 4xx/5xx codes; anything else that is not 2xx
// cannot be relayed as-is and becomes 502.
func mirrorStatus(code int) int {
	if code >= 400 && code <= 599 {
		return code
	}
	return http.StatusBadGateway
}

func jsonOutcome(code int, v any) Outcome {
	b, err := json.Marshal(v)
	if err != nil {
		log.Printf("[relay] encode outcome: %v", err)
		return Outcome{
			StatusCode: http.StatusInternalServerError,
			Body:       []byte(`{"error":"Internal error"}`),
		}
	}
	return Outcome{StatusCode: code, Body: b}
}
