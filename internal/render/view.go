package render

import (
	"bytes"
	"embed"
	"encoding/json"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var viewTmpl = template.Must(template.ParseFS(templateFS, "templates/view.html"))

type StatusKind string

const (
	StatusNone    StatusKind = "none"
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
)

// Status describes the outcome of the most recent submission.
type Status struct {
	Kind    StatusKind
	Message string
}

type ViewState string

const (
	StateLoading ViewState = "loading"
	StateEmpty   ViewState = "empty"
	StateContent ViewState = "content"
)

// Snapshot is the full input to Render. Response is the raw JSON body of the
// last response; nil (or a JSON null) means there is none.
type Snapshot struct {
	Response       json.RawMessage
	Status         Status
	Loading        bool
	LoadingMessage string
}

// View is exactly one display state plus the independent status banner.
type View struct {
	State          ViewState
	LoadingMessage string
	Banner         *Status
	Content        *Content
	CopyText       string
	CanCopy        bool
}

// Render maps a snapshot to a view. Precedence: loading, empty, content.
func Render(s Snapshot) View {
	v := View{}
	v.CopyText, v.CanCopy = CopyText(s.Response)
	if s.Status.Kind != StatusNone && s.Status.Message != "" {
		banner := s.Status
		v.Banner = &banner
	}
	switch {
	case s.Loading:
		v.State = StateLoading
		v.LoadingMessage = s.LoadingMessage
	case !HasResponse(s.Response):
		v.State = StateEmpty
	default:
		v.State = StateContent
		c := Classify(s.Response)
		v.Content = &c
	}
	return v
}

// HTML renders the view through the response partial.
func (v View) HTML() (template.HTML, error) {
	var buf bytes.Buffer
	if err := viewTmpl.ExecuteTemplate(&buf, "view", v); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func HasResponse(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) > 0 && !bytes.Equal(t, []byte("null"))
}

// CopyText is the clipboard payload for a response: two-space indented JSON.
// ok is false when there is nothing to copy.
func CopyText(raw json.RawMessage) (string, bool) {
	if !HasResponse(raw) {
		return "", false
	}
	return IndentJSON(raw), true
}
