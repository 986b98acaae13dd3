package render

import (
	"bytes"
	"encoding/json"
	"html/template"
)

type ContentKind string

const (
	ContentHTML  ContentKind = "html"
	ContentError ContentKind = "error"
	ContentJSON  ContentKind = "json"
)

// Content is the closed set of ways a response body can be displayed. Only
// the fields matching Kind are set.
type Content struct {
	Kind ContentKind
	// ContentHTML
	Fragment template.HTML
	// ContentError
	Error   string
	Message string
	Hint    string
	// ContentJSON
	JSON template.HTML
}

// Classify probes raw in a fixed order: output.response string, then an
// error field, then plain JSON. It accepts any input without panicking.
func Classify(raw json.RawMessage) Content {
	var v any
	if err := json.Unmarshal(raw, &v); err == nil {
		if obj, ok := v.(map[string]any); ok {
			if frag, ok := outputResponse(obj); ok {
				return Content{Kind: ContentHTML, Fragment: template.HTML(frag)}
			}
			if e, ok := obj["error"]; ok && e != nil && e != false && e != "" {
				return Content{
					Kind:    ContentError,
					Error:   text(e),
					Message: text(obj["message"]),
					Hint:    text(obj["hint"]),
				}
			}
		}
	}
	return Content{Kind: ContentJSON, JSON: HighlightJSON(raw)}
}

func outputResponse(obj map[string]any) (string, bool) {
	out, ok := obj["output"].(map[string]any)
	if !ok {
		return "", false
	}
	s, ok := out["response"].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// text renders a loosely typed field for display; strings pass through,
// anything else is shown as compact JSON.
func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return ""
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}
