package render

import (
	"bytes"
	"encoding/json"
	"html/template"
	"regexp"
	"strings"
)

var (
	jsonToken   = regexp.MustCompile(`("(\\u[a-zA-Z0-9]{4}|\\[^u]|[^\\"])*"(\s*:)?|\b(true|false|null)\b|-?\d+(?:\.\d*)?(?:[eE][+\-]?\d+)?)`)
	htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
)

// IndentJSON formats raw with a two-space indent, keeping key order and
// number formatting from the source. Invalid JSON is returned unchanged.
func IndentJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(raw), "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

// HighlightJSON returns the indented JSON as HTML with every token wrapped in
// a span classed json-key, json-string, json-number, json-boolean or json-null.
func HighlightJSON(raw json.RawMessage) template.HTML {
	escaped := htmlEscaper.Replace(IndentJSON(raw))
	out := jsonToken.ReplaceAllStringFunc(escaped, func(m string) string {
		cls := "json-number"
		switch {
		case strings.HasPrefix(m, `"`):
			if strings.HasSuffix(m, ":") {
				return `<span class="json-key">` + m[:len(m)-1] + `</span>:`
			}
			cls = "json-string"
		case m == "true" || m == "false":
			cls = "json-boolean"
		case m == "null":
			cls = "json-null"
		}
		return `<span class="` + cls + `">` + m + `</span>`
	})
	return template.HTML(out)
}
