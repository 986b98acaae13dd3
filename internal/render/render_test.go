package render

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestHighlightJSON(t *testing.T) {
	got := string(HighlightJSON(json.RawMessage(`{"a":1,"b":"x<y","c":true,"d":null}`)))
	want := "{\n" +
		`  <span class="json-key">"a"</span>: <span class="json-number">1</span>,` + "\n" +
		`  <span class="json-key">"b"</span>: <span class="json-string">"x&lt;y"</span>,` + "\n" +
		`  <span class="json-key">"c"</span>: <span class="json-boolean">true</span>,` + "\n" +
		`  <span class="json-key">"d"</span>: <span class="json-null">null</span>` + "\n" +
		"}"
	if got != want {
		t.Errorf("unexpected highlight:\n%s\nwant:\n%s", got, want)
	}
}

func TestHighlightJSONNumbersAndInvalid(t *testing.T) {
	got := string(HighlightJSON(json.RawMessage(`[-1.5e3, false]`)))
	if !strings.Contains(got, `<span class="json-number">-1.5e3</span>`) {
		t.Errorf("expected number span, got %s", got)
	}
	if !strings.Contains(got, `<span class="json-boolean">false</span>`) {
		t.Errorf("expected boolean span, got %s", got)
	}
	// Not JSON at all: still escaped, never a panic.
	got = string(HighlightJSON(json.RawMessage(`<oops>`)))
	if strings.Contains(got, "<oops>") {
		t.Errorf("expected invalid input to be escaped, got %s", got)
	}
}

func TestClassifyHTMLFragment(t *testing.T) {
	c := Classify(json.RawMessage(`{"output":{"response":"<b>hi</b>"}}`))
	if c.Kind != ContentHTML {
		t.Fatalf("expected html branch, got %s", c.Kind)
	}
	if string(c.Fragment) != "<b>hi</b>" {
		t.Errorf("unexpected fragment %q", c.Fragment)
	}
}

func TestClassifyErrorPanel(t *testing.T) {
	c := Classify(json.RawMessage(`{"error":"bad_input","hint":"try again"}`))
	if c.Kind != ContentError {
		t.Fatalf("expected error branch, got %s", c.Kind)
	}
	if c.Error != "bad_input" || c.Hint != "try again" || c.Message != "" {
		t.Errorf("unexpected panel fields: %+v", c)
	}

	c = Classify(json.RawMessage(`{"error":{"code":7},"message":"nope"}`))
	if c.Kind != ContentError || c.Error != `{"code":7}` || c.Message != "nope" {
		t.Errorf("unexpected panel for structured error: %+v", c)
	}
}

func TestClassifyHTMLTakesPrecedenceOverError(t *testing.T) {
	c := Classify(json.RawMessage(`{"error":"x","output":{"response":"<p>ok</p>"}}`))
	if c.Kind != ContentHTML {
		t.Errorf("expected html branch first, got %s", c.Kind)
	}
}

func TestClassifyFallsThroughToJSON(t *testing.T) {
	shapes := []string{
		`{"raw_response":"plain text","note":"upstream did not return JSON"}`,
		`"just a string"`,
		`42`,
		`[1,2,3]`,
		`{"output":"flat"}`,
		`{"output":{"response":5}}`,
		`{"output":{"response":""}}`,
		`{"error":null}`,
		`{"error":false}`,
		`{"error":""}`,
		`{broken`,
		``,
	}
	for _, s := range shapes {
		c := Classify(json.RawMessage(s))
		if c.Kind != ContentJSON {
			t.Errorf("%s: expected json branch, got %s", s, c.Kind)
		}
	}
}

func TestRenderPrecedence(t *testing.T) {
	body := json.RawMessage(`{"a":1}`)

	v := Render(Snapshot{Response: body, Loading: true, LoadingMessage: "Awaiting response…"})
	if v.State != StateLoading || v.Content != nil || v.LoadingMessage != "Awaiting response…" {
		t.Errorf("expected loading view, got %+v", v)
	}

	v = Render(Snapshot{})
	if v.State != StateEmpty || v.CanCopy {
		t.Errorf("expected empty view without copy, got %+v", v)
	}

	v = Render(Snapshot{Response: json.RawMessage(" null ")})
	if v.State != StateEmpty {
		t.Errorf("expected JSON null to render as empty, got %s", v.State)
	}

	v = Render(Snapshot{Response: body})
	if v.State != StateContent || v.Content == nil || v.Content.Kind != ContentJSON {
		t.Errorf("expected json content, got %+v", v)
	}
	if !v.CanCopy {
		t.Errorf("expected copy enabled with a response")
	}
}

func TestRenderBanner(t *testing.T) {
	cases := []struct {
		status Status
		shown  bool
	}{
		{Status{Kind: StatusNone, Message: "ignored"}, false},
		{Status{Kind: StatusSuccess, Message: ""}, false},
		{Status{Kind: StatusSuccess, Message: "Request successful"}, true},
		{Status{Kind: StatusError, Message: "Request failed: HTTP error 500"}, true},
	}
	for _, c := range cases {
		v := Render(Snapshot{Status: c.status})
		if (v.Banner != nil) != c.shown {
			t.Errorf("%+v: expected banner shown=%v", c.status, c.shown)
		}
	}
}

func TestCopyText(t *testing.T) {
	got, ok := CopyText(json.RawMessage(`{"a":[1,2]}`))
	if !ok {
		t.Fatalf("expected copy to be enabled")
	}
	want := "{\n  \"a\": [\n    1,\n    2\n  ]\n}"
	if got != want {
		t.Errorf("unexpected copy text %q", got)
	}
	if _, ok := CopyText(nil); ok {
		t.Errorf("expected copy disabled without a response")
	}
}

func TestViewHTML(t *testing.T) {
	cases := []struct {
		name string
		snap Snapshot
		want []string
		not  []string
	}{
		{
			name: "loading",
			snap: Snapshot{Loading: true, LoadingMessage: "Contacting endpoint…"},
			want: []string{`data-state="loading"`, "Contacting endpoint…"},
		},
		{
			name: "empty",
			snap: Snapshot{},
			want: []string{"JSON response will appear here"},
		},
		{
			name: "fragment",
			snap: Snapshot{Response: json.RawMessage(`{"output":{"response":"<b>hi</b>"}}`)},
			want: []string{"<b>hi</b>"},
		},
		{
			name: "error panel",
			snap: Snapshot{
				Response: json.RawMessage(`{"error":"<script>bad</script>","hint":"try again"}`),
				Status:   Status{Kind: StatusError, Message: "Request failed: HTTP error 400"},
			},
			want: []string{"try again", "&lt;script&gt;bad&lt;/script&gt;", "banner-error", "Request failed: HTTP error 400"},
			not:  []string{"<script>"},
		},
		{
			name: "json",
			snap: Snapshot{Response: json.RawMessage(`{"k":"v"}`)},
			want: []string{`<pre class="json">`, `<span class="json-key">"k"</span>`},
		},
	}
	for _, c := range cases {
		html, err := Render(c.snap).HTML()
		if err != nil {
			t.Fatalf("%s: render failed: %v", c.name, err)
		}
		for _, w := range c.want {
			if !strings.Contains(string(html), w) {
				t.Errorf("%s: expected %q in %s", c.name, w, html)
			}
		}
		for _, n := range c.not {
			if strings.Contains(string(html), n) {
				t.Errorf("%s: did not expect %q in %s", c.name, n, html)
			}
		}
	}
}
