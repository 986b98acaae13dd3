package types

// WebhookRequest is the only payload accepted from the browser.
type WebhookRequest struct {
	Text string `json:"text" validate:"required,min=1"`
}

type ErrorResponse struct {
	Error   string         `json:"error"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// RawEnvelope wraps an upstream body that was not JSON.
type RawEnvelope struct {
	RawResponse string `json:"raw_response"`
	Note        string `json:"note"`
}

const NoteNotJSON = "upstream did not return JSON"

// ClientFrame is sent by the browser over the live session socket.
type ClientFrame struct {
	Type string `json:"type"` // submit
	Text string `json:"text"`
}

// ViewFrame carries a rendered view snapshot to the browser.
type ViewFrame struct {
	Type     string `json:"type"` // view | error
	Seq      int64  `json:"seq,omitempty"`
	State    string `json:"state,omitempty"`
	HTML     string `json:"html,omitempty"`
	CopyText string `json:"copy_text,omitempty"`
	CanCopy  bool   `json:"can_copy"`
	Message  string `json:"message,omitempty"`
}
