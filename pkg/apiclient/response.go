package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const maxSummaryRunes = 200

// Response is a parsed backend reply. Exactly one of Body or Raw is set:
// Body holds the decoded JSON document, Raw the undecodable text (lenient
// mode only).
type Response struct {
	Status  int
	Code    int
	Message string
	Data    json.RawMessage
	Detail  json.RawMessage
	Body    json.RawMessage
	Raw     *RawBody

	// badCode is set when the body has a code field that is not an integer.
	badCode json.RawMessage
}

// OK reports whether the envelope signals success (code 0).
func (r *Response) OK() bool {
	return r != nil && r.Raw == nil && r.badCode == nil && r.Code == 0
}

// Decode unmarshals the whole JSON document into v.
func (r *Response) Decode(v any) error {
	if r.Raw != nil {
		return &RawResponseError{Raw: r.Raw}
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// MarshalJSON renders the received document, or {"raw": ..., "status": ...}
// for a passthrough.
func (r *Response) MarshalJSON() ([]byte, error) {
	if r.Raw != nil {
		return json.Marshal(struct {
			Raw    string `json:"raw"`
			Status int    `json:"status"`
		}{r.Raw.Text, r.Raw.Status})
	}
	if len(r.Body) == 0 {
		return []byte("null"), nil
	}
	return r.Body, nil
}

// parseEnvelope decodes body. Valid JSON that is not an object is kept in
// Body with a zero envelope.
func parseEnvelope(status int, body []byte) (*Response, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		return nil, false
	}

	resp := &Response{Status: status, Body: json.RawMessage(trimmed)}
	if trimmed[0] != '{' {
		return resp, true
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return resp, true
	}
	if raw, ok := fields["code"]; ok {
		if err := json.Unmarshal(raw, &resp.Code); err != nil || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			resp.badCode = raw
		}
	}
	_ = json.Unmarshal(fields["message"], &resp.Message)
	resp.Data = fields["data"]
	resp.Detail = fields["detail"]
	return resp, true
}

// detailMessage returns the server detail as text: strings verbatim, other
// values as compact JSON.
func detailMessage(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// RawBody is a response body that is not JSON.
type RawBody struct {
	Status      int
	ContentType string
	Text        string
}

// Summary returns a short human-readable rendering: the page title (or
// visible text) for HTML, the trimmed text otherwise.
func (r *RawBody) Summary() string {
	if r == nil {
		return ""
	}
	text := strings.TrimSpace(r.Text)
	if r.isHTML() {
		if s := htmlSummary(text); s != "" {
			text = s
		}
	}
	return truncateRunes(strings.Join(strings.Fields(text), " "), maxSummaryRunes)
}

func (r *RawBody) isHTML() bool {
	if strings.Contains(strings.ToLower(r.ContentType), "html") {
		return true
	}
	t := strings.ToLower(strings.TrimSpace(r.Text))
	return strings.HasPrefix(t, "<!doctype html") || strings.HasPrefix(t, "<html")
}

func htmlSummary(text string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return ""
	}
	for _, sel := range []string{"title", "h1", "body"} {
		if s := strings.TrimSpace(doc.Find(sel).First().Text()); s != "" {
			return s
		}
	}
	return ""
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}
