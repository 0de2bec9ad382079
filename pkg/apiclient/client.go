// Package apiclient is the client for the SalaryHelper backend API.
//
// Every operation maps to exactly one HTTP request. The Client attaches the
// stored bearer token, encodes JSON or multipart bodies, and normalizes the
// {code, data} envelope and error replies. Login state lives in a
// session.Session owned by the caller.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/salaryhelper/salaryhelper-client/internal/logger"
	"github.com/salaryhelper/salaryhelper-client/internal/session"
	"github.com/salaryhelper/salaryhelper-client/pkg/httpclient"
	"github.com/salaryhelper/salaryhelper-client/pkg/publishers"
)

// ParseMode decides what happens to bodies that are not JSON.
type ParseMode string

const (
	// Strict fails with *ParseError.
	Strict ParseMode = "strict"
	// Lenient returns a Response carrying the raw text and status.
	Lenient ParseMode = "lenient"
)

const snippetBytes = 512

// Form is a multipart request body.
type Form = httpclient.Form

// FormFile is one file part of a Form.
type FormFile = httpclient.FormFile

// EventSink receives session lifecycle events. *publishers.Fanout satisfies it.
type EventSink interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// Options configures a Client.
type Options struct {
	BaseURL   string
	ParseMode ParseMode
	// Timeout applies only when HTTPClient is nil. Zero means no timeout.
	Timeout    time.Duration
	HTTPClient httpclient.Client
	Session    *session.Session
	Events     EventSink
	Logger     logger.Logger
}

// Client issues SalaryHelper API calls. It is safe for concurrent use; the
// session it holds is last-write-wins.
type Client struct {
	baseURL string
	mode    ParseMode
	http    httpclient.Client
	session *session.Session
	events  EventSink
	log     logger.Logger
}

// New builds a Client. A nil Session gets an in-memory one.
func New(opts Options) *Client {
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"),
		mode:    opts.ParseMode,
		http:    opts.HTTPClient,
		session: opts.Session,
		events:  opts.Events,
		log:     logger.Ensure(opts.Logger),
	}
	if c.mode != Lenient {
		c.mode = Strict
	}
	if c.http == nil {
		c.http = httpclient.NewRestyClient(opts.Timeout)
	}
	if c.session == nil {
		c.session = session.New(nil)
	}
	return c
}

// Session returns the session the client reads tokens from.
func (c *Client) Session() *session.Session { return c.session }

// Request is one API call. Body may be nil, a string or []byte sent as-is,
// a *Form, or any value encodable as JSON.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Headers map[string]string
	Body    any
}

// Do sends req and parses the reply.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	if req.Method == "" {
		req.Method = http.MethodGet
	}

	hreq, err := c.build(req)
	if err != nil {
		return nil, err
	}

	hresp, err := c.http.Do(ctx, hreq)
	if err != nil {
		err = fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
		c.logFailure(req, err)
		return nil, err
	}

	resp, err := c.parse(req, hresp)
	if err != nil {
		c.logFailure(req, err)
		return nil, err
	}
	return resp, nil
}

func (c *Client) resolve(path string, query url.Values) string {
	target := path
	if !isAbsoluteURL(path) {
		target = c.baseURL + path
	}
	if len(query) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + query.Encode()
	}
	return target
}

func isAbsoluteURL(path string) bool {
	p := strings.ToLower(path)
	return strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://")
}

func (c *Client) build(req Request) (*httpclient.Request, error) {
	headers := make(map[string]string, len(req.Headers)+2)
	for k, v := range req.Headers {
		headers[k] = v
	}

	token, err := c.session.Token()
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
	}
	if token != "" {
		deleteHeader(headers, "Authorization")
		headers["Authorization"] = "Bearer " + token
	}

	out := &httpclient.Request{
		Method:  req.Method,
		URL:     c.resolve(req.Path, req.Query),
		Headers: headers,
	}

	switch body := req.Body.(type) {
	case nil:
	case *Form:
		// The transport sets multipart/form-data with its boundary.
		deleteHeader(headers, "Content-Type")
		out.Form = body
	case []byte:
		setDefaultContentType(headers)
		out.Body = body
	case json.RawMessage:
		setDefaultContentType(headers)
		out.Body = body
	case string:
		setDefaultContentType(headers)
		out.Body = []byte(body)
	default:
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s %s: encode body: %w", req.Method, req.Path, err)
		}
		setDefaultContentType(headers)
		out.Body = raw
	}
	return out, nil
}

func setDefaultContentType(headers map[string]string) {
	for k := range headers {
		if strings.EqualFold(k, "Content-Type") {
			return
		}
	}
	headers["Content-Type"] = "application/json"
}

func deleteHeader(headers map[string]string, name string) {
	for k := range headers {
		if strings.EqualFold(k, name) {
			delete(headers, k)
		}
	}
}

func (c *Client) parse(req Request, hresp httpclient.Response) (*Response, error) {
	status := hresp.StatusCode()
	body := hresp.Body()

	resp, ok := parseEnvelope(status, body)
	if !ok {
		raw := &RawBody{Status: status, ContentType: hresp.Header("Content-Type"), Text: string(body)}
		if c.mode == Lenient {
			c.log.WarnObj("non-JSON response passed through", "api_raw", map[string]any{
				"endpoint": req.Path,
				"status":   status,
				"summary":  raw.Summary(),
			})
			return &Response{Status: status, Raw: raw}, nil
		}
		return nil, &ParseError{
			Status:  status,
			Snippet: snippet(body),
			Err:     fmt.Errorf("%s %s: body is not valid JSON", req.Method, req.Path),
		}
	}

	if status < 200 || status > 299 {
		return nil, &RequestError{
			Method:     req.Method,
			Path:       req.Path,
			Status:     status,
			StatusText: statusText(hresp),
			Detail:     detailMessage(resp.Detail),
			Response:   resp,
		}
	}
	return resp, nil
}

// statusText strips the numeric prefix from "404 Not Found".
func statusText(hresp httpclient.Response) string {
	text := strings.TrimSpace(hresp.Status())
	if code, rest, found := strings.Cut(text, " "); found && code == fmt.Sprint(hresp.StatusCode()) {
		text = strings.TrimSpace(rest)
	}
	if text == "" {
		text = http.StatusText(hresp.StatusCode())
	}
	return text
}

func snippet(body []byte) string {
	if len(body) > snippetBytes {
		body = body[:snippetBytes]
	}
	return strings.TrimSpace(string(body))
}

func (c *Client) logFailure(req Request, err error) {
	c.log.ErrorObj("api request failed", "api_error", map[string]any{
		"method":   req.Method,
		"endpoint": req.Path,
		"error":    err.Error(),
	})
}

// decodeData checks the envelope code and unmarshals data into out.
// A missing or null data field leaves out untouched.
func decodeData(resp *Response, out any) error {
	if resp.Raw != nil {
		return &RawResponseError{Raw: resp.Raw}
	}
	if resp.badCode != nil {
		return &EnvelopeError{RawCode: string(resp.badCode), Message: resp.Message}
	}
	if resp.Code != 0 {
		return &EnvelopeError{Code: resp.Code, Message: firstNonEmpty(resp.Message, detailMessage(resp.Detail))}
	}
	if len(resp.Data) == 0 || string(resp.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

// call runs req and decodes its data into out.
func (c *Client) call(ctx context.Context, req Request, out any) error {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	return decodeData(resp, out)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func pathID(prefix, id, suffix string) string {
	return prefix + "/" + url.PathEscape(id) + suffix
}
