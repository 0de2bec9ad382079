package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/salaryhelper/salaryhelper-client/internal/domain"
)

// CreateConversationRequest is the body of CreateConversation.
type CreateConversationRequest struct {
	Title    string         `json:"title,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// SendMessageRequest is the body of SendMessage.
type SendMessageRequest struct {
	Text        string   `json:"text"`
	Attachments []string `json:"attachments,omitempty"`
}

// ListConversations returns the caller's conversations. limit <= 0 leaves
// paging to the server. The result is never nil.
func (c *Client) ListConversations(ctx context.Context, limit int) ([]domain.Conversation, error) {
	var query url.Values
	if limit > 0 {
		query = url.Values{"limit": {strconv.Itoa(limit)}}
	}

	var convs []domain.Conversation
	if err := c.call(ctx, Request{Method: http.MethodGet, Path: "/conversations", Query: query}, &convs); err != nil {
		return nil, err
	}
	if convs == nil {
		convs = []domain.Conversation{}
	}
	return convs, nil
}

func (c *Client) CreateConversation(ctx context.Context, req CreateConversationRequest) (*domain.Conversation, error) {
	var conv domain.Conversation
	if err := c.call(ctx, Request{Method: http.MethodPost, Path: "/conversations", Body: req}, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

func (c *Client) GetConversation(ctx context.Context, id string) (*domain.Conversation, error) {
	var conv domain.Conversation
	if err := c.call(ctx, Request{Method: http.MethodGet, Path: pathID("/conversations", id, "")}, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// SendMessage posts a message to a conversation and returns the backend's
// reply record.
func (c *Client) SendMessage(ctx context.Context, convID string, req SendMessageRequest) (*domain.Message, error) {
	var msg domain.Message
	err := c.call(ctx, Request{
		Method: http.MethodPost,
		Path:   pathID("/conversations", convID, "/messages"),
		Body:   req,
	}, &msg)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}
