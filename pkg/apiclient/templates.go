package apiclient

import (
	"context"
	"net/http"

	"github.com/salaryhelper/salaryhelper-client/internal/domain"
)

type renderRequest struct {
	Values map[string]string `json:"values"`
}

// CreateDocumentRequest fills a template into a stored document.
type CreateDocumentRequest struct {
	TemplateID string            `json:"template_id"`
	Title      string            `json:"title"`
	Data       map[string]string `json:"data"`
}

func (c *Client) ListTemplates(ctx context.Context) ([]domain.Template, error) {
	var tpls []domain.Template
	if err := c.call(ctx, Request{Method: http.MethodGet, Path: "/templates"}, &tpls); err != nil {
		return nil, err
	}
	if tpls == nil {
		tpls = []domain.Template{}
	}
	return tpls, nil
}

func (c *Client) GetTemplate(ctx context.Context, id string) (*domain.Template, error) {
	var tpl domain.Template
	if err := c.call(ctx, Request{Method: http.MethodGet, Path: pathID("/templates", id, "")}, &tpl); err != nil {
		return nil, err
	}
	return &tpl, nil
}

// RenderTemplate fills the template's fields with values without storing
// anything server-side.
func (c *Client) RenderTemplate(ctx context.Context, id string, values map[string]string) (*domain.RenderedTemplate, error) {
	var out domain.RenderedTemplate
	err := c.call(ctx, Request{
		Method: http.MethodPost,
		Path:   pathID("/templates", id, "/render"),
		Body:   renderRequest{Values: values},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateDocument(ctx context.Context, req CreateDocumentRequest) (*domain.Document, error) {
	var doc domain.Document
	if err := c.call(ctx, Request{Method: http.MethodPost, Path: "/documents", Body: req}, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *Client) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	var docs []domain.Document
	if err := c.call(ctx, Request{Method: http.MethodGet, Path: "/documents"}, &docs); err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []domain.Document{}
	}
	return docs, nil
}
