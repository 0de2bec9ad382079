package apiclient

import (
	"context"
	"io"
	"net/http"

	"github.com/salaryhelper/salaryhelper-client/internal/domain"
)

// UploadFile sends r as the multipart field "file".
func (c *Client) UploadFile(ctx context.Context, filename string, r io.Reader) (*domain.Attachment, error) {
	form := &Form{Files: []FormFile{{Field: "file", Filename: filename, Reader: r}}}

	var att domain.Attachment
	if err := c.call(ctx, Request{Method: http.MethodPost, Path: "/upload", Body: form}, &att); err != nil {
		return nil, err
	}
	return &att, nil
}

// GetUpload looks up an uploaded file. The backend answers outside the
// data field, so the whole envelope is returned.
func (c *Client) GetUpload(ctx context.Context, fileID string) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: pathID("/uploads", fileID, "")})
}

// ListAttachments never returns a nil slice on success.
func (c *Client) ListAttachments(ctx context.Context) ([]domain.Attachment, error) {
	var atts []domain.Attachment
	if err := c.call(ctx, Request{Method: http.MethodGet, Path: "/attachments"}, &atts); err != nil {
		return nil, err
	}
	if atts == nil {
		atts = []domain.Attachment{}
	}
	return atts, nil
}
