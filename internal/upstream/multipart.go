package upstream

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"

	ierr "github.com/vivahlink/console/internal/errors"
)

// File is one part of a multipart upload. The engine treats uploads as
// opaque mutation inputs; content sniffing happens in the service layer
// before the payload gets here.
type File struct {
	Field    string
	Filename string
	Content  []byte
}

// PostMultipart submits a multipart form, e.g. a payment-proof upload.
// Multipart bodies are not replayed: a failed upload is surfaced to the
// caller instead of retried.
func (c *client) PostMultipart(ctx context.Context, path string, fields map[string]string, files []File, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for field, value := range fields {
		if err := writer.WriteField(field, value); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to build upload payload").
				Mark(ierr.ErrInternal)
		}
	}
	for _, f := range files {
		part, err := writer.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			return ierr.WithError(err).
				WithHint("Failed to build upload payload").
				Mark(ierr.ErrInternal)
		}
		if _, err := part.Write(f.Content); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to build upload payload").
				Mark(ierr.ErrInternal)
		}
	}
	if err := writer.Close(); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to build upload payload").
			Mark(ierr.ErrInternal)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to build upstream request").
			Mark(ierr.ErrInternal)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.attachHeaders(ctx, req.Header)

	resp, err := c.writeClient.Do(req)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Could not reach the platform backend").
			Mark(ierr.ErrNetwork)
	}
	return c.handleResponse(ctx, resp, out)
}
