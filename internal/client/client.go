// Package client talks to the record store HTTP surface.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/MrSnakeDoc/clippings/internal/domain"
	"github.com/MrSnakeDoc/clippings/internal/logger"
	"github.com/MrSnakeDoc/clippings/internal/utils"
)

// Client is a record store client. Every failure is a *domain.TransportError.
type Client struct {
	baseURL string
	http    *http.Client
	log     logger.Logger
}

// New creates a client for baseURL (ex: http://localhost:3001).
func New(baseURL string, timeout time.Duration, log logger.Logger) *Client {
	if log == nil {
		log = logger.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// BaseURL returns the record store root without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// FileURL is the public locator of an uploaded file.
func (c *Client) FileURL(filename string) string {
	return c.baseURL + "/data/" + filename
}

// Fetch loads the whole collection.
func (c *Client) Fetch(ctx context.Context) (domain.Collection, error) {
	var out domain.Collection
	if err := c.do(ctx, "load", http.MethodGet, "/api/clippings", nil, "", &out); err != nil {
		return nil, err
	}
	return out.Clone(), nil
}

// Replace persists the full collection.
func (c *Client) Replace(ctx context.Context, collection domain.Collection) (domain.StatusResponse, error) {
	body, err := json.Marshal(collection.Clone())
	if err != nil {
		return domain.StatusResponse{}, domain.NewTransportError("save", err)
	}

	var resp domain.StatusResponse
	if err := c.do(ctx, "save", http.MethodPut, "/api/clippings", bytes.NewReader(body), "application/json", &resp); err != nil {
		return resp, err
	}
	if !resp.Success {
		return resp, domain.NewTransportError("save", fmt.Errorf("%s", resp.Message))
	}
	c.log.Debug("collection saved", logger.Int("items", len(collection)))
	return resp, nil
}

// Upload sends a PDF as the multipart field "file".
func (c *Client) Upload(ctx context.Context, name string, content io.Reader) (domain.UploadResult, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, name))
	h.Set("Content-Type", domain.PDFMimeType)
	part, err := w.CreatePart(h)
	if err != nil {
		return domain.UploadResult{}, domain.NewTransportError("upload", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return domain.UploadResult{}, domain.NewTransportError("upload", err)
	}
	if err := w.Close(); err != nil {
		return domain.UploadResult{}, domain.NewTransportError("upload", err)
	}

	var res domain.UploadResult
	if err := c.do(ctx, "upload", http.MethodPost, "/api/upload", &buf, w.FormDataContentType(), &res); err != nil {
		return res, err
	}
	if !res.Success || res.Filename == "" {
		return res, domain.NewTransportError("upload", fmt.Errorf("%s", res.Message))
	}
	c.log.Debug("file uploaded", logger.String("filename", res.Filename), logger.Int64("size", res.Size))
	return res, nil
}

// ListFiles lists the uploaded files.
func (c *Client) ListFiles(ctx context.Context) ([]domain.StoredFile, error) {
	var out []domain.StoredFile
	if err := c.do(ctx, "files", http.MethodGet, "/api/files", nil, "", &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.StoredFile{}
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return domain.NewTransportError(op, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("record store unreachable", logger.String("op", op), logger.Error(err))
		return domain.NewTransportError(op, err)
	}
	defer utils.DrainClose(resp.Body)

	c.log.Debug("record store call",
		logger.String("op", op),
		logger.String("method", method),
		logger.String("path", path),
		logger.Int("status", resp.StatusCode),
		logger.Duration("duration", time.Since(start)),
	)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.NewTransportError(op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var status domain.StatusResponse
		if json.Unmarshal(data, &status) == nil && status.Message != "" {
			return domain.NewTransportError(op, fmt.Errorf("status %d: %s", resp.StatusCode, status.Message))
		}
		return domain.NewTransportError(op, fmt.Errorf("status %d", resp.StatusCode))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return domain.NewTransportError(op, fmt.Errorf("decode response: %w", err))
	}
	return nil
}
