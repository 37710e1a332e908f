// Package media talks to the external image host. Uploads return the public
// URL to store on the entry; deletes are best-effort cleanup. Errors are
// plain wrapped errors; the usecases attach the domain error type that fits
// the mutation (upload failures abort, delete failures are logged).
package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
)

const defaultTimeout = 30 * time.Second

// uploadResponse is the host's reply to a successful upload.
type uploadResponse struct {
	URL string `json:"url"`
}

// Host implements contracts.MediaHost against an HTTP image host.
type Host struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHost creates a media host client. baseURL is the host root without a
// trailing slash; apiKey may be empty when the host is unauthenticated.
func NewHost(baseURL, apiKey string, timeout time.Duration) contracts.MediaHost {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Host{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// Upload sends one image as a multipart form and returns its public URL.
func (h *Host) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+"/upload", &body)
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if h.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+h.apiKey)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("media host returned %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}
	if parsed.URL == "" {
		return "", fmt.Errorf("media host returned empty url")
	}
	return parsed.URL, nil
}

// Delete removes a previously uploaded image by its public URL.
func (h *Host) Delete(ctx context.Context, imageURL string) error {
	parsed, err := url.Parse(imageURL)
	if err != nil {
		return fmt.Errorf("invalid image url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, h.baseURL+"/delete?file="+url.QueryEscape(parsed.Path), nil)
	if err != nil {
		return fmt.Errorf("failed to build delete request: %w", err)
	}
	if h.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+h.apiKey)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("delete request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("media host returned %d", resp.StatusCode)
	}
	return nil
}
