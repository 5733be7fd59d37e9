package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/alumniconnect/client-go/internal/api"
	"github.com/alumniconnect/client-go/internal/source"
)

// Raw issues envelope requests to endpoints outside the generic entity
// surface, such as RSVP submission.
type Raw struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewRaw creates a raw client rooted at baseURL.
func NewRaw(baseURL string, httpClient *http.Client, logger *slog.Logger) *Raw {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Raw{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient, logger: logger}
}

// Get issues a GET and decodes the envelope into out.
func (r *Raw) Get(ctx context.Context, path string, out any) error {
	return r.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with a JSON body and decodes the envelope into out.
func (r *Raw) Post(ctx context.Context, path string, body, out any) error {
	return r.do(ctx, http.MethodPost, path, body, out)
}

// Delete issues a DELETE and decodes the envelope into out.
func (r *Raw) Delete(ctx context.Context, path string, out any) error {
	return r.do(ctx, http.MethodDelete, path, nil, out)
}

func (r *Raw) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	target := r.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w: %w", method, target, source.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return source.ErrNotFound
	}
	if !api.ValidResponse(raw, r.logger) {
		return fmt.Errorf("malformed response envelope (status %d)", resp.StatusCode)
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}
