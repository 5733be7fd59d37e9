// Package rest implements source.Source against the AlumniConnect REST API.
// Every endpoint answers the uniform envelope; responses are shape-checked
// before decoding and envelope failures surface as errors, never panics.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/alumniconnect/client-go/internal/api"
	"github.com/alumniconnect/client-go/internal/collection"
	"github.com/alumniconnect/client-go/internal/source"
)

// Client talks to one entity collection, e.g. /api/events.
type Client[T source.Entity[T]] struct {
	baseURL string
	path    string
	http    *http.Client
	logger  *slog.Logger
}

// New creates a client for the entity collection served under path.
func New[T source.Entity[T]](baseURL, path string, httpClient *http.Client, logger *slog.Logger) *Client[T] {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client[T]{
		baseURL: strings.TrimRight(baseURL, "/"),
		path:    path,
		http:    httpClient,
		logger:  logger,
	}
}

func (c *Client[T]) url(parts ...string) string {
	u := c.baseURL + c.path
	for _, p := range parts {
		u += "/" + url.PathEscape(p)
	}
	return u
}

// do issues the request and returns the raw body and status. A nil body sends
// no payload.
func (c *Client[T]) do(ctx context.Context, method, target string, body any) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%s %s: %w: %w", method, target, source.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("reading response: %w", err)
	}
	return raw, resp.StatusCode, nil
}

// decodeOne validates and decodes a single-item envelope.
func (c *Client[T]) decodeOne(raw []byte, status int) (T, error) {
	var zero T
	if status == http.StatusNotFound {
		return zero, source.ErrNotFound
	}
	if !api.ValidResponse(raw, c.logger) {
		return zero, fmt.Errorf("malformed response envelope (status %d)", status)
	}

	var envelope api.Response[T]
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return zero, fmt.Errorf("decoding response: %w", err)
	}
	if !envelope.Success {
		return zero, envelopeError(envelope.Error, envelope.Message, status)
	}
	return envelope.Data, nil
}

func envelopeError(errMsg, message string, status int) error {
	switch {
	case errMsg != "":
		return fmt.Errorf("api error: %s", errMsg)
	case message != "":
		return fmt.Errorf("api error: %s", message)
	default:
		return fmt.Errorf("api error: status %d", status)
	}
}

func (c *Client[T]) List(ctx context.Context, page, limit int, criteria collection.Criteria) (collection.Page[T], error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))
	for key, value := range criteria {
		if value != "" {
			params.Set(key, value)
		}
	}

	raw, status, err := c.do(ctx, http.MethodGet, c.url()+"?"+params.Encode(), nil)
	if err != nil {
		return collection.Page[T]{}, err
	}
	if !api.ValidListResponse(raw, c.logger) {
		return collection.Page[T]{}, fmt.Errorf("malformed list envelope (status %d)", status)
	}

	var envelope api.ListResponse[T]
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return collection.Page[T]{}, fmt.Errorf("decoding list response: %w", err)
	}
	if !envelope.Success {
		return collection.Page[T]{}, envelopeError(envelope.Error, envelope.Message, status)
	}

	result := collection.Page[T]{
		Items: envelope.Data,
		Page:  page,
		Limit: limit,
		Total: len(envelope.Data),
	}
	if p := envelope.Pagination; p != nil {
		result.Page = p.Page
		result.Limit = p.Limit
		result.Total = p.Total
		result.TotalPages = p.TotalPages
		result.HasNext = p.Page < p.TotalPages
		result.HasPrev = p.Page > 1 && p.TotalPages > 0
	} else if limit > 0 {
		result.TotalPages = 1
	}
	return result, nil
}

func (c *Client[T]) Get(ctx context.Context, id string) (T, error) {
	raw, status, err := c.do(ctx, http.MethodGet, c.url(id), nil)
	if err != nil {
		var zero T
		return zero, err
	}
	return c.decodeOne(raw, status)
}

func (c *Client[T]) Create(ctx context.Context, item T) (T, error) {
	raw, status, err := c.do(ctx, http.MethodPost, c.url(), item)
	if err != nil {
		var zero T
		return zero, err
	}
	return c.decodeOne(raw, status)
}

func (c *Client[T]) Update(ctx context.Context, id string, item T) (T, error) {
	raw, status, err := c.do(ctx, http.MethodPut, c.url(id), item)
	if err != nil {
		var zero T
		return zero, err
	}
	return c.decodeOne(raw, status)
}

func (c *Client[T]) Delete(ctx context.Context, id string) error {
	raw, status, err := c.do(ctx, http.MethodDelete, c.url(id), nil)
	if err != nil {
		return err
	}
	if status == http.StatusNotFound {
		return source.ErrNotFound
	}
	if !api.ValidResponse(raw, c.logger) {
		return fmt.Errorf("malformed response envelope (status %d)", status)
	}
	var envelope api.Response[json.RawMessage]
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	if !envelope.Success {
		return envelopeError(envelope.Error, envelope.Message, status)
	}
	return nil
}

type bulkRequest struct {
	Operation string   `json:"operation"`
	IDs       []string `json:"ids"`
}

type bulkResult struct {
	Affected int `json:"affected"`
}

func (c *Client[T]) Bulk(ctx context.Context, op source.BulkOp, ids []string) (int, error) {
	raw, status, err := c.do(ctx, http.MethodPost, c.url()+"/bulk", bulkRequest{
		Operation: string(op),
		IDs:       ids,
	})
	if err != nil {
		return 0, err
	}
	if !api.ValidResponse(raw, c.logger) {
		return 0, fmt.Errorf("malformed response envelope (status %d)", status)
	}

	var envelope api.Response[bulkResult]
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return 0, fmt.Errorf("decoding bulk response: %w", err)
	}
	if !envelope.Success {
		return 0, envelopeError(envelope.Error, envelope.Message, status)
	}
	return envelope.Data.Affected, nil
}

type statusRequest struct {
	Status string `json:"status"`
}

func (c *Client[T]) SetStatus(ctx context.Context, id, status string) (T, error) {
	raw, code, err := c.do(ctx, http.MethodPatch, c.url(id)+"/status", statusRequest{Status: status})
	if err != nil {
		var zero T
		return zero, err
	}
	return c.decodeOne(raw, code)
}
