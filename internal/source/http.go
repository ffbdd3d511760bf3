package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/rickgao/fixture-merge/internal/model"
)

// maxBodySize bounds a fetched payload.
const maxBodySize = 32 << 20

// StatusError is returned when an HTTP source answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: status %d", e.URL, e.StatusCode)
}

// HTTP fetches records from a JSON endpoint.
type HTTP struct {
	id         string
	url        string
	headers    map[string]string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTP creates an HTTP source.
func NewHTTP(id, url string, headers map[string]string, timeout time.Duration, logger *slog.Logger) *HTTP {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTP{
		id:         id,
		url:        url,
		headers:    headers,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// ID returns the source ID.
func (h *HTTP) ID() string { return h.id }

// Fetch GETs the endpoint and decodes the body.
func (h *HTTP) Fetch(ctx context.Context) ([]model.ScheduleRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range h.headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: h.url}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	records, err := Decode(body, h.id)
	if err != nil {
		return nil, err
	}

	h.logger.Debug("source fetched",
		"url", h.url,
		"records", len(records),
		"duration", time.Since(start),
	)
	return records, nil
}
