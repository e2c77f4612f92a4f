package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/WangYihang/Domain-Reputation-Checker/pkg/domain/service"
)

// Fetcher implements service.HTTPFetcher
type Fetcher struct {
	client          *http.Client
	maxResponseSize int64
	userAgent       string
}

// Config holds HTTP fetcher configuration
type Config struct {
	Timeout         time.Duration
	MaxResponseSize int64
	UserAgent       string
}

// StatusError is returned for non-2xx responses
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %s", e.Status)
}

// NewFetcher creates a new HTTP fetcher
func NewFetcher(config Config) *Fetcher {
	maxResponseSize := config.MaxResponseSize
	if maxResponseSize <= 0 {
		maxResponseSize = 10 << 20
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: config.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		maxResponseSize: maxResponseSize,
		userAgent:       config.UserAgent,
	}
}

// Fetch implements service.HTTPFetcher
func (f *Fetcher) Fetch(ctx context.Context, req *http.Request) (*service.HTTPResponse, error) {
	req = req.WithContext(ctx)
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, f.maxResponseSize))
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	// Limit response size
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return &service.HTTPResponse{
		URL:        req.URL.String(),
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}
