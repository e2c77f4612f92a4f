package service

import (
	"context"
	"net/http"

	"github.com/WangYihang/Domain-Reputation-Checker/pkg/domain/entity"
)

// ReputationProvider queries one third-party reputation service
type ReputationProvider interface {
	// Name returns the provider name used as the report key
	Name() string
	// Lookup never returns an error; failures are carried in the result
	Lookup(ctx context.Context, domain string) entity.ProviderResult
}

// HTTPFetcher fetches web content
type HTTPFetcher interface {
	// Fetch performs the request and returns the response.
	// Non-2xx statuses are reported as errors.
	Fetch(ctx context.Context, req *http.Request) (*HTTPResponse, error)
}

// HTTPResponse represents an HTTP response
type HTTPResponse struct {
	URL        string
	StatusCode int
	Body       []byte
}
