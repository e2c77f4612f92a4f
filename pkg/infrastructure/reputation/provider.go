// Package reputation implements the third-party domain reputation lookups.
//
// Every vendor is described by a Definition (endpoint, auth placement,
// key variables and extracted fields) and served by the same Provider.
package reputation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/WangYihang/Domain-Reputation-Checker/pkg/domain/entity"
	"github.com/WangYihang/Domain-Reputation-Checker/pkg/domain/service"
)

const (
	domainPlaceholder = "{domain}"
	redacted          = "REDACTED"

	errInvalidJSON = "Invalid JSON response"
)

// AuthMethod describes where the API key is sent
type AuthMethod int

const (
	// AuthQuery sends the key as a query parameter
	AuthQuery AuthMethod = iota
	// AuthBearer sends the key in an "Authorization: Bearer" header
	AuthBearer
)

// FieldSpec maps a report field to a nested path in the JSON body
type FieldSpec struct {
	Key  string
	Path []string
}

// Definition describes one vendor contract
type Definition struct {
	Name string
	// Endpoint may contain {domain}, replaced by the path-escaped domain
	Endpoint string
	// DomainParam, when set, carries the domain as a query parameter
	DomainParam string
	Auth        AuthMethod
	// KeyParam is the query parameter name for AuthQuery
	KeyParam string
	// KeyEnv lists the environment variables holding the key, in priority order
	KeyEnv []string
	Fields []FieldSpec
}

// Provider implements service.ReputationProvider for a Definition
type Provider struct {
	def     Definition
	apiKey  string
	fetcher service.HTTPFetcher
	logger  *slog.Logger
}

// NewProvider creates a provider. An empty apiKey is allowed; every
// lookup then fails locally without touching the network.
func NewProvider(def Definition, apiKey string, fetcher service.HTTPFetcher, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Provider{
		def:     def,
		apiKey:  apiKey,
		fetcher: fetcher,
		logger:  logger.With("provider", def.Name),
	}
}

// Name returns the provider name
func (p *Provider) Name() string {
	return p.def.Name
}

// Lookup queries the vendor for domain
func (p *Provider) Lookup(ctx context.Context, domain string) entity.ProviderResult {
	logger := p.logger.With("domain", domain)

	if p.apiKey == "" {
		logger.Error("API key not set", "env", strings.Join(p.def.KeyEnv, ","))
		return entity.NewErrorResult(p.def.Name, entity.ErrMissingAPIKey)
	}

	req, err := p.newRequest(domain)
	if err != nil {
		msg := p.redact(err.Error())
		logger.Error("failed to build request", "error", msg)
		return entity.NewErrorResult(p.def.Name, msg)
	}
	logger.Debug("querying reputation service", "url", p.redact(req.URL.String()))

	resp, err := p.fetcher.Fetch(ctx, req)
	if err != nil {
		msg := p.redact(describe(err))
		logger.Error("request failed", "error", msg)
		return entity.NewErrorResult(p.def.Name, msg)
	}

	body, err := decode(resp.Body)
	if err != nil {
		logger.Error("failed to parse response", "error", err)
		return entity.NewErrorResult(p.def.Name, errInvalidJSON)
	}

	result := entity.ProviderResult{
		Provider: p.def.Name,
		Fields:   Extract(body, p.def.Fields),
	}
	logger.Debug("lookup complete",
		"url", p.redact(resp.URL),
		"status", resp.StatusCode,
		"bytes", len(resp.Body),
		"fields", len(result.Fields),
	)
	return result
}

func (p *Provider) newRequest(domain string) (*http.Request, error) {
	raw := strings.ReplaceAll(p.def.Endpoint, domainPlaceholder, url.PathEscape(domain))
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", raw, err)
	}

	q := u.Query()
	if p.def.DomainParam != "" {
		q.Set(p.def.DomainParam, domain)
	}
	if p.def.Auth == AuthQuery {
		q.Set(p.def.KeyParam, p.apiKey)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	if p.def.Auth == AuthBearer {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}
	return req, nil
}

// redact removes the API key from messages that may embed the request URL
func (p *Provider) redact(msg string) string {
	if p.apiKey == "" {
		return msg
	}
	msg = strings.ReplaceAll(msg, url.QueryEscape(p.apiKey), redacted)
	return strings.ReplaceAll(msg, p.apiKey, redacted)
}

// describe turns transport errors into a short message
func describe(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Sprintf("%s request to %s failed: %v", urlErr.Op, urlErr.URL, urlErr.Err)
	}
	return err.Error()
}

// decode parses a single JSON value, keeping numbers verbatim
func decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var body any
	if err := dec.Decode(&body); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after JSON value")
	}
	return body, nil
}

// Extract looks up every field in body. Missing or null values, and
// bodies that are not JSON objects, yield entity.NotAvailable.
func Extract(body any, fields []FieldSpec) []entity.Field {
	out := make([]entity.Field, 0, len(fields))
	for _, f := range fields {
		out = append(out, entity.Field{Key: f.Key, Value: lookup(body, f.Path)})
	}
	return out
}

func lookup(body any, path []string) any {
	current := body
	for _, key := range path {
		obj, ok := current.(map[string]any)
		if !ok {
			return entity.NotAvailable
		}
		current, ok = obj[key]
		if !ok {
			return entity.NotAvailable
		}
	}
	if current == nil {
		return entity.NotAvailable
	}
	return current
}
