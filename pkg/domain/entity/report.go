package entity

import (
	"bytes"
	"encoding/json"
	"time"
)

const (
	// PresetStatusUnsafe marks a domain found on the preset list
	PresetStatusUnsafe = "Unsafe"
	// NotAvailable replaces any field the upstream payload did not carry
	NotAvailable = "N/A"
	// ErrMissingAPIKey is the error message of a provider without a key
	ErrMissingAPIKey = "API key not provided"
)

// Field is a single named value extracted from a provider response
type Field struct {
	Key   string
	Value any
}

// ProviderResult is the normalized outcome of one reputation lookup.
// Either Fields or Error is populated, never both.
type ProviderResult struct {
	Provider string
	Fields   []Field
	Error    string
}

// NewErrorResult creates a failed result for provider
func NewErrorResult(provider, message string) ProviderResult {
	return ProviderResult{Provider: provider, Error: message}
}

// Failed reports whether the lookup produced an error
func (r ProviderResult) Failed() bool {
	return r.Error != ""
}

// MarshalJSON keeps the declared field order, which a map would lose.
func (r ProviderResult) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if r.Failed() {
		msg, err := json.Marshal(r.Error)
		if err != nil {
			return nil, err
		}
		buf.WriteString(`"error":`)
		buf.Write(msg)
		buf.WriteByte('}')
		return buf.Bytes(), nil
	}
	for i, f := range r.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// DomainReport is the outcome for a single input domain
type DomainReport struct {
	// Domain keeps the casing of its first appearance in the input
	Domain       string
	PresetStatus string
	Providers    []ProviderResult
}

// IsPreset reports whether the domain matched the preset list
func (d DomainReport) IsPreset() bool {
	return d.PresetStatus != ""
}

// MarshalJSON renders either the preset status or the per-provider results
func (d DomainReport) MarshalJSON() ([]byte, error) {
	if d.IsPreset() {
		return json.Marshal(struct {
			Domain       string `json:"domain"`
			PresetStatus string `json:"preset_status"`
		}{d.Domain, d.PresetStatus})
	}

	var buf bytes.Buffer
	buf.WriteString(`{"domain":`)
	name, err := json.Marshal(d.Domain)
	if err != nil {
		return nil, err
	}
	buf.Write(name)
	buf.WriteString(`,"providers":{`)
	for i, p := range d.Providers {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p.Provider)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(p)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}

// RunReport is the result of one invocation, in input order
type RunReport struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Domains     []DomainReport `json:"domains"`
}

// Summary holds counters derived from a run report
type Summary struct {
	Total          int
	PresetHits     int
	LookedUp       int
	ProviderErrors int
}

// Summary counts preset hits, looked up domains and failed provider calls
func (r *RunReport) Summary() Summary {
	s := Summary{Total: len(r.Domains)}
	for _, d := range r.Domains {
		if d.IsPreset() {
			s.PresetHits++
			continue
		}
		s.LookedUp++
		for _, p := range d.Providers {
			if p.Failed() {
				s.ProviderErrors++
			}
		}
	}
	return s
}
