package domain

import "strings"

// Normalizer normalizes domains
type Normalizer struct{}

// NewNormalizer creates normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize converts domain to lowercase
func (n *Normalizer) Normalize(domain string) string {
	return strings.ToLower(strings.TrimSpace(domain))
}

// Deduplicator removes case-insensitive duplicates
type Deduplicator struct {
	normalizer *Normalizer
}

// NewDeduplicator creates deduplicator
func NewDeduplicator() *Deduplicator {
	return &Deduplicator{normalizer: NewNormalizer()}
}

// Deduplicate keeps the first occurrence of every domain, ignoring case.
// The kept entries retain their original casing and input order.
func (d *Deduplicator) Deduplicate(domains []string) []string {
	seen := make(map[string]struct{}, len(domains))
	unique := make([]string, 0, len(domains))
	for _, domain := range domains {
		key := d.normalizer.Normalize(domain)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, domain)
	}
	return unique
}
