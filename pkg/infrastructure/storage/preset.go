package storage

import (
	"fmt"

	"github.com/WangYihang/Domain-Reputation-Checker/pkg/domain"
	"github.com/WangYihang/Domain-Reputation-Checker/pkg/domain/repository"
	"github.com/WangYihang/Domain-Reputation-Checker/pkg/input"
)

// DefaultExtraPresetDomains are always treated as unsafe
var DefaultExtraPresetDomains = []string{
	"example1.com",
	"example2.com",
	"example3.com",
}

// PresetSet implements repository.PresetMatcher with exact,
// case-insensitive membership
type PresetSet struct {
	domains    map[string]struct{}
	normalizer *domain.Normalizer
}

// NewPresetSet builds an immutable set from the given entries
func NewPresetSet(entries ...[]string) repository.PresetMatcher {
	normalizer := domain.NewNormalizer()
	domains := make(map[string]struct{})
	for _, list := range entries {
		for _, entry := range list {
			if d := normalizer.Normalize(entry); d != "" {
				domains[d] = struct{}{}
			}
		}
	}

	return &PresetSet{
		domains:    domains,
		normalizer: normalizer,
	}
}

// LoadPresetSet reads the preset list at path and merges in extra
func LoadPresetSet(path string, extra []string) (repository.PresetMatcher, error) {
	entries, err := input.NewLoader().Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load preset list: %w", err)
	}
	return NewPresetSet(entries, extra), nil
}

// Contains checks membership, ignoring case
func (s *PresetSet) Contains(d string) bool {
	_, ok := s.domains[s.normalizer.Normalize(d)]
	return ok
}

// Len returns the number of distinct entries
func (s *PresetSet) Len() int {
	return len(s.domains)
}
