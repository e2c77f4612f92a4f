package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/WangYihang/Domain-Reputation-Checker/pkg/application"
	"github.com/WangYihang/Domain-Reputation-Checker/pkg/config"
	"github.com/WangYihang/Domain-Reputation-Checker/pkg/domain"
	"github.com/WangYihang/Domain-Reputation-Checker/pkg/domain/service"
	"github.com/WangYihang/Domain-Reputation-Checker/pkg/infrastructure/http"
	"github.com/WangYihang/Domain-Reputation-Checker/pkg/infrastructure/reputation"
	"github.com/WangYihang/Domain-Reputation-Checker/pkg/infrastructure/storage"
	"github.com/WangYihang/Domain-Reputation-Checker/pkg/input"
)

// Assembler assembles all components for the application
type Assembler struct {
	config *Config
	logger *slog.Logger
	getenv func(string) string
}

// NewAssembler creates a new assembler
func NewAssembler(config *Config, logger *slog.Logger) *Assembler {
	return &Assembler{config: config, logger: logger, getenv: os.Getenv}
}

// AssembleUseCase assembles the check use case with all dependencies
func (a *Assembler) AssembleUseCase() (*application.CheckUseCase, error) {
	fileConfig, err := config.Load(a.config.ConfigFile)
	if err != nil {
		return nil, err
	}
	if err := config.LoadEnvFile(a.config.EnvFile); err != nil {
		return nil, err
	}

	// Flags override the config file
	if a.config.TimeoutDuration > 0 {
		fileConfig.Timeout = a.config.TimeoutDuration
	}

	extra := append([]string{}, storage.DefaultExtraPresetDomains...)
	extra = append(extra, fileConfig.ExtraPresetDomains...)
	preset, err := storage.LoadPresetSet(a.config.Args.PresetList, extra)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("preset list loaded", "path", a.config.Args.PresetList, "entries", preset.Len())

	domains, err := a.loadDomains()
	if err != nil {
		return nil, err
	}
	if len(domains) == 0 {
		return nil, ErrNoDomains
	}
	a.logger.Debug("combined list of unique websites", "count", len(domains), "domains", domains)

	fetcher := http.NewFetcher(http.Config{
		Timeout:   fileConfig.Timeout,
		UserAgent: fileConfig.UserAgent,
	})

	metrics := application.NewMetrics()
	useCase := application.NewCheckUseCase(
		application.Config{
			Domains:     domains,
			Concurrency: a.config.Concurrency,
		},
		preset,
		a.buildProviders(fileConfig, fetcher),
		metrics,
		a.logger,
	)

	return useCase, nil
}

// loadDomains loads the domains to check from exactly one source
func (a *Assembler) loadDomains() ([]string, error) {
	var domains []string
	if a.config.Args.WebsitesFile != "" {
		loaded, err := input.NewLoader().Load(a.config.Args.WebsitesFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load websites: %w", err)
		}
		a.logger.Debug("websites loaded from file", "path", a.config.Args.WebsitesFile, "count", len(loaded), "domains", loaded)
		domains = loaded
	} else {
		a.logger.Debug("websites provided via command line", "count", len(a.config.Websites), "domains", a.config.Websites)
		domains = a.config.Websites
	}

	return domain.NewDeduplicator().Deduplicate(domains), nil
}

// buildProviders creates the providers in their fixed order
func (a *Assembler) buildProviders(fileConfig *config.Config, fetcher service.HTTPFetcher) []service.ReputationProvider {
	var providers []service.ReputationProvider
	for _, def := range reputation.Definitions() {
		override := fileConfig.Provider(def.Name)
		if override.Endpoint != "" {
			def.Endpoint = override.Endpoint
		}
		keyEnv := def.KeyEnv
		if override.APIKeyEnv != "" {
			keyEnv = append([]string{override.APIKeyEnv}, keyEnv...)
		}

		apiKey := config.ResolveKey(a.getenv, keyEnv...)
		providers = append(providers, reputation.NewProvider(def, apiKey, fetcher, a.logger))
	}
	return providers
}
