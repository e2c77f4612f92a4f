package application

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/WangYihang/Domain-Reputation-Checker/pkg/domain"
	"github.com/WangYihang/Domain-Reputation-Checker/pkg/domain/entity"
	"github.com/WangYihang/Domain-Reputation-Checker/pkg/domain/repository"
	"github.com/WangYihang/Domain-Reputation-Checker/pkg/domain/service"
	"golang.org/x/sync/errgroup"
)

// CheckUseCase orchestrates the preset match and reputation lookups
type CheckUseCase struct {
	config Config

	// Services
	preset     repository.PresetMatcher
	providers  []service.ReputationProvider
	normalizer *domain.Normalizer

	// Observability
	metrics   *Metrics
	logger    *slog.Logger
	observers []ProgressObserver
	now       func() time.Time
}

// Config holds the use case configuration
type Config struct {
	// Domains are already deduplicated, in report order
	Domains []string
	// Concurrency bounds how many domains are checked at once
	Concurrency int
}

// ProgressObserver observes a run. OnDomainChecked may be called from
// several goroutines when Concurrency > 1.
type ProgressObserver interface {
	OnStart(total int)
	OnDomainChecked(report entity.DomainReport)
	OnFinish()
}

// NewCheckUseCase creates a new check use case
func NewCheckUseCase(
	config Config,
	preset repository.PresetMatcher,
	providers []service.ReputationProvider,
	metrics *Metrics,
	logger *slog.Logger,
) *CheckUseCase {
	if config.Concurrency < 1 {
		config.Concurrency = 1
	}
	if metrics == nil {
		metrics = NewMetrics()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &CheckUseCase{
		config:     config,
		preset:     preset,
		providers:  providers,
		normalizer: domain.NewNormalizer(),
		metrics:    metrics,
		logger:     logger,
		now:        time.Now,
	}
}

// RegisterProgressObserver registers a progress observer
func (uc *CheckUseCase) RegisterProgressObserver(observer ProgressObserver) {
	uc.observers = append(uc.observers, observer)
}

// Metrics returns the run metrics
func (uc *CheckUseCase) Metrics() *Metrics {
	return uc.metrics
}

// Execute checks every configured domain and returns the run report.
// The report keeps input order regardless of concurrency.
func (uc *CheckUseCase) Execute(ctx context.Context) (*entity.RunReport, error) {
	domains := uc.config.Domains
	reports := make([]entity.DomainReport, len(domains))

	uc.logger.Info("checking domains",
		"domains", len(domains),
		"providers", len(uc.providers),
		"concurrency", uc.config.Concurrency,
	)
	for _, o := range uc.observers {
		o.OnStart(len(domains))
	}
	defer func() {
		for _, o := range uc.observers {
			o.OnFinish()
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.config.Concurrency)
	for i, d := range domains {
		i, d := i, d
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reports[i] = uc.CheckDomain(gctx, d)
			for _, o := range uc.observers {
				o.OnDomainChecked(reports[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// lookups swallow cancellation into error results
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &entity.RunReport{
		GeneratedAt: uc.now(),
		Domains:     reports,
	}, nil
}

// CheckDomain matches d against the preset list and, when absent, queries
// every provider in order with the lowercased domain
func (uc *CheckUseCase) CheckDomain(ctx context.Context, d string) entity.DomainReport {
	if uc.preset.Contains(d) {
		uc.logger.Debug("domain on preset list", "domain", d)
		uc.metrics.ObserveDomain(outcomePreset)
		return entity.DomainReport{
			Domain:       d,
			PresetStatus: entity.PresetStatusUnsafe,
		}
	}

	normalized := uc.normalizer.Normalize(d)
	results := make([]entity.ProviderResult, 0, len(uc.providers))
	for _, p := range uc.providers {
		start := time.Now()
		result := p.Lookup(ctx, normalized)
		result.Provider = p.Name()
		uc.metrics.ObserveLookup(result, time.Since(start))
		results = append(results, result)
	}
	uc.metrics.ObserveDomain(outcomeLookedUp)

	return entity.DomainReport{
		Domain:    d,
		Providers: results,
	}
}
