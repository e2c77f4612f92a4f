package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/WangYihang/Domain-Reputation-Checker/pkg/common"
	"github.com/WangYihang/Domain-Reputation-Checker/pkg/infrastructure/storage"
	"github.com/WangYihang/Domain-Reputation-Checker/pkg/interface/presenter"
)

// Run checks every configured domain and writes the report.
// Nothing is written to the output file unless the run completes.
func Run(ctx context.Context, cfg *Config, logger *slog.Logger, stdout, stderr io.Writer) error {
	useCase, err := NewAssembler(cfg, logger).AssembleUseCase()
	if err != nil {
		return err
	}

	width := common.TerminalWidth()
	if cfg.Progress {
		useCase.RegisterProgressObserver(presenter.NewProgress(stderr, width))
	}

	run, err := useCase.Execute(ctx)
	if err != nil {
		return fmt.Errorf("check interrupted: %w", err)
	}

	data, err := presenter.Render(run, cfg.Format)
	if err != nil {
		return err
	}

	writer := storage.NewReportWriter(cfg.Output, stdout)
	if err := writer.Write(data); err != nil {
		writer.Close()
		return fmt.Errorf("could not write report: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("could not write report: %w", err)
	}
	if cfg.Output != "" && cfg.Output != "-" {
		logger.Info("results written", "path", cfg.Output)
	}

	if cfg.MetricsFile != "" {
		if err := useCase.Metrics().WriteToTextfile(cfg.MetricsFile); err != nil {
			logger.Warn("failed to write metrics", "path", cfg.MetricsFile, "error", err)
		}
	}

	if cfg.Progress {
		fmt.Fprint(stderr, presenter.RenderSummary(run, cfg.Output, width))
	}

	return nil
}
