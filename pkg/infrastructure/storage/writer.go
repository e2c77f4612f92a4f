package storage

import (
	"io"
	"os"
	"sync"

	"github.com/WangYihang/Domain-Reputation-Checker/pkg/domain/repository"
)

// ReportWriter implements repository.ReportWriter.
// A file sink is created on the first Write, so a run that fails
// before producing a report leaves no output file behind.
type ReportWriter struct {
	filename string
	stdout   io.Writer
	file     *os.File
	mu       sync.Mutex
}

// NewReportWriter creates a writer for filename, or for stdout when
// filename is empty or "-"
func NewReportWriter(filename string, stdout io.Writer) repository.ReportWriter {
	if filename == "-" {
		filename = ""
	}
	return &ReportWriter{
		filename: filename,
		stdout:   stdout,
	}
}

// Write writes the whole report
func (w *ReportWriter) Write(report []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.filename == "" {
		_, err := w.stdout.Write(report)
		return err
	}

	if w.file == nil {
		file, err := os.Create(w.filename)
		if err != nil {
			return err
		}
		w.file = file
	}
	_, err := w.file.Write(report)
	return err
}

// Close closes the writer (does not close stdout)
func (w *ReportWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}
