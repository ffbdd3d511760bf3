package writer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rickgao/fixture-merge/internal/dedup"
	"github.com/rickgao/fixture-merge/internal/model"
	"github.com/rickgao/fixture-merge/internal/poller"
	"github.com/rickgao/fixture-merge/internal/resolve"
)

// FileWriter writes the merged schedule to a JSON file.
type FileWriter struct {
	path     string
	resolver *resolve.Resolver // nil or raw keeps source names
	raw      bool
	logger   *slog.Logger
}

// NewFileWriter creates a FileWriter. Unless raw is set, team and league
// names are replaced by their display names before writing.
func NewFileWriter(path string, resolver *resolve.Resolver, raw bool, logger *slog.Logger) *FileWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileWriter{
		path:     path,
		resolver: resolver,
		raw:      raw,
		logger:   logger,
	}
}

// Path returns the output file path.
func (w *FileWriter) Path() string {
	return w.path
}

// HandleCycle writes the records of a cycle.
func (w *FileWriter) HandleCycle(ctx context.Context, c poller.Cycle) error {
	return w.Write(c.Result.Records)
}

// Write replaces the output file with records. The file is written to a
// temporary name in the same directory and renamed, so readers never see a
// partial schedule.
func (w *FileWriter) Write(records []model.ScheduleRecord) error {
	if !w.raw && w.resolver != nil {
		records = dedup.ApplyDisplayNames(records, w.resolver)
	}
	if records == nil {
		records = []model.ScheduleRecord{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode schedule: %w", err)
	}

	dir := filepath.Dir(w.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(w.path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write schedule: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), w.path); err != nil {
		return fmt.Errorf("rename schedule: %w", err)
	}

	w.logger.Debug("wrote schedule", "path", w.path, "records", len(records))
	return nil
}
