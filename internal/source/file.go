package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/rickgao/fixture-merge/internal/model"
)

// File reads records from a JSON file written by a scraper.
type File struct {
	id     string
	path   string
	logger *slog.Logger
}

// NewFile creates a file source.
func NewFile(id, path string, logger *slog.Logger) *File {
	if logger == nil {
		logger = slog.Default()
	}
	return &File{id: id, path: path, logger: logger}
}

// ID returns the source ID.
func (f *File) ID() string { return f.id }

// IDFromPath derives a source ID from a scraper output file name:
// "data/manual_sch.json" is "manual", "flashscore.json" is "flashscore".
func IDFromPath(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.TrimSuffix(name, "_sch")
	return strings.ToLower(name)
}

// Fetch reads the file. A missing file yields no records: scrapers that have
// not run yet are not an error.
func (f *File) Fetch(ctx context.Context) ([]model.ScheduleRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			f.logger.Warn("source file not found, skipping", "path", f.path)
			return nil, nil
		}
		return nil, fmt.Errorf("read source file: %w", err)
	}

	records, err := Decode(data, f.id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.path, err)
	}
	return records, nil
}
