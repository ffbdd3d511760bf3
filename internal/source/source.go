package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rickgao/fixture-merge/internal/config"
	"github.com/rickgao/fixture-merge/internal/model"
)

// Source produces schedule records.
type Source interface {
	// ID names the source. It is the key used by the dedup source priority.
	ID() string

	// Fetch returns the source's current records.
	Fetch(ctx context.Context) ([]model.ScheduleRecord, error)
}

// Errors
var (
	ErrNotRecords = errors.New("payload does not contain a record list")
)

// wrapperKeys are the object fields searched for a record list.
var wrapperKeys = []string{"records", "matches", "data"}

// New builds a source from its configuration.
func New(cfg config.SourceConfig, logger *slog.Logger) (Source, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("source", cfg.ID)

	switch cfg.Kind {
	case config.SourceFile, "":
		return NewFile(cfg.ID, cfg.Path, logger), nil
	case config.SourceHTTP:
		return NewHTTP(cfg.ID, cfg.URL, cfg.Headers, cfg.Timeout, logger), nil
	case config.SourceWebSocket:
		return NewWebSocket(WebSocketConfig{
			ID:        cfg.ID,
			URL:       cfg.URL,
			Headers:   cfg.Headers,
			Subscribe: cfg.Subscribe,
			Timeout:   cfg.Timeout,
		}, logger), nil
	}
	return nil, fmt.Errorf("unknown source kind %q", cfg.Kind)
}

// NewAll builds every configured source.
func NewAll(cfgs []config.SourceConfig, logger *slog.Logger) ([]Source, error) {
	sources := make([]Source, 0, len(cfgs))
	for _, c := range cfgs {
		s, err := New(c, logger)
		if err != nil {
			return nil, fmt.Errorf("create source %s: %w", c.ID, err)
		}
		sources = append(sources, s)
	}
	return sources, nil
}

// Decode parses a record payload and stamps records lacking a source ID.
func Decode(data []byte, id string) ([]model.ScheduleRecord, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("decode records: %w", ErrNotRecords)
	}

	var records []model.ScheduleRecord
	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("decode records: %w", err)
		}
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil, fmt.Errorf("decode records: %w", err)
		}
		raw, ok := findList(obj)
		if !ok {
			return nil, fmt.Errorf("decode records: %w", ErrNotRecords)
		}
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, fmt.Errorf("decode records: %w", err)
		}
	default:
		return nil, fmt.Errorf("decode records: %w", ErrNotRecords)
	}

	for i := range records {
		if records[i].SourceID == "" {
			records[i].SourceID = id
		}
	}
	return records, nil
}

func findList(obj map[string]json.RawMessage) (json.RawMessage, bool) {
	for _, k := range wrapperKeys {
		raw, ok := obj[k]
		if !ok {
			continue
		}
		raw = bytes.TrimSpace(raw)
		if len(raw) > 0 && raw[0] == '[' {
			return raw, true
		}
	}
	return nil, false
}
