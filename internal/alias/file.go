package alias

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// maxSnippet bounds the source excerpt attached to parse errors.
const maxSnippet = 60

// LoadFile reads and parses an alias file. Files ending in .yaml or .yml are
// read as YAML, everything else as JSON. The returned error is always a
// *ConfigError.
func LoadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Document{}, &ConfigError{Kind: ConfigMissing, Path: path, Err: err}
		}
		return Document{}, &ConfigError{Kind: ConfigParseError, Path: path, Err: fmt.Errorf("read alias file: %w", err)}
	}

	doc, err := Parse(data, isYAML(path))
	if err != nil {
		var cerr *ConfigError
		if errors.As(err, &cerr) {
			cerr.Path = path
		}
		return Document{}, err
	}
	return doc, nil
}

// Parse parses an alias document from memory.
func Parse(data []byte, yamlFormat bool) (Document, error) {
	if yamlFormat {
		return parseYAML(data)
	}
	return parseJSON(data)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// WriteFile writes a formatted document next to path and renames it into
// place, so readers never see a partial file.
func WriteFile(path string, doc Document) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".alias-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod alias file: %w", err)
	}
	if _, err := tmp.Write(Format(doc)); err != nil {
		tmp.Close()
		return fmt.Errorf("write alias file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close alias file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename alias file: %w", err)
	}
	return nil
}

// -----------------------------------------------------------------------------
// JSON
// -----------------------------------------------------------------------------

func parseJSON(data []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return Document{}, jsonError(data, dec, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return Document{}, locatedError(data, 0, errors.New("document must be a JSON object"))
	}

	var doc Document
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Document{}, jsonError(data, dec, err)
		}
		key, _ := tok.(string)

		ns, ok := namespaceFor(key)
		if !ok {
			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return Document{}, jsonError(data, dec, err)
			}
			doc.Extra = append(doc.Extra, Field{Key: key, Value: raw})
			continue
		}

		if err := parseJSONMapping(data, dec, key, ns, &doc); err != nil {
			return Document{}, err
		}
	}

	if _, err := dec.Token(); err != nil {
		return Document{}, jsonError(data, dec, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after document")
		}
		return Document{}, jsonError(data, dec, err)
	}

	return doc, nil
}

func parseJSONMapping(data []byte, dec *json.Decoder, name string, ns Namespace, doc *Document) error {
	start := dec.InputOffset()
	tok, err := dec.Token()
	if err != nil {
		return jsonError(data, dec, err)
	}
	if tok == nil {
		return nil // "team_aliases": null is an empty mapping
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return locatedError(data, start, fmt.Errorf("%s must be an object", name))
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return jsonError(data, dec, err)
		}
		key, _ := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return jsonError(data, dec, err)
		}
		if isComment(key) {
			continue
		}

		var value string
		if err := json.Unmarshal(raw, &value); err != nil || bytes.Equal(raw, []byte("null")) {
			doc.Warnings = append(doc.Warnings, fmt.Sprintf("%s.%s: value is not a string, skipped", name, key))
			continue
		}
		doc.add(ns, Entry{Key: key, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return jsonError(data, dec, err)
	}
	return nil
}

func jsonError(data []byte, dec *json.Decoder, err error) error {
	offset := dec.InputOffset()
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		offset = syntaxErr.Offset
	}
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return locatedError(data, offset, err)
}

// locatedError builds a parse error pointing at a byte offset.
func locatedError(data []byte, offset int64, err error) *ConfigError {
	line, col, snippet := position(data, offset)
	return &ConfigError{
		Kind:    ConfigParseError,
		Line:    line,
		Column:  col,
		Snippet: snippet,
		Err:     err,
	}
}

// position converts a byte offset to a 1-based line/column and the trimmed
// text of that line.
func position(data []byte, offset int64) (line, col int, snippet string) {
	if offset < 0 {
		offset = 0
	}
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	// Syntax errors report the offset just past the bad byte.
	if offset > 0 && offset == int64(len(data)) {
		offset--
	}

	before := data[:offset]
	line = bytes.Count(before, []byte("\n")) + 1
	lineStart := bytes.LastIndexByte(before, '\n') + 1
	col = int(offset) - lineStart + 1

	lineEnd := bytes.IndexByte(data[lineStart:], '\n')
	if lineEnd < 0 {
		lineEnd = len(data) - lineStart
	}
	return line, col, trimSnippet(string(data[lineStart : lineStart+lineEnd]))
}

func trimSnippet(s string) string {
	s = strings.TrimSpace(s)
	if r := []rune(s); len(r) > maxSnippet {
		s = string(r[:maxSnippet]) + "..."
	}
	return s
}

// -----------------------------------------------------------------------------
// YAML
// -----------------------------------------------------------------------------

var yamlLine = regexp.MustCompile(`line (\d+)`)

func parseYAML(data []byte) (Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		cerr := &ConfigError{Kind: ConfigParseError, Err: err}
		if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
			cerr.Line, _ = strconv.Atoi(m[1])
			cerr.Column = 1
			cerr.Snippet = lineText(data, cerr.Line)
		}
		return Document{}, cerr
	}

	var doc Document
	if len(root.Content) == 0 {
		return doc, nil // empty file
	}

	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return Document{}, yamlNodeError(data, top, errors.New("document must be a mapping"))
	}

	for i := 0; i+1 < len(top.Content); i += 2 {
		keyNode, valNode := top.Content[i], top.Content[i+1]
		key := keyNode.Value

		ns, ok := namespaceFor(key)
		if !ok {
			raw, err := yamlToJSON(valNode)
			if err != nil {
				return Document{}, yamlNodeError(data, valNode, err)
			}
			doc.Extra = append(doc.Extra, Field{Key: key, Value: raw})
			continue
		}

		if valNode.Tag == "!!null" {
			continue
		}
		if valNode.Kind != yaml.MappingNode {
			return Document{}, yamlNodeError(data, valNode, fmt.Errorf("%s must be a mapping", key))
		}

		for j := 0; j+1 < len(valNode.Content); j += 2 {
			k, v := valNode.Content[j], valNode.Content[j+1]
			if isComment(k.Value) {
				continue
			}
			if v.Kind != yaml.ScalarNode || v.Tag == "!!null" {
				doc.Warnings = append(doc.Warnings, fmt.Sprintf("%s.%s: value is not a string, skipped", key, k.Value))
				continue
			}
			doc.add(ns, Entry{Key: k.Value, Value: v.Value})
		}
	}

	return doc, nil
}

func yamlNodeError(data []byte, n *yaml.Node, err error) *ConfigError {
	return &ConfigError{
		Kind:    ConfigParseError,
		Line:    n.Line,
		Column:  n.Column,
		Snippet: lineText(data, n.Line),
		Err:     err,
	}
}

func yamlToJSON(n *yaml.Node) (json.RawMessage, error) {
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

func lineText(data []byte, line int) string {
	lines := bytes.Split(data, []byte("\n"))
	if line < 1 || line > len(lines) {
		return ""
	}
	return trimSnippet(string(lines[line-1]))
}
