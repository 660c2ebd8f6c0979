package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/RehanAli357/baby-food/models"
	"gopkg.in/yaml.v3"
)

// Format is the authoring format of a dataset document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// FormatFromPath picks YAML for .yaml/.yml files and JSON otherwise.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// DatasetIssue is a field of one record that was read as its empty value
// because it had the wrong type.
type DatasetIssue struct {
	Record string
	models.FieldIssue
}

func (i DatasetIssue) Error() string {
	return "record " + i.Record + ": " + i.FieldIssue.Error()
}

// DecodeDataset reads a dataset document. A top-level list is used as is; a
// keyed mapping contributes its values in object enumeration order. Records
// are read leniently: wrongly typed fields come back as issues, and only a
// malformed document is an error.
func DecodeDataset(data []byte, format Format) ([]models.FoodRecord, []DatasetIssue, error) {
	switch format {
	case FormatJSON, "":
		return decodeJSONDataset(data)
	case FormatYAML:
		return decodeYAMLDataset(data)
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

type entry[T any] struct {
	key   string
	value T
}

func decodeJSONDataset(data []byte) ([]models.FoodRecord, []DatasetIssue, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, fmt.Errorf("decode dataset: %w", err)
	}

	delim, ok := tok.(json.Delim)
	if !ok || (delim != '[' && delim != '{') {
		return nil, nil, fmt.Errorf("decode dataset: expected array or object, got %v", tok)
	}

	var entries []entry[[]byte]
	for dec.More() {
		key := ""
		if delim == '{' {
			tok, err := dec.Token()
			if err != nil {
				return nil, nil, fmt.Errorf("decode dataset: %w", err)
			}
			key, _ = tok.(string)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, fmt.Errorf("decode dataset: record %s: %w", recordLabel(len(entries), key), err)
		}
		entries = append(entries, entry[[]byte]{key: key, value: raw})
	}

	if _, err := dec.Token(); err != nil {
		return nil, nil, fmt.Errorf("decode dataset: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, nil, errors.New("decode dataset: trailing data after document")
	}

	if delim == '{' {
		entries = enumerationOrder(entries)
	}
	foods, issues := decodeEntries(entries, models.DecodeFoodJSON)
	return foods, issues, nil
}

func decodeYAMLDataset(data []byte) ([]models.FoodRecord, []DatasetIssue, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("decode dataset: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil, errors.New("decode dataset: empty document")
	}

	root := doc.Content[0]
	var entries []entry[*yaml.Node]
	switch root.Kind {
	case yaml.SequenceNode:
		for _, n := range root.Content {
			entries = append(entries, entry[*yaml.Node]{value: n})
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(root.Content); i += 2 {
			entries = append(entries, entry[*yaml.Node]{key: root.Content[i].Value, value: root.Content[i+1]})
		}
		entries = enumerationOrder(entries)
	default:
		return nil, nil, fmt.Errorf("decode dataset: line %d: expected sequence or mapping", root.Line)
	}

	foods, issues := decodeEntries(entries, models.DecodeFoodYAML)
	return foods, issues, nil
}

func decodeEntries[T any](entries []entry[T], decode func(T) (models.FoodRecord, []models.FieldIssue)) ([]models.FoodRecord, []DatasetIssue) {
	foods := make([]models.FoodRecord, 0, len(entries))
	var issues []DatasetIssue
	for i, e := range entries {
		f, fieldIssues := decode(e.value)
		for _, fi := range fieldIssues {
			issues = append(issues, DatasetIssue{Record: recordLabel(i, e.key), FieldIssue: fi})
		}
		foods = append(foods, f)
	}
	return foods, issues
}

// enumerationOrder orders a mapping's entries the way object values are
// enumerated: a repeated key keeps its first position and its last value,
// array-index keys come first in ascending numeric order, and the remaining
// keys follow in document order.
func enumerationOrder[T any](entries []entry[T]) []entry[T] {
	pos := make(map[string]int, len(entries))
	out := make([]entry[T], 0, len(entries))
	for _, e := range entries {
		if i, ok := pos[e.key]; ok {
			out[i].value = e.value
			continue
		}
		pos[e.key] = len(out)
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, aIndex := arrayIndex(out[i].key)
		b, bIndex := arrayIndex(out[j].key)
		if aIndex && bIndex {
			return a < b
		}
		return aIndex && !bIndex
	})
	return out
}

// arrayIndex reports whether key is a canonical array index: a decimal
// integer below 2^32-1 with no sign or leading zeros.
func arrayIndex(key string) (uint64, bool) {
	n, err := strconv.ParseUint(key, 10, 32)
	if err != nil || n == math.MaxUint32 || strconv.FormatUint(n, 10) != key {
		return 0, false
	}
	return n, true
}

func recordLabel(index int, key string) string {
	if key != "" {
		return fmt.Sprintf("%q", key)
	}
	return fmt.Sprintf("#%d", index)
}
