// Package decoder reads raw coverage JSON into a domain.Report.
//
// A top-level "total" object selects the summary format; anything else is
// read as a mapping from file path to a per-file record. Records are read
// leniently: fields that are missing or have an unexpected type contribute
// nothing instead of failing the whole report.
package decoder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/buger/jsonparser"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/covscore/covscore/internal/domain"
)

const summaryKey = "total"

// maxExactInt is the largest integer a JSON number carries without loss.
const maxExactInt = 1 << 53

// JSONDecoder implements domain.ReportDecoder.
type JSONDecoder struct {
	logger *slog.Logger
	shape  *shapeChecker
}

// New creates a JSONDecoder that logs shape warnings to logger.
// A nil logger uses slog.Default().
func New(logger *slog.Logger) *JSONDecoder {
	if logger == nil {
		logger = slog.Default()
	}
	return &JSONDecoder{logger: logger, shape: newShapeChecker()}
}

// Decode parses data into a SummaryReport or DetailedReport.
// It fails with domain.ErrParse for malformed JSON and domain.ErrInvalidInput
// when the document is not an object with at least one key.
func (d *JSONDecoder) Decode(data []byte) (domain.Report, error) {
	data = bytes.TrimSpace(data)
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: please provide valid coverage JSON content", domain.ErrParse)
	}
	if len(data) == 0 || data[0] != '{' {
		return nil, fmt.Errorf("%w: expected a JSON object", domain.ErrInvalidInput)
	}

	top := orderedmap.New[string, json.RawMessage]()
	if err := json.Unmarshal(data, top); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	if top.Len() == 0 {
		return nil, fmt.Errorf("%w: the JSON object is empty", domain.ErrInvalidInput)
	}

	if raw, ok := top.Get(summaryKey); ok && isObject(raw) {
		if err := d.shape.check(data); err != nil {
			d.logger.Warn("summary report has an unexpected shape", "error", err)
		}
		return domain.SummaryReport{Total: readSummary(raw)}, nil
	}

	report := domain.DetailedReport{Files: make([]domain.FileEntry, 0, top.Len())}
	for pair := top.Oldest(); pair != nil; pair = pair.Next() {
		report.Files = append(report.Files, domain.FileEntry{
			Path:   pair.Key,
			Record: readRecord(pair.Value),
		})
	}
	return report, nil
}

func isObject(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

func readSummary(raw []byte) domain.CoverageSummary {
	return domain.CoverageSummary{
		Statements: readMetric(raw, string(domain.MetricStatements)),
		Branches:   readMetric(raw, string(domain.MetricBranches)),
		Functions:  readMetric(raw, string(domain.MetricFunctions)),
		Lines:      readMetric(raw, string(domain.MetricLines)),
	}
}

// readMetric reads {total, covered} at keys. Anything that is not a number
// reads as 0.
func readMetric(raw []byte, keys ...string) domain.Metric {
	return domain.Metric{
		Total:   readInt(raw, append(keys, "total")...),
		Covered: readInt(raw, append(keys, "covered")...),
	}
}

func readInt(raw []byte, keys ...string) int {
	value, typ, _, err := jsonparser.Get(raw, keys...)
	if err != nil || typ != jsonparser.Number {
		return 0
	}
	f, err := jsonparser.ParseFloat(value)
	if err != nil || math.Abs(f) > maxExactInt {
		return 0
	}
	return int(math.Trunc(f))
}

func readRecord(raw []byte) domain.FileRecord {
	var rec domain.FileRecord
	if !isObject(raw) {
		return rec
	}

	rec.Statements = readHitMap(raw, "s")
	rec.Functions = readHitMap(raw, "f")
	rec.Branches = readBranchMap(raw, "b")

	if value, typ, _, err := jsonparser.Get(raw, "lines"); err == nil && typ == jsonparser.Object {
		m := readMetric(value)
		rec.Lines = &m
	}

	return rec
}

// readHitMap returns the values of an id → hit count object. Arrays are
// read like objects keyed by index; any other type yields nothing.
func readHitMap(raw []byte, key string) []float64 {
	hits := []float64{}
	eachValue(raw, key, func(value []byte, typ jsonparser.ValueType) {
		hits = append(hits, hitCount(value, typ))
	})
	return hits
}

// readBranchMap returns one slice of path hit counts per branch id.
// Branch entries that are not arrays are skipped.
func readBranchMap(raw []byte, key string) [][]float64 {
	branches := [][]float64{}
	eachValue(raw, key, func(value []byte, typ jsonparser.ValueType) {
		if typ != jsonparser.Array {
			return
		}
		paths := []float64{}
		_, _ = jsonparser.ArrayEach(value, func(v []byte, t jsonparser.ValueType, _ int, _ error) {
			paths = append(paths, hitCount(v, t))
		})
		branches = append(branches, paths)
	})
	return branches
}

func eachValue(raw []byte, key string, fn func(value []byte, typ jsonparser.ValueType)) {
	value, typ, _, err := jsonparser.Get(raw, key)
	if err != nil {
		return
	}
	switch typ {
	case jsonparser.Object:
		_ = jsonparser.ObjectEach(value, func(_ []byte, v []byte, t jsonparser.ValueType, _ int) error {
			fn(v, t)
			return nil
		})
	case jsonparser.Array:
		_, _ = jsonparser.ArrayEach(value, func(v []byte, t jsonparser.ValueType, _ int, _ error) {
			fn(v, t)
		})
	}
}

// hitCount converts a JSON value to a comparable hit count. Numbers and
// numeric strings keep their value, true counts as 1, everything else as 0.
func hitCount(value []byte, typ jsonparser.ValueType) float64 {
	switch typ {
	case jsonparser.Number:
		f, err := jsonparser.ParseFloat(value)
		if err != nil {
			return 0
		}
		return f
	case jsonparser.String:
		f, err := strconv.ParseFloat(string(bytes.TrimSpace(value)), 64)
		if err != nil {
			return 0
		}
		return f
	case jsonparser.Boolean:
		if b, err := jsonparser.ParseBoolean(value); err == nil && b {
			return 1
		}
		return 0
	default:
		return 0
	}
}
