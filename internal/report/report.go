// Package report writes the audit trail and aggregate summary the driver
// (C11) produces for a batch run: append-only JSONL audit logs plus a
// single aggregate JSON report, generated deterministically aside from its
// timestamp and run ID.
package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ocrclean/ocrclean/internal/textclean/boilerplate"
)

// RejectedRecord is one rejected_files.jsonl row.
type RejectedRecord struct {
	Path             string  `json:"path"`
	Reason           string  `json:"reason"`
	Lang             string  `json:"lang"`
	Confidence       float64 `json:"confidence"`
	AlphaRatio       float64 `json:"alpha_ratio"`
	ListPatternRatio float64 `json:"list_pattern_ratio"`
}

// BoilerplateRecord is one _boilerplate_stripped.jsonl row.
type BoilerplateRecord struct {
	Path    string                         `json:"path"`
	Regions []boilerplate.StrippedRegion   `json:"regions"`
}

// TriageRecord is one _triage_results.jsonl row.
type TriageRecord struct {
	Path             string   `json:"path"`
	Action           string   `json:"action"`
	Problems         []string `json:"problems"`
	AlphaRatio       float64  `json:"alpha_ratio"`
	LineLengthCV     float64  `json:"line_length_cv"`
	FragmentRatio    float64  `json:"fragment_ratio"`
	ListPatternRatio float64  `json:"list_pattern_ratio"`
	Lang             string   `json:"lang"`
}

// JSONLWriter appends newline-terminated JSON records to a single file.
// Safe for concurrent use: writes are serialized by a mutex, matching the
// spec's "mutex or per-worker files merged at end" requirement — here we
// take the simpler mutex route since file-write time is negligible next to
// pattern-matching time per document.
type JSONLWriter struct {
	mu   sync.Mutex
	f    *os.File
	enc  *json.Encoder
}

// NewJSONLWriter opens (creating/truncating) path for append-only JSONL
// writes.
func NewJSONLWriter(path string) (*JSONLWriter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	return &JSONLWriter{f: f, enc: json.NewEncoder(f)}, nil
}

// Write appends one JSON-encoded record followed by a newline.
func (w *JSONLWriter) Write(record any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.enc.Encode(record)
}

// Close flushes and closes the underlying file.
func (w *JSONLWriter) Close() error {
	return w.f.Close()
}

// PerCategoryTotals accumulates substitution counts per OCR pattern
// category across an entire batch.
type PerCategoryTotals map[string]int

// Aggregate is the _cleanup_report.json shape.
type Aggregate struct {
	RunID              string            `json:"run_id"`
	GeneratedAt        string            `json:"generated_at"`
	FilesProcessed     int               `json:"files_processed"`
	FilesModified      int               `json:"files_modified"`
	FilesFailed        int               `json:"files_failed"`
	FilesRejected      int               `json:"files_rejected"`
	TotalSubstitutions int64             `json:"total_substitutions"`
	TotalBytes         int64             `json:"total_bytes"`
	BoilerplateFiles   int               `json:"boilerplate_files"`
	BoilerplateChars   int64             `json:"boilerplate_chars"`
	PerCategoryTotals  PerCategoryTotals `json:"per_category_totals"`
}

// NewRunID returns a fresh batch run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// WriteAggregate marshals agg as indented JSON and writes it atomically
// via write-then-rename, so a reader never observes a partially written
// report.
func WriteAggregate(path string, agg Aggregate) error {
	data, err := json.MarshalIndent(agg, "", "  ")
	if err != nil {
		return err
	}
	return atomicWrite(path, data)
}

func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}

// Stamp returns the current UTC time formatted as RFC3339, used for
// GeneratedAt. Kept as its own function so callers needing a fixed clock
// for tests can substitute one.
func Stamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
