// Package driver discovers input/output file pairs and distributes
// per-file cleanup work across a bounded worker pool (C11). Workers share
// only read-only resources (the pipeline's pattern table, dictionaries,
// noise set) and atomic counters; there is no worker-to-worker
// coordination and output file ordering is unspecified.
package driver

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/ocrclean/ocrclean/internal/report"
	"github.com/ocrclean/ocrclean/internal/textclean/pipeline"
)

// FilePair is one discovered input file and its mirrored output path.
type FilePair struct {
	InputPath  string
	OutputPath string
}

// Discover walks inputDir for ".txt" files at any depth and returns the
// mirrored (input, output) pairs rooted at outputDir, preserving relative
// directory structure and basenames.
func Discover(inputDir, outputDir string) ([]FilePair, error) {
	var pairs []FilePair

	absIn, err := filepath.Abs(inputDir)
	if err != nil {
		return nil, err
	}

	err = filepath.Walk(absIn, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if info.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".txt") {
			return nil
		}
		rel, relErr := filepath.Rel(absIn, path)
		if relErr != nil {
			return relErr
		}
		pairs = append(pairs, FilePair{
			InputPath:  path,
			OutputPath: filepath.Join(outputDir, rel),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pairs, nil
}

// Stats accumulates batch-wide, atomically-updated counters. Safe for
// concurrent use by every worker.
type Stats struct {
	FilesProcessed     atomic.Int64
	FilesModified      atomic.Int64
	FilesFailed        atomic.Int64
	FilesRejected      atomic.Int64
	TotalSubstitutions atomic.Int64
	TotalBytes         atomic.Int64
	BoilerplateFiles   atomic.Int64
	BoilerplateChars   atomic.Int64
}

// Config controls how the worker pool processes a batch.
type Config struct {
	Workers       int
	RateLimitPerS float64 // 0 disables throttling
}

// DefaultWorkers matches the scheduling model's default pool size.
const DefaultWorkers = 24

// Driver distributes FilePairs across a bounded worker pool, running each
// through a shared, read-only Pipeline.
type Driver struct {
	pipeline *pipeline.Pipeline
	stats    Stats
	logger   *slog.Logger
	limiter  *rate.Limiter

	rejectedLog    *report.JSONLWriter
	boilerplateLog *report.JSONLWriter
	triageLog      *report.JSONLWriter

	categoryCountersMu sync.Mutex
	categoryCounters   map[string]*atomic.Int64
}

// New constructs a Driver bound to pipe and the three audit log writers.
// Every writer may be nil, in which case that audit stream is skipped.
func New(pipe *pipeline.Pipeline, logger *slog.Logger, rejectedLog, boilerplateLog, triageLog *report.JSONLWriter, cfg Config) *Driver {
	d := &Driver{
		pipeline:       pipe,
		logger:         logger,
		rejectedLog:    rejectedLog,
		boilerplateLog: boilerplateLog,
		triageLog:      triageLog,
		categoryCounters: make(map[string]*atomic.Int64),
	}
	if cfg.RateLimitPerS > 0 {
		d.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitPerS), 1)
	}
	return d
}

// Stats returns the accumulated batch statistics. Safe to call while a
// Run is in progress for a live progress readout.
func (d *Driver) Stats() *Stats { return &d.stats }

// CategoryTotals snapshots the per-category substitution totals
// accumulated so far.
func (d *Driver) CategoryTotals() report.PerCategoryTotals {
	d.categoryCountersMu.Lock()
	defer d.categoryCountersMu.Unlock()

	totals := make(report.PerCategoryTotals, len(d.categoryCounters))
	for cat, counter := range d.categoryCounters {
		totals[cat] = int(counter.Load())
	}
	return totals
}

// Run processes every pair with a bounded pool of workers goroutines
// (DefaultWorkers when workers <= 0); Config.Workers is not consulted here.
// Cancellation is cooperative: when ctx is cancelled, workers finish the
// file already in flight, then stop picking up new ones.
func (d *Driver) Run(ctx context.Context, pairs []FilePair, workers int) error {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, pair := range pairs {
		pair := pair
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			if d.limiter != nil {
				if err := d.limiter.Wait(ctx); err != nil {
					return nil
				}
			}
			d.processOne(pair)
			return nil
		})
	}

	return g.Wait()
}

func (d *Driver) processOne(pair FilePair) {
	raw, err := os.ReadFile(pair.InputPath)
	if err != nil {
		d.stats.FilesFailed.Add(1)
		d.logger.Error("read failed", "path", pair.InputPath, "error", err)
		return
	}

	result := d.pipeline.Run(raw)
	d.stats.FilesProcessed.Add(1)
	d.stats.TotalBytes.Add(int64(result.BytesRead))

	if result.Rejected {
		d.stats.FilesRejected.Add(1)
		if d.rejectedLog != nil {
			_ = d.rejectedLog.Write(report.RejectedRecord{
				Path:             pair.InputPath,
				Reason:           result.RejectReason,
				Lang:             result.Triage.DetectedLang,
				Confidence:       result.Triage.LangConfidence,
				AlphaRatio:       result.Triage.Metrics.AlphaRatio,
				ListPatternRatio: result.Triage.Metrics.ListPatternRatio,
			})
		}
		return
	}

	if d.triageLog != nil {
		_ = d.triageLog.Write(report.TriageRecord{
			Path:             pair.InputPath,
			Action:           string(result.Triage.Action),
			Problems:         result.Triage.Problems,
			AlphaRatio:       result.Triage.Metrics.AlphaRatio,
			LineLengthCV:     result.Triage.Metrics.LineLengthCV,
			FragmentRatio:    result.Triage.Metrics.FragmentRatio,
			ListPatternRatio: result.Triage.Metrics.ListPatternRatio,
			Lang:             result.Triage.DetectedLang,
		})
	}

	if len(result.BoilerplateRegions) > 0 {
		d.stats.BoilerplateFiles.Add(1)
		d.stats.BoilerplateChars.Add(int64(result.TotalCharsStripped))
		if d.boilerplateLog != nil {
			_ = d.boilerplateLog.Write(report.BoilerplateRecord{
				Path:    pair.InputPath,
				Regions: result.BoilerplateRegions,
			})
		}
	}

	d.stats.TotalSubstitutions.Add(int64(result.TotalSubstitutions))
	for cat, count := range result.SubstitutionsByCat {
		counter := d.categoryCounter(string(cat))
		counter.Add(int64(count))
	}

	if result.TotalSubstitutions > 0 || len(result.BoilerplateRegions) > 0 || result.UnwrapStats.LinesJoined > 0 {
		d.stats.FilesModified.Add(1)
	}

	if err := writeFileAtomic(pair.OutputPath, []byte(result.Text)); err != nil {
		d.stats.FilesFailed.Add(1)
		d.logger.Error("write failed", "path", pair.OutputPath, "error", err)
	}
}

// categoryCounter lazily creates the atomic counter for a category name.
// Categories are a small, fixed set known at compile time, but workers may
// observe them in any order, so map creation is guarded by a mutex; the
// counter itself is then updated lock-free via atomic.Int64.Add.
func (d *Driver) categoryCounter(cat string) *atomic.Int64 {
	d.categoryCountersMu.Lock()
	defer d.categoryCountersMu.Unlock()

	c, ok := d.categoryCounters[cat]
	if !ok {
		c = &atomic.Int64{}
		d.categoryCounters[cat] = c
	}
	return c
}

// writeFileAtomic ensures the target directory exists, writes to a
// temporary file in the same directory, then renames it into place so
// readers never observe a partially written output file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
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
