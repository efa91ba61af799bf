// Command ocrclean runs the OCR text-cleanup and triage engine over a
// directory of ".txt" files: normalize -> detect language -> triage ->
// strip boilerplate -> unwrap lines -> apply OCR correction patterns ->
// [optionally strip noise words] -> write, with an audit trail and an
// aggregate JSON report. With -extract-vocab, it also runs a second pass
// over the cleaned output and writes a vocabulary-candidates file that a
// later run's -strip-noise can consume.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/term"

	"github.com/ocrclean/ocrclean/internal/config"
	"github.com/ocrclean/ocrclean/internal/dictionaryinit"
	"github.com/ocrclean/ocrclean/internal/driver"
	"github.com/ocrclean/ocrclean/internal/report"
	"github.com/ocrclean/ocrclean/internal/textclean/dictionary"
	"github.com/ocrclean/ocrclean/internal/textclean/noise"
	"github.com/ocrclean/ocrclean/internal/textclean/patterns"
	"github.com/ocrclean/ocrclean/internal/textclean/pipeline"
	"github.com/ocrclean/ocrclean/internal/textclean/triage"
	"github.com/ocrclean/ocrclean/internal/textclean/vocab"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "ocrclean:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("ocrclean", flag.ContinueOnError)
	inputDir := fs.String("input", "", "directory of .txt files to clean (required)")
	outputDir := fs.String("output", "", "directory to mirror cleaned output into (required)")
	configPath := fs.String("config", ".ocrclean.yaml", "path to an optional YAML config file")
	workers := fs.Int("workers", 0, "worker pool size (0 uses the config/default value)")
	stripNoise := fs.Bool("strip-noise", false, "strip known noise tokens from a vocabulary candidates file")
	noiseFile := fs.String("noise-file", "", "vocabulary-candidates file for -strip-noise")
	jsonLogs := fs.Bool("json-logs", false, "force JSON log lines even on a TTY")
	extractVocab := fs.String("extract-vocab", "", "after cleanup, scan the output directory and write a vocabulary-candidates file here")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *inputDir == "" || *outputDir == "" {
		return fmt.Errorf("-input and -output are both required")
	}

	logger := newLogger(*jsonLogs)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	table, err := patterns.Load()
	if err != nil {
		return fmt.Errorf("compiling OCR pattern table: %w", err)
	}
	logger.Info("pattern table compiled", "patterns", len(table.Ordered()), "contexts", len(table.Contexts()))

	var opts []pipeline.Option
	opts = append(opts, pipeline.WithTriageThresholds(toTriageThresholds(cfg)))

	var dict *dictionary.Service
	if cfg.DictionaryDir != "" {
		loaded, loadedLangs, derr := dictionaryinit.Load(cfg.DictionaryDir, cfg.WhitelistPath)
		if derr != nil {
			return fmt.Errorf("loading dictionaries: %w", derr)
		}
		logger.Info("dictionaries loaded", "languages", loadedLangs)
		dict = loaded
		opts = append(opts, pipeline.WithDictionaryUnwrap(dict.IsKnownWord))
	}

	if *stripNoise {
		if *noiseFile == "" {
			return fmt.Errorf("-strip-noise requires -noise-file")
		}
		set, nerr := noise.Load(*noiseFile, cfg.Noise.Categories)
		if nerr != nil {
			return fmt.Errorf("loading noise set: %w", nerr)
		}
		logger.Info("noise set loaded", "words", set.Len())
		opts = append(opts, pipeline.WithNoiseSet(set))
	}

	pipe := pipeline.New(table, opts...)

	pairs, err := driver.Discover(*inputDir, *outputDir)
	if err != nil {
		return fmt.Errorf("discovering input files: %w", err)
	}
	logger.Info("discovered input files", "count", len(pairs))

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	rejectedLog, err := report.NewJSONLWriter(filepath.Join(*outputDir, "rejected_files.jsonl"))
	if err != nil {
		return fmt.Errorf("opening rejected_files.jsonl: %w", err)
	}
	defer rejectedLog.Close()

	boilerplateLog, err := report.NewJSONLWriter(filepath.Join(*outputDir, "_boilerplate_stripped.jsonl"))
	if err != nil {
		return fmt.Errorf("opening _boilerplate_stripped.jsonl: %w", err)
	}
	defer boilerplateLog.Close()

	triageLog, err := report.NewJSONLWriter(filepath.Join(*outputDir, "_triage_results.jsonl"))
	if err != nil {
		return fmt.Errorf("opening _triage_results.jsonl: %w", err)
	}
	defer triageLog.Close()

	workerCount := cfg.Workers
	if *workers > 0 {
		workerCount = *workers
	}

	drv := driver.New(pipe, logger, rejectedLog, boilerplateLog, triageLog, driver.Config{
		Workers:       workerCount,
		RateLimitPerS: cfg.RateLimitFilesPerSec,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := drv.Run(ctx, pairs, workerCount); err != nil {
		return fmt.Errorf("running batch: %w", err)
	}

	stats := drv.Stats()
	agg := report.Aggregate{
		RunID:              report.NewRunID(),
		GeneratedAt:        report.Stamp(),
		FilesProcessed:     int(stats.FilesProcessed.Load()),
		FilesModified:      int(stats.FilesModified.Load()),
		FilesFailed:        int(stats.FilesFailed.Load()),
		FilesRejected:      int(stats.FilesRejected.Load()),
		TotalSubstitutions: stats.TotalSubstitutions.Load(),
		TotalBytes:         stats.TotalBytes.Load(),
		BoilerplateFiles:   int(stats.BoilerplateFiles.Load()),
		BoilerplateChars:   stats.BoilerplateChars.Load(),
		PerCategoryTotals:  drv.CategoryTotals(),
	}

	if err := report.WriteAggregate(filepath.Join(*outputDir, "_cleanup_report.json"), agg); err != nil {
		return fmt.Errorf("writing _cleanup_report.json: %w", err)
	}

	if *extractVocab != "" {
		candidateCount, verr := extractVocabulary(*outputDir, *extractVocab, dict)
		if verr != nil {
			return fmt.Errorf("extracting vocabulary: %w", verr)
		}
		logger.Info("vocabulary candidates written", "path", *extractVocab, "candidates", candidateCount)
	}

	logger.Info("batch complete",
		"files_processed", agg.FilesProcessed,
		"files_modified", agg.FilesModified,
		"files_rejected", agg.FilesRejected,
		"files_failed", agg.FilesFailed,
		"total_substitutions", agg.TotalSubstitutions,
	)
	return nil
}

// extractVocabulary walks every ".txt" file already written into outputDir
// (i.e. the cleaned, post-pipeline text) through the vocabulary extractor
// and writes the resulting candidates to candidatesPath, the same file
// format -strip-noise consumes on a later run. dict, if non-nil, clears
// candidates recognized by any loaded dictionary and suppresses tokens in
// its whitelist.
func extractVocabulary(outputDir, candidatesPath string, dict *dictionary.Service) (int, error) {
	extractor := vocab.New()
	if dict != nil {
		extractor = extractor.WithDictionaryClear(dict.IsKnownWord).WithWhitelist(dict.IsWhitelisted)
	}

	err := filepath.Walk(outputDir, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if info.IsDir() || filepath.Ext(path) != ".txt" {
			return nil
		}
		data, rerr := os.ReadFile(path)
		if rerr != nil {
			return rerr
		}
		extractor.Extract(string(data))
		return nil
	})
	if err != nil {
		return 0, err
	}

	candidates := extractor.Candidates()
	if err := vocab.WriteCandidates(candidatesPath, candidates); err != nil {
		return 0, err
	}
	return len(candidates), nil
}

func toTriageThresholds(cfg config.Config) triage.Thresholds {
	return triage.Thresholds{
		MinAlphaRatio:       cfg.Triage.MinAlphaRatio,
		MinCharCount:        cfg.Triage.MinCharCount,
		MaxListPatternRatio: cfg.Triage.MaxListPatternRatio,
		MaxLineLengthCV:     cfg.Triage.MaxLineLengthCV,
		MaxFragmentRatio:    cfg.Triage.MaxFragmentRatio,
	}
}

// newLogger picks a human-readable handler on an interactive TTY and a
// JSON handler otherwise (piped output, CI, or -json-logs).
func newLogger(forceJSON bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if !forceJSON && term.IsTerminal(int(os.Stderr.Fd())) {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}
