// Package pipeline converts directories of source documents to Linked Art.
//
// Each document is read, extracted, mapped and written independently of the
// others; a failing document is recorded in the Report and never stops the
// batch.
package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"

	"github.com/lehigh-university-libraries/museumwalk/hub"
	"github.com/lehigh-university-libraries/museumwalk/linkedart"
	"github.com/lehigh-university-libraries/museumwalk/metrics"
	"github.com/lehigh-university-libraries/museumwalk/source"
)

// DefaultWorkers is the worker count used when Runner.Workers is unset.
const DefaultWorkers = 8

// Document statuses recorded in metrics.
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Runner converts every matching document of a directory.
type Runner struct {
	Extractor source.Extractor
	Mapper    *linkedart.Mapper

	// Workers bounds the number of documents processed at once
	Workers int

	// Pattern is a doublestar pattern matched against file names. Empty
	// selects the extractor's extensions.
	Pattern string

	// EmitIntermediate also writes the intermediate record of each document
	EmitIntermediate bool
}

// Failure is one document that could not be converted.
type Failure struct {
	File string
	Err  error
}

// Report summarises a batch run.
type Report struct {
	RunID     string
	Source    hub.SourceID
	Total     int
	Succeeded int
	Failures  []Failure
	Duration  time.Duration
}

// Failed returns the number of failed documents.
func (r *Report) Failed() int {
	return len(r.Failures)
}

// OutputName returns the Linked Art file name for an input file.
func OutputName(inputName string, src hub.SourceID) string {
	return stem(inputName) + "_" + string(src) + "_linkedart.jsonld"
}

// IntermediateName returns the intermediate record file name for an input file.
func IntermediateName(inputName string, src hub.SourceID) string {
	return stem(inputName) + "_" + string(src) + "_intermediate.json"
}

func stem(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// DefaultPattern builds a file-name pattern from extensions, e.g.
// "*.{json,jsonld}".
func DefaultPattern(extensions []string) string {
	switch len(extensions) {
	case 0:
		return "*"
	case 1:
		return "*." + extensions[0]
	}
	return "*.{" + strings.Join(extensions, ",") + "}"
}

func (r *Runner) pattern() string {
	if r.Pattern != "" {
		return r.Pattern
	}
	return DefaultPattern(r.Extractor.Extensions())
}

// Discover lists the regular files of inputDir whose names match the
// runner's pattern, sorted by name. Subdirectories are not searched.
func (r *Runner) Discover(inputDir string) ([]string, error) {
	pattern := r.pattern()
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid file pattern %q", pattern)
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		ok, err := doublestar.Match(pattern, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("matching %s: %w", entry.Name(), err)
		}
		if ok {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// Convert extracts and maps one document.
func (r *Runner) Convert(ctx context.Context, data []byte) (*hub.Record, *linkedart.Object, error) {
	rec, err := r.Extractor.Extract(data)
	if err != nil {
		return nil, nil, err
	}
	return rec, r.Mapper.Map(ctx, rec), nil
}

// Run converts every matching document of inputDir into outputDir. It only
// fails when the batch cannot start; per-document failures are reported.
func (r *Runner) Run(ctx context.Context, inputDir, outputDir string) (*Report, error) {
	if r.Extractor == nil {
		return nil, errors.New("no extractor configured")
	}
	if r.Mapper == nil {
		return nil, errors.New("no mapper configured")
	}

	files, err := r.Discover(inputDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	report := &Report{
		RunID:  uuid.NewString(),
		Source: r.Extractor.Name(),
		Total:  len(files),
	}
	start := time.Now()

	workers := r.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if workers > len(files) {
		workers = len(files)
	}

	slog.Info("batch started",
		"run_id", report.RunID,
		"source", report.Source,
		"input", inputDir,
		"output", outputDir,
		"files", len(files),
		"workers", workers)

	jobs := make(chan string)
	results := make(chan Failure, len(files))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range jobs {
				results <- Failure{File: name, Err: r.process(ctx, inputDir, outputDir, name)}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, name := range files {
			select {
			case <-ctx.Done():
				return
			case jobs <- name:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	processed := 0
	for res := range results {
		processed++
		if res.Err == nil {
			report.Succeeded++
			continue
		}
		slog.Error("document failed", "run_id", report.RunID, "file", res.File, "error", res.Err)
		report.Failures = append(report.Failures, res)
	}

	if processed < len(files) {
		slog.Warn("batch cancelled", "run_id", report.RunID, "skipped", len(files)-processed)
	}

	sort.Slice(report.Failures, func(i, j int) bool {
		return report.Failures[i].File < report.Failures[j].File
	})
	report.Duration = time.Since(start)

	slog.Info("batch complete",
		"run_id", report.RunID,
		"source", report.Source,
		"files", report.Total,
		"succeeded", report.Succeeded,
		"failed", report.Failed(),
		"duration", report.Duration)

	return report, nil
}

func (r *Runner) process(ctx context.Context, inputDir, outputDir, name string) error {
	start := time.Now()
	src := string(r.Extractor.Name())

	err := r.convertFile(ctx, inputDir, outputDir, name)

	status := StatusSucceeded
	if err != nil {
		status = StatusFailed
	}
	metrics.RecordDocument(src, status, time.Since(start).Seconds())
	return err
}

func (r *Runner) convertFile(ctx context.Context, inputDir, outputDir, name string) error {
	data, err := os.ReadFile(filepath.Join(inputDir, name))
	if err != nil {
		return fmt.Errorf("reading document: %w", err)
	}

	rec, obj, err := r.Convert(ctx, data)
	if err != nil {
		return err
	}

	if r.EmitIntermediate {
		out, err := EncodeIntermediate(rec)
		if err != nil {
			return err
		}
		if err := writeFile(filepath.Join(outputDir, IntermediateName(name, rec.Source)), out); err != nil {
			return err
		}
	}

	out, err := linkedart.Marshal(obj)
	if err != nil {
		return err
	}
	path := filepath.Join(outputDir, OutputName(name, rec.Source))
	if err := writeFile(path, out); err != nil {
		return err
	}

	slog.Debug("document written", "file", name, "output", path)
	return nil
}

// EncodeIntermediate renders an intermediate record as indented JSON with a
// trailing newline.
func EncodeIntermediate(rec *hub.Record) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(rec); err != nil {
		return nil, fmt.Errorf("encoding intermediate record: %w", err)
	}
	return buf.Bytes(), nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}
