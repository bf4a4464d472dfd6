// Package collate drives the full pipeline from a set of directories to
// a written database: discover files, parse each one, organize the
// fragments by image identity, merge them, and project the survivors
// into rows.
package collate

import (
	"runtime"
	"sync"

	"github.com/charmbracelet/log"

	"breakdb/internal/database"
	"breakdb/internal/discover"
	"breakdb/internal/merge"
	"breakdb/internal/parse"
)

// Options configures a collation run.
type Options struct {
	// Extensions admits candidate files by suffix; empty means the
	// default DICOM extensions.
	Extensions []string
	// RelativePaths keeps file paths relative to the searched
	// directories in the resulting database.
	RelativePaths bool
	// Pattern narrows discovery to paths matching a glob, relative to
	// each searched directory.
	Pattern string
	// SkipBroken tolerates unparsable files and unmergeable fragments
	// instead of aborting the run.
	SkipBroken bool
	// IgnoreDuplicates tolerates conflicting pixel payloads within one
	// image, keeping the first payload discovered.
	IgnoreDuplicates bool
	// Workers bounds pipeline parallelism; zero auto-detects from the
	// CPU count.
	Workers int

	Logger *log.Logger
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}

func (o Options) workers(tasks int) int {
	n := o.Workers
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if n > tasks {
		n = tasks
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Collate walks the given directories and builds the database table.
func Collate(dirs []string, opts Options) (*database.Table, error) {
	logger := opts.logger()

	files, err := discover.Files(dirs, discover.Options{
		Extensions: opts.Extensions,
		Relative:   opts.RelativePaths,
		Pattern:    opts.Pattern,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("discovered DICOM files", "count", len(files))

	records, err := parseAll(files, opts)
	if err != nil {
		return nil, err
	}

	return mergeAll(records, opts)
}

// parseAll reads every discovered file on a bounded worker pool,
// returning records in discovery order.
func parseAll(files []string, opts Options) ([]parse.Record, error) {
	if len(files) == 0 {
		return nil, nil
	}
	logger := opts.logger()

	type task struct {
		index int
		path  string
	}
	type result struct {
		index  int
		record parse.Record
		err    error
	}

	taskChan := make(chan task, len(files))
	resultChan := make(chan result, len(files))

	var wg sync.WaitGroup
	for w := 0; w < opts.workers(len(files)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range taskChan {
				rec, err := parse.ParseFile(t.path, opts.SkipBroken, logger)
				resultChan <- result{index: t.index, record: rec, err: err}
			}
		}()
	}

	for i, path := range files {
		taskChan <- task{index: i, path: path}
	}
	close(taskChan)

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	records := make([]parse.Record, len(files))
	var firstErr error
	for r := range resultChan {
		if r.err != nil && firstErr == nil {
			firstErr = r.err
		}
		records[r.index] = r.record
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return records, nil
}

// mergeAll folds parsed records into database rows, one per image
// identity, preserving discovery order across identities.
func mergeAll(records []parse.Record, opts Options) (*database.Table, error) {
	logger := opts.logger()
	groups, order := merge.Organize(records)

	mergeOpts := merge.Options{
		SkipBroken:       opts.SkipBroken,
		IgnoreDuplicates: opts.IgnoreDuplicates,
		Logger:           logger,
	}

	table := &database.Table{}
	failures := 0
	for _, id := range order {
		merged, err := merge.Records(groups[id], mergeOpts)
		if err != nil {
			return nil, err
		}
		entry, err := merge.MakeDatabaseEntry(merged)
		if err != nil {
			if opts.SkipBroken {
				logger.Warn("could not create database entry",
					"instance", id.Instance, "err", err)
				failures++
				continue
			}
			return nil, &merge.MergingError{Instance: id.Instance, Err: err}
		}
		table.Append(entry)
	}

	logger.Info("collated database", "rows", table.Len(), "failures", failures)
	return table, nil
}

// Create runs a full collation and writes the result to the output
// path, the format chosen by extension.
func Create(dirs []string, output string, opts Options) error {
	table, err := Collate(dirs, opts)
	if err != nil {
		return err
	}
	return database.Write(table, output)
}
