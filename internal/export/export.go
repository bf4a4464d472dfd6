// Package export renders collated database rows as annotated image
// datasets. Each format lives in its own subpackage and plugs in
// through the Exporter interface; this package drives the per-row
// pipeline of loading, transforming and handing off images.
package export

import (
	"context"
	"fmt"
	"image"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"breakdb/internal/database"
)

// Item is one row of the database prepared for an exporter: the image
// already loaded and fitted, the annotations carried into the exported
// image's coordinate space, and a zero-padded base name unique within
// the run.
type Item struct {
	Index    int
	BaseName string
	Row      database.Entry
	Image    image.Image
	// Width and Height are the final dimensions of Image.
	Width  int
	Height int
	// Annotations are the row's annotations in exported coordinates.
	Annotations []Annotation
}

// Annotation aliases the database's coordinate sequence type for
// exporter subpackages.
type Annotation = []float64

// Exporter writes dataset entries in one annotated-image format.
type Exporter interface {
	// Name identifies the format in logs and errors.
	Name() string
	// Prepare creates the format's directory structure under baseDir.
	Prepare(baseDir string) error
	// ExportItem writes one prepared row under baseDir.
	ExportItem(item Item, baseDir string) error
	// Finish writes any auxiliary files once every row is exported.
	Finish(baseDir string, table *database.Table) error
}

// Options configures an export run.
type Options struct {
	TargetWidth     int
	TargetHeight    int
	KeepAspectRatio bool
	NoUpscale       bool
	IgnoreScaling   bool
	IgnoreWindowing bool
	// SkipBroken tolerates rows that fail to format instead of
	// aborting the run.
	SkipBroken bool
	// Workers bounds export parallelism; zero auto-detects.
	Workers int

	Logger *log.Logger
}

// Database exports every row of a table under baseDir using the given
// exporter. Rows are processed on a bounded pool; the first
// intolerable failure cancels the rest of the run.
func Database(ctx context.Context, table *database.Table, exp Exporter, baseDir string, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	if err := exp.Prepare(baseDir); err != nil {
		return err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	pad := len(fmt.Sprint(table.Len()))
	for i, row := range table.Entries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			item, err := prepareItem(i, pad, row, opts)
			if err == nil {
				err = exp.ExportItem(item, baseDir)
			}
			if err != nil {
				ferr := &EntryFormatError{
					Index: i, Path: row.FilePath, Format: exp.Name(), Err: err,
				}
				if opts.SkipBroken {
					logger.Warn("could not export database entry",
						"index", i, "err", ferr)
					return nil
				}
				return ferr
			}
			logger.Info("exported database entry", "index", i, "format", exp.Name())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return exp.Finish(baseDir, table)
}

// prepareItem loads, fits and re-annotates one row.
func prepareItem(index, pad int, row database.Entry, opts Options) (Item, error) {
	img, err := LoadImage(row, LoadOptions{
		IgnoreScaling:   opts.IgnoreScaling,
		IgnoreWindowing: opts.IgnoreWindowing,
	})
	if err != nil {
		return Item{}, err
	}

	fitted, transform := FormatImage(img, row.Width, row.Height, FormatOptions{
		TargetWidth:     opts.TargetWidth,
		TargetHeight:    opts.TargetHeight,
		KeepAspectRatio: opts.KeepAspectRatio,
		NoUpscale:       opts.NoUpscale,
	})

	annots := make([]Annotation, 0, len(row.Annotations))
	for _, a := range transform.Annotations(row.Annotations) {
		annots = append(annots, Annotation(a))
	}

	bounds := fitted.Bounds()
	return Item{
		Index:       index,
		BaseName:    fmt.Sprintf("%0*d", pad, index),
		Row:         row,
		Image:       fitted,
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		Annotations: annots,
	}, nil
}
