package tmscore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/BurntSushi/tmscore/tmout"
	"github.com/BurntSushi/tmscore/xyz"
)

// Orientation names one TMscore run of a comparison.
type Orientation string

const (
	// Original is the run with both structures as given.
	Original Orientation = "original"

	// Mirror is the run with '-mirror 1'.
	Mirror Orientation = "mirror"
)

// orientations is the order runs are made, reported and reconciled in.
var orientations = []Orientation{Original, Mirror}

// Comparison holds everything known about one comparison of two structures.
type Comparison struct {
	// RunID identifies the comparison in logs and stored results.
	RunID string

	// Reports is the raw output of each TMscore run.
	Reports map[Orientation]string

	// Records is the scores parsed from each report.
	Records map[Orientation]tmout.ScoreRecord

	// Result is the best of each score across Records.
	Result Result
}

// Compare runs TMscore to superimpose x onto y and returns the scores of
// the comparison. TMscore is run once, or twice if conf.CheckMirror is set.
//
// In-memory structures are written to a temporary directory that is removed
// before Compare returns. A comparison either succeeds completely or returns
// an error: a failed TMscore run, a missing score or (with
// conf.ParseTransform) a missing rotation matrix fails the whole comparison.
func (conf Config) Compare(ctx context.Context, x, y Structure) (*Comparison, error) {
	aligner, err := conf.aligner()
	if err != nil {
		return nil, err
	}
	runID := uuid.NewString()
	log := conf.logger().With(zap.String("run", runID))

	reports, err := conf.align(ctx, aligner, log, x, y)
	if err != nil {
		return nil, err
	}
	cmp, err := newComparison(runID, reports)
	if err != nil {
		return nil, err
	}
	if conf.ParseTransform {
		tr, err := cmp.Transform()
		if err != nil {
			return nil, err
		}
		cmp.Result.Transform = &tr
	}
	log.Debug("comparison finished",
		zap.Float64("tm_score", cmp.Result.TMScore),
		zap.Float64("rmsd", cmp.Result.RMSD),
		zap.String("best", string(cmp.Result.Best)))

	if conf.Verbose {
		out := conf.output()
		fmt.Fprintln(out, cmp.Result)
		if cmp.Result.Transform != nil {
			fmt.Fprint(out, "\n\n")
			fmt.Fprintln(out, FormatTransform(*cmp.Result.Transform))
		}
	}
	return cmp, nil
}

// align resolves both structures to files and runs TMscore on them, once
// per orientation. The temporary directory for in-memory structures lives
// until every run has finished.
func (conf Config) align(
	ctx context.Context,
	aligner Aligner,
	log *zap.Logger,
	x, y Structure,
) (map[Orientation]string, error) {
	var dir string
	defer func() {
		if len(dir) > 0 {
			if err := os.RemoveAll(dir); err != nil {
				log.Warn("could not remove temporary directory",
					zap.String("dir", dir), zap.Error(err))
			}
		}
	}()

	var paths [2]string
	for i, s := range [2]Structure{x, y} {
		switch s := s.(type) {
		case File:
			path, err := resolvePath(string(s))
			if err != nil {
				return nil, err
			}
			paths[i] = path
		case Coords:
			if len(dir) == 0 {
				var err error
				if dir, err = os.MkdirTemp("", "tmscore"); err != nil {
					return nil, err
				}
			}
			paths[i] = filepath.Join(dir, fmt.Sprintf("struct%d.xyz", i+1))
			if err := xyz.WriteFile(paths[i], s, 0, nil); err != nil {
				return nil, fmt.Errorf("struct%d: %w", i+1, err)
			}
		default:
			return nil, fmt.Errorf("%w: struct%d has type %T",
				ErrUnsupportedInput, i+1, s)
		}
	}

	args := []string{paths[0], paths[1]}
	args = append(args, formatFlags(paths)...)
	args = append(args, conf.Args...)

	runs := orientations[:1]
	if conf.CheckMirror {
		runs = orientations
	}
	outputs := make([]string, len(runs))
	run := func(ctx context.Context, i int) error {
		runArgs := args
		if runs[i] == Mirror {
			runArgs = append(args[:len(args):len(args)], "-mirror", "1")
		}
		log.Debug("aligning", zap.String("orientation", string(runs[i])),
			zap.Strings("args", runArgs))
		out, err := aligner.Align(ctx, runArgs)
		if err != nil {
			return fmt.Errorf("%s run: %w", runs[i], err)
		}
		outputs[i] = out
		return nil
	}

	if conf.Parallel {
		g, gctx := errgroup.WithContext(ctx)
		for i := range runs {
			i := i
			g.Go(func() error { return run(gctx, i) })
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := range runs {
			if err := run(ctx, i); err != nil {
				return nil, err
			}
		}
	}

	reports := make(map[Orientation]string, len(runs))
	for i, o := range runs {
		reports[o] = outputs[i]
	}
	return reports, nil
}

// newComparison parses every report and reconciles the scores.
func newComparison(runID string, reports map[Orientation]string) (*Comparison, error) {
	records := make(map[Orientation]tmout.ScoreRecord, len(reports))
	for o, report := range reports {
		rec, err := tmout.ParseScores(report)
		if err != nil {
			return nil, fmt.Errorf("%s run: %w", o, err)
		}
		records[o] = rec
	}
	result, err := Reconcile(records)
	if err != nil {
		return nil, err
	}
	return &Comparison{
		RunID:   runID,
		Reports: reports,
		Records: records,
		Result:  result,
	}, nil
}

// Transforms parses the superposition from every report.
func (c *Comparison) Transforms() (map[Orientation]tmout.Transform, error) {
	transforms := make(map[Orientation]tmout.Transform, len(c.Reports))
	for o, report := range c.Reports {
		tr, err := tmout.ParseTransform(report)
		if err != nil {
			return nil, fmt.Errorf("%s run: %w", o, err)
		}
		transforms[o] = tr
	}
	return transforms, nil
}

// Transform returns the superposition from the run with the best TM-score.
// Every report is parsed, so a malformed report from either run is an error.
func (c *Comparison) Transform() (tmout.Transform, error) {
	transforms, err := c.Transforms()
	if err != nil {
		return tmout.Transform{}, err
	}
	return transforms[c.Result.Best], nil
}
