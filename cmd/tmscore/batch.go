package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BurntSushi/tmscore/apps/tmscore"
	"github.com/BurntSushi/tmscore/cmd/util"
	"github.com/BurntSushi/tmscore/resultdb"
)

var (
	batchFlags   runFlags
	batchOut     string
	batchWorkers int
)

var batchCmd = &cobra.Command{
	Use:   "batch PAIRS.csv",
	Short: "Compare many pairs of structures",
	Long: `batch reads pairs of structure files, one pair per CSV row, and
compares each pair. A CSV table of scores is written with one row per pair
in input order. Pairs that fail have their error in the last column.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

var batchHeader = []string{
	"x", "y", "tm_score", "gdt_ts", "gdt_ha", "rmsd", "maxsub", "best",
	"error",
}

func init() {
	batchFlags.register(batchCmd)
	batchCmd.Flags().StringVarP(&batchOut, "out", "o", "-",
		"Where to write the result table")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0,
		"The number of comparisons to run at once (default: GOMAXPROCS)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	conf := batchFlags.config(cmd)
	if cmd.Flags().Changed("workers") {
		conf.Workers = batchWorkers
	}

	in := util.OpenFile(args[0])
	pairs, names, err := readPairs(in)
	in.Close()
	if err != nil {
		return fmt.Errorf("could not read pairs from '%s': %w", args[0], err)
	}
	logger.Info("comparing pairs", zap.Int("pairs", len(pairs)),
		zap.Int("workers", conf.Workers))

	// Keys are computed up front, so that a file edited while TMscore runs
	// is not stored under its new contents.
	var keys []*resultdb.Key
	db := batchFlags.openDB(cmd)
	if db != nil {
		defer db.Close()
		keys = make([]*resultdb.Key, len(pairs))
		for i, name := range names {
			key, err := resultKey(conf, name[0], name[1])
			if err != nil {
				util.Warning(err, "Results for %s -> %s will not be stored",
					name[0], name[1])
				continue
			}
			keys[i] = &key
		}
	}

	comparisons, errs := conf.RunAll(ctx, pairs)
	for i, c := range comparisons {
		if c == nil || keys == nil || keys[i] == nil {
			continue
		}
		util.Warning(db.Save(ctx, *keys[i], c.Result, c.RunID),
			"Could not store result for %s", keys[i])
	}

	out := util.CreateFile(batchOut)
	defer out.Close()
	failed, err := writeResults(out, names, comparisons, errs)
	if err != nil {
		return err
	}
	if failed > 0 {
		logger.Warn("some comparisons failed", zap.Int("failed", failed))
	}
	return nil
}

// readPairs reads two file names per CSV record. Relative names are made
// absolute.
func readPairs(r io.Reader) ([]tmscore.Pair, [][2]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	pairs := make([]tmscore.Pair, len(records))
	names := make([][2]string, len(records))
	for i, rec := range records {
		for j := range names[i] {
			if names[i][j], err = filepath.Abs(rec[j]); err != nil {
				return nil, nil, err
			}
		}
		pairs[i] = tmscore.Pair{
			X: tmscore.File(names[i][0]),
			Y: tmscore.File(names[i][1]),
		}
	}
	return pairs, names, nil
}

// writeResults writes a row for every pair and returns how many failed.
func writeResults(
	w io.Writer,
	names [][2]string,
	comparisons []*tmscore.Comparison,
	errs []error,
) (int, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(batchHeader); err != nil {
		return 0, err
	}

	failed := 0
	for i, c := range comparisons {
		row := []string{names[i][0], names[i][1]}
		if errs[i] != nil {
			failed++
			row = append(row, "", "", "", "", "", "", errs[i].Error())
		} else {
			res := c.Result
			row = append(row,
				formatFloat(res.TMScore), formatFloat(res.GDTTS),
				formatFloat(res.GDTHA), formatFloat(res.RMSD),
				formatFloat(res.MaxSub), string(res.Best), "")
		}
		if err := cw.Write(row); err != nil {
			return failed, err
		}
	}
	cw.Flush()
	return failed, cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
