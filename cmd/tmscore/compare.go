package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BurntSushi/tmscore/apps/tmscore"
	"github.com/BurntSushi/tmscore/cmd/util"
	"github.com/BurntSushi/tmscore/resultdb"
)

// runFlags are the flags that change how TMscore is run. They are shared by
// compare and batch.
type runFlags struct {
	binary   string
	noMirror bool
	parallel bool
	args     string
	db       string
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.binary, "binary", "",
		"Path to the TMscore executable (default: next to this program)")
	cmd.Flags().BoolVar(&f.noMirror, "no-mirror", false,
		"Do not run TMscore a second time with '-mirror 1'")
	cmd.Flags().BoolVar(&f.parallel, "parallel", false,
		"Run the original and mirror comparisons at the same time")
	cmd.Flags().StringVar(&f.args, "args", "",
		"Extra arguments passed to TMscore, e.g. \"-seq\"")
	cmd.Flags().StringVar(&f.db, "db", "",
		"Store results in (and reuse results from) this database")
}

// config returns the library configuration, with flags that were given
// overriding the configuration file.
func (f *runFlags) config(cmd *cobra.Command) tmscore.Config {
	conf := cfg.Comparison(logger)
	if cmd.Flags().Changed("binary") {
		conf.Binary = f.binary
	}
	if f.noMirror {
		conf.CheckMirror = false
	}
	if f.parallel {
		conf.Parallel = true
	}
	if cmd.Flags().Changed("args") {
		conf.Args = strings.Fields(f.args)
	}
	return conf
}

// openDB opens the result store named by --db or the configuration. It
// returns nil if there is none.
func (f *runFlags) openDB(cmd *cobra.Command) *resultdb.DB {
	path := cfg.Database
	if cmd.Flags().Changed("db") {
		path = f.db
	}
	if len(path) == 0 {
		return nil
	}
	db, err := resultdb.Open(path, resultdb.Options{Logger: logger})
	util.Assert(err, "Could not open result database")
	return db
}

// resultKey identifies comparing x and y as conf would, down to the contents
// of both files and of the TMscore executable.
func resultKey(conf tmscore.Config, x, y string) (resultdb.Key, error) {
	bin, err := tmscore.LocateBinary(conf.Binary)
	if err != nil {
		return resultdb.Key{}, err
	}
	return resultdb.NewKey(x, y, bin, conf.CheckMirror, conf.Args)
}

var (
	compareFlags     runFlags
	compareRaw       bool
	compareTransform bool
)

var compareCmd = &cobra.Command{
	Use:   "compare X Y",
	Short: "Superimpose structure X onto structure Y and print the scores",
	Long: `compare runs TMscore on two structure files. PDB files are read as
is; files ending in .xyz or .spicker are passed with the matching input
format flags.`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	compareFlags.register(compareCmd)
	compareCmd.Flags().BoolVar(&compareRaw, "raw", false,
		"Print the raw TMscore output instead of the summary")
	compareCmd.Flags().BoolVar(&compareTransform, "transform", false,
		"Print the superposition of the best TM-score")
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	conf := compareFlags.config(cmd)
	if compareTransform {
		conf.ParseTransform = true
	}

	x, err := filepath.Abs(args[0])
	util.Assert(err, "Could not resolve '%s'", args[0])
	y, err := filepath.Abs(args[1])
	util.Assert(err, "Could not resolve '%s'", args[1])

	var key resultdb.Key
	db := compareFlags.openDB(cmd)
	if db != nil {
		defer db.Close()
		if key, err = resultKey(conf, x, y); err != nil {
			return err
		}
	}

	// The raw report isn't stored, so --raw always runs TMscore.
	if db != nil && !compareRaw {
		rec, ok, err := db.Lookup(ctx, key)
		util.Assert(err, "Could not look up stored result")
		if ok && (!compareTransform || rec.Transform != nil) {
			logger.Debug("using stored result", zap.String("run", rec.RunID))
			printResult(cmd, rec.Result)
			return nil
		}
	}

	c, err := conf.Compare(ctx, tmscore.File(x), tmscore.File(y))
	if err != nil {
		return err
	}
	if db != nil {
		util.Warning(db.Save(ctx, key, c.Result, c.RunID),
			"Could not store result")
	}
	if compareRaw {
		fmt.Fprintln(cmd.OutOrStdout(), c)
		return nil
	}
	printResult(cmd, c.Result)
	return nil
}

func printResult(cmd *cobra.Command, res tmscore.Result) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, res)
	if compareTransform && res.Transform != nil {
		fmt.Fprintln(out)
		fmt.Fprintln(out, tmscore.FormatTransform(*res.Transform))
	}
}
