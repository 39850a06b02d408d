// Command tmscore compares protein structures with TMscore and, by default,
// compares them again with one of them reflected.
//
// Usage:
//
//	tmscore compare model.pdb native.pdb
//	tmscore encode coords.txt model.xyz
//	tmscore mirror model.xyz mirrored.xyz --axis 1
//	tmscore batch pairs.csv --out results.csv
//	tmscore rmsd model.pdb native.pdb
//
// Settings are read from $XDG_CONFIG_HOME/tmscore/config.yaml (see --config)
// and the environment variables TMSCORE_BIN, TMSCORE_LOG_LEVEL and
// TMSCORE_DB. Flags override both.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/BurntSushi/tmscore/cmd/util"
	"github.com/BurntSushi/tmscore/config"
)

var (
	verbose    bool
	configPath string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tmscore",
	Short: "Score the similarity of protein structures with TMscore",
	Long: `tmscore runs the TMscore program on two structures and reports the
TM-score, GDT-TS, GDT-HA, RMSD and MaxSub scores of their superposition.

By default TMscore is run a second time with '-mirror 1', which has it
reflect one of the structures, and the best of each score is reported.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
		level, err := cfg.Level()
		if err != nil {
			return err
		}

		zconf := zap.NewProductionConfig()
		zconf.Level = zap.NewAtomicLevelAt(level)
		if verbose {
			zconf.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		if logger, err = zconf.Build(); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		util.SetLogger(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "tmscore.yaml"
	}
	return filepath.Join(dir, "tmscore", "config.yaml")
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config",
		defaultConfigPath(), "Configuration file")

	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(mirrorCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(rmsdCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
