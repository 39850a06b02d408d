package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BurntSushi/tmscore/cmd/util"
	"github.com/BurntSushi/tmscore/pdb"
	"github.com/BurntSushi/tmscore/rmsd"
)

var rmsdCmd = &cobra.Command{
	Use: "rmsd X Y | rmsd pdb-file chain-id start stop " +
		"pdb-file chain-id start stop",
	Short: "Compute the optimal RMSD between two sets of C-alpha atoms",
	Long: `rmsd superimposes X onto Y with the Kabsch algorithm and prints the
RMSD. Unlike TMscore, every atom of X is paired with the atom of Y at the
same position, so both must have the same number of atoms.

With eight arguments, each set of atoms is given by a PDB file, a chain
identifier and an inclusive range of residue numbers:

	tmscore rmsd 1crn.pdb A 1 10 1crn.pdb A 11 20`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 2 && len(args) != 8 {
			return fmt.Errorf("accepts 2 or 8 args, received %d", len(args))
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			rms float64
			err error
		)
		if len(args) == 2 {
			rms, err = rmsd.RMSD(readCoords(args[0]), readCoords(args[1]))
		} else {
			rms, err = rangeRMSD(args)
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), formatFloat(rms))
		return nil
	},
}

func rangeRMSD(args []string) (float64, error) {
	entry1, err := pdb.New(args[0])
	util.Assert(err, "Could not read PDB file '%s'", args[0])
	entry2, err := pdb.New(args[4])
	util.Assert(err, "Could not read PDB file '%s'", args[4])
	if len(args[1]) != 1 || len(args[5]) != 1 {
		return 0, fmt.Errorf("chain identifiers must be a single character")
	}
	return rmsd.PDB(
		entry1, args[1][0], util.ParseInt(args[2]), util.ParseInt(args[3]),
		entry2, args[5][0], util.ParseInt(args[6]), util.ParseInt(args[7]))
}
