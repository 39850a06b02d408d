package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BurntSushi/tmscore/cmd/util"
	"github.com/BurntSushi/tmscore/xyz"
)

var (
	encodeOffset int
	encodeChain  string
	encodeEcho   bool
)

var encodeCmd = &cobra.Command{
	Use:   "encode IN OUT",
	Short: "Write coordinates in the fixed width format TMscore reads",
	Long: `encode converts IN to the xyz format read by TMscore with
'-infmt 2'. IN is either a PDB file (.pdb, .ent, optionally gzipped), whose
C-alpha atoms are used, or whitespace separated numbers read three at a
time as x, y and z. Lines starting with '#' are ignored. Use "-" for stdin
or stdout.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(encodeChain) > 1 {
			return fmt.Errorf("--chain must be a single character, got %q",
				encodeChain)
		}
		coords := readCoords(args[0])
		return writeCoords(cmd, args[1], coords, encodeOffset, encodeEcho)
	},
}

var (
	mirrorAxis int
	mirrorEcho bool
)

var mirrorCmd = &cobra.Command{
	Use:   "mirror IN OUT",
	Short: "Reflect an xyz structure across one axis",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		mirrored, err := xyz.Mirror(readCoords(args[0]), mirrorAxis)
		if err != nil {
			return err
		}
		return writeCoords(cmd, args[1], mirrored, 0, mirrorEcho)
	},
}

func init() {
	encodeCmd.Flags().IntVar(&encodeOffset, "offset", 0,
		"Leave at least this many leading blanks in every field")
	encodeCmd.Flags().StringVar(&encodeChain, "chain", "",
		"The PDB chain to read (default: the first)")
	encodeCmd.Flags().BoolVar(&encodeEcho, "echo", false,
		"Also print the encoded structure to stdout")

	mirrorCmd.Flags().IntVar(&mirrorAxis, "axis", 0,
		"The axis to negate: 0 (x), 1 (y) or 2 (z)")
	mirrorCmd.Flags().BoolVar(&mirrorEcho, "echo", false,
		"Also print the mirrored structure to stdout")
}

// readCoords reads a PDB file, an xyz file or plain numbers.
func readCoords(path string) []xyz.Coords {
	switch {
	case util.IsPDB(path):
		var chain byte
		if len(encodeChain) == 1 {
			chain = encodeChain[0]
		}
		return util.PDBReadCA(path, chain)
	case isXYZ(path):
		coords, err := xyz.ReadFile(path)
		util.Assert(err, "Could not read '%s'", path)
		return coords
	}
	return util.CoordsRead(path)
}

func isXYZ(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xyz")
}

func writeCoords(
	cmd *cobra.Command,
	path string,
	coords []xyz.Coords,
	offset int,
	echo bool,
) error {
	if path == "-" {
		if err := xyz.Write(cmd.OutOrStdout(), coords, offset); err != nil {
			return err
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout())
		return err
	}
	if echo {
		return xyz.WriteFile(path, coords, offset, cmd.OutOrStdout())
	}
	return xyz.WriteFile(path, coords, offset, nil)
}
