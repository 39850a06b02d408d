package rmsd

import (
	"fmt"

	"github.com/BurntSushi/tmscore/pdb"
	"github.com/BurntSushi/tmscore/xyz"
)

// PDB is a convenience function for computing the RMSD between two sets of
// residues, where each set is taken from a chain of a PDB entry. Note that
// RMSD is only computed using carbon-alpha atoms.
//
// Each set of atoms to be used is specified by a four-tuple: a PDB entry, a
// chain identifier, and the start and end residue numbers to use as a range.
// (Where the range is inclusive.)
//
// An error will be returned if: chainId{1,2} does not correspond to a chain
// in entry{1,2}. The ranges specified by start{1,2}-end{1,2} do not contain
// any carbon-alpha atoms. The ranges do not correspond to precisely the same
// number of carbon-alpha atoms.
func PDB(entry1 *pdb.Entry, chainId1 byte, start1, end1 int,
	entry2 *pdb.Entry, chainId2 byte, start2, end2 int) (float64, error) {

	struct1, err := Range(entry1, chainId1, start1, end1)
	if err != nil {
		return 0, err
	}
	struct2, err := Range(entry2, chainId2, start2, end2)
	if err != nil {
		return 0, err
	}
	if len(struct1) != len(struct2) {
		return 0, fmt.Errorf("%w: the range '%d-%d' (chain %c in %s) has %d "+
			"carbon-alpha atoms but the range '%d-%d' (chain %c in %s) has %d",
			ErrLengthMismatch,
			start1, end1, chainId1, entry1.Path, len(struct1),
			start2, end2, chainId2, entry2.Path, len(struct2))
	}
	return RMSD(struct1, struct2)
}

// Range returns the carbon-alpha atoms of a chain with residue numbers in
// the inclusive range start-end.
func Range(entry *pdb.Entry, chainId byte, start, end int) ([]xyz.Coords, error) {
	chain, ok := entry.Chains[chainId]
	if !ok {
		return nil, fmt.Errorf("%w %c in '%s'", pdb.ErrNoChain, chainId,
			entry.Path)
	}

	coords := make([]xyz.Coords, 0, max(0, end-start+1))
	for i, num := range chain.Residues {
		if num >= start && num <= end {
			coords = append(coords, chain.CAlpha[i])
		}
	}
	if len(coords) == 0 {
		return nil, fmt.Errorf("the range '%d-%d' (for chain %c in %s) does "+
			"not correspond to any carbon-alpha ATOM records",
			start, end, chainId, entry.Path)
	}
	return coords, nil
}
