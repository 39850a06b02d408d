// Package pdb reads the protein chains of a PDB file, with the C-alpha
// coordinates TMscore works on.
package pdb

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/tmscore/xyz"
)

// AminoThreeToOne is a map from three letter amino acids to their
// corresponding single letter representation.
var AminoThreeToOne = map[string]byte{
	"ALA": 'A', "ARG": 'R', "ASN": 'N', "ASP": 'D', "CYS": 'C',
	"GLU": 'E', "GLN": 'Q', "GLY": 'G', "HIS": 'H', "ILE": 'I',
	"LEU": 'L', "LYS": 'K', "MET": 'M', "PHE": 'F', "PRO": 'P',
	"SER": 'S', "THR": 'T', "TRP": 'W', "TYR": 'Y', "VAL": 'V',
	"SEC": 'U', "PYL": 'O',
}

// ErrNoChain is returned by ReadCA when the requested chain has no C-alpha
// atoms.
var ErrNoChain = errors.New("no C-alpha atoms for chain")

// Entry represents the protein chains of the first model in a PDB file.
type Entry struct {
	Path   string
	Chains map[byte]*Chain

	// order holds chain identifiers in the order their first ATOM record
	// appears.
	order []byte
}

// Chain represents a protein chain or subunit in a PDB file.
//
// Sequence, Residues and CAlpha are parallel: one entry per residue with a
// C-alpha atom, in file order.
type Chain struct {
	Ident    byte
	Sequence []byte
	Residues []int
	CAlpha   []xyz.Coords
}

// New creates a new PDB Entry from a file. If the file name ends with ".gz",
// gzip decompression will be used.
func New(fileName string) (*Entry, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var reader io.Reader = f
	if path.Ext(fileName) == ".gz" {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fileName, err)
		}
		defer gz.Close()
		reader = gz
	}

	entry, err := Read(reader)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}
	entry.Path = fileName
	return entry, nil
}

// Read parses PDB records from r. Only ATOM records of the first model are
// read; everything else is ignored.
func Read(r io.Reader) (*Entry, error) {
	entry := &Entry{Chains: make(map[byte]*Chain)}

	scanner := bufio.NewScanner(r)
	for lineno := 1; scanner.Scan(); lineno++ {
		line := scanner.Text()
		if len(line) < 6 {
			continue
		}
		switch strings.TrimSpace(line[0:6]) {
		case "ENDMDL":
			return entry, nil
		case "ATOM":
			if err := entry.parseAtom(line); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineno, err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entry, nil
}

// ReadCA returns the C-alpha coordinates of one chain of a PDB file. A chain
// identifier of 0 selects the first chain in the file.
func ReadCA(fileName string, chain byte) ([]xyz.Coords, error) {
	entry, err := New(fileName)
	if err != nil {
		return nil, err
	}
	c := entry.Chain(chain)
	if c == nil || len(c.CAlpha) == 0 {
		if chain == 0 {
			return nil, fmt.Errorf("%w: %s has no protein chains",
				ErrNoChain, fileName)
		}
		return nil, fmt.Errorf("%w %c in %s", ErrNoChain, chain, fileName)
	}
	return c.CAlpha, nil
}

// Chain returns the chain with the given identifier, or the first chain if
// ident is 0. It returns nil if there is no such chain.
func (e *Entry) Chain(ident byte) *Chain {
	if ident == 0 {
		if len(e.order) == 0 {
			return nil
		}
		ident = e.order[0]
	}
	return e.Chains[ident]
}

// String returns a sorted list of all chains and their amino acid sequences.
func (e *Entry) String() string {
	lines := make([]string, 0, len(e.Chains))
	for _, chain := range e.Chains {
		lines = append(lines, chain.String())
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n")
}

func (e *Entry) getOrMakeChain(ident byte) *Chain {
	if chain, ok := e.Chains[ident]; ok {
		return chain
	}
	e.Chains[ident] = &Chain{Ident: ident}
	e.order = append(e.order, ident)
	return e.Chains[ident]
}

// parseAtom reads the C-alpha atom of an amino acid residue. Other atoms,
// alternate locations after the first and residues that aren't amino acids
// are skipped.
//
// Columns (1-based): atom name 13-16, alternate location 17, residue name
// 18-20, chain 22, residue number 23-26, coordinates 31-38, 39-46, 47-54.
func (e *Entry) parseAtom(line string) error {
	if len(line) < 54 {
		return fmt.Errorf("ATOM record too short (%d columns)", len(line))
	}
	if strings.TrimSpace(line[12:16]) != "CA" {
		return nil
	}
	if alt := line[16]; alt != ' ' && alt != 'A' {
		return nil
	}
	single, ok := AminoThreeToOne[strings.TrimSpace(line[17:20])]
	if !ok {
		return nil
	}

	num, err := strconv.Atoi(strings.TrimSpace(line[22:26]))
	if err != nil {
		return fmt.Errorf("bad residue number %q", line[22:26])
	}
	var coords xyz.Coords
	for i := range coords {
		field := line[30+8*i : 38+8*i]
		coords[i], err = strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return fmt.Errorf("bad coordinate %q", field)
		}
	}

	chain := e.getOrMakeChain(line[21])
	chain.Sequence = append(chain.Sequence, single)
	chain.Residues = append(chain.Residues, num)
	chain.CAlpha = append(chain.CAlpha, coords)
	return nil
}

// String returns a FASTA-like formatted string of this chain.
func (c *Chain) String() string {
	first, last := 0, 0
	if len(c.Residues) > 0 {
		first, last = c.Residues[0], c.Residues[len(c.Residues)-1]
	}
	return fmt.Sprintf("> Chain %c (%d, %d) :: length %d\n%s",
		c.Ident, first, last, len(c.Sequence), string(c.Sequence))
}
