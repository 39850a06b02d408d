package tmscore

import (
	"errors"
	"sort"

	"github.com/BurntSushi/tmscore/tmout"
)

// Result is the best of each score over the runs of a comparison.
//
// TMScore, GDTTS, GDTHA and MaxSub are the maximum over all runs and RMSD is
// the minimum; each is chosen independently of the others. The cutoffs of a
// GDT score always come from the same run as the score itself.
type Result struct {
	tmout.ScoreRecord

	// Best is the run with the highest TM-score. Ties go to the original.
	Best Orientation

	// Transform is the superposition from the Best run. It is nil unless
	// the superposition was parsed.
	Transform *tmout.Transform
}

// Reconcile picks the best of each score across records. Runs are visited
// original first, then mirror, then any others by name; a later run only
// wins a metric if it is strictly better.
func Reconcile(records map[Orientation]tmout.ScoreRecord) (Result, error) {
	keys := orderedKeys(records)
	if len(keys) == 0 {
		return Result{}, errors.New("no scores to reconcile")
	}

	res := Result{ScoreRecord: records[keys[0]], Best: keys[0]}
	for _, k := range keys[1:] {
		rec := records[k]
		if rec.TMScore > res.TMScore {
			res.TMScore, res.Best = rec.TMScore, k
		}
		if rec.GDTTS > res.GDTTS {
			res.GDTTS, res.GDTTSCutoffs = rec.GDTTS, rec.GDTTSCutoffs
		}
		if rec.GDTHA > res.GDTHA {
			res.GDTHA, res.GDTHACutoffs = rec.GDTHA, rec.GDTHACutoffs
		}
		if rec.RMSD < res.RMSD {
			res.RMSD = rec.RMSD
		}
		if rec.MaxSub > res.MaxSub {
			res.MaxSub = rec.MaxSub
		}
	}
	return res, nil
}

// orderedKeys returns the keys of m with the known orientations first.
func orderedKeys[V any](m map[Orientation]V) []Orientation {
	keys := make([]Orientation, 0, len(m))
	for _, o := range orientations {
		if _, ok := m[o]; ok {
			keys = append(keys, o)
		}
	}
	var others []Orientation
	for o := range m {
		if o != Original && o != Mirror {
			others = append(others, o)
		}
	}
	sort.Slice(others, func(i, j int) bool { return others[i] < others[j] })
	return append(keys, others...)
}
