package tmout

import (
	"regexp"
	"strconv"
	"strings"
)

// Cutoffs are the fractions of residues under each of the four distance
// thresholds of a GDT score. GDT-TS uses 1, 2, 4 and 8 Angstroms while
// GDT-HA uses 0.5, 1, 2 and 4 Angstroms.
type Cutoffs [4]float64

// ScoreRecord holds the scores from a single TMscore report.
type ScoreRecord struct {
	TMScore      float64
	GDTTS        float64
	GDTTSCutoffs Cutoffs
	GDTHA        float64
	GDTHACutoffs Cutoffs
	RMSD         float64
	MaxSub       float64
}

// MetricKeys names every value ParseScores requires, in report order.
// These are the names used in a MissingMetricError.
var MetricKeys = []string{
	"tm_score",
	"gdt_ts", "gdt_ts_c1", "gdt_ts_c2", "gdt_ts_c3", "gdt_ts_c4",
	"gdt_ha", "gdt_ha_c1", "gdt_ha_c2", "gdt_ha_c3", "gdt_ha_c4",
	"rmsd",
	"maxsub",
}

var (
	reRunOfSpace    = regexp.MustCompile(`\s\s+`)
	reSpaceBeforeEq = regexp.MustCompile(`\s+=`)
)

// scoreLine reads the values on one report line into rec, recording the keys
// of the values it set. tokens is the normalized line split on spaces.
type scoreLine func(rec *ScoreRecord, found map[string]bool, line string,
	tokens []string) error

// scoreGrammar maps the first token of a normalized report line to the
// reader for that line. Lines whose first token is not a key are ignored.
var scoreGrammar = map[string]scoreLine{
	"TM-score=": scalarLine("tm_score",
		func(r *ScoreRecord) *float64 { return &r.TMScore }),
	"GDT-TS-score=": gdtLine("gdt_ts",
		func(r *ScoreRecord) (*float64, *Cutoffs) {
			return &r.GDTTS, &r.GDTTSCutoffs
		}),
	"GDT-HA-score=": gdtLine("gdt_ha",
		func(r *ScoreRecord) (*float64, *Cutoffs) {
			return &r.GDTHA, &r.GDTHACutoffs
		}),
	"RMSD": rmsdLine,
	"MaxSub-score=": scalarLine("maxsub",
		func(r *ScoreRecord) *float64 { return &r.MaxSub }),
}

// ParseScores reads every score from a TMscore report. If any of the values
// named in MetricKeys is not found, a *MissingMetricError listing all of the
// absent keys is returned. A recognized line that cannot be read returns a
// *MalformedLineError.
//
// Each line is normalized before it is matched: runs of two or more blanks
// become a single space and blanks before an '=' are removed, so that
// "TM-score    = 0.2875" becomes "TM-score= 0.2875". If a line occurs
// more than once, the last one wins.
func ParseScores(report string) (ScoreRecord, error) {
	var rec ScoreRecord
	found := make(map[string]bool, len(MetricKeys))
	for _, line := range strings.Split(report, "\n") {
		line = normalizeLine(line)
		tokens := strings.Split(line, " ")
		read, ok := scoreGrammar[tokens[0]]
		if !ok {
			continue
		}
		if err := read(&rec, found, line, tokens); err != nil {
			return ScoreRecord{}, err
		}
	}

	var missing []string
	for _, key := range MetricKeys {
		if !found[key] {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return ScoreRecord{}, &MissingMetricError{Missing: missing}
	}
	return rec, nil
}

func normalizeLine(line string) string {
	line = reRunOfSpace.ReplaceAllString(line, " ")
	return reSpaceBeforeEq.ReplaceAllString(line, "=")
}

// scalarLine reads lines of the form "KEY= value ...".
func scalarLine(key string, field func(*ScoreRecord) *float64) scoreLine {
	return func(rec *ScoreRecord, found map[string]bool, line string,
		tokens []string) error {

		if len(tokens) < 2 {
			return &MalformedLineError{Line: line, Msg: "no value for " + key}
		}
		v, err := parseFloat(line, tokens[1])
		if err != nil {
			return err
		}
		*field(rec) = v
		found[key] = true
		return nil
	}
}

// gdtLine reads lines of the form
// "KEY= value %(d<a)=c1 %(d<b)=c2 %(d<c)=c3 %(d<d)=c4".
func gdtLine(key string,
	fields func(*ScoreRecord) (*float64, *Cutoffs)) scoreLine {

	return func(rec *ScoreRecord, found map[string]bool, line string,
		tokens []string) error {

		if len(tokens) < 6 {
			return &MalformedLineError{Line: line,
				Msg: "expected a score and 4 cutoffs for " + key}
		}
		score, err := parseFloat(line, tokens[1])
		if err != nil {
			return err
		}
		var cutoffs Cutoffs
		for i := range cutoffs {
			_, val, ok := strings.Cut(tokens[2+i], "=")
			if !ok {
				return &MalformedLineError{Line: line,
					Msg: "cutoff " + strconv.Quote(tokens[2+i]) +
						" has no '='"}
			}
			if cutoffs[i], err = parseFloat(line, val); err != nil {
				return err
			}
		}

		scoreField, cutoffField := fields(rec)
		*scoreField, *cutoffField = score, cutoffs
		found[key] = true
		for i := range cutoffs {
			found[key+"_c"+strconv.Itoa(i+1)] = true
		}
		return nil
	}
}

// rmsdLine reads "RMSD of the common residues= value". The value is
// whatever follows the first '='.
func rmsdLine(rec *ScoreRecord, found map[string]bool, line string,
	tokens []string) error {

	parts := strings.Split(line, "=")
	if len(parts) < 2 {
		return &MalformedLineError{Line: line, Msg: "no value for rmsd"}
	}
	v, err := parseFloat(line, strings.TrimSpace(parts[1]))
	if err != nil {
		return err
	}
	rec.RMSD = v
	found["rmsd"] = true
	return nil
}

func parseFloat(line, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, &MalformedLineError{Line: line,
			Msg: "could not read " + strconv.Quote(s) + " as a number"}
	}
	return v, nil
}
