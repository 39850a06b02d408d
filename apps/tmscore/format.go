package tmscore

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/tmscore/tmout"
)

const bannerWidth = 80

// String returns a human readable summary of the scores, one per line.
func (r Result) String() string {
	return strings.Join([]string{
		"TM-score:\t" + formatScore(r.TMScore),
		"GDT_TS:  \t" + formatScore(r.GDTTS) +
			"\t(" + formatCutoffs(r.GDTTSCutoffs) + ")",
		"GDT_HA:  \t" + formatScore(r.GDTHA) +
			"\t(" + formatCutoffs(r.GDTHACutoffs) + ")",
		"RMSD:    \t" + formatScore(r.RMSD),
		"MaxSub:  \t" + formatScore(r.MaxSub),
	}, "\n")
}

// formatScore writes v with at most 6 significant digits and no trailing
// zeros.
func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func formatCutoffs(c tmout.Cutoffs) string {
	parts := make([]string, len(c))
	for i, v := range c {
		parts[i] = formatScore(v)
	}
	return strings.Join(parts, ", ")
}

// FormatTransform returns a human readable rendering of a superposition.
func FormatTransform(t tmout.Transform) string {
	var b strings.Builder
	b.WriteString("Rotation:\n")
	for _, row := range t.Rotation {
		fmt.Fprintf(&b, " %8.3f %8.3f %8.3f\n", row[0], row[1], row[2])
	}
	fmt.Fprintf(&b, "Translation:  %8.3f %8.3f %8.3f",
		t.Translation[0], t.Translation[1], t.Translation[2])
	return b.String()
}

// String returns the raw TMscore reports. With more than one run, each
// report is preceded by a banner naming its orientation.
func (c *Comparison) String() string {
	if len(c.Reports) == 1 {
		if report, ok := c.Reports[Original]; ok {
			return report
		}
	}
	rule := strings.Repeat("=", bannerWidth)
	var sections []string
	for _, o := range orderedKeys(c.Reports) {
		sections = append(sections, rule+"\n"+
			center(" "+string(o)+" ", bannerWidth, '=')+"\n"+
			rule+"\n"+c.Reports[o])
	}
	return strings.Join(sections, "\n")
}

// center pads s on both sides with fill to the given width. When the padding
// is odd, the extra character goes on the left only if width is odd too.
func center(s string, width int, fill byte) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}
	left := pad/2 + (pad & width & 1)
	return strings.Repeat(string(fill), left) + s +
		strings.Repeat(string(fill), pad-left)
}
