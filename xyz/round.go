package xyz

import (
	"math"
	"strconv"
	"strings"
)

// roundDecimals rounds v to the given number of decimal places, with ties
// going to the even neighbor.
func roundDecimals(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.RoundToEven(v*scale) / scale
}

// RoundSigFig rounds v to sigfig significant figures, with ties going to the
// even neighbor. Zero and non-finite values are scaled as if their magnitude
// were 10^(sigfig-1), which leaves them unchanged and avoids log(0).
func RoundSigFig(v float64, sigfig int) float64 {
	abs := math.Abs(v)
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		abs = math.Pow(10, float64(sigfig-1))
	}
	mag := math.Pow(10, float64(sigfig-1)-math.Floor(math.Log10(abs)))
	return math.RoundToEven(v*mag) / mag
}

// formatShortest returns the shortest decimal string that reads back as v,
// laid out the way Python's repr lays out floats: positional notation with
// at least one fractional digit for exponents in [-4, 16), and scientific
// notation with a two digit exponent otherwise.
func formatShortest(v float64) string {
	if v == 0 {
		if math.Signbit(v) {
			return "-0.0"
		}
		return "0.0"
	}

	s := strconv.FormatFloat(v, 'e', -1, 64)
	neg := s[0] == '-'
	if neg {
		s = s[1:]
	}
	epos := strings.IndexByte(s, 'e')
	exp, _ := strconv.Atoi(s[epos+1:])
	digits := strings.Replace(s[:epos], ".", "", 1)

	var out string
	switch {
	case exp < -4 || exp >= 16:
		mant := digits[:1]
		if len(digits) > 1 {
			mant += "." + digits[1:]
		}
		sign := '+'
		if exp < 0 {
			sign, exp = '-', -exp
		}
		out = mant + "e" + string(sign) + pad2(exp)
	case exp < 0:
		out = "0." + strings.Repeat("0", -exp-1) + digits
	case len(digits) > exp+1:
		out = digits[:exp+1] + "." + digits[exp+1:]
	default:
		out = digits + strings.Repeat("0", exp+1-len(digits)) + ".0"
	}
	if neg {
		out = "-" + out
	}
	return out
}

func pad2(n int) string {
	s := strconv.Itoa(n)
	if len(s) < 2 {
		s = "0" + s
	}
	return s
}
