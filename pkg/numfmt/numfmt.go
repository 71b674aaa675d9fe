// Package numfmt formats numbers for display.
//
// Formats follow the subset of d3-format used by the dashboard's charts:
// an optional "," for thousands grouping, a precision and the "f" type,
// e.g. ",.0f" renders 7975105156.4 as "7,975,105,156".
package numfmt

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ThousandsFormat is the d3 format string for whole numbers with grouping.
const ThousandsFormat = ",.0f"

var formatRegex = regexp.MustCompile(`^(,?)\.(\d+)f$`)

// Thousands rounds v to zero decimals and groups digits with commas.
func Thousands(v float64) string {
	return Format(v, ThousandsFormat)
}

// Format renders v using a d3-style format. An empty or unsupported format
// falls back to the shortest exact decimal representation.
func Format(v float64, format string) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	m := formatRegex.FindStringSubmatch(format)
	if m == nil {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	precision, _ := strconv.Atoi(m[2])
	s := strconv.FormatFloat(v, 'f', precision, 64)
	if m[1] != "," {
		return s
	}
	return group(s)
}

// group inserts English thousands separators into the integer part of a
// plain decimal string produced by strconv.
func group(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	intPart, frac, hasFrac := strings.Cut(s, ".")
	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		// Beyond int64: leave ungrouped rather than guess.
		return sign + s
	}

	out := message.NewPrinter(language.English).Sprintf("%d", n)
	if hasFrac {
		out += "." + frac
	}
	if sign != "" && strings.Trim(out, "0.,") == "" {
		sign = ""
	}
	return sign + out
}
