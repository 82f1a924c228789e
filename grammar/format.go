// Package grammar: single-token formatting — balance test, count
// notation, and name normalization.
package grammar

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/vals/edgram/design"
)

// Balanced reports whether counts are approximately equal: every count's
// absolute deviation from the arithmetic mean stays within tol of the mean.
// Empty and single-element lists are balanced by definition, as is a mean
// of exactly zero (avoids division by zero).
func Balanced(counts []int, tol float64) bool {
	if len(counts) <= 1 {
		return true
	}

	var sum float64
	for _, c := range counts {
		sum += float64(c)
	}
	mean := sum / float64(len(counts))
	if mean == 0 {
		return true
	}

	for _, c := range counts {
		if math.Abs(float64(c)-mean)/mean > tol {
			return false
		}
	}

	return true
}

// CamelCase normalizes a factor name for the grammar's token syntax:
// split on underscores and spaces, capitalize each word, concatenate.
// "cell_type" → "CellType", "Sample Rep" → "SampleRep".
func CamelCase(name string) string {
	words := strings.Fields(strings.ReplaceAll(name, "_", " "))
	var b strings.Builder
	for _, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}

	return b.String()
}

// formatCount renders a single count value. In approximate mode, values
// ≥ 1000 render as "~<v/1e3>k" and values ≥ 1,000,000 as "~<v/1e6>m",
// with one decimal digit and a trailing ".0" stripped:
// 1500 → "~1.5k", 2000 → "~2k", 1200000 → "~1.2m".
func formatCount(count int, approximate bool) string {
	if approximate && count >= approxThreshold {
		if count >= 1_000_000 {
			return approxNotation(float64(count)/1_000_000, "m")
		}

		return approxNotation(float64(count)/1_000, "k")
	}

	return strconv.Itoa(count)
}

// approxNotation renders "~<v><suffix>" with at most one decimal digit.
func approxNotation(v float64, suffix string) string {
	s := strconv.FormatFloat(v, 'f', 1, 64)
	s = strings.TrimSuffix(s, ".0")

	return "~" + s + suffix
}

// formatFactor renders a factor's single-node grammar token.
// Balanced counts collapse to "Name(k)" where k is the category count;
// unbalanced counts render per category as "Name[c1|c2|...|cn]".
func formatFactor(name string, f *design.Factor, approximate bool, tol float64) string {
	token := CamelCase(name)
	if Balanced(f.Counts, tol) {
		return token + "(" + strconv.Itoa(len(f.Categories)) + ")"
	}

	parts := make([]string, len(f.Counts))
	for i, c := range f.Counts {
		parts[i] = formatCount(c, approximate)
	}

	return token + "[" + strings.Join(parts, "|") + "]"
}
