// Package card: summary statistics and display formatting helpers.
package card

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/dustin/go-humanize"
)

// summaryStats summarizes a per-category count distribution.
type summaryStats struct {
	min    int
	max    int
	mean   int
	median int
}

// summarize computes min/max/mean/median over counts.
// Mean and median truncate toward zero; the card displays whole cells.
func summarize(counts []int) summaryStats {
	if len(counts) == 0 {
		return summaryStats{}
	}

	sorted := make([]int, len(counts))
	copy(sorted, counts)
	sort.Ints(sorted)

	var sum int
	for _, c := range sorted {
		sum += c
	}

	n := len(sorted)
	median := sorted[n/2]
	if n%2 == 0 {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	return summaryStats{
		min:    sorted[0],
		max:    sorted[n-1],
		mean:   sum / n,
		median: median,
	}
}

// formatNumber renders n with thousands separators: 12500 → "12,500".
func formatNumber(n int) string {
	return humanize.Comma(int64(n))
}

// formatRange renders a distribution as "min - max (mean: m)", collapsing
// to a single number when all counts are equal.
func formatRange(s summaryStats) string {
	if s.min == s.max {
		return formatNumber(s.min)
	}

	return fmt.Sprintf("%s - %s (mean: %s)",
		formatNumber(s.min), formatNumber(s.max), formatNumber(s.mean))
}

// titleCase converts a factor name to Title Case for display:
// "cell_type" → "Cell Type".
func titleCase(name string) string {
	words := strings.Fields(strings.ReplaceAll(name, "_", " "))
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}

	return strings.Join(words, " ")
}
