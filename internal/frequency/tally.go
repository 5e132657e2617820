// Package frequency builds word/count tables from raw text.
package frequency

import (
	"slices"
	"strings"
)

// Entry is one row of a frequency table.
type Entry struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Table is ordered by Count descending; equal counts keep first-occurrence order.
type Table []Entry

// Tally splits text on whitespace runs and counts each distinct token verbatim.
// No case folding or punctuation stripping is applied.
func Tally(text string) Table {
	tokens := strings.Fields(text)
	index := make(map[string]int, len(tokens))
	table := make(Table, 0)

	for _, token := range tokens {
		if i, ok := index[token]; ok {
			table[i].Count++
			continue
		}
		index[token] = len(table)
		table = append(table, Entry{Word: token, Count: 1})
	}

	slices.SortStableFunc(table, func(a, b Entry) int {
		return b.Count - a.Count
	})
	return table
}

// Total returns the sum of all counts, which equals the number of tokens tallied.
func (t Table) Total() int {
	total := 0
	for _, e := range t {
		total += e.Count
	}
	return total
}

// Top returns at most n leading entries.
func (t Table) Top(n int) Table {
	if n < 0 || n >= len(t) {
		return t
	}
	return t[:n]
}
