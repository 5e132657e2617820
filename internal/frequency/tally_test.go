package frequency

import (
	"strings"
	"testing"
)

func TestTally(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Table
	}{
		{
			name: "empty text",
			text: "",
			want: Table{},
		},
		{
			name: "only whitespace",
			text: " \t\n  ",
			want: Table{},
		},
		{
			name: "counts sorted descending",
			text: "b a b c b a",
			want: Table{{"b", 3}, {"a", 2}, {"c", 1}},
		},
		{
			name: "ties keep first occurrence order",
			text: "zeta alpha zeta alpha mid",
			want: Table{{"zeta", 2}, {"alpha", 2}, {"mid", 1}},
		},
		{
			name: "tokens are verbatim",
			text: "Word word word. WORD word",
			want: Table{{"word", 2}, {"Word", 1}, {"word.", 1}, {"WORD", 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tally(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %d entries, got %d: %v", len(tt.want), len(got), got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("Expected entry %d to be %v, got %v", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestTally_TotalMatchesTokenCount(t *testing.T) {
	texts := []string{
		"",
		"one",
		"the quick brown fox jumps over the lazy dog the end",
		"  spaced\t\tout\n\nlines  with   runs ",
		strings.Repeat("repeat ", 250) + "tail",
	}

	for _, text := range texts {
		table := Tally(text)
		if table.Total() != len(strings.Fields(text)) {
			t.Errorf("Expected total %d, got %d for %q", len(strings.Fields(text)), table.Total(), text)
		}
	}
}

func TestTally_SortedByCountDescending(t *testing.T) {
	text := "a b c d e a b c d a b c a b a f g g h h h"
	table := Tally(text)
	for i := 1; i < len(table); i++ {
		if table[i-1].Count < table[i].Count {
			t.Fatalf("Entries %d and %d out of order: %v", i-1, i, table)
		}
	}
}

func TestTable_Top(t *testing.T) {
	table := Tally("a a a b b c")

	if got := table.Top(2); len(got) != 2 || got[0].Word != "a" || got[1].Word != "b" {
		t.Errorf("Expected top 2 to be a, b; got %v", got)
	}
	if got := table.Top(10); len(got) != 3 {
		t.Errorf("Expected all 3 entries, got %d", len(got))
	}
	if got := table.Top(-1); len(got) != 3 {
		t.Errorf("Expected negative n to return all entries, got %d", len(got))
	}
}
