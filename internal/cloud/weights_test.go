package cloud

import (
	"fmt"
	"strings"
	"testing"
)

func TestBuildStopwords(t *testing.T) {
	t.Run("built-in list plus additional", func(t *testing.T) {
		set := BuildStopwords(true, []string{"Widget", " gadget "})
		for _, w := range []string{"the", "and", "widget", "gadget", "THE"} {
			if !set.Contains(w) {
				t.Errorf("Expected %q to be a stopword", w)
			}
		}
	})

	t.Run("additional only", func(t *testing.T) {
		set := BuildStopwords(false, SplitList("the,and"))
		if !set.Contains("the") || !set.Contains("And") {
			t.Error("Expected additional words to be stopwords")
		}
		if set.Contains("about") {
			t.Error("Expected built-in list to be excluded")
		}
		if len(set) != 2 {
			t.Errorf("Expected 2 stopwords, got %d", len(set))
		}
	})

	t.Run("empty entries ignored", func(t *testing.T) {
		set := BuildStopwords(false, SplitList(" , ,"))
		if len(set) != 0 {
			t.Errorf("Expected no stopwords, got %v", set)
		}
	})
}

func TestSplitList(t *testing.T) {
	if got := SplitList(""); got != nil {
		t.Errorf("Expected nil for empty input, got %v", got)
	}
	if got := SplitList("a,b"); len(got) != 2 {
		t.Errorf("Expected 2 entries, got %v", got)
	}
}

func TestWeights(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		stopwords Stopwords
		want      map[string]int
	}{
		{
			name:      "stopwords removed case-insensitively",
			text:      "The cat and THE dog and the cat",
			stopwords: BuildStopwords(false, []string{"the", "and"}),
			want:      map[string]int{"cat": 2, "dog": 1},
		},
		{
			name:      "punctuation is not part of words",
			text:      "hello, hello! (hello) world.",
			stopwords: Stopwords{},
			want:      map[string]int{"hello": 3, "world": 1},
		},
		{
			name:      "possessive suffix removed",
			text:      "Go's compiler go",
			stopwords: Stopwords{},
			want:      map[string]int{"Go": 2, "compiler": 1},
		},
		{
			name:      "possessive of a stopword is a stopword",
			text:      "the's the's The's cloud",
			stopwords: BuildStopwords(false, SplitList("the,and")),
			want:      map[string]int{"cloud": 1},
		},
		{
			name:      "numbers dropped",
			text:      "2024 was 42 times better than 1999 r2d2",
			stopwords: BuildStopwords(false, []string{"was", "than"}),
			want:      map[string]int{"times": 1, "better": 1, "r2d2": 1},
		},
		{
			name:      "case variants merge onto most frequent",
			text:      "Go go Go GO",
			stopwords: Stopwords{},
			want:      map[string]int{"Go": 4},
		},
		{
			name:      "plurals merge into singular",
			text:      "cloud clouds clouds class classes glass",
			stopwords: Stopwords{},
			want:      map[string]int{"cloud": 3, "class": 1, "classes": 1, "glass": 1},
		},
		{
			name:      "nothing left",
			text:      "the and of",
			stopwords: BuildStopwords(true, nil),
			want:      map[string]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Weights(tt.text, tt.stopwords, DefaultMaxWords)
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %v, got %v", tt.want, got)
			}
			for w, c := range tt.want {
				if got[w] != c {
					t.Errorf("Expected %q to have weight %d, got %d (all: %v)", w, c, got[w], got)
				}
			}
		})
	}
}

func TestWeights_KeepsMostFrequent(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 300; i++ {
		word := fmt.Sprintf("word%c%c", 'a'+i/26, 'a'+i%26)
		for j := 0; j <= i%7; j++ {
			b.WriteString(word + " ")
		}
	}

	got := Weights(b.String(), Stopwords{}, 200)
	if len(got) != 200 {
		t.Fatalf("Expected 200 words, got %d", len(got))
	}

	minKept := 1 << 30
	for _, c := range got {
		minKept = min(minKept, c)
	}
	// counts 1..7 rotate over 300 words, so counts 3..7 alone fill 200 slots
	if minKept < 3 {
		t.Errorf("Expected dropped words to be the least frequent, smallest kept count is %d", minKept)
	}
}
