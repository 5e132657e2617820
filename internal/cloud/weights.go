package cloud

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
)

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_][\p{L}\p{N}_']*`)

type variantCount struct {
	word  string
	count int
}

// caseGroup collects the case variants of one lower-cased word in first-seen order.
type caseGroup struct {
	variants []variantCount
}

func (g *caseGroup) add(word string, count int) {
	for i := range g.variants {
		if g.variants[i].word == word {
			g.variants[i].count += count
			return
		}
	}
	g.variants = append(g.variants, variantCount{word: word, count: count})
}

func (g *caseGroup) total() int {
	sum := 0
	for _, v := range g.variants {
		sum += v.count
	}
	return sum
}

// representative is the most frequent variant; the first seen wins ties.
func (g *caseGroup) representative() string {
	best := g.variants[0]
	for _, v := range g.variants[1:] {
		if v.count > best.count {
			best = v
		}
	}
	return best.word
}

// Weights returns at most maxWords cloud words mapped to their counts.
//
// Tokens are runs of letters, digits, underscores and apostrophes. Stopwords are
// dropped, a trailing 's is removed and pure numbers are ignored. Case variants
// count as one word shown in its most frequent spelling, and a plural "xs" folds
// into "x" when "x" also occurs.
func Weights(text string, stopwords Stopwords, maxWords int) map[string]int {
	groups := make(map[string]*caseGroup)
	var order []string

	for _, token := range tokenPattern.FindAllString(text, -1) {
		if strings.HasSuffix(strings.ToLower(token), "'s") {
			token = token[:len(token)-2]
		}
		if token == "" || isNumber(token) || stopwords.Contains(token) {
			continue
		}
		lower := strings.ToLower(token)
		g, ok := groups[lower]
		if !ok {
			g = &caseGroup{}
			groups[lower] = g
			order = append(order, lower)
		}
		g.add(token, 1)
	}

	order = mergePlurals(groups, order)

	type weighted struct {
		word  string
		count int
	}
	ranked := make([]weighted, 0, len(order))
	for _, lower := range order {
		g := groups[lower]
		ranked = append(ranked, weighted{word: g.representative(), count: g.total()})
	}
	slices.SortStableFunc(ranked, func(a, b weighted) int {
		return b.count - a.count
	})
	if maxWords > 0 && len(ranked) > maxWords {
		ranked = ranked[:maxWords]
	}

	words := make(map[string]int, len(ranked))
	for _, w := range ranked {
		words[w.word] = w.count
	}
	return words
}

func mergePlurals(groups map[string]*caseGroup, order []string) []string {
	kept := make([]string, 0, len(order))
	for _, lower := range order {
		if strings.HasSuffix(lower, "s") && !strings.HasSuffix(lower, "ss") {
			if singular, ok := groups[strings.TrimSuffix(lower, "s")]; ok {
				for _, v := range groups[lower].variants {
					singular.add(v.word[:len(v.word)-1], v.count)
				}
				delete(groups, lower)
				continue
			}
		}
		kept = append(kept, lower)
	}
	return kept
}

func isNumber(token string) bool {
	for _, r := range token {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
