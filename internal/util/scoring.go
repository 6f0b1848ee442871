package util

import "github.com/sahilm/fuzzy"

// ScoreCompletions returns the top n matches for input from candidates,
// best first. An empty input returns the candidates unchanged.
func ScoreCompletions(input string, candidates []string, n int) []string {
	if input == "" {
		return candidates
	}
	idx := RankIndexes(input, candidates)
	if len(idx) == 0 {
		return nil
	}
	if n > 0 && len(idx) > n {
		idx = idx[:n]
	}
	out := make([]string, len(idx))
	for i, j := range idx {
		out[i] = candidates[j]
	}
	return out
}

// RankIndexes fuzzy-matches input against candidates and returns the
// indexes of the matching candidates, best score first.
func RankIndexes(input string, candidates []string) []int {
	matches := fuzzy.Find(input, candidates)
	out := make([]int, len(matches))
	for i, m := range matches {
		out[i] = m.Index
	}
	return out
}
