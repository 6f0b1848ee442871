package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreCompletions(t *testing.T) {
	candidates := []string{"groceries", "meeting notes", "go snippets"}

	assert.Equal(t, candidates, ScoreCompletions("", candidates, 1))
	assert.Nil(t, ScoreCompletions("zzz", candidates, 0))

	got := ScoreCompletions("mtg", candidates, 0)
	assert.Equal(t, []string{"meeting notes"}, got)

	got = ScoreCompletions("g", candidates, 1)
	assert.Len(t, got, 1)
}

func TestRankIndexes(t *testing.T) {
	candidates := []string{"alpha", "beta", "alphabet"}
	idx := RankIndexes("alp", candidates)
	assert.ElementsMatch(t, []int{0, 2}, idx)
	assert.Empty(t, RankIndexes("q", candidates))
}
