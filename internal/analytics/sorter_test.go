package analytics

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortByAttention_Descending(t *testing.T) {
	ranked := []RankedProject{
		{ProjectID: "a", AttentionScore: 1},
		{ProjectID: "b", AttentionScore: 3},
		{ProjectID: "c", AttentionScore: 2},
	}
	SortByAttention(ranked)

	assert.Equal(t, []string{"b", "c", "a"}, ids(ranked))
}

func TestSortByAttention_StableForTies(t *testing.T) {
	ranked := []RankedProject{
		{ProjectID: "a", AttentionScore: 5},
		{ProjectID: "b", AttentionScore: 9},
		{ProjectID: "c", AttentionScore: 5},
		{ProjectID: "d", AttentionScore: 5},
	}
	SortByAttention(ranked)

	assert.Equal(t, []string{"b", "a", "c", "d"}, ids(ranked))
}

func TestSortByAttention_Property(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for iter := 0; iter < 200; iter++ {
		n := rng.Intn(20)
		ranked := make([]RankedProject, n)
		for i := range ranked {
			ranked[i] = RankedProject{
				ProjectID:      string(rune('a' + i)),
				AttentionScore: float64(rng.Intn(4)),
			}
		}
		SortByAttention(ranked)

		for i := 1; i < n; i++ {
			prev, cur := ranked[i-1], ranked[i]
			assert.GreaterOrEqual(t, prev.AttentionScore, cur.AttentionScore)
			if prev.AttentionScore == cur.AttentionScore {
				assert.Less(t, prev.ProjectID, cur.ProjectID, "tie order must follow input order")
			}
		}
	}
}

func ids(ranked []RankedProject) []string {
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.ProjectID
	}
	return out
}
