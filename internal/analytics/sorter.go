package analytics

import "sort"

// SortByAttention orders ranked projects by attention score, highest first.
// The sort is stable: projects with equal scores keep their input order.
func SortByAttention(ranked []RankedProject) {
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].AttentionScore > ranked[j].AttentionScore
	})
}
