package recommend

import (
	"math"
	"sort"
	"sync"

	"github.com/alexanderramin/pdsops/internal/domain"
)

const (
	FeedbackStep   = 0.05
	MinSuccessRate = 0.1
	MaxSuccessRate = 0.9
)

// UpdateRuleFeedback applies one reported outcome to row, or to a fresh
// default row when row is nil. The caller persists the result and stamps
// UpdatedAt.
func UpdateRuleFeedback(ruleKey string, wasSuccessful bool, row *domain.RuleFeedback) domain.RuleFeedback {
	updated := domain.NewRuleFeedback(ruleKey)
	if row != nil {
		updated = *row
	}

	if wasSuccessful {
		updated.SuccessRate += FeedbackStep
	} else {
		updated.SuccessRate -= FeedbackStep
	}
	updated.SuccessRate = math.Min(math.Max(updated.SuccessRate, MinSuccessRate), MaxSuccessRate)
	return updated
}

// FeedbackTable is an in-memory feedback store keyed by rule key. Reads may
// run concurrently; updates to a key are serialized.
type FeedbackTable struct {
	mu   sync.RWMutex
	rows map[string]domain.RuleFeedback
}

// NewFeedbackTable builds a table seeded with rows.
func NewFeedbackTable(rows ...domain.RuleFeedback) *FeedbackTable {
	t := &FeedbackTable{rows: make(map[string]domain.RuleFeedback, len(rows))}
	for _, r := range rows {
		t.rows[r.RuleKey] = r
	}
	return t
}

// Confidence returns the rule's success rate, or the default when unrated.
func (t *FeedbackTable) Confidence(ruleKey string) float64 {
	if row, ok := t.Get(ruleKey); ok {
		return row.SuccessRate
	}
	return domain.DefaultSuccessRate
}

func (t *FeedbackTable) Get(ruleKey string) (domain.RuleFeedback, bool) {
	if t == nil {
		return domain.RuleFeedback{}, false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[ruleKey]
	return row, ok
}

// Put stores row unless the table already holds a newer row for its key,
// so writers that finish out of order cannot roll a rule back.
func (t *FeedbackTable) Put(row domain.RuleFeedback) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if cur, ok := t.rows[row.RuleKey]; ok && cur.UpdatedAt.After(row.UpdatedAt) {
		return
	}
	t.rows[row.RuleKey] = row
}

// Snapshot returns all rows ordered by rule key.
func (t *FeedbackTable) Snapshot() []domain.RuleFeedback {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]domain.RuleFeedback, 0, len(t.rows))
	for _, r := range t.rows {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RuleKey < out[j].RuleKey })
	return out
}
