package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/pdsops/internal/db"
	"github.com/alexanderramin/pdsops/internal/domain"
)

// SQLiteOutcomeRepo implements OutcomeRepo using a SQLite database.
type SQLiteOutcomeRepo struct {
	db db.DBTX
}

func NewSQLiteOutcomeRepo(conn db.DBTX) *SQLiteOutcomeRepo {
	return &SQLiteOutcomeRepo{db: conn}
}

func (r *SQLiteOutcomeRepo) Create(ctx context.Context, o *domain.Outcome) error {
	before, err := encodeJSON(kpiMapOrEmpty(o.KPIBefore), "kpi_before")
	if err != nil {
		return err
	}
	after, err := encodeJSON(kpiMapOrEmpty(o.KPIAfter), "kpi_after")
	if err != nil {
		return err
	}
	query := `INSERT INTO outcomes (id, decision_id, measured_at, kpi_before, kpi_after, notes)
		VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query,
		o.ID, o.DecisionID, formatTime(o.MeasuredAt), before, after, o.Notes,
	); err != nil {
		return fmt.Errorf("inserting outcome: %w", err)
	}
	return nil
}

func (r *SQLiteOutcomeRepo) ListByDecision(ctx context.Context, decisionID string) ([]domain.Outcome, error) {
	query := `SELECT id, decision_id, measured_at, kpi_before, kpi_after, notes
		FROM outcomes WHERE decision_id = ? ORDER BY measured_at, rowid`
	rows, err := r.db.QueryContext(ctx, query, decisionID)
	if err != nil {
		return nil, fmt.Errorf("listing outcomes: %w", err)
	}
	defer rows.Close()

	var out []domain.Outcome
	for rows.Next() {
		var o domain.Outcome
		var measuredAtStr, before, after string
		if err := rows.Scan(&o.ID, &o.DecisionID, &measuredAtStr, &before, &after, &o.Notes); err != nil {
			return nil, fmt.Errorf("scanning outcome: %w", err)
		}
		if err := decodeJSON(before, &o.KPIBefore, "kpi_before"); err != nil {
			return nil, err
		}
		if err := decodeJSON(after, &o.KPIAfter, "kpi_after"); err != nil {
			return nil, err
		}
		if err := parseTimes(time.RFC3339, timeColumn{"measured_at", measuredAtStr, &o.MeasuredAt}); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating outcomes: %w", err)
	}
	return out, nil
}

func kpiMapOrEmpty(m map[string]float64) map[string]float64 {
	if m == nil {
		return map[string]float64{}
	}
	return m
}
