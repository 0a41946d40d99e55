package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/pdsops/internal/db"
	"github.com/alexanderramin/pdsops/internal/domain"
)

// SQLiteRuleFeedbackRepo implements RuleFeedbackRepo using a SQLite database.
// Writers never overwrite blindly: updates go through CompareAndSwap so two
// concurrent outcomes for the same rule cannot lose one another.
type SQLiteRuleFeedbackRepo struct {
	db db.DBTX
}

func NewSQLiteRuleFeedbackRepo(conn db.DBTX) *SQLiteRuleFeedbackRepo {
	return &SQLiteRuleFeedbackRepo{db: conn}
}

func (r *SQLiteRuleFeedbackRepo) Get(ctx context.Context, ruleKey string) (*domain.RuleFeedback, error) {
	query := `SELECT rule_key, success_rate, updated_at FROM rule_feedback WHERE rule_key = ?`
	fb, err := scanRuleFeedback(r.db.QueryRowContext(ctx, query, ruleKey))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("rule feedback %s: %w", ruleKey, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &fb, nil
}

func (r *SQLiteRuleFeedbackRepo) List(ctx context.Context) ([]domain.RuleFeedback, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT rule_key, success_rate, updated_at FROM rule_feedback ORDER BY rule_key`)
	if err != nil {
		return nil, fmt.Errorf("listing rule feedback: %w", err)
	}
	defer rows.Close()

	var out []domain.RuleFeedback
	for rows.Next() {
		fb, err := scanRuleFeedback(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, fb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rule feedback: %w", err)
	}
	return out, nil
}

func (r *SQLiteRuleFeedbackRepo) EnsureDefault(ctx context.Context, ruleKey string) error {
	query := `INSERT OR IGNORE INTO rule_feedback (rule_key, success_rate, updated_at) VALUES (?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, ruleKey, domain.DefaultSuccessRate, nowUTC()); err != nil {
		return fmt.Errorf("seeding rule feedback %s: %w", ruleKey, err)
	}
	return nil
}

func (r *SQLiteRuleFeedbackRepo) CompareAndSwap(ctx context.Context, ruleKey string, expected, next float64, updatedAt time.Time) (bool, error) {
	query := `UPDATE rule_feedback SET success_rate = ?, updated_at = ?
		WHERE rule_key = ? AND success_rate = ?`
	res, err := r.db.ExecContext(ctx, query, next, formatTime(updatedAt), ruleKey, expected)
	if err != nil {
		return false, fmt.Errorf("updating rule feedback %s: %w", ruleKey, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking rule feedback update: %w", err)
	}
	return n == 1, nil
}

func scanRuleFeedback(row rowScanner) (domain.RuleFeedback, error) {
	var fb domain.RuleFeedback
	var updatedAtStr string
	if err := row.Scan(&fb.RuleKey, &fb.SuccessRate, &updatedAtStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fb, err
		}
		return fb, fmt.Errorf("scanning rule feedback: %w", err)
	}
	if err := parseTimes(time.RFC3339, timeColumn{"updated_at", updatedAtStr, &fb.UpdatedAt}); err != nil {
		return fb, err
	}
	return fb, nil
}
