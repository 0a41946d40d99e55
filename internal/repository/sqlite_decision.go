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

// SQLiteDecisionRepo implements DecisionRepo using a SQLite database.
type SQLiteDecisionRepo struct {
	db db.DBTX
}

func NewSQLiteDecisionRepo(conn db.DBTX) *SQLiteDecisionRepo {
	return &SQLiteDecisionRepo{db: conn}
}

const decisionColumns = `id, rule_key, decision_type, rationale, expected_impact, status, owner,
	related_project_ids, created_at, updated_at`

func (r *SQLiteDecisionRepo) Create(ctx context.Context, d *domain.Decision) error {
	impact, related, err := encodeDecisionPayload(d)
	if err != nil {
		return err
	}
	status := d.Status
	if status == "" {
		status = domain.DecisionProposed
	}
	query := `INSERT INTO decisions (` + decisionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		d.ID,
		d.RuleKey,
		d.DecisionType,
		d.Rationale,
		impact,
		string(status),
		d.Owner,
		related,
		formatTime(d.CreatedAt),
		formatTime(d.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting decision: %w", err)
	}
	return nil
}

func (r *SQLiteDecisionRepo) GetByID(ctx context.Context, id string) (*domain.Decision, error) {
	query := `SELECT ` + decisionColumns + ` FROM decisions WHERE id = ?`
	d, err := scanDecision(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("decision %s: %w", id, ErrNotFound)
	}
	return d, err
}

func (r *SQLiteDecisionRepo) List(ctx context.Context, status *domain.DecisionStatus) ([]*domain.Decision, error) {
	query := `SELECT ` + decisionColumns + ` FROM decisions`
	var args []any
	if status != nil {
		query += ` WHERE status = ?`
		args = append(args, string(*status))
	}
	query += ` ORDER BY created_at DESC, rowid DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing decisions: %w", err)
	}
	defer rows.Close()

	var decisions []*domain.Decision
	for rows.Next() {
		d, err := scanDecision(rows)
		if err != nil {
			return nil, err
		}
		decisions = append(decisions, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating decisions: %w", err)
	}
	return decisions, nil
}

func (r *SQLiteDecisionRepo) Update(ctx context.Context, d *domain.Decision) error {
	impact, related, err := encodeDecisionPayload(d)
	if err != nil {
		return err
	}
	query := `UPDATE decisions SET rule_key = ?, decision_type = ?, rationale = ?, expected_impact = ?,
		status = ?, owner = ?, related_project_ids = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		d.RuleKey,
		d.DecisionType,
		d.Rationale,
		impact,
		string(d.Status),
		d.Owner,
		related,
		formatTime(d.UpdatedAt),
		d.ID,
	)
	if err != nil {
		return fmt.Errorf("updating decision: %w", err)
	}
	return requireAffected(res, "decision", d.ID)
}

func encodeDecisionPayload(d *domain.Decision) (impact, related string, err error) {
	impactVal := d.ExpectedImpact
	if impactVal == nil {
		impactVal = map[string]any{}
	}
	relatedVal := d.RelatedProjectIDs
	if relatedVal == nil {
		relatedVal = []string{}
	}
	if impact, err = encodeJSON(impactVal, "expected_impact"); err != nil {
		return "", "", err
	}
	if related, err = encodeJSON(relatedVal, "related_project_ids"); err != nil {
		return "", "", err
	}
	return impact, related, nil
}

func scanDecision(row rowScanner) (*domain.Decision, error) {
	var d domain.Decision
	var impact, related, status, createdAtStr, updatedAtStr string
	err := row.Scan(
		&d.ID, &d.RuleKey, &d.DecisionType, &d.Rationale, &impact, &status, &d.Owner,
		&related, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning decision: %w", err)
	}
	d.Status = domain.DecisionStatus(status)
	if err := decodeJSON(impact, &d.ExpectedImpact, "expected_impact"); err != nil {
		return nil, err
	}
	if err := decodeJSON(related, &d.RelatedProjectIDs, "related_project_ids"); err != nil {
		return nil, err
	}
	if err := parseTimes(time.RFC3339,
		timeColumn{"created_at", createdAtStr, &d.CreatedAt},
		timeColumn{"updated_at", updatedAtStr, &d.UpdatedAt},
	); err != nil {
		return nil, err
	}
	return &d, nil
}
