package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/pdsops/internal/db"
	"github.com/alexanderramin/pdsops/internal/domain"
)

// SQLiteRiskRepo implements RiskRepo using a SQLite database.
type SQLiteRiskRepo struct {
	db db.DBTX
}

func NewSQLiteRiskRepo(conn db.DBTX) *SQLiteRiskRepo {
	return &SQLiteRiskRepo{db: conn}
}

const riskColumns = `id, project_id, category, probability, impact_cost, impact_days, mitigation_status, created_at`

func (r *SQLiteRiskRepo) Create(ctx context.Context, risk *domain.Risk) error {
	status := risk.MitigationStatus
	if status == "" {
		status = domain.MitigationOpen
	}
	query := `INSERT INTO risks (` + riskColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		risk.ID,
		risk.ProjectID,
		risk.Category,
		risk.Probability,
		risk.ImpactCost,
		risk.ImpactDays,
		string(status),
		formatTime(risk.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting risk: %w", err)
	}
	return nil
}

// List returns every risk in the register, in insertion order.
func (r *SQLiteRiskRepo) List(ctx context.Context) ([]domain.Risk, error) {
	return r.query(ctx, `SELECT `+riskColumns+` FROM risks ORDER BY rowid`)
}

func (r *SQLiteRiskRepo) ListByProject(ctx context.Context, projectID string) ([]domain.Risk, error) {
	return r.query(ctx, `SELECT `+riskColumns+` FROM risks WHERE project_id = ? ORDER BY rowid`, projectID)
}

func (r *SQLiteRiskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM risks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting risk: %w", err)
	}
	return requireAffected(res, "risk", id)
}

func (r *SQLiteRiskRepo) query(ctx context.Context, query string, args ...any) ([]domain.Risk, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing risks: %w", err)
	}
	defer rows.Close()

	var risks []domain.Risk
	for rows.Next() {
		var risk domain.Risk
		var status, createdAtStr string
		if err := rows.Scan(
			&risk.ID, &risk.ProjectID, &risk.Category, &risk.Probability,
			&risk.ImpactCost, &risk.ImpactDays, &status, &createdAtStr,
		); err != nil {
			return nil, fmt.Errorf("scanning risk: %w", err)
		}
		risk.MitigationStatus = domain.MitigationStatus(status)
		if err := parseTimes(time.RFC3339, timeColumn{"created_at", createdAtStr, &risk.CreatedAt}); err != nil {
			return nil, err
		}
		risks = append(risks, risk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating risks: %w", err)
	}
	return risks, nil
}
