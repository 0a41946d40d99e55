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

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

// projectSelect joins the owning client so snapshots carry client traits.
const projectSelect = `SELECT p.id, p.client_id, p.name, p.region, p.sector, p.start_date, p.end_date,
		p.baseline_budget, p.current_forecast, p.actual_spend,
		p.baseline_schedule_days, p.forecast_schedule_days, p.percent_complete,
		p.safety_incidents, p.status, p.created_at, p.updated_at,
		c.id, c.name, c.satisfaction_score, c.pipeline_value, c.strategic_priority
	FROM projects p
	LEFT JOIN clients c ON c.id = p.client_id`

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (id, client_id, name, region, sector, start_date, end_date,
		baseline_budget, current_forecast, actual_spend, baseline_schedule_days,
		forecast_schedule_days, percent_complete, safety_incidents, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		nullableString(p.ClientID),
		p.Name,
		p.Region,
		p.Sector,
		p.StartDate.Format(dateLayout),
		p.EndDate.Format(dateLayout),
		p.BaselineBudget,
		p.CurrentForecast,
		p.ActualSpend,
		p.BaselineScheduleDays,
		p.ForecastScheduleDays,
		p.PercentComplete,
		p.SafetyIncidents,
		string(projectStatusOrDefault(p.Status)),
		formatTime(p.CreatedAt),
		formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	p, err := scanProject(r.db.QueryRowContext(ctx, projectSelect+` WHERE p.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return p, err
}

func (r *SQLiteProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, projectSelect+` ORDER BY p.created_at, p.rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET client_id = ?, name = ?, region = ?, sector = ?,
		start_date = ?, end_date = ?, baseline_budget = ?, current_forecast = ?, actual_spend = ?,
		baseline_schedule_days = ?, forecast_schedule_days = ?, percent_complete = ?,
		safety_incidents = ?, status = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		nullableString(p.ClientID),
		p.Name,
		p.Region,
		p.Sector,
		p.StartDate.Format(dateLayout),
		p.EndDate.Format(dateLayout),
		p.BaselineBudget,
		p.CurrentForecast,
		p.ActualSpend,
		p.BaselineScheduleDays,
		p.ForecastScheduleDays,
		p.PercentComplete,
		p.SafetyIncidents,
		string(projectStatusOrDefault(p.Status)),
		formatTime(p.UpdatedAt),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return requireAffected(res, "project", p.ID)
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

func projectStatusOrDefault(s domain.ProjectStatus) domain.ProjectStatus {
	if s == "" {
		return domain.ProjectActive
	}
	return s
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	var clientID sql.NullString
	var startDateStr, endDateStr, statusStr, createdAtStr, updatedAtStr string
	var cID, cName sql.NullString
	var cSatisfaction, cPipeline sql.NullFloat64
	var cPriority sql.NullInt64

	err := row.Scan(
		&p.ID, &clientID, &p.Name, &p.Region, &p.Sector, &startDateStr, &endDateStr,
		&p.BaselineBudget, &p.CurrentForecast, &p.ActualSpend,
		&p.BaselineScheduleDays, &p.ForecastScheduleDays, &p.PercentComplete,
		&p.SafetyIncidents, &statusStr, &createdAtStr, &updatedAtStr,
		&cID, &cName, &cSatisfaction, &cPipeline, &cPriority,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	p.ClientID = clientID.String
	p.Status = domain.ProjectStatus(statusStr)
	if err := parseTimes(dateLayout,
		timeColumn{"start_date", startDateStr, &p.StartDate},
		timeColumn{"end_date", endDateStr, &p.EndDate},
	); err != nil {
		return nil, err
	}
	if err := parseTimes(time.RFC3339,
		timeColumn{"created_at", createdAtStr, &p.CreatedAt},
		timeColumn{"updated_at", updatedAtStr, &p.UpdatedAt},
	); err != nil {
		return nil, err
	}

	if cID.Valid {
		p.Client = &domain.Client{
			ID:                cID.String,
			Name:              cName.String,
			SatisfactionScore: cSatisfaction.Float64,
			PipelineValue:     cPipeline.Float64,
			StrategicPriority: int(cPriority.Int64),
		}
	}
	return &p, nil
}
