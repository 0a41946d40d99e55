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

// SQLiteTemplateRepo implements TemplateRepo using a SQLite database.
type SQLiteTemplateRepo struct {
	db db.DBTX
}

func NewSQLiteTemplateRepo(conn db.DBTX) *SQLiteTemplateRepo {
	return &SQLiteTemplateRepo{db: conn}
}

const templateColumns = `id, name, description, checklist, adoption_rate_pct, created_at`

func (r *SQLiteTemplateRepo) Create(ctx context.Context, t *domain.ProcessTemplate) error {
	checklist := t.Checklist
	if checklist == nil {
		checklist = []string{}
	}
	encoded, err := encodeJSON(checklist, "checklist")
	if err != nil {
		return err
	}
	query := `INSERT INTO process_templates (` + templateColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		t.ID,
		t.Name,
		t.Description,
		encoded,
		t.AdoptionRatePct,
		formatTime(t.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting process template: %w", err)
	}
	return nil
}

func (r *SQLiteTemplateRepo) GetByName(ctx context.Context, name string) (*domain.ProcessTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM process_templates WHERE name = ?`
	t, err := scanTemplate(r.db.QueryRowContext(ctx, query, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("process template %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *SQLiteTemplateRepo) List(ctx context.Context) ([]domain.ProcessTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM process_templates ORDER BY created_at, rowid`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing process templates: %w", err)
	}
	defer rows.Close()

	var templates []domain.ProcessTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating process templates: %w", err)
	}
	return templates, nil
}

func scanTemplate(row rowScanner) (domain.ProcessTemplate, error) {
	var t domain.ProcessTemplate
	var checklist, createdAtStr string
	if err := row.Scan(&t.ID, &t.Name, &t.Description, &checklist, &t.AdoptionRatePct, &createdAtStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return t, err
		}
		return t, fmt.Errorf("scanning process template: %w", err)
	}
	if err := decodeJSON(checklist, &t.Checklist, "checklist"); err != nil {
		return t, err
	}
	if err := parseTimes(time.RFC3339, timeColumn{"created_at", createdAtStr, &t.CreatedAt}); err != nil {
		return t, err
	}
	return t, nil
}
