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

// SQLiteResourceRepo implements ResourceRepo using a SQLite database.
type SQLiteResourceRepo struct {
	db db.DBTX
}

func NewSQLiteResourceRepo(conn db.DBTX) *SQLiteResourceRepo {
	return &SQLiteResourceRepo{db: conn}
}

const resourceColumns = `id, name, role, region, skill_tags, utilization_pct, created_at, updated_at`

func (r *SQLiteResourceRepo) Create(ctx context.Context, res *domain.Resource) error {
	tags, err := encodeTags(res.SkillTags)
	if err != nil {
		return err
	}
	query := `INSERT INTO resources (` + resourceColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		res.ID,
		res.Name,
		res.Role,
		res.Region,
		tags,
		res.UtilizationPct,
		formatTime(res.CreatedAt),
		formatTime(res.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting resource: %w", err)
	}
	return nil
}

func (r *SQLiteResourceRepo) GetByID(ctx context.Context, id string) (*domain.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE id = ?`
	res, err := scanResource(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("resource %s: %w", id, ErrNotFound)
	}
	return res, err
}

func (r *SQLiteResourceRepo) List(ctx context.Context, region string) ([]*domain.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources`
	var args []any
	if region != "" {
		query += ` WHERE region = ? COLLATE NOCASE`
		args = append(args, region)
	}
	query += ` ORDER BY name, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing resources: %w", err)
	}
	defer rows.Close()

	var out []*domain.Resource
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating resources: %w", err)
	}
	return out, nil
}

func (r *SQLiteResourceRepo) Update(ctx context.Context, res *domain.Resource) error {
	tags, err := encodeTags(res.SkillTags)
	if err != nil {
		return err
	}
	query := `UPDATE resources SET name = ?, role = ?, region = ?, skill_tags = ?,
		utilization_pct = ?, updated_at = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query,
		res.Name,
		res.Role,
		res.Region,
		tags,
		res.UtilizationPct,
		formatTime(res.UpdatedAt),
		res.ID,
	)
	if err != nil {
		return fmt.Errorf("updating resource: %w", err)
	}
	return requireAffected(result, "resource", res.ID)
}

func (r *SQLiteResourceRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM resources WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting resource: %w", err)
	}
	return requireAffected(result, "resource", id)
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	return encodeJSON(tags, "skill_tags")
}

func scanResource(row rowScanner) (*domain.Resource, error) {
	var res domain.Resource
	var tags, createdAtStr, updatedAtStr string
	err := row.Scan(
		&res.ID, &res.Name, &res.Role, &res.Region, &tags, &res.UtilizationPct,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning resource: %w", err)
	}
	if err := decodeJSON(tags, &res.SkillTags, "skill_tags"); err != nil {
		return nil, err
	}
	if err := parseTimes(time.RFC3339,
		timeColumn{"created_at", createdAtStr, &res.CreatedAt},
		timeColumn{"updated_at", updatedAtStr, &res.UpdatedAt},
	); err != nil {
		return nil, err
	}
	return &res, nil
}
