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

// SQLiteGapRepo implements GapRepo using a SQLite database.
type SQLiteGapRepo struct {
	db db.DBTX
}

func NewSQLiteGapRepo(conn db.DBTX) *SQLiteGapRepo {
	return &SQLiteGapRepo{db: conn}
}

const gapColumns = `id, category, question, answer, confidence, attachments, created_at, updated_at`

func (r *SQLiteGapRepo) Create(ctx context.Context, g *domain.Gap) error {
	attachments, err := encodeAttachments(g.Attachments)
	if err != nil {
		return err
	}
	query := `INSERT INTO gap_inputs (` + gapColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		g.ID,
		g.Category,
		g.Question,
		g.Answer,
		g.Confidence,
		attachments,
		formatTime(g.CreatedAt),
		formatTime(g.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting gap: %w", err)
	}
	return nil
}

func (r *SQLiteGapRepo) GetByID(ctx context.Context, id string) (*domain.Gap, error) {
	query := `SELECT ` + gapColumns + ` FROM gap_inputs WHERE id = ?`
	g, err := scanGap(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("gap %s: %w", id, ErrNotFound)
	}
	return g, err
}

func (r *SQLiteGapRepo) List(ctx context.Context) ([]*domain.Gap, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+gapColumns+` FROM gap_inputs ORDER BY created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing gaps: %w", err)
	}
	defer rows.Close()

	var out []*domain.Gap
	for rows.Next() {
		g, err := scanGap(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating gaps: %w", err)
	}
	return out, nil
}

func (r *SQLiteGapRepo) Update(ctx context.Context, g *domain.Gap) error {
	attachments, err := encodeAttachments(g.Attachments)
	if err != nil {
		return err
	}
	query := `UPDATE gap_inputs SET category = ?, question = ?, answer = ?, confidence = ?,
		attachments = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		g.Category,
		g.Question,
		g.Answer,
		g.Confidence,
		attachments,
		formatTime(g.UpdatedAt),
		g.ID,
	)
	if err != nil {
		return fmt.Errorf("updating gap: %w", err)
	}
	return requireAffected(res, "gap", g.ID)
}

func (r *SQLiteGapRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM gap_inputs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting gap: %w", err)
	}
	return requireAffected(res, "gap", id)
}

func encodeAttachments(m map[string]string) (string, error) {
	if m == nil {
		m = map[string]string{}
	}
	return encodeJSON(m, "attachments")
}

func scanGap(row rowScanner) (*domain.Gap, error) {
	var g domain.Gap
	var attachments, createdAtStr, updatedAtStr string
	err := row.Scan(
		&g.ID, &g.Category, &g.Question, &g.Answer, &g.Confidence, &attachments,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning gap: %w", err)
	}
	if err := decodeJSON(attachments, &g.Attachments, "attachments"); err != nil {
		return nil, err
	}
	if err := parseTimes(time.RFC3339,
		timeColumn{"created_at", createdAtStr, &g.CreatedAt},
		timeColumn{"updated_at", updatedAtStr, &g.UpdatedAt},
	); err != nil {
		return nil, err
	}
	return &g, nil
}
