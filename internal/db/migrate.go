package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillDecisionRuleKeys(db); err != nil {
		return fmt.Errorf("backfilling decision rule keys: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		id                 TEXT PRIMARY KEY,
		name               TEXT NOT NULL,
		satisfaction_score REAL NOT NULL DEFAULT 0,
		pipeline_value     REAL NOT NULL DEFAULT 0,
		strategic_priority INTEGER NOT NULL DEFAULT 1,
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id                     TEXT PRIMARY KEY,
		client_id              TEXT REFERENCES clients(id) ON DELETE SET NULL,
		name                   TEXT NOT NULL,
		region                 TEXT NOT NULL DEFAULT '',
		sector                 TEXT NOT NULL DEFAULT '',
		start_date             TEXT NOT NULL,
		end_date               TEXT NOT NULL,
		baseline_budget        REAL NOT NULL DEFAULT 0,
		current_forecast       REAL NOT NULL DEFAULT 0,
		actual_spend           REAL NOT NULL DEFAULT 0,
		baseline_schedule_days INTEGER NOT NULL DEFAULT 0,
		forecast_schedule_days INTEGER NOT NULL DEFAULT 0,
		percent_complete       REAL NOT NULL DEFAULT 0,
		safety_incidents       INTEGER NOT NULL DEFAULT 0,
		status                 TEXT NOT NULL DEFAULT 'active'
		                       CHECK(status IN ('active','on_hold','completed','closed')),
		created_at             TEXT NOT NULL,
		updated_at             TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_projects_client ON projects(client_id)`,

	`CREATE TABLE IF NOT EXISTS risks (
		id                TEXT PRIMARY KEY,
		project_id        TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		category          TEXT NOT NULL DEFAULT '',
		probability       REAL NOT NULL DEFAULT 0
		                  CHECK(probability >= 0 AND probability <= 1),
		impact_cost       REAL NOT NULL DEFAULT 0,
		impact_days       REAL NOT NULL DEFAULT 0,
		mitigation_status TEXT NOT NULL DEFAULT 'open'
		                  CHECK(mitigation_status IN ('open','in_progress','closed')),
		created_at        TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_risks_project ON risks(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_risks_category ON risks(category)`,

	`CREATE TABLE IF NOT EXISTS process_templates (
		id                TEXT PRIMARY KEY,
		name              TEXT NOT NULL UNIQUE,
		description       TEXT NOT NULL DEFAULT '',
		checklist         TEXT NOT NULL DEFAULT '[]',
		adoption_rate_pct REAL NOT NULL DEFAULT 0,
		created_at        TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS rule_feedback (
		rule_key     TEXT PRIMARY KEY,
		success_rate REAL NOT NULL DEFAULT 0.5
		             CHECK(success_rate >= 0.1 AND success_rate <= 0.9),
		updated_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS decisions (
		id                  TEXT PRIMARY KEY,
		decision_type       TEXT NOT NULL,
		rationale           TEXT NOT NULL DEFAULT '',
		expected_impact     TEXT NOT NULL DEFAULT '{}',
		status              TEXT NOT NULL DEFAULT 'proposed'
		                    CHECK(status IN ('proposed','executed','rejected')),
		owner               TEXT NOT NULL DEFAULT '',
		related_project_ids TEXT NOT NULL DEFAULT '[]',
		created_at          TEXT NOT NULL,
		updated_at          TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_decisions_status ON decisions(status)`,

	`CREATE TABLE IF NOT EXISTS outcomes (
		id          TEXT PRIMARY KEY,
		decision_id TEXT NOT NULL REFERENCES decisions(id) ON DELETE CASCADE,
		measured_at TEXT NOT NULL,
		kpi_before  TEXT NOT NULL DEFAULT '{}',
		kpi_after   TEXT NOT NULL DEFAULT '{}',
		notes       TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE INDEX IF NOT EXISTS idx_outcomes_decision ON outcomes(decision_id)`,

	// Feedback is credited per rule rather than per decision type.
	`ALTER TABLE decisions ADD COLUMN rule_key TEXT NOT NULL DEFAULT ''`,

	`CREATE TABLE IF NOT EXISTS resources (
		id              TEXT PRIMARY KEY,
		name            TEXT NOT NULL,
		role            TEXT NOT NULL,
		region          TEXT NOT NULL,
		skill_tags      TEXT NOT NULL DEFAULT '[]',
		utilization_pct REAL NOT NULL DEFAULT 0
		                CHECK(utilization_pct >= 0 AND utilization_pct <= 100),
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_resources_region ON resources(region)`,

	`CREATE TABLE IF NOT EXISTS gap_inputs (
		id          TEXT PRIMARY KEY,
		category    TEXT NOT NULL,
		question    TEXT NOT NULL,
		answer      TEXT NOT NULL DEFAULT '',
		confidence  REAL NOT NULL DEFAULT 0
		            CHECK(confidence >= 0 AND confidence <= 1),
		attachments TEXT NOT NULL DEFAULT '{}',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,
}

// migrateBackfillDecisionRuleKeys assigns rule keys to decisions recorded
// before the rule_key column existed, using the rule each built-in decision
// type comes from. Unknown types keep an empty key. Idempotent.
func migrateBackfillDecisionRuleKeys(db *sql.DB) error {
	ctx := context.Background()

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM decisions WHERE rule_key = ''`).Scan(&count); err != nil {
		return fmt.Errorf("checking decisions rule_key: %w", err)
	}
	if count == 0 {
		return nil
	}

	query := `UPDATE decisions SET rule_key = CASE decision_type
			WHEN 'escalate'            THEN 'schedule_slip_priority'
			WHEN 'risk_mitigation'     THEN 'cost_overrun'
			WHEN 'standardize_process' THEN 'standardize_schedule_controls'
			WHEN 'staffing_training'   THEN 'staff_training_gap'
			ELSE '' END
		WHERE rule_key = ''`
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("updating decision rule keys: %w", err)
	}
	return nil
}
