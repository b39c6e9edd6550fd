package migrations

import (
	"github.com/modshield/modgate/pkg/infra/database"
	"gorm.io/gorm"
)

// Initial schema. Tables: decisions, appeals, moderation_queue, audit_logs.
func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20250601_initial_schema",
		Name: "Create core tables: decisions, appeals, moderation_queue, audit_logs",

		Up: func(db *gorm.DB) error {
			if err := db.Exec(`
				CREATE EXTENSION IF NOT EXISTS pgcrypto;
			`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS decisions (
					id                 UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					content_id         UUID NOT NULL,
					tenant_id          TEXT NOT NULL DEFAULT '',
					pass               TEXT NOT NULL DEFAULT 'initial',
					recommendation     TEXT NOT NULL,
					risk_score         DOUBLE PRECISION NOT NULL,
					confidence         DOUBLE PRECISION NOT NULL,
					severity           TEXT NOT NULL,
					flagged_categories JSONB,
					signals            JSONB,
					analysis_failed    BOOLEAN NOT NULL DEFAULT FALSE,
					reasoning          TEXT,
					created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`).Error; err != nil {
				return err
			}
			if err := db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_decisions_content_id ON decisions (content_id);
				CREATE INDEX IF NOT EXISTS idx_decisions_tenant_id ON decisions (tenant_id);
				CREATE INDEX IF NOT EXISTS idx_decisions_created_at ON decisions (created_at DESC);
			`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS appeals (
					id                   UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					content_id           UUID NOT NULL,
					original_decision_id UUID NOT NULL REFERENCES decisions(id),
					tenant_id            TEXT NOT NULL DEFAULT '',
					user_reason          TEXT,
					status               TEXT NOT NULL DEFAULT 'pending',
					outcome              TEXT,
					outcome_confidence   DOUBLE PRECISION,
					outcome_reasoning    TEXT,
					review_decision_id   UUID,
					created_at           TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at           TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					resolved_at          TIMESTAMPTZ
				);
			`).Error; err != nil {
				return err
			}
			if err := db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_appeals_content_id ON appeals (content_id);
				CREATE INDEX IF NOT EXISTS idx_appeals_status ON appeals (status);
			`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS moderation_queue (
					id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					content_id    UUID NOT NULL,
					decision_id   UUID NOT NULL REFERENCES decisions(id),
					tenant_id     TEXT NOT NULL DEFAULT '',
					reason        TEXT,
					priority      INTEGER NOT NULL DEFAULT 0,
					confidence    DOUBLE PRECISION NOT NULL DEFAULT 0,
					status        TEXT NOT NULL DEFAULT 'pending',
					assigned_to   TEXT,
					notes         TEXT,
					created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					reviewed_at   TIMESTAMPTZ
				);
			`).Error; err != nil {
				return err
			}
			if err := db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_moderation_queue_status_priority
					ON moderation_queue (status, priority DESC, created_at ASC);
			`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS audit_logs (
					id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					actor_id    TEXT NOT NULL DEFAULT '',
					action      TEXT NOT NULL,
					target_type TEXT NOT NULL DEFAULT '',
					target_id   TEXT NOT NULL DEFAULT '',
					metadata    JSONB,
					created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`).Error; err != nil {
				return err
			}
			return db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_audit_logs_action ON audit_logs (action);
				CREATE INDEX IF NOT EXISTS idx_audit_logs_created_at ON audit_logs (created_at DESC);
			`).Error
		},

		Down: func(db *gorm.DB) error {
			return db.Exec(`
				DROP TABLE IF EXISTS audit_logs;
				DROP TABLE IF EXISTS moderation_queue;
				DROP TABLE IF EXISTS appeals;
				DROP TABLE IF EXISTS decisions;
			`).Error
		},
	})
}
