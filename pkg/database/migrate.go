package database

import (
	"context"

	"go-portfolio-backend/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ChangeChannel is the LISTEN/NOTIFY channel carrying the collection name
// of every document write.
const ChangeChannel = "document_changes"

// Migration is one idempotent schema step
type Migration struct {
	Name string
	SQL  string
}

var migrations = []Migration{
	{
		Name: "create_documents",
		SQL: `
			CREATE TABLE IF NOT EXISTS documents (
				collection TEXT        NOT NULL,
				id         TEXT        NOT NULL,
				data       JSONB       NOT NULL DEFAULT '{}'::jsonb,
				seq        BIGINT      GENERATED ALWAYS AS IDENTITY,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				PRIMARY KEY (collection, id)
			);`,
	},
	{
		Name: "index_documents_collection_seq",
		SQL:  `CREATE INDEX IF NOT EXISTS documents_collection_seq_idx ON documents (collection, seq);`,
	},
}

// RunMigrations creates the document schema on startup
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	logger.Log.Info("Starting database migrations")

	for _, m := range migrations {
		if _, err := pool.Exec(ctx, m.SQL); err != nil {
			logger.Log.Error("Migration failed", "name", m.Name, "error", err)
			return err
		}
		logger.Log.Debug("Migration completed", "name", m.Name)
	}

	logger.Log.Info("All migrations completed successfully")
	return nil
}
