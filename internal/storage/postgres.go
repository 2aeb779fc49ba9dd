package storage

import (
	"context"
	"database/sql"
	"errors"

	"savora-storefront/internal/logger"

	"go.uber.org/zap"
)

type postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) Store {
	return &postgres{db: db}
}

// EnsureSchema creates the snapshot table if it does not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const q = `
		CREATE TABLE IF NOT EXISTS snapshots (
			shopper_key TEXT        NOT NULL,
			namespace   TEXT        NOT NULL,
			body        JSONB       NOT NULL,
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (shopper_key, namespace)
		)
	`
	_, err := db.ExecContext(ctx, q)
	return err
}

func (p *postgres) Get(
	ctx context.Context,
	shopper string,
	ns Namespace,
) ([]byte, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Snapshot"),
		zap.String("method", "Get"),
		zap.String("namespace", string(ns)),
	)

	const q = `
		SELECT body
		FROM snapshots
		WHERE shopper_key = $1 AND namespace = $2
		LIMIT 1
	`

	var body []byte
	err := p.db.QueryRowContext(ctx, q, shopper, ns).Scan(&body)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}

	return body, nil
}

func (p *postgres) Put(
	ctx context.Context,
	shopper string,
	ns Namespace,
	body []byte,
) error {

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Snapshot"),
		zap.String("method", "Put"),
		zap.String("namespace", string(ns)),
	)

	const q = `
		INSERT INTO snapshots (shopper_key, namespace, body, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (shopper_key, namespace)
		DO UPDATE SET body = EXCLUDED.body, updated_at = now()
	`

	if _, err := p.db.ExecContext(ctx, q, shopper, ns, body); err != nil {
		log.Error("upsert failed", zap.Error(err))
		return err
	}

	return nil
}

func (p *postgres) Delete(
	ctx context.Context,
	shopper string,
	ns Namespace,
) error {

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Snapshot"),
		zap.String("method", "Delete"),
		zap.String("namespace", string(ns)),
	)

	const q = `
		DELETE FROM snapshots
		WHERE shopper_key = $1 AND namespace = $2
	`

	if _, err := p.db.ExecContext(ctx, q, shopper, ns); err != nil {
		log.Error("delete failed", zap.Error(err))
		return err
	}

	return nil
}
