package identities

import (
	"context"
	"fmt"

	"github.com/iulianbarbu/solana-social-dapp/internal/dbx"
	"github.com/iulianbarbu/solana-social-dapp/internal/pubkey"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, p pubkey.Pubkey) (bool, error) {
	query := `
		INSERT INTO identities (pubkey)
		VALUES ($1)
		ON CONFLICT (pubkey) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query, p.String())
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n == 1, nil
}

func (r *PostgresRepository) Exists(ctx context.Context, p pubkey.Pubkey) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM identities WHERE pubkey = $1)`

	var ok bool
	if err := r.db.QueryRowContext(ctx, query, p.String()).Scan(&ok); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return ok, nil
}

func (r *PostgresRepository) AdvanceLogin(ctx context.Context, p pubkey.Pubkey, unix int64) (bool, error) {
	query := `
		UPDATE identities
		SET last_login = $2
		WHERE pubkey = $1 AND last_login < $2
	`
	res, err := r.db.ExecContext(ctx, query, p.String(), unix)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n == 1, nil
}
