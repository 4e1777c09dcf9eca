package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iulianbarbu/solana-social-dapp/internal/common"
	"github.com/iulianbarbu/solana-social-dapp/internal/dbx"
	"github.com/iulianbarbu/solana-social-dapp/internal/pubkey"
	"github.com/iulianbarbu/solana-social-dapp/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, acc *models.Account) (bool, error) {
	query := `
		INSERT INTO accounts (key, owner, data)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query, acc.Key.String(), acc.Owner.String(), acc.Data)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n == 1, nil
}

const selectAccount = `
		SELECT key, owner, data, updated_at
		FROM accounts
		WHERE key = $1`

func (r *PostgresRepository) Get(ctx context.Context, key pubkey.Pubkey) (*models.Account, error) {
	return r.get(ctx, selectAccount, key)
}

func (r *PostgresRepository) GetForUpdate(ctx context.Context, key pubkey.Pubkey) (*models.Account, error) {
	return r.get(ctx, selectAccount+"\n\t\tFOR UPDATE", key)
}

func (r *PostgresRepository) get(ctx context.Context, query string, key pubkey.Pubkey) (*models.Account, error) {
	var k, owner string
	acc := &models.Account{}
	err := r.db.QueryRowContext(ctx, query, key.String()).Scan(&k, &owner, &acc.Data, &acc.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if acc.Key, err = pubkey.Parse(k); err != nil {
		return nil, fmt.Errorf("account key: %w", err)
	}
	if acc.Owner, err = pubkey.Parse(owner); err != nil {
		return nil, fmt.Errorf("account owner: %w", err)
	}
	return acc, nil
}

func (r *PostgresRepository) UpdateData(ctx context.Context, key pubkey.Pubkey, data []byte) error {
	query := `
		UPDATE accounts
		SET data = $1, updated_at = now()
		WHERE key = $2
	`
	res, err := r.db.ExecContext(ctx, query, data, key.String())
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
