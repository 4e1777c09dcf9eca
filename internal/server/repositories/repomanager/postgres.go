package repomanager

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/iulianbarbu/solana-social-dapp/internal/dbx"
	"github.com/iulianbarbu/solana-social-dapp/internal/server/migrations"
	"github.com/iulianbarbu/solana-social-dapp/internal/server/repositories/accounts"
	"github.com/iulianbarbu/solana-social-dapp/internal/server/repositories/identities"
	"github.com/iulianbarbu/solana-social-dapp/internal/server/repositories/refreshtokens"
)

// txAttempts bounds reruns of a transaction after a serialization failure
// or deadlock.
const txAttempts = 3

// PostgresRepositoryManager runs every unit of work in its own database
// transaction.
type PostgresRepositoryManager struct {
	db *sql.DB
}

// OpenPostgres opens a pgx-backed pool. It does not touch the network.
func OpenPostgres(dsn string) (*PostgresRepositoryManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	return NewPostgresRepositoryManager(db), nil
}

func NewPostgresRepositoryManager(db *sql.DB) *PostgresRepositoryManager {
	return &PostgresRepositoryManager{db: db}
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, m.db, ".")
}

func (m *PostgresRepositoryManager) InTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error {
	return dbx.WithTxRetry(ctx, m.db, nil, txAttempts, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, &repositories{
			identities:    identities.NewPostgresRepository(tx),
			accounts:      accounts.NewPostgresRepository(tx),
			refreshTokens: refreshtokens.NewPostgresRepository(tx),
		})
	})
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}
