package accounts

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iulianbarbu/solana-social-dapp/internal/common"
	"github.com/iulianbarbu/solana-social-dapp/internal/pubkey"
	"github.com/iulianbarbu/solana-social-dapp/internal/server/models"
)

var (
	slotKey = pubkey.Pubkey{3}
	owner   = pubkey.Pubkey{1}
)

func newMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestPostgres_Create(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+accounts\s+\(key,\s*owner,\s*data\).*ON\s+CONFLICT\s+\(key\)\s+DO\s+NOTHING\s*$`).
		WithArgs(slotKey.String(), owner.String(), []byte{0, 0}).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := repo.Create(context.Background(), &models.Account{Key: slotKey, Owner: owner, Data: []byte{0, 0}})
	require.NoError(t, err)
	assert.True(t, created)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetAndLock(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()
	cols := []string{"key", "owner", "data", "updated_at"}

	mock.ExpectQuery(`(?s)SELECT\s+key,\s*owner,\s*data,\s*updated_at\s+FROM\s+accounts\s+WHERE\s+key\s*=\s*\$1$`).
		WithArgs(slotKey.String()).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(slotKey.String(), owner.String(), []byte{1}, now))

	acc, err := repo.Get(context.Background(), slotKey)
	require.NoError(t, err)
	assert.Equal(t, slotKey, acc.Key)
	assert.Equal(t, owner, acc.Owner)
	assert.Equal(t, []byte{1}, acc.Data)

	mock.ExpectQuery(`(?s)WHERE\s+key\s*=\s*\$1\s+FOR\s+UPDATE$`).
		WithArgs(slotKey.String()).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(slotKey.String(), owner.String(), []byte{2}, now))

	acc, err = repo.GetForUpdate(context.Background(), slotKey)
	require.NoError(t, err)
	assert.Equal(t, []byte{2}, acc.Data)

	mock.ExpectQuery(`FROM\s+accounts`).WithArgs(slotKey.String()).WillReturnError(sql.ErrNoRows)
	_, err = repo.Get(context.Background(), slotKey)
	require.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_UpdateData(t *testing.T) {
	repo, mock := newMock(t)
	q := `(?s)^UPDATE\s+accounts\s+SET\s+data\s*=\s*\$1,\s*updated_at\s*=\s*now\(\)\s+WHERE\s+key\s*=\s*\$2\s*$`

	mock.ExpectExec(q).WithArgs([]byte{9}, slotKey.String()).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateData(context.Background(), slotKey, []byte{9}))

	mock.ExpectExec(q).WithArgs([]byte{9}, slotKey.String()).WillReturnResult(sqlmock.NewResult(0, 0))
	require.ErrorIs(t, repo.UpdateData(context.Background(), slotKey, []byte{9}), common.ErrorNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMemory_IsolatesCallers(t *testing.T) {
	ctx := context.Background()
	table := NewMemoryTable()
	repo := NewMemoryRepository(table)

	data := []byte{0, 0, 0}
	created, err := repo.Create(ctx, &models.Account{Key: slotKey, Owner: owner, Data: data})
	require.NoError(t, err)
	assert.True(t, created)

	data[0] = 9
	acc, err := repo.Get(ctx, slotKey)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0}, acc.Data)

	acc.Data[1] = 9
	snapshot := table.Clone()
	require.NoError(t, repo.UpdateData(ctx, slotKey, []byte{1, 1, 1}))

	acc, err = repo.GetForUpdate(ctx, slotKey)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 1, 1}, acc.Data)

	old, err := NewMemoryRepository(snapshot).Get(ctx, slotKey)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0}, old.Data)

	created, err = repo.Create(ctx, &models.Account{Key: slotKey, Owner: owner})
	require.NoError(t, err)
	assert.False(t, created)

	require.ErrorIs(t, repo.UpdateData(ctx, pubkey.Pubkey{42}, nil), common.ErrorNotFound)
}
