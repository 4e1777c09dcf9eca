package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iulianbarbu/solana-social-dapp/internal/pubkey"
	"github.com/iulianbarbu/solana-social-dapp/internal/server/config"
	"github.com/iulianbarbu/solana-social-dapp/internal/server/repositories/repomanager"
)

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
		LoginSkew:                    30 * time.Second,
		ProgramID:                    config.DefaultProgramID,
		OpcodeSet:                    "current",
	}
}

func newKeypair(t *testing.T) *pubkey.Keypair {
	t.Helper()
	kp, err := pubkey.GenerateKeypair()
	require.NoError(t, err)
	return kp
}

func register(t *testing.T, m repomanager.RepositoryManager, p pubkey.Pubkey) {
	t.Helper()
	require.NoError(t, m.InTx(context.Background(), func(ctx context.Context, r repomanager.Repositories) error {
		_, err := r.Identities().Create(ctx, p)
		return err
	}))
}
