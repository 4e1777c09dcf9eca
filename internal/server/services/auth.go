// Package services contains server-side business logic. This file implements
// AuthService, which registers identities, logs them in with a signed
// challenge and issues or rotates JWT access tokens plus server-stored
// refresh tokens.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iulianbarbu/solana-social-dapp/internal/common"
	"github.com/iulianbarbu/solana-social-dapp/internal/pubkey"
	"github.com/iulianbarbu/solana-social-dapp/internal/rpc"
	"github.com/iulianbarbu/solana-social-dapp/internal/server/auth"
	"github.com/iulianbarbu/solana-social-dapp/internal/server/config"
	"github.com/iulianbarbu/solana-social-dapp/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService provides authentication-related operations.
type AuthService struct {
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	loginSkew                    time.Duration
	now                          func() time.Time
}

// NewAuthService constructs an AuthService using repositories and server config.
func NewAuthService(m repomanager.RepositoryManager, cfg *config.Config) *AuthService {
	return &AuthService{
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		loginSkew:                    cfg.LoginSkew,
		now:                          time.Now,
	}
}

// RegisterIdentity stores p and reports whether it was new.
func (s *AuthService) RegisterIdentity(ctx context.Context, p pubkey.Pubkey) (bool, error) {
	var created bool
	err := s.repomanager.InTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		var err error
		created, err = r.Identities().Create(ctx, p)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("error creating identity: %w", err)
	}
	return created, nil
}

// IdentityExists reports whether p has been registered.
func (s *AuthService) IdentityExists(ctx context.Context, p pubkey.Pubkey) (bool, error) {
	var ok bool
	err := s.repomanager.InTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		var err error
		ok, err = r.Identities().Exists(ctx, p)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("error looking up identity: %w", err)
	}
	return ok, nil
}

// Login checks that sig signs rpc.LoginMessage(p, unix), that unix is
// within the allowed skew of the node clock and that p is registered. unix
// must also be newer than p's last accepted login, so a captured signature
// cannot be replayed. On success it returns a new TokenPair.
func (s *AuthService) Login(ctx context.Context, p pubkey.Pubkey, unix int64, sig []byte) (*TokenPair, error) {
	drift := s.now().Sub(time.Unix(unix, 0))
	if drift < 0 {
		drift = -drift
	}
	if drift > s.loginSkew {
		return nil, common.ErrStaleLogin
	}
	if !pubkey.Verify(p, rpc.LoginMessage(p, unix), sig) {
		return nil, common.ErrInvalidSignature
	}

	var pair *TokenPair
	err := s.repomanager.InTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		ok, err := r.Identities().Exists(ctx, p)
		if err != nil {
			return common.ErrorInternal
		}
		if !ok {
			return common.ErrorUnauthorized
		}
		advanced, err := r.Identities().AdvanceLogin(ctx, p, unix)
		if err != nil {
			return common.ErrorInternal
		}
		if !advanced {
			return common.ErrLoginReplayed
		}
		pair, err = s.generateTokenPair(ctx, r, p)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

// RefreshToken validates a refresh token, rotates it transactionally, and
// returns a fresh TokenPair. Expired tokens yield ErrRefreshTokenExpired.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	var pair *TokenPair
	err := s.repomanager.InTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		repo := r.RefreshTokens()

		token, err := repo.Find(ctx, refreshToken)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrInvalidToken
			}
			return fmt.Errorf("error searching refresh token: %w", err)
		}
		if token.Expires.Before(s.now()) {
			return common.ErrRefreshTokenExpired
		}

		if err := repo.Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		pair, err = s.generateTokenPair(ctx, r, token.Owner)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

// --- helpers below ---

func (s *AuthService) generateAccessToken(p pubkey.Pubkey) (string, error) {
	return auth.GenerateToken(p, s.jwtSecret, s.accessTokenValidityDuration)
}

func (s *AuthService) generateRefreshToken() (string, error) {
	return common.MakeRandHexString(32)
}

func (s *AuthService) generateTokenPair(ctx context.Context, r repomanager.Repositories, p pubkey.Pubkey) (*TokenPair, error) {
	access, err := s.generateAccessToken(p)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := s.generateRefreshToken()
	if err != nil {
		return nil, common.ErrorInternal
	}
	if err := r.RefreshTokens().Create(ctx, p, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
