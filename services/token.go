package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"mernspace-auth/config"
	"mernspace-auth/models"
	"mernspace-auth/repository"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

var (
	// ErrSigningKeyUnavailable is a server configuration fault, never an auth failure.
	ErrSigningKeyUnavailable = errors.New("signing key unavailable")
	ErrInvalidToken          = errors.New("invalid token")
	ErrRefreshTokenRevoked   = errors.New("refresh token revoked")
)

const (
	roleClaim = "role"
	idClaim   = "id"
)

type AccessTokenPayload struct {
	Subject string
	Role    models.Role
}

type RefreshTokenPayload struct {
	Subject string
	Role    models.Role
	ID      uint
}

func (p RefreshTokenPayload) Access() AccessTokenPayload {
	return AccessTokenPayload{Subject: p.Subject, Role: p.Role}
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type TokenService struct {
	cfg    *config.AppConfig
	tokens repository.RefreshTokenRepository
	tx     repository.TransactionManager
}

func NewTokenService(cfg *config.AppConfig, tokens repository.RefreshTokenRepository, tx repository.TransactionManager) *TokenService {
	return &TokenService{cfg: cfg, tokens: tokens, tx: tx}
}

func (s *TokenService) GenerateAccessToken(p AccessTokenPayload) (string, error) {
	if s.cfg.Keys.Private == nil {
		return "", ErrSigningKeyUnavailable
	}
	now := time.Now()
	token, err := jwt.NewBuilder().
		Issuer(s.cfg.Issuer).
		Subject(p.Subject).
		IssuedAt(now).
		Expiration(now.Add(s.cfg.AccessTokenTTL)).
		Claim(roleClaim, string(p.Role)).
		Build()
	if err != nil {
		return "", fmt.Errorf("failed to build access token: %w", err)
	}
	raw, err := jwt.Sign(token, jwt.WithKey(jwa.RS256(), s.cfg.Keys.Private))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return string(raw), nil
}

// GenerateRefreshToken signs p with the shared secret. The jti claim is the
// persisted RefreshToken id, which is what revocation keys on.
func (s *TokenService) GenerateRefreshToken(p RefreshTokenPayload) (string, error) {
	if s.cfg.RefreshTokenSecret == "" {
		return "", ErrSigningKeyUnavailable
	}
	id := strconv.FormatUint(uint64(p.ID), 10)
	now := time.Now()
	token, err := jwt.NewBuilder().
		Issuer(s.cfg.Issuer).
		Subject(p.Subject).
		JwtID(id).
		IssuedAt(now).
		Expiration(now.Add(s.cfg.RefreshTokenTTL)).
		Claim(roleClaim, string(p.Role)).
		Claim(idClaim, id).
		Build()
	if err != nil {
		return "", fmt.Errorf("failed to build refresh token: %w", err)
	}
	raw, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), []byte(s.cfg.RefreshTokenSecret)))
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return string(raw), nil
}

func (s *TokenService) PersistRefreshToken(ctx context.Context, user *models.User) (*models.RefreshToken, error) {
	return persistRefreshToken(ctx, s.tokens, user.ID, s.cfg.RefreshTokenTTL)
}

func persistRefreshToken(ctx context.Context, repo repository.RefreshTokenRepository, userID uint, ttl time.Duration) (*models.RefreshToken, error) {
	record := &models.RefreshToken{
		UserID:    userID,
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}
	return record, nil
}

// DeleteRefreshToken removes the record; deleting an unknown id succeeds.
func (s *TokenService) DeleteRefreshToken(ctx context.Context, id uint) error {
	if _, err := s.tokens.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete refresh token %d: %w", id, err)
	}
	return nil
}

// IssueTokenPair signs an access token and a refresh token backed by a new record.
func (s *TokenService) IssueTokenPair(ctx context.Context, user *models.User) (TokenPair, error) {
	subject := strconv.FormatUint(uint64(user.ID), 10)
	access, err := s.GenerateAccessToken(AccessTokenPayload{Subject: subject, Role: user.Role})
	if err != nil {
		return TokenPair{}, err
	}
	record, err := s.PersistRefreshToken(ctx, user)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.GenerateRefreshToken(RefreshTokenPayload{Subject: subject, Role: user.Role, ID: record.ID})
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// RotateRefreshToken replaces the record oldID with a new one and returns the
// new signed refresh token. Create, sign and delete run in one transaction;
// when oldID is already gone (a concurrent rotation won) nothing is committed
// and ErrRefreshTokenRevoked is returned.
func (s *TokenService) RotateRefreshToken(ctx context.Context, oldID uint, userID uint, p AccessTokenPayload) (string, error) {
	var signed string
	err := s.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		record, err := persistRefreshToken(ctx, r.RefreshTokens(), userID, s.cfg.RefreshTokenTTL)
		if err != nil {
			return err
		}
		raw, err := s.GenerateRefreshToken(RefreshTokenPayload{Subject: p.Subject, Role: p.Role, ID: record.ID})
		if err != nil {
			return err
		}
		removed, err := r.RefreshTokens().DeleteByID(ctx, oldID)
		if err != nil {
			return fmt.Errorf("failed to delete refresh token %d: %w", oldID, err)
		}
		if !removed {
			return ErrRefreshTokenRevoked
		}
		signed = raw
		return nil
	})
	if err != nil {
		return "", err
	}
	return signed, nil
}

// ParseAccessToken checks signature, issuer and expiry of an RS256 access token.
func (s *TokenService) ParseAccessToken(raw string) (AccessTokenPayload, error) {
	if s.cfg.Keys.Public == nil {
		return AccessTokenPayload{}, ErrSigningKeyUnavailable
	}
	token, err := jwt.Parse([]byte(raw),
		jwt.WithKey(jwa.RS256(), s.cfg.Keys.Public),
		jwt.WithValidate(true),
		jwt.WithIssuer(s.cfg.Issuer),
	)
	if err != nil {
		return AccessTokenPayload{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	subject, role, err := identityOf(token)
	if err != nil {
		return AccessTokenPayload{}, err
	}
	return AccessTokenPayload{Subject: subject, Role: role}, nil
}

// ParseRefreshToken checks signature, issuer and expiry of an HS256 refresh
// token. It does not consult the store; see VerifyRefreshToken.
func (s *TokenService) ParseRefreshToken(raw string) (RefreshTokenPayload, error) {
	if s.cfg.RefreshTokenSecret == "" {
		return RefreshTokenPayload{}, ErrSigningKeyUnavailable
	}
	token, err := jwt.Parse([]byte(raw),
		jwt.WithKey(jwa.HS256(), []byte(s.cfg.RefreshTokenSecret)),
		jwt.WithValidate(true),
		jwt.WithIssuer(s.cfg.Issuer),
	)
	if err != nil {
		return RefreshTokenPayload{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	subject, role, err := identityOf(token)
	if err != nil {
		return RefreshTokenPayload{}, err
	}

	jti, ok := token.JwtID()
	if !ok || jti == "" {
		if err := token.Get(idClaim, &jti); err != nil {
			return RefreshTokenPayload{}, fmt.Errorf("%w: missing token id", ErrInvalidToken)
		}
	}
	id, err := strconv.ParseUint(jti, 10, 64)
	if err != nil || id == 0 {
		return RefreshTokenPayload{}, fmt.Errorf("%w: malformed token id", ErrInvalidToken)
	}
	return RefreshTokenPayload{Subject: subject, Role: role, ID: uint(id)}, nil
}

// VerifyRefreshToken parses raw and requires its backing record to still
// exist, belong to the token's subject and not be expired.
func (s *TokenService) VerifyRefreshToken(ctx context.Context, raw string) (RefreshTokenPayload, error) {
	payload, err := s.ParseRefreshToken(raw)
	if err != nil {
		return RefreshTokenPayload{}, err
	}
	record, err := s.tokens.FindByID(ctx, payload.ID)
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return RefreshTokenPayload{}, ErrRefreshTokenRevoked
		}
		return RefreshTokenPayload{}, fmt.Errorf("failed to look up refresh token %d: %w", payload.ID, err)
	}
	if strconv.FormatUint(uint64(record.UserID), 10) != payload.Subject || record.Expired(time.Now()) {
		return RefreshTokenPayload{}, ErrRefreshTokenRevoked
	}
	return payload, nil
}

// CleanupExpired deletes refresh-token records past their expiry.
func (s *TokenService) CleanupExpired(ctx context.Context) (int64, error) {
	return s.tokens.DeleteExpired(ctx, time.Now())
}

func identityOf(token jwt.Token) (string, models.Role, error) {
	subject, ok := token.Subject()
	if !ok || subject == "" {
		return "", "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	var role string
	if err := token.Get(roleClaim, &role); err != nil {
		return "", "", fmt.Errorf("%w: missing role", ErrInvalidToken)
	}
	if !models.Role(role).Valid() {
		return "", "", fmt.Errorf("%w: unknown role %q", ErrInvalidToken, role)
	}
	return subject, models.Role(role), nil
}
