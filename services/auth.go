package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"mernspace-auth/events"
	"mernspace-auth/models"
	"mernspace-auth/repository"

	"go.uber.org/zap"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Session is the outcome of a flow that hands the caller a fresh token pair.
type Session struct {
	UserID uint
	Tokens TokenPair
}

type AuthService struct {
	users       *UserService
	credentials *CredentialService
	tokens      *TokenService
	events      events.Publisher
	logger      *zap.SugaredLogger
}

func NewAuthService(users *UserService, credentials *CredentialService, tokens *TokenService, publisher events.Publisher, logger *zap.SugaredLogger) *AuthService {
	return &AuthService{
		users:       users,
		credentials: credentials,
		tokens:      tokens,
		events:      publisher,
		logger:      logger,
	}
}

// Register creates a customer account and signs it in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	user, err := s.users.Create(ctx, UserData{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  in.Password,
		Role:      models.CustomerRole,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Infow("User created successfully", "userId", user.ID)

	pair, err := s.tokens.IssueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.NewUserEvent(events.UserRegistered, user))
	return &Session{UserID: user.ID, Tokens: pair}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.FindByEmailWithPassword(ctx, email)
	if err != nil {
		return nil, err
	}
	if !s.credentials.ComparePassword(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	pair, err := s.tokens.IssueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logger.Infow("User has been logged in", "id", user.ID)
	s.publish(ctx, events.NewUserEvent(events.UserLoggedIn, user))
	return &Session{UserID: user.ID, Tokens: pair}, nil
}

// Refresh rotates the verified refresh token: the caller gets a new pair and
// the record behind claims.ID stops being usable.
func (s *AuthService) Refresh(ctx context.Context, claims RefreshTokenPayload) (*Session, error) {
	userID, err := parseSubject(claims.Subject)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrRefreshTokenRevoked
		}
		return nil, err
	}

	access, err := s.tokens.GenerateAccessToken(claims.Access())
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.RotateRefreshToken(ctx, claims.ID, user.ID, claims.Access())
	if err != nil {
		return nil, err
	}
	s.logger.Infow("Refresh token rotated", "userId", user.ID, "previousTokenId", claims.ID)
	return &Session{UserID: user.ID, Tokens: TokenPair{AccessToken: access, RefreshToken: refresh}}, nil
}

func (s *AuthService) Logout(ctx context.Context, claims RefreshTokenPayload) error {
	if err := s.tokens.DeleteRefreshToken(ctx, claims.ID); err != nil {
		return err
	}
	s.logger.Infow("Refresh token has been deleted", "id", claims.ID)
	if userID, err := parseSubject(claims.Subject); err == nil {
		s.publish(ctx, events.NewEvent(events.UserLoggedOut, userID))
	}
	return nil
}

func (s *AuthService) Self(ctx context.Context, subject string) (*models.User, error) {
	id, err := parseSubject(subject)
	if err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, id)
}

func (s *AuthService) publish(ctx context.Context, e events.Event) {
	if err := s.events.Publish(ctx, e); err != nil {
		s.logger.Warnw("Failed to publish event", "type", e.Type, "userId", e.UserID, "error", err)
	}
}

func parseSubject(subject string) (uint, error) {
	id, err := strconv.ParseUint(subject, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: malformed subject", ErrInvalidToken)
	}
	return uint(id), nil
}
