package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/shop-service/internal/auth"
	"github.com/spec-kit/shop-service/internal/config"
	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/events"
	"github.com/spec-kit/shop-service/internal/repository"
	apperrors "github.com/spec-kit/shop-service/pkg/util"
)

// TokenPair is one issued session: an access credential and a refresh
// credential minted together at login. Nothing is persisted server-side;
// the session exists only as long as the client holds valid tokens.
type TokenPair struct {
	AccessToken  string
	AccessTTL    time.Duration
	RefreshToken string
	RefreshTTL   time.Duration
}

// AuthService coordinates registration, login and the session lifecycle.
type AuthService struct {
	users      repository.UserRepository
	access     *auth.TokenCodec
	refresh    *auth.TokenCodec
	bcryptCost int
	dispatcher events.Dispatcher
}

// NewAuthService builds the service with one codec per credential class.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		users:      users,
		access:     auth.NewTokenCodec(cfg.AccessTokenSecret, cfg.AccessTokenTTL),
		refresh:    auth.NewTokenCodec(cfg.RefreshTokenSecret, cfg.RefreshTokenTTL),
		bcryptCost: cfg.BcryptCost,
		dispatcher: dispatcher,
	}
}

// Register creates a new user account.
func (s *AuthService) Register(ctx context.Context, user *domain.User, password string) error {
	if _, err := s.users.GetByEmail(ctx, user.Email); err == nil {
		return apperrors.NewConflict("email is already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash

	if err := s.users.Create(ctx, user); err != nil {
		return err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventUserRegistered,
			SubjectID: user.ID,
			Timestamp: time.Now(),
			Payload:   events.UserRegisteredPayload{Email: user.Email, Name: user.Name},
		})
	}
	return nil
}

// Login authenticates a user and issues both session credentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("user", nil)
		}
		return nil, nil, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, nil, apperrors.NewUnauthorized("invalid credentials")
	}

	accessToken, _, err := s.access.Issue(user.ID, user.IsAdmin)
	if err != nil {
		return nil, nil, err
	}
	// Refresh claims carry only the subject; privilege is re-read from the
	// user record when the refresh token is redeemed.
	refreshToken, _, err := s.refresh.Issue(user.ID, false)
	if err != nil {
		return nil, nil, err
	}

	return user, &TokenPair{
		AccessToken:  accessToken,
		AccessTTL:    s.access.TTL(),
		RefreshToken: refreshToken,
		RefreshTTL:   s.refresh.TTL(),
	}, nil
}

// Refresh redeems a refresh credential for a fresh access credential. The
// refresh token itself is not rotated; it stays valid for its original
// lifetime. Any verification failure is an authentication failure, never a
// silent fall back to re-login.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, time.Duration, error) {
	claims, err := s.refresh.Verify(refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return "", 0, apperrors.NewTokenExpired()
		}
		return "", 0, apperrors.NewUnauthorized("invalid refresh token")
	}

	user, err := s.users.GetByID(ctx, claims.SubjectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", 0, apperrors.NewNotFound("user", nil)
		}
		// Lookup infrastructure being down is transient, not a security
		// failure; the client may retry.
		return "", 0, apperrors.NewUnavailable("user lookup failed", err)
	}

	accessToken, _, err := s.access.Issue(user.ID, user.IsAdmin)
	if err != nil {
		return "", 0, err
	}
	return accessToken, s.access.TTL(), nil
}

// AccessCodec exposes the access token codec for the authorization gate.
func (s *AuthService) AccessCodec() *auth.TokenCodec {
	return s.access
}
