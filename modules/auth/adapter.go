package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	domain "github.com/example/taskify/domain/user"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// AuthPort is what other modules use to reach authentication.
type AuthPort interface {
	Register(ctx context.Context, reg Registration) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	ValidateToken(ctx context.Context, token string) (*domain.Claims, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
}

var (
	_ AuthPort = (*AuthService)(nil)
	_ AuthPort = (*AuthAdapter)(nil)
)

// AuthAdapter implements AuthPort using the service container.
type AuthAdapter struct {
	container mono.ServiceContainer
}

// NewAuthAdapter creates a new AuthAdapter.
func NewAuthAdapter(container mono.ServiceContainer) *AuthAdapter {
	return &AuthAdapter{
		container: container,
	}
}

// Register creates an account through the register service.
func (a *AuthAdapter) Register(ctx context.Context, reg Registration) (*domain.User, error) {
	req := RegisterRequest{Registration: reg}
	var resp UserResponse
	if err := call(ctx, a.container, "register", &req, &resp); err != nil {
		return nil, err
	}
	return toUser(resp), nil
}

// Login authenticates through the login service.
func (a *AuthAdapter) Login(ctx context.Context, email, password string) (*domain.TokenPair, error) {
	req := LoginRequest{Email: email, Password: password}
	var resp TokenResponse
	if err := call(ctx, a.container, "login", &req, &resp); err != nil {
		return nil, err
	}
	return toTokenPair(resp), nil
}

// Refresh exchanges a refresh token through the refresh-token service.
func (a *AuthAdapter) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	req := RefreshRequest{RefreshToken: refreshToken}
	var resp TokenResponse
	if err := call(ctx, a.container, "refresh-token", &req, &resp); err != nil {
		return nil, err
	}
	return toTokenPair(resp), nil
}

// ValidateToken validates an access token and returns claims.
func (a *AuthAdapter) ValidateToken(ctx context.Context, token string) (*domain.Claims, error) {
	req := ValidateTokenRequest{Token: token}
	var resp ValidateTokenResponse
	if err := call(ctx, a.container, "validate-token", &req, &resp); err != nil {
		return nil, err
	}

	if !resp.Valid {
		if resp.Error == ErrExpiredToken.Error() {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	return &domain.Claims{
		UserID: resp.UserID,
		Email:  resp.Email,
		Name:   resp.Name,
	}, nil
}

// GetUser retrieves a user by ID.
func (a *AuthAdapter) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	req := GetUserRequest{UserID: userID}
	var resp UserResponse
	if err := call(ctx, a.container, "get-user", &req, &resp); err != nil {
		return nil, err
	}
	return toUser(resp), nil
}

// call sends req to service and decodes the reply into resp. Remote
// failures are mapped back to this package's sentinels.
func call[Req, Resp any](ctx context.Context, container mono.ServiceContainer, service string, req *Req, resp *Resp) error {
	if err := helper.CallRequestReplyService(
		ctx,
		container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		resp,
	); err != nil {
		return fmt.Errorf("%s request failed: %w", service, remoteError(err))
	}
	return nil
}

var knownErrors = []error{
	ErrNameRequired,
	ErrInvalidName,
	ErrInvalidEmail,
	ErrPasswordTooShort,
	ErrPasswordTooLong,
	ErrPasswordNoUppercase,
	ErrPasswordNoDigit,
	ErrPasswordNoSpecial,
	ErrPasswordMismatch,
	ErrTermsNotAccepted,
	ErrUserExists,
	ErrInvalidCredentials,
	ErrUserNotFound,
	ErrExpiredToken,
	ErrInvalidToken,
}

// remoteError recovers the sentinel behind an error that crossed the
// request-reply boundary as plain text.
func remoteError(err error) error {
	msg := err.Error()
	for _, known := range knownErrors {
		if errors.Is(err, known) {
			return err
		}
		if strings.Contains(msg, known.Error()) {
			return known
		}
	}
	return err
}

func toUser(resp UserResponse) *domain.User {
	return &domain.User{
		ID:        resp.ID,
		Name:      resp.Name,
		Email:     resp.Email,
		CreatedAt: resp.CreatedAt,
	}
}

func toTokenPair(resp TokenResponse) *domain.TokenPair {
	return &domain.TokenPair{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
		TokenType:    resp.TokenType,
	}
}
