// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/TTPhuongNam/user-management-app/internal/core"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already exists")
)

type UserInfo struct {
	ID           string
	Email        string
	FirstName    *string
	LastName     *string
	PasswordHash string
	Role         string
	IsDisabled   bool
	AvatarURL    *string
	CreatedAt    time.Time
}

type NewAccount struct {
	Email        string
	PasswordHash string
	FirstName    *string
	LastName     *string
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	CreateAccount(ctx context.Context, account NewAccount) (*UserInfo, error)
	UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error
}

type Service struct {
	jwt          *JWTManager
	userProvider UserProvider
}

func NewService(jwt *JWTManager, userProvider UserProvider) *Service {
	return &Service{
		jwt:          jwt,
		userProvider: userProvider,
	}
}

type LoginResult struct {
	User   UserResponse
	Tokens TokenResponse
}

// Login validates credentials and mints an access token. A missing
// account, a wrong password and a disabled account all surface as the
// same ErrInvalidCredentials so a caller cannot probe which emails exist.
func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*LoginResult, error) {
	user, err := s.userProvider.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, newHash, err := core.VerifyPasswordTimingSafe(
		req.Password,
		&user.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid || user.IsDisabled {
		return nil, ErrInvalidCredentials
	}

	if newHash != "" {
		//nolint:errcheck // best-effort rehash upgrade
		_ = s.userProvider.UpdatePasswordHash(ctx, user.ID, newHash)
	}

	accessToken, err := s.jwt.CreateAccessToken(AccessTokenClaims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		AvatarURL: user.AvatarURL,
	})
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	return &LoginResult{
		User: toUserResponse(user),
		Tokens: TokenResponse{
			AccessToken: accessToken,
			TokenType:   "Bearer",
			ExpiresIn:   int(s.jwt.AccessTokenTTL() / time.Second),
		},
	}, nil
}

// Register creates a self-service account: always role user, always
// enabled. Administrative creation with arbitrary roles lives in the user
// service behind the admin routes.
func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*UserResponse, error) {
	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.userProvider.CreateAccount(ctx, NewAccount{
		Email:        req.Email,
		PasswordHash: passwordHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	})
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	resp := toUserResponse(user)
	return &resp, nil
}
