// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TTPhuongNam/user-management-app/internal/core"
)

type fakeUserProvider struct {
	users    map[string]*UserInfo
	rehashes map[string]string
}

func newFakeUserProvider() *fakeUserProvider {
	return &fakeUserProvider{
		users:    make(map[string]*UserInfo),
		rehashes: make(map[string]string),
	}
}

func (f *fakeUserProvider) GetByEmail(
	_ context.Context,
	email string,
) (*UserInfo, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserProvider) CreateAccount(
	_ context.Context,
	account NewAccount,
) (*UserInfo, error) {
	if _, ok := f.users[account.Email]; ok {
		return nil, fmt.Errorf("create account: %w", core.ErrDuplicateKey)
	}

	user := &UserInfo{
		ID:           fmt.Sprintf("user-%d", len(f.users)+1),
		Email:        account.Email,
		FirstName:    account.FirstName,
		LastName:     account.LastName,
		PasswordHash: account.PasswordHash,
		Role:         "user",
		CreatedAt:    time.Now(),
	}
	f.users[account.Email] = user

	copied := *user
	return &copied, nil
}

func (f *fakeUserProvider) UpdatePasswordHash(
	_ context.Context,
	userID, passwordHash string,
) error {
	f.rehashes[userID] = passwordHash
	return nil
}

func (f *fakeUserProvider) add(t *testing.T, email, password string, disabled bool) *UserInfo {
	t.Helper()

	hash, err := core.HashPassword(password)
	require.NoError(t, err)

	user := &UserInfo{
		ID:           fmt.Sprintf("user-%d", len(f.users)+1),
		Email:        email,
		PasswordHash: hash,
		Role:         "user",
		IsDisabled:   disabled,
		CreatedAt:    time.Now(),
	}
	f.users[email] = user
	return user
}

func newTestService(t *testing.T, provider UserProvider) *Service {
	t.Helper()

	manager, err := NewJWTManager(testJWTConfig())
	require.NoError(t, err)

	return NewService(manager, provider)
}

func TestLogin_Success(t *testing.T) {
	provider := newFakeUserProvider()
	user := provider.add(t, "alice@example.com", "correct-horse", false)
	svc := newTestService(t, provider)

	result, err := svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	assert.Equal(t, user.ID, result.User.ID)
	assert.Equal(t, "Bearer", result.Tokens.TokenType)
	assert.Equal(t, 60, result.Tokens.ExpiresIn)
	require.NotEmpty(t, result.Tokens.AccessToken)

	// The minted token must carry the stored identity, not whatever the
	// client sent.
	manager, err := NewJWTManager(testJWTConfig())
	require.NoError(t, err)
	claims, err := manager.VerifyAccessToken(
		context.Background(),
		result.Tokens.AccessToken,
	)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.Role, claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	provider := newFakeUserProvider()
	provider.add(t, "alice@example.com", "correct-horse", false)
	svc := newTestService(t, provider)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newTestService(t, newFakeUserProvider())

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_DisabledAccount(t *testing.T) {
	provider := newFakeUserProvider()
	provider.add(t, "locked@example.com", "correct-horse", true)
	svc := newTestService(t, provider)

	// Even with the correct password, a disabled account gets the same
	// generic error as a wrong password or an unknown email.
	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "locked@example.com",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegister_Success(t *testing.T) {
	provider := newFakeUserProvider()
	svc := newTestService(t, provider)

	first := "Bob"
	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:     "bob@example.com",
		Password:  "correct-horse",
		FirstName: &first,
	})
	require.NoError(t, err)

	assert.Equal(t, "bob@example.com", resp.Email)
	assert.Equal(t, "user", resp.Role)

	stored := provider.users["bob@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "correct-horse", stored.PasswordHash)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	provider := newFakeUserProvider()
	provider.add(t, "bob@example.com", "correct-horse", false)
	svc := newTestService(t, provider)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "bob@example.com",
		Password: "another-pass",
	})
	assert.ErrorIs(t, err, ErrEmailExists)
}
