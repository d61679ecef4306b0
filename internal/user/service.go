// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/TTPhuongNam/user-management-app/internal/auth"
	"github.com/TTPhuongNam/user-management-app/internal/core"
	"github.com/TTPhuongNam/user-management-app/internal/middleware"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListUsers(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	return s.repo.List(ctx, params)
}

// CreateUser is the administrative create: unlike self-registration it may
// assign any role and the disabled flag up front.
func (s *Service) CreateUser(
	ctx context.Context,
	req CreateUserRequest,
) (*User, error) {
	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = RoleUser
	}
	if role != RoleUser && role != RoleAdmin {
		return nil, fmt.Errorf(
			"create user: invalid role %q: %w",
			role,
			core.ErrInvalidInput,
		)
	}

	user := &User{
		ID:           uuid.New().String(),
		Email:        NormalizeEmail(req.Email),
		PasswordHash: passwordHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
		IsDisabled:   req.IsDisabled,
		AvatarURL:    req.AvatarURL,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateUser applies an administrative partial update. The self-protection
// rule rejects the whole request when the caller targets their own record
// with a role change away from admin or with is_disabled=true, no matter
// what else the payload carries.
func (s *Service) UpdateUser(
	ctx context.Context,
	callerID, targetID string,
	req UpdateUserRequest,
) (*User, error) {
	if callerID == targetID {
		if req.Role != nil && *req.Role != RoleAdmin {
			return nil, fmt.Errorf(
				"cannot change own role: %w",
				core.ErrForbidden,
			)
		}
		if req.IsDisabled != nil && *req.IsDisabled {
			return nil, fmt.Errorf(
				"cannot disable own account: %w",
				core.ErrForbidden,
			)
		}
	}

	patch := Patch{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Role:       req.Role,
		IsDisabled: req.IsDisabled,
		AvatarURL:  req.AvatarURL,
	}

	if req.Email != nil {
		normalized := NormalizeEmail(*req.Email)
		patch.Email = &normalized
	}

	if req.Password != nil {
		hash, err := core.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		patch.PasswordHash = &hash
	}

	return s.repo.UpdatePartial(ctx, targetID, patch)
}

func (s *Service) UpdateProfile(
	ctx context.Context,
	userID string,
	req UpdateProfileRequest,
) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("update profile: %w", core.ErrUnauthorized)
	}

	patch := Patch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		AvatarURL: req.AvatarURL,
	}

	return s.repo.UpdatePartial(ctx, userID, patch)
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("get profile: %w", core.ErrUnauthorized)
	}

	return s.repo.GetByID(ctx, userID)
}

func (s *Service) DeleteUser(ctx context.Context, callerID, targetID string) error {
	if callerID == targetID {
		return fmt.Errorf("cannot delete own account: %w", core.ErrForbidden)
	}

	return s.repo.Delete(ctx, targetID)
}

func (s *Service) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.repo.ExistsByEmail(ctx, NormalizeEmail(email))
}

// GetByEmail implements auth.UserProvider.
func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

// CreateAccount implements auth.UserProvider: self-registration always
// lands as an enabled regular user.
func (s *Service) CreateAccount(
	ctx context.Context,
	account auth.NewAccount,
) (*auth.UserInfo, error) {
	user := &User{
		ID:           uuid.New().String(),
		Email:        NormalizeEmail(account.Email),
		PasswordHash: account.PasswordHash,
		FirstName:    account.FirstName,
		LastName:     account.LastName,
		Role:         RoleUser,
		IsDisabled:   false,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

// UpdatePasswordHash implements auth.UserProvider; used for transparent
// rehash upgrades on login.
func (s *Service) UpdatePasswordHash(
	ctx context.Context,
	userID, passwordHash string,
) error {
	_, err := s.repo.UpdatePartial(ctx, userID, Patch{
		PasswordHash: &passwordHash,
	})
	return err
}

// ResolveIdentity implements middleware.IdentitySource: every
// authenticated request re-fetches the live record so a user disabled or
// deleted after token issuance is rejected before any handler runs.
func (s *Service) ResolveIdentity(
	ctx context.Context,
	userID string,
) (*middleware.Identity, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.IsDisabled {
		return nil, fmt.Errorf(
			"resolve identity: account disabled: %w",
			core.ErrUnauthorized,
		)
	}

	return &middleware.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}, nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		IsDisabled:   u.IsDisabled,
		AvatarURL:    u.AvatarURL,
		CreatedAt:    u.CreatedAt,
	}
}

var (
	_ auth.UserProvider         = (*Service)(nil)
	_ middleware.IdentitySource = (*Service)(nil)
)
