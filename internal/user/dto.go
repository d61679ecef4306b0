// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

type CreateUserRequest struct {
	Email      string  `json:"email"      validate:"required,email,max=255"`
	Password   string  `json:"password"   validate:"required,min=8,max=128"`
	FirstName  *string `json:"first_name,omitempty" validate:"omitempty,min=1,max=100"`
	LastName   *string `json:"last_name,omitempty"  validate:"omitempty,min=1,max=100"`
	Role       string  `json:"role,omitempty"       validate:"omitempty,oneof=user admin"`
	IsDisabled bool    `json:"is_disabled,omitempty"`
	AvatarURL  *string `json:"avatar_url,omitempty" validate:"omitempty,url,max=2048"`
}

type UpdateUserRequest struct {
	Email      *string `json:"email,omitempty"      validate:"omitempty,email,max=255"`
	Password   *string `json:"password,omitempty"   validate:"omitempty,min=8,max=128"`
	FirstName  *string `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName   *string `json:"last_name,omitempty"  validate:"omitempty,max=100"`
	Role       *string `json:"role,omitempty"       validate:"omitempty,oneof=user admin"`
	IsDisabled *bool   `json:"is_disabled,omitempty"`
	AvatarURL  *string `json:"avatar_url,omitempty" validate:"omitempty,url,max=2048"`
}

type UpdateProfileRequest struct {
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name,omitempty"  validate:"omitempty,max=100"`
	AvatarURL *string `json:"avatar_url,omitempty" validate:"omitempty,url,max=2048"`
}

// UserResponse is the only shape a user ever leaves the API in; the
// password hash has no field here at all.
type UserResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FirstName  *string   `json:"first_name,omitempty"`
	LastName   *string   `json:"last_name,omitempty"`
	Role       string    `json:"role"`
	IsDisabled bool      `json:"is_disabled"`
	AvatarURL  *string   `json:"avatar_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ListUsersParams struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Search   string `json:"search"`
	Role     string `json:"role"`
}

// Normalize clamps pagination. PageSize 0 means no limit: the listing
// returns the full set unless the caller explicitly asks for a page.
func (p *ListUsersParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 0 {
		p.PageSize = 0
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListUsersParams) Offset() int {
	if p.PageSize == 0 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Role:       u.Role,
		IsDisabled: u.IsDisabled,
		AvatarURL:  u.AvatarURL,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToUserResponse(&u))
	}
	return responses
}
