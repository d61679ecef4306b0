// AngelaMos | 2026
// dto_test.go

package user

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUsersParams_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		in       ListUsersParams
		wantPage int
		wantSize int
	}{
		{"zero values mean everything", ListUsersParams{}, 1, 0},
		{"negative page", ListUsersParams{Page: -3, PageSize: 10}, 1, 10},
		{"negative page size", ListUsersParams{Page: 1, PageSize: -5}, 1, 0},
		{"oversized page size", ListUsersParams{Page: 2, PageSize: 500}, 2, 100},
		{"already sane", ListUsersParams{Page: 4, PageSize: 50}, 4, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Normalize()
			assert.Equal(t, tt.wantPage, tt.in.Page)
			assert.Equal(t, tt.wantSize, tt.in.PageSize)
		})
	}
}

func TestListUsersParams_Offset(t *testing.T) {
	p := ListUsersParams{Page: 3, PageSize: 25}
	assert.Equal(t, 50, p.Offset())

	unbounded := ListUsersParams{Page: 3, PageSize: 0}
	assert.Equal(t, 0, unbounded.Offset())
}

func TestUserResponse_NeverMarshalsPasswordHash(t *testing.T) {
	first := "Alice"
	u := &User{
		ID:           "user-1",
		Email:        "alice@example.com",
		PasswordHash: "$argon2id$super-secret",
		FirstName:    &first,
		Role:         RoleAdmin,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	raw, err := json.Marshal(ToUserResponse(u))
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), "argon2id")
	assert.Contains(t, string(raw), `"email":"alice@example.com"`)
}

func TestUpdateUserRequest_OmittedFieldsStayNil(t *testing.T) {
	var req UpdateUserRequest
	require.NoError(
		t,
		json.Unmarshal([]byte(`{"first_name":"Ada"}`), &req),
	)

	require.NotNil(t, req.FirstName)
	assert.Equal(t, "Ada", *req.FirstName)
	assert.Nil(t, req.Email)
	assert.Nil(t, req.Role)
	assert.Nil(t, req.IsDisabled)

	// An explicit false is distinct from an absent field.
	require.NoError(
		t,
		json.Unmarshal([]byte(`{"is_disabled":false}`), &req),
	)
	require.NotNil(t, req.IsDisabled)
	assert.False(t, *req.IsDisabled)
}
