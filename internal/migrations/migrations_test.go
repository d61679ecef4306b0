// AngelaMos | 2026
// migrations_test.go

package migrations

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRendered_SubstitutesTableName(t *testing.T) {
	fsys, err := Rendered("app_accounts")
	require.NoError(t, err)

	names, err := fs.Glob(fsys, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		require.NoError(t, err)

		sql := string(data)
		assert.NotContains(t, sql, tableToken, name)
		assert.Contains(t, sql, "app_accounts", name)
		assert.NotContains(
			t,
			sql,
			" users ",
			"the default table name must not survive substitution",
		)
	}
}

func TestRendered_DefaultTable(t *testing.T) {
	fsys, err := Rendered("users")
	require.NoError(t, err)

	data, err := fs.ReadFile(fsys, "00001_create_users.sql")
	require.NoError(t, err)

	sql := string(data)
	assert.Contains(t, sql, "CREATE TABLE IF NOT EXISTS users (")
	assert.Contains(
		t,
		sql,
		"CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (email)",
	)
	assert.Contains(t, sql, "DROP TABLE IF EXISTS users;")
}

func TestRendered_ListsMigrationsInOrder(t *testing.T) {
	fsys, err := Rendered("users")
	require.NoError(t, err)

	entries, err := fs.ReadDir(fsys, ".")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	assert.Equal(t, "00001_create_users.sql", entries[0].Name())
	assert.False(t, entries[0].IsDir())

	info, err := entries[0].Info()
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRendered_MissingFile(t *testing.T) {
	fsys, err := Rendered("users")
	require.NoError(t, err)

	_, err = fs.ReadFile(fsys, "99999_nope.sql")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = fsys.Open("99999_nope.sql")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
