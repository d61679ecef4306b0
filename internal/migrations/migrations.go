// AngelaMos | 2026
// migrations.go

package migrations

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"time"
)

//go:embed *.sql
var embedded embed.FS

const tableToken = "{{users_table}}"

// Rendered returns the migration set with the configured users table
// name substituted for every {{users_table}} token, so the DDL targets
// the same table the repository queries. The name is validated as an
// identifier at config load before it reaches this point.
func Rendered(table string) (fs.FS, error) {
	entries, err := fs.ReadDir(embedded, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	files := make(memFS, len(entries))
	for _, entry := range entries {
		data, readErr := embedded.ReadFile(entry.Name())
		if readErr != nil {
			return nil, fmt.Errorf(
				"read migration %s: %w",
				entry.Name(),
				readErr,
			)
		}

		files[entry.Name()] = bytes.ReplaceAll(
			data,
			[]byte(tableToken),
			[]byte(table),
		)
	}

	return files, nil
}

// memFS is a flat read-only fs.FS over the rendered migration files.
type memFS map[string][]byte

func (m memFS) Open(name string) (fs.File, error) {
	data, ok := m[name]
	if !ok {
		return nil, &fs.PathError{
			Op:   "open",
			Path: name,
			Err:  fs.ErrNotExist,
		}
	}

	return &memFile{
		info:   memInfo{name: name, size: int64(len(data))},
		Reader: bytes.NewReader(data),
	}, nil
}

func (m memFS) ReadFile(name string) ([]byte, error) {
	data, ok := m[name]
	if !ok {
		return nil, &fs.PathError{
			Op:   "readfile",
			Path: name,
			Err:  fs.ErrNotExist,
		}
	}

	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m memFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if name != "." {
		return nil, &fs.PathError{
			Op:   "readdir",
			Path: name,
			Err:  fs.ErrNotExist,
		}
	}

	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)

	entries := make([]fs.DirEntry, 0, len(names))
	for _, n := range names {
		entries = append(entries, memInfo{name: n, size: int64(len(m[n]))})
	}
	return entries, nil
}

type memFile struct {
	info memInfo
	*bytes.Reader
}

func (f *memFile) Stat() (fs.FileInfo, error) { return f.info, nil }
func (f *memFile) Close() error               { return nil }

type memInfo struct {
	name string
	size int64
}

func (i memInfo) Name() string               { return i.name }
func (i memInfo) Size() int64                { return i.size }
func (i memInfo) Mode() fs.FileMode          { return 0o444 }
func (i memInfo) ModTime() time.Time         { return time.Time{} }
func (i memInfo) IsDir() bool                { return false }
func (i memInfo) Sys() any                   { return nil }
func (i memInfo) Type() fs.FileMode          { return 0 }
func (i memInfo) Info() (fs.FileInfo, error) { return i, nil }

var (
	_ fs.ReadDirFS  = (memFS)(nil)
	_ fs.ReadFileFS = (memFS)(nil)
)
