package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorage_SaveLoadClear(t *testing.T) {
	t.Parallel()

	storage, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	// Save + Load
	require.NoError(t, storage.Save(ctx, "sid-1", "token-1", []byte(`{"id":"42"}`)))
	token, user, err := storage.Load(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "token-1", token)
	assert.JSONEq(t, `{"id":"42"}`, string(user))

	// Повторный Save перезаписывает
	require.NoError(t, storage.Save(ctx, "sid-1", "token-2", []byte(`{"id":"7"}`)))
	token, _, err = storage.Load(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "token-2", token)

	// Clear + повторный Clear
	require.NoError(t, storage.Clear(ctx, "sid-1"))
	require.NoError(t, storage.Clear(ctx, "sid-1"))
	_, _, err = storage.Load(ctx, "sid-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStorage_LoadMissing(t *testing.T) {
	t.Parallel()

	storage, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	_, _, err = storage.Load(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStorage_CorruptRecord(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	storage, err := NewFileStorage(dir)
	require.NoError(t, err)
	ctx := context.Background()

	cases := []struct {
		name string
		data string
	}{
		{"не-JSON", "{broken"},
		{"токен без пользователя", `{"token":"tok"}`},
		{"пользователь без токена", `{"user":{"id":"42"}}`},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			sid := "sid-" + tc.name
			require.NoError(t, os.WriteFile(filepath.Join(dir, sid+".json"), []byte(tc.data), 0600))

			_, _, err := storage.Load(ctx, sid)

			// Дефект записи - ошибка, но НЕ ErrNotFound: вызывающий
			// должен отличать "нет записи" от "запись битая"
			require.Error(t, err)
			assert.NotErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestFileStorage_SessionIDCannotEscapeBasePath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	storage, err := NewFileStorage(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, storage.Save(ctx, "../../etc/passwd", "tok", []byte(`{}`)))

	// Файл лег внутрь basePath, а не по указанному пути
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "passwd.json", entries[0].Name())
}

func TestNewStorage_Factory(t *testing.T) {
	t.Parallel()

	storage, err := NewStorage(Config{Type: "file", BasePath: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &FileStorage{}, storage)

	_, err = NewStorage(Config{Type: "redis"})
	assert.Error(t, err)
}
