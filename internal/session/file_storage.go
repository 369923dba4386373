package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileStorage implements Storage on the local filesystem:
// one JSON document per session under basePath.
type FileStorage struct {
	basePath string
}

// fileRecord is the on-disk document. Token and user live in one file,
// so they can only ever be written or removed together.
type fileRecord struct {
	Token string          `json:"token"`
	User  json.RawMessage `json:"user"`
}

// NewFileStorage creates a file-backed session storage
func NewFileStorage(basePath string) (*FileStorage, error) {
	if basePath == "" {
		basePath = "./sessions"
	}

	if err := os.MkdirAll(basePath, 0700); err != nil {
		return nil, fmt.Errorf("failed to create session storage directory: %w", err)
	}

	return &FileStorage{basePath: basePath}, nil
}

func (s *FileStorage) path(sessionID string) string {
	// Session IDs are uuids generated by the gateway itself, but the
	// storage still refuses anything that could escape basePath.
	return filepath.Join(s.basePath, filepath.Base(sessionID)+".json")
}

// Save writes the {token, user} pair atomically (temp file + rename)
func (s *FileStorage) Save(ctx context.Context, sessionID, token string, user []byte) error {
	data, err := json.Marshal(fileRecord{Token: token, User: user})
	if err != nil {
		return fmt.Errorf("failed to encode session record: %w", err)
	}

	tmp, err := os.CreateTemp(s.basePath, "session-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write session record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path(sessionID)); err != nil {
		return fmt.Errorf("failed to store session record: %w", err)
	}
	return nil
}

// Load reads the {token, user} pair back. A missing file maps to
// ErrNotFound; an unreadable or incomplete document is an error so the
// caller can treat it as corruption.
func (s *FileStorage) Load(ctx context.Context, sessionID string) (string, []byte, error) {
	data, err := os.ReadFile(s.path(sessionID))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, ErrNotFound
		}
		return "", nil, fmt.Errorf("failed to read session record: %w", err)
	}

	var rec fileRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return "", nil, fmt.Errorf("corrupt session record: %w", err)
	}
	if rec.Token == "" || len(rec.User) == 0 {
		return "", nil, fmt.Errorf("incomplete session record")
	}

	return rec.Token, rec.User, nil
}

// Clear removes the session document. Missing file is fine.
func (s *FileStorage) Clear(ctx context.Context, sessionID string) error {
	if err := os.Remove(s.path(sessionID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear session record: %w", err)
	}
	return nil
}
