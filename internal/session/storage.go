package session

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound возвращается, когда для сессии нет сохраненной пары {токен, пользователь}
var ErrNotFound = errors.New("session record not found")

// Storage - durable-хранилище сессий шлюза, переживающее рестарт процесса.
// Контракт: токен и блоб пользователя пишутся и стираются ТОЛЬКО вместе -
// Load никогда не отдает одно без другого.
type Storage interface {
	// Save сохраняет пару {токен, пользователь} для сессии
	Save(ctx context.Context, sessionID, token string, user []byte) error

	// Load читает сохраненную пару. ErrNotFound - записи нет.
	// Любая другая ошибка означает поврежденную запись.
	Load(ctx context.Context, sessionID string) (token string, user []byte, err error)

	// Clear стирает запись сессии. Отсутствие записи не считается ошибкой.
	Clear(ctx context.Context, sessionID string) error
}

// Config определяет, каким хранилищем пользуется шлюз
type Config struct {
	Type     string // file, postgres
	BasePath string // для file
	DSN      string // для postgres
}

// NewStorage создает хранилище сессий по конфигурации
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "file":
		return NewFileStorage(cfg.BasePath)
	case "postgres":
		return NewGormStorage(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported session storage type: %s", cfg.Type)
	}
}
