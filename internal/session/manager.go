package session

import (
	"net/http"
	"sync"
	"time"

	"pathfinder_gateway/internal/upstream"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CookieOptions - настройки сессионной куки шлюза
type CookieOptions struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

// Manager держит по одному Store на клиента (браузер). Клиент опознается
// HttpOnly-кукой с ID сессии; незнакомый ID лениво регидрируется из
// durable-хранилища - так рестарт шлюза не разлогинивает браузеры.
type Manager struct {
	storage Storage
	api     upstream.Client
	cookie  CookieOptions

	mu     sync.Mutex
	stores map[string]*Store
}

// NewManager создает менеджер сессий
func NewManager(storage Storage, api upstream.Client, cookie CookieOptions) *Manager {
	if cookie.Name == "" {
		cookie.Name = "pathfinder_session"
	}
	if cookie.MaxAge == 0 {
		cookie.MaxAge = 24 * time.Hour
	}

	return &Manager{
		storage: storage,
		api:     api,
		cookie:  cookie,
	}
}

// Resolve возвращает Store текущего запроса.
// Нет куки - выдается новая пустая сессия; есть кука, но процесс ее не
// помнит - Store создается и регидрируется из хранилища.
func (m *Manager) Resolve(c *gin.Context) *Store {
	sid, err := c.Cookie(m.cookie.Name)
	if err != nil || sid == "" {
		sid = uuid.NewString()
		m.setCookie(c, sid)
	}

	store, created := m.storeFor(sid)
	if created {
		store.Rehydrate(c.Request.Context())
	}
	return store
}

// storeFor возвращает (создавая при необходимости) Store по ID.
// Регидрация происходит вне мьютекса менеджера - она ходит в хранилище.
func (m *Manager) storeFor(sid string) (*Store, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stores == nil {
		m.stores = make(map[string]*Store)
	}
	if store, ok := m.stores[sid]; ok {
		return store, false
	}

	store := NewStore(sid, m.storage, m.api)
	m.stores[sid] = store
	return store, true
}

// Drop выбрасывает Store из памяти процесса (durable-запись не трогается).
// Используется тестами; в проде записи живут до logout.
func (m *Manager) Drop(sid string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stores, sid)
}

func (m *Manager) setCookie(c *gin.Context, sid string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookie.Name, sid, int(m.cookie.MaxAge.Seconds()), "/", "", m.cookie.Secure, true)
}

// CookieName возвращает имя сессионной куки (нужно тестам и middleware)
func (m *Manager) CookieName() string {
	return m.cookie.Name
}
