package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pathfinder_gateway/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resolveRequest прогоняет запрос через Resolve и возвращает Store и ответ
func resolveRequest(t *testing.T, m *Manager, cookie *http.Cookie) (*Store, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		c.Request.AddCookie(cookie)
	}

	return m.Resolve(c), w
}

func TestManager_IssuesCookieForNewClient(t *testing.T) {
	t.Parallel()

	// Arrange
	m := NewManager(newMemStorage(), &fakeAPI{}, CookieOptions{Name: "test_session"})

	// Act: первый визит без куки
	store, w := resolveRequest(t, m, nil)

	// Assert: выдан пустой Store и HttpOnly-кука с его ID
	require.NotNil(t, store)
	assert.False(t, store.Session().IsAuthenticated())

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "test_session", cookies[0].Name)
	assert.Equal(t, store.ID(), cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestManager_SameCookieSameStore(t *testing.T) {
	t.Parallel()

	m := NewManager(newMemStorage(), &fakeAPI{}, CookieOptions{Name: "test_session"})

	first, w := resolveRequest(t, m, nil)
	cookie := w.Result().Cookies()[0]

	second, _ := resolveRequest(t, m, &http.Cookie{Name: cookie.Name, Value: cookie.Value})

	// Один клиент - один Store
	assert.Same(t, first, second)
}

func TestManager_DifferentClientsIsolated(t *testing.T) {
	t.Parallel()

	m := NewManager(newMemStorage(), &fakeAPI{}, CookieOptions{Name: "test_session"})

	first, _ := resolveRequest(t, m, nil)
	second, _ := resolveRequest(t, m, nil)

	assert.NotSame(t, first, second)
	assert.NotEqual(t, first.ID(), second.ID())
}

func TestManager_RehydratesUnknownCookie(t *testing.T) {
	t.Parallel()

	// Arrange: durable-запись есть, но процесс про сессию не знает
	// (эквивалент рестарта шлюза)
	storage := newMemStorage()
	token := signedToken(t, time.Now().Add(time.Hour))
	blob, err := json.Marshal(Identity{ID: "42", Email: "model@test.com", Role: models.UserRoleUser})
	require.NoError(t, err)
	require.NoError(t, storage.Save(context.Background(), "persisted-sid", token, blob))

	m := NewManager(storage, &fakeAPI{}, CookieOptions{Name: "test_session"})

	// Act
	store, _ := resolveRequest(t, m, &http.Cookie{Name: "test_session", Value: "persisted-sid"})

	// Assert: клиент залогинен сразу, без повторного входа
	sess := store.Session()
	assert.True(t, sess.IsUser())
	assert.Equal(t, "model@test.com", sess.User.Email)
	assert.Equal(t, token, sess.Token)
}

func TestManager_Defaults(t *testing.T) {
	t.Parallel()

	m := NewManager(newMemStorage(), &fakeAPI{}, CookieOptions{})

	assert.Equal(t, "pathfinder_session", m.CookieName())
}
