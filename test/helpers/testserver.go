package helpers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"sync"
	"testing"

	"pathfinder_gateway/internal/app"
	"pathfinder_gateway/internal/config"
	"pathfinder_gateway/internal/session"
)

// TestServer - полный шлюз поверх фейкового PathFinder API.
// Роутер спрятан за неподвижным httptest.Server, поэтому Restart
// (эквивалент рестарта процесса) не меняет URL и куки клиентов выживают.
type TestServer struct {
	Server   *httptest.Server
	Upstream *FakeUpstream
	Storage  session.Storage
	Config   *config.Config

	mu     sync.RWMutex
	router http.Handler
}

// NewTestServer поднимает шлюз на файловом хранилище сессий в t.TempDir()
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	fake := NewFakeUpstream()

	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.Upstream.BaseURL = fake.Server.URL
	cfg.Upstream.TimeoutSeconds = 2
	cfg.Sessions.CookieName = "pathfinder_session"
	cfg.Sessions.TTLHours = 1
	cfg.Sessions.Storage.Type = "file"
	cfg.Sessions.Storage.BasePath = t.TempDir()

	storage, err := session.NewStorage(session.Config{
		Type:     cfg.Sessions.Storage.Type,
		BasePath: cfg.Sessions.Storage.BasePath,
	})
	if err != nil {
		t.Fatalf("Не удалось создать хранилище сессий: %v", err)
	}

	ts := &TestServer{
		Upstream: fake,
		Storage:  storage,
		Config:   cfg,
	}
	ts.router = app.SetupRouter(cfg, storage)
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.mu.RLock()
		router := ts.router
		ts.mu.RUnlock()
		router.ServeHTTP(w, r)
	}))

	t.Cleanup(ts.Close)
	return ts
}

func (ts *TestServer) Close() {
	ts.Server.Close()
	ts.Upstream.Close()
}

// Restart пересобирает роутер с чистой памятью, сохраняя durable-хранилище.
// Для клиентов это выглядит как рестарт шлюза: URL и куки те же, но все
// сессии в памяти процесса забыты.
func (ts *TestServer) Restart() {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.router = app.SetupRouter(ts.Config, ts.Storage)
}

// BrowserClient - HTTP-клиент с cookie jar, эмулирующий один браузер.
// Редиректам НЕ следует: тесты проверяют сам факт и адрес редиректа.
func (ts *TestServer) BrowserClient(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("Не удалось создать cookie jar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// SendRequest отправляет запрос от имени переданного "браузера" и
// возвращает ответ вместе с прочитанным телом
func (ts *TestServer) SendRequest(t *testing.T, client *http.Client, method, path string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Ошибка кодирования JSON для запроса: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	if err != nil {
		t.Fatalf("Ошибка создания HTTP-запроса: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := client.Do(req)
	if err != nil {
		t.Fatalf("Ошибка выполнения HTTP-запроса: %v", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("Ошибка чтения тела ответа: %v", err)
	}
	return res, string(resBody)
}

// LoginAs логинит браузер под указанной ролью и валидирует успех
func (ts *TestServer) LoginAs(t *testing.T, client *http.Client, email, password, role string) {
	t.Helper()

	res, body := ts.SendRequest(t, client, http.MethodPost, "/auth/login", map[string]interface{}{
		"email":    email,
		"password": password,
		"role":     role,
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("Логин %s (%s) провалился: %d %s", email, role, res.StatusCode, body)
	}
}
