package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"pathfinder_gateway/internal/models"
	"pathfinder_gateway/internal/upstream"
	"pathfinder_gateway/pkg/apperrors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI - подменный PathFinder API. Незаданные методы паникуют:
// тест, который их дергает, написан неправильно.
type fakeAPI struct {
	upstream.Client

	loginFn             func(ctx context.Context, email, password string) (*upstream.LoginResult, error)
	registerUserFn      func(ctx context.Context, req upstream.RegisterUserRequest) error
	registerRecruiterFn func(ctx context.Context, req upstream.RegisterRecruiterRequest) error
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*upstream.LoginResult, error) {
	return f.loginFn(ctx, email, password)
}

func (f *fakeAPI) RegisterUser(ctx context.Context, req upstream.RegisterUserRequest) error {
	return f.registerUserFn(ctx, req)
}

func (f *fakeAPI) RegisterRecruiter(ctx context.Context, req upstream.RegisterRecruiterRequest) error {
	return f.registerRecruiterFn(ctx, req)
}

// memStorage - хранилище в памяти с управляемыми отказами
type memStorage struct {
	tokens  map[string]string
	blobs   map[string][]byte
	saveErr error
	loadErr error
	clears  int
}

func newMemStorage() *memStorage {
	return &memStorage{
		tokens: make(map[string]string),
		blobs:  make(map[string][]byte),
	}
}

func (m *memStorage) Save(_ context.Context, sid, token string, user []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.tokens[sid] = token
	m.blobs[sid] = append([]byte(nil), user...)
	return nil
}

func (m *memStorage) Load(_ context.Context, sid string) (string, []byte, error) {
	if m.loadErr != nil {
		return "", nil, m.loadErr
	}
	token, ok := m.tokens[sid]
	if !ok {
		return "", nil, ErrNotFound
	}
	return token, m.blobs[sid], nil
}

func (m *memStorage) Clear(_ context.Context, sid string) error {
	m.clears++
	delete(m.tokens, sid)
	delete(m.blobs, sid)
	return nil
}

func intPtr(v int) *int { return &v }

// signedToken выпускает структурно валидный JWT с заданным сроком жизни
func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "42",
		"exp": exp.Unix(),
	}).SignedString([]byte("upstream-secret"))
	require.NoError(t, err)
	return token
}

func userLoginResult(t *testing.T) *upstream.LoginResult {
	return &upstream.LoginResult{
		AccessToken: signedToken(t, time.Now().Add(time.Hour)),
		TokenType:   "bearer",
		UserType:    "user",
		UserID:      intPtr(42),
	}
}

func TestStore_Login_Success(t *testing.T) {
	t.Parallel()

	// Arrange
	storage := newMemStorage()
	api := &fakeAPI{
		loginFn: func(_ context.Context, email, _ string) (*upstream.LoginResult, error) {
			assert.Equal(t, "model@test.com", email)
			return userLoginResult(t), nil
		},
	}
	store := NewStore("sid-1", storage, api)

	// Act
	err := store.Login(context.Background(), "model@test.com", "pass", models.UserRoleUser)

	// Assert
	require.NoError(t, err)
	sess := store.Session()
	assert.True(t, sess.IsAuthenticated())
	assert.True(t, sess.IsUser())
	assert.False(t, sess.IsRecruiter())
	assert.Equal(t, "42", sess.User.ID)
	assert.Equal(t, "model@test.com", sess.User.Email)

	// Durable-запись появилась вместе с сессией
	token, blob, loadErr := storage.Load(context.Background(), "sid-1")
	require.NoError(t, loadErr)
	assert.Equal(t, sess.Token, token)
	assert.Contains(t, string(blob), "model@test.com")
}

func TestStore_Login_UpstreamRejects(t *testing.T) {
	t.Parallel()

	// Arrange: upstream отвечает 401
	storage := newMemStorage()
	api := &fakeAPI{
		loginFn: func(_ context.Context, _, _ string) (*upstream.LoginResult, error) {
			return nil, apperrors.ErrUpstream(401, "Incorrect email or password")
		},
	}
	store := NewStore("sid-1", storage, api)

	// Act
	err := store.Login(context.Background(), "model@test.com", "wrong", models.UserRoleUser)

	// Assert: сессия и хранилище не тронуты
	require.Error(t, err)
	assert.False(t, store.Session().IsAuthenticated())
	_, _, loadErr := storage.Load(context.Background(), "sid-1")
	assert.ErrorIs(t, loadErr, ErrNotFound)
}

func TestStore_Login_RoleMismatch(t *testing.T) {
	t.Parallel()

	// Arrange: учетные данные рекрутера в форме соискателя
	storage := newMemStorage()
	api := &fakeAPI{
		loginFn: func(_ context.Context, _, _ string) (*upstream.LoginResult, error) {
			return &upstream.LoginResult{
				AccessToken: signedToken(t, time.Now().Add(time.Hour)),
				TokenType:   "bearer",
				UserType:    "recruiter",
				RecruiterID: intPtr(7),
			}, nil
		},
	}
	store := NewStore("sid-1", storage, api)

	// Act
	err := store.Login(context.Background(), "hr@test.com", "pass", models.UserRoleUser)

	// Assert: ошибка неотличима от неверного пароля, роль не утекает
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrInvalidCredentials.Message, appErr.Message)
	assert.NotContains(t, appErr.Message, "recruiter")
	assert.False(t, store.Session().IsAuthenticated())
}

func TestStore_Login_MalformedUpstreamResponse(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		res  *upstream.LoginResult
	}{
		{"без токена", &upstream.LoginResult{UserType: "user", UserID: intPtr(1)}},
		{"неизвестная роль", &upstream.LoginResult{AccessToken: "tok", UserType: "admin", UserID: intPtr(1)}},
		{"без id аккаунта", &upstream.LoginResult{AccessToken: "tok", UserType: "user"}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			storage := newMemStorage()
			api := &fakeAPI{
				loginFn: func(_ context.Context, _, _ string) (*upstream.LoginResult, error) {
					return tc.res, nil
				},
			}
			store := NewStore("sid-1", storage, api)

			err := store.Login(context.Background(), "model@test.com", "pass", models.UserRoleUser)

			require.Error(t, err)
			assert.False(t, store.Session().IsAuthenticated())
		})
	}
}

func TestStore_Login_StorageFailureKeepsSessionUnchanged(t *testing.T) {
	t.Parallel()

	// Arrange: durable-хранилище отказывает
	storage := newMemStorage()
	storage.saveErr = errors.New("disk full")
	api := &fakeAPI{
		loginFn: func(_ context.Context, _, _ string) (*upstream.LoginResult, error) {
			return userLoginResult(t), nil
		},
	}
	store := NewStore("sid-1", storage, api)

	// Act
	err := store.Login(context.Background(), "model@test.com", "pass", models.UserRoleUser)

	// Assert: ни памяти, ни записи - атомарность в обе стороны
	require.Error(t, err)
	assert.False(t, store.Session().IsAuthenticated())
}

func TestStore_Register_NeverAuthenticates(t *testing.T) {
	t.Parallel()

	// Arrange
	storage := newMemStorage()
	var gotUser upstream.RegisterUserRequest
	var gotRecruiter upstream.RegisterRecruiterRequest
	api := &fakeAPI{
		registerUserFn: func(_ context.Context, req upstream.RegisterUserRequest) error {
			gotUser = req
			return nil
		},
		registerRecruiterFn: func(_ context.Context, req upstream.RegisterRecruiterRequest) error {
			gotRecruiter = req
			return nil
		},
	}
	store := NewStore("sid-1", storage, api)

	// Act: регистрация обеих ролей
	errUser := store.Register(context.Background(), Registration{
		Email: "model@test.com", Password: "password1", FullName: "Test User",
	}, models.UserRoleUser)
	errRecruiter := store.Register(context.Background(), Registration{
		Email: "hr@test.com", Password: "password1", CompanyName: "Test Co",
	}, models.UserRoleRecruiter)

	// Assert: запросы ушли по ролям, сессия осталась пустой
	require.NoError(t, errUser)
	require.NoError(t, errRecruiter)
	assert.Equal(t, "Test User", gotUser.FullName)
	assert.Equal(t, "Test Co", gotRecruiter.CompanyName)
	assert.False(t, store.Session().IsAuthenticated())
	_, _, loadErr := storage.Load(context.Background(), "sid-1")
	assert.ErrorIs(t, loadErr, ErrNotFound)
}

func TestStore_Logout_ClearsSessionAndStorage(t *testing.T) {
	t.Parallel()

	// Arrange: залогиненная сессия
	storage := newMemStorage()
	api := &fakeAPI{
		loginFn: func(_ context.Context, _, _ string) (*upstream.LoginResult, error) {
			return userLoginResult(t), nil
		},
	}
	store := NewStore("sid-1", storage, api)
	require.NoError(t, store.Login(context.Background(), "model@test.com", "pass", models.UserRoleUser))

	// Act
	store.Logout(context.Background())
	store.Logout(context.Background()) // идемпотентность

	// Assert
	assert.False(t, store.Session().IsAuthenticated())
	_, _, loadErr := storage.Load(context.Background(), "sid-1")
	assert.ErrorIs(t, loadErr, ErrNotFound)
}

func TestStore_Rehydrate_RestoresSession(t *testing.T) {
	t.Parallel()

	// Arrange: запись в хранилище от "прошлой жизни" процесса
	storage := newMemStorage()
	token := signedToken(t, time.Now().Add(time.Hour))
	blob, err := json.Marshal(Identity{ID: "7", Email: "hr@test.com", Role: models.UserRoleRecruiter})
	require.NoError(t, err)
	require.NoError(t, storage.Save(context.Background(), "sid-1", token, blob))

	store := NewStore("sid-1", storage, &fakeAPI{})

	// Act
	store.Rehydrate(context.Background())
	store.Rehydrate(context.Background()) // повторная регидрация безвредна

	// Assert
	sess := store.Session()
	assert.True(t, sess.IsRecruiter())
	assert.Equal(t, "7", sess.User.ID)
	assert.Equal(t, token, sess.Token)
}

func TestStore_Rehydrate_NoRecord(t *testing.T) {
	t.Parallel()

	storage := newMemStorage()
	store := NewStore("sid-1", storage, &fakeAPI{})

	store.Rehydrate(context.Background())

	assert.False(t, store.Session().IsAuthenticated())
	// Отсутствие записи - не дефект, Clear не дергается
	assert.Zero(t, storage.clears)
}

func TestStore_Rehydrate_CorruptRecordClearsStorage(t *testing.T) {
	t.Parallel()

	validBlob, err := json.Marshal(Identity{ID: "42", Email: "model@test.com", Role: models.UserRoleUser})
	require.NoError(t, err)

	cases := []struct {
		name  string
		token string
		blob  []byte
	}{
		{"нечитаемый блоб", signedToken(t, time.Now().Add(time.Hour)), []byte("{not json")},
		{"пустая идентичность", signedToken(t, time.Now().Add(time.Hour)), []byte(`{}`)},
		{"неизвестная роль", signedToken(t, time.Now().Add(time.Hour)), []byte(`{"id":"1","email":"a@b.c","role":"admin"}`)},
		{"не-JWT токен", "garbage-token", validBlob},
		{"истекший токен", signedToken(t, time.Now().Add(-time.Hour)), validBlob},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// Arrange
			storage := newMemStorage()
			require.NoError(t, storage.Save(context.Background(), "sid-1", tc.token, tc.blob))
			store := NewStore("sid-1", storage, &fakeAPI{})

			// Act: не должно ни паниковать, ни возвращать ошибку
			store.Rehydrate(context.Background())

			// Assert: разлогинен, битая запись стерта
			assert.False(t, store.Session().IsAuthenticated())
			_, _, loadErr := storage.Load(context.Background(), "sid-1")
			assert.ErrorIs(t, loadErr, ErrNotFound)
		})
	}
}

func TestStore_Rehydrate_UnreadableStorage(t *testing.T) {
	t.Parallel()

	// Arrange: Load отдает произвольную ошибку (битый файл на диске)
	storage := newMemStorage()
	storage.loadErr = errors.New("record corrupted")
	store := NewStore("sid-1", storage, &fakeAPI{})

	// Act
	store.Rehydrate(context.Background())

	// Assert: деградация в "разлогинен" + попытка очистки
	assert.False(t, store.Session().IsAuthenticated())
	assert.Equal(t, 1, storage.clears)
}

func TestStore_SessionSnapshotIsolated(t *testing.T) {
	t.Parallel()

	// Arrange
	storage := newMemStorage()
	api := &fakeAPI{
		loginFn: func(_ context.Context, _, _ string) (*upstream.LoginResult, error) {
			return userLoginResult(t), nil
		},
	}
	store := NewStore("sid-1", storage, api)
	require.NoError(t, store.Login(context.Background(), "model@test.com", "pass", models.UserRoleUser))

	// Act: мутация снимка
	snapshot := store.Session()
	snapshot.User.Email = "hacked@test.com"

	// Assert: внутреннее состояние не изменилось
	assert.Equal(t, "model@test.com", store.Session().User.Email)
}
