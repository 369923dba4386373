package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"pathfinder_gateway/internal/logger"
	"pathfinder_gateway/internal/models"
	"pathfinder_gateway/internal/upstream"
	"pathfinder_gateway/pkg/apperrors"

	"github.com/golang-jwt/jwt/v5"
)

// Registration - данные формы регистрации.
// FullName обязателен для соискателя, CompanyName - для рекрутера
// (это проверяет хендлер до вызова Store).
type Registration struct {
	Email       string
	Password    string
	FullName    string
	CompanyName string
}

// Store - единственный источник правды "кто залогинен и кем" для одного
// клиента. Все мутации сессии идут через Login/Logout (и Rehydrate при
// старте); страницы сессию только читают.
//
// Store создается инъекцией зависимостей (хранилище + upstream-клиент),
// никакого глобального состояния.
type Store struct {
	id      string // ключ в durable-хранилище (он же ID куки)
	storage Storage
	api     upstream.Client

	mu      sync.RWMutex
	current Session
}

// NewStore создает пустой (неаутентифицированный) Store
func NewStore(id string, storage Storage, api upstream.Client) *Store {
	return &Store{
		id:      id,
		storage: storage,
		api:     api,
	}
}

// ID возвращает идентификатор сессии шлюза
func (s *Store) ID() string {
	return s.id
}

// Session возвращает снимок текущей сессии.
// Наблюдатели видят либо старую, либо полностью новую сессию - никогда
// наполовину обновленную.
func (s *Store) Session() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := s.current
	if snapshot.User != nil {
		u := *snapshot.User
		snapshot.User = &u
	}
	return snapshot
}

// Login - обмен учетных данных на сессию.
// Роль заявляется клиентом и обязана совпасть с ролью, которую вернул
// upstream: рекрутер не может войти через форму соискателя.
// При любой ошибке сессия и хранилище не трогаются, наружу уходит
// человекочитаемый *apperrors.AppError - ничего не паникует и не
// пробрасывает сырые транспортные ошибки.
func (s *Store) Login(ctx context.Context, email, password string, role models.UserRole) error {
	if !role.Valid() {
		return apperrors.ErrInvalidUserRole
	}

	res, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	identity, err := identityFromLogin(email, res)
	if err != nil {
		logger.CtxWarn(ctx, "login response rejected", "reason", err.Error())
		return apperrors.ErrInvalidCredentials
	}

	if identity.Role != role {
		// Учетные данные верны, но для другой роли. Для клиента это
		// неотличимо от неверного пароля - никакой утечки ролей.
		return apperrors.ErrInvalidCredentials
	}

	blob, err := json.Marshal(identity)
	if err != nil {
		return apperrors.InternalError(err)
	}

	// Сначала durable-хранилище, потом память: если запись не удалась,
	// сессия остается прежней целиком.
	if err := s.storage.Save(ctx, s.id, res.AccessToken, blob); err != nil {
		return apperrors.InternalError(err)
	}

	s.mu.Lock()
	s.current = Session{User: identity, Token: res.AccessToken}
	s.mu.Unlock()

	logger.CtxInfo(ctx, "login successful", "role", string(identity.Role))
	return nil
}

// Register - регистрация нового аккаунта.
// Успех НЕ аутентифицирует: upstream не возвращает токен при регистрации,
// клиент обязан залогиниться отдельным шагом. Сессия не трогается ни при
// успехе, ни при ошибке.
func (s *Store) Register(ctx context.Context, reg Registration, role models.UserRole) error {
	switch role {
	case models.UserRoleUser:
		return s.api.RegisterUser(ctx, upstream.RegisterUserRequest{
			Email:    reg.Email,
			Password: reg.Password,
			FullName: reg.FullName,
		})
	case models.UserRoleRecruiter:
		return s.api.RegisterRecruiter(ctx, upstream.RegisterRecruiterRequest{
			Email:       reg.Email,
			Password:    reg.Password,
			CompanyName: reg.CompanyName,
		})
	default:
		return apperrors.ErrInvalidUserRole
	}
}

// Logout безусловно очищает сессию и durable-хранилище.
// Идемпотентен и никогда не завершается ошибкой: неудача стирания записи
// логируется, но клиент в любом случае разлогинен.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.current = Session{}
	s.mu.Unlock()

	if err := s.storage.Clear(ctx, s.id); err != nil {
		logger.CtxWithError(ctx, "failed to clear session storage on logout", err)
	}
}

// Rehydrate восстанавливает сессию из durable-хранилища (рестарт процесса
// эквивалентен перезагрузке страницы). Любой дефект записи - отсутствие
// токена или блоба, нечитаемый JSON, неизвестная роль, структурно битый
// или истекший токен - деградирует в "разлогинен" с очисткой хранилища.
// Никогда не возвращает ошибку и не паникует.
func (s *Store) Rehydrate(ctx context.Context) {
	token, blob, err := s.storage.Load(ctx, s.id)
	if err != nil {
		if err != ErrNotFound {
			// Поврежденная запись: восстановление, а не сбой
			logger.CtxWarn(ctx, "corrupt session record, clearing", "error", err.Error())
			s.clearCorrupt(ctx)
		}
		return
	}

	var identity Identity
	if err := json.Unmarshal(blob, &identity); err != nil {
		logger.CtxWarn(ctx, "unreadable session user blob, clearing", "error", err.Error())
		s.clearCorrupt(ctx)
		return
	}

	if identity.ID == "" || identity.Email == "" || !identity.Role.Valid() {
		logger.CtxWarn(ctx, "incomplete session identity, clearing")
		s.clearCorrupt(ctx)
		return
	}

	if err := validateTokenShape(token); err != nil {
		logger.CtxWarn(ctx, "stored token rejected, clearing", "error", err.Error())
		s.clearCorrupt(ctx)
		return
	}

	s.mu.Lock()
	s.current = Session{User: &identity, Token: token}
	s.mu.Unlock()
}

func (s *Store) clearCorrupt(ctx context.Context) {
	if err := s.storage.Clear(ctx, s.id); err != nil {
		logger.CtxWithError(ctx, "failed to clear corrupt session record", err)
	}

	s.mu.Lock()
	s.current = Session{}
	s.mu.Unlock()
}

// identityFromLogin собирает Identity из ответа логина.
// Email в ответе нет - берется из формы. ID приходит в одном из двух
// полей в зависимости от роли.
func identityFromLogin(email string, res *upstream.LoginResult) (*Identity, error) {
	if res.AccessToken == "" {
		return nil, fmt.Errorf("login response without access token")
	}

	role, err := models.ParseUserRole(res.UserType)
	if err != nil {
		return nil, err
	}

	var id *int
	switch role {
	case models.UserRoleUser:
		id = res.UserID
	case models.UserRoleRecruiter:
		id = res.RecruiterID
	}
	if id == nil {
		return nil, fmt.Errorf("login response without account id")
	}

	return &Identity{
		ID:    strconv.Itoa(*id),
		Email: email,
		Role:  role,
	}, nil
}

// validateTokenShape проверяет, что сохраненный токен - структурно
// валидный неистекший JWT. Подпись НЕ проверяется: ключ подписи живет
// только на стороне PathFinder API, шлюзу он не нужен - это проверка
// формы, а не подлинности.
func validateTokenShape(token string) error {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return fmt.Errorf("malformed token: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return fmt.Errorf("malformed exp claim: %w", err)
	}
	if exp != nil && exp.Before(time.Now()) {
		return fmt.Errorf("token expired at %s", exp.Time)
	}

	return nil
}
