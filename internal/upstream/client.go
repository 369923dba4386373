package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pathfinder_gateway/internal/logger"
	"pathfinder_gateway/pkg/apperrors"
)

// Client - клиент PathFinder API. Шлюз не реализует ни аутентификацию,
// ни AI-операции сам - все делегируется этому API.
type Client interface {
	// Auth
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	RegisterUser(ctx context.Context, req RegisterUserRequest) error
	RegisterRecruiter(ctx context.Context, req RegisterRecruiterRequest) error

	// Профиль соискателя
	GetProfile(ctx context.Context, token string) (json.RawMessage, error)
	CreateProfile(ctx context.Context, token string, profile json.RawMessage) (json.RawMessage, error)
	UpdateProfile(ctx context.Context, token string, profile json.RawMessage) (json.RawMessage, error)
	UploadResume(ctx context.Context, token, filename string, file io.Reader, contentType string) (json.RawMessage, error)

	// Вакансии
	ListJobs(ctx context.Context, skip, limit int) ([]Job, error)
	CreateJob(ctx context.Context, token string, job json.RawMessage) (json.RawMessage, error)
	ListRecruiterJobs(ctx context.Context, token string) ([]Job, error)
	UpdateJob(ctx context.Context, token string, jobID int, job json.RawMessage) (json.RawMessage, error)
	CloseJob(ctx context.Context, token string, jobID int) error

	// AI-операции
	RecommendCareers(ctx context.Context, token string) ([]Career, error)
	MatchJobs(ctx context.Context, token string) (json.RawMessage, error)
	GenerateRoadmap(ctx context.Context, token string, req json.RawMessage) (json.RawMessage, error)
	SkillGapAnalysis(ctx context.Context, token string) (json.RawMessage, error)
	StrengthsWeaknesses(ctx context.Context, token string) (json.RawMessage, error)
	Chat(ctx context.Context, token, message string) (json.RawMessage, error)
}

type ClientImpl struct {
	baseURL string
	http    *http.Client
}

// NewClient создает клиент PathFinder API.
// timeout - общий таймаут транспорта; ошибки таймаута уходят пользователю
// тем же общим текстом, что и остальные транспортные ошибки.
func NewClient(baseURL string, timeout time.Duration) Client {
	return &ClientImpl{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// do выполняет запрос и возвращает тело успешного ответа.
// Любой не-2xx ответ превращается в AppError с расплющенным detail,
// любая транспортная ошибка - в ErrUpstreamUnavailable.
func (c *ClientImpl) do(req *http.Request, fallback string) ([]byte, error) {
	start := time.Now()

	res, err := c.http.Do(req)
	if err != nil {
		logger.UpstreamLog(req.Method, req.URL.Path, 0, time.Since(start), err)
		return nil, apperrors.ErrUpstreamUnavailable(err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	logger.UpstreamLog(req.Method, req.URL.Path, res.StatusCode, time.Since(start), err)
	if err != nil {
		return nil, apperrors.ErrUpstreamUnavailable(err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, apperrors.ErrUpstream(res.StatusCode, apperrors.FlattenDetail(body, fallback))
	}

	return body, nil
}

// doJSON отправляет JSON-запрос (или GET/DELETE без тела) и возвращает тело ответа
func (c *ClientImpl) doJSON(ctx context.Context, method, path, token string, payload []byte, fallback string) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.do(req, fallback)
}

// doForm отправляет form-urlencoded запрос (логин OAuth2PasswordRequestForm)
func (c *ClientImpl) doForm(ctx context.Context, path string, form url.Values, fallback string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.do(req, fallback)
}

func decode[T any](body []byte) (*T, error) {
	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, apperrors.ErrUpstreamUnavailable(fmt.Errorf("malformed upstream response: %w", err))
	}
	return &out, nil
}
