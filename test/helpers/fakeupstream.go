package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// FakeAccount - учетная запись фейкового PathFinder API
type FakeAccount struct {
	Password string
	Role     string // user, recruiter
	ID       int
}

// FakeUpstream эмулирует PathFinder API: формы логина, регистрацию,
// профиль, вакансии и AI-эндпоинты. Ошибки отвечает в стиле FastAPI -
// {"detail": ...} строкой или списком ошибок валидации.
type FakeUpstream struct {
	Server *httptest.Server

	mu       sync.Mutex
	accounts map[string]*FakeAccount
	tokens   map[string]string // token -> email
	nextID   int
}

func NewFakeUpstream() *FakeUpstream {
	f := &FakeUpstream{
		accounts: map[string]*FakeAccount{
			"model@test.com": {Password: "Password123", Role: "user", ID: 42},
			"hr@test.com":    {Password: "Password123", Role: "recruiter", ID: 7},
		},
		tokens: make(map[string]string),
		nextID: 100,
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	return f
}

func (f *FakeUpstream) Close() {
	f.Server.Close()
}

func (f *FakeUpstream) handle(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/auth/login" && r.Method == http.MethodPost:
		f.handleLogin(w, r)
	case r.URL.Path == "/api/auth/register-user" && r.Method == http.MethodPost:
		f.handleRegister(w, r, "user", "full_name")
	case r.URL.Path == "/api/auth/register-recruiter" && r.Method == http.MethodPost:
		f.handleRegister(w, r, "recruiter", "company_name")
	case r.URL.Path == "/api/user/profile":
		f.withAuth(w, r, func(email string) {
			writeJSON(w, http.StatusOK, map[string]any{
				"email":  email,
				"skills": []string{"Go", "SQL"},
			})
		})
	case r.URL.Path == "/api/jobs" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": 1, "recruiter_id": 7, "title": "Go Developer", "status": "open"},
		})
	case r.URL.Path == "/api/recruiter/jobs" && r.Method == http.MethodGet:
		f.withAuth(w, r, func(string) {
			writeJSON(w, http.StatusOK, []map[string]any{
				{"id": 1, "recruiter_id": 7, "title": "Go Developer", "status": "open"},
				{"id": 2, "recruiter_id": 7, "title": "Old Vacancy", "status": "closed"},
			})
		})
	case r.URL.Path == "/api/ai/recommend-careers" && r.Method == http.MethodPost:
		f.withAuth(w, r, func(string) {
			// Намеренно грязный ответ: шлюз обязан отфильтровать мусор
			writeJSON(w, http.StatusOK, map[string]any{
				"careers": []map[string]any{
					{"career": "Data Scientist", "similarity_score": 87.5, "required_skills": []string{"Python"}},
					{"career": "", "similarity_score": 50.0},
					{"career": "Broken", "similarity_score": 150.0},
					{"career": "Product Manager"},
				},
			})
		})
	default:
		writeJSON(w, http.StatusNotFound, map[string]any{"detail": "Not Found"})
	}
}

func (f *FakeUpstream) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "Invalid form"})
		return
	}
	email := r.PostForm.Get("username")
	password := r.PostForm.Get("password")

	f.mu.Lock()
	defer f.mu.Unlock()

	acc, ok := f.accounts[email]
	if !ok || acc.Password != password {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Incorrect email or password"})
		return
	}

	token := f.issueToken(email)
	res := map[string]any{
		"access_token": token,
		"token_type":   "bearer",
		"user_type":    acc.Role,
	}
	if acc.Role == "recruiter" {
		res["recruiter_id"] = acc.ID
	} else {
		res["user_id"] = acc.ID
	}
	writeJSON(w, http.StatusOK, res)
}

func (f *FakeUpstream) handleRegister(w http.ResponseWriter, r *http.Request, role, requiredField string) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "Invalid body"})
		return
	}

	email, _ := body["email"].(string)
	password, _ := body["password"].(string)
	if field, _ := body[requiredField].(string); field == "" {
		// FastAPI-стиль ошибки валидации
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]any{
				{"loc": []any{"body", requiredField}, "msg": "field required", "type": "value_error.missing"},
			},
		})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.accounts[email]; exists {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "Email already registered"})
		return
	}

	f.nextID++
	f.accounts[email] = &FakeAccount{Password: password, Role: role, ID: f.nextID}

	// Как и настоящий API: никакого токена в ответе регистрации
	writeJSON(w, http.StatusOK, map[string]any{"id": f.nextID, "email": email})
}

func (f *FakeUpstream) withAuth(w http.ResponseWriter, r *http.Request, next func(email string)) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

	f.mu.Lock()
	email, ok := f.tokens[token]
	f.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Could not validate credentials"})
		return
	}
	next(email)
}

// issueToken выпускает подписанный JWT со сроком жизни час.
// Вызывается под мьютексом.
func (f *FakeUpstream) issueToken(email string) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": email,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("fake-upstream-secret"))
	if err != nil {
		panic(fmt.Sprintf("failed to sign fake token: %v", err))
	}
	f.tokens[token] = email
	return token
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
