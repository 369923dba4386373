package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// Login - обмен учетных данных на токен.
// PathFinder API принимает OAuth2-форму: email уходит в поле username.
func (c *ClientImpl) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	body, err := c.doForm(ctx, "/api/auth/login", form, "Login failed")
	if err != nil {
		return nil, err
	}

	return decode[LoginResult](body)
}

// RegisterUser - регистрация соискателя.
// Успешный ответ не содержит токена: регистрация никого не логинит.
func (c *ClientImpl) RegisterUser(ctx context.Context, req RegisterUserRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return err
	}

	_, err = c.doJSON(ctx, http.MethodPost, "/api/auth/register-user", "", payload, "Registration failed")
	return err
}

// RegisterRecruiter - регистрация рекрутера
func (c *ClientImpl) RegisterRecruiter(ctx context.Context, req RegisterRecruiterRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return err
	}

	_, err = c.doJSON(ctx, http.MethodPost, "/api/auth/register-recruiter", "", payload, "Registration failed")
	return err
}
