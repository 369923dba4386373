package handlers

import (
	"pathfinder_gateway/internal/upstream"
	"pathfinder_gateway/internal/validator"
)

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler      *AuthHandler
	UserHandler      *UserHandler
	RecruiterHandler *RecruiterHandler
}

// NewAppHandlers собирает хэндлеры с общим BaseHandler
func NewAppHandlers(v *validator.Validator, api upstream.Client) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		AuthHandler:      NewAuthHandler(base),
		UserHandler:      NewUserHandler(base, api),
		RecruiterHandler: NewRecruiterHandler(base, api),
	}
}
