package dto

import "pathfinder_gateway/internal/models"

// LoginRequest - запрос входа.
// Роль заявляется формой: форма соискателя шлет "user", форма рекрутера -
// "recruiter". Несовпадение заявленной роли с реальной - ошибка входа.
type LoginRequest struct {
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required"`
	Role     models.UserRole `json:"role" validate:"required,is-user-role"`
}

// RegisterRequest - запрос регистрации.
// Соискателю обязательно имя, рекрутеру - название компании.
type RegisterRequest struct {
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,min=8"`
	Role     models.UserRole `json:"role" validate:"required,is-user-role"`

	// Поля для соискателя
	FullName string `json:"full_name,omitempty" validate:"required_if=Role user"`

	// Поля для рекрутера
	CompanyName string `json:"company_name,omitempty" validate:"required_if=Role recruiter"`
}

// SessionResponse - как сессия выглядит для страниц
type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	ID            string `json:"id,omitempty"`
	Email         string `json:"email,omitempty"`
	Role          string `json:"role,omitempty"`
}
