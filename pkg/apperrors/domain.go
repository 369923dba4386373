package apperrors

import "net/http"

/*
Этот файл содержит предопределенные переменные и фабрики
для доменных ошибок шлюза.
*/

// =========================================================================
// Аутентификация и сессии
// =========================================================================

var (
	// ErrInvalidCredentials - неверная пара email/пароль (или роль не совпала)
	ErrInvalidCredentials = New(CodeInvalidCredentials, "auth", "Incorrect email or password", http.StatusUnauthorized)

	// ErrUnauthorized - нет живой сессии
	ErrUnauthorized = New(CodeUnauthorized, "auth", "Authentication required", http.StatusUnauthorized)

	// ErrForbidden - сессия есть, но роль не подходит
	ErrForbidden = New(CodeForbidden, "auth", "Access denied", http.StatusForbidden)

	// ErrInvalidUserRole - роль вне закрытого набора user/recruiter
	ErrInvalidUserRole = New(CodeInvalidOperation, "auth", "Invalid user role", http.StatusBadRequest)
)

// =========================================================================
// Upstream (PathFinder API)
// =========================================================================

// ErrUpstreamUnavailable - транспортная ошибка до upstream (нет ответа, таймаут).
// Пользователю уходит общий текст, исходная ошибка остается в Err для логов.
func ErrUpstreamUnavailable(err error) *AppError {
	return Wrap(err, CodeExternalServiceError, "upstream",
		"Career service is temporarily unavailable. Please try again later.",
		http.StatusBadGateway)
}

// ErrUpstream - осмысленный отказ upstream: статус и расплющенный detail
// пробрасываются клиенту как есть.
func ErrUpstream(httpCode int, message string) *AppError {
	code := CodeExternalServiceError
	switch httpCode {
	case http.StatusUnauthorized:
		code = CodeInvalidCredentials
	case http.StatusNotFound:
		code = CodeNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		code = CodeValidationFailed
	case http.StatusConflict:
		code = CodeAlreadyExists
	}
	return New(code, "upstream", message, httpCode)
}
