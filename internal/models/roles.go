package models

import "fmt"

// UserRole - роль пользователя платформы.
// Закрытый набор: соискатель (user) и рекрутер (recruiter).
// Никакой третьей роли в шлюзе не существует, все switch по ролям исчерпывающие.
type UserRole string

const (
	UserRoleUser      UserRole = "user"
	UserRoleRecruiter UserRole = "recruiter"
)

// ParseUserRole преобразует строку (из формы или из upstream-ответа) в UserRole.
// Неизвестная строка - ошибка, а не "какая-то роль".
func ParseUserRole(s string) (UserRole, error) {
	switch UserRole(s) {
	case UserRoleUser:
		return UserRoleUser, nil
	case UserRoleRecruiter:
		return UserRoleRecruiter, nil
	default:
		return "", fmt.Errorf("unknown user role: %q", s)
	}
}

// Valid сообщает, является ли значение одной из двух известных ролей.
func (r UserRole) Valid() bool {
	return r == UserRoleUser || r == UserRoleRecruiter
}

// HomePath возвращает домашний маршрут роли.
// Соискатель живет на /dashboard, рекрутер - на /recruiter/dashboard.
func (r UserRole) HomePath() string {
	switch r {
	case UserRoleRecruiter:
		return "/recruiter/dashboard"
	default:
		return "/dashboard"
	}
}
