package session

import "pathfinder_gateway/internal/models"

// Identity - кто залогинен: id, email и роль из закрытого набора.
type Identity struct {
	ID    string          `json:"id"`
	Email string          `json:"email"`
	Role  models.UserRole `json:"role"`
}

// Session - текущее состояние идентичности одного клиента (браузера).
// Инварианты:
//   - User и Token устанавливаются и очищаются только вместе;
//   - роль неизменна на протяжении жизни сессии (смена роли = logout + login);
//   - мутации происходят только через операции Store.
type Session struct {
	User  *Identity
	Token string
}

// IsAuthenticated - производное состояние: есть и идентичность, и токен
func (s Session) IsAuthenticated() bool {
	return s.User != nil && s.Token != ""
}

// IsUser сообщает, что сессия принадлежит соискателю.
// IsUser и IsRecruiter взаимоисключающие; обе false без аутентификации.
func (s Session) IsUser() bool {
	return s.IsAuthenticated() && s.User.Role == models.UserRoleUser
}

// IsRecruiter сообщает, что сессия принадлежит рекрутеру
func (s Session) IsRecruiter() bool {
	return s.IsAuthenticated() && s.User.Role == models.UserRoleRecruiter
}

// Role возвращает роль сессии (пустая строка без аутентификации)
func (s Session) Role() models.UserRole {
	if !s.IsAuthenticated() {
		return ""
	}
	return s.User.Role
}
