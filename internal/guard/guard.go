package guard

import (
	"pathfinder_gateway/internal/models"
	"pathfinder_gateway/internal/session"
)

// LoginPath - куда уходит неаутентифицированная навигация
const LoginPath = "/login"

// Decision - решение гарда для одной попытки навигации:
// либо рендерить запрошенное, либо редиректить.
type Decision struct {
	Allow    bool
	Redirect string // путь редиректа, когда Allow == false
}

// Decide - чистая синхронная функция авторизации маршрута. Ни сети, ни
// состояния: только снимок сессии и требуемая роль. Вызывается на каждой
// навигации заново, результат не кэшируется.
//
// Контракт:
//   - нет аутентификации -> редирект на /login;
//   - роль не совпала -> редирект на ДОМАШНИЙ маршрут СВОЕЙ роли
//     (рекрутер на соискательском маршруте попадает на /recruiter/dashboard,
//     и наоборот), без второго похода в upstream;
//   - роль совпала -> рендер.
//
// Состояние "не та роль" никогда не рендерится - оно разрешается
// редиректом в том же решении.
func Decide(sess session.Session, required models.UserRole) Decision {
	if !sess.IsAuthenticated() {
		return Decision{Redirect: LoginPath}
	}

	switch sess.Role() {
	case required:
		return Decision{Allow: true}
	case models.UserRoleUser, models.UserRoleRecruiter:
		return Decision{Redirect: sess.Role().HomePath()}
	default:
		// Роль вне закрытого набора до сюда не доходит (Store такую
		// сессию не создаст), но гард на всякий случай разлогинивает.
		return Decision{Redirect: LoginPath}
	}
}

// DecideHome - решение для корневого маршрута "/":
// неаутентифицированный клиент видит лендинг, остальные уезжают на
// домашний маршрут своей роли.
func DecideHome(sess session.Session) Decision {
	if !sess.IsAuthenticated() {
		return Decision{Allow: true}
	}
	return Decision{Redirect: sess.Role().HomePath()}
}
