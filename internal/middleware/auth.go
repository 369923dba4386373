package middleware

import (
	"net/http"

	"pathfinder_gateway/internal/guard"
	"pathfinder_gateway/internal/logger"
	"pathfinder_gateway/internal/models"
	"pathfinder_gateway/internal/session"

	"github.com/gin-gonic/gin"
)

const storeContextKey = "sessionStore"

// SessionMiddleware - middleware, привязывающее Store текущего клиента
// к запросу. Вешается на весь роутер: публичным страницам сессия тоже
// нужна (хотя бы чтобы решить, показывать лендинг или редиректить).
func SessionMiddleware(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := manager.Resolve(c)

		ctx := logger.WithSessionID(c.Request.Context(), store.ID())
		if sess := store.Session(); sess.IsAuthenticated() {
			ctx = logger.WithUserID(ctx, sess.User.ID)
		}
		c.Request = c.Request.WithContext(ctx)

		c.Set(storeContextKey, store)
		c.Next()
	}
}

// RequireRole - гард маршрута. Решение принимает guard.Decide на каждом
// запросе заново; сюда попадает только адаптация решения к HTTP:
// Allow -> c.Next(), Redirect -> 303/302 без рендера поддерева.
func RequireRole(required models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := GetStore(c)
		if store == nil {
			// SessionMiddleware не отработал - неправильно собранный роутер
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session middleware missing"})
			return
		}

		decision := guard.Decide(store.Session(), required)
		if decision.Allow {
			c.Next()
			return
		}

		redirect(c, decision.Redirect)
	}
}

// GetStore извлекает Store клиента из контекста запроса
func GetStore(c *gin.Context) *session.Store {
	val, ok := c.Get(storeContextKey)
	if !ok {
		return nil
	}

	store, ok := val.(*session.Store)
	if !ok {
		return nil
	}
	return store
}

// redirect завершает запрос редиректом: GET уезжает 302, остальные
// методы - 303, чтобы браузер повторил навигацию GET-ом.
func redirect(c *gin.Context, location string) {
	status := http.StatusFound
	if c.Request.Method != http.MethodGet {
		status = http.StatusSeeOther
	}
	c.Redirect(status, location)
	c.Abort()
}
