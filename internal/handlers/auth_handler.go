package handlers

import (
	"net/http"

	"pathfinder_gateway/internal/dto"
	"pathfinder_gateway/internal/guard"
	"pathfinder_gateway/internal/session"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
}

func NewAuthHandler(base *BaseHandler) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
	}
}

// RegisterRoutes регистрирует публичные маршруты аутентификации.
// Гардов здесь нет: login/register доступны всегда, корень сам решает,
// лендинг это или редирект на домашнюю страницу роли.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.Home)
	rg.GET("/session", h.CurrentSession)
	rg.GET("/login", h.LoginPage)
	rg.GET("/register", h.RegisterPage)

	auth := rg.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)
		auth.POST("/logout", h.Logout)
	}
}

// Home - корень сайта. Неаутентифицированный клиент видит лендинг,
// аутентифицированный уезжает на домашнюю страницу СВОЕЙ роли.
func (h *AuthHandler) Home(c *gin.Context) {
	store := h.Store(c)

	decision := guard.DecideHome(store.Session())
	if !decision.Allow {
		c.Redirect(http.StatusFound, decision.Redirect)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":    "landing",
		"session": SessionResponse(store.Session()),
	})
}

// LoginPage - страница входа. Залогиненному здесь делать нечего -
// уезжает на домашнюю страницу своей роли.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	store := h.Store(c)

	if sess := store.Session(); sess.IsAuthenticated() {
		c.Redirect(http.StatusFound, sess.Role().HomePath())
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": "login"})
}

// RegisterPage - страница регистрации
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	store := h.Store(c)

	if sess := store.Session(); sess.IsAuthenticated() {
		c.Redirect(http.StatusFound, sess.Role().HomePath())
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": "register"})
}

// CurrentSession отдает снимок сессии клиента. Страницы дергают его,
// чтобы узнать, кто залогинен, не повторяя логику гардов.
func (h *AuthHandler) CurrentSession(c *gin.Context) {
	store := h.Store(c)
	c.JSON(http.StatusOK, SessionResponse(store.Session()))
}

// Login - вход с заявленной ролью. Успех отвечает сессией и домашней
// страницей роли, куда странице следует увести клиента.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	store := h.Store(c)

	if err := store.Login(c.Request.Context(), req.Email, req.Password, req.Role); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	sess := store.Session()
	c.JSON(http.StatusOK, gin.H{
		"session":  SessionResponse(sess),
		"redirect": sess.Role().HomePath(),
	})
}

// Register - регистрация соискателя или рекрутера.
// Успешная регистрация НЕ аутентифицирует: сессия не трогается,
// клиент идет на /login руками.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	store := h.Store(c)

	reg := session.Registration{
		Email:       req.Email,
		Password:    req.Password,
		FullName:    req.FullName,
		CompanyName: req.CompanyName,
	}
	if err := store.Register(c.Request.Context(), reg, req.Role); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Registration successful. Please log in.",
		"redirect": guard.LoginPath,
	})
}

// Logout сбрасывает сессию. Не фейлится никогда: даже если durable
// хранилище недоступно, память уже чиста и клиент разлогинен.
func (h *AuthHandler) Logout(c *gin.Context) {
	store := h.Store(c)
	store.Logout(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"message":  "Logged out",
		"redirect": guard.LoginPath,
	})
}
