package integration_test

import (
	"net/http"
	"testing"

	"pathfinder_gateway/test/helpers"

	"github.com/stretchr/testify/assert"
)

// TestGuard_AnonymousRedirectedToLogin - аноним не видит защищенных страниц
func TestGuard_AnonymousRedirectedToLogin(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	browser := ts.BrowserClient(t)

	paths := []string{
		"/dashboard",
		"/profile",
		"/recommendations",
		"/jobs",
		"/analysis",
		"/recruiter/dashboard",
		"/recruiter/jobs",
	}

	for _, path := range paths {
		res, _ := ts.SendRequest(t, browser, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusFound, res.StatusCode, "path %s", path)
		assert.Equal(t, "/login", res.Header.Get("Location"), "path %s", path)
	}
}

// TestGuard_WrongRoleRedirectedToOwnHome - чужая роль уводится на СВОЮ
// домашнюю страницу, а не на /login
func TestGuard_WrongRoleRedirectedToOwnHome(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)

	// Соискатель лезет в поддерево рекрутера
	userBrowser := ts.BrowserClient(t)
	ts.LoginAs(t, userBrowser, "model@test.com", "Password123", "user")

	res, _ := ts.SendRequest(t, userBrowser, http.MethodGet, "/recruiter/dashboard", nil)
	assert.Equal(t, http.StatusFound, res.StatusCode)
	assert.Equal(t, "/dashboard", res.Header.Get("Location"))

	// Рекрутер лезет в поддерево соискателя
	hrBrowser := ts.BrowserClient(t)
	ts.LoginAs(t, hrBrowser, "hr@test.com", "Password123", "recruiter")

	res2, _ := ts.SendRequest(t, hrBrowser, http.MethodGet, "/dashboard", nil)
	assert.Equal(t, http.StatusFound, res2.StatusCode)
	assert.Equal(t, "/recruiter/dashboard", res2.Header.Get("Location"))

	// POST на чужой маршрут уезжает 303, чтобы браузер повторил GET
	res3, _ := ts.SendRequest(t, userBrowser, http.MethodPost, "/recruiter/jobs", map[string]interface{}{"title": "X"})
	assert.Equal(t, http.StatusSeeOther, res3.StatusCode)
	assert.Equal(t, "/dashboard", res3.Header.Get("Location"))
}

// TestHome_RedirectsByRole - корень сайта разводит клиентов по ролям
func TestHome_RedirectsByRole(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)

	// Аноним видит лендинг
	anon := ts.BrowserClient(t)
	res, body := ts.SendRequest(t, anon, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "landing")

	// Соискатель уезжает на свой дашборд
	userBrowser := ts.BrowserClient(t)
	ts.LoginAs(t, userBrowser, "model@test.com", "Password123", "user")
	res2, _ := ts.SendRequest(t, userBrowser, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusFound, res2.StatusCode)
	assert.Equal(t, "/dashboard", res2.Header.Get("Location"))

	// Рекрутер - на свой
	hrBrowser := ts.BrowserClient(t)
	ts.LoginAs(t, hrBrowser, "hr@test.com", "Password123", "recruiter")
	res3, _ := ts.SendRequest(t, hrBrowser, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusFound, res3.StatusCode)
	assert.Equal(t, "/recruiter/dashboard", res3.Header.Get("Location"))
}

// TestClients_Isolated - у каждого браузера своя сессия
func TestClients_Isolated(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)

	userBrowser := ts.BrowserClient(t)
	ts.LoginAs(t, userBrowser, "model@test.com", "Password123", "user")

	// Второй браузер ничего не знает о первом
	other := ts.BrowserClient(t)
	res, body := ts.SendRequest(t, other, http.MethodGet, "/session", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, `"authenticated":false`)

	// Logout второго не задевает первого
	ts.SendRequest(t, other, http.MethodPost, "/auth/logout", nil)
	res2, body2 := ts.SendRequest(t, userBrowser, http.MethodGet, "/session", nil)
	assert.Equal(t, http.StatusOK, res2.StatusCode)
	assert.Contains(t, body2, `"authenticated":true`)
}
