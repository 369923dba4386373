package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"pathfinder_gateway/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRecommendations_FiltersGarbage - мусор из AI-ответа не доходит
// до страницы
func TestRecommendations_FiltersGarbage(t *testing.T) {
	t.Parallel()

	// Arrange
	ts := helpers.NewTestServer(t)
	browser := ts.BrowserClient(t)
	ts.LoginAs(t, browser, "model@test.com", "Password123", "user")

	// Act: фейковый upstream отвечает четырьмя записями, две из них битые
	res, body := ts.SendRequest(t, browser, http.MethodGet, "/recommendations", nil)

	// Assert: выжили только валидные
	require.Equal(t, http.StatusOK, res.StatusCode)

	var parsed struct {
		Careers []struct {
			Career string `json:"career"`
		} `json:"careers"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &parsed))
	require.Len(t, parsed.Careers, 2)
	assert.Equal(t, "Data Scientist", parsed.Careers[0].Career)
	assert.Equal(t, "Product Manager", parsed.Careers[1].Career)
}

// TestProfile_ProxiesUpstream - профиль отдается как есть
func TestProfile_ProxiesUpstream(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	browser := ts.BrowserClient(t)
	ts.LoginAs(t, browser, "model@test.com", "Password123", "user")

	res, body := ts.SendRequest(t, browser, http.MethodGet, "/profile", nil)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Go")
	assert.Contains(t, body, "model@test.com")
}

// TestRecruiterDashboard_CountsJobs - сводка по вакансиям
func TestRecruiterDashboard_CountsJobs(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	browser := ts.BrowserClient(t)
	ts.LoginAs(t, browser, "hr@test.com", "Password123", "recruiter")

	res, body := ts.SendRequest(t, browser, http.MethodGet, "/recruiter/dashboard", nil)

	require.Equal(t, http.StatusOK, res.StatusCode)

	var parsed struct {
		Stats struct {
			Total  int `json:"total"`
			Open   int `json:"open"`
			Closed int `json:"closed"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &parsed))
	assert.Equal(t, 2, parsed.Stats.Total)
	assert.Equal(t, 1, parsed.Stats.Open)
	assert.Equal(t, 1, parsed.Stats.Closed)
}

// TestRoadmap_ValidatesRequest - шлюз отбрасывает бессмысленный запрос
// до похода в upstream
func TestRoadmap_ValidatesRequest(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	browser := ts.BrowserClient(t)
	ts.LoginAs(t, browser, "model@test.com", "Password123", "user")

	res, body := ts.SendRequest(t, browser, http.MethodPost, "/roadmap", map[string]interface{}{
		"experience_level": "expert",
	})

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, body, "target_career")
}

// TestUpstreamDown_GenericError - недоступный PathFinder API дает общий
// человекочитаемый текст без деталей транспорта
func TestUpstreamDown_GenericError(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	browser := ts.BrowserClient(t)

	// Upstream умирает
	ts.Upstream.Close()

	res, body := ts.SendRequest(t, browser, http.MethodPost, "/auth/login", map[string]interface{}{
		"email":    "model@test.com",
		"password": "Password123",
		"role":     "user",
	})

	assert.Equal(t, http.StatusBadGateway, res.StatusCode)
	assert.Contains(t, body, "temporarily unavailable")
	assert.NotContains(t, body, "127.0.0.1")
	assert.NotContains(t, body, "connection refused")
}
