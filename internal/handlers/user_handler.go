package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"pathfinder_gateway/internal/careers"
	"pathfinder_gateway/internal/dto"
	"pathfinder_gateway/internal/logger"
	"pathfinder_gateway/internal/upstream"
	"pathfinder_gateway/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// UserHandler обслуживает страницы соискателя. Данные он не хранит и не
// считает - каждая операция проксирует PathFinder API с токеном текущей
// сессии, приводя ответ к виду, который ждет страница.
type UserHandler struct {
	*BaseHandler
	api upstream.Client
}

func NewUserHandler(base *BaseHandler, api upstream.Client) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		api:         api,
	}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.Dashboard)

	profile := rg.Group("/profile")
	{
		profile.GET("", h.GetProfile)
		profile.POST("", h.CreateProfile)
		profile.PUT("", h.UpdateProfile)
		profile.POST("/resume", h.UploadResume)
	}

	rg.GET("/recommendations", h.Recommendations)
	rg.GET("/jobs", h.Jobs)
	rg.GET("/jobs/matches", h.JobMatches)
	rg.POST("/roadmap", h.GenerateRoadmap)
	rg.GET("/analysis", h.Analysis)
	rg.POST("/chat", h.Chat)
}

// Dashboard - домашняя страница соискателя: сессия плюс профиль.
// Отсутствие профиля (еще не создан) - не ошибка, страница покажет
// онбординг.
func (h *UserHandler) Dashboard(c *gin.Context) {
	store := h.Store(c)
	sess := store.Session()

	var profile json.RawMessage
	raw, err := h.api.GetProfile(c.Request.Context(), sess.Token)
	switch {
	case err == nil:
		profile = raw
	case isNotFound(err):
		profile = nil
	default:
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session": SessionResponse(sess),
		"profile": profile,
	})
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	store := h.Store(c)

	raw, err := h.api.GetProfile(c.Request.Context(), store.Session().Token)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	writeRawJSON(c, http.StatusOK, raw)
}

func (h *UserHandler) CreateProfile(c *gin.Context) {
	store := h.Store(c)

	body, ok := h.rawJSONBody(c)
	if !ok {
		return
	}

	raw, err := h.api.CreateProfile(c.Request.Context(), store.Session().Token, body)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	writeRawJSON(c, http.StatusCreated, raw)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	store := h.Store(c)

	body, ok := h.rawJSONBody(c)
	if !ok {
		return
	}

	raw, err := h.api.UpdateProfile(c.Request.Context(), store.Session().Token, body)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	writeRawJSON(c, http.StatusOK, raw)
}

// UploadResume принимает multipart-файл "file" и отдает его PathFinder API
// на разбор. Извлеченные навыки возвращаются как есть.
func (h *UserHandler) UploadResume(c *gin.Context) {
	store := h.Store(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Resume file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	raw, err := h.api.UploadResume(c.Request.Context(), store.Session().Token, fileHeader.Filename, file, contentType)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	writeRawJSON(c, http.StatusOK, raw)
}

// Recommendations - карьерные рекомендации. Ответ AI фильтруется:
// мусорные записи (пустое название, score вне [0,100], NaN) молча
// выбрасываются, страница всегда получает корректный список.
func (h *UserHandler) Recommendations(c *gin.Context) {
	store := h.Store(c)

	list, err := h.api.RecommendCareers(c.Request.Context(), store.Session().Token)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	valid := careers.FilterValidCareers(list)
	if dropped := len(list) - len(valid); dropped > 0 {
		logger.CtxWarn(c.Request.Context(), "Dropped invalid career recommendations", "dropped", dropped)
	}

	c.JSON(http.StatusOK, gin.H{"careers": valid})
}

func (h *UserHandler) Jobs(c *gin.Context) {
	var q dto.JobsQuery
	if !h.BindAndValidate_Query(c, &q) {
		return
	}
	if q.Limit == 0 {
		q.Limit = 20
	}

	jobs, err := h.api.ListJobs(c.Request.Context(), q.Skip, q.Limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (h *UserHandler) JobMatches(c *gin.Context) {
	store := h.Store(c)

	raw, err := h.api.MatchJobs(c.Request.Context(), store.Session().Token)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	writeRawJSON(c, http.StatusOK, raw)
}

func (h *UserHandler) GenerateRoadmap(c *gin.Context) {
	var req dto.RoadmapRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	store := h.Store(c)

	payload, err := json.Marshal(req)
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}

	raw, err := h.api.GenerateRoadmap(c.Request.Context(), store.Session().Token, payload)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	writeRawJSON(c, http.StatusOK, raw)
}

// Analysis - страница анализа: разрыв навыков и сильные/слабые стороны
// одним ответом.
func (h *UserHandler) Analysis(c *gin.Context) {
	store := h.Store(c)
	ctx := c.Request.Context()
	token := store.Session().Token

	skillGap, err := h.api.SkillGapAnalysis(ctx, token)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	strengths, err := h.api.StrengthsWeaknesses(ctx, token)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"skill_gap":            skillGap,
		"strengths_weaknesses": strengths,
	})
}

func (h *UserHandler) Chat(c *gin.Context) {
	var req dto.ChatRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	store := h.Store(c)

	raw, err := h.api.Chat(c.Request.Context(), store.Session().Token, req.Message)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	writeRawJSON(c, http.StatusOK, raw)
}

// ============================================================================
// Вспомогательное: сквозной JSON
// ============================================================================

// rawJSONBody читает тело запроса как непрозрачный JSON для передачи
// upstream. Формат тела проверяет PathFinder API, шлюз - только что
// тело есть и это JSON.
func (h *BaseHandler) rawJSONBody(c *gin.Context) (json.RawMessage, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Failed to read request body"))
		return nil, false
	}
	if len(body) == 0 || !json.Valid(body) {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Request body must be valid JSON"))
		return nil, false
	}
	return body, true
}

func writeRawJSON(c *gin.Context, status int, raw json.RawMessage) {
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}
	c.Data(status, "application/json; charset=utf-8", raw)
}

// isNotFound - upstream ответил 404
func isNotFound(err error) bool {
	appErr, ok := apperrors.AsAppError(err)
	return ok && appErr.HTTPCode == http.StatusNotFound
}
