package handlers

import (
	"net/http"

	"pathfinder_gateway/internal/upstream"

	"github.com/gin-gonic/gin"
)

// RecruiterHandler обслуживает страницы рекрутера: дашборд и управление
// вакансиями. Как и у соискателя, вся работа - прокси к PathFinder API.
type RecruiterHandler struct {
	*BaseHandler
	api upstream.Client
}

func NewRecruiterHandler(base *BaseHandler, api upstream.Client) *RecruiterHandler {
	return &RecruiterHandler{
		BaseHandler: base,
		api:         api,
	}
}

func (h *RecruiterHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.Dashboard)

	jobs := rg.Group("/jobs")
	{
		jobs.GET("", h.ListJobs)
		jobs.POST("", h.CreateJob)
		jobs.PUT("/:id", h.UpdateJob)
		jobs.DELETE("/:id", h.CloseJob)
	}
}

// Dashboard - домашняя страница рекрутера: сессия, вакансии и сводка
func (h *RecruiterHandler) Dashboard(c *gin.Context) {
	store := h.Store(c)
	sess := store.Session()

	jobs, err := h.api.ListRecruiterJobs(c.Request.Context(), sess.Token)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	open := 0
	for _, job := range jobs {
		if job.Status == "open" {
			open++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"session": SessionResponse(sess),
		"jobs":    jobs,
		"stats": gin.H{
			"total":  len(jobs),
			"open":   open,
			"closed": len(jobs) - open,
		},
	})
}

func (h *RecruiterHandler) ListJobs(c *gin.Context) {
	store := h.Store(c)

	jobs, err := h.api.ListRecruiterJobs(c.Request.Context(), store.Session().Token)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (h *RecruiterHandler) CreateJob(c *gin.Context) {
	store := h.Store(c)

	body, ok := h.rawJSONBody(c)
	if !ok {
		return
	}

	raw, err := h.api.CreateJob(c.Request.Context(), store.Session().Token, body)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	writeRawJSON(c, http.StatusCreated, raw)
}

func (h *RecruiterHandler) UpdateJob(c *gin.Context) {
	jobID, err := ParseParamInt(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	store := h.Store(c)

	body, ok := h.rawJSONBody(c)
	if !ok {
		return
	}

	raw, err := h.api.UpdateJob(c.Request.Context(), store.Session().Token, jobID, body)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	writeRawJSON(c, http.StatusOK, raw)
}

func (h *RecruiterHandler) CloseJob(c *gin.Context) {
	jobID, err := ParseParamInt(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	store := h.Store(c)

	if err := h.api.CloseJob(c.Request.Context(), store.Session().Token, jobID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job closed"})
}
