package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// ListJobs возвращает открытые вакансии (публичный список)
func (c *ClientImpl) ListJobs(ctx context.Context, skip, limit int) ([]Job, error) {
	path := fmt.Sprintf("/api/jobs?skip=%d&limit=%d", skip, limit)
	body, err := c.doJSON(ctx, http.MethodGet, path, "", nil, "Failed to load jobs")
	if err != nil {
		return nil, err
	}

	var jobs []Job
	if err := json.Unmarshal(body, &jobs); err != nil {
		return nil, fmt.Errorf("malformed jobs response: %w", err)
	}
	return jobs, nil
}

// CreateJob создает вакансию от имени рекрутера
func (c *ClientImpl) CreateJob(ctx context.Context, token string, job json.RawMessage) (json.RawMessage, error) {
	body, err := c.doJSON(ctx, http.MethodPost, "/api/recruiter/jobs", token, job, "Failed to create job")
	if err != nil {
		return nil, err
	}
	return rawOrEmpty(body), nil
}

// ListRecruiterJobs возвращает вакансии текущего рекрутера
func (c *ClientImpl) ListRecruiterJobs(ctx context.Context, token string) ([]Job, error) {
	body, err := c.doJSON(ctx, http.MethodGet, "/api/recruiter/jobs", token, nil, "Failed to load jobs")
	if err != nil {
		return nil, err
	}

	var jobs []Job
	if err := json.Unmarshal(body, &jobs); err != nil {
		return nil, fmt.Errorf("malformed jobs response: %w", err)
	}
	return jobs, nil
}

// UpdateJob обновляет вакансию рекрутера
func (c *ClientImpl) UpdateJob(ctx context.Context, token string, jobID int, job json.RawMessage) (json.RawMessage, error) {
	path := fmt.Sprintf("/api/recruiter/jobs/%d", jobID)
	body, err := c.doJSON(ctx, http.MethodPut, path, token, job, "Failed to update job")
	if err != nil {
		return nil, err
	}
	return rawOrEmpty(body), nil
}

// CloseJob закрывает вакансию (upstream реализует это через DELETE)
func (c *ClientImpl) CloseJob(ctx context.Context, token string, jobID int) error {
	path := fmt.Sprintf("/api/recruiter/jobs/%d", jobID)
	_, err := c.doJSON(ctx, http.MethodDelete, path, token, nil, "Failed to close job")
	return err
}
