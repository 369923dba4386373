package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
)

// GetProfile возвращает профиль соискателя как есть - шлюз его не интерпретирует
func (c *ClientImpl) GetProfile(ctx context.Context, token string) (json.RawMessage, error) {
	body, err := c.doJSON(ctx, http.MethodGet, "/api/user/profile", token, nil, "Failed to load profile")
	if err != nil {
		return nil, err
	}
	return rawOrEmpty(body), nil
}

// CreateProfile создает профиль соискателя
func (c *ClientImpl) CreateProfile(ctx context.Context, token string, profile json.RawMessage) (json.RawMessage, error) {
	body, err := c.doJSON(ctx, http.MethodPost, "/api/user/profile", token, profile, "Failed to create profile")
	if err != nil {
		return nil, err
	}
	return rawOrEmpty(body), nil
}

// UpdateProfile обновляет профиль соискателя
func (c *ClientImpl) UpdateProfile(ctx context.Context, token string, profile json.RawMessage) (json.RawMessage, error) {
	body, err := c.doJSON(ctx, http.MethodPut, "/api/user/profile", token, profile, "Failed to update profile")
	if err != nil {
		return nil, err
	}
	return rawOrEmpty(body), nil
}

// UploadResume пробрасывает файл резюме в upstream multipart-запросом.
// Извлечение текста и навыков происходит на стороне PathFinder API.
func (c *ClientImpl) UploadResume(ctx context.Context, token, filename string, file io.Reader, contentType string) (json.RawMessage, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/user/upload-resume", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	body, err := c.do(req, "Failed to upload resume")
	if err != nil {
		return nil, err
	}
	return rawOrEmpty(body), nil
}
