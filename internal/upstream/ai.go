package upstream

import (
	"context"
	"encoding/json"
	"net/http"
)

// RecommendCareers - AI-рекомендации карьер по навыкам из профиля.
// Единственный AI-ответ, который шлюз разбирает по полям:
// список карьер фильтруется перед отдачей страницам.
func (c *ClientImpl) RecommendCareers(ctx context.Context, token string) ([]Career, error) {
	body, err := c.doJSON(ctx, http.MethodPost, "/api/ai/recommend-careers", token, nil, "Failed to load recommendations")
	if err != nil {
		return nil, err
	}

	res, err := decode[careersResponse](body)
	if err != nil {
		return nil, err
	}
	return res.Careers, nil
}

// MatchJobs - подбор вакансий по резюме
func (c *ClientImpl) MatchJobs(ctx context.Context, token string) (json.RawMessage, error) {
	body, err := c.doJSON(ctx, http.MethodPost, "/api/ai/match-jobs", token, nil, "Failed to match jobs")
	if err != nil {
		return nil, err
	}
	return rawOrEmpty(body), nil
}

// GenerateRoadmap - генерация карьерного роадмапа
func (c *ClientImpl) GenerateRoadmap(ctx context.Context, token string, req json.RawMessage) (json.RawMessage, error) {
	body, err := c.doJSON(ctx, http.MethodPost, "/api/ai/generate-roadmap", token, req, "Failed to generate roadmap")
	if err != nil {
		return nil, err
	}
	return rawOrEmpty(body), nil
}

// SkillGapAnalysis - анализ разрыва навыков
func (c *ClientImpl) SkillGapAnalysis(ctx context.Context, token string) (json.RawMessage, error) {
	body, err := c.doJSON(ctx, http.MethodPost, "/api/ai/skill-gap-analysis", token, nil, "Failed to analyze skill gap")
	if err != nil {
		return nil, err
	}
	return rawOrEmpty(body), nil
}

// StrengthsWeaknesses - анализ сильных и слабых сторон профиля
func (c *ClientImpl) StrengthsWeaknesses(ctx context.Context, token string) (json.RawMessage, error) {
	body, err := c.doJSON(ctx, http.MethodPost, "/api/ai/strengths-weaknesses", token, nil, "Failed to analyze profile")
	if err != nil {
		return nil, err
	}
	return rawOrEmpty(body), nil
}

// Chat - карьерный AI-чат
func (c *ClientImpl) Chat(ctx context.Context, token, message string) (json.RawMessage, error) {
	payload, err := json.Marshal(chatRequest{Message: message})
	if err != nil {
		return nil, err
	}

	body, err := c.doJSON(ctx, http.MethodPost, "/api/ai/chat", token, payload, "Failed to send message")
	if err != nil {
		return nil, err
	}
	return rawOrEmpty(body), nil
}
