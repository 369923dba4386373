package upstream

import "encoding/json"

// LoginResult - ответ POST /api/auth/login.
// API отдает ровно один из user_id/recruiter_id в зависимости от user_type.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserType    string `json:"user_type"`
	UserID      *int   `json:"user_id,omitempty"`
	RecruiterID *int   `json:"recruiter_id,omitempty"`
}

// RegisterUserRequest - тело POST /api/auth/register-user
type RegisterUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// RegisterRecruiterRequest - тело POST /api/auth/register-recruiter
type RegisterRecruiterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	CompanyName string `json:"company_name"`
}

// Job - вакансия из PathFinder API
type Job struct {
	ID             int      `json:"id"`
	RecruiterID    int      `json:"recruiter_id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	SkillsRequired []string `json:"skills_required"`
	Location       string   `json:"location,omitempty"`
	Salary         string   `json:"salary,omitempty"`
	Industry       string   `json:"industry,omitempty"`
	Status         string   `json:"status"`
	CreatedAt      string   `json:"created_at"`
}

// Career - рекомендация карьеры из POST /api/ai/recommend-careers
type Career struct {
	Career          string   `json:"career"`
	SimilarityScore *float64 `json:"similarity_score,omitempty"`
	RequiredSkills  []string `json:"required_skills,omitempty"`
}

type careersResponse struct {
	Careers []Career `json:"careers"`
}

type chatRequest struct {
	Message string `json:"message"`
}

// rawOrEmpty защищает от upstream, вернувшего пустое тело там,
// где ожидался JSON-объект
func rawOrEmpty(body []byte) json.RawMessage {
	if len(body) == 0 {
		return json.RawMessage(`{}`)
	}
	return json.RawMessage(body)
}
