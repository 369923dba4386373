package dto

// RoadmapRequest - запрос генерации роадмапа
type RoadmapRequest struct {
	TargetCareer    string   `json:"target_career" validate:"required"`
	MissingSkills   []string `json:"missing_skills,omitempty"`
	ExperienceLevel string   `json:"experience_level,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`
	TimeCommitment  string   `json:"time_commitment,omitempty" validate:"omitempty,oneof=part-time full-time"`
}

// ChatRequest - сообщение карьерному AI-ассистенту
type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

// JobsQuery - пагинация публичного списка вакансий
type JobsQuery struct {
	Skip  int `form:"skip" validate:"omitempty,min=0"`
	Limit int `form:"limit" validate:"omitempty,min=1,max=100"`
}
