// Package careers содержит мелкие утилиты нормализации данных,
// приходящих от AI-эндпоинтов PathFinder API.
package careers

import (
	"math"
	"strings"

	"pathfinder_gateway/internal/upstream"
)

// FilterValidCareers отбрасывает мусорные рекомендации перед отдачей
// страницам: пустые названия, NaN/бесконечные или выпадающие из шкалы
// 0-100 скоры. Скор необязателен - рекомендация без скора валидна.
// Всегда возвращает не-nil срез, чтобы страница рендерила пустое
// состояние, а не падала на null.
func FilterValidCareers(in []upstream.Career) []upstream.Career {
	out := make([]upstream.Career, 0, len(in))

	for _, c := range in {
		if strings.TrimSpace(c.Career) == "" {
			continue
		}
		if c.SimilarityScore != nil {
			score := *c.SimilarityScore
			if math.IsNaN(score) || math.IsInf(score, 0) || score < 0 || score > 100 {
				continue
			}
		}
		if c.RequiredSkills == nil {
			c.RequiredSkills = []string{}
		}
		out = append(out, c)
	}

	return out
}
