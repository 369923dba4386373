package apperrors

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Upstream (FastAPI) отдает ошибки в форме {"detail": ...}, где detail -
// либо строка, либо массив ошибок валидации [{loc: [...], msg: "..."}].
// Клиенту всегда показывается одна человекочитаемая строка.

// DefaultErrorMessage - запасной текст, когда из тела ничего не извлекается
const DefaultErrorMessage = "An error occurred"

type fastapiError struct {
	Detail json.RawMessage `json:"detail"`
}

type fastapiValidationItem struct {
	Loc []json.RawMessage `json:"loc"`
	Msg string            `json:"msg"`
}

// FlattenDetail расплющивает тело ошибки FastAPI в одну строку.
//   - detail-строка возвращается как есть;
//   - массив валидации превращается в "<поле>: <msg>" через ", ",
//     где поле - это loc без первого элемента ("body"), склеенный точками;
//   - все остальное (пустое тело, не-JSON, неожиданная форма) - fallback.
func FlattenDetail(body []byte, fallback string) string {
	if fallback == "" {
		fallback = DefaultErrorMessage
	}
	if len(body) == 0 {
		return fallback
	}

	var payload fastapiError
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return fallback
	}

	// Вариант 1: detail - строка
	var s string
	if err := json.Unmarshal(payload.Detail, &s); err == nil {
		if s == "" {
			return fallback
		}
		return s
	}

	// Вариант 2: detail - массив ошибок валидации
	var items []fastapiValidationItem
	if err := json.Unmarshal(payload.Detail, &items); err != nil || len(items) == 0 {
		return fallback
	}

	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s: %s", fieldFromLoc(item.Loc), item.Msg))
	}
	return strings.Join(parts, ", ")
}

// fieldFromLoc собирает имя поля из loc: первый элемент ("body"/"query")
// отбрасывается, остальные склеиваются точкой. Элементы loc бывают и числами
// (индексы массивов), поэтому каждый приводится к строке отдельно.
func fieldFromLoc(loc []json.RawMessage) string {
	if len(loc) < 2 {
		return "field"
	}

	parts := make([]string, 0, len(loc)-1)
	for _, raw := range loc[1:] {
		var str string
		if err := json.Unmarshal(raw, &str); err == nil {
			parts = append(parts, str)
			continue
		}
		var num json.Number
		if err := json.Unmarshal(raw, &num); err == nil {
			parts = append(parts, num.String())
		}
	}
	if len(parts) == 0 {
		return "field"
	}
	return strings.Join(parts, ".")
}
