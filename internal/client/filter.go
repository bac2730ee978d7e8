package client

import (
	"strings"

	"consultbr_backend/internal/models"
	"consultbr_backend/internal/services/dto"
)

// Filter оставляет элементы, у которых хотя бы одно текстовое поле содержит query
// без учета регистра. Пустой query возвращает список как есть.
func Filter[T any](items []T, query string, fields func(T) []string) []T {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return items
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		for _, field := range fields(item) {
			if strings.Contains(strings.ToLower(field), query) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

func ProjectFields(p models.Project) []string {
	fields := []string{p.Title, p.Description}
	if p.Requirements != nil {
		fields = append(fields, *p.Requirements)
	}
	return append(fields, p.Deliverables...)
}

func ConsultantFields(c dto.ConsultantResponse) []string {
	var fields []string
	for _, s := range []*string{c.Title, c.Bio, c.City, c.State} {
		if s != nil {
			fields = append(fields, *s)
		}
	}
	if c.User != nil {
		if c.User.FirstName != nil {
			fields = append(fields, *c.User.FirstName)
		}
		if c.User.LastName != nil {
			fields = append(fields, *c.User.LastName)
		}
	}
	return append(fields, c.Industries...)
}

func MessageFields(m models.Message) []string {
	return []string{m.Content}
}
