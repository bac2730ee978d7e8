package wizard

import (
	"errors"
	"fmt"
	"strings"

	"consultbr_backend/internal/models"
	"consultbr_backend/internal/services/dto"
)

const maxListItems = 20

// NewEntrepreneurOnboarding - шаги: компания, локация, интересы
func NewEntrepreneurOnboarding(submit SubmitFunc[dto.CreateEntrepreneurProfileRequest]) *Wizard[dto.CreateEntrepreneurProfileRequest] {
	type req = dto.CreateEntrepreneurProfileRequest

	return New([]Step[req]{
		{
			Name: "company",
			Fields: []Field[req]{
				{Name: "companyName", Label: "Nome da empresa", Set: Text(func(r *req) **string { return &r.CompanyName })},
				{Name: "companyDescription", Label: "Descrição da empresa", Optional: true, Set: Text(func(r *req) **string { return &r.CompanyDescription })},
				{Name: "industry", Label: "Setor", Set: Text(func(r *req) **string { return &r.Industry })},
			},
			Validate: func(r *req) error {
				if err := requireText("companyName", r.CompanyName); err != nil {
					return err
				}
				return requireText("industry", r.Industry)
			},
		},
		{
			Name: "location",
			Fields: []Field[req]{
				{Name: "businessStage", Label: "Estágio (idea, prototype, launch, growth)", Optional: true, Set: setBusinessStage},
				{Name: "state", Label: "Estado", Set: Text(func(r *req) **string { return &r.State })},
				{Name: "city", Label: "Cidade", Set: Text(func(r *req) **string { return &r.City })},
				{Name: "isRemote", Label: "Aceita trabalho remoto? (s/n)", Optional: true, Set: Bool(func(r *req) **bool { return &r.IsRemote })},
			},
			Validate: func(r *req) error {
				if r.BusinessStage != nil && !r.BusinessStage.IsValid() {
					return fmt.Errorf("businessStage: unknown stage %q", *r.BusinessStage)
				}
				if err := requireText("state", r.State); err != nil {
					return err
				}
				return requireText("city", r.City)
			},
		},
		{
			Name: "interests",
			Fields: []Field[req]{
				{Name: "consultationAreas", Label: "Áreas de interesse (separadas por vírgula)", Optional: true, Set: List(func(r *req) *[]string { return &r.ConsultationAreas })},
			},
			Validate: func(r *req) error {
				if len(r.ConsultationAreas) > maxListItems {
					return fmt.Errorf("consultationAreas: at most %d items", maxListItems)
				}
				return nil
			},
		},
	}, submit)
}

func setBusinessStage(r *dto.CreateEntrepreneurProfileRequest, value string) error {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		r.BusinessStage = nil
		return nil
	}
	stage := models.BusinessStage(value)
	if !stage.IsValid() {
		return fmt.Errorf("unknown business stage %q", value)
	}
	r.BusinessStage = &stage
	return nil
}

// NewConsultantOnboarding - шаги: профессиональные данные, локация, отрасли
func NewConsultantOnboarding(submit SubmitFunc[dto.CreateConsultantProfileRequest]) *Wizard[dto.CreateConsultantProfileRequest] {
	type req = dto.CreateConsultantProfileRequest

	return New([]Step[req]{
		{
			Name: "professional",
			Fields: []Field[req]{
				{Name: "title", Label: "Título profissional", Set: Text(func(r *req) **string { return &r.Title })},
				{Name: "bio", Label: "Biografia", Set: Text(func(r *req) **string { return &r.Bio })},
				{Name: "experience", Label: "Anos de experiência", Set: Int(func(r *req) **int { return &r.Experience })},
			},
			Validate: func(r *req) error {
				if err := requireText("title", r.Title); err != nil {
					return err
				}
				if err := requireText("bio", r.Bio); err != nil {
					return err
				}
				if r.Experience == nil {
					return fmt.Errorf("experience: %w", errRequired)
				}
				if *r.Experience < 0 || *r.Experience > 80 {
					return errors.New("experience: must be between 0 and 80")
				}
				return nil
			},
		},
		{
			Name: "location",
			Fields: []Field[req]{
				{Name: "state", Label: "Estado", Set: Text(func(r *req) **string { return &r.State })},
				{Name: "city", Label: "Cidade", Set: Text(func(r *req) **string { return &r.City })},
				{Name: "isRemote", Label: "Atende remotamente? (s/n)", Optional: true, Set: Bool(func(r *req) **bool { return &r.IsRemote })},
				{Name: "hourlyRate", Label: "Taxa por hora (R$)", Optional: true, Set: Float(func(r *req) **float64 { return &r.HourlyRate })},
			},
			Validate: func(r *req) error {
				if err := requireText("state", r.State); err != nil {
					return err
				}
				if err := requireText("city", r.City); err != nil {
					return err
				}
				if r.HourlyRate != nil && *r.HourlyRate < 0 {
					return errors.New("hourlyRate: must not be negative")
				}
				return nil
			},
		},
		{
			Name: "industries",
			Fields: []Field[req]{
				{Name: "industries", Label: "Setores de atuação (separados por vírgula)", Set: List(func(r *req) *[]string { return &r.Industries })},
			},
			Validate: func(r *req) error {
				if len(r.Industries) == 0 {
					return fmt.Errorf("industries: %w", errRequired)
				}
				if len(r.Industries) > maxListItems {
					return fmt.Errorf("industries: at most %d items", maxListItems)
				}
				return nil
			},
		},
	}, submit)
}
