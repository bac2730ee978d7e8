package dto

import (
	"encoding/json"
	"time"

	"consultbr_backend/internal/models"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// ---------------- Entrepreneur ----------------

type CreateEntrepreneurProfileRequest struct {
	CompanyName        *string               `json:"companyName" validate:"omitempty,max=255"`
	CompanyDescription *string               `json:"companyDescription" validate:"omitempty,max=5000"`
	Industry           *string               `json:"industry" validate:"omitempty,max=100"`
	FoundedAt          *time.Time            `json:"foundedAt"`
	EmployeeCount      *int                  `json:"employeeCount" validate:"omitempty,gte=0"`
	MonthlyRevenue     *float64              `json:"monthlyRevenue" validate:"omitempty,gte=0"`
	Website            *string               `json:"website" validate:"omitempty,url,max=255"`
	Linkedin           *string               `json:"linkedin" validate:"omitempty,max=255"`
	Instagram          *string               `json:"instagram" validate:"omitempty,max=255"`
	BusinessStage      *models.BusinessStage `json:"businessStage" validate:"omitempty,is-business-stage"`
	PitchDeckURL       *string               `json:"pitchDeckUrl" validate:"omitempty,max=1024"`
	BusinessPlanURL    *string               `json:"businessPlanUrl" validate:"omitempty,max=1024"`
	Country            *string               `json:"country" validate:"omitempty,max=100"`
	State              *string               `json:"state" validate:"omitempty,max=100"`
	City               *string               `json:"city" validate:"omitempty,max=100"`
	IsRemote           *bool                 `json:"isRemote"`
	Budget             *float64              `json:"budget" validate:"omitempty,gte=0"`
	UrgencyLevel       *string               `json:"urgencyLevel" validate:"omitempty,max=50"`
	ConsultationAreas  []string              `json:"consultationAreas" validate:"omitempty,max=20,dive,max=100"`
}

func (r *CreateEntrepreneurProfileRequest) ToModel(userID string) *models.EntrepreneurProfile {
	p := &models.EntrepreneurProfile{
		UserID:             userID,
		CompanyName:        r.CompanyName,
		CompanyDescription: r.CompanyDescription,
		Industry:           r.Industry,
		FoundedAt:          r.FoundedAt,
		EmployeeCount:      r.EmployeeCount,
		MonthlyRevenue:     r.MonthlyRevenue,
		Website:            r.Website,
		Linkedin:           r.Linkedin,
		Instagram:          r.Instagram,
		BusinessStage:      r.BusinessStage,
		PitchDeckURL:       r.PitchDeckURL,
		BusinessPlanURL:    r.BusinessPlanURL,
		State:              r.State,
		City:               r.City,
		Budget:             r.Budget,
		UrgencyLevel:       r.UrgencyLevel,
		ConsultationAreas:  pq.StringArray(r.ConsultationAreas),
	}
	if r.Country != nil {
		p.Country = *r.Country
	}
	if r.IsRemote != nil {
		p.IsRemote = *r.IsRemote
	}
	return p
}

// UpdateEntrepreneurProfileRequest - частичное обновление, те же поля
type UpdateEntrepreneurProfileRequest CreateEntrepreneurProfileRequest

func (r *UpdateEntrepreneurProfileRequest) ToUpdates() map[string]interface{} {
	u := make(map[string]interface{})
	setString(u, "company_name", r.CompanyName)
	setString(u, "company_description", r.CompanyDescription)
	setString(u, "industry", r.Industry)
	if r.FoundedAt != nil {
		u["founded_at"] = *r.FoundedAt
	}
	if r.EmployeeCount != nil {
		u["employee_count"] = *r.EmployeeCount
	}
	if r.MonthlyRevenue != nil {
		u["monthly_revenue"] = *r.MonthlyRevenue
	}
	setString(u, "website", r.Website)
	setString(u, "linkedin", r.Linkedin)
	setString(u, "instagram", r.Instagram)
	if r.BusinessStage != nil {
		u["business_stage"] = *r.BusinessStage
	}
	setString(u, "pitch_deck_url", r.PitchDeckURL)
	setString(u, "business_plan_url", r.BusinessPlanURL)
	setString(u, "country", r.Country)
	setString(u, "state", r.State)
	setString(u, "city", r.City)
	if r.IsRemote != nil {
		u["is_remote"] = *r.IsRemote
	}
	if r.Budget != nil {
		u["budget"] = *r.Budget
	}
	setString(u, "urgency_level", r.UrgencyLevel)
	if r.ConsultationAreas != nil {
		u["consultation_areas"] = pq.StringArray(r.ConsultationAreas)
	}
	return u
}

// ---------------- Consultant ----------------

type CreateConsultantProfileRequest struct {
	Title            *string         `json:"title" validate:"omitempty,max=255"`
	Bio              *string         `json:"bio" validate:"omitempty,max=5000"`
	Experience       *int            `json:"experience" validate:"omitempty,gte=0,lte=80"`
	HourlyRate       *float64        `json:"hourlyRate" validate:"omitempty,gte=0"`
	ProjectRate      *float64        `json:"projectRate" validate:"omitempty,gte=0"`
	Education        json.RawMessage `json:"education"`
	Certifications   json.RawMessage `json:"certifications"`
	Languages        []string        `json:"languages" validate:"omitempty,max=20,dive,max=50"`
	Country          *string         `json:"country" validate:"omitempty,max=100"`
	State            *string         `json:"state" validate:"omitempty,max=100"`
	City             *string         `json:"city" validate:"omitempty,max=100"`
	Timezone         *string         `json:"timezone" validate:"omitempty,max=50"`
	IsRemote         *bool           `json:"isRemote"`
	Availability     json.RawMessage `json:"availability"`
	Industries       []string        `json:"industries" validate:"omitempty,max=20,dive,max=100"`
	DocumentsURL     []string        `json:"documentsUrl" validate:"omitempty,max=10,dive,max=1024"`
	ResponseTime     *int            `json:"responseTime" validate:"omitempty,gte=0"`
	AcceptingClients *bool           `json:"acceptingClients"`
	InstantBooking   *bool           `json:"instantBooking"`
}

func (r *CreateConsultantProfileRequest) ToModel(userID string) *models.ConsultantProfile {
	p := &models.ConsultantProfile{
		UserID:           userID,
		Title:            r.Title,
		Bio:              r.Bio,
		Experience:       r.Experience,
		HourlyRate:       r.HourlyRate,
		ProjectRate:      r.ProjectRate,
		Education:        jsonOrNil(r.Education),
		Certifications:   jsonOrNil(r.Certifications),
		Languages:        pq.StringArray(r.Languages),
		State:            r.State,
		City:             r.City,
		Availability:     jsonOrNil(r.Availability),
		Industries:       pq.StringArray(r.Industries),
		DocumentsURL:     pq.StringArray(r.DocumentsURL),
		ResponseTime:     r.ResponseTime,
		IsRemote:         true,
		AcceptingClients: true,
	}
	if r.Country != nil {
		p.Country = *r.Country
	}
	if r.Timezone != nil {
		p.Timezone = *r.Timezone
	}
	if r.IsRemote != nil {
		p.IsRemote = *r.IsRemote
	}
	if r.AcceptingClients != nil {
		p.AcceptingClients = *r.AcceptingClients
	}
	if r.InstantBooking != nil {
		p.InstantBooking = *r.InstantBooking
	}
	return p
}

// FalseDefaults - булевы поля со значением false, которые GORM при Create заменит на default тега
func (r *CreateConsultantProfileRequest) FalseDefaults() map[string]interface{} {
	u := make(map[string]interface{})
	if r.IsRemote != nil && !*r.IsRemote {
		u["is_remote"] = false
	}
	if r.AcceptingClients != nil && !*r.AcceptingClients {
		u["accepting_clients"] = false
	}
	return u
}

type UpdateConsultantProfileRequest CreateConsultantProfileRequest

func (r *UpdateConsultantProfileRequest) ToUpdates() map[string]interface{} {
	u := make(map[string]interface{})
	setString(u, "title", r.Title)
	setString(u, "bio", r.Bio)
	if r.Experience != nil {
		u["experience"] = *r.Experience
	}
	if r.HourlyRate != nil {
		u["hourly_rate"] = *r.HourlyRate
	}
	if r.ProjectRate != nil {
		u["project_rate"] = *r.ProjectRate
	}
	if r.Education != nil {
		u["education"] = datatypes.JSON(r.Education)
	}
	if r.Certifications != nil {
		u["certifications"] = datatypes.JSON(r.Certifications)
	}
	if r.Languages != nil {
		u["languages"] = pq.StringArray(r.Languages)
	}
	setString(u, "country", r.Country)
	setString(u, "state", r.State)
	setString(u, "city", r.City)
	setString(u, "timezone", r.Timezone)
	if r.IsRemote != nil {
		u["is_remote"] = *r.IsRemote
	}
	if r.Availability != nil {
		u["availability"] = datatypes.JSON(r.Availability)
	}
	if r.Industries != nil {
		u["industries"] = pq.StringArray(r.Industries)
	}
	if r.DocumentsURL != nil {
		u["documents_url"] = pq.StringArray(r.DocumentsURL)
	}
	if r.ResponseTime != nil {
		u["response_time"] = *r.ResponseTime
	}
	if r.AcceptingClients != nil {
		u["accepting_clients"] = *r.AcceptingClients
	}
	if r.InstantBooking != nil {
		u["instant_booking"] = *r.InstantBooking
	}
	return u
}

// ---------------- Search ----------------

type ConsultantSearchRequest struct {
	Search         string `form:"search" validate:"omitempty,max=100"`
	Specialization string `form:"specialization" validate:"omitempty,max=100"`
	Limit          int    `form:"limit" validate:"omitempty,gte=1,lte=100"`
	Offset         int    `form:"offset" validate:"omitempty,gte=0"`
}

// ConsultantResponse - профиль консультанта с публичными данными пользователя
type ConsultantResponse struct {
	models.ConsultantProfile
	User *UserSummary `json:"user"`
}

func NewConsultantResponse(p *models.ConsultantProfile) *ConsultantResponse {
	return &ConsultantResponse{ConsultantProfile: *p, User: NewUserSummary(p.User)}
}

func setString(u map[string]interface{}, column string, v *string) {
	if v != nil {
		u[column] = *v
	}
}

func jsonOrNil(raw json.RawMessage) datatypes.JSON {
	if len(raw) == 0 {
		return nil
	}
	return datatypes.JSON(raw)
}
