package dto

import (
	"consultbr_backend/internal/models"

	"github.com/lib/pq"
)

type CreatePortfolioItemRequest struct {
	Title        string   `json:"title" validate:"required,min=1,max=255"`
	Description  string   `json:"description" validate:"required,min=1,max=10000"`
	Industry     *string  `json:"industry" validate:"omitempty,max=100"`
	Duration     *string  `json:"duration" validate:"omitempty,max=100"`
	Results      *string  `json:"results" validate:"omitempty,max=5000"`
	ImageURL     *string  `json:"imageUrl" validate:"omitempty,max=1024"`
	CaseStudyURL *string  `json:"caseStudyUrl" validate:"omitempty,url,max=1024"`
	ClientName   *string  `json:"clientName" validate:"omitempty,max=255"`
	Testimonial  *string  `json:"testimonial" validate:"omitempty,max=5000"`
	Tags         []string `json:"tags" validate:"omitempty,max=20,dive,max=50"`
	IsPublic     *bool    `json:"isPublic"`
}

func (r *CreatePortfolioItemRequest) ToModel(consultantID string) *models.PortfolioItem {
	return &models.PortfolioItem{
		ConsultantID: consultantID,
		Title:        r.Title,
		Description:  r.Description,
		Industry:     r.Industry,
		Duration:     r.Duration,
		Results:      r.Results,
		ImageURL:     r.ImageURL,
		CaseStudyURL: r.CaseStudyURL,
		ClientName:   r.ClientName,
		Testimonial:  r.Testimonial,
		Tags:         pq.StringArray(r.Tags),
		IsPublic:     true,
	}
}

// Private - создать скрытую работу (is_public = false после вставки)
func (r *CreatePortfolioItemRequest) Private() bool {
	return r.IsPublic != nil && !*r.IsPublic
}
