package models

import "github.com/lib/pq"

type PortfolioItem struct {
	BaseModel
	ConsultantID string         `gorm:"type:uuid;not null;index" json:"consultantId"`
	Title        string         `gorm:"type:varchar(255);not null" json:"title"`
	Description  string         `gorm:"type:text;not null" json:"description"`
	Industry     *string        `gorm:"type:varchar(100)" json:"industry"`
	Duration     *string        `gorm:"type:varchar(100)" json:"duration"`
	Results      *string        `gorm:"type:text" json:"results"`
	ImageURL     *string        `gorm:"type:varchar(1024)" json:"imageUrl"`
	CaseStudyURL *string        `gorm:"type:varchar(1024)" json:"caseStudyUrl"`
	ClientName   *string        `gorm:"type:varchar(255)" json:"clientName"`
	Testimonial  *string        `gorm:"type:text" json:"testimonial"`
	Tags         pq.StringArray `gorm:"type:text[]" json:"tags"`
	IsPublic     bool           `gorm:"default:true" json:"isPublic"`

	Consultant *ConsultantProfile `gorm:"foreignKey:ConsultantID;constraint:OnDelete:CASCADE" json:"-"`
}
