package models

import (
	"time"

	"github.com/lib/pq"
)

type Project struct {
	BaseModel
	EntrepreneurID string         `gorm:"type:uuid;not null;index" json:"entrepreneurId"`
	ConsultantID   *string        `gorm:"type:uuid;index" json:"consultantId"`
	Title          string         `gorm:"type:varchar(255);not null" json:"title"`
	Description    string         `gorm:"type:text;not null" json:"description"`
	Requirements   *string        `gorm:"type:text" json:"requirements"`
	Deliverables   pq.StringArray `gorm:"type:text[]" json:"deliverables"`
	Budget         *float64       `gorm:"type:numeric(12,2)" json:"budget"`
	EstimatedHours *int           `json:"estimatedHours"`
	Status         ProjectStatus  `gorm:"type:varchar(20);not null;default:'DRAFT';index" json:"status"`
	StartDate      *time.Time     `json:"startDate"`
	EndDate        *time.Time     `json:"endDate"`
	CompletedAt    *time.Time     `json:"completedAt"`
	Attachments    pq.StringArray `gorm:"type:text[]" json:"attachments"`

	Entrepreneur *EntrepreneurProfile `gorm:"foreignKey:EntrepreneurID;constraint:OnDelete:CASCADE" json:"-"`
	Consultant   *ConsultantProfile   `gorm:"foreignKey:ConsultantID;constraint:OnDelete:SET NULL" json:"-"`
}
