package models

import (
	"time"

	"github.com/lib/pq"
)

type EntrepreneurProfile struct {
	BaseModel
	UserID             string         `gorm:"type:varchar(255);not null;uniqueIndex" json:"userId"`
	CompanyName        *string        `gorm:"type:varchar(255)" json:"companyName"`
	CompanyDescription *string        `gorm:"type:text" json:"companyDescription"`
	Industry           *string        `gorm:"type:varchar(100)" json:"industry"`
	FoundedAt          *time.Time     `json:"foundedAt"`
	EmployeeCount      *int           `json:"employeeCount"`
	MonthlyRevenue     *float64       `gorm:"type:numeric(12,2)" json:"monthlyRevenue"`
	Website            *string        `gorm:"type:varchar(255)" json:"website"`
	Linkedin           *string        `gorm:"type:varchar(255)" json:"linkedin"`
	Instagram          *string        `gorm:"type:varchar(255)" json:"instagram"`
	BusinessStage      *BusinessStage `gorm:"type:varchar(50)" json:"businessStage"`
	PitchDeckURL       *string        `gorm:"type:varchar(1024)" json:"pitchDeckUrl"`
	BusinessPlanURL    *string        `gorm:"type:varchar(1024)" json:"businessPlanUrl"`
	Country            string         `gorm:"type:varchar(100);default:'Brasil'" json:"country"`
	State              *string        `gorm:"type:varchar(100)" json:"state"`
	City               *string        `gorm:"type:varchar(100)" json:"city"`
	IsRemote           bool           `gorm:"default:false" json:"isRemote"`
	Budget             *float64       `gorm:"type:numeric(12,2)" json:"budget"`
	UrgencyLevel       *string        `gorm:"type:varchar(50)" json:"urgencyLevel"`
	ConsultationAreas  pq.StringArray `gorm:"type:text[]" json:"consultationAreas"`

	// Агрегаты не пишутся клиентом, пересчитываются при чтении
	TotalProjects int     `gorm:"default:0" json:"totalProjects"`
	AverageRating float64 `gorm:"type:numeric(3,2);default:0" json:"averageRating"`
	TotalSpent    float64 `gorm:"type:numeric(12,2);default:0" json:"totalSpent"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
