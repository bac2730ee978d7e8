package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type ConsultantProfile struct {
	BaseModel
	UserID           string         `gorm:"type:varchar(255);not null;uniqueIndex" json:"userId"`
	Title            *string        `gorm:"type:varchar(255)" json:"title"`
	Bio              *string        `gorm:"type:text" json:"bio"`
	Experience       *int           `json:"experience"`
	HourlyRate       *float64       `gorm:"type:numeric(10,2)" json:"hourlyRate"`
	ProjectRate      *float64       `gorm:"type:numeric(12,2)" json:"projectRate"`
	Education        datatypes.JSON `gorm:"type:jsonb" json:"education"`
	Certifications   datatypes.JSON `gorm:"type:jsonb" json:"certifications"`
	Languages        pq.StringArray `gorm:"type:text[];default:'{português}'" json:"languages"`
	Country          string         `gorm:"type:varchar(100);default:'Brasil'" json:"country"`
	State            *string        `gorm:"type:varchar(100)" json:"state"`
	City             *string        `gorm:"type:varchar(100)" json:"city"`
	Timezone         string         `gorm:"type:varchar(50);default:'America/Sao_Paulo'" json:"timezone"`
	IsRemote         bool           `gorm:"default:true" json:"isRemote"`
	Availability     datatypes.JSON `gorm:"type:jsonb" json:"availability"`
	Industries       pq.StringArray `gorm:"type:text[]" json:"industries"`
	IsVerified       bool           `gorm:"default:false" json:"isVerified"`
	VerifiedAt       *time.Time     `json:"verifiedAt"`
	DocumentsURL     pq.StringArray `gorm:"type:text[]" json:"documentsUrl"`
	ResponseTime     *int           `json:"responseTime"`
	AcceptingClients bool           `gorm:"default:true" json:"acceptingClients"`
	InstantBooking   bool           `gorm:"default:false" json:"instantBooking"`

	// Агрегаты: profileViews инкрементируется при просмотре, остальное считается при чтении
	TotalProjects int     `gorm:"default:0" json:"totalProjects"`
	AverageRating float64 `gorm:"type:numeric(3,2);default:0" json:"averageRating"`
	TotalEarnings float64 `gorm:"type:numeric(12,2);default:0" json:"totalEarnings"`
	ProfileViews  int     `gorm:"default:0" json:"profileViews"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}
