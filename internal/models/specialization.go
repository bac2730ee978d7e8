package models

type Specialization struct {
	BaseModel
	Name        string  `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	Description *string `gorm:"type:text" json:"description"`
	Category    *string `gorm:"type:varchar(100)" json:"category"`
	IsActive    bool    `gorm:"default:true" json:"isActive"`
}
