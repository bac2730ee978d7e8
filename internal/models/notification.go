package models

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	BaseModel
	UserID  string           `gorm:"type:varchar(255);not null;index" json:"userId"`
	Type    NotificationType `gorm:"type:varchar(30);not null" json:"type"`
	Title   string           `gorm:"type:varchar(255);not null" json:"title"`
	Message string           `gorm:"type:text;not null" json:"message"`
	Data    datatypes.JSON   `gorm:"type:jsonb" json:"data"` // {"projectId": "...", "proposalId": "..."}
	IsRead  bool             `gorm:"default:false" json:"isRead"`
	ReadAt  *time.Time       `json:"readAt"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
