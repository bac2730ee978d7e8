package models

import (
	"time"

	"gorm.io/datatypes"
)

// Transaction - запись платежного журнала. Обработки платежей в системе нет.
type Transaction struct {
	BaseModel
	UserID       string            `gorm:"type:varchar(255);not null;index" json:"userId"`
	ProjectID    *string           `gorm:"type:uuid;index" json:"projectId"`
	Type         TransactionType   `gorm:"type:varchar(30);not null" json:"type"`
	Amount       float64           `gorm:"type:numeric(12,2);not null" json:"amount"`
	Fee          float64           `gorm:"type:numeric(12,2);default:0" json:"fee"`
	NetAmount    float64           `gorm:"type:numeric(12,2);not null" json:"netAmount"`
	Status       TransactionStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	ProviderID   *string           `gorm:"type:varchar(255)" json:"providerId"`
	ProviderData datatypes.JSON    `gorm:"type:jsonb" json:"providerData"`
	Description  *string           `gorm:"type:text" json:"description"`
	Metadata     datatypes.JSON    `gorm:"type:jsonb" json:"metadata"`
	ProcessedAt  *time.Time        `json:"processedAt"`

	User    *User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Project *Project `gorm:"foreignKey:ProjectID;constraint:OnDelete:SET NULL" json:"-"`
}
