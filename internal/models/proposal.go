package models

import "time"

// Proposal - предложение по проекту. ParentID связывает контрпредложение с исходным.
type Proposal struct {
	BaseModel
	ProjectID      string         `gorm:"type:uuid;not null;index" json:"projectId"`
	SenderID       string         `gorm:"type:varchar(255);not null;index" json:"senderId"`
	ReceiverID     string         `gorm:"type:varchar(255);not null;index" json:"receiverId"`
	Message        string         `gorm:"type:text;not null" json:"message"`
	ProposedRate   *float64       `gorm:"type:numeric(10,2)" json:"proposedRate"`
	EstimatedHours *int           `json:"estimatedHours"`
	DeliveryDate   *time.Time     `json:"deliveryDate"`
	Status         ProposalStatus `gorm:"type:varchar(20);not null;default:'SENT'" json:"status"`
	ParentID       *string        `gorm:"type:uuid;index" json:"parentId"`
	ViewedAt       *time.Time     `json:"viewedAt"`
	RespondedAt    *time.Time     `json:"respondedAt"`
	ExpiresAt      *time.Time     `json:"expiresAt"`

	Project  *Project  `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
	Sender   *User     `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE" json:"-"`
	Receiver *User     `gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE" json:"-"`
	Parent   *Proposal `gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL" json:"-"`
}

// IsParty - пользователь является отправителем или получателем
func (p *Proposal) IsParty(userID string) bool {
	return p.SenderID == userID || p.ReceiverID == userID
}
