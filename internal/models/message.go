package models

import (
	"time"

	"github.com/lib/pq"
)

type Message struct {
	BaseModel
	ProjectID   *string        `gorm:"type:uuid;index" json:"projectId"`
	SenderID    string         `gorm:"type:varchar(255);not null;index" json:"senderId"`
	ReceiverID  string         `gorm:"type:varchar(255);not null;index" json:"receiverId"`
	Content     string         `gorm:"type:text;not null" json:"content"`
	Attachments pq.StringArray `gorm:"type:text[]" json:"attachments"`
	IsRead      bool           `gorm:"default:false" json:"isRead"`
	ReadAt      *time.Time     `json:"readAt"`
	ParentID    *string        `gorm:"type:uuid;index" json:"parentId"`

	Project  *Project `gorm:"foreignKey:ProjectID;constraint:OnDelete:SET NULL" json:"-"`
	Sender   *User    `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE" json:"-"`
	Receiver *User    `gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE" json:"-"`
	Parent   *Message `gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL" json:"-"`
}

// PartnerOf - собеседник пользователя в этом сообщении
func (m *Message) PartnerOf(userID string) string {
	if m.SenderID == userID {
		return m.ReceiverID
	}
	return m.SenderID
}
