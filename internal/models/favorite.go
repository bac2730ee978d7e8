package models

// Favorite хранит ссылку на цель по (targetId, targetType) без внешнего ключа.
type Favorite struct {
	BaseModel
	UserID     string         `gorm:"type:varchar(255);not null;uniqueIndex:idx_favorites_user_target" json:"userId"`
	TargetID   string         `gorm:"type:varchar(255);not null;uniqueIndex:idx_favorites_user_target" json:"targetId"`
	TargetType FavoriteTarget `gorm:"type:varchar(50);not null;uniqueIndex:idx_favorites_user_target" json:"targetType"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
