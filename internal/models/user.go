package models

import "time"

// User создается при первой аутентификации; ID приходит от провайдера идентификации.
type User struct {
	ID               string     `gorm:"type:varchar(255);primaryKey" json:"id"`
	Email            *string    `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	FirstName        *string    `gorm:"type:varchar(255)" json:"firstName"`
	LastName         *string    `gorm:"type:varchar(255)" json:"lastName"`
	ProfileImageURL  *string    `gorm:"type:varchar(1024)" json:"profileImageUrl"`
	Role             *UserRole  `gorm:"type:varchar(20)" json:"role"`
	Status           UserStatus `gorm:"type:varchar(30);not null;default:'PENDING_VERIFICATION'" json:"status"`
	Phone            *string    `gorm:"type:varchar(30)" json:"phone"`
	EmailVerified    bool       `gorm:"default:false" json:"emailVerified"`
	PhoneVerified    bool       `gorm:"default:false" json:"phoneVerified"`
	TwoFactorEnabled bool       `gorm:"default:false" json:"twoFactorEnabled"`
	LastLogin        *time.Time `json:"lastLogin"`
	LoginCount       int        `gorm:"default:0" json:"loginCount"`
	CreatedAt        time.Time  `gorm:"default:now()" json:"createdAt"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

// HasRole - роль выставлена и совпадает с одной из переданных
func (u *User) HasRole(roles ...UserRole) bool {
	if u.Role == nil {
		return false
	}
	for _, r := range roles {
		if *u.Role == r {
			return true
		}
	}
	return false
}

// DisplayName - имя для писем и уведомлений
func (u *User) DisplayName() string {
	name := ""
	if u.FirstName != nil {
		name = *u.FirstName
	}
	if u.LastName != nil && *u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += *u.LastName
	}
	if name == "" && u.Email != nil {
		return *u.Email
	}
	return name
}
