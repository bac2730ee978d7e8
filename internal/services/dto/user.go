package dto

import "consultbr_backend/internal/models"

// CurrentUserResponse - пользователь и его профиль по роли (null, если роли еще нет)
type CurrentUserResponse struct {
	*models.User
	Profile interface{} `json:"profile"`
}

type UpdateUserRequest struct {
	FirstName       *string `json:"firstName" validate:"omitempty,min=1,max=255"`
	LastName        *string `json:"lastName" validate:"omitempty,max=255"`
	Phone           *string `json:"phone" validate:"omitempty,max=30"`
	ProfileImageURL *string `json:"profileImageUrl" validate:"omitempty,url,max=1024"`
}

func (r *UpdateUserRequest) ToUpdates() map[string]interface{} {
	updates := make(map[string]interface{})
	if r.FirstName != nil {
		updates["first_name"] = *r.FirstName
	}
	if r.LastName != nil {
		updates["last_name"] = *r.LastName
	}
	if r.Phone != nil {
		updates["phone"] = *r.Phone
	}
	if r.ProfileImageURL != nil {
		updates["profile_image_url"] = *r.ProfileImageURL
	}
	return updates
}

// UserSummary - публичные данные пользователя рядом с профилем консультанта
type UserSummary struct {
	ID              string  `json:"id"`
	FirstName       *string `json:"firstName"`
	LastName        *string `json:"lastName"`
	ProfileImageURL *string `json:"profileImageUrl"`
}

func NewUserSummary(u *models.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{
		ID:              u.ID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ProfileImageURL: u.ProfileImageURL,
	}
}

// --- Admin ---

type UpdateUserStatusRequest struct {
	Status models.UserStatus `json:"status" validate:"required,is-user-status"`
}
