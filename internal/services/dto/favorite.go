package dto

import "consultbr_backend/internal/models"

type AddFavoriteRequest struct {
	TargetID   string                `json:"targetId" validate:"required,max=255"`
	TargetType models.FavoriteTarget `json:"targetType" validate:"required,is-favorite-target"`
}

type RemoveFavoriteRequest struct {
	TargetID   string                `uri:"targetId" validate:"required,max=255"`
	TargetType models.FavoriteTarget `uri:"targetType" validate:"required,is-favorite-target"`
}

type ListFavoritesRequest struct {
	Type *models.FavoriteTarget `form:"type" validate:"omitempty,is-favorite-target"`
}
