package services

import (
	"context"
	"testing"

	"consultbr_backend/internal/models"
	"consultbr_backend/internal/repositories"
	"consultbr_backend/internal/services/dto"
	"consultbr_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAddFavorite(t *testing.T) {
	ctx := context.Background()

	t.Run("consultant by user id", func(t *testing.T) {
		favorites, profiles := &mockFavoriteRepo{}, &mockProfileRepo{}
		profiles.On("FindConsultantProfileByUserID", "c-user").Return(&models.ConsultantProfile{UserID: "c-user"}, nil)
		favorites.On("Create", mock.AnythingOfType("*models.Favorite")).Return(nil)
		svc := NewFavoriteService(favorites, profiles, &mockProjectRepo{})

		fav, err := svc.AddFavorite(ctx, testDB(), "me", &dto.AddFavoriteRequest{
			TargetID:   "c-user",
			TargetType: models.FavoriteTargetConsultant,
		})
		require.NoError(t, err)
		assert.Equal(t, "me", fav.UserID)
		assert.Equal(t, models.FavoriteTargetConsultant, fav.TargetType)
	})

	t.Run("missing project", func(t *testing.T) {
		projects := &mockProjectRepo{}
		projects.On("FindByID", "nope").Return(nil, repositories.ErrProjectNotFound)
		svc := NewFavoriteService(&mockFavoriteRepo{}, &mockProfileRepo{}, projects)

		_, err := svc.AddFavorite(ctx, testDB(), "me", &dto.AddFavoriteRequest{
			TargetID:   "nope",
			TargetType: models.FavoriteTargetProject,
		})
		assert.ErrorIs(t, err, apperrors.ErrFavoriteTargetNotFound)
	})

	t.Run("duplicate", func(t *testing.T) {
		favorites, projects := &mockFavoriteRepo{}, &mockProjectRepo{}
		projects.On("FindByID", "p1").Return(&models.Project{}, nil)
		favorites.On("Create", mock.Anything).Return(repositories.ErrFavoriteAlreadyExists)
		svc := NewFavoriteService(favorites, &mockProfileRepo{}, projects)

		_, err := svc.AddFavorite(ctx, testDB(), "me", &dto.AddFavoriteRequest{
			TargetID:   "p1",
			TargetType: models.FavoriteTargetProject,
		})
		assert.ErrorIs(t, err, apperrors.ErrFavoriteExists)
	})
}

func TestRemoveFavoriteIsIdempotent(t *testing.T) {
	favorites := &mockFavoriteRepo{}
	favorites.On("Delete", "me", "p1", models.FavoriteTargetProject).Return(nil).Twice()
	svc := NewFavoriteService(favorites, &mockProfileRepo{}, &mockProjectRepo{})

	req := &dto.RemoveFavoriteRequest{TargetID: "p1", TargetType: models.FavoriteTargetProject}
	require.NoError(t, svc.RemoveFavorite(context.Background(), testDB(), "me", req))
	require.NoError(t, svc.RemoveFavorite(context.Background(), testDB(), "me", req))
	favorites.AssertExpectations(t)
}
