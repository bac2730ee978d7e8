package services

import (
	"context"
	"errors"
	"testing"

	"consultbr_backend/internal/models"
	"consultbr_backend/internal/repositories"
	"consultbr_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func consultantFixture(userID, profileID string) *models.ConsultantProfile {
	p := &models.ConsultantProfile{UserID: userID, AcceptingClients: true}
	p.ID = profileID
	return p
}

func TestGetConsultant(t *testing.T) {
	ctx := context.Background()

	t.Run("counts the view", func(t *testing.T) {
		profiles, stats := &mockProfileRepo{}, &mockStatsRepo{}
		profiles.On("FindConsultantProfileByUserID", "c-user").Return(consultantFixture("c-user", "con-1"), nil)
		profiles.On("IncrementProfileViews", "con-1").Return(nil)
		stats.On("ConsultantTotals", []string{"con-1"}).
			Return(map[string]repositories.ProjectTotals{"con-1": {CompletedCount: 2, CompletedSum: 900}}, nil)

		card, err := NewProfileService(nil, profiles, stats).GetConsultant(ctx, testDB(), "c-user")
		require.NoError(t, err)
		assert.Equal(t, 1, card.ProfileViews)
		assert.Equal(t, 2, card.TotalProjects)
		profiles.AssertExpectations(t)
	})

	t.Run("view counter failure is returned", func(t *testing.T) {
		profiles, stats := &mockProfileRepo{}, &mockStatsRepo{}
		profiles.On("FindConsultantProfileByUserID", "c-user").Return(consultantFixture("c-user", "con-1"), nil)
		profiles.On("IncrementProfileViews", "con-1").Return(errors.New("connection reset"))
		stats.On("ConsultantTotals", mock.Anything).Return(map[string]repositories.ProjectTotals{}, nil)

		card, err := NewProfileService(nil, profiles, stats).GetConsultant(ctx, testDB(), "c-user")
		assert.Nil(t, card)
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.CodeInternalError, appErr.Code)
	})

	t.Run("unknown consultant", func(t *testing.T) {
		profiles := &mockProfileRepo{}
		profiles.On("FindConsultantProfileByUserID", "nobody").Return(nil, repositories.ErrProfileNotFound)

		_, err := NewProfileService(nil, profiles, &mockStatsRepo{}).GetConsultant(ctx, testDB(), "nobody")
		assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)
		profiles.AssertNotCalled(t, "IncrementProfileViews", mock.Anything)
	})
}
