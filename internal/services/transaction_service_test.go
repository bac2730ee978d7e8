package services

import (
	"context"
	"testing"

	"consultbr_backend/internal/models"
	"consultbr_backend/internal/services/dto"
	"consultbr_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreatePayment(t *testing.T) {
	ctx := context.Background()
	owner := &models.EntrepreneurProfile{UserID: "u"}
	owner.ID = "ent-1"

	t.Run("fee and net amount", func(t *testing.T) {
		txns, projects, profiles := &mockTransactionRepo{}, &mockProjectRepo{}, &mockProfileRepo{}
		project := &models.Project{EntrepreneurID: "ent-1"}
		project.ID = "p1"
		profiles.On("FindEntrepreneurProfileByUserID", "u").Return(owner, nil)
		projects.On("FindByID", "p1").Return(project, nil)
		txns.On("Create", mock.AnythingOfType("*models.Transaction")).Return(nil)

		svc := NewTransactionService(txns, projects, profiles, nil, 0.1)
		txn, err := svc.CreatePayment(ctx, testDB(), "u", &dto.CreateTransactionRequest{ProjectID: "p1", Amount: 1500})
		require.NoError(t, err)
		assert.Equal(t, 150.0, txn.Fee)
		assert.Equal(t, 1350.0, txn.NetAmount)
		assert.Equal(t, models.TransactionStatusPending, txn.Status)
		assert.Equal(t, models.TransactionTypeProjectPayment, txn.Type)
	})

	t.Run("foreign project", func(t *testing.T) {
		projects, profiles := &mockProjectRepo{}, &mockProfileRepo{}
		project := &models.Project{EntrepreneurID: "someone-else"}
		project.ID = "p2"
		profiles.On("FindEntrepreneurProfileByUserID", "u").Return(owner, nil)
		projects.On("FindByID", "p2").Return(project, nil)

		svc := NewTransactionService(&mockTransactionRepo{}, projects, profiles, nil, 0.1)
		_, err := svc.CreatePayment(ctx, testDB(), "u", &dto.CreateTransactionRequest{ProjectID: "p2", Amount: 10})
		assert.ErrorIs(t, err, apperrors.ErrNotProjectOwner)
	})

	t.Run("non-positive amount", func(t *testing.T) {
		svc := NewTransactionService(&mockTransactionRepo{}, &mockProjectRepo{}, &mockProfileRepo{}, nil, 0.1)
		_, err := svc.CreatePayment(ctx, testDB(), "u", &dto.CreateTransactionRequest{ProjectID: "p1", Amount: 0})
		assert.ErrorIs(t, err, apperrors.ErrInvalidPaymentAmount)
	})
}

func TestGetTransactionHidesForeignEntries(t *testing.T) {
	txns := &mockTransactionRepo{}
	txns.On("FindByID", "t1").Return(&models.Transaction{UserID: "owner"}, nil)
	svc := NewTransactionService(txns, &mockProjectRepo{}, &mockProfileRepo{}, nil, 0.1)

	_, err := svc.GetTransaction(context.Background(), testDB(), "intruder", "t1")
	assert.ErrorIs(t, err, apperrors.ErrTransactionNotFound)

	txn, err := svc.GetTransaction(context.Background(), testDB(), "owner", "t1")
	require.NoError(t, err)
	assert.Equal(t, "owner", txn.UserID)
}
