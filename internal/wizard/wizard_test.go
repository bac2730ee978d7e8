package wizard

import (
	"context"
	"errors"
	"testing"

	"consultbr_backend/internal/models"
	"consultbr_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type form struct {
	Name string
	Age  int
}

func twoStepWizard(submit SubmitFunc[form]) *Wizard[form] {
	return New([]Step[form]{
		{Name: "name", Validate: func(f *form) error {
			if f.Name == "" {
				return errors.New("name required")
			}
			return nil
		}},
		{Name: "age", Validate: func(f *form) error {
			if f.Age <= 0 {
				return errors.New("age required")
			}
			return nil
		}},
	}, submit)
}

func TestWizard_NextRequiresValidStep(t *testing.T) {
	w := twoStepWizard(func(context.Context, *form) error { return nil })

	assert.Equal(t, 1, w.StepNumber())
	err := w.Next()
	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "name", stepErr.Step)
	assert.Equal(t, 1, w.StepNumber())

	w.Data().Name = "Ana"
	require.NoError(t, w.Next())
	assert.Equal(t, 2, w.StepNumber())
	assert.Equal(t, "age", w.Current().Name)
	assert.ErrorIs(t, w.Next(), ErrLastStep)
}

func TestWizard_BackKeepsData(t *testing.T) {
	w := twoStepWizard(func(context.Context, *form) error { return nil })

	assert.ErrorIs(t, w.Back(), ErrFirstStep)

	w.Data().Name = "Ana"
	require.NoError(t, w.Next())
	w.Data().Age = 30
	require.NoError(t, w.Back())

	assert.Equal(t, 1, w.StepNumber())
	assert.Equal(t, "Ana", w.Data().Name)
	assert.Equal(t, 30, w.Data().Age)
}

func TestWizard_CommitOnlyAtFinalStep(t *testing.T) {
	calls := 0
	w := twoStepWizard(func(_ context.Context, f *form) error {
		calls++
		assert.Equal(t, "Ana", f.Name)
		return nil
	})
	ctx := context.Background()

	w.Data().Name = "Ana"
	assert.ErrorIs(t, w.Commit(ctx), ErrNotFinalStep)

	require.NoError(t, w.Next())
	assert.Error(t, w.Commit(ctx), "final step is invalid")
	assert.Equal(t, 0, calls)

	w.Data().Age = 30
	require.NoError(t, w.Commit(ctx))
	assert.Equal(t, 1, calls)
	assert.True(t, w.Committed())

	assert.ErrorIs(t, w.Commit(ctx), ErrAlreadyCommitted)
	assert.Equal(t, 1, calls)
}

func TestWizard_FailedSubmitCanRetry(t *testing.T) {
	calls := 0
	boom := errors.New("network down")
	w := New([]Step[form]{{Name: "only"}}, func(context.Context, *form) error {
		calls++
		if calls == 1 {
			return boom
		}
		return nil
	})

	assert.ErrorIs(t, w.Commit(context.Background()), boom)
	assert.False(t, w.Committed())
	require.NoError(t, w.Commit(context.Background()))
	assert.Equal(t, 2, calls)
}

func fill[T any](t *testing.T, w *Wizard[T], values map[string]string) {
	t.Helper()
	for _, f := range w.Current().Fields {
		require.NoError(t, f.Set(w.Data(), values[f.Name]), f.Name)
	}
}

func TestEntrepreneurOnboarding(t *testing.T) {
	var submitted *dto.CreateEntrepreneurProfileRequest
	w := NewEntrepreneurOnboarding(func(_ context.Context, r *dto.CreateEntrepreneurProfileRequest) error {
		submitted = r
		return nil
	})
	assert.Equal(t, 3, w.Total())

	fill(t, w, map[string]string{"companyName": "Padaria Boa", "industry": "Alimentação"})
	require.NoError(t, w.Next())

	fill(t, w, map[string]string{"businessStage": "launch", "state": "SP"})
	assert.Error(t, w.Next(), "city is required")
	fill(t, w, map[string]string{"businessStage": "launch", "state": "SP", "city": "Campinas", "isRemote": "s"})
	require.NoError(t, w.Next())

	fill(t, w, map[string]string{"consultationAreas": "Marketing, Finanças, "})
	require.NoError(t, w.Commit(context.Background()))

	require.NotNil(t, submitted)
	assert.Equal(t, "Padaria Boa", *submitted.CompanyName)
	assert.Equal(t, models.BusinessStageLaunch, *submitted.BusinessStage)
	assert.True(t, *submitted.IsRemote)
	assert.Equal(t, []string{"Marketing", "Finanças"}, submitted.ConsultationAreas)
	assert.Nil(t, submitted.CompanyDescription)
}

func TestEntrepreneurOnboarding_RejectsUnknownStage(t *testing.T) {
	w := NewEntrepreneurOnboarding(func(context.Context, *dto.CreateEntrepreneurProfileRequest) error { return nil })
	fill(t, w, map[string]string{"companyName": "X", "industry": "Y"})
	require.NoError(t, w.Next())

	stage := w.Current().Fields[0]
	assert.Equal(t, "businessStage", stage.Name)
	assert.Error(t, stage.Set(w.Data(), "unicorn"))
}

func TestConsultantOnboarding_RequiresIndustries(t *testing.T) {
	calls := 0
	w := NewConsultantOnboarding(func(context.Context, *dto.CreateConsultantProfileRequest) error {
		calls++
		return nil
	})

	fill(t, w, map[string]string{"title": "Contador", "bio": "Dez anos de mercado", "experience": "10"})
	require.NoError(t, w.Next())
	fill(t, w, map[string]string{"state": "RJ", "city": "Niterói", "hourlyRate": "150,50"})
	require.NoError(t, w.Next())
	assert.Equal(t, 150.5, *w.Data().HourlyRate)

	assert.Error(t, w.Commit(context.Background()))
	assert.Equal(t, 0, calls)

	fill(t, w, map[string]string{"industries": "Varejo"})
	require.NoError(t, w.Commit(context.Background()))
	assert.Equal(t, 1, calls)
}

func TestConsultantOnboarding_BadNumber(t *testing.T) {
	w := NewConsultantOnboarding(func(context.Context, *dto.CreateConsultantProfileRequest) error { return nil })
	for _, f := range w.Current().Fields {
		if f.Name == "experience" {
			assert.Error(t, f.Set(w.Data(), "dez"))
		}
	}
}

func TestProjectCreation_DraftByDefault(t *testing.T) {
	var status models.ProjectStatus
	w := NewProjectCreation(func(_ context.Context, r *dto.CreateProjectRequest) error {
		status = r.Status
		return nil
	})

	fill(t, w, map[string]string{"title": "Ab"})
	assert.Error(t, w.Next(), "title too short")

	fill(t, w, map[string]string{"title": "Plano financeiro", "description": "Organizar o fluxo de caixa", "deliverables": "planilha, relatório"})
	require.NoError(t, w.Next())

	fill(t, w, map[string]string{"startDate": "2025-03-10", "endDate": "2025-03-01"})
	assert.Error(t, w.Next(), "end before start")
	fill(t, w, map[string]string{"budget": "5000", "estimatedHours": "40", "startDate": "2025-03-01", "endDate": "2025-03-10"})
	require.NoError(t, w.Next())

	fill(t, w, map[string]string{})
	require.NoError(t, w.Commit(context.Background()))
	assert.Equal(t, models.ProjectStatusDraft, status)
	assert.Contains(t, SummarizeProject(w.Data()), "Entregáveis: planilha, relatório")
}

func TestProjectCreation_Publish(t *testing.T) {
	var status models.ProjectStatus
	w := NewProjectCreation(func(_ context.Context, r *dto.CreateProjectRequest) error {
		status = r.Status
		return nil
	})
	fill(t, w, map[string]string{"title": "Plano financeiro", "description": "Organizar o fluxo de caixa"})
	require.NoError(t, w.Next())
	fill(t, w, map[string]string{})
	require.NoError(t, w.Next())
	fill(t, w, map[string]string{"publish": "sim"})
	require.NoError(t, w.Commit(context.Background()))
	assert.Equal(t, models.ProjectStatusPublished, status)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, SplitList(" , "))
	assert.Equal(t, []string{"a", "b c"}, SplitList("a, b c ,"))
}
