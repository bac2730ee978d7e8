package services

import (
	"context"
	"errors"
	"time"

	"consultbr_backend/internal/email"
	"consultbr_backend/internal/logger"
	"consultbr_backend/internal/metrics"
	"consultbr_backend/internal/models"
	"consultbr_backend/internal/repositories"
	"consultbr_backend/internal/services/dto"
	"consultbr_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ProjectService interface {
	CreateProject(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateProjectRequest) (*models.Project, error)
	GetProject(ctx context.Context, db *gorm.DB, id string) (*models.Project, error)
	ListPublished(ctx context.Context, db *gorm.DB, limit, offset int) ([]models.Project, error)
	// ListMine - проекты предпринимателя или назначенные консультанту; без профиля пусто
	ListMine(ctx context.Context, db *gorm.DB, userID string) ([]models.Project, error)
	UpdateProject(ctx context.Context, db *gorm.DB, userID, id string, req *dto.UpdateProjectRequest) (*models.Project, error)
}

type projectService struct {
	projectRepo   repositories.ProjectRepository
	profileRepo   repositories.ProfileRepository
	notifications NotificationService
}

func NewProjectService(
	projectRepo repositories.ProjectRepository,
	profileRepo repositories.ProfileRepository,
	notifications NotificationService,
) ProjectService {
	return &projectService{
		projectRepo:   projectRepo,
		profileRepo:   profileRepo,
		notifications: notifications,
	}
}

func (s *projectService) CreateProject(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateProjectRequest) (*models.Project, error) {
	db = db.WithContext(ctx)

	if err := checkDates(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.FindEntrepreneurProfileByUserID(db, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	project := req.ToModel(profile.ID)
	if err := s.projectRepo.Create(db, project); err != nil {
		return nil, mapRepoError(err)
	}

	logger.CtxInfo(ctx, "project created", "project_id", project.ID, "status", project.Status)
	return project, nil
}

func (s *projectService) GetProject(ctx context.Context, db *gorm.DB, id string) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(db.WithContext(ctx), id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return project, nil
}

func (s *projectService) ListPublished(ctx context.Context, db *gorm.DB, limit, offset int) ([]models.Project, error) {
	projects, err := s.projectRepo.FindPublished(db.WithContext(ctx), limit, offset)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return projects, nil
}

func (s *projectService) ListMine(ctx context.Context, db *gorm.DB, userID string) ([]models.Project, error) {
	db = db.WithContext(ctx)

	ent, err := s.profileRepo.FindEntrepreneurProfileByUserID(db, userID)
	switch {
	case err == nil:
		projects, err := s.projectRepo.FindByEntrepreneur(db, ent.ID)
		return projects, mapRepoError(err)
	case !errors.Is(err, repositories.ErrProfileNotFound):
		return nil, mapRepoError(err)
	}

	consultant, err := s.profileRepo.FindConsultantProfileByUserID(db, userID)
	switch {
	case err == nil:
		projects, err := s.projectRepo.FindByConsultant(db, consultant.ID)
		return projects, mapRepoError(err)
	case !errors.Is(err, repositories.ErrProfileNotFound):
		return nil, mapRepoError(err)
	}

	return []models.Project{}, nil
}

func (s *projectService) UpdateProject(ctx context.Context, db *gorm.DB, userID, id string, req *dto.UpdateProjectRequest) (*models.Project, error) {
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	project, err := s.projectRepo.FindByIDForUpdate(tx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}

	owner, err := s.profileRepo.FindEntrepreneurProfileByUserID(tx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNotProjectOwner
		}
		return nil, mapRepoError(err)
	}
	if owner.ID != project.EntrepreneurID {
		return nil, apperrors.ErrNotProjectOwner
	}

	start, end := project.StartDate, project.EndDate
	if req.StartDate != nil {
		start = req.StartDate
	}
	if req.EndDate != nil {
		end = req.EndDate
	}
	if err := checkDates(start, end); err != nil {
		return nil, err
	}

	updates := req.ToUpdates()
	var notices []Notice

	statusChanged := req.Status != nil && *req.Status != project.Status
	if statusChanged {
		next := *req.Status
		if !project.Status.CanTransitionTo(next) {
			return nil, apperrors.ErrInvalidProjectStatus.
				WithDetails(map[string]string{"from": string(project.Status), "to": string(next)})
		}

		now := time.Now()
		updates["status"] = next
		switch next {
		case models.ProjectStatusInProgress:
			if start == nil {
				updates["start_date"] = now
			}
		case models.ProjectStatusCompleted:
			updates["completed_at"] = now
		}

		if project.ConsultantID != nil {
			notice, err := s.projectNotice(tx, *project.ConsultantID, project, next)
			if err != nil {
				return nil, err
			}
			notices = append(notices, notice)
		}
	}

	if err := s.projectRepo.Update(tx, project.ID, updates); err != nil {
		return nil, mapRepoError(err)
	}
	for _, n := range notices {
		if err := s.notifications.Record(ctx, tx, n); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	project, err = s.projectRepo.FindByID(tx, project.ID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	if statusChanged {
		metrics.ProjectTransitions.WithLabelValues(string(project.Status)).Inc()
	}
	s.notifications.Deliver(ctx, db, notices...)
	return project, nil
}

// projectNotice - уведомление назначенному консультанту о смене статуса проекта
func (s *projectService) projectNotice(tx *gorm.DB, consultantProfileID string, project *models.Project, status models.ProjectStatus) (Notice, error) {
	consultant, err := s.profileRepo.FindConsultantProfileByID(tx, consultantProfileID)
	if err != nil {
		return Notice{}, mapRepoError(err)
	}
	return Notice{
		UserID:        consultant.UserID,
		Type:          models.NotificationTypeProjectUpdate,
		Title:         "Status do projeto atualizado",
		Message:       "O projeto \"" + project.Title + "\" agora está " + string(status),
		Data:          map[string]interface{}{"projectId": project.ID, "status": status},
		EmailTemplate: email.TemplateProjectStatus,
		EmailSubject:  "Atualização no projeto " + project.Title,
		EmailData:     email.TemplateData{"ProjectTitle": project.Title, "Status": string(status)},
	}, nil
}

func checkDates(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return apperrors.ValidationError(map[string]string{"endDate": "must not be before startDate"})
	}
	return nil
}
