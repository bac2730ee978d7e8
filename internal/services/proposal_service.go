package services

import (
	"context"
	"errors"
	"fmt"
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

// MaxChainDepth ограничивает обход цепочки встречных предложений
const MaxChainDepth = 100

type ProposalService interface {
	// CreateProposal - предложение консультанта или, при parentId, встречное предложение
	CreateProposal(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateProposalRequest) (*models.Proposal, error)
	// GetProposal - получатель, открывший SENT предложение, переводит его в VIEWED
	GetProposal(ctx context.Context, db *gorm.DB, userID, id string) (*models.Proposal, error)
	// GetChain - цепочка от корня до указанного предложения
	GetChain(ctx context.Context, db *gorm.DB, userID, id string) ([]models.Proposal, error)
	ListByProject(ctx context.Context, db *gorm.DB, projectID string) ([]models.Proposal, error)
	ListMine(ctx context.Context, db *gorm.DB, userID string, box repositories.ProposalBox) ([]models.Proposal, error)
	UpdateProposal(ctx context.Context, db *gorm.DB, userID, id string, req *dto.UpdateProposalRequest) (*models.Proposal, error)
}

type proposalService struct {
	proposalRepo  repositories.ProposalRepository
	projectRepo   repositories.ProjectRepository
	profileRepo   repositories.ProfileRepository
	notifications NotificationService
	now           func() time.Time
}

func NewProposalService(
	proposalRepo repositories.ProposalRepository,
	projectRepo repositories.ProjectRepository,
	profileRepo repositories.ProfileRepository,
	notifications NotificationService,
) ProposalService {
	return &proposalService{
		proposalRepo:  proposalRepo,
		projectRepo:   projectRepo,
		profileRepo:   profileRepo,
		notifications: notifications,
		now:           time.Now,
	}
}

func (s *proposalService) CreateProposal(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateProposalRequest) (*models.Proposal, error) {
	if req.ParentID != nil && *req.ParentID != "" {
		return s.createCounterOffer(ctx, db, userID, req)
	}

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if _, err := s.profileRepo.FindConsultantProfileByUserID(tx, userID); err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.NewForbiddenError("Only consultants can send proposals")
		}
		return nil, mapRepoError(err)
	}

	project, err := s.projectRepo.FindByID(tx, req.ProjectID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	owner, err := s.profileRepo.FindEntrepreneurProfileByID(tx, project.EntrepreneurID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if project.Status != models.ProjectStatusPublished {
		return nil, apperrors.ErrProjectNotOpen
	}

	open, err := s.proposalRepo.HasOpenProposal(tx, project.ID, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if open {
		return nil, apperrors.ErrDuplicateProposal
	}

	proposal := &models.Proposal{
		ProjectID:      project.ID,
		SenderID:       userID,
		ReceiverID:     owner.UserID,
		Message:        req.Message,
		ProposedRate:   req.ProposedRate,
		EstimatedHours: req.EstimatedHours,
		DeliveryDate:   req.DeliveryDate,
		ExpiresAt:      req.ExpiresAt,
		Status:         models.ProposalStatusSent,
	}
	if err := s.proposalRepo.Create(tx, proposal); err != nil {
		return nil, mapRepoError(err)
	}

	notice := receivedNotice(proposal, project, "Nova proposta recebida")
	if err := s.notifications.Record(ctx, tx, notice); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	metrics.ProposalsCreated.WithLabelValues("initial").Inc()
	logger.CtxInfo(ctx, "proposal created", "proposal_id", proposal.ID, "project_id", project.ID)
	s.notifications.Deliver(ctx, db, notice)
	return proposal, nil
}

func (s *proposalService) createCounterOffer(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateProposalRequest) (*models.Proposal, error) {
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	parent, err := s.proposalRepo.FindByIDForUpdate(tx, *req.ParentID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if parent.ProjectID != req.ProjectID {
		return nil, apperrors.NewBadRequestError("Parent proposal belongs to another project")
	}
	if parent.ReceiverID != userID {
		return nil, apperrors.ErrNotProposalParty
	}
	if !parent.Status.IsOpen() {
		return nil, apperrors.ErrInvalidProposalStatus.
			WithDetails(map[string]string{"from": string(parent.Status), "to": string(models.ProposalStatusCounterOffered)})
	}

	project, err := s.projectRepo.FindByID(tx, parent.ProjectID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if project.Status != models.ProjectStatusPublished {
		return nil, apperrors.ErrProjectNotOpen
	}

	now := s.now()
	parentUpdates := map[string]interface{}{
		"status":       models.ProposalStatusCounterOffered,
		"responded_at": now,
	}
	if parent.Status == models.ProposalStatusSent {
		parentUpdates["viewed_at"] = now
	}
	if err := s.proposalRepo.Update(tx, parent.ID, parentUpdates); err != nil {
		return nil, mapRepoError(err)
	}

	counter := &models.Proposal{
		ProjectID:      parent.ProjectID,
		SenderID:       userID,
		ReceiverID:     parent.SenderID,
		Message:        req.Message,
		ProposedRate:   req.ProposedRate,
		EstimatedHours: req.EstimatedHours,
		DeliveryDate:   req.DeliveryDate,
		ExpiresAt:      req.ExpiresAt,
		Status:         models.ProposalStatusSent,
		ParentID:       &parent.ID,
	}
	if err := s.proposalRepo.Create(tx, counter); err != nil {
		return nil, mapRepoError(err)
	}

	notice := receivedNotice(counter, project, "Contraproposta recebida")
	if err := s.notifications.Record(ctx, tx, notice); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	metrics.ProposalsCreated.WithLabelValues("counter_offer").Inc()
	metrics.ProposalTransitions.WithLabelValues(string(models.ProposalStatusCounterOffered)).Inc()
	logger.CtxInfo(ctx, "counter offer created", "proposal_id", counter.ID, "parent_id", parent.ID)
	s.notifications.Deliver(ctx, db, notice)
	return counter, nil
}

func (s *proposalService) GetProposal(ctx context.Context, db *gorm.DB, userID, id string) (*models.Proposal, error) {
	db = db.WithContext(ctx)

	proposal, err := s.proposalRepo.FindByID(db, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if !proposal.IsParty(userID) {
		return nil, apperrors.ErrNotProposalParty
	}

	if proposal.ReceiverID == userID && proposal.Status == models.ProposalStatusSent {
		now := s.now()
		err := s.proposalRepo.Update(db, proposal.ID, map[string]interface{}{
			"status":    models.ProposalStatusViewed,
			"viewed_at": now,
		})
		if err != nil {
			return nil, mapRepoError(err)
		}
		proposal.Status = models.ProposalStatusViewed
		proposal.ViewedAt = &now
		metrics.ProposalTransitions.WithLabelValues(string(models.ProposalStatusViewed)).Inc()
	}
	return proposal, nil
}

func (s *proposalService) GetChain(ctx context.Context, db *gorm.DB, userID, id string) ([]models.Proposal, error) {
	db = db.WithContext(ctx)

	current, err := s.proposalRepo.FindByID(db, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if !current.IsParty(userID) {
		return nil, apperrors.ErrNotProposalParty
	}

	chain := []models.Proposal{*current}
	visited := map[string]bool{current.ID: true}
	for current.ParentID != nil && len(chain) < MaxChainDepth {
		parentID := *current.ParentID
		if visited[parentID] {
			logger.CtxWarn(ctx, "proposal chain contains a cycle", "proposal_id", id, "at", parentID)
			break
		}
		visited[parentID] = true

		current, err = s.proposalRepo.FindByID(db, parentID)
		if errors.Is(err, repositories.ErrProposalNotFound) {
			break
		}
		if err != nil {
			return nil, mapRepoError(err)
		}
		chain = append(chain, *current)
	}

	// корень первым
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

func (s *proposalService) ListByProject(ctx context.Context, db *gorm.DB, projectID string) ([]models.Proposal, error) {
	proposals, err := s.proposalRepo.FindByProject(db.WithContext(ctx), projectID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return proposals, nil
}

func (s *proposalService) ListMine(ctx context.Context, db *gorm.DB, userID string, box repositories.ProposalBox) ([]models.Proposal, error) {
	if box != repositories.ProposalBoxSent && box != repositories.ProposalBoxReceived {
		return nil, apperrors.NewBadRequestError("Proposal type must be 'sent' or 'received'")
	}
	proposals, err := s.proposalRepo.FindByUser(db.WithContext(ctx), userID, box)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return proposals, nil
}

func (s *proposalService) UpdateProposal(ctx context.Context, db *gorm.DB, userID, id string, req *dto.UpdateProposalRequest) (*models.Proposal, error) {
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	proposal, err := s.proposalRepo.FindByIDForUpdate(tx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if !proposal.IsParty(userID) {
		return nil, apperrors.ErrNotProposalParty
	}
	isSender := proposal.SenderID == userID

	updates := make(map[string]interface{})

	if req.HasTermChanges() {
		if !isSender {
			return nil, apperrors.NewForbiddenError("Only the sender can change the proposal terms")
		}
		if proposal.Status != models.ProposalStatusSent {
			return nil, apperrors.ErrInvalidProposalStatus.
				WithDetails(map[string]string{"reason": "terms can only change before the proposal is viewed"})
		}
		for k, v := range req.ToUpdates() {
			updates[k] = v
		}
	}

	var notices []Notice
	statusChanged := req.Status != nil && *req.Status != proposal.Status
	if statusChanged {
		next := *req.Status
		if err := s.applyStatus(proposal, isSender, next, updates); err != nil {
			return nil, err
		}

		project, err := s.projectRepo.FindByIDForUpdate(tx, proposal.ProjectID)
		if err != nil {
			return nil, mapRepoError(err)
		}

		if next == models.ProposalStatusAccepted {
			notice, err := s.assignConsultant(ctx, tx, proposal, project)
			if err != nil {
				return nil, err
			}
			notices = append(notices, notice)
		}

		otherParty := proposal.SenderID
		if isSender {
			otherParty = proposal.ReceiverID
		}
		notices = append(notices, Notice{
			UserID:        otherParty,
			Type:          models.NotificationTypeProposal,
			Title:         "Proposta atualizada",
			Message:       fmt.Sprintf("A proposta para \"%s\" agora está %s", project.Title, next),
			Data:          map[string]interface{}{"proposalId": proposal.ID, "projectId": project.ID, "status": next},
			EmailTemplate: email.TemplateProposalStatus,
			EmailSubject:  "Proposta atualizada: " + project.Title,
			EmailData: email.TemplateData{
				"ProjectTitle": project.Title,
				"Status":       string(next),
				"Link":         "/proposals/" + proposal.ID,
			},
		})
	}

	if len(updates) == 0 {
		return proposal, nil
	}

	if err := s.proposalRepo.Update(tx, proposal.ID, updates); err != nil {
		return nil, mapRepoError(err)
	}
	for _, n := range notices {
		if err := s.notifications.Record(ctx, tx, n); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	proposal, err = s.proposalRepo.FindByID(tx, proposal.ID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	if statusChanged {
		metrics.ProposalTransitions.WithLabelValues(string(proposal.Status)).Inc()
		logger.CtxInfo(ctx, "proposal status changed", "proposal_id", proposal.ID, "status", proposal.Status)
	}
	s.notifications.Deliver(ctx, db, notices...)
	return proposal, nil
}

// applyStatus проверяет, кто и куда может перевести предложение, и дописывает updates
func (s *proposalService) applyStatus(p *models.Proposal, isSender bool, next models.ProposalStatus, updates map[string]interface{}) error {
	invalid := apperrors.ErrInvalidProposalStatus.
		WithDetails(map[string]string{"from": string(p.Status), "to": string(next)})
	now := s.now()

	if isSender {
		// Отправитель может только отозвать открытое предложение
		if next != models.ProposalStatusExpired || !p.Status.IsOpen() {
			return invalid
		}
		updates["status"] = next
		updates["responded_at"] = now
		return nil
	}

	if next == models.ProposalStatusExpired || next == models.ProposalStatusSent {
		return invalid
	}

	current := p.Status
	if current == models.ProposalStatusSent && next != models.ProposalStatusViewed {
		// Ответ на непросмотренное предложение сначала отмечает просмотр
		updates["viewed_at"] = now
		current = models.ProposalStatusViewed
	}
	if !current.CanTransitionTo(next) {
		return invalid
	}

	updates["status"] = next
	if next == models.ProposalStatusViewed {
		if p.ViewedAt == nil {
			updates["viewed_at"] = now
		}
	} else {
		updates["responded_at"] = now
	}
	return nil
}

// assignConsultant - принятое предложение назначает консультанта и запускает проект
func (s *proposalService) assignConsultant(ctx context.Context, tx *gorm.DB, p *models.Proposal, project *models.Project) (Notice, error) {
	if project.Status != models.ProjectStatusPublished {
		return Notice{}, apperrors.ErrProjectNotOpen
	}

	consultant, err := s.profileRepo.FindConsultantProfileByUserID(tx, p.SenderID)
	if errors.Is(err, repositories.ErrProfileNotFound) {
		consultant, err = s.profileRepo.FindConsultantProfileByUserID(tx, p.ReceiverID)
	}
	if err != nil {
		return Notice{}, mapRepoError(err)
	}

	updates := map[string]interface{}{
		"consultant_id": consultant.ID,
		"status":        models.ProjectStatusInProgress,
	}
	if project.StartDate == nil {
		updates["start_date"] = s.now()
	}
	if err := s.projectRepo.Update(tx, project.ID, updates); err != nil {
		return Notice{}, mapRepoError(err)
	}

	metrics.ProjectTransitions.WithLabelValues(string(models.ProjectStatusInProgress)).Inc()
	logger.CtxInfo(ctx, "consultant assigned to project", "project_id", project.ID, "consultant_id", consultant.ID)

	return Notice{
		UserID:        consultant.UserID,
		Type:          models.NotificationTypeProjectUpdate,
		Title:         "Projeto iniciado",
		Message:       fmt.Sprintf("Você foi contratado para o projeto \"%s\"", project.Title),
		Data:          map[string]interface{}{"projectId": project.ID, "status": models.ProjectStatusInProgress},
		EmailTemplate: email.TemplateProjectStatus,
		EmailSubject:  "Projeto iniciado: " + project.Title,
		EmailData:     email.TemplateData{"ProjectTitle": project.Title, "Status": string(models.ProjectStatusInProgress)},
	}, nil
}

func receivedNotice(p *models.Proposal, project *models.Project, title string) Notice {
	data := email.TemplateData{
		"ProjectTitle": project.Title,
		"Link":         "/proposals/" + p.ID,
	}
	if p.ProposedRate != nil {
		data["Rate"] = fmt.Sprintf("%.2f", *p.ProposedRate)
	}
	return Notice{
		UserID:        p.ReceiverID,
		Type:          models.NotificationTypeProposal,
		Title:         title,
		Message:       fmt.Sprintf("Nova proposta para o projeto \"%s\"", project.Title),
		Data:          map[string]interface{}{"proposalId": p.ID, "projectId": project.ID},
		EmailTemplate: email.TemplateProposalReceived,
		EmailSubject:  title + ": " + project.Title,
		EmailData:     data,
	}
}
