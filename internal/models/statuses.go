package models

type UserStatus string
type UserRole string
type BusinessStage string
type ProjectStatus string
type ProposalStatus string
type NotificationType string
type TransactionType string
type TransactionStatus string
type FavoriteTarget string

const (
	UserStatusPendingVerification UserStatus = "PENDING_VERIFICATION"
	UserStatusActive              UserStatus = "ACTIVE"
	UserStatusSuspended           UserStatus = "SUSPENDED"
	UserStatusInactive            UserStatus = "INACTIVE"

	UserRoleEntrepreneur UserRole = "ENTREPRENEUR"
	UserRoleConsultant   UserRole = "CONSULTANT"
	UserRoleAdmin        UserRole = "ADMIN"

	BusinessStageIdea      BusinessStage = "idea"
	BusinessStagePrototype BusinessStage = "prototype"
	BusinessStageLaunch    BusinessStage = "launch"
	BusinessStageGrowth    BusinessStage = "growth"

	ProjectStatusDraft      ProjectStatus = "DRAFT"
	ProjectStatusPublished  ProjectStatus = "PUBLISHED"
	ProjectStatusInProgress ProjectStatus = "IN_PROGRESS"
	ProjectStatusCompleted  ProjectStatus = "COMPLETED"
	ProjectStatusCancelled  ProjectStatus = "CANCELLED"
	ProjectStatusDisputed   ProjectStatus = "DISPUTED"

	ProposalStatusSent           ProposalStatus = "SENT"
	ProposalStatusViewed         ProposalStatus = "VIEWED"
	ProposalStatusAccepted       ProposalStatus = "ACCEPTED"
	ProposalStatusDeclined       ProposalStatus = "DECLINED"
	ProposalStatusCounterOffered ProposalStatus = "COUNTER_OFFERED"
	ProposalStatusExpired        ProposalStatus = "EXPIRED"

	NotificationTypeMessage       NotificationType = "MESSAGE"
	NotificationTypeProposal      NotificationType = "PROPOSAL"
	NotificationTypeProjectUpdate NotificationType = "PROJECT_UPDATE"
	NotificationTypePayment       NotificationType = "PAYMENT"
	NotificationTypeSystem        NotificationType = "SYSTEM"
	NotificationTypeMarketing     NotificationType = "MARKETING"

	TransactionTypeProjectPayment TransactionType = "PROJECT_PAYMENT"
	TransactionTypeSubscription   TransactionType = "SUBSCRIPTION"
	TransactionTypeRefund         TransactionType = "REFUND"
	TransactionTypeCommission     TransactionType = "COMMISSION"

	TransactionStatusPending    TransactionStatus = "PENDING"
	TransactionStatusProcessing TransactionStatus = "PROCESSING"
	TransactionStatusCompleted  TransactionStatus = "COMPLETED"
	TransactionStatusFailed     TransactionStatus = "FAILED"
	TransactionStatusRefunded   TransactionStatus = "REFUNDED"
	TransactionStatusDisputed   TransactionStatus = "DISPUTED"

	FavoriteTargetConsultant FavoriteTarget = "consultant"
	FavoriteTargetProject    FavoriteTarget = "project"
)

// Таблицы допустимых переходов. Переход в текущий статус не считается ошибкой.
var (
	userStatusTransitions = map[UserStatus][]UserStatus{
		UserStatusPendingVerification: {UserStatusActive},
		UserStatusActive:              {UserStatusSuspended, UserStatusInactive},
		UserStatusSuspended:           {UserStatusActive, UserStatusInactive},
		UserStatusInactive:            {UserStatusActive},
	}

	projectStatusTransitions = map[ProjectStatus][]ProjectStatus{
		ProjectStatusDraft:      {ProjectStatusPublished},
		ProjectStatusPublished:  {ProjectStatusInProgress, ProjectStatusCancelled, ProjectStatusDisputed},
		ProjectStatusInProgress: {ProjectStatusCompleted, ProjectStatusCancelled, ProjectStatusDisputed},
	}

	proposalStatusTransitions = map[ProposalStatus][]ProposalStatus{
		ProposalStatusSent: {ProposalStatusViewed},
		ProposalStatusViewed: {
			ProposalStatusAccepted,
			ProposalStatusDeclined,
			ProposalStatusCounterOffered,
			ProposalStatusExpired,
		},
	}

	transactionStatusTransitions = map[TransactionStatus][]TransactionStatus{
		TransactionStatusPending:    {TransactionStatusProcessing, TransactionStatusFailed},
		TransactionStatusProcessing: {TransactionStatusCompleted, TransactionStatusFailed},
		TransactionStatusCompleted:  {TransactionStatusRefunded, TransactionStatusDisputed},
		TransactionStatusDisputed:   {TransactionStatusCompleted, TransactionStatusRefunded},
	}
)

func canTransition[S comparable](table map[S][]S, from, to S) bool {
	if from == to {
		return true
	}
	for _, next := range table[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s UserStatus) IsValid() bool {
	switch s {
	case UserStatusPendingVerification, UserStatusActive, UserStatusSuspended, UserStatusInactive:
		return true
	}
	return false
}

func (s UserStatus) CanTransitionTo(next UserStatus) bool {
	return canTransition(userStatusTransitions, s, next)
}

// CanSignIn - заблокированные и деактивированные аккаунты не проходят ролевую проверку
func (s UserStatus) CanSignIn() bool {
	return s != UserStatusSuspended && s != UserStatusInactive
}

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleEntrepreneur, UserRoleConsultant, UserRoleAdmin:
		return true
	}
	return false
}

func (b BusinessStage) IsValid() bool {
	switch b {
	case BusinessStageIdea, BusinessStagePrototype, BusinessStageLaunch, BusinessStageGrowth:
		return true
	}
	return false
}

func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusDraft, ProjectStatusPublished, ProjectStatusInProgress,
		ProjectStatusCompleted, ProjectStatusCancelled, ProjectStatusDisputed:
		return true
	}
	return false
}

func (s ProjectStatus) CanTransitionTo(next ProjectStatus) bool {
	return canTransition(projectStatusTransitions, s, next)
}

// IsActive - проекты, которые считаются "в работе" на дашборде предпринимателя
func (s ProjectStatus) IsActive() bool {
	return s == ProjectStatusPublished || s == ProjectStatusInProgress
}

func (s ProposalStatus) IsValid() bool {
	switch s {
	case ProposalStatusSent, ProposalStatusViewed, ProposalStatusAccepted,
		ProposalStatusDeclined, ProposalStatusCounterOffered, ProposalStatusExpired:
		return true
	}
	return false
}

func (s ProposalStatus) CanTransitionTo(next ProposalStatus) bool {
	return canTransition(proposalStatusTransitions, s, next)
}

// IsOpen - предложение еще ждет ответа получателя
func (s ProposalStatus) IsOpen() bool {
	return s == ProposalStatusSent || s == ProposalStatusViewed
}

func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationTypeMessage, NotificationTypeProposal, NotificationTypeProjectUpdate,
		NotificationTypePayment, NotificationTypeSystem, NotificationTypeMarketing:
		return true
	}
	return false
}

func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeProjectPayment, TransactionTypeSubscription, TransactionTypeRefund, TransactionTypeCommission:
		return true
	}
	return false
}

func (s TransactionStatus) IsValid() bool {
	switch s {
	case TransactionStatusPending, TransactionStatusProcessing, TransactionStatusCompleted,
		TransactionStatusFailed, TransactionStatusRefunded, TransactionStatusDisputed:
		return true
	}
	return false
}

func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	return canTransition(transactionStatusTransitions, s, next)
}

// IsSettled - после этих статусов выставляется processedAt
func (s TransactionStatus) IsSettled() bool {
	switch s {
	case TransactionStatusCompleted, TransactionStatusFailed, TransactionStatusRefunded:
		return true
	}
	return false
}

func (t FavoriteTarget) IsValid() bool {
	return t == FavoriteTargetConsultant || t == FavoriteTargetProject
}
