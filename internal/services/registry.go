package services

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	UserService           UserService
	ProfileService        ProfileService
	ProjectService        ProjectService
	ProposalService       ProposalService
	MessageService        MessageService
	FavoriteService       FavoriteService
	PortfolioService      PortfolioService
	SpecializationService SpecializationService
	DashboardService      DashboardService
	NotificationService   NotificationService
	TransactionService    TransactionService
	UploadService         UploadService
}
