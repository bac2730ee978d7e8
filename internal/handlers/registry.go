package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler           *AuthHandler
	UserHandler           *UserHandler
	ProfileHandler        *ProfileHandler
	ProjectHandler        *ProjectHandler
	ProposalHandler       *ProposalHandler
	MessageHandler        *MessageHandler
	FavoriteHandler       *FavoriteHandler
	PortfolioHandler      *PortfolioHandler
	DashboardHandler      *DashboardHandler
	SpecializationHandler *SpecializationHandler
	NotificationHandler   *NotificationHandler
	TransactionHandler    *TransactionHandler
	UploadHandler         *UploadHandler
}
