package contextkeys

type contextKey string

const (
	// DBContextKey - *gorm.DB (пул или транзакция) в gin.Context
	DBContextKey = contextKey("db")

	// UserIDKey - ID пользователя из сессии, выставляется AuthMiddleware
	UserIDKey = "userID"
)
