package dto

type ListNotificationsRequest struct {
	Unread bool `form:"unread"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}
