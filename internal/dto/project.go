package dto

// ── 项目模块 DTO ──

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	Name           string   `json:"nom"              binding:"required,min=2,max=255"`
	Description    string   `json:"description"      binding:"omitempty,max=5000"`
	StartDate      string   `json:"date_debut"       binding:"required"` // "2026-03-01"
	PlannedEndDate string   `json:"date_fin_prevue"  binding:"required"`
	PlannedBudget  *float64 `json:"budget_prevue"    binding:"omitempty,min=0"`
	CompanyName    string   `json:"nom_entreprise"   binding:"omitempty,max=255"`
	Region         string   `json:"region"           binding:"omitempty,max=30"`
	Department     string   `json:"departement"      binding:"omitempty,max=30"`
	CurrentStage   string   `json:"etape_actuelle"   binding:"omitempty,max=30"`
	ManagerID      *string  `json:"chef_projet"      binding:"omitempty,uuid"`
}

// UpdateProjectRequest 更新项目请求（携带版本号做乐观锁）
type UpdateProjectRequest struct {
	Name           *string  `json:"nom"             binding:"omitempty,min=2,max=255"`
	Description    *string  `json:"description"     binding:"omitempty,max=5000"`
	StartDate      *string  `json:"date_debut"`
	PlannedEndDate *string  `json:"date_fin_prevue"`
	ActualEndDate  *string  `json:"date_fin_reelle"`
	Status         *string  `json:"statut"          binding:"omitempty,oneof=EN_COURS TERMINE EN_ATTENTE ANNULE"`
	PlannedBudget  *float64 `json:"budget_prevue"   binding:"omitempty,min=0"`
	ActualBudget   *float64 `json:"budget_reel"     binding:"omitempty,min=0"`
	CompanyName    *string  `json:"nom_entreprise"  binding:"omitempty,max=255"`
	Region         *string  `json:"region"          binding:"omitempty,max=30"`
	Department     *string  `json:"departement"     binding:"omitempty,max=30"`
	CurrentStage   *string  `json:"etape_actuelle"  binding:"omitempty,max=30"`
	ManagerID      *string  `json:"chef_projet"     binding:"omitempty,uuid"`
	Version        int      `json:"version"         binding:"required,min=1"`
}

// ProjectListRequest 项目列表查询参数
type ProjectListRequest struct {
	PaginationRequest
	Status  string `form:"statut"  binding:"omitempty,oneof=EN_COURS TERMINE EN_ATTENTE ANNULE"`
	Region  string `form:"region"  binding:"omitempty,max=30"`
	Keyword string `form:"keyword" binding:"omitempty,max=100"`
}

// ProjectResponse 项目信息响应
type ProjectResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"nom"`
	Description    string   `json:"description"`
	StartDate      string   `json:"date_debut"`
	PlannedEndDate string   `json:"date_fin_prevue"`
	ActualEndDate  *string  `json:"date_fin_reelle,omitempty"`
	Status         string   `json:"statut"`
	PlannedBudget  *float64 `json:"budget_prevue,omitempty"`
	ActualBudget   *float64 `json:"budget_reel,omitempty"`
	CompanyName    string   `json:"nom_entreprise"`
	Region         string   `json:"region"`
	Department     string   `json:"departement"`
	CurrentStage   string   `json:"etape_actuelle"`
	ManagerID      *string  `json:"chef_projet,omitempty"`
	ManagerName    string   `json:"nom_chef_projet,omitempty"`
	Version        int      `json:"version"`
	CreatedAt      string   `json:"date_creation"`
	UpdatedAt      string   `json:"date_modification"`
}

// PublicProjectResponse 公开透明度页面的项目信息（不含预算与负责人明细）
type PublicProjectResponse struct {
	ID             string `json:"id"`
	Name           string `json:"nom"`
	Description    string `json:"description"`
	StartDate      string `json:"date_debut"`
	PlannedEndDate string `json:"date_fin_prevue"`
	Status         string `json:"statut"`
	Region         string `json:"region"`
	Department     string `json:"departement"`
	CurrentStage   string `json:"etape_actuelle"`
	Progress       int    `json:"progression"`
}

// [自证通过] internal/dto/project.go
