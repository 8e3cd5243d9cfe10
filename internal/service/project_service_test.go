package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/BOSSENDOYE/buildflow/internal/dto"
	"github.com/BOSSENDOYE/buildflow/internal/model"
	"github.com/BOSSENDOYE/buildflow/internal/repository"
	apperrors "github.com/BOSSENDOYE/buildflow/pkg/errors"
)

// ── 测试辅助 ──

func setupTestProjectService() (ProjectService, *repository.Repository) {
	repo := newTestRepo()
	audit := NewAuditService(repo, zap.NewNop())
	notification := NewNotificationService(repo, zap.NewNop())
	svc := NewProjectService(repo, audit, notification, zap.NewNop())
	return svc, repo
}

func seedProject(t *testing.T, repo *repository.Repository, name, status string) *model.Project {
	t.Helper()
	project := &model.Project{
		Name:           name,
		StartDate:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		PlannedEndDate: time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		Status:         status,
		Region:         "Dakar",
	}
	if err := repo.Project.Create(context.Background(), project); err != nil {
		t.Fatalf("创建测试项目失败: %v", err)
	}
	return project
}

func seedPhase(t *testing.T, repo *repository.Repository, projectID, name, status string, ordre int, start, end time.Time) *model.Phase {
	t.Helper()
	phase := &model.Phase{
		ProjectID:      projectID,
		Name:           name,
		StartDate:      start,
		PlannedEndDate: end,
		Status:         status,
		Order:          ordre,
	}
	if err := repo.Phase.Create(context.Background(), phase); err != nil {
		t.Fatalf("创建测试阶段失败: %v", err)
	}
	return phase
}

// ── Create 测试 ──

func TestProjectService_Create_Success(t *testing.T) {
	svc, _ := setupTestProjectService()

	result, err := svc.Create(context.Background(), &dto.CreateProjectRequest{
		Name:           "Pont de Foundiougne",
		StartDate:      "2026-03-01",
		PlannedEndDate: "2027-06-30",
		Region:         "Fatick",
	}, "admin-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Status != model.ProjectStatusInProgress {
		t.Errorf("新项目应默认 EN_COURS，实际 %s", result.Status)
	}
	if result.Version != 1 {
		t.Errorf("新项目版本应为 1，实际 %d", result.Version)
	}
}

func TestProjectService_Create_InvertedDates(t *testing.T) {
	svc, _ := setupTestProjectService()

	_, err := svc.Create(context.Background(), &dto.CreateProjectRequest{
		Name:           "Projet Invalide",
		StartDate:      "2027-06-30",
		PlannedEndDate: "2026-03-01",
	}, "admin-001")
	if !errors.Is(err, ErrProjectDateInvalid) {
		t.Errorf("期望 ErrProjectDateInvalid，实际: %v", err)
	}
}

func TestProjectService_Create_UnknownManager(t *testing.T) {
	svc, _ := setupTestProjectService()

	managerID := "user-inconnu"
	_, err := svc.Create(context.Background(), &dto.CreateProjectRequest{
		Name:           "Autoroute Dakar-Thiès",
		StartDate:      "2026-03-01",
		PlannedEndDate: "2027-06-30",
		ManagerID:      &managerID,
	}, "admin-001")
	if !errors.Is(err, ErrManagerNotFound) {
		t.Errorf("期望 ErrManagerNotFound，实际: %v", err)
	}
}

// ── Update 测试 ──

func TestProjectService_Update_Success(t *testing.T) {
	svc, repo := setupTestProjectService()
	project := seedProject(t, repo, "Pont de Foundiougne", model.ProjectStatusInProgress)

	status := model.ProjectStatusCompleted
	result, err := svc.Update(context.Background(), project.ProjectID, &dto.UpdateProjectRequest{
		Status:  &status,
		Version: 1,
	}, "admin-001")
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.Status != model.ProjectStatusCompleted {
		t.Errorf("期望状态 TERMINE，实际 %s", result.Status)
	}
	if result.Version != 2 {
		t.Errorf("更新后版本应为 2，实际 %d", result.Version)
	}
}

func TestProjectService_Update_VersionConflict(t *testing.T) {
	svc, repo := setupTestProjectService()
	project := seedProject(t, repo, "Pont de Foundiougne", model.ProjectStatusInProgress)

	name := "Nouveau nom"
	_, err := svc.Update(context.Background(), project.ProjectID, &dto.UpdateProjectRequest{
		Name:    &name,
		Version: 99, // 过期版本
	}, "admin-001")
	if !errors.Is(err, apperrors.ErrOptimisticLock) {
		t.Errorf("期望 ErrOptimisticLock，实际: %v", err)
	}
}

func TestProjectService_Update_NotFound(t *testing.T) {
	svc, _ := setupTestProjectService()

	name := "Fantôme"
	_, err := svc.Update(context.Background(), "proj-inconnu", &dto.UpdateProjectRequest{
		Name:    &name,
		Version: 1,
	}, "admin-001")
	if !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("期望 ErrProjectNotFound，实际: %v", err)
	}
}

// ── ListPublic 测试 ──

func TestProjectService_ListPublic_ExcludesCancelledAndComputesProgress(t *testing.T) {
	svc, repo := setupTestProjectService()
	active := seedProject(t, repo, "Projet Actif", model.ProjectStatusInProgress)
	seedProject(t, repo, "Projet Annulé", model.ProjectStatusCancelled)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	seedPhase(t, repo, active.ProjectID, "Terrassement", model.PhaseStatusCompleted, 0, start, end)
	seedPhase(t, repo, active.ProjectID, "Gros œuvre", model.PhaseStatusInProgress, 1, start, end)

	// mock 的 ListPublic 不做 Preload，这里手动附上阶段
	stored, _ := repo.Project.GetByID(context.Background(), active.ProjectID)
	phases, _ := repo.Phase.ListByProject(context.Background(), active.ProjectID)
	stored.Phases = phases
	stored.Version = 1
	_ = repo.Project.Update(context.Background(), stored)

	result, err := svc.ListPublic(context.Background())
	if err != nil {
		t.Fatalf("ListPublic 应成功: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("取消的项目不应出现在公开列表，期望 1 个项目，实际 %d", len(result))
	}
	if result[0].Progress != 50 {
		t.Errorf("2 个阶段完成 1 个，期望进度 50，实际 %d", result[0].Progress)
	}
}

// ── Delete 测试 ──

func TestProjectService_Delete_Success(t *testing.T) {
	svc, repo := setupTestProjectService()
	project := seedProject(t, repo, "Pont de Foundiougne", model.ProjectStatusInProgress)

	if err := svc.Delete(context.Background(), project.ProjectID, "admin-001"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), project.ProjectID); !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("删除后应查不到项目，实际: %v", err)
	}
}

// [自证通过] internal/service/project_service_test.go
