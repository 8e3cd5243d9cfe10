package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/BOSSENDOYE/buildflow/internal/model"
	apperrors "github.com/BOSSENDOYE/buildflow/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%03d", m.seq)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context, role, keyword string, _, _ int) ([]model.User, int64, error) {
	var result []model.User
	for _, u := range m.users {
		if role != "" && u.Role != role {
			continue
		}
		if keyword != "" && !strings.Contains(u.Name, keyword) && !strings.Contains(u.Email, keyword) {
			continue
		}
		result = append(result, *u)
	}
	return result, int64(len(result)), nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

// ── Mock ProjectRepository ──

type mockProjectRepo struct {
	projects map[string]*model.Project
	seq      int
}

func newMockProjectRepo() *mockProjectRepo {
	return &mockProjectRepo{projects: make(map[string]*model.Project)}
}

func (m *mockProjectRepo) Create(_ context.Context, project *model.Project) error {
	if project.ProjectID == "" {
		m.seq++
		project.ProjectID = fmt.Sprintf("proj-%03d", m.seq)
	}
	if project.Version == 0 {
		project.Version = 1
	}
	m.projects[project.ProjectID] = project
	return nil
}

func (m *mockProjectRepo) GetByID(_ context.Context, id string) (*model.Project, error) {
	if p, ok := m.projects[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProjectRepo) List(_ context.Context, status, region, keyword string, _, _ int) ([]model.Project, int64, error) {
	var result []model.Project
	for _, p := range m.projects {
		if status != "" && p.Status != status {
			continue
		}
		if region != "" && p.Region != region {
			continue
		}
		if keyword != "" && !strings.Contains(p.Name, keyword) {
			continue
		}
		result = append(result, *p)
	}
	return result, int64(len(result)), nil
}

func (m *mockProjectRepo) ListPublic(_ context.Context, _ int) ([]model.Project, error) {
	var result []model.Project
	for _, p := range m.projects {
		if p.Status != model.ProjectStatusCancelled {
			result = append(result, *p)
		}
	}
	return result, nil
}

// Update 模拟乐观锁语义：版本不匹配返回冲突
func (m *mockProjectRepo) Update(_ context.Context, project *model.Project) error {
	stored, ok := m.projects[project.ProjectID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if stored.Version != project.Version {
		return apperrors.ErrOptimisticLock
	}
	project.Version++
	m.projects[project.ProjectID] = project
	return nil
}

func (m *mockProjectRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.projects, id)
	return nil
}

func (m *mockProjectRepo) CountByStatus(_ context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, p := range m.projects {
		counts[p.Status]++
	}
	return counts, nil
}

func (m *mockProjectRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.projects)), nil
}

// ── Mock PhaseRepository ──

type mockPhaseRepo struct {
	phases map[string]*model.Phase
	order  []string // 保持插入顺序，规范排序依赖它
	seq    int
}

func newMockPhaseRepo() *mockPhaseRepo {
	return &mockPhaseRepo{phases: make(map[string]*model.Phase)}
}

func (m *mockPhaseRepo) Create(_ context.Context, phase *model.Phase) error {
	if phase.PhaseID == "" {
		m.seq++
		phase.PhaseID = fmt.Sprintf("phase-%03d", m.seq)
	}
	m.phases[phase.PhaseID] = phase
	m.order = append(m.order, phase.PhaseID)
	return nil
}

func (m *mockPhaseRepo) GetByID(_ context.Context, id string) (*model.Phase, error) {
	if p, ok := m.phases[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPhaseRepo) ListByProject(_ context.Context, projectID string) ([]model.Phase, error) {
	var result []model.Phase
	for _, id := range m.order {
		p, ok := m.phases[id]
		if ok && p.ProjectID == projectID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockPhaseRepo) Update(_ context.Context, phase *model.Phase) error {
	if _, ok := m.phases[phase.PhaseID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.phases[phase.PhaseID] = phase
	return nil
}

func (m *mockPhaseRepo) UpdateOrder(_ context.Context, phaseID string, ordre int) error {
	p, ok := m.phases[phaseID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Order = ordre
	return nil
}

func (m *mockPhaseRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.phases, id)
	for i, pid := range m.order {
		if pid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *mockPhaseRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(m.phases)), nil
}

func (m *mockPhaseRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	var n int64
	for _, p := range m.phases {
		if p.Status == status {
			n++
		}
	}
	return n, nil
}

// ── Mock DocumentRepository ──

type mockDocumentRepo struct {
	docs map[string]*model.Document
	seq  int
}

func newMockDocumentRepo() *mockDocumentRepo {
	return &mockDocumentRepo{docs: make(map[string]*model.Document)}
}

func (m *mockDocumentRepo) Create(_ context.Context, doc *model.Document) error {
	if doc.DocumentID == "" {
		m.seq++
		doc.DocumentID = fmt.Sprintf("doc-%03d", m.seq)
	}
	m.docs[doc.DocumentID] = doc
	return nil
}

func (m *mockDocumentRepo) GetByID(_ context.Context, id string) (*model.Document, error) {
	if d, ok := m.docs[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDocumentRepo) ListByProject(_ context.Context, projectID string, docType string) ([]model.Document, error) {
	var result []model.Document
	for _, d := range m.docs {
		if d.ProjectID != projectID {
			continue
		}
		if docType != "" && d.Type != docType {
			continue
		}
		result = append(result, *d)
	}
	return result, nil
}

func (m *mockDocumentRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.docs, id)
	return nil
}

func (m *mockDocumentRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.docs)), nil
}

// ── Mock AuditLogRepository ──

type mockAuditLogRepo struct {
	entries []model.AuditLog
}

func newMockAuditLogRepo() *mockAuditLogRepo {
	return &mockAuditLogRepo{}
}

func (m *mockAuditLogRepo) Create(_ context.Context, entry *model.AuditLog) error {
	if entry.AuditLogID == "" {
		entry.AuditLogID = fmt.Sprintf("audit-%03d", len(m.entries)+1)
	}
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockAuditLogRepo) List(_ context.Context, userID, action, resourceType string, _, _ int) ([]model.AuditLog, int64, error) {
	var result []model.AuditLog
	for _, e := range m.entries {
		if userID != "" && (e.UserID == nil || *e.UserID != userID) {
			continue
		}
		if action != "" && e.Action != action {
			continue
		}
		if resourceType != "" && e.ResourceType != resourceType {
			continue
		}
		result = append(result, e)
	}
	return result, int64(len(result)), nil
}

func (m *mockAuditLogRepo) ListByResource(_ context.Context, resourceType, resourceID string) ([]model.AuditLog, error) {
	var result []model.AuditLog
	for _, e := range m.entries {
		if e.ResourceType == resourceType && e.ResourceID == resourceID {
			result = append(result, e)
		}
	}
	return result, nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	notifs map[string]*model.Notification
	seq    int
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{notifs: make(map[string]*model.Notification)}
}

func (m *mockNotificationRepo) Create(_ context.Context, notif *model.Notification) error {
	if notif.NotificationID == "" {
		m.seq++
		notif.NotificationID = fmt.Sprintf("notif-%03d", m.seq)
	}
	m.notifs[notif.NotificationID] = notif
	return nil
}

func (m *mockNotificationRepo) GetByID(_ context.Context, id string) (*model.Notification, error) {
	if n, ok := m.notifs[id]; ok {
		return n, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNotificationRepo) ListByUser(_ context.Context, userID string, unreadOnly bool, _, _ int) ([]model.Notification, int64, error) {
	var result []model.Notification
	for _, n := range m.notifs {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		result = append(result, *n)
	}
	return result, int64(len(result)), nil
}

func (m *mockNotificationRepo) CountUnread(_ context.Context, userID string) (int64, error) {
	var n int64
	for _, notif := range m.notifs {
		if notif.UserID == userID && !notif.IsRead {
			n++
		}
	}
	return n, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, id string) error {
	if n, ok := m.notifs[id]; ok {
		n.IsRead = true
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *mockNotificationRepo) MarkAllRead(_ context.Context, userID string) error {
	for _, n := range m.notifs {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

// [自证通过] internal/service/mock_repos_test.go
