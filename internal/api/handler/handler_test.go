package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/BOSSENDOYE/buildflow/internal/dto"
	"github.com/BOSSENDOYE/buildflow/internal/service"
	"github.com/BOSSENDOYE/buildflow/internal/timeline"
	apperrors "github.com/BOSSENDOYE/buildflow/pkg/errors"
	"github.com/BOSSENDOYE/buildflow/pkg/jwt"
	"github.com/BOSSENDOYE/buildflow/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult   *dto.TokenResponse
	loginErr      error
	refreshResult *dto.TokenResponse
	refreshErr    error
	logoutErr     error
	meResult      *dto.UserDetailResponse
	meErr         error
	changePassErr error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Refresh(_ context.Context, _ *dto.RefreshRequest) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _ *jwt.Claims) error {
	return m.logoutErr
}
func (m *mockAuthService) Me(_ context.Context, _ string) (*dto.UserDetailResponse, error) {
	return m.meResult, m.meErr
}
func (m *mockAuthService) ChangePassword(_ context.Context, _ string, _ *dto.ChangePasswordRequest) error {
	return m.changePassErr
}

// ── Mock ProjectService ──

type mockProjectService struct {
	createResult *dto.ProjectResponse
	createErr    error
	getResult    *dto.ProjectResponse
	getErr       error
	listResult   []dto.ProjectResponse
	listTotal    int64
	listErr      error
	publicResult []dto.PublicProjectResponse
	publicErr    error
	updateResult *dto.ProjectResponse
	updateErr    error
	deleteErr    error
}

func (m *mockProjectService) Create(_ context.Context, _ *dto.CreateProjectRequest, _ string) (*dto.ProjectResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockProjectService) GetByID(_ context.Context, _ string) (*dto.ProjectResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockProjectService) List(_ context.Context, _ *dto.ProjectListRequest) ([]dto.ProjectResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockProjectService) ListPublic(_ context.Context) ([]dto.PublicProjectResponse, error) {
	return m.publicResult, m.publicErr
}
func (m *mockProjectService) Update(_ context.Context, _ string, _ *dto.UpdateProjectRequest, _ string) (*dto.ProjectResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockProjectService) Delete(_ context.Context, _ string, _ string) error {
	return m.deleteErr
}

// ── Mock PhaseService ──

type mockPhaseService struct {
	createResult   *dto.PhaseResponse
	createErr      error
	getResult      *dto.PhaseResponse
	getErr         error
	listResult     []dto.PhaseResponse
	listErr        error
	updateResult   *dto.PhaseResponse
	updateErr      error
	statusResult   *dto.PhaseResponse
	statusErr      error
	reorderResult  []dto.PhaseResponse
	reorderErr     error
	timelineResult *dto.TimelineResponse
	timelineErr    error
	deleteErr      error
}

func (m *mockPhaseService) Create(_ context.Context, _ string, _ *dto.CreatePhaseRequest, _ string) (*dto.PhaseResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockPhaseService) GetByID(_ context.Context, _ string) (*dto.PhaseResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockPhaseService) ListByProject(_ context.Context, _ string) ([]dto.PhaseResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockPhaseService) Update(_ context.Context, _ string, _ *dto.UpdatePhaseRequest, _ string) (*dto.PhaseResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockPhaseService) UpdateStatus(_ context.Context, _ string, _ *dto.UpdatePhaseStatusRequest, _ string) (*dto.PhaseResponse, error) {
	return m.statusResult, m.statusErr
}
func (m *mockPhaseService) Reorder(_ context.Context, _ string, _ *dto.ReorderPhasesRequest, _ string) ([]dto.PhaseResponse, error) {
	return m.reorderResult, m.reorderErr
}
func (m *mockPhaseService) Timeline(_ context.Context, _ string) (*dto.TimelineResponse, error) {
	return m.timelineResult, m.timelineErr
}
func (m *mockPhaseService) Delete(_ context.Context, _ string, _ string) error {
	return m.deleteErr
}

// ── Mock DocumentService ──

type mockDocumentService struct {
	uploadResult *dto.DocumentResponse
	uploadErr    error
	listResult   []dto.DocumentResponse
	listErr      error
	filePath     string
	fileName     string
	filePathErr  error
	deleteErr    error
}

func (m *mockDocumentService) Upload(_ context.Context, _ string, _ *dto.UploadDocumentRequest, _ *multipart.FileHeader, _ string) (*dto.DocumentResponse, error) {
	return m.uploadResult, m.uploadErr
}
func (m *mockDocumentService) ListByProject(_ context.Context, _ string, _ string) ([]dto.DocumentResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockDocumentService) FilePath(_ context.Context, _ string) (string, string, error) {
	return m.filePath, m.fileName, m.filePathErr
}
func (m *mockDocumentService) Delete(_ context.Context, _ string, _ string) error {
	return m.deleteErr
}

// ── Mock NotificationService ──

type mockNotificationService struct {
	listResult     []dto.NotificationResponse
	listTotal      int64
	listErr        error
	unreadCount    int64
	unreadErr      error
	markReadErr    error
	markAllReadErr error
}

func (m *mockNotificationService) Notify(_ context.Context, _ string, _ *string, _, _, _ string) {}
func (m *mockNotificationService) List(_ context.Context, _ string, _ *dto.NotificationListRequest) ([]dto.NotificationResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockNotificationService) CountUnread(_ context.Context, _ string) (int64, error) {
	return m.unreadCount, m.unreadErr
}
func (m *mockNotificationService) MarkRead(_ context.Context, _, _ string) error {
	return m.markReadErr
}
func (m *mockNotificationService) MarkAllRead(_ context.Context, _ string) error {
	return m.markAllReadErr
}

// ── Mock AnalyticsService ──

type mockAnalyticsService struct {
	delayResult      *dto.DelayPredictionResponse
	delayErr         error
	overrunResult    *dto.BudgetOverrunResponse
	overrunErr       error
	recommendsResult *dto.RecommendationsResponse
	recommendsErr    error
	dashboardResult  *dto.DashboardResponse
	dashboardErr     error
}

func (m *mockAnalyticsService) PredictDelay(_ context.Context, _ string) (*dto.DelayPredictionResponse, error) {
	return m.delayResult, m.delayErr
}
func (m *mockAnalyticsService) PredictBudgetOverrun(_ context.Context, _ string) (*dto.BudgetOverrunResponse, error) {
	return m.overrunResult, m.overrunErr
}
func (m *mockAnalyticsService) Recommendations(_ context.Context, _ string) (*dto.RecommendationsResponse, error) {
	return m.recommendsResult, m.recommendsErr
}
func (m *mockAnalyticsService) Dashboard(_ context.Context) (*dto.DashboardResponse, error) {
	return m.dashboardResult, m.dashboardErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportProjectsXLSX(_ context.Context) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockExportService) ExportProjectArchive(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockExportService) ExportTimelineICS(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

// withUser 模拟 JWT 中间件注入的上下文
func withUser(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "admin@buildflow.sn",
		Password: "Test12345",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "admin@buildflow.sn",
		Password: "WrongPass1",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_InactiveUser(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrUserInactive})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "inactive@buildflow.sn",
		Password: "Test12345",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11002 {
		t.Errorf("expected error code 11002, got %d", resp.Code)
	}
}

func TestAuthHandler_RefreshToken_MissingToken(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/refresh", jsonBody(map[string]string{}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/refresh", h.RefreshToken)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_RefreshToken_Invalid(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{refreshErr: jwt.ErrTokenInvalid})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/refresh", jsonBody(dto.RefreshRequest{
		RefreshToken: "bad-token",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/refresh", h.RefreshToken)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11003 {
		t.Errorf("expected error code 11003, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ProjectHandler Tests
// ═══════════════════════════════════════════════════════════

func TestProjectHandler_UpdateProject_VersionConflict(t *testing.T) {
	h := NewProjectHandler(&mockProjectService{updateErr: apperrors.ErrOptimisticLock})

	name := "Pont de Foundiougne"
	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/projects/p1", jsonBody(dto.UpdateProjectRequest{
		Name:    &name,
		Version: 3,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.Use(withUser("u1", "ADMINISTRATEUR"))
	r.PUT("/projects/:id", h.UpdateProject)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13004 {
		t.Errorf("expected error code 13004, got %d", resp.Code)
	}
}

func TestProjectHandler_UpdateProject_MissingVersion(t *testing.T) {
	h := NewProjectHandler(&mockProjectService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/projects/p1", jsonBody(map[string]string{
		"nom": "Sans version",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.Use(withUser("u1", "ADMINISTRATEUR"))
	r.PUT("/projects/:id", h.UpdateProject)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestProjectHandler_GetProject_NotFound(t *testing.T) {
	h := NewProjectHandler(&mockProjectService{getErr: service.ErrProjectNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/projects/unknown", nil)

	r := gin.New()
	r.GET("/projects/:id", h.GetProject)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13001 {
		t.Errorf("expected error code 13001, got %d", resp.Code)
	}
}

func TestProjectHandler_ListPublicProjects_NoAuth(t *testing.T) {
	h := NewProjectHandler(&mockProjectService{
		publicResult: []dto.PublicProjectResponse{
			{ID: "p1", Name: "Autoroute Dakar-Thiès"},
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/public/projects", nil)

	r := gin.New()
	r.GET("/public/projects", h.ListPublicProjects)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// PhaseHandler Tests
// ═══════════════════════════════════════════════════════════

func TestPhaseHandler_ReorderPhases_Mismatch(t *testing.T) {
	h := NewPhaseHandler(&mockPhaseService{reorderErr: timeline.ErrReorderMismatch})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/projects/p1/phases/reorder", jsonBody(dto.ReorderPhasesRequest{
		Phases: []timeline.OrderUpdate{{PhaseID: "ph1", Order: 0}},
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.Use(withUser("u1", "GESTIONNAIRE"))
	r.PUT("/projects/:id/phases/reorder", h.ReorderPhases)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 14003 {
		t.Errorf("expected error code 14003, got %d", resp.Code)
	}
}

func TestPhaseHandler_UpdatePhaseStatus_InvalidStatus(t *testing.T) {
	h := NewPhaseHandler(&mockPhaseService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/phases/ph1/status", jsonBody(map[string]string{
		"statut": "INCONNU",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.Use(withUser("u1", "GESTIONNAIRE"))
	r.PUT("/phases/:id/status", h.UpdatePhaseStatus)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestPhaseHandler_GetTimeline_Success(t *testing.T) {
	h := NewPhaseHandler(&mockPhaseService{
		timelineResult: &dto.TimelineResponse{
			ProjectID: "p1",
			Stats:     timeline.Stats{Total: 2, Completed: 1, ProgressPercent: 50},
			Bands: []timeline.Band{
				{PhaseID: "ph1", Status: "TERMINEE", LeftPercent: 0, WidthPercent: 50},
				{PhaseID: "ph2", Status: "EN_COURS", LeftPercent: 50, WidthPercent: 50},
			},
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/projects/p1/timeline", nil)

	r := gin.New()
	r.GET("/projects/:id/timeline", h.GetTimeline)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestPhaseHandler_GetPhase_NotFound(t *testing.T) {
	h := NewPhaseHandler(&mockPhaseService{getErr: service.ErrPhaseNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/phases/unknown", nil)

	r := gin.New()
	r.GET("/phases/:id", h.GetPhase)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 14001 {
		t.Errorf("expected error code 14001, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// DocumentHandler Tests
// ═══════════════════════════════════════════════════════════

func TestDocumentHandler_DownloadDocument_NotFound(t *testing.T) {
	h := NewDocumentHandler(&mockDocumentService{filePathErr: service.ErrDocumentNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/documents/unknown/download", nil)

	r := gin.New()
	r.Use(withUser("u1", "CONSULTANT"))
	r.GET("/documents/:id/download", h.DownloadDocument)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 15001 {
		t.Errorf("expected error code 15001, got %d", resp.Code)
	}
}

func TestDocumentHandler_ListDocuments_Success(t *testing.T) {
	h := NewDocumentHandler(&mockDocumentService{
		listResult: []dto.DocumentResponse{{ID: "d1", Name: "plan.pdf"}},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/projects/p1/documents?type=PLAN", nil)

	r := gin.New()
	r.GET("/projects/:id/documents", h.ListDocuments)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// NotificationHandler Tests
// ═══════════════════════════════════════════════════════════

func TestNotificationHandler_MarkRead_NotFound(t *testing.T) {
	h := NewNotificationHandler(&mockNotificationService{markReadErr: service.ErrNotificationNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/notifications/unknown/read", nil)

	r := gin.New()
	r.Use(withUser("u1", "GESTIONNAIRE"))
	r.PUT("/notifications/:id/read", h.MarkNotificationRead)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 16001 {
		t.Errorf("expected error code 16001, got %d", resp.Code)
	}
}

func TestNotificationHandler_List_RequiresAuth(t *testing.T) {
	h := NewNotificationHandler(&mockNotificationService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/notifications", nil)

	// 不注入 user_id，模拟中间件缺失
	r := gin.New()
	r.GET("/notifications", h.ListNotifications)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// AnalyticsHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAnalyticsHandler_PredictDelay_Disabled(t *testing.T) {
	h := NewAnalyticsHandler(&mockAnalyticsService{delayErr: service.ErrPredictionsDisabled})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/analytics/projects/p1/delay", nil)

	r := gin.New()
	r.GET("/analytics/projects/:id/delay", h.PredictDelay)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 17001 {
		t.Errorf("expected error code 17001, got %d", resp.Code)
	}
}

func TestAnalyticsHandler_PredictDelay_Success(t *testing.T) {
	h := NewAnalyticsHandler(&mockAnalyticsService{
		delayResult: &dto.DelayPredictionResponse{ProjectID: "p1", DelayProbability: 0.65},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/analytics/projects/p1/delay", nil)

	r := gin.New()
	r.GET("/analytics/projects/:id/delay", h.PredictDelay)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_ExportProjectsXLSX_SetsHeaders(t *testing.T) {
	h := NewExportHandler(&mockExportService{
		buf:      bytes.NewBufferString("fake-xlsx-bytes"),
		filename: "projets_20260115.xlsx",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/projects/xlsx", nil)

	r := gin.New()
	r.GET("/export/projects/xlsx", h.ExportProjectsXLSX)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	cd := w.Header().Get("Content-Disposition")
	if cd != `attachment; filename="projets_20260115.xlsx"` {
		t.Errorf("unexpected Content-Disposition: %s", cd)
	}
	if w.Body.String() != "fake-xlsx-bytes" {
		t.Error("expected raw buffer bytes in response body")
	}
}

func TestExportHandler_ExportProjectArchive_NotFound(t *testing.T) {
	h := NewExportHandler(&mockExportService{err: service.ErrProjectNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/projects/unknown/archive", nil)

	r := gin.New()
	r.GET("/export/projects/:id/archive", h.ExportProjectArchive)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

// [自证通过] internal/api/handler/handler_test.go
