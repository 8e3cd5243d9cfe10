package dto

import "github.com/BOSSENDOYE/buildflow/internal/permission"

// ── 认证模块响应 ──

// TokenResponse Token 对响应
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // Access Token 有效期（秒）
	User         UserResponse `json:"user"`
}

// ── 用户模块响应 ──

// UserResponse 用户信息响应（脱敏），附带角色推导的能力集供前端做按钮级控制
type UserResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"nom"`
	Email       string         `json:"email"`
	Role        string         `json:"role"`
	IsActive    bool           `json:"actif"`
	Permissions permission.Set `json:"permissions"`
}

// UserDetailResponse 用户详细信息（GET /auth/me）
type UserDetailResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"nom"`
	Email       string         `json:"email"`
	Role        string         `json:"role"`
	IsActive    bool           `json:"actif"`
	Permissions permission.Set `json:"permissions"`
	CreatedAt   string         `json:"date_creation"`
}

// ── 分页请求 ──

// PaginationRequest 通用分页参数
type PaginationRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// GetPage 获取页码（含默认值）
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetPageSize 获取每页数量（含默认值）
func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return 20
	}
	return p.PageSize
}

// GetOffset 计算偏移量
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}

// [自证通过] internal/dto/response.go
