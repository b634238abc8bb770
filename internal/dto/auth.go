package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest 普通用户注册请求
// 学校/班级按名称提交，后端按自然键解析（不存在则创建）
type RegisterRequest struct {
	Username   string `json:"username"    binding:"required,min=3,max=50"`
	Password   string `json:"password"    binding:"required,min=6,max=50"`
	RealName   string `json:"real_name"   binding:"required,max=50"`
	Phone      string `json:"phone"       binding:"omitempty,max=20"`
	Email      string `json:"email"       binding:"omitempty,email"`
	SchoolName string `json:"school_name" binding:"required,max=100"`
	ClassName  string `json:"class_name"  binding:"required,max=50"`
}

// TeacherRegisterRequest 教师注册请求
// 学校二选一：school_id 选择现有学校，或 custom_school_name 新建
type TeacherRegisterRequest struct {
	Username         string `json:"username"           binding:"required,min=3,max=50"`
	Password         string `json:"password"           binding:"required,min=6,max=50"`
	RealName         string `json:"real_name"          binding:"required,max=50"`
	Phone            string `json:"phone"              binding:"omitempty,max=20"`
	Email            string `json:"email"              binding:"omitempty,email"`
	SchoolID         *int64 `json:"school_id"`
	CustomSchoolName string `json:"custom_school_name" binding:"omitempty,max=100"`
	Department       string `json:"department"         binding:"omitempty,max=100"`
	Title            string `json:"title"              binding:"omitempty,max=50"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=50"`
}

// AssignRoleRequest 分配角色请求
type AssignRoleRequest struct {
	RoleCode string `json:"role_code" binding:"required,max=50"`
}

// [自证通过] internal/dto/auth.go
