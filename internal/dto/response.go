package dto

// ── 认证模块响应 ──

// LoginResponse 登录响应：Token + 用户画像
type LoginResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user_info"`
}

// UserProfile 用户画像（登录与 /auth/info 共用）
type UserProfile struct {
	ID          int64    `json:"id"`
	Username    string   `json:"username"`
	RealName    string   `json:"real_name"`
	Phone       string   `json:"phone"`
	Email       string   `json:"email"`
	Avatar      string   `json:"avatar"`
	SchoolID    *int64   `json:"school_id,omitempty"`
	SchoolName  string   `json:"school_name"`
	Department  string   `json:"department"`
	Title       string   `json:"title"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
}

// RegisterResponse 注册成功响应
type RegisterResponse struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
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
		return 10
	}
	return p.PageSize
}

// GetOffset 计算偏移量
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}

// [自证通过] internal/dto/response.go
