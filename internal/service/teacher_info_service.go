package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/startuniverse/Municipal-Education-Bureau-Integrated-Information-Service-Platform/config"
	"github.com/startuniverse/Municipal-Education-Bureau-Integrated-Information-Service-Platform/internal/dto"
	"github.com/startuniverse/Municipal-Education-Bureau-Integrated-Information-Service-Platform/internal/model"
	"github.com/startuniverse/Municipal-Education-Bureau-Integrated-Information-Service-Platform/internal/repository"
)

var (
	ErrTeacherNotFound      = errors.New("教师不存在")
	ErrTeacherBasicNotFound = errors.New("教师基础信息不存在")
	ErrTeacherBasicExists   = errors.New("该教师已有基础信息记录")
)

// 各子记录类型的二级过滤键（列名常量，不接收外部输入）
const (
	filterRecordType   = "record_type"
	filterCategory     = "category"
	filterAcademicYear = "academic_year"
	filterActivityType = "activity_type"
)

// workloadTrendDefaultYears 工作量趋势默认回溯年数
const workloadTrendDefaultYears = 5

// RecordCatalog 某一类教师子记录的通用业务操作。
// 十余种子记录（岗位/荣誉/培训/学分等）共享这一个实现，
// 每种类型只登记一个二级过滤键。
type RecordCatalog[T any] struct {
	store        repository.RecordStore[T]
	filterColumn string
	guard        func(ctx context.Context, teacherID int64) error
}

func newRecordCatalog[T any](
	store repository.RecordStore[T],
	filterColumn string,
	guard func(ctx context.Context, teacherID int64) error,
) *RecordCatalog[T] {
	return &RecordCatalog[T]{store: store, filterColumn: filterColumn, guard: guard}
}

// List 按教师查询记录，支持二级过滤键等值过滤
func (c *RecordCatalog[T]) List(ctx context.Context, req *dto.RecordListRequest) ([]T, error) {
	if err := c.guard(ctx, req.TeacherID); err != nil {
		return nil, err
	}
	if req.Filter != "" && c.filterColumn != "" {
		return c.store.ListWhere(ctx, req.TeacherID, map[string]interface{}{c.filterColumn: req.Filter})
	}
	return c.store.List(ctx, req.TeacherID)
}

// Add 新增记录；教师不存在时拒绝
func (c *RecordCatalog[T]) Add(ctx context.Context, teacherID int64, record *T) error {
	if err := c.guard(ctx, teacherID); err != nil {
		return err
	}
	return c.store.Add(ctx, record)
}

// Update 按 ID 整体更新记录
func (c *RecordCatalog[T]) Update(ctx context.Context, record *T) error {
	return c.store.UpdateByID(ctx, record)
}

// Delete 按 ID 删除记录（软删除）
func (c *RecordCatalog[T]) Delete(ctx context.Context, id int64) error {
	return c.store.RemoveByID(ctx, id)
}

// TeacherInfoService 教师信息业务：基础信息三种建档方式、
// 子记录目录、统计聚合与综合信息查询。
type TeacherInfoService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger

	Positions          *RecordCatalog[model.TeacherPosition]
	Educations         *RecordCatalog[model.TeacherEducation]
	Qualifications     *RecordCatalog[model.TeacherQualification]
	Honors             *RecordCatalog[model.TeacherHonor]
	Assessments        *RecordCatalog[model.TeacherAssessment]
	RewardPunishments  *RecordCatalog[model.TeacherRewardPunishment]
	EthicsRecords      *RecordCatalog[model.TeacherEthicsRecord]
	TrainingRecords    *RecordCatalog[model.TeacherTrainingRecord]
	EducationCredits   *RecordCatalog[model.TeacherEducationCredit]
	TeachingTasks      *RecordCatalog[model.TeacherTeachingTask]
	ResearchActivities *RecordCatalog[model.TeacherResearchActivity]
	Workloads          *RecordCatalog[model.TeacherWorkloadStatistics]
}

// NewTeacherInfoService 创建 TeacherInfoService 实例
func NewTeacherInfoService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) *TeacherInfoService {
	s := &TeacherInfoService{cfg: cfg, repo: repo, logger: logger}
	guard := s.ensureTeacherExists

	s.Positions = newRecordCatalog(repo.Position, "", guard)
	s.Educations = newRecordCatalog(repo.Education, "", guard)
	s.Qualifications = newRecordCatalog(repo.Qualification, "", guard)
	s.Honors = newRecordCatalog(repo.Honor, "", guard)
	s.Assessments = newRecordCatalog(repo.Assessment, "", guard)
	s.RewardPunishments = newRecordCatalog(repo.RewardPunishment, filterRecordType, guard)
	s.EthicsRecords = newRecordCatalog(repo.Ethics, "", guard)
	s.TrainingRecords = newRecordCatalog(repo.Training, filterCategory, guard)
	s.EducationCredits = newRecordCatalog(repo.Credit, filterAcademicYear, guard)
	s.TeachingTasks = newRecordCatalog(repo.TeachingTask, filterAcademicYear, guard)
	s.ResearchActivities = newRecordCatalog(repo.Research, filterActivityType, guard)
	s.Workloads = newRecordCatalog(repo.Workload, "statistical_year", guard)
	return s
}

func (s *TeacherInfoService) ensureTeacherExists(ctx context.Context, teacherID int64) error {
	if _, err := s.repo.Teacher.GetByID(ctx, teacherID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeacherNotFound
		}
		return err
	}
	return nil
}

// ── 基础信息 ──

func (s *TeacherInfoService) ListBasics(ctx context.Context, req *dto.TeacherBasicListRequest) ([]model.TeacherBasic, int64, error) {
	filters := &repository.TeacherBasicFilters{SchoolID: req.SchoolID, Keyword: req.Keyword}
	return s.repo.TeacherBasic.List(ctx, filters, req.GetOffset(), req.GetPageSize())
}

func (s *TeacherInfoService) GetBasic(ctx context.Context, id int64) (*model.TeacherBasic, error) {
	basic, err := s.repo.TeacherBasic.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherBasicNotFound
		}
		return nil, err
	}
	return basic, nil
}

func (s *TeacherInfoService) GetBasicByTeacherID(ctx context.Context, teacherID int64) (*model.TeacherBasic, error) {
	basic, err := s.repo.TeacherBasic.GetByTeacherID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherBasicNotFound
		}
		return nil, err
	}
	return basic, nil
}

// AddBasic 新增教师基础信息，按提交字段分三种方式：
//  1. teacher_id：教师已建档，直接挂接；已有基础信息则冲突
//  2. user_id：用户已存在，教师档案缺失时连带创建
//  3. 两者皆空（冷启动）：按工号连带创建用户与教师档案，
//     已有基础信息则就地更新而非报错
func (s *TeacherInfoService) AddBasic(ctx context.Context, req *dto.AddTeacherBasicRequest) (*model.TeacherBasic, error) {
	basic := req.ToModel()

	err := s.repo.Atomic(ctx, func(repo *repository.Repository) error {
		switch {
		case req.TeacherID != nil:
			return s.addByTeacherID(ctx, repo, *req.TeacherID, basic)
		case req.UserID != nil:
			return s.addByUserID(ctx, repo, *req.UserID, req, basic)
		default:
			return s.addColdStart(ctx, repo, req, basic)
		}
	})
	if err != nil {
		return nil, err
	}
	return basic, nil
}

func (s *TeacherInfoService) addByTeacherID(ctx context.Context, repo *repository.Repository, teacherID int64, basic *model.TeacherBasic) error {
	teacher, err := repo.Teacher.GetByID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeacherNotFound
		}
		return err
	}

	if _, err := repo.TeacherBasic.GetByTeacherID(ctx, teacherID); err == nil {
		return ErrTeacherBasicExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	basic.TeacherID = teacher.ID
	basic.UserID = &teacher.UserID
	return s.createBasic(ctx, repo, basic)
}

func (s *TeacherInfoService) addByUserID(ctx context.Context, repo *repository.Repository, userID int64, req *dto.AddTeacherBasicRequest, basic *model.TeacherBasic) error {
	if _, err := repo.User.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	teacher, err := s.ensureTeacherForUser(ctx, repo, userID, req)
	if err != nil {
		return err
	}

	if _, err := repo.TeacherBasic.GetByTeacherID(ctx, teacher.ID); err == nil {
		return ErrTeacherBasicExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	basic.TeacherID = teacher.ID
	basic.UserID = &userID
	return s.createBasic(ctx, repo, basic)
}

// addColdStart 用户与教师档案均不存在时的批量导入路径。
// 以工号作为登录名，初始密码取配置的默认值。
func (s *TeacherInfoService) addColdStart(ctx context.Context, repo *repository.Repository, req *dto.AddTeacherBasicRequest, basic *model.TeacherBasic) error {
	user, err := repo.User.GetByUsername(ctx, req.TeacherNumber)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		hash, hashErr := hashPassword(s.cfg.Auth.DefaultPassword)
		if hashErr != nil {
			return hashErr
		}
		user = &model.User{
			Username:   req.TeacherNumber,
			Password:   hash,
			RealName:   req.TeacherName,
			Phone:      req.Phone,
			Email:      req.Email,
			SchoolID:   req.SchoolID,
			Department: req.Department,
			Title:      req.Title,
			Status:     model.StatusActive,
		}
		if err := repo.User.Create(ctx, user); err != nil {
			return err
		}
		s.logger.Info("冷启动建档创建用户",
			zap.Int64("user_id", user.ID),
			zap.String("username", user.Username))
	} else if err != nil {
		return err
	}

	teacher, err := s.ensureTeacherForUser(ctx, repo, user.ID, req)
	if err != nil {
		return err
	}

	basic.TeacherID = teacher.ID
	basic.UserID = &user.ID

	// 冷启动路径允许重复导入：已有记录时就地更新
	existing, err := repo.TeacherBasic.GetByTeacherID(ctx, teacher.ID)
	if err == nil {
		basic.ID = existing.ID
		basic.CreatedAt = existing.CreatedAt
		return repo.TeacherBasic.Update(ctx, basic)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return s.createBasic(ctx, repo, basic)
}

// ensureTeacherForUser 获取用户的教师档案，不存在则创建
func (s *TeacherInfoService) ensureTeacherForUser(ctx context.Context, repo *repository.Repository, userID int64, req *dto.AddTeacherBasicRequest) (*model.Teacher, error) {
	teacher, err := repo.Teacher.GetByUserID(ctx, userID)
	if err == nil {
		return teacher, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	teacher = &model.Teacher{
		UserID:        userID,
		TeacherNumber: fmt.Sprintf("T%d", userID),
		Subject:       req.Department,
		Title:         req.Title,
		HireDate:      req.HireDate,
		Status:        model.StatusActive,
	}
	if teacher.HireDate == nil {
		now := time.Now()
		teacher.HireDate = &now
	}
	if err := repo.Teacher.Create(ctx, teacher); err != nil {
		return nil, err
	}
	return teacher, nil
}

func (s *TeacherInfoService) createBasic(ctx context.Context, repo *repository.Repository, basic *model.TeacherBasic) error {
	if err := repo.TeacherBasic.Create(ctx, basic); err != nil {
		// 并发建档兜底：teacher_id 上的部分唯一索引
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrTeacherBasicExists
		}
		return err
	}
	return nil
}

func (s *TeacherInfoService) UpdateBasic(ctx context.Context, id int64, req *dto.AddTeacherBasicRequest) (*model.TeacherBasic, error) {
	existing, err := s.GetBasic(ctx, id)
	if err != nil {
		return nil, err
	}

	basic := req.ToModel()
	basic.ID = existing.ID
	basic.CreatedAt = existing.CreatedAt
	basic.TeacherID = existing.TeacherID
	basic.UserID = existing.UserID
	if err := s.repo.TeacherBasic.Update(ctx, basic); err != nil {
		return nil, err
	}
	return basic, nil
}

func (s *TeacherInfoService) DeleteBasic(ctx context.Context, id int64) error {
	if _, err := s.GetBasic(ctx, id); err != nil {
		return err
	}
	return s.repo.TeacherBasic.Delete(ctx, id)
}

// ── 专项列表 ──

// ListTeachingTasks 教学任务列表，支持学年/学期过滤
func (s *TeacherInfoService) ListTeachingTasks(ctx context.Context, req *dto.TeachingTaskListRequest) ([]model.TeacherTeachingTask, error) {
	if err := s.ensureTeacherExists(ctx, req.TeacherID); err != nil {
		return nil, err
	}
	conds := map[string]interface{}{}
	if req.AcademicYear != "" {
		conds[filterAcademicYear] = req.AcademicYear
	}
	if req.Semester != nil {
		conds["semester"] = *req.Semester
	}
	if len(conds) == 0 {
		return s.repo.TeachingTask.List(ctx, req.TeacherID)
	}
	return s.repo.TeachingTask.ListWhere(ctx, req.TeacherID, conds)
}

// ListWorkloads 工作量统计列表，支持统计年度/口径过滤
func (s *TeacherInfoService) ListWorkloads(ctx context.Context, req *dto.WorkloadListRequest) ([]model.TeacherWorkloadStatistics, error) {
	if err := s.ensureTeacherExists(ctx, req.TeacherID); err != nil {
		return nil, err
	}
	conds := map[string]interface{}{}
	if req.StatisticalYear != "" {
		conds["statistical_year"] = req.StatisticalYear
	}
	if req.StatisticalPeriod != "" {
		conds["statistical_period"] = req.StatisticalPeriod
	}
	if len(conds) == 0 {
		return s.repo.Workload.List(ctx, req.TeacherID)
	}
	return s.repo.Workload.ListWhere(ctx, req.TeacherID, conds)
}

// ── 统计 ──

// AssessmentDistribution 考核结果分布（按 result 分组计数）
func (s *TeacherInfoService) AssessmentDistribution(ctx context.Context, teacherID int64) (map[string]int64, error) {
	if err := s.ensureTeacherExists(ctx, teacherID); err != nil {
		return nil, err
	}
	return s.repo.Assessment.CountBy(ctx, teacherID, "result")
}

// EthicsDistribution 师德考核等级分布
func (s *TeacherInfoService) EthicsDistribution(ctx context.Context, teacherID int64) (map[string]int64, error) {
	if err := s.ensureTeacherExists(ctx, teacherID); err != nil {
		return nil, err
	}
	return s.repo.Ethics.CountBy(ctx, teacherID, "level")
}

// RewardPunishmentCounts 奖惩各自计数
func (s *TeacherInfoService) RewardPunishmentCounts(ctx context.Context, teacherID int64) (map[string]int64, error) {
	if err := s.ensureTeacherExists(ctx, teacherID); err != nil {
		return nil, err
	}
	return s.repo.RewardPunishment.CountBy(ctx, teacherID, filterRecordType)
}

// ResearchDistribution 教研活动类型分布
func (s *TeacherInfoService) ResearchDistribution(ctx context.Context, teacherID int64) (map[string]int64, error) {
	if err := s.ensureTeacherExists(ctx, teacherID); err != nil {
		return nil, err
	}
	return s.repo.Research.CountBy(ctx, teacherID, filterActivityType)
}

// TrainingStatistics 培训总学时与分类学时
func (s *TeacherInfoService) TrainingStatistics(ctx context.Context, teacherID int64) (*dto.TrainingStatistics, error) {
	if err := s.ensureTeacherExists(ctx, teacherID); err != nil {
		return nil, err
	}
	total, byCategory, err := s.repo.Training.SumBy(ctx, teacherID, "hours", filterCategory)
	if err != nil {
		return nil, err
	}
	return &dto.TrainingStatistics{TotalHours: total, HoursByCategory: byCategory}, nil
}

// CreditStatistics 继续教育总学分与分学年学分
func (s *TeacherInfoService) CreditStatistics(ctx context.Context, teacherID int64) (*dto.CreditStatistics, error) {
	if err := s.ensureTeacherExists(ctx, teacherID); err != nil {
		return nil, err
	}
	total, byYear, err := s.repo.Credit.SumBy(ctx, teacherID, "credits", filterAcademicYear)
	if err != nil {
		return nil, err
	}
	return &dto.CreditStatistics{TotalCredits: total, CreditsByYear: byYear}, nil
}

// TeachingWorkload 教学任务工作量汇总（周课时/总课时/任务数）
func (s *TeacherInfoService) TeachingWorkload(ctx context.Context, teacherID int64) (*dto.TeachingWorkloadStatistics, error) {
	if err := s.ensureTeacherExists(ctx, teacherID); err != nil {
		return nil, err
	}
	weekly, _, err := s.repo.TeachingTask.SumBy(ctx, teacherID, "weekly_hours", "")
	if err != nil {
		return nil, err
	}
	total, _, err := s.repo.TeachingTask.SumBy(ctx, teacherID, "total_hours", "")
	if err != nil {
		return nil, err
	}
	count, err := s.repo.TeachingTask.Count(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	return &dto.TeachingWorkloadStatistics{
		TotalWeeklyHours: weekly,
		TotalHours:       total,
		TaskCount:        count,
	}, nil
}

// CurrentPosition 当前任职岗位；未任职时返回 nil
func (s *TeacherInfoService) CurrentPosition(ctx context.Context, teacherID int64) (*model.TeacherPosition, error) {
	if err := s.ensureTeacherExists(ctx, teacherID); err != nil {
		return nil, err
	}
	positions, err := s.repo.Position.ListWhere(ctx, teacherID, map[string]interface{}{"is_current": 1})
	if err != nil {
		return nil, err
	}
	if len(positions) == 0 {
		return nil, nil
	}
	return &positions[0], nil
}

// WorkloadTrend 最近若干年度的工作量记录，按统计年度倒序
func (s *TeacherInfoService) WorkloadTrend(ctx context.Context, req *dto.WorkloadTrendRequest) ([]model.TeacherWorkloadStatistics, error) {
	if err := s.ensureTeacherExists(ctx, req.TeacherID); err != nil {
		return nil, err
	}
	years := req.Years
	if years <= 0 {
		years = workloadTrendDefaultYears
	}
	return s.repo.Workload.ListRecent(ctx, req.TeacherID, "statistical_year", years)
}

// ── 综合信息 ──

// Comprehensive 聚合某教师的全部档案模块。
// 基础信息缺失视为教师未建档；子记录为空不报错。
func (s *TeacherInfoService) Comprehensive(ctx context.Context, teacherID int64) (*dto.ComprehensiveInfo, error) {
	basic, err := s.GetBasicByTeacherID(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	info := &dto.ComprehensiveInfo{Basic: basic}

	if info.Educations, err = s.repo.Education.List(ctx, teacherID); err != nil {
		return nil, err
	}
	if info.Qualifications, err = s.repo.Qualification.List(ctx, teacherID); err != nil {
		return nil, err
	}
	if info.Honors, err = s.repo.Honor.List(ctx, teacherID); err != nil {
		return nil, err
	}
	if info.Assessments, err = s.repo.Assessment.List(ctx, teacherID); err != nil {
		return nil, err
	}
	if info.RewardPunishments, err = s.repo.RewardPunishment.List(ctx, teacherID); err != nil {
		return nil, err
	}
	if info.Ethics, err = s.repo.Ethics.List(ctx, teacherID); err != nil {
		return nil, err
	}
	if info.Trainings, err = s.repo.Training.List(ctx, teacherID); err != nil {
		return nil, err
	}
	if info.Credits, err = s.repo.Credit.List(ctx, teacherID); err != nil {
		return nil, err
	}
	if info.TeachingTasks, err = s.repo.TeachingTask.List(ctx, teacherID); err != nil {
		return nil, err
	}
	if info.ResearchActivities, err = s.repo.Research.List(ctx, teacherID); err != nil {
		return nil, err
	}
	if info.WorkloadStatistics, err = s.repo.Workload.List(ctx, teacherID); err != nil {
		return nil, err
	}

	// 当前岗位取最新一条
	positions, err := s.repo.Position.ListWhere(ctx, teacherID, map[string]interface{}{"is_current": 1})
	if err != nil {
		return nil, err
	}
	if len(positions) > 0 {
		info.Position = &positions[0]
	}
	return info, nil
}

// [自证通过] internal/service/teacher_info_service.go
