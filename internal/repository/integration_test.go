//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/startuniverse/Municipal-Education-Bureau-Integrated-Information-Service-Platform/internal/model"
	"github.com/startuniverse/Municipal-Education-Bureau-Integrated-Information-Service-Platform/internal/repository"
	"github.com/startuniverse/Municipal-Education-Bureau-Integrated-Information-Service-Platform/pkg/database"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=edu_platform password=edu_platform_password dbname=edu_platform_test sslmode=disable TimeZone=Asia/Shanghai"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	// 用正式迁移建表，唯一约束与生产环境保持一致
	sqlDB, err := testDB.DB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "获取底层连接失败: %v\n", err)
		os.Exit(1)
	}
	if err := database.RunMigrations(sqlDB, zap.NewNop()); err != nil {
		fmt.Fprintf(os.Stderr, "执行迁移失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

// setupTestData 创建一所学校和一名教师（连带用户），返回清理函数
func setupTestData(t *testing.T) (school *model.School, teacher *model.Teacher, cleanup func()) {
	t.Helper()
	ctx := context.Background()

	school = &model.School{
		SchoolCode: fmt.Sprintf("S%d", time.Now().UnixNano()),
		SchoolName: fmt.Sprintf("测试学校-%d", time.Now().UnixNano()),
		SchoolType: "secondary",
		Status:     1,
	}
	if err := testDB.WithContext(ctx).Create(school).Error; err != nil {
		t.Fatalf("创建学校失败: %v", err)
	}

	user := &model.User{
		Username: fmt.Sprintf("t%d", time.Now().UnixNano()),
		Password: "$2a$10$placeholder",
		RealName: "测试教师",
		SchoolID: &school.ID,
		Status:   model.StatusActive,
	}
	if err := testDB.WithContext(ctx).Create(user).Error; err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}

	teacher = &model.Teacher{
		UserID:        user.ID,
		TeacherNumber: fmt.Sprintf("T%d", user.ID),
		Subject:       "数学",
		Status:        1,
	}
	if err := testDB.WithContext(ctx).Create(teacher).Error; err != nil {
		t.Fatalf("创建教师失败: %v", err)
	}

	cleanup = func() {
		testDB.Unscoped().Where("teacher_id = ?", teacher.ID).Delete(&model.TeacherTrainingRecord{})
		testDB.Unscoped().Where("id = ?", teacher.ID).Delete(&model.Teacher{})
		testDB.Unscoped().Where("id = ?", user.ID).Delete(&model.User{})
		testDB.Unscoped().Where("id = ?", school.ID).Delete(&model.School{})
	}
	return
}

// ═══════════════════════════════════════════════════════════
// Test: Atomic 事务
// ═══════════════════════════════════════════════════════════

func TestAtomic_Rollback(t *testing.T) {
	school, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	username := fmt.Sprintf("rollback%d", time.Now().UnixNano())
	sentinel := errors.New("强制回滚")

	err := repo.Atomic(ctx, func(txRepo *repository.Repository) error {
		user := &model.User{
			Username: username,
			Password: "$2a$10$placeholder",
			SchoolID: &school.ID,
			Status:   model.StatusActive,
		}
		if err := txRepo.User.Create(ctx, user); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("期望返回回滚原因，实际 %v", err)
	}

	// 验证数据未持久化
	if _, err := repo.User.GetByUsername(ctx, username); err == nil {
		testDB.Unscoped().Where("username = ?", username).Delete(&model.User{})
		t.Fatal("期望回滚后查不到用户，但实际查到了")
	}
}

func TestAtomic_Commit(t *testing.T) {
	school, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	username := fmt.Sprintf("commit%d", time.Now().UnixNano())
	err := repo.Atomic(ctx, func(txRepo *repository.Repository) error {
		return txRepo.User.Create(ctx, &model.User{
			Username: username,
			Password: "$2a$10$placeholder",
			SchoolID: &school.ID,
			Status:   model.StatusActive,
		})
	})
	if err != nil {
		t.Fatalf("事务提交失败: %v", err)
	}
	defer testDB.Unscoped().Where("username = ?", username).Delete(&model.User{})

	found, err := repo.User.GetByUsername(ctx, username)
	if err != nil {
		t.Fatalf("提交后查询用户失败: %v", err)
	}
	if found.Username != username {
		t.Errorf("用户名不匹配: 期望 %s，实际 %s", username, found.Username)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: 唯一约束
// ═══════════════════════════════════════════════════════════

func TestUserCreate_DuplicateUsernameTranslated(t *testing.T) {
	school, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	username := fmt.Sprintf("dup%d", time.Now().UnixNano())
	first := &model.User{
		Username: username,
		Password: "$2a$10$placeholder",
		SchoolID: &school.ID,
		Status:   model.StatusActive,
	}
	if err := repo.User.Create(ctx, first); err != nil {
		t.Fatalf("创建首个用户失败: %v", err)
	}
	defer testDB.Unscoped().Where("id = ?", first.ID).Delete(&model.User{})

	second := &model.User{
		Username: username,
		Password: "$2a$10$placeholder",
		Status:   model.StatusActive,
	}
	err := repo.User.Create(ctx, second)
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("期望 gorm.ErrDuplicatedKey，实际 %v", err)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: find-or-create 幂等
// ═══════════════════════════════════════════════════════════

func TestSchoolEnsureByName_Idempotent(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	name := fmt.Sprintf("并发学校-%d", time.Now().UnixNano())
	first, err := repo.School.EnsureByName(ctx, &model.School{
		SchoolCode: fmt.Sprintf("S%da", time.Now().UnixNano()),
		SchoolName: name,
		SchoolType: "secondary",
		Status:     1,
	})
	if err != nil {
		t.Fatalf("首次 EnsureByName 失败: %v", err)
	}
	defer testDB.Unscoped().Where("id = ?", first.ID).Delete(&model.School{})

	// 同名再次解析应返回同一条记录，不新建
	second, err := repo.School.EnsureByName(ctx, &model.School{
		SchoolCode: fmt.Sprintf("S%db", time.Now().UnixNano()),
		SchoolName: name,
		SchoolType: "secondary",
		Status:     1,
	})
	if err != nil {
		t.Fatalf("再次 EnsureByName 失败: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("期望复用已有学校 %d，实际新建了 %d", first.ID, second.ID)
	}
}

func TestClassEnsureByName_ScopedToSchool(t *testing.T) {
	school, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	name := fmt.Sprintf("高一(%d)班", time.Now().UnixNano()%1000)
	first, err := repo.Class.EnsureByName(ctx, &model.Class{
		SchoolID:  school.ID,
		ClassName: name,
		ClassCode: fmt.Sprintf("C%d", time.Now().UnixNano()),
		Status:    1,
	})
	if err != nil {
		t.Fatalf("首次 EnsureByName 失败: %v", err)
	}
	defer testDB.Unscoped().Where("id = ?", first.ID).Delete(&model.Class{})

	second, err := repo.Class.EnsureByName(ctx, &model.Class{
		SchoolID:  school.ID,
		ClassName: name,
		ClassCode: fmt.Sprintf("C%dx", time.Now().UnixNano()),
		Status:    1,
	})
	if err != nil {
		t.Fatalf("再次 EnsureByName 失败: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("期望复用班级 %d，实际新建了 %d", first.ID, second.ID)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: RecordStore 聚合
// ═══════════════════════════════════════════════════════════

func TestRecordStore_SumBy(t *testing.T) {
	_, teacher, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	records := []model.TeacherTrainingRecord{
		{TeacherID: teacher.ID, TrainingName: "教学技能培训", Category: "skill", Hours: 16},
		{TeacherID: teacher.ID, TrainingName: "信息化培训", Category: "info", Hours: 8},
		{TeacherID: teacher.ID, TrainingName: "教学技能进阶", Category: "skill", Hours: 4},
	}
	for i := range records {
		if err := repo.Training.Add(ctx, &records[i]); err != nil {
			t.Fatalf("创建培训记录失败: %v", err)
		}
	}

	total, byCategory, err := repo.Training.SumBy(ctx, teacher.ID, "hours", "category")
	if err != nil {
		t.Fatalf("SumBy 失败: %v", err)
	}
	if total != 28 {
		t.Errorf("总学时期望 28，实际 %v", total)
	}
	if byCategory["skill"] != 20 {
		t.Errorf("skill 小计期望 20，实际 %v", byCategory["skill"])
	}
	if byCategory["info"] != 8 {
		t.Errorf("info 小计期望 8，实际 %v", byCategory["info"])
	}
}

func TestRecordStore_ListWhere(t *testing.T) {
	_, teacher, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	records := []model.TeacherTrainingRecord{
		{TeacherID: teacher.ID, TrainingName: "师德培训", Category: "ethics", Hours: 2},
		{TeacherID: teacher.ID, TrainingName: "信息化培训", Category: "info", Hours: 8},
	}
	for i := range records {
		if err := repo.Training.Add(ctx, &records[i]); err != nil {
			t.Fatalf("创建培训记录失败: %v", err)
		}
	}

	got, err := repo.Training.ListWhere(ctx, teacher.ID, map[string]interface{}{"category": "ethics"})
	if err != nil {
		t.Fatalf("ListWhere 失败: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("期望 1 条记录，实际 %d", len(got))
	}
	if got[0].TrainingName != "师德培训" {
		t.Errorf("记录不符: %s", got[0].TrainingName)
	}
}

func TestRecordStore_UpdateKeepsCreatedAt(t *testing.T) {
	_, teacher, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	original := &model.TeacherTrainingRecord{
		TeacherID:    teacher.ID,
		TrainingName: "教学技能培训",
		Category:     "skill",
		Hours:        16,
	}
	if err := repo.Training.Add(ctx, original); err != nil {
		t.Fatalf("创建培训记录失败: %v", err)
	}

	// 模拟 PUT 请求：JSON 绑定出的结构体只带路径 ID 和请求体字段，
	// created_at 是零值
	incoming := &model.TeacherTrainingRecord{
		TeacherID:    teacher.ID,
		TrainingName: "教学技能培训（修订）",
		Category:     "skill",
		Hours:        24,
	}
	incoming.ID = original.ID
	if err := repo.Training.UpdateByID(ctx, incoming); err != nil {
		t.Fatalf("UpdateByID 失败: %v", err)
	}

	var reloaded model.TeacherTrainingRecord
	if err := testDB.WithContext(ctx).First(&reloaded, original.ID).Error; err != nil {
		t.Fatalf("回读记录失败: %v", err)
	}
	if reloaded.Hours != 24 {
		t.Errorf("学时期望 24，实际 %v", reloaded.Hours)
	}
	if reloaded.TrainingName != "教学技能培训（修订）" {
		t.Errorf("名称未更新: %s", reloaded.TrainingName)
	}
	if reloaded.CreatedAt.IsZero() {
		t.Error("更新不应清零 created_at")
	}
	if !reloaded.CreatedAt.Equal(original.CreatedAt) {
		t.Errorf("created_at 期望保持 %v，实际 %v", original.CreatedAt, reloaded.CreatedAt)
	}
}
