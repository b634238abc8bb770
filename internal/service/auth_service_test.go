package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/startuniverse/Municipal-Education-Bureau-Integrated-Information-Service-Platform/config"
	"github.com/startuniverse/Municipal-Education-Bureau-Integrated-Information-Service-Platform/internal/dto"
	"github.com/startuniverse/Municipal-Education-Bureau-Integrated-Information-Service-Platform/internal/model"
	"github.com/startuniverse/Municipal-Education-Bureau-Integrated-Information-Service-Platform/pkg/jwt"
)

// ── 测试辅助 ──

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-key-for-unit-testing-2026",
			AccessTokenTTL:  time.Hour,
			Issuer:          "edu-platform-test",
			DefaultPassword: "admin",
		},
	}
}

func setupAuthService() (AuthService, *mockRepos, *mockBlacklist) {
	cfg := testConfig()
	m := newMockRepos()
	blacklist := newMockBlacklist()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewAuthService(m.repo, jwtMgr, blacklist, zap.NewNop())
	return svc, m, blacklist
}

func createTestUser(m *mockRepos, username, password string) *model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := &model.User{
		Username: username,
		Password: string(hash),
		RealName: "测试用户",
		Status:   model.StatusActive,
	}
	_ = m.users.Create(context.Background(), user)
	return user
}

// ── 登录测试 ──

func TestLogin_Success(t *testing.T) {
	svc, m, _ := setupAuthService()
	user := createTestUser(m, "zhangsan", "password123")
	role, _ := m.roles.EnsureByCode(context.Background(), model.RoleCodeUser, "普通用户", "")
	_ = m.users.AssignRole(context.Background(), user.ID, role.ID)

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "zhangsan",
		Password: "password123",
	})

	if err != nil {
		t.Fatalf("Login 应成功，但返回错误: %v", err)
	}
	if result.Token == "" {
		t.Error("Token 不应为空")
	}
	if result.User.Username != "zhangsan" {
		t.Errorf("期望 Username=zhangsan，实际=%s", result.User.Username)
	}
	if len(result.User.Roles) != 1 || result.User.Roles[0] != model.RoleCodeUser {
		t.Errorf("期望角色 [USER]，实际=%v", result.User.Roles)
	}
	if user.LastLoginAt == nil {
		t.Error("登录成功后应记录最后登录时间")
	}

	// Token 应能解回同一用户名
	claims, err := jwt.NewManager(&testConfig().Auth).ParseToken(result.Token)
	if err != nil {
		t.Fatalf("解析 Token 失败: %v", err)
	}
	if claims.Username != "zhangsan" {
		t.Errorf("Token 主体期望 zhangsan，实际=%s", claims.Username)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, m, _ := setupAuthService()
	user := createTestUser(m, "zhangsan", "password123")

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "zhangsan",
		Password: "wrong_password",
	})

	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
	if user.LastLoginAt != nil {
		t.Error("密码错误不应更新最近登录时间")
	}
}

func TestLogin_UserNotFound(t *testing.T) {
	svc, _, _ := setupAuthService()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "nonexistent",
		Password: "password123",
	})

	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

func TestLogin_DisabledUser(t *testing.T) {
	svc, m, _ := setupAuthService()
	user := createTestUser(m, "zhangsan", "password123")
	user.Status = model.StatusInactive

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "zhangsan",
		Password: "password123",
	})

	if !errors.Is(err, ErrUserDisabled) {
		t.Errorf("期望 ErrUserDisabled，实际: %v", err)
	}
}

func TestLogin_SchoolNameResolved(t *testing.T) {
	svc, m, _ := setupAuthService()
	user := createTestUser(m, "zhangsan", "password123")
	school := &model.School{SchoolCode: "S1", SchoolName: "第一中学", SchoolType: "secondary", Status: model.StatusActive}
	_ = m.schools.Create(context.Background(), school)
	user.SchoolID = &school.ID

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "zhangsan",
		Password: "password123",
	})

	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	if result.User.SchoolName != "第一中学" {
		t.Errorf("期望 SchoolName=第一中学，实际=%s", result.User.SchoolName)
	}
}

func TestLogin_SchoolMissing(t *testing.T) {
	svc, m, _ := setupAuthService()
	user := createTestUser(m, "zhangsan", "password123")
	missingID := int64(999)
	user.SchoolID = &missingID

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "zhangsan",
		Password: "password123",
	})

	if err != nil {
		t.Fatalf("学校缺失不应阻断登录: %v", err)
	}
	if result.User.SchoolName != "" {
		t.Errorf("学校缺失时 SchoolName 应为空，实际=%s", result.User.SchoolName)
	}
}

// ── 注销测试 ──

func TestLogout_BlacklistsToken(t *testing.T) {
	svc, m, blacklist := setupAuthService()
	createTestUser(m, "zhangsan", "password123")

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "zhangsan",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	cfg := testConfig()
	claims, err := jwt.NewManager(&cfg.Auth).ParseToken(result.Token)
	if err != nil {
		t.Fatalf("解析 Token 失败: %v", err)
	}

	if err := svc.Logout(context.Background(), claims); err != nil {
		t.Fatalf("Logout 应成功: %v", err)
	}
	blocked, _ := blacklist.IsBlacklisted(context.Background(), claims.ID)
	if !blocked {
		t.Error("注销后 jti 应进入黑名单")
	}
}

// ── 用户画像测试 ──

func TestCurrentProfile_Success(t *testing.T) {
	svc, m, _ := setupAuthService()
	user := createTestUser(m, "zhangsan", "password123")
	m.users.perms[user.ID] = []string{"teacher:read"}

	profile, err := svc.CurrentProfile(context.Background(), "zhangsan")
	if err != nil {
		t.Fatalf("CurrentProfile 应成功: %v", err)
	}
	if profile.ID != user.ID {
		t.Errorf("期望 ID=%d，实际=%d", user.ID, profile.ID)
	}
	if len(profile.Permissions) != 1 || profile.Permissions[0] != "teacher:read" {
		t.Errorf("期望权限 [teacher:read]，实际=%v", profile.Permissions)
	}
}

func TestCurrentProfile_NotFound(t *testing.T) {
	svc, _, _ := setupAuthService()

	_, err := svc.CurrentProfile(context.Background(), "nonexistent")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}
