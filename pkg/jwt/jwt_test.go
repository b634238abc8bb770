package jwt

import (
	"testing"
	"time"

	"github.com/startuniverse/Municipal-Education-Bureau-Integrated-Information-Service-Platform/config"
)

func newTestManager() *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-key-for-unit-testing-2026",
		AccessTokenTTL: 24 * time.Hour,
		Issuer:         "edu-platform",
	})
}

func TestGenerateAndParseToken(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateToken("teacher001", []string{"TEACHER"})
	if err != nil {
		t.Fatalf("GenerateToken 失败: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken 失败: %v", err)
	}

	if claims.Username != "teacher001" {
		t.Errorf("期望 Username=teacher001，实际=%s", claims.Username)
	}
	if claims.Subject != "teacher001" {
		t.Errorf("期望 Subject=teacher001，实际=%s", claims.Subject)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "TEACHER" {
		t.Errorf("期望 Roles=[TEACHER]，实际=%v", claims.Roles)
	}
	if claims.Issuer != "edu-platform" {
		t.Errorf("期望 Issuer=edu-platform，实际=%s", claims.Issuer)
	}
	if claims.ID == "" {
		t.Error("JTI 不应为空")
	}
}

func TestSubjectOf_RoundTrip(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateToken("stu2024", nil)
	if err != nil {
		t.Fatalf("GenerateToken 失败: %v", err)
	}

	subject, err := m.SubjectOf(token)
	if err != nil {
		t.Fatalf("SubjectOf 失败: %v", err)
	}
	if subject != "stu2024" {
		t.Errorf("期望 subject=stu2024，实际=%s", subject)
	}
}

func TestParseToken_InvalidToken(t *testing.T) {
	m := newTestManager()

	_, err := m.ParseToken("invalid.token.string")
	if err == nil {
		t.Error("期望解析无效 token 返回错误")
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	m1 := newTestManager()
	m2 := NewManager(&config.AuthConfig{
		JWTSecret:      "different-secret-key",
		AccessTokenTTL: 24 * time.Hour,
	})

	token, _ := m1.GenerateToken("admin", []string{"ADMIN"})
	_, err := m2.ParseToken(token)
	if err == nil {
		t.Error("不同密钥签名的 token 不应通过验证")
	}
}

func TestParseToken_ExpiredToken(t *testing.T) {
	// 创建一个 TTL 极短的 manager 来测试过期
	m := NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret",
		AccessTokenTTL: 1 * time.Millisecond,
	})

	token, _ := m.GenerateToken("admin", nil)
	time.Sleep(10 * time.Millisecond)

	_, err := m.ParseToken(token)
	if err == nil {
		t.Error("过期 token 不应通过验证")
	}
	if err != ErrTokenExpired {
		t.Errorf("期望 ErrTokenExpired，实际: %v", err)
	}
}

func TestRemainingTTL(t *testing.T) {
	m := newTestManager()

	token, _ := m.GenerateToken("admin", nil)
	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken 失败: %v", err)
	}

	ttl := claims.RemainingTTL()
	if ttl < 23*time.Hour || ttl > 25*time.Hour {
		t.Errorf("剩余有效期期望约24h，实际=%v", ttl)
	}
}
