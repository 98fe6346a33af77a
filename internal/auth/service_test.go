package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgAuth "github.com/cynemos/smileinventory/pkg/auth"
	"github.com/cynemos/smileinventory/pkg/config"
	"github.com/cynemos/smileinventory/pkg/db/models"
	"github.com/cynemos/smileinventory/pkg/enums"
	pkgerrors "github.com/cynemos/smileinventory/pkg/errors"
	"github.com/cynemos/smileinventory/pkg/security"
)

func TestServiceLoginIssuesTokens(t *testing.T) {
	password := "clinic-secret"
	hashed := mustHashPassword(t, password)
	user := &models.User{
		ID:           uuid.New(),
		Email:        "dentist@example.com",
		PasswordHash: hashed,
		FirstName:    "Laura",
		LastName:     "Bosch",
		Role:         enums.UserRoleDentist,
		IsActive:     true,
	}
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "smileinventory",
		ExpirationMinutes: 30,
	}

	svc, sessionMgr, err := buildTestService(user, cfg)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "  Dentist@Example.com ",
		Password: password,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgAuth.ParseAccessToken(cfg, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("expected user id claim %s, got %s", user.ID, claims.UserID)
	}
	if claims.Role != enums.UserRoleDentist {
		t.Fatalf("expected dentist role claim, got %s", claims.Role)
	}
	if claims.ID == "" {
		t.Fatalf("expected jti claim to be set")
	}
	if sessionMgr.lastAccessID != claims.ID {
		t.Fatalf("expected refresh session keyed by jti %s, got %s", claims.ID, sessionMgr.lastAccessID)
	}
	if resp.RefreshToken == "" {
		t.Fatalf("expected refresh token to be set")
	}
	if resp.User == nil || resp.User.Email != user.Email {
		t.Fatalf("expected sanitized user in response")
	}
	if user.LastLoginAt == nil {
		t.Fatalf("expected last login to be recorded")
	}
}

func TestServiceLoginRejectsWrongPassword(t *testing.T) {
	hashed := mustHashPassword(t, "correct-password")
	user := &models.User{
		ID:           uuid.New(),
		Email:        "assistant@example.com",
		PasswordHash: hashed,
		Role:         enums.UserRoleAssistant,
		IsActive:     true,
	}

	svc, _, err := buildTestService(user, testJWTConfig())
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: "wrong-password",
	})
	assertUnauthorized(t, err)
}

func TestServiceLoginRejectsInactiveUser(t *testing.T) {
	password := "still-valid"
	user := &models.User{
		ID:           uuid.New(),
		Email:        "former@example.com",
		PasswordHash: mustHashPassword(t, password),
		Role:         enums.UserRoleAdmin,
		IsActive:     false,
	}

	svc, _, err := buildTestService(user, testJWTConfig())
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: password,
	})
	assertUnauthorized(t, err)
}

func TestServiceLoginRejectsUnknownEmail(t *testing.T) {
	svc, _, err := buildTestServiceWithRepo(stubUserRepo{err: gorm.ErrRecordNotFound}, testJWTConfig())
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assertUnauthorized(t, err)
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "smileinventory",
		ExpirationMinutes: 30,
	}
}

func buildTestService(user *models.User, jwtCfg config.JWTConfig) (Service, *stubSessionManager, error) {
	return buildTestServiceWithRepo(stubUserRepo{user: user}, jwtCfg)
}

func buildTestServiceWithRepo(repo stubUserRepo, jwtCfg config.JWTConfig) (Service, *stubSessionManager, error) {
	sessionMgr := &stubSessionManager{refreshToken: "refresh-token"}
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sessionMgr,
		JWTConfig:      jwtCfg,
	})
	return svc, sessionMgr, err
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func assertUnauthorized(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected unauthorized error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if typed.Message() != invalidCredentialsMessage {
		t.Fatalf("expected opaque credentials message, got %q", typed.Message())
	}
}

type stubUserRepo struct {
	user *models.User
	err  error
}

func (s stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func (s stubUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	if s.user != nil && s.user.ID == id {
		s.user.LastLoginAt = &at
	}
	return nil
}

type stubSessionManager struct {
	refreshToken string
	lastAccessID string
}

func (s *stubSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	s.lastAccessID = accessID
	return s.refreshToken, nil
}
