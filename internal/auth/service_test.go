package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jiwoolab/track/internal/model"
)

type mockOAuthProvider struct {
	userInfo *OAuthUserInfo
	err      error
}

func (m *mockOAuthProvider) GetLoginURL(state string) string {
	return "https://example.com/auth?state=" + state
}

func (m *mockOAuthProvider) ExchangeCode(_ context.Context, _ string) (*OAuthUserInfo, error) {
	return m.userInfo, m.err
}

type mockUserRepo struct {
	findByIDFn           func(ctx context.Context, id string) (*model.User, error)
	createWithIdentityFn func(ctx context.Context, user *model.User, identity *model.Identity) error
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) CreateWithIdentity(ctx context.Context, user *model.User, identity *model.Identity) error {
	if m.createWithIdentityFn != nil {
		return m.createWithIdentityFn(ctx, user, identity)
	}
	return nil
}

func (m *mockUserRepo) DeleteByID(ctx context.Context, id string) error {
	return nil
}

type mockIdentRepo struct {
	findFn func(ctx context.Context, provider, providerUserID string) (*model.Identity, error)
}

func (m *mockIdentRepo) FindByProviderAndProviderUserID(ctx context.Context, provider, providerUserID string) (*model.Identity, error) {
	if m.findFn != nil {
		return m.findFn(ctx, provider, providerUserID)
	}
	return nil, nil
}

type mockSessionRepo struct {
	createFn     func(ctx context.Context, session *model.Session) error
	findByIDFn   func(ctx context.Context, id string) (*model.Session, error)
	deleteByIDFn func(ctx context.Context, id string) error
}

func (m *mockSessionRepo) Create(ctx context.Context, session *model.Session) error {
	if m.createFn != nil {
		return m.createFn(ctx, session)
	}
	return nil
}

func (m *mockSessionRepo) FindByID(ctx context.Context, id string) (*model.Session, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockSessionRepo) DeleteByID(ctx context.Context, id string) error {
	if m.deleteByIDFn != nil {
		return m.deleteByIDFn(ctx, id)
	}
	return nil
}

func (m *mockSessionRepo) DeleteByUserID(ctx context.Context, userID string) error {
	return nil
}

func googleUserInfoFixture() *OAuthUserInfo {
	return &OAuthUserInfo{
		ProviderUserID: "google-sub-123",
		Email:          "jiwoo@example.com",
		Name:           "김지우",
		AvatarURL:      "https://lh3.googleusercontent.com/a/photo.jpg",
		Provider:       "google",
	}
}

func TestHandleCallback_CreatesNewUserWithIdentity(t *testing.T) {
	var createdUser *model.User
	var createdIdentity *model.Identity
	userRepo := &mockUserRepo{
		createWithIdentityFn: func(_ context.Context, user *model.User, identity *model.Identity) error {
			createdUser = user
			createdIdentity = identity
			return nil
		},
	}
	var savedSession *model.Session
	sessionRepo := &mockSessionRepo{
		createFn: func(_ context.Context, session *model.Session) error {
			savedSession = session
			return nil
		},
	}

	svc := NewService(&mockOAuthProvider{userInfo: googleUserInfoFixture()},
		userRepo, &mockIdentRepo{}, sessionRepo, ServiceConfig{SessionMaxAge: 3600})

	session, err := svc.HandleCallback(context.Background(), "auth-code")
	if err != nil {
		t.Fatalf("HandleCallback() error = %v", err)
	}

	if createdUser == nil || createdIdentity == nil {
		t.Fatal("사용자와 identity가 생성되지 않았습니다")
	}
	if createdUser.Email != "jiwoo@example.com" {
		t.Errorf("Email = %s, want jiwoo@example.com", createdUser.Email)
	}
	if createdUser.AvatarURL != "https://lh3.googleusercontent.com/a/photo.jpg" {
		t.Errorf("AvatarURL = %s", createdUser.AvatarURL)
	}
	if createdIdentity.UserID != createdUser.ID {
		t.Errorf("identity.UserID = %s, want %s", createdIdentity.UserID, createdUser.ID)
	}
	if createdIdentity.Provider != "google" || createdIdentity.ProviderUserID != "google-sub-123" {
		t.Errorf("identity = %+v", createdIdentity)
	}

	if savedSession == nil || session.UserID != createdUser.ID {
		t.Fatalf("session = %+v, want UserID %s", session, createdUser.ID)
	}
	if len(session.ID) != 64 {
		t.Errorf("len(session.ID) = %d, want 64 (hex 32바이트)", len(session.ID))
	}
}

func TestHandleCallback_ExistingIdentityLogsIn(t *testing.T) {
	identRepo := &mockIdentRepo{
		findFn: func(_ context.Context, _, _ string) (*model.Identity, error) {
			return &model.Identity{ID: "ident-1", UserID: "user-1", Provider: "google"}, nil
		},
	}
	userRepo := &mockUserRepo{
		createWithIdentityFn: func(_ context.Context, _ *model.User, _ *model.Identity) error {
			t.Fatal("기존 사용자인데 CreateWithIdentity가 호출되었습니다")
			return nil
		},
	}

	svc := NewService(&mockOAuthProvider{userInfo: googleUserInfoFixture()},
		userRepo, identRepo, &mockSessionRepo{}, ServiceConfig{SessionMaxAge: 3600})

	session, err := svc.HandleCallback(context.Background(), "auth-code")
	if err != nil {
		t.Fatalf("HandleCallback() error = %v", err)
	}
	if session.UserID != "user-1" {
		t.Errorf("session.UserID = %s, want user-1", session.UserID)
	}
}

func TestHandleCallback_ExchangeFailure(t *testing.T) {
	svc := NewService(&mockOAuthProvider{err: errors.New("invalid_grant")},
		&mockUserRepo{}, &mockIdentRepo{}, &mockSessionRepo{}, ServiceConfig{SessionMaxAge: 3600})

	if _, err := svc.HandleCallback(context.Background(), "bad-code"); err == nil {
		t.Fatal("HandleCallback() error = nil, want error")
	}
}

func TestGetCurrentUser_ExpiredSession(t *testing.T) {
	sessionRepo := &mockSessionRepo{
		findByIDFn: func(_ context.Context, _ string) (*model.Session, error) {
			return nil, nil // 리포지토리는 만료 세션을 nil로 돌려준다
		},
	}
	svc := NewService(&mockOAuthProvider{}, &mockUserRepo{}, &mockIdentRepo{},
		sessionRepo, ServiceConfig{SessionMaxAge: 3600})

	_, err := svc.GetCurrentUser(context.Background(), "stale-session")
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeUnauthorized {
		t.Fatalf("GetCurrentUser() error = %v, want unauthorized", err)
	}
}

func TestGetCurrentUser_ReturnsUser(t *testing.T) {
	sessionRepo := &mockSessionRepo{
		findByIDFn: func(_ context.Context, id string) (*model.Session, error) {
			return &model.Session{ID: id, UserID: "user-1", ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
	}
	userRepo := &mockUserRepo{
		findByIDFn: func(_ context.Context, id string) (*model.User, error) {
			return &model.User{ID: id, Name: "김지우"}, nil
		},
	}
	svc := NewService(&mockOAuthProvider{}, userRepo, &mockIdentRepo{},
		sessionRepo, ServiceConfig{SessionMaxAge: 3600})

	user, err := svc.GetCurrentUser(context.Background(), "session-1")
	if err != nil {
		t.Fatalf("GetCurrentUser() error = %v", err)
	}
	if user.ID != "user-1" {
		t.Errorf("user.ID = %s, want user-1", user.ID)
	}
}

func TestLogout_EmptySessionID(t *testing.T) {
	svc := NewService(&mockOAuthProvider{}, &mockUserRepo{}, &mockIdentRepo{},
		&mockSessionRepo{}, ServiceConfig{SessionMaxAge: 3600})

	if err := svc.Logout(context.Background(), ""); err == nil {
		t.Fatal("Logout() error = nil, want error")
	}
}
