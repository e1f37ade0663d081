// Package auth 는 OAuth 인증 플로우와 세션 관리를 제공한다.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jiwoolab/track/internal/model"
	"github.com/jiwoolab/track/internal/repository"
)

// OAuthUserInfo 는 OAuth 프로바이더에서 가져온 사용자 정보를 표현한다.
type OAuthUserInfo struct {
	ProviderUserID string
	Email          string
	Name           string
	AvatarURL      string
	Provider       string // "google" 등
}

// OAuthProvider 는 OAuth 인증 프로바이더의 인터페이스.
// 장래에 복수 IdP(Google, GitHub 등)에 대응하기 위한 추상화.
type OAuthProvider interface {
	// GetLoginURL 은 OAuth 인증 URL을 생성한다.
	GetLoginURL(state string) string
	// ExchangeCode 는 인가 코드를 토큰으로 교환하고 사용자 정보를 가져온다.
	ExchangeCode(ctx context.Context, code string) (*OAuthUserInfo, error)
}

// ServiceConfig 는 인증 서비스의 설정.
type ServiceConfig struct {
	SessionMaxAge int // 세션 유효 기간(초)
}

// Service 는 인증 비즈니스 로직을 제공한다.
type Service struct {
	oauth       OAuthProvider
	userRepo    repository.UserRepository
	identRepo   repository.IdentityRepository
	sessionRepo repository.SessionRepository
	config      ServiceConfig
}

// NewService 는 Service를 생성한다.
func NewService(
	oauth OAuthProvider,
	userRepo repository.UserRepository,
	identRepo repository.IdentityRepository,
	sessionRepo repository.SessionRepository,
	config ServiceConfig,
) *Service {
	return &Service{
		oauth:       oauth,
		userRepo:    userRepo,
		identRepo:   identRepo,
		sessionRepo: sessionRepo,
		config:      config,
	}
}

// GetLoginURL 은 OAuth 인증 URL을 생성한다.
func (s *Service) GetLoginURL(state string) string {
	return s.oauth.GetLoginURL(state)
}

// HandleCallback 은 OAuth 콜백을 처리하고 세션을 발급한다.
// 미등록 사용자는 users 와 identities 레코드를 같은 트랜잭션으로 생성한다.
// 등록된 사용자는 identities 테이블에서 기존 사용자를 찾아 로그인한다.
func (s *Service) HandleCallback(ctx context.Context, code string) (*model.Session, error) {
	userInfo, err := s.oauth.ExchangeCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("인가 코드 교환에 실패했습니다: %w", err)
	}

	identity, err := s.identRepo.FindByProviderAndProviderUserID(ctx, userInfo.Provider, userInfo.ProviderUserID)
	if err != nil {
		return nil, fmt.Errorf("identity 조회에 실패했습니다: %w", err)
	}

	var userID string

	if identity != nil {
		userID = identity.UserID
		slog.Info("기존 사용자가 로그인했습니다",
			slog.String("user_id", userID),
			slog.String("provider", userInfo.Provider),
		)
	} else {
		now := time.Now()
		newUser := &model.User{
			ID:        uuid.NewString(),
			Email:     userInfo.Email,
			Name:      userInfo.Name,
			AvatarURL: userInfo.AvatarURL,
			CreatedAt: now,
			UpdatedAt: now,
		}
		newIdentity := &model.Identity{
			ID:             uuid.NewString(),
			UserID:         newUser.ID,
			Provider:       userInfo.Provider,
			ProviderUserID: userInfo.ProviderUserID,
			CreatedAt:      now,
		}

		if err := s.userRepo.CreateWithIdentity(ctx, newUser, newIdentity); err != nil {
			return nil, fmt.Errorf("사용자·identity 생성에 실패했습니다: %w", err)
		}

		userID = newUser.ID
		slog.Info("새 사용자를 생성했습니다",
			slog.String("user_id", userID),
			slog.String("email", userInfo.Email),
			slog.String("provider", userInfo.Provider),
		)
	}

	session, err := s.createSession(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("세션 생성에 실패했습니다: %w", err)
	}

	return session, nil
}

// Logout 은 세션을 파기한다.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return model.NewUnauthorizedError()
	}

	if err := s.sessionRepo.DeleteByID(ctx, sessionID); err != nil {
		return fmt.Errorf("세션 삭제에 실패했습니다: %w", err)
	}

	slog.Info("사용자가 로그아웃했습니다", slog.String("session_id", sessionID))
	return nil
}

// GetCurrentUser 는 세션에서 현재 사용자를 가져온다.
func (s *Service) GetCurrentUser(ctx context.Context, sessionID string) (*model.User, error) {
	if sessionID == "" {
		return nil, model.NewUnauthorizedError()
	}

	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("세션 조회에 실패했습니다: %w", err)
	}
	if session == nil {
		return nil, model.NewUnauthorizedError()
	}

	user, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("사용자 조회에 실패했습니다: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}

	return user, nil
}

// createSession 은 세션을 생성하고 영속화한다.
func (s *Service) createSession(ctx context.Context, userID string) (*model.Session, error) {
	sessionID, err := generateSessionID()
	if err != nil {
		return nil, fmt.Errorf("세션 ID 생성에 실패했습니다: %w", err)
	}

	session := &model.Session{
		ID:        sessionID,
		UserID:    userID,
		ExpiresAt: time.Now().Add(time.Duration(s.config.SessionMaxAge) * time.Second),
		CreatedAt: time.Now(),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("세션 저장에 실패했습니다: %w", err)
	}

	return session, nil
}

// generateSessionID 는 암호학적으로 안전한 세션 ID를 생성한다.
func generateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
