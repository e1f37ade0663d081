// Package user 는 사용자 프로필 조회와 탈퇴를 제공한다.
package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jiwoolab/track/internal/model"
	"github.com/jiwoolab/track/internal/repository"
)

// Repos 는 탈퇴 시 삭제 대상이 되는 리포지토리 묶음.
type Repos struct {
	Users        repository.UserRepository
	Sessions     repository.SessionRepository
	JobListings  repository.JobListingRepository
	Applications repository.ApplicationRepository
	Schedules    repository.ScheduleRepository
	Routines     repository.DailyRoutineRepository
	NewsScraps   repository.NewsScrapRepository
	TimeLogs     repository.TimeLogRepository
	WeeklyGoals  repository.WeeklyGoalRepository
	Stickers     repository.StickerRepository
}

// Service 는 사용자 프로필과 탈퇴를 담당한다.
type Service struct {
	repos  Repos
	logger *slog.Logger
}

// NewService 는 Service를 생성한다.
func NewService(repos Repos, logger *slog.Logger) *Service {
	return &Service{repos: repos, logger: logger}
}

// Profile 은 사용자 프로필을 반환한다.
func (s *Service) Profile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.repos.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("사용자 조회에 실패했습니다: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}
	return user, nil
}

// Withdraw 는 사용자의 모든 데이터를 삭제하고 계정을 없앤다.
// 엔티티 데이터 → 세션 → 사용자 본체의 순서로 지우며,
// 사용자 삭제 시 identities는 외래 키 CASCADE로 함께 삭제된다.
func (s *Service) Withdraw(ctx context.Context, userID string) error {
	user, err := s.repos.Users.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("사용자 조회에 실패했습니다: %w", err)
	}
	if user == nil {
		return model.NewUserNotFoundError()
	}

	steps := []struct {
		name string
		fn   func(context.Context, string) error
	}{
		{"job_listings", s.repos.JobListings.DeleteByUserID},
		{"applications", s.repos.Applications.DeleteByUserID},
		{"schedules", s.repos.Schedules.DeleteByUserID},
		{"daily_routines", s.repos.Routines.DeleteByUserID},
		{"news_scraps", s.repos.NewsScraps.DeleteByUserID},
		{"time_logs", s.repos.TimeLogs.DeleteByUserID},
		{"weekly_goals", s.repos.WeeklyGoals.DeleteByUserID},
		{"stickers", s.repos.Stickers.DeleteByUserID},
		{"sessions", s.repos.Sessions.DeleteByUserID},
	}
	for _, step := range steps {
		if err := step.fn(ctx, userID); err != nil {
			return fmt.Errorf("%s 삭제에 실패했습니다: %w", step.name, err)
		}
	}

	if err := s.repos.Users.DeleteByID(ctx, userID); err != nil {
		return fmt.Errorf("사용자 삭제에 실패했습니다: %w", err)
	}

	s.logger.Info("사용자가 탈퇴했습니다", slog.String("user_id", userID))
	return nil
}
