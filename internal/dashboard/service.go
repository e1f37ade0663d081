package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/jiwoolab/track/internal/dateutil"
	"github.com/jiwoolab/track/internal/repository"
)

// Snapshot 은 대시보드 응답 하나에 담기는 원본 컬렉션과 지표.
type Snapshot struct {
	State   State
	Metrics Metrics
}

// Service 는 리포지토리에서 원본 컬렉션을 모아 스냅샷을 만든다.
type Service struct {
	routineRepo repository.DailyRoutineRepository
	appRepo     repository.ApplicationRepository
	scrapRepo   repository.NewsScrapRepository
	stickerRepo repository.StickerRepository
}

// NewService 는 Service를 생성한다.
func NewService(routineRepo repository.DailyRoutineRepository, appRepo repository.ApplicationRepository, scrapRepo repository.NewsScrapRepository, stickerRepo repository.StickerRepository) *Service {
	return &Service{
		routineRepo: routineRepo,
		appRepo:     appRepo,
		scrapRepo:   scrapRepo,
		stickerRepo: stickerRepo,
	}
}

// Snapshot 은 기준 시각의 대시보드 스냅샷을 조립한다.
func (s *Service) Snapshot(ctx context.Context, userID string, reference time.Time) (*Snapshot, error) {
	today := dateutil.Format(reference)
	weekStart := dateutil.WeekStart(reference)

	todayRoutines, err := s.routineRepo.ListByUserAndDate(ctx, userID, today)
	if err != nil {
		return nil, fmt.Errorf("오늘 루틴 조회에 실패했습니다: %w", err)
	}

	weekRoutines, err := s.routineRepo.ListByUserAndDateRange(ctx, userID,
		dateutil.Format(weekStart), today)
	if err != nil {
		return nil, fmt.Errorf("주간 루틴 조회에 실패했습니다: %w", err)
	}

	applications, err := s.appRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("지원 내역 조회에 실패했습니다: %w", err)
	}

	scraps, err := s.scrapRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("스크랩 조회에 실패했습니다: %w", err)
	}

	stickers, err := s.stickerRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("스티커 조회에 실패했습니다: %w", err)
	}

	state := State{
		TodayRoutines: todayRoutines,
		WeekRoutines:  weekRoutines,
		Applications:  applications,
		Scraps:        scraps,
		Stickers:      stickers,
	}

	return &Snapshot{
		State:   state,
		Metrics: ComputeMetrics(state, reference),
	}, nil
}
