// Package timelog 는 타임 블록 기록과 주간 목표를 제공한다.
package timelog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jiwoolab/track/internal/dateutil"
	"github.com/jiwoolab/track/internal/model"
	"github.com/jiwoolab/track/internal/repository"
)

// AutoMarker 는 타임 블록 추가 시 당일 루틴을 자동 완료 처리한다.
type AutoMarker interface {
	MarkAutoCheck(ctx context.Context, userID, date, key string) (*model.DailyRoutine, error)
}

// LogInput 은 타임 로그 생성·갱신 입력.
type LogInput struct {
	Category  model.TimeLogCategory
	Content   string
	Date      string
	StartHour int
	EndHour   int
}

// Service 는 타임 로그와 주간 목표를 담당한다.
type Service struct {
	logRepo    repository.TimeLogRepository
	goalRepo   repository.WeeklyGoalRepository
	autoMarker AutoMarker
}

// NewService 는 Service를 생성한다.
func NewService(logRepo repository.TimeLogRepository, goalRepo repository.WeeklyGoalRepository, autoMarker AutoMarker) *Service {
	return &Service{
		logRepo:    logRepo,
		goalRepo:   goalRepo,
		autoMarker: autoMarker,
	}
}

// ListWeek 는 reference가 속한 주(월~일)의 로그를
// 날짜·시작 시각 오름차순으로 반환한다. 겹치는 블록도 그대로 포함된다.
func (s *Service) ListWeek(ctx context.Context, userID string, reference time.Time) ([]*model.TimeLog, error) {
	weekStart := dateutil.WeekStart(reference)
	weekEnd := weekStart.AddDate(0, 0, 6)

	logs, err := s.logRepo.ListByDateRange(ctx, userID,
		dateutil.Format(weekStart), dateutil.Format(weekEnd))
	if err != nil {
		return nil, fmt.Errorf("주간 타임 로그 조회에 실패했습니다: %w", err)
	}

	return logs, nil
}

// Create 는 타임 로그를 생성하고 해당 날짜의 time_block 루틴을 자동 완료 처리한다.
func (s *Service) Create(ctx context.Context, userID string, input LogInput) (*model.TimeLog, error) {
	if err := validateLogInput(input); err != nil {
		return nil, err
	}

	now := time.Now()
	log := &model.TimeLog{
		ID:        uuid.NewString(),
		UserID:    userID,
		Category:  input.Category,
		Content:   input.Content,
		Date:      input.Date,
		StartHour: input.StartHour,
		EndHour:   input.EndHour,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.logRepo.Create(ctx, log); err != nil {
		return nil, fmt.Errorf("타임 로그 생성에 실패했습니다: %w", err)
	}

	if _, err := s.autoMarker.MarkAutoCheck(ctx, userID, input.Date, model.RoutineTimeBlock); err != nil {
		return log, fmt.Errorf("루틴 자동 완료 기록에 실패했습니다: %w", err)
	}

	return log, nil
}

// Update 는 타임 로그를 전체 필드 치환으로 갱신한다.
func (s *Service) Update(ctx context.Context, userID, id string, input LogInput) (*model.TimeLog, error) {
	log, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := validateLogInput(input); err != nil {
		return nil, err
	}

	log.Category = input.Category
	log.Content = input.Content
	log.Date = input.Date
	log.StartHour = input.StartHour
	log.EndHour = input.EndHour
	log.UpdatedAt = time.Now()

	if err := s.logRepo.Update(ctx, log); err != nil {
		return nil, fmt.Errorf("타임 로그 갱신에 실패했습니다: %w", err)
	}

	return log, nil
}

// Delete 는 타임 로그를 삭제한다.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.findOwned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.logRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("타임 로그 삭제에 실패했습니다: %w", err)
	}
	return nil
}

// GoalsByMonth 는 지정 월(YYYY-MM)의 주간 목표를 주차 순으로 반환한다.
func (s *Service) GoalsByMonth(ctx context.Context, userID, yearMonth string) ([]*model.WeeklyGoal, error) {
	if !validYearMonth(yearMonth) {
		return nil, model.NewInvalidDateError(yearMonth)
	}

	goals, err := s.goalRepo.ListByYearMonth(ctx, userID, yearMonth)
	if err != nil {
		return nil, fmt.Errorf("주간 목표 조회에 실패했습니다: %w", err)
	}

	return goals, nil
}

// UpsertGoal 은 (연월, 주차) 단위로 목표를 생성하거나 덮어쓴다.
// 주차는 1~4만 허용된다.
func (s *Service) UpsertGoal(ctx context.Context, userID, yearMonth string, week int, goal string) (*model.WeeklyGoal, error) {
	if !validYearMonth(yearMonth) {
		return nil, model.NewInvalidDateError(yearMonth)
	}
	if week < 1 || week > 4 {
		return nil, model.NewInvalidWeekError(week)
	}

	now := time.Now()
	saved, err := s.goalRepo.Upsert(ctx, &model.WeeklyGoal{
		ID:        uuid.NewString(),
		UserID:    userID,
		YearMonth: yearMonth,
		Week:      week,
		Goal:      goal,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("주간 목표 저장에 실패했습니다: %w", err)
	}

	return saved, nil
}

// findOwned 는 타임 로그를 찾고 소유자를 확인한다.
func (s *Service) findOwned(ctx context.Context, userID, id string) (*model.TimeLog, error) {
	log, err := s.logRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("타임 로그 조회에 실패했습니다: %w", err)
	}
	if log == nil || log.UserID != userID {
		return nil, model.NewTimeLogNotFoundError(id)
	}
	return log, nil
}

func validateLogInput(input LogInput) error {
	if !model.ValidTimeLogCategory(input.Category) {
		return model.NewInvalidCategoryError(string(input.Category))
	}
	if _, err := dateutil.Parse(input.Date); err != nil {
		return model.NewInvalidDateError(input.Date)
	}
	if input.StartHour < 0 || input.StartHour > 23 || input.EndHour < 0 || input.EndHour > 23 {
		return model.NewInvalidTimeRangeError(input.StartHour, input.EndHour)
	}
	if input.EndHour <= input.StartHour {
		return model.NewInvalidTimeRangeError(input.StartHour, input.EndHour)
	}
	return nil
}

// validYearMonth 는 YYYY-MM 형식을 검증한다.
func validYearMonth(yearMonth string) bool {
	_, err := time.ParseInLocation("2006-01", yearMonth, time.Local)
	return err == nil
}
