package routine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jiwoolab/track/internal/dateutil"
	"github.com/jiwoolab/track/internal/model"
	"github.com/jiwoolab/track/internal/repository"
)

// Status 는 카탈로그 루틴 하나의 당일 상태를 표현한다.
// 기록 행이 없는 루틴은 미완료로 합성된다.
type Status struct {
	Definition
	IsCompleted bool
	CompletedAt *time.Time
}

// FocusReport 는 집중도 퍼센티지와 표시용 티어.
type FocusReport struct {
	Percentage int
	Color      string
	Comment    string
}

// Service 는 데일리 루틴의 조회·토글·자동 완료를 담당한다.
type Service struct {
	routineRepo repository.DailyRoutineRepository
}

// NewService 는 Service를 생성한다.
func NewService(routineRepo repository.DailyRoutineRepository) *Service {
	return &Service{routineRepo: routineRepo}
}

// ListByDate 는 지정 날짜의 루틴 상태를 카탈로그 순서로 반환한다.
// 항상 카탈로그 크기(5)의 슬라이스를 반환한다.
func (s *Service) ListByDate(ctx context.Context, userID, date string) ([]Status, error) {
	if _, err := dateutil.Parse(date); err != nil {
		return nil, model.NewInvalidDateError(date)
	}

	rows, err := s.routineRepo.ListByUserAndDate(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("루틴 상태 조회에 실패했습니다: %w", err)
	}

	byKey := make(map[string]*model.DailyRoutine, len(rows))
	for _, row := range rows {
		byKey[row.RoutineKey] = row
	}

	statuses := make([]Status, 0, len(Catalogue))
	for _, def := range Catalogue {
		status := Status{Definition: def}
		if row, ok := byKey[def.Key]; ok {
			status.IsCompleted = row.IsCompleted
			status.CompletedAt = row.CompletedAt
		}
		statuses = append(statuses, status)
	}

	return statuses, nil
}

// ToggleSelfCheck 는 self 루틴의 완료 상태를 반전한다.
// 기록 행이 없으면 완료 상태의 새 행을 만든다.
// auto 루틴에 대한 호출은 에러가 된다.
func (s *Service) ToggleSelfCheck(ctx context.Context, userID, date, key string) (*model.DailyRoutine, error) {
	def, ok := DefinitionByKey(key)
	if !ok {
		return nil, model.NewInvalidRoutineKeyError(key)
	}
	if def.CheckType != model.CheckTypeSelf {
		return nil, model.NewSelfCheckOnlyError(key)
	}
	if _, err := dateutil.Parse(date); err != nil {
		return nil, model.NewInvalidDateError(date)
	}

	existing, err := s.routineRepo.FindByUserDateKey(ctx, userID, date, key)
	if err != nil {
		return nil, fmt.Errorf("루틴 기록 조회에 실패했습니다: %w", err)
	}

	now := time.Now()

	if existing == nil {
		row := &model.DailyRoutine{
			ID:          uuid.NewString(),
			UserID:      userID,
			Date:        date,
			RoutineKey:  key,
			CheckType:   model.CheckTypeSelf,
			IsCompleted: true,
			CompletedAt: &now,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.routineRepo.Create(ctx, row); err != nil {
			return nil, fmt.Errorf("루틴 기록 생성에 실패했습니다: %w", err)
		}
		return row, nil
	}

	existing.IsCompleted = !existing.IsCompleted
	if existing.IsCompleted {
		existing.CompletedAt = &now
	} else {
		existing.CompletedAt = nil
	}
	existing.UpdatedAt = now

	if err := s.routineRepo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("루틴 기록 갱신에 실패했습니다: %w", err)
	}

	return existing, nil
}

// MarkAutoCheck 는 auto 루틴을 완료로 기록한다.
// 이미 그날의 행이 있으면 아무것도 바꾸지 않고 기존 행을 반환한다.
// N번 호출해도 1번 호출한 것과 같은 효과를 가진다.
func (s *Service) MarkAutoCheck(ctx context.Context, userID, date, key string) (*model.DailyRoutine, error) {
	if _, ok := DefinitionByKey(key); !ok {
		return nil, model.NewInvalidRoutineKeyError(key)
	}
	if _, err := dateutil.Parse(date); err != nil {
		return nil, model.NewInvalidDateError(date)
	}

	now := time.Now()
	candidate := &model.DailyRoutine{
		ID:          uuid.NewString(),
		UserID:      userID,
		Date:        date,
		RoutineKey:  key,
		CheckType:   model.CheckTypeAuto,
		IsCompleted: true,
		CompletedAt: &now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.routineRepo.InsertIfAbsent(ctx, candidate); err != nil {
		return nil, fmt.Errorf("루틴 자동 완료 기록에 실패했습니다: %w", err)
	}

	// 충돌 시 첫 호출의 completed_at을 유지하기 위해 확정 행을 다시 읽는다.
	row, err := s.routineRepo.FindByUserDateKey(ctx, userID, date, key)
	if err != nil {
		return nil, fmt.Errorf("루틴 기록 조회에 실패했습니다: %w", err)
	}

	return row, nil
}

// TodayFocus 는 지정 날짜의 집중도를 계산한다.
func (s *Service) TodayFocus(ctx context.Context, userID, date string) (FocusReport, error) {
	rows, err := s.routineRepo.ListByUserAndDate(ctx, userID, date)
	if err != nil {
		return FocusReport{}, fmt.Errorf("루틴 상태 조회에 실패했습니다: %w", err)
	}

	percentage := FocusPercentage(rows)
	tier := TierFor(percentage)
	return FocusReport{Percentage: percentage, Color: tier.Color, Comment: tier.Comment}, nil
}

// WeeklyFocus 는 이번 주 월~금 중 reference 당일까지의 평균 집중도를 계산한다.
// 주말은 분자·분모 양쪽에서 제외된다. 대상 일수가 0이면 0이 된다.
func (s *Service) WeeklyFocus(ctx context.Context, userID string, reference time.Time) (FocusReport, error) {
	weekStart := dateutil.WeekStart(reference)
	today := dateutil.Truncate(reference)

	rows, err := s.routineRepo.ListByUserAndDateRange(ctx, userID,
		dateutil.Format(weekStart), dateutil.Format(today))
	if err != nil {
		return FocusReport{}, fmt.Errorf("주간 루틴 조회에 실패했습니다: %w", err)
	}

	byDate := make(map[string][]*model.DailyRoutine)
	for _, row := range rows {
		byDate[row.Date] = append(byDate[row.Date], row)
	}

	var percentages []int
	for d := weekStart; !d.After(today); d = d.AddDate(0, 0, 1) {
		wd := d.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			continue
		}
		percentages = append(percentages, FocusPercentage(byDate[dateutil.Format(d)]))
	}

	average := WeeklyAverage(percentages)
	tier := TierFor(average)
	return FocusReport{Percentage: average, Color: tier.Color, Comment: tier.Comment}, nil
}
