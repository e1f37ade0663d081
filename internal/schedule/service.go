// Package schedule 은 개인 일정과 대시보드 달력 뷰를 제공한다.
package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jiwoolab/track/internal/dateutil"
	"github.com/jiwoolab/track/internal/model"
	"github.com/jiwoolab/track/internal/repository"
)

// DDayWindow 는 달력 D-day 표시의 최대 남은 일수.
const DDayWindow = 30

// companyTruncateLimit 은 D-day 마크의 회사명 표시 글자 수.
const companyTruncateLimit = 3

// DDayMark 는 날짜 셀에 붙는 가장 급한 마감 표시.
type DDayMark struct {
	Label   string
	Company string
}

// DayEvent 는 날짜 셀 팝오버에 표시되는 지원 이벤트.
// Stage 는 면접 단계 라벨이거나 일반 마감이면 "마감".
type DayEvent struct {
	Company string
	Stage   string
}

// MonthCell 은 달력 그리드 한 칸의 표시 데이터.
type MonthCell struct {
	dateutil.GridCell
	DDay      *DDayMark
	Schedules []*model.Schedule
	Events    []DayEvent
}

// Service 는 일정 CRUD와 달력 뷰 조립을 담당한다.
type Service struct {
	scheduleRepo repository.ScheduleRepository
	appRepo      repository.ApplicationRepository
}

// NewService 는 Service를 생성한다.
func NewService(scheduleRepo repository.ScheduleRepository, appRepo repository.ApplicationRepository) *Service {
	return &Service{scheduleRepo: scheduleRepo, appRepo: appRepo}
}

// ListMonth 는 지정 월의 일정을 날짜 오름차순으로 반환한다.
func (s *Service) ListMonth(ctx context.Context, userID string, year, month int) ([]*model.Schedule, error) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1)

	schedules, err := s.scheduleRepo.ListByDateRange(ctx, userID,
		dateutil.Format(first), dateutil.Format(last))
	if err != nil {
		return nil, fmt.Errorf("월간 일정 조회에 실패했습니다: %w", err)
	}

	return schedules, nil
}

// Create 는 일정을 생성한다.
func (s *Service) Create(ctx context.Context, userID, title, date string) (*model.Schedule, error) {
	if title == "" {
		return nil, model.NewInvalidRequestError("제목은 필수입니다")
	}
	if _, err := dateutil.Parse(date); err != nil {
		return nil, model.NewInvalidDateError(date)
	}

	schedule := &model.Schedule{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Date:      date,
		CreatedAt: time.Now(),
	}
	if err := s.scheduleRepo.Create(ctx, schedule); err != nil {
		return nil, fmt.Errorf("일정 생성에 실패했습니다: %w", err)
	}

	return schedule, nil
}

// Delete 는 일정을 삭제한다.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	schedule, err := s.scheduleRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("일정 조회에 실패했습니다: %w", err)
	}
	if schedule == nil || schedule.UserID != userID {
		return model.NewScheduleNotFoundError(id)
	}
	if err := s.scheduleRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("일정 삭제에 실패했습니다: %w", err)
	}
	return nil
}

// MonthView 는 달력 그리드에 일정·D-day 마크·지원 이벤트를 얹어 반환한다.
// IsToday 판정과 D-day 계산 기준은 표시 중인 달이 아니라 reference 당일이다.
func (s *Service) MonthView(ctx context.Context, userID string, year, month int, reference time.Time) ([]MonthCell, error) {
	schedules, err := s.ListMonth(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}

	apps, err := s.appRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("지원 내역 일람 조회에 실패했습니다: %w", err)
	}

	ddayMap, err := ddayMarks(apps, reference)
	if err != nil {
		return nil, err
	}

	schedulesByDate := make(map[string][]*model.Schedule)
	for _, schedule := range schedules {
		schedulesByDate[schedule.Date] = append(schedulesByDate[schedule.Date], schedule)
	}

	eventsByDate := applicationEvents(apps)

	grid := dateutil.MonthGrid(year, time.Month(month), reference)
	cells := make([]MonthCell, 0, len(grid))
	for _, gc := range grid {
		cell := MonthCell{GridCell: gc}
		if gc.InMonth {
			if mark, ok := ddayMap[gc.Date]; ok {
				cell.DDay = &mark
			}
			cell.Schedules = schedulesByDate[gc.Date]
			cell.Events = eventsByDate[gc.Date]
		}
		cells = append(cells, cell)
	}

	return cells, nil
}

// ddayMarks 는 마감이 30일 이내인 지원 내역의 날짜별 D-day 마크를 만든다.
// 같은 날짜에 여러 건이면 남은 일수가 가장 적은 건이 이긴다.
// rejected/accepted 는 제외된다.
func ddayMarks(apps []*model.Application, reference time.Time) (map[string]DDayMark, error) {
	type candidate struct {
		mark DDayMark
		days int
	}
	best := make(map[string]candidate)

	for _, app := range apps {
		if app.Status == model.ApplicationStatusRejected || app.Status == model.ApplicationStatusAccepted {
			continue
		}
		days, ok, err := dateutil.CalculateDDay(app.Deadline, reference)
		if err != nil {
			return nil, err
		}
		if !ok || days < 0 || days > DDayWindow {
			continue
		}

		label := "D-Day"
		if days > 0 {
			label = fmt.Sprintf("D-%d", days)
		}

		mark := DDayMark{Label: label, Company: truncateCompany(app.Company)}
		if existing, found := best[*app.Deadline]; !found || days < existing.days {
			best[*app.Deadline] = candidate{mark: mark, days: days}
		}
	}

	marks := make(map[string]DDayMark, len(best))
	for date, c := range best {
		marks[date] = c.mark
	}
	return marks, nil
}

// applicationEvents 는 마감일별 지원 이벤트를 만든다.
// 면접 단계 라벨이면 그 라벨, 아니면 "마감"으로 표시된다.
func applicationEvents(apps []*model.Application) map[string][]DayEvent {
	events := make(map[string][]DayEvent)
	for _, app := range apps {
		if app.Status == model.ApplicationStatusRejected || app.Status == model.ApplicationStatusAccepted {
			continue
		}
		if app.Deadline == nil || *app.Deadline == "" {
			continue
		}
		events[*app.Deadline] = append(events[*app.Deadline], DayEvent{
			Company: app.Company,
			Stage:   stageLabel(app.Status),
		})
	}
	return events
}

// stageLabel 은 면접 단계 상태를 그대로 라벨로 쓰고 그 외는 "마감"으로 한다.
func stageLabel(status model.ApplicationStatus) string {
	switch status {
	case model.InterviewStageAptitude, model.InterviewStageAI,
		model.InterviewStageFirst, model.InterviewStageSecond:
		return string(status)
	}
	return "마감"
}

// truncateCompany 는 회사명이 3글자를 넘으면 앞 3글자 + ".." 로 줄인다.
func truncateCompany(company string) string {
	runes := []rune(company)
	if len(runes) <= companyTruncateLimit {
		return company
	}
	return string(runes[:companyTruncateLimit]) + ".."
}
