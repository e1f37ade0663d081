package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jiwoolab/track/internal/dateutil"
	"github.com/jiwoolab/track/internal/model"
	"github.com/jiwoolab/track/internal/repository"
)

// allowedStatuses 는 상태 셀렉터가 받을 수 있는 값.
// 기본 4상태와 면접 단계 라벨 4종.
var allowedStatuses = map[model.ApplicationStatus]bool{
	model.ApplicationStatusActive:    true,
	model.ApplicationStatusReviewing: true,
	model.ApplicationStatusRejected:  true,
	model.ApplicationStatusAccepted:  true,
	model.InterviewStageAptitude:     true,
	model.InterviewStageAI:           true,
	model.InterviewStageFirst:        true,
	model.InterviewStageSecond:       true,
}

// CreateInput 은 지원 내역 생성 입력.
type CreateInput struct {
	Company  string
	Position string
	Stage    string
	Deadline *string
	URL      string
}

// UpdateInput 은 지원 내역 갱신 입력. 전체 필드 치환.
type UpdateInput struct {
	Company  string
	Position string
	Stage    string
	Deadline *string
	Status   model.ApplicationStatus
	URL      string
}

// Service 는 지원 내역의 CRUD와 상태 전이를 담당한다.
type Service struct {
	appRepo repository.ApplicationRepository
}

// NewService 는 Service를 생성한다.
func NewService(appRepo repository.ApplicationRepository) *Service {
	return &Service{appRepo: appRepo}
}

// List 는 사용자의 지원 내역을 applied_at 내림차순으로 반환한다.
func (s *Service) List(ctx context.Context, userID string) ([]*model.Application, error) {
	apps, err := s.appRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("지원 내역 일람 조회에 실패했습니다: %w", err)
	}
	return apps, nil
}

// Create 는 지원 내역을 생성한다.
// 진행률은 단계 사다리에서 결정되며 직접 지정할 수 없다.
func (s *Service) Create(ctx context.Context, userID string, input CreateInput) (*model.Application, error) {
	if input.Company == "" || input.Position == "" {
		return nil, model.NewInvalidRequestError("회사명과 직무는 필수입니다")
	}
	progress, ok := ProgressFor(input.Stage)
	if !ok {
		return nil, model.NewInvalidStageError(input.Stage)
	}
	if err := validateDeadline(input.Deadline); err != nil {
		return nil, err
	}

	now := time.Now()
	status := model.ApplicationStatusActive
	if input.Deadline == nil || *input.Deadline == "" {
		status = model.ApplicationStatusReviewing
	}

	app := &model.Application{
		ID:        uuid.NewString(),
		UserID:    userID,
		Company:   input.Company,
		Position:  input.Position,
		Stage:     input.Stage,
		Progress:  progress,
		Deadline:  input.Deadline,
		AppliedAt: now,
		Status:    status,
		URL:       input.URL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("지원 내역 생성에 실패했습니다: %w", err)
	}

	return app, nil
}

// Update 는 지원 내역을 전체 필드 치환으로 갱신한다.
func (s *Service) Update(ctx context.Context, userID, id string, input UpdateInput) (*model.Application, error) {
	app, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if input.Company == "" || input.Position == "" {
		return nil, model.NewInvalidRequestError("회사명과 직무는 필수입니다")
	}
	progress, ok := ProgressFor(input.Stage)
	if !ok {
		return nil, model.NewInvalidStageError(input.Stage)
	}
	if !allowedStatuses[input.Status] {
		return nil, model.NewInvalidStatusError(string(input.Status))
	}
	if err := validateDeadline(input.Deadline); err != nil {
		return nil, err
	}

	app.Company = input.Company
	app.Position = input.Position
	app.Stage = input.Stage
	app.Progress = progress
	app.Deadline = input.Deadline
	app.Status = input.Status
	app.URL = input.URL
	app.UpdatedAt = time.Now()

	if err := s.appRepo.Update(ctx, app); err != nil {
		return nil, fmt.Errorf("지원 내역 갱신에 실패했습니다: %w", err)
	}

	return app, nil
}

// Delete 는 지원 내역을 삭제한다.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.findOwned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.appRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("지원 내역 삭제에 실패했습니다: %w", err)
	}
	return nil
}

// Reject 는 지원 내역을 불합격 상태로 전이한다.
// 불합격은 표시상 종착 상태지만 Restore로 되돌릴 수 있다.
func (s *Service) Reject(ctx context.Context, userID, id string) (*model.Application, error) {
	return s.transition(ctx, userID, id, model.ApplicationStatusRejected)
}

// Restore 는 불합격 상태를 active로 되돌린다.
func (s *Service) Restore(ctx context.Context, userID, id string) (*model.Application, error) {
	return s.transition(ctx, userID, id, model.ApplicationStatusActive)
}

// Accept 는 최종 단계에 도달한 지원만 합격 상태로 전이한다.
func (s *Service) Accept(ctx context.Context, userID, id string) (*model.Application, error) {
	app, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if app.Stage != FinalStage {
		return nil, model.NewNotFinalStageError(app.Stage)
	}

	app.Status = model.ApplicationStatusAccepted
	app.UpdatedAt = time.Now()
	if err := s.appRepo.Update(ctx, app); err != nil {
		return nil, fmt.Errorf("지원 내역 갱신에 실패했습니다: %w", err)
	}

	return app, nil
}

// WeeklyCount 는 이번 주 [월요일 00:00, 일요일 23:59:59.999…]에
// 지원한 건수의 통계를 계산한다.
func (s *Service) WeeklyCount(ctx context.Context, userID string, reference time.Time) (WeeklyStat, error) {
	weekStart := dateutil.WeekStart(reference)
	weekEnd := dateutil.WeekEnd(reference)

	count, err := s.appRepo.CountAppliedBetween(ctx, userID, weekStart, weekEnd)
	if err != nil {
		return WeeklyStat{}, fmt.Errorf("주간 지원 건수 조회에 실패했습니다: %w", err)
	}

	return NewWeeklyStat(count), nil
}

// UpcomingDeadlines 는 오늘부터 7일 이내에 마감되는 지원 내역을 반환한다.
// rejected/accepted 상태는 제외된다.
func (s *Service) UpcomingDeadlines(ctx context.Context, userID string, reference time.Time) ([]*model.Application, error) {
	today := dateutil.Truncate(reference)
	until := today.AddDate(0, 0, 7)

	apps, err := s.appRepo.ListByDeadlineRange(ctx, userID,
		dateutil.Format(today), dateutil.Format(until))
	if err != nil {
		return nil, fmt.Errorf("마감 임박 지원 조회에 실패했습니다: %w", err)
	}

	return apps, nil
}

// transition 은 소유 확인 후 상태만 바꾼다.
func (s *Service) transition(ctx context.Context, userID, id string, status model.ApplicationStatus) (*model.Application, error) {
	app, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	app.Status = status
	app.UpdatedAt = time.Now()
	if err := s.appRepo.Update(ctx, app); err != nil {
		return nil, fmt.Errorf("지원 내역 갱신에 실패했습니다: %w", err)
	}

	return app, nil
}

// findOwned 는 지원 내역을 찾고 소유자를 확인한다.
// 없거나 다른 사용자의 것이면 동일한 not found 에러를 반환한다.
func (s *Service) findOwned(ctx context.Context, userID, id string) (*model.Application, error) {
	app, err := s.appRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("지원 내역 조회에 실패했습니다: %w", err)
	}
	if app == nil || app.UserID != userID {
		return nil, model.NewApplicationNotFoundError(id)
	}
	return app, nil
}

func validateDeadline(deadline *string) error {
	if deadline == nil || *deadline == "" {
		return nil
	}
	if _, err := dateutil.Parse(*deadline); err != nil {
		return model.NewInvalidDateError(*deadline)
	}
	return nil
}
