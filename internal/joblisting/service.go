package joblisting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jiwoolab/track/internal/application"
	"github.com/jiwoolab/track/internal/dateutil"
	"github.com/jiwoolab/track/internal/model"
	"github.com/jiwoolab/track/internal/repository"
)

// AutoMarker 는 공고 추가 시 당일 루틴을 자동 완료 처리한다.
type AutoMarker interface {
	MarkAutoCheck(ctx context.Context, userID, date, key string) (*model.DailyRoutine, error)
}

// CreateInput 은 공고 생성 입력. 상태는 항상 "Not applied"로 시작한다.
type CreateInput struct {
	Company     string
	Position    string
	Location    string
	Industry    string
	CompanySize *model.CompanySize
	Deadline    *string
	JobPostURL  string
}

// UpdateInput 은 공고 갱신 입력. 전체 필드 치환.
type UpdateInput struct {
	Company     string
	Position    string
	Location    string
	Industry    string
	CompanySize *model.CompanySize
	Status      model.ListingStatus
	Deadline    *string
	JobPostURL  string
}

// CalendarDay 는 캘린더 한 칸의 공고 마감 표시.
type CalendarDay struct {
	Date      string
	Companies []string
	Overflow  int
	Listings  []*model.JobListing
}

// Service 는 채용 공고의 CRUD·필터·캘린더 집계·지원 전환을 담당한다.
type Service struct {
	listingRepo repository.JobListingRepository
	appRepo     repository.ApplicationRepository
	autoMarker  AutoMarker
}

// NewService 는 Service를 생성한다.
func NewService(listingRepo repository.JobListingRepository, appRepo repository.ApplicationRepository, autoMarker AutoMarker) *Service {
	return &Service{
		listingRepo: listingRepo,
		appRepo:     appRepo,
		autoMarker:  autoMarker,
	}
}

// List 는 필터 조건에 맞는 공고를 생성일 내림차순으로 반환한다.
func (s *Service) List(ctx context.Context, userID string, filter Filter) ([]*model.JobListing, error) {
	listings, err := s.listingRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("채용 공고 일람 조회에 실패했습니다: %w", err)
	}
	return filter.Apply(listings), nil
}

// Create 는 공고를 생성하고 당일 job_listing 루틴을 자동 완료 처리한다.
// 루틴 기록 실패는 공고 생성을 되돌리지 않는다.
func (s *Service) Create(ctx context.Context, userID string, input CreateInput) (*model.JobListing, error) {
	if input.Company == "" || input.Position == "" {
		return nil, model.NewInvalidRequestError("회사명과 직무는 필수입니다")
	}
	if input.CompanySize != nil && !model.ValidCompanySize(*input.CompanySize) {
		return nil, model.NewInvalidCompanySizeError(string(*input.CompanySize))
	}
	if err := validateDeadline(input.Deadline); err != nil {
		return nil, err
	}

	now := time.Now()
	listing := &model.JobListing{
		ID:          uuid.NewString(),
		UserID:      userID,
		Company:     input.Company,
		Position:    input.Position,
		Location:    input.Location,
		Industry:    input.Industry,
		CompanySize: input.CompanySize,
		Status:      model.ListingStatusNotApplied,
		Deadline:    input.Deadline,
		JobPostURL:  input.JobPostURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.listingRepo.Create(ctx, listing); err != nil {
		return nil, fmt.Errorf("채용 공고 생성에 실패했습니다: %w", err)
	}

	if _, err := s.autoMarker.MarkAutoCheck(ctx, userID, dateutil.Format(now), model.RoutineJobListing); err != nil {
		return listing, fmt.Errorf("루틴 자동 완료 기록에 실패했습니다: %w", err)
	}

	return listing, nil
}

// Update 는 공고를 전체 필드 치환으로 갱신한다.
// 상태 셀렉터로 "Applied"를 직접 지정하는 것은 표시 플래그일 뿐
// 지원 전환의 부수 효과를 일으키지 않는다.
func (s *Service) Update(ctx context.Context, userID, id string, input UpdateInput) (*model.JobListing, error) {
	listing, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if input.Company == "" || input.Position == "" {
		return nil, model.NewInvalidRequestError("회사명과 직무는 필수입니다")
	}
	if input.CompanySize != nil && !model.ValidCompanySize(*input.CompanySize) {
		return nil, model.NewInvalidCompanySizeError(string(*input.CompanySize))
	}
	if input.Status != model.ListingStatusNotApplied && input.Status != model.ListingStatusApplied {
		return nil, model.NewInvalidStatusError(string(input.Status))
	}
	if err := validateDeadline(input.Deadline); err != nil {
		return nil, err
	}

	listing.Company = input.Company
	listing.Position = input.Position
	listing.Location = input.Location
	listing.Industry = input.Industry
	listing.CompanySize = input.CompanySize
	listing.Status = input.Status
	listing.Deadline = input.Deadline
	listing.JobPostURL = input.JobPostURL
	listing.UpdatedAt = time.Now()

	if err := s.listingRepo.Update(ctx, listing); err != nil {
		return nil, fmt.Errorf("채용 공고 갱신에 실패했습니다: %w", err)
	}

	return listing, nil
}

// Delete 는 공고를 삭제한다.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.findOwned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.listingRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("채용 공고 삭제에 실패했습니다: %w", err)
	}
	return nil
}

// MoveToApplications 는 공고를 지원 내역으로 전환한다.
// 지원 내역을 "서류 접수"/진행률 10으로 만들고 원 공고를 삭제한다.
// 상태는 마감일이 있으면 active, 없으면 reviewing.
func (s *Service) MoveToApplications(ctx context.Context, userID, id string) (*model.Application, error) {
	listing, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	status := model.ApplicationStatusActive
	if listing.Deadline == nil || *listing.Deadline == "" {
		status = model.ApplicationStatusReviewing
	}

	progress, _ := application.ProgressFor(application.InitialStage)
	app := &model.Application{
		ID:        uuid.NewString(),
		UserID:    userID,
		Company:   listing.Company,
		Position:  listing.Position,
		Stage:     application.InitialStage,
		Progress:  progress,
		Deadline:  listing.Deadline,
		AppliedAt: now,
		Status:    status,
		URL:       listing.JobPostURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("지원 내역 생성에 실패했습니다: %w", err)
	}
	if err := s.listingRepo.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("채용 공고 삭제에 실패했습니다: %w", err)
	}

	return app, nil
}

// CalendarMonth 는 지정 월에 마감되는 공고를 날짜별로 집계한다.
func (s *Service) CalendarMonth(ctx context.Context, userID string, year, month int) (map[string]CalendarDay, error) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1)

	listings, err := s.listingRepo.ListByDeadlineRange(ctx, userID,
		dateutil.Format(first), dateutil.Format(last))
	if err != nil {
		return nil, fmt.Errorf("월간 공고 조회에 실패했습니다: %w", err)
	}

	days := make(map[string]CalendarDay)
	for date, group := range GroupByDeadline(listings) {
		companies, overflow := DayBadges(group)
		days[date] = CalendarDay{
			Date:      date,
			Companies: companies,
			Overflow:  overflow,
			Listings:  group,
		}
	}

	return days, nil
}

// ThisWeekCount 는 이번 주 월요일 이후에 추가된 공고 수를 반환한다.
func (s *Service) ThisWeekCount(ctx context.Context, userID string, reference time.Time) (int, error) {
	count, err := s.listingRepo.CountCreatedSince(ctx, userID, dateutil.WeekStart(reference))
	if err != nil {
		return 0, fmt.Errorf("주간 공고 건수 조회에 실패했습니다: %w", err)
	}
	return count, nil
}

// Upcoming 은 오늘부터 7일 이내에 마감되는 공고를 반환한다.
func (s *Service) Upcoming(ctx context.Context, userID string, reference time.Time) ([]*model.JobListing, error) {
	today := dateutil.Truncate(reference)
	until := today.AddDate(0, 0, 7)

	listings, err := s.listingRepo.ListByDeadlineRange(ctx, userID,
		dateutil.Format(today), dateutil.Format(until))
	if err != nil {
		return nil, fmt.Errorf("마감 임박 공고 조회에 실패했습니다: %w", err)
	}

	return listings, nil
}

// findOwned 는 공고를 찾고 소유자를 확인한다.
func (s *Service) findOwned(ctx context.Context, userID, id string) (*model.JobListing, error) {
	listing, err := s.listingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("채용 공고 조회에 실패했습니다: %w", err)
	}
	if listing == nil || listing.UserID != userID {
		return nil, model.NewListingNotFoundError(id)
	}
	return listing, nil
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
