package joblisting

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jiwoolab/track/internal/model"
)

func strPtr(s string) *string { return &s }

func sizePtr(s model.CompanySize) *model.CompanySize { return &s }

// mockListingRepo 는 JobListingRepository의 테스트용 구현.
type mockListingRepo struct {
	findByIDFn            func(ctx context.Context, id string) (*model.JobListing, error)
	listByUserIDFn        func(ctx context.Context, userID string) ([]*model.JobListing, error)
	listByDeadlineRangeFn func(ctx context.Context, userID, from, to string) ([]*model.JobListing, error)
	countCreatedSinceFn   func(ctx context.Context, userID string, since time.Time) (int, error)
	createFn              func(ctx context.Context, listing *model.JobListing) error
	updateFn              func(ctx context.Context, listing *model.JobListing) error
	deleteFn              func(ctx context.Context, id string) error
	deleteByUserIDFn      func(ctx context.Context, userID string) error
}

func (m *mockListingRepo) FindByID(ctx context.Context, id string) (*model.JobListing, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockListingRepo) ListByUserID(ctx context.Context, userID string) ([]*model.JobListing, error) {
	if m.listByUserIDFn != nil {
		return m.listByUserIDFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockListingRepo) ListByDeadlineRange(ctx context.Context, userID, from, to string) ([]*model.JobListing, error) {
	if m.listByDeadlineRangeFn != nil {
		return m.listByDeadlineRangeFn(ctx, userID, from, to)
	}
	return nil, nil
}

func (m *mockListingRepo) CountCreatedSince(ctx context.Context, userID string, since time.Time) (int, error) {
	if m.countCreatedSinceFn != nil {
		return m.countCreatedSinceFn(ctx, userID, since)
	}
	return 0, nil
}

func (m *mockListingRepo) Create(ctx context.Context, listing *model.JobListing) error {
	if m.createFn != nil {
		return m.createFn(ctx, listing)
	}
	return nil
}

func (m *mockListingRepo) Update(ctx context.Context, listing *model.JobListing) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, listing)
	}
	return nil
}

func (m *mockListingRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockListingRepo) DeleteByUserID(ctx context.Context, userID string) error {
	if m.deleteByUserIDFn != nil {
		return m.deleteByUserIDFn(ctx, userID)
	}
	return nil
}

// mockAppRepo 는 전환 테스트용 ApplicationRepository 구현.
type mockAppRepo struct {
	createFn func(ctx context.Context, app *model.Application) error
}

func (m *mockAppRepo) FindByID(ctx context.Context, id string) (*model.Application, error) {
	return nil, nil
}

func (m *mockAppRepo) ListByUserID(ctx context.Context, userID string) ([]*model.Application, error) {
	return nil, nil
}

func (m *mockAppRepo) ListByDeadlineRange(ctx context.Context, userID, from, to string) ([]*model.Application, error) {
	return nil, nil
}

func (m *mockAppRepo) CountAppliedBetween(ctx context.Context, userID string, from, to time.Time) (int, error) {
	return 0, nil
}

func (m *mockAppRepo) Create(ctx context.Context, app *model.Application) error {
	if m.createFn != nil {
		return m.createFn(ctx, app)
	}
	return nil
}

func (m *mockAppRepo) Update(ctx context.Context, app *model.Application) error { return nil }

func (m *mockAppRepo) Delete(ctx context.Context, id string) error { return nil }

func (m *mockAppRepo) DeleteByUserID(ctx context.Context, userID string) error { return nil }

// mockAutoMarker 는 호출된 루틴 키를 기록한다.
type mockAutoMarker struct {
	calls []string
}

func (m *mockAutoMarker) MarkAutoCheck(ctx context.Context, userID, date, key string) (*model.DailyRoutine, error) {
	m.calls = append(m.calls, key)
	return &model.DailyRoutine{RoutineKey: key, IsCompleted: true}, nil
}

func TestFilter_Apply(t *testing.T) {
	startup := model.CompanySizeStartup
	large := model.CompanySizeLarge
	listings := []*model.JobListing{
		{Company: "Toss Bank", Position: "백엔드", CompanySize: &startup},
		{Company: "네이버", Position: "백엔드", CompanySize: &large},
		{Company: "toss payments", Position: "프론트엔드", CompanySize: &startup},
		{Company: "카카오", Position: "백엔드"},
	}

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"no conditions", Filter{}, 4},
		{"company substring case-insensitive", Filter{Company: "TOSS"}, 2},
		{"position exact", Filter{Position: "백엔드"}, 3},
		{"company size exact", Filter{CompanySize: "스타트업"}, 2},
		{"size filter excludes nil size", Filter{CompanySize: "대기업"}, 1},
		{"combined", Filter{Company: "toss", Position: "백엔드"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Apply(listings); len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestDayBadges_TwoPlusOverflow(t *testing.T) {
	listings := []*model.JobListing{
		{Company: "토스"},
		{Company: "네이버"},
		{Company: "카카오"},
		{Company: "쿠팡"},
	}

	companies, overflow := DayBadges(listings)
	if len(companies) != 2 {
		t.Errorf("len(companies) = %d, want 2", len(companies))
	}
	if overflow != 2 {
		t.Errorf("overflow = %d, want 2", overflow)
	}

	companies, overflow = DayBadges(listings[:2])
	if len(companies) != 2 || overflow != 0 {
		t.Errorf("DayBadges(2) = (%d, %d), want (2, 0)", len(companies), overflow)
	}
}

func TestCreate_ForcesNotAppliedAndMarksRoutine(t *testing.T) {
	var created *model.JobListing
	marker := &mockAutoMarker{}
	repo := &mockListingRepo{
		createFn: func(ctx context.Context, listing *model.JobListing) error {
			created = listing
			return nil
		},
	}
	svc := NewService(repo, &mockAppRepo{}, marker)

	listing, err := svc.Create(context.Background(), "user-1", CreateInput{
		Company:     "토스",
		Position:    "백엔드",
		CompanySize: sizePtr(model.CompanySizeStartup),
		Deadline:    strPtr("2026-03-20"),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if created == nil {
		t.Fatal("expected Create to be called")
	}
	if listing.Status != model.ListingStatusNotApplied {
		t.Errorf("Status = %q, want Not applied", listing.Status)
	}
	if len(marker.calls) != 1 || marker.calls[0] != model.RoutineJobListing {
		t.Errorf("auto-mark calls = %v, want [job_listing]", marker.calls)
	}
}

func TestCreate_InvalidCompanySize_ReturnsError(t *testing.T) {
	svc := NewService(&mockListingRepo{}, &mockAppRepo{}, &mockAutoMarker{})

	_, err := svc.Create(context.Background(), "user-1", CreateInput{
		Company:     "토스",
		Position:    "백엔드",
		CompanySize: sizePtr("유니콘"),
	})
	if err == nil {
		t.Fatal("expected error for invalid company size")
	}
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeInvalidCompanySize {
		t.Fatalf("error = %v, want code %s", err, model.ErrCodeInvalidCompanySize)
	}
	if !strings.Contains(apiErr.Message, "유니콘") {
		t.Errorf("message %q should name the rejected size", apiErr.Message)
	}
}

func TestMoveToApplications_ConvertsAndDeletesListing(t *testing.T) {
	deleted := ""
	var createdApp *model.Application
	listingRepo := &mockListingRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.JobListing, error) {
			return &model.JobListing{
				ID:         id,
				UserID:     "user-1",
				Company:    "토스",
				Position:   "백엔드",
				Deadline:   strPtr("2026-03-01"),
				JobPostURL: "https://toss.im/career/1",
				Status:     model.ListingStatusNotApplied,
			}, nil
		},
		deleteFn: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	appRepo := &mockAppRepo{
		createFn: func(ctx context.Context, app *model.Application) error {
			createdApp = app
			return nil
		},
	}
	svc := NewService(listingRepo, appRepo, &mockAutoMarker{})

	app, err := svc.MoveToApplications(context.Background(), "user-1", "listing-1")
	if err != nil {
		t.Fatalf("MoveToApplications returned error: %v", err)
	}

	if createdApp == nil {
		t.Fatal("expected application to be created")
	}
	if app.Stage != "서류 접수" {
		t.Errorf("Stage = %q, want 서류 접수", app.Stage)
	}
	if app.Progress != 10 {
		t.Errorf("Progress = %d, want 10", app.Progress)
	}
	if app.Status != model.ApplicationStatusActive {
		t.Errorf("Status = %q, want active (deadline present)", app.Status)
	}
	if *app.Deadline != "2026-03-01" {
		t.Errorf("Deadline = %q, want 2026-03-01", *app.Deadline)
	}
	if deleted != "listing-1" {
		t.Errorf("deleted listing = %q, want listing-1", deleted)
	}
}

func TestMoveToApplications_NoDeadline_StartsReviewing(t *testing.T) {
	listingRepo := &mockListingRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.JobListing, error) {
			return &model.JobListing{
				ID: id, UserID: "user-1", Company: "네이버", Position: "백엔드",
			}, nil
		},
	}
	svc := NewService(listingRepo, &mockAppRepo{}, &mockAutoMarker{})

	app, err := svc.MoveToApplications(context.Background(), "user-1", "listing-1")
	if err != nil {
		t.Fatalf("MoveToApplications returned error: %v", err)
	}
	if app.Status != model.ApplicationStatusReviewing {
		t.Errorf("Status = %q, want reviewing", app.Status)
	}
}

func TestCalendarMonth_GroupsByDeadline(t *testing.T) {
	repo := &mockListingRepo{
		listByDeadlineRangeFn: func(ctx context.Context, userID, from, to string) ([]*model.JobListing, error) {
			if from != "2026-03-01" || to != "2026-03-31" {
				t.Errorf("range = [%s, %s], want [2026-03-01, 2026-03-31]", from, to)
			}
			return []*model.JobListing{
				{Company: "토스", Deadline: strPtr("2026-03-10")},
				{Company: "네이버", Deadline: strPtr("2026-03-10")},
				{Company: "카카오", Deadline: strPtr("2026-03-10")},
				{Company: "쿠팡", Deadline: strPtr("2026-03-15")},
			}, nil
		},
	}
	svc := NewService(repo, &mockAppRepo{}, &mockAutoMarker{})

	days, err := svc.CalendarMonth(context.Background(), "user-1", 2026, 3)
	if err != nil {
		t.Fatalf("CalendarMonth returned error: %v", err)
	}

	day, ok := days["2026-03-10"]
	if !ok {
		t.Fatal("expected 2026-03-10 cell")
	}
	if len(day.Companies) != 2 || day.Overflow != 1 {
		t.Errorf("cell = (%d companies, +%d), want (2, +1)", len(day.Companies), day.Overflow)
	}
	if _, ok := days["2026-03-15"]; !ok {
		t.Error("expected 2026-03-15 cell")
	}
}

func TestThisWeekCount_UsesMondayStart(t *testing.T) {
	// 2026-03-11은 수요일.
	reference := time.Date(2026, 3, 11, 9, 0, 0, 0, time.Local)
	repo := &mockListingRepo{
		countCreatedSinceFn: func(ctx context.Context, userID string, since time.Time) (int, error) {
			want := time.Date(2026, 3, 9, 0, 0, 0, 0, time.Local)
			if !since.Equal(want) {
				t.Errorf("since = %v, want %v", since, want)
			}
			return 3, nil
		},
	}
	svc := NewService(repo, &mockAppRepo{}, &mockAutoMarker{})

	count, err := svc.ThisWeekCount(context.Background(), "user-1", reference)
	if err != nil {
		t.Fatalf("ThisWeekCount returned error: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}
