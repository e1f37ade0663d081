package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jiwoolab/track/internal/model"
)

// mockApplicationRepo 는 ApplicationRepository의 테스트용 구현.
type mockApplicationRepo struct {
	findByIDFn            func(ctx context.Context, id string) (*model.Application, error)
	listByUserIDFn        func(ctx context.Context, userID string) ([]*model.Application, error)
	listByDeadlineRangeFn func(ctx context.Context, userID, from, to string) ([]*model.Application, error)
	countAppliedBetweenFn func(ctx context.Context, userID string, from, to time.Time) (int, error)
	createFn              func(ctx context.Context, app *model.Application) error
	updateFn              func(ctx context.Context, app *model.Application) error
	deleteFn              func(ctx context.Context, id string) error
	deleteByUserIDFn      func(ctx context.Context, userID string) error
}

func (m *mockApplicationRepo) FindByID(ctx context.Context, id string) (*model.Application, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockApplicationRepo) ListByUserID(ctx context.Context, userID string) ([]*model.Application, error) {
	if m.listByUserIDFn != nil {
		return m.listByUserIDFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockApplicationRepo) ListByDeadlineRange(ctx context.Context, userID, from, to string) ([]*model.Application, error) {
	if m.listByDeadlineRangeFn != nil {
		return m.listByDeadlineRangeFn(ctx, userID, from, to)
	}
	return nil, nil
}

func (m *mockApplicationRepo) CountAppliedBetween(ctx context.Context, userID string, from, to time.Time) (int, error) {
	if m.countAppliedBetweenFn != nil {
		return m.countAppliedBetweenFn(ctx, userID, from, to)
	}
	return 0, nil
}

func (m *mockApplicationRepo) Create(ctx context.Context, app *model.Application) error {
	if m.createFn != nil {
		return m.createFn(ctx, app)
	}
	return nil
}

func (m *mockApplicationRepo) Update(ctx context.Context, app *model.Application) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, app)
	}
	return nil
}

func (m *mockApplicationRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockApplicationRepo) DeleteByUserID(ctx context.Context, userID string) error {
	if m.deleteByUserIDFn != nil {
		return m.deleteByUserIDFn(ctx, userID)
	}
	return nil
}

func TestCreate_WithDeadline_StartsActive(t *testing.T) {
	var created *model.Application
	repo := &mockApplicationRepo{
		createFn: func(ctx context.Context, app *model.Application) error {
			created = app
			return nil
		},
	}
	svc := NewService(repo)

	app, err := svc.Create(context.Background(), "user-1", CreateInput{
		Company:  "토스",
		Position: "백엔드",
		Stage:    "서류 접수",
		Deadline: strPtr("2026-03-20"),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if created == nil {
		t.Fatal("expected Create to be called")
	}
	if app.Status != model.ApplicationStatusActive {
		t.Errorf("Status = %q, want active", app.Status)
	}
	if app.Progress != 10 {
		t.Errorf("Progress = %d, want 10", app.Progress)
	}
}

func TestCreate_WithoutDeadline_StartsReviewing(t *testing.T) {
	svc := NewService(&mockApplicationRepo{})

	app, err := svc.Create(context.Background(), "user-1", CreateInput{
		Company:  "네이버",
		Position: "백엔드",
		Stage:    "서류 접수",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if app.Status != model.ApplicationStatusReviewing {
		t.Errorf("Status = %q, want reviewing", app.Status)
	}
}

func TestCreate_UnknownStage_ReturnsError(t *testing.T) {
	svc := NewService(&mockApplicationRepo{})

	_, err := svc.Create(context.Background(), "user-1", CreateInput{
		Company:  "토스",
		Position: "백엔드",
		Stage:    "임원면접",
	})
	if err == nil {
		t.Fatal("expected error for unknown stage")
	}
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeInvalidStage {
		t.Fatalf("error = %v, want code %s", err, model.ErrCodeInvalidStage)
	}
	if !strings.Contains(apiErr.Message, "임원면접") {
		t.Errorf("message %q should name the rejected stage", apiErr.Message)
	}
}

func TestUpdate_SetsProgressFromStage(t *testing.T) {
	stored := &model.Application{
		ID:     "app-1",
		UserID: "user-1",
		Stage:  "서류 접수",
		Status: model.ApplicationStatusActive,
	}
	repo := &mockApplicationRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.Application, error) {
			copied := *stored
			return &copied, nil
		},
	}
	svc := NewService(repo)

	app, err := svc.Update(context.Background(), "user-1", "app-1", UpdateInput{
		Company:  "토스",
		Position: "백엔드",
		Stage:    "1차면접 합격",
		Status:   model.InterviewStageSecond,
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if app.Progress != 50 {
		t.Errorf("Progress = %d, want 50", app.Progress)
	}
	if app.Status != model.InterviewStageSecond {
		t.Errorf("Status = %q, want 2차면접", app.Status)
	}
}

func TestUpdate_OtherUsersApplication_NotFound(t *testing.T) {
	repo := &mockApplicationRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.Application, error) {
			return &model.Application{ID: id, UserID: "someone-else"}, nil
		},
	}
	svc := NewService(repo)

	_, err := svc.Update(context.Background(), "user-1", "app-1", UpdateInput{
		Company:  "토스",
		Position: "백엔드",
		Stage:    "서류 접수",
		Status:   model.ApplicationStatusActive,
	})
	if err == nil {
		t.Fatal("expected not found error for other user's application")
	}
}

func TestRejectAndRestore(t *testing.T) {
	stored := &model.Application{
		ID:     "app-1",
		UserID: "user-1",
		Stage:  "서류 접수",
		Status: model.ApplicationStatusActive,
	}
	repo := &mockApplicationRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.Application, error) {
			copied := *stored
			return &copied, nil
		},
		updateFn: func(ctx context.Context, app *model.Application) error {
			copied := *app
			stored = &copied
			return nil
		},
	}
	svc := NewService(repo)
	ctx := context.Background()

	rejected, err := svc.Reject(ctx, "user-1", "app-1")
	if err != nil {
		t.Fatalf("Reject returned error: %v", err)
	}
	if rejected.Status != model.ApplicationStatusRejected {
		t.Errorf("Status = %q, want rejected", rejected.Status)
	}

	restored, err := svc.Restore(ctx, "user-1", "app-1")
	if err != nil {
		t.Fatalf("Restore returned error: %v", err)
	}
	if restored.Status != model.ApplicationStatusActive {
		t.Errorf("Status = %q, want active", restored.Status)
	}
}

func TestAccept_OnlyAtFinalStage(t *testing.T) {
	stored := &model.Application{
		ID:     "app-1",
		UserID: "user-1",
		Stage:  "2차면접 합격",
		Status: model.ApplicationStatusActive,
	}
	repo := &mockApplicationRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.Application, error) {
			copied := *stored
			return &copied, nil
		},
		updateFn: func(ctx context.Context, app *model.Application) error {
			copied := *app
			stored = &copied
			return nil
		},
	}
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.Accept(ctx, "user-1", "app-1")
	if err == nil {
		t.Fatal("expected error when stage is not final")
	}
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeNotFinalStage {
		t.Fatalf("error = %v, want code %s", err, model.ErrCodeNotFinalStage)
	}
	if !strings.Contains(apiErr.Message, stored.Stage) {
		t.Errorf("message %q should name the current stage", apiErr.Message)
	}

	stored.Stage = FinalStage
	app, err := svc.Accept(ctx, "user-1", "app-1")
	if err != nil {
		t.Fatalf("Accept at final stage returned error: %v", err)
	}
	if app.Status != model.ApplicationStatusAccepted {
		t.Errorf("Status = %q, want accepted", app.Status)
	}
}

func TestWeeklyCount_UsesWeekBoundaries(t *testing.T) {
	// 2026-03-11은 수요일.
	reference := time.Date(2026, 3, 11, 12, 0, 0, 0, time.Local)
	repo := &mockApplicationRepo{
		countAppliedBetweenFn: func(ctx context.Context, userID string, from, to time.Time) (int, error) {
			wantFrom := time.Date(2026, 3, 9, 0, 0, 0, 0, time.Local)
			if !from.Equal(wantFrom) {
				t.Errorf("from = %v, want %v", from, wantFrom)
			}
			if to.Weekday() != time.Sunday {
				t.Errorf("to weekday = %v, want Sunday", to.Weekday())
			}
			return 1, nil
		},
	}
	svc := NewService(repo)

	stat, err := svc.WeeklyCount(context.Background(), "user-1", reference)
	if err != nil {
		t.Fatalf("WeeklyCount returned error: %v", err)
	}
	if stat.Percentage != 50 {
		t.Errorf("Percentage = %d, want 50", stat.Percentage)
	}
	if stat.Subtitle != "1개 완료! 1개 더 지원해보세요" {
		t.Errorf("Subtitle = %q", stat.Subtitle)
	}
}

func TestUpcomingDeadlines_SevenDayWindow(t *testing.T) {
	reference := time.Date(2026, 3, 9, 23, 0, 0, 0, time.Local)
	repo := &mockApplicationRepo{
		listByDeadlineRangeFn: func(ctx context.Context, userID, from, to string) ([]*model.Application, error) {
			if from != "2026-03-09" {
				t.Errorf("from = %q, want 2026-03-09", from)
			}
			if to != "2026-03-16" {
				t.Errorf("to = %q, want 2026-03-16", to)
			}
			return []*model.Application{{ID: "app-1"}}, nil
		},
	}
	svc := NewService(repo)

	apps, err := svc.UpcomingDeadlines(context.Background(), "user-1", reference)
	if err != nil {
		t.Fatalf("UpcomingDeadlines returned error: %v", err)
	}
	if len(apps) != 1 {
		t.Errorf("len = %d, want 1", len(apps))
	}
}
