package user

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/jiwoolab/track/internal/logger"
	"github.com/jiwoolab/track/internal/model"
	"github.com/jiwoolab/track/internal/repository"
)

// recorder 는 탈퇴 캐스케이드의 삭제 호출 순서를 기록한다.
type recorder struct {
	order []string
	fail  string // 이 단계에서 에러를 돌려준다
}

func (r *recorder) hit(name string) error {
	r.order = append(r.order, name)
	if r.fail == name {
		return errors.New("connection refused")
	}
	return nil
}

type stubUserRepo struct {
	rec  *recorder
	user *model.User
}

func (s *stubUserRepo) FindByID(_ context.Context, _ string) (*model.User, error) {
	return s.user, nil
}

func (s *stubUserRepo) CreateWithIdentity(_ context.Context, _ *model.User, _ *model.Identity) error {
	return nil
}

func (s *stubUserRepo) DeleteByID(_ context.Context, _ string) error {
	return s.rec.hit("user")
}

type stubSessionRepo struct {
	repository.SessionRepository
	rec *recorder
}

func (s *stubSessionRepo) DeleteByUserID(_ context.Context, _ string) error {
	return s.rec.hit("sessions")
}

type stubListingRepo struct {
	repository.JobListingRepository
	rec *recorder
}

func (s *stubListingRepo) DeleteByUserID(_ context.Context, _ string) error {
	return s.rec.hit("job_listings")
}

type stubAppRepo struct {
	repository.ApplicationRepository
	rec *recorder
}

func (s *stubAppRepo) DeleteByUserID(_ context.Context, _ string) error {
	return s.rec.hit("applications")
}

type stubScheduleRepo struct {
	repository.ScheduleRepository
	rec *recorder
}

func (s *stubScheduleRepo) DeleteByUserID(_ context.Context, _ string) error {
	return s.rec.hit("schedules")
}

type stubRoutineRepo struct {
	repository.DailyRoutineRepository
	rec *recorder
}

func (s *stubRoutineRepo) DeleteByUserID(_ context.Context, _ string) error {
	return s.rec.hit("daily_routines")
}

type stubScrapRepo struct {
	repository.NewsScrapRepository
	rec *recorder
}

func (s *stubScrapRepo) DeleteByUserID(_ context.Context, _ string) error {
	return s.rec.hit("news_scraps")
}

type stubTimeLogRepo struct {
	repository.TimeLogRepository
	rec *recorder
}

func (s *stubTimeLogRepo) DeleteByUserID(_ context.Context, _ string) error {
	return s.rec.hit("time_logs")
}

type stubGoalRepo struct {
	repository.WeeklyGoalRepository
	rec *recorder
}

func (s *stubGoalRepo) DeleteByUserID(_ context.Context, _ string) error {
	return s.rec.hit("weekly_goals")
}

type stubStickerRepo struct {
	repository.StickerRepository
	rec *recorder
}

func (s *stubStickerRepo) DeleteByUserID(_ context.Context, _ string) error {
	return s.rec.hit("stickers")
}

func newTestService(rec *recorder, user *model.User) *Service {
	repos := Repos{
		Users:        &stubUserRepo{rec: rec, user: user},
		Sessions:     &stubSessionRepo{rec: rec},
		JobListings:  &stubListingRepo{rec: rec},
		Applications: &stubAppRepo{rec: rec},
		Schedules:    &stubScheduleRepo{rec: rec},
		Routines:     &stubRoutineRepo{rec: rec},
		NewsScraps:   &stubScrapRepo{rec: rec},
		TimeLogs:     &stubTimeLogRepo{rec: rec},
		WeeklyGoals:  &stubGoalRepo{rec: rec},
		Stickers:     &stubStickerRepo{rec: rec},
	}
	return NewService(repos, logger.Setup(io.Discard))
}

func TestWithdraw_DeletesEverythingInOrder(t *testing.T) {
	rec := &recorder{}
	svc := newTestService(rec, &model.User{ID: "user-1"})

	if err := svc.Withdraw(context.Background(), "user-1"); err != nil {
		t.Fatalf("Withdraw() error = %v", err)
	}

	want := []string{
		"job_listings", "applications", "schedules", "daily_routines",
		"news_scraps", "time_logs", "weekly_goals", "stickers",
		"sessions", "user",
	}
	if len(rec.order) != len(want) {
		t.Fatalf("삭제 호출 = %v, want %v", rec.order, want)
	}
	for i, name := range want {
		if rec.order[i] != name {
			t.Errorf("order[%d] = %s, want %s", i, rec.order[i], name)
		}
	}
}

func TestWithdraw_StopsOnFirstFailure(t *testing.T) {
	rec := &recorder{fail: "schedules"}
	svc := newTestService(rec, &model.User{ID: "user-1"})

	if err := svc.Withdraw(context.Background(), "user-1"); err == nil {
		t.Fatal("Withdraw() error = nil, want error")
	}

	for _, name := range rec.order {
		if name == "sessions" || name == "user" {
			t.Errorf("실패 이후에도 %s 삭제가 호출되었습니다", name)
		}
	}
}

func TestWithdraw_UnknownUser(t *testing.T) {
	rec := &recorder{}
	svc := newTestService(rec, nil)

	err := svc.Withdraw(context.Background(), "ghost")
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeUserNotFound {
		t.Fatalf("Withdraw() error = %v, want user not found", err)
	}
	if len(rec.order) != 0 {
		t.Errorf("삭제가 호출되었습니다: %v", rec.order)
	}
}

func TestProfile_ReturnsUser(t *testing.T) {
	svc := newTestService(&recorder{}, &model.User{ID: "user-1", Name: "김지우"})

	user, err := svc.Profile(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if user.Name != "김지우" {
		t.Errorf("Name = %s, want 김지우", user.Name)
	}
}
