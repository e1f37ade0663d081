package news

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jiwoolab/track/internal/model"
)

// mockScrapRepo 는 NewsScrapRepository의 테스트용 구현.
type mockScrapRepo struct {
	findByIDFn            func(ctx context.Context, id string) (*model.NewsScrap, error)
	listByUserIDFn        func(ctx context.Context, userID string) ([]*model.NewsScrap, error)
	countCreatedBetweenFn func(ctx context.Context, userID string, from, to time.Time) (int, error)
	createFn              func(ctx context.Context, scrap *model.NewsScrap) error
	updateFn              func(ctx context.Context, scrap *model.NewsScrap) error
	deleteFn              func(ctx context.Context, id string) error
	deleteByUserIDFn      func(ctx context.Context, userID string) error
}

func (m *mockScrapRepo) FindByID(ctx context.Context, id string) (*model.NewsScrap, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockScrapRepo) ListByUserID(ctx context.Context, userID string) ([]*model.NewsScrap, error) {
	if m.listByUserIDFn != nil {
		return m.listByUserIDFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockScrapRepo) CountCreatedBetween(ctx context.Context, userID string, from, to time.Time) (int, error) {
	if m.countCreatedBetweenFn != nil {
		return m.countCreatedBetweenFn(ctx, userID, from, to)
	}
	return 0, nil
}

func (m *mockScrapRepo) Create(ctx context.Context, scrap *model.NewsScrap) error {
	if m.createFn != nil {
		return m.createFn(ctx, scrap)
	}
	return nil
}

func (m *mockScrapRepo) Update(ctx context.Context, scrap *model.NewsScrap) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, scrap)
	}
	return nil
}

func (m *mockScrapRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockScrapRepo) DeleteByUserID(ctx context.Context, userID string) error {
	if m.deleteByUserIDFn != nil {
		return m.deleteByUserIDFn(ctx, userID)
	}
	return nil
}

// stubSanitizer 는 script 태그를 지우는 단순 새니타이저.
type stubSanitizer struct{}

func (stubSanitizer) Sanitize(rawHTML string) string {
	return strings.ReplaceAll(rawHTML, "<script>", "")
}

// mockAutoMarker 는 호출된 루틴 키를 기록한다.
type mockAutoMarker struct {
	calls []string
}

func (m *mockAutoMarker) MarkAutoCheck(ctx context.Context, userID, date, key string) (*model.DailyRoutine, error) {
	m.calls = append(m.calls, key)
	return &model.DailyRoutine{RoutineKey: key, IsCompleted: true}, nil
}

func TestCreate_SanitizesContentAndMarksRoutine(t *testing.T) {
	var created *model.NewsScrap
	marker := &mockAutoMarker{}
	repo := &mockScrapRepo{
		createFn: func(ctx context.Context, scrap *model.NewsScrap) error {
			created = scrap
			return nil
		},
	}
	svc := NewService(repo, stubSanitizer{}, marker)

	scrap, err := svc.Create(context.Background(), "user-1", ScrapInput{
		ArticleURL: "https://news.example.com/article/1",
		Headline:   "반도체 수출 회복",
		Content:    "<script><p>메모</p>",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if created == nil {
		t.Fatal("expected Create to be called")
	}
	if strings.Contains(scrap.Content, "<script>") {
		t.Errorf("content should be sanitized, got %q", scrap.Content)
	}
	if len(marker.calls) != 1 || marker.calls[0] != model.RoutineNewsScrap {
		t.Errorf("auto-mark calls = %v, want [news_scrap]", marker.calls)
	}
}

func TestCreate_EmptyHeadline_ReturnsError(t *testing.T) {
	svc := NewService(&mockScrapRepo{}, stubSanitizer{}, &mockAutoMarker{})

	_, err := svc.Create(context.Background(), "user-1", ScrapInput{Content: "내용만 있음"})
	if err == nil {
		t.Fatal("expected error for empty headline")
	}
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeInvalidRequest {
		t.Fatalf("error = %v, want code %s", err, model.ErrCodeInvalidRequest)
	}
}

func TestUpdate_OtherUsersScrap_NotFound(t *testing.T) {
	repo := &mockScrapRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.NewsScrap, error) {
			return &model.NewsScrap{ID: id, UserID: "someone-else"}, nil
		},
	}
	svc := NewService(repo, stubSanitizer{}, &mockAutoMarker{})

	_, err := svc.Update(context.Background(), "user-1", "scrap-1", ScrapInput{Headline: "수정"})
	if err == nil {
		t.Fatal("expected not found error")
	}
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeScrapNotFound {
		t.Fatalf("error = %v, want code %s", err, model.ErrCodeScrapNotFound)
	}
	if !strings.Contains(apiErr.Message, "scrap-1") {
		t.Errorf("message %q should name the scrap ID", apiErr.Message)
	}
}

func TestTodayCount_UsesDayBoundaries(t *testing.T) {
	reference := time.Date(2026, 3, 9, 22, 30, 0, 0, time.Local)
	repo := &mockScrapRepo{
		countCreatedBetweenFn: func(ctx context.Context, userID string, from, to time.Time) (int, error) {
			wantFrom := time.Date(2026, 3, 9, 0, 0, 0, 0, time.Local)
			wantTo := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
			if !from.Equal(wantFrom) || !to.Equal(wantTo) {
				t.Errorf("range = [%v, %v], want [%v, %v]", from, to, wantFrom, wantTo)
			}
			return 2, nil
		},
	}
	svc := NewService(repo, stubSanitizer{}, &mockAutoMarker{})

	count, err := svc.TodayCount(context.Background(), "user-1", reference)
	if err != nil {
		t.Fatalf("TodayCount returned error: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}
