package dashboard

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/jiwoolab/track/internal/logger"
	"github.com/jiwoolab/track/internal/model"
)

type mockRoutinePersister struct {
	toggleFn func(ctx context.Context, userID, date, key string) (*model.DailyRoutine, error)
	calls    int
}

func (m *mockRoutinePersister) ToggleSelfCheck(ctx context.Context, userID, date, key string) (*model.DailyRoutine, error) {
	m.calls++
	if m.toggleFn != nil {
		return m.toggleFn(ctx, userID, date, key)
	}
	return &model.DailyRoutine{UserID: userID, Date: date, RoutineKey: key, IsCompleted: true}, nil
}

type mockScrapDeleter struct {
	deleteFn func(ctx context.Context, userID, id string) error
	calls    int
}

func (m *mockScrapDeleter) Delete(ctx context.Context, userID, id string) error {
	m.calls++
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, id)
	}
	return nil
}

type mockStickerPersister struct {
	toggleFn     func(ctx context.Context, userID, id string) (*model.Sticker, error)
	updateTextFn func(ctx context.Context, userID, id, text string) (*model.Sticker, error)
	calls        int
}

func (m *mockStickerPersister) Toggle(ctx context.Context, userID, id string) (*model.Sticker, error) {
	m.calls++
	if m.toggleFn != nil {
		return m.toggleFn(ctx, userID, id)
	}
	return &model.Sticker{ID: id, UserID: userID, IsCompleted: true}, nil
}

func (m *mockStickerPersister) UpdateText(ctx context.Context, userID, id, text string) (*model.Sticker, error) {
	m.calls++
	if m.updateTextFn != nil {
		return m.updateTextFn(ctx, userID, id, text)
	}
	return &model.Sticker{ID: id, UserID: userID, Text: text}, nil
}

func newTestStore(initial State, routines RoutinePersister, scraps ScrapDeleter, stickers StickerPersister) *Store {
	s := NewStore("user-1", initial, routines, scraps, stickers, logger.Setup(io.Discard))
	s.now = func() time.Time {
		return time.Date(2026, 3, 11, 14, 0, 0, 0, time.Local)
	}
	s.metrics = ComputeMetrics(s.state, s.now())
	return s
}

func TestToggleSelfRoutine_PersistsAndRecomputes(t *testing.T) {
	persister := &mockRoutinePersister{}
	store := newTestStore(State{
		TodayRoutines: []*model.DailyRoutine{
			{UserID: "user-1", Date: "2026-03-11", RoutineKey: model.RoutineWakeUp, IsCompleted: false},
		},
	}, persister, &mockScrapDeleter{}, &mockStickerPersister{})

	if got := store.Metrics().TodayFocus; got != 0 {
		t.Fatalf("초기 TodayFocus = %d, want 0", got)
	}

	if err := store.ToggleSelfRoutine(context.Background(), "2026-03-11", model.RoutineWakeUp); err != nil {
		t.Fatalf("ToggleSelfRoutine() error = %v", err)
	}
	if persister.calls != 1 {
		t.Errorf("persister.calls = %d, want 1", persister.calls)
	}
	if got := store.Metrics().TodayFocus; got != 20 {
		t.Errorf("토글 후 TodayFocus = %d, want 20", got)
	}
}

func TestToggleSelfRoutine_RollsBackOnPersistFailure(t *testing.T) {
	persister := &mockRoutinePersister{
		toggleFn: func(_ context.Context, _, _, _ string) (*model.DailyRoutine, error) {
			return nil, errors.New("connection refused")
		},
	}
	store := newTestStore(State{
		TodayRoutines: []*model.DailyRoutine{
			{UserID: "user-1", Date: "2026-03-11", RoutineKey: model.RoutineWakeUp, IsCompleted: false},
		},
	}, persister, &mockScrapDeleter{}, &mockStickerPersister{})

	err := store.ToggleSelfRoutine(context.Background(), "2026-03-11", model.RoutineWakeUp)
	if err == nil {
		t.Fatal("ToggleSelfRoutine() error = nil, want error")
	}

	// 실패 시 지표와 원본 컬렉션 모두 변경 전으로 돌아가야 한다.
	if got := store.Metrics().TodayFocus; got != 0 {
		t.Errorf("롤백 후 TodayFocus = %d, want 0", got)
	}
	state := store.State()
	if len(state.TodayRoutines) != 1 || state.TodayRoutines[0].IsCompleted {
		t.Errorf("롤백 후 state = %+v, want 미완료 1행", state.TodayRoutines)
	}
	if persister.calls != 1 {
		t.Errorf("persister.calls = %d, want 1 (재시도 없음)", persister.calls)
	}
}

func TestToggleSelfRoutine_AddsRowWhenAbsent(t *testing.T) {
	store := newTestStore(State{}, &mockRoutinePersister{}, &mockScrapDeleter{}, &mockStickerPersister{})

	if err := store.ToggleSelfRoutine(context.Background(), "2026-03-11", model.RoutineExercise); err != nil {
		t.Fatalf("ToggleSelfRoutine() error = %v", err)
	}
	state := store.State()
	if len(state.TodayRoutines) != 1 || !state.TodayRoutines[0].IsCompleted {
		t.Fatalf("state.TodayRoutines = %+v, want 완료 1행", state.TodayRoutines)
	}
}

func TestRemoveScrap_RollsBackOnPersistFailure(t *testing.T) {
	deleter := &mockScrapDeleter{
		deleteFn: func(_ context.Context, _, _ string) error {
			return errors.New("connection refused")
		},
	}
	store := newTestStore(State{
		Scraps: []*model.NewsScrap{
			{ID: "scrap-1", CreatedAt: time.Date(2026, 3, 11, 8, 0, 0, 0, time.Local)},
		},
	}, &mockRoutinePersister{}, deleter, &mockStickerPersister{})

	if err := store.RemoveScrap(context.Background(), "scrap-1"); err == nil {
		t.Fatal("RemoveScrap() error = nil, want error")
	}
	if got := len(store.State().Scraps); got != 1 {
		t.Errorf("롤백 후 len(Scraps) = %d, want 1", got)
	}
	if got := store.Metrics().TodayScrapCount; got != 1 {
		t.Errorf("롤백 후 TodayScrapCount = %d, want 1", got)
	}
}

func TestRemoveScrap_RemovesOnSuccess(t *testing.T) {
	deleter := &mockScrapDeleter{}
	store := newTestStore(State{
		Scraps: []*model.NewsScrap{
			{ID: "scrap-1", CreatedAt: time.Date(2026, 3, 11, 8, 0, 0, 0, time.Local)},
			{ID: "scrap-2", CreatedAt: time.Date(2026, 3, 10, 8, 0, 0, 0, time.Local)},
		},
	}, &mockRoutinePersister{}, deleter, &mockStickerPersister{})

	if err := store.RemoveScrap(context.Background(), "scrap-1"); err != nil {
		t.Fatalf("RemoveScrap() error = %v", err)
	}
	state := store.State()
	if len(state.Scraps) != 1 || state.Scraps[0].ID != "scrap-2" {
		t.Errorf("state.Scraps = %+v, want scrap-2 만", state.Scraps)
	}
	if got := store.Metrics().TodayScrapCount; got != 0 {
		t.Errorf("TodayScrapCount = %d, want 0", got)
	}
}

func TestToggleSticker_PersistsAndReconciles(t *testing.T) {
	done := time.Date(2026, 3, 11, 9, 0, 0, 0, time.Local)
	persister := &mockStickerPersister{
		toggleFn: func(_ context.Context, userID, id string) (*model.Sticker, error) {
			return &model.Sticker{ID: id, UserID: userID, Text: "토익 공부", IsCompleted: true, UpdatedAt: done}, nil
		},
	}
	store := newTestStore(State{
		Stickers: []*model.Sticker{
			{ID: "sticker-1", UserID: "user-1", Text: "토익 공부", IsCompleted: false},
		},
	}, &mockRoutinePersister{}, &mockScrapDeleter{}, persister)

	if err := store.ToggleSticker(context.Background(), "sticker-1"); err != nil {
		t.Fatalf("ToggleSticker() error = %v", err)
	}
	if persister.calls != 1 {
		t.Errorf("persister.calls = %d, want 1", persister.calls)
	}
	state := store.State()
	if len(state.Stickers) != 1 || !state.Stickers[0].IsCompleted {
		t.Errorf("state.Stickers = %+v, want 완료 1건", state.Stickers)
	}
	if !state.Stickers[0].UpdatedAt.Equal(done) {
		t.Errorf("UpdatedAt = %v, want 영속화된 행의 값", state.Stickers[0].UpdatedAt)
	}
}

func TestToggleSticker_RollsBackOnPersistFailure(t *testing.T) {
	persister := &mockStickerPersister{
		toggleFn: func(_ context.Context, _, _ string) (*model.Sticker, error) {
			return nil, errors.New("connection refused")
		},
	}
	store := newTestStore(State{
		Stickers: []*model.Sticker{
			{ID: "sticker-1", UserID: "user-1", Text: "토익 공부", IsCompleted: false},
		},
	}, &mockRoutinePersister{}, &mockScrapDeleter{}, persister)

	err := store.ToggleSticker(context.Background(), "sticker-1")
	if err == nil {
		t.Fatal("ToggleSticker() error = nil, want error")
	}

	// 실패 시 완료 상태가 변경 전으로 돌아가야 한다.
	state := store.State()
	if len(state.Stickers) != 1 || state.Stickers[0].IsCompleted {
		t.Errorf("롤백 후 state.Stickers = %+v, want 미완료 1건", state.Stickers)
	}
	if persister.calls != 1 {
		t.Errorf("persister.calls = %d, want 1 (재시도 없음)", persister.calls)
	}
}

func TestUpdateStickerText_RollsBackOnPersistFailure(t *testing.T) {
	persister := &mockStickerPersister{
		updateTextFn: func(_ context.Context, _, _, _ string) (*model.Sticker, error) {
			return nil, errors.New("connection refused")
		},
	}
	store := newTestStore(State{
		Stickers: []*model.Sticker{
			{ID: "sticker-1", UserID: "user-1", Text: "토익 공부"},
		},
	}, &mockRoutinePersister{}, &mockScrapDeleter{}, persister)

	err := store.UpdateStickerText(context.Background(), "sticker-1", "오픽 공부")
	if err == nil {
		t.Fatal("UpdateStickerText() error = nil, want error")
	}
	state := store.State()
	if got := state.Stickers[0].Text; got != "토익 공부" {
		t.Errorf("롤백 후 Text = %q, want 변경 전 본문", got)
	}
}

func TestUpdateStickerText_AppliesOnSuccess(t *testing.T) {
	persister := &mockStickerPersister{}
	store := newTestStore(State{
		Stickers: []*model.Sticker{
			{ID: "sticker-1", UserID: "user-1", Text: "토익 공부"},
		},
	}, &mockRoutinePersister{}, &mockScrapDeleter{}, persister)

	if err := store.UpdateStickerText(context.Background(), "sticker-1", "오픽 공부"); err != nil {
		t.Fatalf("UpdateStickerText() error = %v", err)
	}
	if got := store.State().Stickers[0].Text; got != "오픽 공부" {
		t.Errorf("Text = %q, want 오픽 공부", got)
	}
}

func TestReplace_RecomputesMetrics(t *testing.T) {
	store := newTestStore(State{}, &mockRoutinePersister{}, &mockScrapDeleter{}, &mockStickerPersister{})

	store.Replace(State{
		TodayRoutines: []*model.DailyRoutine{
			completedRow("2026-03-11", model.RoutineWakeUp),
			completedRow("2026-03-11", model.RoutineExercise),
			completedRow("2026-03-11", model.RoutineTimeBlock),
			completedRow("2026-03-11", model.RoutineNewsScrap),
		},
	})

	if got := store.Metrics().TodayFocus; got != 80 {
		t.Errorf("Replace 후 TodayFocus = %d, want 80", got)
	}
}
