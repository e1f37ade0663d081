package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jiwoolab/track/internal/model"
	"github.com/jiwoolab/track/internal/routine"
)

type mockRoutineService struct {
	listByDateFn      func(ctx context.Context, userID, date string) ([]routine.Status, error)
	toggleSelfCheckFn func(ctx context.Context, userID, date, key string) (*model.DailyRoutine, error)
	todayFocusFn      func(ctx context.Context, userID, date string) (routine.FocusReport, error)
	weeklyFocusFn     func(ctx context.Context, userID string, reference time.Time) (routine.FocusReport, error)
}

func (m *mockRoutineService) ListByDate(ctx context.Context, userID, date string) ([]routine.Status, error) {
	if m.listByDateFn != nil {
		return m.listByDateFn(ctx, userID, date)
	}
	return nil, nil
}

func (m *mockRoutineService) ToggleSelfCheck(ctx context.Context, userID, date, key string) (*model.DailyRoutine, error) {
	if m.toggleSelfCheckFn != nil {
		return m.toggleSelfCheckFn(ctx, userID, date, key)
	}
	return nil, nil
}

func (m *mockRoutineService) TodayFocus(ctx context.Context, userID, date string) (routine.FocusReport, error) {
	if m.todayFocusFn != nil {
		return m.todayFocusFn(ctx, userID, date)
	}
	return routine.FocusReport{}, nil
}

func (m *mockRoutineService) WeeklyFocus(ctx context.Context, userID string, reference time.Time) (routine.FocusReport, error) {
	if m.weeklyFocusFn != nil {
		return m.weeklyFocusFn(ctx, userID, reference)
	}
	return routine.FocusReport{}, nil
}

// --- GET /api/routines 테스트 ---

func TestRoutineHandler_List_UsesDateQuery(t *testing.T) {
	svc := &mockRoutineService{
		listByDateFn: func(ctx context.Context, userID, date string) ([]routine.Status, error) {
			if date != "2026-03-11" {
				t.Errorf("date = %q, want %q", date, "2026-03-11")
			}
			return []routine.Status{
				{
					Definition:  routine.Definition{Key: model.RoutineWakeUp, Label: "기상 미션", CheckType: model.CheckTypeSelf},
					IsCompleted: true,
				},
				{
					Definition: routine.Definition{Key: model.RoutineTimeBlock, Label: "타임 블록 기록", CheckType: model.CheckTypeAuto},
				},
			}, nil
		},
	}
	h := NewRoutineHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/routines?date=2026-03-11", nil)
	req = withUserID(req, "user-123")
	w := httptest.NewRecorder()

	h.List(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var got []routineStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if !got[0].IsCompleted {
		t.Error("first routine should be completed")
	}
	if got[1].CheckType != string(model.CheckTypeAuto) {
		t.Errorf("check_type = %q, want %q", got[1].CheckType, model.CheckTypeAuto)
	}
}

// --- POST /api/routines/toggle 테스트 ---

func TestRoutineHandler_Toggle_SelfCheckOnlyConflict(t *testing.T) {
	svc := &mockRoutineService{
		toggleSelfCheckFn: func(ctx context.Context, userID, date, key string) (*model.DailyRoutine, error) {
			return nil, model.NewSelfCheckOnlyError(key)
		},
	}
	h := NewRoutineHandler(svc)

	body, _ := json.Marshal(map[string]string{"date": "2026-03-11", "key": model.RoutineTimeBlock})
	req := httptest.NewRequest(http.MethodPost, "/api/routines/toggle", bytes.NewReader(body))
	req = withUserID(req, "user-123")
	w := httptest.NewRecorder()

	h.Toggle(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusConflict)
	}

	var got apiErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Code != model.ErrCodeSelfCheckOnly {
		t.Errorf("code = %q, want %q", got.Code, model.ErrCodeSelfCheckOnly)
	}
}

// --- GET /api/routines/focus/today 테스트 ---

func TestRoutineHandler_TodayFocus_ReturnsReport(t *testing.T) {
	svc := &mockRoutineService{
		todayFocusFn: func(ctx context.Context, userID, date string) (routine.FocusReport, error) {
			return routine.FocusReport{Percentage: 60, Color: "yellow", Comment: "힘내세요"}, nil
		},
	}
	h := NewRoutineHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/routines/focus/today?date=2026-03-11", nil)
	req = withUserID(req, "user-123")
	w := httptest.NewRecorder()

	h.TodayFocus(w, req)

	var got focusReportResponse
	if err := json.NewDecoder(w.Result().Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Percentage != 60 || got.Color != "yellow" {
		t.Errorf("report = %+v, want 60/yellow", got)
	}
}
