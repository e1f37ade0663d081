package dashboard

import (
	"testing"
	"time"

	"github.com/jiwoolab/track/internal/model"
)

func completedRow(date, key string) *model.DailyRoutine {
	return &model.DailyRoutine{UserID: "user-1", Date: date, RoutineKey: key, IsCompleted: true}
}

func TestComputeMetrics_DerivesAllFields(t *testing.T) {
	// 2026-03-11 은 수요일.
	reference := time.Date(2026, 3, 11, 14, 0, 0, 0, time.Local)

	state := State{
		TodayRoutines: []*model.DailyRoutine{
			completedRow("2026-03-11", model.RoutineWakeUp),
			completedRow("2026-03-11", model.RoutineExercise),
			completedRow("2026-03-11", model.RoutineTimeBlock),
		},
		WeekRoutines: []*model.DailyRoutine{
			// 월요일 5개 완료, 화요일 0개, 수요일 3개 → (100+0+60)/3 ≈ 53
			completedRow("2026-03-09", model.RoutineWakeUp),
			completedRow("2026-03-09", model.RoutineExercise),
			completedRow("2026-03-09", model.RoutineTimeBlock),
			completedRow("2026-03-09", model.RoutineNewsScrap),
			completedRow("2026-03-09", model.RoutineJobListing),
			completedRow("2026-03-11", model.RoutineWakeUp),
			completedRow("2026-03-11", model.RoutineExercise),
			completedRow("2026-03-11", model.RoutineTimeBlock),
		},
		Applications: []*model.Application{
			{ID: "app-1", Status: model.ApplicationStatusActive,
				AppliedAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)},
			{ID: "app-2", Status: model.ApplicationStatusRejected,
				AppliedAt: time.Date(2026, 2, 1, 9, 0, 0, 0, time.Local)},
			{ID: "app-3", Status: model.ApplicationStatusAccepted,
				AppliedAt: time.Date(2026, 1, 15, 9, 0, 0, 0, time.Local)},
		},
		Scraps: []*model.NewsScrap{
			{ID: "scrap-1", CreatedAt: time.Date(2026, 3, 11, 8, 0, 0, 0, time.Local)},
			{ID: "scrap-2", CreatedAt: time.Date(2026, 3, 10, 8, 0, 0, 0, time.Local)},
		},
	}

	m := ComputeMetrics(state, reference)

	if m.TodayFocus != 60 {
		t.Errorf("TodayFocus = %d, want 60", m.TodayFocus)
	}
	if m.FocusColor != "yellow" || m.FocusComment != "힘내세요" {
		t.Errorf("tier = (%s, %s), want (yellow, 힘내세요)", m.FocusColor, m.FocusComment)
	}
	if m.WeeklyFocus != 53 {
		t.Errorf("WeeklyFocus = %d, want 53", m.WeeklyFocus)
	}
	if m.WeeklyStat.Count != 1 || m.WeeklyStat.Percentage != 50 {
		t.Errorf("WeeklyStat = %+v, want count 1 percentage 50", m.WeeklyStat)
	}
	if m.ActiveCount != 1 || m.AcceptedCount != 1 || m.RejectedCount != 1 {
		t.Errorf("buckets = (%d, %d, %d), want (1, 1, 1)",
			m.ActiveCount, m.AcceptedCount, m.RejectedCount)
	}
	if m.TodayScrapCount != 1 {
		t.Errorf("TodayScrapCount = %d, want 1", m.TodayScrapCount)
	}
}

func TestComputeMetrics_EmptyState(t *testing.T) {
	reference := time.Date(2026, 3, 9, 10, 0, 0, 0, time.Local)

	m := ComputeMetrics(State{}, reference)

	if m.TodayFocus != 0 {
		t.Errorf("TodayFocus = %d, want 0", m.TodayFocus)
	}
	if m.FocusColor != "red" {
		t.Errorf("FocusColor = %s, want red", m.FocusColor)
	}
	if m.WeeklyStat.Count != 0 || m.WeeklyStat.Percentage != 0 {
		t.Errorf("WeeklyStat = %+v, want zero", m.WeeklyStat)
	}
	if m.WeeklyStat.Subtitle != "이번 주 지원 내역이 없어요!" {
		t.Errorf("Subtitle = %s", m.WeeklyStat.Subtitle)
	}
}

func TestComputeMetrics_WeekendReferenceExcludesWeekend(t *testing.T) {
	// 일요일 기준: 월~금 5일만 집계 대상.
	reference := time.Date(2026, 3, 15, 20, 0, 0, 0, time.Local)

	state := State{
		WeekRoutines: []*model.DailyRoutine{
			// 토요일 완료 기록은 무시되어야 한다.
			completedRow("2026-03-14", model.RoutineWakeUp),
			// 금요일 5개 완료 → 평일 평균 (0+0+0+0+100)/5 = 20
			completedRow("2026-03-13", model.RoutineWakeUp),
			completedRow("2026-03-13", model.RoutineExercise),
			completedRow("2026-03-13", model.RoutineTimeBlock),
			completedRow("2026-03-13", model.RoutineNewsScrap),
			completedRow("2026-03-13", model.RoutineJobListing),
		},
	}

	m := ComputeMetrics(state, reference)
	if m.WeeklyFocus != 20 {
		t.Errorf("WeeklyFocus = %d, want 20", m.WeeklyFocus)
	}
}
