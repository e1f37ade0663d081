// Package dashboard 는 대시보드 상태 컨테이너와 파생 지표 계산을 제공한다.
package dashboard

import (
	"time"

	"github.com/jiwoolab/track/internal/application"
	"github.com/jiwoolab/track/internal/dateutil"
	"github.com/jiwoolab/track/internal/model"
	"github.com/jiwoolab/track/internal/routine"
)

// State 는 대시보드의 원본 컬렉션. 지표는 여기에 저장하지 않는다.
type State struct {
	TodayRoutines []*model.DailyRoutine
	WeekRoutines  []*model.DailyRoutine
	Applications  []*model.Application
	Scraps        []*model.NewsScrap
	Stickers      []*model.Sticker
}

// Metrics 는 원본 컬렉션에서 파생된 표시용 지표.
// 항상 ComputeMetrics 로 재계산하며 개별 필드를 직접 수정하지 않는다.
type Metrics struct {
	TodayFocus      int
	FocusColor      string
	FocusComment    string
	WeeklyFocus     int
	WeeklyStat      application.WeeklyStat
	ActiveCount     int
	AcceptedCount   int
	RejectedCount   int
	TodayScrapCount int
}

// ComputeMetrics 는 원본 컬렉션과 기준 시각에서 지표를 계산하는 순수 함수.
func ComputeMetrics(state State, reference time.Time) Metrics {
	todayFocus := routine.FocusPercentage(state.TodayRoutines)
	tier := routine.TierFor(todayFocus)
	buckets := application.Buckets(state.Applications)

	return Metrics{
		TodayFocus:      todayFocus,
		FocusColor:      tier.Color,
		FocusComment:    tier.Comment,
		WeeklyFocus:     weeklyFocus(state.WeekRoutines, reference),
		WeeklyStat:      application.NewWeeklyStat(weeklyApplied(state.Applications, reference)),
		ActiveCount:     len(buckets.Active),
		AcceptedCount:   len(buckets.Accepted),
		RejectedCount:   len(buckets.Rejected),
		TodayScrapCount: todayScraps(state.Scraps, reference),
	}
}

// weeklyFocus 는 이번 주 월요일부터 기준일까지의 평일별 집중도 평균.
// 토·일은 집계에서 제외한다.
func weeklyFocus(weekRoutines []*model.DailyRoutine, reference time.Time) int {
	byDate := make(map[string][]*model.DailyRoutine)
	for _, r := range weekRoutines {
		byDate[r.Date] = append(byDate[r.Date], r)
	}

	var percentages []int
	weekStart := dateutil.WeekStart(reference)
	today := dateutil.Truncate(reference)
	for d := weekStart; !d.After(today); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		percentages = append(percentages, routine.FocusPercentage(byDate[dateutil.Format(d)]))
	}

	return routine.WeeklyAverage(percentages)
}

// weeklyApplied 는 이번 주(월~일)에 지원한 건수.
func weeklyApplied(apps []*model.Application, reference time.Time) int {
	weekStart := dateutil.WeekStart(reference)
	weekEnd := dateutil.WeekEnd(reference)

	count := 0
	for _, app := range apps {
		if !app.AppliedAt.Before(weekStart) && !app.AppliedAt.After(weekEnd) {
			count++
		}
	}
	return count
}

// todayScraps 는 기준일 당일에 생성된 스크랩 건수.
func todayScraps(scraps []*model.NewsScrap, reference time.Time) int {
	today := dateutil.Format(reference)
	count := 0
	for _, scrap := range scraps {
		if dateutil.Format(scrap.CreatedAt) == today {
			count++
		}
	}
	return count
}
