package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/jiwoolab/track/internal/dashboard"
)

// DashboardServiceInterface 는 대시보드 핸들러가 필요로 하는 서비스 인터페이스.
type DashboardServiceInterface interface {
	Snapshot(ctx context.Context, userID string, reference time.Time) (*dashboard.Snapshot, error)
}

// DashboardHandler 는 대시보드 스냅샷 HTTP 핸들러.
type DashboardHandler struct {
	service DashboardServiceInterface
	now     func() time.Time
}

// NewDashboardHandler 는 DashboardHandler 를 생성한다.
func NewDashboardHandler(service DashboardServiceInterface) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		now:     time.Now,
	}
}

// dashboardMetricsResponse 는 대시보드 지표의 JSON 표현.
type dashboardMetricsResponse struct {
	TodayFocus      focusReportResponse `json:"today_focus"`
	WeeklyFocus     int                 `json:"weekly_focus"`
	WeeklyStat      weeklyStatResponse  `json:"weekly_stat"`
	ActiveCount     int                 `json:"active_count"`
	AcceptedCount   int                 `json:"accepted_count"`
	RejectedCount   int                 `json:"rejected_count"`
	TodayScrapCount int                 `json:"today_scrap_count"`
}

// dashboardResponse 는 대시보드 한 화면에 필요한 데이터 묶음.
type dashboardResponse struct {
	Metrics  dashboardMetricsResponse `json:"metrics"`
	Routines []routineStatusResponse  `json:"routines"`
	Scraps   []newsScrapResponse      `json:"scraps"`
	Stickers []stickerResponse        `json:"stickers"`
}

// Snapshot 은 대시보드 스냅샷을 반환한다.
// GET /api/dashboard
func (h *DashboardHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	snapshot, err := h.service.Snapshot(r.Context(), userID, h.now())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	metrics := snapshot.Metrics
	resp := dashboardResponse{
		Metrics: dashboardMetricsResponse{
			TodayFocus: focusReportResponse{
				Percentage: metrics.TodayFocus,
				Color:      metrics.FocusColor,
				Comment:    metrics.FocusComment,
			},
			WeeklyFocus: metrics.WeeklyFocus,
			WeeklyStat: weeklyStatResponse{
				Count:      metrics.WeeklyStat.Count,
				Percentage: metrics.WeeklyStat.Percentage,
				Subtitle:   metrics.WeeklyStat.Subtitle,
			},
			ActiveCount:     metrics.ActiveCount,
			AcceptedCount:   metrics.AcceptedCount,
			RejectedCount:   metrics.RejectedCount,
			TodayScrapCount: metrics.TodayScrapCount,
		},
		Routines: make([]routineStatusResponse, 0, len(snapshot.State.TodayRoutines)),
		Scraps:   make([]newsScrapResponse, 0, len(snapshot.State.Scraps)),
		Stickers: make([]stickerResponse, 0, len(snapshot.State.Stickers)),
	}

	for _, row := range snapshot.State.TodayRoutines {
		resp.Routines = append(resp.Routines, routineStatusResponse{
			Key:         row.RoutineKey,
			CheckType:   string(row.CheckType),
			IsCompleted: row.IsCompleted,
			CompletedAt: row.CompletedAt,
		})
	}
	for _, scrap := range snapshot.State.Scraps {
		resp.Scraps = append(resp.Scraps, toNewsScrapResponse(scrap))
	}
	for _, sticker := range snapshot.State.Stickers {
		resp.Stickers = append(resp.Stickers, toStickerResponse(sticker))
	}

	writeJSON(w, http.StatusOK, resp)
}
