package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/jiwoolab/track/internal/dateutil"
	"github.com/jiwoolab/track/internal/model"
	"github.com/jiwoolab/track/internal/routine"
)

// RoutineServiceInterface 는 루틴 핸들러가 필요로 하는 서비스 인터페이스.
type RoutineServiceInterface interface {
	ListByDate(ctx context.Context, userID, date string) ([]routine.Status, error)
	ToggleSelfCheck(ctx context.Context, userID, date, key string) (*model.DailyRoutine, error)
	TodayFocus(ctx context.Context, userID, date string) (routine.FocusReport, error)
	WeeklyFocus(ctx context.Context, userID string, reference time.Time) (routine.FocusReport, error)
}

// RoutineHandler 는 데일리 루틴 관련 HTTP 핸들러.
type RoutineHandler struct {
	service RoutineServiceInterface
	now     func() time.Time
}

// NewRoutineHandler 는 RoutineHandler 를 생성한다.
func NewRoutineHandler(service RoutineServiceInterface) *RoutineHandler {
	return &RoutineHandler{
		service: service,
		now:     time.Now,
	}
}

// routineStatusResponse 는 루틴 한 항목의 JSON 표현.
type routineStatusResponse struct {
	Key         string     `json:"key"`
	Label       string     `json:"label"`
	CheckType   string     `json:"check_type"`
	IsCompleted bool       `json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at"`
}

// focusReportResponse 는 집중도 리포트의 JSON 표현.
type focusReportResponse struct {
	Percentage int    `json:"percentage"`
	Color      string `json:"color"`
	Comment    string `json:"comment"`
}

// dateOrToday 는 date 쿼리 파라미터를 반환한다. 없으면 오늘 날짜.
func (h *RoutineHandler) dateOrToday(r *http.Request) string {
	if date := r.URL.Query().Get("date"); date != "" {
		return date
	}
	return dateutil.Format(h.now())
}

// List 는 해당 날짜의 루틴 5개를 완료 여부와 함께 반환한다.
// GET /api/routines?date=2026-03-11
func (h *RoutineHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	statuses, err := h.service.ListByDate(r.Context(), userID, h.dateOrToday(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]routineStatusResponse, 0, len(statuses))
	for _, status := range statuses {
		responses = append(responses, routineStatusResponse{
			Key:         status.Key,
			Label:       status.Label,
			CheckType:   string(status.CheckType),
			IsCompleted: status.IsCompleted,
			CompletedAt: status.CompletedAt,
		})
	}

	writeJSON(w, http.StatusOK, responses)
}

// toggleRequest 는 루틴 토글 요청 바디.
type toggleRequest struct {
	Date string `json:"date"`
	Key  string `json:"key"`
}

// Toggle 은 self 타입 루틴의 완료 여부를 뒤집는다.
// POST /api/routines/toggle
func (h *RoutineHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req toggleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	date := req.Date
	if date == "" {
		date = dateutil.Format(h.now())
	}

	row, err := h.service.ToggleSelfCheck(r.Context(), userID, date, req.Key)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"date":         row.Date,
		"routine_key":  row.RoutineKey,
		"is_completed": row.IsCompleted,
		"completed_at": row.CompletedAt,
	})
}

// TodayFocus 는 해당 날짜의 집중도 리포트를 반환한다.
// GET /api/routines/focus/today?date=
func (h *RoutineHandler) TodayFocus(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	report, err := h.service.TodayFocus(r.Context(), userID, h.dateOrToday(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, focusReportResponse{
		Percentage: report.Percentage,
		Color:      report.Color,
		Comment:    report.Comment,
	})
}

// WeeklyFocus 는 이번 주 평일 평균 집중도 리포트를 반환한다.
// GET /api/routines/focus/weekly
func (h *RoutineHandler) WeeklyFocus(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	report, err := h.service.WeeklyFocus(r.Context(), userID, h.now())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, focusReportResponse{
		Percentage: report.Percentage,
		Color:      report.Color,
		Comment:    report.Comment,
	})
}
