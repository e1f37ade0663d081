package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jiwoolab/track/internal/dateutil"
	"github.com/jiwoolab/track/internal/model"
	"github.com/jiwoolab/track/internal/timelog"
)

// TimeLogServiceInterface 는 타임 로그 핸들러가 필요로 하는 서비스 인터페이스.
type TimeLogServiceInterface interface {
	ListWeek(ctx context.Context, userID string, reference time.Time) ([]*model.TimeLog, error)
	Create(ctx context.Context, userID string, input timelog.LogInput) (*model.TimeLog, error)
	Update(ctx context.Context, userID, id string, input timelog.LogInput) (*model.TimeLog, error)
	Delete(ctx context.Context, userID, id string) error
	GoalsByMonth(ctx context.Context, userID, yearMonth string) ([]*model.WeeklyGoal, error)
	UpsertGoal(ctx context.Context, userID, yearMonth string, week int, goal string) (*model.WeeklyGoal, error)
}

// TimeLogHandler 는 타임 블록·주간 목표 관련 HTTP 핸들러.
type TimeLogHandler struct {
	service TimeLogServiceInterface
	now     func() time.Time
}

// NewTimeLogHandler 는 TimeLogHandler 를 생성한다.
func NewTimeLogHandler(service TimeLogServiceInterface) *TimeLogHandler {
	return &TimeLogHandler{
		service: service,
		now:     time.Now,
	}
}

// timeLogResponse 는 타임 로그의 JSON 표현.
type timeLogResponse struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Content   string    `json:"content"`
	Date      string    `json:"date"`
	StartHour int       `json:"start_hour"`
	EndHour   int       `json:"end_hour"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toTimeLogResponse(log *model.TimeLog) timeLogResponse {
	return timeLogResponse{
		ID:        log.ID,
		Category:  string(log.Category),
		Content:   log.Content,
		Date:      log.Date,
		StartHour: log.StartHour,
		EndHour:   log.EndHour,
		CreatedAt: log.CreatedAt,
		UpdatedAt: log.UpdatedAt,
	}
}

// timeLogRequest 는 타임 로그 생성/갱신 요청 바디.
type timeLogRequest struct {
	Category  string `json:"category"`
	Content   string `json:"content"`
	Date      string `json:"date"`
	StartHour int    `json:"start_hour"`
	EndHour   int    `json:"end_hour"`
}

func (req timeLogRequest) toInput() timelog.LogInput {
	return timelog.LogInput{
		Category:  model.TimeLogCategory(req.Category),
		Content:   req.Content,
		Date:      req.Date,
		StartHour: req.StartHour,
		EndHour:   req.EndHour,
	}
}

// ListWeek 는 지정 날짜가 속한 주의 타임 로그를 반환한다.
// GET /api/time-logs?date=2026-03-11
func (h *TimeLogHandler) ListWeek(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	reference := h.now()
	if date := r.URL.Query().Get("date"); date != "" {
		parsed, err := dateutil.Parse(date)
		if err != nil {
			writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidDateError(date))
			return
		}
		reference = parsed
	}

	logs, err := h.service.ListWeek(r.Context(), userID, reference)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]timeLogResponse, 0, len(logs))
	for _, log := range logs {
		responses = append(responses, toTimeLogResponse(log))
	}
	writeJSON(w, http.StatusOK, responses)
}

// Create 는 타임 로그를 생성한다.
// POST /api/time-logs
func (h *TimeLogHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req timeLogRequest
	if !decodeBody(w, r, &req) {
		return
	}

	log, err := h.service.Create(r.Context(), userID, req.toInput())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTimeLogResponse(log))
}

// Update 는 타임 로그를 전체 갱신한다.
// PUT /api/time-logs/{id}
func (h *TimeLogHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req timeLogRequest
	if !decodeBody(w, r, &req) {
		return
	}

	log, err := h.service.Update(r.Context(), userID, chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTimeLogResponse(log))
}

// Delete 는 타임 로그를 삭제한다.
// DELETE /api/time-logs/{id}
func (h *TimeLogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// weeklyGoalResponse 는 주간 목표의 JSON 표현.
type weeklyGoalResponse struct {
	ID        string `json:"id"`
	YearMonth string `json:"year_month"`
	Week      int    `json:"week"`
	Goal      string `json:"goal"`
}

func toWeeklyGoalResponse(goal *model.WeeklyGoal) weeklyGoalResponse {
	return weeklyGoalResponse{
		ID:        goal.ID,
		YearMonth: goal.YearMonth,
		Week:      goal.Week,
		Goal:      goal.Goal,
	}
}

// ListGoals 는 해당 월의 주간 목표(주차 오름차순)를 반환한다.
// GET /api/weekly-goals?month=2026-03
func (h *TimeLogHandler) ListGoals(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	goals, err := h.service.GoalsByMonth(r.Context(), userID, r.URL.Query().Get("month"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]weeklyGoalResponse, 0, len(goals))
	for _, goal := range goals {
		responses = append(responses, toWeeklyGoalResponse(goal))
	}
	writeJSON(w, http.StatusOK, responses)
}

// weeklyGoalRequest 는 주간 목표 업서트 요청 바디.
type weeklyGoalRequest struct {
	YearMonth string `json:"year_month"`
	Week      int    `json:"week"`
	Goal      string `json:"goal"`
}

// UpsertGoal 은 (월, 주차)의 목표를 업서트한다.
// PUT /api/weekly-goals
func (h *TimeLogHandler) UpsertGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req weeklyGoalRequest
	if !decodeBody(w, r, &req) {
		return
	}

	goal, err := h.service.UpsertGoal(r.Context(), userID, req.YearMonth, req.Week, req.Goal)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toWeeklyGoalResponse(goal))
}
