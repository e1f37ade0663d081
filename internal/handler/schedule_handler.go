package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jiwoolab/track/internal/model"
	"github.com/jiwoolab/track/internal/schedule"
)

// ScheduleServiceInterface 는 일정 핸들러가 필요로 하는 서비스 인터페이스.
type ScheduleServiceInterface interface {
	ListMonth(ctx context.Context, userID string, year, month int) ([]*model.Schedule, error)
	Create(ctx context.Context, userID, title, date string) (*model.Schedule, error)
	Delete(ctx context.Context, userID, id string) error
	MonthView(ctx context.Context, userID string, year, month int, reference time.Time) ([]schedule.MonthCell, error)
}

// ScheduleHandler 는 일정·달력 관련 HTTP 핸들러.
type ScheduleHandler struct {
	service ScheduleServiceInterface
	now     func() time.Time
}

// NewScheduleHandler 는 ScheduleHandler 를 생성한다.
func NewScheduleHandler(service ScheduleServiceInterface) *ScheduleHandler {
	return &ScheduleHandler{
		service: service,
		now:     time.Now,
	}
}

// scheduleResponse 는 일정의 JSON 표현.
type scheduleResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

func toScheduleResponse(s *model.Schedule) scheduleResponse {
	return scheduleResponse{
		ID:        s.ID,
		Title:     s.Title,
		Date:      s.Date,
		CreatedAt: s.CreatedAt,
	}
}

// List 는 해당 월의 일정을 반환한다.
// GET /api/schedules?year=2026&month=3
func (h *ScheduleHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	year, month, ok := parseYearMonth(w, r)
	if !ok {
		return
	}

	schedules, err := h.service.ListMonth(r.Context(), userID, year, month)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]scheduleResponse, 0, len(schedules))
	for _, s := range schedules {
		responses = append(responses, toScheduleResponse(s))
	}
	writeJSON(w, http.StatusOK, responses)
}

// scheduleRequest 는 일정 생성 요청 바디.
type scheduleRequest struct {
	Title string `json:"title"`
	Date  string `json:"date"`
}

// Create 는 일정을 등록한다.
// POST /api/schedules
func (h *ScheduleHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req scheduleRequest
	if !decodeBody(w, r, &req) {
		return
	}

	created, err := h.service.Create(r.Context(), userID, req.Title, req.Date)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toScheduleResponse(created))
}

// Delete 는 일정을 삭제한다.
// DELETE /api/schedules/{id}
func (h *ScheduleHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// ddayMarkResponse 는 달력 셀의 D-day 마크 표현.
type ddayMarkResponse struct {
	Label   string `json:"label"`
	Company string `json:"company"`
}

// dayEventResponse 는 팝오버에 표시되는 지원 이벤트 표현.
type dayEventResponse struct {
	Company string `json:"company"`
	Stage   string `json:"stage"`
}

// monthCellResponse 는 달력 그리드 한 칸의 JSON 표현.
type monthCellResponse struct {
	Day       int                `json:"day"`
	Date      string             `json:"date"`
	InMonth   bool               `json:"in_month"`
	IsToday   bool               `json:"is_today"`
	DDay      *ddayMarkResponse  `json:"d_day"`
	Schedules []scheduleResponse `json:"schedules"`
	Events    []dayEventResponse `json:"events"`
}

// MonthView 는 일정·지원 마감·D-day 마크를 합친 달력 그리드를 반환한다.
// GET /api/schedules/calendar?year=2026&month=3
func (h *ScheduleHandler) MonthView(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	year, month, ok := parseYearMonth(w, r)
	if !ok {
		return
	}

	cells, err := h.service.MonthView(r.Context(), userID, year, month, h.now())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]monthCellResponse, 0, len(cells))
	for _, cell := range cells {
		resp := monthCellResponse{
			Day:       cell.Day,
			Date:      cell.Date,
			InMonth:   cell.InMonth,
			IsToday:   cell.IsToday,
			Schedules: make([]scheduleResponse, 0, len(cell.Schedules)),
			Events:    make([]dayEventResponse, 0, len(cell.Events)),
		}
		if cell.DDay != nil {
			resp.DDay = &ddayMarkResponse{Label: cell.DDay.Label, Company: cell.DDay.Company}
		}
		for _, s := range cell.Schedules {
			resp.Schedules = append(resp.Schedules, toScheduleResponse(s))
		}
		for _, event := range cell.Events {
			resp.Events = append(resp.Events, dayEventResponse{Company: event.Company, Stage: event.Stage})
		}
		responses = append(responses, resp)
	}

	writeJSON(w, http.StatusOK, responses)
}
