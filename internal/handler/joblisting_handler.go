package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jiwoolab/track/internal/joblisting"
	"github.com/jiwoolab/track/internal/model"
)

// JobListingServiceInterface 는 공고 핸들러가 필요로 하는 서비스 인터페이스.
type JobListingServiceInterface interface {
	List(ctx context.Context, userID string, filter joblisting.Filter) ([]*model.JobListing, error)
	Create(ctx context.Context, userID string, input joblisting.CreateInput) (*model.JobListing, error)
	Update(ctx context.Context, userID, id string, input joblisting.UpdateInput) (*model.JobListing, error)
	Delete(ctx context.Context, userID, id string) error
	MoveToApplications(ctx context.Context, userID, id string) (*model.Application, error)
	CalendarMonth(ctx context.Context, userID string, year, month int) (map[string]joblisting.CalendarDay, error)
	ThisWeekCount(ctx context.Context, userID string, reference time.Time) (int, error)
	Upcoming(ctx context.Context, userID string, reference time.Time) ([]*model.JobListing, error)
}

// JobListingHandler 는 채용 공고 관련 HTTP 핸들러.
type JobListingHandler struct {
	service JobListingServiceInterface
	now     func() time.Time
}

// NewJobListingHandler 는 JobListingHandler 를 생성한다.
func NewJobListingHandler(service JobListingServiceInterface) *JobListingHandler {
	return &JobListingHandler{
		service: service,
		now:     time.Now,
	}
}

// jobListingResponse 는 공고의 JSON 표현.
type jobListingResponse struct {
	ID          string    `json:"id"`
	Company     string    `json:"company"`
	Position    string    `json:"position"`
	Location    string    `json:"location"`
	Industry    string    `json:"industry"`
	CompanySize *string   `json:"company_size"`
	Status      string    `json:"status"`
	Deadline    *string   `json:"deadline"`
	JobPostURL  string    `json:"job_post_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toJobListingResponse(listing *model.JobListing) jobListingResponse {
	var size *string
	if listing.CompanySize != nil {
		s := string(*listing.CompanySize)
		size = &s
	}
	return jobListingResponse{
		ID:          listing.ID,
		Company:     listing.Company,
		Position:    listing.Position,
		Location:    listing.Location,
		Industry:    listing.Industry,
		CompanySize: size,
		Status:      string(listing.Status),
		Deadline:    listing.Deadline,
		JobPostURL:  listing.JobPostURL,
		CreatedAt:   listing.CreatedAt,
		UpdatedAt:   listing.UpdatedAt,
	}
}

func toJobListingResponses(listings []*model.JobListing) []jobListingResponse {
	responses := make([]jobListingResponse, 0, len(listings))
	for _, listing := range listings {
		responses = append(responses, toJobListingResponse(listing))
	}
	return responses
}

// jobListingRequest 는 공고 생성/갱신 요청 바디.
type jobListingRequest struct {
	Company     string  `json:"company"`
	Position    string  `json:"position"`
	Location    string  `json:"location"`
	Industry    string  `json:"industry"`
	CompanySize *string `json:"company_size"`
	Status      string  `json:"status"`
	Deadline    *string `json:"deadline"`
	JobPostURL  string  `json:"job_post_url"`
}

func (req jobListingRequest) companySize() *model.CompanySize {
	if req.CompanySize == nil {
		return nil
	}
	size := model.CompanySize(*req.CompanySize)
	return &size
}

// List 는 필터 조건에 맞는 공고 목록을 반환한다.
// GET /api/job-listings?company=&position=&company_size=
func (h *JobListingHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	filter := joblisting.Filter{
		Company:     r.URL.Query().Get("company"),
		Position:    r.URL.Query().Get("position"),
		CompanySize: r.URL.Query().Get("company_size"),
	}

	listings, err := h.service.List(r.Context(), userID, filter)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toJobListingResponses(listings))
}

// Create 는 공고를 등록한다.
// POST /api/job-listings
func (h *JobListingHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req jobListingRequest
	if !decodeBody(w, r, &req) {
		return
	}

	listing, err := h.service.Create(r.Context(), userID, joblisting.CreateInput{
		Company:     req.Company,
		Position:    req.Position,
		Location:    req.Location,
		Industry:    req.Industry,
		CompanySize: req.companySize(),
		Deadline:    req.Deadline,
		JobPostURL:  req.JobPostURL,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toJobListingResponse(listing))
}

// Update 는 공고를 전체 갱신한다.
// PUT /api/job-listings/{id}
func (h *JobListingHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req jobListingRequest
	if !decodeBody(w, r, &req) {
		return
	}

	listing, err := h.service.Update(r.Context(), userID, chi.URLParam(r, "id"), joblisting.UpdateInput{
		Company:     req.Company,
		Position:    req.Position,
		Location:    req.Location,
		Industry:    req.Industry,
		CompanySize: req.companySize(),
		Status:      model.ListingStatus(req.Status),
		Deadline:    req.Deadline,
		JobPostURL:  req.JobPostURL,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toJobListingResponse(listing))
}

// Delete 는 공고를 삭제한다.
// DELETE /api/job-listings/{id}
func (h *JobListingHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// Move 는 공고를 지원 내역으로 전환한다.
// POST /api/job-listings/{id}/move
func (h *JobListingHandler) Move(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	app, err := h.service.MoveToApplications(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toApplicationResponse(app))
}

// calendarDayResponse 는 캘린더 한 칸의 JSON 표현.
type calendarDayResponse struct {
	Date      string               `json:"date"`
	Companies []string             `json:"companies"`
	Overflow  int                  `json:"overflow"`
	Listings  []jobListingResponse `json:"listings"`
}

// Calendar 는 해당 월의 마감 캘린더 집계를 반환한다.
// GET /api/job-listings/calendar?year=2026&month=3
func (h *JobListingHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	year, month, ok := parseYearMonth(w, r)
	if !ok {
		return
	}

	days, err := h.service.CalendarMonth(r.Context(), userID, year, month)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make(map[string]calendarDayResponse, len(days))
	for date, day := range days {
		responses[date] = calendarDayResponse{
			Date:      day.Date,
			Companies: day.Companies,
			Overflow:  day.Overflow,
			Listings:  toJobListingResponses(day.Listings),
		}
	}

	writeJSON(w, http.StatusOK, responses)
}

// ThisWeekCount 는 이번 주 마감 공고 건수를 반환한다.
// GET /api/job-listings/this-week-count
func (h *JobListingHandler) ThisWeekCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	count, err := h.service.ThisWeekCount(r.Context(), userID, h.now())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

// Upcoming 은 마감이 임박한 공고 목록을 반환한다.
// GET /api/job-listings/upcoming
func (h *JobListingHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	listings, err := h.service.Upcoming(r.Context(), userID, h.now())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toJobListingResponses(listings))
}

// parseYearMonth 는 year/month 쿼리 파라미터를 해석한다.
// 실패 시 400을 쓰고 false를 반환한다.
func parseYearMonth(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("year 파라미터가 올바르지 않습니다"))
		return 0, 0, false
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("month 파라미터가 올바르지 않습니다"))
		return 0, 0, false
	}
	return year, month, true
}
