package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jiwoolab/track/internal/application"
	"github.com/jiwoolab/track/internal/model"
)

// ApplicationServiceInterface 는 지원 내역 핸들러가 필요로 하는 서비스 인터페이스.
type ApplicationServiceInterface interface {
	List(ctx context.Context, userID string) ([]*model.Application, error)
	Create(ctx context.Context, userID string, input application.CreateInput) (*model.Application, error)
	Update(ctx context.Context, userID, id string, input application.UpdateInput) (*model.Application, error)
	Delete(ctx context.Context, userID, id string) error
	Reject(ctx context.Context, userID, id string) (*model.Application, error)
	Restore(ctx context.Context, userID, id string) (*model.Application, error)
	Accept(ctx context.Context, userID, id string) (*model.Application, error)
	WeeklyCount(ctx context.Context, userID string, reference time.Time) (application.WeeklyStat, error)
	UpcomingDeadlines(ctx context.Context, userID string, reference time.Time) ([]*model.Application, error)
}

// ApplicationHandler 는 지원 내역 관련 HTTP 핸들러.
type ApplicationHandler struct {
	service ApplicationServiceInterface
	now     func() time.Time
}

// NewApplicationHandler 는 ApplicationHandler 를 생성한다.
func NewApplicationHandler(service ApplicationServiceInterface) *ApplicationHandler {
	return &ApplicationHandler{
		service: service,
		now:     time.Now,
	}
}

// applicationResponse 는 지원 내역의 JSON 표현.
type applicationResponse struct {
	ID        string    `json:"id"`
	Company   string    `json:"company"`
	Position  string    `json:"position"`
	Stage     string    `json:"stage"`
	Progress  int       `json:"progress"`
	Deadline  *string   `json:"deadline"`
	AppliedAt time.Time `json:"applied_at"`
	Status    string    `json:"status"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toApplicationResponse(app *model.Application) applicationResponse {
	return applicationResponse{
		ID:        app.ID,
		Company:   app.Company,
		Position:  app.Position,
		Stage:     app.Stage,
		Progress:  app.Progress,
		Deadline:  app.Deadline,
		AppliedAt: app.AppliedAt,
		Status:    string(app.Status),
		URL:       app.URL,
		CreatedAt: app.CreatedAt,
		UpdatedAt: app.UpdatedAt,
	}
}

// badgeResponse 는 D-day 배지의 JSON 표현.
type badgeResponse struct {
	Text  string `json:"text"`
	Color string `json:"color"`
}

// applicationItemResponse 는 목록 한 행의 표현. 배지를 포함한다.
type applicationItemResponse struct {
	applicationResponse
	Badge badgeResponse `json:"badge"`
}

// bucketResponse 는 상태 버킷 하나의 표현.
// Hidden 은 기본 표시 건수를 넘어 숨겨진 건수.
type bucketResponse struct {
	Items  []applicationItemResponse `json:"items"`
	Hidden int                       `json:"hidden"`
	Total  int                       `json:"total"`
}

// applicationListResponse 는 상태별 세 버킷으로 분할한 목록 표현.
type applicationListResponse struct {
	Active   bucketResponse `json:"active"`
	Accepted bucketResponse `json:"accepted"`
	Rejected bucketResponse `json:"rejected"`
}

// applicationRequest 는 지원 내역 생성/갱신 요청 바디.
type applicationRequest struct {
	Company  string  `json:"company"`
	Position string  `json:"position"`
	Stage    string  `json:"stage"`
	Status   string  `json:"status"`
	Deadline *string `json:"deadline"`
	URL      string  `json:"url"`
}

// List 는 지원 내역을 상태별 버킷으로 나눠 반환한다.
// 각 행에는 D-day 배지가 붙고, 버킷별 기본 표시 건수를 넘는 행은
// expand=true 가 아닌 한 잘라서 숨긴 건수만 알려준다.
// GET /api/applications?company=&position=&expand=
func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	apps, err := h.service.List(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	apps = application.FilterByCompany(apps, r.URL.Query().Get("company"))
	apps = application.FilterByPosition(apps, r.URL.Query().Get("position"))
	expand := r.URL.Query().Get("expand") == "true"

	buckets := application.Buckets(apps)
	reference := h.now()

	active, err := h.toBucketResponse(buckets.Active, application.ActiveVisibleLimit, expand, reference)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	accepted, err := h.toBucketResponse(buckets.Accepted, application.TerminalVisibleLimit, expand, reference)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	rejected, err := h.toBucketResponse(buckets.Rejected, application.TerminalVisibleLimit, expand, reference)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, applicationListResponse{
		Active:   active,
		Accepted: accepted,
		Rejected: rejected,
	})
}

func (h *ApplicationHandler) toBucketResponse(apps []*model.Application, limit int, expand bool, reference time.Time) (bucketResponse, error) {
	total := len(apps)
	hidden := 0
	if !expand {
		apps, hidden = application.Truncate(apps, limit)
	}

	items := make([]applicationItemResponse, 0, len(apps))
	for _, app := range apps {
		badge, err := application.DDayBadge(app, reference)
		if err != nil {
			return bucketResponse{}, err
		}
		items = append(items, applicationItemResponse{
			applicationResponse: toApplicationResponse(app),
			Badge:               badgeResponse{Text: badge.Text, Color: badge.Color},
		})
	}

	return bucketResponse{Items: items, Hidden: hidden, Total: total}, nil
}

// Create 는 지원 내역을 등록한다.
// POST /api/applications
func (h *ApplicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req applicationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	app, err := h.service.Create(r.Context(), userID, application.CreateInput{
		Company:  req.Company,
		Position: req.Position,
		Stage:    req.Stage,
		Deadline: req.Deadline,
		URL:      req.URL,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toApplicationResponse(app))
}

// Update 는 지원 내역을 전체 갱신한다.
// PUT /api/applications/{id}
func (h *ApplicationHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req applicationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	app, err := h.service.Update(r.Context(), userID, chi.URLParam(r, "id"), application.UpdateInput{
		Company:  req.Company,
		Position: req.Position,
		Stage:    req.Stage,
		Status:   model.ApplicationStatus(req.Status),
		Deadline: req.Deadline,
		URL:      req.URL,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toApplicationResponse(app))
}

// Delete 는 지원 내역을 삭제한다.
// DELETE /api/applications/{id}
func (h *ApplicationHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// Reject 는 지원 내역을 불합격 처리한다.
// POST /api/applications/{id}/reject
func (h *ApplicationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Reject)
}

// Restore 는 불합격 처리한 지원 내역을 진행 중으로 되돌린다.
// POST /api/applications/{id}/restore
func (h *ApplicationHandler) Restore(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Restore)
}

// Accept 는 최종 단계의 지원 내역을 합격 처리한다.
// POST /api/applications/{id}/accept
func (h *ApplicationHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Accept)
}

func (h *ApplicationHandler) transition(w http.ResponseWriter, r *http.Request, fn func(context.Context, string, string) (*model.Application, error)) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	app, err := fn(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toApplicationResponse(app))
}

// weeklyStatResponse 는 이번 주 지원 통계 카드의 JSON 표현.
type weeklyStatResponse struct {
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
	Subtitle   string `json:"subtitle"`
}

// WeeklyStat 은 이번 주 지원 건수 통계를 반환한다.
// GET /api/applications/weekly-stat
func (h *ApplicationHandler) WeeklyStat(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	stat, err := h.service.WeeklyCount(r.Context(), userID, h.now())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, weeklyStatResponse{
		Count:      stat.Count,
		Percentage: stat.Percentage,
		Subtitle:   stat.Subtitle,
	})
}

// Upcoming 은 마감이 임박한 진행 중 지원 내역을 반환한다.
// GET /api/applications/upcoming
func (h *ApplicationHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	apps, err := h.service.UpcomingDeadlines(r.Context(), userID, h.now())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	reference := h.now()
	items := make([]applicationItemResponse, 0, len(apps))
	for _, app := range apps {
		badge, err := application.DDayBadge(app, reference)
		if err != nil {
			handleServiceError(w, err)
			return
		}
		items = append(items, applicationItemResponse{
			applicationResponse: toApplicationResponse(app),
			Badge:               badgeResponse{Text: badge.Text, Color: badge.Color},
		})
	}

	writeJSON(w, http.StatusOK, items)
}
