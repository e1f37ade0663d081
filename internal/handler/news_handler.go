package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jiwoolab/track/internal/model"
	"github.com/jiwoolab/track/internal/news"
)

// NewsServiceInterface 는 뉴스 스크랩 핸들러가 필요로 하는 서비스 인터페이스.
type NewsServiceInterface interface {
	List(ctx context.Context, userID string) ([]*model.NewsScrap, error)
	Create(ctx context.Context, userID string, input news.ScrapInput) (*model.NewsScrap, error)
	Update(ctx context.Context, userID, id string, input news.ScrapInput) (*model.NewsScrap, error)
	Delete(ctx context.Context, userID, id string) error
}

// ArticleFetcherInterface 는 기사 제목 미리보기 페처 인터페이스.
type ArticleFetcherInterface interface {
	Fetch(ctx context.Context, rawURL string) (*news.ArticleMeta, error)
}

// FeedPreviewerInterface 는 RSS 피드 미리보기 인터페이스.
type FeedPreviewerInterface interface {
	Preview(ctx context.Context, feedURL string) (*news.FeedPreview, error)
}

// FetchRecorder 는 외부 기사 취득의 성공/실패를 계측한다.
type FetchRecorder interface {
	RecordArticleFetchSuccess()
	RecordArticleFetchFailure(reason string)
}

// NewsHandler 는 뉴스 스크랩 관련 HTTP 핸들러.
type NewsHandler struct {
	service   NewsServiceInterface
	fetcher   ArticleFetcherInterface
	previewer FeedPreviewerInterface
	recorder  FetchRecorder
}

// NewNewsHandler 는 NewsHandler 를 생성한다.
// recorder 는 nil이면 계측 없이 동작한다.
func NewNewsHandler(service NewsServiceInterface, fetcher ArticleFetcherInterface, previewer FeedPreviewerInterface, recorder FetchRecorder) *NewsHandler {
	return &NewsHandler{
		service:   service,
		fetcher:   fetcher,
		previewer: previewer,
		recorder:  recorder,
	}
}

func (h *NewsHandler) recordFetch(err error) {
	if h.recorder == nil {
		return
	}
	if err != nil {
		var apiErr *model.APIError
		reason := "fetch_error"
		if errors.As(err, &apiErr) {
			reason = apiErr.Code
		}
		h.recorder.RecordArticleFetchFailure(reason)
		return
	}
	h.recorder.RecordArticleFetchSuccess()
}

// newsScrapResponse 는 뉴스 스크랩의 JSON 표현.
type newsScrapResponse struct {
	ID          string    `json:"id"`
	ArticleURL  string    `json:"article_url"`
	Headline    string    `json:"headline"`
	Content     string    `json:"content"`
	AppliedRole string    `json:"applied_role"`
	Industry    string    `json:"industry"`
	CompanyName string    `json:"company_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toNewsScrapResponse(scrap *model.NewsScrap) newsScrapResponse {
	return newsScrapResponse{
		ID:          scrap.ID,
		ArticleURL:  scrap.ArticleURL,
		Headline:    scrap.Headline,
		Content:     scrap.Content,
		AppliedRole: scrap.AppliedRole,
		Industry:    scrap.Industry,
		CompanyName: scrap.CompanyName,
		CreatedAt:   scrap.CreatedAt,
		UpdatedAt:   scrap.UpdatedAt,
	}
}

// newsScrapRequest 는 스크랩 생성/갱신 요청 바디.
type newsScrapRequest struct {
	ArticleURL  string `json:"article_url"`
	Headline    string `json:"headline"`
	Content     string `json:"content"`
	AppliedRole string `json:"applied_role"`
	Industry    string `json:"industry"`
	CompanyName string `json:"company_name"`
}

func (req newsScrapRequest) toInput() news.ScrapInput {
	return news.ScrapInput{
		ArticleURL:  req.ArticleURL,
		Headline:    req.Headline,
		Content:     req.Content,
		AppliedRole: req.AppliedRole,
		Industry:    req.Industry,
		CompanyName: req.CompanyName,
	}
}

// List 는 스크랩을 생성일 내림차순으로 반환한다.
// GET /api/news-scraps
func (h *NewsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	scraps, err := h.service.List(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]newsScrapResponse, 0, len(scraps))
	for _, scrap := range scraps {
		responses = append(responses, toNewsScrapResponse(scrap))
	}
	writeJSON(w, http.StatusOK, responses)
}

// Create 는 스크랩을 등록한다.
// POST /api/news-scraps
func (h *NewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req newsScrapRequest
	if !decodeBody(w, r, &req) {
		return
	}

	scrap, err := h.service.Create(r.Context(), userID, req.toInput())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toNewsScrapResponse(scrap))
}

// Update 는 스크랩을 전체 갱신한다.
// PUT /api/news-scraps/{id}
func (h *NewsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req newsScrapRequest
	if !decodeBody(w, r, &req) {
		return
	}

	scrap, err := h.service.Update(r.Context(), userID, chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toNewsScrapResponse(scrap))
}

// Delete 는 스크랩을 삭제한다.
// DELETE /api/news-scraps/{id}
func (h *NewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// Preview 는 기사 URL의 제목을 가져온다.
// GET /api/news-scraps/preview?url=https://...
func (h *NewsHandler) Preview(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("url 파라미터가 필요합니다"))
		return
	}

	meta, err := h.fetcher.Fetch(r.Context(), rawURL)
	h.recordFetch(err)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"url":   meta.URL,
		"title": meta.Title,
	})
}

// feedItemResponse 는 피드 항목의 JSON 표현.
type feedItemResponse struct {
	Title       string     `json:"title"`
	Link        string     `json:"link"`
	PublishedAt *time.Time `json:"published_at"`
}

// FeedPreviewHandler 는 RSS 피드의 최근 기사 목록을 가져온다.
// GET /api/news-scraps/feed?url=https://...
func (h *NewsHandler) FeedPreviewHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	feedURL := r.URL.Query().Get("url")
	if feedURL == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("url 파라미터가 필요합니다"))
		return
	}

	preview, err := h.previewer.Preview(r.Context(), feedURL)
	h.recordFetch(err)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	items := make([]feedItemResponse, 0, len(preview.Items))
	for _, item := range preview.Items {
		items = append(items, feedItemResponse{
			Title:       item.Title,
			Link:        item.Link,
			PublishedAt: item.PublishedAt,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"feed_title": preview.FeedTitle,
		"items":      items,
	})
}
