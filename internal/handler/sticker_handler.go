package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jiwoolab/track/internal/model"
)

// StickerServiceInterface 는 스티커 메모 핸들러가 필요로 하는 서비스 인터페이스.
type StickerServiceInterface interface {
	List(ctx context.Context, userID string) ([]*model.Sticker, error)
	Create(ctx context.Context, userID, text string) (*model.Sticker, error)
	UpdateText(ctx context.Context, userID, id, text string) (*model.Sticker, error)
	Toggle(ctx context.Context, userID, id string) (*model.Sticker, error)
	Delete(ctx context.Context, userID, id string) error
}

// StickerHandler 는 스티커 메모 관련 HTTP 핸들러.
type StickerHandler struct {
	service StickerServiceInterface
}

// NewStickerHandler 는 StickerHandler 를 생성한다.
func NewStickerHandler(service StickerServiceInterface) *StickerHandler {
	return &StickerHandler{service: service}
}

// stickerResponse 는 스티커의 JSON 표현.
type stickerResponse struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toStickerResponse(sticker *model.Sticker) stickerResponse {
	return stickerResponse{
		ID:          sticker.ID,
		Text:        sticker.Text,
		IsCompleted: sticker.IsCompleted,
		CreatedAt:   sticker.CreatedAt,
		UpdatedAt:   sticker.UpdatedAt,
	}
}

// stickerRequest 는 스티커 생성/갱신 요청 바디. 빈 텍스트도 허용한다.
type stickerRequest struct {
	Text string `json:"text"`
}

// List 는 스티커를 생성일 오름차순으로 반환한다.
// GET /api/stickers
func (h *StickerHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	stickers, err := h.service.List(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]stickerResponse, 0, len(stickers))
	for _, sticker := range stickers {
		responses = append(responses, toStickerResponse(sticker))
	}
	writeJSON(w, http.StatusOK, responses)
}

// Create 는 스티커를 등록한다.
// POST /api/stickers
func (h *StickerHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req stickerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sticker, err := h.service.Create(r.Context(), userID, req.Text)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toStickerResponse(sticker))
}

// Update 는 스티커 텍스트를 갱신한다. 완료 여부는 유지된다.
// PUT /api/stickers/{id}
func (h *StickerHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req stickerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sticker, err := h.service.UpdateText(r.Context(), userID, chi.URLParam(r, "id"), req.Text)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toStickerResponse(sticker))
}

// Toggle 은 스티커의 완료 여부를 뒤집는다.
// POST /api/stickers/{id}/toggle
func (h *StickerHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	sticker, err := h.service.Toggle(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toStickerResponse(sticker))
}

// Delete 는 스티커를 삭제한다.
// DELETE /api/stickers/{id}
func (h *StickerHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
