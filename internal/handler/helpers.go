// Package handler 는 HTTP 핸들러를 제공한다.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jiwoolab/track/internal/middleware"
	"github.com/jiwoolab/track/internal/model"
)

// apiErrorResponse 는 통일 에러 포맷의 JSON 표현.
type apiErrorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

// writeJSON 은 값을 JSON으로 직렬화해 응답에 쓴다.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// writeAPIErrorResponse 는 통일 에러 포맷으로 에러 응답을 쓴다.
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	writeJSON(w, statusCode, apiErrorResponse{
		Code:     apiErr.Code,
		Message:  apiErr.Message,
		Category: apiErr.Category,
		Action:   apiErr.Action,
	})
}

// requireUserID 는 컨텍스트에서 사용자 ID를 가져온다.
// 없으면 401을 쓰고 false를 반환한다.
func requireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return "", false
	}
	return userID, true
}

// decodeBody 는 요청 바디를 JSON으로 해석한다.
// 실패 시 400을 쓰고 false를 반환한다.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("요청 바디 해석에 실패했습니다"))
		return false
	}
	return true
}

// handleServiceError 는 서비스 계층의 에러를 적절한 HTTP 상태 코드로 변환한다.
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		writeAPIErrorResponse(w, mapAPIErrorToHTTPStatus(apiErr), apiErr)
		return
	}

	// APIError 이외의 에러는 내부 서버 에러로 취급
	slog.Error("내부 에러가 발생했습니다", slog.String("error", err.Error()))
	writeAPIErrorResponse(w, http.StatusInternalServerError, &model.APIError{
		Code:     "INTERNAL_ERROR",
		Message:  "내부 에러가 발생했습니다.",
		Category: "system",
		Action:   "잠시 후 다시 시도해 주세요.",
	})
}

// mapAPIErrorToHTTPStatus 는 APIError 코드를 HTTP 상태 코드로 매핑한다.
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case model.ErrCodeInvalidRequest,
		model.ErrCodeInvalidDate,
		model.ErrCodeInvalidCompanySize,
		model.ErrCodeInvalidStage,
		model.ErrCodeInvalidStatus,
		model.ErrCodeInvalidRoutineKey,
		model.ErrCodeInvalidCategory,
		model.ErrCodeInvalidTimeRange,
		model.ErrCodeInvalidWeek,
		model.ErrCodeInvalidURL:
		return http.StatusBadRequest
	case model.ErrCodeSelfCheckOnly, model.ErrCodeNotFinalStage:
		return http.StatusConflict
	case model.ErrCodeListingNotFound,
		model.ErrCodeAppNotFound,
		model.ErrCodeScheduleNotFound,
		model.ErrCodeScrapNotFound,
		model.ErrCodeTimeLogNotFound,
		model.ErrCodeStickerNotFound,
		model.ErrCodeUserNotFound:
		return http.StatusNotFound
	case model.ErrCodeSSRFBlocked:
		return http.StatusForbidden
	case model.ErrCodeFetchFailed:
		return http.StatusBadGateway
	case model.ErrCodeParseFailed:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
