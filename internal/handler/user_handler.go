package handler

import (
	"context"
	"net/http"

	"github.com/jiwoolab/track/internal/model"
)

// UserServiceInterface 는 사용자 핸들러가 필요로 하는 서비스 인터페이스.
type UserServiceInterface interface {
	Profile(ctx context.Context, userID string) (*model.User, error)
	Withdraw(ctx context.Context, userID string) error
}

// UserHandler 는 사용자 프로필·탈퇴 관련 HTTP 핸들러.
type UserHandler struct {
	service      UserServiceInterface
	cookieDomain string
	cookieSecure bool
}

// NewUserHandler 는 UserHandler 를 생성한다.
func NewUserHandler(service UserServiceInterface, cookieDomain string, cookieSecure bool) *UserHandler {
	return &UserHandler{
		service:      service,
		cookieDomain: cookieDomain,
		cookieSecure: cookieSecure,
	}
}

// Profile 은 현재 사용자의 프로필을 반환한다.
// GET /api/users/me
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	user, err := h.service.Profile(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":         user.ID,
		"email":      user.Email,
		"name":       user.Name,
		"avatar_url": user.AvatarURL,
	})
}

// Withdraw 는 사용자의 모든 데이터를 삭제하고 계정을 탈퇴 처리한다.
// 세션도 함께 삭제되므로 쿠키를 클리어한다.
// DELETE /api/users/me
func (h *UserHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.service.Withdraw(r.Context(), userID); err != nil {
		handleServiceError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.cookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	w.WriteHeader(http.StatusNoContent)
}
