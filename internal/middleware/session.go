// Package middleware 는 HTTP 미들웨어를 제공한다.
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jiwoolab/track/internal/model"
)

const sessionCookieName = "session_id"

// contextKey 는 컨텍스트에 값을 저장하기 위한 타입 안전한 키.
type contextKey string

// userIDContextKey 는 요청 컨텍스트에 사용자 ID를 저장하기 위한 키.
var userIDContextKey = contextKey("user_id")

// SessionFinder 는 세션 검색에 필요한 인터페이스.
// repository.SessionRepository 의 부분 집합으로 정의한다.
type SessionFinder interface {
	FindByID(ctx context.Context, id string) (*model.Session, error)
}

// NewSessionMiddleware 는 HTTP Only Cookie에서 세션을 읽어 유효성을
// 검증하는 미들웨어를 반환한다. 인증된 사용자 ID를 요청 컨텍스트에 주입하며
// 미인증 요청에는 401 Unauthorized를 반환한다.
func NewSessionMiddleware(sessionFinder SessionFinder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessionCookieName)
			if err != nil || cookie.Value == "" {
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}

			session, err := sessionFinder.FindByID(r.Context(), cookie.Value)
			if err != nil {
				slog.Error("세션 조회에 실패했습니다",
					slog.String("error", err.Error()),
				)
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}
			if session == nil {
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}

			ctx := context.WithValue(r.Context(), userIDContextKey, session.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext 는 요청 컨텍스트에서 사용자 ID를 가져온다.
// 세션 미들웨어를 통과한 요청에서만 유효하다.
func UserIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(userIDContextKey).(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("컨텍스트에 사용자 ID가 없습니다")
	}
	return userID, nil
}

// ContextWithUserID 는 컨텍스트에 사용자 ID를 주입한다.
// 테스트 등 미들웨어 밖에서 컨텍스트를 만들 때 사용한다.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}
