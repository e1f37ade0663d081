// Package model 은 도메인 모델을 정의한다.
package model

import "time"

// User 는 서비스 이용 사용자를 표현한다.
type User struct {
	ID        string
	Email     string
	Name      string
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Identity 는 외부 IdP 와의 연결 정보를 표현한다.
// 장래에 복수 IdP(Google, GitHub 등)에 대응 가능한 구조.
type Identity struct {
	ID             string
	UserID         string
	Provider       string
	ProviderUserID string
	CreatedAt      time.Time
}

// Session 은 사용자의 로그인 세션을 표현한다.
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}
