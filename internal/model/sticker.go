package model

import "time"

// Sticker 는 간단한 할 일 스티커를 표현한다.
// 낙관적 갱신의 대상이며 실패 시 이전 상태로 되돌려진다.
type Sticker struct {
	ID          string
	UserID      string
	Text        string
	IsCompleted bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
