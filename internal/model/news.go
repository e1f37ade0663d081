package model

import "time"

// NewsScrap 은 경제 뉴스 스크랩을 표현한다. 상태 필드가 없는 순수 기록.
// Content 는 새니타이즈된 리치 텍스트 HTML.
type NewsScrap struct {
	ID          string
	UserID      string
	ArticleURL  string
	Headline    string
	Content     string
	AppliedRole string
	Industry    string
	CompanyName string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
