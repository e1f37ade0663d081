package model

import "time"

// Schedule 은 달력의 특정 날짜에 속하는 일정을 표현한다.
// 같은 달력에 표시되는 지원/공고 마감일과는 독립된 레코드.
type Schedule struct {
	ID        string
	UserID    string
	Title     string
	Date      string // YYYY-MM-DD
	CreatedAt time.Time
}
