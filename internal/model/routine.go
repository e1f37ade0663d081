package model

import "time"

// RoutineCheckType 은 루틴의 완료 판정 방식을 표현한다.
type RoutineCheckType string

const (
	// CheckTypeSelf 는 사용자가 직접 토글하는 루틴.
	CheckTypeSelf RoutineCheckType = "self"
	// CheckTypeAuto 는 대응하는 행동이 처음 발생했을 때 자동으로 완료되는 루틴.
	// 한 번 완료되면 해제되지 않는다.
	CheckTypeAuto RoutineCheckType = "auto"
)

// 루틴 키. 카탈로그는 internal/routine 패키지에 고정 순서로 정의된다.
const (
	RoutineWakeUp     = "wake_up"
	RoutineExercise   = "exercise"
	RoutineTimeBlock  = "time_block"
	RoutineNewsScrap  = "news_scrap"
	RoutineJobListing = "job_listing"
)

// DailyRoutine 은 특정 날짜의 루틴 완료 기록을 표현한다.
// (user, date, routine_key) 마다 최대 1행.
type DailyRoutine struct {
	ID          string
	UserID      string
	Date        string // YYYY-MM-DD
	RoutineKey  string
	CheckType   RoutineCheckType
	IsCompleted bool
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
