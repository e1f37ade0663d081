package model

import "time"

// TimeLogCategory 는 타임 로그의 고정 카테고리를 표현한다.
type TimeLogCategory string

const (
	CategoryPersonalStudy TimeLogCategory = "personal_study"
	CategoryOther         TimeLogCategory = "other"
	CategoryRoutine       TimeLogCategory = "routine"
	CategoryInterview     TimeLogCategory = "interview"
	CategoryMeal          TimeLogCategory = "meal"
	CategoryExercise      TimeLogCategory = "exercise"
	CategorySleep         TimeLogCategory = "sleep"
	CategoryResume        TimeLogCategory = "resume"
	CategoryCertificate   TimeLogCategory = "certificate"
)

// CategoryLabels 는 카테고리별 표시 라벨. 9개 고정.
var CategoryLabels = map[TimeLogCategory]string{
	CategoryPersonalStudy: "개인공부",
	CategoryOther:         "기타",
	CategoryRoutine:       "루틴",
	CategoryInterview:     "면접",
	CategoryMeal:          "식사",
	CategoryExercise:      "운동",
	CategorySleep:         "잠",
	CategoryResume:        "자소서",
	CategoryCertificate:   "자격증",
}

// ValidTimeLogCategory 는 카테고리가 고정 목록에 있는지 검증한다.
func ValidTimeLogCategory(c TimeLogCategory) bool {
	_, ok := CategoryLabels[c]
	return ok
}

// TimeLog 는 하루의 시간 블록을 표현한다.
// 같은 날 블록 간 겹침은 허용되며 시작 시각 순으로 쌓아 표시된다.
type TimeLog struct {
	ID        string
	UserID    string
	Category  TimeLogCategory
	Content   string
	Date      string // YYYY-MM-DD
	StartHour int    // 0~23
	EndHour   int    // 0~23, StartHour 보다 커야 한다
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WeeklyGoal 은 월·주차별 목표를 표현한다.
// (user, year_month, week) 마다 1행이며 업서트 의미론을 가진다.
type WeeklyGoal struct {
	ID        string
	UserID    string
	YearMonth string // YYYY-MM
	Week      int    // 1~4
	Goal      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
