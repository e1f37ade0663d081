package model

import "time"

// ApplicationStatus 는 지원 내역의 상태를 표현한다.
// 네 가지 기본 상태 외에 면접 단계 라벨(인적성, AI면접, 1차면접, 2차면접)이
// 표시 목적의 상태 값으로 그대로 저장될 수 있다.
type ApplicationStatus string

const (
	ApplicationStatusActive    ApplicationStatus = "active"
	ApplicationStatusReviewing ApplicationStatus = "reviewing"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
	ApplicationStatusAccepted  ApplicationStatus = "accepted"
)

// 면접 단계 라벨. 상태 컬럼에 그대로 저장되는 표시용 값.
const (
	InterviewStageAptitude  ApplicationStatus = "인적성"
	InterviewStageAI        ApplicationStatus = "AI면접"
	InterviewStageFirst     ApplicationStatus = "1차면접"
	InterviewStageSecond    ApplicationStatus = "2차면접"
)

// Application 은 지원 내역을 표현한다.
// Deadline 은 YYYY-MM-DD 문자열, AppliedAt 은 타임스탬프.
// Stage 와 Progress 는 고정된 전형 단계 목록에서 항상 함께 설정된다.
type Application struct {
	ID        string
	UserID    string
	Company   string
	Position  string
	Stage     string
	Progress  int
	Deadline  *string
	AppliedAt time.Time
	Status    ApplicationStatus
	URL       string
	CreatedAt time.Time
	UpdatedAt time.Time
}
