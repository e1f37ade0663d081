// Package model 은 도메인 모델을 정의한다.
package model

import "fmt"

// APIError 는 통일된 에러 포맷을 표현한다.
// UI에 표시할 원인 카테고리와 대처 방법을 포함한다.
type APIError struct {
	Code     string // 에러 코드
	Message  string // 에러 메시지
	Category string // 카테고리: auth, validation, record, fetch, system
	Action   string // 사용자용 대처 방법
}

// Error 는 error 인터페이스를 구현한다.
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 정의된 에러 코드
const (
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidRequest     = "INVALID_REQUEST"
	ErrCodeInvalidDate        = "INVALID_DATE"
	ErrCodeInvalidCompanySize = "INVALID_COMPANY_SIZE"
	ErrCodeInvalidStage       = "INVALID_STAGE"
	ErrCodeInvalidStatus      = "INVALID_STATUS"
	ErrCodeInvalidRoutineKey  = "INVALID_ROUTINE_KEY"
	ErrCodeSelfCheckOnly      = "SELF_CHECK_ONLY"
	ErrCodeInvalidCategory    = "INVALID_CATEGORY"
	ErrCodeInvalidTimeRange   = "INVALID_TIME_RANGE"
	ErrCodeInvalidWeek        = "INVALID_WEEK"
	ErrCodeNotFinalStage      = "NOT_FINAL_STAGE"
	ErrCodeListingNotFound    = "LISTING_NOT_FOUND"
	ErrCodeAppNotFound        = "APPLICATION_NOT_FOUND"
	ErrCodeScheduleNotFound   = "SCHEDULE_NOT_FOUND"
	ErrCodeScrapNotFound      = "SCRAP_NOT_FOUND"
	ErrCodeTimeLogNotFound    = "TIME_LOG_NOT_FOUND"
	ErrCodeStickerNotFound    = "STICKER_NOT_FOUND"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodeInvalidURL         = "INVALID_URL"
	ErrCodeSSRFBlocked        = "SSRF_BLOCKED"
	ErrCodeFetchFailed        = "FETCH_FAILED"
	ErrCodeParseFailed        = "PARSE_FAILED"
)

// NewUnauthorizedError 는 미인증 에러를 생성한다.
// 사용자 식별이 끝나기 전의 모든 데이터 조작은 이 에러로 즉시 실패한다.
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "인증이 필요합니다.",
		Category: "auth",
		Action:   "로그인해 주세요.",
	}
}

// NewInvalidRequestError 는 요청 본문 해석 실패 에러를 생성한다.
func NewInvalidRequestError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  fmt.Sprintf("잘못된 요청입니다: %s", reason),
		Category: "validation",
		Action:   "올바른 JSON 형식으로 요청해 주세요.",
	}
}

// NewInvalidDateError 는 날짜 형식 에러를 생성한다.
func NewInvalidDateError(value string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidDate,
		Message:  fmt.Sprintf("유효하지 않은 날짜입니다: %s", value),
		Category: "validation",
		Action:   "날짜는 YYYY-MM-DD 형식으로 입력해 주세요.",
	}
}

// NewInvalidCompanySizeError 는 기업 규모 값이 허용 목록에 없을 때의 에러를 생성한다.
func NewInvalidCompanySizeError(value string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCompanySize,
		Message:  fmt.Sprintf("유효하지 않은 기업 규모입니다: %s", value),
		Category: "validation",
		Action:   "기업 규모는 대기업, 중견기업, 중소기업, 스타트업 중 하나를 지정해 주세요.",
	}
}

// NewInvalidStageError 는 전형 단계 라벨이 고정 목록에 없을 때의 에러를 생성한다.
func NewInvalidStageError(label string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidStage,
		Message:  fmt.Sprintf("유효하지 않은 전형 단계입니다: %s", label),
		Category: "validation",
		Action:   "전형 단계는 서류 접수, 서류합격, 1차면접 합격, 2차면접 합격, 최종합격 중 하나를 지정해 주세요.",
	}
}

// NewInvalidStatusError 는 지원 상태 값이 유효하지 않을 때의 에러를 생성한다.
func NewInvalidStatusError(status string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidStatus,
		Message:  fmt.Sprintf("유효하지 않은 상태입니다: %s", status),
		Category: "validation",
		Action:   "상태 값을 확인해 주세요.",
	}
}

// NewInvalidRoutineKeyError 는 루틴 키가 카탈로그에 없을 때의 에러를 생성한다.
func NewInvalidRoutineKeyError(key string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRoutineKey,
		Message:  fmt.Sprintf("유효하지 않은 루틴입니다: %s", key),
		Category: "validation",
		Action:   "루틴 키는 wake_up, exercise, time_block, news_scrap, job_listing 중 하나를 지정해 주세요.",
	}
}

// NewSelfCheckOnlyError 는 자동 체크 루틴을 수동으로 토글하려 할 때의 에러를 생성한다.
func NewSelfCheckOnlyError(key string) *APIError {
	return &APIError{
		Code:     ErrCodeSelfCheckOnly,
		Message:  fmt.Sprintf("자동 체크 루틴은 직접 토글할 수 없습니다: %s", key),
		Category: "validation",
		Action:   "해당 루틴은 타임 블록 추가, 뉴스 스크랩, 기업 리스트 추가 시 자동으로 완료됩니다.",
	}
}

// NewInvalidCategoryError 는 타임 로그 카테고리가 고정 목록에 없을 때의 에러를 생성한다.
func NewInvalidCategoryError(category string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCategory,
		Message:  fmt.Sprintf("유효하지 않은 카테고리입니다: %s", category),
		Category: "validation",
		Action:   "카테고리는 고정된 9개 항목 중 하나를 지정해 주세요.",
	}
}

// NewInvalidTimeRangeError 는 타임 로그의 시간 범위가 잘못되었을 때의 에러를 생성한다.
func NewInvalidTimeRangeError(start, end int) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidTimeRange,
		Message:  fmt.Sprintf("유효하지 않은 시간 범위입니다: %d시 ~ %d시", start, end),
		Category: "validation",
		Action:   "시작/종료 시각은 0~23 사이이고 종료가 시작보다 커야 합니다.",
	}
}

// NewInvalidWeekError 는 주간 목표의 주차가 1~4 범위를 벗어났을 때의 에러를 생성한다.
func NewInvalidWeekError(week int) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidWeek,
		Message:  fmt.Sprintf("유효하지 않은 주차입니다: %d", week),
		Category: "validation",
		Action:   "주차는 1~4 중 하나를 지정해 주세요.",
	}
}

// NewNotFinalStageError 는 최종 단계가 아닌 지원을 합격 처리하려 할 때의 에러를 생성한다.
func NewNotFinalStageError(stage string) *APIError {
	return &APIError{
		Code:     ErrCodeNotFinalStage,
		Message:  fmt.Sprintf("최종합격 단계가 아닌 지원은 합격 처리할 수 없습니다: %s", stage),
		Category: "validation",
		Action:   "전형 단계를 최종합격으로 변경한 후 다시 시도해 주세요.",
	}
}

// NewListingNotFoundError 는 채용 공고를 찾을 수 없을 때의 에러를 생성한다.
func NewListingNotFoundError(id string) *APIError {
	return &APIError{
		Code:     ErrCodeListingNotFound,
		Message:  fmt.Sprintf("지정된 채용 공고를 찾을 수 없습니다: %s", id),
		Category: "record",
		Action:   "공고 ID를 확인해 주세요.",
	}
}

// NewApplicationNotFoundError 는 지원 내역을 찾을 수 없을 때의 에러를 생성한다.
func NewApplicationNotFoundError(id string) *APIError {
	return &APIError{
		Code:     ErrCodeAppNotFound,
		Message:  fmt.Sprintf("지정된 지원 내역을 찾을 수 없습니다: %s", id),
		Category: "record",
		Action:   "지원 내역 ID를 확인해 주세요.",
	}
}

// NewScheduleNotFoundError 는 일정을 찾을 수 없을 때의 에러를 생성한다.
func NewScheduleNotFoundError(id string) *APIError {
	return &APIError{
		Code:     ErrCodeScheduleNotFound,
		Message:  fmt.Sprintf("지정된 일정을 찾을 수 없습니다: %s", id),
		Category: "record",
		Action:   "일정 ID를 확인해 주세요.",
	}
}

// NewScrapNotFoundError 는 뉴스 스크랩을 찾을 수 없을 때의 에러를 생성한다.
func NewScrapNotFoundError(id string) *APIError {
	return &APIError{
		Code:     ErrCodeScrapNotFound,
		Message:  fmt.Sprintf("지정된 뉴스 스크랩을 찾을 수 없습니다: %s", id),
		Category: "record",
		Action:   "스크랩 ID를 확인해 주세요.",
	}
}

// NewTimeLogNotFoundError 는 타임 로그를 찾을 수 없을 때의 에러를 생성한다.
func NewTimeLogNotFoundError(id string) *APIError {
	return &APIError{
		Code:     ErrCodeTimeLogNotFound,
		Message:  fmt.Sprintf("지정된 타임 로그를 찾을 수 없습니다: %s", id),
		Category: "record",
		Action:   "타임 로그 ID를 확인해 주세요.",
	}
}

// NewStickerNotFoundError 는 스티커를 찾을 수 없을 때의 에러를 생성한다.
func NewStickerNotFoundError(id string) *APIError {
	return &APIError{
		Code:     ErrCodeStickerNotFound,
		Message:  fmt.Sprintf("지정된 스티커를 찾을 수 없습니다: %s", id),
		Category: "record",
		Action:   "스티커 ID를 확인해 주세요.",
	}
}

// NewUserNotFoundError 는 사용자를 찾을 수 없을 때의 에러를 생성한다.
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  "사용자를 찾을 수 없습니다.",
		Category: "auth",
		Action:   "다시 로그인해 주세요.",
	}
}

// NewInvalidURLError 는 유효하지 않은 URL 에러를 생성한다.
func NewInvalidURLError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidURL,
		Message:  fmt.Sprintf("유효하지 않은 URL입니다: %s", reason),
		Category: "validation",
		Action:   "http:// 또는 https:// 로 시작하는 올바른 URL을 입력해 주세요.",
	}
}

// NewSSRFBlockedError 는 SSRF 차단 에러를 생성한다.
func NewSSRFBlockedError() *APIError {
	return &APIError{
		Code:     ErrCodeSSRFBlocked,
		Message:  "보안 정책에 따라 지정된 URL에 대한 접근이 차단되었습니다.",
		Category: "validation",
		Action:   "공개된 웹사이트 URL을 입력해 주세요. 로컬 네트워크나 사설 IP 접근은 허용되지 않습니다.",
	}
}

// NewFetchFailedError 는 기사/피드 가져오기 실패 에러를 생성한다.
func NewFetchFailedError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeFetchFailed,
		Message:  fmt.Sprintf("URL을 가져오는 데 실패했습니다: %s", reason),
		Category: "fetch",
		Action:   "URL이 올바른지 확인하고 잠시 후 다시 시도해 주세요.",
	}
}

// NewParseFailedError 는 피드 해석 실패 에러를 생성한다.
func NewParseFailedError() *APIError {
	return &APIError{
		Code:     ErrCodeParseFailed,
		Message:  "피드를 해석하는 데 실패했습니다.",
		Category: "fetch",
		Action:   "유효한 RSS/Atom 피드인지 확인해 주세요.",
	}
}
