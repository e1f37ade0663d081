package model

import "time"

// CompanySize 는 기업 규모를 표현한다.
type CompanySize string

const (
	CompanySizeLarge   CompanySize = "대기업"
	CompanySizeMidsize CompanySize = "중견기업"
	CompanySizeSmall   CompanySize = "중소기업"
	CompanySizeStartup CompanySize = "스타트업"
)

// ValidCompanySize 는 규모 값이 허용 목록에 있는지 검증한다.
func ValidCompanySize(s CompanySize) bool {
	switch s {
	case CompanySizeLarge, CompanySizeMidsize, CompanySizeSmall, CompanySizeStartup:
		return true
	}
	return false
}

// ListingStatus 는 채용 공고의 지원 여부 표시 상태를 표현한다.
type ListingStatus string

const (
	ListingStatusNotApplied ListingStatus = "Not applied"
	ListingStatusApplied    ListingStatus = "Applied"
)

// JobListing 은 관심 채용 공고를 표현한다.
// Deadline 은 YYYY-MM-DD 문자열이며 마감일이 없는 공고는 nil.
type JobListing struct {
	ID          string
	UserID      string
	Company     string
	Position    string
	Location    string
	Industry    string
	CompanySize *CompanySize
	Status      ListingStatus
	Deadline    *string
	JobPostURL  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
