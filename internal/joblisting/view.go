// Package joblisting 은 관심 채용 공고의 관리와 캘린더 투영을 제공한다.
package joblisting

import (
	"strings"

	"github.com/jiwoolab/track/internal/model"
)

// DayBadgeLimit 는 캘린더 한 칸에 표시하는 회사 배지 수.
// 초과분은 "+N" 표시로 접는다.
const DayBadgeLimit = 2

// Filter 는 공고 일람의 필터 조건.
// Company 는 부분 일치(대소문자 무시), Position 과 CompanySize 는 완전 일치.
// 빈 값은 조건 없음으로 취급한다.
type Filter struct {
	Company     string
	Position    string
	CompanySize string
}

// Apply 는 필터 조건에 맞는 공고만 남긴다.
func (f Filter) Apply(listings []*model.JobListing) []*model.JobListing {
	var filtered []*model.JobListing
	companyQuery := strings.ToLower(f.Company)

	for _, listing := range listings {
		if companyQuery != "" && !strings.Contains(strings.ToLower(listing.Company), companyQuery) {
			continue
		}
		if f.Position != "" && listing.Position != f.Position {
			continue
		}
		if f.CompanySize != "" {
			if listing.CompanySize == nil || string(*listing.CompanySize) != f.CompanySize {
				continue
			}
		}
		filtered = append(filtered, listing)
	}

	return filtered
}

// GroupByDeadline 은 공고를 마감일 문자열로 묶는다.
// 마감일 없는 공고는 제외된다.
func GroupByDeadline(listings []*model.JobListing) map[string][]*model.JobListing {
	grouped := make(map[string][]*model.JobListing)
	for _, listing := range listings {
		if listing.Deadline == nil || *listing.Deadline == "" {
			continue
		}
		grouped[*listing.Deadline] = append(grouped[*listing.Deadline], listing)
	}
	return grouped
}

// DayBadges 는 하루치 공고에서 표시용 회사 배지와 숨긴 건수를 계산한다.
func DayBadges(listings []*model.JobListing) (companies []string, overflow int) {
	for i, listing := range listings {
		if i >= DayBadgeLimit {
			break
		}
		companies = append(companies, listing.Company)
	}
	if len(listings) > DayBadgeLimit {
		overflow = len(listings) - DayBadgeLimit
	}
	return companies, overflow
}
