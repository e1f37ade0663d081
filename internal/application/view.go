package application

import (
	"strings"

	"github.com/jiwoolab/track/internal/model"
)

// 버킷별 기본 표시 건수. 초과분은 "더 보기"로 펼친다.
const (
	ActiveVisibleLimit   = 10
	TerminalVisibleLimit = 1
)

// BucketSet 은 지원 내역을 상태별로 분할한 세 버킷.
// active 버킷은 rejected/accepted를 제외한 모든 상태를 포함한다.
type BucketSet struct {
	Active   []*model.Application
	Accepted []*model.Application
	Rejected []*model.Application
}

// Buckets 는 지원 내역을 세 버킷으로 분할한다. 버킷은 서로소다.
func Buckets(apps []*model.Application) BucketSet {
	var set BucketSet
	for _, app := range apps {
		switch app.Status {
		case model.ApplicationStatusRejected:
			set.Rejected = append(set.Rejected, app)
		case model.ApplicationStatusAccepted:
			set.Accepted = append(set.Accepted, app)
		default:
			set.Active = append(set.Active, app)
		}
	}
	return set
}

// FilterByCompany 는 회사명 부분 일치(대소문자 무시)로 추린다.
// 빈 쿼리는 전체를 반환한다.
func FilterByCompany(apps []*model.Application, query string) []*model.Application {
	if query == "" {
		return apps
	}
	lower := strings.ToLower(query)
	var filtered []*model.Application
	for _, app := range apps {
		if strings.Contains(strings.ToLower(app.Company), lower) {
			filtered = append(filtered, app)
		}
	}
	return filtered
}

// FilterByPosition 은 직무 완전 일치로 추린다. 빈 값은 전체를 반환한다.
func FilterByPosition(apps []*model.Application, position string) []*model.Application {
	if position == "" {
		return apps
	}
	var filtered []*model.Application
	for _, app := range apps {
		if app.Position == position {
			filtered = append(filtered, app)
		}
	}
	return filtered
}

// Truncate 는 앞에서 limit건만 남기고 숨긴 건수를 함께 반환한다.
func Truncate(apps []*model.Application, limit int) ([]*model.Application, int) {
	if limit < 0 || len(apps) <= limit {
		return apps, 0
	}
	return apps[:limit], len(apps) - limit
}

// CountByStatus 는 상태별 건수를 센다.
func CountByStatus(apps []*model.Application) map[model.ApplicationStatus]int {
	counts := make(map[model.ApplicationStatus]int)
	for _, app := range apps {
		counts[app.Status]++
	}
	return counts
}
