// Package dateutil 은 날짜·마감일 계산의 순수 함수를 제공한다.
//
// 달력과 D-Day 계산은 타임존 드리프트를 피하기 위해 항상 YYYY-MM-DD
// 문자열 표현 위에서 동작한다. 이 포맷 선택은 와이어 포맷 그대로
// 보존되어야 하는 계약의 일부다.
package dateutil

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Layout 은 날짜 문자열의 고정 포맷.
const Layout = "2006-01-02"

// ErrInvalidDate 는 YYYY-MM-DD 로 해석할 수 없는 날짜 문자열에 대해 반환된다.
var ErrInvalidDate = errors.New("유효하지 않은 날짜 형식")

// Parse 는 YYYY-MM-DD 문자열을 로컬 자정 시각으로 해석한다.
func Parse(s string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidDate, s)
	}
	return t, nil
}

// Format 은 시각을 YYYY-MM-DD 문자열로 변환한다.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Truncate 는 시각을 그 날의 자정으로 잘라낸다.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// CalculateDDay 는 마감일까지 남은 일수를 계산한다.
// 양쪽 모두 자정으로 잘라낸 뒤 일 단위 차이를 올림한다.
// 0은 오늘 마감, 양수는 남은 일수, 음수는 지난 일수.
// 마감일이 없으면(nil) ok=false 를 반환한다.
// 형식이 잘못된 문자열은 ErrInvalidDate 로 명시적으로 실패한다.
func CalculateDDay(deadline *string, reference time.Time) (days int, ok bool, err error) {
	if deadline == nil || *deadline == "" {
		return 0, false, nil
	}

	d, err := Parse(*deadline)
	if err != nil {
		return 0, false, err
	}

	diff := d.Sub(Truncate(reference))
	days = int(math.Ceil(diff.Hours() / 24))
	return days, true, nil
}

// FormatDDay 는 D-Day 정수를 표시 문자열로 변환한다.
// 마감일 없음 → "-", 0 → "D-Day", 양수 → "D-{n}", 음수 → "D+{n}".
func FormatDDay(deadline *string, reference time.Time) (string, error) {
	days, ok, err := CalculateDDay(deadline, reference)
	if err != nil {
		return "", err
	}
	if !ok {
		return "-", nil
	}
	switch {
	case days == 0:
		return "D-Day", nil
	case days > 0:
		return fmt.Sprintf("D-%d", days), nil
	default:
		return fmt.Sprintf("D+%d", -days), nil
	}
}

// FormatDDayExpired 는 FormatDDay 와 같지만 음수를 "마감" 으로 표시한다.
// 지원 현황 화면의 표시 정책. 두 정책은 통합하지 않고 별도 함수로 유지한다.
func FormatDDayExpired(deadline *string, reference time.Time) (string, error) {
	days, ok, err := CalculateDDay(deadline, reference)
	if err != nil {
		return "", err
	}
	if !ok {
		return "-", nil
	}
	switch {
	case days == 0:
		return "D-Day", nil
	case days > 0:
		return fmt.Sprintf("D-%d", days), nil
	default:
		return "마감", nil
	}
}

// WeekStart 는 주의 시작(월요일 자정)을 반환한다.
// 일요일(요일 인덱스 0)은 직전 주의 마지막 날로 취급한다:
// diff = day − dow + (dow==0 ? −6 : 1). 이 일요일 처리는 계약이며
// 단순한 date − dow 계산으로 대체하면 일요일이 다음 주로 잘못 들어간다.
func WeekStart(t time.Time) time.Time {
	t = Truncate(t)
	dow := int(t.Weekday())
	offset := 1 - dow
	if dow == 0 {
		offset = -6
	}
	return t.AddDate(0, 0, offset)
}

// WeekEnd 는 주의 끝(일요일 하루의 끝)을 반환한다.
// 와이어 포맷은 날짜 단위지만 범위 비교를 위해 나노초 단위의 하루 끝을 쓴다.
func WeekEnd(t time.Time) time.Time {
	end := WeekStart(t).AddDate(0, 0, 6)
	return time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 999999999, end.Location())
}

// GridCell 은 달력 그리드의 셀 하나를 표현한다.
// 빈 셀(앞뒤 패딩)은 Day가 0이고 InMonth가 false.
type GridCell struct {
	Day     int
	Date    string // YYYY-MM-DD, 빈 셀은 ""
	InMonth bool
	IsToday bool
}

// DaysInMonth 는 해당 월의 일수를 반환한다.
func DaysInMonth(year int, month time.Month) int {
	// 다음 달 0일 = 이번 달 마지막 날
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// MonthGrid 는 달력 그리드 셀을 생성한다.
// 1일의 요일만큼 앞쪽 빈 셀, 날짜별 셀, 전체가 7의 배수가 되도록 뒤쪽 빈 셀.
// IsToday 는 표시 중인 달과 무관하게 실제 오늘과의 연/월/일 일치로 판정한다.
func MonthGrid(year int, month time.Month, today time.Time) []GridCell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	leading := int(first.Weekday())
	days := DaysInMonth(year, month)

	total := leading + days
	if rem := total % 7; rem != 0 {
		total += 7 - rem
	}

	cells := make([]GridCell, 0, total)
	for i := 0; i < leading; i++ {
		cells = append(cells, GridCell{})
	}
	for day := 1; day <= days; day++ {
		isToday := year == today.Year() && month == today.Month() && day == today.Day()
		cells = append(cells, GridCell{
			Day:     day,
			Date:    Format(time.Date(year, month, day, 0, 0, 0, 0, time.Local)),
			InMonth: true,
			IsToday: isToday,
		})
	}
	for len(cells) < total {
		cells = append(cells, GridCell{})
	}

	return cells
}
