package dateutil

import (
	"errors"
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// TestCalculateDDay 는 자정 절단 + 올림 일수 계산을 검증한다.
func TestCalculateDDay(t *testing.T) {
	ref := time.Date(2026, 3, 10, 15, 30, 0, 0, time.Local) // 시각은 절단되어야 한다

	tests := []struct {
		name     string
		deadline *string
		want     int
		wantOK   bool
	}{
		{"미래 마감", strPtr("2026-03-15"), 5, true},
		{"오늘 마감", strPtr("2026-03-10"), 0, true},
		{"지난 마감", strPtr("2026-03-07"), -3, true},
		{"마감일 없음", nil, 0, false},
		{"빈 문자열", strPtr(""), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := CalculateDDay(tt.deadline, ref)
			if err != nil {
				t.Fatalf("CalculateDDay() error = %v", err)
			}
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("days = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestCalculateDDay_InvalidDate 는 형식이 잘못된 날짜가 명시적 에러가 되는 것을 검증한다.
func TestCalculateDDay_InvalidDate(t *testing.T) {
	_, _, err := CalculateDDay(strPtr("03/15/2026"), date(2026, 3, 10))
	if !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("err = %v, want ErrInvalidDate", err)
	}
}

// TestCalculateDDay_Ordering 은 d1 < d2 에 대한 부호 속성을 검증한다.
func TestCalculateDDay_Ordering(t *testing.T) {
	d1 := date(2026, 1, 5)
	d2 := "2026-01-20"

	got, _, err := CalculateDDay(&d2, d1)
	if err != nil || got <= 0 {
		t.Errorf("미래 마감은 양수여야 한다: got %d, err %v", got, err)
	}

	d1Str := "2026-01-05"
	got, _, err = CalculateDDay(&d1Str, date(2026, 1, 20))
	if err != nil || got >= 0 {
		t.Errorf("지난 마감은 음수여야 한다: got %d, err %v", got, err)
	}
}

func TestFormatDDay(t *testing.T) {
	ref := date(2026, 3, 10)

	tests := []struct {
		name     string
		deadline *string
		want     string
	}{
		{"없음", nil, "-"},
		{"오늘", strPtr("2026-03-10"), "D-Day"},
		{"남음", strPtr("2026-03-17"), "D-7"},
		{"지남", strPtr("2026-03-08"), "D+2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatDDay(tt.deadline, ref)
			if err != nil {
				t.Fatalf("FormatDDay() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// TestFormatDDayExpired 는 지원 현황 쪽 정책(음수 → 마감)을 검증한다.
func TestFormatDDayExpired(t *testing.T) {
	ref := date(2026, 3, 10)

	past := "2026-03-01"
	got, err := FormatDDayExpired(&past, ref)
	if err != nil {
		t.Fatalf("FormatDDayExpired() error = %v", err)
	}
	if got != "마감" {
		t.Errorf("got %q, want 마감", got)
	}

	future := "2026-03-13"
	got, _ = FormatDDayExpired(&future, ref)
	if got != "D-3" {
		t.Errorf("got %q, want D-3", got)
	}
}

// TestWeekStart 는 월요일 시작과 일요일의 직전 주 귀속을 검증한다.
func TestWeekStart(t *testing.T) {
	// 2026-03-09 는 월요일
	monday := date(2026, 3, 9)

	tests := []struct {
		name string
		in   time.Time
	}{
		{"월요일", date(2026, 3, 9)},
		{"수요일", date(2026, 3, 11)},
		{"토요일", date(2026, 3, 14)},
		{"일요일은 직전 주", date(2026, 3, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekStart(tt.in); !got.Equal(monday) {
				t.Errorf("WeekStart(%s) = %s, want %s", Format(tt.in), Format(got), Format(monday))
			}
		})
	}
}

func TestWeekEnd(t *testing.T) {
	end := WeekEnd(date(2026, 3, 11))
	want := time.Date(2026, 3, 15, 23, 59, 59, 999999999, time.Local)
	if !end.Equal(want) {
		t.Errorf("WeekEnd = %v, want %v", end, want)
	}

	// WeekEnd(WeekStart(d)) 는 항상 같은 주의 일요일 끝
	if got := WeekEnd(WeekStart(date(2026, 3, 15))); !got.Equal(want) {
		t.Errorf("WeekEnd(WeekStart) = %v, want %v", got, want)
	}
}

// TestMonthGrid 는 그리드의 형태 속성을 검증한다.
func TestMonthGrid(t *testing.T) {
	today := date(2026, 3, 10)

	for _, tc := range []struct {
		year  int
		month time.Month
	}{
		{2026, time.March},
		{2026, time.February},
		{2024, time.February}, // 윤년
		{2026, time.August},
	} {
		cells := MonthGrid(tc.year, tc.month, today)

		if len(cells)%7 != 0 {
			t.Errorf("%d-%d: 셀 수 %d 는 7의 배수가 아니다", tc.year, tc.month, len(cells))
		}

		first := time.Date(tc.year, tc.month, 1, 0, 0, 0, 0, time.Local)
		minCells := int(first.Weekday()) + DaysInMonth(tc.year, tc.month)
		if len(cells) < minCells {
			t.Errorf("%d-%d: 셀 수 %d < 최소 %d", tc.year, tc.month, len(cells), minCells)
		}

		inMonth := 0
		for _, c := range cells {
			if c.InMonth {
				inMonth++
			}
		}
		if inMonth != DaysInMonth(tc.year, tc.month) {
			t.Errorf("%d-%d: InMonth 셀 수 = %d, want %d", tc.year, tc.month, inMonth, DaysInMonth(tc.year, tc.month))
		}
	}
}

// TestMonthGrid_IsToday 는 표시 중인 달과 무관한 실제 오늘 판정을 검증한다.
func TestMonthGrid_IsToday(t *testing.T) {
	today := date(2026, 3, 10)

	cells := MonthGrid(2026, time.March, today)
	found := false
	for _, c := range cells {
		if c.IsToday {
			found = true
			if c.Day != 10 {
				t.Errorf("IsToday 셀의 Day = %d, want 10", c.Day)
			}
		}
	}
	if !found {
		t.Error("같은 달 그리드에 IsToday 셀이 없다")
	}

	// 다른 달에는 IsToday 셀이 없어야 한다
	for _, c := range MonthGrid(2026, time.April, today) {
		if c.IsToday {
			t.Error("다른 달 그리드에 IsToday 셀이 있다")
		}
	}
}
