package application

import "fmt"

// WeeklyStat 은 이번 주 지원 건수의 통계 카드 표시값.
type WeeklyStat struct {
	Count      int
	Percentage int
	Subtitle   string
}

// NewWeeklyStat 은 주간 지원 건수에서 통계를 계산한다.
// 퍼센티지는 min(건수*50, 100).
func NewWeeklyStat(count int) WeeklyStat {
	percentage := count * 50
	if percentage > 100 {
		percentage = 100
	}

	var subtitle string
	switch {
	case count == 0:
		subtitle = "이번 주 지원 내역이 없어요!"
	case count == 1:
		subtitle = "1개 완료! 1개 더 지원해보세요"
	default:
		subtitle = fmt.Sprintf("%d개 완료! 목표 달성 🎉", count)
	}

	return WeeklyStat{Count: count, Percentage: percentage, Subtitle: subtitle}
}
