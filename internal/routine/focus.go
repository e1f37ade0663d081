package routine

import (
	"math"

	"github.com/jiwoolab/track/internal/model"
)

// Tier 는 집중도 퍼센티지에 대응하는 색상과 코멘트.
type Tier struct {
	Color   string
	Comment string
}

// FocusPercentage 는 하루 루틴 완료율을 계산한다.
// 분모는 항상 카탈로그 크기(5)이며 행 수가 아니다.
// 카탈로그에 없는 키의 행은 무시한다.
func FocusPercentage(routines []*model.DailyRoutine) int {
	completed := 0
	for _, r := range routines {
		if _, ok := DefinitionByKey(r.RoutineKey); !ok {
			continue
		}
		if r.IsCompleted {
			completed++
		}
	}
	return int(math.Round(100 * float64(completed) / float64(len(Catalogue))))
}

// WeeklyAverage 는 하루 단위 집중도의 평균을 계산한다.
// 대상 일수가 0이면 0을 반환한다.
func WeeklyAverage(dayPercentages []int) int {
	if len(dayPercentages) == 0 {
		return 0
	}
	sum := 0
	for _, p := range dayPercentages {
		sum += p
	}
	return int(math.Round(float64(sum) / float64(len(dayPercentages))))
}

// TierFor 는 퍼센티지(0~100)를 색상·코멘트 티어로 변환한다.
// 경계값 30과 70은 낮은 티어에 포함된다.
func TierFor(percentage int) Tier {
	switch {
	case percentage <= 30:
		return Tier{Color: "red", Comment: "...뭐하세요?"}
	case percentage <= 70:
		return Tier{Color: "yellow", Comment: "힘내세요"}
	default:
		return Tier{Color: "green", Comment: "고생했어요~"}
	}
}
