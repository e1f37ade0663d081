package application

import (
	"time"

	"github.com/jiwoolab/track/internal/dateutil"
	"github.com/jiwoolab/track/internal/model"
)

// Badge 는 지원 내역 행에 붙는 D-day 배지의 표시 텍스트와 색상.
type Badge struct {
	Text  string
	Color string
}

// interviewStageColors 는 면접 단계 라벨별 고정 색상.
var interviewStageColors = map[model.ApplicationStatus]string{
	model.InterviewStageAptitude: "purple",
	model.InterviewStageAI:       "cyan",
	model.InterviewStageFirst:    "blue",
	model.InterviewStageSecond:   "indigo",
}

// DDayBadge 는 우선순위 결정표를 위에서부터 평가해 배지를 결정한다.
// 규칙은 첫 일치가 승리한다:
//  1. rejected → 빈 텍스트, 투명 배경
//  2. reviewing → "심사중", amber
//  3. 면접 단계 라벨 → 단계별 고정 색상. 마감일이 있으면 D-day 텍스트,
//     없으면 단계 라벨을 그대로 표시한다.
//  4. 마감일 없음 → "심사중", amber
//  5. 그 외 → 마감 정책의 D-day 텍스트. 색상은 남은 일수로 결정:
//     3일 이하(지난 것 포함) rose, 7일 이하 orange, 그 외 sky
func DDayBadge(app *model.Application, reference time.Time) (Badge, error) {
	if app.Status == model.ApplicationStatusRejected {
		return Badge{Text: "", Color: "transparent"}, nil
	}
	if app.Status == model.ApplicationStatusReviewing {
		return Badge{Text: "심사중", Color: "amber"}, nil
	}

	if color, ok := interviewStageColors[app.Status]; ok {
		_, hasDeadline, err := dateutil.CalculateDDay(app.Deadline, reference)
		if err != nil {
			return Badge{}, err
		}
		if hasDeadline {
			text, err := dateutil.FormatDDayExpired(app.Deadline, reference)
			if err != nil {
				return Badge{}, err
			}
			return Badge{Text: text, Color: color}, nil
		}
		return Badge{Text: string(app.Status), Color: color}, nil
	}

	days, hasDeadline, err := dateutil.CalculateDDay(app.Deadline, reference)
	if err != nil {
		return Badge{}, err
	}
	if !hasDeadline {
		return Badge{Text: "심사중", Color: "amber"}, nil
	}

	color := "sky"
	switch {
	case days <= 3:
		color = "rose"
	case days <= 7:
		color = "orange"
	}

	text, err := dateutil.FormatDDayExpired(app.Deadline, reference)
	if err != nil {
		return Badge{}, err
	}
	return Badge{Text: text, Color: color}, nil
}
