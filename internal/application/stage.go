// Package application 은 지원 내역의 전형 단계·버킷·D-day 배지 로직을 제공한다.
package application

// StageStep 은 전형 단계 사다리의 한 칸.
// 단계 라벨과 진행률은 항상 쌍으로 설정된다.
type StageStep struct {
	Label    string
	Progress int
}

// Stages 는 고정된 전형 단계 사다리. 순서가 계약의 일부다.
var Stages = []StageStep{
	{Label: "서류 접수", Progress: 10},
	{Label: "서류합격", Progress: 25},
	{Label: "1차면접 합격", Progress: 50},
	{Label: "2차면접 합격", Progress: 75},
	{Label: "최종합격", Progress: 100},
}

// FinalStage 는 합격 처리가 허용되는 마지막 단계 라벨.
const FinalStage = "최종합격"

// InitialStage 는 공고 전환 시 부여되는 첫 단계 라벨.
const InitialStage = "서류 접수"

// ProgressFor 는 단계 라벨에 대응하는 진행률을 찾는다.
func ProgressFor(stage string) (int, bool) {
	for _, step := range Stages {
		if step.Label == stage {
			return step.Progress, true
		}
	}
	return 0, false
}
