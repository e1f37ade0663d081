// Package routine 은 데일리 루틴 카탈로그와 집중도 계산을 제공한다.
package routine

import "github.com/jiwoolab/track/internal/model"

// Definition 은 카탈로그에 등록된 루틴 하나를 표현한다.
type Definition struct {
	Key       string
	Label     string
	CheckType model.RoutineCheckType
}

// Catalogue 는 고정된 5개 루틴을 표시 순서대로 나열한다.
// self 루틴은 사용자가 직접 토글하고, auto 루틴은 대응하는 행동이
// 그날 처음 발생했을 때 자동으로 완료 처리된다.
var Catalogue = []Definition{
	{Key: model.RoutineWakeUp, Label: "기상 (오전 8시 이전)", CheckType: model.CheckTypeSelf},
	{Key: model.RoutineExercise, Label: "운동 (최소 10분)", CheckType: model.CheckTypeSelf},
	{Key: model.RoutineTimeBlock, Label: "타임 블록 계획하기", CheckType: model.CheckTypeAuto},
	{Key: model.RoutineNewsScrap, Label: "경제 뉴스 스크랩", CheckType: model.CheckTypeAuto},
	{Key: model.RoutineJobListing, Label: "기업 리스트 추가", CheckType: model.CheckTypeAuto},
}

// DefinitionByKey 는 키에 해당하는 루틴 정의를 찾는다.
func DefinitionByKey(key string) (Definition, bool) {
	for _, def := range Catalogue {
		if def.Key == key {
			return def, true
		}
	}
	return Definition{}, false
}
