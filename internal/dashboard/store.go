package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jiwoolab/track/internal/model"
)

// RoutinePersister 는 셀프 체크 토글을 영속화한다.
type RoutinePersister interface {
	ToggleSelfCheck(ctx context.Context, userID, date, key string) (*model.DailyRoutine, error)
}

// ScrapDeleter 는 뉴스 스크랩 삭제를 영속화한다.
type ScrapDeleter interface {
	Delete(ctx context.Context, userID, id string) error
}

// StickerPersister 는 스티커의 완료 토글과 본문 수정을 영속화한다.
type StickerPersister interface {
	Toggle(ctx context.Context, userID, id string) (*model.Sticker, error)
	UpdateText(ctx context.Context, userID, id, text string) (*model.Sticker, error)
}

// Store 는 원본 컬렉션과 파생 지표를 담는 대시보드 상태 컨테이너.
// 모든 변경은 스냅샷 → 낙관적 적용 → 영속화 → 반영 또는 롤백의
// 단계를 거친다. 영속화 실패 시 재시도 없이 스냅샷으로 되돌린다.
type Store struct {
	mu      sync.Mutex
	userID  string
	state   State
	metrics Metrics

	routines RoutinePersister
	scraps   ScrapDeleter
	stickers StickerPersister
	logger   *slog.Logger
	now      func() time.Time
}

// NewStore 는 초기 컬렉션으로 Store를 생성하고 지표를 계산한다.
func NewStore(userID string, initial State, routines RoutinePersister, scraps ScrapDeleter, stickers StickerPersister, logger *slog.Logger) *Store {
	s := &Store{
		userID:   userID,
		state:    initial,
		routines: routines,
		scraps:   scraps,
		stickers: stickers,
		logger:   logger,
		now:      time.Now,
	}
	s.metrics = ComputeMetrics(s.state, s.now())
	return s
}

// Metrics 는 현재 지표의 복사본을 반환한다.
func (s *Store) Metrics() Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metrics
}

// State 는 현재 원본 컬렉션의 얕은 복사본을 반환한다.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneState(s.state)
}

// Replace 는 컬렉션 전체를 치환하고 지표를 재계산한다.
// 서버 측 재조회 결과를 반영할 때 사용한다.
func (s *Store) Replace(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.metrics = ComputeMetrics(s.state, s.now())
}

// ToggleSelfRoutine 은 셀프 체크 루틴을 낙관적으로 토글한다.
// 영속화에 성공하면 서버가 돌려준 행으로 교체하고,
// 실패하면 변경 전 상태로 되돌린 뒤 에러를 반환한다.
func (s *Store) ToggleSelfRoutine(ctx context.Context, date, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := cloneState(s.state)

	s.applyRoutineToggle(date, key)
	s.metrics = ComputeMetrics(s.state, s.now())

	persisted, err := s.routines.ToggleSelfCheck(ctx, s.userID, date, key)
	if err != nil {
		s.state = snapshot
		s.metrics = ComputeMetrics(s.state, s.now())
		s.logger.Warn("루틴 토글 영속화에 실패하여 롤백했습니다",
			slog.String("date", date), slog.String("key", key), slog.String("error", err.Error()))
		return fmt.Errorf("루틴 토글에 실패했습니다: %w", err)
	}

	s.reconcileRoutine(persisted)
	s.metrics = ComputeMetrics(s.state, s.now())
	return nil
}

// RemoveScrap 은 뉴스 스크랩을 낙관적으로 삭제한다.
func (s *Store) RemoveScrap(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := cloneState(s.state)

	kept := s.state.Scraps[:0:0]
	for _, scrap := range s.state.Scraps {
		if scrap.ID != id {
			kept = append(kept, scrap)
		}
	}
	s.state.Scraps = kept
	s.metrics = ComputeMetrics(s.state, s.now())

	if err := s.scraps.Delete(ctx, s.userID, id); err != nil {
		s.state = snapshot
		s.metrics = ComputeMetrics(s.state, s.now())
		s.logger.Warn("스크랩 삭제 영속화에 실패하여 롤백했습니다",
			slog.String("id", id), slog.String("error", err.Error()))
		return fmt.Errorf("스크랩 삭제에 실패했습니다: %w", err)
	}

	return nil
}

// ToggleSticker 는 스티커의 완료 상태를 낙관적으로 반전한다.
func (s *Store) ToggleSticker(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := cloneState(s.state)

	s.applySticker(id, func(sticker *model.Sticker) {
		sticker.IsCompleted = !sticker.IsCompleted
	})
	s.metrics = ComputeMetrics(s.state, s.now())

	persisted, err := s.stickers.Toggle(ctx, s.userID, id)
	if err != nil {
		s.state = snapshot
		s.metrics = ComputeMetrics(s.state, s.now())
		s.logger.Warn("스티커 토글 영속화에 실패하여 롤백했습니다",
			slog.String("id", id), slog.String("error", err.Error()))
		return fmt.Errorf("스티커 토글에 실패했습니다: %w", err)
	}

	s.reconcileSticker(persisted)
	s.metrics = ComputeMetrics(s.state, s.now())
	return nil
}

// UpdateStickerText 는 스티커 본문을 낙관적으로 수정한다.
func (s *Store) UpdateStickerText(ctx context.Context, id, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := cloneState(s.state)

	s.applySticker(id, func(sticker *model.Sticker) {
		sticker.Text = text
	})
	s.metrics = ComputeMetrics(s.state, s.now())

	persisted, err := s.stickers.UpdateText(ctx, s.userID, id, text)
	if err != nil {
		s.state = snapshot
		s.metrics = ComputeMetrics(s.state, s.now())
		s.logger.Warn("스티커 수정 영속화에 실패하여 롤백했습니다",
			slog.String("id", id), slog.String("error", err.Error()))
		return fmt.Errorf("스티커 수정에 실패했습니다: %w", err)
	}

	s.reconcileSticker(persisted)
	s.metrics = ComputeMetrics(s.state, s.now())
	return nil
}

// applyRoutineToggle 은 오늘·이번 주 컬렉션에서 해당 행을 반전한다.
// 행이 없으면 완료 상태의 새 행을 추가한다.
func (s *Store) applyRoutineToggle(date, key string) {
	flip := func(rows []*model.DailyRoutine) ([]*model.DailyRoutine, bool) {
		out := make([]*model.DailyRoutine, len(rows))
		found := false
		for i, r := range rows {
			if r.Date == date && r.RoutineKey == key {
				flipped := *r
				flipped.IsCompleted = !r.IsCompleted
				out[i] = &flipped
				found = true
				continue
			}
			out[i] = r
		}
		return out, found
	}

	var found bool
	if s.state.TodayRoutines, found = flip(s.state.TodayRoutines); !found {
		s.state.TodayRoutines = append(s.state.TodayRoutines, &model.DailyRoutine{
			UserID: s.userID, Date: date, RoutineKey: key, IsCompleted: true,
		})
	}
	if s.state.WeekRoutines, found = flip(s.state.WeekRoutines); !found {
		s.state.WeekRoutines = append(s.state.WeekRoutines, &model.DailyRoutine{
			UserID: s.userID, Date: date, RoutineKey: key, IsCompleted: true,
		})
	}
}

// applySticker 는 해당 스티커의 복사본에 변경을 적용해 제자리에 교체한다.
func (s *Store) applySticker(id string, mutate func(*model.Sticker)) {
	out := make([]*model.Sticker, len(s.state.Stickers))
	for i, sticker := range s.state.Stickers {
		if sticker.ID == id {
			changed := *sticker
			mutate(&changed)
			out[i] = &changed
			continue
		}
		out[i] = sticker
	}
	s.state.Stickers = out
}

// reconcileSticker 는 영속화된 스티커로 낙관적 스티커를 교체한다.
func (s *Store) reconcileSticker(persisted *model.Sticker) {
	for i, sticker := range s.state.Stickers {
		if sticker.ID == persisted.ID {
			s.state.Stickers[i] = persisted
		}
	}
}

// reconcileRoutine 은 영속화된 행으로 낙관적 행을 교체한다.
func (s *Store) reconcileRoutine(persisted *model.DailyRoutine) {
	replace := func(rows []*model.DailyRoutine) []*model.DailyRoutine {
		for i, r := range rows {
			if r.Date == persisted.Date && r.RoutineKey == persisted.RoutineKey {
				rows[i] = persisted
			}
		}
		return rows
	}
	s.state.TodayRoutines = replace(s.state.TodayRoutines)
	s.state.WeekRoutines = replace(s.state.WeekRoutines)
}

func cloneState(state State) State {
	return State{
		TodayRoutines: append([]*model.DailyRoutine(nil), state.TodayRoutines...),
		WeekRoutines:  append([]*model.DailyRoutine(nil), state.WeekRoutines...),
		Applications:  append([]*model.Application(nil), state.Applications...),
		Scraps:        append([]*model.NewsScrap(nil), state.Scraps...),
		Stickers:      append([]*model.Sticker(nil), state.Stickers...),
	}
}
