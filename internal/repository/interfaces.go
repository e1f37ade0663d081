// Package repository 는 데이터 영속화 인터페이스를 정의한다.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jiwoolab/track/internal/model"
)

// UserRepository 는 사용자 데이터의 영속화 인터페이스.
type UserRepository interface {
	// FindByID 는 지정 ID의 사용자를 가져온다. 없으면 nil을 반환한다.
	FindByID(ctx context.Context, id string) (*model.User, error)

	// CreateWithIdentity 는 사용자와 identity를 같은 트랜잭션으로 생성한다.
	CreateWithIdentity(ctx context.Context, user *model.User, identity *model.Identity) error

	// DeleteByID 는 지정 ID의 사용자를 삭제한다.
	// 연관된 identities는 CASCADE 삭제된다.
	DeleteByID(ctx context.Context, id string) error
}

// IdentityRepository 는 외부 IdP 연결 정보의 영속화 인터페이스.
type IdentityRepository interface {
	// FindByProviderAndProviderUserID 는 provider와 provider_user_id로 identity를 찾는다.
	// 없으면 nil을 반환한다.
	FindByProviderAndProviderUserID(ctx context.Context, provider, providerUserID string) (*model.Identity, error)
}

// SessionRepository 는 세션 데이터의 영속화 인터페이스.
type SessionRepository interface {
	// Create 는 세션을 생성한다.
	Create(ctx context.Context, session *model.Session) error
	// FindByID 는 지정 ID의 세션을 가져온다. 기한이 지났으면 nil을 반환한다.
	FindByID(ctx context.Context, id string) (*model.Session, error)
	// DeleteByID 는 지정 ID의 세션을 삭제한다.
	DeleteByID(ctx context.Context, id string) error
	// DeleteByUserID 는 지정 사용자의 모든 세션을 삭제한다.
	DeleteByUserID(ctx context.Context, userID string) error
}

// JobListingRepository 는 채용 공고 데이터의 영속화 인터페이스.
type JobListingRepository interface {
	// FindByID 는 지정 ID의 공고를 가져온다. 없으면 nil을 반환한다.
	FindByID(ctx context.Context, id string) (*model.JobListing, error)

	// ListByUserID 는 사용자의 공고 일람을 생성일 내림차순으로 반환한다.
	ListByUserID(ctx context.Context, userID string) ([]*model.JobListing, error)

	// ListByDeadlineRange 는 마감일이 [from, to] 범위(YYYY-MM-DD)에 있는
	// 공고를 마감일 오름차순으로 반환한다. 마감일이 없는 공고는 제외한다.
	ListByDeadlineRange(ctx context.Context, userID, from, to string) ([]*model.JobListing, error)

	// CountCreatedSince 는 지정 시각 이후에 생성된 공고 수를 반환한다.
	CountCreatedSince(ctx context.Context, userID string, since time.Time) (int, error)

	// Create 는 공고를 생성한다.
	Create(ctx context.Context, listing *model.JobListing) error

	// Update 는 공고를 전체 필드 치환으로 갱신한다.
	Update(ctx context.Context, listing *model.JobListing) error

	// Delete 는 지정 ID의 공고를 삭제한다.
	Delete(ctx context.Context, id string) error

	// DeleteByUserID 는 사용자의 모든 공고를 삭제한다.
	DeleteByUserID(ctx context.Context, userID string) error
}

// ApplicationRepository 는 지원 내역 데이터의 영속화 인터페이스.
type ApplicationRepository interface {
	// FindByID 는 지정 ID의 지원 내역을 가져온다. 없으면 nil을 반환한다.
	FindByID(ctx context.Context, id string) (*model.Application, error)

	// ListByUserID 는 사용자의 지원 내역을 applied_at 내림차순으로 반환한다.
	ListByUserID(ctx context.Context, userID string) ([]*model.Application, error)

	// ListByDeadlineRange 는 마감일이 [from, to] 범위에 있는 active/reviewing
	// 지원 내역을 마감일 오름차순으로 반환한다.
	ListByDeadlineRange(ctx context.Context, userID, from, to string) ([]*model.Application, error)

	// CountAppliedBetween 은 applied_at이 [from, to] 범위에 있는 지원 수를 반환한다.
	CountAppliedBetween(ctx context.Context, userID string, from, to time.Time) (int, error)

	// Create 는 지원 내역을 생성한다.
	Create(ctx context.Context, app *model.Application) error

	// Update 는 지원 내역을 전체 필드 치환으로 갱신한다.
	Update(ctx context.Context, app *model.Application) error

	// Delete 는 지정 ID의 지원 내역을 삭제한다.
	Delete(ctx context.Context, id string) error

	// DeleteByUserID 는 사용자의 모든 지원 내역을 삭제한다.
	DeleteByUserID(ctx context.Context, userID string) error
}

// ScheduleRepository 는 일정 데이터의 영속화 인터페이스.
type ScheduleRepository interface {
	// FindByID 는 지정 ID의 일정을 가져온다. 없으면 nil을 반환한다.
	FindByID(ctx context.Context, id string) (*model.Schedule, error)

	// ListByDateRange 는 날짜가 [from, to] 범위(YYYY-MM-DD)에 있는 일정을
	// 날짜 오름차순으로 반환한다.
	ListByDateRange(ctx context.Context, userID, from, to string) ([]*model.Schedule, error)

	// Create 는 일정을 생성한다.
	Create(ctx context.Context, schedule *model.Schedule) error

	// Delete 는 지정 ID의 일정을 삭제한다.
	Delete(ctx context.Context, id string) error

	// DeleteByUserID 는 사용자의 모든 일정을 삭제한다.
	DeleteByUserID(ctx context.Context, userID string) error
}

// DailyRoutineRepository 는 일일 루틴 기록의 영속화 인터페이스.
type DailyRoutineRepository interface {
	// FindByUserDateKey 는 (user, date, key)의 기록을 가져온다. 없으면 nil을 반환한다.
	FindByUserDateKey(ctx context.Context, userID, date, key string) (*model.DailyRoutine, error)

	// ListByUserAndDate 는 지정 날짜의 기록을 모두 반환한다.
	// 카탈로그 5개보다 적을 수 있다. 없는 루틴은 미완료로 취급된다.
	ListByUserAndDate(ctx context.Context, userID, date string) ([]*model.DailyRoutine, error)

	// ListByUserAndDateRange 는 날짜가 [from, to] 범위에 있는 기록을 반환한다.
	ListByUserAndDateRange(ctx context.Context, userID, from, to string) ([]*model.DailyRoutine, error)

	// Create 는 기록을 생성한다.
	Create(ctx context.Context, routine *model.DailyRoutine) error

	// Update 는 기록을 갱신한다.
	Update(ctx context.Context, routine *model.DailyRoutine) error

	// InsertIfAbsent 는 (user, date, key)에 기록이 없을 때만 삽입한다.
	// UNIQUE 제약을 이용한 ON CONFLICT DO NOTHING 으로 구현되어
	// N번 호출해도 1번 호출한 것과 같은 효과를 가진다.
	InsertIfAbsent(ctx context.Context, routine *model.DailyRoutine) error

	// DeleteByUserID 는 사용자의 모든 기록을 삭제한다.
	DeleteByUserID(ctx context.Context, userID string) error
}

// NewsScrapRepository 는 뉴스 스크랩 데이터의 영속화 인터페이스.
type NewsScrapRepository interface {
	// FindByID 는 지정 ID의 스크랩을 가져온다. 없으면 nil을 반환한다.
	FindByID(ctx context.Context, id string) (*model.NewsScrap, error)

	// ListByUserID 는 사용자의 스크랩을 생성일 내림차순으로 반환한다.
	ListByUserID(ctx context.Context, userID string) ([]*model.NewsScrap, error)

	// CountCreatedBetween 은 생성일이 [from, to] 범위에 있는 스크랩 수를 반환한다.
	CountCreatedBetween(ctx context.Context, userID string, from, to time.Time) (int, error)

	// Create 는 스크랩을 생성한다.
	Create(ctx context.Context, scrap *model.NewsScrap) error

	// Update 는 스크랩을 전체 필드 치환으로 갱신한다.
	Update(ctx context.Context, scrap *model.NewsScrap) error

	// Delete 는 지정 ID의 스크랩을 삭제한다.
	Delete(ctx context.Context, id string) error

	// DeleteByUserID 는 사용자의 모든 스크랩을 삭제한다.
	DeleteByUserID(ctx context.Context, userID string) error
}

// TimeLogRepository 는 타임 로그 데이터의 영속화 인터페이스.
type TimeLogRepository interface {
	// FindByID 는 지정 ID의 로그를 가져온다. 없으면 nil을 반환한다.
	FindByID(ctx context.Context, id string) (*model.TimeLog, error)

	// ListByDateRange 는 날짜가 [from, to] 범위에 있는 로그를
	// 날짜·시작 시각 오름차순으로 반환한다.
	ListByDateRange(ctx context.Context, userID, from, to string) ([]*model.TimeLog, error)

	// Create 는 로그를 생성한다.
	Create(ctx context.Context, log *model.TimeLog) error

	// Update 는 로그를 전체 필드 치환으로 갱신한다.
	Update(ctx context.Context, log *model.TimeLog) error

	// Delete 는 지정 ID의 로그를 삭제한다.
	Delete(ctx context.Context, id string) error

	// DeleteByUserID 는 사용자의 모든 로그를 삭제한다.
	DeleteByUserID(ctx context.Context, userID string) error
}

// WeeklyGoalRepository 는 주간 목표 데이터의 영속화 인터페이스.
type WeeklyGoalRepository interface {
	// ListByYearMonth 는 지정 월의 목표를 주차 오름차순으로 반환한다.
	ListByYearMonth(ctx context.Context, userID, yearMonth string) ([]*model.WeeklyGoal, error)

	// Upsert 는 (user, year_month, week) 키로 목표를 삽입 또는 치환한다.
	// UNIQUE 제약을 이용한 ON CONFLICT DO UPDATE 로 구현한다.
	Upsert(ctx context.Context, goal *model.WeeklyGoal) (*model.WeeklyGoal, error)

	// DeleteByUserID 는 사용자의 모든 목표를 삭제한다.
	DeleteByUserID(ctx context.Context, userID string) error
}

// StickerRepository 는 스티커 데이터의 영속화 인터페이스.
type StickerRepository interface {
	// FindByID 는 지정 ID의 스티커를 가져온다. 없으면 nil을 반환한다.
	FindByID(ctx context.Context, id string) (*model.Sticker, error)

	// ListByUserID 는 사용자의 스티커를 생성일 오름차순으로 반환한다.
	ListByUserID(ctx context.Context, userID string) ([]*model.Sticker, error)

	// Create 는 스티커를 생성한다.
	Create(ctx context.Context, sticker *model.Sticker) error

	// Update 는 스티커를 갱신한다.
	Update(ctx context.Context, sticker *model.Sticker) error

	// Delete 는 지정 ID의 스티커를 삭제한다.
	Delete(ctx context.Context, id string) error

	// DeleteByUserID 는 사용자의 모든 스티커를 삭제한다.
	DeleteByUserID(ctx context.Context, userID string) error
}

// TxBeginner 는 트랜잭션 시작용 인터페이스.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}
