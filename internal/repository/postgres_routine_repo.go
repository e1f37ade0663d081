package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jiwoolab/track/internal/model"
)

// PostgresDailyRoutineRepo 는 PostgreSQL을 사용한 일일 루틴 리포지토리.
// (user_id, date, routine_key) UNIQUE 제약이 자동 체크의 최대 1회 효과를 보증한다.
type PostgresDailyRoutineRepo struct {
	db *sql.DB
}

// NewPostgresDailyRoutineRepo 는 PostgresDailyRoutineRepo를 생성한다.
func NewPostgresDailyRoutineRepo(db *sql.DB) *PostgresDailyRoutineRepo {
	return &PostgresDailyRoutineRepo{db: db}
}

const routineColumns = `id, user_id, to_char(date, 'YYYY-MM-DD'), routine_key,
	check_type, is_completed, completed_at, created_at, updated_at`

// scanRoutine 은 한 행을 DailyRoutine으로 스캔한다.
func scanRoutine(scan func(dest ...any) error) (*model.DailyRoutine, error) {
	routine := &model.DailyRoutine{}
	var completedAt sql.NullTime

	err := scan(
		&routine.ID, &routine.UserID, &routine.Date, &routine.RoutineKey,
		&routine.CheckType, &routine.IsCompleted, &completedAt,
		&routine.CreatedAt, &routine.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if completedAt.Valid {
		routine.CompletedAt = &completedAt.Time
	}

	return routine, nil
}

// FindByUserDateKey 는 (user, date, key)의 기록을 가져온다. 없으면 nil을 반환한다.
func (r *PostgresDailyRoutineRepo) FindByUserDateKey(ctx context.Context, userID, date, key string) (*model.DailyRoutine, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+routineColumns+` FROM daily_routine_status
		 WHERE user_id = $1 AND date = $2 AND routine_key = $3`,
		userID, date, key,
	)

	routine, err := scanRoutine(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("루틴 기록 조회에 실패했습니다: %w", err)
	}
	return routine, nil
}

// ListByUserAndDate 는 지정 날짜의 기록을 모두 반환한다.
func (r *PostgresDailyRoutineRepo) ListByUserAndDate(ctx context.Context, userID, date string) ([]*model.DailyRoutine, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+routineColumns+` FROM daily_routine_status
		 WHERE user_id = $1 AND date = $2`,
		userID, date,
	)
	if err != nil {
		return nil, fmt.Errorf("일일 루틴 조회에 실패했습니다: %w", err)
	}
	defer rows.Close()

	return collectRoutines(rows)
}

// ListByUserAndDateRange 는 날짜가 [from, to] 범위에 있는 기록을 반환한다.
func (r *PostgresDailyRoutineRepo) ListByUserAndDateRange(ctx context.Context, userID, from, to string) ([]*model.DailyRoutine, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+routineColumns+` FROM daily_routine_status
		 WHERE user_id = $1 AND date >= $2 AND date <= $3
		 ORDER BY date ASC`,
		userID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("주간 루틴 조회에 실패했습니다: %w", err)
	}
	defer rows.Close()

	return collectRoutines(rows)
}

// Create 는 기록을 생성한다.
func (r *PostgresDailyRoutineRepo) Create(ctx context.Context, routine *model.DailyRoutine) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO daily_routine_status
		 (id, user_id, date, routine_key, check_type, is_completed, completed_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		routine.ID, routine.UserID, routine.Date, routine.RoutineKey,
		routine.CheckType, routine.IsCompleted, routine.CompletedAt,
		routine.CreatedAt, routine.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("루틴 기록 생성에 실패했습니다: %w", err)
	}
	return nil
}

// Update 는 기록을 갱신한다.
func (r *PostgresDailyRoutineRepo) Update(ctx context.Context, routine *model.DailyRoutine) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE daily_routine_status SET
		    is_completed = $2, completed_at = $3, updated_at = $4
		 WHERE id = $1`,
		routine.ID, routine.IsCompleted, routine.CompletedAt, routine.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("루틴 기록 갱신에 실패했습니다: %w", err)
	}
	return nil
}

// InsertIfAbsent 는 (user, date, key)에 기록이 없을 때만 삽입한다.
// 자동 체크의 단조·최대 1회 효과를 UNIQUE 제약 + DO NOTHING 으로 보증한다.
func (r *PostgresDailyRoutineRepo) InsertIfAbsent(ctx context.Context, routine *model.DailyRoutine) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO daily_routine_status
		 (id, user_id, date, routine_key, check_type, is_completed, completed_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (user_id, date, routine_key) DO NOTHING`,
		routine.ID, routine.UserID, routine.Date, routine.RoutineKey,
		routine.CheckType, routine.IsCompleted, routine.CompletedAt,
		routine.CreatedAt, routine.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("루틴 기록 삽입에 실패했습니다: %w", err)
	}
	return nil
}

// DeleteByUserID 는 사용자의 모든 기록을 삭제한다.
func (r *PostgresDailyRoutineRepo) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM daily_routine_status WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("사용자 루틴 기록 삭제에 실패했습니다: %w", err)
	}
	return nil
}

func collectRoutines(rows *sql.Rows) ([]*model.DailyRoutine, error) {
	var routines []*model.DailyRoutine
	for rows.Next() {
		routine, err := scanRoutine(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("루틴 기록 스캔에 실패했습니다: %w", err)
		}
		routines = append(routines, routine)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("루틴 기록 읽기에 실패했습니다: %w", err)
	}
	return routines, nil
}

// compile-time interface check
var _ DailyRoutineRepository = (*PostgresDailyRoutineRepo)(nil)
