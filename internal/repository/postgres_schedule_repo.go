package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jiwoolab/track/internal/model"
)

// PostgresScheduleRepo 는 PostgreSQL을 사용한 일정 리포지토리.
type PostgresScheduleRepo struct {
	db *sql.DB
}

// NewPostgresScheduleRepo 는 PostgresScheduleRepo를 생성한다.
func NewPostgresScheduleRepo(db *sql.DB) *PostgresScheduleRepo {
	return &PostgresScheduleRepo{db: db}
}

// FindByID 는 지정 ID의 일정을 가져온다. 없으면 nil을 반환한다.
func (r *PostgresScheduleRepo) FindByID(ctx context.Context, id string) (*model.Schedule, error) {
	schedule := &model.Schedule{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, title, to_char(date, 'YYYY-MM-DD'), created_at
		 FROM schedules WHERE id = $1`,
		id,
	).Scan(&schedule.ID, &schedule.UserID, &schedule.Title, &schedule.Date, &schedule.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("일정 조회에 실패했습니다: %w", err)
	}

	return schedule, nil
}

// ListByDateRange 는 날짜가 [from, to] 범위에 있는 일정을 날짜 오름차순으로 반환한다.
func (r *PostgresScheduleRepo) ListByDateRange(ctx context.Context, userID, from, to string) ([]*model.Schedule, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, title, to_char(date, 'YYYY-MM-DD'), created_at
		 FROM schedules
		 WHERE user_id = $1 AND date >= $2 AND date <= $3
		 ORDER BY date ASC, created_at ASC`,
		userID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("일정 일람 조회에 실패했습니다: %w", err)
	}
	defer rows.Close()

	var schedules []*model.Schedule
	for rows.Next() {
		schedule := &model.Schedule{}
		if err := rows.Scan(&schedule.ID, &schedule.UserID, &schedule.Title, &schedule.Date, &schedule.CreatedAt); err != nil {
			return nil, fmt.Errorf("일정 스캔에 실패했습니다: %w", err)
		}
		schedules = append(schedules, schedule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("일정 읽기에 실패했습니다: %w", err)
	}

	return schedules, nil
}

// Create 는 일정을 생성한다.
func (r *PostgresScheduleRepo) Create(ctx context.Context, schedule *model.Schedule) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO schedules (id, user_id, title, date, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		schedule.ID, schedule.UserID, schedule.Title, schedule.Date, schedule.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("일정 생성에 실패했습니다: %w", err)
	}
	return nil
}

// Delete 는 지정 ID의 일정을 삭제한다.
func (r *PostgresScheduleRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("일정 삭제에 실패했습니다: %w", err)
	}
	return nil
}

// DeleteByUserID 는 사용자의 모든 일정을 삭제한다.
func (r *PostgresScheduleRepo) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM schedules WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("사용자 일정 삭제에 실패했습니다: %w", err)
	}
	return nil
}

// compile-time interface check
var _ ScheduleRepository = (*PostgresScheduleRepo)(nil)
