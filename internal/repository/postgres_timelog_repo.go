package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jiwoolab/track/internal/model"
)

// PostgresTimeLogRepo 는 PostgreSQL을 사용한 타임 로그 리포지토리.
type PostgresTimeLogRepo struct {
	db *sql.DB
}

// NewPostgresTimeLogRepo 는 PostgresTimeLogRepo를 생성한다.
func NewPostgresTimeLogRepo(db *sql.DB) *PostgresTimeLogRepo {
	return &PostgresTimeLogRepo{db: db}
}

const timeLogColumns = `id, user_id, category, content, to_char(date, 'YYYY-MM-DD'),
	start_hour, end_hour, created_at, updated_at`

// FindByID 는 지정 ID의 로그를 가져온다. 없으면 nil을 반환한다.
func (r *PostgresTimeLogRepo) FindByID(ctx context.Context, id string) (*model.TimeLog, error) {
	log := &model.TimeLog{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+timeLogColumns+` FROM time_logs WHERE id = $1`,
		id,
	).Scan(
		&log.ID, &log.UserID, &log.Category, &log.Content, &log.Date,
		&log.StartHour, &log.EndHour, &log.CreatedAt, &log.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("타임 로그 조회에 실패했습니다: %w", err)
	}

	return log, nil
}

// ListByDateRange 는 날짜가 [from, to] 범위에 있는 로그를
// 날짜·시작 시각 오름차순으로 반환한다. 겹치는 블록도 그대로 반환한다.
func (r *PostgresTimeLogRepo) ListByDateRange(ctx context.Context, userID, from, to string) ([]*model.TimeLog, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+timeLogColumns+` FROM time_logs
		 WHERE user_id = $1 AND date >= $2 AND date <= $3
		 ORDER BY date ASC, start_hour ASC`,
		userID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("타임 로그 일람 조회에 실패했습니다: %w", err)
	}
	defer rows.Close()

	var logs []*model.TimeLog
	for rows.Next() {
		log := &model.TimeLog{}
		err := rows.Scan(
			&log.ID, &log.UserID, &log.Category, &log.Content, &log.Date,
			&log.StartHour, &log.EndHour, &log.CreatedAt, &log.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("타임 로그 스캔에 실패했습니다: %w", err)
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("타임 로그 읽기에 실패했습니다: %w", err)
	}

	return logs, nil
}

// Create 는 로그를 생성한다.
func (r *PostgresTimeLogRepo) Create(ctx context.Context, log *model.TimeLog) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO time_logs
		 (id, user_id, category, content, date, start_hour, end_hour, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		log.ID, log.UserID, log.Category, log.Content, log.Date,
		log.StartHour, log.EndHour, log.CreatedAt, log.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("타임 로그 생성에 실패했습니다: %w", err)
	}
	return nil
}

// Update 는 로그를 전체 필드 치환으로 갱신한다.
func (r *PostgresTimeLogRepo) Update(ctx context.Context, log *model.TimeLog) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE time_logs SET
		    category = $2, content = $3, date = $4,
		    start_hour = $5, end_hour = $6, updated_at = $7
		 WHERE id = $1`,
		log.ID, log.Category, log.Content, log.Date,
		log.StartHour, log.EndHour, log.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("타임 로그 갱신에 실패했습니다: %w", err)
	}
	return nil
}

// Delete 는 지정 ID의 로그를 삭제한다.
func (r *PostgresTimeLogRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM time_logs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("타임 로그 삭제에 실패했습니다: %w", err)
	}
	return nil
}

// DeleteByUserID 는 사용자의 모든 로그를 삭제한다.
func (r *PostgresTimeLogRepo) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM time_logs WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("사용자 타임 로그 삭제에 실패했습니다: %w", err)
	}
	return nil
}

// compile-time interface check
var _ TimeLogRepository = (*PostgresTimeLogRepo)(nil)
