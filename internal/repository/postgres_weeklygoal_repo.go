package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jiwoolab/track/internal/model"
)

// PostgresWeeklyGoalRepo 는 PostgreSQL을 사용한 주간 목표 리포지토리.
type PostgresWeeklyGoalRepo struct {
	db *sql.DB
}

// NewPostgresWeeklyGoalRepo 는 PostgresWeeklyGoalRepo를 생성한다.
func NewPostgresWeeklyGoalRepo(db *sql.DB) *PostgresWeeklyGoalRepo {
	return &PostgresWeeklyGoalRepo{db: db}
}

// ListByYearMonth 는 지정 월(YYYY-MM)의 주간 목표를 주차 오름차순으로 반환한다.
func (r *PostgresWeeklyGoalRepo) ListByYearMonth(ctx context.Context, userID, yearMonth string) ([]*model.WeeklyGoal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, year_month, week, goal, created_at, updated_at
		 FROM weekly_goals
		 WHERE user_id = $1 AND year_month = $2
		 ORDER BY week ASC`,
		userID, yearMonth,
	)
	if err != nil {
		return nil, fmt.Errorf("주간 목표 일람 조회에 실패했습니다: %w", err)
	}
	defer rows.Close()

	var goals []*model.WeeklyGoal
	for rows.Next() {
		goal := &model.WeeklyGoal{}
		err := rows.Scan(
			&goal.ID, &goal.UserID, &goal.YearMonth, &goal.Week,
			&goal.Goal, &goal.CreatedAt, &goal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("주간 목표 스캔에 실패했습니다: %w", err)
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("주간 목표 읽기에 실패했습니다: %w", err)
	}

	return goals, nil
}

// Upsert 는 (user_id, year_month, week) 단위로 목표를 생성하거나 덮어쓴다.
// 확정된 행을 반환한다.
func (r *PostgresWeeklyGoalRepo) Upsert(ctx context.Context, goal *model.WeeklyGoal) (*model.WeeklyGoal, error) {
	saved := &model.WeeklyGoal{}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO weekly_goals (id, user_id, year_month, week, goal, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (user_id, year_month, week)
		 DO UPDATE SET goal = EXCLUDED.goal, updated_at = EXCLUDED.updated_at
		 RETURNING id, user_id, year_month, week, goal, created_at, updated_at`,
		goal.ID, goal.UserID, goal.YearMonth, goal.Week,
		goal.Goal, goal.CreatedAt, goal.UpdatedAt,
	).Scan(
		&saved.ID, &saved.UserID, &saved.YearMonth, &saved.Week,
		&saved.Goal, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("주간 목표 저장에 실패했습니다: %w", err)
	}

	return saved, nil
}

// DeleteByUserID 는 사용자의 모든 주간 목표를 삭제한다.
func (r *PostgresWeeklyGoalRepo) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM weekly_goals WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("사용자 주간 목표 삭제에 실패했습니다: %w", err)
	}
	return nil
}

// compile-time interface check
var _ WeeklyGoalRepository = (*PostgresWeeklyGoalRepo)(nil)
