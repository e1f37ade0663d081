package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jiwoolab/track/internal/model"
)

// PostgresApplicationRepo 는 PostgreSQL을 사용한 지원 내역 리포지토리.
type PostgresApplicationRepo struct {
	db *sql.DB
}

// NewPostgresApplicationRepo 는 PostgresApplicationRepo를 생성한다.
func NewPostgresApplicationRepo(db *sql.DB) *PostgresApplicationRepo {
	return &PostgresApplicationRepo{db: db}
}

const applicationColumns = `id, user_id, company, position, stage, progress,
	to_char(deadline, 'YYYY-MM-DD'), applied_at, status, url, created_at, updated_at`

// scanApplication 은 한 행을 Application으로 스캔한다.
func scanApplication(scan func(dest ...any) error) (*model.Application, error) {
	app := &model.Application{}
	var deadline, url sql.NullString

	err := scan(
		&app.ID, &app.UserID, &app.Company, &app.Position,
		&app.Stage, &app.Progress, &deadline, &app.AppliedAt,
		&app.Status, &url, &app.CreatedAt, &app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if deadline.Valid {
		app.Deadline = &deadline.String
	}
	if url.Valid {
		app.URL = url.String
	}

	return app, nil
}

// FindByID 는 지정 ID의 지원 내역을 가져온다. 없으면 nil을 반환한다.
func (r *PostgresApplicationRepo) FindByID(ctx context.Context, id string) (*model.Application, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)

	app, err := scanApplication(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("지원 내역 조회에 실패했습니다: %w", err)
	}
	return app, nil
}

// ListByUserID 는 사용자의 지원 내역을 applied_at 내림차순으로 반환한다.
func (r *PostgresApplicationRepo) ListByUserID(ctx context.Context, userID string) ([]*model.Application, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+applicationColumns+` FROM applications
		 WHERE user_id = $1
		 ORDER BY applied_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("지원 내역 일람 조회에 실패했습니다: %w", err)
	}
	defer rows.Close()

	return collectApplications(rows)
}

// ListByDeadlineRange 는 마감일이 [from, to] 범위에 있는 active/reviewing
// 지원 내역을 마감일 오름차순으로 반환한다.
func (r *PostgresApplicationRepo) ListByDeadlineRange(ctx context.Context, userID, from, to string) ([]*model.Application, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+applicationColumns+` FROM applications
		 WHERE user_id = $1
		   AND status IN ('active', 'reviewing')
		   AND deadline IS NOT NULL AND deadline >= $2 AND deadline <= $3
		 ORDER BY deadline ASC`,
		userID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("마감 임박 지원 조회에 실패했습니다: %w", err)
	}
	defer rows.Close()

	return collectApplications(rows)
}

// CountAppliedBetween 은 applied_at이 [from, to] 범위에 있는 지원 수를 반환한다.
func (r *PostgresApplicationRepo) CountAppliedBetween(ctx context.Context, userID string, from, to time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM applications
		 WHERE user_id = $1 AND applied_at >= $2 AND applied_at <= $3`,
		userID, from, to,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("주간 지원 수 집계에 실패했습니다: %w", err)
	}
	return count, nil
}

// Create 는 지원 내역을 생성한다.
func (r *PostgresApplicationRepo) Create(ctx context.Context, app *model.Application) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO applications
		 (id, user_id, company, position, stage, progress, deadline, applied_at, status, url, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		app.ID, app.UserID, app.Company, app.Position, app.Stage, app.Progress,
		deadlineValue(app.Deadline), app.AppliedAt, app.Status, nullIfEmpty(app.URL),
		app.CreatedAt, app.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("지원 내역 생성에 실패했습니다: %w", err)
	}
	return nil
}

// Update 는 지원 내역을 전체 필드 치환으로 갱신한다.
func (r *PostgresApplicationRepo) Update(ctx context.Context, app *model.Application) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE applications SET
		    company = $2, position = $3, stage = $4, progress = $5,
		    deadline = $6, status = $7, url = $8, updated_at = $9
		 WHERE id = $1`,
		app.ID, app.Company, app.Position, app.Stage, app.Progress,
		deadlineValue(app.Deadline), app.Status, nullIfEmpty(app.URL), app.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("지원 내역 갱신에 실패했습니다: %w", err)
	}
	return nil
}

// Delete 는 지정 ID의 지원 내역을 삭제한다.
func (r *PostgresApplicationRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("지원 내역 삭제에 실패했습니다: %w", err)
	}
	return nil
}

// DeleteByUserID 는 사용자의 모든 지원 내역을 삭제한다.
func (r *PostgresApplicationRepo) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM applications WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("사용자 지원 내역 삭제에 실패했습니다: %w", err)
	}
	return nil
}

func collectApplications(rows *sql.Rows) ([]*model.Application, error) {
	var apps []*model.Application
	for rows.Next() {
		app, err := scanApplication(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("지원 내역 스캔에 실패했습니다: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("지원 내역 읽기에 실패했습니다: %w", err)
	}
	return apps, nil
}

// nullIfEmpty 는 빈 문자열을 SQL NULL로 변환한다.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// compile-time interface check
var _ ApplicationRepository = (*PostgresApplicationRepo)(nil)
