package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jiwoolab/track/internal/model"
)

// PostgresStickerRepo 는 PostgreSQL을 사용한 스티커 리포지토리.
type PostgresStickerRepo struct {
	db *sql.DB
}

// NewPostgresStickerRepo 는 PostgresStickerRepo를 생성한다.
func NewPostgresStickerRepo(db *sql.DB) *PostgresStickerRepo {
	return &PostgresStickerRepo{db: db}
}

// FindByID 는 지정 ID의 스티커를 가져온다. 없으면 nil을 반환한다.
func (r *PostgresStickerRepo) FindByID(ctx context.Context, id string) (*model.Sticker, error) {
	sticker := &model.Sticker{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, text, is_completed, created_at, updated_at
		 FROM stickers WHERE id = $1`,
		id,
	).Scan(
		&sticker.ID, &sticker.UserID, &sticker.Text,
		&sticker.IsCompleted, &sticker.CreatedAt, &sticker.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("스티커 조회에 실패했습니다: %w", err)
	}

	return sticker, nil
}

// ListByUserID 는 사용자의 스티커를 생성일 오름차순으로 반환한다.
func (r *PostgresStickerRepo) ListByUserID(ctx context.Context, userID string) ([]*model.Sticker, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, text, is_completed, created_at, updated_at
		 FROM stickers WHERE user_id = $1
		 ORDER BY created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("스티커 일람 조회에 실패했습니다: %w", err)
	}
	defer rows.Close()

	var stickers []*model.Sticker
	for rows.Next() {
		sticker := &model.Sticker{}
		err := rows.Scan(
			&sticker.ID, &sticker.UserID, &sticker.Text,
			&sticker.IsCompleted, &sticker.CreatedAt, &sticker.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("스티커 스캔에 실패했습니다: %w", err)
		}
		stickers = append(stickers, sticker)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("스티커 읽기에 실패했습니다: %w", err)
	}

	return stickers, nil
}

// Create 는 스티커를 생성한다.
func (r *PostgresStickerRepo) Create(ctx context.Context, sticker *model.Sticker) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO stickers (id, user_id, text, is_completed, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		sticker.ID, sticker.UserID, sticker.Text,
		sticker.IsCompleted, sticker.CreatedAt, sticker.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("스티커 생성에 실패했습니다: %w", err)
	}
	return nil
}

// Update 는 스티커의 텍스트와 완료 상태를 갱신한다.
func (r *PostgresStickerRepo) Update(ctx context.Context, sticker *model.Sticker) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE stickers SET text = $2, is_completed = $3, updated_at = $4
		 WHERE id = $1`,
		sticker.ID, sticker.Text, sticker.IsCompleted, sticker.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("스티커 갱신에 실패했습니다: %w", err)
	}
	return nil
}

// Delete 는 지정 ID의 스티커를 삭제한다.
func (r *PostgresStickerRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM stickers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("스티커 삭제에 실패했습니다: %w", err)
	}
	return nil
}

// DeleteByUserID 는 사용자의 모든 스티커를 삭제한다.
func (r *PostgresStickerRepo) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM stickers WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("사용자 스티커 삭제에 실패했습니다: %w", err)
	}
	return nil
}

// compile-time interface check
var _ StickerRepository = (*PostgresStickerRepo)(nil)
