package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jiwoolab/track/internal/model"
)

// PostgresNewsScrapRepo 는 PostgreSQL을 사용한 뉴스 스크랩 리포지토리.
type PostgresNewsScrapRepo struct {
	db *sql.DB
}

// NewPostgresNewsScrapRepo 는 PostgresNewsScrapRepo를 생성한다.
func NewPostgresNewsScrapRepo(db *sql.DB) *PostgresNewsScrapRepo {
	return &PostgresNewsScrapRepo{db: db}
}

const newsScrapColumns = `id, user_id, article_url, headline, content,
	applied_role, industry, company_name, created_at, updated_at`

// FindByID 는 지정 ID의 스크랩을 가져온다. 없으면 nil을 반환한다.
func (r *PostgresNewsScrapRepo) FindByID(ctx context.Context, id string) (*model.NewsScrap, error) {
	scrap := &model.NewsScrap{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+newsScrapColumns+` FROM news_scraps WHERE id = $1`,
		id,
	).Scan(
		&scrap.ID, &scrap.UserID, &scrap.ArticleURL, &scrap.Headline, &scrap.Content,
		&scrap.AppliedRole, &scrap.Industry, &scrap.CompanyName, &scrap.CreatedAt, &scrap.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("뉴스 스크랩 조회에 실패했습니다: %w", err)
	}

	return scrap, nil
}

// ListByUserID 는 사용자의 스크랩을 생성일 내림차순으로 반환한다.
func (r *PostgresNewsScrapRepo) ListByUserID(ctx context.Context, userID string) ([]*model.NewsScrap, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+newsScrapColumns+` FROM news_scraps
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("뉴스 스크랩 일람 조회에 실패했습니다: %w", err)
	}
	defer rows.Close()

	var scraps []*model.NewsScrap
	for rows.Next() {
		scrap := &model.NewsScrap{}
		err := rows.Scan(
			&scrap.ID, &scrap.UserID, &scrap.ArticleURL, &scrap.Headline, &scrap.Content,
			&scrap.AppliedRole, &scrap.Industry, &scrap.CompanyName, &scrap.CreatedAt, &scrap.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("뉴스 스크랩 스캔에 실패했습니다: %w", err)
		}
		scraps = append(scraps, scrap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("뉴스 스크랩 읽기에 실패했습니다: %w", err)
	}

	return scraps, nil
}

// CountCreatedBetween 은 생성일이 [from, to] 범위에 있는 스크랩 수를 반환한다.
func (r *PostgresNewsScrapRepo) CountCreatedBetween(ctx context.Context, userID string, from, to time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM news_scraps
		 WHERE user_id = $1 AND created_at >= $2 AND created_at <= $3`,
		userID, from, to,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("뉴스 스크랩 수 집계에 실패했습니다: %w", err)
	}
	return count, nil
}

// Create 는 스크랩을 생성한다.
func (r *PostgresNewsScrapRepo) Create(ctx context.Context, scrap *model.NewsScrap) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO news_scraps
		 (id, user_id, article_url, headline, content, applied_role, industry, company_name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		scrap.ID, scrap.UserID, scrap.ArticleURL, scrap.Headline, scrap.Content,
		scrap.AppliedRole, scrap.Industry, scrap.CompanyName, scrap.CreatedAt, scrap.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("뉴스 스크랩 생성에 실패했습니다: %w", err)
	}
	return nil
}

// Update 는 스크랩을 전체 필드 치환으로 갱신한다.
func (r *PostgresNewsScrapRepo) Update(ctx context.Context, scrap *model.NewsScrap) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE news_scraps SET
		    article_url = $2, headline = $3, content = $4,
		    applied_role = $5, industry = $6, company_name = $7, updated_at = $8
		 WHERE id = $1`,
		scrap.ID, scrap.ArticleURL, scrap.Headline, scrap.Content,
		scrap.AppliedRole, scrap.Industry, scrap.CompanyName, scrap.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("뉴스 스크랩 갱신에 실패했습니다: %w", err)
	}
	return nil
}

// Delete 는 지정 ID의 스크랩을 삭제한다.
func (r *PostgresNewsScrapRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM news_scraps WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("뉴스 스크랩 삭제에 실패했습니다: %w", err)
	}
	return nil
}

// DeleteByUserID 는 사용자의 모든 스크랩을 삭제한다.
func (r *PostgresNewsScrapRepo) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM news_scraps WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("사용자 뉴스 스크랩 삭제에 실패했습니다: %w", err)
	}
	return nil
}

// compile-time interface check
var _ NewsScrapRepository = (*PostgresNewsScrapRepo)(nil)
