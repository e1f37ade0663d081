package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jiwoolab/track/internal/model"
)

// PostgresJobListingRepo 는 PostgreSQL을 사용한 채용 공고 리포지토리.
// deadline 컬럼은 DATE 이며 YYYY-MM-DD 문자열로 그대로 스캔한다.
type PostgresJobListingRepo struct {
	db *sql.DB
}

// NewPostgresJobListingRepo 는 PostgresJobListingRepo를 생성한다.
func NewPostgresJobListingRepo(db *sql.DB) *PostgresJobListingRepo {
	return &PostgresJobListingRepo{db: db}
}

const jobListingColumns = `id, user_id, company, position, location, industry,
	company_size, status, to_char(deadline, 'YYYY-MM-DD'), job_post_url, created_at, updated_at`

// scanJobListing 은 한 행을 JobListing으로 스캔한다.
func scanJobListing(scan func(dest ...any) error) (*model.JobListing, error) {
	listing := &model.JobListing{}
	var companySize, deadline sql.NullString

	err := scan(
		&listing.ID, &listing.UserID, &listing.Company, &listing.Position,
		&listing.Location, &listing.Industry, &companySize, &listing.Status,
		&deadline, &listing.JobPostURL, &listing.CreatedAt, &listing.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if companySize.Valid {
		size := model.CompanySize(companySize.String)
		listing.CompanySize = &size
	}
	if deadline.Valid {
		listing.Deadline = &deadline.String
	}

	return listing, nil
}

// FindByID 는 지정 ID의 공고를 가져온다. 없으면 nil을 반환한다.
func (r *PostgresJobListingRepo) FindByID(ctx context.Context, id string) (*model.JobListing, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+jobListingColumns+` FROM job_listings WHERE id = $1`, id)

	listing, err := scanJobListing(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("채용 공고 조회에 실패했습니다: %w", err)
	}
	return listing, nil
}

// ListByUserID 는 사용자의 공고 일람을 생성일 내림차순으로 반환한다.
func (r *PostgresJobListingRepo) ListByUserID(ctx context.Context, userID string) ([]*model.JobListing, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+jobListingColumns+` FROM job_listings
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("채용 공고 일람 조회에 실패했습니다: %w", err)
	}
	defer rows.Close()

	return collectJobListings(rows)
}

// ListByDeadlineRange 는 마감일이 [from, to] 범위에 있는 공고를 마감일 오름차순으로 반환한다.
func (r *PostgresJobListingRepo) ListByDeadlineRange(ctx context.Context, userID, from, to string) ([]*model.JobListing, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+jobListingColumns+` FROM job_listings
		 WHERE user_id = $1 AND deadline IS NOT NULL AND deadline >= $2 AND deadline <= $3
		 ORDER BY deadline ASC`,
		userID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("마감일 범위 조회에 실패했습니다: %w", err)
	}
	defer rows.Close()

	return collectJobListings(rows)
}

// CountCreatedSince 는 지정 시각 이후에 생성된 공고 수를 반환한다.
func (r *PostgresJobListingRepo) CountCreatedSince(ctx context.Context, userID string, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM job_listings WHERE user_id = $1 AND created_at >= $2`,
		userID, since,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("공고 수 집계에 실패했습니다: %w", err)
	}
	return count, nil
}

// Create 는 공고를 생성한다.
func (r *PostgresJobListingRepo) Create(ctx context.Context, listing *model.JobListing) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO job_listings
		 (id, user_id, company, position, location, industry, company_size, status, deadline, job_post_url, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		listing.ID, listing.UserID, listing.Company, listing.Position,
		listing.Location, listing.Industry, companySizeValue(listing.CompanySize),
		listing.Status, deadlineValue(listing.Deadline), listing.JobPostURL,
		listing.CreatedAt, listing.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("채용 공고 생성에 실패했습니다: %w", err)
	}
	return nil
}

// Update 는 공고를 전체 필드 치환으로 갱신한다.
func (r *PostgresJobListingRepo) Update(ctx context.Context, listing *model.JobListing) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE job_listings SET
		    company = $2, position = $3, location = $4, industry = $5,
		    company_size = $6, status = $7, deadline = $8, job_post_url = $9,
		    updated_at = $10
		 WHERE id = $1`,
		listing.ID, listing.Company, listing.Position, listing.Location,
		listing.Industry, companySizeValue(listing.CompanySize), listing.Status,
		deadlineValue(listing.Deadline), listing.JobPostURL, listing.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("채용 공고 갱신에 실패했습니다: %w", err)
	}
	return nil
}

// Delete 는 지정 ID의 공고를 삭제한다.
func (r *PostgresJobListingRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM job_listings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("채용 공고 삭제에 실패했습니다: %w", err)
	}
	return nil
}

// DeleteByUserID 는 사용자의 모든 공고를 삭제한다.
func (r *PostgresJobListingRepo) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM job_listings WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("사용자 공고 삭제에 실패했습니다: %w", err)
	}
	return nil
}

func collectJobListings(rows *sql.Rows) ([]*model.JobListing, error) {
	var listings []*model.JobListing
	for rows.Next() {
		listing, err := scanJobListing(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("채용 공고 스캔에 실패했습니다: %w", err)
		}
		listings = append(listings, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("채용 공고 읽기에 실패했습니다: %w", err)
	}
	return listings, nil
}

// companySizeValue 는 nil 규모를 SQL NULL로 변환한다.
func companySizeValue(s *model.CompanySize) any {
	if s == nil {
		return nil
	}
	return string(*s)
}

// deadlineValue 는 nil 마감일을 SQL NULL로 변환한다.
func deadlineValue(d *string) any {
	if d == nil {
		return nil
	}
	return *d
}

// compile-time interface check
var _ JobListingRepository = (*PostgresJobListingRepo)(nil)
