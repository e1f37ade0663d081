// Package news 는 경제 뉴스 스크랩의 기록과 기사 메타데이터 가져오기를 제공한다.
package news

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jiwoolab/track/internal/dateutil"
	"github.com/jiwoolab/track/internal/model"
	"github.com/jiwoolab/track/internal/repository"
)

// Sanitizer 는 스크랩 본문 HTML의 새니타이즈 인터페이스.
type Sanitizer interface {
	Sanitize(rawHTML string) string
}

// AutoMarker 는 스크랩 추가 시 당일 루틴을 자동 완료 처리한다.
type AutoMarker interface {
	MarkAutoCheck(ctx context.Context, userID, date, key string) (*model.DailyRoutine, error)
}

// ScrapInput 은 스크랩 생성·갱신 입력.
type ScrapInput struct {
	ArticleURL  string
	Headline    string
	Content     string
	AppliedRole string
	Industry    string
	CompanyName string
}

// Service 는 뉴스 스크랩의 CRUD를 담당한다.
// 본문은 저장 전에 항상 새니타이즈된다.
type Service struct {
	scrapRepo  repository.NewsScrapRepository
	sanitizer  Sanitizer
	autoMarker AutoMarker
}

// NewService 는 Service를 생성한다.
func NewService(scrapRepo repository.NewsScrapRepository, sanitizer Sanitizer, autoMarker AutoMarker) *Service {
	return &Service{
		scrapRepo:  scrapRepo,
		sanitizer:  sanitizer,
		autoMarker: autoMarker,
	}
}

// List 는 사용자의 스크랩을 생성일 내림차순으로 반환한다.
func (s *Service) List(ctx context.Context, userID string) ([]*model.NewsScrap, error) {
	scraps, err := s.scrapRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("스크랩 일람 조회에 실패했습니다: %w", err)
	}
	return scraps, nil
}

// Create 는 스크랩을 생성하고 당일 news_scrap 루틴을 자동 완료 처리한다.
func (s *Service) Create(ctx context.Context, userID string, input ScrapInput) (*model.NewsScrap, error) {
	if input.Headline == "" {
		return nil, model.NewInvalidRequestError("헤드라인은 필수입니다")
	}

	now := time.Now()
	scrap := &model.NewsScrap{
		ID:          uuid.NewString(),
		UserID:      userID,
		ArticleURL:  input.ArticleURL,
		Headline:    input.Headline,
		Content:     s.sanitizer.Sanitize(input.Content),
		AppliedRole: input.AppliedRole,
		Industry:    input.Industry,
		CompanyName: input.CompanyName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.scrapRepo.Create(ctx, scrap); err != nil {
		return nil, fmt.Errorf("스크랩 생성에 실패했습니다: %w", err)
	}

	if _, err := s.autoMarker.MarkAutoCheck(ctx, userID, dateutil.Format(now), model.RoutineNewsScrap); err != nil {
		return scrap, fmt.Errorf("루틴 자동 완료 기록에 실패했습니다: %w", err)
	}

	return scrap, nil
}

// Update 는 스크랩을 전체 필드 치환으로 갱신한다.
func (s *Service) Update(ctx context.Context, userID, id string, input ScrapInput) (*model.NewsScrap, error) {
	scrap, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if input.Headline == "" {
		return nil, model.NewInvalidRequestError("헤드라인은 필수입니다")
	}

	scrap.ArticleURL = input.ArticleURL
	scrap.Headline = input.Headline
	scrap.Content = s.sanitizer.Sanitize(input.Content)
	scrap.AppliedRole = input.AppliedRole
	scrap.Industry = input.Industry
	scrap.CompanyName = input.CompanyName
	scrap.UpdatedAt = time.Now()

	if err := s.scrapRepo.Update(ctx, scrap); err != nil {
		return nil, fmt.Errorf("스크랩 갱신에 실패했습니다: %w", err)
	}

	return scrap, nil
}

// Delete 는 스크랩을 삭제한다.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.findOwned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.scrapRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("스크랩 삭제에 실패했습니다: %w", err)
	}
	return nil
}

// TodayCount 는 reference 당일에 작성된 스크랩 수를 반환한다.
func (s *Service) TodayCount(ctx context.Context, userID string, reference time.Time) (int, error) {
	start := dateutil.Truncate(reference)
	end := start.AddDate(0, 0, 1)

	count, err := s.scrapRepo.CountCreatedBetween(ctx, userID, start, end)
	if err != nil {
		return 0, fmt.Errorf("당일 스크랩 건수 조회에 실패했습니다: %w", err)
	}
	return count, nil
}

// findOwned 는 스크랩을 찾고 소유자를 확인한다.
func (s *Service) findOwned(ctx context.Context, userID, id string) (*model.NewsScrap, error) {
	scrap, err := s.scrapRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("스크랩 조회에 실패했습니다: %w", err)
	}
	if scrap == nil || scrap.UserID != userID {
		return nil, model.NewScrapNotFoundError(id)
	}
	return scrap, nil
}
