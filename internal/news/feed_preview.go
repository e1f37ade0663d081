package news

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/jiwoolab/track/internal/model"
)

// PreviewItemLimit 는 RSS 미리보기에서 반환하는 최대 기사 수.
const PreviewItemLimit = 10

// FeedItem 은 RSS 피드에서 추출한 기사 한 건.
// 스크랩 작성 폼으로 옮겨 담을 수 있는 최소 메타데이터.
type FeedItem struct {
	Title       string
	Link        string
	PublishedAt *time.Time
}

// FeedPreview 는 피드 미리보기 결과.
type FeedPreview struct {
	FeedTitle string
	Items     []FeedItem
}

// FeedPreviewer 는 경제 뉴스 RSS 피드를 가져와 미리보기를 만든다.
type FeedPreviewer struct {
	ssrfGuard   SSRFValidator
	logger      *slog.Logger
	timeout     time.Duration
	maxBodySize int64
}

// NewFeedPreviewer 는 FeedPreviewer를 생성한다.
func NewFeedPreviewer(ssrfGuard SSRFValidator, logger *slog.Logger, timeout time.Duration, maxBodySize int64) *FeedPreviewer {
	return &FeedPreviewer{
		ssrfGuard:   ssrfGuard,
		logger:      logger,
		timeout:     timeout,
		maxBodySize: maxBodySize,
	}
}

// Preview 는 피드를 가져와 파싱하고 최신 기사 목록을 반환한다.
func (p *FeedPreviewer) Preview(ctx context.Context, feedURL string) (*FeedPreview, error) {
	if err := p.ssrfGuard.ValidateURL(feedURL); err != nil {
		p.logger.Warn("피드 URL이 SSRF 검증에 걸렸습니다",
			slog.String("url", feedURL),
			slog.String("error", err.Error()),
		)
		return nil, model.NewSSRFBlockedError()
	}

	client := p.ssrfGuard.NewSafeClient(p.timeout, p.maxBodySize)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, model.NewInvalidURLError(err.Error())
	}
	req.Header.Set("User-Agent", "track/1.0")

	resp, err := client.Do(req)
	if err != nil {
		p.logger.Warn("피드 가져오기에 실패했습니다",
			slog.String("url", feedURL),
			slog.String("error", err.Error()),
		)
		return nil, model.NewFetchFailedError(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, model.NewFetchFailedError(resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, p.maxBodySize))
	if err != nil {
		return nil, model.NewFetchFailedError(err.Error())
	}

	parser := gofeed.NewParser()
	parsed, err := parser.ParseString(string(body))
	if err != nil {
		p.logger.Warn("피드 파싱에 실패했습니다",
			slog.String("url", feedURL),
			slog.String("error", err.Error()),
		)
		return nil, model.NewParseFailedError()
	}

	preview := &FeedPreview{FeedTitle: parsed.Title}
	for i, item := range parsed.Items {
		if i >= PreviewItemLimit {
			break
		}
		preview.Items = append(preview.Items, FeedItem{
			Title:       item.Title,
			Link:        item.Link,
			PublishedAt: item.PublishedParsed,
		})
	}

	return preview, nil
}
