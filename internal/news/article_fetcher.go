package news

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/jiwoolab/track/internal/model"
)

// SSRFValidator 는 SSRF 검증 인터페이스.
// security.SSRFGuardService를 추상화해 테스트 가능성을 높인다.
type SSRFValidator interface {
	ValidateURL(rawURL string) error
	NewSafeClient(timeout time.Duration, maxResponseSize int64) *http.Client
}

// ArticleMeta 는 기사 URL에서 추출한 메타데이터.
// 스크랩 작성 폼의 헤드라인 프리필에 사용된다.
type ArticleMeta struct {
	URL   string
	Title string
}

// ArticleFetcher 는 기사 URL의 제목을 가져온다.
// og:title 메타 태그를 우선하고 없으면 title 태그를 사용한다.
type ArticleFetcher struct {
	ssrfGuard   SSRFValidator
	logger      *slog.Logger
	timeout     time.Duration
	maxBodySize int64
}

// NewArticleFetcher 는 ArticleFetcher를 생성한다.
func NewArticleFetcher(ssrfGuard SSRFValidator, logger *slog.Logger, timeout time.Duration, maxBodySize int64) *ArticleFetcher {
	return &ArticleFetcher{
		ssrfGuard:   ssrfGuard,
		logger:      logger,
		timeout:     timeout,
		maxBodySize: maxBodySize,
	}
}

// Fetch 는 기사 페이지를 가져와 제목을 추출한다.
// SSRF 검증에 걸리는 URL은 요청 없이 거부된다.
func (f *ArticleFetcher) Fetch(ctx context.Context, rawURL string) (*ArticleMeta, error) {
	if err := f.ssrfGuard.ValidateURL(rawURL); err != nil {
		f.logger.Warn("기사 URL이 SSRF 검증에 걸렸습니다",
			slog.String("url", rawURL),
			slog.String("error", err.Error()),
		)
		return nil, model.NewSSRFBlockedError()
	}

	client := f.ssrfGuard.NewSafeClient(f.timeout, f.maxBodySize)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, model.NewInvalidURLError(err.Error())
	}
	req.Header.Set("User-Agent", "track/1.0")

	resp, err := client.Do(req)
	if err != nil {
		f.logger.Warn("기사 가져오기에 실패했습니다",
			slog.String("url", rawURL),
			slog.String("error", err.Error()),
		)
		return nil, model.NewFetchFailedError(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, model.NewFetchFailedError(resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return nil, model.NewFetchFailedError(err.Error())
	}

	title := extractTitle(body)
	if title == "" {
		return nil, model.NewParseFailedError()
	}

	return &ArticleMeta{URL: rawURL, Title: title}, nil
}

// extractTitle 은 HTML에서 og:title 메타 태그를 우선 추출하고
// 없으면 head의 title 태그 텍스트를 사용한다.
func extractTitle(body []byte) string {
	tokenizer := html.NewTokenizer(bytes.NewReader(body))

	var titleText string
	inTitle := false

	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			return strings.TrimSpace(titleText)

		case html.StartTagToken, html.SelfClosingTagToken:
			tn, hasAttr := tokenizer.TagName()
			tagName := string(tn)

			if tagName == "body" {
				// body에 들어가면 head 해석 종료
				return strings.TrimSpace(titleText)
			}

			if tagName == "title" {
				inTitle = true
				continue
			}

			if tagName != "meta" || !hasAttr {
				continue
			}

			var property, content string
			for {
				key, val, more := tokenizer.TagAttr()
				switch strings.ToLower(string(key)) {
				case "property", "name":
					property = strings.ToLower(string(val))
				case "content":
					content = string(val)
				}
				if !more {
					break
				}
			}
			// og:title이 있으면 즉시 우선한다.
			if property == "og:title" && content != "" {
				return strings.TrimSpace(content)
			}

		case html.TextToken:
			if inTitle {
				titleText += string(tokenizer.Text())
			}

		case html.EndTagToken:
			tn, _ := tokenizer.TagName()
			if string(tn) == "title" {
				inTitle = false
			}
		}
	}
}
