// ContentSanitizerService 는 뉴스 스크랩 본문의 HTML을 새니타이즈하여
// XSS 등 보안 위험으로부터 사용자를 보호한다.
// bluemonday 라이브러리를 사용한 허용 목록 기반 정책으로,
// 스크랩 편집기 툴바가 생성하는 태그만 통과시킨다.
package security

import (
	"net/url"

	"github.com/microcosm-cc/bluemonday"
)

// ContentSanitizerService 는 HTML 새니타이즈 기능의 인터페이스를 정의한다.
// 스크랩 본문 저장 전에 사용된다.
type ContentSanitizerService interface {
	// Sanitize 는 HTML을 새니타이즈하여 안전한 HTML을 반환한다.
	// 편집기 툴바 태그(p, br, b, strong, i, em, u, ul, ol, li, a)만 통과시키고
	// script, iframe, style 태그와 on* 이벤트 속성을 제거한다.
	// a 태그에는 target="_blank"와 rel="noopener noreferrer"가 자동 부여된다.
	// 빈 문자열 입력에는 빈 문자열을 반환한다.
	// 같은 입력에 대해 항상 같은 출력을 반환한다(멱등).
	Sanitize(rawHTML string) string
}

// contentSanitizer 는 ContentSanitizerService의 구현.
// bluemonday 정책을 보관하고 스레드 세이프하게 새니타이즈를 수행한다.
type contentSanitizer struct {
	policy *bluemonday.Policy
}

// NewContentSanitizer 는 ContentSanitizerService의 새 인스턴스를 생성한다.
// 정책 내용:
//   - 허용 태그: p, br, b, strong, i, em, u, ul, ol, li, a
//   - 금지 태그: script, iframe, style 및 모든 on* 이벤트 속성
//   - a 태그: target="_blank" 와 rel="noreferrer noopener" 자동 부여
func NewContentSanitizer() *contentSanitizer {
	p := bluemonday.NewPolicy()

	// 편집기 툴바가 생성하는 서식 태그.
	// script, iframe, style 등은 허용 목록에 넣지 않음으로써 자동 제거된다.
	// on* 이벤트 속성은 bluemonday 기본 동작으로 제거된다.
	p.AllowElements(
		"p", "br",
		"b", "strong", "i", "em", "u",
		"ul", "ol", "li",
	)

	// 링크: href만 허용, 절대 URL만, 새 창 열기 강제
	p.AllowAttrs("href").OnElements("a")
	p.AllowRelativeURLs(false)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.RequireNoReferrerOnLinks(true)
	p.AllowURLSchemeWithCustomPolicy("https", func(u *url.URL) bool {
		return true
	})
	p.AllowURLSchemeWithCustomPolicy("http", func(u *url.URL) bool {
		return true
	})

	return &contentSanitizer{
		policy: p,
	}
}

// Sanitize 는 HTML을 새니타이즈하여 안전한 HTML을 반환한다.
func (s *contentSanitizer) Sanitize(rawHTML string) string {
	return s.policy.Sanitize(rawHTML)
}
