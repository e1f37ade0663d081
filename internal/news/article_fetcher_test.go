package news

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jiwoolab/track/internal/logger"
)

// allowAllGuard 는 httptest 서버(루프백)로의 요청을 허용하는 테스트용 검증기.
type allowAllGuard struct{}

func (allowAllGuard) ValidateURL(rawURL string) error { return nil }

func (allowAllGuard) NewSafeClient(timeout time.Duration, maxResponseSize int64) *http.Client {
	return &http.Client{Timeout: timeout}
}

// denyAllGuard 는 모든 URL을 거부한다.
type denyAllGuard struct{}

func (denyAllGuard) ValidateURL(rawURL string) error { return errors.New("blocked") }

func (denyAllGuard) NewSafeClient(timeout time.Duration, maxResponseSize int64) *http.Client {
	return &http.Client{Timeout: timeout}
}

func newTestFetcher(guard SSRFValidator) *ArticleFetcher {
	return NewArticleFetcher(guard, logger.Setup(io.Discard), 5*time.Second, 1<<20)
}

func TestFetch_PrefersOGTitle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head>
			<title>페이지 제목 - 뉴스사이트</title>
			<meta property="og:title" content="반도체 수출 3개월 연속 증가" />
		</head><body></body></html>`))
	}))
	defer server.Close()

	fetcher := newTestFetcher(allowAllGuard{})
	meta, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	if meta.Title != "반도체 수출 3개월 연속 증가" {
		t.Errorf("Title = %q, want og:title value", meta.Title)
	}
}

func TestFetch_FallsBackToTitleTag(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title> 환율 변동성 확대 </title></head><body></body></html>`))
	}))
	defer server.Close()

	fetcher := newTestFetcher(allowAllGuard{})
	meta, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	if meta.Title != "환율 변동성 확대" {
		t.Errorf("Title = %q, want trimmed title tag text", meta.Title)
	}
}

func TestFetch_BlockedURL_ReturnsErrorWithoutRequest(t *testing.T) {
	requested := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = true
	}))
	defer server.Close()

	fetcher := newTestFetcher(denyAllGuard{})
	_, err := fetcher.Fetch(context.Background(), server.URL)
	if err == nil {
		t.Fatal("expected error for blocked URL")
	}
	if requested {
		t.Error("no request should be sent for a blocked URL")
	}
}

func TestFetch_NotFoundStatus_ReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := newTestFetcher(allowAllGuard{})
	if _, err := fetcher.Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

func TestFetch_NoTitle_ReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head></head><body><h1>본문 헤더</h1></body></html>`))
	}))
	defer server.Close()

	fetcher := newTestFetcher(allowAllGuard{})
	if _, err := fetcher.Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("expected error when no title can be extracted")
	}
}
