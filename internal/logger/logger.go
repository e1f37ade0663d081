package logger

import (
	"io"
	"log/slog"
	"os"
)

// Setup 은 JSON 구조화 로그 출력을 하는 slog.Logger를 생성해 반환한다.
func Setup(w io.Writer) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return slog.New(handler)
}

// SetupDefault 는 JSON 구조화 로그 출력을 글로벌 로거로 설정한다.
// 프로덕션에서는 os.Stdout을 넘기는 것을 상정한다.
func SetupDefault(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	logger := Setup(w)
	slog.SetDefault(logger)
}
