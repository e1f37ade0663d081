package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jiwoolab/track/internal/application"
	"github.com/jiwoolab/track/internal/auth"
	"github.com/jiwoolab/track/internal/config"
	"github.com/jiwoolab/track/internal/dashboard"
	"github.com/jiwoolab/track/internal/database"
	"github.com/jiwoolab/track/internal/handler"
	"github.com/jiwoolab/track/internal/joblisting"
	"github.com/jiwoolab/track/internal/logger"
	"github.com/jiwoolab/track/internal/metrics"
	"github.com/jiwoolab/track/internal/middleware"
	"github.com/jiwoolab/track/internal/news"
	"github.com/jiwoolab/track/internal/repository"
	"github.com/jiwoolab/track/internal/routine"
	"github.com/jiwoolab/track/internal/schedule"
	"github.com/jiwoolab/track/internal/security"
	"github.com/jiwoolab/track/internal/sticker"
	"github.com/jiwoolab/track/internal/timelog"
	"github.com/jiwoolab/track/internal/user"
)

// Init 은 애플리케이션 초기화를 수행한다.
// 환경 변수에서 Config 를 읽고 JSON 구조화 로그를 셋업한다.
// writer 가 지정되면 로그 출력 대상으로 사용한다.
func Init(w io.Writer) (*config.Config, error) {
	// 설정 읽기 전에 로그를 쓸 수 있도록 로그부터 초기화한다
	logger.SetupDefault(w)

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("설정 읽기에 실패했습니다: %w", err)
	}

	return cfg, nil
}

// Run 은 애플리케이션의 메인 엔트리 포인트.
// 커맨드라인 인자에서 서브커맨드를 해석해 해당 모드로 기동한다.
// args 에는 os.Args[1:] 을 넘긴다.
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck 는 경량 서브커맨드이므로 풀 초기화를 생략한다
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("초기화에 실패했습니다: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
		slog.String("base_url", cfg.BaseURL),
	)

	switch cmd {
	case CommandMigrate:
		return runMigrate(cfg)
	default:
		return runServe(cfg)
	}
}

// runServe 는 API 서버 모드로 기동한다.
// DB 연결을 열고 전체 의존성을 와이어링한 뒤 HTTP 서버를 시작한다.
// SIGINT 또는 SIGTERM 을 받으면 그레이스풀 셧다운을 수행한다.
func runServe(cfg *config.Config) error {
	// 1. DB 연결
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("데이터베이스 연결에 실패했습니다: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("데이터베이스 접속 확인에 실패했습니다: %w", err)
	}

	slog.Info("database connection established")

	// 2. 리포지토리 초기화
	userRepo := repository.NewPostgresUserRepo(db)
	identRepo := repository.NewPostgresIdentityRepo(db)
	sessionRepo := repository.NewPostgresSessionRepo(db)
	listingRepo := repository.NewPostgresJobListingRepo(db)
	appRepo := repository.NewPostgresApplicationRepo(db)
	scheduleRepo := repository.NewPostgresScheduleRepo(db)
	routineRepo := repository.NewPostgresDailyRoutineRepo(db)
	scrapRepo := repository.NewPostgresNewsScrapRepo(db)
	timeLogRepo := repository.NewPostgresTimeLogRepo(db)
	goalRepo := repository.NewPostgresWeeklyGoalRepo(db)
	stickerRepo := repository.NewPostgresStickerRepo(db)

	// 3. 보안 서비스 초기화
	ssrfGuard := security.NewSSRFGuard()
	sanitizer := security.NewContentSanitizer()

	// 4. 도메인 서비스 초기화
	oauthProvider := auth.NewGoogleOAuthProvider(auth.GoogleOAuthConfig{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
	})
	authService := auth.NewService(
		oauthProvider, userRepo, identRepo, sessionRepo,
		auth.ServiceConfig{SessionMaxAge: cfg.SessionMaxAge},
	)

	routineService := routine.NewService(routineRepo)
	listingService := joblisting.NewService(listingRepo, appRepo, routineService)
	appService := application.NewService(appRepo)
	scheduleService := schedule.NewService(scheduleRepo, appRepo)
	newsService := news.NewService(scrapRepo, sanitizer, routineService)
	timeLogService := timelog.NewService(timeLogRepo, goalRepo, routineService)
	stickerService := sticker.NewService(stickerRepo)
	dashboardService := dashboard.NewService(routineRepo, appRepo, scrapRepo, stickerRepo)
	userService := user.NewService(user.Repos{
		Users:        userRepo,
		Sessions:     sessionRepo,
		JobListings:  listingRepo,
		Applications: appRepo,
		Schedules:    scheduleRepo,
		Routines:     routineRepo,
		NewsScraps:   scrapRepo,
		TimeLogs:     timeLogRepo,
		WeeklyGoals:  goalRepo,
		Stickers:     stickerRepo,
	}, slog.Default())

	articleFetcher := news.NewArticleFetcher(ssrfGuard, slog.Default(), cfg.FetchTimeout, cfg.FetchMaxSize)
	feedPreviewer := news.NewFeedPreviewer(ssrfGuard, slog.Default(), cfg.FetchTimeout, cfg.FetchMaxSize)

	// 5. 메트릭 초기화
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 6. 라우터 구성
	rateLimiter := middleware.NewRateLimiter(
		middleware.NewRateLimiterConfig(cfg.RateLimitGeneral, cfg.RateLimitFetch),
	)
	defer rateLimiter.Stop()

	deps := &handler.RouterDeps{
		SessionFinder:     sessionRepo,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RateLimiter:       rateLimiter,
		CSRFConfig: middleware.CSRFConfig{
			CookieSecure: cfg.CookieSecure,
			CookieDomain: cfg.CookieDomain,
		},
		Logger:    slog.Default(),
		Collector: collector,
		Gatherer:  registry,

		AuthService: authService,
		AuthConfig: handler.AuthHandlerConfig{
			BaseURL:       cfg.BaseURL,
			CookieDomain:  cfg.CookieDomain,
			CookieSecure:  cfg.CookieSecure,
			SessionMaxAge: cfg.SessionMaxAge,
		},

		DashboardService:  dashboardService,
		JobListingService: listingService,
		AppService:        appService,
		RoutineService:    routineService,
		ScheduleService:   scheduleService,
		NewsService:       newsService,
		ArticleFetcher:    articleFetcher,
		FeedPreviewer:     feedPreviewer,
		TimeLogService:    timeLogService,
		StickerService:    stickerService,
		UserService:       userService,
	}

	router := handler.NewRouter(deps)

	// 7. HTTP 서버 기동
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 그레이스풀 셧다운을 위한 시그널 핸들링
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("API server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down API server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("서버 종료에 실패했습니다: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runMigrate 는 데이터베이스 마이그레이션을 실행한다.
// 미적용 마이그레이션을 순서대로 모두 적용한다.
func runMigrate(cfg *config.Config) error {
	slog.Info("running database migrations",
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("마이그레이션에 실패했습니다: %w", err)
	}

	slog.Info("database migrations completed successfully")
	return nil
}

// runHealthcheck 는 헬스 체크를 실행한다.
// /health 엔드포인트에 HTTP 요청을 보내고 결과를 반환한다.
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("헬스 체크에 실패했습니다: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("헬스 체크가 상태 %d 를 반환했습니다", resp.StatusCode)
	}

	return nil
}

// maskDatabaseURL 은 데이터베이스 URL의 인증 정보를 가린다.
func maskDatabaseURL(url string) string {
	if len(url) > 20 {
		return url[:12] + "***@..."
	}
	return "***"
}
