package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/contactbook/internal/metrics"
	"github.com/hitoshi/contactbook/internal/middleware"
)

// DefaultMaxBodyBytes はリクエストボディの上限(1 MiB)。
const DefaultMaxBodyBytes int64 = 1 << 20

// MetricsRecorder はHTTPリクエストと認証失敗の両方を記録する。
type MetricsRecorder interface {
	middleware.HTTPRequestRecorder
	middleware.AuthFailureRecorder
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	UserFinder        middleware.UserFinder
	Logger            *slog.Logger
	Metrics           MetricsRecorder
	CORSAllowedOrigin string
	MaxBodyBytes      int64

	// 運用エンドポイント
	Pinger         Pinger
	MetricsHandler http.Handler

	// サービス
	UserService    UserServiceInterface
	ContactService ContactServiceInterface
	AddressService AddressServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → Logging → Metrics → SecurityHeaders → CORS → BodyLimit
//
// 認証ミドルウェアは保護されたルートのグループにのみ適用する。
func NewRouter(deps *RouterDeps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	var recorder MetricsRecorder = metrics.NopCollector{}
	if deps.Metrics != nil {
		recorder = deps.Metrics
	}
	maxBody := deps.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}

	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewLoggingMiddleware(logger))
	r.Use(middleware.NewMetricsMiddleware(recorder))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewBodyLimitMiddleware(maxBody))

	userHandler := NewUserHandler(deps.UserService)
	contactHandler := NewContactHandler(deps.ContactService)
	addressHandler := NewAddressHandler(deps.AddressService)
	healthHandler := NewHealthHandler(deps.Pinger)

	// --- 運用エンドポイント ---
	r.Get("/health", healthHandler.Health)
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Route("/api", func(r chi.Router) {
		// --- 認証不要のルート ---
		r.Post("/users", userHandler.Register)
		r.Post("/users/login", userHandler.Login)

		// --- 認証が必要なルート ---
		r.Group(func(r chi.Router) {
			r.Use(middleware.NewAuthMiddleware(deps.UserFinder, recorder))

			r.Route("/users/current", func(r chi.Router) {
				r.Get("/", userHandler.Current)
				r.Patch("/", userHandler.UpdateCurrent)
				r.Delete("/", userHandler.Logout)
			})

			r.Route("/contacts", func(r chi.Router) {
				r.Post("/", contactHandler.Create)
				r.Get("/", contactHandler.Search)

				r.Route("/{contactId:[0-9]+}", func(r chi.Router) {
					r.Get("/", contactHandler.Get)
					r.Put("/", contactHandler.Update)
					r.Delete("/", contactHandler.Delete)

					r.Route("/addresses", func(r chi.Router) {
						r.Post("/", addressHandler.Create)
						r.Get("/", addressHandler.List)
						r.Get("/{addressId:[0-9]+}", addressHandler.Get)
						r.Put("/{addressId:[0-9]+}", addressHandler.Update)
						r.Delete("/{addressId:[0-9]+}", addressHandler.Remove)
					})
				})
			})
		})
	})

	return r
}
