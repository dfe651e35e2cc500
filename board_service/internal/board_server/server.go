// описание HTTP сервера доски вакансий
package board_server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard/board_service/configs"
	"jobboard/board_service/internal/board_server/dto"
	"jobboard/board_service/internal/board_server/handlers"
	"jobboard/board_service/internal/domain/models"
	"jobboard/shared/config"
	"jobboard/shared/cookie"
	"jobboard/shared/jwt_service"
	"jobboard/shared/middleware"
	"jobboard/shared/toolkit"
)

// структура сервера доски вакансий
type BoardServer struct {
	httpServer *http.Server
	router     *gin.Engine
	config     *config.ServerConfig
	Handler    *handlers.BoardHandler

	tokens  jwt_service.SessionTokens
	cookies cookie.CookieManagerInterface
}

// Конструктор для сервера
func NewBoardServer(ctx context.Context, cfg *configs.BoardServiceConfig, handler *handlers.BoardHandler, tokens jwt_service.SessionTokens, cookies cookie.CookieManagerInterface) (*BoardServer, error) {
	router := gin.New()
	if err := router.SetTrustedProxies(nil); err != nil {
		return nil, err
	}

	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		toolkit.CORSMiddleware(cfg.CORSOrigins), // CORS для всех маршрутов
	)

	return &BoardServer{
		router:  router,
		config:  cfg.ServerConf,
		Handler: handler,
		tokens:  tokens,
		cookies: cookies,
	}, nil
}

// Метод для маршрутизации сервера
func (s *BoardServer) SetUpRoutes() {
	h := s.Handler
	session := middleware.SessionAuth(s.tokens, s.cookies)
	employer := middleware.RequireRole(string(models.RoleEmployer), string(models.RoleAdmin))

	s.router.GET("/health", h.Health)

	public := s.router.Group("/api/public", middleware.OptionalSession(s.tokens, s.cookies))
	{
		public.GET("/jobs", h.ListJobs)
		public.GET("/jobs/:slug", h.GetJob)
		public.POST("/jobs/:slug/apply", middleware.ValidateJSON(&dto.ApplyRequest{}), h.Apply)
		public.GET("/companies", h.ListCompanies)
		public.GET("/companies/:slug", h.GetCompany)
		public.GET("/categories", h.ListCategories)
	}

	auth := s.router.Group("/api/auth")
	{
		auth.GET("/login", h.Login)
		auth.GET("/callback", h.Callback)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", session, h.Me)
	}

	// кабинет работодателя
	jobs := s.router.Group("/api/jobs", session, employer)
	{
		jobs.GET("", h.ListOwnJobs)
		jobs.POST("", middleware.ValidateJSON(&dto.JobRequest{}), h.CreateJob)
		jobs.POST("/bulk", middleware.ValidateJSON(&dto.BulkJobsRequest{}), h.BulkJobs)
		jobs.GET("/:id", h.GetOwnJob)
		jobs.PUT("/:id", middleware.ValidateJSON(&dto.JobRequest{}), h.UpdateJob)
		jobs.DELETE("/:id", h.DeleteJob)
	}

	applications := s.router.Group("/api/applications", session, employer)
	{
		applications.GET("", h.ListApplications)
		applications.PATCH("/:id", middleware.ValidateJSON(&dto.ApplicationUpdateRequest{}), h.UpdateApplication)
	}

	s.router.GET("/api/dashboard", session, employer, h.Dashboard)

	companies := s.router.Group("/api/companies", session)
	{
		companies.POST("", middleware.ValidateJSON(&dto.CompanyRequest{}), h.Onboard)
		companies.PUT("/me", employer, middleware.ValidateJSON(&dto.CompanyRequest{}), h.UpdateCompany)
	}

	follows := s.router.Group("/api/follows", session)
	{
		follows.GET("", h.ListFollows)
		follows.PUT("/:companyId", middleware.ValidateJSON(&dto.FollowRequest{}), h.SetFollow)
		follows.POST("/:companyId/toggle", h.ToggleFollow)
	}
}

// Метод для запуска сервера
func (s *BoardServer) Run() error {
	s.SetUpRoutes()

	s.httpServer = &http.Server{
		Addr:           s.config.Addr(),
		Handler:        s.router,
		ReadTimeout:    s.config.ReadTimeout,
		WriteTimeout:   s.config.WriteTimeout,
		IdleTimeout:    s.config.IdleTimeout,
		MaxHeaderBytes: s.config.MaxHeaderBytes,
	}

	// HTTPS, если сервер сам терминирует TLS
	if s.config.EnableTLS {
		tlsConfig, err := s.config.CreateTLSConfig()
		if err != nil {
			return fmt.Errorf("failed to create TLS config: %w", err)
		}
		s.httpServer.TLSConfig = tlsConfig

		slog.Info("starting HTTPS server", "addr", s.config.Addr())
		return s.httpServer.ListenAndServeTLS(s.config.TLSCertFile, s.config.TLSKeyFile)
	}

	slog.Info("starting HTTP server", "addr", s.config.Addr())
	return s.httpServer.ListenAndServe()
}

// Метод для graceful shutdown
func (s *BoardServer) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	slog.Info("server shutdown completed")
	return nil
}
