package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	assistantapp "github.com/legallink/backend/internal/application/assistant"
	directoryapp "github.com/legallink/backend/internal/application/directory"
	engagementapp "github.com/legallink/backend/internal/application/engagement"
	identityapp "github.com/legallink/backend/internal/application/identity"
	moderationapp "github.com/legallink/backend/internal/application/moderation"
	socialapp "github.com/legallink/backend/internal/application/social"
	assistantinfra "github.com/legallink/backend/internal/infrastructure/assistant"
	"github.com/legallink/backend/internal/infrastructure/auth"
	"github.com/legallink/backend/internal/infrastructure/cache"
	"github.com/legallink/backend/internal/infrastructure/calendar"
	"github.com/legallink/backend/internal/infrastructure/config"
	"github.com/legallink/backend/internal/infrastructure/event"
	"github.com/legallink/backend/internal/infrastructure/logger"
	"github.com/legallink/backend/internal/infrastructure/persistence"
	"github.com/legallink/backend/internal/infrastructure/scheduler"
	"github.com/legallink/backend/internal/infrastructure/storage"
	"github.com/legallink/backend/internal/infrastructure/telemetry"
	"github.com/legallink/backend/internal/interfaces/http/handler"
	"github.com/legallink/backend/internal/interfaces/http/middleware"
	"github.com/legallink/backend/internal/interfaces/http/router"
	"github.com/legallink/backend/internal/interfaces/ws"

	_ "github.com/legallink/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			LegalLink Backend API
//	@version		1.0
//	@description	Legal assistance platform API - advocate directory, appointments, community feed and AI guidance chat

//	@contact.name	API Support
//	@contact.url	https://github.com/legallink/backend
//	@contact.email	support@legallink.example.com

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting LegalLink Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize OpenTelemetry providers. Each returns a no-op
	// implementation when telemetry is disabled.
	ctx := context.Background()

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down logger provider", zap.Error(err))
		}
	}()

	// Bridge zap to OTEL so application logs reach the collector
	if cfg.Telemetry.Enabled {
		otelCore := telemetry.NewZapOTELCore(telemetry.ZapBridgeConfig{
			ServiceName:    cfg.Telemetry.ServiceName,
			LoggerProvider: loggerProvider,
		})
		log = telemetry.NewBridgedLogger(log.Core(), otelCore, zap.AddCaller())
	}

	businessMetrics, err := telemetry.NewBusinessMetrics(meterProvider)
	if err != nil {
		log.Warn("Failed to initialize business metrics, continuing without them", zap.Error(err))
		businessMetrics = nil
	}

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Register query tracing on the GORM connection
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:         true,
			LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
			SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		}, log)
		if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
			log.Warn("Failed to register database tracing", zap.Error(err))
		}
	}

	// Redis backs the token blacklist and chat session cache. The server
	// degrades to in-process fallbacks when it is unreachable.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis client", zap.Error(err))
		}
	}()

	var blacklist auth.TokenBlacklist
	pingCtx, cancelPing := context.WithTimeout(ctx, 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist. "+
			"Revocations will not be shared across instances.", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
		log.Info("Redis connected successfully", zap.String("addr", cfg.Redis.Addr()))
	}
	cancelPing()

	// Initialize repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	advocateRepo := persistence.NewGormAdvocateRepository(db.DB)
	appointmentRepo := persistence.NewGormAppointmentRepository(db.DB)
	ratingRepo := persistence.NewGormRatingRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)
	postRepo := persistence.NewGormPostRepository(db.DB)
	commentRepo := persistence.NewGormCommentRepository(db.DB)
	reactionRepo := persistence.NewGormReactionRepository(db.DB)
	knowledgeRepo := persistence.NewGormKnowledgeRepository(db.DB)
	messageRepo := persistence.NewGormMessageRepository(db.DB)

	// Initialize event bus and handlers
	eventBus := event.NewInMemoryEventBus(log)

	auditLogHandler := event.NewAuditLogHandler(log)
	eventBus.Subscribe(auditLogHandler)

	appointmentNotificationHandler := event.NewAppointmentNotificationHandler(log)
	eventBus.Subscribe(appointmentNotificationHandler)

	log.Info("Event handlers registered",
		zap.Strings("appointment_notification_events", appointmentNotificationHandler.EventTypes()),
	)

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Calendar gateway: Google Calendar when configured, no-op otherwise
	var calendarGateway engagementapp.CalendarGateway
	if cfg.Calendar.Enabled {
		gateway, err := calendar.NewGoogleCalendarGateway(ctx, &cfg.Calendar, log)
		if err != nil {
			log.Fatal("Failed to initialize Google Calendar gateway", zap.Error(err))
		}
		calendarGateway = gateway
		log.Info("Google Calendar sync enabled", zap.String("calendar_id", cfg.Calendar.CalendarID))
	} else {
		calendarGateway = calendar.NewNoopCalendarGateway()
	}

	// Object storage for feed attachments: S3 when a bucket is
	// configured, in-memory stub otherwise
	var objectStorage socialapp.ObjectStorage
	if cfg.Storage.Bucket != "" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize S3 object storage", zap.Error(err))
		}
		objectStorage = s3Storage
		log.Info("S3 object storage enabled", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		log.Warn("No storage bucket configured, uploads use the in-memory stub")
		objectStorage = storage.NewStubObjectStorage()
	}

	// Identity services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, eventBus, log)
	userService := identityapp.NewUserService(userRepo, blacklist, log)

	// Directory services
	advocateService := directoryapp.NewAdvocateService(advocateRepo, userRepo, eventBus, log)
	matchingService := directoryapp.NewMatchingService(advocateRepo, log)

	// Engagement services
	appointmentService := engagementapp.NewAppointmentService(appointmentRepo, advocateRepo, calendarGateway, eventBus, log)

	// Moderation services
	ratingService := moderationapp.NewRatingService(ratingRepo, advocateRepo, eventBus, log)
	reportService := moderationapp.NewReportService(reportRepo, advocateRepo, eventBus, log)

	// Social services
	postService := socialapp.NewPostService(postRepo, commentRepo, reactionRepo, log)
	uploadService := socialapp.NewUploadService(objectStorage, cfg.Storage.PublicBaseURL, cfg.Storage.MaxUploadSize, log)

	// Guidance chat: Ollama LLM, keyword retrieval over the knowledge
	// base and the advocate matcher, orchestrated as a graph pipeline
	sessionStore, err := cache.NewSessionStoreFactory(cfg.Redis, cfg.Assistant.SessionTTL, cache.WithLogger(log)).CreateStore()
	if err != nil {
		log.Fatal("Failed to create chat session store", zap.Error(err))
	}

	llm, err := assistantinfra.NewOllamaLLM(&cfg.Assistant)
	if err != nil {
		log.Fatal("Failed to initialize Ollama client", zap.Error(err))
	}
	advocateMatcher := assistantinfra.NewRepositoryMatcher(advocateRepo)
	pipeline, err := assistantinfra.NewGraphPipeline(llm, knowledgeRepo, advocateMatcher, cfg.Assistant.RetrievalTopK, log)
	if err != nil {
		log.Fatal("Failed to build guidance pipeline", zap.Error(err))
	}
	chatService := assistantapp.NewChatService(sessionStore, messageRepo, pipeline, cfg.Assistant.TurnTimeout, log)

	// Background jobs: appointment reminders and calendar sync retries
	if cfg.Scheduler.Enabled {
		jobScheduler := scheduler.NewScheduler(scheduler.Config{
			MaxConcurrentJobs: cfg.Scheduler.MaxConcurrentJobs,
			JobTimeout:        cfg.Scheduler.JobTimeout,
			RetryDelay:        cfg.Scheduler.RetryDelay,
		}, scheduler.NewEngagementExecutor(appointmentService, log), log)
		if err := jobScheduler.Start(ctx); err != nil {
			log.Fatal("Failed to start scheduler", zap.Error(err))
		}
		defer func() {
			if err := jobScheduler.Stop(context.Background()); err != nil {
				log.Error("Error stopping scheduler", zap.Error(err))
			}
		}()

		trigger := scheduler.NewPeriodicTrigger(scheduler.TriggerConfig{
			ScanInterval:   cfg.Scheduler.ScanInterval,
			ReminderWindow: cfg.Scheduler.ReminderWindow,
			RetryBatchSize: cfg.Scheduler.RetryBatchSize,
			RetryAttempts:  cfg.Scheduler.RetryAttempts,
		}, jobScheduler, log)
		if err := trigger.Start(ctx); err != nil {
			log.Fatal("Failed to start periodic trigger", zap.Error(err))
		}
		defer trigger.Stop()

		log.Info("Scheduler started",
			zap.Duration("scan_interval", cfg.Scheduler.ScanInterval),
			zap.Duration("reminder_window", cfg.Scheduler.ReminderWindow),
		)
	}

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService, cfg.Cookie, cfg.JWT.RefreshTokenExpiration)
	userHandler := handler.NewUserHandler(userService)
	advocateHandler := handler.NewAdvocateHandler(advocateService)
	matchingHandler := handler.NewMatchingHandler(matchingService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService)
	ratingHandler := handler.NewRatingHandler(ratingService)
	reportHandler := handler.NewReportHandler(reportService)
	postHandler := handler.NewPostHandler(postService)
	uploadHandler := handler.NewUploadHandler(uploadService)
	assistantHandler := handler.NewAssistantHandler(chatService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. Tracing - Create server spans, mark errors
	// 6. Metrics - Record RED metrics per route
	// 7. CORS - Handle cross-origin requests
	// 8. BodyLimit - Limit request body size
	// 9. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: meterProvider,
		ServiceName:   cfg.Telemetry.ServiceName,
		Enabled:       cfg.Telemetry.Enabled,
	}))

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Swagger documentation endpoint
	if cfg.Swagger.Enabled {
		swaggerGuard := middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:     cfg.Swagger.Enabled,
			RequireAuth: cfg.Swagger.RequireAuth,
			AllowedIPs:  cfg.Swagger.AllowedIPs,
		}, middleware.JWTAuthMiddleware(jwtService))
		engine.GET("/swagger/*any", swaggerGuard, ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// WebSocket chat gateway. Authenticates its own handshake, so it
	// sits outside the versioned API group.
	hub := ws.NewHub(businessMetrics, log)
	wsHandler := ws.NewHandler(hub, chatService, jwtService, blacklist, cfg.Chat, cfg.Assistant.TurnTimeout, checkWSOrigin(cfg.HTTP.CORSAllowOrigins), log)
	engine.GET("/ws/chat", wsHandler.Serve)

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes
	// Configure skip paths for public endpoints
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/auth/register",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))
	r.Use(middleware.TracingAttributeInjector())

	// Identity: registration, login and token lifecycle
	authRoutes := router.NewDomainGroup("auth", "/auth")
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authRoutes.Use(middleware.RateLimitByKey(authLimiter, func(c *gin.Context) string {
			return c.ClientIP()
		}))
		log.Info("Auth rate limiting enabled",
			zap.Int("requests", cfg.HTTP.AuthRateLimitRequests),
			zap.Duration("window", cfg.HTTP.AuthRateLimitWindow),
		)
	}
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.Refresh)
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.PUT("/password", authHandler.ChangePassword)

	// Identity: own profile
	userRoutes := router.NewDomainGroup("users", "/users")
	userRoutes.GET("/me", userHandler.Me)
	userRoutes.PUT("/me", userHandler.UpdateProfile)

	// Directory: advocate registration, profiles and search
	advocateRoutes := router.NewDomainGroup("advocates", "/advocates")
	advocateRoutes.POST("", advocateHandler.Register)
	advocateRoutes.GET("", advocateHandler.Search)
	advocateRoutes.GET("/me", advocateHandler.GetMine)
	advocateRoutes.PUT("/me", advocateHandler.UpdateProfile)
	advocateRoutes.PUT("/me/availability", advocateHandler.SetAvailability)
	advocateRoutes.GET("/:id", advocateHandler.GetByID)
	advocateRoutes.GET("/:id/ratings", ratingHandler.ListByAdvocate)

	// Directory: weighted matching
	matchingRoutes := router.NewDomainGroup("matching", "/matching")
	matchingRoutes.POST("", matchingHandler.Match)

	// Engagement: appointment lifecycle
	appointmentRoutes := router.NewDomainGroup("appointments", "/appointments")
	appointmentRoutes.POST("", appointmentHandler.Request)
	appointmentRoutes.GET("", appointmentHandler.ListMine)
	appointmentRoutes.GET("/:id", appointmentHandler.GetByID)
	appointmentRoutes.POST("/:id/confirm", appointmentHandler.Confirm)
	appointmentRoutes.POST("/:id/reject", appointmentHandler.Reject)
	appointmentRoutes.POST("/:id/cancel", appointmentHandler.Cancel)
	appointmentRoutes.POST("/:id/reschedule", appointmentHandler.Reschedule)
	appointmentRoutes.POST("/:id/complete", appointmentHandler.Complete)

	// Moderation: ratings and reports
	ratingRoutes := router.NewDomainGroup("ratings", "/ratings")
	ratingRoutes.POST("", ratingHandler.Rate)
	ratingRoutes.DELETE("/:id", ratingHandler.Delete)

	reportRoutes := router.NewDomainGroup("reports", "/reports")
	reportRoutes.POST("", reportHandler.File)
	reportRoutes.GET("", reportHandler.ListOwn)
	reportRoutes.GET("/:id", reportHandler.GetByID)

	// Social: community feed
	postRoutes := router.NewDomainGroup("posts", "/posts")
	postRoutes.POST("", postHandler.Create)
	postRoutes.GET("", postHandler.Feed)
	postRoutes.GET("/:id", postHandler.GetByID)
	postRoutes.PUT("/:id", postHandler.Edit)
	postRoutes.DELETE("/:id", postHandler.Delete)
	postRoutes.POST("/:id/comments", postHandler.Comment)
	postRoutes.GET("/:id/comments", postHandler.ListComments)
	postRoutes.POST("/:id/reactions", postHandler.React)

	commentRoutes := router.NewDomainGroup("comments", "/comments")
	commentRoutes.PUT("/:id", postHandler.EditComment)
	commentRoutes.DELETE("/:id", postHandler.DeleteComment)

	uploadRoutes := router.NewDomainGroup("uploads", "/uploads")
	uploadRoutes.POST("", uploadHandler.Upload)

	// Assistant: guidance chat REST surface
	assistantRoutes := router.NewDomainGroup("assistant", "/assistant")
	assistantRoutes.POST("/sessions", assistantHandler.StartSession)
	assistantRoutes.GET("/sessions", assistantHandler.ListSessions)
	assistantRoutes.GET("/sessions/:id/messages", assistantHandler.History)
	assistantRoutes.DELETE("/sessions/:id", assistantHandler.EndSession)
	assistantRoutes.POST("/messages", assistantHandler.Send)

	// Admin: user management, verification review, advocate sanctions
	// and report moderation
	adminRoutes := router.NewDomainGroup("admin", "/admin")
	adminRoutes.Use(middleware.RequireRole("admin"))
	adminRoutes.GET("/users", userHandler.List)
	adminRoutes.POST("/users/:id/lock", userHandler.Lock)
	adminRoutes.POST("/users/:id/unlock", userHandler.Unlock)
	adminRoutes.POST("/users/:id/activate", userHandler.Activate)
	adminRoutes.DELETE("/users/:id", userHandler.Deactivate)
	adminRoutes.GET("/verifications", advocateHandler.ListVerifications)
	adminRoutes.POST("/verifications/:id", advocateHandler.ReviewVerification)
	adminRoutes.POST("/advocates/:id/suspend", advocateHandler.Suspend)
	adminRoutes.POST("/advocates/:id/reinstate", advocateHandler.Reinstate)
	adminRoutes.GET("/reports", reportHandler.ListAll)
	adminRoutes.POST("/reports/:id/review", reportHandler.StartReview)
	adminRoutes.POST("/reports/:id/close", reportHandler.Close)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.Info)
	systemRoutes.GET("/ping", systemHandler.Ping)

	// Register all domain groups
	r.Register(authRoutes).
		Register(userRoutes).
		Register(advocateRoutes).
		Register(matchingRoutes).
		Register(appointmentRoutes).
		Register(ratingRoutes).
		Register(reportRoutes).
		Register(postRoutes).
		Register(commentRoutes).
		Register(uploadRoutes).
		Register(assistantRoutes).
		Register(adminRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	// Close remaining chat connections after the HTTP listener stops
	hub.Shutdown(shutdownCtx)

	log.Info("Server exited gracefully")
}

// checkWSOrigin builds the origin check for WebSocket upgrades from the
// configured CORS origins
func checkWSOrigin(allowedOrigins []string) func(r *http.Request) bool {
	allowAll := false
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		allowed[origin] = struct{}{}
	}

	return func(r *http.Request) bool {
		if allowAll {
			return true
		}
		origin := r.Header.Get("Origin")
		if origin == "" {
			// Non-browser clients
			return true
		}
		_, ok := allowed[origin]
		return ok
	}
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		payload := gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		}
		if stats, err := db.Stats(); err == nil {
			payload["db_pool"] = gin.H{
				"open":   stats.OpenConnections,
				"in_use": stats.InUse,
				"idle":   stats.Idle,
			}
		}
		c.JSON(http.StatusOK, payload)
	}
}
