package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "taskboard/docs"
	"taskboard/internal/auth"
	"taskboard/internal/config"
	"taskboard/internal/handler"
	"taskboard/internal/mailer"
	"taskboard/internal/middleware"
	"taskboard/internal/ratelimit"
	"taskboard/internal/realtime"
	"taskboard/internal/repository"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	Engine   *gin.Engine
	DB       *gorm.DB
	Config   *config.Config
	Registry *realtime.Registry

	redis *redis.Client
}

// Init connects to postgres (and redis when configured) and builds the router.
func Init(cfg *config.Config) (*Server, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	log.WithField("host", cfg.DBHost).Info("connected to database")

	var limiter ratelimit.Limiter = ratelimit.Unlimited{}
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		rdb = redis.NewClient(opts)
		limiter = ratelimit.NewFixedWindow(rdb, "register", cfg.RegisterRateLimit, time.Minute)
		log.WithField("addr", opts.Addr).Info("registration rate limit backed by redis")
	} else {
		log.Warn("REDIS_URL not set, registration is not rate limited")
	}

	registry := realtime.NewRegistry()
	return &Server{
		Engine:   NewEngine(cfg, db, registry, limiter),
		DB:       db,
		Config:   cfg,
		Registry: registry,
		redis:    rdb,
	}, nil
}

// NewEngine wires repositories, services and handlers onto a gin engine.
func NewEngine(cfg *config.Config, db *gorm.DB, registry *realtime.Registry, limiter ratelimit.Limiter) *gin.Engine {
	userRepo := repository.NewUserRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	columnRepo := repository.NewColumnRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	invitationRepo := repository.NewInvitationRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)

	dispatcher := realtime.NewDispatcher(registry)
	accessTokens := auth.NewIssuer(cfg.JWTSecret, cfg.JWTExpiry)
	verifyTokens := auth.NewIssuer(cfg.VerifyEmailSecret, cfg.VerifyEmailExpiry)

	guard := service.NewGuard(memberRepo, boardRepo)
	userService := service.NewUserService(userRepo)
	boardService := service.NewBoardService(boardRepo, memberRepo, userRepo, guard, dispatcher)
	columnService := service.NewColumnService(columnRepo, guard)
	taskService := service.NewTaskService(taskRepo, columnRepo, guard)
	invitationService := service.NewInvitationService(invitationRepo, memberRepo, userRepo, guard, dispatcher)
	assignmentService := service.NewAssignmentService(assignmentRepo, taskRepo, userRepo, guard, dispatcher)
	notificationService := service.NewNotificationService(invitationRepo, assignmentRepo, invitationService, assignmentService)
	authService := service.NewAuthService(
		userRepo,
		invitationService,
		accessTokens,
		verifyTokens,
		cfg.VerifyEmailExpiry,
		mailer.NewLogMailer(log.StandardLogger()),
		service.MailSettings{From: cfg.MailFrom, ClientURL: cfg.ClientURL},
	)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	boardHandler := handler.NewBoardHandler(boardService, invitationService)
	columnHandler := handler.NewColumnHandler(columnService)
	taskHandler := handler.NewTaskHandler(taskService, assignmentService)
	notificationHandler := handler.NewNotificationHandler(invitationService, assignmentService, notificationService)
	eventHandler := handler.NewEventHandler(userService, registry, cfg.SSEPingInterval)

	r := gin.New()
	r.Use(middleware.RequestLogger(), middleware.Recovery())

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes
	r.POST("/auth/register", middleware.RateLimit(limiter), authHandler.Register)
	r.POST("/auth/login", authHandler.Login)
	r.PUT("/auth/email", authHandler.VerifyEmail)

	// EventSource cannot send headers, so the stream also accepts ?token=
	r.GET("/events", middleware.JWTStreamAuth(accessTokens), eventHandler.Stream)

	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuth(accessTokens))
	{
		authorized.GET("/user", userHandler.List)

		authorized.POST("/board", boardHandler.Create)
		authorized.GET("/board", boardHandler.List)
		authorized.GET("/board/:board_id", boardHandler.Get)
		authorized.PUT("/board/:board_id", boardHandler.Update)
		authorized.DELETE("/board/:board_id", boardHandler.Delete)
		authorized.POST("/board/:board_id/invite", boardHandler.Invite)

		authorized.POST("/column", columnHandler.Create)
		authorized.PUT("/column/:column_id", columnHandler.Rename)
		authorized.DELETE("/column/:column_id", columnHandler.Delete)

		// :id is a task id, except under /board where it names the board.
		authorized.POST("/task", taskHandler.Create)
		authorized.PUT("/task/:id", taskHandler.UpdateDescription)
		authorized.DELETE("/task/:id", taskHandler.Delete)
		authorized.GET("/task/:id/board", taskHandler.ListByBoard)
		authorized.PUT("/task/:id/board", taskHandler.UpdateOrder)
		authorized.PUT("/task/:id/assign", taskHandler.Assign)

		authorized.PUT("/invitation", notificationHandler.MarkInvitationsSeen)
		authorized.PUT("/invitation/accept", notificationHandler.AcceptInvitation)
		authorized.PUT("/invitation/decline", notificationHandler.DeclineInvitation)
		authorized.PUT("/assignment", notificationHandler.MarkAssignmentsSeen)
		authorized.GET("/notification", notificationHandler.List)
	}
	return r
}

// Run serves until SIGINT or SIGTERM, then drains requests. Open event
// streams are cancelled first so they do not hold up the shutdown.
func (s *Server) Run() error {
	baseCtx, cancelStreams := context.WithCancel(context.Background())
	defer cancelStreams()

	srv := &http.Server{
		Addr:        ":" + s.Config.ServerPort,
		Handler:     s.Engine,
		BaseContext: func(net.Listener) context.Context { return baseCtx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", s.Config.ServerPort).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("shutting down server")
	}

	online := s.Registry.Online()
	users := make([]string, len(online))
	for i, p := range online {
		users[i] = p.Email
	}
	log.WithFields(log.Fields{"streams": len(online), "users": users}).Info("closing event streams")
	cancelStreams()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.close()

	log.Info("server exited properly")
	return nil
}

func (s *Server) close() {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			log.WithError(err).Warn("close redis")
		}
	}
	if sqlDB, err := s.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.WithError(err).Warn("close database")
		}
	}
}
