package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restops/internal/config"
	"restops/internal/handler"
	"restops/internal/middleware"
	"restops/internal/model"
	"restops/internal/notification"
	"restops/internal/repository"
	"restops/internal/scheduler"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Server struct {
	Engine        *gin.Engine
	Notifications *notification.Service
	Config        *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	// Setup Gin
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Initialize repositories (in-memory, process lifetime)
	taskRepo := repository.NewTaskRepository()
	memberRepo := repository.NewMemberRepository()
	activityRepo := repository.NewActivityRepository()
	depRepo := repository.NewDependencyRepository()

	// Initialize the core: notification service + scheduler
	notifications := notification.NewService()
	templates := scheduler.NewTemplateStore()
	engine := scheduler.NewEngine(notifications)

	// Server-side subscriber: consumes fan-outs the way the UI badge does.
	notifications.Subscribe(func(list []model.Notification) {
		if len(list) > 0 {
			log.Printf("🔔 %s (%d total)", list[0].Title, len(list))
		}
	})
	log.Println("✅ Core services initialized")

	// Initialize handlers
	templateHandler := handler.NewTemplateHandler(templates, engine, taskRepo)
	taskHandler := handler.NewTaskHandler(taskRepo, memberRepo, activityRepo, depRepo, engine)
	activityHandler := handler.NewActivityHandler(taskRepo, activityRepo, depRepo)
	notificationHandler := handler.NewNotificationHandler(notifications, taskRepo)
	memberHandler := handler.NewMemberHandler(memberRepo)

	// Public routes
	r.POST("/login", memberHandler.Login)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes - require a token
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		// Admin panel routes
		authorized.POST("/admin/templates", templateHandler.Create)
		authorized.GET("/admin/templates", templateHandler.GetAll)
		authorized.PUT("/admin/templates/:id", templateHandler.Update)
		authorized.DELETE("/admin/templates/:id", templateHandler.Delete)
		authorized.POST("/admin/templates/generate", templateHandler.Generate)

		// Roster routes
		authorized.POST("/members", memberHandler.Create)
		authorized.GET("/members", memberHandler.GetAll)
		authorized.DELETE("/members/:id", memberHandler.Delete)

		// Task routes
		authorized.POST("/tasks", taskHandler.Create)
		authorized.GET("/tasks", taskHandler.GetAll)
		authorized.GET("/tasks/:id", taskHandler.GetByID)
		authorized.PUT("/tasks/:id", taskHandler.Update)
		authorized.DELETE("/tasks/:id", taskHandler.Delete)
		authorized.POST("/tasks/adjust-priorities", taskHandler.AdjustPriorities)
		authorized.POST("/tasks/balance", taskHandler.Balance)

		// Task activity routes
		authorized.POST("/tasks/:id/comments", activityHandler.AddComment)
		authorized.GET("/tasks/:id/comments", activityHandler.GetComments)
		authorized.POST("/tasks/:id/time-entries", activityHandler.AddTimeEntry)
		authorized.GET("/tasks/:id/time-entries", activityHandler.GetTimeEntries)
		authorized.POST("/tasks/:id/attachments", activityHandler.AddAttachment)
		authorized.GET("/tasks/:id/attachments", activityHandler.GetAttachments)
		authorized.GET("/tasks/:id/history", activityHandler.GetHistory)
		authorized.POST("/tasks/:id/dependencies", activityHandler.AddDependency)
		authorized.GET("/tasks/:id/dependencies", activityHandler.GetDependencies)

		// Notification routes
		authorized.GET("/notifications", notificationHandler.GetAll)
		authorized.GET("/notifications/unread-count", notificationHandler.GetUnreadCount)
		authorized.POST("/notifications/:id/read", notificationHandler.MarkAsRead)
		authorized.POST("/notifications/check-overdue", notificationHandler.CheckOverdue)
	}

	return &Server{
		Engine:        r,
		Notifications: notifications,
		Config:        cfg,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	log.Println("✅ Server exited properly")
}
