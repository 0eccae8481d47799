package main

import (
	"database/sql"
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	pgSessions "github.com/gin-contrib/sessions/postgres"
	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/wisnuaw/tasklist-api/internal/config"
	"github.com/wisnuaw/tasklist-api/internal/constants"
	"github.com/wisnuaw/tasklist-api/internal/database"
	"github.com/wisnuaw/tasklist-api/internal/handlers"
	"github.com/wisnuaw/tasklist-api/internal/middleware"
	"github.com/wisnuaw/tasklist-api/internal/repository"
	"github.com/wisnuaw/tasklist-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware. Sessions always live server-side in the
	// relational store next to the data tables, so a token stops
	// validating the moment logout deletes it. On mysql the sessions
	// table is managed through the existing GORM handle.
	var store sessions.Store
	if cfg.DBDriver == "postgres" {
		sessionDB, err := sql.Open("postgres", cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("Failed to open session database: %v", err)
		}
		store, err = pgSessions.NewStore(sessionDB, []byte(cfg.SessionSecret))
		if err != nil {
			log.Fatalf("Failed to create session store: %v", err)
		}
	} else {
		store = gormsessions.NewStore(db, true, []byte(cfg.SessionSecret))
	}

	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   constants.SessionMaxAge,
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories, services and handlers
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	authService := services.NewAuthService(userRepo)
	taskService := services.NewTaskService(taskRepo)
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Task List API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			// Logout is idempotent and succeeds without a session
			auth.GET("/logout", authHandler.Logout)
			auth.GET("/user", middleware.RequireAuth(), authHandler.GetCurrentUser)
			auth.PATCH("/me", middleware.RequireAuth(), authHandler.UpdateProfile)
			auth.POST("/change-password", middleware.RequireAuth(), authHandler.ChangePassword)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.POST("/mark-all-complete", taskHandler.MarkAllComplete)
			tasks.DELETE("/completed", taskHandler.ClearCompleted)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.PATCH("/:id/toggle", taskHandler.ToggleTask)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
