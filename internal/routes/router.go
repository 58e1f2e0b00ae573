// Package routes wires middleware, handlers and endpoints into the router.
package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"go-task-tracker/internal/handlers"
	"go-task-tracker/internal/models"
	"go-task-tracker/internal/repositories"
	"go-task-tracker/internal/services"
)

// SetupRouter builds the Gin router and registers all endpoints.
func SetupRouter(db *sqlx.DB) *gin.Engine {
	models.RegisterValidations()

	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"http://localhost:3000"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	r.Use(cors.New(config))
	r.Use(RequestIDMiddleware())

	taskRepo := repositories.NewTaskRepository(db)
	taskService := services.NewTaskService(taskRepo)
	taskHandler := handlers.NewTaskHandler(taskService)

	r.GET("/api/health", HealthHandler)
	r.GET("/api/dbcheck", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database connection failed", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Database connection is healthy"})
	})

	r.POST("/api/tasks", taskHandler.CreateTaskHandler)
	r.GET("/api/tasks", taskHandler.ListTasksHandler)
	r.GET("/api/tasks/:id", taskHandler.GetTaskByIDHandler)
	r.PUT("/api/tasks/:id", taskHandler.ReplaceTaskHandler)
	r.PATCH("/api/tasks/:id", taskHandler.PatchTaskHandler)
	r.DELETE("/api/tasks/:id", taskHandler.DeleteTaskHandler)

	return r
}

// HealthHandler reports service liveness.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Task Management API", "status": "running"})
}
