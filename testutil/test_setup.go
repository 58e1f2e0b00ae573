// Package testutil provides shared setup for database-backed tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"go-task-tracker/internal/database"
	"go-task-tracker/internal/models"
	"go-task-tracker/internal/repositories"
	"go-task-tracker/internal/routes"
)

// SetupTestDB connects to the TEST_DB_* database, rebuilds the tasks schema
// and returns the pool, a ready router and a repository. Tests are skipped
// when no test database is configured.
func SetupTestDB(t *testing.T) (*sqlx.DB, *gin.Engine, *repositories.TaskRepository) {
	t.Helper()

	_ = godotenv.Load("../../.env")

	dbUser := os.Getenv("TEST_DB_USER")
	dbPass := os.Getenv("TEST_DB_PASS")
	dbHost := os.Getenv("TEST_DB_HOST")
	dbPort := os.Getenv("TEST_DB_PORT")
	dbName := os.Getenv("TEST_DB_NAME")

	if dbHost == "" {
		t.Skip("TEST_DB_* not configured, skipping database test")
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", dbUser, dbPass, dbHost, dbPort, dbName)

	db, err := sqlx.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("Failed to open database connection: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Fatalf("Failed to ping database: %v", err)
	}

	// Clean slate for every test.
	if _, err := db.Exec("DROP TRIGGER IF EXISTS tasks_touch_updated_at"); err != nil {
		t.Fatalf("Failed to drop trigger: %v", err)
	}
	if _, err := db.Exec("DROP TABLE IF EXISTS tasks"); err != nil {
		t.Fatalf("Failed to drop tasks table: %v", err)
	}
	if err := database.EnsureSchema(db); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	gin.SetMode(gin.TestMode)
	router := routes.SetupRouter(db)
	repo := repositories.NewTaskRepository(db)

	return db, router, repo
}

// CreateTestTask inserts a task through the repository and fails the test
// if the insert does not succeed.
func CreateTestTask(t *testing.T, repo *repositories.TaskRepository, title, status, priority, category, dueDate string) *models.Task {
	t.Helper()

	description := "created by testutil"
	task, err := repo.Create(context.Background(), &models.CreateTaskRequest{
		Title:       title,
		Description: &description,
		Status:      status,
		Priority:    priority,
		Category:    category,
		DueDate:     dueDate,
	})
	if err != nil {
		t.Fatalf("Failed to create test task: %v", err)
	}
	return task
}
