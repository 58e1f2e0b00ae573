package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-task-tracker/internal/models"
	"go-task-tracker/testutil"
)

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateTask_Success(t *testing.T) {
	db, router, _ := testutil.SetupTestDB(t)
	defer db.Close()

	w := doJSON(t, router, http.MethodPost, "/api/tasks", map[string]any{
		"title":       "Buy groceries",
		"description": "Milk, eggs, bread",
		"status":      "pending",
		"priority":    "high",
		"category":    "personal",
		"due_date":    "2026-01-30",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Buy groceries", created.Title)
	require.NotNil(t, created.Description)
	assert.Equal(t, "Milk, eggs, bread", *created.Description)
	assert.Equal(t, models.StatusPending, created.Status)
	assert.Equal(t, "2026-01-30", created.DueDate)
	assert.True(t, created.CreatedAt.Equal(created.UpdatedAt))
	require.WithinDuration(t, time.Now(), created.CreatedAt, 5*time.Second)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestCreateTask_ValidationFailures(t *testing.T) {
	db, router, _ := testutil.SetupTestDB(t)
	defer db.Close()

	cases := []struct {
		name string
		body map[string]any
	}{
		{"missing title", map[string]any{"status": "pending", "priority": "high", "category": "work", "due_date": "2026-01-30"}},
		{"bad status", map[string]any{"title": "T", "status": "done", "priority": "high", "category": "work", "due_date": "2026-01-30"}},
		{"bad priority", map[string]any{"title": "T", "status": "pending", "priority": "urgent", "category": "work", "due_date": "2026-01-30"}},
		{"bad due_date", map[string]any{"title": "T", "status": "pending", "priority": "high", "category": "work", "due_date": "30-01-2026"}},
		{"missing category", map[string]any{"title": "T", "status": "pending", "priority": "high", "due_date": "2026-01-30"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/api/tasks", tc.body)
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		})
	}
}

func TestCreateTask_TitleTooLong(t *testing.T) {
	db, router, _ := testutil.SetupTestDB(t)
	defer db.Close()

	long := make([]byte, 201)
	for i := range long {
		long[i] = 'x'
	}
	w := doJSON(t, router, http.MethodPost, "/api/tasks", map[string]any{
		"title":    string(long),
		"status":   "pending",
		"priority": "high",
		"category": "work",
		"due_date": "2026-01-30",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestListTasks_AlwaysAnArray(t *testing.T) {
	db, router, _ := testutil.SetupTestDB(t)
	defer db.Close()

	w := doJSON(t, router, http.MethodGet, "/api/tasks", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestListTasks_FilterAndSort(t *testing.T) {
	db, router, repo := testutil.SetupTestDB(t)
	defer db.Close()

	testutil.CreateTestTask(t, repo, "Late pending", models.StatusPending, models.PriorityHigh, "work", "2026-09-01")
	testutil.CreateTestTask(t, repo, "Early pending", models.StatusPending, models.PriorityHigh, "work", "2026-02-01")
	testutil.CreateTestTask(t, repo, "Completed", models.StatusCompleted, models.PriorityHigh, "work", "2026-01-01")

	w := doJSON(t, router, http.MethodGet, "/api/tasks?status=pending&priority=high&sort_by=due_date&order=asc", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var tasks []models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tasks))
	require.Len(t, tasks, 2)
	assert.Equal(t, "Early pending", tasks[0].Title)
	assert.Equal(t, "Late pending", tasks[1].Title)
}

func TestListTasks_InvalidQueryRejected(t *testing.T) {
	db, router, _ := testutil.SetupTestDB(t)
	defer db.Close()

	for _, path := range []string{
		"/api/tasks?status=done",
		"/api/tasks?priority=urgent",
		"/api/tasks?sort_by=title",
		"/api/tasks?sort_by=due_date&order=sideways",
	} {
		w := doJSON(t, router, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "expected 422 for %s", path)
	}
}

func TestGetTask_NotFoundAndBadID(t *testing.T) {
	db, router, _ := testutil.SetupTestDB(t)
	defer db.Close()

	w := doJSON(t, router, http.MethodGet, "/api/tasks/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/tasks/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReplaceTask_OverwritesEverything(t *testing.T) {
	db, router, repo := testutil.SetupTestDB(t)
	defer db.Close()

	created := testutil.CreateTestTask(t, repo, "Original", models.StatusPending, models.PriorityHigh, "personal", "2026-01-30")

	w := doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/tasks/%d", created.ID), map[string]any{
		"title":    "Updated Title",
		"status":   "in_progress",
		"priority": "medium",
		"category": "work",
		"due_date": "2026-02-15",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var replaced models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &replaced))
	assert.Equal(t, "Updated Title", replaced.Title)
	assert.Nil(t, replaced.Description, "Omitted description must come back null, not the old value")
	assert.Equal(t, models.StatusInProgress, replaced.Status)
	assert.Equal(t, "work", replaced.Category)
}

func TestReplaceTask_NotFound(t *testing.T) {
	db, router, _ := testutil.SetupTestDB(t)
	defer db.Close()

	w := doJSON(t, router, http.MethodPut, "/api/tasks/9999", map[string]any{
		"title":    "Ghost",
		"status":   "pending",
		"priority": "low",
		"category": "work",
		"due_date": "2026-01-01",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPatchTask_StatusOnly(t *testing.T) {
	db, router, repo := testutil.SetupTestDB(t)
	defer db.Close()

	created := testutil.CreateTestTask(t, repo, "Buy groceries", models.StatusPending, models.PriorityHigh, "personal", "2026-01-30")

	time.Sleep(100 * time.Millisecond)

	w := doJSON(t, router, http.MethodPatch, fmt.Sprintf("/api/tasks/%d", created.ID), map[string]any{
		"status": "completed",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var patched models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &patched))
	assert.Equal(t, models.StatusCompleted, patched.Status)
	assert.Equal(t, "Buy groceries", patched.Title)
	assert.True(t, patched.UpdatedAt.After(created.UpdatedAt))
}

func TestPatchTask_EmptyBodyReturnsRecord(t *testing.T) {
	db, router, repo := testutil.SetupTestDB(t)
	defer db.Close()

	created := testutil.CreateTestTask(t, repo, "Stable", models.StatusPending, models.PriorityLow, "work", "2026-04-01")

	w := doJSON(t, router, http.MethodPatch, fmt.Sprintf("/api/tasks/%d", created.ID), map[string]any{})
	require.Equal(t, http.StatusOK, w.Code)

	var patched models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &patched))
	assert.Equal(t, created.Title, patched.Title)
	assert.Equal(t, created.Status, patched.Status)
}

func TestPatchTask_InvalidValueRejected(t *testing.T) {
	db, router, repo := testutil.SetupTestDB(t)
	defer db.Close()

	created := testutil.CreateTestTask(t, repo, "Guarded", models.StatusPending, models.PriorityLow, "work", "2026-04-01")

	w := doJSON(t, router, http.MethodPatch, fmt.Sprintf("/api/tasks/%d", created.ID), map[string]any{
		"status": "archived",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestDeleteTask_Lifecycle(t *testing.T) {
	db, router, repo := testutil.SetupTestDB(t)
	defer db.Close()

	created := testutil.CreateTestTask(t, repo, "Ephemeral", models.StatusPending, models.PriorityLow, "work", "2026-05-01")
	path := fmt.Sprintf("/api/tasks/%d", created.ID)

	w := doJSON(t, router, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = doJSON(t, router, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	db, router, _ := testutil.SetupTestDB(t)
	defer db.Close()

	w := doJSON(t, router, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "running")
}
