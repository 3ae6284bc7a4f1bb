package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"restops/internal/handler"
	"restops/internal/model"
	"restops/internal/notification"
	"restops/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupNotificationRouter() (*gin.Engine, *notification.Service, *repository.TaskRepository) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	svc := notification.NewService()
	taskRepo := repository.NewTaskRepository()

	h := handler.NewNotificationHandler(svc, taskRepo)
	r.GET("/notifications", h.GetAll)
	r.GET("/notifications/unread-count", h.GetUnreadCount)
	r.POST("/notifications/:id/read", h.MarkAsRead)
	r.POST("/notifications/check-overdue", h.CheckOverdue)

	return r, svc, taskRepo
}

func TestNotificationHandler_CheckOverdue(t *testing.T) {
	// Arrange
	router, svc, taskRepo := setupNotificationRouter()
	ctx := context.Background()

	deadline := time.Now().Add(-1 * time.Hour)
	taskRepo.Create(ctx, model.Task{
		ID:       uuid.NewString(),
		Name:     "Просроченная задача",
		Status:   model.TaskStatusPending,
		Priority: model.PriorityMedium,
		Deadline: &deadline,
	})

	// Act
	resp := performRequest(router, "POST", "/notifications/check-overdue", nil)

	// Assert
	require.Equal(t, http.StatusOK, resp.Code)

	var result struct {
		Created       []model.Notification `json:"created"`
		MarkedOverdue int                  `json:"marked_overdue"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))

	// Создано одно уведомление, задача переведена в overdue
	require.Len(t, result.Created, 1)
	assert.Equal(t, model.NotificationOverdue, result.Created[0].Type)
	assert.Equal(t, 1, result.MarkedOverdue)

	tasks := taskRepo.GetAll(ctx)
	require.Len(t, tasks, 1)
	assert.Equal(t, model.TaskStatusOverdue, tasks[0].Status)

	// Повторный запуск ничего не создает и не переводит
	resp = performRequest(router, "POST", "/notifications/check-overdue", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	assert.Empty(t, result.Created)
	assert.Equal(t, 0, result.MarkedOverdue)

	assert.Equal(t, 1, svc.UnreadCount())
}

func TestNotificationHandler_UnreadCountAndMarkAsRead(t *testing.T) {
	// Arrange
	router, svc, _ := setupNotificationRouter()
	created := svc.Create(notification.CreateInput{
		Type:    model.NotificationReminder,
		Title:   "Не забудьте про смену",
		Message: "Вечерняя смена начинается в 18:00",
	})

	// Проверяем счетчик непрочитанных
	resp := performRequest(router, "GET", "/notifications/unread-count", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"unread":1`)

	// Act: помечаем уведомление прочитанным
	resp = performRequest(router, "POST", "/notifications/"+created.ID+"/read", nil)

	// Assert
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"unread":0`)
}

func TestNotificationHandler_MarkAsRead_NotFound(t *testing.T) {
	// Arrange
	router, _, _ := setupNotificationRouter()

	// Act
	resp := performRequest(router, "POST", "/notifications/missing-id/read", nil)

	// Assert
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "Notification not found")
}

func TestNotificationHandler_GetAll(t *testing.T) {
	// Arrange
	router, svc, _ := setupNotificationRouter()
	svc.Create(notification.CreateInput{Type: model.NotificationReminder, Title: "Первое"})
	svc.Create(notification.CreateInput{Type: model.NotificationReminder, Title: "Второе"})

	// Act
	resp := performRequest(router, "GET", "/notifications", nil)

	// Assert
	require.Equal(t, http.StatusOK, resp.Code)

	var result struct {
		Notifications []model.Notification `json:"notifications"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))

	// Сначала самые свежие
	require.Len(t, result.Notifications, 2)
	assert.Equal(t, "Второе", result.Notifications[0].Title)
	assert.Equal(t, "Первое", result.Notifications[1].Title)
}
