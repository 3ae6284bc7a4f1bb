package handler

import (
	"net/http"
	"time"

	"restops/internal/model"
	"restops/internal/notification"
	"restops/internal/repository"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	service  *notification.Service
	taskRepo *repository.TaskRepository
}

func NewNotificationHandler(service *notification.Service, taskRepo *repository.TaskRepository) *NotificationHandler {
	return &NotificationHandler{
		service:  service,
		taskRepo: taskRepo,
	}
}

// GetAll возвращает уведомления, сначала самые свежие
// @Summary      List notifications
// @Tags         Notifications
// @Security     BearerAuth
// @Router       /notifications [get]
func (h *NotificationHandler) GetAll(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"notifications": h.service.Notifications()})
}

// GetUnreadCount возвращает количество непрочитанных уведомлений
// @Summary      Count unread notifications
// @Tags         Notifications
// @Security     BearerAuth
// @Router       /notifications/unread-count [get]
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"unread": h.service.UnreadCount()})
}

// MarkAsRead помечает уведомление прочитанным
// @Summary      Mark notification as read
// @Tags         Notifications
// @Security     BearerAuth
// @Router       /notifications/{id}/read [post]
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	if !h.service.MarkAsRead(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": h.service.UnreadCount()})
}

// CheckOverdue сканирует список задач на просроченные дедлайны, создает
// уведомления и переводит найденные задачи в статус overdue
// @Summary      Scan for overdue tasks
// @Tags         Notifications
// @Security     BearerAuth
// @Router       /notifications/check-overdue [post]
func (h *NotificationHandler) CheckOverdue(c *gin.Context) {
	ctx := c.Request.Context()
	now := time.Now()
	tasks := h.taskRepo.GetAll(ctx)

	created := h.service.CheckOverdueTasks(tasks, now)

	// Статусы меняет хост, а не сервис уведомлений: ядро только создает
	// уведомления.
	flipped := 0
	for i := range tasks {
		t := &tasks[i]
		if t.Deadline == nil || t.IsCompleted() || !t.Deadline.Before(now) {
			continue
		}
		if t.Status == model.TaskStatusPending || t.Status == model.TaskStatusInProgress {
			t.Status = model.TaskStatusOverdue
			flipped++
		}
	}
	if flipped > 0 {
		h.taskRepo.ReplaceAll(ctx, tasks)
	}

	c.JSON(http.StatusOK, gin.H{
		"created":        created,
		"marked_overdue": flipped,
	})
}
