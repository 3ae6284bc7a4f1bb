package handler

import (
	"net/http"
	"time"

	"restops/internal/middleware"
	"restops/internal/model"
	"restops/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ActivityHandler struct {
	taskRepo     *repository.TaskRepository
	activityRepo *repository.ActivityRepository
	depRepo      *repository.DependencyRepository
}

func NewActivityHandler(
	taskRepo *repository.TaskRepository,
	activityRepo *repository.ActivityRepository,
	depRepo *repository.DependencyRepository,
) *ActivityHandler {
	return &ActivityHandler{
		taskRepo:     taskRepo,
		activityRepo: activityRepo,
		depRepo:      depRepo,
	}
}

// CommentRequest представляет запрос на добавление комментария к задаче
type CommentRequest struct {
	Body string `json:"body" binding:"required"`
}

// TimeEntryRequest представляет запрос на запись затраченного времени
type TimeEntryRequest struct {
	StartedAt time.Time  `json:"started_at" binding:"required"`
	EndedAt   *time.Time `json:"ended_at"`
	Minutes   int        `json:"minutes" binding:"required,gt=0"`
}

// AttachmentRequest представляет запрос на прикрепление файла
type AttachmentRequest struct {
	FileName string `json:"file_name" binding:"required"`
	URL      string `json:"url" binding:"required,url"`
}

// DependencyRequest представляет запрос на добавление зависимости
type DependencyRequest struct {
	PrerequisiteTaskID string `json:"prerequisite_task_id" binding:"required"`
}

// taskExists проверяет наличие задачи и отвечает 404, если ее нет
func (h *ActivityHandler) taskExists(c *gin.Context, taskID string) bool {
	if _, err := h.taskRepo.GetByID(c.Request.Context(), taskID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return false
	}
	return true
}

// AddComment добавляет комментарий к задаче
// @Summary      Comment on a task
// @Tags         Activity
// @Security     BearerAuth
// @Router       /tasks/{id}/comments [post]
func (h *ActivityHandler) AddComment(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	taskID := c.Param("id")
	if !h.taskExists(c, taskID) {
		return
	}

	comment := h.activityRepo.AddComment(c.Request.Context(), model.TaskComment{
		ID:        uuid.NewString(),
		TaskID:    taskID,
		AuthorID:  c.GetString(middleware.UserIDKey),
		Body:      req.Body,
		CreatedAt: time.Now(),
	})
	c.JSON(http.StatusCreated, comment)
}

// GetComments возвращает комментарии задачи
// @Summary      List task comments
// @Tags         Activity
// @Security     BearerAuth
// @Router       /tasks/{id}/comments [get]
func (h *ActivityHandler) GetComments(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"comments": h.activityRepo.CommentsByTask(c.Request.Context(), c.Param("id"))})
}

// AddTimeEntry записывает затраченное на задачу время
// @Summary      Record time spent on a task
// @Tags         Activity
// @Security     BearerAuth
// @Router       /tasks/{id}/time-entries [post]
func (h *ActivityHandler) AddTimeEntry(c *gin.Context) {
	var req TimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	taskID := c.Param("id")
	if !h.taskExists(c, taskID) {
		return
	}

	entry := h.activityRepo.AddTimeEntry(c.Request.Context(), model.TaskTimeEntry{
		ID:        uuid.NewString(),
		TaskID:    taskID,
		MemberID:  c.GetString(middleware.UserIDKey),
		StartedAt: req.StartedAt,
		EndedAt:   req.EndedAt,
		Minutes:   req.Minutes,
		CreatedAt: time.Now(),
	})
	c.JSON(http.StatusCreated, entry)
}

// GetTimeEntries возвращает записи времени задачи
// @Summary      List task time entries
// @Tags         Activity
// @Security     BearerAuth
// @Router       /tasks/{id}/time-entries [get]
func (h *ActivityHandler) GetTimeEntries(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"time_entries": h.activityRepo.TimeEntriesByTask(c.Request.Context(), c.Param("id"))})
}

// AddAttachment прикрепляет файл к задаче
// @Summary      Attach a file to a task
// @Tags         Activity
// @Security     BearerAuth
// @Router       /tasks/{id}/attachments [post]
func (h *ActivityHandler) AddAttachment(c *gin.Context) {
	var req AttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	taskID := c.Param("id")
	if !h.taskExists(c, taskID) {
		return
	}

	attachment := h.activityRepo.AddAttachment(c.Request.Context(), model.TaskAttachment{
		ID:         uuid.NewString(),
		TaskID:     taskID,
		FileName:   req.FileName,
		URL:        req.URL,
		UploadedBy: c.GetString(middleware.UserIDKey),
		CreatedAt:  time.Now(),
	})
	c.JSON(http.StatusCreated, attachment)
}

// GetAttachments возвращает вложения задачи
// @Summary      List task attachments
// @Tags         Activity
// @Security     BearerAuth
// @Router       /tasks/{id}/attachments [get]
func (h *ActivityHandler) GetAttachments(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"attachments": h.activityRepo.AttachmentsByTask(c.Request.Context(), c.Param("id"))})
}

// GetHistory возвращает историю изменений задачи
// @Summary      List task history
// @Tags         Activity
// @Security     BearerAuth
// @Router       /tasks/{id}/history [get]
func (h *ActivityHandler) GetHistory(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"history": h.activityRepo.HistoryByTask(c.Request.Context(), c.Param("id"))})
}

// AddDependency добавляет блокирующую зависимость между задачами
// @Summary      Add task dependency
// @Tags         Activity
// @Security     BearerAuth
// @Router       /tasks/{id}/dependencies [post]
func (h *ActivityHandler) AddDependency(c *gin.Context) {
	var req DependencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	taskID := c.Param("id")
	if !h.taskExists(c, taskID) {
		return
	}
	if req.PrerequisiteTaskID == taskID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Task cannot depend on itself"})
		return
	}

	dep := h.depRepo.Add(c.Request.Context(), model.TaskDependency{
		ID:                 uuid.NewString(),
		PrerequisiteTaskID: req.PrerequisiteTaskID,
		DependentTaskID:    taskID,
		CreatedAt:          time.Now(),
	})
	c.JSON(http.StatusCreated, dep)
}

// GetDependencies возвращает зависимости задачи вместе со списком
// незавершенных блокирующих задач
// @Summary      List task dependencies
// @Tags         Activity
// @Security     BearerAuth
// @Router       /tasks/{id}/dependencies [get]
func (h *ActivityHandler) GetDependencies(c *gin.Context) {
	ctx := c.Request.Context()
	taskID := c.Param("id")
	deps := h.depRepo.ByDependent(ctx, taskID)
	blockedBy := h.depRepo.BlockedBy(ctx, taskID, h.taskRepo.GetAll(ctx))
	c.JSON(http.StatusOK, gin.H{"dependencies": deps, "blocked_by": blockedBy})
}
