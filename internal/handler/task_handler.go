package handler

import (
	"errors"
	"net/http"
	"time"

	"restops/internal/middleware"
	"restops/internal/model"
	"restops/internal/repository"
	"restops/internal/scheduler"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskHandler struct {
	taskRepo     *repository.TaskRepository
	memberRepo   *repository.MemberRepository
	activityRepo *repository.ActivityRepository
	depRepo      *repository.DependencyRepository
	engine       *scheduler.Engine
}

func NewTaskHandler(
	taskRepo *repository.TaskRepository,
	memberRepo *repository.MemberRepository,
	activityRepo *repository.ActivityRepository,
	depRepo *repository.DependencyRepository,
	engine *scheduler.Engine,
) *TaskHandler {
	return &TaskHandler{
		taskRepo:     taskRepo,
		memberRepo:   memberRepo,
		activityRepo: activityRepo,
		depRepo:      depRepo,
		engine:       engine,
	}
}

// TaskRequest представляет запрос на создание задачи вручную
type TaskRequest struct {
	Name              string     `json:"name" binding:"required"`
	Description       string     `json:"description"`
	Department        string     `json:"department" binding:"omitempty,oneof=kitchen bar service management"`
	Shift             string     `json:"shift" binding:"omitempty,oneof=morning lunch afternoon evening"`
	ShiftAction       string     `json:"shift_action" binding:"omitempty,oneof=opening closing"`
	Priority          string     `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	AssignmentType    string     `json:"assignment_type" binding:"omitempty,oneof=user role"`
	AssignedTo        *string    `json:"assigned_to"`
	AssignedRole      string     `json:"assigned_role"`
	CompletionMethod  string     `json:"completion_method" binding:"omitempty,oneof=checkmark photo quantity photo_checkmark"`
	QuantityRequired  *int       `json:"quantity_required" binding:"omitempty,gt=0"`
	Deadline          *time.Time `json:"deadline"`
	EstimatedDuration *int       `json:"estimated_duration" binding:"omitempty,gt=0"`
	ScheduledFor      *time.Time `json:"scheduled_for"`
}

// TaskUpdateRequest представляет частичное обновление задачи
type TaskUpdateRequest struct {
	Status         *string `json:"status" binding:"omitempty,oneof=pending in_progress completed overdue blocked"`
	Priority       *string `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	AssignedTo     *string `json:"assigned_to"`
	QuantityOnHand *int    `json:"quantity_on_hand" binding:"omitempty,gte=0"`
}

// BalanceRequest представляет запрос на балансировку нагрузки. Если список
// участников не указан, берется активный состав в порядке добавления.
type BalanceRequest struct {
	MemberIDs []string `json:"member_ids"`
}

// TaskResponse представляет ответ с данными задачи
type TaskResponse struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Description       string   `json:"description,omitempty"`
	Department        string   `json:"department,omitempty"`
	Shift             string   `json:"shift,omitempty"`
	ShiftAction       string   `json:"shift_action,omitempty"`
	Priority          string   `json:"priority"`
	Status            string   `json:"status"`
	IsCompleted       bool     `json:"is_completed"`
	AssignmentType    string   `json:"assignment_type"`
	AssignedTo        *string  `json:"assigned_to,omitempty"`
	AssignedRole      string   `json:"assigned_role,omitempty"`
	CompletionMethod  string   `json:"completion_method"`
	QuantityRequired  *int     `json:"quantity_required,omitempty"`
	QuantityOnHand    *int     `json:"quantity_on_hand,omitempty"`
	Deadline          *string  `json:"deadline,omitempty"`
	EstimatedDuration *int     `json:"estimated_duration,omitempty"`
	TemplateID        string   `json:"template_id,omitempty"`
	CreatedAt         string   `json:"created_at"`
	ScheduledFor      string   `json:"scheduled_for"`
	BlockedBy         []string `json:"blocked_by,omitempty"`
}

func taskResponse(t model.Task) TaskResponse {
	resp := TaskResponse{
		ID:                t.ID,
		Name:              t.Name,
		Description:       t.Description,
		Department:        string(t.Department),
		Shift:             string(t.Shift),
		ShiftAction:       string(t.ShiftAction),
		Priority:          string(t.Priority),
		Status:            string(t.Status),
		IsCompleted:       t.IsCompleted(),
		AssignmentType:    string(t.AssignmentType),
		AssignedTo:        t.AssignedTo,
		AssignedRole:      t.AssignedRole,
		CompletionMethod:  string(t.CompletionMethod),
		QuantityRequired:  t.QuantityRequired,
		QuantityOnHand:    t.QuantityOnHand,
		EstimatedDuration: t.EstimatedDuration,
		TemplateID:        t.TemplateID,
		CreatedAt:         t.CreatedAt.Format(time.RFC3339),
		ScheduledFor:      t.ScheduledFor.Format(time.RFC3339),
	}
	if t.Deadline != nil {
		deadline := t.Deadline.Format(time.RFC3339)
		resp.Deadline = &deadline
	}
	return resp
}

func taskResponses(tasks []model.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskResponse(t))
	}
	return out
}

// Create создает задачу вручную, вне расписания шаблонов
// @Summary      Create ad hoc task
// @Tags         Tasks
// @Security     BearerAuth
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	now := time.Now()
	task := model.Task{
		ID:                uuid.NewString(),
		Name:              req.Name,
		Description:       req.Description,
		Department:        model.Department(req.Department),
		Shift:             model.Shift(req.Shift),
		ShiftAction:       model.ShiftAction(req.ShiftAction),
		Priority:          model.PriorityMedium,
		Status:            model.TaskStatusPending,
		AssignmentType:    model.AssignmentRole,
		AssignedTo:        req.AssignedTo,
		AssignedRole:      req.AssignedRole,
		CompletionMethod:  model.CompletionCheckmark,
		QuantityRequired:  req.QuantityRequired,
		Deadline:          req.Deadline,
		EstimatedDuration: req.EstimatedDuration,
		CreatedAt:         now,
		ScheduledFor:      now,
	}
	if req.Priority != "" {
		task.Priority = model.Priority(req.Priority)
	}
	if req.AssignmentType != "" {
		task.AssignmentType = model.AssignmentType(req.AssignmentType)
	}
	if req.CompletionMethod != "" {
		task.CompletionMethod = model.CompletionMethod(req.CompletionMethod)
	}
	if req.QuantityRequired != nil {
		onHand := *req.QuantityRequired
		task.QuantityOnHand = &onHand
	}
	if req.ScheduledFor != nil {
		task.ScheduledFor = *req.ScheduledFor
	}

	h.taskRepo.Create(c.Request.Context(), task)
	c.JSON(http.StatusCreated, taskResponse(task))
}

// GetAll возвращает все задачи
// @Summary      List tasks
// @Tags         Tasks
// @Security     BearerAuth
// @Router       /tasks [get]
func (h *TaskHandler) GetAll(c *gin.Context) {
	tasks := h.taskRepo.GetAll(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"tasks": taskResponses(tasks)})
}

// GetByID возвращает задачу вместе со списком блокирующих ее задач
// @Summary      Get task
// @Tags         Tasks
// @Security     BearerAuth
// @Router       /tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	ctx := c.Request.Context()
	task, err := h.taskRepo.GetByID(ctx, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	resp := taskResponse(task)
	resp.BlockedBy = h.depRepo.BlockedBy(ctx, task.ID, h.taskRepo.GetAll(ctx))
	c.JSON(http.StatusOK, resp)
}

// Update выполняет частичное обновление задачи. Смена статуса записывается
// в историю.
// @Summary      Update task
// @Tags         Tasks
// @Security     BearerAuth
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	var req TaskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	ctx := c.Request.Context()
	task, err := h.taskRepo.GetByID(ctx, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	if req.Status != nil && model.TaskStatus(*req.Status) != task.Status {
		h.activityRepo.AddHistory(ctx, model.TaskHistoryEntry{
			ID:        uuid.NewString(),
			TaskID:    task.ID,
			ActorID:   c.GetString(middleware.UserIDKey),
			Field:     "status",
			OldValue:  string(task.Status),
			NewValue:  *req.Status,
			CreatedAt: time.Now(),
		})
		task.Status = model.TaskStatus(*req.Status)
	}
	if req.Priority != nil {
		task.Priority = model.Priority(*req.Priority)
	}
	if req.AssignedTo != nil {
		task.AssignedTo = req.AssignedTo
		task.AssignmentType = model.AssignmentUser
	}
	if req.QuantityOnHand != nil {
		task.QuantityOnHand = req.QuantityOnHand
	}

	if err := h.taskRepo.Update(ctx, task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}
	c.JSON(http.StatusOK, taskResponse(task))
}

// Delete удаляет задачу. Комментарии, вложения и зависимости остаются
// осиротевшими записями.
// @Summary      Delete task
// @Tags         Tasks
// @Security     BearerAuth
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.taskRepo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}
	c.Status(http.StatusNoContent)
}

// AdjustPriorities прогоняет список задач через эскалацию приоритетов и
// атомарно устанавливает результат
// @Summary      Escalate priorities near deadlines
// @Tags         Tasks
// @Security     BearerAuth
// @Router       /tasks/adjust-priorities [post]
func (h *TaskHandler) AdjustPriorities(c *gin.Context) {
	ctx := c.Request.Context()
	adjusted := h.engine.AdjustTaskPriorities(h.taskRepo.GetAll(ctx), time.Now())
	h.taskRepo.ReplaceAll(ctx, adjusted)
	c.JSON(http.StatusOK, gin.H{"tasks": taskResponses(adjusted)})
}

// Balance распределяет неназначенные задачи по участникам с наименьшей
// нагрузкой
// @Summary      Balance workload across the roster
// @Tags         Tasks
// @Security     BearerAuth
// @Router       /tasks/balance [post]
func (h *TaskHandler) Balance(c *gin.Context) {
	// Тело запроса необязательно
	var req BalanceRequest
	_ = c.ShouldBindJSON(&req)

	ctx := c.Request.Context()
	memberIDs := req.MemberIDs
	if len(memberIDs) == 0 {
		memberIDs = h.memberRepo.ActiveIDs(ctx)
	}

	balanced := h.engine.BalanceWorkload(h.taskRepo.GetAll(ctx), memberIDs)
	h.taskRepo.ReplaceAll(ctx, balanced)
	c.JSON(http.StatusOK, gin.H{"tasks": taskResponses(balanced)})
}
