package handler

import (
	"net/http"
	"time"

	"restops/internal/model"
	"restops/internal/repository"
	"restops/internal/scheduler"

	"github.com/gin-gonic/gin"
)

type TemplateHandler struct {
	templates *scheduler.TemplateStore
	engine    *scheduler.Engine
	taskRepo  *repository.TaskRepository
}

func NewTemplateHandler(
	templates *scheduler.TemplateStore,
	engine *scheduler.Engine,
	taskRepo *repository.TaskRepository,
) *TemplateHandler {
	return &TemplateHandler{
		templates: templates,
		engine:    engine,
		taskRepo:  taskRepo,
	}
}

// TemplateRequest представляет запрос на создание шаблона задачи
type TemplateRequest struct {
	Name              string  `json:"name" binding:"required"`
	Description       string  `json:"description"`
	Department        string  `json:"department" binding:"required,oneof=kitchen bar service management"`
	Shift             string  `json:"shift" binding:"required,oneof=morning lunch afternoon evening"`
	ShiftAction       string  `json:"shift_action" binding:"required,oneof=opening closing"`
	Weekdays          []int   `json:"weekdays" binding:"dive,gte=0,lte=6"`
	Priority          string  `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	EstimatedDuration *int    `json:"estimated_duration" binding:"omitempty,gt=0"`
	CompletionMethod  string  `json:"completion_method" binding:"omitempty,oneof=checkmark photo quantity photo_checkmark"`
	QuantityRequired  *int    `json:"quantity_required" binding:"omitempty,gt=0"`
	Recurrence        string  `json:"recurrence" binding:"omitempty,oneof=daily weekly once"`
	IsActive          *bool   `json:"is_active"`
}

// TemplateUpdateRequest представляет частичное обновление шаблона
type TemplateUpdateRequest struct {
	Name              *string `json:"name"`
	Description       *string `json:"description"`
	Department        *string `json:"department" binding:"omitempty,oneof=kitchen bar service management"`
	Shift             *string `json:"shift" binding:"omitempty,oneof=morning lunch afternoon evening"`
	ShiftAction       *string `json:"shift_action" binding:"omitempty,oneof=opening closing"`
	Weekdays          []int   `json:"weekdays" binding:"omitempty,dive,gte=0,lte=6"`
	Priority          *string `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	EstimatedDuration *int    `json:"estimated_duration" binding:"omitempty,gt=0"`
	CompletionMethod  *string `json:"completion_method" binding:"omitempty,oneof=checkmark photo quantity photo_checkmark"`
	QuantityRequired  *int    `json:"quantity_required" binding:"omitempty,gt=0"`
	Recurrence        *string `json:"recurrence" binding:"omitempty,oneof=daily weekly once"`
	IsActive          *bool   `json:"is_active"`
}

// GenerateRequest представляет запрос на генерацию задач на дату
type GenerateRequest struct {
	Date string `json:"date" binding:"required,datetime=2006-01-02"`
}

// Create создает новый шаблон задачи
// @Summary      Create task template
// @Tags         Templates
// @Security     BearerAuth
// @Router       /admin/templates [post]
func (h *TemplateHandler) Create(c *gin.Context) {
	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	tpl := model.TaskTemplate{
		Name:              req.Name,
		Description:       req.Description,
		Department:        model.Department(req.Department),
		Shift:             model.Shift(req.Shift),
		ShiftAction:       model.ShiftAction(req.ShiftAction),
		Weekdays:          req.Weekdays,
		Priority:          model.Priority(req.Priority),
		EstimatedDuration: req.EstimatedDuration,
		CompletionMethod:  model.CompletionMethod(req.CompletionMethod),
		QuantityRequired:  req.QuantityRequired,
		Recurrence:        model.RecurrenceKind(req.Recurrence),
		IsActive:          true,
	}
	if req.Priority == "" {
		tpl.Priority = model.PriorityMedium
	}
	if req.CompletionMethod == "" {
		tpl.CompletionMethod = model.CompletionCheckmark
	}
	if req.Recurrence == "" {
		tpl.Recurrence = model.RecurrenceWeekly
	}
	if req.IsActive != nil {
		tpl.IsActive = *req.IsActive
	}

	stored := h.templates.Add(tpl)
	c.JSON(http.StatusCreated, stored)
}

// GetAll возвращает все шаблоны в порядке создания
// @Summary      List task templates
// @Tags         Templates
// @Security     BearerAuth
// @Router       /admin/templates [get]
func (h *TemplateHandler) GetAll(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"templates": h.templates.Templates()})
}

// Update выполняет частичное обновление шаблона
// @Summary      Update task template
// @Tags         Templates
// @Security     BearerAuth
// @Router       /admin/templates/{id} [put]
func (h *TemplateHandler) Update(c *gin.Context) {
	var req TemplateUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	patch := scheduler.TemplatePatch{
		Name:              req.Name,
		Description:       req.Description,
		Weekdays:          req.Weekdays,
		EstimatedDuration: req.EstimatedDuration,
		QuantityRequired:  req.QuantityRequired,
		IsActive:          req.IsActive,
	}
	if req.Department != nil {
		v := model.Department(*req.Department)
		patch.Department = &v
	}
	if req.Shift != nil {
		v := model.Shift(*req.Shift)
		patch.Shift = &v
	}
	if req.ShiftAction != nil {
		v := model.ShiftAction(*req.ShiftAction)
		patch.ShiftAction = &v
	}
	if req.Priority != nil {
		v := model.Priority(*req.Priority)
		patch.Priority = &v
	}
	if req.CompletionMethod != nil {
		v := model.CompletionMethod(*req.CompletionMethod)
		patch.CompletionMethod = &v
	}
	if req.Recurrence != nil {
		v := model.RecurrenceKind(*req.Recurrence)
		patch.Recurrence = &v
	}

	if !h.templates.Update(c.Param("id"), patch) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}

	tpl, _ := h.templates.Get(c.Param("id"))
	c.JSON(http.StatusOK, tpl)
}

// Delete удаляет шаблон. Уже сгенерированные задачи остаются.
// @Summary      Delete task template
// @Tags         Templates
// @Security     BearerAuth
// @Router       /admin/templates/{id} [delete]
func (h *TemplateHandler) Delete(c *gin.Context) {
	if !h.templates.Delete(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Generate разворачивает активные шаблоны в задачи на указанную дату и
// добавляет их в общий список задач
// @Summary      Generate task instances for a date
// @Tags         Templates
// @Security     BearerAuth
// @Router       /admin/templates/generate [post]
func (h *TemplateHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
		return
	}

	tasks := h.engine.GenerateTasksForDate(h.templates.Templates(), date)
	h.taskRepo.Append(c.Request.Context(), tasks)

	c.JSON(http.StatusCreated, gin.H{"tasks": taskResponses(tasks)})
}
