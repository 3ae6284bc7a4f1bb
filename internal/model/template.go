package model

import "time"

// Department identifies the restaurant crew a task belongs to.
type Department string

const (
	DepartmentKitchen    Department = "kitchen"
	DepartmentBar        Department = "bar"
	DepartmentService    Department = "service"
	DepartmentManagement Department = "management"
)

// Shift is the working block of the day a task is scheduled into.
type Shift string

const (
	ShiftMorning   Shift = "morning"
	ShiftLunch     Shift = "lunch"
	ShiftAfternoon Shift = "afternoon"
	ShiftEvening   Shift = "evening"
)

// ShiftAction distinguishes opening from closing duties within a shift.
type ShiftAction string

const (
	ShiftActionOpening ShiftAction = "opening"
	ShiftActionClosing ShiftAction = "closing"
)

// Priority of a task or notification.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// CompletionMethod defines what a member must provide to close a task.
type CompletionMethod string

const (
	CompletionCheckmark      CompletionMethod = "checkmark"
	CompletionPhoto          CompletionMethod = "photo"
	CompletionQuantity       CompletionMethod = "quantity"
	CompletionPhotoCheckmark CompletionMethod = "photo_checkmark"
)

// RecurrenceKind describes how a template repeats.
type RecurrenceKind string

const (
	RecurrenceDaily  RecurrenceKind = "daily"
	RecurrenceWeekly RecurrenceKind = "weekly"
	RecurrenceOnce   RecurrenceKind = "once"
)

// TaskTemplate is a recurring task definition. Templates never carry live
// references into generated tasks: instances copy the descriptive fields at
// generation time.
type TaskTemplate struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	Description       string           `json:"description,omitempty"`
	Department        Department       `json:"department"`
	Shift             Shift            `json:"shift"`
	ShiftAction       ShiftAction      `json:"shift_action"`
	Weekdays          []int            `json:"weekdays"` // 0=Sunday .. 6=Saturday
	Priority          Priority         `json:"priority"`
	EstimatedDuration *int             `json:"estimated_duration,omitempty"` // minutes
	CompletionMethod  CompletionMethod `json:"completion_method"`
	QuantityRequired  *int             `json:"quantity_required,omitempty"`
	Recurrence        RecurrenceKind   `json:"recurrence"`
	IsActive          bool             `json:"is_active"`
	CreatedAt         time.Time        `json:"created_at"`
}
