package model

import "time"

// TaskStatus is the lifecycle state of a task instance. Transitions are
// maintained by callers: pending -> in_progress -> completed, with overdue
// and blocked detected externally.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusOverdue    TaskStatus = "overdue"
	TaskStatusBlocked    TaskStatus = "blocked"
)

// AssignmentType tags whether a task is addressed to a specific member or
// to a role shared by a crew.
type AssignmentType string

const (
	AssignmentUser AssignmentType = "user"
	AssignmentRole AssignmentType = "role"
)

// Task is a dated, assignable unit of work, either generated from a template
// or created ad hoc. Descriptive fields are copied from the template at
// generation time, not referenced.
type Task struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	Description       string           `json:"description,omitempty"`
	Department        Department       `json:"department"`
	Shift             Shift            `json:"shift"`
	ShiftAction       ShiftAction      `json:"shift_action"`
	Priority          Priority         `json:"priority"`
	Status            TaskStatus       `json:"status"`
	AssignmentType    AssignmentType   `json:"assignment_type"`
	AssignedTo        *string          `json:"assigned_to,omitempty"`
	AssignedRole      string           `json:"assigned_role,omitempty"`
	CompletionMethod  CompletionMethod `json:"completion_method"`
	QuantityRequired  *int             `json:"quantity_required,omitempty"`
	QuantityOnHand    *int             `json:"quantity_on_hand,omitempty"`
	Deadline          *time.Time       `json:"deadline,omitempty"`
	EstimatedDuration *int             `json:"estimated_duration,omitempty"`
	TemplateID        string           `json:"template_id,omitempty"` // weak reference
	CreatedAt         time.Time        `json:"created_at"`
	ScheduledFor      time.Time        `json:"scheduled_for"`
}

// IsCompleted derives completion from Status, which is the single source
// of truth for the task lifecycle.
func (t Task) IsCompleted() bool {
	return t.Status == TaskStatusCompleted
}
