package model

import "time"

// The records below all reference a task by id without enforced referential
// integrity: deleting a task leaves them orphaned.

// TaskComment is a free-form note left on a task.
type TaskComment struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	AuthorID  string    `json:"author_id,omitempty"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskTimeEntry records time a member spent on a task.
type TaskTimeEntry struct {
	ID        string     `json:"id"`
	TaskID    string     `json:"task_id"`
	MemberID  string     `json:"member_id,omitempty"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	Minutes   int        `json:"minutes"`
	CreatedAt time.Time  `json:"created_at"`
}

// TaskAttachment links an uploaded file (e.g. a completion photo) to a task.
type TaskAttachment struct {
	ID         string    `json:"id"`
	TaskID     string    `json:"task_id"`
	FileName   string    `json:"file_name"`
	URL        string    `json:"url"`
	UploadedBy string    `json:"uploaded_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// TaskHistoryEntry records a field change on a task.
type TaskHistoryEntry struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	ActorID   string    `json:"actor_id,omitempty"`
	Field     string    `json:"field"`
	OldValue  string    `json:"old_value"`
	NewValue  string    `json:"new_value"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskDependency is a directed edge: the dependent task should not start
// until the prerequisite task is completed.
type TaskDependency struct {
	ID                 string    `json:"id"`
	PrerequisiteTaskID string    `json:"prerequisite_task_id"`
	DependentTaskID    string    `json:"dependent_task_id"`
	CreatedAt          time.Time `json:"created_at"`
}
