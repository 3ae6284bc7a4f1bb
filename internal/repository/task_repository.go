package repository

import (
	"context"
	"sync"

	"restops/internal/model"
)

// TaskRepository holds the authoritative task-instance list for the host.
// Storage is in-memory and process-lifetime: the core treats instance lists
// as caller-owned data, and this repository is that caller-side owner.
type TaskRepository struct {
	mu    sync.RWMutex
	tasks []model.Task
}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{}
}

// Create adds a new task to the store
func (r *TaskRepository) Create(_ context.Context, task model.Task) model.Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = append(r.tasks, task)
	return task
}

// Append adds a batch of tasks, preserving their order
func (r *TaskRepository) Append(_ context.Context, tasks []model.Task) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = append(r.tasks, tasks...)
}

// GetByID retrieves a task by its ID
func (r *TaskRepository) GetByID(_ context.Context, id string) (model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Task{}, ErrTaskNotFound
}

// GetAll returns a copy of the full task list in insertion order
func (r *TaskRepository) GetAll(_ context.Context) []model.Task {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Task, len(r.tasks))
	copy(out, r.tasks)
	return out
}

// Update replaces the stored task with the same ID
func (r *TaskRepository) Update(_ context.Context, task model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tasks {
		if r.tasks[i].ID == task.ID {
			r.tasks[i] = task
			return nil
		}
	}
	return ErrTaskNotFound
}

// Delete removes a task by its ID. Satellite records referencing the task
// are left in place (no cascade).
func (r *TaskRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			return nil
		}
	}
	return ErrTaskNotFound
}

// ReplaceAll atomically installs the output of a pure transform as the new
// task list, so readers never observe a half-applied result.
func (r *TaskRepository) ReplaceAll(_ context.Context, tasks []model.Task) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Task, len(tasks))
	copy(out, tasks)
	r.tasks = out
}
