package repository

import (
	"context"
	"sync"

	"restops/internal/model"
)

// DependencyRepository holds the directed prerequisite edges between tasks.
// Edges are weak references: neither endpoint is checked against the task
// list, and deleting a task leaves its edges behind.
type DependencyRepository struct {
	mu    sync.RWMutex
	edges []model.TaskDependency
}

func NewDependencyRepository() *DependencyRepository {
	return &DependencyRepository{}
}

// Add stores a dependency edge
func (r *DependencyRepository) Add(_ context.Context, d model.TaskDependency) model.TaskDependency {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.edges = append(r.edges, d)
	return d
}

// ByDependent returns the edges whose dependent side is the given task
func (r *DependencyRepository) ByDependent(_ context.Context, taskID string) []model.TaskDependency {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []model.TaskDependency
	for _, e := range r.edges {
		if e.DependentTaskID == taskID {
			out = append(out, e)
		}
	}
	return out
}

// BlockedBy resolves the incomplete prerequisites of a task against the
// supplied task list. A non-empty result means the task is blocked; the
// scheduler itself never performs this detection.
func (r *DependencyRepository) BlockedBy(ctx context.Context, taskID string, tasks []model.Task) []string {
	byID := make(map[string]model.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	var blocking []string
	for _, e := range r.ByDependent(ctx, taskID) {
		prereq, ok := byID[e.PrerequisiteTaskID]
		if !ok {
			// Orphaned edge: the prerequisite task no longer exists.
			continue
		}
		if !prereq.IsCompleted() {
			blocking = append(blocking, prereq.ID)
		}
	}
	return blocking
}
