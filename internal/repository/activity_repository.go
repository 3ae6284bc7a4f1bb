package repository

import (
	"context"
	"sync"

	"restops/internal/model"
)

// ActivityRepository holds the satellite records of a task: comments, time
// entries, attachments and history entries. Records reference tasks by id
// only; deleting a task orphans its records rather than cascading.
type ActivityRepository struct {
	mu          sync.RWMutex
	comments    map[string][]model.TaskComment
	timeEntries map[string][]model.TaskTimeEntry
	attachments map[string][]model.TaskAttachment
	history     map[string][]model.TaskHistoryEntry
}

func NewActivityRepository() *ActivityRepository {
	return &ActivityRepository{
		comments:    make(map[string][]model.TaskComment),
		timeEntries: make(map[string][]model.TaskTimeEntry),
		attachments: make(map[string][]model.TaskAttachment),
		history:     make(map[string][]model.TaskHistoryEntry),
	}
}

// AddComment stores a comment under its task id
func (r *ActivityRepository) AddComment(_ context.Context, c model.TaskComment) model.TaskComment {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.comments[c.TaskID] = append(r.comments[c.TaskID], c)
	return c
}

// CommentsByTask returns the comments of a task in creation order
func (r *ActivityRepository) CommentsByTask(_ context.Context, taskID string) []model.TaskComment {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.TaskComment, len(r.comments[taskID]))
	copy(out, r.comments[taskID])
	return out
}

// AddTimeEntry stores a time entry under its task id
func (r *ActivityRepository) AddTimeEntry(_ context.Context, e model.TaskTimeEntry) model.TaskTimeEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.timeEntries[e.TaskID] = append(r.timeEntries[e.TaskID], e)
	return e
}

// TimeEntriesByTask returns the time entries of a task in creation order
func (r *ActivityRepository) TimeEntriesByTask(_ context.Context, taskID string) []model.TaskTimeEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.TaskTimeEntry, len(r.timeEntries[taskID]))
	copy(out, r.timeEntries[taskID])
	return out
}

// AddAttachment stores an attachment under its task id
func (r *ActivityRepository) AddAttachment(_ context.Context, a model.TaskAttachment) model.TaskAttachment {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attachments[a.TaskID] = append(r.attachments[a.TaskID], a)
	return a
}

// AttachmentsByTask returns the attachments of a task in creation order
func (r *ActivityRepository) AttachmentsByTask(_ context.Context, taskID string) []model.TaskAttachment {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.TaskAttachment, len(r.attachments[taskID]))
	copy(out, r.attachments[taskID])
	return out
}

// AddHistory stores a history entry under its task id
func (r *ActivityRepository) AddHistory(_ context.Context, h model.TaskHistoryEntry) model.TaskHistoryEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history[h.TaskID] = append(r.history[h.TaskID], h)
	return h
}

// HistoryByTask returns the history of a task in creation order
func (r *ActivityRepository) HistoryByTask(_ context.Context, taskID string) []model.TaskHistoryEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.TaskHistoryEntry, len(r.history[taskID]))
	copy(out, r.history[taskID])
	return out
}
