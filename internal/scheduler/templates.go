package scheduler

import (
	"sync"
	"time"

	"restops/internal/model"

	"github.com/google/uuid"
)

// TemplatePatch carries the fields of a template update. Nil fields are
// left untouched (shallow merge).
type TemplatePatch struct {
	Name              *string
	Description       *string
	Department        *model.Department
	Shift             *model.Shift
	ShiftAction       *model.ShiftAction
	Weekdays          []int
	Priority          *model.Priority
	EstimatedDuration *int
	CompletionMethod  *model.CompletionMethod
	QuantityRequired  *int
	Recurrence        *model.RecurrenceKind
	IsActive          *bool
}

// TemplateStore owns the recurring task template definitions. Templates are
// held in insertion order and mutated only through the store's own methods;
// generated task instances are caller-owned and never touched here.
type TemplateStore struct {
	mu        sync.RWMutex
	templates []model.TaskTemplate
}

func NewTemplateStore() *TemplateStore {
	return &TemplateStore{}
}

// Add assigns a fresh id, appends the template and returns the stored copy.
// No field validation happens here; the boundary validates before calling.
func (s *TemplateStore) Add(t model.TaskTemplate) model.TaskTemplate {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = uuid.NewString()
	t.CreatedAt = time.Now()
	s.templates = append(s.templates, t)
	return t
}

// Update shallow-merges the patch into the matching template in place and
// reports whether a template matched. An absent id is a no-op, not an error.
func (s *TemplateStore) Update(id string, patch TemplatePatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.templates {
		if s.templates[i].ID != id {
			continue
		}
		applyPatch(&s.templates[i], patch)
		return true
	}
	return false
}

// Delete removes the matching template and reports whether one matched.
func (s *TemplateStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.templates {
		if s.templates[i].ID == id {
			s.templates = append(s.templates[:i], s.templates[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns the matching template and whether it was found.
func (s *TemplateStore) Get(id string) (model.TaskTemplate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.templates {
		if t.ID == id {
			return t, true
		}
	}
	return model.TaskTemplate{}, false
}

// Templates returns a copy of the list in insertion order.
func (s *TemplateStore) Templates() []model.TaskTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.TaskTemplate, len(s.templates))
	copy(out, s.templates)
	return out
}

func applyPatch(t *model.TaskTemplate, patch TemplatePatch) {
	if patch.Name != nil {
		t.Name = *patch.Name
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Department != nil {
		t.Department = *patch.Department
	}
	if patch.Shift != nil {
		t.Shift = *patch.Shift
	}
	if patch.ShiftAction != nil {
		t.ShiftAction = *patch.ShiftAction
	}
	if patch.Weekdays != nil {
		t.Weekdays = patch.Weekdays
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.EstimatedDuration != nil {
		v := *patch.EstimatedDuration
		t.EstimatedDuration = &v
	}
	if patch.CompletionMethod != nil {
		t.CompletionMethod = *patch.CompletionMethod
	}
	if patch.QuantityRequired != nil {
		v := *patch.QuantityRequired
		t.QuantityRequired = &v
	}
	if patch.Recurrence != nil {
		t.Recurrence = *patch.Recurrence
	}
	if patch.IsActive != nil {
		t.IsActive = *patch.IsActive
	}
}
