package scheduler

import (
	"fmt"
	"time"

	"restops/internal/model"
	"restops/internal/notification"

	"github.com/google/uuid"
)

// Notifier is the slice of the notification service the engine emits into.
type Notifier interface {
	Create(in notification.CreateInput) model.Notification
}

// Engine expands templates into dated task instances, escalates priorities
// near deadlines and balances assignment across the roster. It holds no task
// state of its own: the transform methods take and return full instance
// lists, and callers must install the returned list for a change to take
// effect.
type Engine struct {
	notifier Notifier
}

func NewEngine(n Notifier) *Engine {
	return &Engine{notifier: n}
}

// GenerateTasksForDate synthesizes one pending task instance per active
// template whose weekday set contains date's day of week (0=Sunday). A
// template with an empty weekday set generates nothing. Instances copy the
// template's descriptive fields; the deadline is fixed at generation time
// and never recomputed afterwards.
func (e *Engine) GenerateTasksForDate(templates []model.TaskTemplate, date time.Time) []model.Task {
	day := int(date.Weekday())

	var tasks []model.Task
	for _, tpl := range templates {
		if !tpl.IsActive || !containsWeekday(tpl.Weekdays, day) {
			continue
		}

		task := model.Task{
			ID:               uuid.NewString(),
			Name:             tpl.Name,
			Description:      tpl.Description,
			Department:       tpl.Department,
			Shift:            tpl.Shift,
			ShiftAction:      tpl.ShiftAction,
			Priority:         tpl.Priority,
			Status:           model.TaskStatusPending,
			AssignmentType:   model.AssignmentRole,
			AssignedRole:     string(tpl.Department),
			CompletionMethod: tpl.CompletionMethod,
			Deadline:         deadlineFor(date, tpl.Shift, tpl.ShiftAction),
			TemplateID:       tpl.ID,
			CreatedAt:        date,
			ScheduledFor:     date,
		}
		if tpl.EstimatedDuration != nil {
			v := *tpl.EstimatedDuration
			task.EstimatedDuration = &v
		}
		if tpl.QuantityRequired != nil {
			required := *tpl.QuantityRequired
			onHand := required
			task.QuantityRequired = &required
			task.QuantityOnHand = &onHand
		}
		tasks = append(tasks, task)
	}
	return tasks
}

// AdjustTaskPriorities recomputes priorities from deadline proximity and
// returns a new list; the input is left untouched. Within one hour of the
// deadline a non-urgent task escalates to urgent and an escalation
// notification fires; within two hours a low task bumps to medium silently.
// A task that is already urgent produces no further notification, so
// repeated calls with unchanged time are idempotent.
func (e *Engine) AdjustTaskPriorities(tasks []model.Task, now time.Time) []model.Task {
	out := make([]model.Task, len(tasks))
	copy(out, tasks)

	for i := range out {
		t := &out[i]
		if t.Deadline == nil || t.IsCompleted() {
			continue
		}

		hoursUntilDeadline := t.Deadline.Sub(now).Hours()
		switch {
		case hoursUntilDeadline <= 1 && t.Priority != model.PriorityUrgent:
			t.Priority = model.PriorityUrgent
			e.notifier.Create(notification.CreateInput{
				Type:           model.NotificationEscalation,
				Title:          "Task escalated",
				Message:        fmt.Sprintf("%q is due within the hour", t.Name),
				TaskID:         t.ID,
				Priority:       model.PriorityUrgent,
				ActionRequired: true,
			})
		case hoursUntilDeadline <= 2 && t.Priority == model.PriorityLow:
			t.Priority = model.PriorityMedium
		}
	}
	return out
}

// BalanceWorkload assigns every unassigned user-type task to the roster
// member with the fewest open tasks, counting assignments made earlier in
// the same call. Ties break by roster order, so the outcome is deterministic
// for a given task and roster order. One assignment notification fires per
// assignment, targeted at the assignee. Returns a new list.
func (e *Engine) BalanceWorkload(tasks []model.Task, memberIDs []string) []model.Task {
	out := make([]model.Task, len(tasks))
	copy(out, tasks)

	if len(memberIDs) == 0 {
		return out
	}

	load := make(map[string]int, len(memberIDs))
	for _, id := range memberIDs {
		load[id] = 0
	}
	for _, t := range out {
		if t.AssignedTo == nil || t.IsCompleted() {
			continue
		}
		if _, ok := load[*t.AssignedTo]; ok {
			load[*t.AssignedTo]++
		}
	}

	for i := range out {
		t := &out[i]
		if t.AssignedTo != nil || t.AssignmentType != model.AssignmentUser {
			continue
		}

		best := memberIDs[0]
		for _, id := range memberIDs[1:] {
			if load[id] < load[best] {
				best = id
			}
		}

		assignee := best
		t.AssignedTo = &assignee
		load[best]++

		e.notifier.Create(notification.CreateInput{
			Type:           model.NotificationAssignment,
			Title:          "Task assigned",
			Message:        fmt.Sprintf("You have been assigned %q", t.Name),
			TaskID:         t.ID,
			UserID:         best,
			Priority:       t.Priority,
			ActionRequired: true,
		})
	}
	return out
}

func containsWeekday(weekdays []int, day int) bool {
	for _, d := range weekdays {
		if d == day {
			return true
		}
	}
	return false
}
