package notification

import (
	"fmt"
	"sync"
	"time"

	"restops/internal/model"

	"github.com/google/uuid"
)

// Subscriber receives the full current notification list after every change.
type Subscriber func([]model.Notification)

// CreateInput carries the caller-settable fields of a notification. The
// service assigns the id, the timestamp and the unread flag itself.
type CreateInput struct {
	Type           model.NotificationType
	Title          string
	Message        string
	TaskID         string
	UserID         string
	Priority       model.Priority
	ActionRequired bool
}

type subscription struct {
	id int
	fn Subscriber
}

// Service is the central advisory-message bus. It exclusively owns the
// notification list; delivery to subscribers is synchronous and happens in
// subscription order, immediately after the mutation that triggered it.
type Service struct {
	mu            sync.Mutex
	notifications []model.Notification
	subscribers   []subscription
	nextSubID     int
}

func NewService() *Service {
	return &Service{}
}

// Subscribe registers a callback invoked with the full current list whenever
// it changes. The returned function removes the subscription. Subscribers
// are not deduplicated.
func (s *Service) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSubID++
	id := s.nextSubID
	s.subscribers = append(s.subscribers, subscription{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Create assigns a fresh id and timestamp, prepends the notification to the
// head of the list (most-recent-first) and fans the new list out to every
// subscriber before returning.
func (s *Service) Create(in CreateInput) model.Notification {
	s.mu.Lock()
	n := model.Notification{
		ID:             uuid.NewString(),
		Type:           in.Type,
		Title:          in.Title,
		Message:        in.Message,
		TaskID:         in.TaskID,
		UserID:         in.UserID,
		Priority:       in.Priority,
		CreatedAt:      time.Now(),
		IsRead:         false,
		ActionRequired: in.ActionRequired,
	}
	s.notifications = append([]model.Notification{n}, s.notifications...)
	subs, list := s.fanoutLocked()
	s.mu.Unlock()

	deliver(subs, list)
	return n
}

// CheckOverdueTasks creates one overdue notification per task whose deadline
// is before now and which is not completed, skipping tasks that already have
// an overdue notification on the list. Repeated scans are therefore
// idempotent per task id. Returns the notifications created by this call.
func (s *Service) CheckOverdueTasks(tasks []model.Task, now time.Time) []model.Notification {
	var created []model.Notification
	for _, t := range tasks {
		if t.Deadline == nil || t.IsCompleted() || !t.Deadline.Before(now) {
			continue
		}
		if s.hasOverdueFor(t.ID) {
			continue
		}

		priority := model.PriorityHigh
		if t.Priority == model.PriorityUrgent {
			priority = model.PriorityUrgent
		}

		created = append(created, s.Create(CreateInput{
			Type:           model.NotificationOverdue,
			Title:          "Task overdue",
			Message:        fmt.Sprintf("%q is past its deadline", t.Name),
			TaskID:         t.ID,
			Priority:       priority,
			ActionRequired: true,
		}))
	}
	return created
}

// MarkAsRead flips the matching notification to read. It reports whether a
// flip happened; an absent id or an already-read notification is a no-op and
// subscribers are only notified on an actual flip.
func (s *Service) MarkAsRead(id string) bool {
	s.mu.Lock()
	flipped := false
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			if !s.notifications[i].IsRead {
				s.notifications[i].IsRead = true
				flipped = true
			}
			break
		}
	}
	if !flipped {
		s.mu.Unlock()
		return false
	}
	subs, list := s.fanoutLocked()
	s.mu.Unlock()

	deliver(subs, list)
	return true
}

// Notifications returns a copy of the list, most recent first.
func (s *Service) Notifications() []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

// UnreadCount returns the number of notifications not yet marked as read.
func (s *Service) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, n := range s.notifications {
		if !n.IsRead {
			count++
		}
	}
	return count
}

func (s *Service) hasOverdueFor(taskID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notifications {
		if n.Type == model.NotificationOverdue && n.TaskID == taskID {
			return true
		}
	}
	return false
}

// fanoutLocked snapshots the subscriber set and the current list so delivery
// can run outside the lock. Subscribers may call back into the service.
func (s *Service) fanoutLocked() ([]subscription, []model.Notification) {
	subs := make([]subscription, len(s.subscribers))
	copy(subs, s.subscribers)
	list := make([]model.Notification, len(s.notifications))
	copy(list, s.notifications)
	return subs, list
}

func deliver(subs []subscription, list []model.Notification) {
	for _, sub := range subs {
		sub.fn(list)
	}
}
