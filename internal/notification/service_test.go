package notification_test

import (
	"testing"
	"time"

	"restops/internal/model"
	"restops/internal/notification"

	"github.com/stretchr/testify/assert"
)

func TestService_CreateOrdering(t *testing.T) {
	// Arrange
	svc := notification.NewService()

	// Act
	n1 := svc.Create(notification.CreateInput{Type: model.NotificationReminder, Title: "first"})
	n2 := svc.Create(notification.CreateInput{Type: model.NotificationReminder, Title: "second"})

	// Assert: самые свежие уведомления в голове списка
	list := svc.Notifications()
	assert.Len(t, list, 2)
	assert.Equal(t, n2.ID, list[0].ID)
	assert.Equal(t, n1.ID, list[1].ID)
	assert.NotEqual(t, n1.ID, n2.ID)
	assert.False(t, list[0].IsRead)
	assert.False(t, list[1].IsRead)
}

func TestService_SubscriberDelivery(t *testing.T) {
	// Arrange
	svc := notification.NewService()

	var delivered [][]model.Notification
	svc.Subscribe(func(list []model.Notification) {
		delivered = append(delivered, list)
	})

	// Act
	created := svc.Create(notification.CreateInput{Type: model.NotificationReminder, Title: "ping"})

	// Assert: подписчик видит список, уже содержащий новое уведомление
	assert.Len(t, delivered, 1)
	assert.Len(t, delivered[0], 1)
	assert.Equal(t, created.ID, delivered[0][0].ID)
}

func TestService_SubscriberOrder(t *testing.T) {
	// Arrange
	svc := notification.NewService()

	var order []string
	svc.Subscribe(func([]model.Notification) { order = append(order, "first") })
	svc.Subscribe(func([]model.Notification) { order = append(order, "second") })

	// Act
	svc.Create(notification.CreateInput{Type: model.NotificationReminder})

	// Assert: доставка в порядке подписки
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestService_Unsubscribe(t *testing.T) {
	// Arrange
	svc := notification.NewService()

	calls := 0
	unsubscribe := svc.Subscribe(func([]model.Notification) { calls++ })

	svc.Create(notification.CreateInput{Type: model.NotificationReminder})
	assert.Equal(t, 1, calls)

	// Act
	unsubscribe()
	svc.Create(notification.CreateInput{Type: model.NotificationReminder})

	// Assert: после отписки доставка прекращается
	assert.Equal(t, 1, calls)
}

func TestService_UnreadCountAndMarkAsRead(t *testing.T) {
	// Arrange
	svc := notification.NewService()
	n1 := svc.Create(notification.CreateInput{Type: model.NotificationReminder})
	svc.Create(notification.CreateInput{Type: model.NotificationReminder})
	assert.Equal(t, 2, svc.UnreadCount())

	// Act
	flipped := svc.MarkAsRead(n1.ID)

	// Assert: счетчик уменьшился ровно на единицу
	assert.True(t, flipped)
	assert.Equal(t, 1, svc.UnreadCount())
}

func TestService_MarkAsReadIsOneWay(t *testing.T) {
	// Arrange
	svc := notification.NewService()
	n := svc.Create(notification.CreateInput{Type: model.NotificationReminder})

	notified := 0
	svc.Subscribe(func([]model.Notification) { notified++ })

	// Act: повторное прочтение и неизвестный id ничего не меняют
	first := svc.MarkAsRead(n.ID)
	second := svc.MarkAsRead(n.ID)
	missing := svc.MarkAsRead("missing")

	// Assert: подписчик уведомлен только при реальном переходе флага
	assert.True(t, first)
	assert.False(t, second)
	assert.False(t, missing)
	assert.Equal(t, 1, notified)
	assert.Equal(t, 0, svc.UnreadCount())
}

func TestService_CheckOverdueTasks(t *testing.T) {
	// Arrange
	svc := notification.NewService()
	now := time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC)
	past := now.Add(-2 * time.Hour)
	future := now.Add(2 * time.Hour)

	tasks := []model.Task{
		{ID: "late", Name: "wipe counters", Priority: model.PriorityMedium, Status: model.TaskStatusPending, Deadline: &past},
		{ID: "late-urgent", Name: "close register", Priority: model.PriorityUrgent, Status: model.TaskStatusInProgress, Deadline: &past},
		{ID: "done", Priority: model.PriorityMedium, Status: model.TaskStatusCompleted, Deadline: &past},
		{ID: "future", Priority: model.PriorityMedium, Status: model.TaskStatusPending, Deadline: &future},
		{ID: "no-deadline", Priority: model.PriorityMedium, Status: model.TaskStatusPending},
	}

	// Act
	created := svc.CheckOverdueTasks(tasks, now)

	// Assert: уведомления только по просроченным незавершенным задачам
	assert.Len(t, created, 2)
	byTask := map[string]model.Notification{}
	for _, n := range created {
		byTask[n.TaskID] = n
	}
	assert.Equal(t, model.NotificationOverdue, byTask["late"].Type)
	assert.Equal(t, model.PriorityHigh, byTask["late"].Priority)
	// Срочная задача дает срочное уведомление
	assert.Equal(t, model.PriorityUrgent, byTask["late-urgent"].Priority)
}

func TestService_CheckOverdueTasksDeduplicates(t *testing.T) {
	// Arrange
	svc := notification.NewService()
	now := time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	tasks := []model.Task{
		{ID: "late", Name: "wipe counters", Priority: model.PriorityMedium, Status: model.TaskStatusPending, Deadline: &past},
	}

	// Act: повторный скан не создает дубликатов
	first := svc.CheckOverdueTasks(tasks, now)
	second := svc.CheckOverdueTasks(tasks, now.Add(time.Minute))

	// Assert
	assert.Len(t, first, 1)
	assert.Empty(t, second)
	assert.Len(t, svc.Notifications(), 1)
}

func TestService_NotificationsReturnsCopy(t *testing.T) {
	// Arrange
	svc := notification.NewService()
	svc.Create(notification.CreateInput{Type: model.NotificationReminder, Title: "original"})

	// Act
	list := svc.Notifications()
	list[0].Title = "mutated"

	// Assert
	assert.Equal(t, "original", svc.Notifications()[0].Title)
}
