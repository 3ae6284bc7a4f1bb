package scheduler_test

import (
	"testing"

	"restops/internal/scheduler"

	"github.com/stretchr/testify/assert"
)

func TestTemplateStore_AddAssignsID(t *testing.T) {
	// Arrange
	store := scheduler.NewTemplateStore()

	// Act
	stored := store.Add(activeTemplate("prep line", []int{1}))

	// Assert
	assert.NotEmpty(t, stored.ID)
	assert.False(t, stored.CreatedAt.IsZero())
	assert.Equal(t, "prep line", stored.Name)

	got, ok := store.Get(stored.ID)
	assert.True(t, ok)
	assert.Equal(t, stored.ID, got.ID)
}

func TestTemplateStore_InsertionOrder(t *testing.T) {
	// Arrange
	store := scheduler.NewTemplateStore()
	store.Add(activeTemplate("first", []int{1}))
	store.Add(activeTemplate("second", []int{2}))
	store.Add(activeTemplate("third", []int{3}))

	// Act
	templates := store.Templates()

	// Assert: порядок добавления сохраняется
	assert.Len(t, templates, 3)
	assert.Equal(t, "first", templates[0].Name)
	assert.Equal(t, "second", templates[1].Name)
	assert.Equal(t, "third", templates[2].Name)
}

func TestTemplateStore_RoundTripUpdate(t *testing.T) {
	// Arrange
	store := scheduler.NewTemplateStore()
	original := activeTemplate("prep line", []int{1, 3})
	original.EstimatedDuration = intPtr(45)
	stored := store.Add(original)

	// Act: меняем только имя
	ok := store.Update(stored.ID, scheduler.TemplatePatch{Name: strPtr("X")})

	// Assert: имя новое, остальные поля не изменились
	assert.True(t, ok)
	got, found := store.Get(stored.ID)
	assert.True(t, found)
	assert.Equal(t, "X", got.Name)
	assert.Equal(t, stored.Department, got.Department)
	assert.Equal(t, stored.Shift, got.Shift)
	assert.Equal(t, stored.Weekdays, got.Weekdays)
	assert.Equal(t, stored.Priority, got.Priority)
	assert.Equal(t, 45, *got.EstimatedDuration)
	assert.Equal(t, stored.IsActive, got.IsActive)
}

func TestTemplateStore_UpdateDeactivates(t *testing.T) {
	// Arrange
	store := scheduler.NewTemplateStore()
	stored := store.Add(activeTemplate("prep line", []int{1}))

	inactive := false
	store.Update(stored.ID, scheduler.TemplatePatch{IsActive: &inactive})

	// Act: неактивный шаблон не генерирует задачи
	engine := scheduler.NewEngine(new(MockNotifier))
	tasks := engine.GenerateTasksForDate(store.Templates(), monday)

	// Assert
	assert.Empty(t, tasks)
}

func TestTemplateStore_UpdateAbsentID(t *testing.T) {
	// Arrange
	store := scheduler.NewTemplateStore()

	// Act
	ok := store.Update("missing", scheduler.TemplatePatch{Name: strPtr("X")})

	// Assert: отсутствие шаблона не считается ошибкой
	assert.False(t, ok)
}

func TestTemplateStore_Delete(t *testing.T) {
	// Arrange
	store := scheduler.NewTemplateStore()
	stored := store.Add(activeTemplate("prep line", []int{1}))

	// Act
	deleted := store.Delete(stored.ID)
	deletedAgain := store.Delete(stored.ID)

	// Assert
	assert.True(t, deleted)
	assert.False(t, deletedAgain)
	assert.Empty(t, store.Templates())
}

func TestTemplateStore_DeleteKeepsGeneratedTasks(t *testing.T) {
	// Arrange
	store := scheduler.NewTemplateStore()
	stored := store.Add(activeTemplate("prep line", []int{1}))
	engine := scheduler.NewEngine(new(MockNotifier))
	tasks := engine.GenerateTasksForDate(store.Templates(), monday)
	assert.Len(t, tasks, 1)

	// Act: удаление шаблона не отзывает уже сгенерированные задачи
	store.Delete(stored.ID)

	// Assert: слабая ссылка осталась
	assert.Equal(t, stored.ID, tasks[0].TemplateID)
	_, found := store.Get(stored.ID)
	assert.False(t, found)
}

func TestTemplateStore_TemplatesReturnsCopy(t *testing.T) {
	// Arrange
	store := scheduler.NewTemplateStore()
	store.Add(activeTemplate("prep line", []int{1}))

	// Act
	templates := store.Templates()
	templates[0].Name = "mutated"

	// Assert: мутация копии не затрагивает хранилище
	fresh := store.Templates()
	assert.Equal(t, "prep line", fresh[0].Name)
}
