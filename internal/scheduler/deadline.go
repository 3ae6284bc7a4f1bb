package scheduler

import (
	"time"

	"restops/internal/model"
)

// Deadline hours by shift and shift action, on the same calendar date as
// the generation date.
var deadlineHours = map[model.Shift]map[model.ShiftAction]int{
	model.ShiftMorning:   {model.ShiftActionOpening: 10, model.ShiftActionClosing: 14},
	model.ShiftLunch:     {model.ShiftActionOpening: 12, model.ShiftActionClosing: 16},
	model.ShiftAfternoon: {model.ShiftActionOpening: 16, model.ShiftActionClosing: 20},
	model.ShiftEvening:   {model.ShiftActionOpening: 18, model.ShiftActionClosing: 23},
}

// deadlineFor returns the deadline for a (shift, action) pair on the given
// date, or nil when the pair is not in the table.
func deadlineFor(date time.Time, shift model.Shift, action model.ShiftAction) *time.Time {
	byAction, ok := deadlineHours[shift]
	if !ok {
		return nil
	}
	hour, ok := byAction[action]
	if !ok {
		return nil
	}
	d := time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, date.Location())
	return &d
}
