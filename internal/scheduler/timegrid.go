package scheduler

import (
	apperrors "github.com/rhyrak/go-timetable/pkg/errors"
	"github.com/rhyrak/go-timetable/pkg/model"
)

// TimeGrid is the ordered, contiguous slot sequence shared by every day.
type TimeGrid struct {
	slots []model.TimeSlot
}

// NewTimeGrid splits [start, end) into slots of width minutes.
func NewTimeGrid(start model.Clock, end model.Clock, width int) (*TimeGrid, error) {
	if width <= 0 {
		return nil, apperrors.Configuration("slot width must be positive, got %d", width)
	}
	if start >= end {
		return nil, apperrors.Configuration("day start %s is not before day end %s", start, end)
	}
	if int(end-start)%width != 0 {
		return nil, apperrors.Configuration("slot width %d does not divide %s-%s", width, start, end)
	}
	g := &TimeGrid{}
	for t := start; t < end; t = t.Add(width) {
		g.slots = append(g.slots, model.TimeSlot{Start: t, End: t.Add(width)})
	}
	return g, nil
}

func (g *TimeGrid) Len() int { return len(g.slots) }

func (g *TimeGrid) Slot(i int) model.TimeSlot {
	return g.slots[i]
}

// Slots returns a fresh copy of the sequence.
func (g *TimeGrid) Slots() []model.TimeSlot {
	return append([]model.TimeSlot(nil), g.slots...)
}

// Span returns the wall-clock range of duration slots starting at start.
func (g *TimeGrid) Span(start int, duration int) model.TimeSlot {
	return model.TimeSlot{Start: g.slots[start].Start, End: g.slots[start+duration-1].End}
}
