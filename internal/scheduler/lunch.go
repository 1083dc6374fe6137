package scheduler

import (
	"sort"

	"github.com/samber/lo"

	"github.com/rhyrak/go-timetable/pkg/model"
)

// LunchBreaks maps a semester to its staggered break window.
type LunchBreaks struct {
	windows map[int]model.TimeSlot
}

// PlanLunchBreaks spreads one break of the given length per semester evenly
// across [windowStart, windowEnd), lowest semester first.
func PlanLunchBreaks(semesters []int, windowStart model.Clock, windowEnd model.Clock, minutes int) LunchBreaks {
	sems := lo.Uniq(semesters)
	sort.Ints(sems)

	var gap float64
	if len(sems) > 1 {
		gap = float64(int(windowEnd-windowStart)-minutes) / float64(len(sems)-1)
	}

	b := LunchBreaks{windows: make(map[int]model.TimeSlot, len(sems))}
	for i, sem := range sems {
		start := windowStart.Add(int(float64(i) * gap))
		b.windows[sem] = model.TimeSlot{Start: start, End: start.Add(minutes)}
	}
	return b
}

// Window returns the break of a semester.
func (b LunchBreaks) Window(semester int) (model.TimeSlot, bool) {
	w, ok := b.windows[semester]
	return w, ok
}

// IsBreakTime reports whether slot overlaps the semester's break at all.
// A slot that only touches an edge of the break is not break time.
func (b LunchBreaks) IsBreakTime(semester int, slot model.TimeSlot) bool {
	w, ok := b.windows[semester]
	if !ok {
		return false
	}
	return slot.Start < w.End && w.Start < slot.End
}

// Semesters lists the semesters with a break, ascending.
func (b LunchBreaks) Semesters() []int {
	sems := lo.Keys(b.windows)
	sort.Ints(sems)
	return sems
}

// Mask flags the grid slots that overlap the semester's break.
func (b LunchBreaks) Mask(semester int, grid *TimeGrid) []bool {
	mask := make([]bool, grid.Len())
	for i := range mask {
		mask[i] = b.IsBreakTime(semester, grid.Slot(i))
	}
	return mask
}

func overlapsMask(mask []bool, start int, duration int) bool {
	for i := start; i < start+duration; i++ {
		if i < len(mask) && mask[i] {
			return true
		}
	}
	return false
}
