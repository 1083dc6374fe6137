package scheduler

import (
	"github.com/rhyrak/go-timetable/pkg/model"
)

// placeGeneral places every remaining session course by course, kinds in
// Lecture, Tutorial, Lab, SelfStudy order. Days are visited in a random
// order, start slots left to right.
func (a *attempt) placeGeneral(tt *model.Timetable, courses []*model.Course, components map[*model.Course][]*model.CourseComponent, mask []bool) {
	for _, c := range courses {
		capacity := a.capacity.Required(c, tt.Section)
		for _, comp := range components[c] {
			for comp.Sessions > 0 {
				if !a.tryPlace(tt, comp, capacity, mask) {
					a.unscheduled(tt.Section, comp, 1, model.ReasonNoSlot)
					comp.Sessions--
				}
			}
		}
	}
}

// tryPlace commits one session at the first valid (day, slot, room).
func (a *attempt) tryPlace(tt *model.Timetable, comp *model.CourseComponent, capacity int, mask []bool) bool {
	c := comp.Course
	for _, day := range a.rng.Perm(a.cfg.NumberOfDays()) {
		for start := 0; start+comp.Duration <= a.grid.Len(); start++ {
			if overlapsMask(mask, start, comp.Duration) {
				continue
			}
			if !a.faculty.IsFree(c.Faculty, day, start, comp.Duration) || !tt.IsFree(day, start, comp.Duration) {
				continue
			}
			room, ok := a.rooms.Allocate(AllocationRequest{
				Kind:     comp.Kind,
				LabRoom:  c.LabRoom,
				Capacity: capacity,
				Day:      day,
				Start:    start,
				Duration: comp.Duration,
			})
			if !ok {
				continue
			}
			tt.Place(a.commit(comp, tt.Section, day, start, room, capacity))
			return true
		}
	}
	return false
}
