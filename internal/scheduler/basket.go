package scheduler

import (
	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/pkg/model"
)

// placeBaskets puts the lectures of every elective group at the group's
// fixed slot. A course takes the slot on as many days as it has lecture
// sessions; whatever is left after the last day goes to the ledger with the
// last reason seen.
func (a *attempt) placeBaskets(tt *model.Timetable, courses []*model.Course, components map[*model.Course][]*model.CourseComponent, mask []bool) {
	duration := a.cfg.Durations.Lecture
	for _, name := range a.cfg.BasketGroups() {
		group := model.ElectiveGroup(name)
		offset := a.cfg.BasketSlots[name]

		var pending []*model.CourseComponent
		for _, c := range courses {
			if c.Group != group {
				continue
			}
			for _, comp := range components[c] {
				if comp.Kind == model.Lecture {
					pending = append(pending, comp)
				}
			}
		}
		if len(pending) == 0 {
			continue
		}

		reasons := make(map[*model.CourseComponent]string, len(pending))
		for day := 0; day < a.cfg.NumberOfDays(); day++ {
			if !hasSessions(pending) {
				break
			}
			if overlapsMask(mask, offset, duration) || !tt.IsFree(day, offset, duration) {
				continue
			}

			batch := a.roomsInUse(tt, group, day, offset, duration)
			var placed []model.Placement
			for _, comp := range pending {
				if comp.Sessions == 0 {
					continue
				}
				c := comp.Course
				if !a.faculty.IsFree(c.Faculty, day, offset, duration) {
					reasons[comp] = model.ReasonBasketFaculty
					continue
				}
				capacity := a.capacity.Required(c, tt.Section)
				room, ok := a.rooms.Allocate(AllocationRequest{
					Kind:     model.Lecture,
					Capacity: capacity,
					Day:      day,
					Start:    offset,
					Duration: duration,
					Excluded: batch,
				})
				if !ok {
					reasons[comp] = model.ReasonBasketRoom
					continue
				}
				batch[room] = true
				placed = append(placed, a.commit(comp, tt.Section, day, offset, room, capacity))
			}
			tt.PlaceGroup(group, placed)
		}

		for _, comp := range pending {
			if comp.Sessions == 0 {
				continue
			}
			reason, ok := reasons[comp]
			if !ok {
				reason = model.ReasonNoSlot
			}
			a.log.Debug("basket elective left unscheduled",
				zap.String("section", tt.Section.Title()),
				zap.String("course", comp.Course.Code),
				zap.Int("sessions", comp.Sessions),
				zap.String("reason", reason))
			a.unscheduled(tt.Section, comp, comp.Sessions, reason)
			comp.Sessions = 0
		}
	}
}

// roomsInUse collects rooms held by other groups' placements overlapping
// the window in this section.
func (a *attempt) roomsInUse(tt *model.Timetable, group model.ElectiveGroup, day int, start int, duration int) map[string]bool {
	used := make(map[string]bool)
	for _, p := range tt.Placements {
		if p.Day != day || p.Group == group || p.Room == "" {
			continue
		}
		if p.Start < start+duration && start < p.Start+p.Duration {
			used[p.Room] = true
		}
	}
	return used
}

func hasSessions(components []*model.CourseComponent) bool {
	for _, c := range components {
		if c.Sessions > 0 {
			return true
		}
	}
	return false
}
