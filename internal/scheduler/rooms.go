package scheduler

import (
	"sort"

	"github.com/samber/lo"

	"github.com/rhyrak/go-timetable/pkg/model"
)

// AllocationRequest describes one room reservation.
type AllocationRequest struct {
	Kind     model.ActivityKind
	LabRoom  model.RoomKind
	Capacity int
	Day      int
	Start    int
	Duration int
	Excluded map[string]bool
}

// RoomAllocator hands out rooms first-fit in input order.
type RoomAllocator struct {
	rooms              []*model.Classroom
	byID               map[string]*model.Classroom
	largeRoomThreshold int
}

// NewRoomAllocator clones rooms with fresh schedules of days x slots.
func NewRoomAllocator(rooms []*model.Classroom, days int, slots int, largeRoomThreshold int) *RoomAllocator {
	a := &RoomAllocator{byID: make(map[string]*model.Classroom, len(rooms)), largeRoomThreshold: largeRoomThreshold}
	for _, r := range rooms {
		c := r.Clone()
		c.CreateSchedule(days, slots)
		a.rooms = append(a.rooms, c)
		a.byID[c.ID] = c
	}
	return a
}

// searchOrder lists the room kinds to try, in preference order.
func (a *RoomAllocator) searchOrder(req AllocationRequest) []model.RoomKind {
	if req.Kind == model.Lab {
		return []model.RoomKind{req.LabRoom}
	}
	if req.Capacity > a.largeRoomThreshold {
		return []model.RoomKind{model.Seater, model.LectureRoom}
	}
	return []model.RoomKind{model.LectureRoom}
}

// Candidates returns the rooms that could host req right now.
func (a *RoomAllocator) Candidates(req AllocationRequest) []*model.Classroom {
	var out []*model.Classroom
	for _, kind := range a.searchOrder(req) {
		out = append(out, lo.Filter(a.rooms, func(c *model.Classroom, _ int) bool {
			return c.Type == kind &&
				c.Capacity >= req.Capacity &&
				!req.Excluded[c.ID] &&
				c.IsFree(req.Day, req.Start, req.Duration)
		})...)
	}
	return out
}

// Allocate reserves the first qualifying room and returns its id.
func (a *RoomAllocator) Allocate(req AllocationRequest) (string, bool) {
	for _, c := range a.Candidates(req) {
		if c.Reserve(req.Day, req.Start, req.Duration) {
			return c.ID, true
		}
	}
	return "", false
}

func (a *RoomAllocator) Room(id string) (*model.Classroom, bool) {
	c, ok := a.byID[id]
	return c, ok
}

func (a *RoomAllocator) Rooms() []*model.Classroom {
	return a.rooms
}

type cohortKey struct {
	department string
	semester   int
}

// SectionPlan is the split of a department+semester cohort.
type SectionPlan struct {
	Department string
	Semester   int
	Total      int
	Count      int
	Size       int
}

// Sections expands the plan into labelled sections A, B, ...
func (p SectionPlan) Sections() []model.Section {
	out := make([]model.Section, p.Count)
	for i := range out {
		out[i] = model.Section{
			Department: p.Department,
			Semester:   p.Semester,
			Label:      string(rune('A' + i)),
			Sections:   p.Count,
			Size:       p.Size,
		}
	}
	return out
}

// PlanSections splits every cohort by its largest course enrollment so that
// no section exceeds maxSize. Plans are ordered by department, then semester.
func PlanSections(courses []*model.Course, maxSize int) []SectionPlan {
	totals := map[cohortKey]int{}
	for _, c := range courses {
		k := cohortKey{c.Department, c.Semester}
		totals[k] = max(totals[k], c.Enrollment)
	}
	keys := lo.Keys(totals)
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].department != keys[j].department {
			return keys[i].department < keys[j].department
		}
		return keys[i].semester < keys[j].semester
	})

	plans := make([]SectionPlan, 0, len(keys))
	for _, k := range keys {
		total := totals[k]
		count := max(1, ceilDiv(total, maxSize))
		plans = append(plans, SectionPlan{
			Department: k.department,
			Semester:   k.semester,
			Total:      total,
			Count:      count,
			Size:       ceilDiv(total, count),
		})
	}
	return plans
}

// CapacityResolver decides the seats an activity needs.
type CapacityResolver struct {
	sectionSize     map[cohortKey]int
	groupTotal      map[model.ElectiveGroup]int
	defaultCapacity int
}

func NewCapacityResolver(courses []*model.Course, plans []SectionPlan, defaultCapacity int) *CapacityResolver {
	r := &CapacityResolver{
		sectionSize:     make(map[cohortKey]int, len(plans)),
		groupTotal:      make(map[model.ElectiveGroup]int),
		defaultCapacity: defaultCapacity,
	}
	for _, p := range plans {
		r.sectionSize[cohortKey{p.Department, p.Semester}] = p.Size
	}
	for _, c := range courses {
		if c.IsBasket() && c.EnrollmentKnown {
			r.groupTotal[c.Group] += c.Enrollment
		}
	}
	return r
}

// Required resolves capacity from, in order: the course's own enrollment,
// the elective group aggregate, the cohort section size, the default.
func (r *CapacityResolver) Required(course *model.Course, section model.Section) int {
	if course.EnrollmentKnown && course.Enrollment > 0 {
		if course.IsBasket() || section.Sections <= 1 {
			return course.Enrollment
		}
		return ceilDiv(course.Enrollment, section.Sections)
	}
	if course.IsBasket() {
		if total := r.groupTotal[course.Group]; total > 0 {
			return total
		}
	}
	if size := r.sectionSize[cohortKey{course.Department, course.Semester}]; size > 0 {
		return size
	}
	return r.defaultCapacity
}

func ceilDiv(a int, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
