package scheduler

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/pkg/model"
)

// Input is the immutable data every attempt starts from.
type Input struct {
	Courses []*model.Course
	Rooms   []*model.Classroom
}

// cohort groups the courses of one department+semester with its sections.
type cohort struct {
	plan     SectionPlan
	courses  []*model.Course
	sections []model.Section
}

// attempt holds all mutable allocation state of one optimizer attempt.
// Nothing in it is shared with other attempts.
type attempt struct {
	index int
	seed  int64

	cfg      *Configuration
	grid     *TimeGrid
	breaks   LunchBreaks
	capacity *CapacityResolver
	log      *zap.Logger

	rng        *rand.Rand
	rooms      *RoomAllocator
	faculty    *FacultyCalendar
	ledger     *model.Ledger
	timetables []*model.Timetable
}

func (o *Optimizer) newAttempt(index int) *attempt {
	seed := o.cfg.BaseSeed + int64(index)
	return &attempt{
		index:    index,
		seed:     seed,
		cfg:      o.cfg,
		grid:     o.grid,
		breaks:   o.breaks,
		capacity: o.capacity,
		log:      o.log.With(zap.Int("attempt", index), zap.Int64("seed", seed)),
		rng:      rand.New(rand.NewSource(seed)),
		rooms:    NewRoomAllocator(o.input.Rooms, o.cfg.NumberOfDays(), o.grid.Len(), o.cfg.LargeRoomThreshold),
		faculty:  NewFacultyCalendar(o.cfg.NumberOfDays(), o.grid.Len()),
		ledger:   model.NewLedger(),
	}
}

// run places every section of every cohort: basket groups first, then the
// remaining components course by course.
func (a *attempt) run(cohorts []cohort) {
	for _, co := range cohorts {
		mask := a.breaks.Mask(co.plan.Semester, a.grid)
		for _, section := range co.sections {
			tt := model.NewTimetable(section, a.cfg.NumberOfDays(), a.grid.Len())
			a.timetables = append(a.timetables, tt)

			components := a.derive(co.courses)
			a.placeBaskets(tt, co.courses, components, mask)
			a.placeGeneral(tt, co.courses, components, mask)
		}
	}
}

// derive creates fresh components for one section.
func (a *attempt) derive(courses []*model.Course) map[*model.Course][]*model.CourseComponent {
	out := make(map[*model.Course][]*model.CourseComponent, len(courses))
	for _, c := range courses {
		components, _ := DeriveComponents(c, a.cfg.Durations)
		out[c] = components
	}
	return out
}

func (a *attempt) unscheduled(section model.Section, comp *model.CourseComponent, sessions int, reason string) {
	c := comp.Course
	a.ledger.Add(model.UnscheduledComponent{
		Department: section.Department,
		Semester:   section.Semester,
		Code:       c.Code,
		Name:       c.Name,
		Faculty:    c.Faculty,
		Kind:       comp.Kind,
		Sessions:   sessions,
		Section:    section.Label,
		Reason:     reason,
	})
}

// commit marks faculty and returns the placement to write into the grid.
func (a *attempt) commit(comp *model.CourseComponent, section model.Section, day int, start int, room string, capacity int) model.Placement {
	c := comp.Course
	a.faculty.Mark(c.Faculty, day, start, comp.Duration)
	comp.Sessions--
	return model.Placement{
		Section:  section,
		Day:      day,
		Start:    start,
		Duration: comp.Duration,
		Kind:     comp.Kind,
		Code:     c.Code,
		Name:     c.Name,
		Faculty:  c.Faculty,
		Room:     room,
		Capacity: capacity,
		Group:    c.Group,
	}
}
