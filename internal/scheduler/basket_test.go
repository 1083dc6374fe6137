package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhyrak/go-timetable/pkg/model"
)

type basketFixture struct {
	attempt *attempt
	cohort  cohort
	tt      *model.Timetable
}

func newBasketFixture(t *testing.T, cfg *Configuration, courses []*model.Course, rooms []*model.Classroom) *basketFixture {
	t.Helper()
	o := newTestOptimizer(t, cfg, courses, rooms)
	require.Len(t, o.cohorts, 1)
	co := o.cohorts[0]
	return &basketFixture{
		attempt: o.newAttempt(0),
		cohort:  co,
		tt:      model.NewTimetable(co.sections[0], cfg.NumberOfDays(), o.grid.Len()),
	}
}

func (f *basketFixture) place() map[*model.Course][]*model.CourseComponent {
	components := f.attempt.derive(f.cohort.courses)
	mask := f.attempt.breaks.Mask(f.cohort.plan.Semester, f.attempt.grid)
	f.attempt.placeBaskets(f.tt, f.cohort.courses, components, mask)
	return components
}

func basketCourses() []*model.Course {
	return []*model.Course{
		newCourse("CSE", 3, "B1-001", "Dr. Grace", 1.5, 0, 0, 0, 30),
		newCourse("CSE", 3, "B1-002", "Dr. Barbara", 1.5, 0, 0, 0, 30),
		newCourse("CSE", 3, "CS301", "Dr. Ada", 3, 0, 0, 0, 60),
	}
}

func TestBasketGroupSharesFixedSlot(t *testing.T) {
	f := newBasketFixture(t, NewDefaultConfiguration(), basketCourses(), newRooms())

	f.place()

	require.Len(t, f.tt.Placements, 2)
	for _, p := range f.tt.Placements {
		assert.Equal(t, 0, p.Day)
		assert.Equal(t, 0, p.Start)
		assert.Equal(t, model.ElectiveGroup("B1"), p.Group)
	}
	assert.NotEqual(t, f.tt.Placements[0].Room, f.tt.Placements[1].Room)

	lead := f.tt.Grid[0][0]
	assert.True(t, lead.Lead())
	assert.Equal(t, "B1", lead.Code)
	assert.Equal(t, "B1-001, B1-002", lead.Name)
	assert.Equal(t, 3, lead.Span)
	for s := 1; s < 3; s++ {
		assert.True(t, f.tt.Grid[0][s].Occupied())
		assert.False(t, f.tt.Grid[0][s].Lead())
	}
	assert.False(t, f.tt.Grid[1][0].Occupied())
	assert.Zero(t, f.attempt.ledger.Len())
}

func TestBasketRecursOncePerLectureSession(t *testing.T) {
	courses := []*model.Course{newCourse("CSE", 3, "B1-001", "Dr. Grace", 3, 0, 0, 0, 30)}
	f := newBasketFixture(t, NewDefaultConfiguration(), courses, newRooms())

	f.place()

	require.Len(t, f.tt.Placements, 2)
	assert.Equal(t, 0, f.tt.Placements[0].Day)
	assert.Equal(t, 1, f.tt.Placements[1].Day)
	assert.False(t, f.tt.Grid[2][0].Occupied())
}

func TestBasketRoomShortageMovesToNextDay(t *testing.T) {
	rooms := []*model.Classroom{model.NewClassroom("R1", 70, "LECTURE_ROOM", "R101")}
	f := newBasketFixture(t, NewDefaultConfiguration(), basketCourses(), rooms)

	f.place()

	require.Len(t, f.tt.Placements, 2)
	assert.Equal(t, "B1-001", f.tt.Placements[0].Code)
	assert.Equal(t, 0, f.tt.Placements[0].Day)
	assert.Equal(t, "B1-002", f.tt.Placements[1].Code)
	assert.Equal(t, 1, f.tt.Placements[1].Day)
	assert.Zero(t, f.attempt.ledger.Len())
}

func TestBasketRoomShortageIsRecorded(t *testing.T) {
	cfg := NewDefaultConfiguration()
	cfg.Days = []string{"Monday"}
	rooms := []*model.Classroom{model.NewClassroom("R1", 70, "LECTURE_ROOM", "R101")}
	f := newBasketFixture(t, cfg, basketCourses(), rooms)

	f.place()

	items := f.attempt.ledger.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "B1-002", items[0].Code)
	assert.Equal(t, model.Lecture, items[0].Kind)
	assert.Equal(t, model.ReasonBasketRoom, items[0].Reason)
	assert.Equal(t, "A", items[0].Section)
}

func TestBasketFacultyConflictIsRecorded(t *testing.T) {
	f := newBasketFixture(t, NewDefaultConfiguration(), basketCourses(), newRooms())
	for day := 0; day < 5; day++ {
		f.attempt.faculty.Mark("Dr. Grace", day, 1, 1)
	}

	f.place()

	items := f.attempt.ledger.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "B1-001", items[0].Code)
	assert.Equal(t, model.ReasonBasketFaculty, items[0].Reason)
	assert.Equal(t, 1, items[0].Sessions)
}

func TestBasketSlotInsideLunchBreak(t *testing.T) {
	courses := []*model.Course{newCourse("CSE", 3, "B3-001", "Dr. Grace", 1.5, 0, 0, 0, 30)}
	f := newBasketFixture(t, NewDefaultConfiguration(), courses, newRooms())

	f.place()

	assert.Empty(t, f.tt.Placements)
	items := f.attempt.ledger.Items()
	require.Len(t, items, 1)
	assert.Equal(t, model.ReasonNoSlot, items[0].Reason)
}

func TestBasketLeavesOtherComponentsToGeneralPlacer(t *testing.T) {
	courses := []*model.Course{newCourse("CSE", 3, "B1-001", "Dr. Grace", 1.5, 1, 0, 0, 30)}
	f := newBasketFixture(t, NewDefaultConfiguration(), courses, newRooms())

	components := f.place()

	byKind := map[model.ActivityKind]int{}
	for _, comp := range components[courses[0]] {
		byKind[comp.Kind] = comp.Sessions
	}
	assert.Equal(t, 0, byKind[model.Lecture])
	assert.Equal(t, 1, byKind[model.Tutorial])

	mask := f.attempt.breaks.Mask(3, f.attempt.grid)
	f.attempt.placeGeneral(f.tt, f.cohort.courses, components, mask)
	assert.Len(t, f.tt.Placements, 2)
	assert.Zero(t, f.attempt.ledger.Len())
}
