package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhyrak/go-timetable/pkg/model"
)

func validationFixture(t *testing.T) (*TimeGrid, LunchBreaks, []*model.Classroom) {
	t.Helper()
	grid, err := NewTimeGrid(model.NewClock(9, 0), model.NewClock(18, 30), 30)
	require.NoError(t, err)
	breaks := PlanLunchBreaks([]int{3}, lunchStart, lunchEnd, 60)
	rooms := []*model.Classroom{
		model.NewClassroom("R1", 70, "LECTURE_ROOM", "R101"),
		model.NewClassroom("R2", 40, "LECTURE_ROOM", "R102"),
	}
	return grid, breaks, rooms
}

func TestValidateCleanSchedule(t *testing.T) {
	grid, breaks, rooms := validationFixture(t)
	a := model.NewTimetable(model.Section{Department: "CSE", Semester: 3, Label: "A", Sections: 1}, 5, grid.Len())
	a.Place(model.Placement{Day: 0, Start: 0, Duration: 3, Kind: model.Lecture, Code: "CS301", Faculty: "Dr. Ada", Room: "R1", Capacity: 60})
	a.Place(model.Placement{Day: 0, Start: 3, Duration: 3, Kind: model.Lecture, Code: "CS302", Faculty: "Dr. Ada", Room: "R1", Capacity: 60})

	report := Validate([]*model.Timetable{a}, rooms, breaks, grid)

	assert.True(t, report.Valid)
	assert.Zero(t, report.Conflicts)
	assert.Contains(t, report.Message, "[  OK]: Classroom collision check.")
	assert.Contains(t, report.Message, "[  OK]: Faculty collision check.")
}

func TestValidateDetectsEveryConflictKind(t *testing.T) {
	grid, breaks, rooms := validationFixture(t)
	a := model.NewTimetable(model.Section{Department: "CSE", Semester: 3, Label: "A", Sections: 1}, 5, grid.Len())
	b := model.NewTimetable(model.Section{Department: "ECE", Semester: 3, Label: "A", Sections: 1}, 5, grid.Len())
	a.Place(model.Placement{Day: 1, Start: 0, Duration: 2, Kind: model.Tutorial, Code: "CS301", Faculty: "Dr. Ada", Room: "R1", Capacity: 60})
	b.Place(model.Placement{Day: 1, Start: 1, Duration: 2, Kind: model.Tutorial, Code: "EC301", Faculty: "Dr. Ada", Room: "R1", Capacity: 60})
	// 12:30 is inside the semester 3 break
	a.Place(model.Placement{Day: 2, Start: 7, Duration: 1, Kind: model.SelfStudy, Code: "CS302", Faculty: "Dr. Alan", Room: "R2", Capacity: 60})

	report := Validate([]*model.Timetable{a, b}, rooms, breaks, grid)

	assert.False(t, report.Valid)
	assert.Equal(t, 1, report.RoomConflicts)
	assert.Equal(t, 1, report.FacultyConflicts)
	assert.Equal(t, 1, report.BreakConflicts)
	assert.Equal(t, 1, report.CapacityConflicts)
	assert.Equal(t, 4, report.Conflicts)
	assert.Contains(t, report.Message, "[FAIL]: Classroom collision check (1).")
	assert.Contains(t, report.Message, "- Classroom R1 assigned multiple times on day 1 slot 1")
	assert.Contains(t, report.Message, "- Faculty Dr. Ada double booked on day 1 slot 1")
	assert.Contains(t, report.Message, "- Classroom R2 (40 seats) too small for CSE_3 CS302 (60)")
}

func TestValidateCountsPartialBreakOverlap(t *testing.T) {
	grid, _, rooms := validationFixture(t)
	// semester 4 breaks 12:45-13:45
	breaks := PlanLunchBreaks([]int{3, 4, 5}, lunchStart, lunchEnd, 60)
	a := model.NewTimetable(model.Section{Department: "CSE", Semester: 4, Label: "A", Sections: 1}, 5, grid.Len())
	a.Place(model.Placement{Day: 0, Start: 5, Duration: 3, Kind: model.Lecture, Code: "CS401", Faculty: "Dr. Ada", Room: "R1", Capacity: 60})
	a.Place(model.Placement{Day: 1, Start: 10, Duration: 3, Kind: model.Lecture, Code: "CS402", Faculty: "Dr. Ada", Room: "R1", Capacity: 60})

	report := Validate([]*model.Timetable{a}, rooms, breaks, grid)

	assert.Equal(t, 1, report.BreakConflicts)
	assert.Contains(t, report.Message, "CSE_4 CS401 LEC placed in lunch break on day 0 slot 7")
}
