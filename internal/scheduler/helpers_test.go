package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rhyrak/go-timetable/pkg/model"
)

func newCourse(dept string, sem int, code string, faculty string, l float64, t, p, s, enrollment int) *model.Course {
	c := &model.Course{
		Department:      dept,
		Semester:        sem,
		Code:            code,
		Name:            code + " course",
		Faculty:         faculty,
		L:               l,
		T:               t,
		P:               p,
		S:               s,
		Enrollment:      enrollment,
		EnrollmentKnown: enrollment > 0,
	}
	c.Classify()
	return c
}

func newRooms() []*model.Classroom {
	return []*model.Classroom{
		model.NewClassroom("R1", 70, "LECTURE_ROOM", "R101"),
		model.NewClassroom("R2", 70, "LECTURE_ROOM", "R102"),
		model.NewClassroom("R3", 70, "LECTURE_ROOM", "R103"),
		model.NewClassroom("R4", 70, "LECTURE_ROOM", "R104"),
		model.NewClassroom("R5", 70, "LECTURE_ROOM", "R105"),
		model.NewClassroom("R6", 70, "LECTURE_ROOM", "R106"),
		model.NewClassroom("S1", 120, "SEATER_120", "S101"),
		model.NewClassroom("S2", 120, "SEATER_120", "S102"),
		model.NewClassroom("L1", 70, "COMPUTER_LAB", "L101"),
		model.NewClassroom("L2", 70, "COMPUTER_LAB", "L102"),
		model.NewClassroom("L3", 70, "COMPUTER_LAB", "L103"),
		model.NewClassroom("H1", 70, "HARDWARE_LAB", "H101"),
		model.NewClassroom("H2", 70, "HARDWARE_LAB", "H102"),
	}
}

// twoByTwo is a 2-department, 2-semester dataset with one basket group.
func twoByTwo() []*model.Course {
	return []*model.Course{
		newCourse("CSE", 3, "CS301", "Dr. Ada", 3, 1, 2, 0, 60),
		newCourse("CSE", 3, "CS302", "Dr. Alan", 3, 1, 2, 0, 60),
		newCourse("CSE", 3, "MA301", "Dr. Emmy", 3, 1, 0, 4, 60),
		newCourse("CSE", 3, "B1-001", "Dr. Grace", 3, 0, 0, 0, 30),
		newCourse("CSE", 3, "B1-002", "Dr. Barbara", 3, 0, 0, 0, 30),
		newCourse("CSE", 3, "HS301", "Dr. Noam", 0, 0, 0, 8, 60),
		newCourse("CSE", 5, "CS501", "Dr. Edsger", 3, 1, 2, 0, 55),
		newCourse("CSE", 5, "CS502", "Dr. Donald", 3, 0, 2, 0, 55),
		newCourse("ECE", 3, "EC301", "Dr. Claude", 3, 1, 2, 0, 50),
		newCourse("ECE", 3, "EC302", "Dr. Hedy", 3, 1, 0, 0, 50),
		newCourse("ECE", 5, "EC501", "Dr. Nikola", 3, 1, 2, 0, 45),
		newCourse("ECE", 5, "EC502", "Dr. James", 2, 1, 0, 0, 45),
	}
}

func newTestOptimizer(t *testing.T, cfg *Configuration, courses []*model.Course, rooms []*model.Classroom) *Optimizer {
	t.Helper()
	o, err := NewOptimizer(cfg, Input{Courses: courses, Rooms: rooms})
	require.NoError(t, err)
	return o
}

// assertInvariants re-checks room, faculty and break exclusivity directly
// from the placements.
func assertInvariants(t *testing.T, r *Result) {
	t.Helper()
	rooms := map[[3]any]string{}
	faculty := map[[3]any]string{}
	for _, tt := range r.Timetables {
		for _, p := range tt.Placements {
			for s := p.Start; s < p.Start+p.Duration; s++ {
				rk := [3]any{p.Room, p.Day, s}
				require.NotContains(t, rooms, rk, "room %s double booked", p.Room)
				rooms[rk] = p.Code
				fk := [3]any{p.Faculty, p.Day, s}
				require.NotContains(t, faculty, fk, "faculty %s double booked", p.Faculty)
				faculty[fk] = p.Code
				require.False(t, r.LunchBreaks.IsBreakTime(tt.Section.Semester, r.TimeSlots[s]),
					"%s %s in lunch break", tt.Section.Title(), p.Code)
			}
		}
	}
}
