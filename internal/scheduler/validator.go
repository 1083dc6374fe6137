package scheduler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rhyrak/go-timetable/pkg/model"
)

// Report summarises the conflicts found in a set of timetables.
type Report struct {
	Valid             bool   `json:"valid"`
	Conflicts         int    `json:"conflicts"`
	RoomConflicts     int    `json:"roomConflicts"`
	FacultyConflicts  int    `json:"facultyConflicts"`
	BreakConflicts    int    `json:"breakConflicts"`
	CapacityConflicts int    `json:"capacityConflicts"`
	Message           string `json:"message"`
}

type cellKey struct {
	owner string
	day   int
	slot  int
}

// Validate checks committed placements for room and faculty double booking,
// activities inside a lunch break and rooms smaller than required.
func Validate(timetables []*model.Timetable, rooms []*model.Classroom, breaks LunchBreaks, grid *TimeGrid) Report {
	var r Report
	var details strings.Builder

	capacity := make(map[string]int, len(rooms))
	for _, c := range rooms {
		capacity[c.ID] = c.Capacity
	}

	roomUse := map[cellKey]int{}
	facultyUse := map[cellKey]int{}
	for _, tt := range timetables {
		for _, p := range tt.Placements {
			for s := p.Start; s < p.Start+p.Duration; s++ {
				if p.Room != "" {
					roomUse[cellKey{p.Room, p.Day, s}]++
				}
				if p.Faculty != "" {
					facultyUse[cellKey{p.Faculty, p.Day, s}]++
				}
				if s < grid.Len() && breaks.IsBreakTime(tt.Section.Semester, grid.Slot(s)) {
					r.BreakConflicts++
					fmt.Fprintf(&details, "- %s %s %s placed in lunch break on day %d slot %d\n", tt.Section.Title(), p.Code, p.Kind, p.Day, s)
				}
			}
			if seats, ok := capacity[p.Room]; ok && seats < p.Capacity {
				r.CapacityConflicts++
				fmt.Fprintf(&details, "- Classroom %s (%d seats) too small for %s %s (%d)\n", p.Room, seats, tt.Section.Title(), p.Code, p.Capacity)
			}
		}
	}
	var collisions []string
	for k, n := range roomUse {
		if n > 1 {
			r.RoomConflicts += n - 1
			collisions = append(collisions, fmt.Sprintf("- Classroom %s assigned multiple times on day %d slot %d\n", k.owner, k.day, k.slot))
		}
	}
	for k, n := range facultyUse {
		if n > 1 {
			r.FacultyConflicts += n - 1
			collisions = append(collisions, fmt.Sprintf("- Faculty %s double booked on day %d slot %d\n", k.owner, k.day, k.slot))
		}
	}
	sort.Strings(collisions)
	details.WriteString(strings.Join(collisions, ""))

	r.Conflicts = r.RoomConflicts + r.FacultyConflicts + r.BreakConflicts + r.CapacityConflicts
	r.Valid = r.Conflicts == 0
	r.Message = check("Classroom collision check", r.RoomConflicts) +
		check("Faculty collision check", r.FacultyConflicts) +
		check("Lunch break check", r.BreakConflicts) +
		check("Classroom capacity check", r.CapacityConflicts) +
		details.String()
	return r
}

func check(name string, failures int) string {
	if failures > 0 {
		return fmt.Sprintf("[FAIL]: %s (%d).\n", name, failures)
	}
	return fmt.Sprintf("[  OK]: %s.\n", name)
}
