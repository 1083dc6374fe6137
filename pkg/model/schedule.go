package model

import (
	"fmt"
	"strings"
)

// Section identifies one independently scheduled cohort.
type Section struct {
	Department string `json:"department"`
	Semester   int    `json:"semester"`
	Label      string `json:"label"`
	Sections   int    `json:"sections"`
	Size       int    `json:"size"`
}

// Title is the display name, e.g. "CSE_3" or "CSE_3_B".
func (s Section) Title() string {
	if s.Sections <= 1 {
		return fmt.Sprintf("%s_%d", s.Department, s.Semester)
	}
	return fmt.Sprintf("%s_%d_%s", s.Department, s.Semester, s.Label)
}

// Cell is one (day, slot) of a section grid. Only the first cell of an
// activity carries the descriptive fields; the following cells only have
// Kind set.
type Cell struct {
	Kind    ActivityKind  `json:"kind,omitempty"`
	Code    string        `json:"code,omitempty"`
	Name    string        `json:"name,omitempty"`
	Faculty string        `json:"faculty,omitempty"`
	Room    string        `json:"room,omitempty"`
	Span    int           `json:"span,omitempty"`
	Group   ElectiveGroup `json:"group,omitempty"`
}

func (c Cell) Occupied() bool { return c.Kind != KindNone }

// Lead reports whether the cell starts an activity.
func (c Cell) Lead() bool { return c.Occupied() && c.Code != "" }

// Placement is a committed activity.
type Placement struct {
	Section  Section       `json:"-"`
	Day      int           `json:"day"`
	Start    int           `json:"start"`
	Duration int           `json:"duration"`
	Kind     ActivityKind  `json:"kind"`
	Code     string        `json:"code"`
	Name     string        `json:"name"`
	Faculty  string        `json:"faculty"`
	Room     string        `json:"room"`
	Capacity int           `json:"capacity"`
	Group    ElectiveGroup `json:"group,omitempty"`
}

// Timetable is the day x slot grid of one section.
type Timetable struct {
	Section    Section     `json:"section"`
	Grid       [][]Cell    `json:"grid"`
	Placements []Placement `json:"placements"`
}

// NewTimetable creates an empty grid.
func NewTimetable(section Section, days int, slots int) *Timetable {
	t := Timetable{Section: section, Grid: make([][]Cell, days)}
	for i := range t.Grid {
		t.Grid[i] = make([]Cell, slots)
	}
	return &t
}

// IsFree checks duration consecutive cells of a day.
func (t *Timetable) IsFree(day int, start int, duration int) bool {
	if day < 0 || day >= len(t.Grid) || start < 0 || start+duration > len(t.Grid[day]) {
		return false
	}
	for i := start; i < start+duration; i++ {
		if t.Grid[day][i].Occupied() {
			return false
		}
	}
	return true
}

// Place writes the activity into the grid and records the placement.
func (t *Timetable) Place(p Placement) {
	p.Section = t.Section
	for i := 0; i < p.Duration; i++ {
		cell := Cell{Kind: p.Kind}
		if i == 0 {
			cell.Code = p.Code
			cell.Name = p.Name
			cell.Faculty = p.Faculty
			cell.Room = p.Room
			cell.Span = p.Duration
		}
		t.Grid[p.Day][p.Start+i] = cell
	}
	t.Placements = append(t.Placements, p)
}

// PlaceGroup commits the simultaneous offerings of one elective group. The
// grid gets a single lead cell naming the group; every offering is kept as
// its own placement.
func (t *Timetable) PlaceGroup(group ElectiveGroup, placements []Placement) {
	if len(placements) == 0 {
		return
	}
	first := placements[0]
	codes := make([]string, 0, len(placements))
	faculty := make([]string, 0, len(placements))
	rooms := make([]string, 0, len(placements))
	for _, p := range placements {
		p.Section = t.Section
		p.Group = group
		t.Placements = append(t.Placements, p)
		codes = append(codes, p.Code)
		faculty = append(faculty, p.Faculty)
		rooms = append(rooms, p.Room)
	}
	for i := 0; i < first.Duration; i++ {
		cell := Cell{Kind: first.Kind, Group: group}
		if i == 0 {
			cell.Code = string(group)
			cell.Name = strings.Join(codes, ", ")
			cell.Faculty = strings.Join(faculty, ", ")
			cell.Room = strings.Join(rooms, ", ")
			cell.Span = first.Duration
		}
		t.Grid[first.Day][first.Start+i] = cell
	}
}

type ScheduleCSVRow struct {
	Section    string `csv:"section"`
	Department string `csv:"department"`
	Semester   int    `csv:"semester"`
	Day        string `csv:"day"`
	Start      string `csv:"start"`
	End        string `csv:"end"`
	Kind       string `csv:"kind"`
	CourseCode string `csv:"course_code"`
	CourseName string `csv:"course_name"`
	Lecturer   string `csv:"faculty"`
	Classroom  string `csv:"classroom"`
}
