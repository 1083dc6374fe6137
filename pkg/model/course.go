package model

import (
	"strings"
	"unicode"
)

// ElectiveGroup names a basket of cross-department electives sharing one
// fixed weekly slot. The zero value means "not a basket course".
type ElectiveGroup string

// CourseCSV is a raw courses.csv row. Numeric columns are kept as strings
// so that blank or malformed cells can fall back to defaults.
type CourseCSV struct {
	Department    string `csv:"Department"`
	SemesterSTR   string `csv:"Semester"`
	Code          string `csv:"Course Code"`
	Name          string `csv:"Course Name"`
	Faculty       string `csv:"Faculty"`
	LSTR          string `csv:"L"`
	TSTR          string `csv:"T"`
	PSTR          string `csv:"P"`
	SSTR          string `csv:"S"`
	EnrollmentSTR string `csv:"total_students"`
}

type Course struct {
	Department      string         `json:"department" validate:"required"`
	Semester        int            `json:"semester" validate:"gte=0"`
	Code            string         `json:"code" validate:"required"`
	Name            string         `json:"name" validate:"required"`
	Faculty         string         `json:"faculty" validate:"required"`
	L               float64        `json:"l" validate:"gte=0"`
	T               int            `json:"t" validate:"gte=0"`
	P               int            `json:"p" validate:"gte=0"`
	S               int            `json:"s" validate:"gte=0"`
	Enrollment      int            `json:"enrollment" validate:"gte=0"`
	EnrollmentKnown bool           `json:"-"`
	Group           ElectiveGroup  `json:"group,omitempty"`
	LabRoom         RoomKind       `json:"-"`
	Priority        CoursePriority `json:"priority"`
}

// IsBasket reports whether the course belongs to an elective group.
func (c *Course) IsBasket() bool {
	return c.Group != ""
}

// Classify fills the derived classification fields from the course code.
func (c *Course) Classify() {
	c.Group = ElectiveGroupOf(c.Code)
	c.LabRoom = LabRoomKindOf(c.Code)
	c.Priority = PriorityOf(c.Code, c.L, c.T, c.P)
}

// ElectiveGroupOf returns the basket group of a code such as "B1-001",
// or "" when the code is not a basket code.
func ElectiveGroupOf(code string) ElectiveGroup {
	prefix, suffix, ok := strings.Cut(strings.TrimSpace(code), "-")
	if !ok || suffix == "" || len(prefix) < 2 || prefix[0] != 'B' {
		return ""
	}
	for _, r := range prefix[1:] {
		if !unicode.IsDigit(r) {
			return ""
		}
	}
	return ElectiveGroup(prefix)
}

// LabRoomKindOf picks the lab flavour a course's practicals need.
func LabRoomKindOf(code string) RoomKind {
	upper := strings.ToUpper(code)
	switch {
	case strings.Contains(upper, "CS"), strings.Contains(upper, "DS"):
		return ComputerLab
	case strings.Contains(upper, "EC"):
		return HardwareLab
	}
	return ComputerLab
}

// CoursePriority is the placement class of a course. Classes are placed in
// the configured priority order.
type CoursePriority string

const (
	PriorityCore            CoursePriority = "core_courses"
	PriorityBasket          CoursePriority = "basket_electives"
	PriorityRegularElective CoursePriority = "regular_electives"
	PriorityTutorial        CoursePriority = "tutorials"
	PriorityLab             CoursePriority = "labs"
	PrioritySelfStudy       CoursePriority = "self_study"
)

// DefaultPriorityOrder places core courses first and self-study last.
var DefaultPriorityOrder = []CoursePriority{
	PriorityCore, PriorityBasket, PriorityRegularElective, PriorityTutorial, PriorityLab, PrioritySelfStudy,
}

var coreCodePrefixes = []string{"CS", "EC", "MA", "PH"}

// PriorityOf classifies a course: basket codes first, then codes of the
// core departments, then by which of L, T and P it carries.
func PriorityOf(code string, l float64, t int, p int) CoursePriority {
	upper := strings.ToUpper(code)
	switch {
	case ElectiveGroupOf(code) != "":
		return PriorityBasket
	case containsAny(upper, coreCodePrefixes):
		return PriorityCore
	case l > 0:
		return PriorityRegularElective
	case t > 0:
		return PriorityTutorial
	case p > 0:
		return PriorityLab
	}
	return PrioritySelfStudy
}

func containsAny(s string, parts []string) bool {
	for _, part := range parts {
		if strings.Contains(s, part) {
			return true
		}
	}
	return false
}

// SelfStudyCourse is a footnote entry for courses that only carry
// self-study hours and never enter the grid.
type SelfStudyCourse struct {
	Department string `csv:"department" json:"department"`
	Semester   int    `csv:"semester" json:"semester"`
	Code       string `csv:"course_code" json:"code"`
	Name       string `csv:"course_name" json:"name"`
	Faculty    string `csv:"faculty" json:"faculty"`
}
