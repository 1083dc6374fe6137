package model

import "strings"

// ActivityKind is the type of a schedulable course activity.
type ActivityKind int

const (
	KindNone ActivityKind = iota
	Lecture
	Tutorial
	Lab
	SelfStudy
)

// ActivityKinds lists placeable kinds in placement order.
var ActivityKinds = []ActivityKind{Lecture, Tutorial, Lab, SelfStudy}

func (k ActivityKind) String() string {
	switch k {
	case Lecture:
		return "LEC"
	case Tutorial:
		return "TUT"
	case Lab:
		return "LAB"
	case SelfStudy:
		return "SS"
	}
	return ""
}

// ParseActivityKind accepts both short (LEC) and long (lecture) names.
func ParseActivityKind(s string) ActivityKind {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LEC", "LECTURE":
		return Lecture
	case "TUT", "TUTORIAL":
		return Tutorial
	case "LAB":
		return Lab
	case "SS", "SELF_STUDY", "SELFSTUDY":
		return SelfStudy
	}
	return KindNone
}

func (k ActivityKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *ActivityKind) UnmarshalText(text []byte) error {
	*k = ParseActivityKind(string(text))
	return nil
}

// CourseComponent is one activity kind of a course with its remaining
// session count. Duration is measured in slots.
type CourseComponent struct {
	Course   *Course
	Kind     ActivityKind
	Duration int
	Sessions int
}
