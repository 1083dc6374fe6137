package scheduler

import (
	"math"

	"github.com/rhyrak/go-timetable/pkg/model"
)

// Sessions holds per-kind weekly session counts of a course.
type Sessions struct {
	Lecture   int
	Tutorial  int
	Lab       int
	SelfStudy int
}

func (s Sessions) Of(kind model.ActivityKind) int {
	switch kind {
	case model.Lecture:
		return s.Lecture
	case model.Tutorial:
		return s.Tutorial
	case model.Lab:
		return s.Lab
	case model.SelfStudy:
		return s.SelfStudy
	}
	return 0
}

func (s Sessions) Total() int {
	return s.Lecture + s.Tutorial + s.Lab + s.SelfStudy
}

// IsSelfStudyOnly reports courses that carry only self-study hours.
func IsSelfStudyOnly(l float64, t int, p int, s int) bool {
	return s > 0 && l <= 0 && t <= 0 && p <= 0
}

// DeriveSessions converts L-T-P-S credit hours into weekly sessions.
// Negative inputs count as 0.
func DeriveSessions(l float64, t int, p int, s int) Sessions {
	l, t, p, s = math.Max(l, 0), max(t, 0), max(p, 0), max(s, 0)
	if IsSelfStudyOnly(l, t, p, s) {
		return Sessions{}
	}
	var out Sessions
	if l > 0 {
		out.Lecture = max(1, int(math.RoundToEven(l*2/3)))
	}
	out.Tutorial = t
	out.Lab = p / 2
	if l > 0 || t > 0 || p > 0 {
		out.SelfStudy = s / 4
	}
	return out
}

// DeriveComponents builds the schedulable components of a course in
// placement order. The second result is true for self-study-only courses,
// which never enter the grid.
func DeriveComponents(course *model.Course, durations Durations) ([]*model.CourseComponent, bool) {
	if IsSelfStudyOnly(course.L, course.T, course.P, course.S) {
		return nil, true
	}
	sessions := DeriveSessions(course.L, course.T, course.P, course.S)
	var components []*model.CourseComponent
	for _, kind := range model.ActivityKinds {
		n := sessions.Of(kind)
		if n == 0 {
			continue
		}
		components = append(components, &model.CourseComponent{
			Course:   course,
			Kind:     kind,
			Duration: durations.Of(kind),
			Sessions: n,
		})
	}
	return components, false
}
