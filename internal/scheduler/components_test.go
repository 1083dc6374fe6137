package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rhyrak/go-timetable/pkg/model"
)

func TestDeriveSessions(t *testing.T) {
	tests := []struct {
		name     string
		l        float64
		t, p, s  int
		expected Sessions
	}{
		{"full course", 3, 1, 2, 0, Sessions{Lecture: 2, Tutorial: 1, Lab: 1}},
		{"self study only", 0, 0, 0, 8, Sessions{}},
		{"single credit lecture", 1, 0, 0, 0, Sessions{Lecture: 1}},
		{"half rounds to even zero, floored at one", 0.75, 0, 0, 0, Sessions{Lecture: 1}},
		{"1.5 rounds to even", 2.25, 0, 0, 0, Sessions{Lecture: 2}},
		{"2.5 rounds to even", 3.75, 0, 0, 0, Sessions{Lecture: 2}},
		{"lecture with self study", 4, 0, 0, 8, Sessions{Lecture: 3, SelfStudy: 2}},
		{"odd practical floors", 0, 2, 3, 5, Sessions{Tutorial: 2, Lab: 1, SelfStudy: 1}},
		{"negative counts as zero", -3, -1, 4, 0, Sessions{Lab: 2}},
		{"nothing", 0, 0, 0, 0, Sessions{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, DeriveSessions(tc.l, tc.t, tc.p, tc.s))
		})
	}
}

func TestDeriveComponents(t *testing.T) {
	durations := NewDefaultConfiguration().Durations
	course := newCourse("CSE", 3, "CS301", "Dr. Ada", 3, 1, 2, 4, 60)

	components, selfStudyOnly := DeriveComponents(course, durations)

	assert.False(t, selfStudyOnly)
	assert.Len(t, components, 4)
	kinds := make([]model.ActivityKind, 0, len(components))
	for _, c := range components {
		kinds = append(kinds, c.Kind)
		assert.Same(t, course, c.Course)
	}
	assert.Equal(t, []model.ActivityKind{model.Lecture, model.Tutorial, model.Lab, model.SelfStudy}, kinds)
	assert.Equal(t, 3, components[0].Duration)
	assert.Equal(t, 2, components[1].Duration)
	assert.Equal(t, 4, components[2].Duration)
	assert.Equal(t, 2, components[3].Duration)
	assert.Equal(t, 2, components[0].Sessions)
}

func TestDeriveComponentsSelfStudyOnly(t *testing.T) {
	course := newCourse("CSE", 3, "HS301", "Dr. Noam", 0, 0, 0, 8, 60)

	components, selfStudyOnly := DeriveComponents(course, NewDefaultConfiguration().Durations)

	assert.True(t, selfStudyOnly)
	assert.Empty(t, components)
}
