package scheduler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rhyrak/go-timetable/pkg/model"
)

// ConflictCategory groups unscheduled components by the kind of failure.
type ConflictCategory string

const (
	FacultyConflict  ConflictCategory = "faculty"
	RoomConflict     ConflictCategory = "room"
	TimeConflict     ConflictCategory = "time"
	CapacityConflict ConflictCategory = "capacity"
	OtherConflict    ConflictCategory = "other"
)

var conflictCategories = []ConflictCategory{FacultyConflict, RoomConflict, TimeConflict, CapacityConflict, OtherConflict}

// ConflictReport holds the categorised ledger.
type ConflictReport struct {
	Categories map[ConflictCategory][]model.UnscheduledComponent `json:"categories"`
	Total      int                                               `json:"total"`
}

// CategorizeReason maps a reason text to its category. The first matching
// keyword wins, so "no suitable slot or room found" counts as a room issue.
func CategorizeReason(reason string) ConflictCategory {
	r := strings.ToLower(reason)
	switch {
	case strings.Contains(r, "faculty"):
		return FacultyConflict
	case strings.Contains(r, "room"):
		return RoomConflict
	case strings.Contains(r, "time"), strings.Contains(r, "slot"):
		return TimeConflict
	case strings.Contains(r, "capacity"):
		return CapacityConflict
	}
	return OtherConflict
}

func AnalyzeConflicts(entries []model.UnscheduledComponent) ConflictReport {
	report := ConflictReport{Categories: make(map[ConflictCategory][]model.UnscheduledComponent)}
	for _, e := range entries {
		c := CategorizeReason(e.Reason)
		report.Categories[c] = append(report.Categories[c], e)
		report.Total++
	}
	return report
}

func (r ConflictReport) String() string {
	var b strings.Builder
	b.WriteString("=== SCHEDULING CONFLICT ANALYSIS ===\n\n")
	fmt.Fprintf(&b, "Total Conflicts: %d\n\n", r.Total)
	for _, c := range conflictCategories {
		entries := r.Categories[c]
		if len(entries) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s Conflicts (%d):\n", strings.ToUpper(string(c[:1]))+string(c[1:]), len(entries))
		for _, e := range entries {
			fmt.Fprintf(&b, "  - %s %s (%s %d %s): %s\n", e.Code, e.Kind, e.Department, e.Semester, e.Section, e.Reason)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Suggestion is a free window where an unscheduled session could go.
type Suggestion struct {
	Day       string `json:"day"`
	DayIndex  int    `json:"dayIndex"`
	SlotIndex int    `json:"slotIndex"`
	Duration  int    `json:"durationSlots"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Room      string `json:"room"`
	Priority  int    `json:"priority"`
}

// priority prefers windows before the lunch window, then after it, and
// every day but the last.
func (r *Result) priority(window model.TimeSlot, day int) int {
	score := 0
	switch {
	case window.End <= r.cfg.LunchWindowStart:
		score += 10
	case window.Start >= r.cfg.LunchWindowEnd:
		score += 8
	default:
		score -= 5
	}
	if day < len(r.Days)-1 {
		score += 5
	}
	return score
}

// SuggestAlternatives lists up to limit windows in the entry's section
// where the grid is empty, the faculty is free, no lunch break is touched
// and a room big enough for the course would be available. Higher
// priority comes first. limit <= 0 uses the configured maximum, and a
// maximum of 0 means no limit.
func (r *Result) SuggestAlternatives(entry model.UnscheduledComponent, limit int) []Suggestion {
	if r == nil || r.cfg == nil {
		return nil
	}
	if limit <= 0 {
		limit = r.cfg.MaxSuggestions
	}
	tt, ok := r.Timetable(entry.Department, entry.Semester, entry.Section)
	if !ok {
		return nil
	}
	course, ok := r.Course(entry.Department, entry.Semester, entry.Code)
	if !ok {
		return nil
	}
	kind := entry.Kind
	if kind == model.KindNone {
		kind = model.Lecture
	}
	duration := r.cfg.Durations.Of(kind)
	capacity := r.capacity.Required(course, tt.Section)

	var out []Suggestion
	for day := range r.Days {
		for start := 0; start+duration <= r.grid.Len(); start++ {
			if !tt.IsFree(day, start, duration) || !r.faculty.IsFree(course.Faculty, day, start, duration) {
				continue
			}
			if r.breaksAny(entry.Semester, start, duration) {
				continue
			}
			rooms := r.rooms.Candidates(AllocationRequest{
				Kind:     kind,
				LabRoom:  course.LabRoom,
				Capacity: capacity,
				Day:      day,
				Start:    start,
				Duration: duration,
			})
			if len(rooms) == 0 {
				continue
			}
			window := r.grid.Span(start, duration)
			out = append(out, Suggestion{
				Day:       r.Days[day],
				DayIndex:  day,
				SlotIndex: start,
				Duration:  duration,
				StartTime: window.Start.String(),
				EndTime:   window.End.String(),
				Room:      rooms[0].ID,
				Priority:  r.priority(window, day),
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority > out[j].Priority })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (r *Result) breaksAny(semester int, start int, duration int) bool {
	for i := start; i < start+duration; i++ {
		if r.LunchBreaks.IsBreakTime(semester, r.grid.Slot(i)) {
			return true
		}
	}
	return false
}
