package scheduler

// FacultyCalendar tracks occupied slots per faculty per day.
type FacultyCalendar struct {
	days  int
	slots int
	busy  map[string][][]bool
}

func NewFacultyCalendar(days int, slots int) *FacultyCalendar {
	return &FacultyCalendar{days: days, slots: slots, busy: make(map[string][][]bool)}
}

// IsFree checks duration consecutive slots of faculty on day.
func (f *FacultyCalendar) IsFree(faculty string, day int, start int, duration int) bool {
	if day < 0 || day >= f.days || start < 0 || start+duration > f.slots {
		return false
	}
	week, ok := f.busy[faculty]
	if !ok {
		return true
	}
	for i := start; i < start+duration; i++ {
		if week[day][i] {
			return false
		}
	}
	return true
}

// Mark occupies the slots. Callers check IsFree first.
func (f *FacultyCalendar) Mark(faculty string, day int, start int, duration int) {
	week, ok := f.busy[faculty]
	if !ok {
		week = make([][]bool, f.days)
		for d := range week {
			week[d] = make([]bool, f.slots)
		}
		f.busy[faculty] = week
	}
	for i := start; i < start+duration && i < f.slots; i++ {
		week[day][i] = true
	}
}
