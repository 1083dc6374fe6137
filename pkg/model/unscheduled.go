package model

// Reasons recorded for placement failures.
const (
	ReasonBasketFaculty = "faculty conflict in basket slot"
	ReasonBasketRoom    = "no suitable room for basket elective"
	ReasonNoSlot        = "no suitable slot or room found"
)

type UnscheduledComponent struct {
	Department string       `csv:"department" json:"department"`
	Semester   int          `csv:"semester" json:"semester"`
	Code       string       `csv:"course_code" json:"code"`
	Name       string       `csv:"course_name" json:"name"`
	Faculty    string       `csv:"faculty" json:"faculty"`
	Kind       ActivityKind `csv:"component" json:"kind"`
	Sessions   int          `csv:"sessions" json:"sessions"`
	Section    string       `csv:"section" json:"section"`
	Reason     string       `csv:"reason" json:"reason"`
}

type unscheduledKey struct {
	department string
	semester   int
	code       string
	kind       ActivityKind
	section    string
}

func (u UnscheduledComponent) key() unscheduledKey {
	return unscheduledKey{u.Department, u.Semester, u.Code, u.Kind, u.Section}
}

// Ledger collects unscheduled components, de-duplicated by
// (department, semester, code, kind, section) in insertion order.
type Ledger struct {
	items []UnscheduledComponent
	index map[unscheduledKey]int
}

func NewLedger() *Ledger {
	return &Ledger{index: make(map[unscheduledKey]int)}
}

// Add records a component. Re-adding an existing identity only bumps its
// session count; the first reason is kept.
func (l *Ledger) Add(u UnscheduledComponent) {
	if u.Sessions <= 0 {
		u.Sessions = 1
	}
	if i, ok := l.index[u.key()]; ok {
		l.items[i].Sessions += u.Sessions
		return
	}
	l.index[u.key()] = len(l.items)
	l.items = append(l.items, u)
}

func (l *Ledger) Len() int { return len(l.items) }

// Items returns a copy of the recorded components.
func (l *Ledger) Items() []UnscheduledComponent {
	return append([]UnscheduledComponent(nil), l.items...)
}

// UnscheduledFor filters ledger entries down to one section.
func UnscheduledFor(items []UnscheduledComponent, s Section) []UnscheduledComponent {
	var out []UnscheduledComponent
	for _, u := range items {
		if u.Department == s.Department && u.Semester == s.Semester && u.Section == s.Label {
			out = append(out, u)
		}
	}
	return out
}
