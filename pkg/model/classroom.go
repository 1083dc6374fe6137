package model

import "strings"

// RoomKind is the classified type tag of a room.
type RoomKind int

const (
	OtherRoom RoomKind = iota
	LectureRoom
	Seater
	ComputerLab
	HardwareLab
)

func (k RoomKind) String() string {
	switch k {
	case LectureRoom:
		return "LECTURE_ROOM"
	case Seater:
		return "SEATER"
	case ComputerLab:
		return "COMPUTER_LAB"
	case HardwareLab:
		return "HARDWARE_LAB"
	}
	return "OTHER"
}

// ParseRoomKind maps free-form type tags (LECTURE_ROOM, SEATER_120, ...).
func ParseRoomKind(s string) RoomKind {
	upper := strings.ToUpper(strings.TrimSpace(s))
	switch {
	case strings.Contains(upper, "SEATER"):
		return Seater
	case strings.Contains(upper, "LECTURE_ROOM"):
		return LectureRoom
	case strings.Contains(upper, "COMPUTER_LAB"):
		return ComputerLab
	case strings.Contains(upper, "HARDWARE_LAB"):
		return HardwareLab
	}
	return OtherRoom
}

type Classroom struct {
	ID         string   `csv:"id" json:"id" validate:"required"`
	Capacity   int      `csv:"capacity" json:"capacity" validate:"gt=0"`
	TypeSTR    string   `csv:"type" json:"type"`
	RoomNumber string   `csv:"roomNumber" json:"roomNumber"`
	Type       RoomKind `csv:"-" json:"-"`
	schedule   [][]bool `csv:"-"`
	days       int      `csv:"-"`
	slots      int      `csv:"-"`
}

// NewClassroom creates a classified classroom without a schedule.
func NewClassroom(id string, capacity int, kind string, number string) *Classroom {
	return &Classroom{ID: id, Capacity: capacity, TypeSTR: kind, RoomNumber: number, Type: ParseRoomKind(kind)}
}

// Clone copies the room definition; the copy gets an empty schedule.
func (c *Classroom) Clone() *Classroom {
	clone := &Classroom{ID: c.ID, Capacity: c.Capacity, TypeSTR: c.TypeSTR, RoomNumber: c.RoomNumber, Type: c.Type}
	if c.days > 0 {
		clone.CreateSchedule(c.days, c.slots)
	}
	return clone
}

// CreateSchedule creates an empty schedule.
func (c *Classroom) CreateSchedule(days int, slots int) {
	c.days = days
	c.slots = slots
	c.schedule = make([][]bool, days)
	for i := range c.schedule {
		c.schedule[i] = make([]bool, slots)
	}
}

// IsAvailable checks if classroom is free at the given cell.
// Out-of-range cells are never available.
func (c *Classroom) IsAvailable(day int, slot int) bool {
	if day < 0 || day >= c.days || slot < 0 || slot >= c.slots {
		return false
	}
	return !c.schedule[day][slot]
}

// IsFree checks duration consecutive slots starting at start.
func (c *Classroom) IsFree(day int, start int, duration int) bool {
	for i := start; i < start+duration; i++ {
		if !c.IsAvailable(day, i) {
			return false
		}
	}
	return true
}

// Reserve occupies all requested slots or none of them.
// Returns false if any slot was occupied.
func (c *Classroom) Reserve(day int, start int, duration int) bool {
	if duration <= 0 || !c.IsFree(day, start, duration) {
		return false
	}
	for i := start; i < start+duration; i++ {
		c.schedule[day][i] = true
	}
	return true
}
