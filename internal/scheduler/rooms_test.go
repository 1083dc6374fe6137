package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhyrak/go-timetable/pkg/model"
)

func TestAllocateRequiresFreeSlots(t *testing.T) {
	// Arrange
	rooms := NewRoomAllocator([]*model.Classroom{
		model.NewClassroom("SMALL", 50, "LECTURE_ROOM", "101"),
		model.NewClassroom("BIG", 120, "LECTURE_ROOM", "102"),
	}, 5, 19, 70)
	big, _ := rooms.Room("BIG")
	require.True(t, big.Reserve(1, 4, 3))
	req := AllocationRequest{Kind: model.Lecture, Capacity: 70, Day: 1, Start: 4, Duration: 3}

	// Act
	_, ok := rooms.Allocate(req)

	// Assert
	assert.False(t, ok)
	small, _ := rooms.Room("SMALL")
	assert.True(t, small.IsFree(1, 4, 3))

	// Act
	req.Start = 7
	id, ok := rooms.Allocate(req)

	// Assert
	assert.True(t, ok)
	assert.Equal(t, "BIG", id)
	for s := 4; s < 10; s++ {
		assert.False(t, big.IsAvailable(1, s))
	}
	assert.True(t, big.IsAvailable(1, 10))
}

func TestAllocatePrefersSeatersForLargeGroups(t *testing.T) {
	rooms := NewRoomAllocator([]*model.Classroom{
		model.NewClassroom("LR", 120, "LECTURE_ROOM", "101"),
		model.NewClassroom("ST", 120, "SEATER_120", "201"),
	}, 5, 19, 70)

	id, ok := rooms.Allocate(AllocationRequest{Kind: model.Tutorial, Capacity: 100, Day: 0, Start: 0, Duration: 2})
	require.True(t, ok)
	assert.Equal(t, "ST", id)

	id, ok = rooms.Allocate(AllocationRequest{Kind: model.Lecture, Capacity: 100, Day: 0, Start: 0, Duration: 3})
	require.True(t, ok)
	assert.Equal(t, "LR", id)

	_, ok = rooms.Allocate(AllocationRequest{Kind: model.SelfStudy, Capacity: 100, Day: 0, Start: 1, Duration: 2})
	assert.False(t, ok)
}

func TestAllocateSmallGroupsSkipSeaters(t *testing.T) {
	rooms := NewRoomAllocator([]*model.Classroom{
		model.NewClassroom("ST", 120, "SEATER_120", "201"),
	}, 5, 19, 70)

	_, ok := rooms.Allocate(AllocationRequest{Kind: model.Lecture, Capacity: 40, Day: 0, Start: 0, Duration: 3})

	assert.False(t, ok)
}

func TestAllocateLabsUseMatchingLabRooms(t *testing.T) {
	rooms := NewRoomAllocator([]*model.Classroom{
		model.NewClassroom("LR", 100, "LECTURE_ROOM", "101"),
		model.NewClassroom("CL", 40, "COMPUTER_LAB", "L1"),
		model.NewClassroom("HL", 40, "HARDWARE_LAB", "H1"),
	}, 5, 19, 70)

	id, ok := rooms.Allocate(AllocationRequest{Kind: model.Lab, LabRoom: model.HardwareLab, Capacity: 30, Day: 2, Start: 0, Duration: 4})
	require.True(t, ok)
	assert.Equal(t, "HL", id)

	id, ok = rooms.Allocate(AllocationRequest{Kind: model.Lab, LabRoom: model.ComputerLab, Capacity: 30, Day: 2, Start: 0, Duration: 4})
	require.True(t, ok)
	assert.Equal(t, "CL", id)

	_, ok = rooms.Allocate(AllocationRequest{Kind: model.Lab, LabRoom: model.ComputerLab, Capacity: 30, Day: 2, Start: 2, Duration: 4})
	assert.False(t, ok)
}

func TestAllocateHonoursExclusions(t *testing.T) {
	rooms := NewRoomAllocator([]*model.Classroom{
		model.NewClassroom("A", 70, "LECTURE_ROOM", "101"),
		model.NewClassroom("B", 70, "LECTURE_ROOM", "102"),
	}, 5, 19, 70)

	id, ok := rooms.Allocate(AllocationRequest{Kind: model.Lecture, Capacity: 60, Day: 0, Start: 0, Duration: 3, Excluded: map[string]bool{"A": true}})

	require.True(t, ok)
	assert.Equal(t, "B", id)
}

func TestAllocatorClonesRooms(t *testing.T) {
	source := []*model.Classroom{model.NewClassroom("A", 70, "LECTURE_ROOM", "101")}

	first := NewRoomAllocator(source, 5, 19, 70)
	_, ok := first.Allocate(AllocationRequest{Kind: model.Lecture, Capacity: 10, Day: 0, Start: 0, Duration: 3})
	require.True(t, ok)
	second := NewRoomAllocator(source, 5, 19, 70)

	room, _ := second.Room("A")
	assert.True(t, room.IsFree(0, 0, 3))
}

func TestPlanSections(t *testing.T) {
	courses := []*model.Course{
		newCourse("CSE", 3, "CS301", "A", 3, 0, 0, 0, 140),
		newCourse("CSE", 3, "CS302", "B", 3, 0, 0, 0, 90),
		newCourse("ECE", 3, "EC301", "C", 3, 0, 0, 0, 70),
		newCourse("AIDS", 5, "DS501", "D", 3, 0, 0, 0, 150),
	}

	plans := PlanSections(courses, 70)

	require.Len(t, plans, 3)
	assert.Equal(t, SectionPlan{Department: "AIDS", Semester: 5, Total: 150, Count: 3, Size: 50}, plans[0])
	assert.Equal(t, SectionPlan{Department: "CSE", Semester: 3, Total: 140, Count: 2, Size: 70}, plans[1])
	assert.Equal(t, SectionPlan{Department: "ECE", Semester: 3, Total: 70, Count: 1, Size: 70}, plans[2])

	sections := plans[1].Sections()
	require.Len(t, sections, 2)
	assert.Equal(t, "CSE_3_A", sections[0].Title())
	assert.Equal(t, "CSE_3_B", sections[1].Title())
	assert.Equal(t, "ECE_3", plans[2].Sections()[0].Title())
}

func TestCapacityResolver(t *testing.T) {
	regular := newCourse("CSE", 3, "CS301", "A", 3, 0, 0, 0, 140)
	unknown := newCourse("CSE", 3, "CS302", "B", 3, 0, 0, 0, 0)
	basket := newCourse("CSE", 3, "B1-001", "C", 3, 0, 0, 0, 40)
	basketUnknown := newCourse("CSE", 3, "B1-002", "D", 3, 0, 0, 0, 0)
	lonelyBasket := newCourse("CSE", 3, "B2-001", "E", 3, 0, 0, 0, 0)
	stranger := newCourse("MEC", 1, "ME101", "F", 3, 0, 0, 0, 0)
	courses := []*model.Course{regular, unknown, basket, basketUnknown, lonelyBasket}
	plans := PlanSections(courses, 70)
	resolver := NewCapacityResolver(courses, plans, 70)
	section := plans[0].Sections()[0]

	assert.Equal(t, 70, resolver.Required(regular, section))
	assert.Equal(t, 40, resolver.Required(basket, section))
	assert.Equal(t, 40, resolver.Required(basketUnknown, section))
	assert.Equal(t, 70, resolver.Required(lonelyBasket, section))
	assert.Equal(t, 70, resolver.Required(unknown, section))
	assert.Equal(t, 70, resolver.Required(stranger, model.Section{Department: "MEC", Semester: 1, Sections: 1}))

	small := newCourse("CSE", 3, "CS303", "G", 3, 0, 0, 0, 45)
	assert.Equal(t, 23, resolver.Required(small, section))
}
