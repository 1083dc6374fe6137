package scheduler

import (
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/rhyrak/go-timetable/pkg/errors"
	"github.com/rhyrak/go-timetable/pkg/model"
)

// Durations holds the slot length of one session per activity kind.
type Durations struct {
	Lecture   int `mapstructure:"lecture" json:"lecture" validate:"gt=0"`
	Tutorial  int `mapstructure:"tutorial" json:"tutorial" validate:"gt=0"`
	Lab       int `mapstructure:"lab" json:"lab" validate:"gt=0"`
	SelfStudy int `mapstructure:"self_study" json:"selfStudy" validate:"gt=0"`
}

// Of returns the duration of kind, 0 for unknown kinds.
func (d Durations) Of(kind model.ActivityKind) int {
	switch kind {
	case model.Lecture:
		return d.Lecture
	case model.Tutorial:
		return d.Tutorial
	case model.Lab:
		return d.Lab
	case model.SelfStudy:
		return d.SelfStudy
	}
	return 0
}

type Configuration struct {
	Days             []string    `mapstructure:"days" json:"days" validate:"min=1,dive,required"`
	DayStart         model.Clock `mapstructure:"day_start" json:"dayStart"`
	DayEnd           model.Clock `mapstructure:"day_end" json:"dayEnd"`
	TimeSlotDuration int         `mapstructure:"slot_minutes" json:"slotMinutes" validate:"gt=0"`

	LunchWindowStart model.Clock `mapstructure:"lunch_window_start" json:"lunchWindowStart"`
	LunchWindowEnd   model.Clock `mapstructure:"lunch_window_end" json:"lunchWindowEnd"`
	LunchDuration    int         `mapstructure:"lunch_minutes" json:"lunchMinutes" validate:"gt=0"`

	Durations   Durations      `mapstructure:"durations" json:"durations"`
	BasketSlots map[string]int `mapstructure:"basket_slots" json:"basketSlots" validate:"dive,gte=0"`

	// PriorityOrder ranks course classes for general placement.
	PriorityOrder []model.CoursePriority `mapstructure:"priority_order" json:"priorityOrder" validate:"min=1,unique,dive,oneof=core_courses basket_electives regular_electives tutorials labs self_study"`

	MaxAttempts int   `mapstructure:"max_attempts" json:"maxAttempts" validate:"gt=0"`
	BaseSeed    int64 `mapstructure:"base_seed" json:"baseSeed"`
	Parallel    bool  `mapstructure:"parallel" json:"parallel"`
	MaxWorkers  int   `mapstructure:"max_workers" json:"maxWorkers" validate:"gte=0"`

	LargeRoomThreshold int `mapstructure:"large_room_threshold" json:"largeRoomThreshold" validate:"gt=0"`
	DefaultCapacity    int `mapstructure:"default_capacity" json:"defaultCapacity" validate:"gt=0"`
	MaxSectionSize     int `mapstructure:"max_section_size" json:"maxSectionSize" validate:"gt=0"`
	DefaultEnrollment  int `mapstructure:"default_enrollment" json:"defaultEnrollment" validate:"gte=0"`
	MaxSuggestions     int `mapstructure:"max_suggestions" json:"maxSuggestions" validate:"gte=0"`
}

func NewDefaultConfiguration() *Configuration {
	return &Configuration{
		Days:             []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
		DayStart:         model.NewClock(9, 0),
		DayEnd:           model.NewClock(18, 30),
		TimeSlotDuration: 30,
		LunchWindowStart: model.NewClock(12, 30),
		LunchWindowEnd:   model.NewClock(14, 0),
		LunchDuration:    60,
		Durations: Durations{
			Lecture:   3, // 1.5 hours
			Tutorial:  2,
			Lab:       4,
			SelfStudy: 2,
		},
		BasketSlots: map[string]int{
			"B1": 0,  // 09:00
			"B2": 3,  // 10:30
			"B3": 7,  // 12:30
			"B4": 10, // 14:00
		},
		PriorityOrder:      append([]model.CoursePriority(nil), model.DefaultPriorityOrder...),
		MaxAttempts:        10,
		BaseSeed:           42,
		Parallel:           false,
		MaxWorkers:         4,
		LargeRoomThreshold: 70,
		DefaultCapacity:    70,
		MaxSectionSize:     70,
		DefaultEnrollment:  60,
		MaxSuggestions:     5,
	}
}

// NumberOfDays is the length of the weekly grid.
func (cfg *Configuration) NumberOfDays() int {
	return len(cfg.Days)
}

// BasketGroups returns the configured group names in ascending order.
func (cfg *Configuration) BasketGroups() []string {
	groups := make([]string, 0, len(cfg.BasketSlots))
	for g := range cfg.BasketSlots {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}

// Validate checks field constraints and the grid geometry. Every failure is
// reported as a configuration error.
func (cfg *Configuration) Validate() error {
	if cfg == nil {
		return apperrors.Configuration("configuration is nil")
	}
	if err := validator.New().Struct(cfg); err != nil {
		return apperrors.Wrap(err, apperrors.CodeConfiguration, "invalid configuration")
	}
	grid, err := NewTimeGrid(cfg.DayStart, cfg.DayEnd, cfg.TimeSlotDuration)
	if err != nil {
		return err
	}
	if cfg.LunchWindowStart >= cfg.LunchWindowEnd {
		return apperrors.Configuration("lunch window %s-%s is empty", cfg.LunchWindowStart, cfg.LunchWindowEnd)
	}
	if window := int(cfg.LunchWindowEnd - cfg.LunchWindowStart); cfg.LunchDuration > window {
		return apperrors.Configuration("lunch break of %d minutes does not fit the %d minute window", cfg.LunchDuration, window)
	}
	for _, group := range cfg.BasketGroups() {
		offset := cfg.BasketSlots[group]
		if offset+cfg.Durations.Lecture > grid.Len() {
			return apperrors.Configuration("basket slot %s at %d overruns the %d slot grid", group, offset, grid.Len())
		}
	}
	return nil
}

// PriorityRank is the position of p in PriorityOrder. Classes missing from
// the order rank after every listed one.
func (cfg *Configuration) PriorityRank(p model.CoursePriority) int {
	for i, q := range cfg.PriorityOrder {
		if q == p {
			return i
		}
	}
	return len(cfg.PriorityOrder)
}

// Workers is the effective size of the attempt pool.
func (cfg *Configuration) Workers() int {
	if !cfg.Parallel || cfg.MaxWorkers <= 1 {
		return 1
	}
	return cfg.MaxWorkers
}

func (cfg *Configuration) String() string {
	return fmt.Sprintf("%d days %s-%s @%dmin, %d attempts (seed %d)",
		len(cfg.Days), cfg.DayStart, cfg.DayEnd, cfg.TimeSlotDuration, cfg.MaxAttempts, cfg.BaseSeed)
}
