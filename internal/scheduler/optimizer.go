package scheduler

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync/atomic"
	"time"

	"github.com/samber/lo"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	apperrors "github.com/rhyrak/go-timetable/pkg/errors"
	"github.com/rhyrak/go-timetable/pkg/model"
)

// FailedScore is the score of an attempt that did not finish.
const FailedScore = math.MaxInt

// AttemptScore is the outcome of one attempt.
type AttemptScore struct {
	Attempt   int    `json:"attempt"`
	Seed      int64  `json:"seed"`
	Score     int    `json:"score"`
	Conflicts int    `json:"conflicts"`
	Failed    bool   `json:"failed"`
	Error     string `json:"error,omitempty"`
}

// Result is the best schedule found by Run.
type Result struct {
	Attempt     int                          `json:"attempt"`
	Seed        int64                        `json:"seed"`
	Score       int                          `json:"score"`
	Conflicts   int                          `json:"conflicts"`
	Days        []string                     `json:"days"`
	TimeSlots   []model.TimeSlot             `json:"-"`
	Timetables  []*model.Timetable           `json:"timetables"`
	Unscheduled []model.UnscheduledComponent `json:"unscheduled"`
	SelfStudy   []model.SelfStudyCourse      `json:"selfStudy"`
	LunchBreaks LunchBreaks                  `json:"-"`
	Report      Report                       `json:"report"`
	Attempts    []AttemptScore               `json:"attempts"`

	cfg      *Configuration
	grid     *TimeGrid
	capacity *CapacityResolver
	courses  map[courseKey]*model.Course
	rooms    *RoomAllocator
	faculty  *FacultyCalendar
}

type courseKey struct {
	department string
	semester   int
	code       string
}

// Course looks up an input course by its identity.
func (r *Result) Course(department string, semester int, code string) (*model.Course, bool) {
	c, ok := r.courses[courseKey{department, semester, code}]
	return c, ok
}

// Timetable looks up the grid of one section.
func (r *Result) Timetable(department string, semester int, label string) (*model.Timetable, bool) {
	return lo.Find(r.Timetables, func(t *model.Timetable) bool {
		return t.Section.Department == department && t.Section.Semester == semester && t.Section.Label == label
	})
}

// SelfStudyFor filters the footnote list down to one cohort.
func (r *Result) SelfStudyFor(department string, semester int) []model.SelfStudyCourse {
	return lo.Filter(r.SelfStudy, func(s model.SelfStudyCourse, _ int) bool {
		return s.Department == department && s.Semester == semester
	})
}

type Option func(*Optimizer)

func WithLogger(log *zap.Logger) Option {
	return func(o *Optimizer) {
		if log != nil {
			o.log = log
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(o *Optimizer) {
		if r != nil {
			o.recorder = r
		}
	}
}

// Optimizer runs seeded placement attempts and keeps the best one.
type Optimizer struct {
	cfg      *Configuration
	input    Input
	log      *zap.Logger
	recorder Recorder

	grid      *TimeGrid
	breaks    LunchBreaks
	plans     []SectionPlan
	capacity  *CapacityResolver
	cohorts   []cohort
	selfStudy []model.SelfStudyCourse
	courses   map[courseKey]*model.Course

	// hook runs at the start of every attempt; tests use it to inject failures.
	hook func(index int)
}

// NewOptimizer validates cfg and prepares the run-wide derived data:
// time grid, lunch breaks, sections and capacities.
func NewOptimizer(cfg *Configuration, input Input, opts ...Option) (*Optimizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := &Optimizer{cfg: cfg, input: input, log: zap.NewNop(), recorder: nopRecorder{}}
	for _, opt := range opts {
		opt(o)
	}

	grid, err := NewTimeGrid(cfg.DayStart, cfg.DayEnd, cfg.TimeSlotDuration)
	if err != nil {
		return nil, err
	}
	o.grid = grid

	semesters := lo.Map(input.Courses, func(c *model.Course, _ int) int { return c.Semester })
	o.breaks = PlanLunchBreaks(semesters, cfg.LunchWindowStart, cfg.LunchWindowEnd, cfg.LunchDuration)

	o.plans = PlanSections(input.Courses, cfg.MaxSectionSize)
	o.capacity = NewCapacityResolver(input.Courses, o.plans, cfg.DefaultCapacity)

	o.courses = lo.KeyBy(input.Courses, func(c *model.Course) courseKey {
		return courseKey{c.Department, c.Semester, c.Code}
	})

	byCohort := lo.GroupBy(input.Courses, func(c *model.Course) cohortKey {
		return cohortKey{c.Department, c.Semester}
	})
	for _, plan := range o.plans {
		var courses []*model.Course
		for _, c := range byCohort[cohortKey{plan.Department, plan.Semester}] {
			if IsSelfStudyOnly(c.L, c.T, c.P, c.S) {
				o.selfStudy = append(o.selfStudy, model.SelfStudyCourse{
					Department: c.Department,
					Semester:   c.Semester,
					Code:       c.Code,
					Name:       c.Name,
					Faculty:    c.Faculty,
				})
				continue
			}
			courses = append(courses, c)
		}
		sort.SliceStable(courses, func(i, j int) bool {
			return cfg.PriorityRank(courses[i].Priority) < cfg.PriorityRank(courses[j].Priority)
		})
		o.cohorts = append(o.cohorts, cohort{plan: plan, courses: courses, sections: plan.Sections()})
	}
	return o, nil
}

func (o *Optimizer) LunchBreaks() LunchBreaks    { return o.breaks }
func (o *Optimizer) SectionPlans() []SectionPlan { return o.plans }

type outcome struct {
	score   AttemptScore
	attempt *attempt
	report  Report
}

// Run executes up to MaxAttempts attempts and returns the lowest scoring
// one, ties going to the earliest attempt. It stops as soon as an attempt
// scores 0 or ctx is done. An error is returned only when no attempt
// finished.
func (o *Optimizer) Run(ctx context.Context) (*Result, error) {
	o.log.Info("scheduling started",
		zap.Int("courses", len(o.input.Courses)),
		zap.Int("rooms", len(o.input.Rooms)),
		zap.Int("sections", lo.SumBy(o.plans, func(p SectionPlan) int { return p.Count })),
		zap.Int("workers", o.cfg.Workers()),
		zap.Stringer("config", o.cfg))

	var outcomes []outcome
	if o.cfg.Workers() > 1 {
		outcomes = o.runParallel(ctx)
	} else {
		outcomes = o.runSequential(ctx)
	}

	sort.Slice(outcomes, func(i, j int) bool {
		return outcomes[i].score.Attempt < outcomes[j].score.Attempt
	})
	var best *outcome
	history := make([]AttemptScore, 0, len(outcomes))
	for i := range outcomes {
		history = append(history, outcomes[i].score)
		if outcomes[i].score.Failed {
			continue
		}
		if best == nil || outcomes[i].score.Score < best.score.Score {
			best = &outcomes[i]
		}
	}

	if best == nil {
		err := apperrors.Wrap(ctx.Err(), apperrors.CodeAttempt, fmt.Sprintf("no successful attempt out of %d", len(outcomes)))
		o.log.Error("scheduling failed", zap.Error(err))
		return nil, err
	}

	result := o.result(best, history)
	o.recorder.ObserveResult(result)
	o.log.Info("scheduling finished",
		zap.Int("best_attempt", result.Attempt),
		zap.Int64("seed", result.Seed),
		zap.Int("score", result.Score),
		zap.Int("unscheduled", len(result.Unscheduled)),
		zap.Int("attempts", len(history)))
	return result, nil
}

func (o *Optimizer) runSequential(ctx context.Context) []outcome {
	var outcomes []outcome
	for i := 0; i < o.cfg.MaxAttempts; i++ {
		if ctx.Err() != nil {
			o.log.Warn("scheduling cancelled", zap.Int("completed", len(outcomes)))
			break
		}
		out := o.attempt(i)
		outcomes = append(outcomes, out)
		if !out.score.Failed && out.score.Score == 0 {
			break
		}
	}
	return outcomes
}

// runParallel spreads attempts over a bounded pool. Attempts share no
// mutable state; once any attempt scores 0 no further attempts start.
func (o *Optimizer) runParallel(ctx context.Context) []outcome {
	results := make([]*outcome, o.cfg.MaxAttempts)
	var perfect atomic.Bool

	p := pool.New().WithMaxGoroutines(o.cfg.Workers())
	for i := 0; i < o.cfg.MaxAttempts; i++ {
		if ctx.Err() != nil || perfect.Load() {
			break
		}
		p.Go(func() {
			if ctx.Err() != nil || perfect.Load() {
				return
			}
			out := o.attempt(i)
			results[i] = &out
			if !out.score.Failed && out.score.Score == 0 {
				perfect.Store(true)
			}
		})
	}
	p.Wait()

	var outcomes []outcome
	for _, r := range results {
		if r != nil {
			outcomes = append(outcomes, *r)
		}
	}
	return outcomes
}

// attempt runs one full placement. A panic is logged and turns the attempt
// into a failure instead of aborting the run.
func (o *Optimizer) attempt(index int) (out outcome) {
	started := time.Now()
	seed := o.cfg.BaseSeed + int64(index)
	out.score = AttemptScore{Attempt: index, Seed: seed}

	defer func() {
		if r := recover(); r != nil {
			out = outcome{score: AttemptScore{
				Attempt: index,
				Seed:    seed,
				Score:   FailedScore,
				Failed:  true,
				Error:   fmt.Sprint(r),
			}}
			o.log.Error("attempt failed", zap.Int("attempt", index), zap.Int64("seed", seed), zap.Any("panic", r))
		}
		o.recorder.ObserveAttempt(out.score.Score, out.score.Failed, time.Since(started))
	}()

	a := o.newAttempt(index)
	if o.hook != nil {
		o.hook(index)
	}
	a.run(o.cohorts)

	report := Validate(a.timetables, a.rooms.Rooms(), o.breaks, o.grid)
	out.attempt = a
	out.report = report
	out.score.Conflicts = report.Conflicts
	out.score.Score = a.ledger.Len() + report.Conflicts
	a.log.Debug("attempt scored",
		zap.Int("score", out.score.Score),
		zap.Int("unscheduled", a.ledger.Len()),
		zap.Int("conflicts", report.Conflicts),
		zap.Duration("elapsed", time.Since(started)))
	return out
}

func (o *Optimizer) result(best *outcome, history []AttemptScore) *Result {
	a := best.attempt
	return &Result{
		Attempt:     best.score.Attempt,
		Seed:        best.score.Seed,
		Score:       best.score.Score,
		Conflicts:   best.score.Conflicts,
		Days:        append([]string(nil), o.cfg.Days...),
		TimeSlots:   o.grid.Slots(),
		Timetables:  a.timetables,
		Unscheduled: a.ledger.Items(),
		SelfStudy:   append([]model.SelfStudyCourse(nil), o.selfStudy...),
		LunchBreaks: o.breaks,
		Report:      best.report,
		Attempts:    history,
		cfg:         o.cfg,
		grid:        o.grid,
		capacity:    o.capacity,
		courses:     o.courses,
		rooms:       a.rooms,
		faculty:     a.faculty,
	}
}
