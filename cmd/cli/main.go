package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/internal/config"
	"github.com/rhyrak/go-timetable/internal/csvio"
	"github.com/rhyrak/go-timetable/internal/logger"
	"github.com/rhyrak/go-timetable/internal/report"
	"github.com/rhyrak/go-timetable/internal/scheduler"
)

func main() {
	configPath := flag.String("config", "", "Path to a yaml/json/toml config file")
	courses := flag.String("courses", "", "Path to the courses csv")
	classrooms := flag.String("classrooms", "", "Path to the classrooms csv; built-in rooms are used when missing")
	out := flag.String("out", "", "Output directory")
	attempts := flag.Int("attempts", 0, "Number of scheduling attempts")
	seed := flag.Int64("seed", 0, "Base seed, attempt i uses seed+i")
	parallel := flag.Bool("parallel", false, "Run attempts on a worker pool")
	pdf := flag.Bool("pdf", false, "Also render timetable.pdf")
	delim := flag.String("delim", "", "CSV delimiter")
	suggest := flag.Bool("suggest", false, "Print alternative slots for unscheduled components")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// explicit flags win over config and environment
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "courses":
			cfg.Files.Courses = *courses
		case "classrooms":
			cfg.Files.Classrooms = *classrooms
		case "out":
			cfg.Files.Out = *out
		case "attempts":
			cfg.Scheduling.MaxAttempts = *attempts
		case "seed":
			cfg.Scheduling.BaseSeed = *seed
		case "parallel":
			cfg.Scheduling.Parallel = *parallel
		case "delim":
			cfg.Files.Delimiter = *delim
		}
	})

	l, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer l.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, l, *pdf, *suggest); err != nil {
		l.Fatal("scheduling failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, l *zap.Logger, renderPDF bool, suggest bool) error {
	comma := cfg.Files.Comma()
	courses, err := csvio.LoadCourses(cfg.Files.Courses, comma, cfg.Scheduling.DefaultEnrollment)
	if err != nil {
		if len(courses) == 0 {
			return err
		}
		l.Warn("skipped invalid course rows", zap.Error(err))
	}
	classrooms, err := csvio.LoadClassrooms(cfg.Files.Classrooms, comma, l)
	if err != nil {
		return err
	}

	fmt.Println("Loading...")
	fmt.Printf("%d courses, %d classrooms\n\n", len(courses), len(classrooms))

	optimizer, err := scheduler.NewOptimizer(&cfg.Scheduling, scheduler.Input{Courses: courses, Rooms: classrooms},
		scheduler.WithLogger(l))
	if err != nil {
		return err
	}

	printPlan(optimizer)

	start := time.Now()
	result, err := optimizer.Run(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if err := os.MkdirAll(cfg.Files.Out, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	schedulePath := filepath.Join(cfg.Files.Out, "schedule.csv")
	if err := csvio.ExportSchedule(result, schedulePath); err != nil {
		return err
	}
	if err := csvio.ExportUnscheduled(result.Unscheduled, filepath.Join(cfg.Files.Out, "unscheduled.csv")); err != nil {
		return err
	}
	if err := csvio.ExportSelfStudy(result.SelfStudy, filepath.Join(cfg.Files.Out, "self_study.csv")); err != nil {
		return err
	}
	if renderPDF {
		doc, err := report.Render(result)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(cfg.Files.Out, "timetable.pdf"), doc, 0o644); err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
	}

	csvio.PrintSchedule(os.Stdout, result)
	fmt.Println()
	if result.Score == 0 {
		fmt.Println("Passed all tests")
	} else {
		fmt.Println("Invalid schedule:")
	}
	fmt.Println(result.Report.Message)

	if len(result.Unscheduled) > 0 {
		fmt.Println(scheduler.AnalyzeConflicts(result.Unscheduled))
		if suggest {
			printSuggestions(result, cfg.Scheduling.MaxSuggestions)
		}
	}
	if len(result.SelfStudy) > 0 {
		fmt.Println("Self-study only courses:")
		for _, c := range result.SelfStudy {
			fmt.Printf("  * %s_%d %s %s\n", c.Department, c.Semester, c.Code, c.Name)
		}
		fmt.Println()
	}

	fmt.Printf("Best attempt: %d (seed %d)\n", result.Attempt, result.Seed)
	fmt.Printf("Score: %d\n", result.Score)
	fmt.Printf("Attempts: %d\n", len(result.Attempts))
	fmt.Printf("Timer: %f ms\n", float64(elapsed.Nanoseconds())/1000000.0)
	fmt.Println("Exported output to: " + schedulePath)
	return nil
}

func printPlan(optimizer *scheduler.Optimizer) {
	fmt.Println("Sections:")
	for _, p := range optimizer.SectionPlans() {
		fmt.Printf("  %s_%d: %d students in %d section(s) of %d\n", p.Department, p.Semester, p.Total, p.Count, p.Size)
	}
	breaks := optimizer.LunchBreaks()
	fmt.Println("Lunch breaks:")
	for _, sem := range breaks.Semesters() {
		w, _ := breaks.Window(sem)
		fmt.Printf("  semester %d: %s\n", sem, w)
	}
	fmt.Println()
}

func printSuggestions(result *scheduler.Result, limit int) {
	fmt.Println("Alternative slots:")
	for _, u := range result.Unscheduled {
		fmt.Printf("  %s %s (%s %d %s):\n", u.Code, u.Kind, u.Department, u.Semester, u.Section)
		suggestions := result.SuggestAlternatives(u, limit)
		if len(suggestions) == 0 {
			fmt.Println("    none")
		}
		for _, s := range suggestions {
			fmt.Printf("    %-10s %s-%s  %-8s priority %d\n", s.Day, s.StartTime, s.EndTime, s.Room, s.Priority)
		}
	}
	fmt.Println()
}
