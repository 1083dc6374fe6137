package csvio

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/rhyrak/go-timetable/internal/scheduler"
	"github.com/rhyrak/go-timetable/pkg/model"
)

// ScheduleRows flattens every placement of the result, ordered by section,
// day and start slot.
func ScheduleRows(result *scheduler.Result) []*model.ScheduleCSVRow {
	var rows []*model.ScheduleCSVRow
	for _, tt := range result.Timetables {
		placements := append([]model.Placement(nil), tt.Placements...)
		sort.SliceStable(placements, func(i, j int) bool {
			if placements[i].Day != placements[j].Day {
				return placements[i].Day < placements[j].Day
			}
			return placements[i].Start < placements[j].Start
		})
		for _, p := range placements {
			rows = append(rows, &model.ScheduleCSVRow{
				Section:    tt.Section.Title(),
				Department: tt.Section.Department,
				Semester:   tt.Section.Semester,
				Day:        result.Days[p.Day],
				Start:      result.TimeSlots[p.Start].Start.String(),
				End:        result.TimeSlots[p.Start+p.Duration-1].End.String(),
				Kind:       p.Kind.String(),
				CourseCode: p.Code,
				CourseName: p.Name,
				Lecturer:   p.Faculty,
				Classroom:  p.Room,
			})
		}
	}
	return rows
}

// ExportSchedule formats the schedule data into ScheduleCSVRow structs and
// writes it to the CSV file specified by the given path.
func ExportSchedule(result *scheduler.Result, path string) error {
	rows := ScheduleRows(result)
	return writeFile(path, &rows)
}

// ExportScheduleString is ExportSchedule into a string.
func ExportScheduleString(result *scheduler.Result) (string, error) {
	rows := ScheduleRows(result)
	return gocsv.MarshalString(&rows)
}

func ExportUnscheduled(items []model.UnscheduledComponent, path string) error {
	return writeFile(path, &items)
}

func ExportSelfStudy(items []model.SelfStudyCourse, path string) error {
	return writeFile(path, &items)
}

func writeFile(path string, rows any) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	return writeRows(out, path, rows)
}

// writeRows marshals rows into out and closes it. A failed close means the
// file may be incomplete, so it is reported like a failed write.
func writeRows(out io.WriteCloser, path string, rows any) error {
	if err := gocsv.Marshal(rows, out); err != nil {
		_ = out.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// PrintSchedule prints the weekly schedule grouped by section.
func PrintSchedule(w io.Writer, result *scheduler.Result) {
	section := ""
	rows := ScheduleRows(result)
	for _, r := range rows {
		if r.Section != section {
			section = r.Section
			pad := max(0, 32-len(section))
			fmt.Fprintf(w, "\n%s %s %s\n", strings.Repeat("-", pad/2), section, strings.Repeat("-", pad-pad/2))
		}
		fmt.Fprintf(w, "%-10s %s-%s  %-4s %-10s %-8s %s\n", r.Day, r.Start, r.End, r.Kind, r.CourseCode, r.Classroom, r.Lecturer)
	}
	fmt.Fprintf(w, "Printed rows: %d\n", len(rows))
}
