package csvio

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhyrak/go-timetable/internal/scheduler"
	"github.com/rhyrak/go-timetable/pkg/model"
)

func runSample(t *testing.T) *scheduler.Result {
	t.Helper()
	courses, err := ReadCourses(strings.NewReader(coursesCSV), ';', 60)
	require.NoError(t, err)
	o, err := scheduler.NewOptimizer(scheduler.NewDefaultConfiguration(), scheduler.Input{
		Courses: courses,
		Rooms:   append(DefaultClassrooms(), model.NewClassroom("H1", 60, "HARDWARE_LAB", "H101")),
	})
	require.NoError(t, err)
	result, err := o.Run(context.Background())
	require.NoError(t, err)
	return result
}

func TestExportSchedule(t *testing.T) {
	result := runSample(t)
	path := filepath.Join(t.TempDir(), "schedule.csv")

	require.NoError(t, ExportSchedule(result, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	var rows []*model.ScheduleCSVRow
	require.NoError(t, gocsv.UnmarshalFile(f, &rows))

	placements := 0
	for _, tt := range result.Timetables {
		placements += len(tt.Placements)
	}
	assert.Len(t, rows, placements)
	for _, r := range rows {
		assert.NotEmpty(t, r.Day)
		assert.Less(t, r.Start, r.End)
		assert.Contains(t, []string{"LEC", "TUT", "LAB", "SS"}, r.Kind)
	}
}

func TestExportScheduleString(t *testing.T) {
	result := runSample(t)

	out, err := ExportScheduleString(result)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "section,department,semester,day,start,end,kind,course_code,course_name,faculty,classroom"))
}

func TestExportLedgerAndFootnotes(t *testing.T) {
	dir := t.TempDir()
	items := []model.UnscheduledComponent{{Department: "CSE", Semester: 3, Code: "CS301", Kind: model.Lab, Sessions: 1, Section: "A", Reason: model.ReasonNoSlot}}
	footnotes := []model.SelfStudyCourse{{Department: "CSE", Semester: 3, Code: "HS301", Name: "Reading", Faculty: "Dr. Noam"}}

	require.NoError(t, ExportUnscheduled(items, filepath.Join(dir, "unscheduled.csv")))
	require.NoError(t, ExportSelfStudy(footnotes, filepath.Join(dir, "self_study.csv")))

	ledger, err := os.ReadFile(filepath.Join(dir, "unscheduled.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(ledger), "CSE,3,CS301,,,LAB,1,A,no suitable slot or room found")
	notes, err := os.ReadFile(filepath.Join(dir, "self_study.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(notes), "HS301,Reading,Dr. Noam")
}

func TestPrintSchedule(t *testing.T) {
	result := runSample(t)
	var buf bytes.Buffer

	PrintSchedule(&buf, result)

	assert.Contains(t, buf.String(), "CSE_3")
	assert.Contains(t, buf.String(), "Printed rows:")
}

type failingCloser struct {
	bytes.Buffer
	closed bool
}

func (f *failingCloser) Close() error {
	f.closed = true
	return errors.New("disk full")
}

func TestWriteRowsReportsCloseError(t *testing.T) {
	out := &failingCloser{}
	rows := []*model.ScheduleCSVRow{{Day: "Monday", Start: "09:00", End: "10:30", CourseCode: "CS301"}}

	err := writeRows(out, "schedule.csv", &rows)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "close schedule.csv")
	assert.ErrorContains(t, err, "disk full")
	assert.True(t, out.closed)
	assert.Contains(t, out.String(), "CS301")
}

func TestExportScheduleMissingDirectory(t *testing.T) {
	result := runSample(t)

	err := ExportSchedule(result, filepath.Join(t.TempDir(), "absent", "schedule.csv"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "create")
}
