package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gocarina/gocsv"
	"go.uber.org/zap"

	apperrors "github.com/rhyrak/go-timetable/pkg/errors"
	"github.com/rhyrak/go-timetable/pkg/model"
)

// Placeholders for blank text cells.
const (
	UnknownDepartment = "UNKNOWN"
	UnknownCode       = "UNKNOWN"
	UnknownName       = "Unknown Course"
	UnknownFaculty    = "Unknown Faculty"
)

var validate = validator.New()

// newReader builds a per-call reader; gocsv.SetCSVReader would change the
// delimiter for every concurrent caller.
func newReader(in io.Reader, delim rune) gocsv.CSVReader {
	r := csv.NewReader(in)
	r.Comma = delim
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	return r
}

// LoadCourses reads and parses given csv file for course data.
func LoadCourses(path string, delim rune, defaultEnrollment int) ([]*model.Course, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Input(err, "failed to open %s", path)
	}
	defer f.Close()
	return ReadCourses(f, delim, defaultEnrollment)
}

// ReadCourses decodes course rows. Blank or malformed numbers become 0,
// a missing enrollment becomes defaultEnrollment and blank text cells get
// placeholder values. Rows without code and name are skipped.
func ReadCourses(in io.Reader, delim rune, defaultEnrollment int) ([]*model.Course, error) {
	var rows []*model.CourseCSV
	if err := gocsv.UnmarshalCSV(newReader(in, delim), &rows); err != nil {
		return nil, apperrors.Input(err, "failed to parse course data")
	}

	courses := make([]*model.Course, 0, len(rows))
	var problems []string
	for i, row := range rows {
		if strings.TrimSpace(row.Code) == "" && strings.TrimSpace(row.Name) == "" {
			continue
		}
		c := toCourse(row, defaultEnrollment)
		if err := validate.Struct(c); err != nil {
			problems = append(problems, fmt.Sprintf("row %d (%s): %v", i+2, c.Code, err))
			continue
		}
		courses = append(courses, c)
	}
	if len(problems) > 0 {
		return courses, apperrors.New(apperrors.CodeInput, "invalid course rows:\n"+strings.Join(problems, "\n"))
	}
	return courses, nil
}

func toCourse(row *model.CourseCSV, defaultEnrollment int) *model.Course {
	c := &model.Course{
		Department: text(row.Department, UnknownDepartment),
		Semester:   int(number(row.SemesterSTR)),
		Code:       text(row.Code, UnknownCode),
		Name:       text(row.Name, UnknownName),
		Faculty:    text(row.Faculty, UnknownFaculty),
		L:          number(row.LSTR),
		T:          int(number(row.TSTR)),
		P:          int(number(row.PSTR)),
		S:          int(number(row.SSTR)),
		Enrollment: defaultEnrollment,
	}
	if n, err := strconv.ParseFloat(strings.TrimSpace(row.EnrollmentSTR), 64); err == nil && n >= 0 {
		c.Enrollment = int(n)
		c.EnrollmentKnown = true
	}
	c.Classify()
	return c
}

func text(s string, fallback string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return fallback
	}
	return s
}

// number parses numeric cells leniently; anything unparsable is 0.
func number(s string) float64 {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(n) {
		return 0
	}
	return n
}

// DefaultClassrooms is the room set used when no classroom file exists.
func DefaultClassrooms() []*model.Classroom {
	return []*model.Classroom{
		model.NewClassroom("R1", 70, "LECTURE_ROOM", "R101"),
		model.NewClassroom("R2", 70, "LECTURE_ROOM", "R102"),
		model.NewClassroom("L1", 35, "COMPUTER_LAB", "L101"),
		model.NewClassroom("S1", 120, "SEATER_120", "S101"),
	}
}

// LoadClassrooms reads the classroom file. A missing file falls back to
// DefaultClassrooms with a warning.
func LoadClassrooms(path string, delim rune, log *zap.Logger) ([]*model.Classroom, error) {
	if log == nil {
		log = zap.NewNop()
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn("classrooms file not found, using default rooms", zap.String("path", path))
		return DefaultClassrooms(), nil
	}
	if err != nil {
		return nil, apperrors.Input(err, "failed to open %s", path)
	}
	defer f.Close()
	return ReadClassrooms(f, delim)
}

func ReadClassrooms(in io.Reader, delim rune) ([]*model.Classroom, error) {
	var rooms []*model.Classroom
	if err := gocsv.UnmarshalCSV(newReader(in, delim), &rooms); err != nil {
		return nil, apperrors.Input(err, "failed to parse classroom data")
	}
	seen := make(map[string]bool, len(rooms))
	for _, r := range rooms {
		r.ID = strings.TrimSpace(r.ID)
		r.Type = model.ParseRoomKind(r.TypeSTR)
		if err := validate.Struct(r); err != nil {
			return nil, apperrors.Input(err, "invalid classroom %q", r.ID)
		}
		if seen[r.ID] {
			return nil, apperrors.New(apperrors.CodeInput, fmt.Sprintf("duplicate classroom id %q", r.ID))
		}
		seen[r.ID] = true
	}
	return rooms, nil
}
