package report

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/rhyrak/go-timetable/internal/scheduler"
	"github.com/rhyrak/go-timetable/pkg/model"
)

const (
	pageWidth   = 297.0
	margin      = 10.0
	dayColumn   = 24.0
	headerRow   = 10.0
	dayRow      = 16.0
	lineHeight  = 3.6
	tableRow    = 6.0
	contentSize = pageWidth - 2*margin
)

type rgb struct{ r, g, b int }

var (
	breakColor  = rgb{220, 220, 220}
	basketColor = rgb{255, 236, 153}
	kindColors  = map[model.ActivityKind]rgb{
		model.Lecture:   {189, 215, 238},
		model.Tutorial:  {198, 239, 206},
		model.Lab:       {252, 213, 180},
		model.SelfStudy: {225, 210, 240},
	}
)

// Render draws one landscape page per section timetable, followed by the
// section's self-study footnotes, its unscheduled components and a legend.
func Render(result *scheduler.Result) ([]byte, error) {
	if result == nil {
		return nil, errors.New("render pdf: no result")
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if len(result.Timetables) == 0 {
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, "No sections to schedule", "", 1, "C", false, 0, "")
	}
	for _, tt := range result.Timetables {
		pdf.AddPage()
		drawTitle(pdf, tr, result, tt)
		drawGrid(pdf, tr, result, tt)
		drawSelfStudy(pdf, tr, result.SelfStudyFor(tt.Section.Department, tt.Section.Semester))
		drawUnscheduled(pdf, tr, model.UnscheduledFor(result.Unscheduled, tt.Section))
		drawLegend(pdf)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func drawTitle(pdf *gofpdf.Fpdf, tr func(string) string, result *scheduler.Result, tt *model.Timetable) {
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, tr(tt.Section.Title()), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 8)
	subtitle := fmt.Sprintf("Department %s, semester %d, section %s (%d students)",
		tt.Section.Department, tt.Section.Semester, tt.Section.Label, tt.Section.Size)
	if w, ok := result.LunchBreaks.Window(tt.Section.Semester); ok {
		subtitle += ", lunch " + w.String()
	}
	pdf.CellFormat(0, 5, tr(subtitle), "", 1, "C", false, 0, "")
	pdf.Ln(2)
}

func drawGrid(pdf *gofpdf.Fpdf, tr func(string) string, result *scheduler.Result, tt *model.Timetable) {
	slots := len(result.TimeSlots)
	if slots == 0 {
		return
	}
	slotWidth := (contentSize - dayColumn) / float64(slots)

	pdf.SetFont("Arial", "B", 6)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(dayColumn, headerRow, "Day", "1", 0, "C", true, 0, "")
	x, y := pdf.GetXY()
	for i, s := range result.TimeSlots {
		box(pdf, x+float64(i)*slotWidth, y, slotWidth, headerRow, []string{s.Start.String(), s.End.String()}, nil)
	}
	pdf.SetXY(margin, y+headerRow)

	for day, cells := range tt.Grid {
		pdf.SetFont("Arial", "B", 8)
		pdf.CellFormat(dayColumn, dayRow, tr(result.Days[day]), "1", 0, "C", false, 0, "")
		x, y := pdf.GetXY()
		pdf.SetFont("Arial", "", 5)
		for slot := 0; slot < len(cells); slot++ {
			cell := cells[slot]
			cx := x + float64(slot)*slotWidth
			switch {
			case cell.Lead():
				color := kindColors[cell.Kind]
				if cell.Group != "" {
					color = basketColor
				}
				span := max(cell.Span, 1)
				lines := []string{tr(cell.Code + " " + cell.Kind.String()), tr(cell.Room), tr(cell.Faculty)}
				box(pdf, cx, y, slotWidth*float64(span), dayRow, lines, &color)
				slot += span - 1
			case cell.Occupied():
				// continuation of an activity drawn from its lead cell
			case result.LunchBreaks.IsBreakTime(tt.Section.Semester, result.TimeSlots[slot]):
				box(pdf, cx, y, slotWidth, dayRow, []string{"BREAK"}, &breakColor)
			default:
				box(pdf, cx, y, slotWidth, dayRow, nil, nil)
			}
		}
		pdf.SetXY(margin, y+dayRow)
	}
	pdf.Ln(3)
}

// box draws a bordered rectangle with centred lines clipped to its width.
func box(pdf *gofpdf.Fpdf, x, y, w, h float64, lines []string, fill *rgb) {
	style := "D"
	if fill != nil {
		pdf.SetFillColor(fill.r, fill.g, fill.b)
		style = "FD"
	}
	pdf.Rect(x, y, w, h, style)
	top := y + (h-float64(len(lines))*lineHeight)/2
	for i, line := range lines {
		pdf.SetXY(x, top+float64(i)*lineHeight)
		pdf.CellFormat(w, lineHeight, fit(pdf, line, w-1), "", 0, "C", false, 0, "")
	}
}

func fit(pdf *gofpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"..") > width {
		s = s[:len(s)-1]
	}
	return s + ".."
}

func drawSelfStudy(pdf *gofpdf.Fpdf, tr func(string) string, courses []model.SelfStudyCourse) {
	if len(courses) == 0 {
		return
	}
	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(0, tableRow, "Self-study only courses", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 8)
	for _, c := range courses {
		pdf.CellFormat(0, 5, tr(fmt.Sprintf("* %s %s (%s)", c.Code, c.Name, c.Faculty)), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)
}

func drawUnscheduled(pdf *gofpdf.Fpdf, tr func(string) string, items []model.UnscheduledComponent) {
	if len(items) == 0 {
		return
	}
	headers := []string{"Course", "Name", "Faculty", "Component", "Sessions", "Reason"}
	widths := []float64{25, 60, 50, 22, 18, contentSize - 175}

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(0, tableRow, "Unscheduled components", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 8)
	pdf.SetFillColor(240, 240, 240)
	for i, h := range headers {
		pdf.CellFormat(widths[i], tableRow, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 7)
	for _, u := range items {
		row := []string{u.Code, u.Name, u.Faculty, u.Kind.String(), fmt.Sprint(u.Sessions), u.Reason}
		for i, v := range row {
			pdf.CellFormat(widths[i], tableRow, fit(pdf, tr(v), widths[i]-1), "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(2)
}

func drawLegend(pdf *gofpdf.Fpdf) {
	entries := []struct {
		label string
		color rgb
	}{
		{"Lecture (LEC)", kindColors[model.Lecture]},
		{"Tutorial (TUT)", kindColors[model.Tutorial]},
		{"Lab (LAB)", kindColors[model.Lab]},
		{"Self-study (SS)", kindColors[model.SelfStudy]},
		{"Elective basket", basketColor},
		{"Lunch break", breakColor},
	}
	pdf.SetFont("Arial", "", 7)
	for _, e := range entries {
		pdf.SetFillColor(e.color.r, e.color.g, e.color.b)
		pdf.CellFormat(5, 5, "", "1", 0, "", true, 0, "")
		pdf.CellFormat(30, 5, " "+e.label, "", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}
