package vaccinations

import (
	"fmt"
	"io"
	"strings"
	"time"

	"child-care-tracker/internal/platform/i18n"

	"github.com/emersion/go-ical"
	"github.com/xuri/excelize/v2"
)

const (
	icalProdID = "-//child-care-tracker//vaccinations//EN"
	icalDomain = "child-care-tracker"
)

// ExportFormat soportados por Export.
type ExportFormat string

const (
	FormatICS  ExportFormat = "ics"
	FormatXLSX ExportFormat = "xlsx"
)

func ParseExportFormat(raw string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(raw))); f {
	case "", FormatICS:
		return FormatICS, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: unsupported export format %q", ErrInvalidInput, raw)
	}
}

// ContentType y extensión de archivo por formato.
func (f ExportFormat) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/calendar; charset=utf-8"
}

func Export(w io.Writer, f ExportFormat, s ChildSchedule, tr *i18n.Translator, lang string, stamp time.Time) error {
	switch f {
	case FormatXLSX:
		return ExportXLSX(w, s, tr, lang)
	default:
		return ExportICS(w, s, tr, lang, stamp)
	}
}

// ExportICS escribe un VCALENDAR con un evento de día completo por dosis.
// UID = <entryID>@<childID>.<dominio>: estable entre exportaciones.
func ExportICS(w io.Writer, s ChildSchedule, tr *i18n.Translator, lang string, stamp time.Time) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, icalProdID)
	cal.Props.SetText(ical.PropCalendarScale, "GREGORIAN")
	cal.Props.SetText("X-WR-CALNAME", tr.T(lang, "export_calendar_name", map[string]any{"Name": s.Child.Name}))

	dtStamp := ical.NewProp(ical.PropDateTimeStamp)
	dtStamp.SetDateTime(stamp.UTC())

	for _, e := range s.Entries {
		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, fmt.Sprintf("%s@%s.%s", e.ID, s.Child.ID, icalDomain))
		event.Props.Set(dtStamp)

		start := ical.NewProp(ical.PropDateTimeStart)
		start.SetDate(civilDay(e.ScheduledDate))
		event.Props.Set(start)

		summary := fmt.Sprintf("%s (%s)", e.VaccineName, doseLabel(tr, lang, e))
		if rec, ok := s.Completions[e.ID]; ok {
			summary = "✓ " + summary
			event.Props.SetText(ical.PropStatus, "CONFIRMED")
			if rec.Notes != "" {
				event.Props.SetText(ical.PropComment, rec.Notes)
			}
		}
		event.Props.SetText(ical.PropSummary, summary)
		if e.Notes != "" {
			event.Props.SetText(ical.PropDescription, e.Notes)
		}

		cal.Children = append(cal.Children, event.Component)
	}

	if len(cal.Children) == 0 {
		// go-ical rechaza calendarios sin componentes
		return fmt.Errorf("%w: empty schedule", ErrInvalidInput)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encode ical: %w", err)
	}
	return nil
}

var xlsxHeaders = []string{"Date", "Vaccine", "Dose", "Age (months)", "Status", "Completed on", "Notes"}

// ExportXLSX escribe una hoja con una fila por dosis, en orden cronológico.
func ExportXLSX(w io.Writer, s ChildSchedule, tr *i18n.Translator, lang string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(tr.T(lang, "export_sheet_title", nil))
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	for col, h := range xlsxHeaders {
		if err := setCell(f, sheet, col+1, 1, h); err != nil {
			return err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(xlsxHeaders), 1)
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}

	statusByEntry := map[string]Status{}
	for _, g := range s.View.Groups {
		for _, e := range g.Entries {
			statusByEntry[e.ID] = g.Status
		}
	}

	for i, e := range s.Entries {
		row := i + 2
		completedOn := ""
		if rec, ok := s.Completions[e.ID]; ok {
			completedOn = rec.CompletedDate.Format(dateLayout)
		}
		values := []any{
			e.ScheduledDate.Format(dateLayout),
			e.VaccineName,
			doseLabel(tr, lang, e),
			e.AgeAtDoseMonths,
			tr.T(lang, StatusMessageID(statusByEntry[e.ID]), nil),
			completedOn,
			e.Notes,
		}
		for col, v := range values {
			if err := setCell(f, sheet, col+1, row, v); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 14); err != nil {
		return fmt.Errorf("column width: %w", err)
	}
	if err := f.SetColWidth(sheet, "B", "B", 40); err != nil {
		return fmt.Errorf("column width: %w", err)
	}
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetCellValue(sheet, cell, v); err != nil {
		return fmt.Errorf("set cell %s: %w", cell, err)
	}
	return nil
}

// sheetName: Excel limita a 31 caracteres y prohíbe algunos símbolos.
func sheetName(raw string) string {
	raw = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return -1
		}
		return r
	}, strings.TrimSpace(raw))
	if raw == "" {
		return "Vaccinations"
	}
	if r := []rune(raw); len(r) > 31 {
		raw = string(r[:31])
	}
	return raw
}
