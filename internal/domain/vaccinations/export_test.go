package vaccinations

import (
	"bytes"
	"testing"
	"time"

	"child-care-tracker/internal/domain/children"
	"child-care-tracker/internal/platform/i18n"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func exportFixture(t *testing.T) (ChildSchedule, *i18n.Translator) {
	t.Helper()
	bd := date(2024, 1, 1)
	now := date(2024, 3, 1)
	c := children.Child{ID: "child-1", Name: "Mia", BirthDate: &bd}
	sched, _ := BuildSchedule(c, []CompletionRecord{
		{ChildID: "child-1", EntryID: "hepb-1", CompletedDate: date(2024, 1, 1), Notes: "hospital"},
	}, now, nil)

	tr, err := i18n.New("en")
	require.NoError(t, err)
	return sched, tr
}

func TestParseExportFormat(t *testing.T) {
	f, err := ParseExportFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatICS, f)

	f, err = ParseExportFormat(" XLSX ")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	_, err = ParseExportFormat("pdf")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExportICS(t *testing.T) {
	sched, tr := exportFixture(t)

	var buf bytes.Buffer
	require.NoError(t, ExportICS(&buf, sched, tr, "en", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)))

	cal, err := ical.NewDecoder(&buf).Decode()
	require.NoError(t, err)

	events := cal.Events()
	require.Len(t, events, ScheduleSize())

	first := events[0]
	uid, err := first.Props.Text(ical.PropUID)
	require.NoError(t, err)
	assert.Equal(t, "hepb-1@child-1.child-care-tracker", uid)

	start, err := first.DateTimeStart(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, date(2024, 1, 1), start)

	summary, err := first.Props.Text(ical.PropSummary)
	require.NoError(t, err)
	assert.Contains(t, summary, "Hepatitis B")
	assert.Contains(t, summary, "✓")

	name, err := cal.Props.Text("X-WR-CALNAME")
	require.NoError(t, err)
	assert.Contains(t, name, "Mia")
}

func TestExportICS_EmptyScheduleFails(t *testing.T) {
	var buf bytes.Buffer
	err := ExportICS(&buf, ChildSchedule{}, nil, "en", time.Now())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExportXLSX(t *testing.T) {
	sched, tr := exportFixture(t)

	var buf bytes.Buffer
	require.NoError(t, ExportXLSX(&buf, sched, tr, "es"))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	sheet := f.GetSheetName(0)
	assert.Equal(t, sheetName(tr.T("es", "export_sheet_title", nil)), sheet)

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, ScheduleSize()+1)

	assert.Equal(t, xlsxHeaders, rows[0])
	assert.Equal(t, "2024-01-01", rows[1][0])
	assert.Equal(t, tr.T("es", "status_completed", nil), rows[1][4])
	assert.Equal(t, "2024-01-01", rows[1][5])
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Vaccinations", sheetName("  "))
	assert.Equal(t, "ab", sheetName("a/b"))
	assert.Len(t, []rune(sheetName("an extremely long vaccination sheet title")), 31)
}
