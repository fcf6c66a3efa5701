package vaccinations

import (
	"time"

	"child-care-tracker/internal/platform/i18n"
)

const dateLayout = "2006-01-02"

// ScheduleResponse es la vista serializada (API y `schedule --format json`).
type ScheduleResponse struct {
	ChildID            string          `json:"child_id"`
	ChildName          string          `json:"child_name,omitempty"`
	BirthDate          string          `json:"birth_date"`
	BirthDateEstimated bool            `json:"birth_date_estimated"`
	Progress           int             `json:"progress"`
	ProgressLabel      string          `json:"progress_label"`
	CurrentDateKey     *string         `json:"current_relevant_date_key"`
	NextDateKey        *string         `json:"next_relevant_date_key"`
	Groups             []GroupResponse `json:"groups"`
}

type GroupResponse struct {
	DateKey     string          `json:"date_key"`
	Date        string          `json:"date"`
	Status      Status          `json:"status" enums:"completed,overdue,due_this_month,upcoming"`
	StatusLabel string          `json:"status_label"`
	Expanded    bool            `json:"expanded"`
	Entries     []EntryResponse `json:"entries"`
}

type EntryResponse struct {
	ID              string     `json:"id"`
	VaccineName     string     `json:"vaccine_name"`
	DoseLabel       string     `json:"dose_label"`
	Notes           string     `json:"notes,omitempty"`
	AgeAtDoseMonths int        `json:"age_at_dose_months"`
	AgeAtDoseDays   int        `json:"age_at_dose_days"`
	Completed       bool       `json:"completed"`
	CompletedDate   *time.Time `json:"completed_date,omitempty"`
	CompletionNotes string     `json:"completion_notes,omitempty"`
}

// NewScheduleResponse localiza estados y dosis con tr (puede ser nil: quedan las keys).
func NewScheduleResponse(s ChildSchedule, tr *i18n.Translator, lang string) ScheduleResponse {
	v := s.View
	total := len(s.Entries)
	done := CompletedCount(s.Entries, s.Completions)

	out := ScheduleResponse{
		ChildID:            s.Child.ID,
		ChildName:          s.Child.Name,
		BirthDate:          s.BirthDate.Format(dateLayout),
		BirthDateEstimated: s.BirthDateEstimated,
		Progress:           v.Progress,
		ProgressLabel: tr.T(lang, "progress_summary", map[string]any{
			"Completed": done,
			"Total":     total,
			"Percent":   v.Progress,
		}),
		CurrentDateKey: v.CurrentRelevantDateKey,
		NextDateKey:    v.NextRelevantDateKey,
		Groups:         make([]GroupResponse, 0, len(v.Groups)),
	}

	for _, g := range v.Groups {
		gr := GroupResponse{
			DateKey:     g.DateKey,
			Date:        g.Date.Format(dateLayout),
			Status:      g.Status,
			StatusLabel: tr.T(lang, StatusMessageID(g.Status), nil),
			Expanded:    !v.Collapsed[g.DateKey],
			Entries:     make([]EntryResponse, 0, len(g.Entries)),
		}
		for _, e := range g.Entries {
			er := EntryResponse{
				ID:              e.ID,
				VaccineName:     e.VaccineName,
				DoseLabel:       doseLabel(tr, lang, e),
				Notes:           e.Notes,
				AgeAtDoseMonths: e.AgeAtDoseMonths,
				AgeAtDoseDays:   e.AgeAtDoseDays,
			}
			if rec, ok := s.Completions[e.ID]; ok {
				d := rec.CompletedDate
				er.Completed = true
				er.CompletedDate = &d
				er.CompletionNotes = rec.Notes
			}
			gr.Entries = append(gr.Entries, er)
		}
		out.Groups = append(out.Groups, gr)
	}
	return out
}

// StatusMessageID es la key i18n del estado.
func StatusMessageID(s Status) string {
	return "status_" + string(s)
}

func doseLabel(tr *i18n.Translator, lang string, e Entry) string {
	if e.DoseKey == "" {
		return e.DoseLabel
	}
	if l := tr.T(lang, e.DoseKey, nil); l != e.DoseKey {
		return l
	}
	return e.DoseLabel
}
