package vaccinations

import (
	"sort"
	"time"

	"child-care-tracker/internal/platform/logger"
)

// Milestones en meses desde el nacimiento.
var Milestones = []int{0, 1, 2, 4, 6, 7, 12}

const (
	vaxHepB      = "Hepatitis B (HepB)"
	vaxDTaP      = "DTaP (Diphtheria, Tetanus, Pertussis)"
	vaxHib       = "Hib (Haemophilus influenzae type b)"
	vaxIPV       = "IPV (Polio)"
	vaxPCV13     = "PCV13 (Pneumococcal)"
	vaxRV        = "Rotavirus (RV)"
	vaxFlu       = "Influenza (Flu)"
	vaxMMR       = "MMR (Measles, Mumps, Rubella)"
	vaxVaricella = "Varicella (Chickenpox)"
	vaxHepA      = "Hepatitis A (HepA)"
)

type dose struct {
	ID      string
	Vaccine string
	Label   string
	Key     string
	Notes   string
	Months  int
	Days    int
}

var (
	doseBirth = struct{ label, key string }{"Birth dose", "dose_birth"}
	dose1     = struct{ label, key string }{"1st dose", "dose_1"}
	dose2     = struct{ label, key string }{"2nd dose", "dose_2"}
	dose3     = struct{ label, key string }{"3rd dose", "dose_3"}
)

// schedule es la tabla fija de dosis. Los IDs son estables: las completions se indexan por ellos.
var schedule = []dose{
	{ID: "hepb-1", Vaccine: vaxHepB, Label: doseBirth.label, Key: doseBirth.key, Months: 0, Notes: "Given within 24 hours of birth."},

	{ID: "hepb-2", Vaccine: vaxHepB, Label: dose2.label, Key: dose2.key, Months: 1, Notes: "Between 1 and 2 months of age."},

	{ID: "dtap-1", Vaccine: vaxDTaP, Label: dose1.label, Key: dose1.key, Months: 2},
	{ID: "hib-1", Vaccine: vaxHib, Label: dose1.label, Key: dose1.key, Months: 2},
	{ID: "ipv-1", Vaccine: vaxIPV, Label: dose1.label, Key: dose1.key, Months: 2},
	{ID: "pcv13-1", Vaccine: vaxPCV13, Label: dose1.label, Key: dose1.key, Months: 2},
	{ID: "rv-1", Vaccine: vaxRV, Label: dose1.label, Key: dose1.key, Months: 2, Notes: "Oral vaccine. First dose no later than 15 weeks of age."},

	{ID: "dtap-2", Vaccine: vaxDTaP, Label: dose2.label, Key: dose2.key, Months: 4},
	{ID: "hib-2", Vaccine: vaxHib, Label: dose2.label, Key: dose2.key, Months: 4},
	{ID: "ipv-2", Vaccine: vaxIPV, Label: dose2.label, Key: dose2.key, Months: 4},
	{ID: "pcv13-2", Vaccine: vaxPCV13, Label: dose2.label, Key: dose2.key, Months: 4},
	{ID: "rv-2", Vaccine: vaxRV, Label: dose2.label, Key: dose2.key, Months: 4},

	{ID: "dtap-3", Vaccine: vaxDTaP, Label: dose3.label, Key: dose3.key, Months: 6},
	{ID: "hib-3", Vaccine: vaxHib, Label: dose3.label, Key: dose3.key, Months: 6, Notes: "Depending on the brand, this dose may not be needed."},
	{ID: "ipv-3", Vaccine: vaxIPV, Label: dose3.label, Key: dose3.key, Months: 6, Notes: "Can be given between 6 and 18 months."},
	{ID: "pcv13-3", Vaccine: vaxPCV13, Label: dose3.label, Key: dose3.key, Months: 6},
	{ID: "rv-3", Vaccine: vaxRV, Label: dose3.label, Key: dose3.key, Months: 6, Notes: "Depending on the brand, this dose may not be needed."},
	{ID: "hepb-3", Vaccine: vaxHepB, Label: dose3.label, Key: dose3.key, Months: 6, Notes: "Can be given between 6 and 18 months."},
	{ID: "flu-1", Vaccine: vaxFlu, Label: dose1.label, Key: dose1.key, Months: 6, Notes: "Yearly, during flu season."},

	{ID: "flu-2", Vaccine: vaxFlu, Label: dose2.label, Key: dose2.key, Months: 7, Notes: "At least 4 weeks after the first flu dose, first season only."},

	{ID: "mmr-1", Vaccine: vaxMMR, Label: dose1.label, Key: dose1.key, Months: 12},
	{ID: "varicella-1", Vaccine: vaxVaricella, Label: dose1.label, Key: dose1.key, Months: 12},
	{ID: "hepa-1", Vaccine: vaxHepA, Label: dose1.label, Key: dose1.key, Months: 12, Notes: "Second dose 6 to 18 months later."},
}

// ScheduleSize es la cantidad de dosis que genera GenerateSchedule para una fecha válida.
func ScheduleSize() int {
	return len(schedule)
}

// GenerateSchedule arma el calendario completo para birth, ordenado por fecha (sort estable).
// Fecha inválida (zero) => slice vacío y warn en log. Función pura de birth.
func GenerateSchedule(birth time.Time, log logger.Logger) []Entry {
	if birth.IsZero() {
		if log != nil {
			log.Warn("invalid birth date, empty vaccination schedule", map[string]any{
				"birth_date": birth.Format(time.RFC3339),
			})
		}
		return []Entry{}
	}

	base := civilDay(birth)

	out := make([]Entry, 0, len(schedule))
	for _, d := range schedule {
		// AddDate normaliza fin de mes igual que un incremento de mes calendario (31 ene + 1 mes => 3 mar).
		at := base.AddDate(0, d.Months, d.Days)
		out = append(out, Entry{
			ID:              d.ID,
			ScheduledDate:   at,
			VaccineName:     d.Vaccine,
			DoseLabel:       d.Label,
			DoseKey:         d.Key,
			Notes:           d.Notes,
			AgeAtDoseMonths: d.Months,
			AgeAtDoseDays:   daysBetween(base, at),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ScheduledDate.Before(out[j].ScheduledDate)
	})

	return out
}

// civilDay descarta hora y zona: fecha calendario en UTC medianoche.
func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
