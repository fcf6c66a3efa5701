package vaccinations

import "time"

// DateKeyLayout es el formato del key de agrupación (también se muestra en la UI).
const DateKeyLayout = "Jan 2, 2006"

// Entry es una dosis del calendario generado. Inmutable: el calendario se regenera completo
// cuando cambia el niño o su edad.
type Entry struct {
	ID            string // estable por offset, p.ej. "dtap-2"
	ScheduledDate time.Time

	VaccineName string
	DoseLabel   string
	DoseKey     string // key i18n del DoseLabel
	Notes       string

	AgeAtDoseMonths int
	AgeAtDoseDays   int
}

// CompletionRecord marca una dosis como aplicada. Se indexa por Entry.ID.
type CompletionRecord struct {
	ChildID       string
	EntryID       string
	CompletedDate time.Time
	Notes         string
}

type Status string

const (
	StatusCompleted    Status = "completed"
	StatusOverdue      Status = "overdue"
	StatusDueThisMonth Status = "due_this_month"
	StatusUpcoming     Status = "upcoming"
)

// DateGroup agrupa las dosis con la misma fecha. Derivado, no se persiste.
type DateGroup struct {
	DateKey string
	Date    time.Time
	Entries []Entry
	Status  Status
}

// View es lo que consume la presentación: grupos, fechas relevantes, progreso y colapso por defecto.
type View struct {
	Groups []DateGroup

	CurrentRelevantDateKey *string
	NextRelevantDateKey    *string

	Progress int

	// true = colapsado
	Collapsed map[string]bool
}
