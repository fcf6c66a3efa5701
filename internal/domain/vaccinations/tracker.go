package vaccinations

import (
	"errors"
	"strings"
	"time"

	"child-care-tracker/internal/platform/logger"
)

var ErrUnknownEntry = errors.New("unknown vaccination entry")

// Tracker es el estado explícito de la pantalla de vacunas: calendario, completions y colapso.
// No es seguro para uso concurrente; lo posee quien orquesta la pantalla (o un request).
type Tracker struct {
	ChildID   string
	BirthDate time.Time

	Entries     []Entry
	Completions map[string]CompletionRecord
	Collapsed   map[string]bool

	ids map[string]struct{}
	log logger.Logger
}

func NewTracker(childID string, log logger.Logger) *Tracker {
	if log == nil {
		log = logger.NewNop()
	}
	return &Tracker{
		ChildID:     childID,
		Completions: map[string]CompletionRecord{},
		Collapsed:   map[string]bool{},
		ids:         map[string]struct{}{},
		log:         log,
	}
}

// Load regenera el calendario completo y fusiona completions persistidas.
// Las completions se conservan aunque su id ya no exista (sobreviven regeneraciones).
func (t *Tracker) Load(birth time.Time, completions []CompletionRecord, today time.Time) {
	t.BirthDate = birth
	t.Entries = GenerateSchedule(birth, t.log)

	t.ids = make(map[string]struct{}, len(t.Entries))
	for _, e := range t.Entries {
		t.ids[e.ID] = struct{}{}
	}

	for _, c := range completions {
		if strings.TrimSpace(c.EntryID) == "" {
			continue
		}
		t.Completions[c.EntryID] = c
	}

	t.resetCollapsed(today)
}

// MarkCompleted registra la dosis (last-write-wins) y recalcula qué grupo queda expandido.
func (t *Tracker) MarkCompleted(entryID, notes string, at time.Time) (CompletionRecord, error) {
	return t.MarkCompletedOn(entryID, notes, at, at)
}

// MarkCompletedOn permite registrar una dosis aplicada en otra fecha (carga retroactiva).
func (t *Tracker) MarkCompletedOn(entryID, notes string, completed, today time.Time) (CompletionRecord, error) {
	entryID = strings.TrimSpace(entryID)
	if _, ok := t.ids[entryID]; !ok {
		return CompletionRecord{}, ErrUnknownEntry
	}

	rec := CompletionRecord{
		ChildID:       t.ChildID,
		EntryID:       entryID,
		CompletedDate: completed,
		Notes:         strings.TrimSpace(notes),
	}
	t.Completions[entryID] = rec
	t.resetCollapsed(today)
	return rec, nil
}

// Unmark deshace una completion por acción explícita del usuario.
func (t *Tracker) Unmark(entryID string, today time.Time) error {
	entryID = strings.TrimSpace(entryID)
	if _, ok := t.ids[entryID]; !ok {
		return ErrUnknownEntry
	}
	delete(t.Completions, entryID)
	t.resetCollapsed(today)
	return nil
}

// Toggle invierte el colapso de un grupo. Keys desconocidas se ignoran.
func (t *Tracker) Toggle(dateKey string) {
	if v, ok := t.Collapsed[dateKey]; ok {
		t.Collapsed[dateKey] = !v
	}
}

// View deriva la vista actual; el colapso es el del tracker (incluye toggles del usuario).
func (t *Tracker) View(today time.Time) View {
	v := Classify(t.Entries, t.Completions, today)

	collapsed := make(map[string]bool, len(t.Collapsed))
	for k, c := range t.Collapsed {
		collapsed[k] = c
	}
	v.Collapsed = collapsed
	return v
}

func (t *Tracker) resetCollapsed(today time.Time) {
	t.Collapsed = Classify(t.Entries, t.Completions, today).Collapsed
}
