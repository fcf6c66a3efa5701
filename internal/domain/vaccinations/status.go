package vaccinations

import (
	"math"
	"sort"
	"time"
)

// Classify agrupa por fecha, asigna estado a cada grupo y elige las fechas relevantes.
// today se inyecta (nunca se lee el reloj acá).
func Classify(entries []Entry, completions map[string]CompletionRecord, today time.Time) View {
	t := civilDay(today)

	groups := GroupByDate(entries)
	for i := range groups {
		groups[i].Status = groupStatus(groups[i], completions, t)
	}

	current, next := RelevantDates(groups, t)

	return View{
		Groups:                 groups,
		CurrentRelevantDateKey: current,
		NextRelevantDateKey:    next,
		Progress:               Progress(entries, completions),
		Collapsed:              DefaultCollapsed(groups, current),
	}
}

// GroupByDate particiona por fecha calendario (ignora hora). Grupos en orden cronológico,
// entries dentro de cada grupo en el orden de entrada.
func GroupByDate(entries []Entry) []DateGroup {
	idx := map[time.Time]int{}
	groups := make([]DateGroup, 0)

	for _, e := range entries {
		day := civilDay(e.ScheduledDate)
		i, ok := idx[day]
		if !ok {
			i = len(groups)
			idx[day] = i
			groups = append(groups, DateGroup{
				DateKey: day.Format(DateKeyLayout),
				Date:    day,
			})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Date.Before(groups[j].Date)
	})
	return groups
}

// Prioridad: Completed > Overdue > DueThisMonth > Upcoming.
func groupStatus(g DateGroup, completions map[string]CompletionRecord, today time.Time) Status {
	if allCompleted(g, completions) {
		return StatusCompleted
	}
	inMonth := sameMonth(g.Date, today)
	if g.Date.Before(today) && !inMonth {
		return StatusOverdue
	}
	if inMonth {
		return StatusDueThisMonth
	}
	return StatusUpcoming
}

// StatusOf es el estado de un grupo puntual (útil para la UI al togglear).
func StatusOf(g DateGroup, completions map[string]CompletionRecord, today time.Time) Status {
	return groupStatus(g, completions, civilDay(today))
}

func allCompleted(g DateGroup, completions map[string]CompletionRecord) bool {
	if len(g.Entries) == 0 {
		return false
	}
	for _, e := range g.Entries {
		if _, ok := completions[e.ID]; !ok {
			return false
		}
	}
	return true
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// RelevantDates elige el grupo a expandir por defecto (current) y el siguiente (next).
// Espera groups en orden cronológico y con Status ya calculado.
//  1. hoy coincide con un grupo incompleto => ese; next = siguiente incompleto posterior a hoy.
//  2. si no, el primer grupo incompleto con fecha >= hoy; next = siguiente incompleto.
//  3. si no, el grupo incompleto más reciente antes de hoy; next = nil.
//  4. si no, ambos nil.
func RelevantDates(groups []DateGroup, today time.Time) (*string, *string) {
	t := civilDay(today)
	pending := func(i int) bool { return groups[i].Status != StatusCompleted }

	for i := range groups {
		if groups[i].Date.Equal(t) && pending(i) {
			cur := groups[i].DateKey
			for j := i + 1; j < len(groups); j++ {
				if groups[j].Date.After(t) && pending(j) {
					next := groups[j].DateKey
					return &cur, &next
				}
			}
			return &cur, nil
		}
	}

	for i := range groups {
		if groups[i].Date.Before(t) || !pending(i) {
			continue
		}
		cur := groups[i].DateKey
		for j := i + 1; j < len(groups); j++ {
			if pending(j) {
				next := groups[j].DateKey
				return &cur, &next
			}
		}
		return &cur, nil
	}

	for i := len(groups) - 1; i >= 0; i-- {
		if groups[i].Date.Before(t) && pending(i) {
			cur := groups[i].DateKey
			return &cur, nil
		}
	}

	return nil, nil
}

// Progress = round(100 * |completados ∩ ids| / |ids|). Calendario vacío => 0.
func Progress(entries []Entry, completions map[string]CompletionRecord) int {
	if len(entries) == 0 {
		return 0
	}
	done := CompletedCount(entries, completions)
	return int(math.Round(100 * float64(done) / float64(len(entries))))
}

// CompletedCount cuenta las dosis del calendario que tienen completion.
func CompletedCount(entries []Entry, completions map[string]CompletionRecord) int {
	n := 0
	for _, e := range entries {
		if _, ok := completions[e.ID]; ok {
			n++
		}
	}
	return n
}

// DefaultCollapsed: todo colapsado salvo el grupo current.
func DefaultCollapsed(groups []DateGroup, current *string) map[string]bool {
	out := make(map[string]bool, len(groups))
	for _, g := range groups {
		out[g.DateKey] = current == nil || g.DateKey != *current
	}
	return out
}
