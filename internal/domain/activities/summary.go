package activities

import "time"

// DailySummary acumula el día: conteo por tipo, minutos de sueño, ml de tomas y
// la última medición de crecimiento.
type DailySummary struct {
	Date         time.Time
	Counts       map[ActivityType]int
	SleepMinutes int
	FeedingML    float64
	LastGrowth   *Activity
}

// Summarize ignora actividades anuladas y las de otros días.
func Summarize(items []Activity, day time.Time) DailySummary {
	y, m, d := day.Date()
	out := DailySummary{
		Date:   time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		Counts: make(map[ActivityType]int, len(AllTypes)),
	}

	var sleep time.Duration
	for i := range items {
		a := items[i]
		if a.Status == StatusVoided {
			continue
		}
		ay, am, ad := a.OccurredAt.UTC().Date()
		if ay != y || am != m || ad != d {
			continue
		}

		out.Counts[a.Type]++

		switch a.Type {
		case TypeSleep:
			if dur := a.Duration(); dur > 0 {
				sleep += dur
			} else if a.Quantity != nil && a.Unit == UnitMinutes {
				sleep += time.Duration(*a.Quantity * float64(time.Minute))
			}
		case TypeFeeding:
			if a.Quantity != nil && a.Unit == UnitMilliliters {
				out.FeedingML += *a.Quantity
			}
		case TypeGrowth:
			if out.LastGrowth == nil || a.OccurredAt.After(out.LastGrowth.OccurredAt) {
				g := a
				out.LastGrowth = &g
			}
		}
	}

	out.SleepMinutes = int(sleep / time.Minute)
	return out
}
