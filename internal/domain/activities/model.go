package activities

import "time"

type Actor struct {
	Type ActorType
	ID   string
}

// Activity es una entrada del registro diario de cuidado (sueño, toma, pañal...).
type Activity struct {
	ID      string
	ChildID string

	Type ActivityType

	OccurredAt time.Time
	EndedAt    *time.Time // solo para actividades con duración (sueño, juego)
	RecordedAt time.Time

	Title string
	Notes string

	Quantity *float64
	Unit     Unit

	Actor  Actor
	Source Source
	Status Status
}

// Duration es 0 si la actividad no tiene fin registrado.
func (a Activity) Duration() time.Duration {
	if a.EndedAt == nil || a.EndedAt.Before(a.OccurredAt) {
		return 0
	}
	return a.EndedAt.Sub(a.OccurredAt)
}
