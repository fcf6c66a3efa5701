package children

import "time"

// Sex del niño.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// Child es el perfil básico de un niño.
// Age es texto libre ("3 months", "10 days"); BirthDate explícita tiene prioridad.
type Child struct {
	ID          string
	OwnerUserID string

	Name string
	Age  string
	Sex  Sex

	BirthDate *time.Time

	Notes string

	// ExternalID identifica el registro en el backend remoto (vacío si es local).
	ExternalID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RemoteChild es lo que devuelve el backend de cuidado.
type RemoteChild struct {
	ExternalID string     `json:"id"`
	Name       string     `json:"name"`
	Age        string     `json:"age"`
	Sex        string     `json:"sex"`
	BirthDate  *time.Time `json:"birth_date,omitempty"`
	Notes      string     `json:"notes"`
}

// SyncResult: Stale=true cuando el backend falló y se usó el cache.
type SyncResult struct {
	Children []Child
	Stale    bool
}

func normalizeSex(raw string) (Sex, bool) {
	switch Sex(raw) {
	case "":
		return SexUnknown, true
	case SexMale, SexFemale, SexUnknown:
		return Sex(raw), true
	default:
		return "", false
	}
}
