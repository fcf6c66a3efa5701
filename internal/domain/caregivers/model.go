package caregivers

import "time"

type Scope string

const (
	ScopeChildRead            Scope = "child:read"
	ScopeChildEditProfile     Scope = "child:edit_profile"
	ScopeActivitiesRead       Scope = "activities:read"
	ScopeActivitiesCreate     Scope = "activities:create"
	ScopeActivitiesVoid       Scope = "activities:void"
	ScopeVaccinationsRead     Scope = "vaccinations:read"
	ScopeVaccinationsComplete Scope = "vaccinations:complete"
)

// AllScopes en orden de documentación.
var AllScopes = []Scope{
	ScopeChildRead,
	ScopeChildEditProfile,
	ScopeActivitiesRead,
	ScopeActivitiesCreate,
	ScopeActivitiesVoid,
	ScopeVaccinationsRead,
	ScopeVaccinationsComplete,
}

type Status string

const (
	StatusInvited Status = "invited"
	StatusActive  Status = "active"
	StatusRevoked Status = "revoked"
)

// Grant comparte un niño con otro cuidador (abuela, niñera, co-parent).
type Grant struct {
	ID string

	ChildID string

	OwnerUserID   string // quien comparte
	GranteeUserID string // cuidador

	Scopes []Scope
	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
	RevokedAt *time.Time
}
