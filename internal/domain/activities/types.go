package activities

type ActivityType string

const (
	TypeSleep    ActivityType = "SLEEP"
	TypeFeeding  ActivityType = "FEEDING"
	TypeDiaper   ActivityType = "DIAPER"
	TypeGrowth   ActivityType = "GROWTH"
	TypePlaytime ActivityType = "PLAYTIME"
	TypeHealth   ActivityType = "HEALTH"
	TypeNote     ActivityType = "NOTE"
)

var AllTypes = []ActivityType{
	TypeSleep,
	TypeFeeding,
	TypeDiaper,
	TypeGrowth,
	TypePlaytime,
	TypeHealth,
	TypeNote,
}

func (t ActivityType) Valid() bool {
	for _, v := range AllTypes {
		if v == t {
			return true
		}
	}
	return false
}

type Unit string

const (
	UnitMilliliters Unit = "ml"
	UnitGrams       Unit = "g"
	UnitCentimeters Unit = "cm"
	UnitKilograms   Unit = "kg"
	UnitMinutes     Unit = "min"
)

func (u Unit) Valid() bool {
	switch u {
	case UnitMilliliters, UnitGrams, UnitCentimeters, UnitKilograms, UnitMinutes:
		return true
	}
	return false
}

type ActorType string

const (
	ActorTypeOwnerUser      ActorType = "OWNER_USER"
	ActorTypeCaregiverUser  ActorType = "CAREGIVER_USER"
	ActorTypeExternalSystem ActorType = "EXTERNAL_SYSTEM"
)

type Source string

const (
	SourceManual  Source = "manual"
	SourceBackend Source = "backend"
)

type Status string

const (
	StatusActive Status = "active"
	StatusVoided Status = "voided"
)
