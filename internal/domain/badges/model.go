package badges

import "time"

// RequirementType: qué métrica desbloquea el badge.
type RequirementType string

const (
	RequirementTranslations RequirementType = "translations"
	RequirementStreak       RequirementType = "streak"
	RequirementTreatPoints  RequirementType = "treat_points"
)

type Badge struct {
	ID               string
	Name             string
	Description      string
	Icon             string
	Category         string
	RequirementType  RequirementType
	RequirementValue int
	IsPremiumOnly    bool
	CreatedAt        time.Time
}

// UserBadge es una instancia ganada; única por (user, badge).
type UserBadge struct {
	ID       string
	UserID   string
	BadgeID  string
	EarnedAt time.Time

	Badge Badge
}

// Progress es lo que se evalúa contra los requisitos.
type Progress struct {
	Translations int
	Streak       int
	TreatPoints  int
	Premium      bool
}

// Met indica si el progreso cumple el requisito del badge.
func (b Badge) Met(p Progress) bool {
	if b.IsPremiumOnly && !p.Premium {
		return false
	}
	switch b.RequirementType {
	case RequirementTranslations:
		return p.Translations >= b.RequirementValue
	case RequirementStreak:
		return p.Streak >= b.RequirementValue
	case RequirementTreatPoints:
		return p.TreatPoints >= b.RequirementValue
	default:
		return false
	}
}
